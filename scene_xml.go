package xmlscene

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/net/html/charset"
)

// ParseOptions controls parsing behavior.
type ParseOptions struct {
	// LenientTransforms skips unknown transform tags with a warning instead of
	// failing with ErrUnsupportedVariant.
	LenientTransforms bool
}

// normalize normalizes the ParseOptions.
func (o *ParseOptions) normalize() ParseOptions {
	if o == nil {
		return ParseOptions{}
	}
	return *o
}

// ReadSceneFile parses the scene file at path.
func ReadSceneFile(path string, opt *ParseOptions) (*SceneDef, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("open scene %q: %w", path, ErrFileNotFound)
		}
		return nil, fmt.Errorf("open scene %q: %w", path, err)
	}
	defer f.Close()
	return DecodeScene(bufio.NewReader(f), opt)
}

// DecodeScene parses a scene document from r.
func DecodeScene(r io.Reader, opt *ParseOptions) (*SceneDef, error) {
	root, err := readTree(r)
	if err != nil {
		return nil, err
	}
	p := &sceneParser{opt: opt.normalize()}
	return p.parseScene(root)
}

// element is a minimal DOM node; the scene dialect carries no text content.
type element struct {
	name     string
	path     string
	attrs    map[string]string
	children []*element
}

func (e *element) attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// child returns the first child with the given tag.
func (e *element) child(tag string) *element {
	for _, c := range e.children {
		if c.name == tag {
			return c
		}
	}
	return nil
}

// childNamed returns the first child with the given tag and name attribute.
func (e *element) childNamed(tag, name string) *element {
	for _, c := range e.children {
		if c.name == tag && c.attrs["name"] == name {
			return c
		}
	}
	return nil
}

func (e *element) childrenOf(tag string) []*element {
	var out []*element
	for _, c := range e.children {
		if c.name == tag {
			out = append(out, c)
		}
	}
	return out
}

func (e *element) childPath(tag string) string {
	n := 1
	for _, c := range e.children {
		if c.name == tag {
			n++
		}
	}
	if n == 1 {
		return e.path + "/" + tag
	}
	return e.path + "/" + tag + "[" + strconv.Itoa(n) + "]"
}

// requireAttr returns the named attribute or an ErrMissingField error.
func (e *element) requireAttr(name string) (string, error) {
	v, ok := e.attrs[name]
	if !ok {
		return "", elementErrorf(e.path, ErrMissingField, "attribute %q", name)
	}
	return v, nil
}

func readTree(r io.Reader) (*element, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	var root *element
	var stack []*element
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ElementError{Path: "xml", Msg: err.Error(), Err: ErrParse}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{name: t.Name.Local, attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				el.attrs[a.Name.Local] = a.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, elementErrorf(t.Name.Local, ErrParse, "document has more than one root element")
				}
				el.path = el.name
				root = el
			} else {
				parent := stack[len(stack)-1]
				el.path = parent.childPath(el.name)
				parent.children = append(parent.children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}
	if root == nil {
		return nil, &ElementError{Path: "xml", Msg: "document has no root element", Err: ErrParse}
	}
	return root, nil
}

type sceneParser struct {
	opt      ParseOptions
	warnings []string
}

func (p *sceneParser) warnf(format string, args ...any) {
	p.warnings = append(p.warnings, fmt.Sprintf(format, args...))
}

func (p *sceneParser) parseScene(root *element) (*SceneDef, error) {
	scene := &SceneDef{Camera: DefaultCamera()}

	cameras := root.childrenOf("camera")
	if len(cameras) > 0 {
		cam, err := p.parseCamera(cameras[0])
		if err != nil {
			return nil, err
		}
		scene.Camera = cam
		for _, extra := range cameras[1:] {
			p.warnf("%s: only the first camera is imported", extra.path)
		}
	}

	for _, el := range root.childrenOf("mesh") {
		mesh, err := p.parseMesh(el)
		if err != nil {
			return nil, err
		}
		scene.Meshes = append(scene.Meshes, mesh)
	}

	scene.Warnings = p.warnings
	return scene, nil
}

func (p *sceneParser) parseCamera(el *element) (CameraDef, error) {
	cam := DefaultCamera()
	for _, param := range el.children {
		name, _ := param.attr("name")
		var err error
		switch name {
		case "nearClip":
			cam.NearClip, err = parseFloatParam(param)
		case "farClip":
			cam.FarClip, err = parseFloatParam(param)
		case "fov":
			cam.FOV, err = parseFloatParam(param)
		case "width":
			cam.Width, err = parseSizeParam(param)
		case "height":
			cam.Height, err = parseSizeParam(param)
		case "toWorld":
			cam.LookAt, err = parseToWorld(param)
		}
		if err != nil {
			return CameraDef{}, err
		}
	}
	return cam, nil
}

func parseFloatParam(el *element) (float64, error) {
	raw, err := el.requireAttr("value")
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, elementErrorf(el.path, ErrParse, "%q is not a number", raw)
	}
	return v, nil
}

func parseSizeParam(el *element) (int, error) {
	raw, err := el.requireAttr("value")
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, elementErrorf(el.path, ErrParse, "%q is not an integer", raw)
	}
	if v <= 0 {
		return 0, elementErrorf(el.path, ErrParse, "size must be positive, got %d", v)
	}
	return v, nil
}

func parseToWorld(el *element) (*LookAt, error) {
	lookat := el.child("lookat")
	if lookat == nil {
		return nil, elementErrorf(el.path, ErrMissingField, "toWorld needs a lookat element")
	}
	la, err := parseLookAt(lookat)
	if err != nil {
		return nil, err
	}
	return &la, nil
}

func parseLookAt(el *element) (LookAt, error) {
	var la LookAt
	fields := []struct {
		attr string
		dst  *mgl64.Vec3
	}{
		{"origin", &la.Origin},
		{"target", &la.Target},
		{"up", &la.Up},
	}
	for _, f := range fields {
		raw, err := el.requireAttr(f.attr)
		if err != nil {
			return LookAt{}, err
		}
		v, err := ParseVec3(raw)
		if err != nil {
			return LookAt{}, atPath(el.path+"@"+f.attr, err)
		}
		*f.dst = v
	}
	return la, nil
}

func (p *sceneParser) parseMesh(el *element) (MeshDef, error) {
	var mesh MeshDef

	filename := el.childNamed("string", "filename")
	if filename == nil {
		return MeshDef{}, elementErrorf(el.path, ErrMissingField, "mesh needs a filename string")
	}
	name, err := filename.requireAttr("value")
	if err != nil {
		return MeshDef{}, err
	}
	mesh.Filename = name

	if tr := el.child("transform"); tr != nil {
		for _, opEl := range tr.children {
			op, err := p.parseTransformOp(opEl)
			if err != nil {
				return MeshDef{}, err
			}
			if op != nil {
				mesh.Transforms = append(mesh.Transforms, op)
			}
		}
	}

	if bsdf := el.child("bsdf"); bsdf != nil {
		mat, err := p.parseBSDF(bsdf)
		if err != nil {
			return MeshDef{}, err
		}
		mesh.Material = mat
	}

	if em := el.child("emitter"); em != nil {
		radiance := em.childNamed("color", "radiance")
		if radiance == nil {
			return MeshDef{}, elementErrorf(em.path, ErrMissingField, "emitter needs a radiance color")
		}
		c, err := parseColorElement(radiance)
		if err != nil {
			return MeshDef{}, err
		}
		mesh.Emitter = &EmitterDef{Radiance: c}
	}

	return mesh, nil
}

// parseTransformOp decodes one child of a transform container. It returns a
// nil op for tags skipped in lenient mode.
func (p *sceneParser) parseTransformOp(el *element) (TransformOp, error) {
	switch el.name {
	case "matrix":
		raw, err := el.requireAttr("value")
		if err != nil {
			return nil, err
		}
		m, err := ParseMatrix(raw)
		if err != nil {
			return nil, atPath(el.path, err)
		}
		return MatrixOp{M: m}, nil

	case "scale":
		v, err := vec3Attr(el, "value")
		if err != nil {
			return nil, err
		}
		return ScaleOp{V: v}, nil

	case "translate":
		v, err := vec3Attr(el, "value")
		if err != nil {
			return nil, err
		}
		return TranslateOp{V: v}, nil

	case "rotate":
		axis, err := vec3Attr(el, "axis")
		if err != nil {
			return nil, err
		}
		if axis.Len() < basisEpsilon {
			return nil, elementErrorf(el.path, ErrParse, "rotation axis has zero length")
		}
		angle, err := el.requireAttr("angle")
		if err != nil {
			return nil, err
		}
		deg, err := strconv.ParseFloat(strings.TrimSpace(angle), 64)
		if err != nil {
			return nil, elementErrorf(el.path, ErrParse, "%q is not a number", angle)
		}
		return RotateOp{Axis: axis, AngleDeg: deg}, nil

	case "lookat":
		la, err := parseLookAt(el)
		if err != nil {
			return nil, err
		}
		op, err := NewLookAtOp(la)
		if err != nil {
			return nil, atPath(el.path, err)
		}
		return op, nil
	}

	if p.opt.LenientTransforms {
		p.warnf("%s: unknown transform %q skipped", el.path, el.name)
		return nil, nil
	}
	return nil, elementErrorf(el.path, ErrUnsupportedVariant, "unknown transform %q", el.name)
}

func (p *sceneParser) parseBSDF(el *element) (MaterialDef, error) {
	typ, _ := el.attr("type")
	switch typ {
	case "diffuse":
		albedo := el.childNamed("color", "albedo")
		if albedo == nil {
			return nil, elementErrorf(el.path, ErrMissingField, "diffuse bsdf needs an albedo color")
		}
		c, err := parseColorElement(albedo)
		if err != nil {
			return nil, err
		}
		return DiffuseMaterial{Albedo: c}, nil
	}
	p.warnf("%s: bsdf type %q has no material mapping", el.path, typ)
	return nil, nil
}

func vec3Attr(el *element, name string) (mgl64.Vec3, error) {
	raw, err := el.requireAttr(name)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	v, err := ParseVec3(raw)
	if err != nil {
		return mgl64.Vec3{}, atPath(el.path, err)
	}
	return v, nil
}

func parseColorElement(el *element) (Color, error) {
	raw, err := el.requireAttr("value")
	if err != nil {
		return Color{}, err
	}
	c, err := ParseColor(raw)
	if err != nil {
		return Color{}, atPath(el.path, err)
	}
	return c, nil
}
