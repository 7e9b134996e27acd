// Package document is an in-memory scene graph that an xmlscene.Importer can
// populate: cameras, mesh objects with their vertex buffers, and materials.
package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"github.com/gekko3d/xmlscene"
	"github.com/gekko3d/xmlscene/objfile"
)

// MeshLoader reads geometry from a file.
type MeshLoader func(path string) (*objfile.Mesh, error)

type Document struct {
	cameras   map[ObjectId]*Camera
	meshes    map[ObjectId]*MeshObject
	materials map[ObjectId]*Material
	names     map[string]struct{} // object names
	matNames  map[string]struct{}
	order     []ObjectId
	loader    MeshLoader

	Render RenderSettings
}

var (
	_ xmlscene.SceneBuilder = (*Document)(nil)
	_ xmlscene.MeshNamer    = (*Document)(nil)
)

func New() *Document {
	return NewWithLoader(objfile.DecodeFile)
}

func NewWithLoader(loader MeshLoader) *Document {
	d := &Document{loader: loader}
	d.reset()
	return d
}

func (d *Document) reset() {
	d.cameras = make(map[ObjectId]*Camera)
	d.meshes = make(map[ObjectId]*MeshObject)
	d.materials = make(map[ObjectId]*Material)
	d.names = make(map[string]struct{})
	d.matNames = make(map[string]struct{})
	d.order = nil
	d.Render = RenderSettings{Width: xmlscene.DefaultWidth, Height: xmlscene.DefaultHeight}
}

func makeObjectId() ObjectId {
	return ObjectId(uuid.NewString())
}

// uniqueName appends .001, .002, ... until name is unused in taken, then
// reserves it. Objects and materials have separate namespaces.
func uniqueName(taken map[string]struct{}, name string) string {
	candidate := name
	for i := 1; ; i++ {
		if _, ok := taken[candidate]; !ok {
			break
		}
		candidate = fmt.Sprintf("%s.%03d", name, i)
	}
	taken[candidate] = struct{}{}
	return candidate
}

func (d *Document) Camera(id ObjectId) (*Camera, bool) {
	c, ok := d.cameras[id]
	return c, ok
}

func (d *Document) Mesh(id ObjectId) (*MeshObject, bool) {
	m, ok := d.meshes[id]
	return m, ok
}

func (d *Document) Material(id ObjectId) (*Material, bool) {
	m, ok := d.materials[id]
	return m, ok
}

// Objects returns ids in creation order.
func (d *Document) Objects() []ObjectId {
	return append([]ObjectId(nil), d.order...)
}

func (d *Document) ClearScene() error {
	d.reset()
	return nil
}

func (d *Document) CreateCamera(name string) (xmlscene.CameraHandle, error) {
	id := makeObjectId()
	d.cameras[id] = newCamera(id, uniqueName(d.names, name))
	d.order = append(d.order, id)
	return xmlscene.CameraHandle(id), nil
}

func (d *Document) camera(h xmlscene.CameraHandle) (*Camera, error) {
	c, ok := d.cameras[ObjectId(h)]
	if !ok {
		return nil, fmt.Errorf("unknown camera %q", h)
	}
	return c, nil
}

func (d *Document) SetCameraPose(h xmlscene.CameraHandle, pose xmlscene.Pose) error {
	c, err := d.camera(h)
	if err != nil {
		return err
	}
	c.Transform.Position = pose.Position
	c.Transform.Rotation = pose.Quat()
	c.Euler = pose.Rotation
	return nil
}

func (d *Document) SetCameraLens(h xmlscene.CameraHandle, lens xmlscene.Lens) error {
	c, err := d.camera(h)
	if err != nil {
		return err
	}
	c.NearClip = lens.NearClip
	c.FarClip = lens.FarClip
	c.FOV = lens.FOVDeg
	return nil
}

func (d *Document) SetResolution(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid resolution %dx%d", width, height)
	}
	d.Render = RenderSettings{Width: width, Height: height}
	return nil
}

func (d *Document) ImportMesh(path string) (xmlscene.MeshHandle, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", xmlscene.ErrFileNotFound, path)
		}
		return "", err
	}
	src, err := d.loader(path)
	if err != nil {
		return "", fmt.Errorf("load %s: %w", path, err)
	}

	base := filepath.Base(path)
	id := makeObjectId()
	d.meshes[id] = &MeshObject{
		Id:         id,
		Name:       uniqueName(d.names, strings.TrimSuffix(base, filepath.Ext(base))),
		SourcePath: path,
		Vertices:   append([]mgl64.Vec3(nil), src.Vertices...),
		Triangles:  src.Triangles(),
	}
	d.order = append(d.order, id)
	return xmlscene.MeshHandle(id), nil
}

func (d *Document) mesh(h xmlscene.MeshHandle) (*MeshObject, error) {
	m, ok := d.meshes[ObjectId(h)]
	if !ok {
		return nil, fmt.Errorf("unknown mesh %q", h)
	}
	return m, nil
}

func (d *Document) TransformVertices(h xmlscene.MeshHandle, m mgl64.Mat4) error {
	mesh, err := d.mesh(h)
	if err != nil {
		return err
	}
	mesh.Vertices = xmlscene.TransformPoints(m, mesh.Vertices)
	return nil
}

func (d *Document) CreateMaterial(name string) (xmlscene.MaterialHandle, error) {
	id := makeObjectId()
	d.materials[id] = newMaterial(id, uniqueName(d.matNames, name))
	return xmlscene.MaterialHandle(id), nil
}

// MeshName returns the name the document gave an imported mesh.
func (d *Document) MeshName(h xmlscene.MeshHandle) (string, bool) {
	m, ok := d.meshes[ObjectId(h)]
	if !ok {
		return "", false
	}
	return m.Name, true
}

func (d *Document) material(h xmlscene.MaterialHandle) (*Material, error) {
	m, ok := d.materials[ObjectId(h)]
	if !ok {
		return nil, fmt.Errorf("unknown material %q", h)
	}
	return m, nil
}

func (d *Document) SetDiffuseColor(h xmlscene.MaterialHandle, c xmlscene.Color) error {
	mat, err := d.material(h)
	if err != nil {
		return err
	}
	mat.Color = c
	return nil
}

func (d *Document) SetEmission(h xmlscene.MaterialHandle, strength float64) error {
	mat, err := d.material(h)
	if err != nil {
		return err
	}
	mat.Emission = strength
	return nil
}

func (d *Document) AttachMaterial(mh xmlscene.MeshHandle, matH xmlscene.MaterialHandle) error {
	mesh, err := d.mesh(mh)
	if err != nil {
		return err
	}
	if _, err := d.material(matH); err != nil {
		return err
	}
	mesh.Material = ObjectId(matH)
	return nil
}
