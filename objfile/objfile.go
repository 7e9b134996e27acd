// Package objfile reads vertex positions and faces from Wavefront OBJ files
// (*.obj). Normals, texture coordinates and materials are not kept: the
// importer only needs positions to place geometry.
package objfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

var ErrSyntax = errors.New("obj syntax error")

const blanks = "\r\n\t "

// Face indexes into Mesh.Vertices (zero based).
type Face struct {
	Vertices []int
}

// Object is a named group of faces ("o" or "g" statement).
type Object struct {
	Name  string
	Faces []Face
}

// Mesh is the decoded content of one OBJ file.
type Mesh struct {
	Vertices []mgl64.Vec3
	Objects  []Object
	// Warnings lists statements that were recognised but ignored.
	Warnings []string
}

// FaceCount returns the number of faces across all objects.
func (m *Mesh) FaceCount() int {
	n := 0
	for _, ob := range m.Objects {
		n += len(ob.Faces)
	}
	return n
}

// Triangles fans every face into triangles: (0, i-1, i) for i >= 2.
func (m *Mesh) Triangles() [][3]int {
	var out [][3]int
	for _, ob := range m.Objects {
		for _, f := range ob.Faces {
			for i := 2; i < len(f.Vertices); i++ {
				out = append(out, [3]int{f.Vertices[0], f.Vertices[i-1], f.Vertices[i]})
			}
		}
	}
	return out
}

// DecodeFile reads the OBJ file at path.
func DecodeFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads an OBJ stream.
func Decode(r io.Reader) (*Mesh, error) {
	dec := &decoder{mesh: &Mesh{}}
	bufin := bufio.NewReader(r)
	for {
		line, err := bufin.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		dec.line++
		if perr := dec.parseLine(strings.Trim(line, blanks)); perr != nil {
			return nil, perr
		}
		if err == io.EOF {
			break
		}
	}
	return dec.mesh, nil
}

type decoder struct {
	mesh    *Mesh
	current *Object
	line    int
}

func (dec *decoder) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrSyntax, dec.line, fmt.Sprintf(format, args...))
}

func (dec *decoder) parseLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	switch fields[0] {
	case "o", "g":
		return dec.parseObject(fields[1:])
	case "v":
		return dec.parseVertex(fields[1:])
	case "f":
		return dec.parseFace(fields[1:])
	case "vn", "vt", "s", "usemtl", "mtllib", "l", "p":
		return nil
	default:
		dec.mesh.Warnings = append(dec.mesh.Warnings, fmt.Sprintf("line %d: statement %q not supported", dec.line, fields[0]))
		return nil
	}
}

func (dec *decoder) parseObject(fields []string) error {
	name := strings.Join(fields, " ")
	dec.mesh.Objects = append(dec.mesh.Objects, Object{Name: name})
	dec.current = &dec.mesh.Objects[len(dec.mesh.Objects)-1]
	return nil
}

func (dec *decoder) parseVertex(fields []string) error {
	// A fourth (w) component is allowed and ignored.
	if len(fields) < 3 {
		return dec.errorf("vertex needs 3 coordinates, got %d", len(fields))
	}
	var v mgl64.Vec3
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return dec.errorf("invalid coordinate %q", fields[i])
		}
		v[i] = f
	}
	dec.mesh.Vertices = append(dec.mesh.Vertices, v)
	return nil
}

func (dec *decoder) parseFace(fields []string) error {
	if len(fields) < 3 {
		return dec.errorf("face needs at least 3 vertices, got %d", len(fields))
	}
	face := Face{Vertices: make([]int, 0, len(fields))}
	for _, field := range fields {
		// v, v/vt, v//vn or v/vt/vn: only the position index matters.
		idxStr, _, _ := strings.Cut(field, "/")
		idx, err := strconv.Atoi(idxStr)
		if err != nil {
			return dec.errorf("invalid face index %q", field)
		}
		resolved, err := dec.resolveIndex(idx)
		if err != nil {
			return err
		}
		face.Vertices = append(face.Vertices, resolved)
	}
	if dec.current == nil {
		dec.mesh.Objects = append(dec.mesh.Objects, Object{})
		dec.current = &dec.mesh.Objects[len(dec.mesh.Objects)-1]
	}
	dec.current.Faces = append(dec.current.Faces, face)
	return nil
}

// resolveIndex turns a one-based or negative (relative) index into a zero-based one.
func (dec *decoder) resolveIndex(idx int) (int, error) {
	n := len(dec.mesh.Vertices)
	switch {
	case idx > 0 && idx <= n:
		return idx - 1, nil
	case idx < 0 && -idx <= n:
		return n + idx, nil
	}
	return 0, dec.errorf("face index %d out of range (have %d vertices)", idx, n)
}
