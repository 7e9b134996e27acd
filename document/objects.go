package document

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/gekko3d/xmlscene"
)

type ObjectId string

type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3
}

func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
		Scale:    mgl64.Vec3{1, 1, 1},
	}
}

func (t Transform) ObjectToWorld() mgl64.Mat4 {
	// M = T * R * S
	translate := mgl64.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := t.Rotation.Mat4()
	scale := mgl64.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())

	return translate.Mul4(rotate).Mul4(scale)
}

type Camera struct {
	Id        ObjectId
	Name      string
	Transform Transform
	Euler     xmlscene.EulerXYZ
	NearClip  float64
	FarClip   float64
	FOV       float64 // degrees
}

func newCamera(id ObjectId, name string) *Camera {
	return &Camera{
		Id:        id,
		Name:      name,
		Transform: NewTransform(),
		NearClip:  xmlscene.DefaultNearClip,
		FarClip:   xmlscene.DefaultFarClip,
		FOV:       xmlscene.DefaultFOV,
	}
}

type MeshObject struct {
	Id         ObjectId
	Name       string
	SourcePath string
	Vertices   []mgl64.Vec3
	Triangles  [][3]int
	Material   ObjectId // empty when no material is attached
}

// Bounds returns the axis-aligned box around the vertices; ok is false for an
// empty mesh.
func (m *MeshObject) Bounds() (lo, hi mgl64.Vec3, ok bool) {
	if len(m.Vertices) == 0 {
		return lo, hi, false
	}
	lo, hi = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], v[i])
			hi[i] = max(hi[i], v[i])
		}
	}
	return lo, hi, true
}

type Material struct {
	Id       ObjectId
	Name     string
	Color    xmlscene.Color
	Emission float64
}

// defaultColor matches the host's stock material (light gray).
var defaultColor = xmlscene.Color{R: 0.8, G: 0.8, B: 0.8}

func newMaterial(id ObjectId, name string) *Material {
	return &Material{
		Id:    id,
		Name:  name,
		Color: defaultColor,
	}
}

type RenderSettings struct {
	Width  int
	Height int
}
