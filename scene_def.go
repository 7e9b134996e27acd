package xmlscene

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Camera defaults applied when the scene file leaves a parameter out.
const (
	DefaultNearClip = 1e-4
	DefaultFarClip  = 1e4
	DefaultFOV      = 30.0
	DefaultWidth    = 1280
	DefaultHeight   = 720
)

// SceneDef is everything extracted from one scene file, in document order.
type SceneDef struct {
	Camera CameraDef
	Meshes []MeshDef
	// Warnings collects the non-fatal oddities met while parsing
	// (unknown bsdf types, extra cameras, skipped transform tags).
	Warnings []string
}

// CameraDef defines the scene camera.
type CameraDef struct {
	NearClip float64
	FarClip  float64
	FOV      float64 // degrees
	Width    int
	Height   int
	LookAt   *LookAt // nil when the camera has no toWorld
}

// DefaultCamera returns a camera with every parameter at its default.
func DefaultCamera() CameraDef {
	return CameraDef{
		NearClip: DefaultNearClip,
		FarClip:  DefaultFarClip,
		FOV:      DefaultFOV,
		Width:    DefaultWidth,
		Height:   DefaultHeight,
	}
}

// LookAt is an origin/target/up triple.
type LookAt struct {
	Origin mgl64.Vec3
	Target mgl64.Vec3
	Up     mgl64.Vec3
}

// MeshDef defines one imported mesh.
type MeshDef struct {
	Filename   string // relative to the scene file's directory
	Transforms []TransformOp
	Material   MaterialDef // nil when there is no recognised bsdf
	Emitter    *EmitterDef
}

// Color is a linear RGB triple.
type Color struct {
	R float64 `json:"r" yaml:"r"`
	G float64 `json:"g" yaml:"g"`
	B float64 `json:"b" yaml:"b"`
}

func (c Color) Max() float64 {
	return max(c.R, c.G, c.B)
}

// MaterialDef is the closed set of recognised bsdf descriptors.
type MaterialDef interface {
	isMaterial()
}

// DiffuseMaterial is a flat albedo color.
type DiffuseMaterial struct {
	Albedo Color
}

func (DiffuseMaterial) isMaterial() {}

// EmitterDef marks a mesh as a light source.
type EmitterDef struct {
	Radiance Color
}
