package xmlscene

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Handles identify host objects. Builders mint them; the importer only passes
// them back.
type (
	CameraHandle   string
	MeshHandle     string
	MaterialHandle string
)

// Lens groups the camera's projection parameters.
type Lens struct {
	NearClip float64
	FarClip  float64
	FOVDeg   float64
}

// SceneBuilder is the host document the importer populates.
type SceneBuilder interface {
	// ClearScene removes every object from the host scene.
	ClearScene() error

	CreateCamera(name string) (CameraHandle, error)
	SetCameraPose(cam CameraHandle, pose Pose) error
	SetCameraLens(cam CameraHandle, lens Lens) error
	SetResolution(width, height int) error

	// ImportMesh loads geometry from path. A missing file must be reported
	// with an error wrapping ErrFileNotFound.
	ImportMesh(path string) (MeshHandle, error)
	// TransformVertices applies m to every vertex of the mesh.
	TransformVertices(mesh MeshHandle, m mgl64.Mat4) error

	CreateMaterial(name string) (MaterialHandle, error)
	SetDiffuseColor(mat MaterialHandle, c Color) error
	SetEmission(mat MaterialHandle, strength float64) error
	AttachMaterial(mesh MeshHandle, mat MaterialHandle) error
}

// MeshNamer is implemented by builders that rename imported objects, for
// example to keep names unique. Materials are named after the returned name.
type MeshNamer interface {
	MeshName(mesh MeshHandle) (string, bool)
}
