package xmlscene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// AxisFlip reconciles the renderer's coordinate convention with the host's.
// It is applied to imported vertices before any authored transform.
var AxisFlip = mgl64.Scale3D(1, -1, -1)

// TransformOp is one authored step of a mesh's toWorld transform.
type TransformOp interface {
	// Matrix returns the op as a homogeneous transform.
	Matrix() mgl64.Mat4
	fmt.Stringer
}

// MatrixOp applies an arbitrary 4x4 matrix.
type MatrixOp struct {
	M mgl64.Mat4
}

func (op MatrixOp) Matrix() mgl64.Mat4 { return op.M }
func (op MatrixOp) String() string { return fmt.Sprintf("matrix(%v)", op.M) }

// ScaleOp scales about the origin.
type ScaleOp struct {
	V mgl64.Vec3
}

func (op ScaleOp) Matrix() mgl64.Mat4 { return mgl64.Scale3D(op.V.X(), op.V.Y(), op.V.Z()) }
func (op ScaleOp) String() string { return fmt.Sprintf("scale(%g, %g, %g)", op.V.X(), op.V.Y(), op.V.Z()) }

// TranslateOp offsets every vertex.
type TranslateOp struct {
	V mgl64.Vec3
}

func (op TranslateOp) Matrix() mgl64.Mat4 { return mgl64.Translate3D(op.V.X(), op.V.Y(), op.V.Z()) }
func (op TranslateOp) String() string {
	return fmt.Sprintf("translate(%g, %g, %g)", op.V.X(), op.V.Y(), op.V.Z())
}

// RotateOp rotates about an axis through the origin.
type RotateOp struct {
	Axis     mgl64.Vec3
	AngleDeg float64
}

func (op RotateOp) Matrix() mgl64.Mat4 {
	return mgl64.HomogRotate3D(mgl64.DegToRad(op.AngleDeg), op.Axis.Normalize())
}
func (op RotateOp) String() string {
	return fmt.Sprintf("rotate(%g deg about %v)", op.AngleDeg, op.Axis)
}

// LookAtOp places geometry with a look-at basis. The basis is validated when
// the op is decoded, so Matrix never sees a degenerate triple.
type LookAtOp struct {
	LookAt LookAt
	m      mgl64.Mat4
}

// NewLookAtOp validates la and precomputes its matrix.
func NewLookAtOp(la LookAt) (LookAtOp, error) {
	m, err := LookAtMatrix(la)
	if err != nil {
		return LookAtOp{}, err
	}
	return LookAtOp{LookAt: la, m: m}, nil
}

func (op LookAtOp) Matrix() mgl64.Mat4 { return op.m }
func (op LookAtOp) String() string {
	return fmt.Sprintf("lookat(origin=%v target=%v up=%v)", op.LookAt.Origin, op.LookAt.Target, op.LookAt.Up)
}

// ComposeTransforms returns the single matrix equivalent to the axis flip
// followed by every op in document order. Each op left-multiplies the
// accumulated transform, so later ops act on the result of earlier ones.
func ComposeTransforms(ops []TransformOp) mgl64.Mat4 {
	acc := AxisFlip
	for _, op := range ops {
		acc = op.Matrix().Mul4(acc)
	}
	return acc
}

// TransformPoint applies m affinely: the bottom row is ignored and no
// perspective divide happens.
func TransformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// TransformPoints returns a new buffer holding every point transformed by m.
func TransformPoints(m mgl64.Mat4, points []mgl64.Vec3) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(points))
	for i, p := range points {
		out[i] = TransformPoint(m, p)
	}
	return out
}

// ApplyTransforms threads a vertex buffer through the axis flip and then each
// op in order. The input slice is left untouched.
func ApplyTransforms(vertices []mgl64.Vec3, ops []TransformOp) []mgl64.Vec3 {
	buf := TransformPoints(AxisFlip, vertices)
	for _, op := range ops {
		buf = TransformPoints(op.Matrix(), buf)
	}
	return buf
}
