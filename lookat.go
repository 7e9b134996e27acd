package xmlscene

import (
	"github.com/go-gl/mathgl/mgl64"
)

// basisEpsilon is the smallest vector length still treated as a direction.
const basisEpsilon = 1e-9

// Pose is a resolved camera placement.
type Pose struct {
	Position mgl64.Vec3
	Rotation EulerXYZ
	// Basis holds the columns [left | up | direction].
	Basis mgl64.Mat3
	// Matrix is Basis with Position as translation.
	Matrix mgl64.Mat4
}

// IdentityPose is the pose a camera keeps when the scene gives no look-at.
func IdentityPose() Pose {
	return Pose{
		Basis:  mgl64.Ident3(),
		Matrix: mgl64.Ident4(),
	}
}

// Quat returns the orientation as a unit quaternion.
func (p Pose) Quat() mgl64.Quat {
	return mgl64.Mat4ToQuat(p.Matrix).Normalize()
}

// LookAtMatrix builds the homogeneous transform whose columns are
// (left, trueUp, direction, origin).
func LookAtMatrix(la LookAt) (mgl64.Mat4, error) {
	dir := la.Target.Sub(la.Origin)
	if dir.Len() < basisEpsilon {
		return mgl64.Mat4{}, &ElementError{Msg: "target coincides with origin", Err: ErrDegenerateBasis}
	}
	dir = dir.Normalize()

	if la.Up.Len() < basisEpsilon {
		return mgl64.Mat4{}, &ElementError{Msg: "up vector has zero length", Err: ErrDegenerateBasis}
	}
	up := la.Up.Normalize()

	left := up.Cross(dir)
	if left.Len() < basisEpsilon {
		return mgl64.Mat4{}, &ElementError{Msg: "direction is parallel to up", Err: ErrDegenerateBasis}
	}
	left = left.Normalize()
	trueUp := dir.Cross(left).Normalize()

	return mgl64.Mat4FromCols(
		left.Vec4(0),
		trueUp.Vec4(0),
		dir.Vec4(0),
		la.Origin.Vec4(1),
	), nil
}

// ResolveLookAt converts a look-at triple into a camera pose.
func ResolveLookAt(la LookAt) (Pose, error) {
	m, err := LookAtMatrix(la)
	if err != nil {
		return Pose{}, err
	}
	basis := m.Mat3()
	return Pose{
		Position: la.Origin,
		Rotation: EulerFromMat3(basis),
		Basis:    basis,
		Matrix:   m,
	}, nil
}
