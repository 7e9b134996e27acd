package xmlscene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// gimbalEpsilon bounds |cos(Y)| below which X and Z rotate about the same axis.
const gimbalEpsilon = 1e-9

// EulerXYZ is an XYZ Euler rotation in radians: the combined rotation is
// Rz(Z) * Ry(Y) * Rx(X), so X is applied first.
type EulerXYZ struct {
	X, Y, Z float64
}

// Mat3 rebuilds the rotation matrix.
func (e EulerXYZ) Mat3() mgl64.Mat3 {
	return mgl64.Rotate3DZ(e.Z).Mul3(mgl64.Rotate3DY(e.Y)).Mul3(mgl64.Rotate3DX(e.X))
}

// Degrees returns the angles converted to degrees.
func (e EulerXYZ) Degrees() mgl64.Vec3 {
	return mgl64.Vec3{mgl64.RadToDeg(e.X), mgl64.RadToDeg(e.Y), mgl64.RadToDeg(e.Z)}
}

// EulerFromMat3 decomposes an orthonormal rotation matrix.
//
// Of the two solutions the one with Y in [-pi/2, pi/2] is returned. At gimbal
// lock (Y = +-pi/2) Z is pinned to 0 and X carries the whole remaining rotation.
// Blender's to_euler instead keeps whichever branch has the smaller sum of
// absolute angles; both describe the same orientation.
func EulerFromMat3(m mgl64.Mat3) EulerXYZ {
	cy := math.Hypot(m.At(0, 0), m.At(1, 0))
	if cy > gimbalEpsilon {
		return EulerXYZ{
			X: math.Atan2(m.At(2, 1), m.At(2, 2)),
			Y: math.Atan2(-m.At(2, 0), cy),
			Z: math.Atan2(m.At(1, 0), m.At(0, 0)),
		}
	}
	return EulerXYZ{
		X: math.Atan2(-m.At(1, 2), m.At(1, 1)),
		Y: math.Atan2(-m.At(2, 0), cy),
		Z: 0,
	}
}
