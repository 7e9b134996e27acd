package xmlscene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

// mgl64's ApproxEqual helpers switch to eps*eps when a component is zero,
// which rejects ordinary round-off. These compare each component absolutely.

func assertVec3Near(t *testing.T, want, got mgl64.Vec3, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	ok := true
	for i := range want {
		ok = assert.InDelta(t, want[i], got[i], delta, msgAndArgs...) && ok
	}
	return ok
}

func assertVec4Near(t *testing.T, want, got mgl64.Vec4, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	ok := true
	for i := range want {
		ok = assert.InDelta(t, want[i], got[i], delta, msgAndArgs...) && ok
	}
	return ok
}

func assertMat3Near(t *testing.T, want, got mgl64.Mat3, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	ok := true
	for i := range want {
		ok = assert.InDelta(t, want[i], got[i], delta, msgAndArgs...) && ok
	}
	return ok
}
