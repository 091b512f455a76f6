package evergreen

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func assertMat4(t *testing.T, name string, got, want mgl32.Mat4, eps float32) {
	t.Helper()
	for i := range got {
		if d := got[i] - want[i]; d > eps || d < -eps {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
			return
		}
	}
}

func TestComposeTRSMatchesMatrixProduct(t *testing.T) {
	tests := []struct {
		name       string
		pos        mgl32.Vec3
		rx, ry, rz float32
		scale      float32
	}{
		{"identity", mgl32.Vec3{}, 0, 0, 0, 1},
		{"translation", mgl32.Vec3{1, -2, 3}, 0, 0, 0, 1},
		{"scale", mgl32.Vec3{}, 0, 0, 0, 0.35},
		{"rotate x", mgl32.Vec3{}, 0.7, 0, 0, 1},
		{"rotate y", mgl32.Vec3{}, 0, -1.2, 0, 1},
		{"rotate z", mgl32.Vec3{}, 0, 0, 2.5, 1},
		{"all", mgl32.Vec3{4, 5, -6}, 0.3, 1.1, -0.8, 1.8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got mgl32.Mat4
			composeTRS(&got, tt.pos, tt.rx, tt.ry, tt.rz, tt.scale)
			want := mgl32.Translate3D(tt.pos[0], tt.pos[1], tt.pos[2]).
				Mul4(mgl32.HomogRotate3DX(tt.rx)).
				Mul4(mgl32.HomogRotate3DY(tt.ry)).
				Mul4(mgl32.HomogRotate3DZ(tt.rz)).
				Mul4(mgl32.Scale3D(tt.scale, tt.scale, tt.scale))
			assertMat4(t, tt.name, got, want, 1e-5)
		})
	}
}

func TestTransformPoint(t *testing.T) {
	var m mgl32.Mat4
	composeTRS(&m, mgl32.Vec3{1, 2, 3}, 0, math.Pi/2, 0, 2)
	got := transformPoint(&m, mgl32.Vec3{1, 0, 0})
	// Rotating +X by 90° about Y gives -Z; scaled by 2, then translated.
	want := mgl32.Vec3{1, 2, 1}
	if !got.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("transformPoint = %v, want %v", got, want)
	}
}

func TestProjectPointBehindCamera(t *testing.T) {
	proj := mgl32.Perspective(mgl32.DegToRad(45), 1, 0.1, 100)
	if _, _, _, w := projectPoint(&proj, mgl32.Vec3{0, 0, 5}); w > 0 {
		t.Errorf("point behind the eye should have w <= 0, got %v", w)
	}
	x, y, _, w := projectPoint(&proj, mgl32.Vec3{0, 0, -5})
	if w <= 0 || x != 0 || y != 0 {
		t.Errorf("point ahead on the axis = (%v, %v, w=%v), want (0, 0, w>0)", x, y, w)
	}
}

func TestWrapAngle(t *testing.T) {
	a := wrapAngle(float32(10 * math.Pi))
	if a <= -2*math.Pi || a >= 2*math.Pi {
		t.Errorf("wrapAngle(10π) = %v, want within (-2π, 2π)", a)
	}
	if got := wrapAngle(1); got != 1 {
		t.Errorf("wrapAngle(1) = %v, want 1", got)
	}
}

func TestRotationY(t *testing.T) {
	m := rotationY(math.Pi / 2)
	got := transformPoint(&m, mgl32.Vec3{0, 0, 1})
	if !got.ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, 1e-6) {
		t.Errorf("rotationY(π/2) * +Z = %v, want +X", got)
	}
}
