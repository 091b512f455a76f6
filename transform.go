package evergreen

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// composeTRS writes T * Rx * Ry * Rz * S into dst. Rotation angles are in
// radians and applied in Euler XYZ order; scale is uniform. The matrix is
// column-major, matching mgl32.
//
// Writing through a pointer keeps the per-particle loop free of 64-byte
// returns and lets the arena be filled in place.
func composeTRS(dst *mgl32.Mat4, pos mgl32.Vec3, rx, ry, rz, scale float32) {
	a, b := cos32(rx), sin32(rx)
	c, d := cos32(ry), sin32(ry)
	e, f := cos32(rz), sin32(rz)

	ae, af, be, bf := a*e, a*f, b*e, b*f

	dst[0] = c * e * scale
	dst[1] = (af + be*d) * scale
	dst[2] = (bf - ae*d) * scale
	dst[3] = 0

	dst[4] = -c * f * scale
	dst[5] = (ae - bf*d) * scale
	dst[6] = (be + af*d) * scale
	dst[7] = 0

	dst[8] = d * scale
	dst[9] = -b * c * scale
	dst[10] = a * c * scale
	dst[11] = 0

	dst[12] = pos[0]
	dst[13] = pos[1]
	dst[14] = pos[2]
	dst[15] = 1
}

// transformPoint applies an affine 4x4 matrix to a point.
func transformPoint(m *mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		m[0]*p[0] + m[4]*p[1] + m[8]*p[2] + m[12],
		m[1]*p[0] + m[5]*p[1] + m[9]*p[2] + m[13],
		m[2]*p[0] + m[6]*p[1] + m[10]*p[2] + m[14],
	}
}

// projectPoint applies a view-projection matrix to p and returns normalized
// device coordinates plus the clip-space w. w <= 0 means the point is behind
// the camera.
func projectPoint(m *mgl32.Mat4, p mgl32.Vec3) (x, y, z, w float32) {
	cx := m[0]*p[0] + m[4]*p[1] + m[8]*p[2] + m[12]
	cy := m[1]*p[0] + m[5]*p[1] + m[9]*p[2] + m[13]
	cz := m[2]*p[0] + m[6]*p[1] + m[10]*p[2] + m[14]
	cw := m[3]*p[0] + m[7]*p[1] + m[11]*p[2] + m[15]
	if cw <= 0 {
		return 0, 0, 0, cw
	}
	inv := 1 / cw
	return cx * inv, cy * inv, cz * inv, cw
}

// rotationY returns the rotation matrix about the Y axis used for the group
// sway.
func rotationY(angle float64) mgl32.Mat4 {
	return mgl32.HomogRotate3DY(float32(angle))
}

// wrapAngle keeps an accumulated angle within (-2π, 2π) so float32 precision
// does not decay over long sessions.
func wrapAngle(a float32) float32 {
	return float32(math.Mod(float64(a), 2*math.Pi))
}
