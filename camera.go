package evergreen

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	cameraNear = 0.1
	cameraFar  = 200
)

// orbitAnim holds active tweens moving the camera to a new orbit position.
type orbitAnim struct {
	azimuth  *gween.Tween
	polar    *gween.Tween
	distance *gween.Tween
}

// Camera is a perspective camera orbiting the origin. Azimuth and Polar are
// spherical angles in radians; Polar is measured from +Y, so π/2 looks at the
// tree side-on. There is no pan.
type Camera struct {
	Azimuth  float64
	Polar    float64
	Distance float64
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect
	// Sway is the rotation about Y applied to the whole scene group.
	Sway float64

	cfg CameraConfig

	view     mgl32.Mat4
	proj     mgl32.Mat4
	viewProj mgl32.Mat4
	group    mgl32.Mat4
	// groupViewProj is viewProj * group, the matrix every population is
	// projected through.
	groupViewProj mgl32.Mat4
	dirty         bool

	orbit *orbitAnim
}

// NewCamera returns a camera at the configured distance on the +Z axis,
// looking at the origin.
func NewCamera(cfg CameraConfig, viewport Rect) *Camera {
	return &Camera{
		Azimuth:  0,
		Polar:    math.Pi / 2,
		Distance: cfg.Distance,
		FOV:      cfg.FOV,
		Viewport: viewport,
		cfg:      cfg,
		dirty:    true,
	}
}

// SetViewport changes the render rectangle, for example after a resize.
func (c *Camera) SetViewport(r Rect) {
	if r != c.Viewport {
		c.Viewport = r
		c.dirty = true
	}
}

// Orbit rotates the camera by the given angle deltas, clamping the polar
// angle to the configured limits.
func (c *Camera) Orbit(dAzimuth, dPolar float64) {
	c.Azimuth = math.Mod(c.Azimuth+dAzimuth, 2*math.Pi)
	c.Polar = clamp(c.Polar+dPolar, c.cfg.MinPolar, c.cfg.MaxPolar)
	c.dirty = true
}

// Zoom scales the orbit distance by factor, clamped to the configured limits.
// Factors below 1 move the camera closer.
func (c *Camera) Zoom(factor float64) {
	if factor <= 0 || math.IsNaN(factor) {
		return
	}
	c.Distance = clamp(c.Distance*factor, c.cfg.MinDistance, c.cfg.MaxDistance)
	c.dirty = true
}

// OrbitTo animates the camera to the given orbit over duration seconds.
func (c *Camera) OrbitTo(azimuth, polar, distance float64, duration float32, easeFn ease.TweenFunc) {
	polar = clamp(polar, c.cfg.MinPolar, c.cfg.MaxPolar)
	distance = clamp(distance, c.cfg.MinDistance, c.cfg.MaxDistance)
	c.orbit = &orbitAnim{
		azimuth:  gween.New(float32(c.Azimuth), float32(azimuth), duration, easeFn),
		polar:    gween.New(float32(c.Polar), float32(polar), duration, easeFn),
		distance: gween.New(float32(c.Distance), float32(distance), duration, easeFn),
	}
}

// Reset animates the camera back to its initial orbit.
func (c *Camera) Reset(duration float32) {
	c.OrbitTo(0, math.Pi/2, c.cfg.Distance, duration, ease.OutCubic)
}

// Animating reports whether an OrbitTo animation is running.
func (c *Camera) Animating() bool { return c.orbit != nil }

// update advances the orbit animation and the group sway at elapsed time t.
func (c *Camera) update(dt float32, t float64) {
	if c.orbit != nil {
		az, doneA := c.orbit.azimuth.Update(dt)
		po, doneP := c.orbit.polar.Update(dt)
		di, doneD := c.orbit.distance.Update(dt)
		c.Azimuth, c.Polar, c.Distance = float64(az), float64(po), float64(di)
		if doneA && doneP && doneD {
			c.orbit = nil
		}
		c.dirty = true
	}
	sway := math.Sin(t*c.cfg.SwayFreq) * c.cfg.SwayAmp
	if sway != c.Sway {
		c.Sway = sway
		c.dirty = true
	}
}

// Position returns the eye position in world space.
func (c *Camera) Position() mgl32.Vec3 {
	sp, cp := math.Sincos(c.Polar)
	sa, ca := math.Sincos(c.Azimuth)
	return mgl32.Vec3{
		float32(c.Distance * sp * sa),
		float32(c.Distance * cp),
		float32(c.Distance * sp * ca),
	}
}

// computeMatrices recomputes the cached matrices if dirty.
func (c *Camera) computeMatrices() {
	if !c.dirty {
		return
	}
	c.dirty = false

	aspect := float32(1)
	if c.Viewport.Height > 0 {
		aspect = float32(c.Viewport.Width / c.Viewport.Height)
	}
	c.proj = mgl32.Perspective(mgl32.DegToRad(float32(c.FOV)), aspect, cameraNear, cameraFar)
	c.view = mgl32.LookAtV(c.Position(), mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	c.viewProj = c.proj.Mul4(c.view)
	c.group = rotationY(c.Sway)
	c.groupViewProj = c.viewProj.Mul4(c.group)
}

// ViewProjection returns proj * view * group, the matrix instances are
// projected through.
func (c *Camera) ViewProjection() *mgl32.Mat4 {
	c.computeMatrices()
	return &c.groupViewProj
}

// Group returns the sway rotation applied to the scene group.
func (c *Camera) Group() *mgl32.Mat4 {
	c.computeMatrices()
	return &c.group
}

// WorldToScreen projects a group-space point to screen coordinates. ok is
// false when the point is behind the camera.
func (c *Camera) WorldToScreen(p mgl32.Vec3) (sx, sy float64, ok bool) {
	sx, sy, _, ok = c.Project(p)
	return sx, sy, ok
}

// Project is WorldToScreen that also returns the clip depth w, the distance
// of the point along the view direction.
func (c *Camera) Project(p mgl32.Vec3) (sx, sy, depth float64, ok bool) {
	c.computeMatrices()
	nx, ny, _, w := projectPoint(&c.groupViewProj, p)
	if w <= 0 {
		return 0, 0, 0, false
	}
	sx, sy = c.ndcToScreen(nx, ny)
	return sx, sy, float64(w), true
}

// pixelsPerUnit returns how many screen pixels one world unit covers at clip
// depth w.
func (c *Camera) pixelsPerUnit(w float32) float64 {
	if w <= 0 {
		return 0
	}
	f := 1 / math.Tan(c.FOV*math.Pi/360)
	return f * c.Viewport.Height / 2 / float64(w)
}

func (c *Camera) ndcToScreen(nx, ny float32) (float64, float64) {
	vp := &c.Viewport
	return vp.X + (float64(nx)+1)/2*vp.Width, vp.Y + (1-float64(ny))/2*vp.Height
}

// Pick returns the index of the particle nearest to the camera whose
// projected disc contains the screen point (sx, sy), or -1 if none does.
// radius scales the projected size of each particle.
func (c *Camera) Pick(positions []mgl32.Vec3, scales []float32, radius float64, sx, sy float64) int {
	c.computeMatrices()
	best := -1
	bestW := float32(math.MaxFloat32)
	for i := range positions {
		nx, ny, _, w := projectPoint(&c.groupViewProj, positions[i])
		if w <= cameraNear {
			continue
		}
		px, py := c.ndcToScreen(nx, ny)
		r := float64(scales[i]) * radius * c.pixelsPerUnit(w)
		dx, dy := sx-px, sy-py
		if dx*dx+dy*dy <= r*r && w < bestW {
			best, bestW = i, w
		}
	}
	return best
}
