package evergreen

import "math"

// BlendController animates the scatter-to-tree blend factor. The value moves
// toward its target with a frame-rate independent exponential response, so it
// never overshoots and always stays in [0, 1].
type BlendController struct {
	// Value is the current blend: 0 is fully scattered, 1 is fully assembled.
	Value float64
	// Rate is the response rate in 1/seconds.
	Rate float64
}

// NewBlendController returns a controller at blend 0.
func NewBlendController(rate float64) *BlendController {
	return &BlendController{Rate: rate}
}

// Step advances the blend by dt seconds toward target and returns the new
// value. A non-positive or NaN dt leaves the value unchanged.
func (b *BlendController) Step(dt, target float64) float64 {
	if math.IsNaN(target) {
		return b.Value
	}
	target = clamp(target, 0, 1)
	k := smoothFactor(b.Rate, dt)
	b.Value = clamp(b.Value+(target-b.Value)*k, 0, 1)
	return b.Value
}

// Settled reports whether the blend is within eps of target.
func (b *BlendController) Settled(target, eps float64) bool {
	return math.Abs(b.Value-target) <= eps
}
