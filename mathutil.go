package evergreen

import (
	"math"

	"golang.org/x/exp/constraints"
)

// lerp linearly interpolates between a and b by t.
func lerp[F constraints.Float](a, b, t F) F {
	return a + (b-a)*t
}

// clamp restricts n to [lo, hi].
func clamp[N constraints.Integer | constraints.Float](n, lo, hi N) N {
	n = min(n, hi)
	n = max(n, lo)
	return n
}

// smoothFactor returns the fraction of the remaining distance covered in dt
// seconds by an exponential approach with the given rate. The result is in
// [0, 1) for any finite dt >= 0 and rate >= 0, so it never overshoots.
func smoothFactor(rate, dt float64) float64 {
	if dt <= 0 || rate <= 0 || math.IsNaN(dt) {
		return 0
	}
	return 1 - math.Exp(-rate*dt)
}

// floorMod returns x mod m in [0, m) for m > 0.
func floorMod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r < 0 {
		r += m
	}
	return r
}

func sin32(x float32) float32 { return float32(math.Sin(float64(x))) }
func cos32(x float32) float32 { return float32(math.Cos(float64(x))) }
