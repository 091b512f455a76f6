package evergreen

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// flake holds per-flake simulation state.
type flake struct {
	pt                        float64 // accumulated fall parameter
	speed                     float64
	xFactor, yFactor, zFactor float64
	angVel                    mgl32.Vec3
	rot                       mgl32.Vec3
}

// Snow is a fixed population of flakes falling through a vertical loop. It
// does not depend on the blend.
type Snow struct {
	cfg    SnowConfig
	flakes []flake
	arena  *TransformArena
}

// NewSnow creates the flake population from rng.
func NewSnow(cfg SnowConfig, rng *rand.Rand) *Snow {
	s := &Snow{
		cfg:    cfg,
		flakes: make([]flake, cfg.Count),
		arena:  NewTransformArena(cfg.Count),
	}
	for i := range s.flakes {
		f := &s.flakes[i]
		f.pt = uniform(rng, 0, 100)
		f.speed = cfg.Speed.Random(rng)
		f.xFactor = uniform(rng, -cfg.SpreadX/2, cfg.SpreadX/2)
		f.yFactor = uniform(rng, -cfg.SpreadY/2, cfg.SpreadY/2)
		f.zFactor = uniform(rng, -cfg.SpreadZ/2, cfg.SpreadZ/2)
		for k := 0; k < 3; k++ {
			f.angVel[k] = float32(uniform(rng, -1, 1))
			f.rot[k] = float32(uniform(rng, 0, math.Pi))
		}
	}
	s.Update(0)
	return s
}

// Len returns the number of flakes.
func (s *Snow) Len() int { return len(s.flakes) }

// Arena returns the transforms written by the last Update.
func (s *Snow) Arena() *TransformArena { return s.arena }

// FlakeY returns the height of a flake whose fall parameter is pt and whose
// vertical offset is yFactor. The result is periodic in pt with period
// FallSpan and never below Floor.
func (c SnowConfig) FlakeY(yFactor, pt float64) float64 {
	l := c.FallSpan
	y := yFactor - floorMod(pt, l) + l/2
	if y < c.Floor {
		y += l
	}
	return y
}

// Update advances every flake by dt seconds and rewrites its transform.
func (s *Snow) Update(dt float64) {
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	c := &s.cfg
	for i := range s.flakes {
		f := &s.flakes[i]
		f.pt += f.speed * dt * c.TimeScale

		pos := mgl32.Vec3{
			float32(f.xFactor + math.Sin(0.5*f.pt)*c.Drift),
			float32(c.FlakeY(f.yFactor, f.pt)),
			float32(f.zFactor + math.Cos(0.3*f.pt)*c.Drift),
		}
		for k := 0; k < 3; k++ {
			f.rot[k] = wrapAngle(f.rot[k] + f.angVel[k]*float32(dt))
		}
		scale := float32(c.Size * (1 + c.Pulse*math.Sin(2*f.pt)))

		composeTRS(&s.arena.Transforms[i], pos, f.rot[0], f.rot[1], f.rot[2], scale)
		s.arena.Positions[i] = pos
		s.arena.Scales[i] = scale
	}
}
