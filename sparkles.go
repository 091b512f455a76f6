package evergreen

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

const sparkleBob = 0.2

type sparkle struct {
	home  mgl32.Vec3
	speed float64
	phase float64
}

// Sparkles is a small population of gold points hanging in a cube around the
// tree. Each one bobs and twinkles on its own clock.
type Sparkles struct {
	cfg       SparkleConfig
	sparkles  []sparkle
	Positions []mgl32.Vec3
	// Alpha holds the current opacity of each sparkle.
	Alpha []float32
	Color Color
}

// NewSparkles creates the population from rng.
func NewSparkles(cfg SparkleConfig, rng *rand.Rand) (*Sparkles, error) {
	c, err := ParseColor(cfg.Color)
	if err != nil {
		return nil, err
	}
	s := &Sparkles{
		cfg:       cfg,
		sparkles:  make([]sparkle, cfg.Count),
		Positions: make([]mgl32.Vec3, cfg.Count),
		Alpha:     make([]float32, cfg.Count),
		Color:     c,
	}
	half := cfg.Scale / 2
	for i := range s.sparkles {
		sp := &s.sparkles[i]
		sp.home = mgl32.Vec3{
			float32(uniform(rng, -half, half)),
			float32(uniform(rng, -half, half)),
			float32(uniform(rng, -half, half)),
		}
		sp.speed = cfg.Speed * uniform(rng, 0.5, 1.5)
		sp.phase = uniform(rng, 0, 2*math.Pi)
	}
	s.Update(0)
	return s, nil
}

// Len returns the number of sparkles.
func (s *Sparkles) Len() int { return len(s.sparkles) }

// Size returns the on-screen point size in pixels.
func (s *Sparkles) Size() float64 { return s.cfg.Size }

// Update recomputes positions and opacities for elapsed time t.
func (s *Sparkles) Update(t float64) {
	for i := range s.sparkles {
		sp := &s.sparkles[i]
		a := t*sp.speed*2*math.Pi + sp.phase
		p := sp.home
		p[1] += float32(math.Sin(a) * sparkleBob)
		p[0] += float32(math.Cos(a*0.7) * sparkleBob * 0.5)
		s.Positions[i] = p
		s.Alpha[i] = float32(s.cfg.Opacity * (0.5 + 0.5*math.Sin(a*1.3)))
	}
}
