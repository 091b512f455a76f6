package evergreen

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Star is the ornament crowning the tree. It grows in when the tree
// assembles, shrinks away when it scatters, and pulses regardless of mode.
type Star struct {
	cfg StarConfig

	// Scale is the current uniform scale. It approaches TargetScale while
	// assembled and 0 while scattered.
	Scale float64
	// RotY accumulates the slow spin.
	RotY float64
	// RotZ is the wobble angle, a pure function of time.
	RotZ float64
	// Intensity is the emissive intensity driving the glow.
	Intensity float64
	// Color is the base emissive color.
	Color Color

	transform mgl32.Mat4
}

// NewStar returns a star at scale 0.
func NewStar(cfg StarConfig) (*Star, error) {
	c, err := ParseColor(cfg.Color)
	if err != nil {
		return nil, err
	}
	s := &Star{cfg: cfg, Color: c, Intensity: cfg.PulseBase}
	s.compose()
	return s, nil
}

// Update advances the star by dt seconds at elapsed time t.
func (s *Star) Update(dt, t float64, mode Mode) {
	target := 0.0
	if mode == ModeAssembled {
		target = s.cfg.TargetScale
	}
	s.Scale += (target - s.Scale) * smoothFactor(s.cfg.Rate, dt)
	if dt > 0 {
		s.RotY = math.Mod(s.RotY+s.cfg.SpinSpeed*dt, 2*math.Pi)
	}
	s.RotZ = math.Sin(t) * s.cfg.Wobble
	s.Intensity = s.cfg.PulseBase + s.cfg.PulseAmp*math.Sin(s.cfg.PulseFreq*t)
	s.compose()
}

// Position returns the star's fixed position on top of the tree.
func (s *Star) Position() mgl32.Vec3 {
	return mgl32.Vec3{0, float32(s.cfg.Height), 0}
}

// Transform returns the model matrix computed by the last Update.
func (s *Star) Transform() *mgl32.Mat4 { return &s.transform }

// Visible reports whether the star is large enough to draw.
func (s *Star) Visible() bool { return s.Scale > 1e-3 }

// Emissive returns the base color boosted by the current intensity.
func (s *Star) Emissive() Color {
	return s.Color.Scale(float32(s.Intensity))
}

func (s *Star) compose() {
	composeTRS(&s.transform, s.Position(), 0, float32(s.RotY), float32(s.RotZ), float32(s.Scale))
}
