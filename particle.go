package evergreen

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mazznoer/csscolorparser"
)

// Range is a closed interval used for randomized per-particle parameters.
type Range struct {
	Min float64 `toml:"min"`
	Max float64 `toml:"max"`
}

// Random returns a random float64 in [Min, Max) drawn from rng.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// uniform returns a random float64 in [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// ParticleRecord is one member of the field. It is immutable once generated:
// the frame loop only reads it.
type ParticleRecord struct {
	// ScatterPosition is the home position inside the scatter sphere.
	ScatterPosition mgl32.Vec3
	// TreePosition is the home position on the cone silhouette.
	TreePosition mgl32.Vec3
	// HeightNorm is the normalized height h in [0, 1) the tree position was built from.
	HeightNorm float32
	Size       float32
	Color      Color
	// Ornament marks particles drawn from the gold palette.
	Ornament bool
	Speed    float32
	Phase    float32
}

// Field is the fixed population of particles. Its length never changes after
// GenerateField returns.
type Field struct {
	Particles []ParticleRecord
	cfg       FieldConfig
}

// Len returns the population size.
func (f *Field) Len() int { return len(f.Particles) }

// Config returns the parameters the field was generated with.
func (f *Field) Config() FieldConfig { return f.cfg }

// OrnamentCount returns the number of gold ornaments in the field.
func (f *Field) OrnamentCount() int {
	n := 0
	for i := range f.Particles {
		if f.Particles[i].Ornament {
			n++
		}
	}
	return n
}

// Palette is a parsed palette: the green family for foliage and the gold
// family for ornaments.
type Palette struct {
	Greens []Color
	Golds  []Color
}

// ParsePalette parses the CSS color strings of a field config.
func ParsePalette(greens, golds []string) (Palette, error) {
	var p Palette
	var err error
	if p.Greens, err = parseColors(greens); err != nil {
		return Palette{}, fmt.Errorf("%w: greens: %w", ErrInvalidConfig, err)
	}
	if p.Golds, err = parseColors(golds); err != nil {
		return Palette{}, fmt.Errorf("%w: golds: %w", ErrInvalidConfig, err)
	}
	if len(p.Greens) == 0 || len(p.Golds) == 0 {
		return Palette{}, fmt.Errorf("%w: empty palette family", ErrInvalidConfig)
	}
	return p, nil
}

func parseColors(src []string) ([]Color, error) {
	out := make([]Color, 0, len(src))
	for _, s := range src {
		c, err := ParseColor(s)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// ParseColor parses any CSS color string ("#FFD700", "gold", "rgb(...)").
func ParseColor(s string) (Color, error) {
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}, nil
}

// GenerateField builds the population once. Scatter positions are uniform in
// the solid sphere; tree positions follow a jittered spiral on a cone.
func GenerateField(cfg FieldConfig, rng *rand.Rand) (*Field, error) {
	switch {
	case cfg.Count <= 0:
		return nil, fmt.Errorf("%w: particle count %d", ErrInvalidConfig, cfg.Count)
	case cfg.ScatterRadius <= 0 || cfg.TreeHeight <= 0 || cfg.TreeRadius <= 0:
		return nil, fmt.Errorf("%w: field radii and height must be positive", ErrInvalidConfig)
	case rng == nil:
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}
	pal, err := ParsePalette(cfg.Greens, cfg.Golds)
	if err != nil {
		return nil, err
	}

	f := &Field{
		Particles: make([]ParticleRecord, cfg.Count),
		cfg:       cfg,
	}
	for i := range f.Particles {
		p := &f.Particles[i]
		p.ScatterPosition = scatterPoint(rng, cfg.ScatterRadius)
		p.TreePosition, p.HeightNorm = treePoint(rng, cfg)

		size := cfg.Size.Random(rng)
		if rng.Float64() > 1-cfg.OrnamentChance {
			p.Color = pal.Golds[rng.IntN(len(pal.Golds))]
			p.Ornament = true
			size *= cfg.OrnamentScale
		} else {
			p.Color = pal.Greens[rng.IntN(len(pal.Greens))]
		}
		p.Size = float32(size)
		p.Speed = float32(cfg.Speed.Random(rng))
		p.Phase = float32(uniform(rng, 0, 2*math.Pi))
	}
	return f, nil
}

// scatterPoint returns a point uniformly distributed in the solid sphere of
// radius r. The cube root keeps the density uniform in volume.
func scatterPoint(rng *rand.Rand, radius float64) mgl32.Vec3 {
	r := radius * math.Cbrt(rng.Float64())
	theta := rng.Float64() * 2 * math.Pi
	phi := math.Acos(2*rng.Float64() - 1)
	sp := math.Sin(phi)
	return mgl32.Vec3{
		float32(r * sp * math.Cos(theta)),
		float32(r * sp * math.Sin(theta)),
		float32(r * math.Cos(phi)),
	}
}

// treePoint returns a point on the cone spiral and the normalized height it
// was sampled at.
func treePoint(rng *rand.Rand, cfg FieldConfig) (mgl32.Vec3, float32) {
	h := rng.Float64()
	y := h*cfg.TreeHeight - cfg.TreeHeight/2
	r := (1 - h) * cfg.TreeRadius
	angle := h*cfg.SpiralTurns*2*math.Pi + rng.Float64()*2*math.Pi
	r *= uniform(rng, 0.8, 1.2)
	return mgl32.Vec3{
		float32(r * math.Cos(angle)),
		float32(y),
		float32(r * math.Sin(angle)),
	}, float32(h)
}

// newRand returns a PCG source seeded from seed, or from the runtime's
// entropy when seed is nil.
func newRand(seed *uint64) *rand.Rand {
	if seed == nil {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
}
