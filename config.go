package evergreen

import (
	"fmt"
	"math"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds every tunable of a scene. DefaultConfig returns the reference
// values; LoadConfig overlays a TOML file on top of them.
type Config struct {
	// Seed fixes the random source used to build the particle field, the snow
	// and the sparkles. Nil draws a fresh seed so every session looks different.
	Seed *uint64 `toml:"seed"`

	// Background is the clear color of the scene, as a CSS color string.
	Background string `toml:"background"`

	Field    FieldConfig   `toml:"field"`
	Blend    BlendConfig   `toml:"blend"`
	Star     StarConfig    `toml:"star"`
	Snow     SnowConfig    `toml:"snow"`
	Sparkles SparkleConfig `toml:"sparkles"`
	Camera   CameraConfig  `toml:"camera"`
	Post     PostConfig    `toml:"post"`
	Overlay  OverlayConfig `toml:"overlay"`
}

// FieldConfig controls the particle field generator.
type FieldConfig struct {
	// Count is the fixed population size.
	Count int `toml:"count"`
	// ScatterRadius is the radius of the solid sphere scatter positions are drawn from.
	ScatterRadius float64 `toml:"scatter_radius"`
	// TreeHeight is the height of the cone; tree positions span [-H/2, H/2].
	TreeHeight float64 `toml:"tree_height"`
	// TreeRadius is the base radius of the cone.
	TreeRadius float64 `toml:"tree_radius"`
	// SpiralTurns is the number of full turns the spiral makes from base to tip.
	SpiralTurns float64 `toml:"spiral_turns"`
	// Size is the range of particle sizes before the ornament enlargement.
	Size Range `toml:"size"`
	// Speed is the range of per-particle oscillation speeds.
	Speed Range `toml:"speed"`
	// OrnamentChance is the probability that a particle is a gold ornament.
	OrnamentChance float64 `toml:"ornament_chance"`
	// OrnamentScale multiplies the size of ornaments.
	OrnamentScale float64 `toml:"ornament_scale"`
	// Greens and Golds are the two palette families, as CSS color strings.
	Greens []string `toml:"greens"`
	Golds  []string `toml:"golds"`
}

// BlendConfig controls the transition blend controller.
type BlendConfig struct {
	// Rate is the exponential response rate toward the target blend.
	Rate float64 `toml:"rate"`
}

// StarConfig controls the star on top of the tree.
type StarConfig struct {
	Height      float64 `toml:"height"`
	TargetScale float64 `toml:"target_scale"`
	Rate        float64 `toml:"rate"`
	SpinSpeed   float64 `toml:"spin_speed"`
	Wobble      float64 `toml:"wobble"`
	PulseBase   float64 `toml:"pulse_base"`
	PulseAmp    float64 `toml:"pulse_amp"`
	PulseFreq   float64 `toml:"pulse_freq"`
	Color       string  `toml:"color"`
}

// SnowConfig controls the falling snow.
type SnowConfig struct {
	Count int `toml:"count"`
	// FallSpan is the vertical period L of the fall loop.
	FallSpan float64 `toml:"fall_span"`
	// Floor is the height below which a flake wraps back up by FallSpan.
	Floor     float64 `toml:"floor"`
	SpreadX   float64 `toml:"spread_x"`
	SpreadY   float64 `toml:"spread_y"`
	SpreadZ   float64 `toml:"spread_z"`
	Speed     Range   `toml:"speed"`
	TimeScale float64 `toml:"time_scale"`
	Drift     float64 `toml:"drift"`
	Size      float64 `toml:"size"`
	Pulse     float64 `toml:"pulse"`
	// FlakeSize is the pixel size of the generated snowflake bitmap.
	FlakeSize int    `toml:"flake_size"`
	Color     string `toml:"color"`
}

// SparkleConfig controls the ambient gold sparkles.
type SparkleConfig struct {
	Count   int     `toml:"count"`
	Scale   float64 `toml:"scale"`
	Size    float64 `toml:"size"`
	Speed   float64 `toml:"speed"`
	Opacity float64 `toml:"opacity"`
	Color   string  `toml:"color"`
}

// CameraConfig controls the perspective orbit camera.
type CameraConfig struct {
	Distance    float64 `toml:"distance"`
	FOV         float64 `toml:"fov"`
	MinDistance float64 `toml:"min_distance"`
	MaxDistance float64 `toml:"max_distance"`
	MinPolar    float64 `toml:"min_polar"`
	MaxPolar    float64 `toml:"max_polar"`
	SwayAmp     float64 `toml:"sway_amp"`
	SwayFreq    float64 `toml:"sway_freq"`
}

// PostConfig controls the post-processing chain.
type PostConfig struct {
	Enabled          bool    `toml:"enabled"`
	BloomThreshold   float64 `toml:"bloom_threshold"`
	BloomSmoothing   float64 `toml:"bloom_smoothing"`
	BloomIntensity   float64 `toml:"bloom_intensity"`
	BloomRadius      int     `toml:"bloom_radius"`
	VignetteOffset   float64 `toml:"vignette_offset"`
	VignetteDarkness float64 `toml:"vignette_darkness"`
	Exposure         float64 `toml:"exposure"`
}

// OverlayConfig controls the text overlay and the reveal timer.
type OverlayConfig struct {
	// RevealDelay is the number of seconds between assembling and the greeting.
	RevealDelay float64 `toml:"reveal_delay"`
	Header      string  `toml:"header"`
	Title       string  `toml:"title"`
	Subtitle    string  `toml:"subtitle"`
	ShowFPS     bool    `toml:"show_fps"`
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		Background: "#000502",
		Field: FieldConfig{
			Count:          1800,
			ScatterRadius:  15,
			TreeHeight:     10,
			TreeRadius:     4,
			SpiralTurns:    7.5,
			Size:           Range{Min: 0.1, Max: 0.5},
			Speed:          Range{Min: 0.5, Max: 1.5},
			OrnamentChance: 0.3,
			OrnamentScale:  1.8,
			Greens:         []string{"#50C878", "#2E8B57", "#85FFBD"},
			Golds:          []string{"#FFD700", "#FDB931", "#FFFACD"},
		},
		Blend: BlendConfig{Rate: 2.5},
		Star: StarConfig{
			Height:      5.1,
			TargetScale: 1.5,
			Rate:        3,
			SpinSpeed:   0.5,
			Wobble:      0.1,
			PulseBase:   2,
			PulseAmp:    1,
			PulseFreq:   3,
			Color:       "#FFD700",
		},
		Snow: SnowConfig{
			Count:     1200,
			FallSpan:  60,
			Floor:     -20,
			SpreadX:   60,
			SpreadY:   40,
			SpreadZ:   60,
			Speed:     Range{Min: 0.05, Max: 0.15},
			TimeScale: 5,
			Drift:     2,
			Size:      0.4,
			Pulse:     0.2,
			FlakeSize: 128,
			Color:     "#E6FFFF",
		},
		Sparkles: SparkleConfig{
			Count:   100,
			Scale:   15,
			Size:    4,
			Speed:   0.4,
			Opacity: 0.5,
			Color:   "#FFD700",
		},
		Camera: CameraConfig{
			Distance:    22,
			FOV:         35,
			MinDistance: 8,
			MaxDistance: 25,
			MinPolar:    math.Pi / 3,
			MaxPolar:    math.Pi / 1.5,
			SwayAmp:     0.2,
			SwayFreq:    0.1,
		},
		Post: PostConfig{
			Enabled:          true,
			BloomThreshold:   0.8,
			BloomSmoothing:   0.025,
			BloomIntensity:   1.5,
			BloomRadius:      8,
			VignetteOffset:   0.1,
			VignetteDarkness: 1.1,
			Exposure:         1.5,
		},
		Overlay: OverlayConfig{
			RevealDelay: 1.2,
			Header:      "JENNI COLLECTION",
			Title:       "Merry\nChristmas",
			Subtitle:    "MAY YOUR DREAM COME TRUE",
		},
	}
}

// LoadConfig reads a TOML file and overlays it on DefaultConfig. Keys missing
// from the file keep their reference values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if err := DecodeConfig(data, &cfg); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// DecodeConfig decodes TOML data into cfg, keeping fields the data does not
// mention, and validates the result.
func DecodeConfig(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: unknown key %q", ErrInvalidConfig, undecoded[0].String())
	}
	return cfg.Validate()
}

// Validate reports the first out-of-range value as an ErrInvalidConfig.
func (c *Config) Validate() error {
	f := &c.Field
	switch {
	case f.Count <= 0:
		return fmt.Errorf("%w: field.count must be positive, got %d", ErrInvalidConfig, f.Count)
	case f.ScatterRadius <= 0:
		return fmt.Errorf("%w: field.scatter_radius must be positive", ErrInvalidConfig)
	case f.TreeHeight <= 0 || f.TreeRadius <= 0:
		return fmt.Errorf("%w: field tree dimensions must be positive", ErrInvalidConfig)
	case f.Size.Min <= 0 || f.Size.Max < f.Size.Min:
		return fmt.Errorf("%w: field.size must satisfy 0 < min <= max", ErrInvalidConfig)
	case f.OrnamentChance < 0 || f.OrnamentChance > 1:
		return fmt.Errorf("%w: field.ornament_chance must be in [0, 1]", ErrInvalidConfig)
	case len(f.Greens) == 0 || len(f.Golds) == 0:
		return fmt.Errorf("%w: both palette families need at least one color", ErrInvalidConfig)
	case c.Blend.Rate <= 0:
		return fmt.Errorf("%w: blend.rate must be positive", ErrInvalidConfig)
	case c.Star.Rate <= 0:
		return fmt.Errorf("%w: star.rate must be positive", ErrInvalidConfig)
	case c.Snow.Count < 0 || c.Sparkles.Count < 0:
		return fmt.Errorf("%w: counts must not be negative", ErrInvalidConfig)
	case c.Snow.Count > 0 && c.Snow.FallSpan <= 0:
		return fmt.Errorf("%w: snow.fall_span must be positive", ErrInvalidConfig)
	case c.Snow.FlakeSize < 8:
		return fmt.Errorf("%w: snow.flake_size must be at least 8", ErrInvalidConfig)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return fmt.Errorf("%w: camera.fov must be in (0, 180)", ErrInvalidConfig)
	case c.Camera.MinDistance <= 0 || c.Camera.MaxDistance < c.Camera.MinDistance:
		return fmt.Errorf("%w: camera distance limits are inconsistent", ErrInvalidConfig)
	case c.Overlay.RevealDelay < 0:
		return fmt.Errorf("%w: overlay.reveal_delay must not be negative", ErrInvalidConfig)
	}
	return nil
}
