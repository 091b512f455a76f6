package evergreen

import "github.com/go-gl/mathgl/mgl32"

// Drift amplitudes of the per-particle oscillation.
const (
	lateralDrift = 0.5
	verticalBob  = 0.2
	spinFactor   = 0.5
	spinDamping  = 0.8
)

// TransformArena is the per-frame scratch storage the evaluator writes into.
// It is sized to the population once and never reallocated.
type TransformArena struct {
	// Transforms holds one column-major model matrix per particle.
	Transforms []mgl32.Mat4
	// Positions holds the evaluated world position of each particle, used for
	// picking and the terminal sink.
	Positions []mgl32.Vec3
	// Scales holds the uniform scale written into each transform.
	Scales []float32
}

// NewTransformArena allocates an arena for n instances.
func NewTransformArena(n int) *TransformArena {
	return &TransformArena{
		Transforms: make([]mgl32.Mat4, n),
		Positions:  make([]mgl32.Vec3, n),
		Scales:     make([]float32, n),
	}
}

// Len returns the number of slots in the arena.
func (a *TransformArena) Len() int { return len(a.Transforms) }

// Evaluate writes the transform of every particle for blend factor blend at
// elapsed time t. The loop allocates nothing.
//
// At blend 0 a particle sits at its scatter home plus the drift; at blend 1 it
// sits at its tree home with only the vertical bob, and spins at a fifth of
// the scattered rate.
func Evaluate(field *Field, blend, t float32, arena *TransformArena) {
	n := min(len(field.Particles), len(arena.Transforms))
	inv := 1 - blend
	spin := spinFactor * (1 - spinDamping*blend)
	for i := 0; i < n; i++ {
		p := &field.Particles[i]
		phase := t*p.Speed + p.Phase

		pos := mgl32.Vec3{
			lerp(p.ScatterPosition[0], p.TreePosition[0], blend),
			lerp(p.ScatterPosition[1], p.TreePosition[1], blend),
			lerp(p.ScatterPosition[2], p.TreePosition[2], blend),
		}
		pos[0] += cos32(phase) * inv * lateralDrift
		pos[1] += sin32(phase) * verticalBob

		r := t * p.Speed * spin
		composeTRS(&arena.Transforms[i], pos, r, r, r, p.Size)
		arena.Positions[i] = pos
		arena.Scales[i] = p.Size
	}
}
