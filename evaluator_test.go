package evergreen

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func evalTestField(t testing.TB, n int) *Field {
	t.Helper()
	f, err := GenerateField(testFieldConfig(n), seeded(11))
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestEvaluateScattered(t *testing.T) {
	f := evalTestField(t, 200)
	arena := NewTransformArena(f.Len())
	const tt = float32(1.7)
	Evaluate(f, 0, tt, arena)

	for i, p := range f.Particles {
		phase := tt*p.Speed + p.Phase
		want := p.ScatterPosition.Add(mgl32.Vec3{cos32(phase) * lateralDrift, sin32(phase) * verticalBob, 0})
		if !arena.Positions[i].ApproxEqualThreshold(want, 1e-4) {
			t.Fatalf("particle %d at blend 0 = %v, want %v", i, arena.Positions[i], want)
		}
	}
}

func TestEvaluateAssembled(t *testing.T) {
	f := evalTestField(t, 200)
	arena := NewTransformArena(f.Len())
	const tt = float32(3.2)
	Evaluate(f, 1, tt, arena)

	for i, p := range f.Particles {
		phase := tt*p.Speed + p.Phase
		// Only the vertical bob remains once assembled.
		want := p.TreePosition.Add(mgl32.Vec3{0, sin32(phase) * verticalBob, 0})
		if !arena.Positions[i].ApproxEqualThreshold(want, 1e-4) {
			t.Fatalf("particle %d at blend 1 = %v, want %v", i, arena.Positions[i], want)
		}
	}
}

func TestEvaluateTransformMatchesPosition(t *testing.T) {
	f := evalTestField(t, 100)
	arena := NewTransformArena(f.Len())
	Evaluate(f, 0.4, 2, arena)

	for i, p := range f.Particles {
		m := &arena.Transforms[i]
		if got := (mgl32.Vec3{m[12], m[13], m[14]}); got != arena.Positions[i] {
			t.Fatalf("particle %d translation %v != position %v", i, got, arena.Positions[i])
		}
		if arena.Scales[i] != p.Size {
			t.Fatalf("particle %d scale %v != size %v", i, arena.Scales[i], p.Size)
		}
		// Rotation is orthonormal, so each basis column has length = size.
		col := mgl32.Vec3{m[0], m[1], m[2]}
		if !approxEqual(float64(col.Len()), float64(p.Size), 1e-5) {
			t.Fatalf("particle %d basis length %v != size %v", i, col.Len(), p.Size)
		}
	}
}

func TestEvaluateTruncatesToArena(t *testing.T) {
	f := evalTestField(t, 50)
	arena := NewTransformArena(10)
	Evaluate(f, 0.5, 1, arena) // must not panic
	if arena.Len() != 10 {
		t.Errorf("arena Len = %d, want 10", arena.Len())
	}
}

func TestEvaluateZeroAlloc(t *testing.T) {
	f := evalTestField(t, 1800)
	arena := NewTransformArena(f.Len())
	tt := float32(0)
	allocs := testing.AllocsPerRun(100, func() {
		tt += 1.0 / 60
		Evaluate(f, 0.5, tt, arena)
	})
	if allocs != 0 {
		t.Errorf("Evaluate allocated %v times per run, want 0", allocs)
	}
}
