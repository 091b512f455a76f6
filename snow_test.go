package evergreen

import (
	"testing"
)

func TestFlakeYPeriodic(t *testing.T) {
	cfg := DefaultConfig().Snow
	for _, yf := range []float64{-20, -3.5, 0, 11, 19.9} {
		for pt := 0.0; pt < 200; pt += 7.3 {
			a := cfg.FlakeY(yf, pt)
			b := cfg.FlakeY(yf, pt+cfg.FallSpan)
			if !approxEqual(a, b, 1e-9) {
				t.Fatalf("FlakeY(%v, %v) = %v, one period later = %v", yf, pt, a, b)
			}
		}
	}
}

func TestFlakeYNeverBelowFloor(t *testing.T) {
	cfg := DefaultConfig().Snow
	for yf := -cfg.SpreadY / 2; yf <= cfg.SpreadY/2; yf += 0.5 {
		for pt := 0.0; pt < 300; pt += 0.37 {
			if y := cfg.FlakeY(yf, pt); y < cfg.Floor {
				t.Fatalf("FlakeY(%v, %v) = %v, below floor %v", yf, pt, y, cfg.Floor)
			}
		}
	}
}

func TestFlakeYFalls(t *testing.T) {
	cfg := DefaultConfig().Snow
	a := cfg.FlakeY(0, 1)
	b := cfg.FlakeY(0, 2)
	if b >= a {
		t.Errorf("flake should fall as pt grows: %v -> %v", a, b)
	}
}

func TestSnowPopulation(t *testing.T) {
	cfg := DefaultConfig().Snow
	cfg.Count = 300
	s := NewSnow(cfg, seeded(1))
	if s.Len() != 300 || s.Arena().Len() != 300 {
		t.Fatalf("Len = %d, arena = %d; want 300", s.Len(), s.Arena().Len())
	}
	for i := 0; i < 120; i++ {
		s.Update(1.0 / 60)
	}
	for i, p := range s.Arena().Positions {
		if x := float64(p[0]); x < -cfg.SpreadX/2-cfg.Drift || x > cfg.SpreadX/2+cfg.Drift {
			t.Fatalf("flake %d x = %v outside the spread", i, x)
		}
		if y := float64(p[1]); y < cfg.Floor {
			t.Fatalf("flake %d y = %v below floor", i, y)
		}
		maxScale := cfg.Size * (1 + cfg.Pulse)
		if sc := float64(s.Arena().Scales[i]); sc <= 0 || sc > maxScale+1e-6 {
			t.Fatalf("flake %d scale %v outside (0, %v]", i, sc, maxScale)
		}
	}
}

func TestSnowIgnoresNegativeDelta(t *testing.T) {
	cfg := DefaultConfig().Snow
	cfg.Count = 20
	s := NewSnow(cfg, seeded(2))
	before := append([]float32(nil), s.Arena().Scales...)
	pos := s.Arena().Positions[0]

	s.Update(-1)
	if s.Arena().Positions[0] != pos {
		t.Error("negative dt moved a flake")
	}
	for i := range before {
		if s.Arena().Scales[i] != before[i] {
			t.Fatalf("negative dt changed scale of flake %d", i)
		}
	}
}

func TestSnowEmpty(t *testing.T) {
	cfg := DefaultConfig().Snow
	cfg.Count = 0
	s := NewSnow(cfg, seeded(3))
	s.Update(1)
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

func TestSnowUpdateZeroAlloc(t *testing.T) {
	s := NewSnow(DefaultConfig().Snow, seeded(4))
	allocs := testing.AllocsPerRun(100, func() {
		s.Update(1.0 / 60)
	})
	if allocs != 0 {
		t.Errorf("Snow.Update allocated %v times per run, want 0", allocs)
	}
}
