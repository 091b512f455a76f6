package evergreen

import (
	"math"
	"testing"
)

func TestBlendMonotoneTowardTarget(t *testing.T) {
	b := NewBlendController(2.5)
	prev := b.Value
	for i := 0; i < 600; i++ {
		v := b.Step(1.0/60, 1)
		if v < prev {
			t.Fatalf("step %d: blend decreased %v -> %v", i, prev, v)
		}
		if v < 0 || v > 1 {
			t.Fatalf("step %d: blend %v outside [0, 1]", i, v)
		}
		prev = v
	}
	if !b.Settled(1, 1e-3) {
		t.Errorf("blend = %v after 10s, want settled at 1", b.Value)
	}
}

func TestBlendReversesMidway(t *testing.T) {
	b := NewBlendController(2.5)
	for i := 0; i < 30; i++ {
		b.Step(1.0/60, 1)
	}
	mid := b.Value
	if mid <= 0 || mid >= 1 {
		t.Fatalf("blend after 0.5s = %v, want strictly between 0 and 1", mid)
	}
	prev := mid
	for i := 0; i < 120; i++ {
		v := b.Step(1.0/60, 0)
		if v > prev {
			t.Fatalf("blend increased while heading to 0: %v -> %v", prev, v)
		}
		prev = v
	}
	if prev >= mid {
		t.Errorf("blend did not move back toward 0")
	}
}

func TestBlendFrameRateIndependent(t *testing.T) {
	fine := NewBlendController(2.5)
	for i := 0; i < 60; i++ {
		fine.Step(1.0/60, 1)
	}
	coarse := NewBlendController(2.5)
	coarse.Step(1, 1)

	if !approxEqual(fine.Value, coarse.Value, 1e-9) {
		t.Errorf("60 steps of 1/60 = %v, one step of 1 = %v", fine.Value, coarse.Value)
	}
	assertNear(t, "blend after 1s", coarse.Value, 1-math.Exp(-2.5))
}

func TestBlendIgnoresBadInput(t *testing.T) {
	b := NewBlendController(2.5)
	b.Step(0.2, 1)
	v := b.Value

	b.Step(-1, 0)
	b.Step(math.NaN(), 0)
	b.Step(0.1, math.NaN())
	if b.Value != v {
		t.Errorf("bad input moved the blend: %v -> %v", v, b.Value)
	}

	for i := 0; i < 100; i++ {
		b.Step(1, 5)
	}
	if b.Value > 1 {
		t.Errorf("out-of-range target pushed blend to %v", b.Value)
	}
}
