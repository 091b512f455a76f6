package evergreen

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenTarget names a float64 field and the value a TweenGroup moves it to.
type TweenTarget struct {
	Field *float64
	To    float64
}

// TweenGroup animates up to 4 float64 fields simultaneously, optionally after
// a start delay. Call Update(dt) each frame; the group writes the eased values
// into the target fields.
//
// There is no global animation manager; owners call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	delay  float32
	Done   bool
}

// NewTweenGroup creates a group moving each target from its current value to
// its To value over duration seconds. Targets beyond the fourth are ignored.
func NewTweenGroup(duration float32, fn ease.TweenFunc, targets ...TweenTarget) *TweenGroup {
	g := &TweenGroup{}
	for _, t := range targets {
		if g.count == len(g.tweens) || t.Field == nil {
			continue
		}
		g.tweens[g.count] = gween.New(float32(*t.Field), float32(t.To), duration, fn)
		g.fields[g.count] = t.Field
		g.count++
	}
	g.Done = g.count == 0
	return g
}

// WithDelay holds the group at its start values for d seconds.
func (g *TweenGroup) WithDelay(d float32) *TweenGroup {
	g.delay = max(d, 0)
	return g
}

// Update advances all tweens by dt seconds and writes values to the target
// fields.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.delay > 0 {
		if dt <= g.delay {
			g.delay -= dt
			return
		}
		dt -= g.delay
		g.delay = 0
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}
