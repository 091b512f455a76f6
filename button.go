package evergreen

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween/ease"
)

const (
	buttonWidth         = 220
	buttonHeight        = 48
	buttonMargin        = 48
	buttonBorder        = 1.5
	buttonHoverScale    = 1.05
	buttonPressScale    = 0.95
	buttonTweenDuration = 0.15

	labelAssemble = "ASSEMBLE TREE"
	labelScatter  = "SCATTER MAGIC"
)

var (
	buttonEmerald = Color{0.31, 0.78, 0.47, 1}
	buttonAmber   = Color{0.98, 0.75, 0.14, 1}
	buttonFill    = Color{0, 0.02, 0.01, 0.55}
)

// Button is the toggle control at the bottom center of the screen. Its label
// names the action a click performs, so it reads "ASSEMBLE TREE" while
// scattered and "SCATTER MAGIC" while assembled.
type Button struct {
	// Bounds is the unscaled hit rectangle.
	Bounds Rect

	label   Label
	accent  Color
	hovered bool
	pressed bool
	scale   float64
	tween   *TweenGroup
}

// NewButton returns a button labelled for the scattered mode.
func NewButton(font *TTFFont) *Button {
	b := &Button{
		label: Label{Font: font, Align: TextAlignCenter},
		scale: 1,
	}
	b.SetMode(ModeScattered)
	return b
}

// Layout places the button for a w×h screen.
func (b *Button) Layout(w, h int) {
	b.Bounds = Rect{
		X:      (float64(w) - buttonWidth) / 2,
		Y:      float64(h) - buttonMargin - buttonHeight,
		Width:  buttonWidth,
		Height: buttonHeight,
	}
}

// SetMode updates the label and accent color for mode m.
func (b *Button) SetMode(m Mode) {
	if m == ModeAssembled {
		b.label.Content, b.accent = labelScatter, buttonAmber
	} else {
		b.label.Content, b.accent = labelAssemble, buttonEmerald
	}
	b.label.Color = b.accent
}

// Label returns the current label text.
func (b *Button) Label() string { return b.label.Content }

// Scale returns the current presentation scale.
func (b *Button) Scale() float64 { return b.scale }

// Contains reports whether the screen point (x, y) hits the button.
func (b *Button) Contains(x, y float64) bool { return b.Bounds.Contains(x, y) }

// SetHovered sets the hover state.
func (b *Button) SetHovered(h bool) {
	if h != b.hovered {
		b.hovered = h
		b.retarget()
	}
}

// SetPressed sets the pressed state.
func (b *Button) SetPressed(p bool) {
	if p != b.pressed {
		b.pressed = p
		b.retarget()
	}
}

func (b *Button) targetScale() float64 {
	switch {
	case b.pressed:
		return buttonPressScale
	case b.hovered:
		return buttonHoverScale
	default:
		return 1
	}
}

func (b *Button) retarget() {
	b.tween = NewTweenGroup(buttonTweenDuration, ease.OutQuad,
		TweenTarget{Field: &b.scale, To: b.targetScale()},
	)
}

// Update advances the hover and press animation.
func (b *Button) Update(dt float32) {
	if b.tween != nil {
		b.tween.Update(dt)
	}
}

// Draw renders the button onto dst.
func (b *Button) Draw(dst *ebiten.Image) {
	c := b.Bounds.Center()
	w, h := b.Bounds.Width*b.scale, b.Bounds.Height*b.scale
	x, y := float32(c.X-w/2), float32(c.Y-h/2)
	fw, fh := float32(w), float32(h)

	fill := buttonFill
	if b.hovered {
		fill = b.accent
		fill.A = 0.12
	}
	vector.DrawFilledRect(dst, x, y, fw, fh, fill.toRGBA(), true)

	border := b.accent.toRGBA()
	vector.DrawFilledRect(dst, x, y, fw, buttonBorder, border, true)
	vector.DrawFilledRect(dst, x, y+fh-buttonBorder, fw, buttonBorder, border, true)
	vector.DrawFilledRect(dst, x, y, buttonBorder, fh, border, true)
	vector.DrawFilledRect(dst, x+fw-buttonBorder, y, buttonBorder, fh, border, true)

	_, lh := b.label.Size()
	b.label.X, b.label.Y = c.X, c.Y-lh*b.scale/2
	b.label.Draw(dst, 1, b.scale, 0)
}
