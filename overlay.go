package evergreen

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
)

// textPose is the animated presentation of a text block.
type textPose struct {
	Alpha   float64
	Scale   float64
	OffsetY float64
}

var (
	greetingEnter = textPose{Alpha: 0, Scale: 0.8, OffsetY: 20}
	greetingShown = textPose{Alpha: 1, Scale: 1, OffsetY: 0}
	greetingExit  = textPose{Alpha: 0, Scale: 0.9, OffsetY: -20}
)

const (
	greetingInDuration  = 1.2
	greetingOutDuration = 0.8
	subtitleDelay       = 0.8
	subtitleDuration    = 1.0

	overlayMargin = 24
)

var (
	headerColor   = Color{0.83, 0.69, 0.22, 0.9}
	titleColor    = Color{1, 0.84, 0, 1}
	subtitleColor = Color{0.9, 1, 1, 0.8}
)

// Overlay draws the header, the greeting and the FPS readout over the scene.
// The greeting enters and leaves with gween tweens whenever SetVisible flips.
type Overlay struct {
	cfg   OverlayConfig
	fonts *fontSet

	header   Label
	title    Label
	subtitle Label

	greeting      textPose
	subtitleAlpha float64
	greetingTween *TweenGroup
	subtitleTween *TweenGroup
	visible       bool

	fps *fpsWidget
}

// NewOverlay loads the fonts and returns an overlay with the greeting hidden.
func NewOverlay(cfg OverlayConfig) (*Overlay, error) {
	fonts, err := loadFontSet()
	if err != nil {
		return nil, err
	}
	o := &Overlay{
		cfg:      cfg,
		fonts:    fonts,
		header:   Label{Content: cfg.Header, Font: fonts.header, Color: headerColor},
		title:    Label{Content: cfg.Title, Font: fonts.title, Align: TextAlignCenter, Color: titleColor},
		subtitle: Label{Content: cfg.Subtitle, Font: fonts.subtitle, Align: TextAlignCenter, Color: subtitleColor},
		greeting: greetingEnter,
	}
	if cfg.ShowFPS {
		o.fps = newFPSWidget()
	}
	return o, nil
}

// Visible reports whether the greeting is shown or entering.
func (o *Overlay) Visible() bool { return o.visible }

// Animating reports whether a greeting tween is still running.
func (o *Overlay) Animating() bool {
	return (o.greetingTween != nil && !o.greetingTween.Done) ||
		(o.subtitleTween != nil && !o.subtitleTween.Done)
}

// SetVisible starts the entry or exit animation of the greeting. Calls that
// do not change visibility are ignored, so a running animation is never
// restarted.
func (o *Overlay) SetVisible(show bool) {
	if show == o.visible {
		return
	}
	o.visible = show
	if show {
		o.greeting = greetingEnter
		o.subtitleAlpha = 0
		o.greetingTween = o.poseTween(greetingShown, greetingInDuration, ease.OutCubic)
		o.subtitleTween = NewTweenGroup(subtitleDuration, ease.OutCubic,
			TweenTarget{Field: &o.subtitleAlpha, To: 1},
		).WithDelay(subtitleDelay)
		return
	}
	o.greetingTween = o.poseTween(greetingExit, greetingOutDuration, ease.InOutQuad)
	o.subtitleTween = nil
}

func (o *Overlay) poseTween(to textPose, duration float32, fn ease.TweenFunc) *TweenGroup {
	return NewTweenGroup(duration, fn,
		TweenTarget{Field: &o.greeting.Alpha, To: to.Alpha},
		TweenTarget{Field: &o.greeting.Scale, To: to.Scale},
		TweenTarget{Field: &o.greeting.OffsetY, To: to.OffsetY},
	)
}

// Update advances the tweens by dt seconds.
func (o *Overlay) Update(dt float32) {
	if o.greetingTween != nil {
		o.greetingTween.Update(dt)
	}
	if o.subtitleTween != nil {
		o.subtitleTween.Update(dt)
	}
	if o.fps != nil {
		o.fps.update(float64(dt))
	}
}

// Layout positions the text blocks for a w×h screen.
func (o *Overlay) Layout(w, h int) {
	o.header.X, o.header.Y = overlayMargin, overlayMargin
	o.title.X, o.title.Y = float64(w)/2, float64(h)*0.18
	_, th := o.title.Size()
	o.subtitle.X, o.subtitle.Y = float64(w)/2, o.title.Y+th+16
}

// Draw renders the overlay onto dst.
func (o *Overlay) Draw(dst *ebiten.Image) {
	o.header.Draw(dst, 1, 1, 0)
	if g := o.greeting; g.Alpha > 0 {
		o.title.Draw(dst, g.Alpha, g.Scale, g.OffsetY)
		o.subtitle.Draw(dst, g.Alpha*o.subtitleAlpha, 1, g.OffsetY)
	}
	if o.fps != nil {
		o.fps.draw(dst)
	}
}
