package evergreen

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
)

// Font is the interface for text measurement and layout.
type Font interface {
	MeasureString(text string) (width, height float64)
	LineHeight() float64
}

// TextAlign controls horizontal alignment of multi-line text.
type TextAlign uint8

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

func (a TextAlign) textAlign() text.Align {
	switch a {
	case TextAlignCenter:
		return text.AlignCenter
	case TextAlignRight:
		return text.AlignEnd
	default:
		return text.AlignStart
	}
}

// --- TTFFont ---

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face   *text.GoTextFace
	source *text.GoTextFaceSource
	size   float64
	lh     float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("evergreen: failed to parse TTF data: %w", err)
	}

	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}

	m := face.Metrics()
	lh := m.HAscent + m.HDescent + m.HLineGap

	return &TTFFont{
		face:   face,
		source: source,
		size:   size,
		lh:     lh,
	}, nil
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Face returns the underlying GoTextFace for direct Ebitengine text/v2 rendering.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}

// --- Label ---

// Label is a block of text drawn at an anchor point. X and Y name the top
// of the block; Align decides whether X is its left edge, center or right
// edge.
type Label struct {
	Content string
	Font    *TTFFont
	Align   TextAlign
	Color   Color
	X, Y    float64

	op text.DrawOptions
}

// Draw renders the label onto dst with its color faded by alpha and the whole
// block scaled by scale around its anchor. yOffset shifts it vertically.
func (l *Label) Draw(dst *ebiten.Image, alpha, scale, yOffset float64) {
	if l.Font == nil || l.Content == "" || alpha <= 0 {
		return
	}
	op := &l.op
	op.GeoM.Reset()
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(l.X, l.Y+yOffset)
	op.ColorScale.Reset()
	c := l.Color
	op.ColorScale.Scale(c.R*c.A, c.G*c.A, c.B*c.A, c.A)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.LayoutOptions.LineSpacing = l.Font.LineHeight()
	op.LayoutOptions.PrimaryAlign = l.Align.textAlign()
	text.Draw(dst, l.Content, l.Font.Face(), op)
}

// Size returns the unscaled size of the label's text block.
func (l *Label) Size() (w, h float64) {
	if l.Font == nil {
		return 0, 0
	}
	return l.Font.MeasureString(l.Content)
}

// --- Font set ---

// fontSet holds the faces used by the overlay, all built from the Go fonts.
type fontSet struct {
	header   *TTFFont
	title    *TTFFont
	subtitle *TTFFont
	button   *TTFFont
}

func loadFontSet() (*fontSet, error) {
	var fs fontSet
	var err error
	if fs.header, err = LoadTTFFont(gosmallcaps.TTF, 14); err != nil {
		return nil, err
	}
	if fs.title, err = LoadTTFFont(goitalic.TTF, 72); err != nil {
		return nil, err
	}
	if fs.subtitle, err = LoadTTFFont(goregular.TTF, 16); err != nil {
		return nil, err
	}
	if fs.button, err = LoadTTFFont(gobold.TTF, 15); err != nil {
		return nil, err
	}
	return &fs, nil
}
