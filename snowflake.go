package evergreen

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/hajimehoshi/ebiten/v2"
)

// The snowflake is designed on a 128-unit canvas centered at the origin.
const (
	flakeDesignSize = 128.0
	flakeLineWidth  = 6.0
	flakeGlowSigma  = 5.0
)

// flakeArm lists the strokes of one arm, pointing up (negative Y), as
// (x0, y0, x1, y1) in design units: the stem, then the outer and inner
// branch pairs.
var flakeArm = [...][4]float64{
	{0, 0, 0, -50},
	{0, -40, 15, -55},
	{0, -40, -15, -55},
	{0, -25, 20, -35},
	{0, -25, -20, -35},
}

// GenerateSnowflakeBitmap renders the six-armed snowflake sprite at size x
// size pixels: white round-capped strokes over a soft blurred glow of
// themselves, on a transparent background. The result depends only on size.
func GenerateSnowflakeBitmap(size int) *image.NRGBA {
	if size <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	k := float64(size) / flakeDesignSize
	c := float64(size) / 2

	dc := gg.NewContext(size, size)
	dc.SetRGBA(1, 1, 1, 1)
	dc.SetLineWidth(flakeLineWidth * k)
	dc.SetLineCapRound()
	for arm := 0; arm < 6; arm++ {
		sin, cos := math.Sincos(float64(arm) * math.Pi / 3)
		for _, s := range flakeArm {
			x0, y0 := rotate2(s[0], s[1], sin, cos)
			x1, y1 := rotate2(s[2], s[3], sin, cos)
			dc.DrawLine(c+x0*k, c+y0*k, c+x1*k, c+y1*k)
			dc.Stroke()
		}
	}

	strokes := imaging.Clone(dc.Image())
	glow := imaging.Blur(strokes, flakeGlowSigma*k)
	return imaging.Overlay(glow, strokes, image.Point{}, 1)
}

// rotate2 rotates (x, y) clockwise on screen (Y down) by the angle whose
// sine and cosine are given.
func rotate2(x, y, sin, cos float64) (float64, float64) {
	return x*cos - y*sin, x*sin + y*cos
}

// NewSnowflakeImage uploads the snowflake bitmap as an ebiten image.
func NewSnowflakeImage(size int) *ebiten.Image {
	return ebiten.NewImageFromImage(GenerateSnowflakeBitmap(size))
}
