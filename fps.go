package evergreen

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is the number of seconds between readout refreshes.
const fpsRefresh = 0.5

// fpsWidget displays the current FPS and TPS in the top-right corner. It
// redraws its image every fpsRefresh seconds with ebitenutil.DebugPrint.
type fpsWidget struct {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	img     *ebiten.Image
	elapsed float64
	op      ebiten.DrawImageOptions
}

func newFPSWidget() *fpsWidget {
	return &fpsWidget{elapsed: fpsRefresh}
}

func (w *fpsWidget) update(dt float64) {
	w.elapsed += dt
	if w.elapsed < fpsRefresh {
		return
	}
	w.elapsed = 0

	if w.img == nil {
		w.img = ebiten.NewImage(100, 32)
	}
	w.img.Clear()
	// Semi-transparent background for readability
	w.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(w.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}

func (w *fpsWidget) draw(dst *ebiten.Image) {
	if w.img == nil {
		return
	}
	w.op.GeoM.Reset()
	w.op.GeoM.Translate(float64(dst.Bounds().Dx()-w.img.Bounds().Dx()-overlayMargin), overlayMargin)
	dst.DrawImage(w.img, &w.op)
}
