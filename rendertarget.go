package evergreen

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Render texture pool ---

// renderTexturePool manages reusable offscreen ebiten.Images keyed by their
// exact dimensions. Post-processing passes need targets the same size as the
// screen, so sizes are not rounded. After warmup, Acquire/Release are
// zero-alloc.
type renderTexturePool struct {
	buckets map[uint64][]*ebiten.Image
	// live counts images handed out and not yet released.
	live int
}

// poolKey packs width and height into a single uint64.
func poolKey(w, h int) uint64 {
	return uint64(w)<<32 | uint64(h)
}

// Acquire returns a cleared offscreen image of exactly (w, h) pixels.
func (p *renderTexturePool) Acquire(w, h int) *ebiten.Image {
	w, h = max(w, 1), max(h, 1)
	key := poolKey(w, h)
	p.live++

	if p.buckets != nil {
		if stack := p.buckets[key]; len(stack) > 0 {
			img := stack[len(stack)-1]
			p.buckets[key] = stack[:len(stack)-1]
			img.Clear()
			return img
		}
	}

	return ebiten.NewImageWithOptions(
		image.Rect(0, 0, w, h),
		&ebiten.NewImageOptions{Unmanaged: true},
	)
}

// Release returns an image to the pool for reuse. The image is cleared on
// next Acquire, not here.
func (p *renderTexturePool) Release(img *ebiten.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	key := poolKey(b.Dx(), b.Dy())

	if p.buckets == nil {
		p.buckets = make(map[uint64][]*ebiten.Image)
	}
	p.buckets[key] = append(p.buckets[key], img)
	p.live--
}

// Retain drops pooled images of any size other than (w, h). Called after
// the window is resized so stale screen-sized targets are freed.
func (p *renderTexturePool) Retain(w, h int) {
	keep := poolKey(w, h)
	for key, stack := range p.buckets {
		if key == keep {
			continue
		}
		for _, img := range stack {
			img.Deallocate()
		}
		delete(p.buckets, key)
	}
}

// Dispose deallocates every pooled image.
func (p *renderTexturePool) Dispose() {
	for key, stack := range p.buckets {
		for _, img := range stack {
			img.Deallocate()
		}
		delete(p.buckets, key)
	}
}

// pooled returns the number of idle images held by the pool.
func (p *renderTexturePool) pooled() int {
	n := 0
	for _, stack := range p.buckets {
		n += len(stack)
	}
	return n
}
