package evergreen

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Filter is a full-screen post-processing pass.
type Filter interface {
	// Apply renders src into dst with the filter effect. src and dst are the
	// same size.
	Apply(src, dst *ebiten.Image)
}

// --- Kage shader sources ---
// All shaders use //kage:unit pixels. Ebitengine uses premultiplied alpha;
// shaders un-premultiply before processing and re-premultiply output.

const brightPassShaderSrc = `//kage:unit pixels
package main

var Threshold float
var Smoothing float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	if c.a == 0 {
		return vec4(0)
	}
	rgb := c.rgb / c.a
	l := dot(rgb, vec3(0.2126, 0.7152, 0.0722))
	m := smoothstep(Threshold, Threshold+Smoothing, l)
	return vec4(rgb*m*c.a, c.a*m)
}
`

const vignetteShaderSrc = `//kage:unit pixels
package main

var Offset float
var Darkness float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	uv := (dst.xy - imageDstOrigin()) / imageDstSize()
	d := distance(uv, vec2(0.5))
	v := smoothstep(0.8, Offset*0.799, d*(Darkness+Offset))
	return vec4(c.rgb*v, c.a)
}
`

const toneMapShaderSrc = `//kage:unit pixels
package main

var Exposure float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	if c.a == 0 {
		return vec4(0)
	}
	x := c.rgb / c.a * Exposure
	// ACES filmic fit.
	y := (x*(2.51*x+0.03)) / (x*(2.43*x+0.59)+0.14)
	y = clamp(y, 0, 1)
	return vec4(y*c.a, c.a)
}
`

// --- Lazy shader compilation (no sync.Once; the frame loop is single-threaded) ---

var (
	brightPassShader *ebiten.Shader
	vignetteShader   *ebiten.Shader
	toneMapShader    *ebiten.Shader
)

func compileShader(dst **ebiten.Shader, name, src string) *ebiten.Shader {
	if *dst == nil {
		s, err := ebiten.NewShader([]byte(src))
		if err != nil {
			panic("evergreen: failed to compile " + name + " shader: " + err.Error())
		}
		*dst = s
	}
	return *dst
}

func ensureBrightPassShader() *ebiten.Shader {
	return compileShader(&brightPassShader, "bright pass", brightPassShaderSrc)
}

func ensureVignetteShader() *ebiten.Shader {
	return compileShader(&vignetteShader, "vignette", vignetteShaderSrc)
}

func ensureToneMapShader() *ebiten.Shader {
	return compileShader(&toneMapShader, "tone map", toneMapShaderSrc)
}

// --- BlurFilter ---

// BlurFilter applies a Kawase iterative blur using downscale/upscale passes.
// No Kage shader needed; bilinear filtering during DrawImage does the work.
type BlurFilter struct {
	Radius int
	temps  []*ebiten.Image
	imgOp  ebiten.DrawImageOptions
}

// NewBlurFilter creates a blur filter with the given radius (in pixels).
func NewBlurFilter(radius int) *BlurFilter {
	if radius < 0 {
		radius = 0
	}
	return &BlurFilter{Radius: radius}
}

// Passes returns the number of downscale passes Apply performs.
func (f *BlurFilter) Passes() int {
	if f.Radius <= 1 {
		return 1
	}
	return int(math.Ceil(math.Log2(float64(f.Radius))))
}

// Apply renders a Kawase blur from src into dst using iterative downscale/upscale.
func (f *BlurFilter) Apply(src, dst *ebiten.Image) {
	op := &f.imgOp
	if f.Radius <= 0 {
		op.GeoM.Reset()
		op.ColorScale.Reset()
		op.Filter = ebiten.FilterNearest
		dst.DrawImage(src, op)
		return
	}

	passes := f.Passes()
	srcBounds := src.Bounds()
	w, h := srcBounds.Dx(), srcBounds.Dy()

	for len(f.temps) < passes {
		f.temps = append(f.temps, nil)
	}
	for i := passes; i < len(f.temps); i++ {
		if f.temps[i] != nil {
			f.temps[i].Deallocate()
			f.temps[i] = nil
		}
	}
	f.temps = f.temps[:passes]

	// Downscale passes: each half-size.
	current := src
	for i := 0; i < passes; i++ {
		w = max(w/2, 1)
		h = max(h/2, 1)
		if f.temps[i] == nil || f.temps[i].Bounds().Dx() != w || f.temps[i].Bounds().Dy() != h {
			if f.temps[i] != nil {
				f.temps[i].Deallocate()
			}
			f.temps[i] = ebiten.NewImage(w, h)
		} else {
			f.temps[i].Clear()
		}
		drawScaled(f.temps[i], current, op)
		current = f.temps[i]
	}

	// Upscale passes back through the chain.
	for i := passes - 2; i >= 0; i-- {
		f.temps[i].Clear()
		drawScaled(f.temps[i], current, op)
		current = f.temps[i]
	}
	drawScaled(dst, current, op)
}

// drawScaled draws src stretched over all of dst with bilinear filtering.
func drawScaled(dst, src *ebiten.Image, op *ebiten.DrawImageOptions) {
	op.GeoM.Reset()
	op.ColorScale.Reset()
	sb, db := src.Bounds(), dst.Bounds()
	op.GeoM.Scale(float64(db.Dx())/float64(sb.Dx()), float64(db.Dy())/float64(sb.Dy()))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(src, op)
}

// --- BloomFilter ---

// BloomFilter extracts pixels brighter than Threshold, blurs them, and adds
// them back over the source scaled by Intensity.
type BloomFilter struct {
	Threshold float64
	Smoothing float64
	Intensity float64

	blur     *BlurFilter
	bright   *ebiten.Image
	glow     *ebiten.Image
	uniforms map[string]any
	shaderOp ebiten.DrawRectShaderOptions
	imgOp    ebiten.DrawImageOptions

	lastThreshold, lastSmoothing float64
}

// NewBloomFilter creates a bloom filter.
func NewBloomFilter(threshold, smoothing, intensity float64, radius int) *BloomFilter {
	f := &BloomFilter{
		Threshold: threshold,
		Smoothing: smoothing,
		Intensity: intensity,
		blur:      NewBlurFilter(radius),
		uniforms:  make(map[string]any, 2),
	}
	f.syncUniforms()
	return f
}

// syncUniforms refreshes the shader uniforms when the parameters changed.
// Scalar float32 boxing allocates, so it only happens on change.
func (f *BloomFilter) syncUniforms() {
	if f.uniforms["Threshold"] != nil && f.lastThreshold == f.Threshold && f.lastSmoothing == f.Smoothing {
		return
	}
	f.uniforms["Threshold"] = float32(f.Threshold)
	f.uniforms["Smoothing"] = float32(f.Smoothing)
	f.lastThreshold, f.lastSmoothing = f.Threshold, f.Smoothing
}

// Apply draws src into dst with the glow added.
func (f *BloomFilter) Apply(src, dst *ebiten.Image) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	f.bright = ensureImage(f.bright, w, h)
	f.glow = ensureImage(f.glow, w, h)

	f.syncUniforms()
	f.shaderOp.Images[0] = src
	f.shaderOp.Uniforms = f.uniforms
	f.bright.DrawRectShader(w, h, ensureBrightPassShader(), &f.shaderOp)
	f.blur.Apply(f.bright, f.glow)

	op := &f.imgOp
	op.GeoM.Reset()
	op.ColorScale.Reset()
	op.Blend = ebiten.BlendSourceOver
	dst.DrawImage(src, op)
	op.ColorScale.ScaleAlpha(float32(f.Intensity))
	op.Blend = ebiten.BlendLighter
	dst.DrawImage(f.glow, op)
}

// ensureImage returns img cleared, or a new image when img is nil or the
// wrong size.
func ensureImage(img *ebiten.Image, w, h int) *ebiten.Image {
	if img != nil {
		b := img.Bounds()
		if b.Dx() == w && b.Dy() == h {
			img.Clear()
			return img
		}
		img.Deallocate()
	}
	return ebiten.NewImage(w, h)
}

// --- VignetteFilter ---

// VignetteFilter darkens the screen edges.
type VignetteFilter struct {
	Offset   float64
	Darkness float64
	uniforms map[string]any
	shaderOp ebiten.DrawRectShaderOptions
}

// NewVignetteFilter creates a vignette filter.
func NewVignetteFilter(offset, darkness float64) *VignetteFilter {
	f := &VignetteFilter{Offset: offset, Darkness: darkness, uniforms: make(map[string]any, 2)}
	f.uniforms["Offset"] = float32(offset)
	f.uniforms["Darkness"] = float32(darkness)
	return f
}

// Apply renders src into dst with darkened edges.
func (f *VignetteFilter) Apply(src, dst *ebiten.Image) {
	b := src.Bounds()
	f.shaderOp.Images[0] = src
	f.shaderOp.Uniforms = f.uniforms
	dst.DrawRectShader(b.Dx(), b.Dy(), ensureVignetteShader(), &f.shaderOp)
}

// --- ToneMapFilter ---

// ToneMapFilter scales colors by Exposure and compresses them with a filmic
// curve.
type ToneMapFilter struct {
	Exposure float64
	uniforms map[string]any
	shaderOp ebiten.DrawRectShaderOptions
}

// NewToneMapFilter creates a tone mapping filter.
func NewToneMapFilter(exposure float64) *ToneMapFilter {
	f := &ToneMapFilter{Exposure: exposure, uniforms: make(map[string]any, 1)}
	f.uniforms["Exposure"] = float32(exposure)
	return f
}

// Apply renders the tone-mapped src into dst.
func (f *ToneMapFilter) Apply(src, dst *ebiten.Image) {
	b := src.Bounds()
	f.shaderOp.Images[0] = src
	f.shaderOp.Uniforms = f.uniforms
	dst.DrawRectShader(b.Dx(), b.Dy(), ensureToneMapShader(), &f.shaderOp)
}

// ToneMap is the CPU form of the filmic curve ToneMapFilter applies after
// exposure. Sinks without shaders use it directly.
func ToneMap(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return clamp((x*(2.51*x+0.03))/(x*(2.43*x+0.59)+0.14), 0, 1)
}

// ToneMapColor maps each color channel of c through ToneMap, so overbright
// colors keep their differences instead of clipping at 1. Alpha is kept.
func ToneMapColor(c Color) Color {
	return Color{
		R: float32(ToneMap(float64(c.R))),
		G: float32(ToneMap(float64(c.G))),
		B: float32(ToneMap(float64(c.B))),
		A: c.A,
	}
}

// --- Filter chain ---

// applyFilters runs a filter chain on src, ping-ponging between two pooled
// images. src is never written. The returned image is pooled; the caller
// releases it along with the returned scratch image (which may be nil).
func applyFilters(filters []Filter, src *ebiten.Image, pool *renderTexturePool) (result, scratch *ebiten.Image) {
	if len(filters) == 0 {
		return src, nil
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	current := src
	for _, f := range filters {
		if scratch == nil {
			scratch = pool.Acquire(w, h)
		} else {
			scratch.Clear()
		}
		f.Apply(current, scratch)
		if current == src {
			current, scratch = scratch, nil
		} else {
			current, scratch = scratch, current
		}
	}
	return current, scratch
}
