package evergreen

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/fogleman/gg"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// particleRadius is the circumradius of a particle at scale 1.
	particleRadius = 0.2
	starRadius     = 0.5
	haloRadius     = 0.8
	haloThickness  = 0.03
	haloSegments   = 48
	haloOpacity    = 0.5
	snowOpacity    = 0.9
	glowDotSize    = 32
	// sparkleExtent is the quad size of a sparkle relative to its point size;
	// the glow texture fades out well inside the quad.
	sparkleExtent = 2
)

// renderer holds the GPU side of a scene: one instanced mesh per population,
// the sparkle batch, the post-processing chain and its render targets.
type renderer struct {
	particles *InstancedMesh
	star      *InstancedMesh
	halo      *InstancedMesh
	snow      *InstancedMesh
	sparkles  *pointBatch

	flake *ebiten.Image
	dot   *ebiten.Image

	starXf [1]mgl32.Mat4
	haloXf [1]mgl32.Mat4

	filters    []Filter
	pool       renderTexturePool
	background color.RGBA
	blitOp     ebiten.DrawImageOptions
}

// newRenderer builds the meshes for every population of s. Colors are set
// here once; only transforms change per frame. An empty particle field has
// nothing to draw and fails with ErrSurfaceUnavailable. Empty secondary
// populations are skipped.
func newRenderer(s *Scene) (*renderer, error) {
	r := &renderer{background: s.background.toRGBA()}

	particles, err := NewInstancedMesh(NewDodecahedron(particleRadius), s.field.Len(), nil)
	if err != nil {
		return nil, fmt.Errorf("particles: %w", err)
	}
	for i := range s.field.Particles {
		particles.SetColorAt(i, s.field.Particles[i].Color)
	}
	particles.SetTransforms(s.arena.Transforms)
	r.particles = particles

	if r.star, err = NewInstancedMesh(NewOctahedron(starRadius), 1, nil); err != nil {
		return nil, fmt.Errorf("star: %w", err)
	}
	r.star.Shading.Lit = false
	r.star.SetTransforms(r.starXf[:])

	if r.halo, err = NewInstancedMesh(NewRing(haloRadius, haloThickness, haloSegments), 1, nil); err != nil {
		return nil, fmt.Errorf("halo: %w", err)
	}
	r.halo.Shading.Lit = false
	r.halo.Blend = ebiten.BlendLighter
	r.halo.SetTransforms(r.haloXf[:])

	if n := s.snow.Len(); n > 0 {
		flakeColor, err := ParseColor(s.cfg.Snow.Color)
		if err != nil {
			return nil, fmt.Errorf("snow: %w", err)
		}
		flakeColor.A = snowOpacity
		r.flake = NewSnowflakeImage(s.cfg.Snow.FlakeSize)
		if r.snow, err = NewInstancedMesh(NewQuad(1), n, r.flake); err != nil {
			return nil, fmt.Errorf("snow: %w", err)
		}
		r.snow.Shading.Lit = false
		r.snow.Blend = ebiten.BlendLighter
		for i := 0; i < n; i++ {
			r.snow.SetColorAt(i, flakeColor)
		}
		r.snow.SetTransforms(s.snow.Arena().Transforms)
	}

	if n := s.sparkles.Len(); n > 0 {
		r.dot = ebiten.NewImageFromImage(generateGlowDot(glowDotSize))
		r.sparkles = newPointBatch(n, r.dot)
	}

	if p := s.cfg.Post; p.Enabled {
		r.filters = []Filter{
			NewBloomFilter(p.BloomThreshold, p.BloomSmoothing, p.BloomIntensity, p.BloomRadius),
			NewToneMapFilter(p.Exposure),
			NewVignetteFilter(p.VignetteOffset, p.VignetteDarkness),
		}
	}
	return r, nil
}

// draw renders the 3D layer of s onto screen, through the post chain when
// one is configured.
func (r *renderer) draw(s *Scene, screen *ebiten.Image) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	b := screen.Bounds()
	w, h := b.Dx(), b.Dy()

	target := screen
	var offscreen *ebiten.Image
	if len(r.filters) > 0 {
		offscreen = r.pool.Acquire(w, h)
		target = offscreen
	}
	target.Fill(r.background)

	cam := s.camera
	calls, instances, verts := 0, 0, 0
	drawMesh := func(m *InstancedMesh) {
		if m == nil {
			return
		}
		m.Draw(target, cam)
		calls++
		instances += m.visible
		verts += m.VertexCount()
	}

	drawMesh(r.snow)
	drawMesh(r.particles)
	if s.star.Visible() {
		r.updateStar(s.star)
		drawMesh(r.star)
		drawMesh(r.halo)
	}
	if r.sparkles != nil {
		sp := s.sparkles
		n := r.sparkles.draw(target, cam, sp.Positions, sp.Alpha, sp.Color, sp.Size()*sparkleExtent)
		calls++
		instances += n
		verts += n * 4
	}

	if s.debug {
		s.stats.drawTime = time.Since(t0)
		s.stats.drawCallCount = calls
		s.stats.instanceCount = instances
		s.stats.vertexCount = verts
		t0 = time.Now()
	}

	if offscreen == nil {
		return
	}
	result, scratch := applyFilters(r.filters, offscreen, &r.pool)
	r.blitOp.GeoM.Reset()
	screen.DrawImage(result, &r.blitOp)
	if result != offscreen {
		r.pool.Release(result)
	}
	r.pool.Release(scratch)
	r.pool.Release(offscreen)

	if s.debug {
		s.stats.filterTime = time.Since(t0)
	}
}

// updateStar copies the star's transform and pulse into its meshes. The ring
// geometry already lies in the XZ plane, so the halo shares the star's
// transform and wobbles with it. Vertex colors clip at 1, so the pulse is
// tone mapped first.
func (r *renderer) updateStar(st *Star) {
	glow := ToneMapColor(st.Emissive())
	r.starXf[0] = *st.Transform()
	r.haloXf[0] = r.starXf[0]
	r.star.SetColorAt(0, glow)
	glow.A = haloOpacity
	r.halo.SetColorAt(0, glow)
}

func (r *renderer) dispose() {
	r.pool.Dispose()
	if r.flake != nil {
		r.flake.Deallocate()
	}
	if r.dot != nil {
		r.dot.Deallocate()
	}
}

// --- Sparkle point batch ---

// pointBatch draws camera-facing textured quads of a fixed pixel size, one
// per point, in a single DrawTriangles32 call with additive blending.
type pointBatch struct {
	image *ebiten.Image
	verts []ebiten.Vertex
	inds  []uint32
	op    ebiten.DrawTrianglesOptions
}

func newPointBatch(n int, img *ebiten.Image) *pointBatch {
	p := &pointBatch{
		image: img,
		verts: make([]ebiten.Vertex, n*4),
		inds:  make([]uint32, 0, n*6),
	}
	for i := 0; i < n; i++ {
		b := uint32(i * 4)
		p.inds = append(p.inds, b, b+1, b+2, b, b+2, b+3)
	}
	p.op.Blend = ebiten.BlendLighter
	return p
}

// draw projects the points through cam and returns how many were drawn.
// Points behind the camera collapse to nothing.
func (p *pointBatch) draw(dst *ebiten.Image, cam *Camera, positions []mgl32.Vec3, alpha []float32, c Color, size float64) int {
	n := min(len(positions), len(alpha), len(p.verts)/4)
	if n == 0 {
		return 0
	}
	ib := p.image.Bounds()
	iw, ih := float32(ib.Dx()), float32(ib.Dy())
	half := float32(size / 2)

	for i := 0; i < n; i++ {
		q := p.verts[i*4 : i*4+4]
		sx, sy, ok := cam.WorldToScreen(positions[i])
		if !ok {
			collapse(q)
			continue
		}
		x, y := float32(sx), float32(sy)
		q[0].DstX, q[0].DstY, q[0].SrcX, q[0].SrcY = x-half, y-half, 0, 0
		q[1].DstX, q[1].DstY, q[1].SrcX, q[1].SrcY = x+half, y-half, iw, 0
		q[2].DstX, q[2].DstY, q[2].SrcX, q[2].SrcY = x+half, y+half, iw, ih
		q[3].DstX, q[3].DstY, q[3].SrcX, q[3].SrcY = x-half, y+half, 0, ih
		tint := c
		tint.A *= alpha[i]
		for v := range q {
			setVertexColor(&q[v], tint)
		}
	}
	dst.DrawTriangles32(p.verts[:n*4], p.inds[:n*6], p.image, &p.op)
	return n
}

// generateGlowDot renders a soft white disc that fades to transparent at its
// edge, used as the sparkle sprite.
func generateGlowDot(size int) image.Image {
	c := float64(size) / 2
	dc := gg.NewContext(size, size)
	grad := gg.NewRadialGradient(c, c, 0, c, c, c)
	grad.AddColorStop(0, color.NRGBA{255, 255, 255, 255})
	grad.AddColorStop(0.35, color.NRGBA{255, 255, 255, 140})
	grad.AddColorStop(1, color.NRGBA{255, 255, 255, 0})
	dc.SetFillStyle(grad)
	dc.DrawCircle(c, c, c)
	dc.Fill()
	return dc.Image()
}
