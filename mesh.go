package evergreen

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// Light is a directional light. Dir points from the scene toward the light.
type Light struct {
	Dir       mgl32.Vec3
	Color     Color
	Intensity float32
}

// Shading controls how an InstancedMesh is lit. An unlit mesh uses the
// instance color as is.
type Shading struct {
	Lit     bool
	Ambient float32
	Key     Light
	Fill    Light
	// Emissive is added after lighting.
	Emissive Color
}

// defaultShading mirrors the scene lights: a warm gold key from the upper
// right and a green fill from below.
func defaultShading() Shading {
	return Shading{
		Lit:     true,
		Ambient: 0.45,
		Key: Light{
			Dir:       mgl32.Vec3{1, 1, 1}.Normalize(),
			Color:     Color{1, 0.84, 0, 1},
			Intensity: 0.9,
		},
		Fill: Light{
			Dir:       mgl32.Vec3{-1, -1, -1}.Normalize(),
			Color:     Color{0.31, 0.78, 0.47, 1},
			Intensity: 0.35,
		},
		Emissive: Color{0, 0.1, 0, 1}.Scale(0.1),
	}
}

// InstancedMesh draws one Geometry many times with a per-instance transform
// and color in a single DrawTriangles32 call. Colors are set once; transforms
// are replaced every frame. Vertex and index buffers are allocated at
// construction and reused, so Draw does not allocate.
type InstancedMesh struct {
	geom    *Geometry
	count   int
	image   *ebiten.Image
	Shading Shading
	// Blend is the compositing operation used to draw the mesh.
	Blend ebiten.Blend

	colors     []Color
	transforms []mgl32.Mat4
	visible    int

	verts []ebiten.Vertex
	inds  []uint32
	op    ebiten.DrawTrianglesOptions
}

// NewInstancedMesh creates a mesh for count instances of geom. img is the
// texture sampled through the geometry UVs; nil uses a white pixel. An empty
// population has nothing to draw and reports ErrSurfaceUnavailable.
func NewInstancedMesh(geom *Geometry, count int, img *ebiten.Image) (*InstancedMesh, error) {
	if count <= 0 || geom == nil || geom.VertexCount() == 0 {
		return nil, fmt.Errorf("instanced mesh of %d instances: %w", count, ErrSurfaceUnavailable)
	}
	if img == nil {
		img = ensureWhitePixel()
	}
	m := &InstancedMesh{
		geom:    geom,
		count:   count,
		image:   img,
		Shading: defaultShading(),
		Blend:   ebiten.BlendSourceOver,
		colors:  make([]Color, count),
		verts:   make([]ebiten.Vertex, count*geom.VertexCount()),
		inds:    make([]uint32, 0, count*geom.IndexCount()),
	}
	for i := range m.colors {
		m.colors[i] = ColorWhite
	}
	nv := uint32(geom.VertexCount())
	for i := 0; i < count; i++ {
		base := uint32(i) * nv
		for _, idx := range geom.Indices {
			m.inds = append(m.inds, base+uint32(idx))
		}
	}
	return m, nil
}

// Count returns the number of instances.
func (m *InstancedMesh) Count() int { return m.count }

// SetColorAt sets the color of instance i.
func (m *InstancedMesh) SetColorAt(i int, c Color) {
	if i >= 0 && i < m.count {
		m.colors[i] = c
	}
}

// ColorAt returns the color of instance i.
func (m *InstancedMesh) ColorAt(i int) Color { return m.colors[i] }

// SetTransforms installs the per-instance model matrices for the next Draw.
// The slice is referenced, not copied; instances beyond its length are not
// drawn.
func (m *InstancedMesh) SetTransforms(ts []mgl32.Mat4) {
	m.transforms = ts
}

// VertexCount returns the number of vertices submitted by the last Draw.
func (m *InstancedMesh) VertexCount() int { return m.visible * m.geom.VertexCount() }

// Draw projects every instance through cam onto dst.
func (m *InstancedMesh) Draw(dst *ebiten.Image, cam *Camera) {
	if dst == nil || cam == nil {
		return
	}
	n := m.fill(cam)
	if n == 0 {
		return
	}
	m.op.Blend = m.Blend
	m.op.AntiAlias = false
	dst.DrawTriangles32(m.verts[:n*m.geom.VertexCount()], m.inds[:n*m.geom.IndexCount()], m.image, &m.op)
}

// fill writes the vertex buffer for the current transforms and returns the
// number of instances written.
func (m *InstancedMesh) fill(cam *Camera) int {
	n := min(len(m.transforms), m.count)
	m.visible = n
	if n == 0 {
		return 0
	}
	vp := cam.ViewProjection()
	group := cam.Group()
	g := m.geom
	nv := g.VertexCount()
	imgW, imgH := m.imageSize()

	for i := 0; i < n; i++ {
		model := &m.transforms[i]
		mvp := vp.Mul4(*model)
		verts := m.verts[i*nv : (i+1)*nv]

		// Collapse instances that reach behind the near plane.
		behind := false
		for v := 0; v < nv; v++ {
			nx, ny, _, w := projectPoint(&mvp, g.Positions[v])
			if w <= cameraNear {
				behind = true
				break
			}
			sx, sy := cam.ndcToScreen(nx, ny)
			vx := &verts[v]
			vx.DstX, vx.DstY = float32(sx), float32(sy)
			vx.SrcX = g.UVs[v][0] * imgW
			vx.SrcY = g.UVs[v][1] * imgH
		}
		if behind {
			collapse(verts)
			continue
		}

		base := m.colors[i]
		if !m.Shading.Lit {
			for v := range verts {
				setVertexColor(&verts[v], base)
			}
			continue
		}
		rot := group.Mul4(*model)
		if len(g.Faces) == 0 {
			nrm := rot.Mul4x1(g.Normals[0].Vec4(0)).Vec3().Normalize()
			c := m.shade(base, nrm)
			for v := range verts {
				setVertexColor(&verts[v], c)
			}
			continue
		}
		for _, f := range g.Faces {
			face := verts[f[0] : f[0]+f[1]]
			if backFacing(face) {
				collapse(face)
				continue
			}
			nrm := rot.Mul4x1(g.Normals[f[0]].Vec4(0)).Vec3().Normalize()
			c := m.shade(base, nrm)
			for v := range face {
				setVertexColor(&face[v], c)
			}
		}
	}
	return n
}

// shade applies the lights to base for a surface with world normal nrm.
func (m *InstancedMesh) shade(base Color, nrm mgl32.Vec3) Color {
	s := &m.Shading
	k := max(nrm.Dot(s.Key.Dir), 0) * s.Key.Intensity
	f := max(nrm.Dot(s.Fill.Dir), 0) * s.Fill.Intensity
	return Color{
		R: base.R*(s.Ambient+k*s.Key.Color.R+f*s.Fill.Color.R) + s.Emissive.R,
		G: base.G*(s.Ambient+k*s.Key.Color.G+f*s.Fill.Color.G) + s.Emissive.G,
		B: base.B*(s.Ambient+k*s.Key.Color.B+f*s.Fill.Color.B) + s.Emissive.B,
		A: base.A,
	}
}

func (m *InstancedMesh) imageSize() (float32, float32) {
	b := m.image.Bounds()
	return float32(b.Dx()), float32(b.Dy())
}

// backFacing reports whether a projected face winds clockwise in NDC, which
// is counter-clockwise on screen once Y is flipped.
func backFacing(face []ebiten.Vertex) bool {
	if len(face) < 3 {
		return false
	}
	a, b, c := &face[0], &face[1], &face[2]
	area := (b.DstX-a.DstX)*(c.DstY-a.DstY) - (b.DstY-a.DstY)*(c.DstX-a.DstX)
	return area >= 0
}

// collapse turns vertices into a degenerate point so their triangles draw
// nothing while the index buffer stays fixed.
func collapse(verts []ebiten.Vertex) {
	for v := range verts {
		verts[v] = ebiten.Vertex{}
	}
}

func setVertexColor(v *ebiten.Vertex, c Color) {
	v.ColorR = clamp(c.R, 0, 1)
	v.ColorG = clamp(c.G, 0, 1)
	v.ColorB = clamp(c.B, 0, 1)
	v.ColorA = clamp(c.A, 0, 1)
}

// --- White pixel singleton (no sync.Once; the frame loop is single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
// Used by untextured meshes.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}
