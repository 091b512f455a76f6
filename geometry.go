package evergreen

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Geometry is a flat-shaded triangle mesh in model space. Every face owns its
// vertices so each carries the face normal. UVs are in [0, 1] and are only
// meaningful for textured geometry.
type Geometry struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       [][2]float32
	Indices   []uint16
	// Faces lists each planar face as (first vertex, vertex count). Geometry
	// without faces is drawn double-sided.
	Faces [][2]int
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int { return len(g.Positions) }

// IndexCount returns the number of indices.
func (g *Geometry) IndexCount() int { return len(g.Indices) }

// convexHullFaces builds a flat-shaded convex polyhedron from its corner
// vertices and its face normal directions: each face is made of the corners
// that lie furthest along its normal, ordered around it and fanned into
// triangles.
func convexHullFaces(corners []mgl32.Vec3, normals []mgl32.Vec3, radius float32) *Geometry {
	g := &Geometry{}
	type cand struct {
		p     mgl32.Vec3
		angle float64
	}
	var face []cand
	for _, n := range normals {
		n = n.Normalize()
		best := float32(math.Inf(-1))
		for _, c := range corners {
			best = max(best, c.Dot(n))
		}
		face = face[:0]
		for _, c := range corners {
			if best-c.Dot(n) < 1e-4 {
				face = append(face, cand{p: c})
			}
		}
		var center mgl32.Vec3
		for _, c := range face {
			center = center.Add(c.p)
		}
		center = center.Mul(1 / float32(len(face)))

		// Build a basis on the face plane and sort corners by angle.
		u := face[0].p.Sub(center).Normalize()
		v := n.Cross(u)
		for i := range face {
			d := face[i].p.Sub(center)
			face[i].angle = math.Atan2(float64(d.Dot(v)), float64(d.Dot(u)))
		}
		sort.Slice(face, func(i, j int) bool { return face[i].angle < face[j].angle })

		base := uint16(len(g.Positions))
		g.Faces = append(g.Faces, [2]int{int(base), len(face)})
		for _, c := range face {
			g.Positions = append(g.Positions, c.p.Normalize().Mul(radius))
			g.Normals = append(g.Normals, n)
			g.UVs = append(g.UVs, [2]float32{0.5, 0.5})
		}
		for k := 1; k+1 < len(face); k++ {
			g.Indices = append(g.Indices, base, base+uint16(k), base+uint16(k+1))
		}
	}
	return g
}

// NewOctahedron returns a regular octahedron with the given circumradius.
func NewOctahedron(radius float32) *Geometry {
	corners := []mgl32.Vec3{
		{1, 0, 0}, {-1, 0, 0},
		{0, 1, 0}, {0, -1, 0},
		{0, 0, 1}, {0, 0, -1},
	}
	var normals []mgl32.Vec3
	for _, x := range []float32{-1, 1} {
		for _, y := range []float32{-1, 1} {
			for _, z := range []float32{-1, 1} {
				normals = append(normals, mgl32.Vec3{x, y, z})
			}
		}
	}
	return convexHullFaces(corners, normals, radius)
}

// NewDodecahedron returns a regular dodecahedron with the given circumradius.
func NewDodecahedron(radius float32) *Geometry {
	phi := float32((1 + math.Sqrt(5)) / 2)
	ip := 1 / phi
	var corners []mgl32.Vec3
	for _, x := range []float32{-1, 1} {
		for _, y := range []float32{-1, 1} {
			for _, z := range []float32{-1, 1} {
				corners = append(corners, mgl32.Vec3{x, y, z})
			}
		}
	}
	for _, a := range []float32{-1, 1} {
		for _, b := range []float32{-1, 1} {
			corners = append(corners,
				mgl32.Vec3{0, a * ip, b * phi},
				mgl32.Vec3{a * ip, b * phi, 0},
				mgl32.Vec3{a * phi, 0, b * ip},
			)
		}
	}
	// Face normals of a dodecahedron point at the corners of the dual
	// icosahedron.
	var normals []mgl32.Vec3
	for _, a := range []float32{-1, 1} {
		for _, b := range []float32{-1, 1} {
			normals = append(normals,
				mgl32.Vec3{0, a * phi, b},
				mgl32.Vec3{a, 0, b * phi},
				mgl32.Vec3{a * phi, b, 0},
			)
		}
	}
	return convexHullFaces(corners, normals, radius)
}

// NewRing returns a flat annulus in the XZ plane with the given radius and
// half-thickness, split into segments quads. Normals face +Y.
func NewRing(radius, thickness float32, segments int) *Geometry {
	segments = max(segments, 3)
	g := &Geometry{}
	inner, outer := radius-thickness, radius+thickness
	for i := 0; i <= segments; i++ {
		a := float64(i) / float64(segments) * 2 * math.Pi
		s, c := float32(math.Sin(a)), float32(math.Cos(a))
		g.Positions = append(g.Positions, mgl32.Vec3{c * inner, 0, s * inner}, mgl32.Vec3{c * outer, 0, s * outer})
		g.Normals = append(g.Normals, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 1, 0})
		g.UVs = append(g.UVs, [2]float32{0.5, 0.5}, [2]float32{0.5, 0.5})
	}
	for i := 0; i < segments; i++ {
		b := uint16(i * 2)
		g.Indices = append(g.Indices, b, b+1, b+3, b, b+3, b+2)
	}
	return g
}

// NewQuad returns a unit square in the XY plane centered at the origin, with
// UVs covering the full texture.
func NewQuad(size float32) *Geometry {
	h := size / 2
	return &Geometry{
		Positions: []mgl32.Vec3{{-h, -h, 0}, {h, -h, 0}, {h, h, 0}, {-h, h, 0}},
		Normals:   []mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		UVs:       [][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}},
		Indices:   []uint16{0, 1, 2, 0, 2, 3},
	}
}
