package evergreen

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func checkConvexSolid(t *testing.T, g *Geometry, radius float32, faces, sides int) {
	t.Helper()
	if len(g.Faces) != faces {
		t.Fatalf("faces = %d, want %d", len(g.Faces), faces)
	}
	if g.VertexCount() != faces*sides {
		t.Fatalf("vertices = %d, want %d", g.VertexCount(), faces*sides)
	}
	if g.IndexCount() != faces*(sides-2)*3 {
		t.Fatalf("indices = %d, want %d", g.IndexCount(), faces*(sides-2)*3)
	}
	for fi, f := range g.Faces {
		if f[1] != sides {
			t.Fatalf("face %d has %d sides, want %d", fi, f[1], sides)
		}
		n := g.Normals[f[0]]
		p0 := g.Positions[f[0]]
		var center mgl32.Vec3
		for v := f[0]; v < f[0]+f[1]; v++ {
			p := g.Positions[v]
			if d := p.Len(); d < radius-1e-4 || d > radius+1e-4 {
				t.Fatalf("vertex %d at distance %v, want circumradius %v", v, d, radius)
			}
			if d := p.Sub(p0).Dot(n); d > 1e-4 || d < -1e-4 {
				t.Fatalf("face %d is not planar (offset %v)", fi, d)
			}
			if g.Normals[v] != n {
				t.Fatalf("face %d vertices do not share the face normal", fi)
			}
			center = center.Add(p)
		}
		if center.Dot(n) <= 0 {
			t.Fatalf("face %d normal points inward", fi)
		}
		// Triangles wind counter-clockwise around the outward normal.
		p1, p2 := g.Positions[f[0]+1], g.Positions[f[0]+2]
		if p1.Sub(p0).Cross(p2.Sub(p0)).Dot(n) <= 0 {
			t.Fatalf("face %d winds clockwise", fi)
		}
	}
}

func TestDodecahedron(t *testing.T) {
	checkConvexSolid(t, NewDodecahedron(0.2), 0.2, 12, 5)
}

func TestOctahedron(t *testing.T) {
	checkConvexSolid(t, NewOctahedron(0.5), 0.5, 8, 3)
}

func TestRing(t *testing.T) {
	const segments = 48
	g := NewRing(0.8, 0.03, segments)
	if g.VertexCount() != (segments+1)*2 {
		t.Fatalf("vertices = %d, want %d", g.VertexCount(), (segments+1)*2)
	}
	if g.IndexCount() != segments*6 {
		t.Fatalf("indices = %d, want %d", g.IndexCount(), segments*6)
	}
	for i, p := range g.Positions {
		if p[1] != 0 {
			t.Fatalf("vertex %d off the XZ plane: %v", i, p)
		}
		if r := p.Len(); r < 0.77-1e-5 || r > 0.83+1e-5 {
			t.Fatalf("vertex %d radius %v outside the annulus", i, r)
		}
	}
	if len(g.Faces) != 0 {
		t.Error("ring should be double-sided (no faces)")
	}
	if NewRing(1, 0.1, 1).VertexCount() != 8 {
		t.Error("ring should use at least 3 segments")
	}
}

func TestQuad(t *testing.T) {
	g := NewQuad(1)
	if g.VertexCount() != 4 || g.IndexCount() != 6 {
		t.Fatalf("quad = %d vertices, %d indices", g.VertexCount(), g.IndexCount())
	}
	for i, uv := range g.UVs {
		if uv[0] < 0 || uv[0] > 1 || uv[1] < 0 || uv[1] > 1 {
			t.Fatalf("uv %d = %v outside [0, 1]", i, uv)
		}
	}
	if g.Positions[2] != (mgl32.Vec3{0.5, 0.5, 0}) {
		t.Errorf("corner = %v, want (0.5, 0.5, 0)", g.Positions[2])
	}
}
