package evergreen

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

func TestNewInstancedMeshEmpty(t *testing.T) {
	if _, err := NewInstancedMesh(NewQuad(1), 0, nil); !errors.Is(err, ErrSurfaceUnavailable) {
		t.Errorf("zero count error = %v, want ErrSurfaceUnavailable", err)
	}
	if _, err := NewInstancedMesh(nil, 4, nil); !errors.Is(err, ErrSurfaceUnavailable) {
		t.Errorf("nil geometry error = %v, want ErrSurfaceUnavailable", err)
	}
}

func TestInstancedMeshColors(t *testing.T) {
	m, err := NewInstancedMesh(NewQuad(1), 3, nil)
	if err != nil {
		t.Fatal(err)
	}
	if m.ColorAt(1) != ColorWhite {
		t.Errorf("default color = %v, want white", m.ColorAt(1))
	}
	gold := Color{1, 0.84, 0, 1}
	m.SetColorAt(1, gold)
	m.SetColorAt(-1, gold)
	m.SetColorAt(3, gold)
	if m.ColorAt(1) != gold || m.ColorAt(0) != ColorWhite || m.ColorAt(2) != ColorWhite {
		t.Error("SetColorAt should only touch the addressed in-range instance")
	}
}

func TestInstancedMeshIndices(t *testing.T) {
	geom := NewDodecahedron(1)
	m, err := NewInstancedMesh(geom, 3, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.inds) != 3*geom.IndexCount() {
		t.Fatalf("indices = %d, want %d", len(m.inds), 3*geom.IndexCount())
	}
	// The third instance's indices are offset by two instances of vertices.
	if got, want := m.inds[2*geom.IndexCount()], uint32(2*geom.VertexCount())+uint32(geom.Indices[0]); got != want {
		t.Errorf("instance 2 first index = %d, want %d", got, want)
	}
}

func faceCollapsed(face []ebiten.Vertex) bool {
	for _, v := range face {
		if v != (ebiten.Vertex{}) {
			return false
		}
	}
	return true
}

func TestInstancedMeshFillCullsBackFaces(t *testing.T) {
	geom := NewDodecahedron(1)
	m, err := NewInstancedMesh(geom, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	var xf [1]mgl32.Mat4
	composeTRS(&xf[0], mgl32.Vec3{}, 0.3, 0.2, 0.1, 2)
	m.SetTransforms(xf[:])

	if n := m.fill(newTestCamera()); n != 1 {
		t.Fatalf("fill = %d, want 1", n)
	}
	culled := 0
	for _, f := range geom.Faces {
		if faceCollapsed(m.verts[f[0] : f[0]+f[1]]) {
			culled++
		}
	}
	if culled == 0 || culled == len(geom.Faces) {
		t.Errorf("culled %d of %d faces, want some but not all", culled, len(geom.Faces))
	}
	if m.VertexCount() != geom.VertexCount() {
		t.Errorf("VertexCount = %d, want %d", m.VertexCount(), geom.VertexCount())
	}
}

func TestInstancedMeshBehindCameraCollapsed(t *testing.T) {
	m, err := NewInstancedMesh(NewOctahedron(1), 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	var xf [1]mgl32.Mat4
	composeTRS(&xf[0], mgl32.Vec3{0, 0, 40}, 0, 0, 0, 1)
	m.SetTransforms(xf[:])
	m.fill(newTestCamera())
	if !faceCollapsed(m.verts) {
		t.Error("an instance behind the camera should collapse")
	}
}

func TestInstancedMeshUnlitUsesBaseColor(t *testing.T) {
	m, err := NewInstancedMesh(NewQuad(1), 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	m.Shading.Lit = false
	m.SetColorAt(0, Color{0.5, 0.25, 1, 1})
	var xf [1]mgl32.Mat4
	composeTRS(&xf[0], mgl32.Vec3{}, 0, 0, 0, 1)
	m.SetTransforms(xf[:])
	m.fill(newTestCamera())

	v := m.verts[0]
	if v.ColorR != 0.5 || v.ColorG != 0.25 || v.ColorB != 1 || v.ColorA != 1 {
		t.Errorf("vertex color = (%v, %v, %v, %v), want the base color", v.ColorR, v.ColorG, v.ColorB, v.ColorA)
	}
}

func TestInstancedMeshTruncatesTransforms(t *testing.T) {
	m, err := NewInstancedMesh(NewOctahedron(1), 5, nil)
	if err != nil {
		t.Fatal(err)
	}
	xf := make([]mgl32.Mat4, 2)
	for i := range xf {
		composeTRS(&xf[i], mgl32.Vec3{float32(i), 0, 0}, 0, 0, 0, 1)
	}
	m.SetTransforms(xf)
	if n := m.fill(newTestCamera()); n != 2 {
		t.Errorf("fill = %d, want 2", n)
	}
	m.SetTransforms(nil)
	if n := m.fill(newTestCamera()); n != 0 {
		t.Errorf("fill with no transforms = %d, want 0", n)
	}
}

func TestShadeLitFaces(t *testing.T) {
	m, err := NewInstancedMesh(NewQuad(1), 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	base := Color{0.5, 0.5, 0.5, 1}
	toKey := m.shade(base, m.Shading.Key.Dir)
	away := m.shade(base, m.Shading.Key.Dir.Mul(-1))
	if toKey.Luminance() <= away.Luminance() {
		t.Errorf("face toward the key light (%v) should be brighter than one facing away (%v)", toKey, away)
	}
	if toKey.A != base.A {
		t.Error("shading must keep alpha")
	}
}

func TestInstancedMeshFillZeroAlloc(t *testing.T) {
	f := evalTestField(t, 500)
	arena := NewTransformArena(f.Len())
	Evaluate(f, 0.5, 1, arena)
	m, err := NewInstancedMesh(NewDodecahedron(particleRadius), f.Len(), nil)
	if err != nil {
		t.Fatal(err)
	}
	m.SetTransforms(arena.Transforms)
	cam := newTestCamera()
	allocs := testing.AllocsPerRun(20, func() {
		m.fill(cam)
	})
	if allocs != 0 {
		t.Errorf("fill allocated %v times per run, want 0", allocs)
	}
}
