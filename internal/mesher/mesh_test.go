package mesher

import (
	"errors"
	"math"
	"testing"

	"github.com/Faultbox/blockgl/internal/voxel"
)

func newTestMesher(size int) *Mesher {
	return New(size, DefaultTextureTable())
}

func TestEmptyChunk(t *testing.T) {
	m := newTestMesher(16)
	mesh := m.Build(voxel.ChunkCoord{}, voxel.NewGrid(16))
	if !mesh.Empty() {
		t.Errorf("all-air chunk should have no geometry, got %d faces", mesh.FaceCount())
	}
	if len(mesh.Vertices) != 0 || len(mesh.Indices) != 0 {
		t.Errorf("expected empty buffers, got %d vertices / %d indices", len(mesh.Vertices), len(mesh.Indices))
	}
}

func TestSingleVoxel(t *testing.T) {
	m := newTestMesher(4)
	g := voxel.NewGrid(4)
	g.Set(1, 1, 1, 1)

	mesh := m.Build(voxel.ChunkCoord{}, g)
	if mesh.FaceCount() != 6 {
		t.Fatalf("single voxel: got %d faces, want 6", mesh.FaceCount())
	}
	if len(mesh.Vertices) != 24 || len(mesh.Indices) != 36 {
		t.Fatalf("single voxel: got %d vertices / %d indices, want 24 / 36", len(mesh.Vertices), len(mesh.Indices))
	}

	want := []uint32{2, 1, 0, 2, 3, 1}
	for f := 0; f < 6; f++ {
		for i, w := range want {
			got := mesh.Indices[f*6+i]
			if got != uint32(f*4)+w {
				t.Errorf("face %d index %d = %d, want %d", f, i, got, uint32(f*4)+w)
			}
		}
	}
}

func TestAdjacentVoxelsShareHiddenFace(t *testing.T) {
	m := newTestMesher(4)
	g := voxel.NewGrid(4)
	g.Set(1, 1, 1, 1)
	g.Set(2, 1, 1, 1)

	mesh := m.Build(voxel.ChunkCoord{}, g)
	if mesh.FaceCount() != 10 {
		t.Errorf("two touching voxels: got %d faces, want 10", mesh.FaceCount())
	}
}

func TestFullChunkEmitsOnlyShell(t *testing.T) {
	const size = 16
	m := newTestMesher(size)
	g := voxel.NewGrid(size)
	g.Fill(1)

	mesh := m.Build(voxel.ChunkCoord{}, g)

	wantFaces := 6 * size * size
	if mesh.FaceCount() != wantFaces {
		t.Fatalf("full chunk: got %d faces, want %d", mesh.FaceCount(), wantFaces)
	}

	// Every emitted face lies on the outer shell of the chunk.
	lo := float32(-0.5)
	hi := float32(size) - 0.5
	for f := 0; f < mesh.FaceCount(); f++ {
		v := mesh.Vertices[f*4]
		axis := -1
		for a := 0; a < 3; a++ {
			if v.Normal[a] != 0 {
				axis = a
			}
		}
		if axis < 0 {
			t.Fatalf("face %d has zero normal", f)
		}
		for j := 0; j < 4; j++ {
			p := mesh.Vertices[f*4+j].Position[axis]
			if p != lo && p != hi {
				t.Fatalf("face %d vertex %d at %v is not on the chunk boundary", f, j, mesh.Vertices[f*4+j].Position)
			}
		}
	}

	lim := m.Limits()
	if len(mesh.Vertices) > lim.Vertices || len(mesh.Indices) > lim.Indices {
		t.Errorf("full chunk exceeded bounds: %d/%d vertices, %d/%d indices",
			len(mesh.Vertices), lim.Vertices, len(mesh.Indices), lim.Indices)
	}
	if len(mesh.Vertices)*ScalarsPerVertex/len(mesh.Indices) != 6 {
		t.Errorf("scalar:index ratio = %d, want 6", len(mesh.Vertices)*ScalarsPerVertex/len(mesh.Indices))
	}
}

func TestCheckerboardWorstCase(t *testing.T) {
	const size = 8
	m := newTestMesher(size)
	g := voxel.NewGrid(size)
	solid := 0
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			for z := 0; z < size; z++ {
				if (x+y+z)%2 == 0 {
					g.Set(x, y, z, 1)
					solid++
				}
			}
		}
	}

	mesh := m.Build(voxel.ChunkCoord{}, g)
	if mesh.FaceCount() != solid*6 {
		t.Errorf("checkerboard: got %d faces, want %d", mesh.FaceCount(), solid*6)
	}
	lim := m.Limits()
	if mesh.FaceCount() > lim.Faces {
		t.Errorf("checkerboard faces %d exceed bound %d", mesh.FaceCount(), lim.Faces)
	}
}

func TestLimits(t *testing.T) {
	lim := LimitsFor(16)
	if lim.Faces != 16*16*16*6 {
		t.Errorf("Faces = %d", lim.Faces)
	}
	if lim.Vertices != lim.Faces*4 || lim.Indices != lim.Faces*6 || lim.Scalars != lim.Vertices*9 {
		t.Errorf("inconsistent limits: %+v", lim)
	}
}

func TestWorldSpacePositions(t *testing.T) {
	m := newTestMesher(16)
	g := voxel.NewGrid(16)
	g.Set(0, 0, 0, 1)

	mesh := m.Build(voxel.ChunkCoord{X: 1, Y: 0, Z: -1}, g)
	for _, v := range mesh.Vertices {
		if v.Position[0] < 15.5 || v.Position[0] > 16.5 {
			t.Fatalf("x = %f, want within voxel at 16", v.Position[0])
		}
		if v.Position[2] < -16.5 || v.Position[2] > -15.5 {
			t.Fatalf("z = %f, want within voxel at -16", v.Position[2])
		}
	}
}

func TestWindingIsOutward(t *testing.T) {
	m := newTestMesher(2)
	g := voxel.NewGrid(2)
	g.Set(0, 0, 0, 1)
	mesh := m.Build(voxel.ChunkCoord{}, g)

	for tri := 0; tri < len(mesh.Indices)/3; tri++ {
		a := mesh.Vertices[mesh.Indices[tri*3]]
		b := mesh.Vertices[mesh.Indices[tri*3+1]]
		c := mesh.Vertices[mesh.Indices[tri*3+2]]
		n := cross(sub(b.Position, a.Position), sub(c.Position, a.Position))
		d := n[0]*a.Normal[0] + n[1]*a.Normal[1] + n[2]*a.Normal[2]
		if d <= 0 {
			t.Errorf("triangle %d winds inward (dot %f)", tri, d)
		}
	}
}

func TestTextureLayers(t *testing.T) {
	table := NewTextureTable()
	table.Define(5, 10, 11, 12, 13, 14, 15)
	m := New(2, table)
	g := voxel.NewGrid(2)
	g.Set(0, 0, 0, 5)

	mesh := m.Build(voxel.ChunkCoord{}, g)
	for f := 0; f < 6; f++ {
		for j := 0; j < 4; j++ {
			v := mesh.Vertices[f*4+j]
			if v.TexCoord[2] != float32(10+f) {
				t.Errorf("face %d layer = %f, want %d", f, v.TexCoord[2], 10+f)
			}
			if v.TexCoord[0] != quadUVs[j][0] || v.TexCoord[1] != quadUVs[j][1] {
				t.Errorf("face %d vertex %d uv = %v", f, j, v.TexCoord)
			}
		}
	}
}

func TestUnknownMaterialPanics(t *testing.T) {
	m := newTestMesher(2)
	g := voxel.NewGrid(2)
	g.Set(0, 0, 0, 200)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for undefined material")
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("panic value %v is not an error", r)
		}
		var matErr *MaterialError
		if !errors.As(err, &matErr) || matErr.ID != 200 {
			t.Errorf("expected *MaterialError for id 200, got %v", err)
		}
	}()
	m.Build(voxel.ChunkCoord{}, g)
}

func TestBuriedUnknownMaterialPanics(t *testing.T) {
	m := newTestMesher(3)
	g := voxel.NewGrid(3)
	g.Fill(1)
	g.Set(1, 1, 1, 9)

	defer func() {
		r := recover()
		matErr, ok := r.(*MaterialError)
		if !ok || matErr.ID != 9 {
			t.Errorf("expected *MaterialError for id 9, got %v", r)
		}
	}()
	m.Build(voxel.ChunkCoord{}, g)
}

func TestNewRejectsOversizedChunks(t *testing.T) {
	lim := LimitsFor(MaxSize)
	if lim.Indices > math.MaxInt32 {
		t.Errorf("LimitsFor(MaxSize).Indices = %d overflows int32", lim.Indices)
	}
	if LimitsFor(MaxSize+1).Indices <= math.MaxInt32 {
		t.Errorf("MaxSize %d is not the largest fitting size", MaxSize)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for chunk size above MaxSize")
		}
	}()
	New(MaxSize+1, DefaultTextureTable())
}

func TestGridSizeMismatchPanics(t *testing.T) {
	m := newTestMesher(4)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for mismatched grid size")
		}
	}()
	m.Build(voxel.ChunkCoord{}, voxel.NewGrid(2))
}

func TestTextureTable(t *testing.T) {
	table := DefaultTextureTable()
	if !table.Defined(1) || !table.Defined(2) || table.Defined(3) {
		t.Error("default table should define 1 and 2 only")
	}
	if l, ok := table.Layer(2, FaceTop); !ok || l != 1 {
		t.Errorf("grass top = %d, %v, want 1, true", l, ok)
	}
	if _, ok := table.Layer(9, FaceTop); ok {
		t.Error("undefined id should not resolve")
	}
	if table.MaxLayer() != 3 {
		t.Errorf("MaxLayer = %d, want 3", table.MaxLayer())
	}
	if NewTextureTable().MaxLayer() != -1 {
		t.Error("empty table MaxLayer should be -1")
	}
}

func TestFaceStrings(t *testing.T) {
	if FaceRight.String() != "right" || FaceBack.String() != "back" || Face(9).String() != "invalid" {
		t.Error("unexpected face names")
	}
}

func sub(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func BenchmarkBuildFullChunk(b *testing.B) {
	m := newTestMesher(16)
	g := voxel.NewGrid(16)
	g.Fill(1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.Build(voxel.ChunkCoord{}, g)
	}
}
