package voxel

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSlotIndexWraps(t *testing.T) {
	for _, n := range []int{1, 3, 13} {
		for c := -40; c <= 40; c++ {
			got := SlotIndexOf(ChunkCoord{c, c, c}, n)
			if got.X < 0 || got.X >= n {
				t.Fatalf("SlotIndexOf(%d, %d) = %d, out of [0, %d)", c, n, got.X, n)
			}
			for k := -3; k <= 3; k++ {
				shifted := SlotIndexOf(ChunkCoord{c + k*n, c, c}, n)
				if shifted.X != got.X {
					t.Errorf("SlotIndexOf(%d) = %d, SlotIndexOf(%d) = %d, want equal", c, got.X, c+k*n, shifted.X)
				}
			}
		}
	}
}

func TestMod(t *testing.T) {
	tests := []struct {
		x, n, want int
	}{
		{0, 3, 0},
		{2, 3, 2},
		{3, 3, 0},
		{-1, 3, 2},
		{-3, 3, 0},
		{-4, 3, 2},
		{-13, 13, 0},
	}
	for _, tt := range tests {
		if got := Mod(tt.x, tt.n); got != tt.want {
			t.Errorf("Mod(%d, %d) = %d, want %d", tt.x, tt.n, got, tt.want)
		}
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct {
		x, n, want int
	}{
		{0, 16, 0},
		{15, 16, 0},
		{16, 16, 1},
		{-1, 16, -1},
		{-16, 16, -1},
		{-17, 16, -2},
	}
	for _, tt := range tests {
		if got := FloorDiv(tt.x, tt.n); got != tt.want {
			t.Errorf("FloorDiv(%d, %d) = %d, want %d", tt.x, tt.n, got, tt.want)
		}
	}
}

func TestChunkCoordOfFloors(t *testing.T) {
	tests := []struct {
		pos  mgl32.Vec3
		want ChunkCoord
	}{
		{mgl32.Vec3{-0.5, 0, 0}, ChunkCoord{-1, 0, 0}},
		{mgl32.Vec3{0, 15.99, 16}, ChunkCoord{0, 0, 1}},
		{mgl32.Vec3{-16, -16.01, 31}, ChunkCoord{-1, -2, 1}},
		{mgl32.Vec3{-5, 0, 0}, ChunkCoord{-1, 0, 0}},
	}
	for _, tt := range tests {
		if got := ChunkCoordOf(tt.pos, 16); got != tt.want {
			t.Errorf("ChunkCoordOf(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestSlotIndexLinearRoundTrip(t *testing.T) {
	const n = 5
	seen := make(map[int]bool)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			for z := 0; z < n; z++ {
				s := SlotIndex{x, y, z}
				i := s.Linear(n)
				if i < 0 || i >= n*n*n {
					t.Fatalf("Linear(%v) = %d out of range", s, i)
				}
				if seen[i] {
					t.Fatalf("Linear(%v) = %d collides", s, i)
				}
				seen[i] = true
				if back := SlotIndexFromLinear(i, n); back != s {
					t.Errorf("SlotIndexFromLinear(%d) = %v, want %v", i, back, s)
				}
			}
		}
	}
}

func TestCongruentCoordsShareSlot(t *testing.T) {
	a := ChunkCoord{0, 0, 0}
	b := ChunkCoord{3, 0, 0}
	if SlotIndexOf(a, 3) != SlotIndexOf(b, 3) {
		t.Errorf("%v and %v should share a slot in a store of side 3", a, b)
	}
	if SlotIndexOf(a, 3) == SlotIndexOf(ChunkCoord{1, 0, 0}, 3) {
		t.Error("neighbouring coordinates should not share a slot")
	}
}

func TestChebyshev(t *testing.T) {
	a := ChunkCoord{1, -2, 3}
	b := ChunkCoord{-1, 4, 3}
	if got := a.Chebyshev(b); got != 6 {
		t.Errorf("Chebyshev = %d, want 6", got)
	}
}
