package voxel

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ChunkCoord is a position in chunk space. One unit is one chunk edge.
type ChunkCoord struct {
	X, Y, Z int
}

// String implements fmt.Stringer.
func (c ChunkCoord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Add returns c + o.
func (c ChunkCoord) Add(o ChunkCoord) ChunkCoord {
	return ChunkCoord{c.X + o.X, c.Y + o.Y, c.Z + o.Z}
}

// Origin returns the world-space voxel coordinate of the chunk's (0,0,0) corner.
func (c ChunkCoord) Origin(chunkSize int) (x, y, z int) {
	return c.X * chunkSize, c.Y * chunkSize, c.Z * chunkSize
}

// Chebyshev returns the cube distance between two chunk coordinates.
func (c ChunkCoord) Chebyshev(o ChunkCoord) int {
	return max(absInt(c.X-o.X), absInt(c.Y-o.Y), absInt(c.Z-o.Z))
}

// SlotIndex addresses one cell of the toroidal store. Every axis is in [0, LoadSize).
type SlotIndex struct {
	X, Y, Z int
}

// Linear flattens the index for a store of side n.
func (s SlotIndex) Linear(n int) int {
	return (s.X*n+s.Y)*n + s.Z
}

// SlotIndexFromLinear is the inverse of SlotIndex.Linear.
func SlotIndexFromLinear(i, n int) SlotIndex {
	return SlotIndex{
		X: i / (n * n),
		Y: (i / n) % n,
		Z: i % n,
	}
}

// ChunkCoordOf converts a world position to the chunk containing it.
// Division is floored, so -0.5 lands in chunk -1.
func ChunkCoordOf(pos mgl32.Vec3, chunkSize int) ChunkCoord {
	size := float64(chunkSize)
	return ChunkCoord{
		X: int(math.Floor(float64(pos.X()) / size)),
		Y: int(math.Floor(float64(pos.Y()) / size)),
		Z: int(math.Floor(float64(pos.Z()) / size)),
	}
}

// SlotIndexOf wraps a chunk coordinate into a store of side loadSize.
func SlotIndexOf(c ChunkCoord, loadSize int) SlotIndex {
	return SlotIndex{
		X: Mod(c.X, loadSize),
		Y: Mod(c.Y, loadSize),
		Z: Mod(c.Z, loadSize),
	}
}

// Mod is the Euclidean modulo: the result is always in [0, n) for n > 0.
func Mod(x, n int) int {
	return (x%n + n) % n
}

// FloorDiv divides rounding toward negative infinity.
func FloorDiv(x, n int) int {
	q := x / n
	if (x%n != 0) && ((x < 0) != (n < 0)) {
		q--
	}
	return q
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
