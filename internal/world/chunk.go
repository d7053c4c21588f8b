package world

import (
	"sync/atomic"

	"github.com/Faultbox/blockgl/internal/voxel"
)

// Chunk is the content of one slot: a voxel grid, the coordinate it was
// generated for, and the size of the mesh uploaded to the slot's handle.
//
// A Chunk returned by the Store stays valid until the next Update.
type Chunk struct {
	Position      voxel.ChunkCoord
	IsGenerated   bool
	HasNoGeometry bool
	IndexCount    int32
	Grid          *voxel.Grid
	Handle        Handle

	// Generation is the slot's regeneration count when this content was built.
	Generation uint64
}

// Ready reports whether the chunk holds finished content for coord.
func (c *Chunk) Ready(coord voxel.ChunkCoord) bool {
	return c != nil && c.IsGenerated && c.Position == coord
}

// Drawable reports whether the chunk is ready for coord and has faces.
func (c *Chunk) Drawable(coord voxel.ChunkCoord) bool {
	return c.Ready(coord) && !c.HasNoGeometry
}

type slot struct {
	index  voxel.SlotIndex
	handle Handle

	// visible is what Draw sees. Async results replace it in one store.
	visible atomic.Pointer[Chunk]

	wanted      voxel.ChunkCoord
	hasWanted   bool
	generations uint64

	// async bookkeeping, touched only by the goroutine driving the store
	pending      bool
	pendingCoord voxel.ChunkCoord
}

type drawCall struct {
	handle     Handle
	indexCount int32
}
