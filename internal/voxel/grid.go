package voxel

// Grid is the dense block storage of one chunk: Size³ blocks in a flat slice.
type Grid struct {
	size   int
	blocks []Block
}

// NewGrid allocates an all-air grid with the given edge length.
func NewGrid(size int) *Grid {
	if size <= 0 {
		panic("voxel: grid size must be positive")
	}
	return &Grid{
		size:   size,
		blocks: make([]Block, size*size*size),
	}
}

// Size returns the edge length.
func (g *Grid) Size() int {
	return g.size
}

// Len returns the number of voxels.
func (g *Grid) Len() int {
	return len(g.blocks)
}

// Contains reports whether the local offset is inside the grid.
func (g *Grid) Contains(x, y, z int) bool {
	return x >= 0 && x < g.size && y >= 0 && y < g.size && z >= 0 && z < g.size
}

func (g *Grid) offset(x, y, z int) int {
	return (x*g.size+y)*g.size + z
}

// At returns the block at a local offset. The offset must be in bounds.
func (g *Grid) At(x, y, z int) Block {
	return g.blocks[g.offset(x, y, z)]
}

// Set writes the block at a local offset. The offset must be in bounds.
func (g *Grid) Set(x, y, z int, b Block) {
	g.blocks[g.offset(x, y, z)] = b
}

// Neighbor returns the block at a local offset and whether it lies inside
// the grid. Offsets outside the grid read as Air.
func (g *Grid) Neighbor(x, y, z int) (Block, bool) {
	if !g.Contains(x, y, z) {
		return Air, false
	}
	return g.At(x, y, z), true
}

// Fill sets every voxel to b.
func (g *Grid) Fill(b Block) {
	for i := range g.blocks {
		g.blocks[i] = b
	}
}

// Clear resets the grid to air.
func (g *Grid) Clear() {
	clear(g.blocks)
}

// Count returns the number of solid voxels.
func (g *Grid) Count() int {
	n := 0
	for _, b := range g.blocks {
		if b.Solid() {
			n++
		}
	}
	return n
}

// Equal reports whether two grids hold identical blocks.
func (g *Grid) Equal(o *Grid) bool {
	if g.size != o.size {
		return false
	}
	for i := range g.blocks {
		if g.blocks[i] != o.blocks[i] {
			return false
		}
	}
	return true
}

// CopyFrom overwrites g with the contents of src. Sizes must match.
func (g *Grid) CopyFrom(src *Grid) {
	if g.size != src.size {
		panic("voxel: grid size mismatch")
	}
	copy(g.blocks, src.blocks)
}
