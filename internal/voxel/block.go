// Package voxel holds the block, coordinate and grid types shared by the
// terrain generators, the mesher and the world store.
package voxel

// Block is a material identifier. Air is the only non-solid value.
type Block uint8

// Air is the reserved empty block.
const Air Block = 0

// Solid reports whether b occludes neighbouring faces.
func (b Block) Solid() bool {
	return b != Air
}
