package mesher

import (
	"fmt"

	"github.com/Faultbox/blockgl/internal/voxel"
)

const maxMaterials = 256

type textureEntry struct {
	defined bool
	layers  [FacesPerVoxel]uint32
}

// TextureTable maps a block id and face to a texture array layer.
// Build it once at startup and share it read-only.
type TextureTable struct {
	entries [maxMaterials]textureEntry
}

// NewTextureTable returns an empty table. Every solid id that can appear
// in a grid must be defined before meshing.
func NewTextureTable() *TextureTable {
	return &TextureTable{}
}

// Define sets per-face layers in face order.
func (t *TextureTable) Define(id voxel.Block, right, left, top, bottom, front, back uint32) {
	t.SetFaces(id, [FacesPerVoxel]uint32{right, left, top, bottom, front, back})
}

// DefineUniform uses one layer on every face.
func (t *TextureTable) DefineUniform(id voxel.Block, layer uint32) {
	t.Define(id, layer, layer, layer, layer, layer, layer)
}

// SetFaces sets all six layers of id at once.
func (t *TextureTable) SetFaces(id voxel.Block, layers [FacesPerVoxel]uint32) {
	if id == voxel.Air {
		panic("mesher: air cannot carry a texture")
	}
	t.entries[id] = textureEntry{defined: true, layers: layers}
}

// Layer returns the texture layer for id on face f.
func (t *TextureTable) Layer(id voxel.Block, f Face) (uint32, bool) {
	e := &t.entries[id]
	if !e.defined {
		return 0, false
	}
	return e.layers[f], true
}

// Defined reports whether id has an entry.
func (t *TextureTable) Defined(id voxel.Block) bool {
	return t.entries[id].defined
}

// MaxLayer returns the highest layer referenced, or -1 for an empty table.
func (t *TextureTable) MaxLayer() int {
	top := -1
	for i := range t.entries {
		if !t.entries[i].defined {
			continue
		}
		for _, l := range t.entries[i].layers {
			top = max(top, int(l))
		}
	}
	return top
}

// DefaultTextureTable covers the ids written by the bundled generators:
// 1 stone on every face, 2 grass with a dirt bottom and grass-side walls.
func DefaultTextureTable() *TextureTable {
	t := NewTextureTable()
	t.DefineUniform(1, 0)
	t.Define(2, 3, 3, 1, 2, 3, 3)
	return t
}

func (t *TextureTable) String() string {
	n := 0
	for i := range t.entries {
		if t.entries[i].defined {
			n++
		}
	}
	return fmt.Sprintf("TextureTable{materials: %d, maxLayer: %d}", n, t.MaxLayer())
}
