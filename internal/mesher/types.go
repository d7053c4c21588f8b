// Package mesher converts chunk voxel grids into triangle meshes by
// per-voxel face culling.
package mesher

import (
	"fmt"

	"github.com/Faultbox/blockgl/internal/voxel"
)

// Vertex is one mesh vertex: 9 float32 scalars, laid out for a single
// interleaved GL buffer (position, texcoord u/v/layer, normal).
type Vertex struct {
	Position [3]float32
	TexCoord [3]float32 // U, V, texture array layer
	Normal   [3]float32
}

// Buffer layout constants.
const (
	ScalarsPerVertex = 9
	VerticesPerFace  = 4
	IndicesPerFace   = 6
	FacesPerVoxel    = 6

	// VertexStride is the byte size of one Vertex.
	VertexStride = ScalarsPerVertex * 4

	// MaxSize is the largest chunk edge whose worst-case index count
	// fits the int32 count passed to draw calls.
	MaxSize = 390
)

// Mesh holds the vertex and index data for one chunk, ready for upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Empty reports whether the mesh has no faces.
func (m *Mesh) Empty() bool {
	return len(m.Indices) == 0
}

// FaceCount returns the number of emitted quads.
func (m *Mesh) FaceCount() int {
	return len(m.Indices) / IndicesPerFace
}

// IndexCount returns the index count as the GL draw call wants it.
func (m *Mesh) IndexCount() int32 {
	return int32(len(m.Indices))
}

// Limits are the worst-case buffer sizes for a chunk edge length: every
// voxel solid and every face visible.
type Limits struct {
	Faces    int
	Vertices int
	Indices  int
	Scalars  int
}

// LimitsFor computes the worst-case bounds for chunks of edge size.
func LimitsFor(size int) Limits {
	faces := size * size * size * FacesPerVoxel
	return Limits{
		Faces:    faces,
		Vertices: faces * VerticesPerFace,
		Indices:  faces * IndicesPerFace,
		Scalars:  faces * VerticesPerFace * ScalarsPerVertex,
	}
}

// CapacityError is the panic value raised when a mesh outgrows its
// worst-case bound or breaks the vertex:index ratio. Either means the
// grid or the bound derivation is corrupt.
type CapacityError struct {
	Vertices int
	Indices  int
	Limits   Limits
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("mesher: capacity violated: %d vertices / %d indices (max %d / %d)",
		e.Vertices, e.Indices, e.Limits.Vertices, e.Limits.Indices)
}

// MaterialError is the panic value raised for a solid block id that has
// no texture layer entry.
type MaterialError struct {
	ID   voxel.Block
	Face Face
}

func (e *MaterialError) Error() string {
	return fmt.Sprintf("mesher: block id %d has no texture for face %s", e.ID, e.Face)
}
