package mesher

import (
	"fmt"

	"github.com/Faultbox/blockgl/internal/voxel"
)

// Mesher builds chunk meshes for one chunk size and texture table.
// It holds no per-call state and can be shared between goroutines.
type Mesher struct {
	size   int
	table  *TextureTable
	limits Limits
}

// New creates a mesher for chunks of edge size.
func New(size int, table *TextureTable) *Mesher {
	if size <= 0 || size > MaxSize {
		panic(fmt.Sprintf("mesher: chunk size %d outside 1..%d", size, MaxSize))
	}
	if table == nil {
		panic("mesher: nil texture table")
	}
	return &Mesher{
		size:   size,
		table:  table,
		limits: LimitsFor(size),
	}
}

// Limits returns the worst-case buffer bounds for this mesher's chunk size.
func (m *Mesher) Limits() Limits {
	return m.limits
}

// Table returns the texture table.
func (m *Mesher) Table() *TextureTable {
	return m.table
}

// Build meshes grid as the chunk at pos. Faces whose neighbour is solid and
// inside the grid are culled. Faces on the chunk boundary are always
// emitted, since neighbouring chunks are never consulted.
//
// Build panics with *MaterialError for a solid id missing from the table
// and with *CapacityError if the bounds are ever exceeded.
func (m *Mesher) Build(pos voxel.ChunkCoord, grid *voxel.Grid) *Mesh {
	if grid.Size() != m.size {
		panic("mesher: grid size does not match mesher")
	}

	ox, oy, oz := pos.Origin(m.size)
	mesh := &Mesh{}

	for x := 0; x < m.size; x++ {
		for y := 0; y < m.size; y++ {
			for z := 0; z < m.size; z++ {
				id := grid.At(x, y, z)
				if !id.Solid() {
					continue
				}
				// Checked per voxel so buried ids fail too.
				if !m.table.Defined(id) {
					panic(&MaterialError{ID: id, Face: FaceRight})
				}

				gx := float32(ox + x)
				gy := float32(oy + y)
				gz := float32(oz + z)

				for f := Face(0); f < FacesPerVoxel; f++ {
					n := faceNormals[f]
					neighbour, _ := grid.Neighbor(x+n[0], y+n[1], z+n[2])
					if neighbour.Solid() {
						continue
					}

					layer, _ := m.table.Layer(id, f)
					m.emitFace(mesh, f, gx, gy, gz, float32(layer))
				}
			}
		}
	}

	m.checkCapacity(mesh)
	return mesh
}

func (m *Mesher) emitFace(mesh *Mesh, f Face, gx, gy, gz, layer float32) {
	if len(mesh.Vertices)+VerticesPerFace > m.limits.Vertices {
		panic(m.capacityError(mesh))
	}

	base := uint32(len(mesh.Vertices))
	normal := f.Normal()
	for j, c := range cubeCorners[f] {
		mesh.Vertices = append(mesh.Vertices, Vertex{
			Position: [3]float32{c[0] + gx, c[1] + gy, c[2] + gz},
			TexCoord: [3]float32{quadUVs[j][0], quadUVs[j][1], layer},
			Normal:   normal,
		})
	}
	for _, i := range quadIndices {
		mesh.Indices = append(mesh.Indices, base+i)
	}
}

// checkCapacity enforces the worst-case bounds and the exact 4:6
// vertex:index ratio of whole faces.
func (m *Mesher) checkCapacity(mesh *Mesh) {
	nv, ni := len(mesh.Vertices), len(mesh.Indices)
	if nv > m.limits.Vertices || ni > m.limits.Indices {
		panic(m.capacityError(mesh))
	}
	if nv%VerticesPerFace != 0 || ni%IndicesPerFace != 0 ||
		nv/VerticesPerFace != ni/IndicesPerFace {
		panic(m.capacityError(mesh))
	}
}

func (m *Mesher) capacityError(mesh *Mesh) *CapacityError {
	return &CapacityError{
		Vertices: len(mesh.Vertices),
		Indices:  len(mesh.Indices),
		Limits:   m.limits,
	}
}
