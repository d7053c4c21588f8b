package world

import "github.com/Faultbox/blockgl/internal/mesher"

// Handle is an opaque reference to one slot's render resources.
type Handle uint32

// Backend owns the GPU side of chunk slots. The Store calls it only from
// the goroutine that drives Update, Draw and Close.
type Backend interface {
	// CreateChunkResources is called once per slot when the store is built.
	CreateChunkResources() (Handle, error)

	// UploadMesh replaces the buffers behind h.
	UploadMesh(h Handle, mesh *mesher.Mesh) error

	// DrawChunk submits indexCount indices from h.
	DrawChunk(h Handle, indexCount int32)

	// DestroyResources releases h. It is called exactly once per handle.
	DestroyResources(h Handle)
}
