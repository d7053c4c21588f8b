package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/blockgl/internal/mesher"
	"github.com/Faultbox/blockgl/internal/world"
)

// chunkBuffers is the GL state for one store slot.
type chunkBuffers struct {
	vao, vbo, ebo uint32
}

// Byte offsets of the interleaved vertex attributes.
const (
	offsetPosition = 0
	offsetTexCoord = 3 * 4
	offsetNormal   = 6 * 4
)

// CreateChunkResources allocates a VAO with its vertex and index buffers
// and records the attribute layout. Buffers stay empty until UploadMesh.
func (r *Renderer) CreateChunkResources() (world.Handle, error) {
	var b chunkBuffers
	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.GenBuffers(1, &b.ebo)
	if b.vao == 0 || b.vbo == 0 || b.ebo == 0 {
		b.delete()
		return 0, fmt.Errorf("glGen returned zero name (vao=%d vbo=%d ebo=%d)", b.vao, b.vbo, b.ebo)
	}

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, mesher.VertexStride, offsetPosition)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, mesher.VertexStride, offsetTexCoord)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 3, gl.FLOAT, false, mesher.VertexStride, offsetNormal)
	gl.EnableVertexAttribArray(2)

	// The element buffer binding is VAO state and must stay bound.
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if n := r.CheckErrors("create chunk resources"); n > 0 {
		b.delete()
		return 0, fmt.Errorf("%d GL errors creating chunk buffers", n)
	}

	r.nextID++
	h := r.nextID
	r.chunks[h] = &b
	return h, nil
}

// UploadMesh replaces the slot's buffer contents.
func (r *Renderer) UploadMesh(h world.Handle, mesh *mesher.Mesh) error {
	b, ok := r.chunks[h]
	if !ok {
		return fmt.Errorf("unknown chunk handle %d", h)
	}
	if mesh.Empty() {
		return nil
	}

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*mesher.VertexStride,
		unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4,
		unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if n := r.CheckErrors("upload mesh"); n > 0 {
		return fmt.Errorf("%d GL errors uploading %d faces", n, mesh.FaceCount())
	}
	return nil
}

// DrawChunk issues one indexed draw. Begin must have been called.
func (r *Renderer) DrawChunk(h world.Handle, indexCount int32) {
	b, ok := r.chunks[h]
	if !ok || indexCount == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, indexCount, gl.UNSIGNED_INT, 0)
}

// DestroyResources frees the slot's GL objects. Unknown handles are ignored.
func (r *Renderer) DestroyResources(h world.Handle) {
	b, ok := r.chunks[h]
	if !ok {
		return
	}
	b.delete()
	delete(r.chunks, h)
}

func (b *chunkBuffers) delete() {
	if b.ebo != 0 {
		gl.DeleteBuffers(1, &b.ebo)
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
	}
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
}
