package world

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Faultbox/blockgl/internal/mesher"
)

// ErrInjected is the failure HeadlessBackend returns when told to fail.
var ErrInjected = errors.New("headless: injected failure")

// HeadlessBackend is an in-memory Backend. It records what a GPU backend
// would have been asked to do.
type HeadlessBackend struct {
	// FailCreateAt fails the Nth CreateChunkResources call (1-based). Zero disables.
	FailCreateAt int
	// FailUploadAt fails the Nth UploadMesh call (1-based). Zero disables.
	FailUploadAt int

	mu        sync.Mutex
	next      Handle
	buffers   map[Handle]*headlessBuffer
	creates   int
	uploads   int
	draws     int
	destroyed int
}

type headlessBuffer struct {
	vertices   int
	indices    int
	destroys   int
	drawnCount int
}

// NewHeadlessBackend returns an empty backend.
func NewHeadlessBackend() *HeadlessBackend {
	return &HeadlessBackend{buffers: make(map[Handle]*headlessBuffer)}
}

// CreateChunkResources implements Backend.
func (b *HeadlessBackend) CreateChunkResources() (Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.creates++
	if b.creates == b.FailCreateAt {
		return 0, ErrInjected
	}
	b.next++
	b.buffers[b.next] = &headlessBuffer{}
	return b.next, nil
}

// UploadMesh implements Backend.
func (b *HeadlessBackend) UploadMesh(h Handle, mesh *mesher.Mesh) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	buf, err := b.lookup(h)
	if err != nil {
		return err
	}
	b.uploads++
	if b.uploads == b.FailUploadAt {
		return ErrInjected
	}
	buf.vertices = len(mesh.Vertices)
	buf.indices = len(mesh.Indices)
	return nil
}

// DrawChunk implements Backend.
func (b *HeadlessBackend) DrawChunk(h Handle, indexCount int32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if buf, err := b.lookup(h); err == nil {
		b.draws++
		buf.drawnCount++
	}
}

// DestroyResources implements Backend. Destroying a handle twice is
// recorded, never ignored.
func (b *HeadlessBackend) DestroyResources(h Handle) {
	b.mu.Lock()
	defer b.mu.Unlock()

	buf, ok := b.buffers[h]
	if !ok {
		return
	}
	buf.destroys++
	b.destroyed++
}

func (b *HeadlessBackend) lookup(h Handle) (*headlessBuffer, error) {
	buf, ok := b.buffers[h]
	if !ok {
		return nil, fmt.Errorf("headless: unknown handle %d", h)
	}
	if buf.destroys > 0 {
		return nil, fmt.Errorf("headless: handle %d used after destroy", h)
	}
	return buf, nil
}

// Creates returns the number of CreateChunkResources calls.
func (b *HeadlessBackend) Creates() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.creates
}

// Uploads returns the number of UploadMesh calls.
func (b *HeadlessBackend) Uploads() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.uploads
}

// Draws returns the number of DrawChunk calls.
func (b *HeadlessBackend) Draws() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.draws
}

// Destroyed returns the number of DestroyResources calls.
func (b *HeadlessBackend) Destroyed() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.destroyed
}

// Live returns the number of handles created and not yet destroyed.
func (b *HeadlessBackend) Live() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, buf := range b.buffers {
		if buf.destroys == 0 {
			n++
		}
	}
	return n
}

// DestroyCount returns how many times h was destroyed.
func (b *HeadlessBackend) DestroyCount(h Handle) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if buf, ok := b.buffers[h]; ok {
		return buf.destroys
	}
	return 0
}

// IndexCount returns the index count of the last upload to h.
func (b *HeadlessBackend) IndexCount(h Handle) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if buf, ok := b.buffers[h]; ok {
		return buf.indices
	}
	return 0
}
