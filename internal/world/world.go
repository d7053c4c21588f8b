// Package world streams chunks through a fixed toroidal ring buffer of
// slots centred on the viewer.
//
// A chunk coordinate maps to slot coord mod LoadSize on every axis. When
// the viewer moves, slots whose stored coordinate left the load window are
// reclaimed for the coordinate that entered it: the terrain generator
// refills the grid, the mesher rebuilds the mesh and the backend receives
// the new buffers. Slots are allocated once and never freed before Close.
package world

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/blockgl/internal/mesher"
)

// Sentinel errors. Collaborator failures are wrapped around them.
var (
	ErrResourceCreate = errors.New("world: creating chunk resources")
	ErrUpload         = errors.New("world: uploading chunk mesh")
	ErrClosed         = errors.New("world: store closed")
)

// Config holds the store dimensions. Both values are fixed for the life
// of a Store.
type Config struct {
	ChunkSize  int
	LoadRadius int
}

// LoadSize is the side length of the slot cube: 2*LoadRadius + 1.
func (c Config) LoadSize() int {
	return 2*c.LoadRadius + 1
}

// SlotCount is LoadSize³.
func (c Config) SlotCount() int {
	n := c.LoadSize()
	return n * n * n
}

func (c Config) validate() error {
	if c.ChunkSize <= 0 || c.ChunkSize > mesher.MaxSize {
		return fmt.Errorf("world: chunk size must be in 1..%d, got %d", mesher.MaxSize, c.ChunkSize)
	}
	if c.LoadRadius < 0 {
		return fmt.Errorf("world: load radius must not be negative, got %d", c.LoadRadius)
	}
	return nil
}

// Scene is the ambient state the renderer reads each frame.
type Scene struct {
	SkyColor   mgl32.Vec3
	LightColor mgl32.Vec3
	LightPos   mgl32.Vec3
}

// DefaultScene returns a blue sky lit by a distant white sun.
func DefaultScene() Scene {
	return Scene{
		SkyColor:   mgl32.Vec3{0.1, 0.6, 0.9},
		LightColor: mgl32.Vec3{1, 1, 1},
		LightPos:   mgl32.Vec3{100000, 200000, 100000},
	}
}
