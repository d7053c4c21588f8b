package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Faultbox/blockgl/internal/mesher"
	"github.com/Faultbox/blockgl/internal/terrain"
	"github.com/Faultbox/blockgl/internal/voxel"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks the values the world store and mesher depend on.
func (c *Config) Validate() error {
	if c.World.ChunkSize <= 0 || c.World.ChunkSize > mesher.MaxSize {
		return fmt.Errorf("%w: world.chunk_size must be in 1..%d, got %d", ErrInvalid, mesher.MaxSize, c.World.ChunkSize)
	}
	if c.World.LoadRadius < 0 {
		return fmt.Errorf("%w: world.load_radius must not be negative, got %d", ErrInvalid, c.World.LoadRadius)
	}
	if c.World.Workers < 0 {
		return fmt.Errorf("%w: world.workers must not be negative, got %d", ErrInvalid, c.World.Workers)
	}
	if !slices.Contains(terrain.Names(), c.World.Generator) {
		return fmt.Errorf("%w: world.generator %q (known: %v)", ErrInvalid, c.World.Generator, terrain.Names())
	}
	if c.Textures.Size <= 0 {
		return fmt.Errorf("%w: textures.size must be positive, got %d", ErrInvalid, c.Textures.Size)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level %q", ErrInvalid, c.Logging.Level)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("%w: camera near/far %v/%v", ErrInvalid, c.Camera.Near, c.Camera.Far)
	}

	seen := make(map[int]string, len(c.Materials))
	for _, m := range c.Materials {
		if m.ID <= int(voxel.Air) || m.ID > 255 {
			return fmt.Errorf("%w: material %q has id %d outside 1..255", ErrInvalid, m.Name, m.ID)
		}
		if prev, ok := seen[m.ID]; ok {
			return fmt.Errorf("%w: material id %d used by %q and %q", ErrInvalid, m.ID, prev, m.Name)
		}
		seen[m.ID] = m.Name
		for f, layer := range m.Faces {
			if int(layer) >= len(c.Textures.Layers) {
				return fmt.Errorf("%w: material %q face %s uses layer %d, only %d layers configured",
					ErrInvalid, m.Name, mesher.Face(f), layer, len(c.Textures.Layers))
			}
		}
	}
	return nil
}

// TextureTable builds the mesher lookup table from the material list.
func (c *Config) TextureTable() *mesher.TextureTable {
	t := mesher.NewTextureTable()
	for _, m := range c.Materials {
		t.SetFaces(voxel.Block(m.ID), m.Faces)
	}
	return t
}
