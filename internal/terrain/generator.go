// Package terrain fills chunk voxel grids from chunk coordinates.
//
// Every generator is a pure function of the coordinate: the world store
// regenerates the same chunk many times per session and expects identical
// output each time. Generators sample world-space coordinates so adjacent
// chunks tile without seams.
package terrain

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/Faultbox/blockgl/internal/voxel"
)

// Material ids written by the bundled generators.
const (
	Stone voxel.Block = 1
	Grass voxel.Block = 2
)

// ErrUnknownGenerator is returned by New for an unregistered name.
var ErrUnknownGenerator = errors.New("unknown terrain generator")

// Generator writes the blocks of the chunk at coord into grid.
// Every voxel of grid is overwritten.
type Generator interface {
	Generate(coord voxel.ChunkCoord, grid *voxel.Grid)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(coord voxel.ChunkCoord, grid *voxel.Grid)

// Generate implements Generator.
func (f GeneratorFunc) Generate(coord voxel.ChunkCoord, grid *voxel.Grid) {
	f(coord, grid)
}

var registry = map[string]func(seed int64) Generator{
	"cosine":     func(int64) Generator { return Cosine{} },
	"turbulence": func(seed int64) Generator { return NewTurbulence(seed) },
	"flat":       func(int64) Generator { return Flat{Height: 8, Block: Stone} },
}

// New returns the generator registered under name.
func New(name string, seed int64) (Generator, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGenerator, name)
	}
	return ctor(seed), nil
}

// Names lists the registered generator names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// heightColumns walks the grid column by column and lets column decide the
// block for every world-space height in it.
func heightColumns(coord voxel.ChunkCoord, grid *voxel.Grid, column func(wx, wz float64) func(wy float64) voxel.Block) {
	size := grid.Size()
	ox, oy, oz := coord.Origin(size)
	for x := 0; x < size; x++ {
		for z := 0; z < size; z++ {
			pick := column(float64(ox+x), float64(oz+z))
			for y := 0; y < size; y++ {
				grid.Set(x, y, z, pick(float64(oy+y)))
			}
		}
	}
}

// Cosine is a rolling height field: solid stone below cos(x/20)·cos(z/20)·10 + 20.
type Cosine struct{}

// Generate implements Generator.
func (Cosine) Generate(coord voxel.ChunkCoord, grid *voxel.Grid) {
	heightColumns(coord, grid, func(wx, wz float64) func(float64) voxel.Block {
		h := float32(math.Cos(wx/20)*math.Cos(wz/20)*10 + 20)
		return func(wy float64) voxel.Block {
			if h > float32(wy) {
				return Stone
			}
			return voxel.Air
		}
	})
}

// Turbulence layers stone under a thin grass crust on a turbulence-noise height field.
type Turbulence struct {
	noise *Perlin

	Scale      float64
	Lacunarity float64
	Gain       float64
	Octaves    int
	StoneDepth float64
	GrassDepth float64
}

// NewTurbulence returns the default turbulence terrain for seed.
func NewTurbulence(seed int64) *Turbulence {
	return &Turbulence{
		noise:      NewPerlin(seed),
		Scale:      100,
		Lacunarity: 2,
		Gain:       0.5,
		Octaves:    6,
		StoneDepth: 50,
		GrassDepth: 51,
	}
}

// Generate implements Generator.
func (t *Turbulence) Generate(coord voxel.ChunkCoord, grid *voxel.Grid) {
	heightColumns(coord, grid, func(wx, wz float64) func(float64) voxel.Block {
		v := t.noise.Turbulence3(wx/t.Scale, 0, wz/t.Scale, t.Lacunarity, t.Gain, t.Octaves)
		stone := v * t.StoneDepth
		grass := v * t.GrassDepth
		return func(wy float64) voxel.Block {
			switch {
			case stone > wy:
				return Stone
			case grass > wy:
				return Grass
			default:
				return voxel.Air
			}
		}
	})
}

// Flat fills everything below Height (world space) with Block.
type Flat struct {
	Height int
	Block  voxel.Block
}

// Generate implements Generator.
func (f Flat) Generate(coord voxel.ChunkCoord, grid *voxel.Grid) {
	heightColumns(coord, grid, func(float64, float64) func(float64) voxel.Block {
		return func(wy float64) voxel.Block {
			if wy < float64(f.Height) {
				return f.Block
			}
			return voxel.Air
		}
	})
}
