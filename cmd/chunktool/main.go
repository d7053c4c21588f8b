// chunktool inspects chunk sizing, meshes single chunks and replays
// streaming walks against a headless backend.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/blockgl/internal/config"
	"github.com/Faultbox/blockgl/internal/logger"
	"github.com/Faultbox/blockgl/internal/mesher"
	"github.com/Faultbox/blockgl/internal/terrain"
	"github.com/Faultbox/blockgl/internal/voxel"
	"github.com/Faultbox/blockgl/internal/world"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(args)
	case "mesh":
		err = cmdMesh(args)
	case "stream":
		err = cmdStream(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`chunktool - chunk store and mesher utility

Usage:
  chunktool <command> [options]

Commands:
  info                               Show slot and buffer sizing
  mesh <x> <y> <z> | <x,y,z>         Generate and mesh one chunk
  stream <x,y,z> <x,y,z> <steps>     Walk the load window between two chunks

Common options:
  -config <file>      Load settings from a YAML config
  -size <n>           Chunk edge length
  -radius <n>         Load radius
  -generator <name>   Terrain generator
  -seed <n>           Noise seed

Examples:
  chunktool info -radius 4
  chunktool mesh -generator cosine 0 1 0
  chunktool mesh -1,0,-2
  chunktool stream -async 0,0,0 10,0,0 10`)
}

// options is the flag set shared by every command.
type options struct {
	fs   *flag.FlagSet
	args []string // positional arguments

	configPath string
	size       int
	radius     int
	generator  string
	seed       int64
	async      bool
	workers    int
	debug      bool
}

func newOptions(name string) *options {
	o := &options{fs: flag.NewFlagSet(name, flag.ContinueOnError)}
	o.fs.StringVar(&o.configPath, "config", "", "Path to config file")
	o.fs.IntVar(&o.size, "size", 0, "Chunk edge length")
	o.fs.IntVar(&o.radius, "radius", -1, "Load radius")
	o.fs.StringVar(&o.generator, "generator", "", "Terrain generator ("+strings.Join(terrain.Names(), ", ")+")")
	o.fs.Int64Var(&o.seed, "seed", 0, "Noise seed")
	o.fs.BoolVar(&o.async, "async", false, "Generate on a worker pool")
	o.fs.IntVar(&o.workers, "workers", 0, "Worker count (0 = NumCPU)")
	o.fs.BoolVar(&o.debug, "debug", false, "Log store activity to stderr")
	return o
}

// load parses args and resolves the config: defaults, then -config,
// then explicit flags.
func (o *options) load(args []string) (*config.Config, error) {
	flags, positional := o.split(args)
	if err := o.fs.Parse(flags); err != nil {
		return nil, err
	}
	o.args = append(positional, o.fs.Args()...)

	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.LoadFile(o.configPath); err != nil {
			return nil, err
		}
	}
	if o.size > 0 {
		cfg.World.ChunkSize = o.size
	}
	if o.radius >= 0 {
		cfg.World.LoadRadius = o.radius
	}
	if o.generator != "" {
		cfg.World.Generator = o.generator
	}
	if o.seed != 0 {
		cfg.World.Seed = o.seed
	}
	if o.async {
		cfg.World.Async = true
	}
	if o.workers > 0 {
		cfg.World.Workers = o.workers
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// split separates flags from positional arguments so negative
// coordinates such as -1 or -3,0,2 are not parsed as options. Flags may
// appear anywhere; "--" ends flag parsing.
func (o *options) split(args []string) (flags, positional []string) {
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--":
			return flags, append(positional, args[i+1:]...)
		case isCoordArg(a) || !strings.HasPrefix(a, "-"):
			positional = append(positional, a)
		default:
			flags = append(flags, a)
			name := strings.TrimLeft(a, "-")
			if strings.Contains(name, "=") {
				continue
			}
			f := o.fs.Lookup(name)
			if f == nil {
				continue
			}
			if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
				continue
			}
			if i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		}
	}
	return flags, positional
}

// isCoordArg reports whether a is an integer or an x,y,z triple.
func isCoordArg(a string) bool {
	for _, p := range strings.Split(a, ",") {
		if _, err := strconv.Atoi(p); err != nil {
			return false
		}
	}
	return true
}

func (o *options) logger() (*zap.Logger, error) {
	if !o.debug {
		return zap.NewNop(), nil
	}
	return logger.New("debug", logger.FileConfig{}, os.Stderr)
}

func cmdInfo(args []string) error {
	o := newOptions("info")
	cfg, err := o.load(args)
	if err != nil {
		return err
	}

	wc := world.Config{ChunkSize: cfg.World.ChunkSize, LoadRadius: cfg.World.LoadRadius}
	limits := mesher.LimitsFor(cfg.World.ChunkSize)

	fmt.Printf("Chunk size:     %d\n", wc.ChunkSize)
	fmt.Printf("Loading radius: %d\n", wc.LoadRadius)
	fmt.Printf("Load size:      %d\n", wc.LoadSize())
	fmt.Printf("Slots:          %d\n", wc.SlotCount())
	fmt.Printf("Voxels/chunk:   %d\n", wc.ChunkSize*wc.ChunkSize*wc.ChunkSize)
	fmt.Println()
	fmt.Printf("Max faces:      %d\n", limits.Faces)
	fmt.Printf("Max vertices:   %d\n", limits.Vertices)
	fmt.Printf("Max indices:    %d\n", limits.Indices)
	fmt.Printf("Max scalars:    %d\n", limits.Scalars)
	fmt.Printf("Worst chunk:    %s\n", formatBytes(chunkBytes(limits.Vertices, limits.Indices)))
	fmt.Printf("Worst window:   %s\n", formatBytes(chunkBytes(limits.Vertices, limits.Indices)*int64(wc.SlotCount())))
	fmt.Println()
	fmt.Printf("Generators:     %s\n", strings.Join(terrain.Names(), ", "))
	return nil
}

func cmdMesh(args []string) error {
	o := newOptions("mesh")
	cfg, err := o.load(args)
	if err != nil {
		return err
	}
	if n := len(o.args); n != 1 && n != 3 {
		return errors.New("usage: chunktool mesh [options] <x> <y> <z> | <x,y,z>")
	}
	coord, err := parseCoord(strings.Join(o.args, ","))
	if err != nil {
		return err
	}

	gen, err := terrain.New(cfg.World.Generator, cfg.World.Seed)
	if err != nil {
		return err
	}

	grid := voxel.NewGrid(cfg.World.ChunkSize)
	start := time.Now()
	gen.Generate(coord, grid)
	genTime := time.Since(start)

	m := mesher.New(cfg.World.ChunkSize, cfg.TextureTable())
	start = time.Now()
	mesh := m.Build(coord, grid)
	meshTime := time.Since(start)

	limits := m.Limits()
	fmt.Printf("Chunk:     %s (%s, seed %d)\n", coord, cfg.World.Generator, cfg.World.Seed)
	fmt.Printf("Solid:     %d / %d voxels\n", grid.Count(), grid.Len())
	fmt.Printf("Faces:     %d / %d (%.1f%%)\n", mesh.FaceCount(), limits.Faces,
		100*float64(mesh.FaceCount())/float64(limits.Faces))
	fmt.Printf("Vertices:  %d\n", len(mesh.Vertices))
	fmt.Printf("Indices:   %d\n", len(mesh.Indices))
	fmt.Printf("Buffers:   %s\n", formatBytes(chunkBytes(len(mesh.Vertices), len(mesh.Indices))))
	fmt.Printf("Generate:  %v\n", genTime)
	fmt.Printf("Mesh:      %v\n", meshTime)
	return nil
}

func cmdStream(args []string) error {
	o := newOptions("stream")
	cfg, err := o.load(args)
	if err != nil {
		return err
	}
	if len(o.args) != 3 {
		return errors.New("usage: chunktool stream [options] <x,y,z> <x,y,z> <steps>")
	}
	from, err := parseCoord(o.args[0])
	if err != nil {
		return err
	}
	to, err := parseCoord(o.args[1])
	if err != nil {
		return err
	}
	steps, err := strconv.Atoi(o.args[2])
	if err != nil || steps < 1 {
		return fmt.Errorf("invalid step count %q", o.args[2])
	}

	log, err := o.logger()
	if err != nil {
		return err
	}
	defer log.Sync()

	backend := world.NewHeadlessBackend()
	store, err := cfg.OpenWorld(backend, log)
	if err != nil {
		return err
	}
	defer store.Close()

	start := time.Now()
	for i, center := range walk(from, to, steps) {
		stats, err := store.UpdateAt(center)
		if err != nil {
			return err
		}
		if store.Async() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			stats, err = store.Flush(ctx)
			cancel()
			if err != nil {
				return err
			}
		}
		store.Draw()
		fmt.Printf("step %3d: %s\n", i, stats)
	}
	elapsed := time.Since(start)

	fmt.Println()
	fmt.Printf("Slots:        %d\n", store.Config().SlotCount())
	fmt.Printf("Generations:  %d\n", store.Generations())
	fmt.Printf("Uploads:      %d\n", backend.Uploads())
	fmt.Printf("Draw calls:   %d\n", backend.Draws())
	fmt.Printf("Elapsed:      %v\n", elapsed)
	return nil
}

// parseCoord parses "x,y,z".
func parseCoord(s string) (voxel.ChunkCoord, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return voxel.ChunkCoord{}, fmt.Errorf("invalid chunk coordinate %q, want x,y,z", s)
	}
	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return voxel.ChunkCoord{}, fmt.Errorf("invalid chunk coordinate %q: %w", s, err)
		}
		v[i] = n
	}
	return voxel.ChunkCoord{X: v[0], Y: v[1], Z: v[2]}, nil
}

// walk returns steps+1 centres from a to b inclusive, rounding each
// intermediate point to the nearest chunk.
func walk(a, b voxel.ChunkCoord, steps int) []voxel.ChunkCoord {
	lerp := func(p, q, i int) int {
		return p + int(math.Round(float64((q-p)*i)/float64(steps)))
	}
	out := make([]voxel.ChunkCoord, 0, steps+1)
	for i := 0; i <= steps; i++ {
		out = append(out, voxel.ChunkCoord{
			X: lerp(a.X, b.X, i),
			Y: lerp(a.Y, b.Y, i),
			Z: lerp(a.Z, b.Z, i),
		})
	}
	return out
}

// chunkBytes is the GPU memory for a mesh of the given size.
func chunkBytes(vertices, indices int) int64 {
	return int64(vertices)*mesher.VertexStride + int64(indices)*4
}

// formatBytes formats bytes in human-readable form.
func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
