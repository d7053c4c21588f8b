package world

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/blockgl/internal/mesher"
	"github.com/Faultbox/blockgl/internal/terrain"
	"github.com/Faultbox/blockgl/internal/voxel"
)

// Store is the toroidal chunk grid.
type Store struct {
	cfg      Config
	loadSize int

	gen     terrain.Generator
	mesher  *mesher.Mesher
	backend Backend
	log     *zap.Logger

	// Scene is plain data for the renderer.
	Scene Scene

	slots    []slot
	drawList []drawCall
	center   voxel.ChunkCoord

	generations uint64
	async       *asyncLoader
	workers     int
	closed      bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithAsync moves terrain generation and meshing onto a pool of workers.
// Backend calls stay on the caller's goroutine.
func WithAsync(workers int) Option {
	return func(s *Store) {
		s.workers = max(workers, 1)
	}
}

// WithScene overrides DefaultScene.
func WithScene(sc Scene) Option {
	return func(s *Store) {
		s.Scene = sc
	}
}

// FrameStats summarises one Update.
type FrameStats struct {
	Center      voxel.ChunkCoord
	Requested   int
	Regenerated int
	Drawable    int

	// Async only.
	Pending   int
	Discarded int
}

func (fs FrameStats) String() string {
	return fmt.Sprintf("center=%s requested=%d regenerated=%d drawable=%d pending=%d discarded=%d",
		fs.Center, fs.Requested, fs.Regenerated, fs.Drawable, fs.Pending, fs.Discarded)
}

// NewStore allocates every slot and its render resources. On failure the
// resources created so far are destroyed.
func NewStore(cfg Config, gen terrain.Generator, m *mesher.Mesher, b Backend, opts ...Option) (*Store, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if gen == nil || m == nil || b == nil {
		return nil, errors.New("world: generator, mesher and backend are required")
	}
	if m.Limits() != mesher.LimitsFor(cfg.ChunkSize) {
		return nil, fmt.Errorf("world: mesher does not match chunk size %d", cfg.ChunkSize)
	}

	s := &Store{
		cfg:      cfg,
		loadSize: cfg.LoadSize(),
		gen:      gen,
		mesher:   m,
		backend:  b,
		log:      zap.NewNop(),
		Scene:    DefaultScene(),
	}
	for _, opt := range opts {
		opt(s)
	}

	n := cfg.SlotCount()
	s.slots = make([]slot, n)
	for i := range s.slots {
		h, err := b.CreateChunkResources()
		if err != nil {
			for j := 0; j < i; j++ {
				b.DestroyResources(s.slots[j].handle)
			}
			s.slots = nil
			return nil, fmt.Errorf("%w: slot %d of %d: %w", ErrResourceCreate, i, n, err)
		}
		sl := &s.slots[i]
		sl.index = voxel.SlotIndexFromLinear(i, s.loadSize)
		sl.handle = h
		sl.visible.Store(&Chunk{
			Grid:   voxel.NewGrid(cfg.ChunkSize),
			Handle: h,
		})
	}
	s.drawList = make([]drawCall, 0, n)

	if s.workers > 0 {
		s.async = newAsyncLoader(s.workers, n, cfg.ChunkSize)
	}

	s.log.Info("world store initialized",
		zap.Int("chunk_size", cfg.ChunkSize),
		zap.Int("load_radius", cfg.LoadRadius),
		zap.Int("load_size", s.loadSize),
		zap.Int("slots", n),
		zap.Int("max_faces", m.Limits().Faces),
		zap.Int("async_workers", s.workers))

	return s, nil
}

// Config returns the store dimensions.
func (s *Store) Config() Config { return s.cfg }

// LoadSize returns the slot cube side length.
func (s *Store) LoadSize() int { return s.loadSize }

// Center returns the viewer chunk from the last Update.
func (s *Store) Center() voxel.ChunkCoord { return s.center }

// Generations returns the total number of completed regenerations.
func (s *Store) Generations() uint64 { return s.generations }

// Async reports whether generation runs on a worker pool.
func (s *Store) Async() bool { return s.async != nil }

func (s *Store) slotFor(coord voxel.ChunkCoord) (int, *slot) {
	i := voxel.SlotIndexOf(coord, s.loadSize).Linear(s.loadSize)
	return i, &s.slots[i]
}

// Slot returns the visible chunk of the slot coord maps to. Its Position
// may differ from coord.
func (s *Store) Slot(coord voxel.ChunkCoord) *Chunk {
	if s.closed {
		return nil
	}
	_, sl := s.slotFor(coord)
	return sl.visible.Load()
}

// SlotGenerations returns how many times the slot for coord was regenerated.
func (s *Store) SlotGenerations(coord voxel.ChunkCoord) uint64 {
	if s.closed {
		return 0
	}
	_, sl := s.slotFor(coord)
	return sl.generations
}

// Request makes coord the wanted content of its slot. If the slot is
// ungenerated or holds another coordinate it is regenerated; a slot that
// already holds coord is left alone.
//
// In async mode Request schedules the work and returns nil until the
// result has been swapped in by a later Update or Flush.
func (s *Store) Request(coord voxel.ChunkCoord) (*Chunk, error) {
	if s.closed {
		return nil, ErrClosed
	}
	i, sl := s.slotFor(coord)
	sl.wanted = coord
	sl.hasWanted = true

	c := sl.visible.Load()
	if c.Ready(coord) {
		return c, nil
	}
	if s.async != nil {
		if !sl.pending {
			s.async.submit(s, i, coord)
		}
		return nil, nil
	}
	return s.regenerate(i, sl, c, coord)
}

// regenerate refills c in place for coord.
func (s *Store) regenerate(i int, sl *slot, c *Chunk, coord voxel.ChunkCoord) (*Chunk, error) {
	c.Position = coord
	c.IsGenerated = true
	c.Grid.Clear()
	s.gen.Generate(coord, c.Grid)
	mesh := s.mesher.Build(coord, c.Grid)

	if err := s.upload(c, mesh); err != nil {
		c.IsGenerated = false
		return nil, err
	}
	s.finish(i, sl, c, mesh)
	return c, nil
}

func (s *Store) upload(c *Chunk, mesh *mesher.Mesh) error {
	c.HasNoGeometry = mesh.Empty()
	c.IndexCount = mesh.IndexCount()
	if c.HasNoGeometry {
		return nil
	}
	if err := s.backend.UploadMesh(c.Handle, mesh); err != nil {
		return fmt.Errorf("%w: chunk %s: %w", ErrUpload, c.Position, err)
	}
	return nil
}

func (s *Store) finish(i int, sl *slot, c *Chunk, mesh *mesher.Mesh) {
	sl.generations++
	s.generations++
	c.Generation = sl.generations
	s.log.Debug("chunk regenerated",
		zap.Stringer("coord", c.Position),
		zap.Int("slot", i),
		zap.Int("faces", mesh.FaceCount()))
}

// Update streams the load window around the viewer position and rebuilds
// the draw list.
func (s *Store) Update(viewer mgl32.Vec3) (FrameStats, error) {
	if s.closed {
		return FrameStats{}, ErrClosed
	}
	return s.UpdateAt(voxel.ChunkCoordOf(viewer, s.cfg.ChunkSize))
}

// UpdateAt streams the load window centred on a chunk coordinate. Every
// coordinate in the window is requested even after a failure; the first
// error is returned.
func (s *Store) UpdateAt(center voxel.ChunkCoord) (FrameStats, error) {
	if s.closed {
		return FrameStats{}, ErrClosed
	}
	if center != s.center {
		s.log.Debug("viewer entered chunk", zap.Stringer("from", s.center), zap.Stringer("to", center))
	}
	s.center = center
	stats := FrameStats{Center: center}
	before := s.generations

	var firstErr error
	r := s.cfg.LoadRadius
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			for dz := -r; dz <= r; dz++ {
				coord := center.Add(voxel.ChunkCoord{X: dx, Y: dy, Z: dz})
				stats.Requested++
				if _, err := s.Request(coord); err != nil && firstErr == nil {
					firstErr = err
				}
			}
		}
	}

	if s.async != nil {
		if err := s.async.drain(s, &stats); err != nil && firstErr == nil {
			firstErr = err
		}
		stats.Pending = s.async.inflight
	}

	s.rebuildDrawList()
	stats.Regenerated = int(s.generations - before)
	stats.Drawable = len(s.drawList)

	if firstErr != nil {
		return stats, fmt.Errorf("streaming around %s: %w", center, firstErr)
	}
	return stats, nil
}

// rebuildDrawList keeps slots whose visible chunk matches the wanted
// coordinate and has faces.
func (s *Store) rebuildDrawList() {
	s.drawList = s.drawList[:0]
	for i := range s.slots {
		sl := &s.slots[i]
		if !sl.hasWanted {
			continue
		}
		c := sl.visible.Load()
		if c.Drawable(sl.wanted) {
			s.drawList = append(s.drawList, drawCall{handle: sl.handle, indexCount: c.IndexCount})
		}
	}
}

// Draw submits every drawable slot from the last Update.
func (s *Store) Draw() {
	if s.closed {
		return
	}
	for _, d := range s.drawList {
		s.backend.DrawChunk(d.handle, d.indexCount)
	}
}

// Close stops the worker pool and releases every slot's resources. Calls
// after the first are no-ops.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.async != nil {
		s.async.stop()
	}
	for i := range s.slots {
		s.backend.DestroyResources(s.slots[i].handle)
	}
	s.log.Info("world store closed",
		zap.Int("slots", len(s.slots)),
		zap.Uint64("generations", s.generations))
	s.slots = nil
	s.drawList = nil
	return nil
}
