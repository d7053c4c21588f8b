package world

import (
	"context"
	"sync"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/blockgl/internal/mesher"
	"github.com/Faultbox/blockgl/internal/voxel"
)

// chunkResult is a finished background job.
type chunkResult struct {
	slot  int
	coord voxel.ChunkCoord
	grid  *voxel.Grid
	mesh  *mesher.Mesh
	panic any
}

// asyncLoader runs terrain fill and meshing on a pond pool. Each slot has
// at most one job in flight, so results never blocks a worker.
type asyncLoader struct {
	pool     pond.Pool
	results  chan chunkResult
	grids    sync.Pool
	inflight int
}

func newAsyncLoader(workers, slots, chunkSize int) *asyncLoader {
	a := &asyncLoader{
		pool:    pond.NewPool(workers),
		results: make(chan chunkResult, slots),
	}
	a.grids.New = func() any {
		return voxel.NewGrid(chunkSize)
	}
	return a
}

func (a *asyncLoader) submit(s *Store, i int, coord voxel.ChunkCoord) {
	sl := &s.slots[i]
	sl.pending = true
	sl.pendingCoord = coord
	a.inflight++

	gen, m := s.gen, s.mesher
	a.pool.Submit(func() {
		res := chunkResult{slot: i, coord: coord}
		defer func() {
			if r := recover(); r != nil {
				res.panic = r
			}
			a.results <- res
		}()

		grid := a.grids.Get().(*voxel.Grid)
		grid.Clear()
		res.grid = grid
		gen.Generate(coord, grid)
		res.mesh = m.Build(coord, grid)
	})
}

// drain applies every finished job without blocking.
func (a *asyncLoader) drain(s *Store, stats *FrameStats) error {
	var firstErr error
	for {
		select {
		case res := <-a.results:
			if err := a.apply(s, res, stats); err != nil && firstErr == nil {
				firstErr = err
			}
		default:
			return firstErr
		}
	}
}

// apply swaps a result into its slot, or discards it when the slot is now
// wanted for another coordinate.
func (a *asyncLoader) apply(s *Store, res chunkResult, stats *FrameStats) error {
	a.inflight--
	sl := &s.slots[res.slot]
	sl.pending = false

	if res.panic != nil {
		// Mesher invariant breaches surface on the driving goroutine.
		panic(res.panic)
	}

	if res.coord != sl.wanted {
		a.grids.Put(res.grid)
		stats.Discarded++
		s.log.Debug("discarded stale chunk",
			zap.Stringer("coord", res.coord),
			zap.Stringer("wanted", sl.wanted))
		if !sl.visible.Load().Ready(sl.wanted) {
			a.submit(s, res.slot, sl.wanted)
		}
		return nil
	}

	c := &Chunk{
		Position:    res.coord,
		IsGenerated: true,
		Grid:        res.grid,
		Handle:      sl.handle,
	}
	// A failed upload still replaces the old content: the handle's buffers
	// are undefined, and an ungenerated chunk is resubmitted next Update.
	err := s.upload(c, res.mesh)
	if err != nil {
		c.IsGenerated = false
	} else {
		s.finish(res.slot, sl, c, res.mesh)
	}

	if old := sl.visible.Swap(c); old != nil && old.Grid != nil {
		a.grids.Put(old.Grid)
	}
	return err
}

// Flush blocks until every in-flight job has been applied, then rebuilds
// the draw list. It is a no-op for a synchronous store.
func (s *Store) Flush(ctx context.Context) (FrameStats, error) {
	if s.closed {
		return FrameStats{}, ErrClosed
	}
	stats := FrameStats{Center: s.center}
	if s.async == nil {
		s.rebuildDrawList()
		stats.Drawable = len(s.drawList)
		return stats, nil
	}

	before := s.generations
	var firstErr error
	a := s.async
loop:
	for a.inflight > 0 {
		select {
		case res := <-a.results:
			if err := a.apply(s, res, &stats); err != nil && firstErr == nil {
				firstErr = err
			}
		case <-ctx.Done():
			if firstErr == nil {
				firstErr = ctx.Err()
			}
			break loop
		}
	}
	s.rebuildDrawList()
	stats.Regenerated = int(s.generations - before)
	stats.Drawable = len(s.drawList)
	stats.Pending = a.inflight
	return stats, firstErr
}

func (a *asyncLoader) stop() {
	a.pool.StopAndWait()
	for a.inflight > 0 {
		res := <-a.results
		a.inflight--
		if res.grid != nil {
			a.grids.Put(res.grid)
		}
	}
}
