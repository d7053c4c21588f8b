package config

import (
	"fmt"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/blockgl/internal/engine/camera"
	"github.com/Faultbox/blockgl/internal/mesher"
	"github.com/Faultbox/blockgl/internal/terrain"
	"github.com/Faultbox/blockgl/internal/world"
)

// WorkerCount resolves Workers, where 0 means one per CPU.
func (w WorldConfig) WorkerCount() int {
	if w.Workers > 0 {
		return w.Workers
	}
	return runtime.NumCPU()
}

// Scene converts the scene settings for the store.
func (s SceneConfig) Scene() world.Scene {
	return world.Scene{
		SkyColor:   mgl32.Vec3(s.SkyColor),
		LightColor: mgl32.Vec3(s.LightColor),
		LightPos:   mgl32.Vec3(s.LightPos),
	}
}

// Camera converts the camera settings.
func (c CameraConfig) Camera() camera.Config {
	return camera.Config{
		FOV:              c.FOV,
		Near:             c.Near,
		Far:              c.Far,
		MouseSensitivity: c.MouseSensitivity,
		Speed:            c.Speed,
		BoostSpeed:       c.BoostSpeed,
	}
}

// OpenWorld builds the generator, mesher and store described by the
// config on top of backend.
func (c *Config) OpenWorld(backend world.Backend, log *zap.Logger) (*world.Store, error) {
	gen, err := terrain.New(c.World.Generator, c.World.Seed)
	if err != nil {
		return nil, err
	}

	opts := []world.Option{
		world.WithLogger(log),
		world.WithScene(c.Scene.Scene()),
	}
	if c.World.Async {
		opts = append(opts, world.WithAsync(c.World.WorkerCount()))
	}

	store, err := world.NewStore(
		world.Config{ChunkSize: c.World.ChunkSize, LoadRadius: c.World.LoadRadius},
		gen,
		mesher.New(c.World.ChunkSize, c.TextureTable()),
		backend,
		opts...,
	)
	if err != nil {
		return nil, fmt.Errorf("open world: %w", err)
	}
	return store, nil
}
