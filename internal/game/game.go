// Package game runs the window, input, camera and world store frame loop.
package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/blockgl/internal/config"
	"github.com/Faultbox/blockgl/internal/engine/camera"
	"github.com/Faultbox/blockgl/internal/engine/debug"
	"github.com/Faultbox/blockgl/internal/engine/input"
	"github.com/Faultbox/blockgl/internal/engine/renderer"
	"github.com/Faultbox/blockgl/internal/engine/texture"
	"github.com/Faultbox/blockgl/internal/engine/window"
	"github.com/Faultbox/blockgl/internal/logger"
	"github.com/Faultbox/blockgl/internal/mesher"
	"github.com/Faultbox/blockgl/internal/world"
)

// Title is the window title prefix.
const Title = "blockgl"

// statsInterval is how often frame and streaming stats are logged.
const statsInterval = time.Second

// Game is the main game instance.
type Game struct {
	cfg      *config.Config
	log      *zap.Logger
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.FlyCamera
	store    *world.Store
	shots    *debug.Screenshots
}

// New creates the window, GL state and world store.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		cfg: cfg,
		log: logger.Named("game"),
	}

	limits := mesher.LimitsFor(cfg.World.ChunkSize)
	g.log.Info("initializing game",
		zap.Int("chunk_size", cfg.World.ChunkSize),
		zap.Int("load_radius", cfg.World.LoadRadius),
		zap.Int("max_faces", limits.Faces),
	)

	var err error
	g.window, err = window.New(window.Config{
		Title:        Title,
		Width:        cfg.Graphics.Width,
		Height:       cfg.Graphics.Height,
		Fullscreen:   cfg.Graphics.Fullscreen,
		VSync:        cfg.Graphics.VSync,
		CaptureMouse: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	layers, err := texture.LoadLayers(texture.DirFS(""), cfg.Textures.Layers, cfg.Textures.Size, logger.Named("texture"))
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to load textures: %w", err)
	}

	width, height := g.window.GetSize()
	g.renderer, err = renderer.New(renderer.Config{
		Width:     width,
		Height:    height,
		Wireframe: cfg.Graphics.Wireframe,
	}, layers)
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.store, err = cfg.OpenWorld(g.renderer, logger.Named("world"))
	if err != nil {
		g.Close()
		return nil, err
	}

	g.input = input.New()
	g.shots = debug.NewScreenshots("screenshots", Title)
	g.camera = camera.NewFly(cfg.Camera.Camera(), mgl32.Vec3(cfg.Camera.Start))

	g.log.Info("game initialized successfully")
	return g, nil
}

// Run drives frames until the window closes or Escape is pressed.
func (g *Game) Run() error {
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	statsTimer := time.Now()
	var acc world.FrameStats

	g.log.Info("starting game loop")

	for g.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if g.input.Update() {
			g.running = false
			break
		}
		for _, event := range g.input.Events() {
			if event.Type == input.EventWindowResize {
				g.renderer.Resize(g.window.GetSize())
			}
		}
		capture := g.input.IsKeyPressed(sdl.SCANCODE_F12)

		g.camera.Update(g.input.Controls(), dt)

		stats, err := g.store.Update(g.camera.Position)
		if errors.Is(err, world.ErrClosed) {
			return err
		}
		if err != nil {
			// Failed slots stay ungenerated and retry next frame.
			g.log.Warn("chunk streaming", zap.Error(err))
		}
		acc.Requested += stats.Requested
		acc.Regenerated += stats.Regenerated
		acc.Discarded += stats.Discarded

		g.render()
		if capture {
			g.screenshot()
		}
		g.window.SwapBuffers()

		frameCount++
		if elapsed := time.Since(statsTimer); elapsed >= statsInterval {
			fps := float64(frameCount) / elapsed.Seconds()
			acc.Center, acc.Drawable, acc.Pending = stats.Center, stats.Drawable, stats.Pending
			g.log.Debug("frame stats",
				zap.Float64("fps", fps),
				zap.Any("position", g.camera.Position),
				zap.Stringer("stream", acc),
			)
			g.window.SetTitle(fmt.Sprintf("%s - %.0f fps - chunk %s", Title, fps, stats.Center))
			frameCount = 0
			statsTimer = time.Now()
			acc = world.FrameStats{}
		}
	}

	return nil
}

func (g *Game) render() {
	view := g.camera.ViewMatrix()
	projection := g.camera.ProjectionMatrix(g.renderer.Aspect())

	g.renderer.Begin(g.store.Scene, view, projection)
	g.store.Draw()
	g.renderer.End()
	g.renderer.CheckErrors("frame")
}

// screenshot saves the frame just rendered, before the buffer swap.
func (g *Game) screenshot() {
	pixels, width, height := g.renderer.ReadPixels()
	name, err := g.shots.Save(pixels, width, height)
	if err != nil {
		g.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", name))
}

// Close cleans up game resources. The store is closed before the
// renderer because it owns the chunk buffers.
func (g *Game) Close() {
	g.log.Info("closing game")

	if g.store != nil {
		if err := g.store.Close(); err != nil {
			g.log.Warn("closing world store", zap.Error(err))
		}
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
