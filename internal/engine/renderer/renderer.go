// Package renderer draws chunk meshes with OpenGL 4.1.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/blockgl/internal/engine/renderer/shaders"
	"github.com/Faultbox/blockgl/internal/engine/shader"
	"github.com/Faultbox/blockgl/internal/engine/texture"
	"github.com/Faultbox/blockgl/internal/logger"
	"github.com/Faultbox/blockgl/internal/world"
)

// Config holds renderer configuration.
type Config struct {
	Width     int
	Height    int
	Wireframe bool
}

// Uniform names used by the chunk program.
const (
	uniformView         = "view"
	uniformProjection   = "projection"
	uniformTextureArray = "textureArray"
	uniformLightPos     = "lightPos"
	uniformLightColor   = "lightColor"
	uniformFogColor     = "fogColor"
)

// Renderer owns the chunk shader and texture array, and implements
// world.Backend with one vertex array per store slot.
type Renderer struct {
	config  Config
	program *shader.Program
	texture *TextureArray
	log     *zap.Logger

	chunks map[world.Handle]*chunkBuffers
	nextID world.Handle
}

var _ world.Backend = (*Renderer)(nil)

// New creates a new renderer.
// Must be called after the OpenGL context is created.
func New(cfg Config, layers *texture.Layers) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
		chunks: make(map[world.Handle]*chunkBuffers),
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	var err error
	r.program, err = shader.New(shaders.ChunkVertex, shaders.ChunkFragment,
		uniformView, uniformProjection, uniformTextureArray,
		uniformLightPos, uniformLightColor, uniformFogColor,
	)
	if err != nil {
		return nil, fmt.Errorf("chunk shader: %w", err)
	}

	r.texture, err = NewTextureArray(layers)
	if err != nil {
		r.program.Delete()
		return nil, fmt.Errorf("texture array: %w", err)
	}

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	r.CheckErrors("init")
	return r, nil
}

// Close releases the shader and texture. Chunk buffers belong to the
// world store and are released through DestroyResources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer", zap.Int("leaked_chunks", len(r.chunks)))
	for h := range r.chunks {
		r.DestroyResources(h)
	}
	if r.texture != nil {
		r.texture.Delete()
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin clears to the sky colour and binds the chunk program with the
// frame's camera and lighting. Chunk draws follow until the next Begin.
func (r *Renderer) Begin(scene world.Scene, view, projection mgl32.Mat4) {
	sky := scene.SkyColor
	gl.ClearColor(sky[0], sky[1], sky[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	if r.config.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	r.program.Use()
	gl.UniformMatrix4fv(r.program.Uniform(uniformView), 1, false, &view[0])
	gl.UniformMatrix4fv(r.program.Uniform(uniformProjection), 1, false, &projection[0])
	gl.Uniform3fv(r.program.Uniform(uniformLightPos), 1, &scene.LightPos[0])
	gl.Uniform3fv(r.program.Uniform(uniformLightColor), 1, &scene.LightColor[0])
	gl.Uniform3fv(r.program.Uniform(uniformFogColor), 1, &sky[0])

	r.texture.Bind(0)
	gl.Uniform1i(r.program.Uniform(uniformTextureArray), 0)
}

// End unbinds per-frame state.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
}

// CheckErrors drains the GL error queue and logs each entry. Returns the
// number of errors seen.
func (r *Renderer) CheckErrors(where string) int {
	n := 0
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		r.log.Error("OpenGL error", zap.String("where", where), zap.String("code", errorName(code)))
		n++
	}
	return n
}

func errorName(code uint32) string {
	switch code {
	case gl.INVALID_ENUM:
		return "INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "OUT_OF_MEMORY"
	default:
		return fmt.Sprintf("0x%04X", code)
	}
}

// ReadPixels returns the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	if width <= 0 || height <= 0 {
		return nil, width, height
	}
	pixels = make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}
