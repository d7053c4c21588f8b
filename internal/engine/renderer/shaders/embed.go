// Package shaders embeds the GLSL sources for chunk rendering.
package shaders

import _ "embed"

//go:embed chunk.vert
var ChunkVertex string

//go:embed chunk.frag
var ChunkFragment string
