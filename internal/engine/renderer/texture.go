package renderer

import (
	"errors"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/blockgl/internal/engine/texture"
)

// mipLevels is the storage depth of the block texture array.
const mipLevels = 2

// TextureArray is a GL_TEXTURE_2D_ARRAY holding one block texture per layer.
type TextureArray struct {
	ID     uint32
	Layers int
}

// NewTextureArray uploads packed RGBA8 layers with nearest filtering so
// pixel art stays sharp.
func NewTextureArray(l *texture.Layers) (*TextureArray, error) {
	if l == nil || l.Count == 0 || len(l.Pix) == 0 {
		return nil, errors.New("no texture layers")
	}

	t := &TextureArray{Layers: l.Count}
	gl.GenTextures(1, &t.ID)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, t.ID)

	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_BASE_LEVEL, 0)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAX_LEVEL, mipLevels-1)
	gl.TexImage3D(gl.TEXTURE_2D_ARRAY, 0, gl.RGBA8,
		int32(l.Size), int32(l.Size), int32(l.Count),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&l.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D_ARRAY)

	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MIN_FILTER, gl.NEAREST_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_T, gl.REPEAT)

	gl.BindTexture(gl.TEXTURE_2D_ARRAY, 0)
	return t, nil
}

// Bind binds the array to a texture unit.
func (t *TextureArray) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, t.ID)
}

// Delete frees the texture.
func (t *TextureArray) Delete() {
	if t.ID != 0 {
		gl.DeleteTextures(1, &t.ID)
		t.ID = 0
	}
}
