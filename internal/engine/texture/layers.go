// Package texture decodes block textures and packs them into the layer
// data of a 2D texture array.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png" // register PNG decoder
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp" // register BMP decoder
	"golang.org/x/image/draw"
)

// BytesPerPixel is the size of one RGBA8 texel.
const BytesPerPixel = 4

// Layers is packed RGBA8 data for a square texture array.
type Layers struct {
	Size  int // Edge length of every layer in texels
	Count int
	Pix   []byte // Count*Size*Size*4 bytes, layer-major, rows top to bottom
}

// Layer returns the texels of layer i.
func (l *Layers) Layer(i int) []byte {
	n := l.Size * l.Size * BytesPerPixel
	return l.Pix[i*n : (i+1)*n]
}

// Decode decodes a texture file. TGA is chosen by extension; anything
// else goes through image.Decode (PNG, BMP).
func Decode(name string, data []byte) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		return DecodeTGA(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

// BuildLayers scales every image to size×size with nearest-neighbour
// sampling and packs them in order.
func BuildLayers(images []image.Image, size int) (*Layers, error) {
	if size <= 0 {
		return nil, fmt.Errorf("texture: invalid layer size %d", size)
	}
	if len(images) == 0 {
		return nil, errors.New("texture: no layers")
	}

	out := &Layers{
		Size:  size,
		Count: len(images),
		Pix:   make([]byte, 0, len(images)*size*size*BytesPerPixel),
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	for i, img := range images {
		if img == nil {
			return nil, fmt.Errorf("texture: layer %d is nil", i)
		}
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
		out.Pix = append(out.Pix, dst.Pix...)
	}
	return out, nil
}

// Checker returns a two-colour checkerboard with 2×2 cells, used when a
// layer file is missing.
func Checker(size int, a, b color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cell := max(size/2, 1)
	for y := range size {
		for x := range size {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			img.Set(x, y, c)
		}
	}
	return img
}

// Fallback tile colours.
var (
	FallbackA = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	FallbackB = color.RGBA{A: 255}
)

// LoadLayers reads each path from fsys and builds the array. Paths use
// fs.FS syntax: slash separated and relative. Missing or
// undecodable files are replaced by a checker tile so a broken asset
// directory still renders.
func LoadLayers(fsys fs.FS, paths []string, size int, log *zap.Logger) (*Layers, error) {
	if log == nil {
		log = zap.NewNop()
	}

	images := make([]image.Image, len(paths))
	for i, p := range paths {
		img, err := loadOne(fsys, p)
		if err != nil {
			log.Warn("texture layer unavailable, using fallback",
				zap.Int("layer", i), zap.String("path", p), zap.Error(err))
			img = Checker(size, FallbackA, FallbackB)
		}
		images[i] = img
	}

	layers, err := BuildLayers(images, size)
	if err != nil {
		return nil, err
	}
	log.Info("texture layers loaded", zap.Int("layers", layers.Count), zap.Int("size", size))
	return layers, nil
}

func loadOne(fsys fs.FS, path string) (image.Image, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}
	img, err := Decode(path, data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// DirFS is os.DirFS with "" meaning the working directory.
func DirFS(dir string) fs.FS {
	if dir == "" {
		dir = "."
	}
	return os.DirFS(dir)
}
