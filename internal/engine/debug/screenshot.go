// Package debug provides frame capture for inspecting the rendered world.
package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Screenshots writes framebuffer captures as timestamped PNG files.
type Screenshots struct {
	Dir    string // Created on first capture; "" is the working directory
	Prefix string

	now func() time.Time
}

// NewScreenshots creates a capture handler.
func NewScreenshots(dir, prefix string) *Screenshots {
	return &Screenshots{Dir: dir, Prefix: prefix, now: time.Now}
}

// FromGL converts bottom-up RGBA rows, as returned by glReadPixels, into
// a top-down image.
func FromGL(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid viewport %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := width * 4
	for y := range height {
		src := (height - 1 - y) * row
		copy(img.Pix[y*img.Stride:y*img.Stride+row], pixels[src:src+row])
	}
	return img, nil
}

// Save writes glReadPixels output to a new file and returns its path.
func (s *Screenshots) Save(pixels []byte, width, height int) (string, error) {
	img, err := FromGL(pixels, width, height)
	if err != nil {
		return "", err
	}
	return s.SaveImage(img)
}

// SaveImage writes img to a new file and returns its path. Captures in
// the same second get a numeric suffix.
func (s *Screenshots) SaveImage(img image.Image) (string, error) {
	if s.Dir != "" {
		if err := os.MkdirAll(s.Dir, 0o755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, name, err := s.create()
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return name, file.Close()
}

func (s *Screenshots) create() (*os.File, string, error) {
	now := s.now
	if now == nil {
		now = time.Now
	}
	stamp := now().Format("2006-01-02_15-04-05")

	for n := 0; ; n++ {
		base := fmt.Sprintf("%s_%s.png", s.Prefix, stamp)
		if n > 0 {
			base = fmt.Sprintf("%s_%s_%d.png", s.Prefix, stamp, n)
		}
		name := filepath.Join(s.Dir, base)

		f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if os.IsExist(err) {
			continue
		}
		if err != nil {
			return nil, "", fmt.Errorf("creating file: %w", err)
		}
		return f, name, nil
	}
}
