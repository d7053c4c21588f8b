package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image type constants.
const (
	TGATypeUncompressed = 2  // Uncompressed true-color
	TGATypeRLE          = 10 // RLE compressed true-color
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("tga: pixel data truncated")

// DecodeTGA decodes an uncompressed or RLE true-color TGA image with 24
// or 32 bits per pixel. TGA has no magic number, so it cannot be
// registered with image.Decode; callers dispatch on file extension.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("tga: header too short (%d bytes)", len(data))
	}

	idLength := int(data[0])
	if data[1] != 0 {
		return nil, errors.New("tga: color-mapped images not supported")
	}
	imageType := data[2]
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("tga: unsupported image type %d", imageType)
	}
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("tga: unsupported bit depth %d", bpp)
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("tga: empty image %dx%d", width, height)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, errTGATruncated
	}

	d := tgaDecoder{
		src:         data[offset:],
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		stride:      bpp / 8,
		topToBottom: data[17]&0x20 != 0,
	}
	var err error
	if imageType == TGATypeUncompressed {
		err = d.raw(width * height)
	} else {
		err = d.rle(width * height)
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	src         []byte
	pos         int // read offset into src
	img         *image.RGBA
	stride      int // bytes per pixel
	topToBottom bool
	written     int // pixels emitted
}

// next reads one BGR(A) pixel.
func (d *tgaDecoder) next() (color.RGBA, error) {
	if d.pos+d.stride > len(d.src) {
		return color.RGBA{}, errTGATruncated
	}
	p := d.src[d.pos : d.pos+d.stride]
	d.pos += d.stride
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.stride == 4 {
		c.A = p[3]
	}
	return c, nil
}

// emit stores c at the next pixel position. Bottom-up files are flipped
// so row 0 is always the top row.
func (d *tgaDecoder) emit(c color.RGBA) {
	w := d.img.Rect.Dx()
	x, y := d.written%w, d.written/w
	if !d.topToBottom {
		y = d.img.Rect.Dy() - 1 - y
	}
	d.img.SetRGBA(x, y, c)
	d.written++
}

func (d *tgaDecoder) raw(total int) error {
	for d.written < total {
		c, err := d.next()
		if err != nil {
			return err
		}
		d.emit(c)
	}
	return nil
}

func (d *tgaDecoder) rle(total int) error {
	for d.written < total {
		if d.pos >= len(d.src) {
			return errTGATruncated
		}
		header := d.src[d.pos]
		d.pos++
		count := min(int(header&0x7F)+1, total-d.written)

		if header&0x80 != 0 {
			c, err := d.next()
			if err != nil {
				return err
			}
			for range count {
				d.emit(c)
			}
			continue
		}
		for range count {
			c, err := d.next()
			if err != nil {
				return err
			}
			d.emit(c)
		}
	}
	return nil
}
