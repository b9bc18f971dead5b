package raster

import (
	"errors"
	"fmt"
	"image"
)

// MaxDimension bounds each canvas axis, matching common GPU texture limits.
const MaxDimension = 16384

var (
	ErrEmptyCanvas    = errors.New("raster: canvas has zero area")
	ErrCanvasTooLarge = errors.New("raster: canvas exceeds maximum dimension")
	ErrReleased       = errors.New("raster: canvas already released")
)

// Canvas is a premultiplied RGBA pixel buffer, 4 bytes per pixel.
// It is owned by one render call and released once its pixels are uploaded.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas allocates a zeroed (fully transparent) canvas.
func NewCanvas(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyCanvas, width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d (max %d)", ErrCanvasTooLarge, width, height, MaxDimension)
	}
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, width, height))}, nil
}

func (c *Canvas) Width() int {
	if c.img == nil {
		return 0
	}
	return c.img.Rect.Dx()
}

func (c *Canvas) Height() int {
	if c.img == nil {
		return 0
	}
	return c.img.Rect.Dy()
}

// Stride is the byte distance between rows.
func (c *Canvas) Stride() int {
	if c.img == nil {
		return 0
	}
	return c.img.Stride
}

// Pix exposes the raw bytes. The slice is only valid until Release.
func (c *Canvas) Pix() []byte {
	if c.img == nil {
		return nil
	}
	return c.img.Pix
}

// Bounds is the canvas rectangle.
func (c *Canvas) Bounds() image.Rectangle {
	if c.img == nil {
		return image.Rectangle{}
	}
	return c.img.Rect
}

// Release drops the pixel buffer. Calling it twice is harmless.
func (c *Canvas) Release() { c.img = nil }

func (c *Canvas) Released() bool { return c.img == nil }

// PixelAt returns the premultiplied pixel at (x, y).
func (c *Canvas) PixelAt(x, y int) Pixel {
	if c.img == nil || !(image.Point{x, y}).In(c.img.Rect) {
		return Pixel{}
	}
	i := c.img.PixOffset(x, y)
	s := c.img.Pix[i : i+4 : i+4]
	return Pixel{s[0], s[1], s[2], s[3]}
}
