package texture

import (
	"fmt"
	"sync"
)

// Image is a finished pixel buffer ready for upload. *raster.Canvas
// implements it.
type Image interface {
	Width() int
	Height() int
	Stride() int
	Pix() []byte
}

// Graphics serializes all texture creation and destruction on one device.
// Share a single Graphics between all sources that use the same device.
type Graphics struct {
	mu  sync.Mutex
	dev Device
}

func NewGraphics(dev Device) *Graphics {
	return &Graphics{dev: dev}
}

// Do runs fn while holding the graphics lock. The lock is released when fn
// returns, including on panic.
func (g *Graphics) Do(fn func(dev Device) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.dev == nil {
		return ErrNilDevice
	}
	return fn(g.dev)
}

// Destroy releases t. A nil or already destroyed texture is a no-op.
func (g *Graphics) Destroy(t *Texture) {
	if t.IsDestroyed() {
		return
	}
	_ = g.Do(func(dev Device) error {
		destroyLocked(dev, t)
		return nil
	})
}

// Replace destroys prev and then creates a texture from img, in that order and
// under one lock acquisition. The old texture is gone even when creation
// fails. A nil img only destroys prev. The pixels are copied by the device,
// so img may be released as soon as Replace returns.
func (g *Graphics) Replace(prev *Texture, img Image, label string) (*Texture, error) {
	var out *Texture
	err := g.Do(func(dev Device) error {
		destroyLocked(dev, prev)
		if img == nil {
			return nil
		}
		t, err := uploadLocked(dev, img, label)
		if err != nil {
			return err
		}
		out = t
		return nil
	})
	return out, err
}

func destroyLocked(dev Device, t *Texture) {
	if t.IsDestroyed() {
		return
	}
	dev.DestroyTexture(t.handle)
	t.destroyed = true
}

func uploadLocked(dev Device, img Image, label string) (*Texture, error) {
	w, h := img.Width(), img.Height()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	if limit := dev.MaxTextureSize(); limit > 0 && (uint32(w) > limit || uint32(h) > limit) {
		return nil, fmt.Errorf("%w: %dx%d (max %d)", ErrTextureTooLarge, w, h, limit)
	}
	desc := NewDescriptor(label, w, h)
	pix, err := packed(img, desc)
	if err != nil {
		return nil, err
	}
	handle, err := dev.CreateTexture(desc, pix)
	if err != nil {
		return nil, fmt.Errorf("texture: create %s: %w", label, err)
	}
	return &Texture{handle: handle, desc: desc}, nil
}

// packed returns the pixel rows without padding.
func packed(img Image, desc Descriptor) ([]byte, error) {
	pix, stride := img.Pix(), img.Stride()
	row := int(desc.Size.Width) * BytesPerPixel
	rows := int(desc.Size.Height)
	if stride < row || len(pix) < (rows-1)*stride+row {
		return nil, fmt.Errorf("%w: %d bytes with stride %d for %dx%d", ErrInvalidSize, len(pix), stride, desc.Size.Width, rows)
	}
	if stride == row {
		return pix[:rows*row], nil
	}
	out := make([]byte, 0, rows*row)
	for y := 0; y < rows; y++ {
		out = append(out, pix[y*stride:y*stride+row]...)
	}
	return out, nil
}
