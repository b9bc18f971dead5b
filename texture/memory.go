package texture

import (
	"bytes"
	"image"
	"sync"
)

// MemoryDevice keeps textures in host memory. It backs the CLI and tests,
// where no GPU is available.
type MemoryDevice struct {
	// MaxSize is the per-axis limit; 0 means 16384.
	MaxSize uint32

	// FailCreate, when set, is returned by every CreateTexture call.
	FailCreate error

	mu      sync.Mutex
	next    Handle
	live    map[Handle]memoryTexture
	created int
}

type memoryTexture struct {
	desc   Descriptor
	pixels []byte
}

var _ Device = (*MemoryDevice)(nil)

func NewMemoryDevice() *MemoryDevice {
	return &MemoryDevice{live: map[Handle]memoryTexture{}}
}

func (m *MemoryDevice) CreateTexture(desc Descriptor, pixels []byte) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailCreate != nil {
		return 0, m.FailCreate
	}
	if len(pixels) != desc.ByteSize() {
		return 0, ErrInvalidSize
	}
	if m.live == nil {
		m.live = map[Handle]memoryTexture{}
	}
	m.next++
	m.created++
	m.live[m.next] = memoryTexture{desc: desc, pixels: bytes.Clone(pixels)}
	return m.next, nil
}

func (m *MemoryDevice) DestroyTexture(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.live, h)
}

func (m *MemoryDevice) MaxTextureSize() uint32 {
	if m.MaxSize == 0 {
		return 16384
	}
	return m.MaxSize
}

// Live is the number of textures created and not yet destroyed.
func (m *MemoryDevice) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.live)
}

// Created is the total number of successful CreateTexture calls.
func (m *MemoryDevice) Created() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.created
}

// Pixels returns the stored bytes of a live texture.
func (m *MemoryDevice) Pixels(h Handle) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.live[h]
	return t.pixels, ok
}

// Image returns a copy of a live texture as a premultiplied RGBA image.
func (m *MemoryDevice) Image(h Handle) (*image.RGBA, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.live[h]
	if !ok {
		return nil, false
	}
	w, hgt := int(t.desc.Size.Width), int(t.desc.Size.Height)
	return &image.RGBA{
		Pix:    bytes.Clone(t.pixels),
		Stride: w * BytesPerPixel,
		Rect:   image.Rect(0, 0, w, hgt),
	}, true
}
