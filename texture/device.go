package texture

import "errors"

var (
	// ErrTextureTooLarge is returned when a dimension exceeds the device limit.
	ErrTextureTooLarge = errors.New("texture: size exceeds device limit")

	// ErrInvalidSize is returned for empty textures or short pixel data.
	ErrInvalidSize = errors.New("texture: invalid size")

	// ErrNilDevice is returned by Graphics without a device.
	ErrNilDevice = errors.New("texture: device is nil")
)

// Handle identifies a texture on its Device.
type Handle uint64

// Device is the GPU texture capability. Implementations are called only while
// the graphics lock is held, so they need no locking of their own for calls
// made through Graphics.
type Device interface {
	// CreateTexture creates a texture and copies pixels into it. pixels is
	// tightly packed (width*4 bytes per row) and is not retained.
	CreateTexture(desc Descriptor, pixels []byte) (Handle, error)

	// DestroyTexture releases the texture. Unknown handles are ignored.
	DestroyTexture(h Handle)

	// MaxTextureSize is the largest width or height accepted.
	MaxTextureSize() uint32
}

// Texture is a live texture on a device. It is destroyed through Graphics.
type Texture struct {
	handle    Handle
	desc      Descriptor
	destroyed bool
}

func (t *Texture) Handle() Handle         { return t.handle }
func (t *Texture) Descriptor() Descriptor { return t.desc }
func (t *Texture) Label() string          { return t.desc.Label }

// Width returns the texture width in pixels, or 0 for a nil texture.
func (t *Texture) Width() uint32 {
	if t == nil {
		return 0
	}
	return t.desc.Size.Width
}

// Height returns the texture height in pixels, or 0 for a nil texture.
func (t *Texture) Height() uint32 {
	if t == nil {
		return 0
	}
	return t.desc.Size.Height
}

// IsDestroyed reports whether the texture has been destroyed.
func (t *Texture) IsDestroyed() bool {
	return t == nil || t.destroyed
}
