// Package texture hands finished canvases to a GPU device. Every create and
// destroy runs under the single graphics lock owned by Graphics.
package texture

import (
	"github.com/gogpu/gputypes"
)

// BytesPerPixel of the only format produced here, 8-bit RGBA.
const BytesPerPixel = 4

// Descriptor describes a texture to create.
type Descriptor struct {
	// Label is an optional debug name.
	Label string

	// Size is the texture dimensions. Depth is always 1.
	Size gputypes.Extent3D

	// MipLevelCount is 1: overlay textures are not mipmapped.
	MipLevelCount uint32

	// SampleCount is 1.
	SampleCount uint32

	Dimension gputypes.TextureDimension
	Format    gputypes.TextureFormat
	Usage     gputypes.TextureUsage
}

// NewDescriptor returns the descriptor of a single-level 2D RGBA8 texture that
// is sampled by the compositor and filled by a copy.
func NewDescriptor(label string, width, height int) Descriptor {
	return Descriptor{
		Label: label,
		Size: gputypes.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	}
}

// ByteSize is the size of a tightly packed upload for d.
func (d Descriptor) ByteSize() int {
	return int(d.Size.Width) * int(d.Size.Height) * BytesPerPixel
}
