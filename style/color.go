package style

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a straight-alpha 0xAARRGGBB value.
type Color uint32

// ARGB builds a Color from 8-bit channels.
func ARGB(a, r, g, b uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

func (c Color) A() uint8 { return uint8(c >> 24) }
func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }

// Floats returns the normalized channels. Each 8-bit channel is divided by 256,
// so a full channel maps to 255/256 rather than 1.
func (c Color) Floats() (r, g, b, a float64) {
	return float64(c.R()) / 256.0,
		float64(c.G()) / 256.0,
		float64(c.B()) / 256.0,
		float64(c.A()) / 256.0
}

func (c Color) String() string {
	return fmt.Sprintf("#%08X", uint32(c))
}

// ParseColor accepts #RRGGBB (opaque), #AARRGGBB, 0xAARRGGBB or a decimal integer.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		hex := s[1:]
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid color %q: %w", s, err)
		}
		switch len(hex) {
		case 6:
			return Color(0xFF000000 | uint32(v)), nil
		case 8:
			return Color(v), nil
		default:
			return 0, fmt.Errorf("invalid color %q: want #RRGGBB or #AARRGGBB", s)
		}
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		v, err := strconv.ParseUint(s[2:], 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid color %q: %w", s, err)
		}
		return Color(v), nil
	default:
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid color %q: %w", s, err)
		}
		return Color(v), nil
	}
}
