package style

// 该文件定义一次渲染所需的全部样式参数，渲染期间视为不可变。

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidStyle is returned by Validate for styles the renderer cannot honour.
var ErrInvalidStyle = errors.New("style: invalid text style")

// DefaultFace is the font family used when the host supplies none.
const DefaultFace = "Sans Serif"

// Align is the horizontal alignment of a text block.
// The numeric values match the host's stored settings.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	default:
		return fmt.Sprintf("Align(%d)", int(a))
	}
}

// Valid reports whether a is one of the three known alignments.
func (a Align) Valid() bool {
	switch a {
	case AlignLeft, AlignRight, AlignCenter:
		return true
	default:
		return false
	}
}

// ParseAlign accepts left/right/center (case-insensitive) and the aliases start/end/middle.
func ParseAlign(s string) (Align, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "start":
		return AlignLeft, nil
	case "right", "end":
		return AlignRight, nil
	case "center", "centre", "middle":
		return AlignCenter, nil
	default:
		return AlignLeft, fmt.Errorf("unknown alignment %q", s)
	}
}

// Outline describes the stroke drawn around every glyph.
type Outline struct {
	Enabled bool
	Width   int
	Color   Color
}

// Shadow describes the solid drop shadow painted under every glyph.
type Shadow struct {
	Enabled bool
	Offset  int
	Color   Color
}

// TextStyle is the per-render configuration of a text source.
// Outline and Shadow parameters only take effect when their Enabled flag is set.
type TextStyle struct {
	FontFamily string
	FontSize   int // logical points
	Bold       bool
	Italic     bool
	Align      Align

	ColorTop    Color
	ColorBottom Color

	Outline Outline
	Shadow  Shadow

	CustomWidth int // 0 = auto
	WordWrap    bool
}

// Default returns the host defaults: 32pt, opaque white fill, black outline and shadow.
func Default() TextStyle {
	return TextStyle{
		FontFamily:  DefaultFace,
		FontSize:    32,
		Align:       AlignLeft,
		ColorTop:    0xFFFFFFFF,
		ColorBottom: 0xFFFFFFFF,
		Outline:     Outline{Width: 2, Color: 0xFF000000},
		Shadow:      Shadow{Offset: 4, Color: 0xFF000000},
	}
}

// OutlineWidth is the effective outline width: zero unless the outline is enabled.
func (s TextStyle) OutlineWidth() int {
	if !s.Outline.Enabled || s.Outline.Width < 0 {
		return 0
	}
	return s.Outline.Width
}

// ShadowOffset is the effective shadow offset: zero unless the shadow is enabled.
func (s TextStyle) ShadowOffset() int {
	if !s.Shadow.Enabled || s.Shadow.Offset < 0 {
		return 0
	}
	return s.Shadow.Offset
}

// Wraps reports whether layout is constrained to CustomWidth.
func (s TextStyle) Wraps() bool {
	return s.CustomWidth > 0 && s.WordWrap
}

// Validate checks the numeric ranges. An empty font family is not an error:
// the renderer treats it as "nothing to draw".
func (s TextStyle) Validate() error {
	var problems []string
	if s.FontSize <= 0 {
		problems = append(problems, fmt.Sprintf("font size %d must be positive", s.FontSize))
	}
	if !s.Align.Valid() {
		problems = append(problems, fmt.Sprintf("unknown alignment %d", int(s.Align)))
	}
	if s.Outline.Width < 0 {
		problems = append(problems, fmt.Sprintf("outline width %d is negative", s.Outline.Width))
	}
	if s.Shadow.Offset < 0 {
		problems = append(problems, fmt.Sprintf("shadow offset %d is negative", s.Shadow.Offset))
	}
	if s.CustomWidth < 0 {
		problems = append(problems, fmt.Sprintf("custom width %d is negative", s.CustomWidth))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidStyle, strings.Join(problems, "; "))
	}
	return nil
}
