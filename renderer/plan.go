package renderer

import (
	"github.com/ByLCY/textsource/layout"
	"github.com/ByLCY/textsource/style"
)

// Geometry is the canvas size and the offset added to every line's paint
// position.
type Geometry struct {
	Width   int
	Height  int
	XOffset int
	YOffset int
}

// Plan sizes the canvas for res under st.
//
// Padding is the outline width once plus max(outline width, shadow offset)
// on each axis. The horizontal offset follows the alignment only when a fixed
// width is set without word wrap; a wrapped layout is already aligned by the
// typesetter.
func Plan(res *layout.Result, st style.TextStyle) Geometry {
	ow := st.OutlineWidth()
	so := st.ShadowOffset()
	pad := ow + max(ow, so)

	contentWidth := res.Width
	if st.CustomWidth > 0 {
		contentWidth = st.CustomWidth
	}

	x := 0
	if st.CustomWidth > 0 && !st.WordWrap {
		x = alignOffset(st.Align, st.CustomWidth, res.Width)
	}

	return Geometry{
		Width:   contentWidth + pad,
		Height:  res.Height + pad,
		XOffset: x + ow,
		YOffset: ow,
	}
}

// alignOffset places content of width w inside box. Centering truncates toward zero.
func alignOffset(a style.Align, box, w int) int {
	switch a {
	case style.AlignRight:
		return box - w
	case style.AlignCenter:
		return (box - w) / 2
	case style.AlignLeft:
		return 0
	default:
		return 0
	}
}
