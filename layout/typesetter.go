package layout

import (
	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/textsource/style"
)

// Typesetter is the text shaping and line breaking capability the adapter
// drives. Implementations are stateful and used for a single measurement.
type Typesetter interface {
	// SetFont selects family, size in points and weight/slant.
	SetFont(family string, size int, bold, italic bool) error
	// SetAlignment sets intra-paragraph alignment of the visual lines.
	SetAlignment(align style.Align)
	// SetWrapWidth constrains lines to width; width <= 0 disables wrapping.
	SetWrapWidth(width fixed.Int26_6)
	SetText(text string)
	// Size is the logical size of the laid out text.
	Size() (width, height fixed.Int26_6, err error)
	// Lines returns the visual lines in baseline order.
	Lines() ([]Line, error)
}
