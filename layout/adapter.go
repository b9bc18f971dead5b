package layout

import (
	"errors"
	"fmt"

	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/textsource/fonts"
	"github.com/ByLCY/textsource/style"
)

// ErrNothingToLayout is returned for empty text or an unset font family.
// Callers treat it as "skip rendering", not as a failure.
var ErrNothingToLayout = errors.New("layout: empty text or font family")

// Adapter measures text with a fresh Typesetter per call. Nothing is cached
// between calls.
type Adapter struct {
	newTypesetter func() Typesetter
}

// NewAdapter returns an adapter backed by SfntTypesetter over lib.
func NewAdapter(lib *fonts.Library) *Adapter {
	return &Adapter{newTypesetter: func() Typesetter { return NewSfntTypesetter(lib) }}
}

// NewAdapterFunc returns an adapter using typesetters created by fn.
func NewAdapterFunc(fn func() Typesetter) *Adapter {
	return &Adapter{newTypesetter: fn}
}

// Measure lays out text under st. Wrapping is enabled only when the style has
// a custom width and word wrap set; otherwise lines come from explicit breaks.
// st is not modified.
func (a *Adapter) Measure(text string, st style.TextStyle) (*Result, error) {
	if text == "" || st.FontFamily == "" {
		return nil, ErrNothingToLayout
	}
	if a == nil || a.newTypesetter == nil {
		return nil, fmt.Errorf("layout: adapter has no typesetter")
	}
	ts := a.newTypesetter()
	if err := ts.SetFont(st.FontFamily, st.FontSize, st.Bold, st.Italic); err != nil {
		return nil, err
	}
	ts.SetAlignment(st.Align)
	if st.Wraps() {
		ts.SetWrapWidth(fixed.I(st.CustomWidth))
	} else {
		ts.SetWrapWidth(0)
	}
	ts.SetText(text)

	w, h, err := ts.Size()
	if err != nil {
		return nil, fmt.Errorf("layout: measure: %w", err)
	}
	lines, err := ts.Lines()
	if err != nil {
		return nil, fmt.Errorf("layout: lines: %w", err)
	}

	res := &Result{
		Width:  toPixels(w),
		Height: toPixels(h),
		Lines:  make([]LineRecord, 0, len(lines)),
	}
	for _, ln := range lines {
		res.Lines = append(res.Lines, LineRecord{
			X:        toPixels(ln.X),
			Baseline: toPixels(ln.Baseline),
			Top:      toPixels(ln.Top),
			Bottom:   toPixels(ln.Bottom),
			Width:    toPixels(ln.Width),
			Text:     ln.Text,
			Path:     ln.Path,
		})
	}
	return res, nil
}
