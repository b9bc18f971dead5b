package source

import (
	"errors"
	"fmt"

	"github.com/ByLCY/textsource/layout"
	"github.com/ByLCY/textsource/raster"
	"github.com/ByLCY/textsource/renderer"
	"github.com/ByLCY/textsource/style"
	"github.com/ByLCY/textsource/texture"
)

// Renderer measures and paints text. *renderer.Renderer implements it.
type Renderer interface {
	Layout(text string, st style.TextStyle) (*layout.Result, renderer.Geometry, error)
	Paint(res *layout.Result, st style.TextStyle, g renderer.Geometry) (*raster.Canvas, error)
}

var _ Renderer = (*renderer.Renderer)(nil)

// Render replaces prev with a texture of text drawn in st. prev is always
// destroyed first, so a failed or skipped render leaves no texture behind.
// The result is nil when there is nothing to draw; err is renderer.ErrSkip in
// that case.
func Render(gfx *texture.Graphics, r Renderer, label, text string, st style.TextStyle, prev *texture.Texture) (*texture.Texture, error) {
	return run(gfx, r, label, text, st, prev, func(State) {})
}

// run is Render with a hook observing the state transitions.
func run(gfx *texture.Graphics, r Renderer, label, text string, st style.TextStyle, prev *texture.Texture, enter func(State)) (*texture.Texture, error) {
	enter(Idle)
	gfx.Destroy(prev)
	if text == "" || st.FontFamily == "" {
		return nil, renderer.ErrSkip
	}

	enter(Measuring)
	res, g, err := r.Layout(text, st)
	if err != nil {
		enter(Idle)
		return nil, err
	}

	enter(Painting)
	canvas, err := r.Paint(res, st, g)
	if err != nil {
		enter(Idle)
		return nil, err
	}
	defer canvas.Release()

	tex, err := gfx.Replace(nil, canvas, label)
	if err != nil {
		enter(Idle)
		return nil, fmt.Errorf("upload: %w", err)
	}
	enter(Uploaded)
	return tex, nil
}

func isSkip(err error) bool {
	return errors.Is(err, renderer.ErrSkip)
}
