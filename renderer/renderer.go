package renderer

import (
	"errors"
	"fmt"

	"github.com/ByLCY/textsource/layout"
	"github.com/ByLCY/textsource/raster"
	"github.com/ByLCY/textsource/style"
)

// ErrSkip reports that there is nothing to draw: the text or the font family
// is empty, or the planned canvas has no area. It is not a failure.
var ErrSkip = errors.New("renderer: nothing to render")

// Measurer is the layout engine adapter. *layout.Adapter implements it.
type Measurer interface {
	Measure(text string, st style.TextStyle) (*layout.Result, error)
}

var _ Measurer = (*layout.Adapter)(nil)

// Renderer 将文本按样式绘制到一块新分配的画布上。
// 每次调用都是独立的：不缓存布局结果，也不复用画布。
type Renderer struct {
	layout Measurer
}

func New(m Measurer) *Renderer {
	return &Renderer{layout: m}
}

// Render measures text, plans the canvas and paints every line with the
// source operator. The caller owns the returned canvas and must Release it
// once its pixels have been consumed. On error no canvas is returned.
func (r *Renderer) Render(text string, st style.TextStyle) (*raster.Canvas, Geometry, error) {
	res, g, err := r.Layout(text, st)
	if err != nil {
		return nil, Geometry{}, err
	}
	canvas, err := r.Paint(res, st, g)
	if err != nil {
		return nil, Geometry{}, err
	}
	return canvas, g, nil
}

// Layout measures text and plans the canvas. It returns ErrSkip when there is
// nothing to draw.
func (r *Renderer) Layout(text string, st style.TextStyle) (*layout.Result, Geometry, error) {
	if text == "" || st.FontFamily == "" {
		return nil, Geometry{}, ErrSkip
	}
	if err := st.Validate(); err != nil {
		return nil, Geometry{}, err
	}

	res, err := r.layout.Measure(text, st)
	if err != nil {
		if errors.Is(err, layout.ErrNothingToLayout) {
			return nil, Geometry{}, ErrSkip
		}
		return nil, Geometry{}, fmt.Errorf("measure: %w", err)
	}
	g := Plan(res, st)
	if g.Width <= 0 || g.Height <= 0 {
		return nil, Geometry{}, ErrSkip
	}
	return res, g, nil
}

// Paint allocates a canvas of the planned size and paints res onto it.
func (r *Renderer) Paint(res *layout.Result, st style.TextStyle, g Geometry) (*raster.Canvas, error) {
	canvas, err := raster.NewCanvas(g.Width, g.Height)
	if err != nil {
		if errors.Is(err, raster.ErrEmptyCanvas) {
			return nil, ErrSkip
		}
		return nil, err
	}

	p := raster.NewPainter(canvas)
	if err := paintLines(p, res.Lines, st, g); err != nil {
		canvas.Release()
		return nil, fmt.Errorf("paint: %w", err)
	}
	return canvas, nil
}
