package renderer

import (
	"fmt"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/textsource/layout"
	"github.com/ByLCY/textsource/raster"
	"github.com/ByLCY/textsource/style"
)

// Painter is the vector raster capability the line painter needs.
// *raster.Painter implements it.
type Painter interface {
	NewPath()
	MoveTo(x, y float64)
	AppendPath(path *canvas.Path)
	SetSource(src raster.Source)
	SetLineWidth(w float64)
	StrokePreserve() error
	Fill() error
}

var _ Painter = (*raster.Painter)(nil)

// paintLines draws every line top to bottom. Each line is finished (shadow,
// then outline, then gradient fill) before the next one starts.
func paintLines(p Painter, lines []layout.LineRecord, st style.TextStyle, g Geometry) error {
	ow := st.OutlineWidth()
	so := st.ShadowOffset()
	shadow := raster.Solid(toRaster(st.Shadow.Color))
	outline := raster.Solid(toRaster(st.Outline.Color))
	top, bottom := toRaster(st.ColorTop), toRaster(st.ColorBottom)

	for i, ln := range lines {
		if ln.Path.Empty() {
			continue
		}
		x := float64(g.XOffset + ln.X)
		y := float64(g.YOffset + ln.Baseline)

		if so > 0 {
			p.NewPath()
			p.MoveTo(x+float64(so), y+float64(so))
			p.AppendPath(ln.Path)
			p.SetSource(shadow)
			if err := p.Fill(); err != nil {
				return fmt.Errorf("line %d shadow: %w", i, err)
			}
		}

		p.NewPath()
		p.MoveTo(x, y)
		p.AppendPath(ln.Path)
		if ow > 0 {
			p.SetSource(outline)
			p.SetLineWidth(float64(2 * ow))
			if err := p.StrokePreserve(); err != nil {
				return fmt.Errorf("line %d outline: %w", i, err)
			}
		}

		// 渐变只覆盖本行的纵向范围
		y0 := float64(ln.Top + g.YOffset)
		y1 := float64(ln.Bottom + g.YOffset)
		grad := raster.NewLinearGradient(0, y0, 0, y1).
			AddStop(0, top).
			AddStop(1, bottom)
		p.SetSource(grad)
		if err := p.Fill(); err != nil {
			return fmt.Errorf("line %d fill: %w", i, err)
		}
	}
	return nil
}

func toRaster(c style.Color) raster.Color {
	r, g, b, a := c.Floats()
	return raster.RGBA(r, g, b, a)
}
