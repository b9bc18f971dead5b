package raster

import "sort"

// Color is a straight-alpha color with channels normalized to [0, 1].
type Color struct {
	R, G, B, A float64
}

// RGBA builds a Color from normalized channels.
func RGBA(r, g, b, a float64) Color { return Color{r, g, b, a} }

// Pixel is one premultiplied RGBA pixel.
type Pixel [4]uint8

// Premultiplied quantizes c to 8 bits through a 16-bit intermediate
// (v*65535 + 0.5, then the high byte).
func (c Color) Premultiplied() Pixel {
	a := clamp01(c.A)
	return Pixel{
		quantize(clamp01(c.R) * a),
		quantize(clamp01(c.G) * a),
		quantize(clamp01(c.B) * a),
		quantize(a),
	}
}

func quantize(v float64) uint8 {
	return uint8(uint16(v*65535.0+0.5) >> 8)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// Source yields the color painted at a pixel center. ok is false where the
// source paints nothing, leaving the destination untouched.
type Source interface {
	At(x, y float64) (px Pixel, ok bool)
}

type solid struct{ px Pixel }

func (s solid) At(_, _ float64) (Pixel, bool) { return s.px, true }

// Solid is a uniform source.
func Solid(c Color) Source { return solid{px: c.Premultiplied()} }

// Stop is a gradient color stop.
type Stop struct {
	Offset float64
	Color  Color
}

// LinearGradient interpolates its stops along the segment (X0,Y0)-(X1,Y1).
// Colors are interpolated unpremultiplied and premultiplied per pixel.
// Outside the segment's span the gradient paints nothing (cairo's
// EXTEND_NONE), so the destination there is kept.
type LinearGradient struct {
	X0, Y0, X1, Y1 float64
	Stops          []Stop
}

func NewLinearGradient(x0, y0, x1, y1 float64) *LinearGradient {
	return &LinearGradient{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// AddStop appends a stop and keeps stops sorted by offset.
func (g *LinearGradient) AddStop(offset float64, c Color) *LinearGradient {
	g.Stops = append(g.Stops, Stop{Offset: offset, Color: c})
	sort.SliceStable(g.Stops, func(i, j int) bool { return g.Stops[i].Offset < g.Stops[j].Offset })
	return g
}

func (g *LinearGradient) At(x, y float64) (Pixel, bool) {
	if len(g.Stops) == 0 {
		return Pixel{}, false
	}
	dx, dy := g.X1-g.X0, g.Y1-g.Y0
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		// degenerate gradients paint nothing
		return Pixel{}, false
	}
	t := ((x-g.X0)*dx + (y-g.Y0)*dy) / lenSq
	if t < 0 || t > 1 {
		return Pixel{}, false
	}
	return g.colorAt(t).Premultiplied(), true
}

func (g *LinearGradient) colorAt(t float64) Color {
	first, last := g.Stops[0], g.Stops[len(g.Stops)-1]
	if t <= first.Offset {
		return first.Color
	}
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(g.Stops); i++ {
		b := g.Stops[i]
		if t > b.Offset {
			continue
		}
		a := g.Stops[i-1]
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		f := (t - a.Offset) / span
		return Color{
			R: a.Color.R + (b.Color.R-a.Color.R)*f,
			G: a.Color.G + (b.Color.G-a.Color.G)*f,
			B: a.Color.B + (b.Color.B-a.Color.B)*f,
			A: a.Color.A + (b.Color.A-a.Color.A)*f,
		}
	}
	return last.Color
}
