package raster

import (
	"errors"
	"image"
	"image/draw"
	"math"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/vector"
)

// Tolerance is the maximum distance, in pixels, between a curve and its
// flattened approximation.
const Tolerance = 0.1

// ErrNoSource is returned when painting before a source was set.
var ErrNoSource = errors.New("raster: no source set")

// pixelSpace maps path units one to one onto pixels.
var pixelSpace = canvas.DPMM(1)

// Painter draws paths onto a Canvas. It keeps a current path, a current point
// and a source, in the spirit of a cairo context with the SOURCE operator:
// inside a shape the destination is replaced by the source weighted by
// coverage, outside it is left untouched. A Painter is not safe for
// concurrent use.
type Painter struct {
	canvas    *Canvas
	src       Source
	lineWidth float64

	path       *canvas.Path
	curX, curY float64

	rast vector.Rasterizer
	mask *image.Alpha
}

// NewPainter returns a painter targeting c with a line width of 2.
func NewPainter(c *Canvas) *Painter {
	return &Painter{
		canvas:    c,
		lineWidth: 2,
		path:      &canvas.Path{},
	}
}

func (p *Painter) SetSource(src Source)   { p.src = src }
func (p *Painter) SetLineWidth(w float64) { p.lineWidth = w }

// MoveTo sets the current point. Paths appended afterwards are placed relative to it.
func (p *Painter) MoveTo(x, y float64) {
	p.curX, p.curY = x, y
}

// AppendPath adds a copy of q to the current path, translated to the current point.
func (p *Painter) AppendPath(q *canvas.Path) {
	if q.Empty() {
		return
	}
	p.path = p.path.Append(q.Copy().Translate(p.curX, p.curY))
}

// NewPath clears the current path.
func (p *Painter) NewPath() { p.path = &canvas.Path{} }

// Path returns a copy of the current path.
func (p *Painter) Path() *canvas.Path { return p.path.Copy() }

// Fill fills the current path with the source and clears the path.
func (p *Painter) Fill() error {
	err := p.paint(p.path)
	p.NewPath()
	return err
}

// StrokePreserve strokes the current path with round joins and caps and keeps
// the path, so it can be filled next. The stroke extends LineWidth/2 on each
// side of the contour.
func (p *Painter) StrokePreserve() error {
	if err := p.ready(); err != nil {
		return err
	}
	if p.lineWidth <= 0 || p.path.Empty() {
		return nil
	}
	return p.paint(p.path.Stroke(p.lineWidth, canvas.RoundCap, canvas.RoundJoin, Tolerance))
}

func (p *Painter) ready() error {
	if p.canvas == nil || p.canvas.Released() {
		return ErrReleased
	}
	if p.src == nil {
		return ErrNoSource
	}
	return nil
}

// paint rasterizes shape once and composites the source through its coverage.
func (p *Painter) paint(shape *canvas.Path) error {
	if err := p.ready(); err != nil {
		return err
	}
	if shape.Empty() {
		return nil
	}
	// bounds of the flattened shape are exact, curves included
	flat := shape.Flatten(Tolerance)
	rect, ok := p.area(flat.FastBounds())
	if !ok {
		return nil
	}
	p.composite(rect, p.coverage(rect, flat))
	return nil
}

// area is the canvas region touched by a shape with the given bounds.
func (p *Painter) area(b canvas.Rect) (image.Rectangle, bool) {
	r := image.Rect(
		int(math.Floor(b.X0))-1,
		int(math.Floor(b.Y0))-1,
		int(math.Ceil(b.X1))+1,
		int(math.Ceil(b.Y1))+1,
	).Intersect(p.canvas.Bounds())
	return r, !r.Empty()
}

// coverage rasterizes the flattened shape into an alpha mask the size of rect.
func (p *Painter) coverage(rect image.Rectangle, shape *canvas.Path) *image.Alpha {
	w, h := rect.Dx(), rect.Dy()
	p.rast.Reset(w, h)
	p.rast.DrawOp = draw.Src
	if p.mask == nil || p.mask.Rect.Dx() < w || p.mask.Rect.Dy() < h {
		p.mask = image.NewAlpha(image.Rect(0, 0, w, h))
	}
	mask := p.mask.SubImage(image.Rect(0, 0, w, h)).(*image.Alpha)

	// ToVectorRasterizer flips y (rasterizer row = h - y), so mirror the
	// shape first to land pixel (x, y) on mask (x-minX, y-minY).
	toMask := canvas.Matrix{
		{1, 0, -float64(rect.Min.X)},
		{0, -1, float64(h + rect.Min.Y)},
	}
	shape.Copy().Transform(toMask).ToVectorRasterizer(&p.rast, pixelSpace)
	p.rast.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// composite replaces rect of the canvas with the source through mask.
func (p *Painter) composite(rect image.Rectangle, mask *image.Alpha) {
	img := p.canvas.img
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		mrow := mask.Pix[(y-rect.Min.Y)*mask.Stride:]
		for x := rect.Min.X; x < rect.Max.X; x++ {
			m := uint32(mrow[x-rect.Min.X])
			if m == 0 {
				continue
			}
			s, ok := p.src.At(float64(x)+0.5, float64(y)+0.5)
			if !ok {
				continue
			}
			i := img.PixOffset(x, y)
			d := img.Pix[i : i+4 : i+4]
			for c := 0; c < 4; c++ {
				d[c] = uint8(div255(uint32(s[c])*m + uint32(d[c])*(255-m)))
			}
		}
	}
}

// div255 divides by 255 with rounding.
func div255(v uint32) uint32 {
	v += 128
	return (v + v>>8) >> 8
}
