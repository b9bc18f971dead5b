// Package raster is the 2D vector painter the text renderer draws with.
//
// Shapes are tdewolff/canvas paths in pixel units, y pointing down. Strokes
// are expanded with canvas.Path.Stroke, coverage is computed with
// golang.org/x/image/vector and composited per pixel with the bounded
// Source operator, which replaces what lies under the shape instead of
// blending with it:
//
//	p := raster.NewPainter(c)
//	p.MoveTo(10, 40)
//	p.AppendPath(glyphs)
//	p.SetSource(raster.Solid(raster.RGBA(1, 1, 1, 1)))
//	err := p.Fill()
//
// Canvas pixels are premultiplied RGBA, 8 bits per channel.
package raster
