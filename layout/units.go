package layout

import "golang.org/x/image/math/fixed"

// This file holds the unit conversions shared by layout and output:
// font sizes are points, layout runs in 26.6 fixed-point pixels at DPI,
// canvases are whole pixels and proof pages are millimeters.

// DPI converts point sizes to pixels per em.
const DPI = 96

// Conversion constants between px and mm.
const (
	PxToMm = 25.4 / DPI
	MmToPx = 1.0 / PxToMm
)

// PointsToPPEM is the pixels-per-em of a font size in points.
func PointsToPPEM(size int) fixed.Int26_6 {
	return fixed.Int26_6(size * 64 * DPI / 72)
}

// toPixels drops the fractional part, truncating toward zero.
func toPixels(v fixed.Int26_6) int {
	return int(v / 64)
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
