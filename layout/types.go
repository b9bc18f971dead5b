package layout

// 该文件定义排版结果，供几何规划与逐行绘制共用。结果只在一次渲染调用内有效，不做缓存。

import (
	"github.com/tdewolff/canvas"
	"golang.org/x/image/math/fixed"
)

// Result is the measured layout of one text block, in whole pixels.
type Result struct {
	Width  int          `json:"width"`  // logical content width
	Height int          `json:"height"` // logical content height
	Lines  []LineRecord `json:"lines"`  // visual lines, top to bottom
}

// LineRecord is one visual line. All coordinates are relative to the layout's
// top-left corner; Top and Bottom bound the line's logical extent.
type LineRecord struct {
	X        int    `json:"x"` // horizontal offset produced by alignment
	Baseline int    `json:"baseline"`
	Top      int    `json:"top"`
	Bottom   int    `json:"bottom"`
	Width    int    `json:"width"`
	Text     string `json:"text"`
	// Path holds the line's glyph outlines with the origin at the line's
	// left edge on the baseline.
	Path *canvas.Path `json:"-"`
}

// Line is what a Typesetter reports for one visual line, in 26.6 fixed point.
type Line struct {
	X        fixed.Int26_6
	Baseline fixed.Int26_6
	Top      fixed.Int26_6
	Bottom   fixed.Int26_6
	Width    fixed.Int26_6
	Text     string
	Path     *canvas.Path
}
