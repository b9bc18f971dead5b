package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/textsource/fonts"
	"github.com/ByLCY/textsource/style"
)

// tabStop is the tab width in spaces.
const tabStop = 8

// ErrNoFont is returned when laying out text before SetFont succeeded.
var ErrNoFont = errors.New("layout: no font selected")

// SfntTypesetter lays out plain text with a single sfnt face: glyphs come
// from the cmap, advances are kerned pairwise, paragraphs are split on '\n'
// and optionally wrapped greedily at whitespace.
type SfntTypesetter struct {
	lib *fonts.Library

	face    *sfnt.Font
	ppem    fixed.Int26_6
	metrics font.Metrics
	align   style.Align
	wrap    fixed.Int26_6
	text    string

	buf sfnt.Buffer

	laidOut bool
	lines   []Line
	width   fixed.Int26_6
	height  fixed.Int26_6
}

var _ Typesetter = (*SfntTypesetter)(nil)

func NewSfntTypesetter(lib *fonts.Library) *SfntTypesetter {
	return &SfntTypesetter{lib: lib}
}

func (t *SfntTypesetter) SetFont(family string, size int, bold, italic bool) error {
	if size <= 0 {
		return fmt.Errorf("layout: font size %d must be positive", size)
	}
	face, err := t.lib.Face(family, bold, italic)
	if err != nil {
		return err
	}
	ppem := PointsToPPEM(size)
	m, err := face.Metrics(&t.buf, ppem, font.HintingNone)
	if err != nil {
		return fmt.Errorf("layout: metrics for %s: %w", family, err)
	}
	t.face, t.ppem, t.metrics = face, ppem, m
	t.laidOut = false
	return nil
}

func (t *SfntTypesetter) SetAlignment(align style.Align) {
	t.align = align
	t.laidOut = false
}

func (t *SfntTypesetter) SetWrapWidth(width fixed.Int26_6) {
	t.wrap = width
	t.laidOut = false
}

func (t *SfntTypesetter) SetText(text string) {
	t.text = text
	t.laidOut = false
}

func (t *SfntTypesetter) Size() (fixed.Int26_6, fixed.Int26_6, error) {
	if err := t.layout(); err != nil {
		return 0, 0, err
	}
	return t.width, t.height, nil
}

func (t *SfntTypesetter) Lines() ([]Line, error) {
	if err := t.layout(); err != nil {
		return nil, err
	}
	return t.lines, nil
}

// LineHeight is ascent plus descent; the font's line gap is not added.
func (t *SfntTypesetter) LineHeight() fixed.Int26_6 {
	return t.metrics.Ascent + t.metrics.Descent
}

func (t *SfntTypesetter) layout() error {
	if t.laidOut {
		return nil
	}
	if t.face == nil {
		return ErrNoFont
	}

	var visual []string
	for _, para := range strings.Split(t.text, "\n") {
		para = strings.TrimSuffix(para, "\r")
		if t.wrap > 0 {
			visual = append(visual, greedyWrap(para, t.wrap, t.measure)...)
		} else {
			visual = append(visual, para)
		}
	}

	lineHeight := t.LineHeight()
	lines := make([]Line, 0, len(visual))
	var widest fixed.Int26_6
	for i, s := range visual {
		glyphs, w := t.shape(s)
		path, err := t.outline(glyphs)
		if err != nil {
			return err
		}
		top := lineHeight * fixed.Int26_6(i)
		lines = append(lines, Line{
			Baseline: top + t.metrics.Ascent,
			Top:      top,
			Bottom:   top + lineHeight,
			Width:    w,
			Text:     s,
			Path:     path,
		})
		if w > widest {
			widest = w
		}
	}

	// 未设置换行宽度时，按最宽的一行对齐
	alignWidth := widest
	if t.wrap > 0 {
		alignWidth = t.wrap
	}
	var minX, maxX fixed.Int26_6
	for i := range lines {
		ln := &lines[i]
		switch t.align {
		case style.AlignRight:
			ln.X = alignWidth - ln.Width
		case style.AlignCenter:
			ln.X = (alignWidth - ln.Width) / 2
		default:
			ln.X = 0
		}
		if i == 0 || ln.X < minX {
			minX = ln.X
		}
		if i == 0 || ln.X+ln.Width > maxX {
			maxX = ln.X + ln.Width
		}
	}

	t.lines = lines
	t.width = maxX - minX
	t.height = lineHeight * fixed.Int26_6(len(lines))
	t.laidOut = true
	return nil
}

type glyph struct {
	index sfnt.GlyphIndex
	x     fixed.Int26_6
}

// shape maps runes to glyphs and positions them along the pen. It returns the
// glyphs and the total advance.
func (t *SfntTypesetter) shape(s string) ([]glyph, fixed.Int26_6) {
	var (
		out     []glyph
		pen     fixed.Int26_6
		prev    sfnt.GlyphIndex
		hasPrev bool
	)
	space, _ := t.face.GlyphIndex(&t.buf, ' ')
	spaceAdv, _ := t.face.GlyphAdvance(&t.buf, space, t.ppem, font.HintingNone)
	for _, r := range s {
		switch r {
		case '\r':
			continue
		case '\t':
			if stop := spaceAdv * tabStop; stop > 0 {
				pen = (pen/stop + 1) * stop
			}
			hasPrev = false
			continue
		}
		idx, err := t.face.GlyphIndex(&t.buf, r)
		if err != nil {
			idx = 0
		}
		if hasPrev {
			if k, err := t.face.Kern(&t.buf, prev, idx, t.ppem, font.HintingNone); err == nil {
				pen += k
			}
		}
		out = append(out, glyph{index: idx, x: pen})
		adv, err := t.face.GlyphAdvance(&t.buf, idx, t.ppem, font.HintingNone)
		if err == nil {
			pen += adv
		}
		prev, hasPrev = idx, true
	}
	return out, pen
}

func (t *SfntTypesetter) measure(s string) fixed.Int26_6 {
	_, w := t.shape(s)
	return w
}

// outline loads the glyph contours into one path, origin on the baseline.
func (t *SfntTypesetter) outline(glyphs []glyph) (*canvas.Path, error) {
	path := &canvas.Path{}
	for _, g := range glyphs {
		segs, err := t.face.LoadGlyph(&t.buf, g.index, t.ppem, nil)
		if err != nil {
			if errors.Is(err, sfnt.ErrColoredGlyph) {
				continue
			}
			return nil, fmt.Errorf("layout: load glyph %d: %w", g.index, err)
		}
		dx := fixedToFloat(g.x)
		open := false
		for _, seg := range segs {
			a := seg.Args
			switch seg.Op {
			case sfnt.SegmentOpMoveTo:
				if open {
					path.Close()
				}
				open = true
				path.MoveTo(dx+fixedToFloat(a[0].X), fixedToFloat(a[0].Y))
			case sfnt.SegmentOpLineTo:
				path.LineTo(dx+fixedToFloat(a[0].X), fixedToFloat(a[0].Y))
			case sfnt.SegmentOpQuadTo:
				path.QuadTo(dx+fixedToFloat(a[0].X), fixedToFloat(a[0].Y),
					dx+fixedToFloat(a[1].X), fixedToFloat(a[1].Y))
			case sfnt.SegmentOpCubeTo:
				path.CubeTo(dx+fixedToFloat(a[0].X), fixedToFloat(a[0].Y),
					dx+fixedToFloat(a[1].X), fixedToFloat(a[1].Y),
					dx+fixedToFloat(a[2].X), fixedToFloat(a[2].Y))
			}
		}
		// contours are closed so the stroke also joins the last point to the first
		if open {
			path.Close()
		}
	}
	return path, nil
}
