package renderer

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"github.com/ByLCY/textsource/fonts"
	"github.com/ByLCY/textsource/layout"
	"github.com/ByLCY/textsource/raster"
	"github.com/ByLCY/textsource/style"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	lib := fonts.NewLibrary()
	return New(layout.NewAdapter(lib))
}

func baseStyle() style.TextStyle {
	st := style.Default()
	st.FontFamily = "Go"
	st.FontSize = 28
	return st
}

func render(t *testing.T, r *Renderer, text string, st style.TextStyle) (*raster.Canvas, Geometry) {
	t.Helper()
	c, g, err := r.Render(text, st)
	if err != nil {
		t.Fatalf("Render 失败: %v", err)
	}
	t.Cleanup(c.Release)
	return c, g
}

// inkBounds 返回所有非透明像素的包围盒。
func inkBounds(c *raster.Canvas) image.Rectangle {
	var r image.Rectangle
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			if c.PixelAt(x, y)[3] == 0 {
				continue
			}
			px := image.Rect(x, y, x+1, y+1)
			if r.Empty() {
				r = px
			} else {
				r = r.Union(px)
			}
		}
	}
	return r
}

func TestRenderIsIdempotent(t *testing.T) {
	r := newTestRenderer(t)
	st := baseStyle()
	st.Outline.Enabled = true
	st.Shadow.Enabled = true
	st.ColorBottom = 0xFF3060C0

	a, ga := render(t, r, "Hello\nworld", st)
	b, gb := render(t, r, "Hello\nworld", st)
	if ga != gb {
		t.Fatalf("两次渲染几何不一致: %+v %+v", ga, gb)
	}
	if !bytes.Equal(a.Pix(), b.Pix()) {
		t.Fatalf("两次渲染像素不一致")
	}
}

func TestRenderSkipsEmptyInput(t *testing.T) {
	r := newTestRenderer(t)
	if _, _, err := r.Render("", baseStyle()); !errors.Is(err, ErrSkip) {
		t.Fatalf("空文本应返回 ErrSkip，得到 %v", err)
	}
	st := baseStyle()
	st.FontFamily = ""
	if _, _, err := r.Render("x", st); !errors.Is(err, ErrSkip) {
		t.Fatalf("空字体应返回 ErrSkip，得到 %v", err)
	}
}

func TestRenderRejectsInvalidStyle(t *testing.T) {
	r := newTestRenderer(t)
	st := baseStyle()
	st.FontSize = 0
	if _, _, err := r.Render("x", st); !errors.Is(err, style.ErrInvalidStyle) {
		t.Fatalf("非法样式应返回 ErrInvalidStyle，得到 %v", err)
	}
}

func TestRenderShadowOnlyVersusOutlineOnly(t *testing.T) {
	r := newTestRenderer(t)
	const text = "Hx"

	plain, gp := render(t, r, text, baseStyle())

	st := baseStyle()
	st.Shadow = style.Shadow{Enabled: true, Offset: 4, Color: 0xFF000000}
	shadowed, gs := render(t, r, text, st)

	st = baseStyle()
	st.Outline = style.Outline{Enabled: true, Width: 4, Color: 0xFF000000}
	outlined, gOut := render(t, r, text, st)

	if gs.Width != gp.Width+4 || gs.Height != gp.Height+4 || gs.XOffset != 0 || gs.YOffset != 0 {
		t.Fatalf("仅阴影时只应增加阴影偏移: plain=%+v shadow=%+v", gp, gs)
	}
	if gOut.Width != gp.Width+8 || gOut.Height != gp.Height+8 || gOut.XOffset != 4 || gOut.YOffset != 4 {
		t.Fatalf("仅描边时应在两侧留出描边宽度: plain=%+v outline=%+v", gp, gOut)
	}

	bp, bs, bo := inkBounds(plain), inkBounds(shadowed), inkBounds(outlined)
	if bp.Empty() || bs.Empty() || bo.Empty() {
		t.Fatalf("渲染结果不应为空: %v %v %v", bp, bs, bo)
	}
	if bs.Min != bp.Min || bs.Max != bp.Max.Add(image.Pt(4, 4)) {
		t.Fatalf("阴影应把墨迹右下角推远 4 像素: plain=%v shadow=%v", bp, bs)
	}
	if bo.Dx() <= bp.Dx() || bo.Dy() <= bp.Dy() {
		t.Fatalf("描边应扩大墨迹范围: plain=%v outline=%v", bp, bo)
	}
}

func TestRenderFillUsesSourceOperator(t *testing.T) {
	r := newTestRenderer(t)
	st := baseStyle()
	// 半透明填充覆盖在不透明描边上时应替换而不是混合
	st.ColorTop = 0x40FFFFFF
	st.ColorBottom = 0x40FFFFFF
	st.Outline = style.Outline{Enabled: true, Width: 3, Color: 0xFF000000}
	c, _ := render(t, r, "I", st)

	want := toRaster(st.ColorTop).Premultiplied()
	var sawFill bool
	for y := 0; y < c.Height() && !sawFill; y++ {
		for x := 0; x < c.Width(); x++ {
			if c.PixelAt(x, y) == want {
				sawFill = true
				break
			}
		}
	}
	if !sawFill {
		t.Fatalf("字形内部应直接写入半透明填充色")
	}
}

type fixedMeasurer struct {
	res *layout.Result
}

func (f fixedMeasurer) Measure(string, style.TextStyle) (*layout.Result, error) {
	return f.res, nil
}

func TestRenderZeroAreaIsSkip(t *testing.T) {
	r := New(fixedMeasurer{res: &layout.Result{}})
	if _, _, err := r.Render("\n", baseStyle()); !errors.Is(err, ErrSkip) {
		t.Fatalf("零面积画布应返回 ErrSkip，得到 %v", err)
	}
}

func TestRenderTooLarge(t *testing.T) {
	r := New(fixedMeasurer{res: &layout.Result{Width: raster.MaxDimension + 1, Height: 10}})
	_, _, err := r.Render("x", baseStyle())
	if !errors.Is(err, raster.ErrCanvasTooLarge) {
		t.Fatalf("超大画布应返回 ErrCanvasTooLarge，得到 %v", err)
	}
}
