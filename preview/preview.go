// Package preview lays rendered overlay textures out on PDF proof pages,
// one page per texture, over a checkerboard so transparency stays visible.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/ByLCY/textsource/layout"
)

const (
	// pxPerMM places texture pixels at the layout DPI.
	pxPerMM = layout.MmToPx

	margin      = 10.0 // mm
	checkerSize = 4.0  // mm
	captionPt   = 9.0
	captionGap  = 4.0 // mm between caption and texture
)

var (
	checkerLight = canvas.Hex("#ffffff")
	checkerDark  = canvas.Hex("#d8d8d8")
	captionColor = canvas.Hex("#333333")
)

// Entry is one texture to proof.
type Entry struct {
	Name    string
	Caption string
	Image   image.Image
}

// Meta is copied into the PDF document information.
type Meta struct {
	Title   string
	Subject string
	Author  string
	Creator string
}

// WritePDF writes one page per entry to w.
func WritePDF(w io.Writer, entries []Entry, meta Meta) error {
	if len(entries) == 0 {
		return fmt.Errorf("没有可预览的纹理")
	}
	for _, e := range entries {
		if e.Image == nil || e.Image.Bounds().Empty() {
			return fmt.Errorf("纹理 %q 为空", e.Name)
		}
	}
	face, err := captionFace()
	if err != nil {
		return err
	}

	var writer *pdf.PDF
	for i, e := range entries {
		width, height := pageSize(e.Image, face)
		if i == 0 {
			writer = pdf.New(w, width, height, nil)
			writer.SetInfo(meta.Title, meta.Subject, "", meta.Author, meta.Creator)
		} else {
			writer.NewPage(width, height)
		}

		c := canvas.New(width, height)
		ctx := canvas.NewContext(c)
		ctx.SetCoordSystem(canvas.CartesianIV) // 左上角为原点，与纹理坐标一致
		drawPage(ctx, e, face)
		c.RenderTo(writer)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return nil
}

func pageSize(img image.Image, face *canvas.FontFace) (float64, float64) {
	b := img.Bounds()
	w := float64(b.Dx())/pxPerMM + 2*margin
	h := float64(b.Dy())/pxPerMM + 2*margin + captionHeight(face)
	return w, h
}

func captionHeight(face *canvas.FontFace) float64 {
	m := face.Metrics()
	return m.Ascent + m.Descent + captionGap
}

func drawPage(ctx *canvas.Context, e Entry, face *canvas.FontFace) {
	caption := e.Caption
	if caption == "" {
		caption = e.Name
	}
	line := canvas.NewTextLine(face, caption, canvas.Left)
	ctx.DrawText(margin, margin+face.Metrics().Ascent, line)

	b := e.Image.Bounds()
	x, y := margin, margin+captionHeight(face)
	w, h := float64(b.Dx())/pxPerMM, float64(b.Dy())/pxPerMM
	drawChecker(ctx, x, y, w, h)
	ctx.DrawImage(x, y, e.Image, canvas.DPMM(pxPerMM))
}

// drawChecker fills the texture area with alternating squares, clipped to w×h.
func drawChecker(ctx *canvas.Context, x, y, w, h float64) {
	ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	ctx.SetStrokeWidth(0)
	for row := 0; float64(row)*checkerSize < h; row++ {
		for col := 0; float64(col)*checkerSize < w; col++ {
			cx, cy := float64(col)*checkerSize, float64(row)*checkerSize
			cw, ch := min(checkerSize, w-cx), min(checkerSize, h-cy)
			if (row+col)%2 == 0 {
				ctx.SetFillColor(checkerLight)
			} else {
				ctx.SetFillColor(checkerDark)
			}
			ctx.DrawPath(x+cx, y+cy, canvas.Rectangle(cw, ch))
		}
	}
}

var (
	captionOnce   sync.Once
	captionFamily *canvas.FontFamily
	captionErr    error
)

func captionFace() (*canvas.FontFace, error) {
	captionOnce.Do(func() {
		family := canvas.NewFontFamily("preview-caption")
		if err := family.LoadFont(goregular.TTF, 0, canvas.FontRegular); err != nil {
			captionErr = fmt.Errorf("加载说明文字字体失败: %w", err)
			return
		}
		captionFamily = family
	})
	if captionErr != nil {
		return nil, captionErr
	}
	return captionFamily.Face(captionPt, captionColor, canvas.FontRegular, canvas.FontNormal), nil
}
