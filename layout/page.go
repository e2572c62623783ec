package layout

import "image"

// Standard page sizes in pt.
const (
	A4Width  = 595.28
	A4Height = 841.89
)

// NewPage 创建指定尺寸的空白页面。
func NewPage(width, height float64) *Page {
	return &Page{Width: width, Height: height}
}

// Pen 返回绑定到 font 的 Sink，之后的 DrawText 都会以该字体追加到页面。
func (p *Page) Pen(font string) Sink {
	return &pen{page: p, font: font}
}

type pen struct {
	page *Page
	font string
}

func (w *pen) DrawText(text string, x, y, size float64, color Color) {
	w.page.Texts = append(w.page.Texts, TextBox{
		Content:  text,
		X:        x,
		Y:        y,
		Font:     w.font,
		FontSize: size,
		Color:    color,
	})
}

// FillRect 追加一个填充矩形。
func (p *Page) FillRect(x, y, width, height float64, fill Color) {
	p.Rects = append(p.Rects, Rect{X: x, Y: y, Width: width, Height: height, FillColor: fill})
}

// DrawLine 追加一条线段。
func (p *Page) DrawLine(x1, y1, x2, y2, width float64, color Color) {
	p.Lines = append(p.Lines, Line{X1: x1, Y1: y1, X2: x2, Y2: y2, Width: width, Color: color})
}

// DrawImage 追加一张图片；img 为空时忽略。
func (p *Page) DrawImage(img image.Image, x, y, width, height float64) {
	if img == nil || width <= 0 || height <= 0 {
		return
	}
	p.Images = append(p.Images, ImageBox{X: x, Y: y, Width: width, Height: height, Image: img})
}

// FitRect 计算 (w, h) 等比缩放后放入 (boxW, boxH) 的最大尺寸。
func FitRect(w, h, boxW, boxH float64) (float64, float64) {
	if w <= 0 || h <= 0 || boxW <= 0 || boxH <= 0 {
		return 0, 0
	}
	ratio := boxW / w
	if r := boxH / h; r < ratio {
		ratio = r
	}
	return w * ratio, h * ratio
}
