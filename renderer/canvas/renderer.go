package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/castpoint/fonts"
	"github.com/ByLCY/castpoint/layout"
	"github.com/ByLCY/castpoint/renderer"
)

const defaultLineWidth = 0.5 // pt

// Renderer draws layout results via github.com/tdewolff/canvas.
// Layout coordinates are pt with a bottom-left origin; canvas works in mm.
type Renderer struct {
	// 注入的字体数据，按 built-in:<name> 中的 name 索引
	fontBlobs map[string][]byte

	fontMu         sync.Mutex
	fontFamilies   map[string]*fontFamilyEntry
	faces          map[faceKey]*canvas.FontFace
	fallbackFamily *canvas.FontFamily
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Metrics    = (*Renderer)(nil)
)

type fontFamilyEntry struct {
	family *canvas.FontFamily
	style  canvas.FontStyle
}

type faceKey struct {
	font string
	size float64
	col  layout.Color
}

// Options configures the canvas renderer.
type Options struct {
	// Fonts 提供可通过 built-in:<name> 引用的字体数据（TTF/OTF）。
	Fonts map[string][]byte
}

// NewRenderer creates a renderer that only knows the embedded fonts.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions creates a renderer with injected font data.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		fontBlobs:    map[string][]byte{},
		fontFamilies: map[string]*fontFamilyEntry{},
		faces:        map[faceKey]*canvas.FontFace{},
	}
	for name, data := range opts.Fonts {
		if name != "" && len(data) > 0 {
			r.fontBlobs[name] = data
		}
	}
	return r
}

// Render renders the result into a PDF byte slice.
func (r *Renderer) Render(result *layout.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("渲染结果为空")
	}
	if len(result.Pages) == 0 {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}

	var buf bytes.Buffer
	first := result.Pages[0]
	writer := pdf.New(&buf, toMm(first.Width), toMm(first.Height), nil)
	r.applyMeta(writer, result.Meta)
	for i, page := range result.Pages {
		if i > 0 {
			writer.NewPage(toMm(page.Width), toMm(page.Height))
		}
		c := canvas.New(toMm(page.Width), toMm(page.Height))
		ctx := canvas.NewContext(c) // 默认 CartesianI：左下角为原点，与布局坐标一致

		if err := r.drawPage(ctx, page, result.Resources); err != nil {
			return nil, fmt.Errorf("绘制第 %d 页失败: %w", i+1, err)
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) applyMeta(writer *pdf.PDF, meta layout.DocumentMeta) {
	if writer == nil {
		return
	}
	keywords := strings.Join(meta.Keywords, ", ")
	writer.SetInfo(meta.Title, meta.Subject, keywords, meta.Author, meta.Creator)
}

// Measurer 实现 layout.Metrics：返回以 pt 计的文本宽度。
// 字体在此处即加载，加载失败时返回错误，而不是在测量时失败。
func (r *Renderer) Measurer(font layout.FontResource) (layout.MeasureFunc, error) {
	if _, _, err := r.ensureFontFamily(font); err != nil {
		return nil, err
	}
	return func(text string, size float64) float64 {
		face, err := r.fontFace(font, size, layout.Color{})
		if err != nil {
			return 0
		}
		return toPt(face.TextWidth(text))
	}, nil
}

func (r *Renderer) drawPage(ctx *canvas.Context, page layout.Page, resources layout.ResourceSet) error {
	// 背景形状在文本之前绘制
	r.drawRects(ctx, page.Rects)
	r.drawLines(ctx, page.Lines)
	r.drawImages(ctx, page.Images)

	for _, tb := range page.Texts {
		fontRes := resolveFontResource(tb.Font, resources.Fonts)
		if err := r.drawText(ctx, tb, fontRes); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) drawText(ctx *canvas.Context, tb layout.TextBox, fontRes layout.FontResource) error {
	if tb.Content == "" {
		return nil
	}
	face, err := r.fontFace(fontRes, tb.FontSize, tb.Color)
	if err != nil {
		return err
	}
	// TextBox.Y 是基线；NewTextLine 的原点同样位于基线。
	ctx.DrawText(toMm(tb.X), toMm(tb.Y), canvas.NewTextLine(face, tb.Content, canvas.Left))
	return nil
}

func (r *Renderer) drawImages(ctx *canvas.Context, images []layout.ImageBox) {
	for _, img := range images {
		if img.Image == nil || img.Width <= 0 {
			continue
		}
		px := img.Image.Bounds().Dx()
		if px <= 0 {
			continue
		}
		// 用分辨率控制输出宽度：像素数 / 目标毫米数
		dpmm := float64(px) / toMm(img.Width)
		ctx.DrawImage(toMm(img.X), toMm(img.Y), img.Image, canvas.DPMM(dpmm))
	}
}

// drawLines 绘制直线列表
func (r *Renderer) drawLines(ctx *canvas.Context, lines []layout.Line) {
	for _, ln := range lines {
		w := ln.Width
		if w <= 0 {
			w = defaultLineWidth
		}
		ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
		ctx.SetStrokeColor(colorFromLayout(ln.Color))
		ctx.SetStrokeWidth(toMm(w))
		p := &canvas.Path{}
		p.MoveTo(0, 0)
		p.LineTo(toMm(ln.X2-ln.X1), toMm(ln.Y2-ln.Y1))
		ctx.DrawPath(toMm(ln.X1), toMm(ln.Y1), p)
	}
}

// drawRects 绘制无描边的填充矩形
func (r *Renderer) drawRects(ctx *canvas.Context, rects []layout.Rect) {
	for _, rc := range rects {
		ctx.SetFillColor(colorFromLayout(rc.FillColor))
		ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
		ctx.DrawPath(toMm(rc.X), toMm(rc.Y), canvas.Rectangle(toMm(rc.Width), toMm(rc.Height)))
	}
}

// fontFace 按字体、字号（pt）与颜色缓存字体面。
func (r *Renderer) fontFace(font layout.FontResource, size float64, col layout.Color) (*canvas.FontFace, error) {
	family, style, err := r.ensureFontFamily(font)
	if err != nil {
		return nil, err
	}
	key := faceKey{font: fontCacheKey(font), size: size, col: col}

	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if face, ok := r.faces[key]; ok {
		return face, nil
	}
	face := family.Face(size, colorFromLayout(col), style, canvas.FontNormal)
	r.faces[key] = face
	return face, nil
}

func (r *Renderer) ensureFontFamily(font layout.FontResource) (*canvas.FontFamily, canvas.FontStyle, error) {
	key := fontCacheKey(font)
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if entry, ok := r.fontFamilies[key]; ok {
		return entry.family, entry.style, nil
	}

	style := parseFontStyle(font.Style)
	familyName := font.Name
	if familyName == "" {
		familyName = "Body"
	}
	family := canvas.NewFontFamily(familyName)

	if err := r.loadFontIntoFamily(family, font, style); err != nil {
		fallback, fbStyle, fbErr := r.fallback()
		if fbErr != nil {
			return nil, canvas.FontRegular, err
		}
		r.fontFamilies[key] = &fontFamilyEntry{family: fallback, style: fbStyle}
		return fallback, fbStyle, nil
	}

	entry := &fontFamilyEntry{family: family, style: style}
	r.fontFamilies[key] = entry
	return family, style, nil
}

func (r *Renderer) loadFontIntoFamily(family *canvas.FontFamily, font layout.FontResource, style canvas.FontStyle) error {
	data, err := r.loadFontBytes(font)
	if err != nil {
		return err
	}
	return family.LoadFont(data, 0, style)
}

func (r *Renderer) loadFontBytes(font layout.FontResource) ([]byte, error) {
	src := font.Src
	switch {
	case src == "":
		return nil, fmt.Errorf("字体 %s 缺少 src", font.Name)
	case strings.HasPrefix(src, "built-in:"):
		name := strings.TrimPrefix(src, "built-in:")
		if blob, ok := r.fontBlobs[name]; ok {
			return blob, nil
		}
		return nil, fmt.Errorf("找不到内置字体资源 built-in:%s", name)
	case strings.HasPrefix(src, "embed:"):
		return fonts.Load(src)
	default:
		return nil, fmt.Errorf("不支持的字体来源 %q（请使用 built-in: 或 embed:）", src)
	}
}

// fallback 在调用方已持有 fontMu 时使用。
func (r *Renderer) fallback() (*canvas.FontFamily, canvas.FontStyle, error) {
	if r.fallbackFamily != nil {
		return r.fallbackFamily, canvas.FontRegular, nil
	}
	data, err := fonts.Load("Go-Regular")
	if err != nil {
		return nil, canvas.FontRegular, err
	}
	family := canvas.NewFontFamily("castpoint-fallback")
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, canvas.FontRegular, err
	}
	r.fallbackFamily = family
	return family, canvas.FontRegular, nil
}

func resolveFontResource(name string, fonts map[string]layout.FontResource) layout.FontResource {
	if font, ok := fonts[name]; ok {
		return font
	}
	if font, ok := fonts["Regular"]; ok {
		return font
	}
	for _, font := range fonts {
		return font
	}
	return layout.FontResource{}
}

func parseFontStyle(style string) canvas.FontStyle {
	if style == "" {
		return canvas.FontRegular
	}
	s := strings.ToLower(style)
	result := canvas.FontRegular
	switch {
	case strings.Contains(s, "black"):
		result = canvas.FontBlack
	case strings.Contains(s, "extrabold"):
		result = canvas.FontExtraBold
	case strings.Contains(s, "semibold"), strings.Contains(s, "demibold"):
		result = canvas.FontSemiBold
	case strings.Contains(s, "bold"):
		result = canvas.FontBold
	case strings.Contains(s, "medium"):
		result = canvas.FontMedium
	case strings.Contains(s, "light"):
		result = canvas.FontLight
	}
	if strings.Contains(s, "italic") || strings.Contains(s, "oblique") {
		result |= canvas.FontItalic
	}
	return result
}

func fontCacheKey(font layout.FontResource) string {
	return fmt.Sprintf("%s|%s|%s", font.Name, font.Src, font.Style)
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, 1.0)
}

// toPt 将毫米(mm)转换为点(pt)。
func toPt(mm float64) float64 { return mm * layout.MmToPt }

// toMm 将点(pt)转换为毫米(mm)。
func toMm(pt float64) float64 { return pt * layout.PtToMm }
