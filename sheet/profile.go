// Package sheet 组装发给雇主的艺人资料 PDF 页面。
package sheet

import (
	"fmt"
	"math"
	"strings"

	"github.com/ByLCY/castpoint/layout"
)

const (
	fontRegular = "Regular"
	fontBold    = "Bold"
)

// builder 保存一次 Build 调用的全部状态，不在调用之间共享。
type builder struct {
	page        *layout.Page
	margin      Margin
	regular     layout.Sink
	bold        layout.Sink
	measure     layout.MeasureFunc
	measureBold layout.MeasureFunc
}

// Build 生成单页 A4 艺人资料的布局结果。
func Build(app Application, opts Options) (*layout.Result, error) {
	if opts.Metrics == nil {
		return nil, fmt.Errorf("sheet: 缺少字体度量 Metrics")
	}
	fonts := opts.Fonts
	if fonts.Regular.Src == "" {
		fonts.Regular = DefaultFonts.Regular
	}
	if fonts.Bold.Src == "" {
		fonts.Bold = DefaultFonts.Bold
	}
	fonts.Regular.Name, fonts.Bold.Name = fontRegular, fontBold

	measure, err := opts.Metrics.Measurer(fonts.Regular)
	if err != nil {
		return nil, fmt.Errorf("sheet: 加载常规字体失败: %w", err)
	}
	measureBold, err := opts.Metrics.Measurer(fonts.Bold)
	if err != nil {
		return nil, fmt.Errorf("sheet: 加载粗体字体失败: %w", err)
	}

	margin := DefaultMargin
	if opts.Margin != nil {
		margin = *opts.Margin
	}
	page := layout.NewPage(layout.A4Width, layout.A4Height)
	b := &builder{
		page:        page,
		margin:      margin,
		regular:     page.Pen(fontRegular),
		bold:        page.Pen(fontBold),
		measure:     measure,
		measureBold: measureBold,
	}

	name := clean(app.Artist.FullName)
	b.background()
	y := b.title(clean(app.JobTitle), clean(app.CompanyName))

	contentW := page.Width - margin.Left - margin.Right
	leftW := (contentW - columnGap) * leftColumnPart
	rightW := (contentW - columnGap) * (1 - leftColumnPart)
	leftX := margin.Left
	rightX := leftX + leftW + columnGap

	b.details(app, leftX, y, leftW)
	b.photo(app, rightX, y, rightW)
	b.footer(app.ID)
	if opts.Debug.Guides {
		b.guides(leftX, leftW, rightX, rightW)
	}

	title := "Castpoint Profile"
	if name != "" {
		title = name + " — " + title
	}
	return &layout.Result{
		Pages: []layout.Page{*page},
		Resources: layout.ResourceSet{Fonts: map[string]layout.FontResource{
			fontRegular: fonts.Regular,
			fontBold:    fonts.Bold,
		}},
		Meta: layout.DocumentMeta{
			Title:    title,
			Subject:  "Application for " + orPlaceholder(clean(app.JobTitle)),
			Creator:  "CASTPOINT",
			Keywords: []string{"castpoint", "profile"},
		},
	}, nil
}

func (b *builder) background() {
	p := b.page
	p.FillRect(0, 0, p.Width, p.Height, colorWhite)
	// 页眉色带：整条橙色，右侧 45% 覆盖粉色
	p.FillRect(0, p.Height-headerHeight, p.Width, headerHeight, colorAccent)
	p.FillRect(p.Width*0.55, p.Height-headerHeight, p.Width*0.45, headerHeight, colorAccent2)
	b.bold.DrawText("CASTPOINT", b.margin.Left, p.Height-54, sizeBrand, colorWhite)
	b.bold.DrawText("Profile", b.margin.Left, p.Height-74, sizeBrandSub, colorWhite)
}

// title 绘制职位信息，返回两栏内容的起始基线。
func (b *builder) title(job, company string) float64 {
	p := b.page
	width := p.Width - b.margin.Left - b.margin.Right
	y := p.Height - 120

	b.bold.DrawText("Application for", b.margin.Left, y, sizeCaption, colorMuted)
	y -= 22
	for _, ln := range layout.WrapText(job, width, b.measure, sizeTitle) {
		b.regular.DrawText(ln, b.margin.Left, y, sizeTitle, colorPrimary)
		y -= 22
	}
	if company != "" {
		b.regular.DrawText(company, b.margin.Left, y, sizeCaption, colorMuted)
		y -= 28
	}
	return y
}

func (b *builder) heading(text string, x, y float64) float64 {
	b.bold.DrawText(text, x, y, sizeH2, colorAccent2)
	return y - headingGap
}

func (b *builder) details(app Application, x, y, width float64) {
	a := app.Artist
	b.bold.DrawText("Profile", x, y, sizeH2, colorAccent2)

	table := layout.TwoColTable{
		Width:        width,
		LeftRatio:    tableLeftRatio,
		Gutter:       tableGutter,
		FontSize:     sizeBody,
		RowPad:       tableRowPad,
		LabelSink:    b.bold,
		LabelMeasure: b.measureBold,
		LabelColor:   colorMuted,
		ValueSink:    b.regular,
		ValueMeasure: b.measure,
		ValueColor:   colorPrimary,
	}
	y = table.Draw([]layout.Row{
		{Label: "Full name", Value: clean(a.FullName)},
		{Label: "Country", Value: normalizeCountry(a.Country)},
		{Label: "Date of birth", Value: NormalizeDate(clean(a.DateOfBirth))},
		{Label: "Height (cm)", Value: clean(a.Height)},
		{Label: "Weight (kg)", Value: clean(a.Weight)},
	}, x, y-tableTopGap)
	y -= sectionGap + sizeH2

	// 经历始终展示（为空时显示占位符）；简介与留言仅在有内容时展示。
	y = b.section("Experience", clean(a.Experience), x, y, width, sizeBody, maxExperienceLines)
	if bio := clean(a.Biography); bio != "" {
		y = b.section("Biography", bio, x, y, width, sizeBody, maxBiographyLines)
	}
	if msg := clean(app.CoverMessage); msg != "" {
		b.section("Message", msg, x, y, width, sizeMessage, maxMessageLines)
	}
}

// section 绘制标题加两端对齐正文，内容超出页脚上方的可用空间时截断。
func (b *builder) section(title, text string, x, y, width, size float64, maxLines int) float64 {
	lh := layout.LineHeight(size)
	floor := b.margin.Bottom
	if y-headingGap-lh < floor {
		return y
	}
	y = b.heading(title, x, y)
	paras := layout.WrapParagraphs(text, width, b.measure, size)
	paras = fitParagraphs(layout.ClipParagraphs(paras, maxLines), int(math.Floor((y-floor)/lh)))
	y = layout.DrawParagraphs(b.regular, paras, x, y, width, b.measure, size, lh, colorPrimary)
	return y - sectionGap
}

// fitParagraphs 在 budget 行（含段落间空行）内尽量保留内容。
func fitParagraphs(paras [][]string, budget int) [][]string {
	var out [][]string
	used := 0
	for i, lines := range paras {
		if i > 0 {
			used++
		}
		left := budget - used
		if left <= 0 {
			break
		}
		lines = layout.TruncateLines(lines, left)
		used += len(lines)
		out = append(out, lines)
	}
	return out
}

func (b *builder) photo(app Application, x, y, width float64) {
	y = b.heading("Photo", x, y)
	if app.Photo == nil {
		b.regular.DrawText("No profile photo", x+12, y-20, sizeMessage, colorMuted)
		return
	}
	bounds := app.Photo.Bounds()
	iw, ih := layout.FitRect(float64(bounds.Dx()), float64(bounds.Dy()), width-2*photoPadding, photoBoxHeight-2*photoPadding)
	ix := x + (width-iw)/2
	iy := (y - photoBoxHeight) + (photoBoxHeight-ih)/2
	b.page.DrawImage(app.Photo, ix, iy, iw, ih)
}

func (b *builder) footer(id int64) {
	y := b.margin.Bottom - 18
	b.regular.DrawText("Generated by CASTPOINT platform", b.margin.Left, y, sizeFooter, colorMuted)
	if id > 0 {
		code := ApplicationCode(id)
		x := b.page.Width - b.margin.Right - b.measure(code, sizeFooter)
		b.regular.DrawText(code, x, y, sizeFooter, colorMuted)
	}
}

// guides 绘制边距与分栏辅助线，仅用于调试版式。
func (b *builder) guides(leftX, leftW, rightX, rightW float64) {
	p := b.page
	top, bottom := p.Height-b.margin.Top, b.margin.Bottom
	for _, x := range []float64{leftX, leftX + leftW, rightX, rightX + rightW} {
		p.DrawLine(x, bottom, x, top, 0.3, colorGuide)
	}
	for _, y := range []float64{top, bottom} {
		p.DrawLine(0, y, p.Width, y, 0.3, colorGuide)
	}
}

// FileName 返回附件文件名：空白替换为下划线。
func FileName(name string) string {
	return strings.Join(strings.Fields(name), "_")
}
