package sheet

import (
	"errors"
	"image"
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ByLCY/castpoint/layout"
)

// stubMetrics 按字符数 × 字号 × 0.5 估算宽度，不依赖真实字体。
type stubMetrics struct{ err error }

func (s stubMetrics) Measurer(layout.FontResource) (layout.MeasureFunc, error) {
	if s.err != nil {
		return nil, s.err
	}
	return func(text string, size float64) float64 {
		return float64(utf8.RuneCountInString(text)) * size * 0.5
	}, nil
}

func testOptions() Options {
	return Options{BuildOptions: layout.BuildOptions{Metrics: stubMetrics{}}}
}

func sampleApplication() Application {
	return Application{
		ID:          123,
		JobTitle:    "Aerial acrobat for summer season",
		CompanyName: "Sunwave Cruises",
		Artist: Artist{
			FullName:    "Iryna Koval",
			Country:     "ukraine",
			DateOfBirth: "1996-04-21",
			Height:      "168",
			Experience:  "Five seasons on cruise ships.\n\nResident show in Dubai.",
		},
		CoverMessage: "  I am available from March and can send a showreel.  ",
	}
}

func texts(res *layout.Result) []layout.TextBox {
	return res.Pages[0].Texts
}

func find(res *layout.Result, content string) (layout.TextBox, bool) {
	for _, tb := range texts(res) {
		if tb.Content == content {
			return tb, true
		}
	}
	return layout.TextBox{}, false
}

func TestBuildRequiresMetrics(t *testing.T) {
	if _, err := Build(sampleApplication(), Options{}); err == nil {
		t.Fatalf("缺少 Metrics 时应报错")
	}
	boom := errors.New("boom")
	_, err := Build(sampleApplication(), Options{BuildOptions: layout.BuildOptions{Metrics: stubMetrics{err: boom}}})
	if !errors.Is(err, boom) {
		t.Fatalf("应包装字体加载错误，实际 %v", err)
	}
}

func TestBuildProfilePage(t *testing.T) {
	res, err := Build(sampleApplication(), testOptions())
	if err != nil {
		t.Fatalf("Build 出错: %v", err)
	}
	if len(res.Pages) != 1 {
		t.Fatalf("应只有一页，实际 %d", len(res.Pages))
	}
	page := res.Pages[0]
	if page.Width != layout.A4Width || page.Height != layout.A4Height {
		t.Fatalf("页面尺寸不是 A4: %gx%g", page.Width, page.Height)
	}
	if len(page.Rects) != 3 {
		t.Fatalf("应有背景与两条页眉色带，实际 %d", len(page.Rects))
	}

	for _, want := range []string{
		"CASTPOINT", "Application for", "Sunwave Cruises", "Profile", "Experience", "Message", "Photo",
		"Full name", "Iryna Koval", "Ukraine", "21/04/1996", "168",
		"No profile photo", "Generated by CASTPOINT platform", "CP-000123",
	} {
		if _, ok := find(res, want); !ok {
			t.Fatalf("页面中缺少 %q", want)
		}
	}
	if _, ok := find(res, "Biography"); ok {
		t.Fatalf("简介为空时不应出现 Biography 标题")
	}

	brand, _ := find(res, "CASTPOINT")
	if brand.Font != fontBold || brand.Color != colorWhite || brand.FontSize != sizeBrand {
		t.Fatalf("品牌标题样式不符: %+v", brand)
	}
	// 体重为空时显示占位符
	weight, _ := find(res, "Weight (kg)")
	var placeholder bool
	for _, tb := range texts(res) {
		if tb.Content == layout.Placeholder && tb.Y == weight.Y {
			placeholder = true
		}
	}
	if !placeholder {
		t.Fatalf("空的体重应显示占位符")
	}

	if res.Meta.Title != "Iryna Koval — Castpoint Profile" || res.Meta.Creator != "CASTPOINT" {
		t.Fatalf("元信息不符: %+v", res.Meta)
	}
	if res.Resources.Fonts[fontRegular].Src != "embed:Go-Regular" || res.Resources.Fonts[fontBold].Style != "bold" {
		t.Fatalf("默认字体资源不符: %+v", res.Resources.Fonts)
	}
}

func TestBuildKeepsTextInsidePage(t *testing.T) {
	app := sampleApplication()
	app.Artist.Biography = strings.Repeat("Trained in contemporary dance and aerial silks. ", 60)
	app.CoverMessage = strings.Repeat("Looking forward to hearing from you. ", 80)
	res, err := Build(app, testOptions())
	if err != nil {
		t.Fatalf("Build 出错: %v", err)
	}
	footerY := DefaultMargin.Bottom - 18
	for _, tb := range texts(res) {
		if tb.X < 0 || tb.X > layout.A4Width || tb.Y > layout.A4Height {
			t.Fatalf("文本超出页面: %+v", tb)
		}
		if tb.Y < footerY {
			t.Fatalf("文本落在页脚之下: %+v", tb)
		}
		if tb.Y < DefaultMargin.Bottom && tb.FontSize != sizeFooter {
			t.Fatalf("正文侵入下边距: %+v", tb)
		}
	}
}

func TestExplicitMarginMovesFooter(t *testing.T) {
	opts := testOptions()
	opts.Margin = &Margin{Top: 60, Right: 40, Bottom: 30, Left: 40}
	res, err := Build(sampleApplication(), opts)
	if err != nil {
		t.Fatalf("Build 出错: %v", err)
	}
	tb, ok := find(res, "Generated by CASTPOINT platform")
	if !ok {
		t.Fatalf("缺少页脚")
	}
	if tb.X != 40 || tb.Y != 12 {
		t.Fatalf("页脚位置不符: x=%g y=%g", tb.X, tb.Y)
	}

	res, err = Build(sampleApplication(), testOptions())
	if err != nil {
		t.Fatalf("Build 出错: %v", err)
	}
	if tb, _ := find(res, "Generated by CASTPOINT platform"); tb.Y != DefaultMargin.Bottom-18 {
		t.Fatalf("未设置边距时应使用默认边距: y=%g", tb.Y)
	}
}

func TestSectionIsCappedAtMaxLines(t *testing.T) {
	app := sampleApplication()
	app.Artist.Experience = strings.Repeat("lorem ", 400)
	app.CoverMessage = ""
	res, err := Build(app, testOptions())
	if err != nil {
		t.Fatalf("Build 出错: %v", err)
	}
	baselines := map[float64]bool{}
	for _, tb := range texts(res) {
		if tb.Content == "lorem" {
			baselines[tb.Y] = true
		}
	}
	if len(baselines) != maxExperienceLines {
		t.Fatalf("经历应截断为 %d 行，实际 %d", maxExperienceLines, len(baselines))
	}
}

func TestBuildPlacesPhotoInsideBox(t *testing.T) {
	app := sampleApplication()
	app.Photo = image.NewRGBA(image.Rect(0, 0, 300, 600))
	res, err := Build(app, testOptions())
	if err != nil {
		t.Fatalf("Build 出错: %v", err)
	}
	if _, ok := find(res, "No profile photo"); ok {
		t.Fatalf("有照片时不应显示占位文字")
	}
	images := res.Pages[0].Images
	if len(images) != 1 {
		t.Fatalf("应有一张图片，实际 %d", len(images))
	}
	img := images[0]
	if math.Abs(img.Width/img.Height-0.5) > 1e-9 {
		t.Fatalf("图片应保持宽高比: %gx%g", img.Width, img.Height)
	}
	if math.Abs(img.Height-(photoBoxHeight-2*photoPadding)) > 1e-9 {
		t.Fatalf("竖图应以高度撑满照片框: %g", img.Height)
	}
	heading, _ := find(res, "Photo")
	top := heading.Y - headingGap
	if img.Y < top-photoBoxHeight || img.Y+img.Height > top {
		t.Fatalf("图片超出照片框: %+v top=%g", img, top)
	}
}

func TestGuidesAreOptional(t *testing.T) {
	res, err := Build(sampleApplication(), testOptions())
	if err != nil {
		t.Fatalf("Build 出错: %v", err)
	}
	if len(res.Pages[0].Lines) != 0 {
		t.Fatalf("默认不应绘制辅助线")
	}
	opts := testOptions()
	opts.Debug.Guides = true
	res, err = Build(sampleApplication(), opts)
	if err != nil {
		t.Fatalf("Build 出错: %v", err)
	}
	if len(res.Pages[0].Lines) != 6 {
		t.Fatalf("辅助线数量不符: %d", len(res.Pages[0].Lines))
	}
}

func TestEmptyApplicationUsesPlaceholders(t *testing.T) {
	res, err := Build(Application{}, testOptions())
	if err != nil {
		t.Fatalf("Build 出错: %v", err)
	}
	count := 0
	for _, tb := range texts(res) {
		if tb.Content == layout.Placeholder {
			count++
		}
	}
	// 职位、五个字段与经历
	if count != 7 {
		t.Fatalf("占位符数量期望 7，实际 %d", count)
	}
	if _, ok := find(res, "CP-000000"); ok {
		t.Fatalf("没有申请编号时不应绘制")
	}
	if res.Meta.Title != "Castpoint Profile" {
		t.Fatalf("无姓名时标题不符: %q", res.Meta.Title)
	}
}

func TestFitParagraphs(t *testing.T) {
	paras := [][]string{{"a", "b"}, {"c", "d"}}
	got := fitParagraphs(paras, 4)
	if len(got) != 2 || len(got[1]) != 1 {
		t.Fatalf("段落间空行应计入预算: %q", got)
	}
	if got := fitParagraphs(paras, 0); len(got) != 0 {
		t.Fatalf("预算为 0 时不应保留内容: %q", got)
	}
}
