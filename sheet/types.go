package sheet

import (
	"fmt"
	"image"

	"github.com/ByLCY/castpoint/layout"
)

// Artist 是申请人在资料页上展示的字段。联系方式不会出现在 PDF 中。
type Artist struct {
	FullName    string `json:"full_name"`
	Country     string `json:"country,omitempty"`
	DateOfBirth string `json:"date_of_birth"`
	Height      string `json:"height,omitempty"`
	Weight      string `json:"weight,omitempty"`
	Experience  string `json:"experience,omitempty"`
	Biography   string `json:"biography,omitempty"`
}

// Application 汇总生成一页资料所需的全部数据；Photo 需由调用方预先加载。
type Application struct {
	ID           int64
	JobTitle     string
	CompanyName  string
	Artist       Artist
	CoverMessage string
	Photo        image.Image
}

// ApplicationCode 返回对外展示的申请编号，例如 CP-000123。
func ApplicationCode(id int64) string {
	return fmt.Sprintf("CP-%06d", id)
}

// Margin 以 pt 为单位。
type Margin struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// DefaultMargin 与 A4 资料页的版式一致。
var DefaultMargin = Margin{Top: 56, Right: 48, Bottom: 48, Left: 48}

// Fonts 指定常规与粗体字体。
type Fonts struct {
	Regular layout.FontResource
	Bold    layout.FontResource
}

// DefaultFonts 使用内置 Go 字体。
var DefaultFonts = Fonts{
	Regular: layout.FontResource{Name: "Regular", Src: "embed:Go-Regular"},
	Bold:    layout.FontResource{Name: "Bold", Src: "embed:Go-Bold", Style: "bold"},
}

// Options 配置资料页排版。
type Options struct {
	layout.BuildOptions
	Fonts  Fonts
	Margin *Margin // nil 表示 DefaultMargin
}

// 品牌配色。
var (
	colorPrimary = layout.Color{R: 0, G: 0, B: 0}
	colorAccent  = layout.Color{R: 0xf5, G: 0x72, B: 0x0d}
	colorAccent2 = layout.Color{R: 0xaa, G: 0x02, B: 0x54}
	colorMuted   = layout.Color{R: 0x6b, G: 0x72, B: 0x80}
	colorWhite   = layout.Color{R: 0xff, G: 0xff, B: 0xff}
	colorGuide   = layout.Color{R: 0x00, G: 0xa0, B: 0xe0}
)

// 字号（pt）。
const (
	sizeBrand    = 18
	sizeBrandSub = 16
	sizeTitle    = 16
	sizeH2       = 12
	sizeBody     = 10
	sizeMessage  = 9
	sizeCaption  = 10
	sizeFooter   = 8
)

const (
	headerHeight   = 92.0
	columnGap      = 18.0
	leftColumnPart = 0.58
	headingGap     = 16.0
	sectionGap     = 10.0
	photoBoxHeight = 200.0
	photoPadding   = 10.0
	tableLeftRatio = 0.38
	tableGutter    = 8.0
	tableRowPad    = 3.0
	tableTopGap    = 6.0

	maxExperienceLines = 18
	maxBiographyLines  = 18
	maxMessageLines    = 22
)
