package layout

import "image"

// 该文件定义布局结果与资源描述，供排版计算、渲染与调试 JSON 共用。
// 坐标统一使用 pt，原点在页面左下角，y 向上增长（与 PDF 坐标一致）。

// Result 保存布局后的页面与资源信息。
type Result struct {
	Pages     []Page       `json:"pages"`
	Resources ResourceSet  `json:"resources"`
	Meta      DocumentMeta `json:"meta"`
}

// ResourceSet 记录排版中使用到的字体。
type ResourceSet struct {
	Fonts map[string]FontResource `json:"fonts"`
}

// FontResource 描述字体资源，src 可以是文件路径或内置 embed:* 形式。
type FontResource struct {
	Name  string `json:"name"`
	Src   string `json:"src"`
	Style string `json:"style"`
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Page 记录页面尺寸与最终可以直接渲染的元素，按 Rects → Lines → Images → Texts 的顺序绘制。
type Page struct {
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Texts  []TextBox  `json:"texts"`
	Images []ImageBox `json:"images,omitempty"`
	Lines  []Line     `json:"lines,omitempty"`
	Rects  []Rect     `json:"rects,omitempty"`
}

// TextBox 表示一段已经定位好的单行文本，Y 为基线。
type TextBox struct {
	Content  string  `json:"content"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Font     string  `json:"font"`
	FontSize float64 `json:"fontSize"`
	Color    Color   `json:"color"`
}

// ImageBox 描述图片位置与尺寸，(X, Y) 为左下角。
type ImageBox struct {
	X      float64     `json:"x"`
	Y      float64     `json:"y"`
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	Image  image.Image `json:"-"`
}

// Line 表示一条线段。
type Line struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Color Color   `json:"color"`
	Width float64 `json:"width"` // 线宽（pt），<=0 时由渲染器给默认值
}

// Rect 表示一个填充矩形，(X, Y) 为左下角。
type Rect struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	FillColor Color   `json:"fillColor"`
}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}
