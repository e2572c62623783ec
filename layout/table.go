package layout

import "math"

const defaultTableGutter = 6.0

// Row 是两列表格中的一行：左列标签，右列取值。
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// TwoColTable 描述两列键值表的样式。标签与取值可以使用不同的字体与颜色。
type TwoColTable struct {
	Width     float64
	LeftRatio float64 // 左列占总宽度的比例，限制在 [0, 1]
	Gutter    float64 // 标签右侧与取值列之间的间隔
	FontSize  float64
	RowPad    float64
	// LineHeight <= 0 时取 FontSize 的 1.35 倍。
	LineHeight float64

	LabelSink    Sink
	LabelMeasure MeasureFunc
	LabelColor   Color
	ValueSink    Sink
	ValueMeasure MeasureFunc
	ValueColor   Color
}

// DrawTwoColTable 使用同一个 sink 与测量函数绘制两列表格，返回最后一行之下的 y。
func DrawTwoColTable(sink Sink, rows []Row, x, y, width, leftRatio float64, measure MeasureFunc, fontSize, rowPad float64) float64 {
	t := TwoColTable{
		Width:        width,
		LeftRatio:    leftRatio,
		Gutter:       defaultTableGutter,
		FontSize:     fontSize,
		RowPad:       rowPad,
		LabelSink:    sink,
		LabelMeasure: measure,
		ValueSink:    sink,
		ValueMeasure: measure,
	}
	return t.Draw(rows, x, y)
}

// ColumnWidths 返回标签列（扣除间隔后）与取值列的可用宽度。
func (t TwoColTable) ColumnWidths() (float64, float64) {
	ratio := math.Min(math.Max(t.LeftRatio, 0), 1)
	left := t.Width * ratio
	return math.Max(left-t.Gutter, 0), t.Width - left
}

func (t TwoColTable) lineHeight() float64 {
	if t.LineHeight > 0 {
		return t.LineHeight
	}
	return LineHeight(t.FontSize)
}

// RowHeight 返回一行在折行后的高度。
func (t TwoColTable) RowHeight(row Row) float64 {
	labelW, valueW := t.ColumnWidths()
	labels := WrapText(row.Label, labelW, t.LabelMeasure, t.FontSize)
	values := WrapText(row.Value, valueW, t.ValueMeasure, t.FontSize)
	return t.height(len(labels), len(values))
}

func (t TwoColTable) height(labelLines, valueLines int) float64 {
	n := labelLines
	if valueLines > n {
		n = valueLines
	}
	return float64(n)*t.lineHeight() + 2*t.RowPad
}

// Draw 从顶边 y 开始逐行绘制，标签在左列内右对齐，取值在右列内左对齐。
func (t TwoColTable) Draw(rows []Row, x, y float64) float64 {
	labelW, valueW := t.ColumnWidths()
	valueX := x + labelW + t.Gutter
	lh := t.lineHeight()
	for _, row := range rows {
		labels := WrapText(row.Label, labelW, t.LabelMeasure, t.FontSize)
		values := WrapText(row.Value, valueW, t.ValueMeasure, t.FontSize)

		baseline := y - t.RowPad - t.FontSize
		for i, ln := range labels {
			lx := x + labelW - t.LabelMeasure(ln, t.FontSize)
			t.LabelSink.DrawText(ln, lx, baseline-float64(i)*lh, t.FontSize, t.LabelColor)
		}
		for i, ln := range values {
			t.ValueSink.DrawText(ln, valueX, baseline-float64(i)*lh, t.FontSize, t.ValueColor)
		}
		y -= t.height(len(labels), len(values))
	}
	return y
}
