package layout

import (
	"math"
	"testing"
)

func TestTwoColTableSingleRowExample(t *testing.T) {
	rec := &Recorder{}
	const startY, rowPad = 400.0, 4.0
	finalY := DrawTwoColTable(rec, []Row{{Label: "Height (cm):", Value: "—"}}, 0, startY, 300, 0.4, fixedMeasure(6), 10, rowPad)

	rowHeight := LineHeight(10) + 2*rowPad
	if finalY >= startY {
		t.Fatalf("finalY 应小于起始 y: %g", finalY)
	}
	if math.Abs(startY-finalY-rowHeight) > 1e-9 {
		t.Fatalf("finalY 应比起始 y 少一行高 %g，实际差 %g", rowHeight, startY-finalY)
	}
	if len(rec.Calls) != 2 {
		t.Fatalf("两个单元格应各绘制一次，实际 %+v", rec.Calls)
	}
	label, value := rec.Calls[0], rec.Calls[1]
	if label.Text != "Height (cm):" || value.Text != "—" {
		t.Fatalf("单元格内容不符: %+v", rec.Calls)
	}
	// 左列 120，扣除间隔 6 后标签右对齐到 114。
	if label.X != 114-72 {
		t.Fatalf("标签应右对齐，x=%g", label.X)
	}
	if value.X != 120 {
		t.Fatalf("取值列应从 120 开始，x=%g", value.X)
	}
	if label.Y != value.Y || label.Y != startY-rowPad-10 {
		t.Fatalf("两个单元格应锚定在行顶: label.y=%g value.y=%g", label.Y, value.Y)
	}
}

func TestTwoColTableRowHeightFollowsTallerCell(t *testing.T) {
	rec := &Recorder{}
	rows := []Row{
		{Label: "Experience", Value: "Cirque tours across Europe and Asia since 2015"},
		{Label: "", Value: "Kyiv"},
	}
	tbl := TwoColTable{
		Width:        200,
		LeftRatio:    0.5,
		Gutter:       10,
		FontSize:     10,
		RowPad:       2,
		LineHeight:   12,
		LabelSink:    rec,
		LabelMeasure: fixedMeasure(6),
		ValueSink:    rec,
		ValueMeasure: fixedMeasure(6),
	}
	labelW, valueW := tbl.ColumnWidths()
	if labelW != 90 || valueW != 100 {
		t.Fatalf("列宽不符: %g %g", labelW, valueW)
	}
	// 取值列 100 可容纳 16 个字符，取值会折成多行。
	valueLines := WrapText(rows[0].Value, valueW, fixedMeasure(6), 10)
	if len(valueLines) < 3 {
		t.Fatalf("测试前提不成立: %q", valueLines)
	}
	first := tbl.RowHeight(rows[0])
	if want := float64(len(valueLines))*12 + 4; first != want {
		t.Fatalf("行高应取较高的单元格: got=%g want=%g", first, want)
	}

	finalY := tbl.Draw(rows, 10, 300)
	if want := 300 - first - (12 + 4); finalY != want {
		t.Fatalf("finalY 期望 %g，实际 %g", want, finalY)
	}

	var placeholder *DrawCall
	for i := range rec.Calls {
		if rec.Calls[i].Text == Placeholder {
			placeholder = &rec.Calls[i]
		}
	}
	if placeholder == nil {
		t.Fatalf("空标签应绘制占位符: %+v", rec.Calls)
	}
	if placeholder.Y != 300-first-2-10 {
		t.Fatalf("第二行应从第一行下方开始: y=%g", placeholder.Y)
	}
}

func TestTwoColTableLeftRatioIsClamped(t *testing.T) {
	tbl := TwoColTable{Width: 100, LeftRatio: 1.7}
	if l, r := tbl.ColumnWidths(); l != 100 || r != 0 {
		t.Fatalf("比例应限制在 [0,1]: %g %g", l, r)
	}
	tbl.LeftRatio = -1
	if l, r := tbl.ColumnWidths(); l != 0 || r != 100 {
		t.Fatalf("比例应限制在 [0,1]: %g %g", l, r)
	}
}
