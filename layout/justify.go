package layout

import (
	"regexp"
	"strings"
)

// paragraphBreak 匹配段落分隔：一个或多个换行，两侧允许任意空白。
var paragraphBreak = regexp.MustCompile(`\s*\n+\s*`)

// SplitParagraphs 按换行把 text 拆成段落，丢弃空段落；全部为空时返回 [Placeholder]。
func SplitParagraphs(text string) []string {
	var out []string
	for _, p := range paragraphBreak.Split(text, -1) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{Placeholder}
	}
	return out
}

// WrapParagraphs 拆分段落并对每个段落独立折行。
func WrapParagraphs(text string, width float64, measure MeasureFunc, fontSize float64) [][]string {
	paras := SplitParagraphs(text)
	out := make([][]string, 0, len(paras))
	for _, p := range paras {
		out = append(out, WrapText(p, width, measure, fontSize))
	}
	return out
}

// ClipParagraphs 在所有段落中总共最多保留 limit 行，limit <= 0 表示不限制。
func ClipParagraphs(paras [][]string, limit int) [][]string {
	if limit <= 0 {
		return paras
	}
	var out [][]string
	left := limit
	for _, lines := range paras {
		if left <= 0 {
			break
		}
		lines = TruncateLines(lines, left)
		left -= len(lines)
		out = append(out, lines)
	}
	return out
}

// DrawJustifiedParagraph 以两端对齐方式绘制 text，返回绘制后的基线位置。
// y 为首行基线，逐行递减；lineHeight <= 0 时取 fontSize 的 1.35 倍。
// 段落的最后一行与单词行保持自然间距，不做拉伸。
func DrawJustifiedParagraph(sink Sink, text string, x, y, width float64, measure MeasureFunc, fontSize, lineHeight float64, color Color) float64 {
	paras := WrapParagraphs(text, width, measure, fontSize)
	return DrawParagraphs(sink, paras, x, y, width, measure, fontSize, lineHeight, color)
}

// DrawParagraphs 绘制已经折好行的段落，段落之间额外空一行。
func DrawParagraphs(sink Sink, paras [][]string, x, y, width float64, measure MeasureFunc, fontSize, lineHeight float64, color Color) float64 {
	if lineHeight <= 0 {
		lineHeight = LineHeight(fontSize)
	}
	for i, lines := range paras {
		for j, line := range lines {
			words := strings.Fields(line)
			if j < len(lines)-1 && len(words) > 1 {
				drawStretchedLine(sink, words, x, y, width, measure, fontSize, color)
			} else {
				drawNaturalLine(sink, words, x, y, measure, fontSize, color)
			}
			y -= lineHeight
		}
		if i < len(paras)-1 {
			y -= lineHeight
		}
	}
	return y
}

// JustifyGap 返回把 words 拉伸到 width 时每个词间隙的宽度。
// 自然宽度超过 width 时结果为负，不做截断。
func JustifyGap(words []string, width float64, measure MeasureFunc, fontSize float64) float64 {
	if len(words) < 2 {
		return 0
	}
	natural := 0.0
	for _, w := range words {
		natural += measure(w, fontSize)
	}
	return (width - natural) / float64(len(words)-1)
}

func drawStretchedLine(sink Sink, words []string, x, y, width float64, measure MeasureFunc, fontSize float64, color Color) {
	gap := JustifyGap(words, width, measure, fontSize)
	cursor := x
	for i, w := range words {
		sink.DrawText(w, cursor, y, fontSize, color)
		cursor += measure(w, fontSize)
		if i < len(words)-1 {
			cursor += gap
		}
	}
}

func drawNaturalLine(sink Sink, words []string, x, y float64, measure MeasureFunc, fontSize float64, color Color) {
	space := measure(" ", fontSize)
	cursor := x
	for _, w := range words {
		sink.DrawText(w, cursor, y, fontSize, color)
		cursor += measure(w, fontSize) + space
	}
}
