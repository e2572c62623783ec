package layout

import "strings"

// Placeholder 是空字段的占位文本。
const Placeholder = "—"

// WrapText 使用贪心算法把 text 折成宽度不超过 maxWidth 的若干行。
// 不做词内拆分：单个超宽的词独占一行。空白输入返回 [Placeholder]。
func WrapText(text string, maxWidth float64, measure MeasureFunc, fontSize float64) []string {
	return wrapWords(splitWords(text), maxWidth, measure, fontSize)
}

// splitWords 按空白分词，空白输入返回占位词。
func splitWords(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{Placeholder}
	}
	return words
}

func wrapWords(words []string, maxWidth float64, measure MeasureFunc, fontSize float64) []string {
	var lines []string
	line := ""
	for _, w := range words {
		candidate := w
		if line != "" {
			candidate = line + " " + w
		}
		if measure(candidate, fontSize) <= maxWidth {
			line = candidate
			continue
		}
		if line != "" {
			lines = append(lines, line)
		}
		line = w
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// TruncateLines 最多保留 limit 行；limit <= 0 表示不限制。
func TruncateLines(lines []string, limit int) []string {
	if limit <= 0 || len(lines) <= limit {
		return lines
	}
	return lines[:limit]
}
