package sheet

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/ByLCY/castpoint/layout"
)

// dateLayouts 是资料中出生日期常见的写法。
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"02.01.2006",
	"02/01/2006",
	"January 2, 2006",
	"2 January 2006",
}

// NormalizeDate 把可识别的日期转换为 DD/MM/YYYY，无法识别时原样返回。
func NormalizeDate(s string) string {
	v := strings.TrimSpace(s)
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, v); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return v
}

// clean 去除首尾空白并统一为 NFC，避免组合字符影响宽度测量。
func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// orPlaceholder 为空字段返回占位符。
func orPlaceholder(s string) string {
	if s == "" {
		return layout.Placeholder
	}
	return s
}

// normalizeCountry 仅对全小写的输入做首字母大写，保留 "USA" 这类写法。
func normalizeCountry(s string) string {
	v := clean(s)
	if v == "" || v != strings.ToLower(v) {
		return v
	}
	// Caser 有内部状态，不能在多个 goroutine 间共享。
	return cases.Title(language.English).String(v)
}
