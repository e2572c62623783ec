package fonts

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// 内置字体，按名称索引。
var builtin = map[string][]byte{
	"Go-Regular":    goregular.TTF,
	"Go-Bold":       gobold.TTF,
	"Go-Italic":     goitalic.TTF,
	"Go-BoldItalic": gobolditalic.TTF,
}

// Load 返回内置字体的字节数据，name 可写为 "embed:Go-Bold" 或直接 "Go-Bold"，可带 .ttf 后缀。
func Load(name string) ([]byte, error) {
	clean := strings.TrimSuffix(strings.TrimPrefix(name, "embed:"), ".ttf")
	data, ok := builtin[clean]
	if !ok {
		return nil, fmt.Errorf("读取内置字体 %s 失败: 未知字体（可用: %s）", name, strings.Join(Names(), ", "))
	}
	return data, nil
}

// Names 返回全部内置字体名称。
func Names() []string {
	out := make([]string, 0, len(builtin))
	for k := range builtin {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
