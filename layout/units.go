package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// 排版坐标统一使用 pt；canvas 渲染器在边界处换算为 mm。

// Unit 是长度在配置中书写时使用的单位。
type Unit int

const (
	UnitNone Unit = iota // 不带单位，按 pt 处理
	UnitMM
	UnitCM
	UnitIN
	UnitPT
)

// pt 与 mm 的换算系数。
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)

// Length 保留数值与原始单位，例如配置中的 "10mm"。
type Length struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// ToPT 换算为 pt。
func (l Length) ToPT() float64 {
	switch l.Unit {
	case UnitMM:
		return l.Value * MmToPt
	case UnitCM:
		return l.Value * 10 * MmToPt
	case UnitIN:
		return l.Value * 72
	default:
		return l.Value
	}
}

var unitSuffixes = []struct {
	suffix string
	unit   Unit
}{{"mm", UnitMM}, {"cm", UnitCM}, {"in", UnitIN}, {"pt", UnitPT}}

// ParseLength 解析 "48pt"、"17mm"、"12" 这类长度；空串返回零值。
func ParseLength(value string) (Length, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Length{}, nil
	}
	unit, num := UnitNone, v
	for _, s := range unitSuffixes {
		if strings.HasSuffix(v, s.suffix) {
			unit = s.unit
			num = strings.TrimSpace(strings.TrimSuffix(v, s.suffix))
			break
		}
	}
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, fmt.Errorf("无法解析长度 %q: %w", value, err)
	}
	return Length{Value: f, Unit: unit}, nil
}

// DefaultLineHeightFactor 是未指定行高时相对字号的倍数。
const DefaultLineHeightFactor = 1.35

// LineHeight 返回字号 fontSize（pt）对应的默认行高。
func LineHeight(fontSize float64) float64 {
	return fontSize * DefaultLineHeightFactor
}
