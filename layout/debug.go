package layout

import (
	"encoding/json"
	"os"
)

// WriteDebugJSON 将布局结果输出为 JSON，便于调试或可视化。
func WriteDebugJSON(res *Result, path string) error {
	if res == nil {
		return nil
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// DrawCall 记录一次 DrawText 调用。
type DrawCall struct {
	Text  string  `json:"text"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size"`
	Color Color   `json:"color"`
}

// Recorder 是只记录调用的 Sink，可选地把调用转发给 Next。
type Recorder struct {
	Calls []DrawCall
	Next  Sink
}

// DrawText 实现 Sink。
func (r *Recorder) DrawText(text string, x, y, size float64, color Color) {
	r.Calls = append(r.Calls, DrawCall{Text: text, X: x, Y: y, Size: size, Color: color})
	if r.Next != nil {
		r.Next.DrawText(text, x, y, size, color)
	}
}
