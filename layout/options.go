package layout

// MeasureFunc 返回 text 在给定字号下的渲染宽度（pt）。
type MeasureFunc func(text string, size float64) float64

// Sink 是绘制文本的目标，例如绑定了字体的页面。
type Sink interface {
	DrawText(text string, x, y, size float64, color Color)
}

// Metrics 为字体提供宽度测量函数，通常由渲染器基于真实字形实现。
type Metrics interface {
	Measurer(font FontResource) (MeasureFunc, error)
}

// BuildOptions 配置排版阶段所需的依赖。
type BuildOptions struct {
	Metrics Metrics
	Debug   DebugOptions
}

// DebugOptions 控制调试相关输出。
type DebugOptions struct {
	Guides bool // 在页面上绘制边距与分栏辅助线
}
