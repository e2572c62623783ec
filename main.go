package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/castpoint/config"
	"github.com/ByLCY/castpoint/imageload"
	"github.com/ByLCY/castpoint/layout"
	canvasrenderer "github.com/ByLCY/castpoint/renderer/canvas"
	"github.com/ByLCY/castpoint/server"
	"github.com/ByLCY/castpoint/sheet"
)

func main() {
	input := flag.String("in", "", "申请 JSON 文件路径")
	output := flag.String("out", "", "PDF 输出路径（默认按文件名模板写入 output/）")
	debug := flag.String("debug", "", "布局调试 JSON 输出路径")
	guides := flag.Bool("guides", false, "绘制边距与分栏辅助线")
	serve := flag.Bool("serve", false, "启动 HTTP 服务")
	envFile := flag.String("env", "", ".env 文件路径（默认尝试 ./.env）")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	h, err := newHandler(cfg, *guides)
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	if *serve {
		r := server.NewRouter(h, cfg.CORSOrigins)
		log.Printf("服务启动于 %s", cfg.Addr)
		if err := r.Run(cfg.Addr); err != nil {
			log.Fatalf("服务启动失败: %v", err)
		}
		return
	}

	if *input == "" {
		log.Fatalf("缺少 -in 参数（或使用 -serve 启动服务）")
	}
	out, err := run(*input, *output, *debug, h)
	if err != nil {
		log.Fatalf("生成 PDF 失败: %v", err)
	}
	fmt.Printf("已生成 PDF：%s\n", out)
}

// newHandler 按配置组装照片加载、排版与渲染。
func newHandler(cfg config.Config, guides bool) (*server.ProfileHandler, error) {
	photos := imageload.New(imageload.Options{
		PublicDir: cfg.PublicDir,
		Timeout:   cfg.ImageTimeout,
		MaxBytes:  cfg.ImageMaxBytes,
	})
	blobs := map[string][]byte{}
	regular, err := fontSource("Regular", cfg.FontRegular, blobs)
	if err != nil {
		return nil, err
	}
	bold, err := fontSource("Bold", cfg.FontBold, blobs)
	if err != nil {
		return nil, err
	}
	opts := sheet.Options{
		Fonts: sheet.Fonts{
			Regular: layout.FontResource{Src: regular},
			Bold:    layout.FontResource{Src: bold, Style: "bold"},
		},
	}
	if cfg.Margin != nil {
		m := *cfg.Margin
		opts.Margin = &sheet.Margin{Top: m, Right: m, Bottom: m, Left: m}
	}
	opts.Debug.Guides = guides
	engine := canvasrenderer.NewRendererWithOptions(canvasrenderer.Options{Fonts: blobs})
	return server.NewProfileHandler(photos, engine, opts, cfg.FileNameTemplate), nil
}

// fontSource 把字体文件读入 blobs 并改写为 built-in:<name>；embed: 来源原样返回。
func fontSource(name, src string, blobs map[string][]byte) (string, error) {
	if strings.HasPrefix(src, "embed:") {
		return src, nil
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("读取字体文件 %s 失败: %w", src, err)
	}
	blobs[name] = data
	return "built-in:" + name, nil
}

// run 串联读取、排版与渲染，返回实际写入的 PDF 路径。
func run(inputPath, outputPath, debugPath string, h *server.ProfileHandler) (string, error) {
	if h == nil || h.Engine == nil {
		return "", fmt.Errorf("renderer 不能为空")
	}
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return "", fmt.Errorf("无法读取申请文件 %s: %w", inputPath, err)
	}
	req, err := server.ParseRequest(data)
	if err != nil {
		return "", fmt.Errorf("申请数据无效: %w", err)
	}

	result, err := h.Build(context.Background(), req)
	if err != nil {
		return "", err
	}
	if debugPath != "" {
		if err := writeDebug(result, debugPath); err != nil {
			return "", err
		}
	}

	if outputPath == "" {
		outputPath = filepath.Join("output", h.FileName(req))
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return "", fmt.Errorf("创建输出目录失败: %w", err)
	}

	pdfBytes, err := h.Engine.Render(result)
	if err != nil {
		return "", fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if err := os.WriteFile(outputPath, pdfBytes, 0o644); err != nil {
		return "", fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	return outputPath, nil
}

func writeDebug(result *layout.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(result, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
