// Package config 从环境变量（以及可选的 .env 文件）读取服务配置。
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ByLCY/castpoint/binding"
	"github.com/ByLCY/castpoint/layout"
)

// 环境变量名。
const (
	EnvAddr          = "CASTPOINT_ADDR"
	EnvPublicDir     = "CASTPOINT_PUBLIC_DIR"
	EnvFontRegular   = "CASTPOINT_FONT_REGULAR"
	EnvFontBold      = "CASTPOINT_FONT_BOLD"
	EnvImageTimeout  = "CASTPOINT_IMAGE_TIMEOUT"
	EnvImageMaxBytes = "CASTPOINT_IMAGE_MAX_BYTES"
	EnvFileName      = "CASTPOINT_PDF_FILENAME"
	EnvPageMargin    = "CASTPOINT_PAGE_MARGIN"
	EnvCORSOrigins   = "CASTPOINT_CORS_ORIGINS"
)

// MinPageMargin 是允许的最小页边距（pt）：页脚画在下边距之下 18pt 处。
const MinPageMargin = 24.0

// DefaultEnvFile 在未显式指定时尝试加载，文件不存在不算错误。
const DefaultEnvFile = ".env"

// Config 汇总服务运行所需的配置。
type Config struct {
	Addr             string
	PublicDir        string
	FontRegular      string // embed:<name> 或 TTF/OTF 文件路径
	FontBold         string
	ImageTimeout     time.Duration
	ImageMaxBytes    int64
	FileNameTemplate string
	Margin           *float64 // pt，四边统一；nil 表示使用资料页默认边距
	CORSOrigins      []string
}

// Default 返回未设置任何环境变量时的配置。
func Default() Config {
	return Config{
		Addr:             ":8080",
		PublicDir:        "public",
		FontRegular:      "embed:Go-Regular",
		FontBold:         "embed:Go-Bold",
		ImageTimeout:     10 * time.Second,
		ImageMaxBytes:    5 << 20,
		FileNameTemplate: "${artist.full_name}_Castpoint_Profile.pdf",
	}
}

// Load 加载 envFile（为空时尝试 .env）后读取环境变量。
// 已存在的环境变量优先于文件中的值。
func Load(envFile string) (Config, error) {
	if err := loadEnvFile(envFile); err != nil {
		return Config{}, err
	}
	return FromEnv()
}

func loadEnvFile(path string) error {
	if path == "" {
		if _, err := os.Stat(DefaultEnvFile); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config: 加载 %s 失败: %w", path, err)
	}
	return nil
}

// FromEnv 只读取当前进程的环境变量。
func FromEnv() (Config, error) {
	cfg := Default()
	setString(&cfg.Addr, EnvAddr)
	setString(&cfg.PublicDir, EnvPublicDir)
	setString(&cfg.FontRegular, EnvFontRegular)
	setString(&cfg.FontBold, EnvFontBold)
	setString(&cfg.FileNameTemplate, EnvFileName)

	if v, ok := lookup(EnvImageTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("config: %s 不是有效的时长: %q", EnvImageTimeout, v)
		}
		cfg.ImageTimeout = d
	}
	if v, ok := lookup(EnvImageMaxBytes); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("config: %s 必须是正整数: %q", EnvImageMaxBytes, v)
		}
		cfg.ImageMaxBytes = n
	}
	if v, ok := lookup(EnvPageMargin); ok {
		l, err := layout.ParseLength(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", EnvPageMargin, err)
		}
		// 不带单位的数值按 pt 处理
		pt := l.ToPT()
		if pt < MinPageMargin {
			return Config{}, fmt.Errorf("config: %s 不能小于 %gpt: %q", EnvPageMargin, MinPageMargin, v)
		}
		cfg.Margin = &pt
	}
	if v, ok := lookup(EnvCORSOrigins); ok {
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}
	if len(binding.Placeholders(cfg.FileNameTemplate)) == 0 && !strings.HasSuffix(strings.ToLower(cfg.FileNameTemplate), ".pdf") {
		return Config{}, fmt.Errorf("config: %s 既没有占位符也不是 .pdf 文件名: %q", EnvFileName, cfg.FileNameTemplate)
	}
	return cfg, nil
}

func lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

func setString(dst *string, key string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}
