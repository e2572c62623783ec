package config

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/ByLCY/castpoint/layout"
)

var allKeys = []string{
	EnvAddr, EnvPublicDir, EnvFontRegular, EnvFontBold, EnvImageTimeout,
	EnvImageMaxBytes, EnvFileName, EnvPageMargin, EnvCORSOrigins,
}

// clearEnv 清空相关变量，并在测试结束后恢复原值。
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv 出错: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("默认配置不符: %+v", cfg)
	}
	if cfg.Margin != nil {
		t.Fatalf("未设置边距时应沿用资料页默认值")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAddr, ":9090")
	t.Setenv(EnvImageTimeout, "3s")
	t.Setenv(EnvImageMaxBytes, "1024")
	t.Setenv(EnvPageMargin, "10mm")
	t.Setenv(EnvCORSOrigins, " https://a.example , ,https://b.example")
	t.Setenv(EnvFontBold, "fonts/Inter-Bold.ttf")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv 出错: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.ImageTimeout != 3*time.Second || cfg.ImageMaxBytes != 1024 {
		t.Fatalf("覆盖值不符: %+v", cfg)
	}
	if cfg.FontBold != "fonts/Inter-Bold.ttf" || cfg.FontRegular != "embed:Go-Regular" {
		t.Fatalf("字体配置不符: %+v", cfg)
	}
	if cfg.Margin == nil || math.Abs(*cfg.Margin-10*layout.MmToPt) > 1e-9 {
		t.Fatalf("边距应换算为 pt，实际 %v", cfg.Margin)
	}
	if want := []string{"https://a.example", "https://b.example"}; !reflect.DeepEqual(cfg.CORSOrigins, want) {
		t.Fatalf("CORS 来源不符: %v", cfg.CORSOrigins)
	}
}

func TestBareMarginIsPoints(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPageMargin, "36")
	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv 出错: %v", err)
	}
	if cfg.Margin == nil || *cfg.Margin != 36 {
		t.Fatalf("不带单位的边距应按 pt 处理，实际 %v", cfg.Margin)
	}
}

func TestFromEnvRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		EnvImageTimeout:  "soon",
		EnvImageMaxBytes: "-5",
		EnvPageMargin:    "wide",
		EnvFileName:      "profile",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, val)
			if _, err := FromEnv(); err == nil {
				t.Fatalf("%s=%q 应报错", key, val)
			}
		})
	}
	// 页脚位于下边距之下，过小的边距会把页脚推出页面
	for _, v := range []string{"0", "-4pt", "20"} {
		clearEnv(t)
		t.Setenv(EnvPageMargin, v)
		if _, err := FromEnv(); err == nil {
			t.Fatalf("边距 %q 应报错", v)
		}
	}
	clearEnv(t)
	t.Setenv(EnvPageMargin, "24pt")
	if cfg, err := FromEnv(); err != nil || cfg.Margin == nil || *cfg.Margin != MinPageMargin {
		t.Fatalf("最小边距应被接受: %v %v", cfg.Margin, err)
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	content := "CASTPOINT_ADDR=:7070\nCASTPOINT_PUBLIC_DIR=/srv/public\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("写入 env 文件失败: %v", err)
	}
	// 进程中已有的变量优先
	t.Setenv(EnvPublicDir, "assets")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 出错: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.PublicDir != "assets" {
		t.Fatalf("env 文件合并结果不符: %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatalf("显式指定的文件不存在时应报错")
	}
	t.Chdir(t.TempDir())
	if _, err := Load(""); err != nil {
		t.Fatalf("默认 .env 不存在时不应报错: %v", err)
	}
}
