// Package server 通过 HTTP 提供资料 PDF 生成接口。
package server

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"mime"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	ginbinding "github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/ByLCY/castpoint/binding"
	"github.com/ByLCY/castpoint/layout"
	"github.com/ByLCY/castpoint/renderer"
	"github.com/ByLCY/castpoint/sheet"
)

// PhotoLoader 把照片来源解析为图片；空来源返回 nil。
type PhotoLoader interface {
	Load(ctx context.Context, src string) (image.Image, error)
}

// Engine 同时负责测量文字与渲染 PDF。
type Engine interface {
	layout.Metrics
	renderer.Renderer
}

// Issue 描述一个未通过校验的字段。
type Issue struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// ProfileHandler 处理资料 PDF 请求。
type ProfileHandler struct {
	Photos           PhotoLoader
	Engine           Engine
	Sheet            sheet.Options
	FileNameTemplate string
}

// NewProfileHandler creates the handler with dependencies
func NewProfileHandler(photos PhotoLoader, engine Engine, opts sheet.Options, fileNameTemplate string) *ProfileHandler {
	opts.Metrics = engine
	return &ProfileHandler{
		Photos:           photos,
		Engine:           engine,
		Sheet:            opts,
		FileNameTemplate: fileNameTemplate,
	}
}

// HealthCheck is the GET /health endpoint
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ProfilePDF is the POST /profile-pdf endpoint
func (h *ProfileHandler) ProfilePDF(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Validation error", "issues": issuesFrom(verrs)})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid JSON format: " + err.Error()})
		return
	}

	pdf, err := h.Render(c.Request.Context(), req)
	if err != nil {
		log.Printf("生成资料 PDF 失败 (application %d): %v", req.ApplicationID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Failed to generate profile PDF"})
		return
	}
	c.Header("Content-Disposition", contentDisposition(h.FileName(req)))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Build 加载照片并完成排版。照片加载失败时不中断，按无照片处理。
func (h *ProfileHandler) Build(ctx context.Context, req ProfileRequest) (*layout.Result, error) {
	app := req.Application()
	if h.Photos != nil {
		photo, err := h.Photos.Load(ctx, req.Artist.Picture)
		if err != nil {
			log.Printf("加载照片失败 %q: %v", req.Artist.Picture, err)
		}
		app.Photo = photo
	}
	result, err := sheet.Build(app, h.Sheet)
	if err != nil {
		return nil, fmt.Errorf("布局计算失败: %w", err)
	}
	return result, nil
}

// Render 生成完整的 PDF 字节。
func (h *ProfileHandler) Render(ctx context.Context, req ProfileRequest) ([]byte, error) {
	result, err := h.Build(ctx, req)
	if err != nil {
		return nil, err
	}
	pdf, err := h.Engine.Render(result)
	if err != nil {
		return nil, fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	return pdf, nil
}

// FileName 根据模板生成附件文件名。
func (h *ProfileHandler) FileName(req ProfileRequest) string {
	name := h.FileNameTemplate
	if data, err := binding.Data(req); err == nil {
		name = binding.Interpolate(name, data)
	}
	name = sheet.FileName(strings.ReplaceAll(name, `"`, ""))
	if name == "" {
		return "Castpoint_Profile.pdf"
	}
	return name
}

// contentDisposition 生成附件头：filename 为 ASCII 兜底名，
// 含非 ASCII 字符时追加 RFC 6266 的 filename*。
func contentDisposition(name string) string {
	fallback := strings.Map(func(r rune) rune {
		if r < ' ' || r > '~' {
			return '_'
		}
		return r
	}, name)
	v := mime.FormatMediaType("attachment", map[string]string{"filename": fallback})
	if fallback != name {
		if ext := mime.FormatMediaType("attachment", map[string]string{"filename": name}); ext != "" {
			v += strings.TrimPrefix(ext, "attachment")
		}
	}
	return v
}

// issuesFrom 把校验错误转换为以 JSON 路径标识的字段列表，例如 artist.email。
func issuesFrom(errs validator.ValidationErrors) []Issue {
	issues := make([]Issue, 0, len(errs))
	for _, fe := range errs {
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		issues = append(issues, Issue{Field: field, Rule: fe.Tag()})
	}
	return issues
}

var registerTagName sync.Once

// useJSONFieldNames 让校验错误使用 json 标签中的字段名。
func useJSONFieldNames() {
	registerTagName.Do(func() {
		v, ok := ginbinding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}
