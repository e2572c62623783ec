package server

import (
	ginbinding "github.com/gin-gonic/gin/binding"

	"github.com/ByLCY/castpoint/sheet"
)

// ProfileRequest 是生成资料 PDF 的请求体。
type ProfileRequest struct {
	ApplicationID int64         `json:"application_id"`
	Job           JobInfo       `json:"job"`
	Artist        ArtistProfile `json:"artist"`
	CoverMessage  string        `json:"cover_message" binding:"max=2000"`
	PromoURL      string        `json:"promo_url"`
}

type JobInfo struct {
	Title       string `json:"title" binding:"required"`
	CompanyName string `json:"company_name"`
}

// ArtistProfile 中的联系方式只用于校验，不会出现在 PDF 上。
type ArtistProfile struct {
	FullName    string `json:"full_name" binding:"required,min=2"`
	Email       string `json:"email" binding:"required,email"`
	DateOfBirth string `json:"date_of_birth" binding:"required"`

	// Optional Fields
	Country    string `json:"country"`
	Height     string `json:"height"`
	Weight     string `json:"weight"`
	Experience string `json:"experience"`
	Biography  string `json:"biography"`
	Picture    string `json:"picture"` // URL 或 public 目录下的路径
	Phone      string `json:"phone"`
	Instagram  string `json:"instagram"`
}

// Application 转换为排版所需的数据，照片由调用方另行加载。
func (r ProfileRequest) Application() sheet.Application {
	a := r.Artist
	return sheet.Application{
		ID:          r.ApplicationID,
		JobTitle:    r.Job.Title,
		CompanyName: r.Job.CompanyName,
		Artist: sheet.Artist{
			FullName:    a.FullName,
			Country:     a.Country,
			DateOfBirth: a.DateOfBirth,
			Height:      a.Height,
			Weight:      a.Weight,
			Experience:  a.Experience,
			Biography:   a.Biography,
		},
		CoverMessage: r.CoverMessage,
	}
}

// ParseRequest 解码并校验 JSON 请求，命令行与 HTTP 接口使用同一套规则。
func ParseRequest(data []byte) (ProfileRequest, error) {
	useJSONFieldNames()
	var req ProfileRequest
	if err := ginbinding.JSON.BindBody(data, &req); err != nil {
		return ProfileRequest{}, err
	}
	return req, nil
}
