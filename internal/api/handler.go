// Package api 업무일지/프로젝트 REST API
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/dongjinrnd-jpg/Worklog/internal/cache"
	"github.com/dongjinrnd-jpg/Worklog/internal/service/catalog"
	"github.com/dongjinrnd-jpg/Worklog/internal/service/project"
	"github.com/dongjinrnd-jpg/Worklog/internal/service/report"
)

// Handler API 처리기
type Handler struct {
	reports   *report.Service
	projects  *project.Service
	catalog   *catalog.Service
	cache     *cache.TagCache
	downloads *exportDownloadStore
}

// NewHandler API 처리기 생성
func NewHandler(reports *report.Service, projects *project.Service, cat *catalog.Service, c *cache.TagCache) *Handler {
	return &Handler{
		reports:   reports,
		projects:  projects,
		catalog:   cat,
		cache:     c,
		downloads: newExportDownloadStore(),
	}
}

// RegisterRoutes API 라우트 등록
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 시스템 상태
	router.GET("/status", h.GetStatus)

	// 업무일지
	router.GET("/daily-reports", h.ListDailyReports)
	router.POST("/daily-reports", h.CreateDailyReport)
	router.GET("/daily-reports/search", h.SearchDailyReports)
	router.PUT("/daily-reports/:id", h.UpdateDailyReport)
	router.DELETE("/daily-reports/:id", h.DeleteDailyReport)

	// 프로젝트
	router.GET("/projects", h.ListProjects)
	router.POST("/projects", h.CreateProject)
	router.GET("/projects/:id", h.GetProject)
	router.PUT("/projects/:id", h.UpdateProject)
	router.DELETE("/projects/:id", h.DeleteProject)

	// 참조 데이터
	router.GET("/managers", h.ListManagers)
	router.GET("/item-data", h.GetItemData)

	// 캐시 무효화
	router.POST("/revalidate", h.Revalidate)

	// 내보내기
	router.POST("/export/daily-reports", h.ExportDailyReports)
	router.GET("/export/download/:token", h.DownloadExport)
}
