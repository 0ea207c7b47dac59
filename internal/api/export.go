package api

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dongjinrnd-jpg/Worklog/internal/exporter"
	"github.com/dongjinrnd-jpg/Worklog/internal/service/report"
)

const exportDownloadTTL = 10 * time.Minute

type exportRequest struct {
	Format    string   `json:"format"`
	Query     string   `json:"query"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Items     []string `json:"items"`
	PartNos   []string `json:"partNos"`
	Stages    []string `json:"stages"`
	Managers  []string `json:"managers"`
	SortKey   string   `json:"sortKey"`
	SortOrder string   `json:"sortOrder"`
}

// ExportDailyReports 업무일지 내보내기 파일 생성
// 검색 조건과 동일한 필터를 거친 전체 결과를 파일로 만들고
// 다운로드 토큰을 돌려준다.
// POST /api/export/daily-reports
func (h *Handler) ExportDailyReports(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "요청 형식이 올바르지 않습니다"})
		return
	}

	reports, err := h.reports.SearchAll(c.Request.Context(), report.SearchParams{
		Query:     req.Query,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Items:     req.Items,
		PartNos:   req.PartNos,
		Stages:    req.Stages,
		Managers:  req.Managers,
		SortKey:   req.SortKey,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	data, contentType, err := exporter.Build(req.Format, reports)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ext := req.Format
	if ext == "" {
		ext = exporter.FormatCSV
	}
	filename := fmt.Sprintf("업무일지_검색결과_%s.%s", time.Now().Format("20060102"), ext)
	token := h.downloads.put(data, filename, contentType, exportDownloadTTL)

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"filename": filename,
		"count":    len(reports),
	})
}

// DownloadExport 내보내기 파일 다운로드. 토큰은 1회만 유효하다.
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	item, ok := h.downloads.take(c.Param("token"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "다운로드가 만료되었거나 존재하지 않습니다"})
		return
	}

	disposition := fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(item.filename))
	c.Header("Content-Disposition", disposition)
	c.Data(http.StatusOK, item.contentType, item.data)
}
