package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dongjinrnd-jpg/Worklog/internal/model"
	"github.com/dongjinrnd-jpg/Worklog/internal/service/report"
)

// ListDailyReports 업무일지 목록 조회
// GET /api/daily-reports?date=YYYY-MM-DD
func (h *Handler) ListDailyReports(c *gin.Context) {
	reports, err := h.reports.List(c.Request.Context(), c.Query("date"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports, "total": len(reports)})
}

type createDailyReportRequest struct {
	Date        string `json:"date" binding:"required"`
	Item        string `json:"item" binding:"required"`
	PartNo      string `json:"partNo"`
	Customer    string `json:"customer" binding:"required"`
	Stage       string `json:"stage" binding:"required"`
	Manager     string `json:"manager" binding:"required"`
	Plan        string `json:"plan"`
	Performance string `json:"performance"`
	Note        string `json:"note"`
}

// CreateDailyReport 업무일지 작성
// POST /api/daily-reports
func (h *Handler) CreateDailyReport(c *gin.Context) {
	var req createDailyReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "필수 항목(날짜, ITEM, 고객사, 단계, 담당자)을 확인해 주세요"})
		return
	}

	created, err := h.reports.Create(c.Request.Context(), model.DailyReport{
		Date:        req.Date,
		Item:        req.Item,
		PartNo:      req.PartNo,
		Customer:    req.Customer,
		Stage:       req.Stage,
		Manager:     req.Manager,
		Plan:        req.Plan,
		Performance: req.Performance,
		Note:        req.Note,
	})
	if err != nil {
		if errors.Is(err, report.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": created})
}

// SearchDailyReports 업무일지 검색 (필터 + 정렬 + 페이지)
// GET /api/daily-reports/search
func (h *Handler) SearchDailyReports(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))

	params := report.SearchParams{
		Query:     c.Query("query"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Items:     c.QueryArray("item"),
		PartNos:   c.QueryArray("partNo"),
		Stages:    c.QueryArray("stage"),
		Managers:  c.QueryArray("manager"),
		SortKey:   c.Query("sortKey"),
		SortOrder: c.Query("sortOrder"),
		Page:      page,
		PageSize:  pageSize,
	}

	result, err := h.reports.Search(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// UpdateDailyReport 업무일지 수정
// PUT /api/daily-reports/:id
func (h *Handler) UpdateDailyReport(c *gin.Context) {
	var req report.UpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "요청 형식이 올바르지 않습니다"})
		return
	}

	if err := h.reports.Update(c.Request.Context(), c.Param("id"), req); err != nil {
		if errors.Is(err, report.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteDailyReport 업무일지 삭제
// DELETE /api/daily-reports/:id
func (h *Handler) DeleteDailyReport(c *gin.Context) {
	if err := h.reports.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, report.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
