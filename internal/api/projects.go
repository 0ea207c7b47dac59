package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dongjinrnd-jpg/Worklog/internal/service/project"
)

// ListProjects 프로젝트 목록 조회 (조건 없이 호출하면 전체 목록)
// GET /api/projects
func (h *Handler) ListProjects(c *gin.Context) {
	params := project.FilterParams{
		Item:          c.Query("item"),
		PartNo:        c.Query("partNo"),
		Customer:      c.Query("customer"),
		Model:         c.Query("model"),
		Manager:       c.Query("manager"),
		Status:        c.Query("status"),
		Affiliation:   c.Query("affiliation"),
		CurrentStage:  c.Query("currentStage"),
		ScheduleStart: c.Query("scheduleStart"),
		ScheduleEnd:   c.Query("scheduleEnd"),
	}

	projects, err := h.projects.Filter(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects, "total": len(projects)})
}

// GetProject 프로젝트 단건 조회
// GET /api/projects/:id
func (h *Handler) GetProject(c *gin.Context) {
	p, err := h.projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": p})
}

// CreateProject 프로젝트 등록
// POST /api/projects
func (h *Handler) CreateProject(c *gin.Context) {
	var req project.CreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "요청 형식이 올바르지 않습니다"})
		return
	}
	if req.Item == "" || req.Customer == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "필수 항목(ITEM, 고객사)이 누락되었습니다"})
		return
	}

	created, err := h.projects.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, project.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": created})
}

// UpdateProject 프로젝트 수정
// PUT /api/projects/:id
func (h *Handler) UpdateProject(c *gin.Context) {
	var req project.UpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "요청 형식이 올바르지 않습니다"})
		return
	}

	updated, err := h.projects.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, project.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": updated})
}

// DeleteProject 프로젝트 삭제
// DELETE /api/projects/:id
func (h *Handler) DeleteProject(c *gin.Context) {
	if err := h.projects.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, project.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
