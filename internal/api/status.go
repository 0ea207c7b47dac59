package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse 시스템 상태 응답
type StatusResponse struct {
	Initialized  bool `json:"initialized"`  // 데이터 존재 여부
	ReportCount  int  `json:"reportCount"`  // 업무일지 건수
	ProjectCount int  `json:"projectCount"` // 프로젝트 건수
	ManagerCount int  `json:"managerCount"` // 담당자 수
}

// GetStatus 시스템 상태 조회
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	ctx := c.Request.Context()

	reports, err := h.reports.List(ctx, "")
	if err != nil {
		c.JSON(http.StatusOK, StatusResponse{Initialized: false})
		return
	}

	projects, err := h.projects.List(ctx)
	if err != nil {
		projects = nil
	}
	managers, err := h.catalog.Managers(ctx)
	if err != nil {
		managers = nil
	}

	c.JSON(http.StatusOK, StatusResponse{
		Initialized:  len(reports)+len(projects) > 0,
		ReportCount:  len(reports),
		ProjectCount: len(projects),
		ManagerCount: len(managers),
	})
}
