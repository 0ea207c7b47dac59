package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dongjinrnd-jpg/Worklog/internal/cache"
)

// ListManagers 담당자 목록 조회
// GET /api/managers
func (h *Handler) ListManagers(c *gin.Context) {
	managers, err := h.catalog.Managers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"managers": managers})
}

// GetItemData 항목정보 조회 (폼 선택지)
// GET /api/item-data
func (h *Handler) GetItemData(c *gin.Context) {
	data, err := h.catalog.ItemData(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, data)
}

var knownTags = map[string]bool{
	cache.TagDailyReports: true,
	cache.TagProjects:     true,
	cache.TagManagers:     true,
	cache.TagItemData:     true,
}

// Revalidate 캐시 무효화. tag 또는 tags(쉼표 구분)로 지정하고
// 둘 다 없으면 전체 무효화한다.
// POST /api/revalidate?tag=projects 또는 ?tags=projects,managers
func (h *Handler) Revalidate(c *gin.Context) {
	var tags []string
	if t := c.Query("tag"); t != "" {
		tags = append(tags, t)
	}
	for _, t := range strings.Split(c.Query("tags"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	if len(tags) == 0 {
		h.cache.InvalidateAll()
		c.JSON(http.StatusOK, gin.H{"revalidated": "all"})
		return
	}

	for _, t := range tags {
		if !knownTags[t] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "알 수 없는 캐시 태그: " + t})
			return
		}
	}
	h.cache.Invalidate(tags...)
	c.JSON(http.StatusOK, gin.H{"revalidated": tags})
}
