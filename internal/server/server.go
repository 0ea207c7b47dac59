// Package server HTTP 서버 구성
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"github.com/dongjinrnd-jpg/Worklog/internal/api"
	"github.com/dongjinrnd-jpg/Worklog/internal/cache"
	"github.com/dongjinrnd-jpg/Worklog/internal/config"
	"github.com/dongjinrnd-jpg/Worklog/internal/service/catalog"
	"github.com/dongjinrnd-jpg/Worklog/internal/service/project"
	"github.com/dongjinrnd-jpg/Worklog/internal/service/report"
	"github.com/dongjinrnd-jpg/Worklog/internal/sheets"
)

// Server HTTP 서버
type Server struct {
	router *gin.Engine
	cron   *cron.Cron
	api    *api.Handler
}

// NewServer 서버 생성. 스프레드시트 클라이언트와 서비스, 캐시 정리 작업을 구성한다.
func NewServer(cfg *config.AppConfig) (*Server, error) {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	client, err := sheets.NewGoogleClient(context.Background(), cfg.Google)
	if err != nil {
		return nil, fmt.Errorf("스프레드시트 클라이언트 생성 실패: %w", err)
	}

	tagCache := cache.New()
	reportTTL := time.Duration(cfg.Cache.DailyReportsTTLOrDefault()) * time.Second
	projectTTL := time.Duration(cfg.Cache.ProjectsTTLOrDefault()) * time.Second
	managerTTL := time.Duration(cfg.Cache.ManagersTTLOrDefault()) * time.Second
	itemDataTTL := time.Duration(cfg.Cache.ItemDataTTLOrDefault()) * time.Second

	reports := report.NewService(client, tagCache, reportTTL)
	projects := project.NewService(client, tagCache, projectTTL)
	catalogSvc := catalog.NewService(client, tagCache, managerTTL, itemDataTTL)

	handler := api.NewHandler(reports, projects, catalogSvc, tagCache)

	s := &Server{
		router: gin.Default(),
		cron:   cron.New(),
		api:    handler,
	}
	s.setupRoutes()
	s.setupJobs(tagCache)

	return s, nil
}

// setupRoutes 라우트 설정
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}
}

// setupJobs 만료 캐시 정리 작업 등록 (1분 주기)
func (s *Server) setupJobs(tagCache *cache.TagCache) {
	_, err := s.cron.AddFunc("@every 1m", func() {
		if removed := tagCache.Sweep(); removed > 0 {
			log.WithField("removed", removed).Debug("만료 캐시 정리")
		}
	})
	if err != nil {
		log.WithError(err).Warn("캐시 정리 작업 등록 실패")
	}
}

// Run 서버 시작
func (s *Server) Run(addr string) error {
	s.cron.Start()
	defer s.cron.Stop()
	return s.router.Run(addr)
}
