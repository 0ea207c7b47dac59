// Package catalog 담당자 목록과 항목정보(폼 선택지) 조회
package catalog

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/dongjinrnd-jpg/Worklog/internal/cache"
	"github.com/dongjinrnd-jpg/Worklog/internal/model"
	"github.com/dongjinrnd-jpg/Worklog/internal/sheets"
)

// Service 참조 데이터 조회 서비스
type Service struct {
	client      sheets.Client
	cache       *cache.TagCache
	managerTTL  time.Duration
	itemDataTTL time.Duration
}

// NewService 참조 데이터 서비스 생성
func NewService(client sheets.Client, c *cache.TagCache, managerTTL, itemDataTTL time.Duration) *Service {
	return &Service{client: client, cache: c, managerTTL: managerTTL, itemDataTTL: itemDataTTL}
}

// Managers 담당자 목록 조회
func (s *Service) Managers(ctx context.Context) ([]model.Manager, error) {
	v, err := s.cache.GetOr(cache.TagManagers, s.managerTTL, func() (interface{}, error) {
		rows, err := s.client.Get(ctx, model.ManagerReadRange)
		if err != nil {
			return nil, fmt.Errorf("담당자 조회 실패: %w", err)
		}
		managers := make([]model.Manager, 0, len(rows))
		for i, row := range rows {
			m := model.ManagerFromRow(row, i)
			if m.Name == "" {
				continue
			}
			managers = append(managers, m)
		}
		return managers, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.Manager), nil
}

// ItemData 항목정보 조회. 열 조회가 실패하거나 비어 있으면
// 해당 열만 기본 목록으로 대체하고 FallbackUsed 로 표시한다.
func (s *Service) ItemData(ctx context.Context) (model.ItemData, error) {
	v, err := s.cache.GetOr(cache.TagItemData, s.itemDataTTL, func() (interface{}, error) {
		data := model.ItemData{}

		stages := s.column(ctx, model.ItemDataStagesRange, model.DefaultDevelopmentStages, &data.FallbackUsed)
		data.DevelopmentStages = model.StagesFromNames(stages)
		data.Affiliations = s.column(ctx, model.ItemDataAffiliationsRange, model.DefaultAffiliations, &data.FallbackUsed)
		data.Models = s.column(ctx, model.ItemDataModelsRange, model.DefaultModels, &data.FallbackUsed)
		data.Customers = s.column(ctx, model.ItemDataCustomersRange, model.DefaultCustomers, &data.FallbackUsed)

		return data, nil
	})
	if err != nil {
		return model.ItemData{}, err
	}
	return v.(model.ItemData), nil
}

// column 항목정보 한 열을 읽는다. 실패/빈 결과는 기본 목록으로 대체한다.
func (s *Service) column(ctx context.Context, rng string, fallback []string, fallbackUsed *bool) []string {
	rows, err := s.client.Get(ctx, rng)
	if err != nil {
		log.WithError(err).WithField("range", rng).Warn("항목정보 조회 실패, 기본 목록 사용")
		*fallbackUsed = true
		return append([]string(nil), fallback...)
	}

	values := model.UniqueColumnValues(rows)
	if len(values) == 0 {
		log.WithField("range", rng).Warn("항목정보가 비어 있어 기본 목록 사용")
		*fallbackUsed = true
		return append([]string(nil), fallback...)
	}
	return values
}
