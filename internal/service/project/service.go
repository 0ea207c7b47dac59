// Package project 프로젝트 관리 서비스
package project

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/dongjinrnd-jpg/Worklog/internal/cache"
	"github.com/dongjinrnd-jpg/Worklog/internal/model"
	"github.com/dongjinrnd-jpg/Worklog/internal/sheets"
)

const historyEditor = "시스템"

var (
	// ErrNotFound 대상 프로젝트가 없을 때 돌려주는 에러
	ErrNotFound = errors.New("프로젝트를 찾을 수 없습니다")
	// ErrInvalidInput 입력 검증 실패
	ErrInvalidInput = errors.New("입력값이 올바르지 않습니다")
)

// Service 프로젝트 조회/등록/수정/삭제와 변경 이력 기록
type Service struct {
	client sheets.Client
	cache  *cache.TagCache
	ttl    time.Duration
	now    func() time.Time
}

// NewService 프로젝트 서비스 생성
func NewService(client sheets.Client, c *cache.TagCache, ttl time.Duration) *Service {
	return &Service{client: client, cache: c, ttl: ttl, now: time.Now}
}

func (s *Service) loadAll(ctx context.Context) ([]model.Project, error) {
	v, err := s.cache.GetOr(cache.TagProjects, s.ttl, func() (interface{}, error) {
		rows, err := s.client.Get(ctx, model.ProjectReadRange)
		if err != nil {
			return nil, fmt.Errorf("프로젝트 조회 실패: %w", err)
		}
		projects := make([]model.Project, 0, len(rows))
		for i, row := range rows {
			projects = append(projects, model.ProjectFromRow(row, i))
		}
		return projects, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.Project), nil
}

// List 프로젝트 전체 목록
func (s *Service) List(ctx context.Context) ([]model.Project, error) {
	return s.loadAll(ctx)
}

// Get ID 로 프로젝트 단건 조회
func (s *Service) Get(ctx context.Context, id string) (model.Project, error) {
	all, err := s.loadAll(ctx)
	if err != nil {
		return model.Project{}, err
	}
	for _, p := range all {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Project{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// CreateInput 프로젝트 등록 항목
type CreateInput struct {
	Status            string         `json:"status"`
	Customer          string         `json:"customer"`
	Affiliation       string         `json:"affiliation"`
	Model             string         `json:"model"`
	Item              string         `json:"item"`
	PartNo            string         `json:"partNo"`
	Managers          []string       `json:"managers"`
	Progress          string         `json:"progress"`
	Issues            string         `json:"issues"`
	Notes             string         `json:"notes"`
	AdditionalPlan    string         `json:"additionalPlan"`
	DevelopmentStages []string       `json:"developmentStages"`
	Schedule          model.Schedule `json:"schedule"`
	SellingPrice      string         `json:"sellingPrice"`
	MaterialCost      string         `json:"materialCost"`
	MaterialCostRatio string         `json:"materialCostRatio"`
}

// Create 프로젝트 등록. NO 는 기존 최대값 +1 이고
// 현재 단계는 개발업무단계의 첫 항목으로 시작한다.
func (s *Service) Create(ctx context.Context, in CreateInput) (model.Project, error) {
	if in.Item == "" || in.Customer == "" {
		return model.Project{}, fmt.Errorf("%w: 필수 항목(ITEM, 고객사)이 누락되었습니다", ErrInvalidInput)
	}
	if err := model.ValidateListValues("담당자", in.Managers); err != nil {
		return model.Project{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	if err := model.ValidateListValues("개발업무단계", in.DevelopmentStages); err != nil {
		return model.Project{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	all, err := s.loadAll(ctx)
	if err != nil {
		return model.Project{}, err
	}
	maxNo := 0
	for _, p := range all {
		if n, err := strconv.Atoi(p.No); err == nil && n > maxNo {
			maxNo = n
		}
	}

	currentStage := ""
	if len(in.DevelopmentStages) > 0 {
		currentStage = in.DevelopmentStages[0]
	}

	p := model.Project{
		ID:                uuid.NewString(),
		No:                strconv.Itoa(maxNo + 1),
		Status:            in.Status,
		Customer:          in.Customer,
		Affiliation:       in.Affiliation,
		Model:             in.Model,
		Item:              in.Item,
		PartNo:            in.PartNo,
		Managers:          in.Managers,
		CurrentStage:      currentStage,
		Progress:          in.Progress,
		Issues:            in.Issues,
		Notes:             in.Notes,
		AdditionalPlan:    in.AdditionalPlan,
		DevelopmentStages: in.DevelopmentStages,
		Schedule:          in.Schedule,
		SellingPrice:      in.SellingPrice,
		MaterialCost:      in.MaterialCost,
		MaterialCostRatio: in.MaterialCostRatio,
		UpdatedAt:         s.now().Format(time.RFC3339),
	}
	if p.Status == "" {
		p.Status = model.StatusProgress
	}

	if err := s.client.Append(ctx, model.ProjectAppendRange, [][]interface{}{p.ToRow()}); err != nil {
		return model.Project{}, fmt.Errorf("프로젝트 저장 실패: %w", err)
	}

	// 새 프로젝트의 소속/모델/고객사가 폼 선택지에 바로 반영되도록 항목정보도 무효화
	s.cache.Invalidate(cache.TagProjects, cache.TagItemData)
	log.WithFields(log.Fields{"id": p.ID, "no": p.No, "item": p.Item}).Info("프로젝트 등록")
	return p, nil
}

// UpdateInput 프로젝트 수정 항목
// IssueResolved 가 참이면 애로사항을 비우고 개선 내용을 이력에 남긴다.
type UpdateInput struct {
	Status                 string         `json:"status"`
	Customer               string         `json:"customer"`
	Affiliation            string         `json:"affiliation"`
	Model                  string         `json:"model"`
	Item                   string         `json:"item"`
	PartNo                 string         `json:"partNo"`
	Managers               []string       `json:"managers"`
	CurrentStage           string         `json:"currentStage"`
	Progress               string         `json:"progress"`
	Issues                 string         `json:"issues"`
	Notes                  string         `json:"notes"`
	AdditionalPlan         string         `json:"additionalPlan"`
	DevelopmentStages      []string       `json:"developmentStages"`
	Schedule               model.Schedule `json:"schedule"`
	SellingPrice           string         `json:"sellingPrice"`
	MaterialCost           string         `json:"materialCost"`
	MaterialCostRatio      string         `json:"materialCostRatio"`
	IssueResolved          bool           `json:"issueResolved"`
	IssueResolutionDetails string         `json:"issueResolutionDetails"`
}

func (s *Service) resolveRow(ctx context.Context, id string) (int, model.Project, error) {
	rows, err := s.client.Get(ctx, model.ProjectReadRange)
	if err != nil {
		return 0, model.Project{}, fmt.Errorf("프로젝트 조회 실패: %w", err)
	}
	for i, row := range rows {
		p := model.ProjectFromRow(row, i)
		if p.ID == id {
			return i + 1, p, nil // 헤더 행 보정
		}
	}
	return 0, model.Project{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Update 프로젝트 수정. NO 와 행 키는 보존하고 수정일시를 새로 기록한다.
// 추적 항목이 실제로 바뀌었을 때만 변경 이력을 남긴다.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (model.Project, error) {
	if err := model.ValidateListValues("담당자", in.Managers); err != nil {
		return model.Project{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	if err := model.ValidateListValues("개발업무단계", in.DevelopmentStages); err != nil {
		return model.Project{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	rowIdx, current, err := s.resolveRow(ctx, id)
	if err != nil {
		return model.Project{}, err
	}

	issues := in.Issues
	if in.IssueResolved {
		issues = ""
	}

	updated := model.Project{
		ID:                current.ID,
		No:                current.No,
		Status:            in.Status,
		Customer:          in.Customer,
		Affiliation:       in.Affiliation,
		Model:             in.Model,
		Item:              in.Item,
		PartNo:            in.PartNo,
		Managers:          in.Managers,
		CurrentStage:      in.CurrentStage,
		Progress:          in.Progress,
		Issues:            issues,
		Notes:             in.Notes,
		AdditionalPlan:    in.AdditionalPlan,
		DevelopmentStages: in.DevelopmentStages,
		Schedule:          in.Schedule,
		SellingPrice:      in.SellingPrice,
		MaterialCost:      in.MaterialCost,
		MaterialCostRatio: in.MaterialCostRatio,
		UpdatedAt:         s.now().Format(time.RFC3339),
	}
	if updated.Status == "" {
		updated.Status = current.Status
	}

	writeRange := fmt.Sprintf("%s!A%d:T%d", model.SheetProjects, rowIdx+1, rowIdx+1)
	if err := s.client.Update(ctx, writeRange, [][]interface{}{updated.ToRow()}); err != nil {
		return model.Project{}, fmt.Errorf("프로젝트 수정 실패: %w", err)
	}

	if changed(current, updated) || in.IssueResolved || in.IssueResolutionDetails != "" {
		s.appendHistory(ctx, current, updated, in)
	}

	s.cache.Invalidate(cache.TagProjects)
	log.WithFields(log.Fields{"id": id, "no": updated.No}).Info("프로젝트 수정")
	return updated, nil
}

// changed 이력 추적 항목(진행현황/애로사항/특이사항/추가계획)의 변경 여부
func changed(prev, next model.Project) bool {
	return prev.Progress != next.Progress ||
		prev.Issues != next.Issues ||
		prev.Notes != next.Notes ||
		prev.AdditionalPlan != next.AdditionalPlan
}

// appendHistory 변경 이력 기록. 애로사항이 개선 처리되면 변경 전 값을 남긴다.
// 이력 기록 실패는 본 수정 결과에 영향을 주지 않는다.
func (s *Service) appendHistory(ctx context.Context, prev, next model.Project, in UpdateInput) {
	now := s.now()
	h := model.ProjectHistory{
		Date:                   model.FormatDate(now),
		Item:                   next.Item,
		PartNo:                 next.PartNo,
		Customer:               next.Customer,
		Managers:               model.JoinList(next.Managers),
		Progress:               next.Progress,
		AdditionalPlan:         next.AdditionalPlan,
		Notes:                  next.Notes,
		Issues:                 next.Issues,
		IssueResolved:          in.IssueResolved,
		IssueResolutionDetails: in.IssueResolutionDetails,
		Editor:                 historyEditor,
		ChangedAt:              now.Format("15:04:05"),
	}
	if in.IssueResolved {
		h.Issues = prev.Issues
	}

	if err := s.client.Append(ctx, model.ProjectHistoryAppendRange, [][]interface{}{h.ToRow()}); err != nil {
		log.WithError(err).WithField("id", next.ID).Warn("프로젝트 이력 기록 실패")
	}
}

// Delete 프로젝트 삭제. 행 내용을 비운 뒤 행 자체를 제거한다.
func (s *Service) Delete(ctx context.Context, id string) error {
	rowIdx, _, err := s.resolveRow(ctx, id)
	if err != nil {
		return err
	}

	blank := make([]interface{}, model.ProjectColCount)
	for i := range blank {
		blank[i] = ""
	}
	clearRange := fmt.Sprintf("%s!A%d:T%d", model.SheetProjects, rowIdx+1, rowIdx+1)
	if err := s.client.Update(ctx, clearRange, [][]interface{}{blank}); err != nil {
		return fmt.Errorf("프로젝트 삭제 실패: %w", err)
	}

	if sheetID, err := s.client.SheetID(ctx, model.SheetProjects); err == nil {
		req := []*sheetsapi.Request{{
			DeleteDimension: &sheetsapi.DeleteDimensionRequest{
				Range: &sheetsapi.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(rowIdx),
					EndIndex:   int64(rowIdx + 1),
				},
			},
		}}
		if err := s.client.BatchUpdate(ctx, req); err != nil {
			log.WithError(err).Warn("프로젝트 빈 행 제거 실패")
		}
	}

	s.cache.Invalidate(cache.TagProjects)
	log.WithField("id", id).Info("프로젝트 삭제")
	return nil
}
