// Package report 업무일지 서비스
package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/dongjinrnd-jpg/Worklog/internal/cache"
	"github.com/dongjinrnd-jpg/Worklog/internal/model"
	"github.com/dongjinrnd-jpg/Worklog/internal/sheets"
)

var (
	// ErrNotFound 대상 업무일지가 없을 때 돌려주는 에러
	ErrNotFound = errors.New("업무일지를 찾을 수 없습니다")
	// ErrInvalidInput 입력 검증 실패
	ErrInvalidInput = errors.New("입력값이 올바르지 않습니다")
)

// Service 업무일지 조회/작성/수정/삭제
type Service struct {
	client sheets.Client
	cache  *cache.TagCache
	ttl    time.Duration
}

// NewService 업무일지 서비스 생성
func NewService(client sheets.Client, c *cache.TagCache, ttl time.Duration) *Service {
	return &Service{client: client, cache: c, ttl: ttl}
}

func (s *Service) loadAll(ctx context.Context) ([]model.DailyReport, error) {
	v, err := s.cache.GetOr(cache.TagDailyReports, s.ttl, func() (interface{}, error) {
		rows, err := s.client.Get(ctx, model.DailyReportReadRange)
		if err != nil {
			return nil, fmt.Errorf("업무일지 조회 실패: %w", err)
		}
		reports := make([]model.DailyReport, 0, len(rows))
		for i, row := range rows {
			reports = append(reports, model.DailyReportFromRow(row, i))
		}
		return reports, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.DailyReport), nil
}

// List 업무일지 목록 조회. date 가 주어지면 해당 날짜만 돌려준다.
func (s *Service) List(ctx context.Context, date string) ([]model.DailyReport, error) {
	all, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	if date == "" {
		return all, nil
	}

	want := model.NormalizeDate(date)
	out := make([]model.DailyReport, 0)
	for _, r := range all {
		if model.NormalizeDate(r.Date) == want {
			out = append(out, r)
		}
	}
	return out, nil
}

// Create 업무일지 작성. 날짜/ITEM/고객사/단계/담당자는 필수다.
func (s *Service) Create(ctx context.Context, r model.DailyReport) (model.DailyReport, error) {
	if r.Date == "" || r.Item == "" || r.Customer == "" || r.Stage == "" || r.Manager == "" {
		return model.DailyReport{}, fmt.Errorf("%w: 필수 항목(날짜, ITEM, 고객사, 단계, 담당자)이 누락되었습니다", ErrInvalidInput)
	}

	r.ID = uuid.NewString()
	r.Date = model.NormalizeDate(r.Date)

	if err := s.client.Append(ctx, model.DailyReportAppendRange, [][]interface{}{r.ToRow()}); err != nil {
		return model.DailyReport{}, fmt.Errorf("업무일지 저장 실패: %w", err)
	}

	s.cache.Invalidate(cache.TagDailyReports)
	log.WithFields(log.Fields{"id": r.ID, "date": r.Date, "manager": r.Manager}).Info("업무일지 작성")
	return r, nil
}

// UpdateInput 업무일지 수정 항목
type UpdateInput struct {
	Date        string `json:"date"`
	Plan        string `json:"plan"`
	Performance string `json:"performance"`
	Note        string `json:"note"`
}

// resolveRow ID 에 해당하는 행의 0 기준 그리드 행 번호를 찾는다.
// J열 행 키를 우선 비교하고, 키가 없는 기존 행은 위치 기반 ID 로 대조한다.
func (s *Service) resolveRow(ctx context.Context, id string) (int, error) {
	rows, err := s.client.Get(ctx, model.DailyReportReadRange)
	if err != nil {
		return 0, fmt.Errorf("업무일지 조회 실패: %w", err)
	}
	for i, row := range rows {
		if model.DailyReportFromRow(row, i).ID == id {
			return i + 1, nil // 헤더 행 보정
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Update 업무일지 수정. 날짜 셀은 시트가 날짜로 인식하도록 서식을 함께 지정한다.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) error {
	rowIdx, err := s.resolveRow(ctx, id)
	if err != nil {
		return err
	}
	sheetID, err := s.client.SheetID(ctx, model.SheetDailyReports)
	if err != nil {
		return fmt.Errorf("업무일지 시트 조회 실패: %w", err)
	}

	date := model.NormalizeDate(in.Date)
	requests := []*sheetsapi.Request{
		{
			UpdateCells: &sheetsapi.UpdateCellsRequest{
				Range: &sheetsapi.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    int64(rowIdx),
					EndRowIndex:      int64(rowIdx + 1),
					StartColumnIndex: int64(model.ReportColDate),
					EndColumnIndex:   int64(model.ReportColDate + 1),
				},
				Fields: "userEnteredValue,userEnteredFormat.numberFormat",
				Rows: []*sheetsapi.RowData{{
					Values: []*sheetsapi.CellData{{
						UserEnteredValue: &sheetsapi.ExtendedValue{StringValue: &date},
						UserEnteredFormat: &sheetsapi.CellFormat{
							NumberFormat: &sheetsapi.NumberFormat{Type: "DATE", Pattern: "yyyy-mm-dd"},
						},
					}},
				}},
			},
		},
		{
			UpdateCells: &sheetsapi.UpdateCellsRequest{
				Range: &sheetsapi.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    int64(rowIdx),
					EndRowIndex:      int64(rowIdx + 1),
					StartColumnIndex: int64(model.ReportColPlan),
					EndColumnIndex:   int64(model.ReportColNote + 1),
				},
				Fields: "userEnteredValue",
				Rows: []*sheetsapi.RowData{{
					Values: []*sheetsapi.CellData{
						{UserEnteredValue: &sheetsapi.ExtendedValue{StringValue: &in.Plan}},
						{UserEnteredValue: &sheetsapi.ExtendedValue{StringValue: &in.Performance}},
						{UserEnteredValue: &sheetsapi.ExtendedValue{StringValue: &in.Note}},
					},
				}},
			},
		},
	}

	if err := s.client.BatchUpdate(ctx, requests); err != nil {
		return fmt.Errorf("업무일지 수정 실패: %w", err)
	}

	s.cache.Invalidate(cache.TagDailyReports)
	log.WithField("id", id).Info("업무일지 수정")
	return nil
}

// Delete 업무일지 삭제. 행 내용을 비운 뒤 행 자체를 제거한다.
// 행 제거가 실패해도 내용은 이미 비워졌으므로 실패로 보지 않는다.
func (s *Service) Delete(ctx context.Context, id string) error {
	rowIdx, err := s.resolveRow(ctx, id)
	if err != nil {
		return err
	}

	blank := make([]interface{}, model.DailyReportColCount)
	for i := range blank {
		blank[i] = ""
	}
	clearRange := fmt.Sprintf("%s!A%d:J%d", model.SheetDailyReports, rowIdx+1, rowIdx+1)
	if err := s.client.Update(ctx, clearRange, [][]interface{}{blank}); err != nil {
		return fmt.Errorf("업무일지 삭제 실패: %w", err)
	}

	if sheetID, err := s.client.SheetID(ctx, model.SheetDailyReports); err == nil {
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
			log.WithError(err).Warn("업무일지 빈 행 제거 실패")
		}
	}

	s.cache.Invalidate(cache.TagDailyReports)
	log.WithField("id", id).Info("업무일지 삭제")
	return nil
}
