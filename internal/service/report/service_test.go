package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dongjinrnd-jpg/Worklog/internal/cache"
	"github.com/dongjinrnd-jpg/Worklog/internal/model"
	"github.com/dongjinrnd-jpg/Worklog/internal/sheets"
)

var reportHeader = []string{"날짜", "ITEM", "PART NO", "고객사", "단계", "담당자", "계획", "실적", "비고", "KEY"}

func newTestService(fake *sheets.Fake) *Service {
	return NewService(fake, cache.New(), time.Minute)
}

func seedReports(fake *sheets.Fake, rows ...[]string) {
	grid := [][]string{reportHeader}
	grid = append(grid, rows...)
	fake.Seed(model.SheetDailyReports, grid)
}

func TestCreateWritesFullRow(t *testing.T) {
	fake := sheets.NewFake()
	seedReports(fake)
	svc := newTestService(fake)

	created, err := svc.Create(context.Background(), model.DailyReport{
		Date:        "2024.01.15",
		Item:        "PUMP",
		PartNo:      "P-1001",
		Customer:    "KUBOTA",
		Stage:       "설계",
		Manager:     "홍길동",
		Plan:        "도면 검토",
		Performance: "도면 검토 완료",
		Note:        "특이사항 없음",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("created report has no id")
	}
	if created.Date != "2024-01-15" {
		t.Fatalf("date not normalized: %q", created.Date)
	}

	rows := fake.Rows(model.SheetDailyReports)
	if len(rows) != 2 {
		t.Fatalf("sheet has %d rows, want 2", len(rows))
	}
	got := rows[1]
	if len(got) != model.DailyReportColCount {
		t.Fatalf("appended row has %d cells, want %d", len(got), model.DailyReportColCount)
	}
	// 고객사 열이 어긋나지 않고 제자리에 쓰였는지
	if got[model.ReportColCustomer] != "KUBOTA" {
		t.Fatalf("customer cell = %q", got[model.ReportColCustomer])
	}
	if got[model.ReportColKey] != created.ID {
		t.Fatalf("key cell = %q, want %q", got[model.ReportColKey], created.ID)
	}

	// 작성 직후 목록 조회에 반영 (캐시 무효화)
	listed, err := svc.List(context.Background(), "2024-01-15")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 || listed[0] != created {
		t.Fatalf("listed = %+v, want created report", listed)
	}
}

func TestCreateRequiresMandatoryFields(t *testing.T) {
	fake := sheets.NewFake()
	seedReports(fake)
	svc := newTestService(fake)

	// 날짜 누락
	_, err := svc.Create(context.Background(), model.DailyReport{Item: "PUMP", Customer: "KUBOTA", Stage: "설계", Manager: "홍길동"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	// 고객사 누락
	_, err = svc.Create(context.Background(), model.DailyReport{Date: "2024-01-15", Item: "PUMP", Stage: "설계", Manager: "홍길동"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing customer, got %v", err)
	}

	if rows := fake.Rows(model.SheetDailyReports); len(rows) != 1 {
		t.Fatalf("invalid input should not append rows, got %d", len(rows))
	}
}

func TestListFiltersByDate(t *testing.T) {
	fake := sheets.NewFake()
	seedReports(fake,
		[]string{"2024-01-15", "PUMP", "", "", "설계", "홍길동", "", "", "", "k1"},
		[]string{"2024.01.15", "ETB", "", "", "개발", "김철수", "", "", "", "k2"},
		[]string{"2024-02-01", "PUMP", "", "", "설계", "홍길동", "", "", "", "k3"},
	)
	svc := newTestService(fake)

	listed, err := svc.List(context.Background(), "2024-01-15")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("listed %d reports, want 2", len(listed))
	}

	all, err := svc.List(context.Background(), "")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("listed %d reports, want 3", len(all))
	}
}

func TestUpdateRewritesEditableCells(t *testing.T) {
	fake := sheets.NewFake()
	seedReports(fake,
		[]string{"2024-01-15", "PUMP", "P-1001", "KUBOTA", "설계", "홍길동", "계획", "실적", "비고", "k1"},
	)
	svc := newTestService(fake)

	err := svc.Update(context.Background(), "k1", UpdateInput{
		Date:        "2024.01.20",
		Plan:        "수정 계획",
		Performance: "수정 실적",
		Note:        "수정 비고",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	row := fake.Rows(model.SheetDailyReports)[1]
	if row[model.ReportColDate] != "2024-01-20" {
		t.Fatalf("date cell = %q", row[model.ReportColDate])
	}
	if row[model.ReportColPlan] != "수정 계획" || row[model.ReportColNote] != "수정 비고" {
		t.Fatalf("editable cells not updated: %v", row)
	}
	// 수정 대상이 아닌 열은 보존
	if row[model.ReportColItem] != "PUMP" || row[model.ReportColKey] != "k1" {
		t.Fatalf("untouched cells changed: %v", row)
	}
}

func TestUpdateUnknownIDReturnsNotFound(t *testing.T) {
	fake := sheets.NewFake()
	seedReports(fake)
	svc := newTestService(fake)

	err := svc.Update(context.Background(), "missing", UpdateInput{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRemovesRow(t *testing.T) {
	fake := sheets.NewFake()
	seedReports(fake,
		[]string{"2024-01-15", "PUMP", "", "", "설계", "홍길동", "", "", "", "k1"},
		[]string{"2024-01-16", "ETB", "", "", "개발", "김철수", "", "", "", "k2"},
	)
	svc := newTestService(fake)

	if err := svc.Delete(context.Background(), "k1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	listed, err := svc.List(context.Background(), "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != "k2" {
		t.Fatalf("remaining reports = %+v", listed)
	}
}

func TestPositionalIDResolvesLegacyRow(t *testing.T) {
	// 행 키가 없는 기존 데이터는 행 위치가 ID 가 된다
	fake := sheets.NewFake()
	seedReports(fake,
		[]string{"2024-01-15", "PUMP", "", "", "설계", "홍길동", "", "", ""},
		[]string{"2024-01-16", "ETB", "", "", "개발", "김철수", "", "", ""},
	)
	svc := newTestService(fake)

	if err := svc.Update(context.Background(), "1", UpdateInput{Date: "2024-01-17", Plan: "p"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	row := fake.Rows(model.SheetDailyReports)[2]
	if row[model.ReportColDate] != "2024-01-17" {
		t.Fatalf("legacy row not updated: %v", row)
	}
}
