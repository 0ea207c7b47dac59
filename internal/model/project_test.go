package model

import (
	"fmt"
	"reflect"
	"testing"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		code  string
		sheet string
	}{
		{StatusProgress, "진행"},
		{StatusHold, "보류"},
		{StatusCompleted, "완료"},
	}
	for _, c := range cases {
		if got := StatusToSheet(c.code); got != c.sheet {
			t.Fatalf("StatusToSheet(%q) = %q, want %q", c.code, got, c.sheet)
		}
		if got := StatusFromSheet(c.sheet); got != c.code {
			t.Fatalf("StatusFromSheet(%q) = %q, want %q", c.sheet, got, c.code)
		}
	}

	// 알 수 없는 코드는 진행으로 저장
	if got := StatusToSheet("unknown"); got != "진행" {
		t.Fatalf("unknown status stored as %q", got)
	}
}

func TestScheduleParseFormat(t *testing.T) {
	s := ParseSchedule("2024-01-01 ~ 2024-06-30")
	if s.Start != "2024-01-01" || s.End != "2024-06-30" {
		t.Fatalf("parsed schedule = %+v", s)
	}
	if got := FormatSchedule(s); got != "2024-01-01 ~ 2024-06-30" {
		t.Fatalf("formatted schedule = %q", got)
	}

	if got := ParseSchedule(""); !got.IsZero() {
		t.Fatalf("empty schedule should be zero: %+v", got)
	}
	if got := FormatSchedule(Schedule{}); got != "" {
		t.Fatalf("zero schedule formats to %q", got)
	}
}

func TestSplitJoinList(t *testing.T) {
	got := SplitList("홍길동, 김철수 ,이영희")
	want := []string{"홍길동", "김철수", "이영희"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitList = %v, want %v", got, want)
	}
	if JoinList(want) != "홍길동,김철수,이영희" {
		t.Fatalf("JoinList = %q", JoinList(want))
	}
	if SplitList("") != nil {
		t.Fatalf("empty cell should split to nil")
	}
}

func TestValidateListValuesRejectsDelimiter(t *testing.T) {
	if err := ValidateListValues("담당자", []string{"홍길동", "김철수"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateListValues("담당자", []string{"홍길동,김철수"}); err == nil {
		t.Fatalf("expected error for comma in value")
	}
}

func TestProjectRowRoundTrip(t *testing.T) {
	p := Project{
		ID:                "a1b2c3d4-0000-4000-8000-000000000001",
		No:                "12",
		Status:            StatusHold,
		Customer:          "KUBOTA",
		Affiliation:       "유압",
		Model:             "PUMP",
		Item:              "기어펌프",
		PartNo:            "GP-220",
		Managers:          []string{"홍길동", "김철수"},
		CurrentStage:      "설계",
		Progress:          "설계 검토 중",
		Issues:            "납기 지연 우려",
		Notes:             "주간 회의 공유",
		AdditionalPlan:    "시작품 제작",
		DevelopmentStages: []string{"검토", "설계", "개발"},
		Schedule:          Schedule{Start: "2024-01-01", End: "2024-12-31"},
		SellingPrice:      "150000",
		MaterialCost:      "90000",
		MaterialCostRatio: "60%",
		UpdatedAt:         "2024-03-01T10:00:00+09:00",
	}

	row := p.ToRow()
	if len(row) != ProjectColCount {
		t.Fatalf("row length = %d, want %d", len(row), ProjectColCount)
	}

	cells := make([]string, len(row))
	for i, v := range row {
		cells[i] = fmt.Sprint(v)
	}

	got := ProjectFromRow(cells, 0)
	if !reflect.DeepEqual(got, p) {
		t.Fatalf("round trip mismatch:\n got=%+v\nwant=%+v", got, p)
	}
}
