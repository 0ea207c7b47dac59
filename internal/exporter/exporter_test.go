package exporter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/dongjinrnd-jpg/Worklog/internal/model"
)

var sampleReports = []model.DailyReport{
	{Date: "2024-01-15", Item: "PUMP", PartNo: "P-1", Customer: "KUBOTA", Stage: "설계", Manager: "홍길동", Plan: "도면 검토", Performance: "완료", Note: "비고, 쉼표 포함"},
	{Date: "2024-01-16", Item: "ETB", Stage: "개발", Manager: "김철수"},
}

func TestBuildCSV(t *testing.T) {
	data, err := BuildCSV(sampleReports)
	if err != nil {
		t.Fatalf("build csv: %v", err)
	}

	// 엑셀 호환을 위한 UTF-8 BOM
	if !bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatalf("csv missing utf-8 bom")
	}

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})))
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("csv has %d records, want 3", len(records))
	}
	if records[0][0] != "날짜" || records[0][8] != "비고" {
		t.Fatalf("header = %v", records[0])
	}
	// 쉼표가 든 셀도 그대로 복원
	if records[1][8] != "비고, 쉼표 포함" {
		t.Fatalf("note cell = %q", records[1][8])
	}
	if records[2][1] != "ETB" || records[2][3] != "" {
		t.Fatalf("second row = %v", records[2])
	}
}

func TestBuildXLSX(t *testing.T) {
	data, err := BuildXLSX(sampleReports)
	if err != nil {
		t.Fatalf("build xlsx: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("업무일지")
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("xlsx has %d rows, want 3", len(rows))
	}
	if rows[0][0] != "날짜" {
		t.Fatalf("header = %v", rows[0])
	}
	if rows[1][1] != "PUMP" || rows[1][5] != "홍길동" {
		t.Fatalf("first data row = %v", rows[1])
	}
}

func TestBuildUnknownFormat(t *testing.T) {
	if _, _, err := Build("pdf", sampleReports); err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if _, contentType, err := Build("", sampleReports); err != nil || !strings.HasPrefix(contentType, "text/csv") {
		t.Fatalf("default format should be csv: %v %q", err, contentType)
	}
}
