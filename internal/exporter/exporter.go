// Package exporter 업무일지 내보내기 (CSV / XLSX)
package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dongjinrnd-jpg/Worklog/internal/model"
)

// 내보내기 형식
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

var exportHeaders = []string{"날짜", "ITEM", "PART NO", "고객사", "단계", "담당자", "계획", "실적", "비고"}

// utf8BOM 엑셀이 한글 CSV 를 UTF-8 로 인식하게 하는 바이트 순서 표식
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func reportRow(r model.DailyReport) []string {
	return []string{r.Date, r.Item, r.PartNo, r.Customer, r.Stage, r.Manager, r.Plan, r.Performance, r.Note}
}

// BuildCSV 업무일지 목록을 CSV 바이트로 변환
func BuildCSV(reports []model.DailyReport) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeaders); err != nil {
		return nil, fmt.Errorf("CSV 헤더 작성 실패: %w", err)
	}
	for _, r := range reports {
		if err := w.Write(reportRow(r)); err != nil {
			return nil, fmt.Errorf("CSV 행 작성 실패: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("CSV 작성 실패: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildXLSX 업무일지 목록을 XLSX 바이트로 변환
func BuildXLSX(reports []model.DailyReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "업무일지"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("XLSX 스타일 생성 실패: %w", err)
	}

	for i, h := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("XLSX 셀 주소 계산 실패: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("XLSX 헤더 작성 실패: %w", err)
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(exportHeaders))
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("XLSX 헤더 스타일 적용 실패: %w", err)
	}

	for rowIdx, r := range reports {
		for colIdx, v := range reportRow(r) {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("XLSX 셀 주소 계산 실패: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("XLSX 행 작성 실패: %w", err)
			}
		}
	}

	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "B", "F", 16)
	f.SetColWidth(sheet, "G", "I", 36)
	if err := f.AutoFilter(sheet, fmt.Sprintf("A1:%s1", lastCol), nil); err != nil {
		return nil, fmt.Errorf("XLSX 필터 설정 실패: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("XLSX 저장 실패: %w", err)
	}
	return buf.Bytes(), nil
}

// Build 형식에 맞는 내보내기 바이트와 MIME 타입을 돌려준다.
func Build(format string, reports []model.DailyReport) ([]byte, string, error) {
	switch format {
	case FormatXLSX:
		b, err := BuildXLSX(reports)
		return b, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", err
	case FormatCSV, "":
		b, err := BuildCSV(reports)
		return b, "text/csv; charset=utf-8", err
	default:
		return nil, "", fmt.Errorf("지원하지 않는 내보내기 형식: %s", format)
	}
}
