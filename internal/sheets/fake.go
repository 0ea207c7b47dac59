package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	sheetsapi "google.golang.org/api/sheets/v4"
)

// Fake 테스트용 인메모리 스프레드시트
// 실제 API 와 동일하게, 읽기 결과에서 뒤쪽의 빈 행/빈 셀은 생략한다.
type Fake struct {
	mu     sync.Mutex
	grids  map[string][][]string
	ids    map[string]int64
	nextID int64

	// GetErr 설정 시 모든 읽기가 해당 오류를 반환 (장애 시나리오용)
	GetErr error
}

// NewFake 빈 인메모리 스프레드시트 생성
func NewFake() *Fake {
	return &Fake{
		grids: make(map[string][][]string),
		ids:   make(map[string]int64),
	}
}

// Seed 시트 전체를 주어진 행으로 교체 (1행부터)
func (f *Fake) Seed(sheet string, rows [][]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	grid := make([][]string, len(rows))
	for i, r := range rows {
		grid[i] = append([]string(nil), r...)
	}
	f.grids[sheet] = grid
	f.ensureIDLocked(sheet)
}

// Rows 시트의 현재 행 전체 (검증용)
func (f *Fake) Rows(sheet string) [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	grid := f.grids[sheet]
	out := make([][]string, len(grid))
	for i, r := range grid {
		out[i] = append([]string(nil), r...)
	}
	return out
}

func (f *Fake) ensureIDLocked(sheet string) int64 {
	if id, ok := f.ids[sheet]; ok {
		return id
	}
	id := f.nextID
	f.nextID++
	f.ids[sheet] = id
	return id
}

// Get 범위 읽기
func (f *Fake) Get(_ context.Context, rng string) ([][]string, error) {
	if f.GetErr != nil {
		return nil, f.GetErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	ref, err := parseRange(rng)
	if err != nil {
		return nil, err
	}
	grid := f.grids[ref.sheet]

	endRow := ref.endRow
	if endRow == 0 || endRow > len(grid) {
		endRow = len(grid)
	}

	var rows [][]string
	for i := ref.startRow; i <= endRow; i++ {
		src := grid[i-1]
		var row []string
		for c := ref.startCol; c <= ref.endCol; c++ {
			if c-1 < len(src) {
				row = append(row, src[c-1])
			} else {
				row = append(row, "")
			}
		}
		// 뒤쪽 빈 셀 생략
		for len(row) > 0 && row[len(row)-1] == "" {
			row = row[:len(row)-1]
		}
		rows = append(rows, row)
	}
	// 뒤쪽 빈 행 생략
	for len(rows) > 0 && len(rows[len(rows)-1]) == 0 {
		rows = rows[:len(rows)-1]
	}
	return rows, nil
}

// Update 범위 덮어쓰기
func (f *Fake) Update(_ context.Context, rng string, values [][]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	ref, err := parseRange(rng)
	if err != nil {
		return err
	}
	f.ensureIDLocked(ref.sheet)

	for i, row := range values {
		rowNum := ref.startRow + i
		f.writeRowLocked(ref.sheet, rowNum, ref.startCol, row)
	}
	return nil
}

// Append 마지막 데이터 행 뒤에 추가
func (f *Fake) Append(_ context.Context, rng string, values [][]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	ref, err := parseRange(rng)
	if err != nil {
		return err
	}
	f.ensureIDLocked(ref.sheet)

	last := 0
	for i, row := range f.grids[ref.sheet] {
		for _, cell := range row {
			if cell != "" {
				last = i + 1
				break
			}
		}
	}
	for i, row := range values {
		f.writeRowLocked(ref.sheet, last+1+i, ref.startCol, row)
	}
	return nil
}

// BatchUpdate 구조 변경 요청 처리
// 실제 사용되는 두 종류(행 삭제, 셀 값/서식 쓰기)만 해석한다.
func (f *Fake) BatchUpdate(_ context.Context, requests []*sheetsapi.Request) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, req := range requests {
		switch {
		case req.DeleteDimension != nil:
			r := req.DeleteDimension.Range
			if r.Dimension != "ROWS" {
				return fmt.Errorf("지원하지 않는 차원: %s", r.Dimension)
			}
			sheet, ok := f.sheetByIDLocked(r.SheetId)
			if !ok {
				return fmt.Errorf("시트 ID를 찾을 수 없습니다: %d", r.SheetId)
			}
			grid := f.grids[sheet]
			start := int(r.StartIndex)
			end := int(r.EndIndex)
			if start < 0 || start >= len(grid) {
				return fmt.Errorf("삭제 범위가 유효하지 않습니다: %d", start)
			}
			if end > len(grid) {
				end = len(grid)
			}
			f.grids[sheet] = append(grid[:start], grid[end:]...)
		case req.UpdateCells != nil:
			r := req.UpdateCells.Range
			sheet, ok := f.sheetByIDLocked(r.SheetId)
			if !ok {
				return fmt.Errorf("시트 ID를 찾을 수 없습니다: %d", r.SheetId)
			}
			for i, rowData := range req.UpdateCells.Rows {
				rowNum := int(r.StartRowIndex) + i + 1
				cells := make([]interface{}, 0, len(rowData.Values))
				for _, cd := range rowData.Values {
					if cd.UserEnteredValue != nil && cd.UserEnteredValue.StringValue != nil {
						cells = append(cells, *cd.UserEnteredValue.StringValue)
					} else {
						cells = append(cells, "")
					}
				}
				f.writeRowLocked(sheet, rowNum, int(r.StartColumnIndex)+1, cells)
			}
		default:
			return fmt.Errorf("지원하지 않는 batchUpdate 요청")
		}
	}
	return nil
}

// SheetID 시트 이름으로 ID 조회
func (f *Fake) SheetID(_ context.Context, name string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id, ok := f.ids[name]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("시트를 찾을 수 없습니다: %s", name)
}

func (f *Fake) sheetByIDLocked(id int64) (string, bool) {
	for name, sid := range f.ids {
		if sid == id {
			return name, true
		}
	}
	return "", false
}

func (f *Fake) writeRowLocked(sheet string, rowNum, startCol int, cells []interface{}) {
	grid := f.grids[sheet]
	for len(grid) < rowNum {
		grid = append(grid, nil)
	}
	row := grid[rowNum-1]
	need := startCol - 1 + len(cells)
	for len(row) < need {
		row = append(row, "")
	}
	for i, cell := range cells {
		row[startCol-1+i] = toCellString(cell)
	}
	grid[rowNum-1] = row
	f.grids[sheet] = grid
}

func toCellString(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

type rangeRef struct {
	sheet    string
	startCol int // 1-based
	startRow int // 1-based
	endCol   int
	endRow   int // 0 = 시트 끝까지
}

// parseRange "시트!A2:J" 형식의 범위 문자열 해석
func parseRange(rng string) (rangeRef, error) {
	var ref rangeRef

	bang := strings.Index(rng, "!")
	if bang < 0 {
		return ref, fmt.Errorf("범위 형식이 유효하지 않습니다: %s", rng)
	}
	ref.sheet = rng[:bang]

	parts := strings.SplitN(rng[bang+1:], ":", 2)
	startCol, startRow, err := parseCellRef(parts[0])
	if err != nil {
		return ref, err
	}
	ref.startCol = startCol
	ref.startRow = startRow
	if ref.startRow == 0 {
		ref.startRow = 1
	}

	if len(parts) == 2 {
		endCol, endRow, err := parseCellRef(parts[1])
		if err != nil {
			return ref, err
		}
		ref.endCol = endCol
		ref.endRow = endRow
	} else {
		ref.endCol = startCol
		ref.endRow = startRow
	}
	return ref, nil
}

// parseCellRef "A2" → (1, 2); "A" → (1, 0)
func parseCellRef(s string) (col, row int, err error) {
	i := 0
	for i < len(s) && s[i] >= 'A' && s[i] <= 'Z' {
		col = col*26 + int(s[i]-'A'+1)
		i++
	}
	if col == 0 {
		return 0, 0, fmt.Errorf("셀 참조가 유효하지 않습니다: %s", s)
	}
	if i < len(s) {
		row, err = strconv.Atoi(s[i:])
		if err != nil {
			return 0, 0, fmt.Errorf("셀 참조가 유효하지 않습니다: %s", s)
		}
	}
	return col, row, nil
}
