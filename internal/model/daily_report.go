package model

import (
	"regexp"
	"strconv"
	"time"
)

// 업무일지 시트 열 구조 (A~J)
// J열의 행 키는 위치 기반 ID 의 취약성을 피하기 위한 고정 식별자다.
const (
	SheetDailyReports = "업무일지"

	DailyReportReadRange   = "업무일지!A2:J"
	DailyReportAppendRange = "업무일지!A:J"
)

type colIdx int

const (
	ReportColDate colIdx = iota
	ReportColItem
	ReportColPartNo
	ReportColCustomer
	ReportColStage
	ReportColManager
	ReportColPlan
	ReportColPerformance
	ReportColNote
	ReportColKey

	DailyReportColCount = 10
)

// DailyReport 업무일지 레코드
type DailyReport struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Item        string `json:"item"`
	PartNo      string `json:"partNo"`
	Customer    string `json:"customer"`
	Stage       string `json:"stage"`
	Manager     string `json:"manager"`
	Plan        string `json:"plan"`
	Performance string `json:"performance"`
	Note        string `json:"note"`
}

// DailyReportFromRow 시트 행을 업무일지 레코드로 변환
// 행 키가 비어 있는 기존 데이터는 조회 시점의 행 인덱스를 ID 로 사용한다.
func DailyReportFromRow(row []string, index int) DailyReport {
	get := func(i colIdx) string {
		if int(i) < len(row) {
			return row[i]
		}
		return ""
	}

	id := get(ReportColKey)
	if id == "" {
		id = strconv.Itoa(index)
	}

	return DailyReport{
		ID:          id,
		Date:        get(ReportColDate),
		Item:        get(ReportColItem),
		PartNo:      get(ReportColPartNo),
		Customer:    get(ReportColCustomer),
		Stage:       get(ReportColStage),
		Manager:     get(ReportColManager),
		Plan:        get(ReportColPlan),
		Performance: get(ReportColPerformance),
		Note:        get(ReportColNote),
	}
}

// ToRow 업무일지 레코드를 시트 행으로 변환
func (r DailyReport) ToRow() []interface{} {
	return []interface{}{
		r.Date,
		r.Item,
		r.PartNo,
		r.Customer,
		r.Stage,
		r.Manager,
		r.Plan,
		r.Performance,
		r.Note,
		r.ID,
	}
}

var (
	dateDashRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dateDotRe   = regexp.MustCompile(`^\d{4}\.\d{2}\.\d{2}$`)
	dateSlashRe = regexp.MustCompile(`^\d{4}/\d{2}/\d{2}$`)
)

// NormalizeDate 날짜 문자열을 시트가 날짜로 인식하는 YYYY-MM-DD 형식으로 변환
// 변환할 수 없으면 원본을 그대로 돌려준다.
func NormalizeDate(s string) string {
	if s == "" {
		return ""
	}
	if dateDashRe.MatchString(s) {
		return s
	}
	if dateDotRe.MatchString(s) {
		return replaceAll(s, '.', '-')
	}
	if dateSlashRe.MatchString(s) {
		return replaceAll(s, '/', '-')
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format("2006-01-02")
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t.Format("2006-01-02")
	}
	return s
}

func replaceAll(s string, old, new byte) string {
	b := []byte(s)
	for i := range b {
		if b[i] == old {
			b[i] = new
		}
	}
	return string(b)
}

// FormatDate 시트 날짜 형식 (YYYY-MM-DD)
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseReportDate 업무일지 날짜 파싱
// 정규화 가능한 형식이면 파싱 성공, 아니면 zero time 과 false 반환.
func ParseReportDate(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", NormalizeDate(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
