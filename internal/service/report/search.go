package report

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dongjinrnd-jpg/Worklog/internal/model"
)

// SearchParams 업무일지 검색 조건
// Query 는 쉼표/세미콜론으로 구분한 검색어 목록이며
// ITEM, 단계, 담당자 중 하나라도 포함되면 일치로 본다.
type SearchParams struct {
	Query     string   `json:"query"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Items     []string `json:"items"`
	PartNos   []string `json:"partNos"`
	Stages    []string `json:"stages"`
	Managers  []string `json:"managers"`
	SortKey   string   `json:"sortKey"`
	SortOrder string   `json:"sortOrder"`
	Page      int      `json:"page"`
	PageSize  int      `json:"pageSize"`
}

// SearchResult 페이지 단위 검색 결과
type SearchResult struct {
	Reports    []model.DailyReport `json:"data"`
	Total      int                 `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"pageSize"`
	TotalPages int                 `json:"totalPages"`
}

const (
	defaultPageSize = 10
	sortAsc         = "asc"
	sortDesc        = "desc"
)

// Search 업무일지 검색. 필터와 정렬 후 페이지 범위만 돌려준다.
func (s *Service) Search(ctx context.Context, p SearchParams) (SearchResult, error) {
	matched, err := s.SearchAll(ctx, p)
	if err != nil {
		return SearchResult{}, err
	}

	page := p.Page
	if page < 1 {
		page = 1
	}
	size := p.PageSize
	if size < 1 {
		size = defaultPageSize
	}

	total := len(matched)
	totalPages := (total + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}

	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	return SearchResult{
		Reports:    matched[start:end],
		Total:      total,
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
	}, nil
}

// SearchAll 페이지 분할 없이 필터/정렬된 전체 결과를 돌려준다. 내보내기에서 쓴다.
func (s *Service) SearchAll(ctx context.Context, p SearchParams) ([]model.DailyReport, error) {
	all, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	terms := splitTerms(p.Query)
	// 기간 필터는 시작일과 종료일이 모두 주어졌을 때만 동작한다
	start, hasStart := model.ParseReportDate(p.StartDate)
	end, hasEnd := model.ParseReportDate(p.EndDate)
	rangeActive := hasStart && hasEnd

	matched := make([]model.DailyReport, 0, len(all))
	for _, r := range all {
		if !matchTerms(r, terms) {
			continue
		}
		if !matchAllow(r.Item, p.Items) || !matchAllow(r.PartNo, p.PartNos) ||
			!matchAllow(r.Stage, p.Stages) || !matchAllow(r.Manager, p.Managers) {
			continue
		}
		if rangeActive {
			d, ok := model.ParseReportDate(r.Date)
			if !ok {
				continue
			}
			if d.Before(start) || d.After(end) {
				continue
			}
		}
		matched = append(matched, r)
	}

	sortReports(matched, p.SortKey, p.SortOrder)
	return matched, nil
}

func splitTerms(query string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(query, func(r rune) bool { return r == ',' || r == ';' }) {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func matchTerms(r model.DailyReport, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	for _, t := range terms {
		t = strings.ToLower(t)
		if strings.Contains(strings.ToLower(r.Item), t) ||
			strings.Contains(strings.ToLower(r.Stage), t) ||
			strings.Contains(strings.ToLower(r.Manager), t) {
			return true
		}
	}
	return false
}

func matchAllow(value string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

// sortReports 정렬 키가 없으면 날짜 내림차순.
// 정렬 키가 명시됐는데 방향이 없으면 오름차순이고,
// 문자열 키는 한국어 대조 순서를 따른다.
// 안정 정렬이므로 같은 키의 행은 시트 순서를 유지한다.
func sortReports(reports []model.DailyReport, key, order string) {
	if order != sortAsc && order != sortDesc {
		if key == "" {
			order = sortDesc
		} else {
			order = sortAsc
		}
	}
	if key == "" {
		key = "date"
	}

	var less func(a, b model.DailyReport) bool
	switch key {
	case "date":
		less = func(a, b model.DailyReport) bool {
			da, oka := model.ParseReportDate(a.Date)
			db, okb := model.ParseReportDate(b.Date)
			if oka && okb {
				return da.Before(db)
			}
			if oka != okb {
				return okb // 파싱 불가 행은 뒤로
			}
			return a.Date < b.Date
		}
	default:
		col := collate.New(language.Korean)
		field := reportField(key)
		less = func(a, b model.DailyReport) bool {
			return col.CompareString(field(a), field(b)) < 0
		}
	}

	sort.SliceStable(reports, func(i, j int) bool {
		if order == sortDesc {
			return less(reports[j], reports[i])
		}
		return less(reports[i], reports[j])
	})
}

func reportField(key string) func(model.DailyReport) string {
	switch key {
	case "item":
		return func(r model.DailyReport) string { return r.Item }
	case "partNo":
		return func(r model.DailyReport) string { return r.PartNo }
	case "customer":
		return func(r model.DailyReport) string { return r.Customer }
	case "stage":
		return func(r model.DailyReport) string { return r.Stage }
	case "manager":
		return func(r model.DailyReport) string { return r.Manager }
	case "plan":
		return func(r model.DailyReport) string { return r.Plan }
	default:
		return func(r model.DailyReport) string { return r.Date }
	}
}
