package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dongjinrnd-jpg/Worklog/internal/cache"
	"github.com/dongjinrnd-jpg/Worklog/internal/model"
	"github.com/dongjinrnd-jpg/Worklog/internal/service/catalog"
	"github.com/dongjinrnd-jpg/Worklog/internal/service/project"
	"github.com/dongjinrnd-jpg/Worklog/internal/service/report"
	"github.com/dongjinrnd-jpg/Worklog/internal/sheets"
)

func newTestRouter(fake *sheets.Fake) *gin.Engine {
	gin.SetMode(gin.TestMode)

	tagCache := cache.New()
	reports := report.NewService(fake, tagCache, time.Minute)
	projects := project.NewService(fake, tagCache, time.Minute)
	catalogSvc := catalog.NewService(fake, tagCache, time.Minute, time.Minute)

	router := gin.New()
	NewHandler(reports, projects, catalogSvc, tagCache).RegisterRoutes(router.Group("/api"))
	return router
}

func seedSheets(fake *sheets.Fake) {
	fake.Seed(model.SheetDailyReports, [][]string{
		{"날짜", "ITEM", "PART NO", "고객사", "단계", "담당자", "계획", "실적", "비고", "KEY"},
		{"2024-01-15", "PUMP", "P-1", "KUBOTA", "설계", "홍길동", "", "", "", "k1"},
		{"2024-02-01", "ETB", "E-1", "DORMAN", "개발", "김철수", "", "", "", "k2"},
	})
	fake.Seed(model.SheetProjects, [][]string{
		{"NO", "진행여부", "고객사", "소속", "모델", "ITEM", "PART NO", "담당자", "현재단계", "진행현황",
			"애로사항", "특이사항", "추가계획", "개발업무단계", "대일정", "판매가", "재료비", "재료비율", "수정일시", "KEY"},
		{"1", "진행", "KUBOTA", "유압", "PUMP", "기어펌프", "GP-1", "홍길동", "설계", "", "", "", "", "검토,설계", "", "", "", "", "", "p1"},
	})
	fake.Seed(model.SheetManagers, [][]string{
		{"직급", "이름"},
		{"책임", "홍길동"},
	})
	fake.Seed(model.SheetProjectHistory, [][]string{{"순번"}})
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListDailyReportsByDate(t *testing.T) {
	fake := sheets.NewFake()
	seedSheets(fake)
	router := newTestRouter(fake)

	w := doJSON(t, router, http.MethodGet, "/api/daily-reports?date=2024-01-15", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Reports []model.DailyReport `json:"reports"`
		Total   int                 `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 1 || resp.Reports[0].ID != "k1" {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestCreateDailyReportValidation(t *testing.T) {
	fake := sheets.NewFake()
	seedSheets(fake)
	router := newTestRouter(fake)

	// 필수 항목 누락 → 400
	w := doJSON(t, router, http.MethodPost, "/api/daily-reports", map[string]string{"item": "PUMP"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	// 고객사 누락 → 400
	w = doJSON(t, router, http.MethodPost, "/api/daily-reports", map[string]string{
		"date": "2024-01-20", "item": "PUMP", "stage": "설계", "manager": "홍길동",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing customer status = %d, want 400", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/daily-reports", map[string]string{
		"date": "2024-01-20", "item": "PUMP", "customer": "KUBOTA", "stage": "설계", "manager": "홍길동",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	rows := fake.Rows(model.SheetDailyReports)
	if len(rows) != 4 {
		t.Fatalf("sheet rows = %d, want 4", len(rows))
	}
}

func TestSearchEndpointPagination(t *testing.T) {
	fake := sheets.NewFake()
	seedSheets(fake)
	router := newTestRouter(fake)

	w := doJSON(t, router, http.MethodGet, "/api/daily-reports/search?page=1&pageSize=1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	// 목록 필드 이름은 data
	if !strings.Contains(w.Body.String(), `"data"`) {
		t.Fatalf("body = %s, want data field", w.Body.String())
	}

	var resp report.SearchResult
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 2 || resp.TotalPages != 2 || len(resp.Reports) != 1 {
		t.Fatalf("resp = %+v", resp)
	}
	// 기본 정렬은 날짜 내림차순
	if resp.Reports[0].ID != "k2" {
		t.Fatalf("first report = %s, want k2", resp.Reports[0].ID)
	}
}

func TestUpdateDailyReportNotFound(t *testing.T) {
	fake := sheets.NewFake()
	seedSheets(fake)
	router := newTestRouter(fake)

	w := doJSON(t, router, http.MethodPut, "/api/daily-reports/missing", report.UpdateInput{Date: "2024-01-21"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestProjectLifecycleEndpoints(t *testing.T) {
	fake := sheets.NewFake()
	seedSheets(fake)
	router := newTestRouter(fake)

	// 고객사 누락 → 400
	w := doJSON(t, router, http.MethodPost, "/api/projects", project.CreateInput{Item: "실린더"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing customer status = %d, want 400", w.Code)
	}

	// 등록
	w = doJSON(t, router, http.MethodPost, "/api/projects", project.CreateInput{
		Item:              "실린더",
		Customer:          "YAMADA",
		Managers:          []string{"김철수"},
		DevelopmentStages: []string{"검토", "설계"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}
	var created struct {
		Project model.Project `json:"project"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Project.No != "2" || created.Project.CurrentStage != "검토" {
		t.Fatalf("created = %+v", created.Project)
	}

	// 담당자에 쉼표 → 400
	w = doJSON(t, router, http.MethodPost, "/api/projects", project.CreateInput{
		Item:     "실린더",
		Customer: "YAMADA",
		Managers: []string{"김철수,이영희"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("comma value status = %d, want 400", w.Code)
	}

	// 상태 필터 조회
	w = doJSON(t, router, http.MethodGet, "/api/projects?status=progress", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var listed struct {
		Projects []model.Project `json:"projects"`
		Total    int             `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if listed.Total != 2 {
		t.Fatalf("progress projects = %d, want 2", listed.Total)
	}

	// 삭제 후 404
	w = doJSON(t, router, http.MethodDelete, "/api/projects/"+created.Project.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}
	w = doJSON(t, router, http.MethodGet, "/api/projects/"+created.Project.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d, want 404", w.Code)
	}
}

func TestStatusEndpoint(t *testing.T) {
	fake := sheets.NewFake()
	seedSheets(fake)
	router := newTestRouter(fake)

	w := doJSON(t, router, http.MethodGet, "/api/status", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp StatusResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Initialized {
		t.Fatalf("initialized = false with seeded data")
	}
	if resp.ReportCount != 2 || resp.ProjectCount != 1 || resp.ManagerCount != 1 {
		t.Fatalf("counts = %+v", resp)
	}
}

func TestRevalidateUnknownTag(t *testing.T) {
	fake := sheets.NewFake()
	seedSheets(fake)
	router := newTestRouter(fake)

	w := doJSON(t, router, http.MethodPost, "/api/revalidate?tag=unknown", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/revalidate?tag=projects", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestExportDownloadIsOneShot(t *testing.T) {
	fake := sheets.NewFake()
	seedSheets(fake)
	router := newTestRouter(fake)

	w := doJSON(t, router, http.MethodPost, "/api/export/daily-reports", map[string]string{"format": "csv"})
	if w.Code != http.StatusOK {
		t.Fatalf("export status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token    string `json:"token"`
		Filename string `json:"filename"`
		Count    int    `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token == "" || resp.Count != 2 {
		t.Fatalf("resp = %+v", resp)
	}
	if !strings.HasPrefix(resp.Filename, "업무일지_검색결과_") || !strings.HasSuffix(resp.Filename, ".csv") {
		t.Fatalf("filename = %q", resp.Filename)
	}

	w = doJSON(t, router, http.MethodGet, "/api/export/download/"+resp.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("download status = %d", w.Code)
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), "attachment") {
		t.Fatalf("disposition = %q", w.Header().Get("Content-Disposition"))
	}
	if !strings.Contains(w.Body.String(), "PUMP") {
		t.Fatalf("csv body missing data")
	}

	// 같은 토큰 재사용 불가
	w = doJSON(t, router, http.MethodGet, "/api/export/download/"+resp.Token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("second download status = %d, want 404", w.Code)
	}
}
