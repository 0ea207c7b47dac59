package model

// 프로젝트이력관리 시트 열 구조 (A~N)
// A열 순번은 시트 쪽에서 관리하므로 비워서 추가한다.
const (
	SheetProjectHistory       = "프로젝트이력관리"
	ProjectHistoryAppendRange = "프로젝트이력관리!A:N"
)

// ProjectHistory 프로젝트 변경 이력 레코드
// 애로사항은 개선 여부와 관계없이 변경 전 원본 값을 보존한다.
type ProjectHistory struct {
	Date                   string `json:"date"`
	Item                   string `json:"item"`
	PartNo                 string `json:"partNo"`
	Customer               string `json:"customer"`
	Managers               string `json:"managers"`
	Progress               string `json:"progress"`
	AdditionalPlan         string `json:"additionalPlan"`
	Notes                  string `json:"notes"`
	Issues                 string `json:"issues"`
	IssueResolved          bool   `json:"issueResolved"`
	IssueResolutionDetails string `json:"issueResolutionDetails"`
	Editor                 string `json:"editor"`
	ChangedAt              string `json:"changedAt"`
}

// ToRow 이력 레코드를 시트 행으로 변환 (A~N)
func (h ProjectHistory) ToRow() []interface{} {
	resolved := ""
	if h.IssueResolved {
		resolved = "O"
	}
	return []interface{}{
		"", // 순번
		h.Date,
		h.Item,
		h.PartNo,
		h.Customer,
		h.Managers,
		h.Progress,
		h.AdditionalPlan,
		h.Notes,
		h.Issues,
		resolved,
		h.IssueResolutionDetails,
		h.Editor,
		h.ChangedAt,
	}
}
