package model

import (
	"fmt"
	"strings"
)

// 프로젝트 시트 열 구조 (A~T)
// S열 수정일시는 업데이트 시점에 기록되고, T열은 고정 행 키다.
const (
	SheetProjects = "프로젝트"

	ProjectReadRange   = "프로젝트!A2:T"
	ProjectAppendRange = "프로젝트!A:T"

	ProjectColCount = 20
)

const (
	ProjectColNo colIdx = iota
	ProjectColStatus
	ProjectColCustomer
	ProjectColAffiliation
	ProjectColModel
	ProjectColItem
	ProjectColPartNo
	ProjectColManagers
	ProjectColCurrentStage
	ProjectColProgress
	ProjectColIssues
	ProjectColNotes
	ProjectColAdditionalPlan
	ProjectColDevStages
	ProjectColSchedule
	ProjectColSellingPrice
	ProjectColMaterialCost
	ProjectColMaterialCostRatio
	ProjectColUpdatedAt
	ProjectColKey
)

// 진행여부 코드 (API) ↔ 시트 표기
const (
	StatusProgress  = "progress"
	StatusHold      = "hold"
	StatusCompleted = "completed"
)

var statusToSheet = map[string]string{
	StatusProgress:  "진행",
	StatusHold:      "보류",
	StatusCompleted: "완료",
}

var sheetToStatus = map[string]string{
	"진행": StatusProgress,
	"보류": StatusHold,
	"완료": StatusCompleted,
}

// StatusToSheet 진행여부 코드를 시트 표기로 변환 (알 수 없는 코드는 진행)
func StatusToSheet(code string) string {
	if v, ok := statusToSheet[code]; ok {
		return v
	}
	return "진행"
}

// StatusFromSheet 시트 표기를 진행여부 코드로 변환 (알 수 없는 표기는 그대로)
func StatusFromSheet(text string) string {
	if v, ok := sheetToStatus[text]; ok {
		return v
	}
	return text
}

// Schedule 대일정 (시작일 ~ 종료일)
type Schedule struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// IsZero 대일정 미입력 여부
func (s Schedule) IsZero() bool {
	return s.Start == "" && s.End == ""
}

// ParseSchedule "시작 ~ 종료" 형식의 대일정 문자열 분해
func ParseSchedule(s string) Schedule {
	if s == "" {
		return Schedule{}
	}
	parts := strings.SplitN(s, "~", 2)
	out := Schedule{Start: strings.TrimSpace(parts[0])}
	if len(parts) == 2 {
		out.End = strings.TrimSpace(parts[1])
	}
	return out
}

// FormatSchedule 대일정을 시트 문자열로 변환
func FormatSchedule(s Schedule) string {
	if s.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s ~ %s", s.Start, s.End)
}

// Project 프로젝트 레코드
type Project struct {
	ID                string   `json:"id"`
	No                string   `json:"no"`
	Status            string   `json:"status"`
	Customer          string   `json:"customer"`
	Affiliation       string   `json:"affiliation"`
	Model             string   `json:"model"`
	Item              string   `json:"item"`
	PartNo            string   `json:"partNo"`
	Managers          []string `json:"managers"`
	CurrentStage      string   `json:"currentStage"`
	Progress          string   `json:"progress"`
	Issues            string   `json:"issues"`
	Notes             string   `json:"notes"`
	AdditionalPlan    string   `json:"additionalPlan"`
	DevelopmentStages []string `json:"developmentStages"`
	Schedule          Schedule `json:"schedule"`
	SellingPrice      string   `json:"sellingPrice"`
	MaterialCost      string   `json:"materialCost"`
	MaterialCostRatio string   `json:"materialCostRatio"`
	UpdatedAt         string   `json:"updatedAt"`
}

// ProjectFromRow 시트 행을 프로젝트 레코드로 변환
func ProjectFromRow(row []string, index int) Project {
	get := func(i colIdx) string {
		if int(i) < len(row) {
			return row[i]
		}
		return ""
	}

	id := get(ProjectColKey)
	if id == "" {
		id = fmt.Sprint(index)
	}

	return Project{
		ID:                id,
		No:                get(ProjectColNo),
		Status:            StatusFromSheet(get(ProjectColStatus)),
		Customer:          get(ProjectColCustomer),
		Affiliation:       get(ProjectColAffiliation),
		Model:             get(ProjectColModel),
		Item:              get(ProjectColItem),
		PartNo:            get(ProjectColPartNo),
		Managers:          SplitList(get(ProjectColManagers)),
		CurrentStage:      get(ProjectColCurrentStage),
		Progress:          get(ProjectColProgress),
		Issues:            get(ProjectColIssues),
		Notes:             get(ProjectColNotes),
		AdditionalPlan:    get(ProjectColAdditionalPlan),
		DevelopmentStages: SplitList(get(ProjectColDevStages)),
		Schedule:          ParseSchedule(get(ProjectColSchedule)),
		SellingPrice:      get(ProjectColSellingPrice),
		MaterialCost:      get(ProjectColMaterialCost),
		MaterialCostRatio: get(ProjectColMaterialCostRatio),
		UpdatedAt:         get(ProjectColUpdatedAt),
	}
}

// ToRow 프로젝트 레코드를 시트 행으로 변환 (A~T)
func (p Project) ToRow() []interface{} {
	return []interface{}{
		p.No,
		StatusToSheet(p.Status),
		p.Customer,
		p.Affiliation,
		p.Model,
		p.Item,
		p.PartNo,
		JoinList(p.Managers),
		p.CurrentStage,
		p.Progress,
		p.Issues,
		p.Notes,
		p.AdditionalPlan,
		JoinList(p.DevelopmentStages),
		FormatSchedule(p.Schedule),
		p.SellingPrice,
		p.MaterialCost,
		p.MaterialCostRatio,
		p.UpdatedAt,
		p.ID,
	}
}

// ListDelimiter 다중값 셀 구분자
const ListDelimiter = ","

// SplitList 쉼표로 묶인 다중값 셀 분해
func SplitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ListDelimiter)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// JoinList 다중값을 쉼표로 묶어 한 셀에 저장
func JoinList(values []string) string {
	return strings.Join(values, ListDelimiter)
}

// ValidateListValues 다중값 항목에 구분자가 포함되어 있는지 검증
// 구분자가 들어가면 분해 시 데이터가 깨지므로 저장 전에 거부한다.
func ValidateListValues(field string, values []string) error {
	for _, v := range values {
		if strings.Contains(v, ListDelimiter) {
			return fmt.Errorf("%s 항목에는 쉼표를 사용할 수 없습니다: %q", field, v)
		}
	}
	return nil
}
