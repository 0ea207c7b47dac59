package model

import (
	"strconv"
	"strings"
)

// 항목정보 시트: 열 단위 참조 목록 (헤더 행 포함)
const (
	SheetItemData = "항목정보"

	ItemDataStagesRange       = "항목정보!A1:A"
	ItemDataAffiliationsRange = "항목정보!B1:B"
	ItemDataModelsRange       = "항목정보!C1:C"
	ItemDataCustomersRange    = "항목정보!D1:D"
)

// DevelopmentStage 개발업무단계 항목
type DevelopmentStage struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ItemData 항목정보 (폼 선택지 목록)
// FallbackUsed 는 시트 조회 실패/빈 결과로 기본 목록이 대신 쓰였음을 나타낸다.
type ItemData struct {
	DevelopmentStages []DevelopmentStage `json:"developmentStages"`
	Affiliations      []string           `json:"affiliations"`
	Models            []string           `json:"models"`
	Customers         []string           `json:"customers"`
	FallbackUsed      bool               `json:"fallbackUsed"`
}

// 시트가 비어 있거나 조회에 실패했을 때 쓰는 기본 목록
var (
	DefaultDevelopmentStages = []string{
		"검토", "설계", "개발", "PROTO", "선행성",
		"P1", "P2", "승인", "양산이관", "초도양산",
	}
	DefaultAffiliations = []string{"전장", "유압", "전산"}
	DefaultModels       = []string{"CAB TILT SYSTEM", "FUEL FILLER PUMP", "PUMP", "CYLINDER", "ETB", "TC ACTUATOR MOTOR"}
	DefaultCustomers    = []string{"기아군수", "KUBOTA", "YAMADA", "DORMAN"}
)

// UniqueColumnValues 열 조회 결과에서 헤더를 제외하고
// 공백 제거 + 중복 제거(순서 유지)한 값 목록을 만든다.
func UniqueColumnValues(rows [][]string) []string {
	if len(rows) <= 1 {
		return nil
	}

	seen := make(map[string]bool)
	var out []string
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		v := strings.TrimSpace(row[0])
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// StagesFromNames 단계명 목록을 DevelopmentStage 목록으로 변환
func StagesFromNames(names []string) []DevelopmentStage {
	out := make([]DevelopmentStage, 0, len(names))
	for i, name := range names {
		out = append(out, DevelopmentStage{ID: strconv.Itoa(i), Name: name})
	}
	return out
}

// FallbackItemData 기본 항목정보
func FallbackItemData() ItemData {
	return ItemData{
		DevelopmentStages: StagesFromNames(DefaultDevelopmentStages),
		Affiliations:      append([]string(nil), DefaultAffiliations...),
		Models:            append([]string(nil), DefaultModels...),
		Customers:         append([]string(nil), DefaultCustomers...),
		FallbackUsed:      true,
	}
}
