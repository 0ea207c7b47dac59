package model

import "strconv"

// 담당자 시트 열 구조 (A 직급, B 이름)
const (
	SheetManagers    = "담당자"
	ManagerReadRange = "담당자!A2:B"
)

// Manager 담당자 레코드
type Manager struct {
	ID   string `json:"id"`
	Rank string `json:"rank"`
	Name string `json:"name"`
}

// ManagerFromRow 시트 행을 담당자 레코드로 변환
func ManagerFromRow(row []string, index int) Manager {
	get := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	return Manager{
		ID:   strconv.Itoa(index),
		Rank: get(0),
		Name: get(1),
	}
}
