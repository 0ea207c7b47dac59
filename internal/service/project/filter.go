package project

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/dongjinrnd-jpg/Worklog/internal/model"
)

// FilterParams 프로젝트 목록 필터 조건
// Item/PartNo/Customer/Model 은 부분 일치,
// Status/Affiliation/CurrentStage 는 정확히 일치해야 한다.
type FilterParams struct {
	Item          string `json:"item"`
	PartNo        string `json:"partNo"`
	Customer      string `json:"customer"`
	Model         string `json:"model"`
	Manager       string `json:"manager"`
	Status        string `json:"status"`
	Affiliation   string `json:"affiliation"`
	CurrentStage  string `json:"currentStage"`
	ScheduleStart string `json:"scheduleStart"`
	ScheduleEnd   string `json:"scheduleEnd"`
}

// IsZero 필터 조건 미입력 여부
func (p FilterParams) IsZero() bool {
	return p == FilterParams{}
}

// Filter 조건에 맞는 프로젝트 목록을 NO 오름차순으로 돌려준다.
func (s *Service) Filter(ctx context.Context, p FilterParams) ([]model.Project, error) {
	all, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.Project, 0, len(all))
	for _, proj := range all {
		if matches(proj, p) {
			out = append(out, proj)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		ni, erri := strconv.Atoi(out[i].No)
		nj, errj := strconv.Atoi(out[j].No)
		if erri == nil && errj == nil {
			return ni < nj
		}
		return out[i].No < out[j].No
	})
	return out, nil
}

func matches(proj model.Project, p FilterParams) bool {
	if !containsFold(proj.Item, p.Item) ||
		!containsFold(proj.PartNo, p.PartNo) ||
		!containsFold(proj.Customer, p.Customer) ||
		!containsFold(proj.Model, p.Model) {
		return false
	}
	if !containsFold(model.JoinList(proj.Managers), p.Manager) {
		return false
	}
	if p.Status != "" && proj.Status != p.Status {
		return false
	}
	if p.Affiliation != "" && proj.Affiliation != p.Affiliation {
		return false
	}
	if p.CurrentStage != "" && proj.CurrentStage != p.CurrentStage {
		return false
	}
	return matchSchedule(proj.Schedule, p.ScheduleStart, p.ScheduleEnd)
}

func containsFold(value, filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(filter))
}

// matchSchedule 대일정 구간이 조회 구간과 겹치는지 본다.
// 대일정이 없는 프로젝트는 구간 조건이 있으면 제외한다.
func matchSchedule(sched model.Schedule, start, end string) bool {
	if start == "" && end == "" {
		return true
	}
	schedStart, okStart := model.ParseReportDate(sched.Start)
	schedEnd, okEnd := model.ParseReportDate(sched.End)
	if !okStart && !okEnd {
		return false
	}
	if !okStart {
		schedStart = schedEnd
	}
	if !okEnd {
		schedEnd = schedStart
	}

	if from, ok := model.ParseReportDate(start); ok && schedEnd.Before(from) {
		return false
	}
	if to, ok := model.ParseReportDate(end); ok && schedStart.After(to) {
		return false
	}
	return true
}
