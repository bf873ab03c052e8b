package rubric

import "time"

type Criteria struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Questions []Question `json:"questions,omitempty"`
}

type Question struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	MaxScore   int64  `json:"maxScore"`
	CriteriaID int64  `json:"criteriaId"`
}

type Cycle struct {
	ID           int64     `json:"id"`
	DepartmentID int64     `json:"departmentId,omitempty"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	Status       string    `json:"status"`
}

type Form struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name"`
	CycleID  int64      `json:"cycleId"`
	Criteria []Criteria `json:"criteria,omitempty"`
}

const (
	CycleStatusDraft  = "draft"
	CycleStatusActive = "active"
	CycleStatusClosed = "closed"
)
