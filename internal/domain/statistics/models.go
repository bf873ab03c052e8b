package statistics

import "time"

type Overview struct {
	TotalEmployees     int64   `json:"totalEmployees"`
	EvaluatedEmployees int64   `json:"evaluatedEmployees"`
	AverageScore       float64 `json:"averageScore"`
	ExcellentEmployees int64   `json:"excellentEmployees"`
}

type TopEmployee struct {
	Rank           int     `json:"rank"`
	EmployeeCode   int64   `json:"employeeCode"`
	FullName       string  `json:"fullName"`
	Position       string  `json:"position"`
	DepartmentName string  `json:"departmentName"`
	Sentiment      string  `json:"sentiment"`
	AverageScore   float64 `json:"averageScore"`
}

// CriteriaTotal carries the accumulated composite score for one criteria.
// The reducer sums, it does not average; callers normalize with MaxScore
// where one is present.
type CriteriaTotal struct {
	CriteriaID   int64  `json:"criteriaId"`
	CriteriaName string `json:"criteriaName"`
	TotalScore   int64  `json:"totalScore"`
	MaxScore     int64  `json:"maxScore,omitempty"`
}

type EvaluatedEmployee struct {
	EmployeeCode int64  `json:"employeeCode"`
	FullName     string `json:"fullName"`
}

type HistoryEntry struct {
	AssessmentID   int64     `json:"assessmentId"`
	EmployeeCode   int64     `json:"employeeCode"`
	EmployeeName   string    `json:"employeeName"`
	DepartmentName string    `json:"departmentName"`
	FormID         int64     `json:"formId"`
	FormName       string    `json:"formName"`
	CycleID        int64     `json:"cycleId"`
	State          string    `json:"state"`
	Comment        string    `json:"comment"`
	Sentiment      string    `json:"sentiment"`
	AverageScore   float64   `json:"averageScore"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type HistoryFilter struct {
	EmployeeCode int64
	CycleID      int64
}

type CycleStats struct {
	CycleID              int64   `json:"cycleId"`
	TotalEvaluations     int     `json:"totalEvaluations"`
	CompletedEvaluations int     `json:"completedEvaluations"`
	AverageScore         float64 `json:"averageScore"`
}
