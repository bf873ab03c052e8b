package evaluation

// Employee is the directory snapshot the engine needs to resolve roles.
// Loaded fresh on every submission since department and role assignment
// can change between calls.
type Employee struct {
	Code           int64  `json:"code"`
	FullName       string `json:"fullName"`
	Position       string `json:"position"`
	DepartmentID   int64  `json:"departmentId"`
	DepartmentName string `json:"departmentName"`
	AccountRole    string `json:"accountRole"`
}

// Question is one rubric item with its maximum score.
type Question struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	MaxScore   int64  `json:"maxScore"`
	CriteriaID int64  `json:"criteriaId"`
}

// Form binds a set of criteria to an evaluation cycle.
type Form struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	CycleID     int64   `json:"cycleId"`
	CriteriaIDs []int64 `json:"criteriaIds"`
}

// Answer is the per-question scoring record within a summary assessment.
// A role score of zero means that role has not scored the question yet.
type Answer struct {
	ID                int64 `json:"id"`
	AssessmentID      int64 `json:"assessmentId"`
	QuestionID        int64 `json:"questionId"`
	ScoreByEmployee   int64 `json:"scoreByEmployee"`
	ScoreBySupervisor int64 `json:"scoreBySupervisor"`
	ScoreByManager    int64 `json:"scoreByManager"`
	TotalScore        int64 `json:"totalScore"`
}

// SummaryAssessment is the aggregate record of one employee's evaluation
// against one form. State is derived from the answers on every read, never
// stored.
type SummaryAssessment struct {
	ID           int64    `json:"id"`
	EmployeeCode int64    `json:"employeeCode"`
	FormID       int64    `json:"formId"`
	Comment      string   `json:"comment"`
	AverageScore float64  `json:"averageScore"`
	Sentiment    string   `json:"sentiment"`
	State        string   `json:"state"`
	Answers      []Answer `json:"answers"`
}

// SubmitItem carries up to three role scores for one question. Values at
// or below zero are treated as unset.
type SubmitItem struct {
	QuestionID      int64 `json:"questionId"`
	EmployeeScore   int64 `json:"employeeScore"`
	SupervisorScore int64 `json:"supervisorScore"`
	ManagerScore    int64 `json:"managerScore"`
}

// SubmitRequest is one assessment batch as received from the API layer.
type SubmitRequest struct {
	EmployeeID int64        `json:"employeeId"`
	FormID     int64        `json:"formId"`
	AssessorID int64        `json:"assessorId"`
	Comment    string       `json:"comment"`
	Items      []SubmitItem `json:"items"`
}

// scoreWrite is one validated per-question write: the score the resolved
// role is allowed to set.
type scoreWrite struct {
	QuestionID int64
	Score      int64
}
