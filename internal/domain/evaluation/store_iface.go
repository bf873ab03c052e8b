package evaluation

import "context"

// Submission is a fully validated batch for one role, ready to persist.
// Writes carry only the score field owned by Role.
type Submission struct {
	EmployeeCode int64
	FormID       int64
	Role         Role
	Writes       []scoreWrite
	Comment      string
	HasComment   bool
}

// StoreAPI is the persistence collaborator contract. ApplySubmission must
// be atomic: all touched answers plus the recomputed summary commit
// together or not at all, and concurrent submissions for the same
// (employee, form) pair serialize on the assessment row.
type StoreAPI interface {
	EmployeeByCode(ctx context.Context, code int64) (Employee, error)
	FormByID(ctx context.Context, formID int64) (Form, error)
	QuestionByID(ctx context.Context, questionID int64) (Question, error)
	ApplySubmission(ctx context.Context, sub Submission) (SummaryAssessment, error)
	AssessmentByEmployeeAndForm(ctx context.Context, employeeCode, formID int64) (SummaryAssessment, error)
	UpdateSentiment(ctx context.Context, assessmentID int64, sentiment string) error
}

// Classifier is the external sentiment collaborator: one synchronous call,
// label returned verbatim. At-most-once, no retries.
type Classifier interface {
	Analyze(ctx context.Context, comment string) (string, error)
}
