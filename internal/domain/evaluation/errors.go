package evaluation

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrAssessorNotFound   = errors.New("assessor not found")
	ErrFormNotFound       = errors.New("criteria form not found")
	ErrQuestionNotFound   = errors.New("evaluation question not found")
	ErrAssessmentNotFound = errors.New("summary assessment not found")
	ErrPermissionDenied   = errors.New("assessor has no evaluation role for this employee")
	ErrScoreOutOfRange    = errors.New("score exceeds question max score")
	ErrEmptyBatch         = errors.New("assessment batch has no items")
)
