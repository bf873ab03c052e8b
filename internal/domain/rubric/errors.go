package rubric

import "errors"

var (
	ErrCriteriaNotFound   = errors.New("evaluation criteria not found")
	ErrCriteriaInUse      = errors.New("criteria is referenced by a form")
	ErrQuestionNotFound   = errors.New("evaluation question not found")
	ErrQuestionAnswered   = errors.New("question has recorded answers")
	ErrInvalidMaxScore    = errors.New("question max score must be positive")
	ErrCycleNotFound      = errors.New("evaluation cycle not found")
	ErrInvalidCycleDates  = errors.New("cycle end date must not precede start date")
	ErrInvalidCycleStatus = errors.New("invalid evaluation cycle status")
	ErrFormNotFound       = errors.New("criteria form not found")
	ErrFormWithoutCrit    = errors.New("form must reference at least one criteria")
	ErrFormHasAssessments = errors.New("form has existing assessments")
)
