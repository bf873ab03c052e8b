package evaluation

import (
	"context"
	"log/slog"
	"strings"
)

// Service is the scoring and workflow engine. It is request-scoped and
// stateless between calls; all durable state lives in the store.
type Service struct {
	store      StoreAPI
	classifier Classifier
}

func NewService(store StoreAPI, classifier Classifier) *Service {
	return &Service{store: store, classifier: classifier}
}

// Submit validates and persists one assessment batch, recomputes the
// composite and summary scores, and attaches a sentiment label
// best-effort. The persisted scoring result is returned even when the
// classifier is down.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (SummaryAssessment, error) {
	if len(req.Items) == 0 {
		return SummaryAssessment{}, ErrEmptyBatch
	}

	subject, err := s.store.EmployeeByCode(ctx, req.EmployeeID)
	if err != nil {
		return SummaryAssessment{}, ErrEmployeeNotFound
	}
	form, err := s.store.FormByID(ctx, req.FormID)
	if err != nil {
		return SummaryAssessment{}, ErrFormNotFound
	}
	assessor, err := s.store.EmployeeByCode(ctx, req.AssessorID)
	if err != nil {
		return SummaryAssessment{}, ErrAssessorNotFound
	}

	role, err := ResolveRole(assessor, subject)
	if err != nil {
		return SummaryAssessment{}, err
	}

	writes := make([]scoreWrite, 0, len(req.Items))
	for _, item := range req.Items {
		question, err := s.store.QuestionByID(ctx, item.QuestionID)
		if err != nil {
			return SummaryAssessment{}, ErrQuestionNotFound
		}
		if item.EmployeeScore > question.MaxScore ||
			item.SupervisorScore > question.MaxScore ||
			item.ManagerScore > question.MaxScore {
			return SummaryAssessment{}, ErrScoreOutOfRange
		}
		writes = append(writes, scoreWrite{
			QuestionID: question.ID,
			Score:      roleScore(role, item),
		})
	}

	comment := strings.TrimSpace(req.Comment)
	assessment, err := s.store.ApplySubmission(ctx, Submission{
		EmployeeCode: subject.Code,
		FormID:       form.ID,
		Role:         role,
		Writes:       writes,
		Comment:      comment,
		HasComment:   comment != "",
	})
	if err != nil {
		return SummaryAssessment{}, err
	}

	s.annotateSentiment(ctx, &assessment)
	assessment.State = DeriveState(assessment.Answers)
	return assessment, nil
}

// Get returns the current summary assessment for one (form, employee)
// pair with its derived workflow state.
func (s *Service) Get(ctx context.Context, formID, employeeID int64) (SummaryAssessment, error) {
	subject, err := s.store.EmployeeByCode(ctx, employeeID)
	if err != nil {
		return SummaryAssessment{}, ErrEmployeeNotFound
	}
	form, err := s.store.FormByID(ctx, formID)
	if err != nil {
		return SummaryAssessment{}, ErrFormNotFound
	}

	assessment, err := s.store.AssessmentByEmployeeAndForm(ctx, subject.Code, form.ID)
	if err != nil {
		return SummaryAssessment{}, ErrAssessmentNotFound
	}
	assessment.State = DeriveState(assessment.Answers)
	return assessment, nil
}

// annotateSentiment runs after the scoring transaction committed.
// Classifier failure degrades to no label and is only logged; it must
// never surface as the submission's failure.
func (s *Service) annotateSentiment(ctx context.Context, assessment *SummaryAssessment) {
	if s.classifier == nil || assessment.Comment == "" {
		return
	}
	label, err := s.classifier.Analyze(ctx, assessment.Comment)
	if err != nil {
		slog.Warn("sentiment classification failed",
			"assessmentId", assessment.ID, "err", err)
		return
	}
	if err := s.store.UpdateSentiment(ctx, assessment.ID, label); err != nil {
		slog.Warn("sentiment persist failed",
			"assessmentId", assessment.ID, "err", err)
		return
	}
	assessment.Sentiment = label
}
