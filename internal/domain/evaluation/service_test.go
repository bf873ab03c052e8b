package evaluation

import (
	"context"
	"errors"
	"testing"
)

type fakeStore struct {
	employees   map[int64]Employee
	forms       map[int64]Form
	questions   map[int64]Question
	assessments map[int64]*SummaryAssessment
	nextID      int64
	applyCalls  int
	sentimentOf map[int64]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		employees:   map[int64]Employee{},
		forms:       map[int64]Form{},
		questions:   map[int64]Question{},
		assessments: map[int64]*SummaryAssessment{},
		sentimentOf: map[int64]string{},
	}
}

func (f *fakeStore) EmployeeByCode(_ context.Context, code int64) (Employee, error) {
	employee, ok := f.employees[code]
	if !ok {
		return Employee{}, errors.New("no rows")
	}
	return employee, nil
}

func (f *fakeStore) FormByID(_ context.Context, formID int64) (Form, error) {
	form, ok := f.forms[formID]
	if !ok {
		return Form{}, errors.New("no rows")
	}
	return form, nil
}

func (f *fakeStore) QuestionByID(_ context.Context, questionID int64) (Question, error) {
	question, ok := f.questions[questionID]
	if !ok {
		return Question{}, errors.New("no rows")
	}
	return question, nil
}

func (f *fakeStore) ApplySubmission(_ context.Context, sub Submission) (SummaryAssessment, error) {
	f.applyCalls++

	var assessment *SummaryAssessment
	for _, candidate := range f.assessments {
		if candidate.EmployeeCode == sub.EmployeeCode && candidate.FormID == sub.FormID {
			assessment = candidate
			break
		}
	}
	if assessment == nil {
		f.nextID++
		assessment = &SummaryAssessment{
			ID:           f.nextID,
			EmployeeCode: sub.EmployeeCode,
			FormID:       sub.FormID,
		}
		f.assessments[assessment.ID] = assessment
	}

	for _, write := range sub.Writes {
		score := write.Score
		if score < 0 {
			score = 0
		}
		idx := -1
		for i, answer := range assessment.Answers {
			if answer.QuestionID == write.QuestionID {
				idx = i
				break
			}
		}
		if idx < 0 {
			f.nextID++
			assessment.Answers = append(assessment.Answers, Answer{
				ID:           f.nextID,
				AssessmentID: assessment.ID,
				QuestionID:   write.QuestionID,
			})
			idx = len(assessment.Answers) - 1
		}
		answer := &assessment.Answers[idx]
		switch sub.Role {
		case RoleSelf:
			answer.ScoreByEmployee = score
		case RoleSupervisor:
			answer.ScoreBySupervisor = score
		default:
			answer.ScoreByManager = score
		}
		answer.TotalScore = CompositeScore(answer.ScoreByEmployee, answer.ScoreBySupervisor, answer.ScoreByManager)
	}

	if sub.HasComment {
		assessment.Comment = sub.Comment
	}
	assessment.AverageScore = SumTotalScores(assessment.Answers)

	copied := *assessment
	copied.Answers = append([]Answer(nil), assessment.Answers...)
	copied.Sentiment = f.sentimentOf[assessment.ID]
	return copied, nil
}

func (f *fakeStore) AssessmentByEmployeeAndForm(_ context.Context, employeeCode, formID int64) (SummaryAssessment, error) {
	for _, assessment := range f.assessments {
		if assessment.EmployeeCode == employeeCode && assessment.FormID == formID {
			copied := *assessment
			copied.Answers = append([]Answer(nil), assessment.Answers...)
			copied.Sentiment = f.sentimentOf[assessment.ID]
			return copied, nil
		}
	}
	return SummaryAssessment{}, errors.New("no rows")
}

func (f *fakeStore) UpdateSentiment(_ context.Context, assessmentID int64, sentiment string) error {
	f.sentimentOf[assessmentID] = sentiment
	return nil
}

type fakeClassifier struct {
	label string
	err   error
	calls int
}

func (f *fakeClassifier) Analyze(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.label, f.err
}

func seededStore() *fakeStore {
	store := newFakeStore()
	store.employees[1] = Employee{Code: 1, FullName: "An", DepartmentID: 10, AccountRole: AccountRoleEmployee}
	store.employees[2] = Employee{Code: 2, FullName: "Binh", DepartmentID: 10, AccountRole: AccountRoleManager}
	store.employees[3] = Employee{Code: 3, FullName: "Chi", DepartmentID: 20, AccountRole: AccountRoleEmployee}
	store.forms[1] = Form{ID: 1, Name: "H1 review", CycleID: 1, CriteriaIDs: []int64{1}}
	store.questions[1] = Question{ID: 1, Name: "Quality", MaxScore: 10, CriteriaID: 1}
	store.questions[2] = Question{ID: 2, Name: "Teamwork", MaxScore: 10, CriteriaID: 1}
	return store
}

func TestSubmitRejectsEmptyBatch(t *testing.T) {
	service := NewService(seededStore(), nil)
	_, err := service.Submit(context.Background(), SubmitRequest{EmployeeID: 1, FormID: 1, AssessorID: 1})
	if !errors.Is(err, ErrEmptyBatch) {
		t.Fatalf("expected ErrEmptyBatch, got %v", err)
	}
}

func TestSubmitRejectsUnknownReferences(t *testing.T) {
	store := seededStore()
	service := NewService(store, nil)
	items := []SubmitItem{{QuestionID: 1, EmployeeScore: 5}}

	if _, err := service.Submit(context.Background(), SubmitRequest{EmployeeID: 99, FormID: 1, AssessorID: 1, Items: items}); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
	if _, err := service.Submit(context.Background(), SubmitRequest{EmployeeID: 1, FormID: 99, AssessorID: 1, Items: items}); !errors.Is(err, ErrFormNotFound) {
		t.Fatalf("expected ErrFormNotFound, got %v", err)
	}
	if _, err := service.Submit(context.Background(), SubmitRequest{EmployeeID: 1, FormID: 1, AssessorID: 99, Items: items}); !errors.Is(err, ErrAssessorNotFound) {
		t.Fatalf("expected ErrAssessorNotFound, got %v", err)
	}
	if _, err := service.Submit(context.Background(), SubmitRequest{EmployeeID: 1, FormID: 1, AssessorID: 1, Items: []SubmitItem{{QuestionID: 99, EmployeeScore: 5}}}); !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
	if store.applyCalls != 0 {
		t.Fatalf("no submission should have been persisted, got %d", store.applyCalls)
	}
}

func TestSubmitRejectsScoreOverMax(t *testing.T) {
	store := seededStore()
	service := NewService(store, nil)

	// Any role field over max rejects the whole batch, even a field the
	// resolved role does not own.
	_, err := service.Submit(context.Background(), SubmitRequest{
		EmployeeID: 1, FormID: 1, AssessorID: 1,
		Items: []SubmitItem{
			{QuestionID: 1, EmployeeScore: 5},
			{QuestionID: 2, ManagerScore: 11},
		},
	})
	if !errors.Is(err, ErrScoreOutOfRange) {
		t.Fatalf("expected ErrScoreOutOfRange, got %v", err)
	}
	if store.applyCalls != 0 {
		t.Fatalf("batch must be rejected before any persistence, got %d calls", store.applyCalls)
	}
}

func TestSubmitRejectsPeerFromOtherDepartment(t *testing.T) {
	service := NewService(seededStore(), nil)
	_, err := service.Submit(context.Background(), SubmitRequest{
		EmployeeID: 1, FormID: 1, AssessorID: 3,
		Items: []SubmitItem{{QuestionID: 1, EmployeeScore: 5}},
	})
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestSubmitSelfWritesOnlyEmployeeScore(t *testing.T) {
	store := seededStore()
	service := NewService(store, nil)

	// The caller supplies all three fields; only the SELF field may land.
	result, err := service.Submit(context.Background(), SubmitRequest{
		EmployeeID: 1, FormID: 1, AssessorID: 1,
		Items: []SubmitItem{{QuestionID: 1, EmployeeScore: 6, SupervisorScore: 9, ManagerScore: 9}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Answers) != 1 {
		t.Fatalf("expected one answer, got %d", len(result.Answers))
	}
	answer := result.Answers[0]
	if answer.ScoreByEmployee != 6 || answer.ScoreBySupervisor != 0 || answer.ScoreByManager != 0 {
		t.Fatalf("self submission leaked into other role fields: %+v", answer)
	}
	if answer.TotalScore != 6 {
		t.Fatalf("expected composite 6, got %d", answer.TotalScore)
	}
	if result.State != StateSelfAssessed {
		t.Fatalf("expected SELF_ASSESSED, got %s", result.State)
	}
}

func TestSubmitResubmissionOverwrites(t *testing.T) {
	store := seededStore()
	service := NewService(store, nil)

	req := SubmitRequest{
		EmployeeID: 1, FormID: 1, AssessorID: 1,
		Items: []SubmitItem{{QuestionID: 1, EmployeeScore: 4}},
	}
	if _, err := service.Submit(context.Background(), req); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	req.Items[0].EmployeeScore = 8
	result, err := service.Submit(context.Background(), req)
	if err != nil {
		t.Fatalf("second submit failed: %v", err)
	}
	if len(result.Answers) != 1 {
		t.Fatalf("resubmission must upsert, got %d answers", len(result.Answers))
	}
	if result.Answers[0].ScoreByEmployee != 8 {
		t.Fatalf("expected overwrite to 8, got %d", result.Answers[0].ScoreByEmployee)
	}
	if len(store.assessments) != 1 {
		t.Fatalf("expected a single summary assessment, got %d", len(store.assessments))
	}
}

func TestSubmitAccumulatesAverageScoreAsSum(t *testing.T) {
	store := seededStore()
	service := NewService(store, nil)

	result, err := service.Submit(context.Background(), SubmitRequest{
		EmployeeID: 1, FormID: 1, AssessorID: 1,
		Items: []SubmitItem{
			{QuestionID: 1, EmployeeScore: 4},
			{QuestionID: 2, EmployeeScore: 6},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AverageScore != 10 {
		t.Fatalf("averageScore accumulates composites: want 10, got %v", result.AverageScore)
	}
}

func TestSubmitRolesInterleaveToCompleted(t *testing.T) {
	store := seededStore()
	service := NewService(store, nil)

	if _, err := service.Submit(context.Background(), SubmitRequest{
		EmployeeID: 1, FormID: 1, AssessorID: 1,
		Items: []SubmitItem{{QuestionID: 1, EmployeeScore: 4}},
	}); err != nil {
		t.Fatalf("self submit failed: %v", err)
	}

	// Manager submits without any supervisor review; manager presence
	// alone completes the assessment.
	result, err := service.Submit(context.Background(), SubmitRequest{
		EmployeeID: 1, FormID: 1, AssessorID: 2,
		Items: []SubmitItem{{QuestionID: 1, ManagerScore: 8}},
	})
	if err != nil {
		t.Fatalf("manager submit failed: %v", err)
	}
	if result.State != StateCompleted {
		t.Fatalf("expected COMPLETED, got %s", result.State)
	}
	if result.Answers[0].TotalScore != 6 {
		t.Fatalf("expected two-role mean 6, got %d", result.Answers[0].TotalScore)
	}
}

func TestSubmitStoresCommentAndSentiment(t *testing.T) {
	store := seededStore()
	classifier := &fakeClassifier{label: "Tốt"}
	service := NewService(store, classifier)

	result, err := service.Submit(context.Background(), SubmitRequest{
		EmployeeID: 1, FormID: 1, AssessorID: 1,
		Comment: "consistent quality all quarter",
		Items:   []SubmitItem{{QuestionID: 1, EmployeeScore: 7}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Comment != "consistent quality all quarter" {
		t.Fatalf("comment not stored: %q", result.Comment)
	}
	if result.Sentiment != "Tốt" {
		t.Fatalf("expected sentiment label, got %q", result.Sentiment)
	}
	if classifier.calls != 1 {
		t.Fatalf("classifier called %d times, want 1", classifier.calls)
	}
}

func TestSubmitSurvivesClassifierFailure(t *testing.T) {
	store := seededStore()
	classifier := &fakeClassifier{err: errors.New("connection refused")}
	service := NewService(store, classifier)

	result, err := service.Submit(context.Background(), SubmitRequest{
		EmployeeID: 1, FormID: 1, AssessorID: 1,
		Comment: "solid work",
		Items:   []SubmitItem{{QuestionID: 1, EmployeeScore: 7}},
	})
	if err != nil {
		t.Fatalf("classifier failure must not fail the submission: %v", err)
	}
	if result.AverageScore != 7 {
		t.Fatalf("score must be persisted despite classifier failure, got %v", result.AverageScore)
	}
	if result.Sentiment != "" {
		t.Fatalf("expected no sentiment label, got %q", result.Sentiment)
	}

	// Still queryable afterwards.
	stored, err := service.Get(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("get after classifier failure: %v", err)
	}
	if stored.AverageScore != 7 || stored.Sentiment != "" {
		t.Fatalf("unexpected stored assessment: %+v", stored)
	}
}

func TestGetDerivesStateAndValidatesReferences(t *testing.T) {
	store := seededStore()
	service := NewService(store, nil)

	if _, err := service.Get(context.Background(), 1, 99); !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
	if _, err := service.Get(context.Background(), 99, 1); !errors.Is(err, ErrFormNotFound) {
		t.Fatalf("expected ErrFormNotFound, got %v", err)
	}
	if _, err := service.Get(context.Background(), 1, 1); !errors.Is(err, ErrAssessmentNotFound) {
		t.Fatalf("expected ErrAssessmentNotFound, got %v", err)
	}

	if _, err := service.Submit(context.Background(), SubmitRequest{
		EmployeeID: 1, FormID: 1, AssessorID: 2,
		Items: []SubmitItem{{QuestionID: 1, ManagerScore: 9}},
	}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	assessment, err := service.Get(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if assessment.State != StateCompleted {
		t.Fatalf("expected COMPLETED, got %s", assessment.State)
	}
}
