package evaluationhandler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"assessment/internal/auth"
	"assessment/internal/domain/evaluation"
	"assessment/internal/transport/http/middleware"
)

const testSecret = "test-secret"

type stubStore struct {
	employees   map[int64]evaluation.Employee
	forms       map[int64]evaluation.Form
	questions   map[int64]evaluation.Question
	applied     *evaluation.Submission
	applyResult evaluation.SummaryAssessment
}

func (s *stubStore) EmployeeByCode(_ context.Context, code int64) (evaluation.Employee, error) {
	employee, ok := s.employees[code]
	if !ok {
		return evaluation.Employee{}, evaluation.ErrEmployeeNotFound
	}
	return employee, nil
}

func (s *stubStore) FormByID(_ context.Context, formID int64) (evaluation.Form, error) {
	form, ok := s.forms[formID]
	if !ok {
		return evaluation.Form{}, evaluation.ErrFormNotFound
	}
	return form, nil
}

func (s *stubStore) QuestionByID(_ context.Context, questionID int64) (evaluation.Question, error) {
	question, ok := s.questions[questionID]
	if !ok {
		return evaluation.Question{}, evaluation.ErrQuestionNotFound
	}
	return question, nil
}

func (s *stubStore) ApplySubmission(_ context.Context, sub evaluation.Submission) (evaluation.SummaryAssessment, error) {
	s.applied = &sub
	return s.applyResult, nil
}

func (s *stubStore) AssessmentByEmployeeAndForm(_ context.Context, employeeCode, formID int64) (evaluation.SummaryAssessment, error) {
	if s.applied == nil {
		return evaluation.SummaryAssessment{}, evaluation.ErrAssessmentNotFound
	}
	return s.applyResult, nil
}

func (s *stubStore) UpdateSentiment(_ context.Context, assessmentID int64, sentiment string) error {
	return nil
}

func newTestServer(t *testing.T, store *stubStore) *httptest.Server {
	t.Helper()
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Auth(testSecret))
	router.Route("/api/v1", func(r chi.Router) {
		NewHandler(evaluation.NewService(store, nil)).RegisterRoutes(r)
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func tokenFor(t *testing.T, employeeCode int64, role string) string {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, auth.Claims{
		AccountID:    1,
		EmployeeCode: employeeCode,
		Username:     "tester",
		Role:         role,
	}, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func defaultStore() *stubStore {
	return &stubStore{
		employees: map[int64]evaluation.Employee{
			10: {Code: 10, FullName: "Alice", DepartmentID: 1, AccountRole: "EMPLOYEE"},
			20: {Code: 20, FullName: "Boris", DepartmentID: 1, AccountRole: "MANAGER"},
		},
		forms:     map[int64]evaluation.Form{5: {ID: 5, Name: "Quarterly", CycleID: 1}},
		questions: map[int64]evaluation.Question{100: {ID: 100, Name: "Quality", MaxScore: 10, CriteriaID: 1}},
		applyResult: evaluation.SummaryAssessment{
			ID:           1,
			EmployeeCode: 10,
			FormID:       5,
			AverageScore: 6,
			Answers:      []evaluation.Answer{{QuestionID: 100, ScoreByEmployee: 6, TotalScore: 6}},
		},
	}
}

func TestSubmitRequiresAuth(t *testing.T) {
	server := newTestServer(t, defaultStore())

	resp, err := http.Post(server.URL+"/api/v1/evaluations", "application/json",
		strings.NewReader(`{"employeeId":10,"formId":5,"items":[{"questionId":100,"employeeScore":6}]}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestSubmitSelfAssessment(t *testing.T) {
	store := defaultStore()
	server := newTestServer(t, store)

	req, _ := http.NewRequest(http.MethodPost, server.URL+"/api/v1/evaluations",
		strings.NewReader(`{"employeeId":10,"formId":5,"items":[{"questionId":100,"employeeScore":6}]}`))
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, 10, "EMPLOYEE"))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if store.applied == nil {
		t.Fatal("expected submission persisted")
	}
	if store.applied.Role != evaluation.RoleSelf {
		t.Fatalf("expected SELF submission, got %s", store.applied.Role)
	}

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			State string `json:"state"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success {
		t.Fatal("expected success envelope")
	}
	if body.Data.State != evaluation.StateSelfAssessed {
		t.Fatalf("expected state %s, got %s", evaluation.StateSelfAssessed, body.Data.State)
	}
}

func TestSubmitAssessorMismatchRejected(t *testing.T) {
	server := newTestServer(t, defaultStore())

	req, _ := http.NewRequest(http.MethodPost, server.URL+"/api/v1/evaluations",
		strings.NewReader(`{"employeeId":10,"formId":5,"assessorId":20,"items":[{"questionId":100,"employeeScore":6}]}`))
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, 10, "EMPLOYEE"))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestSubmitUnknownFormMapsTo404(t *testing.T) {
	server := newTestServer(t, defaultStore())

	req, _ := http.NewRequest(http.MethodPost, server.URL+"/api/v1/evaluations",
		strings.NewReader(`{"employeeId":10,"formId":99,"items":[{"questionId":100,"employeeScore":6}]}`))
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, 10, "EMPLOYEE"))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "form_not_found" {
		t.Fatalf("expected form_not_found, got %q", body.Error.Code)
	}
}

func TestSubmitScoreOverMaxMapsTo400(t *testing.T) {
	server := newTestServer(t, defaultStore())

	req, _ := http.NewRequest(http.MethodPost, server.URL+"/api/v1/evaluations",
		strings.NewReader(`{"employeeId":10,"formId":5,"items":[{"questionId":100,"employeeScore":11}]}`))
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, 10, "EMPLOYEE"))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGetRequiresBothQueryParams(t *testing.T) {
	server := newTestServer(t, defaultStore())

	req, _ := http.NewRequest(http.MethodGet, server.URL+"/api/v1/evaluations?formId=5", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, 10, "EMPLOYEE"))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
