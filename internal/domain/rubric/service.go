package rubric

import (
	"context"
	"strings"
)

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func (s *Service) ListCriteria(ctx context.Context) ([]Criteria, error) {
	return s.Store.ListCriteria(ctx)
}

func (s *Service) CreateCriteria(ctx context.Context, name string) (int64, error) {
	return s.Store.CreateCriteria(ctx, strings.TrimSpace(name))
}

func (s *Service) DeleteCriteria(ctx context.Context, id int64) error {
	return s.Store.DeleteCriteria(ctx, id)
}

func (s *Service) CreateQuestion(ctx context.Context, name string, maxScore, criteriaID int64) (int64, error) {
	if maxScore <= 0 {
		return 0, ErrInvalidMaxScore
	}
	return s.Store.CreateQuestion(ctx, strings.TrimSpace(name), maxScore, criteriaID)
}

func (s *Service) DeleteQuestion(ctx context.Context, id int64) error {
	return s.Store.DeleteQuestion(ctx, id)
}

func (s *Service) ListCycles(ctx context.Context) ([]Cycle, error) {
	return s.Store.ListCycles(ctx)
}

func (s *Service) CycleByID(ctx context.Context, id int64) (Cycle, error) {
	return s.Store.CycleByID(ctx, id)
}

func (s *Service) CreateCycle(ctx context.Context, cycle Cycle) (int64, error) {
	if cycle.EndDate.Before(cycle.StartDate) {
		return 0, ErrInvalidCycleDates
	}
	if cycle.Status == "" {
		cycle.Status = CycleStatusDraft
	}
	if !validCycleStatus(cycle.Status) {
		return 0, ErrInvalidCycleStatus
	}
	return s.Store.CreateCycle(ctx, cycle)
}

func (s *Service) UpdateCycleStatus(ctx context.Context, id int64, status string) error {
	if !validCycleStatus(status) {
		return ErrInvalidCycleStatus
	}
	return s.Store.UpdateCycleStatus(ctx, id, status)
}

func validCycleStatus(status string) bool {
	switch status {
	case CycleStatusDraft, CycleStatusActive, CycleStatusClosed:
		return true
	}
	return false
}

func (s *Service) ListForms(ctx context.Context) ([]Form, error) {
	return s.Store.ListForms(ctx)
}

func (s *Service) FormByID(ctx context.Context, id int64) (Form, error) {
	return s.Store.FormByID(ctx, id)
}

// CreateForm enforces the invariant that a form references at least one
// criteria at creation time.
func (s *Service) CreateForm(ctx context.Context, name string, cycleID int64, criteriaIDs []int64) (int64, error) {
	if len(criteriaIDs) == 0 {
		return 0, ErrFormWithoutCrit
	}
	return s.Store.CreateForm(ctx, strings.TrimSpace(name), cycleID, criteriaIDs)
}

func (s *Service) DeleteForm(ctx context.Context, id int64) error {
	return s.Store.DeleteForm(ctx, id)
}
