package statistics

import (
	"context"
	"math"

	"assessment/internal/domain/evaluation"
)

// Service runs read-side batch reducers over persisted assessments. It
// never mutates scoring data.
type Service struct {
	Store          *Store
	ExcellentLabel string
	TopN           int
}

func NewService(store *Store, excellentLabel string, topN int) *Service {
	return &Service{Store: store, ExcellentLabel: excellentLabel, TopN: topN}
}

func (s *Service) Overview(ctx context.Context) (Overview, error) {
	overview, err := s.Store.OverviewCounts(ctx, s.ExcellentLabel)
	if err != nil {
		return Overview{}, err
	}
	overview.AverageScore = round1(overview.AverageScore)
	return overview, nil
}

func (s *Service) TopEmployees(ctx context.Context) ([]TopEmployee, error) {
	top, err := s.Store.TopAssessments(ctx, s.TopN)
	if err != nil {
		return nil, err
	}
	return rankTop(top), nil
}

func (s *Service) CriteriaTotalsForCycle(ctx context.Context, cycleID int64) ([]CriteriaTotal, error) {
	exists, err := s.Store.CycleExists(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCycleNotFound
	}
	return s.Store.CriteriaTotalsForCycle(ctx, cycleID)
}

func (s *Service) CriteriaTotalsForEmployee(ctx context.Context, employeeCode int64) ([]CriteriaTotal, error) {
	return s.Store.CriteriaTotalsForEmployee(ctx, employeeCode)
}

func (s *Service) EvaluatedEmployees(ctx context.Context) ([]EvaluatedEmployee, error) {
	return s.Store.EvaluatedEmployees(ctx)
}

func (s *Service) History(ctx context.Context, filter HistoryFilter) ([]HistoryEntry, error) {
	return s.Store.History(ctx, filter)
}

func (s *Service) CycleStats(ctx context.Context, cycleID int64) (CycleStats, error) {
	exists, err := s.Store.CycleExists(ctx, cycleID)
	if err != nil {
		return CycleStats{}, err
	}
	if !exists {
		return CycleStats{}, ErrCycleNotFound
	}
	entries, err := s.Store.History(ctx, HistoryFilter{CycleID: cycleID})
	if err != nil {
		return CycleStats{}, err
	}
	return buildCycleStats(cycleID, entries), nil
}

// rankTop assigns dense 1-based ranks; rows arrive pre-sorted by score.
func rankTop(top []TopEmployee) []TopEmployee {
	for i := range top {
		top[i].Rank = i + 1
		top[i].AverageScore = round1(top[i].AverageScore)
	}
	return top
}

func buildCycleStats(cycleID int64, entries []HistoryEntry) CycleStats {
	stats := CycleStats{CycleID: cycleID, TotalEvaluations: len(entries)}
	var sum float64
	for _, entry := range entries {
		if entry.State == evaluation.StateCompleted {
			stats.CompletedEvaluations++
		}
		sum += entry.AverageScore
	}
	if len(entries) > 0 {
		stats.AverageScore = round1(sum / float64(len(entries)))
	}
	return stats
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}
