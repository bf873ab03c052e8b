package statistics

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"assessment/internal/domain/evaluation"
)

var ErrCycleNotFound = errors.New("evaluation cycle not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) OverviewCounts(ctx context.Context, excellentLabel string) (Overview, error) {
	var overview Overview
	err := s.DB.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(1) FROM employees),
			(SELECT COUNT(DISTINCT employee_code) FROM summary_assessments),
			(SELECT COALESCE(AVG(average_score), 0) FROM summary_assessments),
			(SELECT COUNT(DISTINCT employee_code) FROM summary_assessments WHERE sentiment = $1)
	`, excellentLabel).Scan(
		&overview.TotalEmployees,
		&overview.EvaluatedEmployees,
		&overview.AverageScore,
		&overview.ExcellentEmployees,
	)
	return overview, err
}

func (s *Store) TopAssessments(ctx context.Context, limit int) ([]TopEmployee, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT e.code, e.full_name, e.position, d.department_name, sa.sentiment, sa.average_score
		FROM summary_assessments sa
		JOIN employees e ON e.code = sa.employee_code
		JOIN departments d ON d.department_id = e.department_id
		ORDER BY sa.average_score DESC, e.code
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var top []TopEmployee
	for rows.Next() {
		var entry TopEmployee
		if err := rows.Scan(
			&entry.EmployeeCode,
			&entry.FullName,
			&entry.Position,
			&entry.DepartmentName,
			&entry.Sentiment,
			&entry.AverageScore,
		); err != nil {
			return nil, err
		}
		top = append(top, entry)
	}
	return top, rows.Err()
}

func (s *Store) CycleExists(ctx context.Context, cycleID int64) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx,
		"SELECT COUNT(1) FROM evaluation_cycles WHERE cycle_id = $1", cycleID).Scan(&count)
	return count > 0, err
}

// CriteriaTotalsForCycle groups answers by their question's criteria,
// scoped to forms of the given cycle, and sums composite scores.
func (s *Store) CriteriaTotalsForCycle(ctx context.Context, cycleID int64) ([]CriteriaTotal, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT c.criteria_id, c.criteria_name, COALESCE(SUM(ea.total_score), 0)
		FROM evaluation_answers ea
		JOIN summary_assessments sa ON sa.summary_assessment_id = ea.summary_assessment_id
		JOIN criteria_forms f ON f.form_id = sa.form_id
		JOIN evaluation_questions q ON q.question_id = ea.question_id
		JOIN evaluation_criteria c ON c.criteria_id = q.criteria_id
		WHERE f.cycle_id = $1
		GROUP BY c.criteria_id, c.criteria_name
		ORDER BY c.criteria_name
	`, cycleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []CriteriaTotal
	for rows.Next() {
		var total CriteriaTotal
		if err := rows.Scan(&total.CriteriaID, &total.CriteriaName, &total.TotalScore); err != nil {
			return nil, err
		}
		totals = append(totals, total)
	}
	return totals, rows.Err()
}

// CriteriaTotalsForEmployee returns the per-criteria composite sum for one
// employee alongside the criteria's total possible score, for caller-side
// normalization.
func (s *Store) CriteriaTotalsForEmployee(ctx context.Context, employeeCode int64) ([]CriteriaTotal, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT c.criteria_id, c.criteria_name,
		       COALESCE(SUM(ea.total_score), 0),
		       COALESCE(SUM(q.max_score), 0)
		FROM evaluation_answers ea
		JOIN summary_assessments sa ON sa.summary_assessment_id = ea.summary_assessment_id
		JOIN evaluation_questions q ON q.question_id = ea.question_id
		JOIN evaluation_criteria c ON c.criteria_id = q.criteria_id
		WHERE sa.employee_code = $1
		GROUP BY c.criteria_id, c.criteria_name
		ORDER BY c.criteria_name
	`, employeeCode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []CriteriaTotal
	for rows.Next() {
		var total CriteriaTotal
		if err := rows.Scan(&total.CriteriaID, &total.CriteriaName, &total.TotalScore, &total.MaxScore); err != nil {
			return nil, err
		}
		totals = append(totals, total)
	}
	return totals, rows.Err()
}

func (s *Store) EvaluatedEmployees(ctx context.Context) ([]EvaluatedEmployee, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT DISTINCT e.code, e.full_name
		FROM summary_assessments sa
		JOIN employees e ON e.code = sa.employee_code
		ORDER BY e.code
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []EvaluatedEmployee
	for rows.Next() {
		var employee EvaluatedEmployee
		if err := rows.Scan(&employee.EmployeeCode, &employee.FullName); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, rows.Err()
}

// History lists assessments with directory and rubric metadata. The
// workflow state is derived per row from which roles have scored, never
// read from a stored column.
func (s *Store) History(ctx context.Context, filter HistoryFilter) ([]HistoryEntry, error) {
	query := `
		SELECT sa.summary_assessment_id, sa.employee_code, e.full_name, d.department_name,
		       sa.form_id, f.form_name, f.cycle_id,
		       sa.comment, sa.sentiment, sa.average_score, sa.updated_at,
		       COALESCE(MAX(ea.score_by_employee), 0),
		       COALESCE(MAX(ea.score_by_supervisor), 0),
		       COALESCE(MAX(ea.score_by_manager), 0)
		FROM summary_assessments sa
		JOIN employees e ON e.code = sa.employee_code
		JOIN departments d ON d.department_id = e.department_id
		JOIN criteria_forms f ON f.form_id = sa.form_id
		LEFT JOIN evaluation_answers ea ON ea.summary_assessment_id = sa.summary_assessment_id
	`
	var where []string
	var args []any
	if filter.EmployeeCode > 0 {
		args = append(args, filter.EmployeeCode)
		where = append(where, "sa.employee_code = $1")
	}
	if filter.CycleID > 0 {
		args = append(args, filter.CycleID)
		if len(args) == 1 {
			where = append(where, "f.cycle_id = $1")
		} else {
			where = append(where, "f.cycle_id = $2")
		}
	}
	for i, clause := range where {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += `
		GROUP BY sa.summary_assessment_id, sa.employee_code, e.full_name, d.department_name,
		         sa.form_id, f.form_name, f.cycle_id, sa.comment, sa.sentiment,
		         sa.average_score, sa.updated_at
		ORDER BY sa.updated_at DESC
	`

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var entry HistoryEntry
		var maxEmployee, maxSupervisor, maxManager int64
		if err := rows.Scan(
			&entry.AssessmentID,
			&entry.EmployeeCode,
			&entry.EmployeeName,
			&entry.DepartmentName,
			&entry.FormID,
			&entry.FormName,
			&entry.CycleID,
			&entry.Comment,
			&entry.Sentiment,
			&entry.AverageScore,
			&entry.UpdatedAt,
			&maxEmployee,
			&maxSupervisor,
			&maxManager,
		); err != nil {
			return nil, err
		}
		entry.State = evaluation.DeriveState([]evaluation.Answer{{
			ScoreByEmployee:   maxEmployee,
			ScoreBySupervisor: maxSupervisor,
			ScoreByManager:    maxManager,
		}})
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
