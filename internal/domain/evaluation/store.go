package evaluation

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) EmployeeByCode(ctx context.Context, code int64) (Employee, error) {
	var employee Employee
	err := s.DB.QueryRow(ctx, `
		SELECT e.code, e.full_name, e.position, e.department_id, d.department_name, a.role
		FROM employees e
		JOIN departments d ON d.department_id = e.department_id
		JOIN accounts a ON a.id = e.account_id
		WHERE e.code = $1
	`, code).Scan(
		&employee.Code,
		&employee.FullName,
		&employee.Position,
		&employee.DepartmentID,
		&employee.DepartmentName,
		&employee.AccountRole,
	)
	if err != nil {
		return Employee{}, err
	}
	return employee, nil
}

func (s *Store) FormByID(ctx context.Context, formID int64) (Form, error) {
	var form Form
	err := s.DB.QueryRow(ctx, `
		SELECT f.form_id, f.form_name, f.cycle_id,
		       COALESCE(array_agg(fc.criteria_id) FILTER (WHERE fc.criteria_id IS NOT NULL), '{}')
		FROM criteria_forms f
		LEFT JOIN criteria_form_criteria fc ON fc.form_id = f.form_id
		WHERE f.form_id = $1
		GROUP BY f.form_id, f.form_name, f.cycle_id
	`, formID).Scan(&form.ID, &form.Name, &form.CycleID, &form.CriteriaIDs)
	if err != nil {
		return Form{}, err
	}
	return form, nil
}

func (s *Store) QuestionByID(ctx context.Context, questionID int64) (Question, error) {
	var question Question
	err := s.DB.QueryRow(ctx, `
		SELECT question_id, question_name, max_score, criteria_id
		FROM evaluation_questions
		WHERE question_id = $1
	`, questionID).Scan(&question.ID, &question.Name, &question.MaxScore, &question.CriteriaID)
	if err != nil {
		return Question{}, err
	}
	return question, nil
}

// scoreColumn maps a role to the answer column it owns. Roles are a closed
// set, so interpolating the column name is safe.
func scoreColumn(role Role) string {
	switch role {
	case RoleSelf:
		return "score_by_employee"
	case RoleSupervisor:
		return "score_by_supervisor"
	default:
		return "score_by_manager"
	}
}

// ApplySubmission persists one validated batch in a single transaction.
// The upsert on (employee_code, form_id) takes a row lock on the summary
// assessment, so concurrent submissions for the same pair serialize and
// the accumulated average_score never loses an update.
func (s *Store) ApplySubmission(ctx context.Context, sub Submission) (SummaryAssessment, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return SummaryAssessment{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var assessmentID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO summary_assessments (employee_code, form_id)
		VALUES ($1, $2)
		ON CONFLICT (employee_code, form_id)
		DO UPDATE SET updated_at = now()
		RETURNING summary_assessment_id
	`, sub.EmployeeCode, sub.FormID).Scan(&assessmentID)
	if err != nil {
		return SummaryAssessment{}, err
	}

	column := scoreColumn(sub.Role)
	for _, write := range sub.Writes {
		score := write.Score
		if score < 0 {
			score = 0
		}

		var employee, supervisor, manager int64
		var answerID int64
		// Upsert by natural key: resubmitting the same role's score for
		// the same question overwrites the existing row.
		err = tx.QueryRow(ctx, fmt.Sprintf(`
			INSERT INTO evaluation_answers (summary_assessment_id, question_id, %s)
			VALUES ($1, $2, $3)
			ON CONFLICT (summary_assessment_id, question_id)
			DO UPDATE SET %s = EXCLUDED.%s
			RETURNING evaluation_answer_id, score_by_employee, score_by_supervisor, score_by_manager
		`, column, column, column), assessmentID, write.QuestionID, score).
			Scan(&answerID, &employee, &supervisor, &manager)
		if err != nil {
			return SummaryAssessment{}, err
		}

		total := CompositeScore(employee, supervisor, manager)
		if _, err := tx.Exec(ctx, `
			UPDATE evaluation_answers SET total_score = $1 WHERE evaluation_answer_id = $2
		`, total, answerID); err != nil {
			return SummaryAssessment{}, err
		}
	}

	if sub.HasComment {
		if _, err := tx.Exec(ctx, `
			UPDATE summary_assessments SET comment = $1 WHERE summary_assessment_id = $2
		`, sub.Comment, assessmentID); err != nil {
			return SummaryAssessment{}, err
		}
	}

	// average_score accumulates the answers' composite scores.
	if _, err := tx.Exec(ctx, `
		UPDATE summary_assessments
		SET average_score = (
			SELECT COALESCE(SUM(total_score), 0)
			FROM evaluation_answers
			WHERE summary_assessment_id = $1
		), updated_at = now()
		WHERE summary_assessment_id = $1
	`, assessmentID); err != nil {
		return SummaryAssessment{}, err
	}

	assessment, err := loadAssessment(ctx, tx, assessmentID)
	if err != nil {
		return SummaryAssessment{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return SummaryAssessment{}, err
	}
	return assessment, nil
}

func (s *Store) AssessmentByEmployeeAndForm(ctx context.Context, employeeCode, formID int64) (SummaryAssessment, error) {
	var assessmentID int64
	err := s.DB.QueryRow(ctx, `
		SELECT summary_assessment_id
		FROM summary_assessments
		WHERE employee_code = $1 AND form_id = $2
	`, employeeCode, formID).Scan(&assessmentID)
	if err != nil {
		return SummaryAssessment{}, err
	}
	return loadAssessment(ctx, s.DB, assessmentID)
}

func (s *Store) UpdateSentiment(ctx context.Context, assessmentID int64, sentiment string) error {
	_, err := s.DB.Exec(ctx, `
		UPDATE summary_assessments SET sentiment = $1, updated_at = now()
		WHERE summary_assessment_id = $2
	`, sentiment, assessmentID)
	return err
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func loadAssessment(ctx context.Context, q querier, assessmentID int64) (SummaryAssessment, error) {
	var assessment SummaryAssessment
	err := q.QueryRow(ctx, `
		SELECT summary_assessment_id, employee_code, form_id, comment, average_score, sentiment
		FROM summary_assessments
		WHERE summary_assessment_id = $1
	`, assessmentID).Scan(
		&assessment.ID,
		&assessment.EmployeeCode,
		&assessment.FormID,
		&assessment.Comment,
		&assessment.AverageScore,
		&assessment.Sentiment,
	)
	if err != nil {
		return SummaryAssessment{}, err
	}

	rows, err := q.Query(ctx, `
		SELECT evaluation_answer_id, summary_assessment_id, question_id,
		       score_by_employee, score_by_supervisor, score_by_manager, total_score
		FROM evaluation_answers
		WHERE summary_assessment_id = $1
		ORDER BY evaluation_answer_id
	`, assessmentID)
	if err != nil {
		return SummaryAssessment{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var answer Answer
		if err := rows.Scan(
			&answer.ID,
			&answer.AssessmentID,
			&answer.QuestionID,
			&answer.ScoreByEmployee,
			&answer.ScoreBySupervisor,
			&answer.ScoreByManager,
			&answer.TotalScore,
		); err != nil {
			return SummaryAssessment{}, err
		}
		assessment.Answers = append(assessment.Answers, answer)
	}
	if err := rows.Err(); err != nil {
		return SummaryAssessment{}, err
	}
	return assessment, nil
}
