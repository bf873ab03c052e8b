package rubric

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) ListCriteria(ctx context.Context) ([]Criteria, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT criteria_id, criteria_name FROM evaluation_criteria ORDER BY criteria_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []Criteria
	index := map[int64]int{}
	for rows.Next() {
		var criteria Criteria
		if err := rows.Scan(&criteria.ID, &criteria.Name); err != nil {
			return nil, err
		}
		index[criteria.ID] = len(list)
		list = append(list, criteria)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	questionRows, err := s.DB.Query(ctx, `
		SELECT question_id, question_name, max_score, criteria_id
		FROM evaluation_questions ORDER BY question_id
	`)
	if err != nil {
		return nil, err
	}
	defer questionRows.Close()

	for questionRows.Next() {
		var question Question
		if err := questionRows.Scan(&question.ID, &question.Name, &question.MaxScore, &question.CriteriaID); err != nil {
			return nil, err
		}
		if i, ok := index[question.CriteriaID]; ok {
			list[i].Questions = append(list[i].Questions, question)
		}
	}
	return list, questionRows.Err()
}

func (s *Store) CreateCriteria(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx,
		"INSERT INTO evaluation_criteria (criteria_name) VALUES ($1) RETURNING criteria_id", name).Scan(&id)
	return id, err
}

func (s *Store) DeleteCriteria(ctx context.Context, id int64) error {
	var used int
	if err := s.DB.QueryRow(ctx,
		"SELECT COUNT(1) FROM criteria_form_criteria WHERE criteria_id = $1", id).Scan(&used); err != nil {
		return err
	}
	if used > 0 {
		return ErrCriteriaInUse
	}

	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "DELETE FROM evaluation_questions WHERE criteria_id = $1", id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, "DELETE FROM evaluation_criteria WHERE criteria_id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCriteriaNotFound
	}
	return tx.Commit(ctx)
}

func (s *Store) CreateQuestion(ctx context.Context, name string, maxScore, criteriaID int64) (int64, error) {
	var exists int
	if err := s.DB.QueryRow(ctx,
		"SELECT COUNT(1) FROM evaluation_criteria WHERE criteria_id = $1", criteriaID).Scan(&exists); err != nil {
		return 0, err
	}
	if exists == 0 {
		return 0, ErrCriteriaNotFound
	}

	var id int64
	err := s.DB.QueryRow(ctx, `
		INSERT INTO evaluation_questions (question_name, max_score, criteria_id)
		VALUES ($1, $2, $3) RETURNING question_id
	`, name, maxScore, criteriaID).Scan(&id)
	return id, err
}

func (s *Store) DeleteQuestion(ctx context.Context, id int64) error {
	var answered int
	if err := s.DB.QueryRow(ctx,
		"SELECT COUNT(1) FROM evaluation_answers WHERE question_id = $1", id).Scan(&answered); err != nil {
		return err
	}
	if answered > 0 {
		return ErrQuestionAnswered
	}

	tag, err := s.DB.Exec(ctx, "DELETE FROM evaluation_questions WHERE question_id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

func (s *Store) ListCycles(ctx context.Context) ([]Cycle, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT cycle_id, COALESCE(department_id, 0), start_date, end_date, status
		FROM evaluation_cycles ORDER BY start_date DESC, cycle_id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cycles []Cycle
	for rows.Next() {
		var cycle Cycle
		if err := rows.Scan(&cycle.ID, &cycle.DepartmentID, &cycle.StartDate, &cycle.EndDate, &cycle.Status); err != nil {
			return nil, err
		}
		cycles = append(cycles, cycle)
	}
	return cycles, rows.Err()
}

func (s *Store) CycleByID(ctx context.Context, id int64) (Cycle, error) {
	var cycle Cycle
	err := s.DB.QueryRow(ctx, `
		SELECT cycle_id, COALESCE(department_id, 0), start_date, end_date, status
		FROM evaluation_cycles WHERE cycle_id = $1
	`, id).Scan(&cycle.ID, &cycle.DepartmentID, &cycle.StartDate, &cycle.EndDate, &cycle.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return Cycle{}, ErrCycleNotFound
	}
	return cycle, err
}

func (s *Store) CreateCycle(ctx context.Context, cycle Cycle) (int64, error) {
	var departmentID any
	if cycle.DepartmentID > 0 {
		departmentID = cycle.DepartmentID
	}
	var id int64
	err := s.DB.QueryRow(ctx, `
		INSERT INTO evaluation_cycles (department_id, start_date, end_date, status)
		VALUES ($1, $2, $3, $4) RETURNING cycle_id
	`, departmentID, cycle.StartDate, cycle.EndDate, cycle.Status).Scan(&id)
	return id, err
}

func (s *Store) UpdateCycleStatus(ctx context.Context, id int64, status string) error {
	tag, err := s.DB.Exec(ctx,
		"UPDATE evaluation_cycles SET status = $1 WHERE cycle_id = $2", status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCycleNotFound
	}
	return nil
}

func (s *Store) ListForms(ctx context.Context) ([]Form, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT form_id, form_name, cycle_id FROM criteria_forms ORDER BY form_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var forms []Form
	for rows.Next() {
		var form Form
		if err := rows.Scan(&form.ID, &form.Name, &form.CycleID); err != nil {
			return nil, err
		}
		forms = append(forms, form)
	}
	return forms, rows.Err()
}

func (s *Store) FormByID(ctx context.Context, id int64) (Form, error) {
	var form Form
	err := s.DB.QueryRow(ctx,
		"SELECT form_id, form_name, cycle_id FROM criteria_forms WHERE form_id = $1", id).
		Scan(&form.ID, &form.Name, &form.CycleID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Form{}, ErrFormNotFound
	}
	if err != nil {
		return Form{}, err
	}

	rows, err := s.DB.Query(ctx, `
		SELECT c.criteria_id, c.criteria_name,
		       q.question_id, q.question_name, q.max_score
		FROM criteria_form_criteria fc
		JOIN evaluation_criteria c ON c.criteria_id = fc.criteria_id
		LEFT JOIN evaluation_questions q ON q.criteria_id = c.criteria_id
		WHERE fc.form_id = $1
		ORDER BY c.criteria_id, q.question_id
	`, id)
	if err != nil {
		return Form{}, err
	}
	defer rows.Close()

	index := map[int64]int{}
	for rows.Next() {
		var (
			criteriaID   int64
			criteriaName string
			questionID   *int64
			questionName *string
			maxScore     *int64
		)
		if err := rows.Scan(&criteriaID, &criteriaName, &questionID, &questionName, &maxScore); err != nil {
			return Form{}, err
		}
		i, ok := index[criteriaID]
		if !ok {
			i = len(form.Criteria)
			index[criteriaID] = i
			form.Criteria = append(form.Criteria, Criteria{ID: criteriaID, Name: criteriaName})
		}
		if questionID != nil {
			form.Criteria[i].Questions = append(form.Criteria[i].Questions, Question{
				ID:         *questionID,
				Name:       *questionName,
				MaxScore:   *maxScore,
				CriteriaID: criteriaID,
			})
		}
	}
	return form, rows.Err()
}

func (s *Store) CreateForm(ctx context.Context, name string, cycleID int64, criteriaIDs []int64) (int64, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var cycleExists int
	if err := tx.QueryRow(ctx,
		"SELECT COUNT(1) FROM evaluation_cycles WHERE cycle_id = $1", cycleID).Scan(&cycleExists); err != nil {
		return 0, err
	}
	if cycleExists == 0 {
		return 0, ErrCycleNotFound
	}

	var formID int64
	if err := tx.QueryRow(ctx,
		"INSERT INTO criteria_forms (form_name, cycle_id) VALUES ($1, $2) RETURNING form_id",
		name, cycleID).Scan(&formID); err != nil {
		return 0, err
	}

	for _, criteriaID := range criteriaIDs {
		tag, err := tx.Exec(ctx, `
			INSERT INTO criteria_form_criteria (form_id, criteria_id)
			SELECT $1, criteria_id FROM evaluation_criteria WHERE criteria_id = $2
		`, formID, criteriaID)
		if err != nil {
			return 0, err
		}
		if tag.RowsAffected() == 0 {
			return 0, ErrCriteriaNotFound
		}
	}

	return formID, tx.Commit(ctx)
}

func (s *Store) DeleteForm(ctx context.Context, id int64) error {
	var assessments int
	if err := s.DB.QueryRow(ctx,
		"SELECT COUNT(1) FROM summary_assessments WHERE form_id = $1", id).Scan(&assessments); err != nil {
		return err
	}
	if assessments > 0 {
		return ErrFormHasAssessments
	}

	tag, err := s.DB.Exec(ctx, "DELETE FROM criteria_forms WHERE form_id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrFormNotFound
	}
	return nil
}
