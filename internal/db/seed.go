package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"assessment/internal/auth"
	"assessment/internal/platform/config"
)

// Seed makes sure a login exists after a fresh boot and, when asked,
// loads a small demo rubric so the evaluation flow can be exercised
// without HR onboarding first.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	departmentID, err := ensureDepartment(ctx, pool, "General")
	if err != nil {
		return err
	}

	password := cfg.SeedAdminPassword
	if strings.TrimSpace(password) == "" {
		password = "changeme"
	}
	if err := ensureAccount(ctx, pool, cfg.SeedAdminUsername, password, "MANAGER", departmentID, "Administrator"); err != nil {
		return err
	}

	if cfg.SeedDemoData {
		return seedDemoRubric(ctx, pool)
	}
	return nil
}

func ensureDepartment(ctx context.Context, pool *pgxpool.Pool, name string) (int64, error) {
	var id int64
	err := pool.QueryRow(ctx, "SELECT department_id FROM departments WHERE department_name = $1", name).Scan(&id)
	if err == nil {
		return id, nil
	}
	err = pool.QueryRow(ctx,
		"INSERT INTO departments (department_name) VALUES ($1) RETURNING department_id", name).Scan(&id)
	return id, err
}

func ensureAccount(ctx context.Context, pool *pgxpool.Pool, username, password, role string, departmentID int64, fullName string) error {
	var accountID int64
	err := pool.QueryRow(ctx, "SELECT id FROM accounts WHERE username = $1", username).Scan(&accountID)
	if err == nil {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if err := pool.QueryRow(ctx,
		"INSERT INTO accounts (username, password_hash, role) VALUES ($1, $2, $3) RETURNING id",
		username, hash, role).Scan(&accountID); err != nil {
		return err
	}
	_, err = pool.Exec(ctx,
		"INSERT INTO employees (full_name, position, account_id, department_id) VALUES ($1, $2, $3, $4)",
		fullName, role, accountID, departmentID)
	return err
}

func seedDemoRubric(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM evaluation_criteria").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var criteriaID int64
	if err := pool.QueryRow(ctx,
		"INSERT INTO evaluation_criteria (criteria_name) VALUES ('Work Quality') RETURNING criteria_id").
		Scan(&criteriaID); err != nil {
		return err
	}
	for _, name := range []string{"Meets deadlines", "Output quality", "Team collaboration"} {
		if _, err := pool.Exec(ctx,
			"INSERT INTO evaluation_questions (question_name, max_score, criteria_id) VALUES ($1, 10, $2)",
			name, criteriaID); err != nil {
			return err
		}
	}

	var cycleID int64
	if err := pool.QueryRow(ctx, `
		INSERT INTO evaluation_cycles (start_date, end_date, status)
		VALUES (date_trunc('year', now())::date, (date_trunc('year', now()) + interval '6 months')::date, 'active')
		RETURNING cycle_id
	`).Scan(&cycleID); err != nil {
		return err
	}

	var formID int64
	if err := pool.QueryRow(ctx,
		"INSERT INTO criteria_forms (form_name, cycle_id) VALUES ('Mid-year review', $1) RETURNING form_id",
		cycleID).Scan(&formID); err != nil {
		return err
	}
	_, err := pool.Exec(ctx,
		"INSERT INTO criteria_form_criteria (form_id, criteria_id) VALUES ($1, $2)", formID, criteriaID)
	return err
}
