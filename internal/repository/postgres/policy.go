package postgres

import (
	"context"
	"database/sql"
	"errors"

	"schoollib-backend/internal/domain"
	"schoollib-backend/internal/repository"
)

// The policy table holds at most one row. Reads fall back to the
// built-in defaults until a librarian saves a policy.
type policyRepository struct {
	db *sql.DB
}

func NewPolicyRepository(db *sql.DB) repository.PolicyRepository {
	return &policyRepository{db: db}
}

func (r *policyRepository) Get(ctx context.Context) (*domain.Policy, error) {
	p := &domain.Policy{}
	query := `SELECT max_books_per_user, issue_duration_days, fine_per_day FROM lending_policy WHERE id = 1`
	err := r.db.QueryRowContext(ctx, query).Scan(&p.MaxBooksPerUser, &p.IssueDurationDays, &p.FinePerDay)
	if errors.Is(err, sql.ErrNoRows) {
		defaults := domain.DefaultPolicy()
		return &defaults, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *policyRepository) Update(ctx context.Context, p *domain.Policy) error {
	query := `INSERT INTO lending_policy (id, max_books_per_user, issue_duration_days, fine_per_day)
	          VALUES (1, $1, $2, $3)
	          ON CONFLICT (id) DO UPDATE SET max_books_per_user = $1, issue_duration_days = $2, fine_per_day = $3`
	_, err := r.db.ExecContext(ctx, query, p.MaxBooksPerUser, p.IssueDurationDays, p.FinePerDay)
	return err
}
