package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"schoollib-backend/internal/domain"
	"schoollib-backend/internal/repository"
)

type issueRepository struct {
	db *sql.DB
}

func NewIssueRepository(db *sql.DB) repository.IssueRepository {
	return &issueRepository{db: db}
}

const issueColumns = `id, book_id, user_id, user_name, COALESCE(user_email, ''), user_role, status, request_date, issue_date, due_date, return_date, fine, created_on, updated_on`

func scanIssue(row interface{ Scan(...interface{}) error }, rec *domain.IssueRecord) error {
	return row.Scan(&rec.ID, &rec.BookID, &rec.UserID, &rec.UserName, &rec.UserEmail, &rec.UserRole,
		&rec.Status, &rec.RequestDate, &rec.IssueDate, &rec.DueDate, &rec.ReturnDate, &rec.Fine,
		&rec.CreatedOn, &rec.UpdatedOn)
}

func (r *issueRepository) CreateRequest(ctx context.Context, rec *domain.IssueRecord) error {
	query := `INSERT INTO book_issues (book_id, user_id, user_name, user_email, user_role, status, request_date, fine, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, $8) RETURNING id`
	now := time.Now()
	rec.Status = domain.IssueStatusRequested
	rec.RequestDate = &now
	rec.CreatedOn = now
	rec.UpdatedOn = now
	err := r.db.QueryRowContext(ctx, query, rec.BookID, rec.UserID, rec.UserName, nullString(rec.UserEmail),
		rec.UserRole, rec.Status, now, now).Scan(&rec.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: user already has an active request or loan for this book", domain.ErrConflict)
	}
	return err
}

func (r *issueRepository) GetByID(ctx context.Context, id int32) (*domain.IssueRecord, error) {
	rec := &domain.IssueRecord{}
	query := `SELECT ` + issueColumns + ` FROM book_issues WHERE id = $1`
	err := scanIssue(r.db.QueryRowContext(ctx, query, id), rec)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *issueRepository) List(ctx context.Context, filter domain.IssueFilter, page, pageSize int32) ([]domain.IssueRecord, int32, error) {
	offset := (page - 1) * pageSize
	sqlStr := `SELECT ` + issueColumns + ` FROM book_issues WHERE 1=1`

	args := []interface{}{}
	argIdx := 1
	if filter.UserID != 0 {
		sqlStr += fmt.Sprintf(" AND user_id = $%d", argIdx)
		args = append(args, filter.UserID)
		argIdx++
	}
	if filter.BookID != 0 {
		sqlStr += fmt.Sprintf(" AND book_id = $%d", argIdx)
		args = append(args, filter.BookID)
		argIdx++
	}
	if filter.Status != "" {
		sqlStr += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}

	var count int32
	countSql := "SELECT count(*) FROM (" + sqlStr + ") as sub"
	if err := r.db.QueryRowContext(ctx, countSql, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	sqlStr += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []domain.IssueRecord
	for rows.Next() {
		var rec domain.IssueRecord
		if err := scanIssue(rows, &rec); err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	return records, count, nil
}

func (r *issueRepository) ListIssuedDueBefore(ctx context.Context, cutoff time.Time) ([]domain.IssueRecord, error) {
	query := `SELECT ` + issueColumns + ` FROM book_issues WHERE status = 'ISSUED' AND due_date < $1 ORDER BY due_date ASC`
	rows, err := r.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.IssueRecord
	for rows.Next() {
		var rec domain.IssueRecord
		if err := scanIssue(rows, &rec); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *issueRepository) CountActiveByUser(ctx context.Context, userID int32) (int32, error) {
	var count int32
	query := `SELECT count(*) FROM book_issues WHERE user_id = $1 AND status IN ('REQUESTED', 'ISSUED')`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&count)
	return count, err
}

func (r *issueRepository) HasActiveForBook(ctx context.Context, userID, bookID int32) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM book_issues WHERE user_id = $1 AND book_id = $2 AND status IN ('REQUESTED', 'ISSUED'))`
	err := r.db.QueryRowContext(ctx, query, userID, bookID).Scan(&exists)
	return exists, err
}

// Reject is a conditional update: the WHERE clause carries the state
// requirement so a record that has moved on is never overwritten.
func (r *issueRepository) Reject(ctx context.Context, id int32) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE book_issues SET status = 'REJECTED', updated_on = $1 WHERE id = $2 AND status = 'REQUESTED'`,
		time.Now(), id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return fmt.Errorf("%w: record is not in REQUESTED state", domain.ErrInvalidState)
	}
	return nil
}
