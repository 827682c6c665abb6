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

// circulationRepository implements the availability-changing
// transitions. Every method is one transaction pairing a conditional
// UPDATE on books.available with the issue-record write, so the
// availability check and the decrement are a single atomic step at the
// storage layer. Two callers racing for the last copy serialize on the
// row update; exactly one sees RowsAffected == 1.
type circulationRepository struct {
	db *sql.DB
}

func NewCirculationRepository(db *sql.DB) repository.CirculationRepository {
	return &circulationRepository{db: db}
}

// takeCopy performs the conditional decrement. RowsAffected == 0 means
// either the book is gone or no copy is free; the follow-up existence
// probe inside the same transaction tells the two apart.
func takeCopy(ctx context.Context, tx *sql.Tx, bookID int32) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE books SET available = available - 1, updated_on = $1 WHERE id = $2 AND available > 0`,
		time.Now(), bookID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, bookID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domain.ErrNotFound
		}
		return fmt.Errorf("%w: no copies available", domain.ErrConflict)
	}
	return nil
}

func releaseCopy(ctx context.Context, tx *sql.Tx, bookID int32) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE books SET available = available + 1, updated_on = $1 WHERE id = $2 AND available < quantity`,
		time.Now(), bookID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("book %d availability would exceed quantity", bookID)
	}
	return nil
}

func (r *circulationRepository) Issue(ctx context.Context, rec *domain.IssueRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := takeCopy(ctx, tx, rec.BookID); err != nil {
		return err
	}

	query := `INSERT INTO book_issues (book_id, user_id, user_name, user_email, user_role, status, issue_date, due_date, fine, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, $9, $9) RETURNING id`
	now := time.Now()
	rec.Status = domain.IssueStatusIssued
	rec.CreatedOn = now
	rec.UpdatedOn = now
	err = tx.QueryRowContext(ctx, query, rec.BookID, rec.UserID, rec.UserName, nullString(rec.UserEmail),
		rec.UserRole, rec.Status, rec.IssueDate, rec.DueDate, now).Scan(&rec.ID)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: user already has an active request or loan for this book", domain.ErrConflict)
	}
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (r *circulationRepository) Approve(ctx context.Context, id int32, issueDate, dueDate time.Time) (*domain.IssueRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var bookID int32
	var status domain.IssueStatus
	err = tx.QueryRowContext(ctx, `SELECT book_id, status FROM book_issues WHERE id = $1 FOR UPDATE`, id).
		Scan(&bookID, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if status != domain.IssueStatusRequested {
		return nil, fmt.Errorf("%w: record is %s, expected REQUESTED", domain.ErrInvalidState, status)
	}

	// Availability may have changed since the request was made; the
	// conditional decrement is the authoritative re-check. On conflict
	// the rollback leaves the record REQUESTED for a later retry.
	if err := takeCopy(ctx, tx, bookID); err != nil {
		return nil, err
	}

	rec := &domain.IssueRecord{}
	query := `UPDATE book_issues SET status = 'ISSUED', issue_date = $1, due_date = $2, updated_on = $3 WHERE id = $4
	          RETURNING ` + issueColumns
	if err := scanIssue(tx.QueryRowContext(ctx, query, issueDate, dueDate, time.Now(), id), rec); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *circulationRepository) Return(ctx context.Context, id int32, returnDate time.Time, fine int32) (*domain.IssueRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	rec := &domain.IssueRecord{}
	query := `UPDATE book_issues SET status = 'RETURNED', return_date = $1, fine = $2, updated_on = $3
	          WHERE id = $4 AND status = 'ISSUED' RETURNING ` + issueColumns
	err = scanIssue(tx.QueryRowContext(ctx, query, returnDate, fine, time.Now(), id), rec)
	if errors.Is(err, sql.ErrNoRows) {
		// Distinguish a missing record from a record that already left
		// the ISSUED state. Either way nothing has been written.
		var status domain.IssueStatus
		probeErr := tx.QueryRowContext(ctx, `SELECT status FROM book_issues WHERE id = $1`, id).Scan(&status)
		if errors.Is(probeErr, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		if probeErr != nil {
			return nil, probeErr
		}
		return nil, fmt.Errorf("%w: record is %s, expected ISSUED", domain.ErrInvalidState, status)
	}
	if err != nil {
		return nil, err
	}

	if err := releaseCopy(ctx, tx, rec.BookID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return rec, nil
}
