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

type bookRepository struct {
	db *sql.DB
}

func NewBookRepository(db *sql.DB) repository.BookRepository {
	return &bookRepository{db: db}
}

const bookColumns = `id, title, author, subject, COALESCE(isbn, ''), category, quantity, available, created_on, updated_on`

func scanBook(row interface{ Scan(...interface{}) error }, b *domain.Book) error {
	return row.Scan(&b.ID, &b.Title, &b.Author, &b.Subject, &b.ISBN, &b.Category, &b.Quantity, &b.Available, &b.CreatedOn, &b.UpdatedOn)
}

func (r *bookRepository) Create(ctx context.Context, b *domain.Book) error {
	query := `INSERT INTO books (title, author, subject, isbn, category, quantity, available, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $6, $7, $7) RETURNING id`
	now := time.Now()
	b.Available = b.Quantity
	b.CreatedOn = now
	b.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query, b.Title, b.Author, b.Subject, nullString(b.ISBN), b.Category, b.Quantity, now).Scan(&b.ID)
}

func (r *bookRepository) GetByID(ctx context.Context, id int32) (*domain.Book, error) {
	b := &domain.Book{}
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`
	err := scanBook(r.db.QueryRowContext(ctx, query, id), b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Update rewrites the descriptive fields and, when quantity changed,
// shifts available by the same delta. The row is locked for the
// read-adjust-write so a concurrent issue or return cannot slip between
// the clamp check and the write.
func (r *bookRepository) Update(ctx context.Context, b *domain.Book) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var oldQuantity, oldAvailable int32
	err = tx.QueryRowContext(ctx, `SELECT quantity, available FROM books WHERE id = $1 FOR UPDATE`, b.ID).
		Scan(&oldQuantity, &oldAvailable)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}

	issued := oldQuantity - oldAvailable
	if b.Quantity < issued {
		return fmt.Errorf("%w: %d copies are on loan, quantity cannot drop below that", domain.ErrConflict, issued)
	}

	available := oldAvailable + (b.Quantity - oldQuantity)
	if available < 0 {
		available = 0
	}
	if available > b.Quantity {
		available = b.Quantity
	}
	b.Available = available

	query := `UPDATE books SET title=$1, author=$2, subject=$3, isbn=$4, category=$5, quantity=$6, available=$7, updated_on=$8 WHERE id=$9`
	if _, err := tx.ExecContext(ctx, query, b.Title, b.Author, b.Subject, nullString(b.ISBN), b.Category, b.Quantity, available, time.Now(), b.ID); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes a book only when no active loan or pending request
// references it, so ledger records are never orphaned.
func (r *bookRepository) Delete(ctx context.Context, id int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var active bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM book_issues WHERE book_id = $1 AND status IN ('REQUESTED', 'ISSUED'))`, id).
		Scan(&active)
	if err != nil {
		return err
	}
	if active {
		return fmt.Errorf("%w: book has active issue records", domain.ErrConflict)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}

func (r *bookRepository) List(ctx context.Context, query, category string, page, pageSize int32) ([]domain.Book, int32, error) {
	offset := (page - 1) * pageSize
	sqlStr := `SELECT ` + bookColumns + ` FROM books WHERE 1=1`

	args := []interface{}{}
	argIdx := 1
	if query != "" {
		sqlStr += fmt.Sprintf(" AND (title ILIKE $%d OR author ILIKE $%d OR subject ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+query+"%")
		argIdx++
	}
	if category != "" {
		sqlStr += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, category)
		argIdx++
	}

	var count int32
	countSql := "SELECT count(*) FROM (" + sqlStr + ") as sub"
	if err := r.db.QueryRowContext(ctx, countSql, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	sqlStr += fmt.Sprintf(" ORDER BY title ASC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		var b domain.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, 0, err
		}
		books = append(books, b)
	}
	return books, count, nil
}

func (r *bookRepository) GetInventoryStats(ctx context.Context) (*domain.InventoryStats, error) {
	stats := &domain.InventoryStats{}
	query := `SELECT COALESCE(SUM(quantity), 0), COALESCE(SUM(available), 0) FROM books`
	if err := r.db.QueryRowContext(ctx, query).Scan(&stats.TotalCopies, &stats.AvailableCopies); err != nil {
		return nil, err
	}
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM book_issues WHERE status = 'ISSUED'`).Scan(&stats.ActiveLoans)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
