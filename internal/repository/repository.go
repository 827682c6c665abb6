package repository

import (
	"context"
	"time"

	"schoollib-backend/internal/domain"
)

type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) error
	GetByID(ctx context.Context, id int32) (*domain.Book, error)
	// Update applies the given fields. When quantity changes, available
	// is adjusted by the same delta and clamped to [0, quantity]; the
	// update fails with domain.ErrConflict if the new quantity is below
	// the number of copies currently on loan.
	Update(ctx context.Context, book *domain.Book) error
	// Delete fails with domain.ErrConflict while any REQUESTED or
	// ISSUED record still references the book.
	Delete(ctx context.Context, id int32) error
	List(ctx context.Context, query, category string, page, pageSize int32) ([]domain.Book, int32, error)
	GetInventoryStats(ctx context.Context) (*domain.InventoryStats, error)
}

type IssueRepository interface {
	// CreateRequest inserts a REQUESTED record. No inventory effect.
	CreateRequest(ctx context.Context, rec *domain.IssueRecord) error
	GetByID(ctx context.Context, id int32) (*domain.IssueRecord, error)
	List(ctx context.Context, filter domain.IssueFilter, page, pageSize int32) ([]domain.IssueRecord, int32, error)
	// ListIssuedDueBefore returns every ISSUED record whose due date is
	// strictly before cutoff. Used for the live overdue fine aggregate.
	ListIssuedDueBefore(ctx context.Context, cutoff time.Time) ([]domain.IssueRecord, error)
	CountActiveByUser(ctx context.Context, userID int32) (int32, error)
	HasActiveForBook(ctx context.Context, userID, bookID int32) (bool, error)
	// Reject transitions REQUESTED -> REJECTED. Fails with
	// domain.ErrInvalidState when the record is not REQUESTED.
	Reject(ctx context.Context, id int32) error
}

// CirculationRepository holds the transitions that touch catalog
// availability. Each method runs one database transaction combining a
// conditional availability update with the ledger write, so the
// check-and-decrement is a single atomic step and a failure leaves both
// tables untouched.
type CirculationRepository interface {
	// Issue decrements availability and inserts rec with status ISSUED.
	// Fails with domain.ErrConflict when no copy is available.
	Issue(ctx context.Context, rec *domain.IssueRecord) error
	// Approve transitions REQUESTED -> ISSUED, consuming one available
	// copy. domain.ErrInvalidState when the record is not REQUESTED;
	// domain.ErrConflict when no copy is available (the record stays
	// REQUESTED for a later retry).
	Approve(ctx context.Context, id int32, issueDate, dueDate time.Time) (*domain.IssueRecord, error)
	// Return transitions ISSUED -> RETURNED, freezing the fine and
	// releasing one copy. domain.ErrInvalidState when the record is not
	// ISSUED.
	Return(ctx context.Context, id int32, returnDate time.Time, fine int32) (*domain.IssueRecord, error)
}

type PolicyRepository interface {
	// Get returns the stored policy, or domain.DefaultPolicy() when
	// none has been saved yet.
	Get(ctx context.Context) (*domain.Policy, error)
	Update(ctx context.Context, policy *domain.Policy) error
}
