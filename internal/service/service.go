package service

import (
	"context"
	"time"

	"schoollib-backend/internal/domain"
)

// BookUpdate carries the fields of a partial catalog edit. Nil means
// "leave unchanged".
type BookUpdate struct {
	Title    *string
	Author   *string
	Subject  *string
	ISBN     *string
	Category *domain.BookCategory
	Quantity *int32
}

type CatalogService interface {
	CreateBook(ctx context.Context, book *domain.Book) error
	GetBook(ctx context.Context, id int32) (*domain.Book, error)
	UpdateBook(ctx context.Context, id int32, upd BookUpdate) (*domain.Book, error)
	DeleteBook(ctx context.Context, id int32) error
	ListBooks(ctx context.Context, query, category string, page, pageSize int32) ([]domain.Book, int32, error)
}

type CirculationService interface {
	// RequestBook creates a REQUESTED record for the calling borrower.
	// No inventory is consumed until approval.
	RequestBook(ctx context.Context, bookID int32, borrower domain.Actor) (*domain.IssueRecord, error)
	// IssueBook lends a copy to borrower immediately (librarian flow).
	IssueBook(ctx context.Context, bookID int32, borrower domain.Actor) (*domain.IssueRecord, error)
	ApproveRequest(ctx context.Context, issueID int32) (*domain.IssueRecord, error)
	RejectRequest(ctx context.Context, issueID int32) (*domain.IssueRecord, error)
	ReturnBook(ctx context.Context, issueID int32) (*domain.IssueRecord, error)
	// LiveFine evaluates the fine of an ISSUED record against the
	// current clock, or reports the frozen fine of a RETURNED one.
	LiveFine(ctx context.Context, issueID int32) (int32, error)
	GetIssue(ctx context.Context, issueID int32) (*domain.IssueRecord, error)
	ListIssues(ctx context.Context, filter domain.IssueFilter, page, pageSize int32) ([]domain.IssueRecord, int32, error)
	GetStats(ctx context.Context) (*domain.InventoryStats, error)
}

type PolicyService interface {
	GetPolicy(ctx context.Context) (*domain.Policy, error)
	UpdatePolicy(ctx context.Context, policy *domain.Policy) error
}

// EmailService is the boundary to the external messaging system.
// Circulation transitions call it best-effort; a send failure never
// fails or rolls back the transition.
type EmailService interface {
	SendIssueApprovedNotification(ctx context.Context, email, name, bookTitle string, dueDate time.Time) error
	SendIssueRejectedNotification(ctx context.Context, email, name, bookTitle string) error
	SendBookReturnedNotification(ctx context.Context, email, name, bookTitle string, fine int32) error
}
