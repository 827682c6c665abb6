package postgres

import (
	"database/sql"
	"errors"

	"schoollib-backend/internal/repository"

	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.BookRepository
	repository.IssueRepository
	repository.CirculationRepository
	repository.PolicyRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		BookRepository:        NewBookRepository(db),
		IssueRepository:       NewIssueRepository(db),
		CirculationRepository: NewCirculationRepository(db),
		PolicyRepository:      NewPolicyRepository(db),
	}
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (code 23505). The book_issues_active_per_user partial index
// raises it when two racing inserts both pass the service-level
// duplicate check.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
