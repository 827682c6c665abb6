package domain

import "time"

type BookCategory string

const (
	BookCategoryFiction    BookCategory = "FICTION"
	BookCategoryNonFiction BookCategory = "NON_FICTION"
	BookCategoryReference  BookCategory = "REFERENCE"
	BookCategoryTextbook   BookCategory = "TEXTBOOK"
	BookCategoryMagazine   BookCategory = "MAGAZINE"
)

// Book is a catalog entry. Quantity counts every owned copy of the
// title; Available counts the copies not currently on loan. Both are
// mutated only through the catalog repository so that
// 0 <= Available <= Quantity always holds.
type Book struct {
	ID        int32        `json:"id"`
	Title     string       `json:"title"`
	Author    string       `json:"author"`
	Subject   string       `json:"subject"`
	ISBN      string       `json:"isbn,omitempty"`
	Category  BookCategory `json:"category"`
	Quantity  int32        `json:"quantity"`
	Available int32        `json:"available"`
	CreatedOn time.Time    `json:"created_on"`
	UpdatedOn time.Time    `json:"updated_on"`
}

// InventoryStats is the aggregate catalog view exposed on the stats
// endpoint. OverdueFines is computed live against wall-clock time and
// is filled in by the circulation service, not the repository.
type InventoryStats struct {
	TotalCopies     int32 `json:"total_copies"`
	AvailableCopies int32 `json:"available_copies"`
	ActiveLoans     int32 `json:"active_loans"`
	OverdueFines    int32 `json:"overdue_fines"`
}
