package domain

// Policy is the single editable lending configuration. It is read at
// the moment a loan is issued or approved; the resulting due date is a
// snapshot, so later edits only affect future issuances.
type Policy struct {
	MaxBooksPerUser   int32 `json:"max_books_per_user"`
	IssueDurationDays int32 `json:"issue_duration_days"`
	FinePerDay        int32 `json:"fine_per_day"`
}

// DefaultPolicy returns the values used before a librarian has saved a
// policy of their own.
func DefaultPolicy() Policy {
	return Policy{
		MaxBooksPerUser:   3,
		IssueDurationDays: 14,
		FinePerDay:        5,
	}
}
