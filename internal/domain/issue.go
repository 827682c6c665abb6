package domain

import "time"

type IssueStatus string

const (
	IssueStatusRequested IssueStatus = "REQUESTED"
	IssueStatusIssued    IssueStatus = "ISSUED"
	IssueStatusReturned  IssueStatus = "RETURNED"
	IssueStatusRejected  IssueStatus = "REJECTED"
)

// ValidIssueStatus reports whether s is one of the four circulation
// states. Used when parsing status filters from the API.
func ValidIssueStatus(s string) bool {
	switch IssueStatus(s) {
	case IssueStatusRequested, IssueStatusIssued, IssueStatusReturned, IssueStatusRejected:
		return true
	}
	return false
}

// Active reports whether the record still counts against the
// borrower's loan allowance and blocks a duplicate loan of the same
// title. Returned and Rejected are terminal.
func (s IssueStatus) Active() bool {
	return s == IssueStatusRequested || s == IssueStatusIssued
}

// IssueRecord is one lending transaction. Records are created in
// REQUESTED (self-service) or directly in ISSUED (librarian-mediated)
// and are never deleted, only transitioned, so the table doubles as the
// audit trail.
//
// DueDate is fixed at issuance from the policy in force at that moment;
// later policy edits never move it. Fine is only stored once the record
// is RETURNED — for an ISSUED record the fine is computed live.
type IssueRecord struct {
	ID          int32       `json:"id"`
	BookID      int32       `json:"book_id"`
	UserID      int32       `json:"user_id"`
	UserName    string      `json:"user_name"`
	UserEmail   string      `json:"user_email,omitempty"`
	UserRole    Role        `json:"user_role"`
	Status      IssueStatus `json:"status"`
	RequestDate *time.Time  `json:"request_date,omitempty"`
	IssueDate   *time.Time  `json:"issue_date,omitempty"`
	DueDate     *time.Time  `json:"due_date,omitempty"`
	ReturnDate  *time.Time  `json:"return_date,omitempty"`
	Fine        int32       `json:"fine"`
	CreatedOn   time.Time   `json:"created_on"`
	UpdatedOn   time.Time   `json:"updated_on"`
}

// IssueFilter narrows an issue-record listing. Zero values mean
// "no filter" for that field.
type IssueFilter struct {
	UserID int32
	BookID int32
	Status IssueStatus
}
