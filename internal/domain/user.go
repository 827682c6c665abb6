package domain

type Role string

const (
	RoleStudent   Role = "STUDENT"
	RoleTeacher   Role = "TEACHER"
	RoleLibrarian Role = "LIBRARIAN"
	RoleAdmin     Role = "ADMIN"
)

// CanManageCirculation reports whether the role may mutate the catalog,
// issue books directly, decide requests, and edit the lending policy.
func (r Role) CanManageCirculation() bool {
	return r == RoleLibrarian || r == RoleAdmin
}

// Actor is the authenticated caller as supplied by the identity
// provider. Only this triple (plus display name and email for record
// keeping and notifications) is consumed; account management lives in a
// separate system.
type Actor struct {
	ID    int32  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  Role   `json:"role"`
}
