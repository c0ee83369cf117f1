package domain

import (
	"regexp"
	"time"
)

// User is a staff account.
type User struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	Role         Role
	BranchID     *int64
	Status       UserStatus
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser carries the fields needed to register a staff account.
type NewUser struct {
	Name     string
	Email    string
	Phone    string
	Role     Role
	BranchID *int64
	Password string
}

// UserFilter narrows a user listing. Nil fields are not filtered on.
type UserFilter struct {
	BranchID *int64
	Role     *Role
}

// Actor is the authenticated user performing a request.
type Actor struct {
	UserID   int64
	Role     Role
	BranchID *int64
}

// IsAdmin reports whether the actor may manage shipments.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleSuperAdmin || a.Role == RoleBranchAdmin
}

// CanAccessBranch reports whether the actor may see records of branchID.
// Super admins see every branch; everyone else only their own.
func (a Actor) CanAccessBranch(branchID int64) bool {
	if a.Role == RoleSuperAdmin {
		return true
	}
	return a.BranchID != nil && *a.BranchID == branchID
}

var reEmail = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail validates the e-mail address format
func ValidateEmail(s string) bool {
	return reEmail.MatchString(s)
}
