package model

import "time"

// Role controls what an actor may do.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// Account represents a registered customer of the bakery.
type Account struct {
	ID           int64
	Login        string
	PasswordHash string
	Name         string
	Phone        string
	Role         Role
	CreatedAt    time.Time
}

// Actor identifies who performs an operation. It is passed explicitly into
// every use case call instead of being read from ambient request state.
type Actor struct {
	AccountID int64
	Role      Role
}

// IsAdmin reports whether the actor carries the administrator role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Owns reports whether the actor is the owning customer of the account id.
func (a Actor) Owns(accountID int64) bool {
	return a.AccountID == accountID
}
