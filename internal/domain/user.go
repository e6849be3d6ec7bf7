package domain

import (
	"errors"
)

// User is the authenticated caller of the admin API.
type User struct {
	ID    string
	Email string
	Role  Role
}

// Role represents a user's access level
type Role string

const (
	// RoleAdmin may run repairs against the live ledger
	RoleAdmin Role = "admin"

	// RoleOperator may run dry-run plans and read reports
	RoleOperator Role = "operator"

	// RoleViewer can only read cached results
	RoleViewer Role = "viewer"
)

var validRoles = map[Role]bool{
	RoleAdmin:    true,
	RoleOperator: true,
	RoleViewer:   true,
}

// IsValid checks if the role is a valid role
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanRepair checks if the role may mutate the live ledger.
func (r Role) CanRepair() bool {
	return r == RoleAdmin
}

// CanPlan checks if the role may run read-only repair plans.
func (r Role) CanPlan() bool {
	return r == RoleAdmin || r == RoleOperator
}

// Authentication errors
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInsufficientRole = errors.New("insufficient role for this operation")
)
