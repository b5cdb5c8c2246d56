// Package models defines the data types exchanged between the visadesk
// client layers and the backend API.
package models

import (
	"fmt"

	"github.com/visahq/visadesk/internal/common"
)

// Role determines which views and operations a user may reach.
type Role string

const (
	RoleApplicant Role = "applicant"
	RoleOfficer   Role = "officer"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the closed set of roles.
func (r Role) Valid() bool {
	switch r {
	case RoleApplicant, RoleOfficer, RoleAdmin:
		return true
	}
	return false
}

// ParseRole converts user input into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", common.ErrorInvalidRole, s)
	}
	return r, nil
}

// User is the identity record the backend returns for an authenticated
// account.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Phone    string `json:"phone,omitempty"`
}

// LoginInput is the login request payload. Transient, never persisted.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput is the registration request payload. SecretKey is only
// required when registering a privileged (officer/admin) account; the client
// forwards it opaquely and the backend validates it.
type RegisterInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone,omitempty"`
	Role      Role   `json:"role"`
	SecretKey string `json:"secretKey,omitempty"`
}
