package domain

import (
	"strings"
	"time"
)

type Account struct {
	ID        int64
	Name      string
	Email     string
	Password  string
	IsAdmin   bool
	CreatedAt time.Time
}

// SafeAccount is the account projection returned to clients; it never carries the password.
type SafeAccount struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

func (a Account) Safe() SafeAccount {
	return SafeAccount{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		IsAdmin:   a.IsAdmin,
		CreatedAt: a.CreatedAt,
	}
}

// NormalizeEmail is the canonical form used for uniqueness and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
