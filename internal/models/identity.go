package models

import (
	"fmt"
	"time"
)

// Identity roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidateRole checks that role is one of the known identity roles.
func ValidateRole(role string) error {
	switch role {
	case RoleAdmin, RoleUser:
		return nil
	}
	return fmt.Errorf("invalid role %q: must be %s or %s", role, RoleAdmin, RoleUser)
}

// Identity is the resolved external identity for a session: an opaque
// identifier plus profile fields. The system is inert until one resolves.
type Identity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// IdentityRecord is an identity as stored in the identity store.
// Auth fields only; domain data lives in the per-identity aggregate.
type IdentityRecord struct {
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	ModifiedAt   time.Time `json:"modified_at"`
}

// Identity returns the external-facing identity for the record.
func (r *IdentityRecord) Identity() Identity {
	return Identity{ID: r.UserID, Name: r.Name, Email: r.Email}
}
