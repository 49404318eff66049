package models

import (
	"fmt"
	"time"
)

// MaxIdentifierLength bounds the opaque user identifier accepted by the service.
const MaxIdentifierLength = 255

// User represents a service user keyed by an opaque external identifier.
//
// Users are created on first reference and never deleted by the engine.
type User struct {
	id          string
	sequence    int
	identifier  string
	displayName string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewUser creates a new User with the given sequence, external identifier, and optional display name.
func NewUser(sequence int, identifier, displayName string) *User {
	now := time.Now()
	return &User{
		sequence:    sequence,
		identifier:  identifier,
		displayName: displayName,
		createdAt:   now,
		updatedAt:   now,
	}
}

func (u *User) ID() string            { return u.id }
func (u *User) Sequence() int         { return u.sequence }
func (u *User) Identifier() string    { return u.identifier }
func (u *User) DisplayName() string   { return u.displayName }
func (u *User) CreatedAt() time.Time  { return u.createdAt }
func (u *User) UpdatedAt() time.Time  { return u.updatedAt }
func (u *User) SetID(id string)       { u.id = id }
func (u *User) SetCreatedAt(t time.Time) { u.createdAt = t }
func (u *User) SetUpdatedAt(t time.Time) { u.updatedAt = t }

// Validate checks that the user's identifier is present and within bounds.
func (u *User) Validate() error {
	if u.identifier == "" {
		return fmt.Errorf("user identifier is required")
	}
	if len(u.identifier) > MaxIdentifierLength {
		return fmt.Errorf("user identifier exceeds %d characters", MaxIdentifierLength)
	}
	return nil
}
