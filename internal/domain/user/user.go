package user

import (
	"time"

	"github.com/google/uuid"

	"github.com/shareloop/service-sharing/internal/domain"
)

// User is a registered participant: an owner listing items, a booker
// requesting them, or both.
type User struct {
	id        uuid.UUID
	name      string
	email     string
	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates a new user with validated fields. Email uniqueness is
// enforced by the store.
func NewUser(name, email string, now time.Time) (*User, error) {
	if name == "" {
		return nil, domain.NewValidationError("user name is required")
	}
	if email == "" {
		return nil, domain.NewValidationError("user email is required")
	}

	return &User{
		id:        uuid.New(),
		name:      name,
		email:     email,
		createdAt: now.UTC(),
		updatedAt: now.UTC(),
	}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(id uuid.UUID, name, email string, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        id,
		name:      name,
		email:     email,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// Update applies partial updates; empty fields keep their current values.
func (u *User) Update(name, email string, now time.Time) {
	if name != "" {
		u.name = name
	}
	if email != "" {
		u.email = email
	}
	u.updatedAt = now.UTC()
}
