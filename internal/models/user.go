package models

import (
	"fmt"
	"strings"
	"time"
)

// User represents a persisted user account.
//
// Roles is a comma-separated list (e.g. "public,protected,admin") consulted
// by the authorization layer; every account implicitly acts as "public" when
// no roles are set. Implements [Model].
type User struct {
	id        string
	sequence  int
	email     string
	name      string
	roles     string
	enabled   bool
	picture   string
	lastLogin *time.Time
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewUser creates a user with the given sequence number, email, and display name.
func NewUser(sequence int, email, name string) *User {
	now := time.Now()
	return &User{
		sequence:  sequence,
		email:     email,
		name:      name,
		roles:     "public",
		enabled:   true,
		createdAt: now,
		updatedAt: now,
	}
}

func (u *User) ID() string            { return u.id }
func (u *User) Sequence() int         { return u.sequence }
func (u *User) Email() string         { return u.email }
func (u *User) Name() string          { return u.name }
func (u *User) Roles() string         { return u.roles }
func (u *User) Enabled() bool         { return u.enabled }
func (u *User) Picture() string       { return u.picture }
func (u *User) LastLogin() *time.Time { return u.lastLogin }
func (u *User) CreatedAt() time.Time  { return u.createdAt }
func (u *User) UpdatedAt() time.Time  { return u.updatedAt }
func (u *User) DeletedAt() *time.Time { return u.deletedAt }

func (u *User) SetID(id string)           { u.id = id }
func (u *User) SetName(name string)       { u.name = name }
func (u *User) SetRoles(roles string)     { u.roles = roles }
func (u *User) SetEnabled(enabled bool)   { u.enabled = enabled }
func (u *User) SetPicture(url string)     { u.picture = url }
func (u *User) SetLastLogin(t *time.Time) { u.lastLogin = t }
func (u *User) SetCreatedAt(t time.Time)  { u.createdAt = t }
func (u *User) SetUpdatedAt(t time.Time)  { u.updatedAt = t }
func (u *User) SetDeletedAt(t *time.Time) { u.deletedAt = t }

// RoleList returns the normalized role names for authorization checks.
func (u *User) RoleList() []string { return SplitRoles(u.roles) }

// HasRole reports whether the user carries the named role.
func (u *User) HasRole(role string) bool {
	role = strings.ToLower(strings.TrimSpace(role))
	for _, r := range u.RoleList() {
		if r == role {
			return true
		}
	}
	return false
}

// Validate checks that required user fields are present and well-formed.
func (u *User) Validate() error {
	if u.email == "" {
		return fmt.Errorf("user email is required")
	}
	if !strings.Contains(u.email, "@") {
		return fmt.Errorf("invalid user email: %s", u.email)
	}
	if u.roles == "" {
		return fmt.Errorf("user roles are required")
	}
	return nil
}
