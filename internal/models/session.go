package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// HashToken returns the SHA-256 hex digest of a raw session token.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Session represents a persisted login session.
//
// The raw cookie token is never stored; only its SHA-256 hex digest is.
// Implements [Model].
type Session struct {
	id        string
	tokenHash string
	userID    string
	expiresAt time.Time
	createdAt time.Time
	updatedAt time.Time
}

// NewSession creates a session for the given user with the hashed cookie token.
func NewSession(tokenHash, userID string, expiresAt time.Time) *Session {
	now := time.Now()
	return &Session{
		tokenHash: tokenHash,
		userID:    userID,
		expiresAt: expiresAt,
		createdAt: now,
		updatedAt: now,
	}
}

func (s *Session) ID() string           { return s.id }
func (s *Session) TokenHash() string    { return s.tokenHash }
func (s *Session) UserID() string       { return s.userID }
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }
func (s *Session) CreatedAt() time.Time { return s.createdAt }
func (s *Session) UpdatedAt() time.Time { return s.updatedAt }

func (s *Session) SetID(id string)          { s.id = id }
func (s *Session) SetCreatedAt(t time.Time) { s.createdAt = t }
func (s *Session) SetUpdatedAt(t time.Time) { s.updatedAt = t }

// Expired reports whether the session is past its expiry.
func (s *Session) Expired() bool { return time.Now().After(s.expiresAt) }

// Validate checks that required session fields are present.
func (s *Session) Validate() error {
	if s.tokenHash == "" {
		return fmt.Errorf("session token hash is required")
	}
	if s.userID == "" {
		return fmt.Errorf("session user id is required")
	}
	if s.expiresAt.IsZero() {
		return fmt.Errorf("session expiry is required")
	}
	return nil
}
