package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dstrand/photoweb/internal/models"
	"github.com/dstrand/photoweb/internal/shared"
)

// SessionRepository persists login sessions keyed by hashed cookie tokens.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new [SessionRepository] with the given database connection
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session into the database with a generated ID
func (r *SessionRepository) Create(session *models.Session) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	id := shared.GenerateID()
	session.SetID(id)

	query := `
		INSERT INTO sessions (id, token_hash, user_id, expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		id,
		session.TokenHash(),
		session.UserID(),
		session.ExpiresAt(),
		session.CreatedAt(),
		session.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	return nil
}

// GetByTokenHash retrieves a session by its hashed cookie token.
// Expired sessions are deleted on lookup and reported as [shared.ErrSessionExpired].
func (r *SessionRepository) GetByTokenHash(tokenHash string) (*models.Session, error) {
	query := `
		SELECT id, token_hash, user_id, expires_at, created_at, updated_at
		FROM sessions
		WHERE token_hash = ?
	`

	var (
		id        string
		hash      string
		userID    string
		expiresAt time.Time
		createdAt time.Time
		updatedAt time.Time
	)

	err := r.db.QueryRow(query, tokenHash).Scan(&id, &hash, &userID, &expiresAt, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, shared.ErrNotAuthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	session := models.NewSession(hash, userID, expiresAt)
	session.SetID(id)
	session.SetCreatedAt(createdAt)
	session.SetUpdatedAt(updatedAt)

	if session.Expired() {
		if err := r.Delete(id); err != nil {
			return nil, fmt.Errorf("failed to remove expired session: %w", err)
		}
		return nil, shared.ErrSessionExpired
	}

	return session, nil
}

// Delete removes a session by ID
func (r *SessionRepository) Delete(id string) error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteByTokenHash removes a session by its hashed cookie token, used at logout
func (r *SessionRepository) DeleteByTokenHash(tokenHash string) error {
	_, err := r.db.Exec("DELETE FROM sessions WHERE token_hash = ?", tokenHash)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes all sessions past their expiry and returns the count removed
func (r *SessionRepository) DeleteExpired() (int64, error) {
	result, err := r.db.Exec("DELETE FROM sessions WHERE expires_at < ?", time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rows, nil
}
