package repositories

import (
	"fmt"
	"time"

	"catalog/internal/database"
	"catalog/internal/models"
)

// SessionRepository defines the interface for session data access.
type SessionRepository interface {
	FindByToken(token string) (*models.Session, error)
	Create(session *models.Session) error
	Update(session *models.Session) error
	Delete(token string) error
}

// SQLSessionRepository is a Gateway-backed implementation of
// SessionRepository.
type SQLSessionRepository struct {
	gw *database.Gateway
}

// NewSQLSessionRepository creates a new instance of SQLSessionRepository.
func NewSQLSessionRepository(gw *database.Gateway) *SQLSessionRepository {
	return &SQLSessionRepository{gw: gw}
}

// FindByToken retrieves a session by its token, the sole credential.
func (r *SQLSessionRepository) FindByToken(token string) (*models.Session, error) {
	var session models.Session
	found, err := r.gw.QueryFirst(&session, "SELECT * FROM sessions WHERE token = ?", token)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("session: %w", ErrNotFound)
	}
	return &session, nil
}

// Create stores a new session row. Token uniqueness is enforced by the
// store's primary-key constraint.
func (r *SQLSessionRepository) Create(session *models.Session) error {
	now := time.Now().UTC()
	_, err := r.gw.Exec(
		`INSERT INTO sessions (token, data, expires_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		session.Token,
		session.Data,
		session.ExpiresAt,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// Update replaces the payload and expiry of an existing session.
func (r *SQLSessionRepository) Update(session *models.Session) error {
	res, err := r.gw.Exec(
		"UPDATE sessions SET data = ?, expires_at = ?, updated_at = ? WHERE token = ?",
		session.Data,
		session.ExpiresAt,
		time.Now().UTC(),
		session.Token,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("session: %w", ErrNotFound)
	}
	return nil
}

// Delete revokes a session by removing its row.
func (r *SQLSessionRepository) Delete(token string) error {
	res, err := r.gw.Exec("DELETE FROM sessions WHERE token = ?", token)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("session: %w", ErrNotFound)
	}
	return nil
}
