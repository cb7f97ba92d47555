package repositories

import (
	"fmt"
	"sync"
	"time"

	"catalog/internal/models"
)

// MemSessionRepository is an in-memory implementation of
// SessionRepository, used in tests.
type MemSessionRepository struct {
	sessions map[string]models.Session
	mu       sync.RWMutex
}

// NewMemSessionRepository creates a new instance of MemSessionRepository.
func NewMemSessionRepository() *MemSessionRepository {
	return &MemSessionRepository{
		sessions: make(map[string]models.Session),
	}
}

// FindByToken returns a session by its token.
func (r *MemSessionRepository) FindByToken(token string) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[token]
	if !ok {
		return nil, fmt.Errorf("session: %w", ErrNotFound)
	}
	return &session, nil
}

// Create stores a new session.
func (r *MemSessionRepository) Create(session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *session
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.sessions[stored.Token] = stored
	return nil
}

// Update replaces an existing session.
func (r *MemSessionRepository) Update(session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[session.Token]; !ok {
		return fmt.Errorf("session: %w", ErrNotFound)
	}
	stored := *session
	stored.UpdatedAt = time.Now().UTC()
	r.sessions[session.Token] = stored
	return nil
}

// Delete removes a session by its token.
func (r *MemSessionRepository) Delete(token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[token]; !ok {
		return fmt.Errorf("session: %w", ErrNotFound)
	}
	delete(r.sessions, token)
	return nil
}

// Count reports the number of stored sessions. Test helper.
func (r *MemSessionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
