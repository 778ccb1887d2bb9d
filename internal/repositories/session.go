package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"resumehire/interview-engine/internal/models"
)

// ErrSessionNotFound is returned when a session id resolves to nothing.
var ErrSessionNotFound = fmt.Errorf("session not found")

type SessionRepository interface {
	Create(session *models.Session) error
	FindByID(id uuid.UUID) (*models.Session, error)
	Delete(id uuid.UUID) error
	Count() int
}

// sessionRepository keeps sessions in process memory. Nothing survives a restart; an
// explicit Delete is the only other way a session goes away.
type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*models.Session
}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{
		sessions: make(map[uuid.UUID]*models.Session),
	}
}

// Create implements SessionRepository.
func (r *sessionRepository) Create(session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[session.ID]; exists {
		return fmt.Errorf("session %s already exists", session.ID)
	}

	r.sessions[session.ID] = session
	return nil
}

// FindByID implements SessionRepository.
func (r *sessionRepository) FindByID(id uuid.UUID) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	return session, nil
}

// Delete implements SessionRepository.
func (r *sessionRepository) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	delete(r.sessions, id)
	return nil
}

// Count implements SessionRepository.
func (r *sessionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}
