package wizard

import (
	"sync"

	"github.com/google/uuid"

	"backoffice/internal/domain"
)

// Store holds live wizard sessions keyed by id. Sessions never outlive the
// process; persistent state stays behind the upstream API.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Wizard
}

func NewStore() *Store {
	return &Store{sessions: map[string]*Wizard{}}
}

// Create starts a fresh session and returns it.
func (s *Store) Create() *Wizard {
	w := New(uuid.NewString())
	s.mu.Lock()
	s.sessions[w.ID()] = w
	s.mu.Unlock()
	return w
}

// Get looks a session up by id.
func (s *Store) Get(id string) (*Wizard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.sessions[id]
	if !ok {
		return nil, domain.NotFoundError{Resource: "wizard session"}
	}
	return w, nil
}

// Delete drops a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}
