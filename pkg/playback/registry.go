package playback

import (
	"errors"
	"sync"
)

var ErrSessionNotFound = errors.New("session not found")

// Registry holds the active playback sessions by id.
type Registry struct {
	mu sync.RWMutex

	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: map[string]*Session{},
	}
}

func (r *Registry) Add(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[s.ID] = s
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]

	if !ok {
		return nil, ErrSessionNotFound
	}

	return s, nil
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
}
