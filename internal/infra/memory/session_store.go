package memory

import (
	"sync"

	"feud-service/internal/app"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
type SessionStore struct {
	mu    sync.RWMutex
	games map[string]*app.Game
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		games: make(map[string]*app.Game),
	}
}

func (s *SessionStore) Put(g *app.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[g.ID()] = g
}

func (s *SessionStore) Get(gameID string) (*app.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.games[gameID]
	return g, ok
}

func (s *SessionStore) Delete(gameID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, gameID)
}
