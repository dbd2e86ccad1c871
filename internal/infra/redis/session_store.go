package redis

import (
	"context"
	"sync"
	"time"

	"feud-service/internal/app"
	"github.com/redis/go-redis/v9"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Engines stay in process; Redis only carries a liveness marker per game,
// refreshed on every lookup, so operators can count and expire live games.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
	mu     sync.RWMutex
	games  map[string]*app.Game
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client: client,
		ttl:    ttl,
		games:  make(map[string]*app.Game),
	}
}

func (s *SessionStore) Put(g *app.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[g.ID()] = g
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(g.ID()), g.CreatedAt().Unix(), s.ttl).Err()
}

func (s *SessionStore) Get(gameID string) (*app.Game, bool) {
	s.mu.RLock()
	g, ok := s.games[gameID]
	s.mu.RUnlock()
	if ok && s.ttl > 0 {
		_ = s.client.Expire(context.Background(), s.key(gameID), s.ttl).Err()
	}
	return g, ok
}

func (s *SessionStore) Delete(gameID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, gameID)
	_ = s.client.Del(context.Background(), s.key(gameID)).Err()
}

func (s *SessionStore) key(gameID string) string {
	return "feud:game:" + gameID
}
