package memory

import (
	"context"
	"sync"

	"yisu_hotel/internal/domain"
)

// Sessions is the process-lifetime token store. Entries live until logout
// or process exit; no TTL is enforced.
type Sessions struct {
	mu sync.RWMutex
	m  map[string]domain.Session
}

func NewSessions() *Sessions {
	return &Sessions{m: map[string]domain.Session{}}
}

func (s *Sessions) Put(ctx context.Context, sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[sess.Token] = sess
	return nil
}

func (s *Sessions) Get(ctx context.Context, token string) (domain.Session, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.m[token]
	return sess, ok, nil
}

func (s *Sessions) Del(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, token)
	return nil
}
