package redisad

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"yisu_hotel/internal/domain"
)

const sessionPrefix = "yisu:session:"

// Sessions stores token -> session mappings in Redis, one key per token.
// Keys are written without TTL to match the in-memory store's no-expiry
// behavior.
type Sessions struct{ c *redis.Client }

func NewSessions(addr, pass string, db int) *Sessions {
	return &Sessions{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func (s *Sessions) Put(ctx context.Context, sess domain.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.c.Set(ctx, sessionPrefix+sess.Token, b, 0).Err()
}

func (s *Sessions) Get(ctx context.Context, token string) (domain.Session, bool, error) {
	b, err := s.c.Get(ctx, sessionPrefix+token).Bytes()
	if err == redis.Nil {
		return domain.Session{}, false, nil
	}
	if err != nil {
		return domain.Session{}, false, err
	}
	var sess domain.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return domain.Session{}, false, err
	}
	return sess, true, nil
}

func (s *Sessions) Del(ctx context.Context, token string) error {
	return s.c.Del(ctx, sessionPrefix+token).Err()
}
