package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/models"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/repository"
	serr "github.com/IvanChernomyrdin/go-bookcorner/internal/shared/errors"
)

// RedisStore хранит сессию как JSON под ключом prefix+hash(token).
// Срок жизни ключа совпадает с ExpiresAt, поэтому чистка не нужна.
type RedisStore struct {
	rdb    redis.Cmdable
	prefix string
	now    func() time.Time
}

func NewRedisStore(rdb redis.Cmdable, prefix string) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: prefix, now: time.Now}
}

func (s *RedisStore) key(token string) string {
	return s.prefix + crypto.HashToken(token)
}

func (s *RedisStore) Get(ctx context.Context, token string) (models.Session, error) {
	if strings.TrimSpace(token) == "" {
		return models.Session{}, serr.ErrUnauthorized
	}

	raw, err := s.rdb.Get(ctx, s.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.Session{}, serr.ErrUnauthorized
		}
		return models.Session{}, repository.Internal("redis get session", err)
	}

	var sess models.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return models.Session{}, repository.Internal("redis decode session", err)
	}
	sess.Token = token
	return sess, nil
}

func (s *RedisStore) Set(ctx context.Context, sess models.Session) error {
	if strings.TrimSpace(sess.Token) == "" {
		return serr.ErrInvalidInput
	}

	// 0 в go-redis означает «без срока»
	var ttl time.Duration
	if !sess.ExpiresAt.IsZero() {
		ttl = sess.ExpiresAt.Sub(s.now())
		if ttl <= 0 {
			return nil
		}
	}

	key := s.key(sess.Token)
	sess.Token = ""
	raw, err := json.Marshal(sess)
	if err != nil {
		return repository.Internal("redis encode session", err)
	}

	if err := s.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		return repository.Internal("redis set session", err)
	}
	return nil
}

func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, s.key(token)).Err(); err != nil {
		return repository.Internal("redis del session", err)
	}
	return nil
}
