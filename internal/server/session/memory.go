package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-bookcorner/internal/shared/errors"
)

// MemoryStore хранит сессии в map под мьютексом.
// Сессии теряются при перезапуске процесса.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]models.Session)}
}

func (s *MemoryStore) Get(_ context.Context, token string) (models.Session, error) {
	if strings.TrimSpace(token) == "" {
		return models.Session{}, serr.ErrUnauthorized
	}

	s.mu.RLock()
	sess, ok := s.sessions[crypto.HashToken(token)]
	s.mu.RUnlock()
	if !ok {
		return models.Session{}, serr.ErrUnauthorized
	}
	sess.Token = token
	return sess, nil
}

func (s *MemoryStore) Set(_ context.Context, sess models.Session) error {
	if strings.TrimSpace(sess.Token) == "" {
		return serr.ErrInvalidInput
	}

	key := crypto.HashToken(sess.Token)
	sess.Token = ""

	s.mu.Lock()
	s.sessions[key] = sess
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, crypto.HashToken(token))
	s.mu.Unlock()
	return nil
}

// PurgeExpired удаляет истёкшие к моменту now сессии и возвращает их число.
func (s *MemoryStore) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for key, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, key)
			n++
		}
	}
	return n, nil
}

// Len — число хранимых сессий.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
