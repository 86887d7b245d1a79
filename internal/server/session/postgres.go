package session

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/models"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/repository"
	serr "github.com/IvanChernomyrdin/go-bookcorner/internal/shared/errors"
)

// PostgresStore хранит сессии в таблице sessions.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, token string) (models.Session, error) {
	if strings.TrimSpace(token) == "" {
		return models.Session{}, serr.ErrUnauthorized
	}

	sess := models.Session{Token: token}
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, email, name, created_at, expires_at
		   FROM sessions
		  WHERE token_hash = $1`,
		crypto.HashToken(token),
	).Scan(&sess.UserID, &sess.Email, &sess.Name, &sess.CreatedAt, &sess.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, serr.ErrUnauthorized
		}
		return models.Session{}, repository.Internal("sessions select", err)
	}
	return sess, nil
}

// Set сохраняет сессию. Повторный Set с тем же токеном перезаписывает её.
func (s *PostgresStore) Set(ctx context.Context, sess models.Session) error {
	if strings.TrimSpace(sess.Token) == "" {
		return serr.ErrInvalidInput
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (token_hash, user_id, email, name, created_at, expires_at)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 ON CONFLICT (token_hash) DO UPDATE
		    SET user_id = EXCLUDED.user_id,
		        email = EXCLUDED.email,
		        name = EXCLUDED.name,
		        expires_at = EXCLUDED.expires_at`,
		crypto.HashToken(sess.Token), sess.UserID, sess.Email, sess.Name, sess.CreatedAt, sess.ExpiresAt,
	)
	if err != nil {
		return repository.Internal("sessions upsert", err)
	}
	return nil
}

func (s *PostgresStore) Destroy(ctx context.Context, token string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE token_hash = $1`,
		crypto.HashToken(token),
	); err != nil {
		return repository.Internal("sessions delete", err)
	}
	return nil
}

// PurgeExpired удаляет сессии с expires_at <= now.
func (s *PostgresStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at <= $1`,
		now,
	)
	if err != nil {
		return 0, repository.Internal("sessions purge", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, repository.Internal("sessions purge", err)
	}
	return n, nil
}
