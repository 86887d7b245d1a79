package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/config"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-bookcorner/internal/shared/errors"
)

// AuthService реализует регистрацию, вход и выход пользователей.
//
// Ответственность:
//   - регистрация (с проверкой занятости email);
//   - аутентификация по email и паролю;
//   - выдача и уничтожение серверных сессий.
type AuthService struct {
	users    UsersRepo
	sessions SessionStore
	hasher   crypto.PasswordHasher

	ttl   time.Duration
	clock clock
}

// NewAuthService создаёт AuthService с зависимостями и настройками из конфига.
func NewAuthService(users UsersRepo, sessions SessionStore, cfg *config.Config) *AuthService {
	var hasher crypto.PasswordHasher = crypto.BcryptHasher{Cost: cfg.Password.Bcrypt.Cost}
	if strings.EqualFold(cfg.Password.Hasher, config.HasherArgon2id) {
		hasher = crypto.Argon2Hasher{Params: crypto.Argon2Params{
			Time:      cfg.Password.Argon2.Time,
			MemoryKiB: cfg.Password.Argon2.MemoryKiB,
			Threads:   cfg.Password.Argon2.Threads,
			KeyLen:    cfg.Password.Argon2.KeyLen,
			SaltLen:   cfg.Password.Argon2.SaltLen,
		}}
	}

	ttl := cfg.Auth.Sessions.TTL
	if ttl <= 0 {
		ttl = 14 * 24 * time.Hour
	}

	return &AuthService{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		ttl:      ttl,
	}
}

// WithClock подменяет источник времени (для тестов).
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.clock = now
	return s
}

// SignUp регистрирует пользователя и сразу открывает ему сессию.
//
// Ошибки:
//   - ErrInvalidInput, если email или пароль пустые;
//   - ErrAlreadyExists, если email уже занят.
//
// Занятость email проверяется предварительным чтением. Между чтением и записью
// возможна гонка; её закрывает только уникальный индекс хранилища, если он есть.
func (s *AuthService) SignUp(ctx context.Context, name, email, password string) (models.Session, error) {
	email = models.NormalizeEmail(email)
	name = strings.TrimSpace(name)
	if email == "" || strings.TrimSpace(password) == "" {
		return models.Session{}, serr.ErrInvalidInput
	}

	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return models.Session{}, serr.ErrAlreadyExists
	case !errors.Is(err, serr.ErrNotFound):
		return models.Session{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return models.Session{}, serr.ErrInternal
	}

	u := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.clock.now(),
	}
	id, err := s.users.Create(ctx, u)
	if err != nil {
		return models.Session{}, err
	}
	u.ID = id

	return s.establish(ctx, u)
}

// SignIn аутентифицирует пользователя и открывает сессию.
//
// Поведение:
//   - не раскрывает факт существования email;
//   - любая неудача сравнения даёт ErrInvalidCredentials.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (models.Session, error) {
	email = models.NormalizeEmail(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return models.Session{}, serr.ErrInvalidInput
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// не палим существование email
		if errors.Is(err, serr.ErrNotFound) {
			return models.Session{}, serr.ErrInvalidCredentials
		}
		return models.Session{}, err
	}

	ok, err := crypto.VerifyPassword(password, u.PasswordHash)
	if err != nil || !ok {
		return models.Session{}, serr.ErrInvalidCredentials
	}

	return s.establish(ctx, u)
}

// SignOut уничтожает сессию. Пустой или неизвестный токен не ошибка.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return s.sessions.Destroy(ctx, token)
}

// Current возвращает живую сессию по токену.
//
// Ошибки:
//   - ErrUnauthorized, если сессии нет или она истекла.
func (s *AuthService) Current(ctx context.Context, token string) (models.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.Session{}, serr.ErrUnauthorized
	}

	sess, err := s.sessions.Get(ctx, token)
	if err != nil {
		return models.Session{}, err
	}
	if sess.Expired(s.clock.now()) {
		return models.Session{}, serr.ErrUnauthorized
	}
	return sess, nil
}

// establish создаёт сессию {id, email, name} для пользователя.
func (s *AuthService) establish(ctx context.Context, u *models.User) (models.Session, error) {
	token, err := crypto.NewSessionToken()
	if err != nil {
		return models.Session{}, serr.ErrInternal
	}

	now := s.clock.now()
	sess := models.Session{
		Token:     token,
		UserID:    u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Set(ctx, sess); err != nil {
		return models.Session{}, err
	}
	return sess, nil
}
