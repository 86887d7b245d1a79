// Package postgres реализует репозитории BookCorner поверх PostgreSQL (pgx stdlib).
package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgconn"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/models"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/repository"
	serr "github.com/IvanChernomyrdin/go-bookcorner/internal/shared/errors"
)

// Коды ошибок PostgreSQL, которые репозитории различают.
const (
	codeUniqueViolation = "23505"
	codeInvalidText     = "22P02" // например, id не является uuid
)

type UsersRepository struct {
	db *sql.DB
}

func NewUsersRepository(db *sql.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

// Create сохраняет пользователя. Уникальный индекс по email даёт ErrAlreadyExists.
func (r *UsersRepository) Create(ctx context.Context, u *models.User) (string, error) {
	var id string

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (name, email, password_hash, created_at)
		 VALUES ($1,$2,$3,$4)
		 RETURNING id`,
		u.Name, u.Email, u.PasswordHash, u.CreatedAt,
	).Scan(&id)

	if err != nil {
		if pgCode(err) == codeUniqueViolation {
			return "", serr.ErrAlreadyExists
		}
		return "", repository.Internal("users create", err)
	}

	return id, nil
}

func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User

	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE email=$1`,
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, serr.ErrNotFound
		}
		return nil, repository.Internal("users get by email", err)
	}

	return &u, nil
}

// pgCode достаёт SQLSTATE из ошибки pgx, если она есть.
func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
