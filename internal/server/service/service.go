// Package service содержит бизнес-логику BookCorner.
// Это прослойка между HTTP-обработчиками (api) и хранилищами (repository, session).
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/config"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/models"
)

// Repositories — набор интерфейсов, которые сервисный слой ожидает от хранилищ.
type Repositories struct {
	Users    UsersRepo
	Books    BooksRepo
	Articles ArticlesRepo
	Sessions SessionStore
}

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Auth     *AuthService
	Books    *BooksService
	Articles *ArticlesService
}

// NewServices собирает все сервисы приложения.
// cfg нужен AuthService (хэширование пароля и срок жизни сессии).
func NewServices(repos Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth:     NewAuthService(repos.Users, repos.Sessions, cfg),
		Books:    NewBooksService(repos.Books),
		Articles: NewArticlesService(repos.Articles),
	}
}

// UsersRepo — репозиторий пользователей (нужен для signup/signin).
type UsersRepo interface {
	// Create сохраняет пользователя и возвращает его id.
	// ErrAlreadyExists, если хранилище само поймало дубль email.
	Create(ctx context.Context, u *models.User) (string, error)
	// GetByEmail ищет пользователя по нормализованному email. ErrNotFound, если нет.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// BooksRepo — репозиторий книг каталога.
type BooksRepo interface {
	Create(ctx context.Context, b *models.Book) (string, error)
	// List возвращает книги от новых к старым.
	List(ctx context.Context) ([]models.Book, error)
	// Update меняет заданные поля. ErrNotFound, если id нет.
	Update(ctx context.Context, id string, upd models.BookUpdate) error
	// Delete удаляет книгу. Отсутствующий id не ошибка.
	Delete(ctx context.Context, id string) error
}

// ArticlesRepo — репозиторий статей.
type ArticlesRepo interface {
	Create(ctx context.Context, a *models.Article) (string, error)
	// List возвращает статьи от новых к старым.
	List(ctx context.Context) ([]models.Article, error)
}

// SessionStore — серверное хранилище сессий по токену.
type SessionStore interface {
	// Get возвращает живую сессию. ErrUnauthorized, если её нет или она истекла.
	Get(ctx context.Context, token string) (models.Session, error)
	// Set сохраняет сессию до s.ExpiresAt.
	Set(ctx context.Context, s models.Session) error
	// Destroy удаляет сессию. Отсутствующая сессия не ошибка.
	Destroy(ctx context.Context, token string) error
}

// clock позволяет тестам подменять текущее время.
type clock func() time.Time

func (c clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c()
}
