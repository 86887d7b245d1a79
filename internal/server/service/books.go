package service

import (
	"context"
	"strings"
	"time"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-bookcorner/internal/shared/errors"
)

// BooksService реализует CRUD каталога книг.
// Сервис валидирует входные данные и не знает о HTTP и БД напрямую.
type BooksService struct {
	repo  BooksRepo
	clock clock
}

// NewBooksService создаёт новый BooksService.
func NewBooksService(repo BooksRepo) *BooksService {
	return &BooksService{repo: repo}
}

// WithClock подменяет источник времени (для тестов).
func (s *BooksService) WithClock(now func() time.Time) *BooksService {
	s.clock = now
	return s
}

// Create добавляет книгу в каталог.
//
// Ошибки:
//   - ErrInvalidInput — пустые title или description;
//   - ошибка хранилища как есть.
func (s *BooksService) Create(ctx context.Context, title, description, image string) (models.Book, error) {
	b := models.Book{
		Title:       title,
		Description: description,
		Image:       image,
	}
	if err := b.Validate(); err != nil {
		return models.Book{}, err
	}
	b.CreatedAt = s.clock.now()

	id, err := s.repo.Create(ctx, &b)
	if err != nil {
		return models.Book{}, err
	}
	b.ID = id
	return b, nil
}

// List возвращает все книги от новых к старым.
func (s *BooksService) List(ctx context.Context) ([]models.Book, error) {
	return s.repo.List(ctx)
}

// Update меняет заданные поля книги id.
//
// Ошибки:
//   - ErrInvalidInput — пустой id или пустое обязательное поле;
//   - ErrNotFound — книги с таким id нет.
func (s *BooksService) Update(ctx context.Context, id string, upd models.BookUpdate) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return serr.ErrInvalidInput
	}
	if err := upd.Validate(); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, upd)
}

// Delete удаляет книгу. Повторное удаление и неизвестный id не ошибка.
func (s *BooksService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	return s.repo.Delete(ctx, id)
}
