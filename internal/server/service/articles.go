package service

import (
	"context"
	"time"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/models"
)

// ArticlesService принимает статьи сообщества и отдаёт их список.
// Редактирования и удаления статей нет.
type ArticlesService struct {
	repo  ArticlesRepo
	clock clock
}

// NewArticlesService создаёт новый ArticlesService.
func NewArticlesService(repo ArticlesRepo) *ArticlesService {
	return &ArticlesService{repo: repo}
}

// WithClock подменяет источник времени (для тестов).
func (s *ArticlesService) WithClock(now func() time.Time) *ArticlesService {
	s.clock = now
	return s
}

// Submit сохраняет статью из публичной формы.
//
// Проставляет значения по умолчанию (tag, author, readTime, excerpt, slug),
// isCommunity = true и время создания.
//
// Ошибки:
//   - ErrInvalidInput — пустые title или content.
func (s *ArticlesService) Submit(ctx context.Context, a models.Article) (models.Article, error) {
	a.ID = ""
	if err := a.Prepare(); err != nil {
		return models.Article{}, err
	}
	a.IsCommunity = true
	a.CreatedAt = s.clock.now()

	id, err := s.repo.Create(ctx, &a)
	if err != nil {
		return models.Article{}, err
	}
	a.ID = id
	return a, nil
}

// List возвращает все статьи от новых к старым.
func (s *ArticlesService) List(ctx context.Context) ([]models.Article, error) {
	return s.repo.List(ctx)
}
