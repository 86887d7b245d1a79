// Package memory хранит локальное состояние CLI-клиента:
// кэш последнего полученного списка статей и отметки подписок.
//
// Оба набора живут в памяти и сохраняются в каталог ~/.bookcorner,
// чтобы `articles list --offline` и `--subscribed` работали без сервера.
package memory

import (
	"sync"

	serr "github.com/IvanChernomyrdin/go-bookcorner/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/shared/filter"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/shared/models"
)

// ArticlesStore — потокобезопасный кэш статей.
//
// Порядок сохраняется таким, каким его вернул сервер (новые первыми).
type ArticlesStore struct {
	mu       sync.RWMutex
	articles []models.Article
	byID     map[string]int
}

// NewArticles создаёт пустой кэш статей.
func NewArticles() *ArticlesStore {
	return &ArticlesStore{byID: make(map[string]int)}
}

// ReplaceAll полностью заменяет содержимое кэша.
//
// Используется после загрузки списка с сервера. При дубликатах id
// в индексе остаётся последнее вхождение.
func (s *ArticlesStore) ReplaceAll(articles []models.Article) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.articles = append([]models.Article(nil), articles...)
	s.byID = make(map[string]int, len(articles))
	for i, a := range s.articles {
		s.byID[a.ID] = i
	}
}

// Get возвращает статью по id или serr.ErrNotFound.
func (s *ArticlesStore) Get(id string) (models.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return models.Article{}, serr.ErrNotFound
	}
	return s.articles[i], nil
}

// List возвращает копию списка статей.
func (s *ArticlesStore) List() []models.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Article(nil), s.articles...)
}

// Items переводит статьи в элементы фильтра.
func Items(articles []models.Article) []filter.Item {
	out := make([]filter.Item, 0, len(articles))
	for _, a := range articles {
		out = append(out, filter.Item{
			ID:      a.ID,
			Title:   a.Title,
			Excerpt: a.Excerpt,
			Author:  a.Author,
			Tag:     a.Tag,
		})
	}
	return out
}
