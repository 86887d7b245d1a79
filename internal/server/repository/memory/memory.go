// Package memory — репозитории BookCorner в памяти процесса.
//
// Подходят для локальной разработки (db.driver: memory) и тестов.
// Данные пропадают при перезапуске.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-bookcorner/internal/shared/errors"
)

// record хранит порядковый номер вставки для стабильной сортировки.
type record[T any] struct {
	seq  int64
	item T
}

// newestFirst сортирует по времени создания, при равенстве по порядку вставки.
func newestFirst[T any](recs []record[T], createdAt func(T) time.Time) []T {
	sort.Slice(recs, func(i, j int) bool {
		ti, tj := createdAt(recs[i].item), createdAt(recs[j].item)
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return recs[i].seq > recs[j].seq
	})
	out := make([]T, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.item)
	}
	return out
}

// UsersRepository — пользователи в памяти. Уникальность email проверяется под мьютексом.
type UsersRepository struct {
	mu      sync.RWMutex
	byEmail map[string]models.User
}

func NewUsersRepository() *UsersRepository {
	return &UsersRepository{byEmail: make(map[string]models.User)}
}

func (r *UsersRepository) Create(_ context.Context, u *models.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[u.Email]; ok {
		return "", serr.ErrAlreadyExists
	}
	rec := *u
	rec.ID = uuid.NewString()
	r.byEmail[rec.Email] = rec
	return rec.ID, nil
}

func (r *UsersRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[email]
	if !ok {
		return nil, serr.ErrNotFound
	}
	return &u, nil
}

// BooksRepository — каталог книг в памяти.
type BooksRepository struct {
	mu    sync.RWMutex
	seq   int64
	books map[string]record[models.Book]
}

func NewBooksRepository() *BooksRepository {
	return &BooksRepository{books: make(map[string]record[models.Book])}
}

func (r *BooksRepository) Create(_ context.Context, b *models.Book) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	rec := *b
	rec.ID = uuid.NewString()
	r.books[rec.ID] = record[models.Book]{seq: r.seq, item: rec}
	return rec.ID, nil
}

func (r *BooksRepository) List(_ context.Context) ([]models.Book, error) {
	r.mu.RLock()
	recs := make([]record[models.Book], 0, len(r.books))
	for _, rec := range r.books {
		recs = append(recs, rec)
	}
	r.mu.RUnlock()

	return newestFirst(recs, func(b models.Book) time.Time { return b.CreatedAt }), nil
}

func (r *BooksRepository) Update(_ context.Context, id string, upd models.BookUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.books[id]
	if !ok {
		return serr.ErrNotFound
	}
	upd.Apply(&rec.item)
	r.books[id] = rec
	return nil
}

func (r *BooksRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.books, id)
	return nil
}

// ArticlesRepository — статьи в памяти.
type ArticlesRepository struct {
	mu       sync.RWMutex
	seq      int64
	articles []record[models.Article]
}

func NewArticlesRepository() *ArticlesRepository {
	return &ArticlesRepository{}
}

func (r *ArticlesRepository) Create(_ context.Context, a *models.Article) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	rec := *a
	rec.ID = uuid.NewString()
	r.articles = append(r.articles, record[models.Article]{seq: r.seq, item: rec})
	return rec.ID, nil
}

func (r *ArticlesRepository) List(_ context.Context) ([]models.Article, error) {
	r.mu.RLock()
	recs := make([]record[models.Article], len(r.articles))
	copy(recs, r.articles)
	r.mu.RUnlock()

	return newestFirst(recs, func(a models.Article) time.Time { return a.CreatedAt }), nil
}
