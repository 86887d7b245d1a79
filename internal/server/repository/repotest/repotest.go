// Package repotest — общий набор проверок для всех бэкендов репозиториев.
//
// Каждый бэкенд вызывает Run* в своих тестах, поэтому memory, mongo и postgres
// обязаны вести себя одинаково.
package repotest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/models"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-bookcorner/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/shared/utils"
)

// MissingID — валидный ObjectID, которого нет в базе.
// Для postgres это не uuid, что тоже должно давать ErrNotFound.
const MissingID = "000000000000000000000000"

var base = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// RunUsers проверяет контракт UsersRepo.
func RunUsers(t *testing.T, repo service.UsersRepo) {
	t.Helper()
	ctx := context.Background()

	_, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, serr.ErrNotFound)

	id, err := repo.Create(ctx, &models.User{
		Name: "Ann", Email: "ann@example.com", PasswordHash: "hash", CreatedAt: base,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	u, err := repo.GetByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	require.Equal(t, id, u.ID)
	require.Equal(t, "Ann", u.Name)
	require.Equal(t, "hash", u.PasswordHash)

	_, err = repo.Create(ctx, &models.User{Email: "ann@example.com", PasswordHash: "other", CreatedAt: base})
	require.ErrorIs(t, err, serr.ErrAlreadyExists)
}

// RunBooks проверяет контракт BooksRepo.
func RunBooks(t *testing.T, repo service.BooksRepo) {
	t.Helper()
	ctx := context.Background()

	before, err := repo.List(ctx)
	require.NoError(t, err)

	id1, err := repo.Create(ctx, &models.Book{Title: "X", Description: "Y", CreatedAt: base})
	require.NoError(t, err)
	id2, err := repo.Create(ctx, &models.Book{Title: "Later", Description: "D", Image: "http://img", CreatedAt: base.Add(time.Hour)})
	require.NoError(t, err)
	// тот же createdAt, что у первой: при равенстве порядок по вставке
	id3, err := repo.Create(ctx, &models.Book{Title: "Same time", Description: "D", CreatedAt: base})
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, len(before)+3)
	requireNewestFirst(t, list, func(b models.Book) time.Time { return b.CreatedAt })

	got := findBook(list, id1)
	require.NotNil(t, got)
	require.Equal(t, "X", got.Title)
	require.Equal(t, "Y", got.Description)
	require.Less(t, indexOfBook(list, id3), indexOfBook(list, id1))
	require.Less(t, indexOfBook(list, id2), indexOfBook(list, id3))

	require.NoError(t, repo.Update(ctx, id1, models.BookUpdate{Title: utils.Ptr("X2")}))
	list, err = repo.List(ctx)
	require.NoError(t, err)
	got = findBook(list, id1)
	require.Equal(t, "X2", got.Title)
	require.Equal(t, "Y", got.Description)

	require.ErrorIs(t, repo.Update(ctx, MissingID, models.BookUpdate{Title: utils.Ptr("Z")}), serr.ErrNotFound)
	require.ErrorIs(t, repo.Update(ctx, "not-an-id", models.BookUpdate{Title: utils.Ptr("Z")}), serr.ErrNotFound)

	// удаление несуществующего id не меняет коллекцию
	require.NoError(t, repo.Delete(ctx, MissingID))
	require.NoError(t, repo.Delete(ctx, "not-an-id"))
	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, len(before)+3)

	require.NoError(t, repo.Delete(ctx, id2))
	require.NoError(t, repo.Delete(ctx, id2))
	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, len(before)+2)
	require.Nil(t, findBook(list, id2))
}

// RunArticles проверяет контракт ArticlesRepo.
func RunArticles(t *testing.T, repo service.ArticlesRepo) {
	t.Helper()
	ctx := context.Background()

	before, err := repo.List(ctx)
	require.NoError(t, err)

	for i, title := range []string{"First", "Second", "Third"} {
		a := models.Article{Title: title, Content: "body " + title, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, a.Prepare())
		a.IsCommunity = true
		_, err := repo.Create(ctx, &a)
		require.NoError(t, err)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, len(before)+3)
	requireNewestFirst(t, list, func(a models.Article) time.Time { return a.CreatedAt })

	var third *models.Article
	for i := range list {
		if list[i].Title == "Third" {
			third = &list[i]
		}
	}
	require.NotNil(t, third)
	require.NotEmpty(t, third.ID)
	require.Equal(t, "third", third.Slug)
	require.Equal(t, models.DefaultTag, third.Tag)
	require.Equal(t, models.DefaultAuthor, third.Author)
	require.Equal(t, "body Third...", third.Excerpt)
	require.True(t, third.IsCommunity)
}

func requireNewestFirst[T any](t *testing.T, list []T, createdAt func(T) time.Time) {
	t.Helper()
	for i := 1; i < len(list); i++ {
		require.False(t, createdAt(list[i]).After(createdAt(list[i-1])),
			"element %d is newer than element %d", i, i-1)
	}
}

func findBook(list []models.Book, id string) *models.Book {
	if i := indexOfBook(list, id); i >= 0 {
		return &list[i]
	}
	return nil
}

func indexOfBook(list []models.Book, id string) int {
	for i := range list {
		if list[i].ID == id {
			return i
		}
	}
	return -1
}
