package memory_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/agent/memory"
	serr "github.com/IvanChernomyrdin/go-bookcorner/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/shared/filter"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/shared/models"
)

func sample() []models.Article {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return []models.Article{
		{ID: "b", Title: "Second", Tag: "Food", Author: "Mila", CreatedAt: now},
		{ID: "a", Title: "First", Tag: "Culture", Excerpt: "zen", CreatedAt: now.Add(-time.Hour)},
	}
}

func TestArticlesStore_ReplaceAllKeepsOrder(t *testing.T) {
	s := memory.NewArticles()
	s.ReplaceAll(sample())

	list := s.List()
	require.Equal(t, "b", list[0].ID)
	require.Equal(t, "a", list[1].ID)

	a, err := s.Get("a")
	require.NoError(t, err)
	require.Equal(t, "First", a.Title)

	_, err = s.Get("zzz")
	require.ErrorIs(t, err, serr.ErrNotFound)
}

func TestArticlesStore_ListIsCopy(t *testing.T) {
	s := memory.NewArticles()
	s.ReplaceAll(sample())

	list := s.List()
	list[0].Title = "changed"
	got, err := s.Get("b")
	require.NoError(t, err)
	require.Equal(t, "Second", got.Title)
}

func TestItems_MapsFilterFields(t *testing.T) {
	items := memory.Items(sample())
	require.Equal(t, filter.Item{ID: "a", Title: "First", Excerpt: "zen", Tag: "Culture"}, items[1])
}

func TestArticlesFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "articles.json")

	s := memory.NewArticles()
	s.ReplaceAll(sample())
	require.NoError(t, memory.SaveArticles(path, s))

	loaded := memory.NewArticles()
	require.NoError(t, memory.LoadArticles(path, loaded))
	require.Len(t, loaded.List(), 2)
	got, err := loaded.Get("b")
	require.NoError(t, err)
	require.True(t, got.CreatedAt.Equal(sample()[0].CreatedAt))
}

func TestLoadArticles_MissingFileKeepsStore(t *testing.T) {
	s := memory.NewArticles()
	s.ReplaceAll(sample())
	require.NoError(t, memory.LoadArticles(filepath.Join(t.TempDir(), "none.json"), s))
	require.Len(t, s.List(), 2)
}

func TestLoadArticles_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "articles.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))
	require.Error(t, memory.LoadArticles(path, memory.NewArticles()))
}

func TestSubscriptionsFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subscriptions.json")

	subs, err := memory.LoadSubscriptions(path)
	require.NoError(t, err)
	require.Empty(t, subs.IDs())

	require.True(t, subs.Toggle("b"))
	require.True(t, subs.Toggle("a"))
	require.NoError(t, memory.SaveSubscriptions(path, subs))

	loaded, err := memory.LoadSubscriptions(path)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, loaded.IDs())
	require.True(t, loaded.IsSubscribed("a"))
}

func TestDefaultPaths_UnderBookcornerDir(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	p, err := memory.DefaultSubscriptionsPath()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".bookcorner", "subscriptions.json"), p)

	p, err = memory.DefaultArticlesPath()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".bookcorner", "articles.json"), p)
}
