package view_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/models"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/view"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/shared/filter"
)

func newRenderer(t *testing.T) *view.Renderer {
	t.Helper()
	r, err := view.New()
	require.NoError(t, err)
	return r
}

func TestRender_StaticPages(t *testing.T) {
	r := newRenderer(t)
	for _, name := range []string{view.PageHome, view.PageAbout, view.PageArchive, view.PageSignIn, view.PageWrite} {
		rr := httptest.NewRecorder()
		require.NoError(t, r.Render(rr, http.StatusOK, name, view.Page{}), name)
		require.Equal(t, http.StatusOK, rr.Code)
		require.Contains(t, rr.Body.String(), "<nav>")
		require.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	}
}

func TestRender_UnknownPage(t *testing.T) {
	r := newRenderer(t)
	require.Error(t, r.Render(httptest.NewRecorder(), http.StatusOK, "nope", view.Page{}))
}

func TestRender_SessionInHeader(t *testing.T) {
	r := newRenderer(t)
	rr := httptest.NewRecorder()

	sess := &models.Session{Email: "ann@example.com", Name: "Ann"}
	require.NoError(t, r.Render(rr, http.StatusOK, view.PageHome, view.Page{Session: sess}))
	require.Contains(t, rr.Body.String(), "Ann")
	require.Contains(t, rr.Body.String(), `action="/logout"`)
	require.NotContains(t, rr.Body.String(), `href="/signin"`)
}

func TestRender_BooksEscapesContent(t *testing.T) {
	r := newRenderer(t)
	rr := httptest.NewRecorder()

	data := view.BooksData{Books: []models.Book{{ID: "b1", Title: "<script>x</script>", Description: "D"}}}
	require.NoError(t, r.Render(rr, http.StatusOK, view.PageBooks, view.Page{Data: data}))
	require.NotContains(t, rr.Body.String(), "<script>x</script>")
	require.Contains(t, rr.Body.String(), "&lt;script&gt;")
}

func TestRender_ArticlesHighlight(t *testing.T) {
	r := newRenderer(t)
	rr := httptest.NewRecorder()

	a := models.Article{ID: "a1", Title: "Zen <b>garden</b>", Excerpt: "calm zen", Tag: "Travel",
		Author: "Ann", ReadTime: "5 min read", CreatedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)}
	matches := filter.Apply(filter.State{Query: "zen"}, []filter.Item{{
		ID: a.ID, Title: a.Title, Excerpt: a.Excerpt, Author: a.Author, Tag: a.Tag,
	}})
	require.Len(t, matches, 1)

	data := view.ArticlesData{
		Query:      "zen",
		Categories: []string{"Travel"},
		Articles:   []view.ArticleRow{view.NewArticleRow(a, matches[0])},
	}
	require.NoError(t, r.Render(rr, http.StatusOK, view.PageArticles, view.Page{Data: data}))

	body := rr.Body.String()
	require.Contains(t, body, "<mark>Zen</mark> &lt;b&gt;garden&lt;/b&gt;")
	require.Contains(t, body, "calm <mark>zen</mark>")
	require.Contains(t, body, "Jan 2, 2026")
}

func TestRender_ArticlesEmpty(t *testing.T) {
	r := newRenderer(t)
	rr := httptest.NewRecorder()

	require.NoError(t, r.Render(rr, http.StatusOK, view.PageArticles, view.Page{Data: view.ArticlesData{}}))
	require.Contains(t, rr.Body.String(), "No articles found.")
}

func TestRender_ErrorStatus(t *testing.T) {
	r := newRenderer(t)
	rr := httptest.NewRecorder()

	require.NoError(t, r.Render(rr, http.StatusInternalServerError, view.PageError,
		view.Page{Data: view.ErrorData{Status: 500, Message: "internal error"}}))
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Contains(t, rr.Body.String(), "internal error")
}
