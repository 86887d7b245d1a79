package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/agent/api"
	serr "github.com/IvanChernomyrdin/go-bookcorner/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/shared/models"
)

func newServer(t *testing.T, mux *http.ServeMux) *api.Client {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL + "/")
}

func TestSignIn_SuccessReturnsCookie(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /signin", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "a@b.c", r.PostForm.Get("email"))
		require.Equal(t, "pw", r.PostForm.Get("password"))
		http.SetCookie(w, &http.Cookie{Name: api.DefaultCookieName, Value: "sid-1", Path: "/"})
		http.Redirect(w, r, "/", http.StatusSeeOther)
	})
	mux.HandleFunc("GET /", func(http.ResponseWriter, *http.Request) {
		t.Fatal("redirect must not be followed")
	})

	sid, err := newServer(t, mux).SignIn("a@b.c", "pw")
	require.NoError(t, err)
	require.Equal(t, "sid-1", sid)
}

func TestSignIn_RedirectToSignInIsInvalidCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /signin", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/signin", http.StatusSeeOther)
	})

	_, err := newServer(t, mux).SignIn("a@b.c", "bad")
	require.ErrorIs(t, err, serr.ErrInvalidCredentials)
}

func TestSignUp_SendsNameAndRejectsDuplicate(t *testing.T) {
	calls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("POST /signup", func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.NoError(t, r.ParseForm())
		require.Equal(t, "Mila", r.PostForm.Get("name"))
		if calls > 1 {
			http.Redirect(w, r, "/signin", http.StatusSeeOther)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: api.DefaultCookieName, Value: "sid-2"})
		http.Redirect(w, r, "/", http.StatusSeeOther)
	})
	c := newServer(t, mux)

	sid, err := c.SignUp("Mila", "m@x.y", "pw")
	require.NoError(t, err)
	require.Equal(t, "sid-2", sid)

	_, err = c.SignUp("Mila", "m@x.y", "pw")
	require.ErrorIs(t, err, serr.ErrInvalidInput)
}

func TestSignOut_SendsCookie(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /logout", func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie(api.DefaultCookieName)
		require.NoError(t, err)
		require.Equal(t, "sid-3", ck.Value)
		http.SetCookie(w, &http.Cookie{Name: api.DefaultCookieName, MaxAge: -1})
		http.Redirect(w, r, "/", http.StatusSeeOther)
	})

	require.NoError(t, newServer(t, mux).SignOut("sid-3"))
}

func TestListArticles_DecodesEnvelope(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/articles", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.ArticlesResponse{Articles: []models.Article{
			{ID: "2", Title: "New"}, {ID: "1", Title: "Old"},
		}})
	})

	got, err := newServer(t, mux).ListArticles()
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "2", got[0].ID)
}

func TestListBooks_ServerErrorIsInternal(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/books", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal error"}`))
	})

	_, err := newServer(t, mux).ListBooks()
	require.ErrorIs(t, err, serr.ErrInternal)

	var apiErr *api.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "internal error", apiErr.Message)
}

func TestSubmitArticle_OmitsEmptyOptionalFields(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /write", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "T", r.PostForm.Get("title"))
		require.Equal(t, "food", r.PostForm.Get("tag"))
		_, hasAuthor := r.PostForm["author"]
		require.False(t, hasAuthor)
		http.Redirect(w, r, "/articles", http.StatusSeeOther)
	})

	err := newServer(t, mux).SubmitArticle("", api.ArticleDraft{Title: "T", Content: "C", Tag: "food"})
	require.NoError(t, err)
}

func TestSubmitArticle_BadRequestIsInvalidInput(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /write", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("<html>Title and content are required.</html>"))
	})

	err := newServer(t, mux).SubmitArticle("", api.ArticleDraft{})
	require.ErrorIs(t, err, serr.ErrInvalidInput)
}

func TestEditBook_SendsOnlyGivenFields(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /admin/books/{id}/edit", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "b1", r.PathValue("id"))
		require.NoError(t, r.ParseForm())
		require.Equal(t, "", r.PostForm.Get("title"))
		_, hasTitle := r.PostForm["title"]
		require.True(t, hasTitle)
		_, hasDesc := r.PostForm["description"]
		require.False(t, hasDesc)
		http.Redirect(w, r, "/admin/books", http.StatusSeeOther)
	})

	empty := ""
	require.NoError(t, newServer(t, mux).EditBook("", "b1", api.BookPatch{Title: &empty}))
}

func TestAdmin_RedirectToSignInIsUnauthorized(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /admin/books/{id}/delete", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/signin", http.StatusSeeOther)
	})

	err := newServer(t, mux).RemoveBook("", "b1")
	require.ErrorIs(t, err, serr.ErrUnauthorized)
}
