package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/config"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-bookcorner/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/shared/logger"
)

const secret = "0123456789abcdef0123456789abcdef"

// fakeResolver отдаёт сессии из map, для "boom" внутреннюю ошибку.
type fakeResolver map[string]models.Session

func (f fakeResolver) Current(_ context.Context, token string) (models.Session, error) {
	if token == "boom" {
		return models.Session{}, errors.New("store down")
	}
	s, ok := f[token]
	if !ok {
		return models.Session{}, serr.ErrUnauthorized
	}
	return s, nil
}

func newSessions(r middleware.SessionResolver) (*middleware.Sessions, *crypto.CookieSigner) {
	signer := crypto.NewCookieSigner(secret)
	cfg := config.SessionsConfig{CookieName: "sid"}
	return middleware.NewSessions(r, signer, cfg, logger.NewNop()), signer
}

func signed(t *testing.T, signer *crypto.CookieSigner, token string) *http.Cookie {
	t.Helper()
	v, err := signer.Sign(token, time.Now().Add(time.Hour))
	require.NoError(t, err)
	return &http.Cookie{Name: "sid", Value: v}
}

// captureSession — handler, запоминающий сессию из контекста.
func captureSession(got *models.Session, ok *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got, *ok = middleware.SessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestLoad_NoCookie(t *testing.T) {
	s, _ := newSessions(fakeResolver{})

	var got models.Session
	var ok bool
	rr := httptest.NewRecorder()
	s.Load(captureSession(&got, &ok)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.False(t, ok)
	require.Empty(t, rr.Header().Values("Set-Cookie"))
}

func TestLoad_ValidSession(t *testing.T) {
	s, signer := newSessions(fakeResolver{"tok": {Token: "tok", UserID: "u1", Email: "ann@example.com"}})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(signed(t, signer, "tok"))

	var got models.Session
	var ok bool
	rr := httptest.NewRecorder()
	s.Load(captureSession(&got, &ok)).ServeHTTP(rr, req)

	require.True(t, ok)
	require.Equal(t, "u1", got.UserID)
	require.Empty(t, rr.Header().Values("Set-Cookie"))
}

func TestLoad_UnknownSessionClearsCookie(t *testing.T) {
	s, signer := newSessions(fakeResolver{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(signed(t, signer, "gone"))

	var got models.Session
	var ok bool
	rr := httptest.NewRecorder()
	s.Load(captureSession(&got, &ok)).ServeHTTP(rr, req)

	require.False(t, ok)
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "sid", cookies[0].Name)
	require.Equal(t, -1, cookies[0].MaxAge)
}

func TestLoad_ForgedCookie(t *testing.T) {
	s, _ := newSessions(fakeResolver{"tok": {Token: "tok"}})

	forged, err := crypto.NewCookieSigner("another-secret-another-secret-xx").Sign("tok", time.Now().Add(time.Hour))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: forged})

	var got models.Session
	var ok bool
	rr := httptest.NewRecorder()
	s.Load(captureSession(&got, &ok)).ServeHTTP(rr, req)

	require.False(t, ok)
	require.Len(t, rr.Result().Cookies(), 1)
}

func TestLoad_StoreErrorServesAnonymously(t *testing.T) {
	s, signer := newSessions(fakeResolver{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(signed(t, signer, "boom"))

	var got models.Session
	var ok bool
	rr := httptest.NewRecorder()
	s.Load(captureSession(&got, &ok)).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.False(t, ok)
	// cookie не трогаем: сессия может быть ещё жива
	require.Empty(t, rr.Header().Values("Set-Cookie"))
}

func TestRequire(t *testing.T) {
	s, _ := newSessions(fakeResolver{})
	h := s.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin/books", nil))
	require.Equal(t, http.StatusSeeOther, rr.Code)
	require.Equal(t, "/signin", rr.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/admin/books", nil)
	req = req.WithContext(middleware.WithSession(req.Context(), models.Session{UserID: "u1"}))
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNoContent, rr.Code)
}

func TestSetCookie_RoundTrip(t *testing.T) {
	s, _ := newSessions(fakeResolver{})

	rr := httptest.NewRecorder()
	require.NoError(t, s.SetCookie(rr, models.Session{Token: "tok", ExpiresAt: time.Now().Add(time.Hour)}))

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	require.Equal(t, "sid", c.Name)
	require.True(t, c.HttpOnly)
	require.Equal(t, http.SameSiteLaxMode, c.SameSite)
	require.Equal(t, "/", c.Path)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(c)
	require.Equal(t, "tok", s.Token(req))
}

func TestSetCookie_MaxAgeFollowsSessionClock(t *testing.T) {
	s, _ := newSessions(fakeResolver{})

	// сессия выдана по часам далеко в прошлом, но живёт ещё 14 дней от своего CreatedAt
	created := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	sess := models.Session{Token: "tok", CreatedAt: created, ExpiresAt: created.Add(14 * 24 * time.Hour)}

	rr := httptest.NewRecorder()
	require.NoError(t, s.SetCookie(rr, sess))

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, 14*24*60*60, cookies[0].MaxAge)
	require.NotEmpty(t, cookies[0].Value)
}

func TestToken_Missing(t *testing.T) {
	s, _ := newSessions(fakeResolver{})
	require.Empty(t, s.Token(httptest.NewRequest(http.MethodPost, "/logout", nil)))
}

// Статус по умолчанию и размер
func TestResponseWriter_Write_DefaultStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &middleware.ResponseWriter{ResponseWriter: rr}

	body := []byte("hello")
	n, err := w.Write(body)

	require.NoError(t, err)
	require.Equal(t, len(body), n)
	require.Equal(t, http.StatusOK, w.Status)
	require.Equal(t, len(body), w.Size)
}

// проверка корректного прохода статуса и тела через мидлу
func TestLoggerMiddleware(t *testing.T) {
	mw := middleware.LoggerMiddleware(logger.NewNop())

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("tea"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusTeapot, rr.Code)
	require.Equal(t, "tea", rr.Body.String())
}
