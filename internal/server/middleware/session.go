// Package middleware содержит HTTP middleware сервера.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/config"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-bookcorner/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/shared/logger"
)

// ctxKey используется как тип ключа для хранения значений в context.Context.
// Отдельный тип предотвращает коллизии ключей между пакетами.
type ctxKey string

// sessionKey — ключ контекста, под которым хранится сессия пользователя.
const sessionKey ctxKey = "session"

// SessionResolver находит живую сессию по токену (service.AuthService).
type SessionResolver interface {
	Current(ctx context.Context, token string) (models.Session, error)
}

// Sessions связывает cookie запроса с серверной сессией.
//
// Используется для:
//   - загрузки сессии в context.Context (Load);
//   - закрытия admin-маршрутов (Require);
//   - выставления и удаления cookie после signin/signup/logout.
type Sessions struct {
	resolver SessionResolver
	signer   *crypto.CookieSigner
	log      *logger.HTTPLogger

	cookieName string
	secure     bool
}

// NewSessions создаёт Sessions с настройками cookie из auth.sessions.
func NewSessions(resolver SessionResolver, signer *crypto.CookieSigner, cfg config.SessionsConfig, log *logger.HTTPLogger) *Sessions {
	return &Sessions{
		resolver:   resolver,
		signer:     signer,
		log:        log,
		cookieName: cfg.CookieName,
		secure:     cfg.CookieSecure,
	}
}

// SessionFromContext извлекает сессию из контекста.
//
// Возвращает:
//   - сессию
//   - false, если пользователь не вошёл
func SessionFromContext(ctx context.Context) (models.Session, bool) {
	s, ok := ctx.Value(sessionKey).(models.Session)
	return s, ok
}

// WithSession кладёт сессию в контекст.
func WithSession(ctx context.Context, s models.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// Token возвращает токен сессии из cookie запроса или пустую строку,
// если cookie нет или подпись не сходится.
func (s *Sessions) Token(r *http.Request) string {
	c, err := r.Cookie(s.cookieName)
	if err != nil {
		return ""
	}
	token, err := s.signer.Parse(c.Value)
	if err != nil {
		return ""
	}
	return token
}

// Load — middleware, который подгружает сессию, если она есть.
//
// Отсутствие сессии не ошибка: запрос идёт дальше анонимным.
// Cookie с битой подписью или с уже несуществующей сессией удаляется.
func (s *Sessions) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(s.cookieName)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		token, err := s.signer.Parse(c.Value)
		if err != nil {
			s.ClearCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		sess, err := s.resolver.Current(r.Context(), token)
		switch {
		case err == nil:
			r = r.WithContext(WithSession(r.Context(), sess))
		case errors.Is(err, serr.ErrUnauthorized):
			s.ClearCookie(w)
		default:
			// хранилище недоступно: страница всё равно отдаётся, но анонимно
			s.log.LogError("load session", err)
		}
		next.ServeHTTP(w, r)
	})
}

// Require — middleware, пропускающий только запросы с сессией.
// Остальных отправляет на /signin.
func (s *Sessions) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := SessionFromContext(r.Context()); !ok {
			http.Redirect(w, r, "/signin", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SetCookie выставляет подписанную cookie сессии.
func (s *Sessions) SetCookie(w http.ResponseWriter, sess models.Session) error {
	value, err := s.signer.Sign(sess.Token, sess.ExpiresAt)
	if err != nil {
		return err
	}
	// срок жизни считаем по часам сервиса, выдавшего сессию
	ttl := sess.ExpiresAt.Sub(sess.CreatedAt)
	if sess.CreatedAt.IsZero() {
		ttl = time.Until(sess.ExpiresAt)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    value,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearCookie удаляет cookie сессии у клиента.
func (s *Sessions) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
