// Package api реализует HTTP-слой сервера BookCorner.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - разбор форм в типизированные запросы и их валидацию;
//   - рендер страниц, JSON API и RSS-ленту;
//   - маппинг доменных ошибок (service/repository) в HTTP-коды и редиректы.
//
// Клиент никогда не получает деталей ошибки: только общий текст или редирект.
// Подробности пишутся в лог.
package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/config"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/service"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/view"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/shared/logger"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/shared/models"
)

// Каждый JSON-ответ выставляет эти заголовки.
const (
	JsonContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
//
// Handler содержит:
//   - Svc: сервисный слой (бизнес-логика);
//   - Log: логгер для записи событий и ошибок;
//   - Sessions: cookie и сессии пользователя;
//   - View: рендер HTML-страниц.
type Handler struct {
	Svc      *service.Services
	Log      *logger.HTTPLogger
	Sessions *middleware.Sessions
	View     *view.Renderer

	feed    config.FeedConfig
	maxBody int64
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
// Из cfg берутся шапка RSS-ленты и лимит размера тела формы.
func NewHandler(svc *service.Services, log *logger.HTTPLogger, sessions *middleware.Sessions, v *view.Renderer, cfg *config.Config) *Handler {
	return &Handler{
		Svc:      svc,
		Log:      log,
		Sessions: sessions,
		View:     v,
		feed:     cfg.Feed,
		maxBody:  cfg.Server.MaxBodyBytes,
	}
}

// WriteJSON пишет v как JSON со статусом status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Вспомогательная функция вывода ошибки
func WriteError(w http.ResponseWriter, status int, err error) {
	WriteJSON(w, status, models.ErrorResponse{Error: err.Error()})
}

// render рисует страницу name, подставляя сессию из контекста.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	p := view.Page{Title: title, Data: data}
	if sess, ok := middleware.SessionFromContext(r.Context()); ok {
		p.Session = &sess
	}
	if err := h.View.Render(w, status, name, p); err != nil {
		h.Log.LogError("render "+name, err, zap.String("uri", r.RequestURI))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// fail логирует err и отдаёт страницу ошибки с общим текстом.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, status int, op string, err error) {
	if status >= http.StatusInternalServerError {
		h.Log.LogError(op, err, zap.String("method", r.Method), zap.String("uri", r.RequestURI))
	}
	h.render(w, r, status, view.PageError, http.StatusText(status), view.ErrorData{
		Status:  status,
		Message: http.StatusText(status),
	})
}

// redirect — ответ на POST: 303 See Other.
func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}
