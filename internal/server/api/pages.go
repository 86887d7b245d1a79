// Статические страницы и health-check
package api

import (
	"net/http"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/view"
)

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, view.PageHome, "", nil)
}

func (h *Handler) About(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, view.PageAbout, "About", nil)
}

func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, view.PageArchive, "Archive", nil)
}

// NotFound рисует страницу 404 для неизвестных маршрутов.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.fail(w, r, http.StatusNotFound, "not found", nil)
}

// Health — проверка живости процесса.
//
// @Summary      Health check
// @Tags         system
// @Produce      plain
// @Success      200 {string} string "ok"
// @Router       /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(ContentType, "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
