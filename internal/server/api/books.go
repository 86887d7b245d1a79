package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	smodels "github.com/IvanChernomyrdin/go-bookcorner/internal/server/models"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/view"
	serr "github.com/IvanChernomyrdin/go-bookcorner/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/shared/models"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/shared/utils"
)

// adminBooksPath — куда возвращаются все мутации каталога.
const adminBooksPath = "/admin/books"

// BooksPage рисует публичный каталог.
func (h *Handler) BooksPage(w http.ResponseWriter, r *http.Request) {
	h.renderBooks(w, r, view.PageBooks, "Books")
}

// AdminBooksPage рисует страницу управления каталогом.
func (h *Handler) AdminBooksPage(w http.ResponseWriter, r *http.Request) {
	h.renderBooks(w, r, view.PageAdminBooks, "Manage books")
}

func (h *Handler) renderBooks(w http.ResponseWriter, r *http.Request, page, title string) {
	books, err := h.Svc.Books.List(r.Context())
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, "list books", err)
		return
	}
	h.render(w, r, http.StatusOK, page, title, view.BooksData{Books: books})
}

// CreateBook добавляет книгу в каталог.
//
// Ответы:
//   - 303 на /admin/books: книга создана;
//   - 400: пустые title или description, битая форма;
//   - 500: ошибка хранилища.
func (h *Handler) CreateBook(w http.ResponseWriter, r *http.Request) {
	form, err := h.decodeBook(w, r)
	if err != nil {
		h.fail(w, r, http.StatusBadRequest, "create book", err)
		return
	}

	_, err = h.Svc.Books.Create(r.Context(),
		utils.Deref(form.Title), utils.Deref(form.Description), utils.Deref(form.Image))
	if err != nil {
		if errors.Is(err, serr.ErrInvalidInput) {
			h.fail(w, r, http.StatusBadRequest, "create book", err)
			return
		}
		h.fail(w, r, http.StatusInternalServerError, "create book", err)
		return
	}
	redirect(w, r, adminBooksPath)
}

// UpdateBook меняет поля книги {id}, пришедшие в форме.
//
// Неизвестный id не ошибка для клиента: событие пишется в лог,
// клиент всё равно уходит на /admin/books.
func (h *Handler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	form, err := h.decodeBook(w, r)
	if err != nil {
		h.fail(w, r, http.StatusBadRequest, "update book", err)
		return
	}
	upd, err := form.Update()
	if err != nil {
		h.fail(w, r, http.StatusBadRequest, "update book", err)
		return
	}

	if err := h.Svc.Books.Update(r.Context(), id, upd); err != nil {
		switch {
		case errors.Is(err, serr.ErrNotFound):
			h.Log.Warn("update of missing book", zap.String("id", id))
		case errors.Is(err, serr.ErrInvalidInput):
			h.fail(w, r, http.StatusBadRequest, "update book", err)
			return
		default:
			h.fail(w, r, http.StatusInternalServerError, "update book", err)
			return
		}
	}
	redirect(w, r, adminBooksPath)
}

// DeleteBook удаляет книгу {id}. Повторное удаление тоже редиректит.
func (h *Handler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Books.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, http.StatusInternalServerError, "delete book", err)
		return
	}
	redirect(w, r, adminBooksPath)
}

// ListBooksJSON отдаёт каталог в JSON.
//
// @Summary      List books
// @Description  Returns the book catalog, newest first.
// @Tags         books
// @Produce      json
// @Success      200 {object} models.BooksResponse
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /api/books [get]
func (h *Handler) ListBooksJSON(w http.ResponseWriter, r *http.Request) {
	books, err := h.Svc.Books.List(r.Context())
	if err != nil {
		h.Log.LogError("list books", err)
		WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		return
	}

	out := models.BooksResponse{Books: make([]models.Book, 0, len(books))}
	for _, b := range books {
		out.Books = append(out.Books, bookDTO(b))
	}
	WriteJSON(w, http.StatusOK, out)
}

func bookDTO(b smodels.Book) models.Book {
	return models.Book{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		Image:       b.Image,
		CreatedAt:   b.CreatedAt,
	}
}
