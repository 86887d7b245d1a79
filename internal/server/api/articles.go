package api

import (
	"errors"
	"net/http"
	"sort"

	smodels "github.com/IvanChernomyrdin/go-bookcorner/internal/server/models"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/view"
	serr "github.com/IvanChernomyrdin/go-bookcorner/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/shared/filter"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/shared/models"
)

// ArticlesPage рисует список статей от новых к старым.
// Необязательные q и category фильтруют список и подсвечивают совпадения.
func (h *Handler) ArticlesPage(w http.ResponseWriter, r *http.Request) {
	articles, err := h.Svc.Articles.List(r.Context())
	if err != nil {
		h.fail(w, r, http.StatusInternalServerError, "list articles", err)
		return
	}

	st := filter.State{}
	st = filter.Reduce(st, filter.Event{Kind: filter.SetQuery, Value: r.URL.Query().Get("q")})
	st = filter.Reduce(st, filter.Event{Kind: filter.SetCategory, Value: r.URL.Query().Get("category")})

	byID := make(map[string]smodels.Article, len(articles))
	items := make([]filter.Item, 0, len(articles))
	for _, a := range articles {
		byID[a.ID] = a
		items = append(items, filter.Item{
			ID:      a.ID,
			Title:   a.Title,
			Excerpt: a.Excerpt,
			Author:  a.Author,
			Tag:     a.Tag,
		})
	}

	data := view.ArticlesData{
		Query:      st.Query,
		Category:   st.Category,
		Categories: categories(articles),
	}
	for _, m := range filter.Apply(st, items) {
		data.Articles = append(data.Articles, view.NewArticleRow(byID[m.Item.ID], m))
	}
	h.render(w, r, http.StatusOK, view.PageArticles, "Articles", data)
}

// categories — уникальные теги статей по алфавиту.
func categories(articles []smodels.Article) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, a := range articles {
		if _, ok := seen[a.Tag]; ok || a.Tag == "" {
			continue
		}
		seen[a.Tag] = struct{}{}
		out = append(out, a.Tag)
	}
	sort.Strings(out)
	return out
}

// WritePage рисует форму новой статьи.
func (h *Handler) WritePage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, view.PageWrite, "Write", view.WriteData{})
}

// SubmitArticle публикует статью от сообщества.
//
// Ответы:
//   - 303 на /articles: статья создана;
//   - 400: нет title или content (форма рисуется заново);
//   - 500: ошибка хранилища.
func (h *Handler) SubmitArticle(w http.ResponseWriter, r *http.Request) {
	form, err := h.decodeArticle(w, r)
	if err == nil {
		_, err = h.Svc.Articles.Submit(r.Context(), form.Article())
	}

	switch {
	case err == nil:
		redirect(w, r, "/articles")
	case errors.Is(err, serr.ErrInvalidInput), errors.Is(err, serr.ErrBadForm):
		h.render(w, r, http.StatusBadRequest, view.PageWrite, "Write", view.WriteData{
			Error: "Title and content are required.",
		})
	default:
		h.fail(w, r, http.StatusInternalServerError, "submit article", err)
	}
}

// ListArticlesJSON отдаёт статьи в JSON.
//
// @Summary      List articles
// @Description  Returns all articles, newest first.
// @Tags         articles
// @Produce      json
// @Success      200 {object} models.ArticlesResponse
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /api/articles [get]
func (h *Handler) ListArticlesJSON(w http.ResponseWriter, r *http.Request) {
	articles, err := h.Svc.Articles.List(r.Context())
	if err != nil {
		h.Log.LogError("list articles", err)
		WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
		return
	}

	out := models.ArticlesResponse{Articles: make([]models.Article, 0, len(articles))}
	for _, a := range articles {
		out.Articles = append(out.Articles, articleDTO(a))
	}
	WriteJSON(w, http.StatusOK, out)
}

func articleDTO(a smodels.Article) models.Article {
	return models.Article{
		ID:          a.ID,
		Title:       a.Title,
		Slug:        a.Slug,
		Tag:         a.Tag,
		Author:      a.Author,
		ReadTime:    a.ReadTime,
		Excerpt:     a.Excerpt,
		Content:     a.Content,
		CoverImage:  a.CoverImage,
		IsCommunity: a.IsCommunity,
		CreatedAt:   a.CreatedAt,
	}
}
