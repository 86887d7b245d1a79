// Типизированные формы запросов
package api

import (
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-bookcorner/internal/shared/errors"
)

// SignUpForm — тело POST /signup.
type SignUpForm struct {
	Name     string
	Email    string
	Password string
}

// Validate проверяет обязательные поля: email и password.
func (f SignUpForm) Validate() error {
	if strings.TrimSpace(f.Email) == "" || strings.TrimSpace(f.Password) == "" {
		return serr.ErrInvalidInput
	}
	return nil
}

// SignInForm — тело POST /signin.
type SignInForm struct {
	Email    string
	Password string
}

func (f SignInForm) Validate() error {
	if strings.TrimSpace(f.Email) == "" || strings.TrimSpace(f.Password) == "" {
		return serr.ErrInvalidInput
	}
	return nil
}

// BookForm — тело POST /admin/books и /admin/books/{id}/edit.
// nil — поля не было в форме.
type BookForm struct {
	Title       *string
	Description *string
	Image       *string
}

// Update превращает форму в частичное обновление книги.
func (f BookForm) Update() (models.BookUpdate, error) {
	upd := models.BookUpdate{Title: f.Title, Description: f.Description, Image: f.Image}
	if err := upd.Validate(); err != nil {
		return models.BookUpdate{}, err
	}
	return upd, nil
}

// ArticleForm — тело POST /write.
type ArticleForm struct {
	Title      string
	Content    string
	Tag        string
	Author     string
	ReadTime   string
	Excerpt    string
	CoverImage string
}

func (f ArticleForm) Validate() error {
	if strings.TrimSpace(f.Title) == "" || strings.TrimSpace(f.Content) == "" {
		return serr.ErrInvalidInput
	}
	return nil
}

// Article переводит форму в модель статьи.
func (f ArticleForm) Article() models.Article {
	return models.Article{
		Title:      f.Title,
		Content:    f.Content,
		Tag:        f.Tag,
		Author:     f.Author,
		ReadTime:   f.ReadTime,
		Excerpt:    f.Excerpt,
		CoverImage: f.CoverImage,
	}
}

// defaultMultipartMemory — как у net/http.Request.FormValue.
const defaultMultipartMemory = 32 << 20

// parseForm разбирает urlencoded или multipart тело не больше maxBody байт.
// Ошибка разбора оборачивает ErrBadForm.
func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) error {
	if h.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}

	ct, _, _ := mime.ParseMediaType(r.Header.Get(ContentType))
	var err error
	if ct == "multipart/form-data" {
		mem := h.maxBody
		if mem <= 0 {
			mem = defaultMultipartMemory
		}
		err = r.ParseMultipartForm(mem)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return errors.Join(serr.ErrBadForm, err)
	}
	return nil
}

// optional возвращает указатель на значение поля или nil, если поля нет.
func optional(r *http.Request, key string) *string {
	if _, ok := r.PostForm[key]; !ok {
		return nil
	}
	v := r.PostForm.Get(key)
	return &v
}

func (h *Handler) decodeSignUp(w http.ResponseWriter, r *http.Request) (SignUpForm, error) {
	if err := h.parseForm(w, r); err != nil {
		return SignUpForm{}, err
	}
	f := SignUpForm{
		Name:     r.PostForm.Get("name"),
		Email:    r.PostForm.Get("email"),
		Password: r.PostForm.Get("password"),
	}
	return f, f.Validate()
}

func (h *Handler) decodeSignIn(w http.ResponseWriter, r *http.Request) (SignInForm, error) {
	if err := h.parseForm(w, r); err != nil {
		return SignInForm{}, err
	}
	f := SignInForm{
		Email:    r.PostForm.Get("email"),
		Password: r.PostForm.Get("password"),
	}
	return f, f.Validate()
}

func (h *Handler) decodeBook(w http.ResponseWriter, r *http.Request) (BookForm, error) {
	if err := h.parseForm(w, r); err != nil {
		return BookForm{}, err
	}
	return BookForm{
		Title:       optional(r, "title"),
		Description: optional(r, "description"),
		Image:       optional(r, "image"),
	}, nil
}

func (h *Handler) decodeArticle(w http.ResponseWriter, r *http.Request) (ArticleForm, error) {
	if err := h.parseForm(w, r); err != nil {
		return ArticleForm{}, err
	}
	f := ArticleForm{
		Title:      r.PostForm.Get("title"),
		Content:    r.PostForm.Get("content"),
		Tag:        r.PostForm.Get("tag"),
		Author:     r.PostForm.Get("author"),
		ReadTime:   r.PostForm.Get("readTime"),
		Excerpt:    r.PostForm.Get("excerpt"),
		CoverImage: r.PostForm.Get("coverImage"),
	}
	return f, f.Validate()
}
