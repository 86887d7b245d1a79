// Package view рендерит HTML-страницы сайта.
//
// Каждая страница собирается из общего каркаса templates/base.html, в который
// подставляется шаблон "body" из файла страницы. Шаблоны встроены в бинарник.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/models"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/shared/filter"
)

//go:embed templates/*.html
var files embed.FS

// Имена страниц (файлы в templates/ без расширения).
const (
	PageHome       = "home"
	PageAbout      = "about"
	PageArchive    = "archive"
	PageArticles   = "articles"
	PageBooks      = "books"
	PageAdminBooks = "admin_books"
	PageWrite      = "write"
	PageSignIn     = "signin"
	PageError      = "error"
)

var pages = []string{
	PageHome, PageAbout, PageArchive, PageArticles, PageBooks,
	PageAdminBooks, PageWrite, PageSignIn, PageError,
}

// Page — данные, общие для всех страниц.
type Page struct {
	Title   string
	Session *models.Session
	Data    any
}

// ArticlesData — данные страницы /articles.
type ArticlesData struct {
	Query      string
	Category   string
	Categories []string
	Articles   []ArticleRow
}

// ArticleRow — статья с подсвеченными заголовком и превью.
type ArticleRow struct {
	models.Article
	TitleHTML   template.HTML
	ExcerptHTML template.HTML
}

// NewArticleRow собирает строку списка из статьи и результата фильтра.
func NewArticleRow(a models.Article, m filter.Match) ArticleRow {
	return ArticleRow{
		Article: a,
		// Segments.HTML экранирует текст и добавляет только <mark>
		TitleHTML:   template.HTML(m.Title.HTML()),
		ExcerptHTML: template.HTML(m.Excerpt.HTML()),
	}
}

// BooksData — данные страниц /books и /admin/books.
type BooksData struct {
	Books []models.Book
}

// WriteData — данные формы новой статьи.
type WriteData struct {
	Error string
}

// ErrorData — данные страницы ошибки.
type ErrorData struct {
	Status  int
	Message string
}

// Renderer хранит разобранные шаблоны страниц.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("Jan 2, 2006")
	},
}

// New разбирает встроенные шаблоны.
func New() (*Renderer, error) {
	return parse(files)
}

func parse(fsys fs.FS) (*Renderer, error) {
	base, err := fs.ReadFile(fsys, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("read base template: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		body, err := fs.ReadFile(fsys, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", name, err)
		}

		t, err := template.New("base.html").Funcs(funcs).Parse(string(base))
		if err != nil {
			return nil, fmt.Errorf("parse base template: %w", err)
		}
		if _, err := t.New("body").Parse(string(body)); err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render выполняет шаблон страницы name и пишет результат со статусом status.
// Ответ собирается в буфер целиком, поэтому при ошибке шаблона клиент
// не получает обрезанную страницу.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, p Page) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, p); err != nil {
		return fmt.Errorf("could not write template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
