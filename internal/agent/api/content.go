package api

import (
	"net/url"

	serr "github.com/IvanChernomyrdin/go-bookcorner/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/shared/models"
)

// ArticleDraft — поля формы POST /write. Пустые необязательные поля
// сервер заполняет значениями по умолчанию.
type ArticleDraft struct {
	Title      string
	Content    string
	Tag        string
	Author     string
	ReadTime   string
	Excerpt    string
	CoverImage string
}

func (d ArticleDraft) values() url.Values {
	v := url.Values{
		"title":   {d.Title},
		"content": {d.Content},
	}
	setIf(v, "tag", d.Tag)
	setIf(v, "author", d.Author)
	setIf(v, "readTime", d.ReadTime)
	setIf(v, "excerpt", d.Excerpt)
	setIf(v, "coverImage", d.CoverImage)
	return v
}

// BookPatch — частичное обновление книги: nil означает «не менять».
type BookPatch struct {
	Title       *string
	Description *string
	Image       *string
}

func (p BookPatch) values() url.Values {
	v := url.Values{}
	if p.Title != nil {
		v.Set("title", *p.Title)
	}
	if p.Description != nil {
		v.Set("description", *p.Description)
	}
	if p.Image != nil {
		v.Set("image", *p.Image)
	}
	return v
}

func setIf(v url.Values, key, val string) {
	if val != "" {
		v.Set(key, val)
	}
}

// ListArticles загружает статьи (новые первыми).
//
//	GET /api/articles
func (c *Client) ListArticles() ([]models.Article, error) {
	var resp models.ArticlesResponse
	if err := c.GetJSON("/api/articles", &resp, ""); err != nil {
		return nil, err
	}
	return resp.Articles, nil
}

// SubmitArticle отправляет статью через форму POST /write.
//
// Пустой title или content сервер отклоняет со статусом 400
// (errors.Is(err, serr.ErrInvalidInput)).
func (c *Client) SubmitArticle(sid string, d ArticleDraft) error {
	_, err := c.PostForm("/write", d.values(), sid)
	return err
}

// ListBooks загружает каталог книг (новые первыми).
//
//	GET /api/books
func (c *Client) ListBooks() ([]models.Book, error) {
	var resp models.BooksResponse
	if err := c.GetJSON("/api/books", &resp, ""); err != nil {
		return nil, err
	}
	return resp.Books, nil
}

// AddBook создаёт книгу через POST /admin/books.
func (c *Client) AddBook(sid, title, description, image string) error {
	v := url.Values{"title": {title}, "description": {description}}
	setIf(v, "image", image)
	return c.admin(sid, "/admin/books", v)
}

// EditBook частично обновляет книгу через POST /admin/books/{id}/edit.
func (c *Client) EditBook(sid, id string, p BookPatch) error {
	return c.admin(sid, "/admin/books/"+url.PathEscape(id)+"/edit", p.values())
}

// RemoveBook удаляет книгу. Удаление отсутствующей книги не ошибка.
func (c *Client) RemoveBook(sid, id string) error {
	return c.admin(sid, "/admin/books/"+url.PathEscape(id)+"/delete", url.Values{})
}

// admin отправляет админскую форму. Редирект на /signin означает,
// что сервер требует сессию, а её нет или она истекла.
func (c *Client) admin(sid, path string, v url.Values) error {
	res, err := c.PostForm(path, v, sid)
	if err != nil {
		return err
	}
	if res.Location == pathSignIn {
		return serr.ErrUnauthorized
	}
	return nil
}
