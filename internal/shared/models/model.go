package models

import "time"

// Article — плоская модель статьи, используемая в JSON API.
//
// Используется в:
//
//	GET /api/articles
//
// Поля повторяют серверную модель, кроме служебных.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Tag         string    `json:"tag"`
	Author      string    `json:"author"`
	ReadTime    string    `json:"readTime"`
	Excerpt     string    `json:"excerpt"`
	Content     string    `json:"content"`
	CoverImage  string    `json:"coverImage,omitempty"`
	IsCommunity bool      `json:"isCommunity"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ArticlesResponse — ответ эндпоинта GET /api/articles: {"articles":[...]}.
type ArticlesResponse struct {
	Articles []Article `json:"articles"`
}

// Book — модель книги каталога в JSON API.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BooksResponse — ответ эндпоинта GET /api/books: {"books":[...]}.
type BooksResponse struct {
	Books []Book `json:"books"`
}

// ErrorResponse — тело ответа с ошибкой. Текст всегда общий, без деталей.
type ErrorResponse struct {
	Error string `json:"error"`
}
