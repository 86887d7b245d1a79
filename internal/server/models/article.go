package models

import (
	"strings"
	"time"

	"github.com/gosimple/slug"

	serr "github.com/IvanChernomyrdin/go-bookcorner/internal/shared/errors"
)

// Значения по умолчанию для статьи.
const (
	DefaultTag      = "Article"
	DefaultAuthor   = "Anonymous"
	DefaultReadTime = "5 min read"

	// ExcerptLength — длина автоматического превью в символах.
	ExcerptLength = 120
	// ExcerptEllipsis дописывается к автоматическому превью.
	ExcerptEllipsis = "..."
)

// Article — статья. После создания только читается.
type Article struct {
	ID          string
	Title       string
	Slug        string
	Tag         string
	Author      string
	ReadTime    string
	Excerpt     string
	Content     string
	CoverImage  string
	IsCommunity bool
	CreatedAt   time.Time
}

// Prepare проверяет обязательные поля и проставляет значения по умолчанию.
//
// Ошибка ErrInvalidInput, если title или content пустые.
// Пустой excerpt заменяется первыми ExcerptLength символами content с многоточием.
func (a *Article) Prepare() error {
	a.Title = strings.TrimSpace(a.Title)
	a.Content = strings.TrimSpace(a.Content)
	if a.Title == "" || a.Content == "" {
		return serr.ErrInvalidInput
	}

	a.Tag = orDefault(a.Tag, DefaultTag)
	a.Author = orDefault(a.Author, DefaultAuthor)
	a.ReadTime = orDefault(a.ReadTime, DefaultReadTime)
	a.CoverImage = strings.TrimSpace(a.CoverImage)

	if strings.TrimSpace(a.Excerpt) == "" {
		a.Excerpt = MakeExcerpt(a.Content)
	} else {
		a.Excerpt = strings.TrimSpace(a.Excerpt)
	}
	if a.Slug == "" {
		a.Slug = slug.Make(a.Title)
	}
	return nil
}

// MakeExcerpt возвращает первые ExcerptLength символов content и многоточие.
func MakeExcerpt(content string) string {
	r := []rune(content)
	if len(r) > ExcerptLength {
		r = r[:ExcerptLength]
	}
	return string(r) + ExcerptEllipsis
}

func orDefault(v, def string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	return v
}
