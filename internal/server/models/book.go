package models

import (
	"strings"
	"time"

	serr "github.com/IvanChernomyrdin/go-bookcorner/internal/shared/errors"
)

// Book — книга каталога. Меняется только через /admin/books.
type Book struct {
	ID          string
	Title       string
	Description string
	Image       string
	CreatedAt   time.Time
}

// BookUpdate — частичное обновление книги: nil означает «не менять».
type BookUpdate struct {
	Title       *string
	Description *string
	Image       *string
}

// Validate проверяет обязательные поля новой книги.
func (b *Book) Validate() error {
	b.Title = strings.TrimSpace(b.Title)
	b.Description = strings.TrimSpace(b.Description)
	b.Image = strings.TrimSpace(b.Image)
	if b.Title == "" || b.Description == "" {
		return serr.ErrInvalidInput
	}
	return nil
}

// Validate проверяет, что переданные обязательные поля не пустые.
func (u *BookUpdate) Validate() error {
	for _, p := range []*string{u.Title, u.Description, u.Image} {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
	if u.Title != nil && *u.Title == "" {
		return serr.ErrInvalidInput
	}
	if u.Description != nil && *u.Description == "" {
		return serr.ErrInvalidInput
	}
	return nil
}

// Empty сообщает, что обновлять нечего.
func (u BookUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Image == nil
}

// Apply переносит заданные поля в книгу.
func (u BookUpdate) Apply(b *Book) {
	if u.Title != nil {
		b.Title = *u.Title
	}
	if u.Description != nil {
		b.Description = *u.Description
	}
	if u.Image != nil {
		b.Image = *u.Image
	}
}
