package postgres

import (
	"context"
	"database/sql"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/models"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/repository"
	serr "github.com/IvanChernomyrdin/go-bookcorner/internal/shared/errors"
)

// BooksRepository реализует доступ к каталогу книг (PostgreSQL).
// Отвечает исключительно за сохранение и извлечение данных без бизнес-логики.
type BooksRepository struct {
	db *sql.DB
}

// NewBooksRepository создаёт новый экземпляр BooksRepository.
func NewBooksRepository(db *sql.DB) *BooksRepository {
	return &BooksRepository{db: db}
}

// Create сохраняет книгу и возвращает её id.
func (r *BooksRepository) Create(ctx context.Context, b *models.Book) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO books (title, description, image, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`,
		b.Title, b.Description, b.Image, b.CreatedAt,
	).Scan(&id)
	if err != nil {
		return "", repository.Internal("books create", err)
	}
	return id, nil
}

// List возвращает книги от новых к старым.
func (r *BooksRepository) List(ctx context.Context) ([]models.Book, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, image, created_at
		FROM books
		ORDER BY created_at DESC, seq DESC
	`)
	if err != nil {
		return nil, repository.Internal("books list", err)
	}
	defer rows.Close()

	out := make([]models.Book, 0)
	for rows.Next() {
		var b models.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Description, &b.Image, &b.CreatedAt); err != nil {
			return nil, repository.Internal("books scan", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.Internal("books rows", err)
	}
	return out, nil
}

// Update меняет только переданные поля (NULL: оставить как есть).
//
// Ошибки:
//   - ErrNotFound: книги нет или id не uuid.
func (r *BooksRepository) Update(ctx context.Context, id string, upd models.BookUpdate) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE books
		   SET title       = COALESCE($2, title),
		       description = COALESCE($3, description),
		       image       = COALESCE($4, image)
		 WHERE id = $1
	`,
		id, upd.Title, upd.Description, upd.Image,
	)
	if err != nil {
		if pgCode(err) == codeInvalidText {
			return serr.ErrNotFound
		}
		return repository.Internal("books update", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return repository.Internal("books update rows", err)
	}
	if n == 0 {
		return serr.ErrNotFound
	}
	return nil
}

// Delete удаляет книгу. Отсутствующий или невалидный id не ошибка.
func (r *BooksRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		if pgCode(err) == codeInvalidText {
			return nil
		}
		return repository.Internal("books delete", err)
	}
	return nil
}
