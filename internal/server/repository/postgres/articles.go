package postgres

import (
	"context"
	"database/sql"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/models"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/repository"
)

// ArticlesRepository хранит статьи в PostgreSQL.
type ArticlesRepository struct {
	db *sql.DB
}

func NewArticlesRepository(db *sql.DB) *ArticlesRepository {
	return &ArticlesRepository{db: db}
}

const articleColumns = `id, title, slug, tag, author, read_time, excerpt, content, cover_image, is_community, created_at`

func (r *ArticlesRepository) Create(ctx context.Context, a *models.Article) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO articles (title, slug, tag, author, read_time, excerpt, content, cover_image, is_community, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`,
		a.Title, a.Slug, a.Tag, a.Author, a.ReadTime, a.Excerpt, a.Content, a.CoverImage, a.IsCommunity, a.CreatedAt,
	).Scan(&id)
	if err != nil {
		return "", repository.Internal("articles create", err)
	}
	return id, nil
}

// List возвращает статьи от новых к старым.
func (r *ArticlesRepository) List(ctx context.Context) ([]models.Article, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+articleColumns+` FROM articles ORDER BY created_at DESC, seq DESC`)
	if err != nil {
		return nil, repository.Internal("articles list", err)
	}
	defer rows.Close()

	out := make([]models.Article, 0)
	for rows.Next() {
		var a models.Article
		if err := rows.Scan(
			&a.ID, &a.Title, &a.Slug, &a.Tag, &a.Author, &a.ReadTime,
			&a.Excerpt, &a.Content, &a.CoverImage, &a.IsCommunity, &a.CreatedAt,
		); err != nil {
			return nil, repository.Internal("articles scan", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.Internal("articles rows", err)
	}
	return out, nil
}
