package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/models"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/repository"
)

type articleDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Slug        string             `bson:"slug"`
	Tag         string             `bson:"tag"`
	Author      string             `bson:"author"`
	ReadTime    string             `bson:"readTime"`
	Excerpt     string             `bson:"excerpt"`
	Content     string             `bson:"content"`
	CoverImage  string             `bson:"coverImage,omitempty"`
	IsCommunity bool               `bson:"isCommunity"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

// ArticlesRepository хранит статьи в коллекции articles.
type ArticlesRepository struct {
	coll *mongo.Collection
}

func NewArticlesRepository(db *mongo.Database) *ArticlesRepository {
	return &ArticlesRepository{coll: db.Collection(ArticlesCollection)}
}

func (r *ArticlesRepository) Create(ctx context.Context, a *models.Article) (string, error) {
	res, err := r.coll.InsertOne(ctx, articleDoc{
		Title:       a.Title,
		Slug:        a.Slug,
		Tag:         a.Tag,
		Author:      a.Author,
		ReadTime:    a.ReadTime,
		Excerpt:     a.Excerpt,
		Content:     a.Content,
		CoverImage:  a.CoverImage,
		IsCommunity: a.IsCommunity,
		CreatedAt:   utc(a.CreatedAt),
	})
	if err != nil {
		return "", repository.Internal("articles insert", err)
	}
	return hexID(res), nil
}

// List возвращает статьи от новых к старым.
func (r *ArticlesRepository) List(ctx context.Context) ([]models.Article, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, repository.Internal("articles find", err)
	}
	defer cur.Close(ctx)

	var docs []articleDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, repository.Internal("articles decode", err)
	}

	out := make([]models.Article, 0, len(docs))
	for _, d := range docs {
		out = append(out, models.Article{
			ID:          d.ID.Hex(),
			Title:       d.Title,
			Slug:        d.Slug,
			Tag:         d.Tag,
			Author:      d.Author,
			ReadTime:    d.ReadTime,
			Excerpt:     d.Excerpt,
			Content:     d.Content,
			CoverImage:  d.CoverImage,
			IsCommunity: d.IsCommunity,
			CreatedAt:   d.CreatedAt,
		})
	}
	return out, nil
}
