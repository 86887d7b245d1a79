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
	serr "github.com/IvanChernomyrdin/go-bookcorner/internal/shared/errors"
)

type bookDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Image       string             `bson:"image,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

func (d bookDoc) model() models.Book {
	return models.Book{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Image:       d.Image,
		CreatedAt:   d.CreatedAt,
	}
}

// BooksRepository хранит каталог книг в коллекции books.
type BooksRepository struct {
	coll *mongo.Collection
}

func NewBooksRepository(db *mongo.Database) *BooksRepository {
	return &BooksRepository{coll: db.Collection(BooksCollection)}
}

func (r *BooksRepository) Create(ctx context.Context, b *models.Book) (string, error) {
	res, err := r.coll.InsertOne(ctx, bookDoc{
		Title:       b.Title,
		Description: b.Description,
		Image:       b.Image,
		CreatedAt:   utc(b.CreatedAt),
	})
	if err != nil {
		return "", repository.Internal("books insert", err)
	}
	return hexID(res), nil
}

// List возвращает книги от новых к старым.
func (r *BooksRepository) List(ctx context.Context) ([]models.Book, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, repository.Internal("books find", err)
	}
	defer cur.Close(ctx)

	out := make([]models.Book, 0)
	for cur.Next(ctx) {
		var d bookDoc
		if err := cur.Decode(&d); err != nil {
			return nil, repository.Internal("books decode", err)
		}
		out = append(out, d.model())
	}
	if err := cur.Err(); err != nil {
		return nil, repository.Internal("books cursor", err)
	}
	return out, nil
}

// Update меняет заданные поля.
//
// Ошибки:
//   - ErrNotFound: id не ObjectID или документа нет.
func (r *BooksRepository) Update(ctx context.Context, id string, upd models.BookUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return serr.ErrNotFound
	}

	set := bson.D{}
	if upd.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *upd.Title})
	}
	if upd.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *upd.Description})
	}
	if upd.Image != nil {
		set = append(set, bson.E{Key: "image", Value: *upd.Image})
	}

	// $set с пустым документом Mongo отвергает, поэтому просто проверяем наличие
	if len(set) == 0 {
		n, err := r.coll.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
		if err != nil {
			return repository.Internal("books count", err)
		}
		if n == 0 {
			return serr.ErrNotFound
		}
		return nil
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return repository.Internal("books update", err)
	}
	if res.MatchedCount == 0 {
		return serr.ErrNotFound
	}
	return nil
}

// Delete удаляет книгу. Отсутствующий или невалидный id не ошибка.
func (r *BooksRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return repository.Internal("books delete", err)
	}
	return nil
}
