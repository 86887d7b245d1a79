// Package mongo реализует репозитории BookCorner поверх MongoDB.
//
// Каждая запись хранится отдельным документом в коллекциях users, books и articles.
// id наружу отдаётся как hex ObjectID.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Имена коллекций.
const (
	UsersCollection    = "users"
	BooksCollection    = "books"
	ArticlesCollection = "articles"
)

// EnsureIndexes создаёт индексы, нужные репозиториям:
// уникальный email и сортировку по createdAt.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_email_uq"),
	}); err != nil {
		return fmt.Errorf("users index: %w", err)
	}

	for _, name := range []string{BooksCollection, ArticlesCollection} {
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: newestFirst,
		}); err != nil {
			return fmt.Errorf("%s index: %w", name, err)
		}
	}
	return nil
}

// newestFirst — сортировка списков: по времени создания, при равенстве по _id.
var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

// hexID достаёт ObjectID, проставленный драйвером в InsertOne.
func hexID(res *mongo.InsertOneResult) string {
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(res.InsertedID)
}

// utc приводит время к UTC и точности MongoDB (миллисекунды).
func utc(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
