package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/models"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/repository"
	serr "github.com/IvanChernomyrdin/go-bookcorner/internal/shared/errors"
)

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"passwordHash"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

// UsersRepository хранит пользователей в коллекции users.
type UsersRepository struct {
	coll *mongo.Collection
}

func NewUsersRepository(db *mongo.Database) *UsersRepository {
	return &UsersRepository{coll: db.Collection(UsersCollection)}
}

// Create вставляет пользователя. Дубль по уникальному индексу email даёт ErrAlreadyExists.
func (r *UsersRepository) Create(ctx context.Context, u *models.User) (string, error) {
	res, err := r.coll.InsertOne(ctx, userDoc{
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    utc(u.CreatedAt),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", serr.ErrAlreadyExists
		}
		return "", repository.Internal("users insert", err)
	}
	return hexID(res), nil
}

func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var d userDoc
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, serr.ErrNotFound
		}
		return nil, repository.Internal("users find", err)
	}
	return &models.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
	}, nil
}
