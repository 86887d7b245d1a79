package mongo_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	repomongo "github.com/IvanChernomyrdin/go-bookcorner/internal/server/repository/mongo"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/repository/repotest"
)

// openTestDB поднимает отдельную базу на каждый тест и удаляет её после.
// Без TEST_MONGO_URI тесты пропускаются.
func openTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))

	db := client.Database(fmt.Sprintf("bookcorner_test_%d", time.Now().UnixNano()))
	require.NoError(t, repomongo.EnsureIndexes(ctx, db))

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}

func TestUsersRepository(t *testing.T) {
	repotest.RunUsers(t, repomongo.NewUsersRepository(openTestDB(t)))
}

func TestBooksRepository(t *testing.T) {
	repotest.RunBooks(t, repomongo.NewBooksRepository(openTestDB(t)))
}

func TestArticlesRepository(t *testing.T) {
	repotest.RunArticles(t, repomongo.NewArticlesRepository(openTestDB(t)))
}

func TestEnsureIndexes_Idempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, repomongo.EnsureIndexes(context.Background(), db))
}
