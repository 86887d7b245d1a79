package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/config"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/repository/memory"
	repomongo "github.com/IvanChernomyrdin/go-bookcorner/internal/server/repository/mongo"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/repository/postgres"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/service"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/session"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/shared/logger"
)

// backends — выбранные по конфигу хранилища и функции их закрытия.
type backends struct {
	repos  service.Repositories
	purger session.Purger // nil, если хранилище сессий чистит себя само (redis)
	closer []func()
}

func (b *backends) Close() {
	for i := len(b.closer) - 1; i >= 0; i-- {
		b.closer[i]()
	}
}

// openBackends подключает db.driver и auth.sessions.store.
// При ошибке всё уже открытое закрывается.
func openBackends(ctx context.Context, cfg *config.Config, log *logger.HTTPLogger) (_ *backends, err error) {
	b := &backends{}
	defer func() {
		if err != nil {
			b.Close()
		}
	}()

	var pg *sql.DB
	openPG := func() (*sql.DB, error) {
		if pg != nil {
			return pg, nil
		}
		db, err := config.OpenPostgres(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		pg = db
		b.closer = append(b.closer, func() { _ = db.Close() })
		return db, nil
	}

	switch cfg.DB.Driver {
	case config.DriverMongo:
		client, db, err := config.OpenMongo(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		b.closer = append(b.closer, func() { _ = client.Disconnect(context.Background()) })
		if err := repomongo.EnsureIndexes(ctx, db); err != nil {
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		b.repos.Users = repomongo.NewUsersRepository(db)
		b.repos.Books = repomongo.NewBooksRepository(db)
		b.repos.Articles = repomongo.NewArticlesRepository(db)

	case config.DriverPostgres:
		db, err := openPG()
		if err != nil {
			return nil, err
		}
		b.repos.Users = postgres.NewUsersRepository(db)
		b.repos.Books = postgres.NewBooksRepository(db)
		b.repos.Articles = postgres.NewArticlesRepository(db)

	default:
		log.Warn("db.driver=memory: data lives only until restart")
		b.repos.Users = memory.NewUsersRepository()
		b.repos.Books = memory.NewBooksRepository()
		b.repos.Articles = memory.NewArticlesRepository()
	}

	switch cfg.Auth.Sessions.Store {
	case config.SessionStoreRedis:
		rdb, err := config.OpenRedis(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		b.closer = append(b.closer, func() { _ = rdb.Close() })
		b.repos.Sessions = session.NewRedisStore(rdb, cfg.Redis.KeyPrefix)

	case config.SessionStorePostgres:
		db, err := openPG()
		if err != nil {
			return nil, err
		}
		store := session.NewPostgresStore(db)
		b.repos.Sessions = store
		b.purger = store

	default:
		store := session.NewMemoryStore()
		b.repos.Sessions = store
		b.purger = store
	}

	return b, nil
}
