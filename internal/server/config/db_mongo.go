package config

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/shared/logger"
)

// OpenMongo подключается к MongoDB по db.uri, проверяет доступность (Ping)
// и возвращает клиента и базу db.database.
//
// Закрывать нужно клиента: client.Disconnect(ctx).
func OpenMongo(ctx context.Context, cfg *Config, log *logger.HTTPLogger) (*mongo.Client, *mongo.Database, error) {
	sugar := log.Sugar()

	connectCtx, cancel := context.WithTimeout(ctx, cfg.DB.ConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.DB.URI).
		SetConnectTimeout(cfg.DB.ConnectTimeout)
	if cfg.DB.MaxOpenConns > 0 {
		opts.SetMaxPoolSize(uint64(cfg.DB.MaxOpenConns))
	}

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		sugar.Errorf("error to connect mongo: %v", err)
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		sugar.Errorf("error check mongo connection: %v", err)
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	sugar.Infof("connected to mongo database %q", cfg.DB.Database)
	return client, client.Database(cfg.DB.Database), nil
}
