package config

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/shared/logger"
)

// OpenRedis создаёт клиента Redis по секции redis и проверяет соединение.
func OpenRedis(ctx context.Context, cfg *Config, log *logger.HTTPLogger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DB.ConnectTimeout)
	defer cancel()

	if _, err := rdb.Ping(pingCtx).Result(); err != nil {
		log.Sugar().Errorf("could not connect to redis: %v", err)
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Sugar().Infof("connected to redis at %s", cfg.Redis.Addr)
	return rdb, nil
}
