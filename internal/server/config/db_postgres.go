package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/shared/logger"

	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v4/stdlib"
)

// OpenPostgres открывает подключение к PostgreSQL по db.dsn, настраивает пул,
// проверяет доступность базы (Ping) и, если включено, применяет миграции.
//
// Если миграции уже применены, ошибка migrate.ErrNoChange не считается ошибкой.
func OpenPostgres(ctx context.Context, cfg *Config, log *logger.HTTPLogger) (*sql.DB, error) {
	sugar := log.Sugar()

	db, err := sql.Open("pgx", cfg.DB.DSN)
	if err != nil {
		sugar.Errorf("error to connect db: %v", err)
		return nil, err
	}

	if cfg.DB.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	}
	if cfg.DB.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	}
	db.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.DB.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DB.ConnectTimeout)
	defer cancel()
	if err = db.PingContext(pingCtx); err != nil {
		sugar.Errorf("error check db connection: %v", err)
		db.Close()
		return nil, err
	}

	if cfg.Migrations.Enabled {
		if err := Migrate(db, cfg.Migrations.Path); err != nil {
			sugar.Errorf("error applying migrations: %v", err)
			db.Close()
			return nil, err
		}
		sugar.Info("migrations applied successfully")
	}

	return db, nil
}

// Migrate применяет миграции из sourceURL (например file://migrations/postgres).
func Migrate(db *sql.DB, sourceURL string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("creating migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return fmt.Errorf("creating migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
