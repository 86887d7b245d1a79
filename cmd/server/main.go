// @title           BookCorner API
// @version         1.0
// @description     Read-only JSON API of the BookCorner content site.
// @description     Provides the books catalog and community articles.

// @contact.name   Ivan Chernomyrdin
// @contact.url    https://github.com/IvanChernomyrdin

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
//
// Package main содержит точку входа сервера BookCorner.
//
// Пакет отвечает за инициализацию и жизненный цикл HTTP-сервера, а именно:
//   - загрузку переменных окружения из файла .env (если он присутствует);
//   - загрузку конфигурации сервера из файла ./configs/server.yaml;
//   - подключение выбранных хранилищ (mongo/postgres/memory, сессии memory/redis/postgres);
//   - создание сервисов, middleware, рендера страниц и HTTP-обработчиков;
//   - запуск чистки просроченных сессий по cron-расписанию;
//   - обработку системных сигналов завершения (SIGINT, SIGTERM, SIGQUIT);
//   - корректное (graceful) завершение работы сервера с таймаутом.
//
// Пакет не содержит бизнес-логики и не предназначен для unit-тестирования.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/api"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/config"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/service"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/session"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/view"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/shared/logger"

	_ "github.com/IvanChernomyrdin/go-bookcorner/swagger/docs"
)

func main() {
	configPath := flag.String("config", "./configs/server.yaml", "path to server config")
	flag.Parse()

	boot := logger.NewHTTPLogger().Sugar()

	if err := godotenv.Load(); err != nil {
		boot.Warnf("no .env file loaded, error: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		boot.Fatal(err)
	}

	// Fatal внутри run пропустил бы отложенные Close и Sync
	if err := run(cfg); err != nil {
		boot.Errorf("server stopped with error: %v", err)
		os.Exit(1)
	}
}

// run поднимает хранилища и HTTP-сервер и блокируется до сигнала завершения.
func run(cfg *config.Config) error {
	httpLogger := logger.New(logger.Options{
		File:   cfg.Log.File,
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	defer func() { _ = httpLogger.Sync() }()
	sugar := httpLogger.Sugar()

	// создаём контекст и errgroup
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	// подключаем хранилища
	b, err := openBackends(ctx, cfg, httpLogger)
	if err != nil {
		return fmt.Errorf("open backends: %w", err)
	}
	defer b.Close()

	// создаём сервисы
	svc := service.NewServices(b.repos, cfg)
	// сессии в cookie
	sessions := middleware.NewSessions(
		svc.Auth,
		crypto.NewCookieSigner(cfg.Auth.Sessions.Secret),
		cfg.Auth.Sessions,
		httpLogger,
	)
	renderer, err := view.New()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}
	// создаём хандлер и роутер
	handler := api.NewHandler(svc, httpLogger, sessions, renderer, cfg)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}

	// чистка просроченных сессий (redis справляется сам через TTL)
	var janitor *session.Janitor
	if b.purger != nil {
		janitor, err = session.NewJanitor(cfg.Auth.Sessions.PurgeSchedule, b.purger, httpLogger)
		if err != nil {
			return fmt.Errorf("session janitor: %w", err)
		}
		janitor.Start()
	}

	g, ctx := errgroup.WithContext(ctx)

	// запускаем сервер
	g.Go(func() error {
		sugar.Infof("server started on %s (db=%s, sessions=%s)", cfg.Addr(), cfg.DB.Driver, cfg.Auth.Sessions.Store)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-ctx.Done()

		sugar.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if janitor != nil {
			janitor.Stop(shutdownCtx)
		}
		return server.Shutdown(shutdownCtx)
	})

	// ожидание и единая обработка ошибок
	if err := g.Wait(); err != nil {
		return err
	}
	sugar.Info("server gracefully stopped")
	return nil
}
