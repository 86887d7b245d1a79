package session

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/shared/logger"
)

// Janitor по cron-расписанию удаляет просроченные сессии.
type Janitor struct {
	cron   *cron.Cron
	purger Purger
	log    *logger.HTTPLogger
	now    func() time.Time
}

// NewJanitor регистрирует задачу чистки по расписанию schedule
// (стандартный cron или дескрипторы вида "@every 10m").
func NewJanitor(schedule string, purger Purger, log *logger.HTTPLogger) (*Janitor, error) {
	j := &Janitor{
		cron:   cron.New(),
		purger: purger,
		log:    log,
		now:    time.Now,
	}
	if _, err := j.cron.AddFunc(schedule, j.run); err != nil {
		return nil, fmt.Errorf("session purge schedule %q: %w", schedule, err)
	}
	return j, nil
}

// Start запускает планировщик в своей горутине.
func (j *Janitor) Start() {
	j.cron.Start()
}

// Stop останавливает планировщик и ждёт завершения текущей чистки
// либо отмены ctx.
func (j *Janitor) Stop(ctx context.Context) {
	done := j.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// PurgeNow выполняет одну чистку синхронно.
func (j *Janitor) PurgeNow(ctx context.Context) (int64, error) {
	return j.purger.PurgeExpired(ctx, j.now())
}

func (j *Janitor) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := j.PurgeNow(ctx)
	if err != nil {
		j.log.LogError("session purge", err)
		return
	}
	if n > 0 {
		j.log.Info("expired sessions purged", zap.Int64("count", n))
	}
}
