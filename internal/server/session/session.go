// Package session содержит хранилища серверных сессий BookCorner.
//
// Все реализации удовлетворяют service.SessionStore:
//   - MemoryStore — в памяти процесса (по умолчанию, для разработки и тестов);
//   - RedisStore — ключи с TTL в Redis;
//   - PostgresStore — таблица sessions.
//
// Сам токен нигде не хранится: ключом служит crypto.HashToken(token).
// Неизвестный токен даёт ErrUnauthorized, истечение проверяет AuthService.
package session

import (
	"context"
	"time"
)

// Purger умеет удалять просроченные сессии. Его вызывает Janitor по расписанию.
type Purger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
