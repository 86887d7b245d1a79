// Package repository содержит реализации слоя доступа к данным (Repository layer).
//
// Репозитории инкапсулируют работу с хранилищем и не содержат бизнес-логики.
// Все ошибки приводятся к доменным ошибкам из internal/shared/errors.
// Бэкенды:
//   - mongo — документное хранилище (по умолчанию);
//   - postgres — PostgreSQL через pgx;
//   - memory — в памяти процесса (dev и тесты).
package repository

import (
	"fmt"

	serr "github.com/IvanChernomyrdin/go-bookcorner/internal/shared/errors"
)

// Internal оборачивает ошибку драйвера в ErrInternal, сохраняя детали для лога.
func Internal(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, serr.ErrInternal, err)
}
