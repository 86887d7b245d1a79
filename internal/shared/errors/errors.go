// Package errors содержит общие доменные ошибки приложения
// и утилиты для error wrapping.
//
// Эти ошибки используются в service и repository слоях
// и маппятся на HTTP-статусы (или молчаливые редиректы) в api слое.
package errors

import "errors"

var (
	// Входные данные невалидны (пустые обязательные поля и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// Неверные учётные данные
	ErrInvalidCredentials = errors.New("invalid credentials")
	// Получена непредвиденная ошибка (в т.ч. ошибка хранилища)
	ErrInternal = errors.New("internal error")
	// Полученные JSON данные с ошибками
	ErrBadJSON = errors.New("bad json")
	// Не удалось разобрать тело формы
	ErrBadForm = errors.New("bad form")
	// Неавторизован (нет сессии или она истекла)
	ErrUnauthorized = errors.New("unauthorized")
	// Ресурс уже существует (например email уже занят)
	ErrAlreadyExists = errors.New("already exists")
	// Ресурс не найден
	ErrNotFound = errors.New("not found")
)

// Is — короткий алиас на errors.Is, чтобы не импортировать два пакета errors.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
