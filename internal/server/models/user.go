// Package models содержит серверные модели записей BookCorner.
//
// Модели не зависят от конкретного хранилища: каждый репозиторий
// маппит их в свой формат записи сам.
package models

import (
	"strings"
	"time"
)

// User — учётная запись. Создаётся при регистрации, читается при входе,
// не изменяется и не удаляется.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// NormalizeEmail приводит email к виду, в котором он хранится и ищется.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
