// Package config содержит функции для работы с локальной конфигурацией CLI-клиента.
//
// Конфигурация хранит адрес сервера и значение cookie сессии и размещается
// в домашней директории пользователя в файле:
//
//	~/.bookcorner/credentials.json
//
// Файл содержит действующую сессию, поэтому пишется с правами 0600.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Dir — имя каталога клиента в домашней директории.
const Dir = ".bookcorner"

// Credentials содержит учётные данные, используемые CLI-клиентом.
//
// Session — значение cookie сессии, выданное сервером при signin/signup.
// Server — адрес сервера, с которым была открыта сессия.
type Credentials struct {
	Session string `json:"session"`
	Server  string `json:"server,omitempty"`
	Email   string `json:"email,omitempty"`
}

// SignedIn сообщает, есть ли сохранённая сессия.
func (c *Credentials) SignedIn() bool {
	return c != nil && c.Session != ""
}

// DefaultPath возвращает путь к файлу учётных данных:
//
//	<home>/.bookcorner/credentials.json
func DefaultPath() (string, error) {
	return PathInHome("credentials.json")
}

// PathInHome возвращает путь к файлу name в каталоге клиента.
func PathInHome(name string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, Dir, name), nil
}

// Load загружает учётные данные из указанного файла.
//
// Если файл не существует, возвращает пустые данные без ошибки.
func Load(path string) (*Credentials, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Credentials{}, nil
		}
		return nil, err
	}
	var c Credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save сохраняет учётные данные в JSON.
//
// Директория создаётся с правами 0700, файл пишется с правами 0600.
func Save(path string, c *Credentials) error {
	return WriteJSON(path, c)
}

// Clear удаляет файл учётных данных. Отсутствие файла не ошибка.
func Clear(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// WriteJSON пишет v в path с отступами, создавая каталог (0700), файл 0600.
func WriteJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
