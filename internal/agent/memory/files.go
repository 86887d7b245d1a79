package memory

import (
	"encoding/json"
	"os"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/agent/config"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/shared/filter"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/shared/models"
)

// ArticlesDump — формат файла кэша: { "articles": [ ... ] }.
type ArticlesDump struct {
	Articles []models.Article `json:"articles"`
}

// SubscriptionsDump — формат файла подписок: { "subscriptions": ["id", ...] }.
type SubscriptionsDump struct {
	Subscriptions []string `json:"subscriptions"`
}

// DefaultArticlesPath возвращает $HOME/.bookcorner/articles.json.
func DefaultArticlesPath() (string, error) {
	return config.PathInHome("articles.json")
}

// DefaultSubscriptionsPath возвращает $HOME/.bookcorner/subscriptions.json.
func DefaultSubscriptionsPath() (string, error) {
	return config.PathInHome("subscriptions.json")
}

// SaveArticles сохраняет кэш статей в файл (каталог 0700, файл 0600).
func SaveArticles(path string, store *ArticlesStore) error {
	return config.WriteJSON(path, ArticlesDump{Articles: store.List()})
}

// LoadArticles загружает кэш из файла, полностью заменяя содержимое store.
// Отсутствие файла не ошибка (первый запуск).
func LoadArticles(path string, store *ArticlesStore) error {
	var dump ArticlesDump
	ok, err := readJSON(path, &dump)
	if err != nil || !ok {
		return err
	}
	store.ReplaceAll(dump.Articles)
	return nil
}

// SaveSubscriptions сохраняет отмеченные id (отсортированные).
func SaveSubscriptions(path string, subs *filter.Subscriptions) error {
	return config.WriteJSON(path, SubscriptionsDump{Subscriptions: subs.IDs()})
}

// LoadSubscriptions читает подписки. Нет файла: пустой набор.
func LoadSubscriptions(path string) (*filter.Subscriptions, error) {
	var dump SubscriptionsDump
	if _, err := readJSON(path, &dump); err != nil {
		return nil, err
	}
	return filter.NewSubscriptions(dump.Subscriptions...), nil
}

func readJSON(path string, v any) (bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return false, err
	}
	return true, nil
}
