package filter

import (
	"sort"
	"sync"
)

// Subscriptions — локальные отметки «подписан» по id элемента.
// Сервер о них ничего не знает.
type Subscriptions struct {
	mu  sync.RWMutex
	ids map[string]bool
}

// NewSubscriptions создаёт набор подписок из списка id.
func NewSubscriptions(ids ...string) *Subscriptions {
	s := &Subscriptions{ids: make(map[string]bool, len(ids))}
	for _, id := range ids {
		if id != "" {
			s.ids[id] = true
		}
	}
	return s
}

// Toggle переключает подписку и возвращает новое значение.
func (s *Subscriptions) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ids[id] {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = true
	return true
}

// IsSubscribed сообщает, отмечен ли элемент.
func (s *Subscriptions) IsSubscribed(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ids[id]
}

// IDs возвращает отмеченные id в отсортированном виде.
func (s *Subscriptions) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
