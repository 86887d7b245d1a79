// Package filter реализует фильтрацию списков статей по тексту и категории.
//
// Состояние фильтра (запрос и категория) меняется только через Reduce,
// результат вычисляется чистой функцией Apply. Пакет общий для сервера
// (GET /articles?q=&category=) и CLI-клиента (bookcorner articles list).
package filter

import (
	"strings"
	"unicode"
)

// AllCategories — значение категории, означающее «без фильтра по категории».
const AllCategories = "all"

// State — состояние фильтра.
type State struct {
	Query    string
	Category string
}

// EventKind — тип события, меняющего состояние фильтра.
type EventKind int

const (
	// SetQuery заменяет текстовый запрос.
	SetQuery EventKind = iota
	// SetCategory заменяет активную категорию.
	SetCategory
	// Reset сбрасывает фильтр в пустое состояние.
	Reset
)

// Event — событие для Reduce.
type Event struct {
	Kind  EventKind
	Value string
}

// Reduce возвращает новое состояние фильтра после события e.
// Исходное состояние не изменяется.
func Reduce(s State, e Event) State {
	switch e.Kind {
	case SetQuery:
		s.Query = e.Value
	case SetCategory:
		s.Category = e.Value
	case Reset:
		s = State{}
	}
	return s
}

// Item — элемент списка, который умеет фильтровать пакет.
type Item struct {
	ID      string
	Title   string
	Excerpt string
	Author  string
	Tag     string
}

// Match — элемент, прошедший фильтр, с подсвеченными заголовком и превью.
type Match struct {
	Item    Item
	Title   Segments
	Excerpt Segments
}

// Active сообщает, задан ли хотя бы один критерий фильтрации.
func (s State) Active() bool {
	return strings.TrimSpace(s.Query) != "" || categoryFilter(s.Category) != ""
}

// Apply возвращает подпоследовательность items, подходящих под состояние s.
//
// Элемент подходит, если его Tag содержит категорию и конкатенация
// Title, Excerpt и Author содержит запрос. Обе проверки без учёта регистра.
// Порядок элементов сохраняется.
func Apply(s State, items []Item) []Match {
	query := strings.TrimSpace(s.Query)
	category := categoryFilter(s.Category)

	out := make([]Match, 0, len(items))
	for _, it := range items {
		if category != "" && !containsFold(it.Tag, category) {
			continue
		}
		if query != "" && !containsFold(it.Title+" "+it.Excerpt+" "+it.Author, query) {
			continue
		}
		out = append(out, Match{
			Item:    it,
			Title:   Highlight(it.Title, query),
			Excerpt: Highlight(it.Excerpt, query),
		})
	}
	return out
}

func categoryFilter(c string) string {
	c = strings.TrimSpace(c)
	if strings.EqualFold(c, AllCategories) {
		return ""
	}
	return c
}

// containsFold — регистронезависимый strings.Contains.
func containsFold(s, substr string) bool {
	return indexFold([]rune(s), foldRunes(substr), 0) >= 0
}

func foldRunes(s string) []rune {
	r := []rune(s)
	for i := range r {
		r[i] = unicode.ToLower(r[i])
	}
	return r
}

// indexFold ищет needle (уже в нижнем регистре) в hay начиная с позиции from.
// Индексы в рунах.
func indexFold(hay, needle []rune, from int) int {
	if len(needle) == 0 {
		return from
	}
outer:
	for i := from; i+len(needle) <= len(hay); i++ {
		for j, n := range needle {
			if unicode.ToLower(hay[i+j]) != n {
				continue outer
			}
		}
		return i
	}
	return -1
}
