package filter

import (
	"html"
	"strings"
)

// Segment — кусок текста; Hit означает совпадение с запросом.
type Segment struct {
	Text string
	Hit  bool
}

// Segments — текст, разбитый на подсвеченные и обычные куски.
type Segments []Segment

// Highlight разбивает text на сегменты, помечая все непересекающиеся
// вхождения query (без учёта регистра). Пустой query даёт один сегмент.
func Highlight(text, query string) Segments {
	needle := foldRunes(strings.TrimSpace(query))
	if len(needle) == 0 || text == "" {
		return Segments{{Text: text}}
	}

	hay := []rune(text)
	var out Segments
	pos := 0
	for {
		i := indexFold(hay, needle, pos)
		if i < 0 {
			break
		}
		if i > pos {
			out = append(out, Segment{Text: string(hay[pos:i])})
		}
		out = append(out, Segment{Text: string(hay[i : i+len(needle)]), Hit: true})
		pos = i + len(needle)
	}
	if pos < len(hay) {
		out = append(out, Segment{Text: string(hay[pos:])})
	}
	return out
}

// Wrap склеивает сегменты, обрамляя совпадения маркерами open и closing.
func (s Segments) Wrap(open, closing string) string {
	var b strings.Builder
	for _, seg := range s {
		if seg.Hit {
			b.WriteString(open)
			b.WriteString(seg.Text)
			b.WriteString(closing)
			continue
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}

// HTML возвращает экранированный текст с совпадениями в <mark>.
func (s Segments) HTML() string {
	var b strings.Builder
	for _, seg := range s {
		if seg.Hit {
			b.WriteString("<mark>")
			b.WriteString(html.EscapeString(seg.Text))
			b.WriteString("</mark>")
			continue
		}
		b.WriteString(html.EscapeString(seg.Text))
	}
	return b.String()
}

// String возвращает исходный текст без подсветки.
func (s Segments) String() string {
	return s.Wrap("", "")
}
