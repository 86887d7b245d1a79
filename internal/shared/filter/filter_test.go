package filter_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/shared/filter"
)

func sampleItems() []filter.Item {
	return []filter.Item{
		{ID: "1", Title: "Zen", Tag: "Culture"},
		{ID: "2", Title: "Food Diary", Tag: "Food"},
	}
}

func ids(ms []filter.Match) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Item.ID)
	}
	return out
}

func TestApply_ByCategory(t *testing.T) {
	s := filter.Reduce(filter.State{}, filter.Event{Kind: filter.SetCategory, Value: "Food"})
	require.Equal(t, []string{"2"}, ids(filter.Apply(s, sampleItems())))
}

func TestApply_ByQueryAnyCase(t *testing.T) {
	for _, q := range []string{"zen", "ZEN", "zEn"} {
		s := filter.Reduce(filter.State{}, filter.Event{Kind: filter.SetQuery, Value: q})
		require.Equal(t, []string{"1"}, ids(filter.Apply(s, sampleItems())), "query %q", q)
	}
}

func TestApply_CategoryIsSubstringCaseInsensitive(t *testing.T) {
	items := []filter.Item{
		{ID: "a", Title: "A", Tag: "Pop Culture"},
		{ID: "b", Title: "B", Tag: "Food"},
	}
	s := filter.State{Category: "culture"}
	require.Equal(t, []string{"a"}, ids(filter.Apply(s, items)))
}

func TestApply_AllCategoryAndEmptyQueryKeepEverything(t *testing.T) {
	s := filter.State{Category: "All"}
	require.False(t, s.Active())
	require.Equal(t, []string{"1", "2"}, ids(filter.Apply(s, sampleItems())))
}

func TestApply_QueryMatchesAuthorAndExcerpt(t *testing.T) {
	items := []filter.Item{
		{ID: "1", Title: "One", Excerpt: "about gardens", Author: "Anonymous"},
		{ID: "2", Title: "Two", Excerpt: "cooking", Author: "Mila"},
	}
	require.Equal(t, []string{"1"}, ids(filter.Apply(filter.State{Query: "Garden"}, items)))
	require.Equal(t, []string{"2"}, ids(filter.Apply(filter.State{Query: "mila"}, items)))
}

func TestApply_BothCriteria(t *testing.T) {
	items := []filter.Item{
		{ID: "1", Title: "Food of Zen", Tag: "Culture"},
		{ID: "2", Title: "Food Diary", Tag: "Food"},
		{ID: "3", Title: "Zen Food", Tag: "Food"},
	}
	s := filter.State{Query: "zen", Category: "food"}
	require.Equal(t, []string{"3"}, ids(filter.Apply(s, items)))
}

func TestReduce_DoesNotMutateAndResets(t *testing.T) {
	orig := filter.State{Query: "x", Category: "y"}
	next := filter.Reduce(orig, filter.Event{Kind: filter.SetQuery, Value: "z"})

	require.Equal(t, "x", orig.Query)
	require.Equal(t, filter.State{Query: "z", Category: "y"}, next)
	require.Equal(t, filter.State{}, filter.Reduce(next, filter.Event{Kind: filter.Reset}))
}

func TestHighlight(t *testing.T) {
	segs := filter.Highlight("Zen and zen", "ZEN")
	require.Equal(t, "[Zen] and [zen]", segs.Wrap("[", "]"))
	require.Equal(t, "Zen and zen", segs.String())

	require.Equal(t, filter.Segments{{Text: "plain"}}, filter.Highlight("plain", ""))
}

func TestHighlight_HTMLEscapes(t *testing.T) {
	segs := filter.Highlight("<b>Zen</b>", "zen")
	require.Equal(t, "&lt;b&gt;<mark>Zen</mark>&lt;/b&gt;", segs.HTML())
}

func TestHighlight_Unicode(t *testing.T) {
	segs := filter.Highlight("Дневник ЕДЫ и еда", "еда")
	require.Equal(t, "Дневник [ЕДЫ]", filter.Highlight("Дневник ЕДЫ", "еды").Wrap("[", "]"))
	require.Equal(t, "Дневник ЕДЫ и [еда]", segs.Wrap("[", "]"))
}

func TestApply_HighlightsTitleAndExcerpt(t *testing.T) {
	items := []filter.Item{{ID: "1", Title: "Zen garden", Excerpt: "a zen story"}}
	ms := filter.Apply(filter.State{Query: "zen"}, items)
	require.Len(t, ms, 1)
	require.Equal(t, "*Zen* garden", ms[0].Title.Wrap("*", "*"))
	require.Equal(t, "a *zen* story", ms[0].Excerpt.Wrap("*", "*"))
}

func TestSubscriptions_Toggle(t *testing.T) {
	s := filter.NewSubscriptions("b")

	require.False(t, s.IsSubscribed("a"))
	require.True(t, s.Toggle("a"))
	require.True(t, s.IsSubscribed("a"))
	require.Equal(t, []string{"a", "b"}, s.IDs())

	require.False(t, s.Toggle("a"))
	require.False(t, s.IsSubscribed("a"))
	require.Equal(t, []string{"b"}, s.IDs())
}
