package catalog

import (
	"slices"
	"testing"

	"github.com/dmitrijs2005/dessertcatalog/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(v string) *string { return &v }

func ids(entries []models.Dessert) []int64 {
	out := make([]int64, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func sample() []models.Dessert {
	return []models.Dessert{
		{ID: 1, Title: "Napoleon", Category: "Cakes, Pastries", Description: str("Layered puff pastry with custard")},
		{ID: 2, Title: "Honey cake", Category: "Cakes"},
		{ID: 3, Title: "Macaron", Category: "Cookies", Description: str("")},
		{ID: 4, Title: "Eclair", Category: "Pastries", Description: str("Choux with CHOCOLATE glaze")},
		{ID: 5, Title: "Cheesecake", Category: "Cheesecakes"},
	}
}

func TestFilter_CategoryExample(t *testing.T) {
	entries := []models.Dessert{
		{ID: 1, Category: "Cakes, Pastries"},
		{ID: 2, Category: "Cakes"},
	}

	assert.Equal(t, []int64{1, 2}, ids(Filter(entries, "", "Cakes")))
	assert.Equal(t, []int64{1}, ids(Filter(entries, "", "Pastries")))
}

func TestFilter_CategoryIsExactTagMatch(t *testing.T) {
	got := ids(Filter(sample(), "", "cakes"))
	assert.Equal(t, []int64{1, 2}, got, "Cheesecakes must not match cakes")
}

func TestFilter_EmptySearchAndCategoryReturnsAll(t *testing.T) {
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids(Filter(sample(), "", "")))
}

func TestFilter_SearchTitleAndDescription(t *testing.T) {
	tests := []struct {
		name   string
		search string
		want   []int64
	}{
		{name: "title, case-insensitive", search: "ECLAIR", want: []int64{4}},
		{name: "description", search: "chocolate", want: []int64{4}},
		{name: "title substring", search: "cake", want: []int64{2, 5}},
		{name: "description substring", search: "puff", want: []int64{1}},
		{name: "no match", search: "tiramisu", want: []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(sample(), tt.search, "")))
		})
	}
}

func TestFilter_NilDescriptionStillChecksTitle(t *testing.T) {
	entries := []models.Dessert{{ID: 9, Title: "Plain tart", Description: nil}}
	assert.Equal(t, []int64{9}, ids(Filter(entries, "tart", "")))
	assert.Empty(t, Filter(entries, "custard", ""))
}

func TestFilter_SearchAndCategoryCombine(t *testing.T) {
	assert.Equal(t, []int64{1}, ids(Filter(sample(), "custard", "pastries")))
}

func TestFilter_Idempotent(t *testing.T) {
	for _, cat := range []string{"", "cakes", "Pastries", "cookies", "cheesecakes"} {
		for _, search := range []string{"", "a", "cake"} {
			once := Filter(sample(), search, cat)
			twice := Filter(once, search, cat)
			require.Equal(t, ids(once), ids(twice), "search=%q cat=%q", search, cat)
		}
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	in := sample()
	before := slices.Clone(in)
	_ = Filter(in, "cake", "cakes")
	assert.Equal(t, before, in)
}

func TestState_ToggleTwiceRestores(t *testing.T) {
	s := NewState(sample())
	s.Toggle(2)
	before := s.Selected()

	s.Toggle(4)
	s.Toggle(4)
	assert.Equal(t, before, s.Selected())

	s.Toggle(2)
	s.Toggle(2)
	assert.Equal(t, before, s.Selected())
}

func TestState_SelectAllTwiceClears(t *testing.T) {
	s := NewState(sample())
	s.SetCategory("Cakes")

	s.SelectAll()
	assert.Equal(t, []int64{1, 2}, s.Selected())
	assert.True(t, s.AllSelected())

	s.SelectAll()
	assert.Empty(t, s.Selected())
}

func TestState_SelectAllReplacesPartialSelection(t *testing.T) {
	s := NewState(sample())
	s.Toggle(3)
	s.SetCategory("pastries")

	s.SelectAll()
	assert.Equal(t, []int64{1, 4}, s.Selected(), "selection becomes exactly the filtered view")
}

func TestState_SelectionSurvivesFilterChanges(t *testing.T) {
	s := NewState(sample())
	s.SelectAll()
	require.Equal(t, 5, s.SelectedCount())

	s.SetCategory("Cookies")
	s.SetSearch("mac")
	assert.Equal(t, 5, s.SelectedCount())
	assert.Equal(t, []int64{3}, ids(s.Filtered()))

	// sizes differ, so select-all narrows to the filtered view instead of clearing
	s.SelectAll()
	assert.Equal(t, []int64{3}, s.Selected())
}

func TestState_SelectAllOnEmptyViewWithEmptySelection(t *testing.T) {
	s := NewState(sample())
	s.SetSearch("nothing matches this")

	s.SelectAll()
	assert.Empty(t, s.Selected())
}

func TestState_SelectedKnownSkipsRemovedEntries(t *testing.T) {
	s := NewState(sample())
	s.Toggle(1)
	s.Toggle(5)

	s.SetEntries(sample()[:3])
	assert.Equal(t, []int64{1, 5}, s.Selected())
	assert.Equal(t, []int64{1}, s.SelectedKnown())
}

func TestState_EntriesAreCopied(t *testing.T) {
	in := sample()
	s := NewState(in)
	in[0].Title = "mutated"

	e, ok := s.Entry(1)
	require.True(t, ok)
	assert.Equal(t, "Napoleon", e.Title)

	_, ok = s.Entry(42)
	assert.False(t, ok)
}

func TestState_AccessorsAndClear(t *testing.T) {
	s := NewState(nil)
	s.SetSearch("x")
	s.SetCategory("y")
	assert.Equal(t, "x", s.Search())
	assert.Equal(t, "y", s.Category())

	s.Toggle(10)
	assert.True(t, s.IsSelected(10))
	s.ClearSelection()
	assert.False(t, s.IsSelected(10))
	assert.Empty(t, s.Entries())
}
