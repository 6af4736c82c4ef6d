// Package catalog holds the browsing state of the catalog: the known
// entries, the active search term and category filter, and the set of
// entries selected for export.
//
// The filtered view is always recomputed from (entries, search, category);
// nothing is cached. The selection is a set of ids that is independent of
// the filters: changing a filter never drops selected ids.
//
// State is owned by a single event loop (the REPL) and is not safe for
// concurrent use.
package catalog

import (
	"slices"
	"strings"

	"github.com/dmitrijs2005/dessertcatalog/internal/client/models"
)

// Filter returns the entries matching search and category, preserving the
// input order.
//
// search is a case-insensitive substring test against the title and the
// description (a nil or empty description only fails its own half).
// category is a case-insensitive exact match against any of the entry's
// comma-separated tags. Empty search or category matches everything.
func Filter(entries []models.Dessert, search, category string) []models.Dessert {
	needle := strings.ToLower(search)
	out := make([]models.Dessert, 0, len(entries))
	for _, e := range entries {
		if category != "" && !e.HasTag(category) {
			continue
		}
		if needle != "" && !matchesSearch(e, needle) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func matchesSearch(e models.Dessert, needle string) bool {
	if strings.Contains(strings.ToLower(e.Title), needle) {
		return true
	}
	return e.Description != nil && *e.Description != "" &&
		strings.Contains(strings.ToLower(*e.Description), needle)
}

type State struct {
	entries  []models.Dessert
	search   string
	category string
	selected map[int64]struct{}
}

// NewState returns a state over entries with no filters and an empty
// selection.
func NewState(entries []models.Dessert) *State {
	s := &State{selected: make(map[int64]struct{})}
	s.SetEntries(entries)
	return s
}

// SetEntries replaces the entry list. The selection is kept as-is.
func (s *State) SetEntries(entries []models.Dessert) {
	s.entries = slices.Clone(entries)
}

func (s *State) Entries() []models.Dessert {
	return slices.Clone(s.entries)
}

// Entry looks an entry up by id among all known entries.
func (s *State) Entry(id int64) (models.Dessert, bool) {
	for _, e := range s.entries {
		if e.ID == id {
			return e, true
		}
	}
	return models.Dessert{}, false
}

// SetSearch stores the raw search term.
func (s *State) SetSearch(term string) {
	s.search = term
}

func (s *State) Search() string {
	return s.search
}

// SetCategory stores the category filter; "" means all categories.
func (s *State) SetCategory(category string) {
	s.category = category
}

func (s *State) Category() string {
	return s.category
}

// Filtered returns the current filtered view.
func (s *State) Filtered() []models.Dessert {
	return Filter(s.entries, s.search, s.category)
}

// Toggle flips the membership of id in the selection.
func (s *State) Toggle(id int64) {
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return
	}
	s.selected[id] = struct{}{}
}

// SelectAll clears the selection when its size equals the size of the
// filtered view, and otherwise replaces it with exactly the filtered ids.
func (s *State) SelectAll() {
	view := s.Filtered()
	if len(s.selected) == len(view) {
		s.ClearSelection()
		return
	}
	next := make(map[int64]struct{}, len(view))
	for _, e := range view {
		next[e.ID] = struct{}{}
	}
	s.selected = next
}

// AllSelected reports whether SelectAll would currently deselect.
func (s *State) AllSelected() bool {
	return len(s.selected) == len(s.Filtered())
}

func (s *State) ClearSelection() {
	s.selected = make(map[int64]struct{})
}

func (s *State) IsSelected(id int64) bool {
	_, ok := s.selected[id]
	return ok
}

func (s *State) SelectedCount() int {
	return len(s.selected)
}

// Selected returns the selected ids in ascending order.
func (s *State) Selected() []int64 {
	ids := make([]int64, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// SelectedKnown returns the selected ids that are still present in the
// entry list, in ascending order. Ids of entries removed by a reload are
// skipped.
func (s *State) SelectedKnown() []int64 {
	ids := make([]int64, 0, len(s.selected))
	for _, id := range s.Selected() {
		if _, ok := s.Entry(id); ok {
			ids = append(ids, id)
		}
	}
	return ids
}
