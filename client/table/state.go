// Package table holds the client-side state for one rendered collection
// view: pagination, sort, filters, search and row selection. It performs
// no I/O of its own; the TUI drives fetches from it.
package table

import (
	"sort"

	"stocktree/client/api"
)

// State tracks everything one table view needs between fetches.
//
// Overlapping fetches are sequenced rather than cancelled: every fetch
// takes a number from NextSeq and ApplyResult discards any response older
// than the newest one already applied, so the last request always wins.
type State struct {
	pageSize int
	page     int

	sortColumn     string
	sortDescending bool

	filters map[string]string
	search  string

	selection  map[int64]struct{}
	currentIDs []int64

	count       int
	seq         uint64
	lastApplied uint64
}

func NewState(pageSize int) *State {
	if pageSize <= 0 {
		pageSize = 25
	}
	return &State{
		pageSize:  pageSize,
		page:      1,
		filters:   map[string]string{},
		selection: map[int64]struct{}{},
	}
}

// SetSort activates a sort column. Selecting the active column flips the
// direction (two-state: ascending/descending, never "none"); selecting a
// new column starts ascending. Either way the view snaps back to page 1.
func (s *State) SetSort(column string) {
	if column == s.sortColumn {
		s.sortDescending = !s.sortDescending
	} else {
		s.sortColumn = column
		s.sortDescending = false
	}
	s.page = 1
}

// Ordering renders the sort as the wire parameter ('-' prefix means
// descending). Empty when no sort is active.
func (s *State) Ordering() string {
	if s.sortColumn == "" {
		return ""
	}
	if s.sortDescending {
		return "-" + s.sortColumn
	}
	return s.sortColumn
}

// SetFilter activates or replaces a named filter and resets to page 1.
func (s *State) SetFilter(name, value string) {
	s.filters[name] = value
	s.page = 1
}

// ClearFilter removes a named filter and resets to page 1.
func (s *State) ClearFilter(name string) {
	delete(s.filters, name)
	s.page = 1
}

// ToggleFilter flips a boolean filter between set and unset.
func (s *State) ToggleFilter(name, value string) {
	if _, active := s.filters[name]; active {
		s.ClearFilter(name)
	} else {
		s.SetFilter(name, value)
	}
}

// FilterActive reports whether a named filter is currently applied.
func (s *State) FilterActive(name string) bool {
	_, ok := s.filters[name]
	return ok
}

// SetSearch replaces the search term and resets to page 1. Callers are
// expected to debounce keystrokes before invoking this.
func (s *State) SetSearch(term string) {
	s.search = term
	s.page = 1
}

func (s *State) Search() string { return s.search }

func (s *State) Page() int { return s.page }

// TotalPages derives the page count from the last reported record count.
// An empty collection still has one (empty) page.
func (s *State) TotalPages() int {
	if s.count <= 0 {
		return 1
	}
	pages := (s.count + s.pageSize - 1) / s.pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

func (s *State) Count() int { return s.count }

// SetPage clamps the target page into [1, TotalPages].
func (s *State) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	if max := s.TotalPages(); page > max {
		page = max
	}
	s.page = page
}

func (s *State) NextPage() { s.SetPage(s.page + 1) }
func (s *State) PrevPage() { s.SetPage(s.page - 1) }

// NextSeq hands out the sequence number for the next fetch.
func (s *State) NextSeq() uint64 {
	s.seq++
	return s.seq
}

// ApplyResult installs a fetch response. It returns false and changes
// nothing when a newer response has already been applied.
func (s *State) ApplyResult(seq uint64, ids []int64, count int) bool {
	if seq <= s.lastApplied {
		return false
	}
	s.lastApplied = seq
	s.currentIDs = ids
	s.count = count
	return true
}

// CurrentIDs returns the row identifiers of the last applied page.
func (s *State) CurrentIDs() []int64 {
	return s.currentIDs
}

// ToggleSelect flips one row in or out of the selection. Selection is
// tracked independently of the displayed page, so paging away and back
// keeps it.
func (s *State) ToggleSelect(id int64) {
	if _, ok := s.selection[id]; ok {
		delete(s.selection, id)
	} else {
		s.selection[id] = struct{}{}
	}
}

func (s *State) IsSelected(id int64) bool {
	_, ok := s.selection[id]
	return ok
}

// SelectPage marks every row of the current page. It deliberately touches
// only the fetched page, never the whole remote collection.
func (s *State) SelectPage() {
	for _, id := range s.currentIDs {
		s.selection[id] = struct{}{}
	}
}

// ClearSelection empties the selection, e.g. after a successful bulk
// delete.
func (s *State) ClearSelection() {
	s.selection = map[int64]struct{}{}
}

// Selected returns the selected identifiers in ascending order.
func (s *State) Selected() []int64 {
	ids := make([]int64, 0, len(s.selection))
	for id := range s.selection {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Query renders the current state as the fetch parameters for this page.
func (s *State) Query() api.ListQuery {
	filters := make(map[string]string, len(s.filters))
	for k, v := range s.filters {
		filters[k] = v
	}
	return api.ListQuery{
		Limit:    s.pageSize,
		Offset:   (s.page - 1) * s.pageSize,
		Ordering: s.Ordering(),
		Search:   s.search,
		Filters:  filters,
	}
}
