package table

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedState(pageSize, count int) *State {
	s := NewState(pageSize)
	s.ApplyResult(s.NextSeq(), nil, count)
	return s
}

func TestSortChangeResetsPage(t *testing.T) {
	s := loadedState(25, 200)
	s.SetPage(3)
	require.Equal(t, 3, s.Page())

	s.SetSort("name")
	assert.Equal(t, 1, s.Page())
	assert.Equal(t, "name", s.Ordering())
}

func TestSortTogglesDirection(t *testing.T) {
	s := NewState(25)

	s.SetSort("name")
	assert.Equal(t, "name", s.Ordering())

	// Same column flips direction; there is no "unsorted" third state.
	s.SetSort("name")
	assert.Equal(t, "-name", s.Ordering())
	s.SetSort("name")
	assert.Equal(t, "name", s.Ordering())

	// A new column starts ascending again.
	s.SetSort("in_stock")
	assert.Equal(t, "in_stock", s.Ordering())
}

func TestFilterAndSearchResetPage(t *testing.T) {
	s := loadedState(25, 200)

	s.SetPage(4)
	s.SetFilter("active", "1")
	assert.Equal(t, 1, s.Page())
	assert.True(t, s.FilterActive("active"))

	s.SetPage(4)
	s.ClearFilter("active")
	assert.Equal(t, 1, s.Page())
	assert.False(t, s.FilterActive("active"))

	s.SetPage(4)
	s.SetSearch("resistor")
	assert.Equal(t, 1, s.Page())
	assert.Equal(t, "resistor", s.Search())
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		count, pageSize, want int
	}{
		{0, 25, 1},
		{1, 25, 1},
		{25, 25, 1},
		{26, 25, 2},
		{57, 25, 3},
		{500, 25, 20},
	}
	for _, tt := range tests {
		s := loadedState(tt.pageSize, tt.count)
		assert.Equal(t, tt.want, s.TotalPages(), "count=%d pageSize=%d", tt.count, tt.pageSize)
	}
}

func TestSetPageClamps(t *testing.T) {
	s := loadedState(25, 57) // 3 pages

	s.SetPage(99)
	assert.Equal(t, 3, s.Page())
	s.SetPage(-1)
	assert.Equal(t, 1, s.Page())

	s.SetPage(3)
	s.NextPage()
	assert.Equal(t, 3, s.Page())
	s.SetPage(1)
	s.PrevPage()
	assert.Equal(t, 1, s.Page())
}

func TestStaleResultsAreDiscarded(t *testing.T) {
	s := NewState(25)

	first := s.NextSeq()
	second := s.NextSeq()

	// The newer fetch lands first.
	require.True(t, s.ApplyResult(second, []int64{10, 11}, 2))
	assert.Equal(t, 2, s.Count())

	// The older one arrives late and must not overwrite anything.
	assert.False(t, s.ApplyResult(first, []int64{99}, 1))
	assert.Equal(t, 2, s.Count())
	assert.Equal(t, []int64{10, 11}, s.CurrentIDs())
}

func TestSelectionSurvivesPaging(t *testing.T) {
	s := loadedState(2, 6)
	s.ApplyResult(s.NextSeq(), []int64{1, 2}, 6)

	s.ToggleSelect(1)
	s.SelectPage()
	assert.Equal(t, []int64{1, 2}, s.Selected())

	// Move to another page; selection from the first page stays.
	s.NextPage()
	s.ApplyResult(s.NextSeq(), []int64{3, 4}, 6)
	s.ToggleSelect(3)
	assert.Equal(t, []int64{1, 2, 3}, s.Selected())
	assert.True(t, s.IsSelected(1))

	// Toggle removes, clear empties (the bulk-delete success path).
	s.ToggleSelect(2)
	assert.Equal(t, []int64{1, 3}, s.Selected())
	s.ClearSelection()
	assert.Empty(t, s.Selected())
}

func TestSelectPageOnlyTouchesCurrentPage(t *testing.T) {
	s := NewState(2)
	s.ApplyResult(s.NextSeq(), []int64{5, 6}, 10)

	s.SelectPage()
	assert.Equal(t, []int64{5, 6}, s.Selected())
}

func TestQueryReflectsState(t *testing.T) {
	s := loadedState(25, 200)
	s.SetSort("name")
	s.SetSort("name") // descending
	s.SetFilter("active", "1")
	s.SetSearch("res")
	s.SetPage(3)

	q := s.Query()
	assert.Equal(t, 25, q.Limit)
	assert.Equal(t, 50, q.Offset)
	assert.Equal(t, "-name", q.Ordering)
	assert.Equal(t, "res", q.Search)
	assert.Equal(t, map[string]string{"active": "1"}, q.Filters)

	// The query holds a copy; mutating it must not leak back.
	q.Filters["active"] = "0"
	assert.True(t, s.FilterActive("active"))
	assert.Equal(t, "1", s.Query().Filters["active"])
}

func TestDebouncerCoalescesBursts(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var calls atomic.Int32

	for i := 0; i < 5; i++ {
		d.Trigger(func() { calls.Add(1) })
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls atomic.Int32

	d.Trigger(func() { calls.Add(1) })
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}
