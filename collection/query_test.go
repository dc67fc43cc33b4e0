package collection

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func parseURL(t *testing.T, target string) Query {
	t.Helper()
	return ParseQuery(httptest.NewRequest("GET", target, nil))
}

func TestParseQueryDefaults(t *testing.T) {
	q := parseURL(t, "/api/part/")

	assert.Equal(t, DefaultLimit, q.Limit)
	assert.Equal(t, 0, q.Offset)
	assert.Empty(t, q.Ordering)
	assert.False(t, q.Descending)
	assert.Empty(t, q.Search)
	assert.Empty(t, q.Filters)
	assert.True(t, q.Paginated())
}

func TestParseQueryPagination(t *testing.T) {
	q := parseURL(t, "/api/part/?limit=50&offset=100")
	assert.Equal(t, 50, q.Limit)
	assert.Equal(t, 100, q.Offset)

	// Limit is clamped, never rejected.
	q = parseURL(t, "/api/part/?limit=10000")
	assert.Equal(t, MaxLimit, q.Limit)

	// limit=0 on the wire cannot switch off pagination; only internally
	// constructed queries run unpaginated.
	q = parseURL(t, "/api/part/?limit=0")
	assert.Equal(t, DefaultLimit, q.Limit)
	assert.True(t, q.Paginated())
	assert.False(t, Query{}.Paginated())

	// Garbage values fall back to the default.
	q = parseURL(t, "/api/part/?limit=abc&offset=-5")
	assert.Equal(t, DefaultLimit, q.Limit)
	assert.Equal(t, 0, q.Offset)
}

func TestParseQueryOrdering(t *testing.T) {
	q := parseURL(t, "/api/part/?ordering=name")
	assert.Equal(t, "name", q.Ordering)
	assert.False(t, q.Descending)

	q = parseURL(t, "/api/part/?ordering=-in_stock")
	assert.Equal(t, "in_stock", q.Ordering)
	assert.True(t, q.Descending)
}

func TestParseQueryFiltersExcludeReservedParams(t *testing.T) {
	q := parseURL(t, "/api/part/?active=1&category=5&limit=10&ordering=name&search=res&export=csv")

	assert.Equal(t, map[string]string{"active": "1", "category": "5"}, q.Filters)
	assert.Equal(t, "csv", q.Export)
}

func TestFoldSearch(t *testing.T) {
	assert.Equal(t, "resistor", FoldSearch("  Resistor "))
	// Full-width compatibility forms fold to ASCII.
	assert.Equal(t, "abc123", FoldSearch("ＡＢＣ１２３"))
	assert.Equal(t, "", FoldSearch(""))
}
