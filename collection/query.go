package collection

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	DefaultLimit = 25
	MaxLimit     = 500
)

// Reserved query parameters that are never treated as named filters.
var reservedParams = map[string]bool{
	"limit":    true,
	"offset":   true,
	"ordering": true,
	"search":   true,
	"export":   true,
}

// Query is one parsed collection request: pagination window, ordering,
// free-text search and the remaining named filter parameters.
type Query struct {
	Limit      int
	Offset     int
	Ordering   string
	Descending bool
	Search     string
	Filters    map[string]string
	Export     string
}

// ParseQuery extracts the collection contract parameters from a request.
// An ordering value prefixed with '-' means descending. The limit is
// clamped to MaxLimit; zero and invalid limits fall back to DefaultLimit.
// Unpaginated queries exist only internally: export handlers construct a
// Query with Limit 0 themselves, the wire never does.
func ParseQuery(r *http.Request) Query {
	return parseValues(r.URL.Query())
}

func parseValues(values url.Values) Query {
	q := Query{
		Limit:   DefaultLimit,
		Filters: map[string]string{},
	}

	if raw := values.Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			q.Limit = n
		}
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}

	if raw := values.Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			q.Offset = n
		}
	}

	ordering := values.Get("ordering")
	if strings.HasPrefix(ordering, "-") {
		q.Descending = true
		ordering = ordering[1:]
	}
	q.Ordering = ordering

	q.Search = FoldSearch(values.Get("search"))
	q.Export = values.Get("export")

	for name, vals := range values {
		if reservedParams[name] || len(vals) == 0 {
			continue
		}
		q.Filters[name] = vals[0]
	}

	return q
}

// FoldSearch normalizes free-text search input: NFKC folds full-width and
// compatibility forms, then lowercases, so "ＡＢＣ" matches "abc".
func FoldSearch(s string) string {
	return strings.ToLower(norm.NFKC.String(strings.TrimSpace(s)))
}

// Paginated reports whether the query asks for a bounded page.
func (q Query) Paginated() bool {
	return q.Limit > 0
}
