package database

import (
	"fmt"
	"strings"

	"stocktree/collection"
)

// ListSpec declares how one entity's list endpoint maps onto SQL: the
// select/from clauses, which columns free-text search scans, and the
// whitelists translating API parameter names to real columns. Anything not
// whitelisted is ignored rather than rejected.
type ListSpec struct {
	Select        string
	From          string
	Where         string
	SearchColumns []string
	OrderColumns  map[string]string
	FilterColumns map[string]string
	DefaultOrder  string
}

// BuildList renders the paginated data query and the matching COUNT query
// for a collection.Query. Both share the same WHERE clause and args so the
// envelope count always describes the filtered set, not the page.
func (s ListSpec) BuildList(q collection.Query) (dataQuery, countQuery string, args []interface{}) {
	var where strings.Builder
	if s.Where != "" {
		where.WriteString(" WHERE ")
		where.WriteString(s.Where)
	}

	and := func() {
		if where.Len() == 0 {
			where.WriteString(" WHERE ")
		} else {
			where.WriteString(" AND ")
		}
	}

	for name, value := range q.Filters {
		col, ok := s.FilterColumns[name]
		if !ok {
			continue
		}
		and()
		where.WriteString(col)
		where.WriteString(" = ?")
		args = append(args, value)
	}

	if q.Search != "" && len(s.SearchColumns) > 0 {
		and()
		where.WriteString("(")
		for i, col := range s.SearchColumns {
			if i > 0 {
				where.WriteString(" OR ")
			}
			where.WriteString("lower(" + col + ") LIKE ?")
			args = append(args, "%"+q.Search+"%")
		}
		where.WriteString(")")
	}

	countQuery = "SELECT COUNT(*) FROM " + s.From + where.String()

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(s.Select)
	sb.WriteString(" FROM ")
	sb.WriteString(s.From)
	sb.WriteString(where.String())

	order := s.DefaultOrder
	if col, ok := s.OrderColumns[q.Ordering]; ok {
		order = col
		if q.Descending {
			order += " DESC"
		}
	}
	if order != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(order)
	}

	if q.Paginated() {
		sb.WriteString(fmt.Sprintf(" LIMIT %d OFFSET %d", q.Limit, q.Offset))
	}

	return sb.String(), countQuery, args
}

// RunList executes the data+count query pair. dest must be a pointer to a
// slice of the entity's row type.
func RunList(db DBTX, spec ListSpec, q collection.Query, dest interface{}) (int, error) {
	dataQuery, countQuery, args := spec.BuildList(q)

	var count int
	if err := db.Get(&count, countQuery, args...); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}

	if err := db.Select(dest, dataQuery, args...); err != nil {
		return 0, fmt.Errorf("failed to list records: %w", err)
	}
	return count, nil
}
