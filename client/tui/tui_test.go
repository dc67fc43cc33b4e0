package tui

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktree/client/api"
	"stocktree/client/session"
	"stocktree/model"
)

func testModel() Model {
	return New(nil, session.New())
}

// Every column key must resolve against the JSON the server actually sends
// for that resource, or the column renders permanently empty.
func TestResourceColumnsMatchModelJSON(t *testing.T) {
	samples := map[string]any{
		"/api/part":              model.Part{},
		"/api/company":           model.Company{},
		"/api/supplier-part":     model.SupplierPart{},
		"/api/manufacturer-part": model.ManufacturerPart{},
		"/api/order/po":          model.PurchaseOrder{LineCount: 3},
		"/api/user":              model.User{},
	}

	for _, res := range Resources() {
		sample, ok := samples[res.Path]
		require.True(t, ok, "no sample record for %s", res.Path)

		raw, err := json.Marshal(sample)
		require.NoError(t, err)
		var fields map[string]any
		require.NoError(t, json.Unmarshal(raw, &fields))

		for _, col := range res.Columns {
			_, present := fields[col.Key]
			assert.True(t, present, "%s column %q has no matching JSON field", res.Path, col.Key)
		}
	}
}

func TestOrderLineCountRenders(t *testing.T) {
	raw, err := json.Marshal(model.PurchaseOrder{LineCount: 3})
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))

	orders := Resources()[4]
	require.Equal(t, "/api/order/po", orders.Path)
	assert.Equal(t, "3", cellValue(orders, "line_items", fields["line_items"]))
}

func TestFetchNotFoundShowsMessageAndNoRows(t *testing.T) {
	m := testModel()
	m.state = browseScreen
	m.records = []record{{id: 1, fields: map[string]any{"pk": float64(1)}}}

	updated, _ := m.applyFetch(fetchResultMsg{
		resourceIdx: m.resourceIdx,
		seq:         m.tableState().NextSeq(),
		err:         api.ErrNotFound,
	})
	um := updated.(Model)

	assert.Equal(t, "not found", um.emptyMessage)
	assert.Empty(t, um.records)
}

func TestFetchSuccessInstallsRecords(t *testing.T) {
	m := testModel()
	m.state = browseScreen

	updated, _ := m.applyFetch(fetchResultMsg{
		resourceIdx: m.resourceIdx,
		seq:         m.tableState().NextSeq(),
		records: []record{
			{id: 1, fields: map[string]any{"pk": float64(1), "name": "Resistor"}},
		},
		count: 1,
	})
	um := updated.(Model)

	assert.Empty(t, um.emptyMessage)
	require.Len(t, um.records, 1)
	assert.Equal(t, 1, um.tableState().Count())

	// An empty page is not an error, just an empty-state message.
	updated, _ = um.applyFetch(fetchResultMsg{
		resourceIdx: um.resourceIdx,
		seq:         um.tableState().NextSeq(),
		count:       0,
	})
	um = updated.(Model)
	assert.Equal(t, "no rows found", um.emptyMessage)
	assert.Empty(t, um.records)
}

func TestListErrorMessages(t *testing.T) {
	assert.Equal(t, "bad request", listErrorText(api.ErrBadRequest))
	assert.Equal(t, "not authenticated", listErrorText(api.ErrUnauthorized))
	assert.Equal(t, "permission denied", listErrorText(api.ErrForbidden))
	assert.Equal(t, "not found", listErrorText(api.ErrNotFound))

	// Transport failures pass through raw.
	assert.Equal(t, "connection refused", listErrorText(errors.New("connection refused")))
}

func TestSortCycleSkipsUnsortableColumns(t *testing.T) {
	m := testModel() // Parts is the initial resource

	seen := map[string]bool{}
	key := m.nextSortColumn()
	for i := 0; i < 3; i++ {
		seen[key] = true
		m.tableState().SetSort(key)
		key = m.nextSortColumn()
	}

	// Only the server-orderable columns take part; pk/units/active never do.
	assert.Equal(t, map[string]bool{"name": true, "IPN": true, "in_stock": true}, seen)
	// The cycle wraps back to the first sortable column.
	assert.Equal(t, "name", key)
}
