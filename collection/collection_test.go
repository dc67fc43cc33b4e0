package collection

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsHandlerShape(t *testing.T) {
	h := OptionsHandler([]Field{
		{Name: "name", Label: "Name", Required: true, Sortable: true},
		{Name: "in_stock", Label: "In Stock", Type: "number", Sortable: true},
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodOptions, "/api/part/", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Actions struct {
			POST map[string]struct {
				Label    string `json:"label"`
				Type     string `json:"type"`
				Required bool   `json:"required"`
				Sortable bool   `json:"sortable"`
			} `json:"POST"`
		} `json:"actions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	name, ok := body.Actions.POST["name"]
	require.True(t, ok)
	assert.Equal(t, "Name", name.Label)
	assert.Equal(t, "string", name.Type) // default type
	assert.True(t, name.Required)

	stock := body.Actions.POST["in_stock"]
	assert.Equal(t, "number", stock.Type)
	assert.False(t, stock.Required)
}

func TestBulkDeleteHandler(t *testing.T) {
	var got []int64
	h := BulkDeleteHandler("part", func(ids []int64) error {
		got = ids
		return nil
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/part/", strings.NewReader(`{"items":[3,1,7]}`))
	h(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []int64{3, 1, 7}, got)
}

func TestBulkDeleteHandlerRejectsBadBody(t *testing.T) {
	called := false
	h := BulkDeleteHandler("part", func([]int64) error {
		called = true
		return nil
	})

	for _, body := range []string{"", "{", `{"items":[]}`} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/part/", strings.NewReader(body))
		h(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
	}
	assert.False(t, called)
}

func TestWriteListEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteList(rec, []string{"a", "b"}, 42)

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var env struct {
		Count   int      `json:"count"`
		Results []string `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, 42, env.Count)
	assert.Equal(t, []string{"a", "b"}, env.Results)
}
