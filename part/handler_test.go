package part

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktree/collection"
	"stocktree/database"
	"stocktree/model"
)

func setupRouter(t *testing.T) (*chi.Mux, *sqlx.DB) {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.InitDatabase(db))

	r := chi.NewRouter()
	r.Route("/api/part", func(r chi.Router) {
		r.Get("/", ListHandler(db))
		r.Method(http.MethodOptions, "/", collection.OptionsHandler(Fields()))
		r.Post("/", CreateHandler(db))
		r.Delete("/", BulkDeleteHandler(db))
		r.Get("/{id}", DetailHandler(db))
		r.Put("/{id}", UpdateHandler(db))
		r.Delete("/{id}", DeleteHandler(db))
	})
	return r, db
}

func do(t *testing.T, r http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, reader))
	return rec
}

func TestCreateAndDetail(t *testing.T) {
	r, _ := setupRouter(t)

	rec := do(t, r, "POST", "/api/part/", model.PartInput{Name: "Resistor 10k", IPN: "R-10K", Active: 1})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.Part
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Resistor 10k", created.Name)
	require.NotZero(t, created.ID)

	rec = do(t, r, "GET", fmt.Sprintf("/api/part/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Name is required.
	rec = do(t, r, "POST", "/api/part/", model.PartInput{IPN: "X"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDetailNotFound(t *testing.T) {
	r, _ := setupRouter(t)

	rec := do(t, r, "GET", "/api/part/9999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListEnvelopeAndFilters(t *testing.T) {
	r, db := setupRouter(t)
	for i := 1; i <= 30; i++ {
		_, err := database.InsertPart(db, model.PartInput{
			Name:   fmt.Sprintf("Part %02d", i),
			Active: i % 2,
		})
		require.NoError(t, err)
	}

	rec := do(t, r, "GET", "/api/part/?limit=10&offset=0", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Count   int          `json:"count"`
		Results []model.Part `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, 30, env.Count)
	assert.Len(t, env.Results, 10)

	// Filter narrows the count reported in the envelope.
	rec = do(t, r, "GET", "/api/part/?limit=10&active=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, 15, env.Count)

	// Search applies the same folding as the server side stores.
	rec = do(t, r, "GET", "/api/part/?search=part+03", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, 1, env.Count)
}

func TestUpdateHandler(t *testing.T) {
	r, db := setupRouter(t)
	id, err := database.InsertPart(db, model.PartInput{Name: "Old", Active: 1})
	require.NoError(t, err)

	rec := do(t, r, "PUT", fmt.Sprintf("/api/part/%d", id), model.PartInput{Name: "New", Active: 1})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.Part
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "New", updated.Name)

	rec = do(t, r, "PUT", "/api/part/9999", model.PartInput{Name: "New"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBulkDelete(t *testing.T) {
	r, db := setupRouter(t)
	var ids []int64
	for i := 0; i < 3; i++ {
		id, err := database.InsertPart(db, model.PartInput{Name: fmt.Sprintf("P%d", i)})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	rec := do(t, r, "DELETE", "/api/part/", map[string][]int64{"items": ids[:2]})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, count, err := database.ListParts(db, collection.Query{Limit: 25, Filters: map[string]string{}})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestOptionsMetadata(t *testing.T) {
	r, _ := setupRouter(t)

	rec := do(t, r, "OPTIONS", "/api/part/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var meta struct {
		Actions struct {
			POST map[string]struct {
				Label string `json:"label"`
			} `json:"POST"`
		} `json:"actions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meta))
	assert.Equal(t, "Internal Part Number", meta.Actions.POST["IPN"].Label)
}

func TestExportIgnoresPagination(t *testing.T) {
	r, db := setupRouter(t)
	for i := 1; i <= 40; i++ {
		_, err := database.InsertPart(db, model.PartInput{Name: fmt.Sprintf("Part %02d", i), Active: 1})
		require.NoError(t, err)
	}

	rec := do(t, r, "GET", "/api/part/?limit=10&export=csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "parts.csv")

	// Header plus all 40 rows, not the 10-row page.
	lines := strings.Split(strings.TrimRight(rec.Body.String(), "\n"), "\n")
	assert.Len(t, lines, 41)

	rec = do(t, r, "GET", "/api/part/?export=pdf", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
