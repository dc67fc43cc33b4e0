package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListQueryValues(t *testing.T) {
	q := ListQuery{
		Limit:    25,
		Offset:   50,
		Ordering: "-name",
		Search:   "res",
		Filters:  map[string]string{"active": "1"},
	}

	paged := q.Values(true)
	assert.Equal(t, "25", paged.Get("limit"))
	assert.Equal(t, "50", paged.Get("offset"))
	assert.Equal(t, "-name", paged.Get("ordering"))
	assert.Equal(t, "res", paged.Get("search"))
	assert.Equal(t, "1", paged.Get("active"))

	// The export flow drops pagination but keeps everything else.
	unpaged := q.Values(false)
	assert.Empty(t, unpaged.Get("limit"))
	assert.Empty(t, unpaged.Get("offset"))
	assert.Equal(t, "-name", unpaged.Get("ordering"))
	assert.Equal(t, "res", unpaged.Get("search"))
	assert.Equal(t, "1", unpaged.Get("active"))
}

func TestListDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/part", r.URL.Path)
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"count": 57, "results": [{"pk": 1}, {"pk": 2}]}`)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	env, err := c.List(context.Background(), "/api/part", ListQuery{Limit: 25})
	require.NoError(t, err)
	assert.Equal(t, 57, env.Count)
	assert.Len(t, env.Results, 2)
}

func TestListDecodesBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"pk": 1}, {"pk": 2}, {"pk": 3}]`)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	env, err := c.List(context.Background(), "/api/part", ListQuery{Limit: 25})
	require.NoError(t, err)

	// Bare arrays have no count; fall back to the page length.
	assert.Equal(t, 3, env.Count)
	assert.Len(t, env.Results, 3)
}

func TestListErrorTaxonomy(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		c := NewHTTPClient(srv.URL)
		_, err := c.List(context.Background(), "/api/part", ListQuery{})
		assert.ErrorIs(t, err, tt.want, "status %d", tt.status)
		srv.Close()
	}

	// Unmapped statuses surface the code instead.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()
	c := NewHTTPClient(srv.URL)
	_, err := c.List(context.Background(), "/api/part", ListQuery{})
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.Code)
}

func TestBulkDeleteBody(t *testing.T) {
	var gotMethod string
	var gotBody map[string][]int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	c.SetAuthToken("tok")
	require.NoError(t, c.BulkDelete(context.Background(), "/api/part", []int64{3, 1, 7}))

	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, map[string][]int64{"items": {3, 1, 7}}, gotBody)
}

func TestAuthorizationHeader(t *testing.T) {
	var header string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Get("Authorization")
		io.WriteString(w, `{"count":0,"results":[]}`)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	c.SetAuthToken("secret-token")
	_, err := c.List(context.Background(), "/api/part", ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", header)
}

func TestOptionsCachesLabels(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodOptions, r.Method)
		io.WriteString(w, `{"actions":{"POST":{"name":{"label":"Name"},"IPN":{"label":"IPN"}}}}`)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	labels, err := c.Options(context.Background(), "/api/part")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"name": "Name", "IPN": "IPN"}, labels)

	// Second lookup is served from the cache.
	_, err = c.Options(context.Background(), "/api/part")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestExportURLOmitsPagination(t *testing.T) {
	c := NewHTTPClient("http://example.test")
	q := ListQuery{
		Limit:    25,
		Offset:   50,
		Ordering: "name",
		Search:   "res",
		Filters:  map[string]string{"active": "1"},
	}

	raw := c.ExportURL("/api/part", q, "csv")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "/api/part", u.Path)
	params := u.Query()
	assert.Equal(t, "csv", params.Get("export"))
	assert.Equal(t, "name", params.Get("ordering"))
	assert.Equal(t, "res", params.Get("search"))
	assert.Equal(t, "1", params.Get("active"))
	assert.False(t, params.Has("limit"))
	assert.False(t, params.Has("offset"))
}

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/login":
			io.WriteString(w, `{"token":"issued","user":{"pk":1,"username":"admin"}}`)
		default:
			assert.Equal(t, "Bearer issued", r.Header.Get("Authorization"))
			io.WriteString(w, `{"count":0,"results":[]}`)
		}
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	resp, err := c.Login(context.Background(), "admin", "pw")
	require.NoError(t, err)
	assert.Equal(t, "issued", resp.Token)
	assert.Equal(t, "admin", resp.User.Username)

	// Subsequent requests carry the issued token automatically.
	_, err = c.List(context.Background(), "/api/part", ListQuery{})
	require.NoError(t, err)
}
