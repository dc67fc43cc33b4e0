package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktree/database"
	"stocktree/model"
)

func TestTokenRoundTrip(t *testing.T) {
	a := New("test-secret", time.Hour)

	token, err := a.IssueToken(42)
	require.NoError(t, err)

	userID, err := a.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestVerifyTokenRejections(t *testing.T) {
	a := New("test-secret", time.Hour)

	_, err := a.VerifyToken("not-a-token")
	assert.Error(t, err)

	// Token signed with another secret.
	other := New("other-secret", time.Hour)
	token, err := other.IssueToken(1)
	require.NoError(t, err)
	_, err = a.VerifyToken(token)
	assert.Error(t, err)

	// Expired token.
	expired := New("test-secret", -time.Minute)
	token, err = expired.IssueToken(1)
	require.NoError(t, err)
	_, err = a.VerifyToken(token)
	assert.Error(t, err)
}

func TestAuthenticator(t *testing.T) {
	a := New("test-secret", time.Hour)
	var gotUserID int64
	handler := a.Authenticator(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		require.True(t, ok)
		gotUserID = id
		w.WriteHeader(http.StatusOK)
	}))

	// No header.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/part/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Wrong scheme.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/part/", nil)
	req.Header.Set("Authorization", "Basic abc")
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Garbage token.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/api/part/", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid token reaches the handler with the user id in context.
	token, err := a.IssueToken(7)
	require.NoError(t, err)
	rec = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/api/part/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), gotUserID)
}

func TestLoginHandler(t *testing.T) {
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, database.InitDatabase(db))

	a := New("test-secret", time.Hour)
	handler := LoginHandler(db, a)

	login := func(username, password string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(model.LoginRequest{Username: username, Password: password})
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest("POST", "/api/login", bytes.NewReader(body)))
		return rec
	}

	// The seeded admin account can log in and receives a working token.
	rec := login("admin", "admin")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp model.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "admin", resp.User.Username)
	userID, err := a.VerifyToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)

	// Wrong password and unknown user are indistinguishable.
	wrongPw := login("admin", "nope")
	unknown := login("ghost", "nope")
	assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, wrongPw.Body.String(), unknown.Body.String())

	// Missing fields are a bad request.
	assert.Equal(t, http.StatusBadRequest, login("", "").Code)
}
