package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"stocktree/model"
)

// Status-coded fetch failures. The table UI maps each to its own "no
// records" message; anything else is wrapped in a StatusError.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

// StatusError is returned for HTTP failures outside the mapped taxonomy.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

const requestTimeout = 30 * time.Second

// ListQuery carries the collection contract parameters of one fetch.
type ListQuery struct {
	Limit    int
	Offset   int
	Ordering string // prefixed with '-' for descending
	Search   string
	Filters  map[string]string
}

// Values renders the query parameters. paginate=false drops limit/offset
// (the export flow).
func (q ListQuery) Values(paginate bool) url.Values {
	values := url.Values{}
	if paginate {
		values.Set("limit", fmt.Sprintf("%d", q.Limit))
		values.Set("offset", fmt.Sprintf("%d", q.Offset))
	}
	if q.Ordering != "" {
		values.Set("ordering", q.Ordering)
	}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	for name, value := range q.Filters {
		values.Set(name, value)
	}
	return values
}

// Envelope is a decoded list response.
type Envelope struct {
	Count   int
	Results []json.RawMessage
}

// Client is the API surface the table UI consumes.
type Client interface {
	Login(ctx context.Context, username, password string) (*model.LoginResponse, error)
	ServerInfo(ctx context.Context) (*model.ServerInfo, error)
	List(ctx context.Context, resource string, q ListQuery) (*Envelope, error)
	Options(ctx context.Context, resource string) (map[string]string, error)
	BulkDelete(ctx context.Context, resource string, ids []int64) error
	ExportURL(resource string, q ListQuery, format string) string
	SetAuthToken(token string)
}

type httpClient struct {
	baseURL string
	client  *http.Client
	token   string

	mu     sync.Mutex
	labels map[string]map[string]string // resource -> field -> label
}

func NewHTTPClient(baseURL string) Client {
	return &httpClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
		labels:  map[string]map[string]string{},
	}
}

func (c *httpClient) SetAuthToken(token string) {
	c.token = token
}

func (c *httpClient) newRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return nil, fmt.Errorf("failed to build URL for %s: %w", path, err)
	}

	var req *http.Request
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
	} else {
		req, err = http.NewRequestWithContext(ctx, method, endpoint, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", path, err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// statusError maps a non-2xx response to the error taxonomy.
func statusError(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return &StatusError{Code: code}
	}
}

func (c *httpClient) Login(ctx context.Context, username, password string) (*model.LoginResponse, error) {
	body, err := json.Marshal(model.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to encode login request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/login", body)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode)
	}

	var out model.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	c.token = out.Token
	return &out, nil
}

func (c *httpClient) ServerInfo(ctx context.Context) (*model.ServerInfo, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("server info request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode)
	}

	var info model.ServerInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode server info: %w", err)
	}
	return &info, nil
}

// List fetches one page. The response may be a {results, count} envelope
// or a bare array; for bare arrays the count falls back to the array
// length.
func (c *httpClient) List(ctx context.Context, resource string, q ListQuery) (*Envelope, error) {
	req, err := c.newRequest(ctx, http.MethodGet, resource, nil)
	if err != nil {
		return nil, err
	}
	req.URL.RawQuery = q.Values(true).Encode()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode list response: %w", err)
	}
	return decodeEnvelope(raw)
}

func decodeEnvelope(raw json.RawMessage) (*Envelope, error) {
	var bare []json.RawMessage
	if err := json.Unmarshal(raw, &bare); err == nil {
		return &Envelope{Count: len(bare), Results: bare}, nil
	}

	var wrapped struct {
		Count   *int              `json:"count"`
		Results []json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("unrecognized list response shape: %w", err)
	}

	env := &Envelope{Results: wrapped.Results}
	if wrapped.Count != nil {
		env.Count = *wrapped.Count
	} else {
		env.Count = len(wrapped.Results)
	}
	return env, nil
}

// Options fetches the field labels for a resource, cached after the first
// call.
func (c *httpClient) Options(ctx context.Context, resource string) (map[string]string, error) {
	c.mu.Lock()
	if cached, ok := c.labels[resource]; ok {
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	req, err := c.newRequest(ctx, http.MethodOptions, resource, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode)
	}

	var meta struct {
		Actions struct {
			POST map[string]struct {
				Label string `json:"label"`
			} `json:"POST"`
		} `json:"actions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, fmt.Errorf("failed to decode options metadata: %w", err)
	}

	labels := make(map[string]string, len(meta.Actions.POST))
	for name, field := range meta.Actions.POST {
		labels[name] = field.Label
	}

	c.mu.Lock()
	c.labels[resource] = labels
	c.mu.Unlock()
	return labels, nil
}

func (c *httpClient) BulkDelete(ctx context.Context, resource string, ids []int64) error {
	body, err := json.Marshal(map[string][]int64{"items": ids})
	if err != nil {
		return fmt.Errorf("failed to encode bulk delete request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodDelete, resource, body)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return statusError(resp.StatusCode)
	}
	return nil
}

// ExportURL builds the download URL for the current filter/search state.
// Pagination parameters are deliberately omitted so the export covers the
// whole filtered set.
func (c *httpClient) ExportURL(resource string, q ListQuery, format string) string {
	endpoint, err := url.JoinPath(c.baseURL, resource)
	if err != nil {
		return ""
	}
	values := q.Values(false)
	values.Set("export", format)
	return endpoint + "?" + values.Encode()
}
