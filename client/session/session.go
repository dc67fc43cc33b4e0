// Package session keeps the client's per-connection state: the
// authenticated user, the token issued for it and the server identity.
package session

import (
	"sync"

	"stocktree/model"
)

// Session is safe for concurrent use; the TUI reads it while fetch
// commands run on other goroutines.
type Session struct {
	mu     sync.RWMutex
	token  string
	user   model.User
	server model.ServerInfo
}

func New() *Session {
	return &Session{}
}

// SetLogin stores the result of a successful login.
func (s *Session) SetLogin(token string, user model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = user
}

// SetServerInfo stores the identity reported by the server root endpoint.
func (s *Session) SetServerInfo(info model.ServerInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.server = info
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) User() model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) ServerInfo() model.ServerInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.server
}

// LoggedIn reports whether a token is held.
func (s *Session) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Reset drops all state, e.g. on logout.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = model.User{}
	s.server = model.ServerInfo{}
}
