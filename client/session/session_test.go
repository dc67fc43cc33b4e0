package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stocktree/model"
)

func TestSessionLifecycle(t *testing.T) {
	s := New()
	assert.False(t, s.LoggedIn())

	s.SetLogin("tok", model.User{ID: 1, Username: "admin"})
	s.SetServerInfo(model.ServerInfo{Server: "stocktree", Version: "0.4.0", APIVersion: 1})

	assert.True(t, s.LoggedIn())
	assert.Equal(t, "tok", s.Token())
	assert.Equal(t, "admin", s.User().Username)
	assert.Equal(t, "stocktree", s.ServerInfo().Server)

	s.Reset()
	assert.False(t, s.LoggedIn())
	assert.Empty(t, s.Token())
	assert.Empty(t, s.User().Username)
}
