package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"stocktree/client/api"
	"stocktree/client/session"
)

// Options configures a client run. Username and Password are optional;
// when both are set the login screen is skipped.
type Options struct {
	ServerURL string
	Username  string
	Password  string
}

// Run starts the terminal client and blocks until it exits.
func Run(opts Options) error {
	client := api.NewHTTPClient(opts.ServerURL)
	sess := session.New()

	if opts.Username != "" && opts.Password != "" {
		resp, err := client.Login(context.Background(), opts.Username, opts.Password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		client.SetAuthToken(resp.Token)
		sess.SetLogin(resp.Token, resp.User)
	}

	p := tea.NewProgram(New(client, sess), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
