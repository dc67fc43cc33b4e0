package tui

import (
	"context"
	"encoding/json"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"stocktree/client/api"
)

// loginCmd authenticates against the server.
func (m *Model) loginCmd(username, password string) tea.Cmd {
	client := m.client
	sess := m.session
	return func() tea.Msg {
		resp, err := client.Login(context.Background(), username, password)
		if err != nil {
			return loginResultMsg{err: err}
		}
		sess.SetLogin(resp.Token, resp.User)
		client.SetAuthToken(resp.Token)
		return loginResultMsg{token: resp.Token, user: resp.User.Username}
	}
}

// serverInfoCmd fetches the server identity for the status bar.
func (m *Model) serverInfoCmd() tea.Cmd {
	client := m.client
	sess := m.session
	return func() tea.Msg {
		info, err := client.ServerInfo(context.Background())
		if err != nil {
			return serverInfoMsg{err: err}
		}
		sess.SetServerInfo(*info)
		return serverInfoMsg{}
	}
}

// fetchCmd loads one page of a resource. The sequence number travels with
// the result so stale responses can be discarded.
func (m *Model) fetchCmd(resourceIdx int, seq uint64, q api.ListQuery) tea.Cmd {
	client := m.client
	path := m.resources[resourceIdx].Path
	return func() tea.Msg {
		env, err := client.List(context.Background(), path, q)
		if err != nil {
			return fetchResultMsg{resourceIdx: resourceIdx, seq: seq, err: err}
		}
		records := make([]record, 0, len(env.Results))
		for _, raw := range env.Results {
			var fields map[string]any
			if err := json.Unmarshal(raw, &fields); err != nil {
				return fetchResultMsg{resourceIdx: resourceIdx, seq: seq, err: err}
			}
			rec := record{fields: fields}
			if pk, ok := fields["pk"].(float64); ok {
				rec.id = int64(pk)
			}
			records = append(records, rec)
		}
		return fetchResultMsg{
			resourceIdx: resourceIdx,
			seq:         seq,
			records:     records,
			count:       env.Count,
		}
	}
}

// optionsCmd loads the field metadata used for column labels.
func (m *Model) optionsCmd(resourceIdx int) tea.Cmd {
	client := m.client
	path := m.resources[resourceIdx].Path
	return func() tea.Msg {
		labels, err := client.Options(context.Background(), path)
		if err != nil {
			return optionsMsg{resourceIdx: resourceIdx, err: err}
		}
		return optionsMsg{resourceIdx: resourceIdx, labels: labels}
	}
}

// bulkDeleteCmd removes the selected rows in one request.
func (m *Model) bulkDeleteCmd(resourceIdx int, ids []int64) tea.Cmd {
	client := m.client
	path := m.resources[resourceIdx].Path
	return func() tea.Msg {
		err := client.BulkDelete(context.Background(), path, ids)
		return bulkDeleteResultMsg{resourceIdx: resourceIdx, err: err}
	}
}

// debounceSearchCmd delays a search fetch; only the message carrying the
// latest sequence is honoured, so rapid typing collapses to one fetch.
func debounceSearchCmd(seq int, term string) tea.Cmd {
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchDebouncedMsg{seq: seq, term: term}
	})
}

const searchDebounce = 500 * time.Millisecond

// clearStatusCmd wipes the transient status line after delay.
func clearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
