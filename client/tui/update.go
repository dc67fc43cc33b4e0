package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"stocktree/client/api"
)

func (m Model) Init() tea.Cmd {
	if m.state == browseScreen {
		return tea.Batch(m.serverInfoCmd(), m.refetch(), m.optionsCmd(m.resourceIdx))
	}
	return textinput.Blink
}

// refetch issues a fetch for the active resource from its current state.
func (m *Model) refetch() tea.Cmd {
	st := m.tableState()
	seq := st.NextSeq()
	m.fetching = true
	return m.fetchCmd(m.resourceIdx, seq, st.Query())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.view.SetHeight(m.tableHeight())
		return m, nil

	case tea.KeyMsg:
		if m.state == loginScreen {
			return m.updateLogin(msg)
		}
		return m.updateBrowse(msg)

	case loginResultMsg:
		if msg.err != nil {
			m.loginErr = loginErrorText(msg.err)
			return m, nil
		}
		m.state = browseScreen
		m.loginErr = ""
		return m, tea.Batch(m.serverInfoCmd(), m.refetch(), m.optionsCmd(m.resourceIdx))

	case serverInfoMsg:
		return m, nil

	case fetchResultMsg:
		return m.applyFetch(msg)

	case optionsMsg:
		if msg.err == nil && msg.resourceIdx == m.resourceIdx {
			m.labels = msg.labels
			m.view = m.buildTable()
		}
		return m, nil

	case bulkDeleteResultMsg:
		if msg.err != nil {
			m.status = "delete failed: " + listErrorText(msg.err)
			return m, clearStatusCmd(4 * time.Second)
		}
		m.states[msg.resourceIdx].ClearSelection()
		m.status = "deleted"
		if msg.resourceIdx == m.resourceIdx {
			return m, tea.Batch(m.refetch(), clearStatusCmd(2*time.Second))
		}
		return m, clearStatusCmd(2 * time.Second)

	case searchDebouncedMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		m.tableState().SetSearch(msg.term)
		return m, m.refetch()

	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	return m, nil
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "shift+tab", "up", "down":
		m.loginFocus = 1 - m.loginFocus
		if m.loginFocus == 0 {
			m.usernameInput.Focus()
			m.passwordInput.Blur()
		} else {
			m.passwordInput.Focus()
			m.usernameInput.Blur()
		}
		return m, textinput.Blink
	case "enter":
		username := m.usernameInput.Value()
		password := m.passwordInput.Value()
		if username == "" || password == "" {
			m.loginErr = "username and password are required"
			return m, nil
		}
		m.loginErr = ""
		return m, m.loginCmd(username, password)
	}

	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.usernameInput, cmd = m.usernameInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.updateSearch(msg)
	}

	st := m.tableState()

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "tab":
		return m.switchResource((m.resourceIdx + 1) % len(m.resources))
	case "shift+tab":
		return m.switchResource((m.resourceIdx + len(m.resources) - 1) % len(m.resources))

	case "left", "h":
		if st.Page() > 1 {
			st.PrevPage()
			return m, m.refetch()
		}
		return m, nil
	case "right", "l":
		if st.Page() < st.TotalPages() {
			st.NextPage()
			return m, m.refetch()
		}
		return m, nil

	case "s":
		if col := m.nextSortColumn(); col != "" {
			st.SetSort(col)
			return m, m.refetch()
		}
		return m, nil
	case "r":
		if col := m.sortColumn(); col != "" {
			st.SetSort(col)
			return m, m.refetch()
		}
		return m, nil

	case "/":
		m.searching = true
		m.searchInput.SetValue(st.Search())
		m.searchInput.Focus()
		return m, textinput.Blink

	case " ":
		if rec := m.selectedRecord(); rec != nil {
			st.ToggleSelect(rec.id)
			m.view = m.buildTable()
		}
		return m, nil
	case "a":
		st.SelectPage()
		m.view = m.buildTable()
		return m, nil
	case "A":
		st.ClearSelection()
		m.view = m.buildTable()
		return m, nil

	case "x":
		ids := st.Selected()
		if len(ids) == 0 {
			m.status = "nothing selected"
			return m, clearStatusCmd(2 * time.Second)
		}
		return m, m.bulkDeleteCmd(m.resourceIdx, ids)

	case "e":
		url := m.client.ExportURL(m.resource().Path, st.Query(), "csv")
		m.status = "export: " + url
		return m, clearStatusCmd(8 * time.Second)

	case "R":
		return m, m.refetch()

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(msg.String()[0] - '1')
		filters := m.resource().Filters
		if idx < len(filters) {
			st.ToggleFilter(filters[idx].Name, filters[idx].Value)
			return m, m.refetch()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		m.searchSeq++
		m.tableState().SetSearch(m.searchInput.Value())
		return m, m.refetch()
	case "ctrl+c":
		return m, tea.Quit
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() != before {
		m.searchSeq++
		return m, tea.Batch(cmd, debounceSearchCmd(m.searchSeq, m.searchInput.Value()))
	}
	return m, cmd
}

// switchResource swaps the browse view to another collection. Each
// resource keeps its own table state, so paging and filters survive the
// round trip.
func (m Model) switchResource(idx int) (tea.Model, tea.Cmd) {
	m.resourceIdx = idx
	m.labels = nil
	m.records = nil
	m.emptyMessage = ""
	m.view = m.buildTable()
	return m, tea.Batch(m.refetch(), m.optionsCmd(idx))
}

// nextSortColumn cycles through the resource's sortable columns, starting
// after the currently sorted one. Columns the server will not order by are
// skipped; an empty string means the resource has no sortable columns.
func (m *Model) nextSortColumn() string {
	var keys []string
	for _, c := range m.resource().Columns {
		if c.Sortable {
			keys = append(keys, c.Key)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	current := m.sortColumn()
	for i, key := range keys {
		if key == current {
			return keys[(i+1)%len(keys)]
		}
	}
	return keys[0]
}

func (m Model) applyFetch(msg fetchResultMsg) (tea.Model, tea.Cmd) {
	st := m.states[msg.resourceIdx]

	if msg.err != nil {
		if msg.resourceIdx == m.resourceIdx {
			m.fetching = false
			m.records = nil
			m.emptyMessage = listErrorText(msg.err)
			m.view = m.buildTable()
		}
		return m, nil
	}

	ids := make([]int64, len(msg.records))
	for i, rec := range msg.records {
		ids[i] = rec.id
	}
	if !st.ApplyResult(msg.seq, ids, msg.count) {
		// A newer fetch already landed.
		return m, nil
	}
	if msg.resourceIdx == m.resourceIdx {
		m.fetching = false
		m.records = msg.records
		m.emptyMessage = ""
		if len(msg.records) == 0 {
			m.emptyMessage = "no rows found"
		}
		m.view = m.buildTable()
	}
	return m, nil
}

// listErrorText maps client errors onto the message shown in place of
// table rows.
func listErrorText(err error) string {
	switch {
	case errors.Is(err, api.ErrBadRequest):
		return "bad request"
	case errors.Is(err, api.ErrUnauthorized):
		return "not authenticated"
	case errors.Is(err, api.ErrForbidden):
		return "permission denied"
	case errors.Is(err, api.ErrNotFound):
		return "not found"
	default:
		return err.Error()
	}
}

func loginErrorText(err error) string {
	if errors.Is(err, api.ErrUnauthorized) {
		return "invalid username or password"
	}
	return err.Error()
}
