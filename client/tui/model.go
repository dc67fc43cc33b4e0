// Package tui implements the terminal browser for the server's
// collections: a login screen followed by a paged, sortable, filterable
// table view per resource.
package tui

import (
	tbl "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"

	"stocktree/client/api"
	"stocktree/client/session"
	"stocktree/client/table"
)

type screenState int

const (
	loginScreen screenState = iota
	browseScreen
)

const (
	defaultPageSize = 25
	defaultWidth    = 100
	defaultHeight   = 30
)

// record is one decoded collection row plus its identifier.
type record struct {
	id     int64
	fields map[string]any
}

// Model is the bubbletea model for the whole client.
type Model struct {
	state   screenState
	client  api.Client
	session *session.Session

	// Login screen.
	usernameInput textinput.Model
	passwordInput textinput.Model
	loginFocus    int
	loginErr      string

	// Browse screen.
	resources   []Resource
	resourceIdx int
	states      []*table.State
	view        tbl.Model
	records     []record
	labels      map[string]string

	searchInput  textinput.Model
	searching    bool
	searchSeq    int
	fetching     bool
	emptyMessage string
	status       string

	width  int
	height int
}

// Messages delivered by commands.

type loginResultMsg struct {
	token string
	user  string
	err   error
}

type serverInfoMsg struct {
	err error
}

type fetchResultMsg struct {
	resourceIdx int
	seq         uint64
	records     []record
	count       int
	err         error
}

type optionsMsg struct {
	resourceIdx int
	labels      map[string]string
	err         error
}

type bulkDeleteResultMsg struct {
	resourceIdx int
	err         error
}

type searchDebouncedMsg struct {
	seq  int
	term string
}

type clearStatusMsg struct{}

// New builds the initial model. The session may already carry a token
// when credentials were supplied on the command line.
func New(client api.Client, sess *session.Session) Model {
	username := textinput.New()
	username.Placeholder = "username"
	username.Focus()
	username.CharLimit = 64

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 64

	search := textinput.New()
	search.Placeholder = "search"
	search.CharLimit = 128

	resources := Resources()
	states := make([]*table.State, len(resources))
	for i := range states {
		states[i] = table.NewState(defaultPageSize)
	}

	m := Model{
		state:         loginScreen,
		client:        client,
		session:       sess,
		usernameInput: username,
		passwordInput: password,
		searchInput:   search,
		resources:     resources,
		states:        states,
		width:         defaultWidth,
		height:        defaultHeight,
	}
	if sess.LoggedIn() {
		m.state = browseScreen
	}
	m.view = m.buildTable()
	return m
}

func (m *Model) resource() Resource {
	return m.resources[m.resourceIdx]
}

func (m *Model) tableState() *table.State {
	return m.states[m.resourceIdx]
}

// buildTable constructs the bubbles table for the active resource,
// prefixing a selection marker column.
func (m *Model) buildTable() tbl.Model {
	res := m.resource()
	cols := make([]tbl.Column, 0, len(res.Columns)+1)
	cols = append(cols, tbl.Column{Title: " ", Width: 2})
	for _, c := range res.Columns {
		title := c.Title
		if label, ok := m.labels[c.Key]; ok && label != "" {
			title = label
		}
		if c.Key == m.sortColumn() {
			if m.sortDescending() {
				title += " ▼"
			} else {
				title += " ▲"
			}
		}
		cols = append(cols, tbl.Column{Title: title, Width: c.Width})
	}

	rows := make([]tbl.Row, 0, len(m.records))
	st := m.tableState()
	for _, rec := range m.records {
		row := make(tbl.Row, 0, len(cols))
		mark := " "
		if st.IsSelected(rec.id) {
			mark = "*"
		}
		row = append(row, mark)
		for _, c := range res.Columns {
			row = append(row, cellValue(res, c.Key, rec.fields[c.Key]))
		}
		rows = append(rows, row)
	}

	t := tbl.New(
		tbl.WithColumns(cols),
		tbl.WithRows(rows),
		tbl.WithFocused(true),
		tbl.WithHeight(m.tableHeight()),
	)
	t.SetStyles(tableStyles())
	return t
}

func (m *Model) tableHeight() int {
	h := m.height - 8
	if h < 5 {
		h = 5
	}
	return h
}

func (m *Model) sortColumn() string {
	ordering := m.tableState().Ordering()
	if ordering == "" {
		return ""
	}
	if ordering[0] == '-' {
		return ordering[1:]
	}
	return ordering
}

func (m *Model) sortDescending() bool {
	ordering := m.tableState().Ordering()
	return ordering != "" && ordering[0] == '-'
}

// selectedRecord returns the record under the cursor, or nil when the
// table is empty.
func (m *Model) selectedRecord() *record {
	idx := m.view.Cursor()
	if idx < 0 || idx >= len(m.records) {
		return nil
	}
	return &m.records[idx]
}
