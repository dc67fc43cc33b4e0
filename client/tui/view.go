package tui

import (
	"fmt"
	"strings"

	tbl "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	activeTab   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	inactiveTab = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	frameStyle  = lipgloss.NewStyle().Padding(1, 2)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func tableStyles() tbl.Styles {
	s := tbl.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	return s
}

func (m Model) View() string {
	if m.state == loginScreen {
		return m.loginView()
	}
	return m.browseView()
}

func (m Model) loginView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("stocktree"))
	b.WriteString("\n\n")
	b.WriteString("  " + m.usernameInput.View() + "\n")
	b.WriteString("  " + m.passwordInput.View() + "\n")
	if m.loginErr != "" {
		b.WriteString("\n  " + errorStyle.Render(m.loginErr) + "\n")
	}
	b.WriteString("\n" + helpStyle.Render("  enter: log in · tab: switch field · esc: quit"))
	return frameStyle.Render(b.String())
}

func (m Model) browseView() string {
	var b strings.Builder

	b.WriteString(m.headerLine())
	b.WriteString("\n")
	b.WriteString(m.filterLine())
	b.WriteString("\n\n")

	if m.emptyMessage != "" && len(m.records) == 0 {
		b.WriteString(m.view.View())
		b.WriteString("\n" + emptyStyle.Render("  "+m.emptyMessage))
	} else {
		b.WriteString(m.view.View())
	}

	b.WriteString("\n\n")
	b.WriteString(m.footerLine())
	return frameStyle.Render(b.String())
}

func (m Model) headerLine() string {
	tabs := make([]string, len(m.resources))
	for i, r := range m.resources {
		if i == m.resourceIdx {
			tabs[i] = activeTab.Render(r.Title)
		} else {
			tabs[i] = inactiveTab.Render(r.Title)
		}
	}
	line := strings.Join(tabs, inactiveTab.Render(" | "))

	info := m.session.ServerInfo()
	if info.Server != "" {
		line += statusStyle.Render(fmt.Sprintf("   %s %s", info.Server, info.Version))
	}
	return line
}

// filterLine shows the number-key filters and which of them are active,
// plus the current search term.
func (m Model) filterLine() string {
	st := m.tableState()
	parts := make([]string, 0, len(m.resource().Filters)+1)
	for i, f := range m.resource().Filters {
		label := fmt.Sprintf("%d:%s", i+1, f.Label)
		if st.FilterActive(f.Name) {
			parts = append(parts, activeTab.Render(label))
		} else {
			parts = append(parts, inactiveTab.Render(label))
		}
	}
	if m.searching {
		parts = append(parts, "search: "+m.searchInput.View())
	} else if st.Search() != "" {
		parts = append(parts, statusStyle.Render("search: "+st.Search()))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "  ")
}

func (m Model) footerLine() string {
	st := m.tableState()

	left := fmt.Sprintf("page %d/%d · %d records", st.Page(), st.TotalPages(), st.Count())
	if n := len(st.Selected()); n > 0 {
		left += fmt.Sprintf(" · %d selected", n)
	}
	if m.fetching {
		left += " · loading…"
	}

	lines := statusStyle.Render(left)
	if m.status != "" {
		lines += "\n" + statusStyle.Render(m.status)
	}
	lines += "\n" + helpStyle.Render(
		"←/→ page · s sort · r reverse · / search · space select · a page · A none · x delete · e export · tab resource · q quit")
	return lines
}
