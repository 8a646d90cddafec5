package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"growth-tracker/model"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	doneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Strikethrough(true)
	overdueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("70"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading..."
	}

	st := m.svc.Stats()
	header := lipgloss.JoinHorizontal(lipgloss.Left,
		titleStyle.Render("growth-tracker"),
		dimStyle.Render(fmt.Sprintf("  streak %d • today %d • total %d • %s",
			st.StreakDays, st.TodayCompleted, st.TotalCompleted, st.LastActiveDate)),
	)

	tabs := m.renderTabs()

	panelH := m.height - 7
	if panelH < 8 {
		panelH = 8
	}
	leftW := 18
	rightW := m.width - leftW - 5
	if rightW < 30 {
		rightW = 30
	}

	split := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderCategoriesPanel(leftW, panelH),
		dimStyle.Render("│"),
		m.renderItemsPanel(rightW, panelH),
	)

	frameColor := lipgloss.Color("240")
	if m.mode == modeNormal {
		frameColor = lipgloss.Color("39")
	}
	panes := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(frameColor).
		Width(m.width - 2).
		Height(panelH).
		Render(split)

	statusStyle := okStyle
	if m.statusErr {
		statusStyle = errStyle
	}
	status := m.status
	if status == "" {
		status = "Ready"
	}
	footer := statusStyle.Render(status) + dimStyle.Render("  •  ? help, q quit")

	parts := []string{header, tabs, panes, footer}
	if prompt := m.renderPrompt(); prompt != "" {
		parts = append(parts, prompt)
	}
	if m.showHelp {
		parts = append(parts, m.renderHelp())
	}
	return strings.Join(parts, "\n")
}

func (m *Model) renderTabs() string {
	names := []string{"1 today", "2 tomorrow", "3 outline", "4 history"}
	out := make([]string, 0, len(names))
	for i, name := range names {
		if tab(i) == m.tab {
			out = append(out, selectedStyle.Render("["+name+"]"))
		} else {
			out = append(out, dimStyle.Render(" "+name+" "))
		}
	}
	return strings.Join(out, " ")
}

func (m *Model) renderCategoriesPanel(w, h int) string {
	lines := []string{titleStyle.Render("Categories")}
	for i, c := range m.svc.Categories() {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.catCursor {
			cursor = "▸ "
			if m.pane == paneCategories {
				style = selectedStyle
			}
		}
		lines = append(lines, style.Render(cursor+c))
	}
	return lipgloss.NewStyle().Width(w).Height(h).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderItemsPanel(w, h int) string {
	var lines []string
	switch m.tab {
	case tabToday:
		lines = m.renderTodoLines(m.svc.Todos(m.activeCategory()))
	case tabTomorrow:
		lines = m.renderTodoLines(m.svc.TomorrowTodos(m.activeCategory()))
	case tabOutline:
		lines = m.renderOutlineLines()
	case tabHistory:
		lines = m.renderHistoryLines()
	}
	if len(lines) == 0 {
		lines = []string{dimStyle.Render("(empty, press 'a' to add)")}
	}
	return lipgloss.NewStyle().Width(w).Height(h).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderTodoLines(todos []model.Todo) []string {
	lines := make([]string, 0, len(todos))
	for i, t := range todos {
		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}
		text := t.Text
		if project := m.svc.OutlineText(t); project != "" {
			text += dimStyle.Render(" → " + project)
		}
		if t.IsImportant {
			text += " ★"
		}
		if t.IsLocked {
			text += " 🔒"
		}
		if t.IsOverdue {
			text += overdueStyle.Render(" overdue")
		}

		line := check + " " + text
		switch {
		case i == m.itemCursor && m.pane == paneItems:
			line = selectedStyle.Render("▸ ") + line
		default:
			line = "  " + line
		}
		if t.Completed {
			line = doneStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return lines
}

func (m *Model) renderOutlineLines() []string {
	rows := m.visibleOutlineRows()
	lines := make([]string, 0, len(rows))
	for i, row := range rows {
		marker := "•"
		if len(row.node.Children) > 0 {
			marker = "▾"
			if !row.node.Expanded {
				marker = "▸"
			}
		}
		line := strings.Repeat("  ", row.depth) + marker + " " + row.node.Text
		if n := len(row.node.Links); n > 0 {
			line += dimStyle.Render(fmt.Sprintf(" (%d links)", n))
		}
		if i == m.itemCursor && m.pane == paneItems {
			line = selectedStyle.Render("▸ ") + line
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return lines
}

func (m *Model) renderHistoryLines() []string {
	entries := m.svc.History(m.historyFilter)
	lines := []string{dimStyle.Render("filter: " + string(m.historyFilter) + " ('f' cycles)")}
	for i := len(entries) - 1; i >= 0; i-- {
		h := entries[i]
		line := fmt.Sprintf("  %s [%s] %s", h.Timestamp.Format("15:04"), h.Category, h.Text)
		if h.IsOverdue {
			line += overdueStyle.Render(" overdue")
		}
		lines = append(lines, line)
	}
	return lines
}

func (m *Model) renderPrompt() string {
	switch m.mode {
	case modeAddCategory:
		return promptStyle.Render("New category: ") + m.input.View()
	case modeAddItem:
		label := "New " + m.tab.String() + " item: "
		if m.tab == tabTomorrow && m.lockNew {
			label = "New tomorrow item (recurring): "
		}
		return promptStyle.Render(label) + m.input.View()
	case modeAddChild:
		return promptStyle.Render("New child node: ") + m.input.View()
	case modeConfirmDelete:
		return promptStyle.Render(fmt.Sprintf("Delete %q? [y/N]", m.confirmName))
	}
	return ""
}

func (m *Model) renderHelp() string {
	return dimStyle.Render(strings.TrimSpace(`
tab switch pane • 1-4 tabs • j/k move • a add • A add child (outline)
x/enter toggle • d delete • l lock • i important • t transfer one • T transfer all
f history filter • ctrl+l lock new tomorrow item • q quit`))
}
