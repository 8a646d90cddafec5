// Package tui is the interactive bubbletea front end. It is a thin host: it
// calls engine operations, autosaves the document, and re-renders. It also
// owns the rollover scheduling the engine depends on: a check at startup,
// when the terminal regains focus, at the daily reset boundary, and hourly as
// a safety net against clock changes.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"growth-tracker/model"
	"growth-tracker/store"
	"growth-tracker/tracker"
)

type pane int

const (
	paneCategories pane = iota
	paneItems
)

type tab int

const (
	tabToday tab = iota
	tabTomorrow
	tabOutline
	tabHistory
)

func (t tab) String() string {
	switch t {
	case tabTomorrow:
		return "tomorrow"
	case tabOutline:
		return "outline"
	case tabHistory:
		return "history"
	default:
		return "today"
	}
}

type uiMode int

const (
	modeNormal uiMode = iota
	modeAddCategory
	modeAddItem
	modeAddChild
	modeConfirmDelete
)

type rolloverTickMsg struct{}
type hourlyTickMsg struct{}

type Model struct {
	svc      *tracker.Service
	dataPath string

	pane       pane
	tab        tab
	catCursor  int
	itemCursor int

	mode    uiMode
	input   textinput.Model
	parent  string // pending parent id for modeAddChild
	lockNew bool   // pending lock flag for tomorrow adds

	confirmID   string
	confirmName string

	historyFilter model.HistoryFilter

	status    string
	statusErr bool
	showHelp  bool

	width  int
	height int
}

func NewModel(svc *tracker.Service, dataPath string) *Model {
	input := textinput.New()
	input.CharLimit = 200
	input.Width = 48

	return &Model{
		svc:           svc,
		dataPath:      dataPath,
		input:         input,
		historyFilter: model.HistoryToday,
		status:        "Ready",
	}
}

// Run starts the program. Focus reporting is enabled so day boundaries are
// caught when the user returns to a long-lived terminal.
func Run(svc *tracker.Service, dataPath string) error {
	p := tea.NewProgram(NewModel(svc, dataPath), tea.WithAltScreen(), tea.WithReportFocus())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.scheduleDailyTick(), scheduleHourlyTick())
}

func (m *Model) scheduleDailyTick() tea.Cmd {
	next := m.svc.NextResetAt(time.Now())
	return tea.Tick(time.Until(next), func(time.Time) tea.Msg { return rolloverTickMsg{} })
}

func scheduleHourlyTick() tea.Cmd {
	return tea.Tick(time.Hour, func(time.Time) tea.Msg { return hourlyTickMsg{} })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.FocusMsg:
		m.runDailyReset()
	case rolloverTickMsg:
		m.runDailyReset()
		return m, m.scheduleDailyTick()
	case hourlyTickMsg:
		m.runDailyReset()
		return m, scheduleHourlyTick()
	case tea.KeyMsg:
		switch m.mode {
		case modeAddCategory, modeAddItem, modeAddChild:
			return m, m.updateInputMode(msg)
		case modeConfirmDelete:
			m.updateConfirmMode(msg)
		default:
			if quit := m.updateNormalMode(msg); quit {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// runDailyReset is the host half of the rollover contract: invoke the check,
// persist when a boundary was crossed. Duplicate timer fires are harmless
// because the check is idempotent within a day.
func (m *Model) runDailyReset() {
	if m.svc.CheckDailyReset() {
		m.persist(fmt.Sprintf("New day: %s", m.svc.Stats().LastActiveDate))
		return
	}
	_ = store.Autosave(m.dataPath, m.svc.Document())
}

func (m *Model) updateNormalMode(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "ctrl+c", "q":
		return true
	case "tab":
		if m.pane == paneCategories {
			m.pane = paneItems
		} else {
			m.pane = paneCategories
		}
	case "1":
		m.setTab(tabToday)
	case "2":
		m.setTab(tabTomorrow)
	case "3":
		m.setTab(tabOutline)
	case "4":
		m.setTab(tabHistory)
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "a":
		m.startAdd(false)
	case "A":
		m.startAdd(true)
	case "x", "enter":
		m.toggleSelected()
	case "d":
		m.startDeleteConfirm()
	case "l":
		m.toggleLock()
	case "i":
		m.toggleImportant()
	case "e":
		m.toggleExpand()
	case "T":
		m.transferAll()
	case "t":
		m.transferSelected()
	case "f":
		m.cycleHistoryFilter()
	case "?":
		m.showHelp = !m.showHelp
	case "esc":
		m.showHelp = false
	}

	m.ensureSelection()
	return false
}

func (m *Model) updateInputMode(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.mode = modeNormal
		m.input.Reset()
		m.input.Blur()
		m.lockNew = false
		m.parent = ""
		m.setStatus("Cancelled", false)
		return nil
	case "ctrl+l":
		if m.tab == tabTomorrow {
			m.lockNew = !m.lockNew
			m.setStatus(fmt.Sprintf("Recurring lock for new item: %v", m.lockNew), false)
		}
		return nil
	case "enter":
		m.applyInput()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) updateConfirmMode(msg tea.KeyMsg) {
	switch strings.ToLower(msg.String()) {
	case "y":
		m.confirmDelete()
	case "n", "esc", "enter":
		m.confirmID = ""
		m.confirmName = ""
		m.mode = modeNormal
		m.setStatus("Cancelled", false)
	}
}

func (m *Model) applyInput() {
	text := strings.TrimSpace(m.input.Value())
	mode := m.mode
	m.mode = modeNormal
	m.input.Reset()
	m.input.Blur()

	if text == "" {
		m.setStatus("Text must not be empty", true)
		m.lockNew = false
		m.parent = ""
		return
	}

	switch mode {
	case modeAddCategory:
		if err := m.svc.AddCategory(text); err != nil {
			m.setStatus("Could not add category: "+err.Error(), true)
			return
		}
		m.catCursor = len(m.svc.Categories()) - 1
		m.persist("Category added")
	case modeAddItem, modeAddChild:
		category := m.activeCategory()
		switch m.tab {
		case tabToday:
			if _, err := m.svc.AddTodo(text, category, ""); err != nil {
				m.setStatus("Could not add todo: "+err.Error(), true)
				return
			}
			m.persist("Todo added for today")
		case tabTomorrow:
			locked := m.lockNew
			m.lockNew = false
			if _, err := m.svc.AddTomorrowTodo(text, category, "", locked); err != nil {
				m.setStatus("Could not add todo: "+err.Error(), true)
				return
			}
			m.persist("Todo added for tomorrow")
		case tabOutline:
			parent := ""
			if mode == modeAddChild {
				parent = m.parent
			}
			m.parent = ""
			if _, err := m.svc.AddOutlineNode(text, parent, false, category); err != nil {
				m.setStatus("Could not add outline node: "+err.Error(), true)
				return
			}
			m.persist("Outline node added")
		default:
			m.setStatus("History is read-only", false)
		}
	}
}

func (m *Model) setTab(t tab) {
	m.tab = t
	m.itemCursor = 0
	m.pane = paneItems
}

func (m *Model) moveCursor(delta int) {
	if m.pane == paneCategories {
		m.catCursor += delta
		m.itemCursor = 0
		return
	}
	m.itemCursor += delta
}

func (m *Model) startAdd(asChild bool) {
	if m.pane == paneCategories {
		m.mode = modeAddCategory
		m.input.Placeholder = "category name"
		m.input.Focus()
		return
	}
	if m.tab == tabHistory {
		m.setStatus("History is read-only", false)
		return
	}

	m.mode = modeAddItem
	m.input.Placeholder = "todo text"
	if m.tab == tabOutline {
		m.input.Placeholder = "outline text"
		if asChild {
			node, ok := m.selectedOutlineNode()
			if !ok {
				m.setStatus("No node selected for a child", true)
				m.mode = modeNormal
				return
			}
			m.mode = modeAddChild
			m.parent = node.ID
		}
	}
	m.input.Focus()
}

func (m *Model) toggleSelected() {
	switch m.tab {
	case tabToday:
		todo, ok := m.selectedTodo(m.svc.Todos(m.activeCategory()))
		if !ok {
			return
		}
		if _, found := m.svc.ToggleTodoComplete(todo.ID); found {
			m.persist("Toggled")
		}
	case tabTomorrow:
		todo, ok := m.selectedTodo(m.svc.TomorrowTodos(m.activeCategory()))
		if !ok {
			return
		}
		if _, found := m.svc.ToggleTomorrowComplete(todo.ID); found {
			m.persist("Toggled")
		}
	case tabOutline:
		m.toggleExpand()
	}
}

func (m *Model) toggleLock() {
	todo, ok := m.selectedAnyTodo()
	if !ok {
		return
	}
	if t, found := m.svc.ToggleLock(todo.ID); found {
		m.persist(fmt.Sprintf("Lock: %v", t.IsLocked))
	}
}

func (m *Model) toggleImportant() {
	todo, ok := m.selectedAnyTodo()
	if !ok {
		return
	}
	if t, found := m.svc.ToggleImportant(todo.ID); found {
		m.persist(fmt.Sprintf("Important: %v", t.IsImportant))
	}
}

func (m *Model) toggleExpand() {
	if m.tab != tabOutline {
		return
	}
	node, ok := m.selectedOutlineNode()
	if !ok {
		return
	}
	if m.svc.ToggleOutlineExpand(node.ID) {
		m.persist("")
	}
}

func (m *Model) transferAll() {
	if m.tab != tabTomorrow {
		m.setStatus("Transfer works from the tomorrow tab (2)", false)
		return
	}
	n, err := m.svc.TransferAllToToday()
	if err != nil {
		m.setStatus("Nothing to transfer", false)
		return
	}
	m.persist(fmt.Sprintf("Transferred %d todos to today", n))
}

func (m *Model) transferSelected() {
	if m.tab != tabTomorrow {
		return
	}
	todo, ok := m.selectedTodo(m.svc.TomorrowTodos(m.activeCategory()))
	if !ok {
		return
	}
	if m.svc.TransferSingleToToday(todo.ID) {
		m.persist("Transferred to today")
	}
}

func (m *Model) cycleHistoryFilter() {
	if m.tab != tabHistory {
		return
	}
	switch m.historyFilter {
	case model.HistoryToday:
		m.historyFilter = model.HistoryYesterday
	case model.HistoryYesterday:
		m.historyFilter = model.HistoryAll
	default:
		m.historyFilter = model.HistoryToday
	}
	m.itemCursor = 0
	m.setStatus("History filter: "+string(m.historyFilter), false)
}

func (m *Model) startDeleteConfirm() {
	if m.pane == paneCategories {
		categories := m.svc.Categories()
		if len(categories) == 0 {
			return
		}
		name := categories[m.catCursor]
		m.mode = modeConfirmDelete
		m.confirmID = "category"
		m.confirmName = name
		return
	}

	switch m.tab {
	case tabToday:
		todo, ok := m.selectedTodo(m.svc.Todos(m.activeCategory()))
		if !ok {
			return
		}
		m.mode = modeConfirmDelete
		m.confirmID = todo.ID
		m.confirmName = todo.Text
	case tabTomorrow:
		todo, ok := m.selectedTodo(m.svc.TomorrowTodos(m.activeCategory()))
		if !ok {
			return
		}
		m.mode = modeConfirmDelete
		m.confirmID = todo.ID
		m.confirmName = todo.Text
	case tabOutline:
		node, ok := m.selectedOutlineNode()
		if !ok {
			return
		}
		m.mode = modeConfirmDelete
		m.confirmID = node.ID
		m.confirmName = node.Text
	case tabHistory:
		m.setStatus("History entries are removed by un-completing their todo", false)
	}
}

func (m *Model) confirmDelete() {
	id := m.confirmID
	m.confirmID = ""
	m.confirmName = ""
	m.mode = modeNormal

	if id == "category" {
		categories := m.svc.Categories()
		if m.catCursor >= len(categories) {
			return
		}
		if err := m.svc.RemoveCategory(categories[m.catCursor]); err != nil {
			m.setStatus("Could not remove category: "+err.Error(), true)
			return
		}
		m.catCursor = 0
		m.persist("Category removed")
		return
	}

	switch m.tab {
	case tabToday:
		if m.svc.RemoveTodo(id) {
			m.persist("Todo removed")
		}
	case tabTomorrow:
		if m.svc.RemoveTomorrowTodo(id) {
			m.persist("Todo removed")
		}
	case tabOutline:
		if m.svc.RemoveOutlineNode(m.activeCategory(), id) {
			m.persist("Node and subtree removed")
		}
	}
}

func (m *Model) persist(success string) {
	if err := store.Autosave(m.dataPath, m.svc.Document()); err != nil {
		m.setStatus("Change applied, but saving failed: "+err.Error(), true)
		return
	}
	m.ensureSelection()
	if success != "" {
		m.setStatus(success, false)
	}
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m *Model) ensureSelection() {
	categories := m.svc.Categories()
	if len(categories) == 0 {
		m.catCursor = 0
		m.itemCursor = 0
		return
	}
	m.catCursor = clamp(m.catCursor, 0, len(categories)-1)
	m.itemCursor = clamp(m.itemCursor, 0, maxInt(0, m.itemCount()-1))
}

func (m *Model) itemCount() int {
	switch m.tab {
	case tabToday:
		return len(m.svc.Todos(m.activeCategory()))
	case tabTomorrow:
		return len(m.svc.TomorrowTodos(m.activeCategory()))
	case tabOutline:
		return len(m.visibleOutlineRows())
	default:
		return len(m.svc.History(m.historyFilter))
	}
}

func (m *Model) activeCategory() string {
	categories := m.svc.Categories()
	if len(categories) == 0 {
		return ""
	}
	if m.catCursor < 0 || m.catCursor >= len(categories) {
		m.catCursor = 0
	}
	return categories[m.catCursor]
}

func (m *Model) selectedTodo(todos []model.Todo) (model.Todo, bool) {
	if len(todos) == 0 {
		return model.Todo{}, false
	}
	if m.itemCursor < 0 || m.itemCursor >= len(todos) {
		m.itemCursor = 0
	}
	return todos[m.itemCursor], true
}

func (m *Model) selectedAnyTodo() (model.Todo, bool) {
	switch m.tab {
	case tabToday:
		return m.selectedTodo(m.svc.Todos(m.activeCategory()))
	case tabTomorrow:
		return m.selectedTodo(m.svc.TomorrowTodos(m.activeCategory()))
	}
	return model.Todo{}, false
}

// outlineRow is one flattened line of the outline tree, respecting the
// expanded flags.
type outlineRow struct {
	node  *model.OutlineNode
	depth int
}

func (m *Model) visibleOutlineRows() []outlineRow {
	forest := m.svc.OutlineNodes(m.activeCategory())
	rows := make([]outlineRow, 0)
	var walk func(nodes []*model.OutlineNode, depth int)
	walk = func(nodes []*model.OutlineNode, depth int) {
		for _, node := range nodes {
			rows = append(rows, outlineRow{node: node, depth: depth})
			if node.Expanded {
				walk(node.Children, depth+1)
			}
		}
	}
	walk(forest, 0)
	return rows
}

func (m *Model) selectedOutlineNode() (*model.OutlineNode, bool) {
	rows := m.visibleOutlineRows()
	if len(rows) == 0 {
		return nil, false
	}
	if m.itemCursor < 0 || m.itemCursor >= len(rows) {
		m.itemCursor = 0
	}
	return rows[m.itemCursor].node, true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
