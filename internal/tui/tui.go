// Package tui is the interactive task manager screen.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/taskman/internal/manager"
	"github.com/idilsaglam/taskman/internal/tasks"
)

const (
	Placeholder = "Add a new Task"

	defaultWidth  = 80
	defaultHeight = 24

	// Columns taken by the panel border and padding plus the input prompt
	// and cursor.
	inputChrome = 8
	// Rows used by everything except the list.
	chromeHeight = 12
)

type focus int

const (
	focusInput focus = iota
	focusList
)

// Model implements tea.Model over a manager.Manager. Every mutation goes
// through the manager, which persists it.
type Model struct {
	mgr   *manager.Manager
	input textinput.Model
	list  list.Model
	help  help.Model
	keys  keyMap
	focus focus

	width, height int
}

// New builds the screen. The text input starts focused.
func New(mgr *manager.Manager) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = Placeholder
	ti.Width = inputWidth(defaultWidth)
	ti.Focus()

	l := list.New(toItems(mgr.Tasks()), itemDelegate{}, defaultWidth, defaultHeight-chromeHeight)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.PaginationStyle = helpStyle
	l.Styles.NoItems = mutedStyle.PaddingLeft(2)
	l.SetStatusBarItemName("task", "tasks")

	h := help.New()
	h.Styles.ShortKey = helpStyle
	h.Styles.ShortDesc = helpStyle

	return Model{
		mgr:    mgr,
		input:  ti,
		list:   l,
		help:   h,
		keys:   defaultKeys(),
		focus:  focusInput,
		width:  defaultWidth,
		height: defaultHeight,
	}
}

// Run starts the program on the terminal and blocks until the user quits.
func Run(mgr *manager.Manager) error {
	p := tea.NewProgram(New(mgr), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(max(msg.Width-4, 10), max(msg.Height-chromeHeight, 1))
		m.help.Width = msg.Width
		m.input.Width = inputWidth(msg.Width)
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft {
			if i, ok := m.rowAt(msg.Y); ok {
				m.list.Select(i)
				m.toggleSelected()
			}
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Focus) {
			return m, m.switchFocus()
		}
		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}

	var cmd tea.Cmd
	if m.focus == focusInput {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Submit) {
		if m.mgr.Submit(m.input.Value()) {
			m.input.Reset()
			m.syncList()
			m.list.Select(len(m.list.Items()) - 1)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Toggle):
		m.toggleSelected()
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if it, ok := m.list.SelectedItem().(taskItem); ok {
			m.mgr.Dispatch(tasks.Delete{ID: it.task.ID})
			m.syncList()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) toggleSelected() {
	if it, ok := m.list.SelectedItem().(taskItem); ok {
		m.mgr.Dispatch(tasks.Toggle{ID: it.task.ID})
		m.syncList()
	}
}

func (m *Model) switchFocus() tea.Cmd {
	if m.focus == focusInput {
		m.focus = focusList
		m.input.Blur()
		return nil
	}
	m.focus = focusInput
	return m.input.Focus()
}

// syncList rebuilds the list items from the manager, keeping the cursor in range.
func (m *Model) syncList() {
	idx := m.list.Index()
	m.list.SetItems(toItems(m.mgr.Tasks()))
	if n := len(m.list.Items()); idx >= n && n > 0 {
		m.list.Select(n - 1)
	}
}

// rowAt maps a screen row to a list index. The list starts below the top
// border and the header, whose height changes when the heading wraps.
func (m Model) rowAt(y int) (int, bool) {
	row := y - 1 - lipgloss.Height(m.headerView())
	if row < 0 || row >= m.list.Paginator.ItemsOnPage(len(m.list.Items())) {
		return 0, false
	}
	return m.list.Paginator.Page*m.list.Paginator.PerPage + row, true
}

func inputWidth(termWidth int) int {
	return max(termWidth-inputChrome, len(Placeholder))
}

// panelWidth is the width handed to panelStyle; content wraps inside its padding.
func (m Model) panelWidth() int { return max(m.width-2, 20) }

// headerView is the heading and input block above the list, wrapped the
// same way the panel wraps it.
func (m Model) headerView() string {
	heading := titleStyle.Render(fmt.Sprintf("%s's Task Manager", m.mgr.Identity().Name))
	block := lipgloss.JoinVertical(lipgloss.Left, heading, "", m.input.View(), "")
	return lipgloss.NewStyle().
		Width(m.panelWidth() - panelStyle.GetHorizontalPadding()).
		Render(block)
}

func (m Model) View() string {
	stats := m.mgr.Stats()

	var body string
	if len(m.list.Items()) == 0 {
		body = mutedStyle.Render("  No tasks yet")
	} else {
		body = m.list.View()
	}

	summary := strings.Join([]string{
		accentStyle.Render("Total Tasks:") + fmt.Sprintf(" %d", stats.Total),
		successStyle.Render("Completed Tasks:") + fmt.Sprintf(" %d", stats.Completed),
	}, "\n")
	if stats.Pending() > 0 {
		summary += "\n" + pendingStyle.Render(fmt.Sprintf("%d pending", stats.Pending()))
	}

	var helpView string
	if m.focus == focusInput {
		helpView = m.help.View(inputKeys{m.keys})
	} else {
		helpView = m.help.View(listKeys{m.keys})
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		body,
		"",
		summary,
		"",
		helpView,
	)
	return panelStyle.Width(m.panelWidth()).Render(content)
}
