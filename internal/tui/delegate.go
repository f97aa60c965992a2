package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/taskman/internal/model"
)

// taskItem adapts model.Task to bubbles/list.Item.
type taskItem struct {
	task model.Task
}

func (i taskItem) Title() string       { return i.task.Title }
func (i taskItem) Description() string { return "" }
func (i taskItem) FilterValue() string { return i.task.Title }

func toItems(tasks []model.Task) []list.Item {
	out := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskItem{task: t})
	}
	return out
}

// itemDelegate renders each task on a single line.
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(taskItem)
	if !ok {
		return
	}
	box := mutedStyle.Render(boxUnchecked)
	text := it.task.Title
	if it.task.Completed {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s", prefix, box, text)
}
