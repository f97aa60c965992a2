// Package tasks holds the task list state machine.
//
// Reduce maps (current list, action) to the next list. It never mutates the
// list it is given, and every call returns a fresh slice, so callers can keep
// old snapshots around safely.
package tasks

import (
	"strings"

	"github.com/idilsaglam/taskman/internal/model"
)

// Action is a state transition request. Add, Toggle and Delete are the
// known kinds; any other implementation is ignored by Reduce.
type Action interface {
	actionName() string
}

// Add appends a new, not yet completed task.
type Add struct{ Title string }

// Toggle flips Completed on the task with ID.
type Toggle struct{ ID int64 }

// Delete removes the task with ID.
type Delete struct{ ID int64 }

func (Add) actionName() string    { return "add" }
func (Toggle) actionName() string { return "toggle" }
func (Delete) actionName() string { return "delete" }

// Name returns a short label for logging, or "unknown".
func Name(a Action) string {
	if a == nil {
		return "unknown"
	}
	return a.actionName()
}

// ValidTitle reports whether s has any non-space content.
func ValidTitle(s string) bool {
	return strings.TrimSpace(s) != ""
}

// Machine applies actions to task lists. Add draws ids from its allocator.
type Machine struct {
	ids IDAllocator
}

// NewMachine returns a Machine using ids, or a fresh Counter when nil.
func NewMachine(ids IDAllocator) *Machine {
	if ids == nil {
		ids = NewCounter(nil)
	}
	return &Machine{ids: ids}
}

// Reduce returns the list that results from applying a to list.
func (m *Machine) Reduce(list []model.Task, a Action) []model.Task {
	switch a := a.(type) {
	case Add:
		out := clone(list, 1)
		if !ValidTitle(a.Title) {
			return out
		}
		return append(out, model.Task{
			ID:    m.ids.Next(),
			Title: a.Title,
		})
	case Toggle:
		out := clone(list, 0)
		for i := range out {
			if out[i].ID == a.ID {
				out[i].Completed = !out[i].Completed
			}
		}
		return out
	case Delete:
		out := make([]model.Task, 0, len(list))
		for _, t := range list {
			if t.ID != a.ID {
				out = append(out, t)
			}
		}
		return out
	default:
		return list
	}
}

func clone(list []model.Task, extra int) []model.Task {
	out := make([]model.Task, len(list), len(list)+extra)
	copy(out, list)
	return out
}
