// Package manager owns the session's task list and its side effects.
package manager

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/taskman/internal/model"
	"github.com/idilsaglam/taskman/internal/store"
	"github.com/idilsaglam/taskman/internal/tasks"
)

// ChangeHook runs once after every completed transition with the new list.
type ChangeHook func([]model.Task)

// Manager serializes all mutations of one task list through a tasks.Machine.
type Manager struct {
	identity model.Identity
	machine  *tasks.Machine
	list     []model.Task
	hooks    []ChangeHook
	logger   *log.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithOnChange registers a hook fired after each Dispatch.
func WithOnChange(h ChangeHook) Option {
	return func(m *Manager) {
		if h != nil {
			m.hooks = append(m.hooks, h)
		}
	}
}

// WithLogger sets the logger used for dispatch tracing.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithIDs overrides the id allocator. By default ids continue from the
// highest id in the initial list.
func WithIDs(ids tasks.IDAllocator) Option {
	return func(m *Manager) { m.machine = tasks.NewMachine(ids) }
}

// New starts a session for identity seeded with initial.
func New(identity model.Identity, initial []model.Task, opts ...Option) *Manager {
	list := make([]model.Task, len(initial))
	copy(list, initial)
	m := &Manager{
		identity: identity,
		list:     list,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.machine == nil {
		m.machine = tasks.NewMachine(tasks.NewCounter(list))
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}
	return m
}

// Load reads the persisted list first and seeds a Manager from it. The
// returned Manager mirrors every later change back into v.
func Load(identity model.Identity, v *store.Value[[]model.Task], opts ...Option) *Manager {
	initial := v.Read()
	opts = append(opts, WithOnChange(Persist(v)))
	return New(identity, initial, opts...)
}

// Persist returns a hook writing the full list to v on every change.
func Persist(v *store.Value[[]model.Task]) ChangeHook {
	return func(list []model.Task) { v.Write(list) }
}

// Identity is the display identity this session was started with.
func (m *Manager) Identity() model.Identity { return m.identity }

// Tasks returns the current list. Callers must not modify it.
func (m *Manager) Tasks() []model.Task { return m.list }

// Stats recomputes the summary for the current list.
func (m *Manager) Stats() model.Stats { return model.Summarize(m.list) }

// Find looks a task up by id.
func (m *Manager) Find(id int64) (model.Task, bool) {
	for _, t := range m.list {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// Dispatch applies a and fires the change hooks once.
func (m *Manager) Dispatch(a tasks.Action) {
	m.list = m.machine.Reduce(m.list, a)
	m.logger.Debug("dispatch", "action", tasks.Name(a), "total", len(m.list))
	for _, h := range m.hooks {
		h(m.list)
	}
}

// Submit adds text as a new task. Blank text is ignored and nothing is
// dispatched; the return value reports whether a task was added.
func (m *Manager) Submit(text string) bool {
	title := strings.TrimSpace(text)
	if title == "" {
		return false
	}
	m.Dispatch(tasks.Add{Title: title})
	return true
}
