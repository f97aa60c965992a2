package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/taskman/internal/config"
	"github.com/idilsaglam/taskman/internal/manager"
	"github.com/idilsaglam/taskman/internal/model"
	"github.com/idilsaglam/taskman/internal/store"
	"github.com/idilsaglam/taskman/internal/tasks"
	"github.com/idilsaglam/taskman/internal/tui"
	"github.com/idilsaglam/taskman/internal/ui"
)

// Titles wider than this are cut in list output.
const maxTitleWidth = 80

// Options carry the resolved configuration into subcommands.
type Options struct {
	Config *config.Config
	Logger *log.Logger

	// Interactive starts the full-screen UI. Tests replace it.
	Interactive func(*manager.Manager) error
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
// With no subcommand it starts the interactive screen.
// Interactive reports whether args start the full-screen UI.
func Interactive(args []string) bool {
	return len(args) == 0 || args[0] == "ui"
}

// LogPath picks the log destination for args. The UI owns the terminal and
// logs to the configured file; one-shot subcommands log to stderr ("") unless
// log_file was moved off its default.
func LogPath(cfg *config.Config, args []string) string {
	if !Interactive(args) && cfg.LogFile == config.DefaultLogFile {
		return ""
	}
	return cfg.LogPath()
}

func Run(args []string, opt Options) int {
	if opt.Logger == nil {
		opt.Logger = log.New(io.Discard)
	}
	if opt.Interactive == nil {
		opt.Interactive = tui.Run
	}
	ui.SetTheme(opt.Config.Theme)

	cmd := "ui"
	var a []string
	if len(args) > 0 {
		cmd, a = args[0], args[1:]
	}

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "ui":
		return doInteractive(opt)

	case "ls":
		fs := flag.NewFlagSet("ls", flag.ContinueOnError)
		fs.SetOutput(ui.Err)
		group := fs.Bool("group", false, "group output by pending/done")
		if err := fs.Parse(a); err != nil {
			return 2
		}
		return doList(opt, *group)

	case "stats":
		return doStats(opt)

	case "add":
		if len(a) == 0 {
			ui.Fail("usage: taskman add <title...>")
			return 2
		}
		return doAdd(opt, strings.Join(a, " "))

	case "done", "rm":
		if len(a) != 1 {
			ui.Fail(fmt.Sprintf("usage: taskman %s <index>", cmd))
			return 2
		}
		n, err := strconv.Atoi(a[0])
		if err != nil {
			ui.Fail(cmd + ": not a number: " + a[0])
			return 2
		}
		if cmd == "done" {
			return doToggle(opt, n)
		}
		return doRemove(opt, n)
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(ui.Err)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Fprint(ui.Out, `taskman - a small task manager

Usage:
  taskman [flags] [subcommand] [args]

Subcommands:
  (none), ui         Open the interactive task manager
  add <title...>     Add a new task (title can be multiple words)
  ls [--group]       List tasks
  done <index>       Toggle completion of the task at 1-based index
  rm <index>         Delete the task at 1-based index
  stats              Print total and completed counts

Flags:
  --name, --store json|sqlite, --data-dir, --key, --theme,
  --log-level, --log-format, --log-file

Examples:
  taskman add "Buy milk"
  taskman ls
  taskman done 2
  taskman rm 3
`)
}

// -------------- session plumbing ----------------

// session is one loaded task list plus the value it persists into.
type session struct {
	mgr     *manager.Manager
	backend store.Backend
	saveErr error
}

func (s *session) Close() error { return s.backend.Close() }

// openSession loads the stored list. Unlike the interactive screen, a
// damaged store is reported instead of silently replaced, so a one-shot
// command never overwrites data it could not read.
func openSession(opt Options) (*session, error) {
	b, err := openBackend(opt.Config)
	if err != nil {
		return nil, err
	}
	v := taskValue(b, opt)
	initial, err := v.ReadErr()
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		b.Close()
		return nil, err
	}
	s := &session{backend: b}
	s.mgr = manager.New(identity(opt.Config), initial,
		manager.WithLogger(opt.Logger),
		manager.WithOnChange(func(list []model.Task) { s.saveErr = v.WriteErr(list) }),
	)
	return s, nil
}

func taskValue(b store.Backend, opt Options) *store.Value[[]model.Task] {
	return store.NewValue(b, opt.Config.Key, []model.Task{},
		store.WithLogger(opt.Logger),
		store.WithValidator(tasks.ValidateSnapshot),
	)
}

func identity(cfg *config.Config) model.Identity {
	return model.Identity{Name: cfg.Name}
}

// -------------- subcommand impls ----------------

func doInteractive(opt Options) int {
	b, err := openBackend(opt.Config)
	if err != nil {
		ui.Fail("open store: " + err.Error())
		return 1
	}
	defer b.Close()

	mgr := manager.Load(identity(opt.Config), taskValue(b, opt), manager.WithLogger(opt.Logger))
	opt.Logger.Info("session started", "store", opt.Config.Store, "key", opt.Config.Key, "tasks", len(mgr.Tasks()))
	if err := opt.Interactive(mgr); err != nil {
		ui.Fail("ui: " + err.Error())
		return 1
	}
	opt.Logger.Info("session ended", "tasks", len(mgr.Tasks()))
	return 0
}

func doList(opt Options, group bool) int {
	s, err := openSession(opt)
	if err != nil {
		ui.Fail("load: " + err.Error())
		return 1
	}
	defer s.Close()

	t := ui.Current()
	list := s.mgr.Tasks()
	st := s.mgr.Stats()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render(s.mgr.Identity().Name+"'s Task Manager"),
		t.Success.Render(t.SymOK), st.Completed,
		t.Pending.Render("•"), st.Pending(),
		t.Accent.Render("Total"), st.Total,
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, t.Muted.Render(ui.ProgressBar(st.Completed, st.Total, 28)))
	lines = append(lines, "")
	if group {
		lines = append(lines, groupLines(list)...)
	} else {
		lines = append(lines, flatLines(list)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Muted.Render("Tip: add with `taskman add \"Buy milk\"`"))
	ui.Panel(lines)
	return 0
}

func doStats(opt Options) int {
	s, err := openSession(opt)
	if err != nil {
		ui.Fail("load: " + err.Error())
		return 1
	}
	defer s.Close()

	st := s.mgr.Stats()
	fmt.Fprintf(ui.Out, "Total Tasks: %d\nCompleted Tasks: %d\n", st.Total, st.Completed)
	return 0
}

func doAdd(opt Options, title string) int {
	s, err := openSession(opt)
	if err != nil {
		ui.Fail("load: " + err.Error())
		return 1
	}
	defer s.Close()

	if !s.mgr.Submit(title) {
		ui.Fail("add: empty title")
		return 2
	}
	if s.saveErr != nil {
		ui.Fail("save: " + s.saveErr.Error())
		return 1
	}
	ui.OK("added")
	return 0
}

func doToggle(opt Options, userIndex int) int {
	return mutateAt(opt, userIndex, "toggled", func(t model.Task) tasks.Action {
		return tasks.Toggle{ID: t.ID}
	})
}

func doRemove(opt Options, userIndex int) int {
	return mutateAt(opt, userIndex, "removed", func(t model.Task) tasks.Action {
		return tasks.Delete{ID: t.ID}
	})
}

func mutateAt(opt Options, userIndex int, verb string, action func(model.Task) tasks.Action) int {
	s, err := openSession(opt)
	if err != nil {
		ui.Fail("load: " + err.Error())
		return 1
	}
	defer s.Close()

	list := s.mgr.Tasks()
	if userIndex < 1 || userIndex > len(list) {
		ui.Fail(fmt.Sprintf("index out of range: have %d, got %d", len(list), userIndex))
		ui.Hint("Hint: run `taskman ls` to see valid indexes")
		return 2
	}
	s.mgr.Dispatch(action(list[userIndex-1]))
	if s.saveErr != nil {
		ui.Fail("save: " + s.saveErr.Error())
		return 1
	}
	ui.OK(verb)
	return 0
}

// -------------- rendering helpers --------------

func flatLines(list []model.Task) []string {
	if len(list) == 0 {
		return []string{ui.Current().Muted.Render("no tasks")}
	}
	out := make([]string, 0, len(list))
	for i, it := range list {
		out = append(out, taskLine(i+1, it))
	}
	return out
}

// groupLines splits pending from done but keeps each task's position in the
// full list, so the printed index still works with done/rm.
func groupLines(list []model.Task) []string {
	t := ui.Current()
	var pend, done []string
	for i, it := range list {
		if it.Completed {
			done = append(done, taskLine(i+1, it))
		} else {
			pend = append(pend, taskLine(i+1, it))
		}
	}
	section := func(name string, lines []string) []string {
		out := []string{t.Accent.Render(name)}
		if len(lines) == 0 {
			return append(out, t.Muted.Render("(none)"))
		}
		return append(out, lines...)
	}
	lines := section("Pending", pend)
	lines = append(lines, "")
	return append(lines, section("Done", done)...)
}

func taskLine(index int, it model.Task) string {
	t := ui.Current()
	idx := t.Muted.Render(fmt.Sprintf("%2d.", index))
	box := t.Muted.Render(t.BoxUnchecked)
	title := ansi.Truncate(it.Title, maxTitleWidth, "...")
	if it.Completed {
		box = t.Success.Render(t.BoxChecked)
		title = t.Done.Render(title)
	}
	return fmt.Sprintf("%s %s %s", idx, box, title)
}
