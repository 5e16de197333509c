package tui

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/cohort/internal/conflict"
	"github.com/Iron-Ham/cohort/internal/goal"
	"github.com/Iron-Ham/cohort/internal/ledger"
	"github.com/Iron-Ham/cohort/internal/logging"
	"github.com/Iron-Ham/cohort/internal/registry"
)

// App wraps the Bubbletea program together with a session record watcher
// that refreshes the dashboard between polls.
type App struct {
	program *tea.Program
	model   Model
	reg     *registry.Registry
	watch   bool
	log     *logging.Logger
}

// Option configures an App.
type Option func(*App)

// WithWatcher enables or disables the filesystem watcher.
func WithWatcher(enabled bool) Option {
	return func(a *App) { a.watch = enabled }
}

// WithLogger sets the logger used for watcher diagnostics.
func WithLogger(log *logging.Logger) Option {
	return func(a *App) {
		if log != nil {
			a.log = log.WithComponent("dashboard")
		}
	}
}

// New creates a dashboard application over the registry, goal tracker, and
// task ledger sharing one data directory.
func New(reg *registry.Registry, tracker *goal.Tracker, tasks *ledger.Ledger, pollInterval time.Duration, opts ...Option) *App {
	a := &App{
		model: NewModel(reg, tracker, tasks, pollInterval),
		reg:   reg,
		watch: true,
		log:   logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run starts the dashboard and blocks until it exits.
func (a *App) Run() error {
	a.program = tea.NewProgram(a.model, tea.WithAltScreen())

	// Forward termination signals as a quit message so the terminal is
	// restored cleanly.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)

	go func() {
		<-sigChan
		if a.program != nil {
			a.program.Send(tea.Quit())
		}
	}()

	var stopWatch func()
	if a.watch {
		stopWatch = a.startWatcher(func() {
			a.program.Send(refreshMsg{})
		})
	}
	if stopWatch != nil {
		defer stopWatch()
	}

	_, err := a.program.Run()
	return err
}

// startWatcher refreshes the dashboard whenever a session record changes,
// reusing the conflict detector's debounced watcher. Goal and task records
// are picked up by the regular poll. Watch failures are logged and the
// dashboard falls back to polling alone.
func (a *App) startWatcher(notify func()) func() {
	w, err := conflict.NewWatcher(a.reg, func([]conflict.FileConflict) {
		notify()
	})
	if err != nil {
		a.log.Warn("filesystem watcher unavailable", "error", err)
		return nil
	}
	w.Start()
	return w.Stop
}
