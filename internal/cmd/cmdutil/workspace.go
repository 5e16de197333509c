// Package cmdutil wires the coordination components for CLI commands.
package cmdutil

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/Iron-Ham/cohort/internal/config"
	"github.com/Iron-Ham/cohort/internal/goal"
	"github.com/Iron-Ham/cohort/internal/ledger"
	"github.com/Iron-Ham/cohort/internal/logging"
	"github.com/Iron-Ham/cohort/internal/registry"
)

// Workspace bundles the coordination components rooted at one data
// directory, built from the loaded configuration.
type Workspace struct {
	Config   *config.Config
	DataDir  string
	Log      *logging.Logger
	Sessions *registry.Registry
	Goal     *goal.Tracker
	Tasks    *ledger.Ledger
}

// Open loads configuration, resolves the data directory against the current
// working tree, and constructs the component set. Callers should defer
// Close to flush the log file.
func Open() (*Workspace, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}
	dataDir := cfg.Paths.ResolveDataDir(cwd)

	log := logging.NopLogger()
	if cfg.Logging.Enabled {
		log, err = logging.NewLogger(dataDir, cfg.Logging.Level)
		if err != nil {
			return nil, fmt.Errorf("opening log: %w", err)
		}
	}

	return &Workspace{
		Config:  cfg,
		DataDir: dataDir,
		Log:     log,
		Sessions: registry.New(dataDir,
			registry.WithLogger(log),
			registry.WithNameLimit(cfg.Session.NameMaxLength),
			registry.WithDefaults(registry.Defaults{
				FocusTags:    cfg.Session.DefaultFocusTags,
				Directories:  cfg.Session.DefaultDirectories,
				FilePatterns: cfg.Session.DefaultFilePatterns,
			})),
		Goal: goal.New(dataDir,
			goal.WithLogger(log),
			goal.WithLengthBounds(cfg.Goal.MinLength, cfg.Goal.MaxLength),
			goal.WithRetention(cfg.Goal.HistoryRetention),
			goal.WithWordSample(cfg.Goal.WordSampleSize)),
		Tasks: ledger.New(dataDir, ledger.WithLogger(log)),
	}, nil
}

// Close releases workspace resources.
func (w *Workspace) Close() {
	if w.Log != nil {
		_ = w.Log.Close()
	}
}

// TerminalWidth returns the column width of stdout when it is a terminal,
// and a conservative default when it is not (pipes, CI).
func TerminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 100
}
