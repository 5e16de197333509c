// Package testutil provides testing utilities for cohort tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/Iron-Ham/cohort/internal/goal"
	"github.com/Iron-Ham/cohort/internal/ledger"
	"github.com/Iron-Ham/cohort/internal/registry"
)

// Workspace bundles the coordination components over one temporary data
// directory for a test.
type Workspace struct {
	DataDir  string
	Sessions *registry.Registry
	Goal     *goal.Tracker
	Tasks    *ledger.Ledger
}

// SetupWorkspace creates a coordination workspace in a temporary directory.
// It is cleaned up when the test completes.
func SetupWorkspace(t *testing.T) *Workspace {
	t.Helper()

	dataDir := filepath.Join(t.TempDir(), ".cohort")
	return &Workspace{
		DataDir:  dataDir,
		Sessions: registry.New(dataDir),
		Goal:     goal.New(dataDir),
		Tasks:    ledger.New(dataDir),
	}
}

// CreateSession registers a session and fails the test on error.
func (w *Workspace) CreateSession(t *testing.T, name string, opts registry.Options) *registry.Session {
	t.Helper()

	s, err := w.Sessions.Create(name, opts)
	if err != nil {
		t.Fatalf("creating session %q: %v", name, err)
	}
	return s
}

// MustLock locks a file for a session and fails the test if the lock is
// refused or errors.
func (w *Workspace) MustLock(t *testing.T, session, file string) {
	t.Helper()

	res, err := w.Sessions.LockFile(session, file)
	if err != nil {
		t.Fatalf("locking %s for %q: %v", file, session, err)
	}
	if !res.Locked {
		t.Fatalf("locking %s for %q: held by %v", file, session, res.Conflicts)
	}
}

// AddTask adds a ledger task and fails the test on error.
func (w *Workspace) AddTask(t *testing.T, input ledger.Input) *ledger.Task {
	t.Helper()

	task, err := w.Tasks.Add(input)
	if err != nil {
		t.Fatalf("adding task %q: %v", input.Title, err)
	}
	return task
}
