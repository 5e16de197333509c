package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/cohort/internal/conflict"
	"github.com/Iron-Ham/cohort/internal/goal"
	"github.com/Iron-Ham/cohort/internal/ledger"
	"github.com/Iron-Ham/cohort/internal/registry"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	dir := t.TempDir()
	return NewModel(
		registry.New(dir),
		goal.New(dir),
		ledger.New(dir),
		time.Second,
	)
}

func applySnapshot(t *testing.T, m Model, snap snapshot) Model {
	t.Helper()
	updated, _ := m.Update(snapshotMsg(snap))
	model, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return model
}

func TestModelLoadsRealState(t *testing.T) {
	dir := t.TempDir()
	reg := registry.New(dir)
	tracker := goal.New(dir)
	tasks := ledger.New(dir)

	if _, err := reg.Create("frontend", registry.Options{}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if _, err := tracker.Update("Ship the dashboard quickly.", "cli", nil); err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	m := NewModel(reg, tracker, tasks, time.Second)
	msg := m.load()()
	snap, ok := msg.(snapshotMsg)
	if !ok {
		t.Fatalf("load() returned %T, want snapshotMsg", msg)
	}
	if snap.Err != nil {
		t.Fatalf("snapshot error: %v", snap.Err)
	}
	if len(snap.Sessions) != 1 || snap.Sessions[0].Name != "frontend" {
		t.Errorf("sessions = %+v, want frontend", snap.Sessions)
	}
	if snap.Goal == nil || snap.Goal.Text != "Ship the dashboard quickly." {
		t.Errorf("goal = %+v", snap.Goal)
	}
}

func TestViewRendersPanels(t *testing.T) {
	m := newTestModel(t)
	m = applySnapshot(t, m, snapshot{
		At: time.Now(),
		Sessions: []registry.Session{
			{Name: "frontend", Status: registry.StatusActive, ActiveFiles: []string{"src/App.tsx"}, CurrentTask: "refactor header"},
			{Name: "backend", Status: registry.StatusIdle, ActiveFiles: []string{"src/App.tsx"}},
		},
		Conflicts: []conflict.FileConflict{
			{File: "src/App.tsx", Sessions: []string{"backend", "frontend"}, Kind: conflict.KindFile},
		},
		Goal: &goal.Goal{Text: "Ship it now.", Source: "cli", UpdatedAt: time.Now()},
		Tasks: ledger.Lists{
			Pending: []ledger.Task{{ID: "t1", Title: "write docs", Priority: ledger.PriorityHigh}},
		},
	})

	view := m.View()
	for _, want := range []string{
		"cohort dashboard",
		"Ship it now.",
		"frontend",
		"src/App.tsx",
		"write docs",
		"Conflicts (1)",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewEmptyState(t *testing.T) {
	m := newTestModel(t)
	m = applySnapshot(t, m, snapshot{At: time.Now()})

	view := m.View()
	for _, want := range []string{"no goal set", "no live sessions", "no overlapping files", "backlog is empty"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewLoading(t *testing.T) {
	m := newTestModel(t)
	if !strings.Contains(m.View(), "loading coordination state") {
		t.Error("initial view should show the loading state")
	}
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t)
	for _, key := range []string{"q", "ctrl+c", "esc"} {
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
		if key != "q" {
			continue
		}
		if cmd == nil {
			t.Errorf("key %q should produce a quit command", key)
		}
	}
}

func TestRefreshKeyReloads(t *testing.T) {
	m := newTestModel(t)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if cmd == nil {
		t.Fatal("'r' should trigger a reload command")
	}
	model := updated.(Model)
	if !model.loading {
		t.Error("'r' should put the model back into loading state")
	}
}

func TestTickSchedulesNextPoll(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should produce load and re-tick commands")
	}
}

func TestSnapshotErrorRendered(t *testing.T) {
	m := newTestModel(t)
	m = applySnapshot(t, m, snapshot{At: time.Now(), Err: errTest})
	if !strings.Contains(m.View(), "error:") {
		t.Error("view should surface snapshot errors")
	}
}

type testErr string

func (e testErr) Error() string { return string(e) }

var errTest = testErr("boom")
