package rules

import (
	"strings"
	"testing"
	"time"

	"github.com/Iron-Ham/cohort/internal/goal"
	"github.com/Iron-Ham/cohort/internal/ledger"
	"github.com/Iron-Ham/cohort/internal/registry"
)

func TestRenderDefaultTemplate(t *testing.T) {
	data := TemplateData{
		GeneratedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Goal:        "Ship the coordination layer.",
		GoalSource:  "cli",
		Sessions: []SessionView{
			{
				Name:         "frontend",
				Status:       "active",
				FocusTags:    []string{"ui"},
				Directories:  []string{"src"},
				FilePatterns: []string{"*.tsx"},
				ActiveFiles:  []string{"src/App.tsx"},
				CurrentTask:  "refactor header",
			},
		},
		Pending: []ledger.Task{
			{ID: "t1", Title: "write docs", Priority: ledger.PriorityHigh},
		},
	}

	out, err := Render("", data)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	for _, want := range []string{
		"Ship the coordination layer.",
		"### frontend (active)",
		"Working on: refactor header",
		"`src/App.tsx`",
		"[high] write docs",
		"_None detected._",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestRenderNoGoalNoSessions(t *testing.T) {
	out, err := Render("", TemplateData{GeneratedAt: time.Now()})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(out, "_No goal has been set._") {
		t.Error("output missing unset-goal placeholder")
	}
	if !strings.Contains(out, "_No live sessions._") {
		t.Error("output missing empty-sessions placeholder")
	}
	if !strings.Contains(out, "_Backlog is empty._") {
		t.Error("output missing empty-backlog placeholder")
	}
}

func TestRenderCustomTemplate(t *testing.T) {
	out, err := Render("goal: {{.Goal}}", TemplateData{Goal: "Do the thing."})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if out != "goal: Do the thing." {
		t.Errorf("output = %q", out)
	}
}

func TestRenderInvalidTemplate(t *testing.T) {
	if _, err := Render("{{.Goal", TemplateData{}); err == nil {
		t.Error("expected parse error for unterminated action")
	}
}

func TestBuild(t *testing.T) {
	sessions := []registry.Session{
		{
			Name:         "zeta",
			Status:       registry.StatusActive,
			FilePatterns: []string{"*.go", "[invalid"},
			ActiveFiles:  []string{"src/App.tsx"},
		},
		{
			Name:        "alpha",
			Status:      registry.StatusIdle,
			ActiveFiles: []string{"src/App.tsx"},
		},
	}
	g := &goal.Goal{Text: "Ship it.", Source: "cli"}
	pending := []ledger.Task{{ID: "t1", Title: "task one"}}

	data := Build(sessions, g, pending)

	if data.Goal != "Ship it." || data.GoalSource != "cli" {
		t.Errorf("goal = %q/%q", data.Goal, data.GoalSource)
	}
	if len(data.Sessions) != 2 || data.Sessions[0].Name != "alpha" {
		t.Errorf("sessions not sorted by name: %+v", data.Sessions)
	}
	if len(data.Conflicts) != 1 || data.Conflicts[0].File != "src/App.tsx" {
		t.Errorf("conflicts = %+v, want shared src/App.tsx", data.Conflicts)
	}

	// The malformed glob is dropped, the valid one kept.
	var zeta SessionView
	for _, s := range data.Sessions {
		if s.Name == "zeta" {
			zeta = s
		}
	}
	if len(zeta.FilePatterns) != 1 || zeta.FilePatterns[0] != "*.go" {
		t.Errorf("FilePatterns = %v, want only the valid glob", zeta.FilePatterns)
	}
}

func TestBuildNilGoal(t *testing.T) {
	data := Build(nil, nil, nil)
	if data.Goal != "" {
		t.Errorf("Goal = %q, want empty", data.Goal)
	}
	if len(data.Sessions) != 0 {
		t.Errorf("Sessions = %+v, want empty", data.Sessions)
	}
}
