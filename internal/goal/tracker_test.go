package goal

import (
	"fmt"
	"strings"
	"testing"
)

func newTestTracker(t *testing.T, opts ...Option) *Tracker {
	t.Helper()
	return New(t.TempDir(), opts...)
}

func mustUpdate(t *testing.T, tr *Tracker, text, source string) *UpdateResult {
	t.Helper()
	res, err := tr.Update(text, source, nil)
	if err != nil {
		t.Fatalf("Update(%q) error: %v", text, err)
	}
	if !res.Accepted() {
		t.Fatalf("Update(%q) rejected: %v", text, res.Issues)
	}
	return res
}

func TestCurrentUnset(t *testing.T) {
	tr := newTestTracker(t)
	g, err := tr.Current()
	if err != nil {
		t.Fatalf("Current() error: %v", err)
	}
	if g != nil {
		t.Errorf("Current() = %+v, want nil for unset goal", g)
	}
}

func TestUpdateAndCurrent(t *testing.T) {
	tr := newTestTracker(t)
	res := mustUpdate(t, tr, "  Ship the coordination layer.  ", "cli")

	if res.Goal.Text != "Ship the coordination layer." {
		t.Errorf("goal text = %q, want trimmed text", res.Goal.Text)
	}
	if res.Goal.Source != "cli" {
		t.Errorf("source = %q, want %q", res.Goal.Source, "cli")
	}

	g, err := tr.Current()
	if err != nil {
		t.Fatalf("Current() error: %v", err)
	}
	if g == nil || g.Text != res.Goal.Text {
		t.Errorf("Current() = %+v, want persisted goal", g)
	}
}

func TestUpdateValidation(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty", text: "   "},
		{name: "too short", text: "Short."},
		{name: "too long", text: strings.Repeat("x", 2001) + "."},
		{name: "no terminal punctuation", text: "ship the coordination layer"},
	}

	tr := newTestTracker(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tr.Update(tt.text, "cli", nil)
			if err != nil {
				t.Fatalf("Update() error: %v", err)
			}
			if res.Accepted() {
				t.Fatal("Update() accepted invalid goal")
			}
			if len(res.Issues) == 0 {
				t.Error("expected at least one issue")
			}
		})
	}

	// Nothing should have been persisted.
	if g, _ := tr.Current(); g != nil {
		t.Errorf("Current() = %+v after rejected updates, want nil", g)
	}
	if entries, _ := tr.History(0); len(entries) != 0 {
		t.Errorf("History() has %d entries after rejected updates, want 0", len(entries))
	}
}

func TestUpdateMetrics(t *testing.T) {
	tr := newTestTracker(t)
	mustUpdate(t, tr, "Build the parser.", "cli")
	res := mustUpdate(t, tr, "Build the parser and lexer.", "cli")

	m := res.Metrics
	if m.LengthChange != 10 {
		t.Errorf("LengthChange = %d, want 10", m.LengthChange)
	}
	if m.WordChange != 2 {
		t.Errorf("WordChange = %d, want 2", m.WordChange)
	}
	if m.Similarity <= 0.0 || m.Similarity >= 1.0 {
		t.Errorf("Similarity = %v, want strictly between 0 and 1", m.Similarity)
	}
}

func TestFirstUpdateComparesAgainstEmpty(t *testing.T) {
	tr := newTestTracker(t)
	res := mustUpdate(t, tr, "Build the parser.", "cli")

	if res.Metrics.Similarity != 0.0 {
		t.Errorf("Similarity = %v, want 0 against empty goal", res.Metrics.Similarity)
	}
	if res.Entry.OldGoal != "" {
		t.Errorf("OldGoal = %q, want empty", res.Entry.OldGoal)
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	tr := newTestTracker(t)
	mustUpdate(t, tr, "First version of the goal.", "cli")
	mustUpdate(t, tr, "Second version of the goal.", "cli")
	mustUpdate(t, tr, "Third version of the goal.", "cli")

	entries, err := tr.History(0)
	if err != nil {
		t.Fatalf("History() error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("History() returned %d entries, want 3", len(entries))
	}
	if entries[0].NewGoal != "Third version of the goal." {
		t.Errorf("entries[0].NewGoal = %q, want newest first", entries[0].NewGoal)
	}

	limited, err := tr.History(2)
	if err != nil {
		t.Fatalf("History(2) error: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("History(2) returned %d entries, want 2", len(limited))
	}
}

func TestHistoryRetention(t *testing.T) {
	tr := newTestTracker(t, WithRetention(5))
	for i := 0; i < 8; i++ {
		mustUpdate(t, tr, fmt.Sprintf("Goal revision number %d.", i), "cli")
	}

	entries, err := tr.History(0)
	if err != nil {
		t.Fatalf("History() error: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("History() returned %d entries, want 5", len(entries))
	}
	// Oldest retained entry is revision 3.
	if got := entries[len(entries)-1].NewGoal; got != "Goal revision number 3." {
		t.Errorf("oldest retained = %q, want revision 3", got)
	}
}

func TestRevert(t *testing.T) {
	tr := newTestTracker(t)
	mustUpdate(t, tr, "First version of the goal.", "cli")
	res := mustUpdate(t, tr, "Second version of the goal.", "cli")

	rev, err := tr.Revert(res.Entry.ID)
	if err != nil {
		t.Fatalf("Revert() error: %v", err)
	}
	if !rev.Reverted {
		t.Fatalf("Revert() not reverted: %s", rev.Reason)
	}
	if rev.Result.Goal.Source != SourceRevert {
		t.Errorf("source = %q, want %q", rev.Result.Goal.Source, SourceRevert)
	}

	g, err := tr.Current()
	if err != nil {
		t.Fatalf("Current() error: %v", err)
	}
	if g.Text != "First version of the goal." {
		t.Errorf("Current() = %q, want first version restored", g.Text)
	}

	// The revert itself appears as a forward history entry.
	entries, _ := tr.History(1)
	if len(entries) != 1 || entries[0].Source != SourceRevert {
		t.Errorf("newest history entry = %+v, want revert entry", entries)
	}
}

func TestRevertMissingEntry(t *testing.T) {
	tr := newTestTracker(t)
	mustUpdate(t, tr, "First version of the goal.", "cli")

	rev, err := tr.Revert("no-such-entry")
	if err != nil {
		t.Fatalf("Revert() error: %v", err)
	}
	if rev.Reverted {
		t.Error("Revert() succeeded for missing entry")
	}
	if rev.Reason == "" {
		t.Error("expected a reason for the failed revert")
	}
}

func TestRevertToEmptyOldGoalRejected(t *testing.T) {
	tr := newTestTracker(t)
	first := mustUpdate(t, tr, "First version of the goal.", "cli")

	// The first entry's OldGoal is empty, which fails validation.
	rev, err := tr.Revert(first.Entry.ID)
	if err != nil {
		t.Fatalf("Revert() error: %v", err)
	}
	if rev.Reverted {
		t.Error("Revert() succeeded with empty previous goal")
	}
	if rev.Result == nil || len(rev.Result.Issues) == 0 {
		t.Error("expected validation issues on the revert result")
	}
}

func TestTwoTrackersShareState(t *testing.T) {
	dir := t.TempDir()
	a := New(dir)
	b := New(dir)

	if _, err := a.Update("Goal written by the first tracker.", "cli", nil); err != nil {
		t.Fatalf("Update() error: %v", err)
	}

	g, err := b.Current()
	if err != nil {
		t.Fatalf("Current() error: %v", err)
	}
	if g == nil || g.Text != "Goal written by the first tracker." {
		t.Errorf("second tracker sees %+v, want first tracker's goal", g)
	}
}
