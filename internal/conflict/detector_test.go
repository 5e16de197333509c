package conflict

import (
	"reflect"
	"testing"

	"github.com/Iron-Ham/cohort/internal/registry"
)

func session(name string, files ...string) registry.Session {
	return registry.Session{Name: name, ActiveFiles: files}
}

func TestDetectNoConflicts(t *testing.T) {
	sessions := []registry.Session{
		session("frontend", "src/App.tsx"),
		session("backend", "src/api/auth.js"),
	}

	conflicts := Detect(sessions)
	if len(conflicts) != 0 {
		t.Errorf("got %d conflicts, want 0: %v", len(conflicts), conflicts)
	}
}

func TestDetectSingleConflict(t *testing.T) {
	sessions := []registry.Session{
		session("frontend", "src/App.tsx"),
		session("backend", "src/api/auth.js", "src/App.tsx"),
	}

	conflicts := Detect(sessions)
	if len(conflicts) != 1 {
		t.Fatalf("got %d conflicts, want 1", len(conflicts))
	}

	want := FileConflict{
		File:     "src/App.tsx",
		Sessions: []string{"backend", "frontend"},
		Kind:     KindFile,
	}
	if !reflect.DeepEqual(conflicts[0], want) {
		t.Errorf("conflict = %+v, want %+v", conflicts[0], want)
	}
}

func TestDetectThreeWayConflict(t *testing.T) {
	sessions := []registry.Session{
		session("a", "shared.go"),
		session("b", "shared.go"),
		session("c", "shared.go"),
	}

	conflicts := Detect(sessions)
	if len(conflicts) != 1 {
		t.Fatalf("got %d conflicts, want 1", len(conflicts))
	}
	if len(conflicts[0].Sessions) != 3 {
		t.Errorf("got %d holders, want 3", len(conflicts[0].Sessions))
	}
}

func TestDetectDeterministicOrder(t *testing.T) {
	sessions := []registry.Session{
		session("zeta", "b.go", "a.go"),
		session("alpha", "a.go", "b.go"),
	}

	first := Detect(sessions)
	for range 10 {
		again := Detect(sessions)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Detect is not deterministic: %v vs %v", first, again)
		}
	}

	// Conflicts sorted by path, holders sorted by name.
	if first[0].File != "a.go" || first[1].File != "b.go" {
		t.Errorf("conflicts not sorted by path: %v", first)
	}
	if first[0].Sessions[0] != "alpha" {
		t.Errorf("holders not sorted by name: %v", first[0].Sessions)
	}
}

func TestDetectEmptyAndNilInput(t *testing.T) {
	if got := Detect(nil); len(got) != 0 {
		t.Errorf("Detect(nil) = %v, want empty", got)
	}
	if got := Detect([]registry.Session{}); len(got) != 0 {
		t.Errorf("Detect(empty) = %v, want empty", got)
	}
}

func TestDetectIdleSessionsStillHold(t *testing.T) {
	// An idle session keeps its active files until released or closed,
	// so it still counts toward conflicts.
	idle := session("idle-one", "x.js")
	idle.Status = registry.StatusIdle
	active := session("busy", "x.js")
	active.Status = registry.StatusActive

	conflicts := Detect([]registry.Session{idle, active})
	if len(conflicts) != 1 {
		t.Fatalf("got %d conflicts, want 1 (idle sessions hold files)", len(conflicts))
	}
}

func TestForSession(t *testing.T) {
	conflicts := []FileConflict{
		{File: "a.go", Sessions: []string{"one", "two"}, Kind: KindFile},
		{File: "b.go", Sessions: []string{"two", "three"}, Kind: KindFile},
	}

	got := ForSession(conflicts, "one")
	if len(got) != 1 || got[0].File != "a.go" {
		t.Errorf("ForSession(one) = %v, want just a.go", got)
	}

	if got := ForSession(conflicts, "two"); len(got) != 2 {
		t.Errorf("ForSession(two) = %v, want both", got)
	}

	if got := ForSession(conflicts, "nobody"); len(got) != 0 {
		t.Errorf("ForSession(nobody) = %v, want none", got)
	}
}
