// Package conflict reports file-level overlaps between live sessions. The
// detector is a pure function over a registry snapshot: it holds no state of
// its own and is safe to call repeatedly and concurrently with mutations.
// The result reflects whatever snapshot the caller passed in; it is
// eventually consistent by design, not transactional.
package conflict

import (
	"sort"

	"github.com/Iron-Ham/cohort/internal/registry"
)

// KindFile marks a conflict over a single file path. It is the only kind
// the detector currently emits.
const KindFile = "file"

// FileConflict represents a file held by two or more live sessions.
type FileConflict struct {
	// File is the normalized path both sessions hold.
	File string `json:"file"`

	// Sessions names the holders, sorted.
	Sessions []string `json:"sessions"`

	// Kind is the conflict granularity; always "file".
	Kind string `json:"kind"`
}

// Detect builds a map of file path to holding sessions and emits one
// conflict per path with two or more holders. Output is deterministic for a
// given snapshot: conflicts are sorted by path and holders by session name.
// Runs in O(total active files).
func Detect(sessions []registry.Session) []FileConflict {
	holders := make(map[string][]string)
	for _, session := range sessions {
		for _, file := range session.ActiveFiles {
			holders[file] = append(holders[file], session.Name)
		}
	}

	conflicts := make([]FileConflict, 0)
	for file, names := range holders {
		if len(names) < 2 {
			continue
		}
		sort.Strings(names)
		conflicts = append(conflicts, FileConflict{
			File:     file,
			Sessions: names,
			Kind:     KindFile,
		})
	}

	sort.Slice(conflicts, func(i, j int) bool {
		return conflicts[i].File < conflicts[j].File
	})
	return conflicts
}

// ForSession filters conflicts to those involving the named session.
func ForSession(conflicts []FileConflict, name string) []FileConflict {
	var out []FileConflict
	for _, c := range conflicts {
		for _, s := range c.Sessions {
			if s == name {
				out = append(out, c)
				break
			}
		}
	}
	return out
}
