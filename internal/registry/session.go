package registry

import (
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/gobwas/glob"
)

// Status represents the lifecycle state of a session.
type Status string

const (
	// StatusActive indicates the session holds at least one active file.
	StatusActive Status = "active"

	// StatusIdle indicates the session is live but holds no active files.
	StatusIdle Status = "idle"

	// StatusClosed is terminal; a closed session's record is removed from
	// the registry entirely. The value never appears in a persisted record
	// and exists for callers that render lifecycle transitions.
	StatusClosed Status = "closed"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// DefaultNameMaxLength caps sanitized session names.
const DefaultNameMaxLength = 50

// Session represents one actor's claimed working context: the files it
// holds, the directories and patterns it declares interest in, and its
// current task. Sessions are owned by their on-disk records; callers must
// re-read before mutating rather than holding instances across calls.
type Session struct {
	// ID is an opaque unique identifier assigned at creation.
	ID string `json:"id"`

	// Name is the sanitized, filesystem-safe label. Unique among live sessions.
	Name string `json:"name"`

	// FocusTags are free-text labels describing the intended work domain,
	// e.g. "ui" or "api". Advisory only.
	FocusTags []string `json:"focus_tags"`

	// Directories are path prefixes the session claims interest in.
	Directories []string `json:"directories"`

	// FilePatterns are glob patterns (e.g. "*.tsx") describing file types
	// of interest.
	FilePatterns []string `json:"file_patterns"`

	// ActiveFiles are the normalized paths the session currently holds.
	// Sorted, no duplicates, no empty strings.
	ActiveFiles []string `json:"active_files"`

	// CurrentTask is a free-text description of current work.
	CurrentTask string `json:"current_task,omitempty"`

	// Status is active or idle. Closed sessions have no record.
	Status Status `json:"status"`

	// Created is when the session record was first written.
	Created time.Time `json:"created"`

	// LastActive updates on every mutating operation.
	LastActive time.Time `json:"last_active"`
}

// Options carries the optional fields for session creation. Omitted fields
// receive the registry's configured defaults.
type Options struct {
	FocusTags    []string
	Directories  []string
	FilePatterns []string
	CurrentTask  string
}

// Patch carries optional field updates for a session. Nil fields are left
// unmodified.
type Patch struct {
	CurrentTask  *string
	Status       *Status
	FocusTags    *[]string
	Directories  *[]string
	FilePatterns *[]string
}

// HoldsFile reports whether the session currently holds the given
// normalized path.
func (s *Session) HoldsFile(normalized string) bool {
	return slices.Contains(s.ActiveFiles, normalized)
}

// Relevance reports whether a file path falls within the session's declared
// interest: under one of its directories, or matching one of its file
// patterns against the base name. Advisory only; it is never enforced.
func (s *Session) Relevance(filePath string) bool {
	norm := NormalizePath(filePath)
	if norm == "" {
		return false
	}

	for _, dir := range s.Directories {
		d := NormalizePath(dir)
		if dir == "." || d == "" {
			return true
		}
		if norm == d || strings.HasPrefix(norm, d+"/") {
			return true
		}
	}

	base := path.Base(norm)
	for _, pattern := range s.FilePatterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			continue // skip invalid patterns
		}
		if g.Match(base) || g.Match(norm) {
			return true
		}
	}

	return false
}

// illegalNameChars matches characters that are unsafe in filenames on at
// least one supported platform, plus control characters.
var illegalNameChars = regexp.MustCompile(`[<>:"/\\|?*` + "\x00-\x1f" + `]`)

// SanitizeName strips filesystem-illegal characters from a session name,
// trims surrounding whitespace and dots, and caps the result at
// DefaultNameMaxLength runes. Sanitization is idempotent:
// SanitizeName(SanitizeName(x)) == SanitizeName(x).
func SanitizeName(name string) string {
	return sanitizeName(name, DefaultNameMaxLength)
}

func sanitizeName(name string, maxLen int) string {
	s := illegalNameChars.ReplaceAllString(name, "")
	s = trimNameEdges(s)

	runes := []rune(s)
	if len(runes) > maxLen {
		// Re-trim after truncation so the cap cannot expose a trailing
		// space or dot, which would break idempotency.
		s = trimNameEdges(string(runes[:maxLen]))
	}
	return s
}

// trimNameEdges removes surrounding whitespace and dots, which are legal
// mid-name but unsafe at the edges of a filename.
func trimNameEdges(s string) string {
	for {
		trimmed := strings.Trim(strings.TrimSpace(s), ".")
		if trimmed == s {
			return s
		}
		s = trimmed
	}
}

// NormalizePath converts a file path to its canonical slash-separated form:
// cleaned, relative, no leading "./". Returns "" for paths that normalize
// to nothing claimable.
func NormalizePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}

	p = path.Clean(filepath.ToSlash(p))
	p = strings.TrimPrefix(p, "./")
	if p == "." || p == "" || p == "/" {
		return ""
	}
	return p
}
