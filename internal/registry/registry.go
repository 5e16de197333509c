// Package registry manages the on-disk registry of live sessions. Each
// session is one JSON record under the sessions directory, written through
// the record store's atomic rename pattern. The registry performs its own
// read-before-write on every operation: state is never cached in memory
// across calls, because other processes may mutate the same records between
// invocations.
package registry

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Iron-Ham/cohort/internal/errors"
	"github.com/Iron-Ham/cohort/internal/logging"
	"github.com/Iron-Ham/cohort/internal/record"
)

// SessionsDirName is the directory within the data dir that holds one
// record per live session.
const SessionsDirName = "sessions"

// Defaults are applied to sessions created with omitted options.
type Defaults struct {
	FocusTags    []string
	Directories  []string
	FilePatterns []string
}

// Registry provides CRUD over session records rooted at a data directory.
// It is safe for use from multiple processes: single-record writes are
// atomic, and cross-record races are accepted by design (advisory
// coordination, not a lock server).
type Registry struct {
	dataDir  string
	maxName  int
	defaults Defaults
	log      *logging.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registry operations.
func WithLogger(log *logging.Logger) Option {
	return func(r *Registry) {
		r.log = log.WithComponent("registry")
	}
}

// WithNameLimit overrides the sanitized-name length cap.
func WithNameLimit(maxLen int) Option {
	return func(r *Registry) {
		if maxLen > 0 {
			r.maxName = maxLen
		}
	}
}

// WithDefaults overrides the defaults applied to new sessions.
func WithDefaults(d Defaults) Option {
	return func(r *Registry) {
		r.defaults = d
	}
}

// New creates a Registry rooted at the given data directory.
func New(dataDir string, opts ...Option) *Registry {
	r := &Registry{
		dataDir: dataDir,
		maxName: DefaultNameMaxLength,
		defaults: Defaults{
			FocusTags:    []string{"general"},
			Directories:  []string{"."},
			FilePatterns: []string{"*"},
		},
		log: logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SessionsDir returns the directory holding session records.
func (r *Registry) SessionsDir() string {
	return filepath.Join(r.dataDir, SessionsDirName)
}

// sessionPath returns the record path for a sanitized name.
func (r *Registry) sessionPath(name string) string {
	return filepath.Join(r.SessionsDir(), name+".json")
}

// Create sanitizes name, verifies uniqueness among live sessions, and writes
// a new session record. Returns ErrInvalidName if the name sanitizes to
// nothing, or ErrDuplicateSession if a live session already uses it.
func (r *Registry) Create(name string, opts Options) (*Session, error) {
	clean := sanitizeName(name, r.maxName)
	if clean == "" {
		return nil, errors.NewValidationError("name", "empty after sanitization").
			WithSentinel(errors.ErrInvalidName)
	}

	if record.Exists(r.sessionPath(clean)) {
		return nil, errors.NewAlreadyExistsError("session", clean)
	}

	now := time.Now()
	session := &Session{
		ID:           uuid.NewString(),
		Name:         clean,
		FocusTags:    orDefault(opts.FocusTags, r.defaults.FocusTags),
		Directories:  orDefault(opts.Directories, r.defaults.Directories),
		FilePatterns: orDefault(opts.FilePatterns, r.defaults.FilePatterns),
		ActiveFiles:  []string{},
		CurrentTask:  opts.CurrentTask,
		Status:       StatusIdle,
		Created:      now,
		LastActive:   now,
	}

	if err := record.Write(r.sessionPath(clean), session); err != nil {
		return nil, errors.Wrapf(err, "create session %s", clean)
	}

	r.log.WithSession(clean).Info("session created", "id", session.ID)
	return session, nil
}

// Get returns the live session with the given name, or (nil, nil) if no such
// session exists. A corrupt record surfaces as an error distinct from absence.
func (r *Registry) Get(name string) (*Session, error) {
	clean := sanitizeName(name, r.maxName)
	if clean == "" {
		return nil, nil
	}

	var session Session
	found, err := record.Read(r.sessionPath(clean), &session)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &session, nil
}

// List returns all live sessions sorted by name. The order is stable within
// a single call; concurrent processes may mutate records between calls.
func (r *Registry) List() ([]Session, error) {
	entries, err := os.ReadDir(r.SessionsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // no sessions directory = no sessions
		}
		return nil, errors.Wrap(err, "list sessions")
	}

	var sessions []Session
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		var session Session
		found, err := record.Read(filepath.Join(r.SessionsDir(), entry.Name()), &session)
		if err != nil {
			return nil, err
		}
		if found {
			sessions = append(sessions, session)
		}
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Name < sessions[j].Name
	})
	return sessions, nil
}

// Update merges patch fields into the session and refreshes LastActive.
// Returns ErrSessionNotFound if no live session has the name. Setting
// StatusClosed through Update is rejected; use Close.
func (r *Registry) Update(name string, patch Patch) (*Session, error) {
	session, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errors.NewNotFoundError("session", sanitizeName(name, r.maxName))
	}

	if patch.Status != nil {
		if *patch.Status == StatusClosed {
			return nil, errors.NewValidationError("status", "cannot set closed via update; use close")
		}
		session.Status = *patch.Status
	}
	if patch.CurrentTask != nil {
		session.CurrentTask = *patch.CurrentTask
	}
	if patch.FocusTags != nil {
		session.FocusTags = *patch.FocusTags
	}
	if patch.Directories != nil {
		session.Directories = *patch.Directories
	}
	if patch.FilePatterns != nil {
		session.FilePatterns = *patch.FilePatterns
	}
	session.LastActive = time.Now()

	if err := record.Write(r.sessionPath(session.Name), session); err != nil {
		return nil, errors.Wrap(err, "update session")
	}

	r.log.WithSession(session.Name).Debug("session updated")
	return session, nil
}

// LockResult is the outcome of a LockFile call. A conflict is a normal,
// recoverable outcome, not an error: callers are expected to branch on it.
type LockResult struct {
	// Session is the requesting session's name.
	Session string `json:"session"`

	// Path is the normalized file path.
	Path string `json:"path"`

	// Locked reports whether the session now holds the file.
	Locked bool `json:"locked"`

	// Conflicts names the other live sessions holding the file, sorted.
	// Empty when Locked is true.
	Conflicts []string `json:"conflicts,omitempty"`
}

// LockFile records the session's claim on a file path. If the session
// already holds the path this succeeds idempotently. If another live
// session holds it, the result names the conflicting holders and no state
// changes. The check-then-set is a best-effort snapshot, not a transaction:
// two processes interleaving can both lock, which the conflict detector
// reports after the fact.
func (r *Registry) LockFile(name, filePath string) (*LockResult, error) {
	session, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errors.NewNotFoundError("session", sanitizeName(name, r.maxName))
	}

	norm := NormalizePath(filePath)
	if norm == "" {
		return nil, errors.NewValidationError("path", "empty after normalization")
	}

	result := &LockResult{Session: session.Name, Path: norm}

	if session.HoldsFile(norm) {
		result.Locked = true // idempotent
		return result, nil
	}

	others, err := r.List()
	if err != nil {
		return nil, err
	}
	for _, other := range others {
		if other.Name == session.Name {
			continue
		}
		if other.HoldsFile(norm) {
			result.Conflicts = append(result.Conflicts, other.Name)
		}
	}
	if len(result.Conflicts) > 0 {
		sort.Strings(result.Conflicts)
		r.log.WithSession(session.Name).Warn("lock conflict",
			"path", norm,
			"holders", strings.Join(result.Conflicts, ","),
		)
		return result, nil
	}

	session.ActiveFiles = append(session.ActiveFiles, norm)
	sort.Strings(session.ActiveFiles)
	session.Status = StatusActive
	session.LastActive = time.Now()

	if err := record.Write(r.sessionPath(session.Name), session); err != nil {
		return nil, errors.Wrap(err, "lock file")
	}

	result.Locked = true
	r.log.WithSession(session.Name).Debug("file locked", "path", norm)
	return result, nil
}

// ReleaseFile removes the path from the session's active files. Releasing a
// path the session does not hold is an idempotent no-op. A session left with
// zero active files becomes idle.
func (r *Registry) ReleaseFile(name, filePath string) error {
	session, err := r.Get(name)
	if err != nil {
		return err
	}
	if session == nil {
		return errors.NewNotFoundError("session", sanitizeName(name, r.maxName))
	}

	norm := NormalizePath(filePath)
	if norm == "" || !session.HoldsFile(norm) {
		return nil // idempotent
	}

	files := session.ActiveFiles[:0]
	for _, f := range session.ActiveFiles {
		if f != norm {
			files = append(files, f)
		}
	}
	session.ActiveFiles = files
	if len(session.ActiveFiles) == 0 {
		session.Status = StatusIdle
	}
	session.LastActive = time.Now()

	if err := record.Write(r.sessionPath(session.Name), session); err != nil {
		return errors.Wrap(err, "release file")
	}

	r.log.WithSession(session.Name).Debug("file released", "path", norm)
	return nil
}

// Close removes the session record entirely. The name becomes available for
// reuse immediately; its active files are treated as released.
func (r *Registry) Close(name string) error {
	clean := sanitizeName(name, r.maxName)
	if clean == "" || !record.Exists(r.sessionPath(clean)) {
		return errors.NewNotFoundError("session", clean)
	}

	if err := record.Delete(r.sessionPath(clean)); err != nil {
		return errors.Wrapf(err, "close session %s", clean)
	}

	r.log.WithSession(clean).Info("session closed")
	return nil
}

// Prune closes every session whose LastActive is older than olderThan and
// returns the names removed, sorted. Sessions that disappear mid-scan are
// skipped; another process closing them first is the same outcome.
func (r *Registry) Prune(olderThan time.Duration) ([]string, error) {
	sessions, err := r.List()
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(-olderThan)
	var pruned []string
	for _, s := range sessions {
		if !s.LastActive.Before(cutoff) {
			continue
		}
		if err := record.Delete(r.sessionPath(s.Name)); err != nil {
			return pruned, errors.Wrapf(err, "prune session %s", s.Name)
		}
		pruned = append(pruned, s.Name)
		r.log.WithSession(s.Name).Info("stale session pruned", "last_active", s.LastActive)
	}
	return pruned, nil
}

// orDefault returns values if non-empty, otherwise a copy of fallback.
func orDefault(values, fallback []string) []string {
	if len(values) > 0 {
		return values
	}
	out := make([]string, len(fallback))
	copy(out, fallback)
	return out
}
