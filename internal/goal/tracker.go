// Package goal tracks the shared project goal and its change history.
//
// The current goal lives in goal.json and every accepted change appends an
// entry to goal-history.json, capped at a configurable retention limit.
// Validation failures are reported as structured issues rather than errors:
// a malformed goal is an expected outcome, not a fault.
package goal

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Iron-Ham/cohort/internal/errors"
	"github.com/Iron-Ham/cohort/internal/logging"
	"github.com/Iron-Ham/cohort/internal/record"
)

const (
	// GoalFileName is the record holding the current goal.
	GoalFileName = "goal.json"
	// HistoryFileName is the record holding the change history.
	HistoryFileName = "goal-history.json"

	// SourceRevert marks history entries produced by Revert.
	SourceRevert = "revert"
)

// Goal is the current shared goal.
type Goal struct {
	Text      string            `json:"text"`
	UpdatedAt time.Time         `json:"updated_at"`
	Source    string            `json:"source"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// ChangeMetrics summarizes how a goal update differs from its predecessor.
type ChangeMetrics struct {
	LengthChange int      `json:"length_change"`
	WordChange   int      `json:"word_change"`
	AddedWords   []string `json:"added_words,omitempty"`
	RemovedWords []string `json:"removed_words,omitempty"`
	Similarity   float64  `json:"similarity"`
}

// HistoryEntry records one accepted goal change.
type HistoryEntry struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Source    string        `json:"source"`
	OldGoal   string        `json:"old_goal"`
	NewGoal   string        `json:"new_goal"`
	Metrics   ChangeMetrics `json:"change_metrics"`
}

// Issue describes one validation problem with a proposed goal.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// UpdateResult is the outcome of an Update attempt. A non-empty Issues slice
// means the goal was rejected and nothing was persisted.
type UpdateResult struct {
	Goal    *Goal          `json:"goal,omitempty"`
	Entry   *HistoryEntry  `json:"entry,omitempty"`
	Metrics *ChangeMetrics `json:"metrics,omitempty"`
	Issues  []Issue        `json:"issues,omitempty"`
}

// Accepted reports whether the update passed validation and was persisted.
func (r *UpdateResult) Accepted() bool {
	return len(r.Issues) == 0
}

// RevertResult is the outcome of a Revert attempt. Reverted is false when the
// named entry no longer exists, which is a contention outcome rather than an
// error.
type RevertResult struct {
	Reverted bool          `json:"reverted"`
	Reason   string        `json:"reason,omitempty"`
	Result   *UpdateResult `json:"result,omitempty"`
}

// Tracker manages the goal records under a data directory. Every operation
// re-reads state from disk so concurrent trackers in separate processes see
// each other's changes.
type Tracker struct {
	dataDir    string
	minLength  int
	maxLength  int
	retention  int
	wordSample int
	log        *logging.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger used for goal operations.
func WithLogger(log *logging.Logger) Option {
	return func(t *Tracker) {
		if log != nil {
			t.log = log.WithComponent("goal")
		}
	}
}

// WithLengthBounds overrides the minimum and maximum goal length in runes.
func WithLengthBounds(minLen, maxLen int) Option {
	return func(t *Tracker) {
		if minLen > 0 {
			t.minLength = minLen
		}
		if maxLen > 0 {
			t.maxLength = maxLen
		}
	}
}

// WithRetention overrides how many history entries are kept.
func WithRetention(n int) Option {
	return func(t *Tracker) {
		if n > 0 {
			t.retention = n
		}
	}
}

// WithWordSample overrides how many added/removed words each metric lists.
func WithWordSample(n int) Option {
	return func(t *Tracker) {
		if n > 0 {
			t.wordSample = n
		}
	}
}

// New returns a Tracker rooted at dataDir.
func New(dataDir string, opts ...Option) *Tracker {
	t := &Tracker{
		dataDir:    dataDir,
		minLength:  10,
		maxLength:  2000,
		retention:  50,
		wordSample: 10,
		log:        logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tracker) goalPath() string {
	return filepath.Join(t.dataDir, GoalFileName)
}

func (t *Tracker) historyPath() string {
	return filepath.Join(t.dataDir, HistoryFileName)
}

// Current returns the current goal, or nil when no goal has been set.
func (t *Tracker) Current() (*Goal, error) {
	var g Goal
	found, err := record.Read(t.goalPath(), &g)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &g, nil
}

// History returns up to limit history entries, newest first. A limit <= 0
// returns all retained entries.
func (t *Tracker) History(limit int) ([]HistoryEntry, error) {
	entries, err := t.loadHistory()
	if err != nil {
		return nil, err
	}
	// Stored oldest first; present newest first.
	out := make([]HistoryEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		out = append(out, entries[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Validate checks a proposed goal and returns the issues found, if any. The
// text is trimmed before checking; bounds are measured in runes.
func (t *Tracker) Validate(text string) []Issue {
	trimmed := strings.TrimSpace(text)
	var issues []Issue
	if trimmed == "" {
		return append(issues, Issue{Field: "text", Message: "goal must not be empty"})
	}
	runes := []rune(trimmed)
	if len(runes) < t.minLength {
		issues = append(issues, Issue{
			Field:   "text",
			Message: fmt.Sprintf("goal must be at least %d characters", t.minLength),
		})
	}
	if len(runes) > t.maxLength {
		issues = append(issues, Issue{
			Field:   "text",
			Message: fmt.Sprintf("goal must be at most %d characters", t.maxLength),
		})
	}
	if len(runes) > 0 && !isTerminal(runes[len(runes)-1]) {
		issues = append(issues, Issue{
			Field:   "text",
			Message: "goal must end with '.', '!' or '?'",
		})
	}
	return issues
}

// Update validates newGoal and, when it passes, persists it as the current
// goal and appends a history entry. Validation failures come back as Issues
// on the result with a nil error.
func (t *Tracker) Update(newGoal, source string, metadata map[string]string) (*UpdateResult, error) {
	if issues := t.Validate(newGoal); len(issues) > 0 {
		t.log.Debug("goal rejected", "source", source, "issues", len(issues))
		return &UpdateResult{Issues: issues}, nil
	}
	trimmed := strings.TrimSpace(newGoal)

	old, err := t.Current()
	if err != nil {
		return nil, err
	}
	oldText := ""
	if old != nil {
		oldText = old.Text
	}

	metrics := t.compare(oldText, trimmed)
	now := time.Now().UTC()
	entry := HistoryEntry{
		ID:        uuid.NewString(),
		Timestamp: now,
		Source:    source,
		OldGoal:   oldText,
		NewGoal:   trimmed,
		Metrics:   metrics,
	}

	history, err := t.loadHistory()
	if err != nil {
		return nil, err
	}
	history = append(history, entry)
	if len(history) > t.retention {
		history = history[len(history)-t.retention:]
	}
	if err := record.Write(t.historyPath(), history); err != nil {
		return nil, errors.Wrap(err, "writing goal history")
	}

	g := Goal{Text: trimmed, UpdatedAt: now, Source: source, Metadata: metadata}
	if err := record.Write(t.goalPath(), &g); err != nil {
		return nil, errors.Wrap(err, "writing goal")
	}

	t.log.Info("goal updated",
		"source", source,
		"similarity", metrics.Similarity,
		"length_change", metrics.LengthChange)

	return &UpdateResult{Goal: &g, Entry: &entry, Metrics: &metrics}, nil
}

// Revert looks up a history entry and re-applies its OldGoal as a forward
// update with source "revert". A missing entry yields Reverted=false rather
// than an error, since another session may have pruned or rewritten history.
func (t *Tracker) Revert(entryID string) (*RevertResult, error) {
	history, err := t.loadHistory()
	if err != nil {
		return nil, err
	}
	var target *HistoryEntry
	for i := range history {
		if history[i].ID == entryID {
			target = &history[i]
			break
		}
	}
	if target == nil {
		return &RevertResult{
			Reverted: false,
			Reason:   fmt.Sprintf("history entry %s not found", entryID),
		}, nil
	}

	res, err := t.Update(target.OldGoal, SourceRevert, nil)
	if err != nil {
		return nil, err
	}
	if !res.Accepted() {
		return &RevertResult{
			Reverted: false,
			Reason:   "previous goal no longer passes validation",
			Result:   res,
		}, nil
	}
	return &RevertResult{Reverted: true, Result: res}, nil
}

// compare builds the change metrics between two goal texts.
func (t *Tracker) compare(before, after string) ChangeMetrics {
	added, removed := wordDiff(before, after, t.wordSample)
	return ChangeMetrics{
		LengthChange: len([]rune(after)) - len([]rune(before)),
		WordChange:   len(tokenize(after)) - len(tokenize(before)),
		AddedWords:   added,
		RemovedWords: removed,
		Similarity:   Similarity(before, after),
	}
}

func (t *Tracker) loadHistory() ([]HistoryEntry, error) {
	var entries []HistoryEntry
	if _, err := record.Read(t.historyPath(), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
