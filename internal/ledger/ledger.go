// Package ledger tracks planned work as a pending/completed task list
// persisted in a single JSON record. The only status transition is pending
// to completed; completion is terminal. Each operation performs its own
// read-modify-write under an flock(2) guard so that concurrent cohort
// processes serialize their ledger updates.
package ledger

import (
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/Iron-Ham/cohort/internal/errors"
	"github.com/Iron-Ham/cohort/internal/logging"
	"github.com/Iron-Ham/cohort/internal/record"
)

// LedgerFileName is the task ledger record within the data directory.
const LedgerFileName = "tasks.json"

// idPattern constrains caller-supplied task IDs.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9-_]+$`)

// Ledger provides task CRUD rooted at a data directory.
type Ledger struct {
	dataDir string
	log     *logging.Logger
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLogger sets the logger used for ledger operations.
func WithLogger(log *logging.Logger) Option {
	return func(l *Ledger) {
		l.log = log.WithComponent("ledger")
	}
}

// New creates a Ledger rooted at the given data directory.
func New(dataDir string, opts ...Option) *Ledger {
	l := &Ledger{
		dataDir: dataDir,
		log:     logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// path returns the ledger record path.
func (l *Ledger) path() string {
	return filepath.Join(l.dataDir, LedgerFileName)
}

// Add validates the input and appends a new pending task. Title must be
// non-empty, priority must be low/medium/high (defaulting to medium when
// omitted), and a caller-supplied ID must match [A-Za-z0-9-_]+ and be
// unused. Returns the stored task.
func (l *Ledger) Add(input Input) (*Task, error) {
	if input.Title == "" {
		return nil, errors.NewValidationError("title", "must not be empty").
			WithSentinel(errors.ErrInvalidTask)
	}

	priority := input.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.Valid() {
		return nil, errors.NewValidationError("priority", "must be low, medium, or high").
			WithSentinel(errors.ErrInvalidTask)
	}

	id := input.ID
	if id == "" {
		id = uuid.NewString()
	} else if !idPattern.MatchString(id) {
		return nil, errors.NewValidationError("id", "must match [A-Za-z0-9-_]+").
			WithSentinel(errors.ErrInvalidTask)
	}

	fl := NewFileLock(l.ensureDir())
	if err := fl.Lock(); err != nil {
		return nil, errors.Wrap(err, "acquire ledger lock")
	}
	defer func() { _ = fl.Unlock() }()

	lists, err := l.load()
	if err != nil {
		return nil, err
	}

	for _, t := range append(lists.Pending, lists.Completed...) {
		if t.ID == id {
			return nil, errors.NewValidationError("id", "already in use").
				WithSentinel(errors.ErrInvalidTask)
		}
	}

	task := Task{
		ID:              id,
		Title:           input.Title,
		Description:     input.Description,
		Priority:        priority,
		EstimatedTime:   input.EstimatedTime,
		Tags:            input.Tags,
		AssignedSession: input.AssignedSession,
		Status:          StatusPending,
		CreatedAt:       time.Now(),
	}
	lists.Pending = append(lists.Pending, task)

	if err := record.Write(l.path(), lists); err != nil {
		return nil, errors.Wrap(err, "persist ledger")
	}

	l.log.Info("task added", "task", task.ID, "priority", priority.String())
	return &task, nil
}

// Complete moves a pending task to the completed list, recording when and
// by whom. Returns ErrTaskNotFound if no pending task has the ID; a second
// Complete of the same ID therefore also fails with ErrTaskNotFound.
func (l *Ledger) Complete(id string, info CompletionInfo) (*Task, error) {
	fl := NewFileLock(l.ensureDir())
	if err := fl.Lock(); err != nil {
		return nil, errors.Wrap(err, "acquire ledger lock")
	}
	defer func() { _ = fl.Unlock() }()

	lists, err := l.load()
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, t := range lists.Pending {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, errors.NewNotFoundError("task", id)
	}

	task := lists.Pending[idx]
	now := time.Now()
	task.Status = StatusCompleted
	task.CompletedAt = &now
	task.CompletingSession = info.Session
	task.Notes = info.Notes

	lists.Pending = append(lists.Pending[:idx], lists.Pending[idx+1:]...)
	lists.Completed = append(lists.Completed, task)

	if err := record.Write(l.path(), lists); err != nil {
		return nil, errors.Wrap(err, "persist ledger")
	}

	l.log.Info("task completed", "task", task.ID, "session", info.Session)
	return &task, nil
}

// List returns the pending and completed tasks in insertion order.
func (l *Ledger) List() (*Lists, error) {
	fl := NewFileLock(l.ensureDir())
	if err := fl.Lock(); err != nil {
		return nil, errors.Wrap(err, "acquire ledger lock")
	}
	defer func() { _ = fl.Unlock() }()

	return l.load()
}

// load reads the ledger record, returning empty lists when it is absent.
// Callers must hold the file lock.
func (l *Ledger) load() (*Lists, error) {
	var lists Lists
	found, err := record.Read(l.path(), &lists)
	if err != nil {
		return nil, err
	}
	if !found {
		return &Lists{Pending: []Task{}, Completed: []Task{}}, nil
	}
	if lists.Pending == nil {
		lists.Pending = []Task{}
	}
	if lists.Completed == nil {
		lists.Completed = []Task{}
	}
	return &lists, nil
}

// ensureDir creates the data directory if needed and returns it. The flock
// file must live somewhere, even before the first record is written.
func (l *Ledger) ensureDir() string {
	_ = os.MkdirAll(l.dataDir, 0755)
	return l.dataDir
}
