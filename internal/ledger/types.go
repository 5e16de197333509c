package ledger

import "time"

// Priority represents the relative importance of a task.
type Priority string

const (
	// PriorityLow marks work that can wait.
	PriorityLow Priority = "low"

	// PriorityMedium is the default when no priority is given.
	PriorityMedium Priority = "medium"

	// PriorityHigh marks work that should be picked up next.
	PriorityHigh Priority = "high"
)

// String returns the string representation of the priority.
func (p Priority) String() string {
	return string(p)
}

// Valid reports whether p is one of the allowed priorities.
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Status represents the state of a task.
type Status string

const (
	// StatusPending indicates the task is waiting to be completed.
	StatusPending Status = "pending"

	// StatusCompleted is terminal; a completed task cannot be reopened.
	StatusCompleted Status = "completed"
)

// String returns the string representation of the task status.
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true if this status represents a final state.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted
}

// Task is a unit of planned work. Tasks reference sessions by name but are
// independent of them: closing a session does not touch its tasks.
type Task struct {
	// ID is a caller-supplied or generated token matching [A-Za-z0-9-_]+.
	// Immutable once assigned.
	ID string `json:"id"`

	// Title is required and non-empty.
	Title string `json:"title"`

	// Description elaborates on the title.
	Description string `json:"description,omitempty"`

	// Priority is low, medium, or high.
	Priority Priority `json:"priority"`

	// EstimatedTime is a free-text duration estimate, e.g. "2h".
	EstimatedTime string `json:"estimated_time,omitempty"`

	// Tags are free-text labels for filtering.
	Tags []string `json:"tags,omitempty"`

	// AssignedSession names the session expected to pick this up, if any.
	AssignedSession string `json:"assigned_session,omitempty"`

	// Status is pending or completed.
	Status Status `json:"status"`

	// CreatedAt is when the task was added.
	CreatedAt time.Time `json:"created_at"`

	// CompletedAt is set when the task reaches the terminal state.
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// CompletingSession names the session that completed the task.
	CompletingSession string `json:"completing_session,omitempty"`

	// Notes carries free-text completion notes.
	Notes string `json:"notes,omitempty"`
}

// Input carries the fields for adding a task. ID and Priority are optional;
// an omitted ID is generated and an omitted Priority defaults to medium.
type Input struct {
	ID              string
	Title           string
	Description     string
	Priority        Priority
	EstimatedTime   string
	Tags            []string
	AssignedSession string
}

// CompletionInfo carries the metadata recorded when a task is completed.
type CompletionInfo struct {
	Session string
	Notes   string
}

// Lists is a snapshot of the ledger split by status.
type Lists struct {
	Pending   []Task `json:"pending"`
	Completed []Task `json:"completed"`
}
