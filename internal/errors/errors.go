// Package errors provides centralized error definitions and error handling
// utilities for the cohort codebase. It defines domain-specific sentinel
// errors, semantic error types, and error classification helpers.
//
// # Error Classes
//
// Cohort distinguishes three classes of failure:
//
// Programmer errors (invalid name, duplicate session, task/goal validation,
// not-found) are returned as typed errors and abort the triggering call.
//
// Contention outcomes (file lock conflicts, revert target missing) are NOT
// errors; the owning packages return structured result values instead.
//
// Corrupt on-disk records are surfaced distinctly from "record absent" so
// callers can choose between failing hard and treating the project as
// uninitialized.
//
// # Usage
//
// Creating errors:
//
//	// Semantic error
//	err := errors.NewNotFoundError("session", "frontend")
//
//	// Validation error with field context
//	err := errors.NewValidationError("title", "must not be empty")
//
// Checking errors:
//
//	if errors.Is(err, errors.ErrSessionNotFound) { ... }
//
//	var vErr *errors.ValidationError
//	if errors.As(err, &vErr) { ... }
//
//	if errors.IsNotFound(err) { ... }
//	if errors.IsCorrupt(err) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Session-related sentinel errors
var (
	// ErrSessionNotFound indicates that no live session has the given name.
	ErrSessionNotFound = New("session not found")
	// ErrDuplicateSession indicates that a live session already uses the name.
	ErrDuplicateSession = New("session already exists")
	// ErrInvalidName indicates that a session name is empty or unusable
	// after sanitization.
	ErrInvalidName = New("invalid session name")
)

// Task-related sentinel errors
var (
	// ErrTaskNotFound indicates that no pending task has the given ID.
	ErrTaskNotFound = New("task not found")
	// ErrInvalidTask indicates that task input failed validation.
	ErrInvalidTask = New("invalid task")
)

// Record store sentinel errors
var (
	// ErrRecordCorrupt indicates that an on-disk record exists but cannot
	// be parsed. Distinct from the record being absent.
	ErrRecordCorrupt = New("record corrupted")
)

// -----------------------------------------------------------------------------
// Semantic Error Types
// -----------------------------------------------------------------------------

// NotFoundError indicates that a named resource does not exist.
type NotFoundError struct {
	// Resource is the kind of resource, e.g. "session" or "task".
	Resource string
	// Name identifies the missing resource.
	Name string
}

// NewNotFoundError creates a NotFoundError for the given resource and name.
func NewNotFoundError(resource, name string) *NotFoundError {
	return &NotFoundError{Resource: resource, Name: name}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Name)
}

// Is reports whether this error matches the target sentinel.
func (e *NotFoundError) Is(target error) bool {
	switch e.Resource {
	case "session":
		return target == ErrSessionNotFound
	case "task":
		return target == ErrTaskNotFound
	}
	return false
}

// AlreadyExistsError indicates that a resource with the given name exists.
type AlreadyExistsError struct {
	Resource string
	Name     string
}

// NewAlreadyExistsError creates an AlreadyExistsError.
func NewAlreadyExistsError(resource, name string) *AlreadyExistsError {
	return &AlreadyExistsError{Resource: resource, Name: name}
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Resource, e.Name)
}

// Is reports whether this error matches the target sentinel.
func (e *AlreadyExistsError) Is(target error) bool {
	return e.Resource == "session" && target == ErrDuplicateSession
}

// ValidationError indicates that input failed validation. Field names the
// offending field; Reason describes what is wrong with it.
type ValidationError struct {
	Field  string
	Reason string
	err    error
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// WithSentinel attaches a sentinel so errors.Is matches it.
func (e *ValidationError) WithSentinel(sentinel error) *ValidationError {
	e.err = sentinel
	return e
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap returns the attached sentinel, if any.
func (e *ValidationError) Unwrap() error {
	return e.err
}

// CorruptError indicates that an on-disk record could not be parsed.
type CorruptError struct {
	Path string
	Err  error
}

// NewCorruptError wraps a parse failure for the record at path.
func NewCorruptError(path string, err error) *CorruptError {
	return &CorruptError{Path: path, Err: err}
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("record corrupted: %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying parse error.
func (e *CorruptError) Unwrap() error {
	return e.Err
}

// Is reports whether this error matches ErrRecordCorrupt.
func (e *CorruptError) Is(target error) bool {
	return target == ErrRecordCorrupt
}

// -----------------------------------------------------------------------------
// Classification Helpers
// -----------------------------------------------------------------------------

// IsNotFound reports whether err indicates a missing resource.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var nf *NotFoundError
	if As(err, &nf) {
		return true
	}
	return Is(err, ErrSessionNotFound) || Is(err, ErrTaskNotFound)
}

// IsValidation reports whether err indicates invalid input.
func IsValidation(err error) bool {
	if err == nil {
		return false
	}
	var v *ValidationError
	if As(err, &v) {
		return true
	}
	return Is(err, ErrInvalidName) || Is(err, ErrInvalidTask)
}

// IsCorrupt reports whether err indicates a corrupted on-disk record.
func IsCorrupt(err error) bool {
	return err != nil && Is(err, ErrRecordCorrupt)
}

// Wrap adds a message prefix while preserving the error chain.
// Returns nil if err is nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf adds a formatted message prefix while preserving the error chain.
// Returns nil if err is nil.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
