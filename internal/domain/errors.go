package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent error conditions of a hostctl operation.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrNotFound is returned when the target file does not exist.
	ErrNotFound = errors.New("hostctl: file not found")

	// ErrPermissionDenied is returned when the process may not read or write the target file.
	ErrPermissionDenied = errors.New("hostctl: permission denied")

	// ErrLockTimeout is returned when the cross-process lock is not acquired in time.
	ErrLockTimeout = errors.New("hostctl: lock timeout")

	// ErrMalformedPath is returned for an empty, invalid, or non-regular file argument.
	ErrMalformedPath = errors.New("hostctl: malformed path")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("hostctl: invalid configuration")
)

// PathError records a failed operation on a target file.
// It matches both its Kind and its underlying cause with errors.Is.
type PathError struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *PathError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: %s %s", e.Kind, e.Op, e.Path)
	}
	return fmt.Sprintf("%v: %s %s: %v", e.Kind, e.Op, e.Path, e.Err)
}

// Unwrap returns the error kind and the underlying cause.
func (e *PathError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
