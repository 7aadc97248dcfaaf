package models

import (
	"errors"
	"fmt"
	"io/fs"
	"time"
)

// MergeStatus represents the terminal outcome of a merge run
type MergeStatus string

const (
	// StatusSuccess indicates all inputs were written to the output
	StatusSuccess MergeStatus = "success"
	// StatusFailed indicates the merge aborted; the output file (if any
	// bytes were written) is left in its partial state
	StatusFailed MergeStatus = "failed"
)

// ExitCode returns the process exit code for the merge status
func (s MergeStatus) ExitCode() int {
	switch s {
	case StatusSuccess:
		return 0
	case StatusFailed:
		return 2
	default:
		return 2
	}
}

// ErrorKind categorizes merge failures
type ErrorKind string

const (
	// KindInvalidRequest indicates a validation failure before any I/O
	KindInvalidRequest ErrorKind = "invalid_request"
	// KindNotFound indicates a missing input file
	KindNotFound ErrorKind = "not_found"
	// KindPermissionDenied indicates an input or output that cannot be accessed
	KindPermissionDenied ErrorKind = "permission_denied"
	// KindIOError indicates a read or write failure mid-stream
	KindIOError ErrorKind = "io_error"
)

// KindFromError classifies a filesystem error into an ErrorKind.
// Anything that is neither a missing file nor a permission problem is
// reported as a generic I/O error.
func KindFromError(err error) ErrorKind {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission):
		return KindPermissionDenied
	default:
		return KindIOError
	}
}

// MergeError identifies the offending path and failure category of an
// aborted merge. None are retried; a single failure is terminal.
type MergeError struct {
	// Path is the input or output file the failure occurred on
	Path string

	// Kind is the failure category
	Kind ErrorKind

	// Err is the underlying error, if any
	Err error
}

func (e *MergeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Path)
}

// Unwrap returns the underlying error for errors.Is/As chains
func (e *MergeError) Unwrap() error {
	return e.Err
}

// MergeResult is the terminal outcome of one merge run, produced exactly
// once, after all progress updates.
type MergeResult struct {
	// RequestID echoes the request this result belongs to
	RequestID string

	// Status is success or failed
	Status MergeStatus

	// OutputPath is the output file path
	OutputPath string

	// BytesWritten is the total byte count written to the output,
	// including partial writes before a failure
	BytesWritten int64

	// FilesMerged is the number of inputs fully written
	FilesMerged int

	// Checksum is the hex SHA-256 of the output (only on success, and
	// only when requested)
	Checksum string

	// Duration is the wall-clock time of the run
	Duration time.Duration

	// Err describes the failure; nil on success
	Err *MergeError
}

// Success returns true if the merge completed
func (r *MergeResult) Success() bool {
	return r.Status == StatusSuccess
}
