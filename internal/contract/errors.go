package contract

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure raised while building a commit history.
type ErrorKind string

// All error kinds surfaced by the acquisition paths.
const (
	InvalidInput  ErrorKind = "INVALID_INPUT"  // malformed URL, bad path, non-positive count, bad config
	NotFound      ErrorKind = "NOT_FOUND"      // zero commits
	RemoteError   ErrorKind = "REMOTE_ERROR"   // network, HTTP status or response shape failures
	InternalError ErrorKind = "INTERNAL_ERROR" // unexpected local traversal failures
)

// Sentinels for errors.Is checks. They match any HistoryError of the same kind.
var (
	ErrInvalidInput = &HistoryError{Kind: InvalidInput}
	ErrNotFound     = &HistoryError{Kind: NotFound}
	ErrRemote       = &HistoryError{Kind: RemoteError}
	ErrInternal     = &HistoryError{Kind: InternalError}
)

// HistoryError is the error returned by every acquisition function.
// Context names the subject of the failure: a path, an owner/repo pair or a commit URL.
type HistoryError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Context string    `json:"context,omitempty"`
	Err     error     `json:"-"`
}

// Error implements the error interface.
func (e *HistoryError) Error() string {
	msg := string(e.Kind)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *HistoryError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for this error's kind.
func (e *HistoryError) Is(target error) bool {
	t, ok := target.(*HistoryError)
	if !ok {
		return false
	}
	if t.Message != "" || t.Context != "" || t.Err != nil {
		return false
	}
	return t.Kind == e.Kind
}

// WithContext sets the subject of the failure and returns the same error.
func (e *HistoryError) WithContext(subject string) *HistoryError {
	e.Context = subject
	return e
}

// NewError creates a HistoryError with a formatted message.
func NewError(kind ErrorKind, format string, args ...any) *HistoryError {
	return &HistoryError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError creates a HistoryError around an existing cause.
func WrapError(err error, kind ErrorKind, format string, args ...any) *HistoryError {
	return &HistoryError{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of the first HistoryError in the chain, or "" if there is none.
func KindOf(err error) ErrorKind {
	var he *HistoryError
	if errors.As(err, &he) {
		return he.Kind
	}
	return ""
}

// ExitCode maps an error onto the process exit status used by the CLI.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch KindOf(err) {
	case InvalidInput:
		return 2
	case NotFound:
		return 3
	case RemoteError:
		return 4
	case InternalError:
		return 5
	default:
		return 1
	}
}
