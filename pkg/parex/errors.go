package parex

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// Code identifies the kind of a failure.
// New codes may be added over time; callers should branch on
// Recoverable/Fatal rather than switching over every code.
type Code int

const (
	// CodePermissionDenied means the producer was not allowed to read an item
	CodePermissionDenied Code = iota + 1
	// CodeNotFound means an item vanished while it was being traversed
	CodeNotFound
	// CodeSymlinkLoop means a link cycle was detected
	CodeSymlinkLoop
	// CodeIO is any other read failure on a specific path
	CodeIO
	// CodeInvalidPattern means a predicate could not be built
	CodeInvalidPattern
	// CodeInvalidThreadCount means the configured thread count is below one
	CodeInvalidThreadCount
	// CodeInvalidSource means the producer is missing or unusable
	CodeInvalidSource
	// CodeThreadPool means the worker pool could not run
	CodeThreadPool
	// CodeSource wraps a failure raised by a producer
	CodeSource
	// CodeMatcher wraps a failure raised by a predicate
	CodeMatcher
)

var codeNames = map[Code]string{
	CodePermissionDenied:   "permission denied",
	CodeNotFound:           "path not found",
	CodeSymlinkLoop:        "symlink loop",
	CodeIO:                 "io error",
	CodeInvalidPattern:     "invalid pattern",
	CodeInvalidThreadCount: "invalid thread count",
	CodeInvalidSource:      "invalid source",
	CodeThreadPool:         "thread pool failure",
	CodeSource:             "source error",
	CodeMatcher:            "matcher error",
}

// String returns the human-readable code name
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// Sentinel errors for errors.Is comparisons against a *Error code
var (
	ErrPermissionDenied   = &Error{Code: CodePermissionDenied}
	ErrNotFound           = &Error{Code: CodeNotFound}
	ErrSymlinkLoop        = &Error{Code: CodeSymlinkLoop}
	ErrIO                 = &Error{Code: CodeIO}
	ErrInvalidPattern     = &Error{Code: CodeInvalidPattern}
	ErrInvalidThreadCount = &Error{Code: CodeInvalidThreadCount}
	ErrInvalidSource      = &Error{Code: CodeInvalidSource}
	ErrThreadPool         = &Error{Code: CodeThreadPool}
	ErrSource             = &Error{Code: CodeSource}
	ErrMatcher            = &Error{Code: CodeMatcher}
)

// Error is the failure type produced and consumed by the engine
type Error struct {
	// Code identifies the failure kind
	Code Code

	// Detail is free-form context such as the offending pattern or thread count
	Detail string

	// Err is the underlying cause, if any
	Err error

	path        string
	hasPath     bool
	recoverable bool
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Code.String()
	switch {
	case e.hasPath && e.Err != nil:
		return fmt.Sprintf("%s at %s: %v", msg, e.path, e.Err)
	case e.hasPath:
		return fmt.Sprintf("%s: %s", msg, e.path)
	case e.Detail != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", msg, e.Detail, e.Err)
	case e.Detail != "":
		return fmt.Sprintf("%s: %s", msg, e.Detail)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", msg, e.Err)
	default:
		return msg
	}
}

// Unwrap returns the wrapped cause for errors.Is/As compatibility
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a *Error with the same code.
// This lets errors.Is(err, parex.ErrNotFound) work for any not-found failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Path returns the path the failure is associated with, if any
func (e *Error) Path() (string, bool) {
	return e.path, e.hasPath
}

// Recoverable reports whether the run can continue after this failure
func (e *Error) Recoverable() bool {
	switch e.Code {
	case CodePermissionDenied, CodeNotFound, CodeSymlinkLoop, CodeIO:
		return true
	case CodeSource, CodeMatcher:
		return e.recoverable
	default:
		return false
	}
}

// Fatal reports whether this failure halts the run
func (e *Error) Fatal() bool {
	return !e.Recoverable()
}

func pathError(code Code, path string, err error) *Error {
	return &Error{Code: code, Err: err, path: path, hasPath: true}
}

// NewPathError creates a failure of any code tied to path.
// Producers outside the filesystem use it to keep the cause of a classified failure.
func NewPathError(code Code, path string, err error) *Error {
	return pathError(code, path, err)
}

// PermissionDenied creates a recoverable permission failure for path
func PermissionDenied(path string) *Error {
	return pathError(CodePermissionDenied, path, nil)
}

// NotFound creates a recoverable not-found failure for path
func NotFound(path string) *Error {
	return pathError(CodeNotFound, path, nil)
}

// SymlinkLoop creates a recoverable symlink-loop failure for path
func SymlinkLoop(path string) *Error {
	return pathError(CodeSymlinkLoop, path, nil)
}

// IOError creates a recoverable I/O failure for path wrapping err
func IOError(path string, err error) *Error {
	return pathError(CodeIO, path, err)
}

// InvalidPattern creates a fatal failure for a pattern that could not be compiled
func InvalidPattern(pattern string, err error) *Error {
	return &Error{Code: CodeInvalidPattern, Detail: pattern, Err: err}
}

// InvalidThreadCount creates a fatal failure for a bad thread count
func InvalidThreadCount(n int) *Error {
	return &Error{Code: CodeInvalidThreadCount, Detail: fmt.Sprintf("%d", n)}
}

// InvalidSource creates a fatal failure for a missing or unusable producer
func InvalidSource(detail string) *Error {
	return &Error{Code: CodeInvalidSource, Detail: detail}
}

// InvalidSourcePath creates a fatal failure for an unusable producer root
func InvalidSourcePath(path string, err error) *Error {
	return pathError(CodeInvalidSource, path, err)
}

// ThreadPool creates a fatal scheduling failure
func ThreadPool(detail string) *Error {
	return &Error{Code: CodeThreadPool, Detail: detail}
}

// SourceError wraps a failure raised by a producer.
// The caller decides whether the run may continue past it.
func SourceError(err error, recoverable bool) *Error {
	return &Error{Code: CodeSource, Err: err, recoverable: recoverable}
}

// MatcherError wraps a failure raised by a predicate.
// The caller decides whether the run may continue past it.
func MatcherError(err error, recoverable bool) *Error {
	return &Error{Code: CodeMatcher, Err: err, recoverable: recoverable}
}

// FromPathError classifies an OS or fs error raised while reading path
func FromPathError(path string, err error) *Error {
	if err == nil {
		return nil
	}

	var pe *Error
	if errors.As(err, &pe) {
		return pe
	}

	switch {
	case errors.Is(err, fs.ErrPermission):
		return pathError(CodePermissionDenied, path, err)
	case errors.Is(err, fs.ErrNotExist):
		return pathError(CodeNotFound, path, err)
	case errors.Is(err, syscall.ELOOP):
		return pathError(CodeSymlinkLoop, path, err)
	default:
		return IOError(path, err)
	}
}

// AsError converts any error into a *Error.
// Errors that are not already failures become fatal source errors,
// since an untagged collaborator failure has no default classification.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}

	var pe *Error
	if errors.As(err, &pe) {
		return pe
	}
	return SourceError(err, false)
}

// IsRecoverable reports whether err carries a recoverable failure
func IsRecoverable(err error) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Recoverable()
	}
	return false
}

// IsFatal reports whether err would halt a run
func IsFatal(err error) bool {
	return err != nil && !IsRecoverable(err)
}

// PathOf returns the path associated with err, if it carries a failure with one
func PathOf(err error) (string, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Path()
	}
	return "", false
}
