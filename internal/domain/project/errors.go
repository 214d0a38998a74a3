package project

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes of the layout pass.
const (
	ErrCodePathResolution       = "PATH_RESOLUTION"
	ErrCodeDuplicateProjectName = "DUPLICATE_PROJECT_NAME"
	ErrCodeInvalidProjectName   = "INVALID_PROJECT_NAME"
	ErrCodeUnknownProject       = "UNKNOWN_PROJECT"
	ErrCodeCycle                = "CYCLE"
	ErrCodeIO                   = "IO"
)

// Sentinels matched by errors.Is against an *Error of the same code.
var (
	ErrPathResolution       = errors.New("path cannot be resolved")
	ErrDuplicateProjectName = errors.New("duplicate project name")
	ErrInvalidProjectName   = errors.New("invalid project name")
	ErrUnknownProject       = errors.New("unknown project")
	ErrCycle                = errors.New("evaluation order cycle")
	ErrIO                   = errors.New("filesystem operation failed")
)

var sentinels = map[string]error{
	ErrCodePathResolution:       ErrPathResolution,
	ErrCodeDuplicateProjectName: ErrDuplicateProjectName,
	ErrCodeInvalidProjectName:   ErrInvalidProjectName,
	ErrCodeUnknownProject:       ErrUnknownProject,
	ErrCodeCycle:                ErrCycle,
	ErrCodeIO:                   ErrIO,
}

// Error is a layout failure with an actionable suggestion.
type Error struct {
	Code       string
	Message    string
	Project    string
	Suggestion string
	Underlying error
}

// Error returns the message, prefixed with the project when known.
func (e *Error) Error() string {
	msg := e.Message
	if e.Project != "" {
		msg = fmt.Sprintf("project %q: %s", e.Project, msg)
	}
	if e.Underlying != nil {
		msg += ": " + e.Underlying.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Underlying
}

// Is matches the sentinel that belongs to e.Code.
func (e *Error) Is(target error) bool {
	sentinel, ok := sentinels[e.Code]
	return ok && target == sentinel
}

// Format returns a multi-line description including code and suggestion.
func (e *Error) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if e.Project != "" {
		fmt.Fprintf(&b, "\n  Project: %s", e.Project)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n  Suggestion: %s", e.Suggestion)
	}
	if e.Underlying != nil {
		fmt.Fprintf(&b, "\n  Cause: %s", e.Underlying)
	}
	return b.String()
}

// NewPathResolutionError reports a path that cannot be resolved or used.
func NewPathResolutionError(path, reason string, err error) *Error {
	return &Error{
		Code:       ErrCodePathResolution,
		Message:    fmt.Sprintf("cannot resolve %q: %s", path, reason),
		Suggestion: "Point the output root at a directory outside the root project's build tree, e.g. \"../../build\".",
		Underlying: err,
	}
}

// NewProtectedPathError reports an output root that would take protected
// along when deleted.
func NewProtectedPathError(path, protected string) *Error {
	return &Error{
		Code:       ErrCodePathResolution,
		Message:    fmt.Sprintf("output root %q contains source directory %q", path, protected),
		Suggestion: "Point the output root at a build-only directory such as \"../../build\"; clean never deletes sources or the manifest.",
	}
}

// NewDuplicateProjectNameError reports two projects sharing a name.
func NewDuplicateProjectNameError(name string) *Error {
	return &Error{
		Code:       ErrCodeDuplicateProjectName,
		Message:    "project name is used more than once",
		Project:    name,
		Suggestion: "Project names must be unique within a build; each one becomes its own output directory.",
	}
}

// NewInvalidProjectNameError reports a name that cannot be a directory name.
func NewInvalidProjectNameError(name, reason string) *Error {
	return &Error{
		Code:       ErrCodeInvalidProjectName,
		Message:    reason,
		Project:    name,
		Suggestion: "Use a plain name without path separators, such as \"camera-plugin\".",
	}
}

// NewUnknownProjectError reports a reference to a project outside the graph.
func NewUnknownProjectError(name string) *Error {
	return &Error{
		Code:       ErrCodeUnknownProject,
		Message:    "project is not part of the build",
		Project:    name,
		Suggestion: "Check the evaluation anchor and the project list in the manifest.",
	}
}

// NewCycleError reports an evaluation order cycle along path.
func NewCycleError(path []string) *Error {
	return &Error{
		Code:       ErrCodeCycle,
		Message:    "evaluation order cycle: " + strings.Join(path, " -> "),
		Suggestion: "A project cannot be evaluated after itself; remove one of the edges.",
	}
}

// NewIOError reports a failed filesystem operation, such as "delete", on
// path.
func NewIOError(op, path string, err error) *Error {
	return &Error{
		Code:       ErrCodeIO,
		Message:    fmt.Sprintf("cannot %s %s", op, path),
		Suggestion: "Close programs holding files under the output root and check permissions.",
		Underlying: err,
	}
}
