package workspace

import (
	"fmt"
	"strings"
)

// Error codes for categorization.
const (
	ErrCodeManifestNotFound = "MANIFEST_NOT_FOUND"
	ErrCodeManifestParse    = "MANIFEST_PARSE"
	ErrCodeManifestInvalid  = "MANIFEST_INVALID"
)

// Sentinels for errors.Is.
var (
	ErrManifestNotFound = &UserError{Code: ErrCodeManifestNotFound}
	ErrManifestParse    = &UserError{Code: ErrCodeManifestParse}
	ErrManifestInvalid  = &UserError{Code: ErrCodeManifestInvalid}
)

// UserError is a manifest problem the user can fix.
type UserError struct {
	Code       string // e.g. "MANIFEST_PARSE"
	Message    string
	Context    string // manifest path or field
	Suggestion string
	Underlying error
}

// Error returns the message with its location.
func (e *UserError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Context != "" {
		fmt.Fprintf(&b, " (at %s)", e.Context)
	}
	if e.Underlying != nil {
		fmt.Fprintf(&b, ": %v", e.Underlying)
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *UserError) Unwrap() error {
	return e.Underlying
}

// Is matches on the error code.
func (e *UserError) Is(target error) bool {
	if t, ok := target.(*UserError); ok {
		return e.Code == t.Code
	}
	return false
}

// Format returns the error with code, location and suggestion.
func (e *UserError) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if e.Context != "" {
		fmt.Fprintf(&b, "\n  Location: %s", e.Context)
	}
	if e.Underlying != nil {
		fmt.Fprintf(&b, "\n  Cause: %v", e.Underlying)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n  Suggestion: %s", e.Suggestion)
	}
	return b.String()
}

// WithSuggestion returns a copy of e with suggestion set.
func (e *UserError) WithSuggestion(suggestion string) *UserError {
	out := *e
	out.Suggestion = suggestion
	return &out
}

// NewManifestNotFoundError creates an error for a missing manifest.
func NewManifestNotFoundError(path string) *UserError {
	return &UserError{
		Code:       ErrCodeManifestNotFound,
		Message:    fmt.Sprintf("workspace manifest not found: %s", path),
		Context:    path,
		Suggestion: "Pass --manifest or export the project graph to buildlayout.yaml from the host build.",
	}
}

// NewManifestParseError creates an error for undecodable manifests.
func NewManifestParseError(path string, err error) *UserError {
	return &UserError{
		Code:       ErrCodeManifestParse,
		Message:    "failed to parse workspace manifest",
		Context:    path,
		Suggestion: "Check the file syntax and that only known keys (root, projects, name, dir, output_dir, plugins, namespace, java_toolchain, compile_steps) are used.",
		Underlying: err,
	}
}

// NewManifestInvalidError creates an error for a manifest that decodes but
// does not describe a usable project graph.
func NewManifestInvalidError(field, message string) *UserError {
	return &UserError{
		Code:    ErrCodeManifestInvalid,
		Message: fmt.Sprintf("%s: %s", field, message),
		Context: field,
	}
}

// WithUnderlying returns a copy of e wrapping err.
func (e *UserError) WithUnderlying(err error) *UserError {
	out := *e
	out.Underlying = err
	return &out
}
