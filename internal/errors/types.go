// Package errors defines the failure taxonomy of the generator. Every error a
// user can cause is a *ComponentError; anything else is an internal failure.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a ComponentError.
type Kind string

const (
	KindConfigParse      Kind = "config_parse"
	KindInvalidName      Kind = "invalid_name"
	KindMissingParent    Kind = "missing_parent"
	KindComponentExists  Kind = "component_exists"
	KindTemplateNotFound Kind = "template_not_found"
	KindFormatting       Kind = "formatting"
	KindWrite            Kind = "write"
)

// Error codes, one per kind.
const (
	CodeConfigParse      = "ERR_CONFIG_PARSE"
	CodeInvalidName      = "ERR_INVALID_NAME"
	CodeMissingParent    = "ERR_MISSING_PARENT_DIR"
	CodeComponentExists  = "ERR_COMPONENT_EXISTS"
	CodeTemplateNotFound = "ERR_TEMPLATE_NOT_FOUND"
	CodeFormatting       = "ERR_FORMATTING"
	CodeWrite            = "ERR_WRITE"
)

// ComponentError is a structured error with enough context to print a
// helpful message.
type ComponentError struct {
	Kind        Kind
	Code        string
	Message     string
	Path        string
	Hint        string
	Cause       error
	Recoverable bool
}

// Error implements the error interface.
func (e *ComponentError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}
	if e.Path != "" {
		parts = append(parts, e.Path+":")
	}
	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")
	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *ComponentError) Unwrap() error {
	return e.Cause
}

// Is matches any *ComponentError of the same kind, so the sentinels below
// work with errors.Is.
func (e *ComponentError) Is(target error) bool {
	var t *ComponentError
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}

	return false
}

// WithHint attaches a remediation hint shown under the message.
func (e *ComponentError) WithHint(hint string) *ComponentError {
	e.Hint = hint

	return e
}

// Sentinels for errors.Is.
var (
	ErrConfigParse      = &ComponentError{Kind: KindConfigParse, Code: CodeConfigParse}
	ErrInvalidName      = &ComponentError{Kind: KindInvalidName, Code: CodeInvalidName}
	ErrMissingParent    = &ComponentError{Kind: KindMissingParent, Code: CodeMissingParent}
	ErrComponentExists  = &ComponentError{Kind: KindComponentExists, Code: CodeComponentExists}
	ErrTemplateNotFound = &ComponentError{Kind: KindTemplateNotFound, Code: CodeTemplateNotFound}
	ErrFormatting       = &ComponentError{Kind: KindFormatting, Code: CodeFormatting}
	ErrWrite            = &ComponentError{Kind: KindWrite, Code: CodeWrite}
)

// NewConfigParseError reports an override file that exists but is not valid.
func NewConfigParseError(path, message string, cause error) *ComponentError {
	return &ComponentError{
		Kind:    KindConfigParse,
		Code:    CodeConfigParse,
		Message: message,
		Path:    path,
		Cause:   cause,
	}
}

// NewInvalidNameError reports a component name that cannot be used.
func NewInvalidNameError(name, message string) *ComponentError {
	return &ComponentError{
		Kind:    KindInvalidName,
		Code:    CodeInvalidName,
		Message: fmt.Sprintf("invalid component name %q: %s", name, message),
	}
}

// NewMissingParentError reports a missing components directory.
func NewMissingParentError(dir string) *ComponentError {
	return &ComponentError{
		Kind:        KindMissingParent,
		Code:        CodeMissingParent,
		Message:     fmt.Sprintf("no parent \"components\" directory found at '%s'", dir),
		Path:        dir,
		Hint:        "Did you mean to set one with '--dir <pathToDirectory>'?",
		Recoverable: true,
	}
}

// NewComponentExistsError reports a component directory that is already there.
func NewComponentExistsError(dir string) *ComponentError {
	return &ComponentError{
		Kind:    KindComponentExists,
		Code:    CodeComponentExists,
		Message: fmt.Sprintf("looks like this component already exists! There's already a component at '%s'", dir),
		Path:    dir,
		Hint:    "Please delete this directory and try again.",
	}
}

// NewTemplateNotFoundError reports a template path that cannot be read.
func NewTemplateNotFoundError(path string, cause error) *ComponentError {
	return &ComponentError{
		Kind:    KindTemplateNotFound,
		Code:    CodeTemplateNotFound,
		Message: "template not found",
		Path:    path,
		Cause:   cause,
		Hint:    "Check the --type and --extension combination, or the templatesDir setting.",
	}
}

// NewFormattingError reports template text the formatter rejected.
func NewFormattingError(path, message string) *ComponentError {
	return &ComponentError{
		Kind:    KindFormatting,
		Code:    CodeFormatting,
		Message: message,
		Path:    path,
	}
}

// NewWriteError reports a failed directory or file creation.
func NewWriteError(path string, cause error) *ComponentError {
	return &ComponentError{
		Kind:    KindWrite,
		Code:    CodeWrite,
		Message: "failed to write",
		Path:    path,
		Cause:   cause,
	}
}

// KindOf returns the kind of err, or "" when err is not a ComponentError.
func KindOf(err error) Kind {
	var ce *ComponentError
	if errors.As(err, &ce) {
		return ce.Kind
	}

	return ""
}

// IsUserFacing reports whether err should be printed to the user and the
// process should still exit cleanly.
func IsUserFacing(err error) bool {
	var ce *ComponentError
	return errors.As(err, &ce)
}

// IsRecoverable checks if an error is recoverable.
func IsRecoverable(err error) bool {
	var ce *ComponentError
	if errors.As(err, &ce) {
		return ce.Recoverable
	}

	return false
}
