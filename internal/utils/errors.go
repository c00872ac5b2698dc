package utils

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// stderrTailSize is how much of a failing tool's diagnostic output is kept
const stderrTailSize = 500

// ErrNoClips is returned when no usable clip is left to build a timeline from
var ErrNoClips = errors.New("no clips available")

// ExternalCallError wraps a failed call to a network service
type ExternalCallError struct {
	Service    string
	StatusCode int
	Err        error
}

func (e *ExternalCallError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s request failed with status %d: %v", e.Service, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s request failed: %v", e.Service, e.Err)
}

func (e *ExternalCallError) Unwrap() error {
	return e.Err
}

// ToolError reports a non-zero exit of an external command line tool
type ToolError struct {
	Tool   string
	Stderr string
	Err    error
}

// NewToolError keeps the last 500 characters of the tool's diagnostic output
func NewToolError(tool string, stderr string, err error) *ToolError {
	return &ToolError{
		Tool:   tool,
		Stderr: Tail(stderr, stderrTailSize),
		Err:    err,
	}
}

func (e *ToolError) Error() string {
	stderr := strings.TrimSpace(e.Stderr)
	if stderr == "" {
		return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("%s failed: %v\n%s", e.Tool, e.Err, stderr)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// Tail returns at most the last n bytes of s without splitting a UTF-8 sequence
func Tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	start := len(s) - n
	for start < len(s) && !utf8.RuneStart(s[start]) {
		start++
	}
	return s[start:]
}

// FailureKind classifies an error for run reports
func FailureKind(err error) string {
	var toolErr *ToolError
	var callErr *ExternalCallError
	var validationErr *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoClips):
		return "resource_exhausted"
	case errors.As(err, &toolErr):
		return "tool_execution"
	case errors.As(err, &validationErr):
		return "validation"
	case errors.As(err, &callErr):
		return "external_call"
	default:
		return "internal"
	}
}
