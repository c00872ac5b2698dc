package utils

import (
	"fmt"
	"os"
	"os/exec"
)

// ExecLookPath allows us to mock exec.LookPath in tests
var ExecLookPath = exec.LookPath

// ValidationError represents a validation error with context.
// It is also returned when a structured reply from an external service is
// malformed or misses required keys.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidateOutputPath validates an output directory and creates it when missing
func ValidateOutputPath(output string) error {
	if output == "" {
		return &ValidationError{
			Field:   "output",
			Message: "output path is required",
		}
	}

	fileInfo, err := os.Stat(output)
	if err == nil && !fileInfo.IsDir() {
		return &ValidationError{
			Field:   "output",
			Message: fmt.Sprintf("output must be a directory, not a file: %s", output),
		}
	}

	// Create output directory if it doesn't exist
	if err := os.MkdirAll(output, 0755); err != nil {
		return &ValidationError{
			Field:   "output",
			Message: "failed to create output directory",
			Err:     err,
		}
	}

	return nil
}

// ValidateRequiredDependency checks if a required command is available
func ValidateRequiredDependency(cmd string) error {
	if _, err := ExecLookPath(cmd); err != nil {
		return &ValidationError{
			Field:   cmd,
			Message: fmt.Sprintf("%s not found in PATH", cmd),
			Err:     err,
		}
	}
	return nil
}

// RequireKeys returns a ValidationError naming the first key missing from a decoded object
func RequireKeys(object map[string]interface{}, keys ...string) error {
	for _, key := range keys {
		if _, ok := object[key]; !ok {
			return &ValidationError{
				Field:   key,
				Message: "required key missing from reply",
			}
		}
	}
	return nil
}
