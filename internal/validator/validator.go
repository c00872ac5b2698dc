package validator

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/gnzdotmx/dailyshorts/internal/utils"
	"golang.org/x/sync/errgroup"
)

// execCommand allows us to mock exec.CommandContext in tests
var execCommand = exec.CommandContext

// ExternalTool represents an external command-line tool requirement
type ExternalTool struct {
	Name        string
	VersionArgs []string
	Validate    func(output string) bool
}

// requiredTools is a list of external tools that must be installed
var requiredTools = []ExternalTool{
	{
		Name:        "ffmpeg",
		VersionArgs: []string{"-version"},
		Validate: func(output string) bool {
			return strings.Contains(output, "ffmpeg version")
		},
	},
	{
		Name:        "ffprobe",
		VersionArgs: []string{"-version"},
		Validate: func(output string) bool {
			return strings.Contains(output, "ffprobe version")
		},
	},
	{
		Name:        "edge-tts",
		VersionArgs: []string{"--version"},
		Validate: func(output string) bool {
			return strings.Contains(output, "edge-tts")
		},
	},
}

// checkTool verifies that one tool is installed and answers its version flag
func checkTool(ctx context.Context, tool ExternalTool) error {
	if err := utils.ValidateRequiredDependency(tool.Name); err != nil {
		return err
	}

	output, err := execCommand(ctx, tool.Name, tool.VersionArgs...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to run %s: %w", tool.Name, err)
	}

	if !tool.Validate(string(output)) {
		return fmt.Errorf("invalid version of %s detected", tool.Name)
	}

	utils.LogVerbose("✓ %s found", tool.Name)
	return nil
}

// ValidateExternalTools checks all required tools concurrently
func ValidateExternalTools(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, tool := range requiredTools {
		g.Go(func() error {
			return checkTool(ctx, tool)
		})
	}
	return g.Wait()
}

// ValidateEnvVars checks that every listed environment variable is set
func ValidateEnvVars(vars []string) error {
	var missing []string
	for _, envVar := range vars {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
			continue
		}
		// Don't print the actual value for security
		utils.LogVerbose("✓ %s is set", envVar)
	}

	if len(missing) > 0 {
		return &utils.ValidationError{
			Field:   "environment",
			Message: fmt.Sprintf("environment variables not set: %s", strings.Join(missing, ", ")),
		}
	}
	return nil
}
