package assemble

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/gnzdotmx/dailyshorts/internal/utils"
)

// execCommand allows us to mock exec.CommandContext in tests
var execCommand = exec.CommandContext

// runTool runs an external tool and returns its standard output.
// A non-zero exit becomes a ToolError carrying the tail of stderr.
func runTool(ctx context.Context, tool string, args ...string) ([]byte, error) {
	utils.LogDebug("%s %s", tool, strings.Join(args, " "))

	cmd := execCommand(ctx, tool, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%s interrupted: %w", tool, ctx.Err())
		}
		return nil, utils.NewToolError(tool, stderr.String(), err)
	}
	return stdout.Bytes(), nil
}

// seconds formats a duration in seconds the way ffmpeg options expect it
func seconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
