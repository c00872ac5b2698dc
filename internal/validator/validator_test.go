package validator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/gnzdotmx/dailyshorts/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExecCommand re-runs the test binary and prints a version banner for the tool
func fakeExecCommand(ctx context.Context, command string, args ...string) *exec.Cmd {
	cs := []string{"-test.run=TestHelperProcess", "--", command}
	cs = append(cs, args...)
	cmd := exec.CommandContext(ctx, os.Args[0], cs...)
	cmd.Env = []string{"GO_WANT_HELPER_PROCESS=1"}
	return cmd
}

// TestHelperProcess is not a real test, it's used to mock exec.Command
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	args := os.Args
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}
	name := filepath.Base(args[1])
	switch name {
	case "edge-tts":
		fmt.Println("edge-tts 6.1.12")
	default:
		fmt.Printf("%s version 6.1.1 Copyright (c) 2000-2023\n", name)
	}
	os.Exit(0)
}

func withFakes(t *testing.T, lookPath func(string) (string, error)) {
	t.Helper()
	origLook, origExec := utils.ExecLookPath, execCommand
	utils.ExecLookPath = lookPath
	execCommand = fakeExecCommand
	t.Cleanup(func() {
		utils.ExecLookPath = origLook
		execCommand = origExec
	})
}

func TestValidateExternalTools(t *testing.T) {
	withFakes(t, func(name string) (string, error) {
		return "/usr/bin/" + name, nil
	})
	assert.NoError(t, ValidateExternalTools(context.Background()))
}

func TestValidateExternalToolsMissing(t *testing.T) {
	withFakes(t, func(name string) (string, error) {
		if name == "edge-tts" {
			return "", errors.New("executable file not found in $PATH")
		}
		return "/usr/bin/" + name, nil
	})

	err := ValidateExternalTools(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "edge-tts")
}

func TestValidateEnvVars(t *testing.T) {
	t.Setenv("PEXELS_API_KEY", "x")
	t.Setenv("GEMINI_API_KEY", "")

	assert.NoError(t, ValidateEnvVars([]string{"PEXELS_API_KEY"}))

	err := ValidateEnvVars([]string{"PEXELS_API_KEY", "GEMINI_API_KEY", "YOUTUBE_TOKEN_UNSET_FOR_TEST"})
	var validationErr *utils.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "GEMINI_API_KEY, YOUTUBE_TOKEN_UNSET_FOR_TEST")
}
