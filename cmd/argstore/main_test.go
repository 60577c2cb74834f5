package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/argstore/internal/argparse"
	"github.com/vk/argstore/internal/cli"
)

const schemaTOML = `
program = "align"

[record]
description = ""
epilog      = ""

[[argument]]
name = "gap"
type = "int"
default = 10

[[argument]]
name = "mode"
choices = ["fast", "slow"]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600), "failed to set up test file")
	return path
}

func TestRun_WritesRecord(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	schema := writeFile(t, "align.toml", schemaTOML)
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(out, errOut, []string{"-s", schema, "--", "--mode", "slow"})

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "### align\n Gap: 10\n Mode: slow\n", out.String())
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(out, errOut, []string{"-h"})

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	assert.Contains(t, errOut.String(), "usage: argstore", "Expected help text to be printed to the error output")
	assert.Empty(t, out.String())
}

func TestRun_ProgramHelp(t *testing.T) {
	t.Parallel()

	schema := writeFile(t, "align.toml", schemaTOML)
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	err := run(out, errOut, []string{"-s", schema, "--", "--help"})

	require.NoError(t, err, "help of the described program is a clean exit")
	assert.Contains(t, errOut.String(), "usage: align")
	assert.Empty(t, out.String(), "no record is written")
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	schema := writeFile(t, "align.toml", schemaTOML)
	broken := writeFile(t, "broken.hcl", "argument \"a\" {\n")
	unknown := writeFile(t, "schema.yaml", "program: x\n")

	testCases := []struct {
		name         string
		args         []string
		expectedCode int
		expectedMsg  string
	}{
		{
			name:         "unknown argstore flag",
			args:         []string{"--this-is-not-a-valid-flag"},
			expectedCode: 2,
			expectedMsg:  "argstore: error: unknown flag: --this-is-not-a-valid-flag",
		},
		{
			name:         "usage error of the described program",
			args:         []string{"-s", schema, "--", "--mode", "medium"},
			expectedCode: 2,
			expectedMsg:  "align: error:",
		},
		{
			name:         "invalid schema file",
			args:         []string{"-s", broken},
			expectedCode: 1,
			expectedMsg:  "failed to parse HCL file",
		},
		{
			name:         "unsupported schema extension",
			args:         []string{"-s", unknown},
			expectedCode: 1,
			expectedMsg:  "expected one of .hcl, .toml",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

			err := run(out, errOut, tc.args)

			require.Error(t, err)
			reported := &bytes.Buffer{}
			assert.Equal(t, tc.expectedCode, exitCode(err, reported))
			assert.Contains(t, reported.String(), tc.expectedMsg)
			assert.Empty(t, out.String())
		})
	}
}

func TestExitCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "exit error", err: &cli.ExitError{Code: 2, Message: "bad"}, expected: 2},
		{name: "wrapped validation error", err: fmt.Errorf("build: %w", &argparse.ValidationError{Code: 1, Message: "conflict"}), expected: 1},
		{name: "parse error", err: &argparse.ValidationError{Code: 2, Message: "prog: error: x"}, expected: 2},
		{name: "other", err: errors.New("boom"), expected: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, exitCode(tc.err, &bytes.Buffer{}))
		})
	}
}

func TestRun_LogsInvocationAtDebugLevel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		logLevel  string
		expectLog bool
	}{
		{name: "debug", logLevel: "debug", expectLog: true},
		{name: "info", logLevel: "info", expectLog: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			schema := writeFile(t, "align.toml", schemaTOML)
			out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

			// --- Act ---
			err := run(out, errOut, []string{"-s", schema, "--log-level", tc.logLevel, "--", "--mode", "fast"})

			// --- Assert ---
			require.NoError(t, err)
			assert.Equal(t, "### align\n Gap: 10\n Mode: fast\n", out.String())
			if tc.expectLog {
				assert.Contains(t, errOut.String(), `msg="argstore invocation."`)
				assert.Contains(t, errOut.String(), "Schema: "+schema)
				assert.Contains(t, errOut.String(), "Log_level: debug")
			} else {
				assert.NotContains(t, errOut.String(), "argstore invocation.")
			}
		})
	}
}
