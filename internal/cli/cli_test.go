package cli

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/argstore/internal/app"
)

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		args           []string
		expectExit     bool
		expectCode     int
		expectedConfig *app.Config
		checkOutput    func(t *testing.T, output string)
	}{
		{
			name: "Happy Path with all flags",
			args: []string{
				"-s", "align.hcl",
				"--out=runs.log",
				"--append",
				"--stamp",
				"--log-level=debug",
				"--log-format", "json",
				"--", "--fast", "-g", "4", "reads.fa",
			},
			expectedConfig: &app.Config{
				SchemaPath:  "align.hcl",
				OutPath:     "runs.log",
				Append:      true,
				Stamp:       true,
				LogLevel:    "debug",
				LogFormat:   "json",
				ProgramArgs: []string{"--fast", "-g", "4", "reads.fa"},
			},
		},
		{
			name: "Defaults",
			args: []string{"--schema", "align.toml"},
			expectedConfig: &app.Config{
				SchemaPath:  "align.toml",
				OutPath:     "-",
				LogLevel:    "info",
				LogFormat:   "text",
				ProgramArgs: []string{},
			},
		},
		{
			name: "Program arguments without a dash",
			args: []string{"-s", "a.hcl", "reads.fa", "out.sam"},
			expectedConfig: &app.Config{
				SchemaPath:  "a.hcl",
				OutPath:     "-",
				LogLevel:    "info",
				LogFormat:   "text",
				ProgramArgs: []string{"reads.fa", "out.sam"},
			},
		},
		{
			name:       "Help flag triggers clean exit",
			args:       []string{"-h"},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				assert.Contains(t, output, "usage: argstore")
				assert.Contains(t, output, "output:")
				assert.Contains(t, output, "--log-level")
			},
		},
		{
			name:       "Missing schema is a usage error",
			args:       []string{"-o", "x"},
			expectCode: 2,
			checkOutput: func(t *testing.T, output string) {
				assert.Contains(t, output, "usage: argstore")
			},
		},
		{
			name:       "Invalid log level returns an error",
			args:       []string{"-s", "a.hcl", "--log-level=foo"},
			expectCode: 2,
		},
		{
			name:       "Invalid log format returns an error",
			args:       []string{"-s", "a.hcl", "--log-format=yaml"},
			expectCode: 2,
		},
		{
			name:       "Append to stdout returns an error",
			args:       []string{"-s", "a.hcl", "--append"},
			expectCode: 2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			output := &bytes.Buffer{}

			cfg, shouldExit, err := Parse(tc.args, output)

			if tc.expectCode != 0 {
				require.Error(t, err)
				var exitErr *ExitError
				require.ErrorAs(t, err, &exitErr)
				assert.Equal(t, tc.expectCode, exitErr.Code)
				assert.Contains(t, exitErr.Message, "argstore: error:")
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.expectExit, shouldExit)

			if tc.expectedConfig != nil {
				ignore := cmpopts.IgnoreFields(app.Config{}, "Invocation")
				if diff := cmp.Diff(tc.expectedConfig, cfg, ignore); diff != "" {
					t.Errorf("Parse() config mismatch (-want +got):\n%s", diff)
				}
			}
			if tc.checkOutput != nil {
				tc.checkOutput(t, output.String())
			}
		})
	}
}

func TestNewParser_Record(t *testing.T) {
	p := newParser(&bytes.Buffer{})

	ns, err := p.Parse([]string{"-s", "align.hcl", "--", "--name", "my reads.fa"})
	require.NoError(t, err)
	record, err := p.Render(ns)
	require.NoError(t, err)

	assert.Contains(t, record, "### argstore\n Schema: align.hcl\n Args: --name ")
	assert.Contains(t, record, "\n --- Output ---\n Out: -\n Append: false\n Stamp: false\n")
	assert.Contains(t, record, "\n --- Logging ---\n Log_level: info\n Log_format: text\n")
}

func TestNewParser_DeclarationsAreValid(t *testing.T) {
	assert.NotPanics(t, func() { newParser(&bytes.Buffer{}) })
	p := newParser(&bytes.Buffer{})
	var dests []string
	for _, arg := range p.Unwrap().Arguments() {
		dests = append(dests, arg.Dest)
	}
	assert.Equal(t, []string{"schema", "args", "out", "append", "stamp", "log_level", "log_format"}, dests)
}

func TestParse_Invocation(t *testing.T) {
	// --- Arrange ---
	args := []string{"-s", "align.hcl", "--log-level", "debug", "--", "--name", "my reads.fa"}

	// --- Act ---
	cfg, shouldExit, err := Parse(args, &bytes.Buffer{})

	// --- Assert ---
	require.NoError(t, err)
	assert.False(t, shouldExit)
	assert.Contains(t, cfg.Invocation, "### argstore\n Schema: align.hcl\n")
	assert.Contains(t, cfg.Invocation, "reads.fa")
	assert.Contains(t, cfg.Invocation, "Log_level: debug")
}
