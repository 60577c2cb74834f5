package argparse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_NegativeNumbers(t *testing.T) {
	testCases := []struct {
		name      string
		specs     []Spec
		args      []string
		expectNS  Namespace
		expectErr string
	}{
		{
			name:     "int positional",
			specs:    []Spec{{Flags: []string{"n"}, Kind: KindInt}},
			args:     []string{"-5"},
			expectNS: Namespace{"n": -5},
		},
		{
			name:     "float positional",
			specs:    []Spec{{Flags: []string{"x"}, Kind: KindFloat}, {Flags: []string{"y"}, Kind: KindFloat}},
			args:     []string{"-2.5", "-.5"},
			expectNS: Namespace{"x": -2.5, "y": -0.5},
		},
		{
			name:     "mixed with flags",
			specs:    []Spec{{Flags: []string{"-g", "--gap"}, Kind: KindInt}, {Flags: []string{"-v"}, Kind: KindBool}, {Flags: []string{"rest"}, Nargs: "*"}},
			args:     []string{"-g", "-3", "-1", "-v", "--gap=-4", "-7"},
			expectNS: Namespace{"gap": -4, "v": true, "rest": []string{"-1", "-7"}},
		},
		{
			name:      "numeric short flag",
			specs:     []Spec{{Flags: []string{"-1"}, Kind: KindBool}, {Flags: []string{"n"}, Kind: KindInt}},
			args:      []string{"-5"},
			expectErr: "unknown shorthand flag: '5' in -5",
		},
		{
			name:     "after a double dash",
			specs:    []Spec{{Flags: []string{"-1"}, Kind: KindBool}, {Flags: []string{"n"}, Kind: KindInt}},
			args:     []string{"--", "-5"},
			expectNS: Namespace{"1": false, "n": -5},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, _ := newTestParser(t)
			for _, spec := range tc.specs {
				mustAdd(t, p, spec)
			}

			ns, err := p.Parse(tc.args)

			if tc.expectErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectNS, ns)
		})
	}
}

func TestParse_ShortOnlyFlagHasNoLongSpelling(t *testing.T) {
	p, _ := newTestParser(t)
	mustAdd(t, p, Spec{Flags: []string{"-v"}, Kind: KindBool})

	ns, err := p.Parse([]string{"-v"})
	require.NoError(t, err)
	assert.Equal(t, true, ns["v"])

	for _, args := range [][]string{{"--v"}, {"--v=true"}} {
		_, err = p.Parse(args)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr, "args %v", args)
		assert.Equal(t, 2, vErr.Code)
		assert.Contains(t, vErr.Message, "unknown flag: --v")
	}
}

func TestParse_ClosesFilesOnError(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(in, nil, 0600))

	fileOf := func(t *testing.T, p *Parser, dest string) *os.File {
		t.Helper()
		for _, arg := range p.Arguments() {
			if arg.Dest == dest {
				f, _ := arg.value.Get().(*os.File)
				require.NotNil(t, f, "file argument %s was not opened", dest)
				return f
			}
		}
		t.Fatalf("no argument %s", dest)
		return nil
	}

	testCases := []struct {
		name  string
		specs []Spec
		args  []string
	}{
		{
			name:  "missing required flag",
			specs: []Spec{{Flags: []string{"--in"}, Kind: KindFile}, {Flags: []string{"--req"}, Required: true}},
			args:  []string{"--in", in},
		},
		{
			name:  "extra positional",
			specs: []Spec{{Flags: []string{"in"}, Kind: KindFile}},
			args:  []string{in, "extra"},
		},
		{
			name:  "bad value after the file",
			specs: []Spec{{Flags: []string{"--in"}, Kind: KindFile}, {Flags: []string{"n"}, Kind: KindInt}},
			args:  []string{"--in", in, "x"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, _ := newTestParser(t)
			for _, spec := range tc.specs {
				mustAdd(t, p, spec)
			}

			ns, err := p.Parse(tc.args)

			require.Error(t, err)
			assert.Nil(t, ns)
			_, statErr := fileOf(t, p, "in").Stat()
			assert.ErrorIs(t, statErr, os.ErrClosed)
		})
	}
}

func TestParse_ClosesDefaultFilesOnError(t *testing.T) {
	fallback := filepath.Join(t.TempDir(), "fallback.txt")
	require.NoError(t, os.WriteFile(fallback, nil, 0600))

	p, _ := newTestParser(t)
	mustAdd(t, p, Spec{Flags: []string{"--ref"}, Kind: KindFile, Default: fallback})
	mustAdd(t, p, Spec{Flags: []string{"--missing"}, Kind: KindFile, Default: filepath.Join(filepath.Dir(fallback), "nope.txt")})

	ns, err := p.Parse(nil)
	require.Error(t, err)
	assert.Nil(t, ns)
	assert.Contains(t, err.Error(), "can't open")
}

func TestNormalizeDefault_StringScalars(t *testing.T) {
	testCases := []struct {
		def      any
		expected any
	}{
		{def: int64(10), expected: "10"},
		{def: 0.5, expected: "0.5"},
		{def: true, expected: "true"},
		{def: "x", expected: "x"},
	}

	for _, tc := range testCases {
		got, err := normalizeDefault(KindString, tc.def)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, got)
	}

	_, err := normalizeDefault(KindString, []string{"a"})
	require.Error(t, err, "lists are not scalars")

	p, _ := newTestParser(t)
	mustAdd(t, p, Spec{Flags: []string{"--level"}, Default: int64(3)})
	ns, err := p.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, "3", ns["level"])
}
