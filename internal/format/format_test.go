package format

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kballard/go-shellquote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFill(t *testing.T) {
	testCases := []struct {
		name      string
		template  string
		values    map[string]any
		expected  string
		expectErr string
	}{
		{
			name:     "plain text",
			template: "### prog\n",
			expected: "### prog\n",
		},
		{
			name:     "placeholders",
			template: " Name: {name}\n Count: {count}\n",
			values:   map[string]any{"name": "alice", "count": 3},
			expected: " Name: alice\n Count: 3\n",
		},
		{
			name:     "escaped braces",
			template: "{{literal}} {x} }}",
			values:   map[string]any{"x": []string{"a", "b"}},
			expected: "{literal} [a b] }",
		},
		{
			name:      "missing slot",
			template:  "{nope}",
			expectErr: `no value for slot "nope"`,
		},
		{
			name:      "unterminated",
			template:  "abc {name",
			expectErr: "unterminated placeholder at offset 4",
		},
		{
			name:      "lone closing brace",
			template:  "a } b",
			expectErr: "single '}' encountered at offset 2",
		},
		{
			name:      "empty placeholder",
			template:  "{}",
			expectErr: "empty placeholder",
		},
		{
			name:      "format spec",
			template:  "{n:>5}",
			values:    map[string]any{"n": 1},
			expectErr: "unsupported placeholder",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Fill(tc.template, tc.values)
			if tc.expectErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, out)
		})
	}
}

func TestEscape(t *testing.T) {
	s := "weird {name} }"
	out, err := Fill(Escape(s), nil)
	require.NoError(t, err)
	assert.Equal(t, s, out)
}

func TestSlots(t *testing.T) {
	slots := Slots("{{skip}} {b} text {a} {b}\n")
	assert.Equal(t, []string{"b", "a"}, slots)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, []string{"basename", "filename", "join", "json", "lower", "quote", "shell", "upper"}, r.Names())

	f, err := r.Lookup("upper")
	require.NoError(t, err)
	out, err := f("abc")
	require.NoError(t, err)
	assert.Equal(t, "ABC", out)

	_, err = r.Lookup("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "available: basename")

	r.Register("custom", func(any) (string, error) { return "x", nil })
	assert.Panics(t, func() {
		r.Register("custom", func(any) (string, error) { return "y", nil })
	})
}

func TestFormatters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reads.fa")
	require.NoError(t, os.WriteFile(path, nil, 0600))
	file, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { file.Close() })

	testCases := []struct {
		name      string
		formatter Formatter
		value     any
		expected  string
		expectErr bool
	}{
		{name: "filename of file", formatter: FileName, value: file, expected: path},
		{name: "filename of path", formatter: FileName, value: "a/b.txt", expected: "a/b.txt"},
		{name: "filename of int", formatter: FileName, value: 3, expectErr: true},
		{name: "basename", formatter: Basename, value: file, expected: "reads.fa"},
		{name: "lower", formatter: Lower, value: "MiXeD", expected: "mixed"},
		{name: "quote", formatter: Quote, value: "a b", expected: `"a b"`},
		{name: "json list", formatter: JSON, value: []string{"a", "b"}, expected: `["a","b"]`},
		{name: "json file", formatter: JSON, value: file, expected: `"` + path + `"`},
		{name: "join strings", formatter: Join, value: []string{"a", "b"}, expected: "a, b"},
		{name: "join any", formatter: Join, value: []any{1, "b"}, expected: "1, b"},
		{name: "join scalar", formatter: Join, value: 7, expected: "7"},
		{name: "shell", formatter: Shell, value: []string{"-g", "4", "reads.fa"}, expected: "-g 4 reads.fa"},
		{name: "shell empty", formatter: Shell, value: []string{}, expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := tc.formatter(tc.value)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, out)
		})
	}

	args := []string{"--name", "my reads.fa", "it's"}
	line, err := Shell(args)
	require.NoError(t, err)
	words, err := shellquote.Split(line)
	require.NoError(t, err)
	assert.Equal(t, args, words, "shell output splits back into the same words")

	_, err = JSON(make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "json: ")
}
