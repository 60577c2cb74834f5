package format

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
)

// Formatter turns a parsed value into display text.
type Formatter func(value any) (string, error)

// Registry maps formatter names, as used in schema files, to formatters.
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry returns a registry holding the built-in formatters.
func NewRegistry() *Registry {
	r := &Registry{formatters: make(map[string]Formatter)}
	r.Register("filename", FileName)
	r.Register("basename", Basename)
	r.Register("upper", Upper)
	r.Register("lower", Lower)
	r.Register("quote", Quote)
	r.Register("json", JSON)
	r.Register("join", Join)
	r.Register("shell", Shell)
	return r
}

// Register adds a formatter under name. Registering a name twice is a
// programming error and panics.
func (r *Registry) Register(name string, f Formatter) {
	if _, exists := r.formatters[name]; exists {
		panic(fmt.Sprintf("formatter with name '%s' already registered", name))
	}
	slog.Debug("Registering formatter.", "name", name)
	r.formatters[name] = f
}

// Lookup returns the formatter registered under name.
func (r *Registry) Lookup(name string) (Formatter, error) {
	f, ok := r.formatters[name]
	if !ok {
		return nil, fmt.Errorf("unknown formatter %q (available: %s)", name, strings.Join(r.Names(), ", "))
	}
	return f, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// FileName shows an opened file by its name. Strings are taken to be paths
// already.
func FileName(value any) (string, error) {
	switch v := value.(type) {
	case *os.File:
		if v == nil {
			return "", fmt.Errorf("filename: nil file")
		}
		return v.Name(), nil
	case string:
		return v, nil
	}
	return "", fmt.Errorf("filename: unsupported value of type %T", value)
}

// Basename shows the last element of a file's name or path.
func Basename(value any) (string, error) {
	name, err := FileName(value)
	if err != nil {
		return "", fmt.Errorf("basename: %w", err)
	}
	return filepath.Base(name), nil
}

// Upper shows the value in upper case.
func Upper(value any) (string, error) {
	return strings.ToUpper(fmt.Sprint(value)), nil
}

// Lower shows the value in lower case.
func Lower(value any) (string, error) {
	return strings.ToLower(fmt.Sprint(value)), nil
}

// Quote shows the value as a double-quoted Go string literal.
func Quote(value any) (string, error) {
	return strconv.Quote(fmt.Sprint(value)), nil
}

// JSON shows the value as compact JSON. Files are encoded by name.
func JSON(value any) (string, error) {
	if f, ok := value.(*os.File); ok && f != nil {
		value = f.Name()
	}
	data, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("json: %w", err)
	}
	return string(data), nil
}

// Join shows a list as its elements separated by ", ".
func Join(value any) (string, error) {
	switch v := value.(type) {
	case []string:
		return strings.Join(v, ", "), nil
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ", "), nil
	}
	return fmt.Sprint(value), nil
}

// Shell shows a list as a shell command line, quoting elements where needed.
func Shell(value any) (string, error) {
	switch v := value.(type) {
	case []string:
		return shellquote.Join(v...), nil
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = fmt.Sprint(item)
		}
		return shellquote.Join(parts...), nil
	}
	return shellquote.Join(fmt.Sprint(value)), nil
}
