package argparse

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// Kind selects how an argument's text is converted into a Go value.
type Kind int

const (
	KindString   Kind = iota // string
	KindInt                  // int
	KindFloat                // float64
	KindBool                 // bool
	KindDuration             // time.Duration
	KindStrings              // []string, one element per occurrence
	KindFile                 // *os.File opened for reading, "-" is stdin
)

var kindNames = []string{
	KindString:   "string",
	KindInt:      "int",
	KindFloat:    "float",
	KindBool:     "bool",
	KindDuration: "duration",
	KindStrings:  "strings",
	KindFile:     "file",
}

// String returns the name used for the kind in schema files and help text.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind resolves a kind by name. The empty name means KindString.
func ParseKind(name string) (Kind, error) {
	if name == "" {
		return KindString, nil
	}
	for k, n := range kindNames {
		if n == strings.ToLower(name) {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown argument type %q", name)
}

// value is a pflag.Value that also hands out the converted Go value.
type value interface {
	pflag.Value
	Get() any
}

func newValue(kind Kind, choices []string) (value, error) {
	var v value
	switch kind {
	case KindString:
		v = new(stringValue)
	case KindInt:
		v = new(intValue)
	case KindFloat:
		v = new(floatValue)
	case KindBool:
		v = new(boolValue)
	case KindDuration:
		v = new(durationValue)
	case KindStrings:
		v = new(stringsValue)
	case KindFile:
		v = new(fileValue)
	default:
		return nil, fmt.Errorf("unknown argument type %s", kind)
	}
	if len(choices) > 0 {
		v = &choiceValue{value: v, choices: choices}
	}
	return v, nil
}

// convert runs a single token through a fresh value of the given kind.
func convert(kind Kind, choices []string, token string) (any, error) {
	v, err := newValue(kind, choices)
	if err != nil {
		return nil, err
	}
	if err := v.Set(token); err != nil {
		return nil, err
	}
	return v.Get(), nil
}

// normalizeDefault checks a declared default against the kind. String
// defaults are converted the same way command-line text is; file defaults stay
// as paths until they are used. Scalar defaults of string arguments are
// formatted with fmt.Sprint.
func normalizeDefault(kind Kind, def any) (any, error) {
	if def == nil {
		return nil, nil
	}
	if s, ok := def.(string); ok {
		switch kind {
		case KindString, KindFile:
			return s, nil
		case KindStrings:
			return []string{s}, nil
		default:
			return convert(kind, nil, s)
		}
	}

	switch kind {
	case KindString:
		// Schema defaults for untyped arguments may be numbers or booleans.
		switch def.(type) {
		case int, int32, int64, float32, float64, bool, time.Duration:
			return fmt.Sprint(def), nil
		}
	case KindInt:
		switch n := def.(type) {
		case int:
			return n, nil
		case int32:
			return int(n), nil
		case int64:
			return int(n), nil
		}
	case KindFloat:
		switch n := def.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		}
	case KindBool:
		if b, ok := def.(bool); ok {
			return b, nil
		}
	case KindDuration:
		if d, ok := def.(time.Duration); ok {
			return d, nil
		}
	case KindStrings:
		switch l := def.(type) {
		case []string:
			return slices.Clone(l), nil
		case []any:
			out := make([]string, 0, len(l))
			for _, item := range l {
				s, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("invalid default %v for %s argument", def, kind)
				}
				out = append(out, s)
			}
			return out, nil
		}
	case KindFile:
		if f, ok := def.(*os.File); ok {
			return f, nil
		}
	}
	return nil, fmt.Errorf("invalid default %v for %s argument", def, kind)
}

type stringValue string

func (s *stringValue) Set(v string) error { *s = stringValue(v); return nil }
func (s *stringValue) String() string     { return string(*s) }
func (s *stringValue) Type() string       { return "string" }
func (s *stringValue) Get() any           { return string(*s) }

type intValue int

func (i *intValue) Set(v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid int value: %q", v)
	}
	*i = intValue(n)
	return nil
}
func (i *intValue) String() string { return strconv.Itoa(int(*i)) }
func (i *intValue) Type() string   { return "int" }
func (i *intValue) Get() any       { return int(*i) }

type floatValue float64

func (f *floatValue) Set(v string) error {
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid float value: %q", v)
	}
	*f = floatValue(n)
	return nil
}
func (f *floatValue) String() string { return strconv.FormatFloat(float64(*f), 'g', -1, 64) }
func (f *floatValue) Type() string   { return "float" }
func (f *floatValue) Get() any       { return float64(*f) }

type boolValue bool

func (b *boolValue) Set(v string) error {
	n, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid bool value: %q", v)
	}
	*b = boolValue(n)
	return nil
}
func (b *boolValue) String() string { return strconv.FormatBool(bool(*b)) }
func (b *boolValue) Type() string   { return "bool" }
func (b *boolValue) Get() any       { return bool(*b) }

type durationValue time.Duration

func (d *durationValue) Set(v string) error {
	n, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid duration value: %q", v)
	}
	*d = durationValue(n)
	return nil
}
func (d *durationValue) String() string { return time.Duration(*d).String() }
func (d *durationValue) Type() string   { return "duration" }
func (d *durationValue) Get() any       { return time.Duration(*d) }

type stringsValue []string

func (s *stringsValue) Set(v string) error { *s = append(*s, v); return nil }
func (s *stringsValue) String() string     { return "[" + strings.Join(*s, ",") + "]" }
func (s *stringsValue) Type() string       { return "strings" }
func (s *stringsValue) Get() any           { return slices.Clone([]string(*s)) }

type fileValue struct {
	f *os.File
}

func (f *fileValue) Set(v string) error {
	if v == "-" {
		f.f = os.Stdin
		return nil
	}
	file, err := os.Open(v)
	if err != nil {
		return fmt.Errorf("can't open %q: %w", v, err)
	}
	f.f = file
	return nil
}

func (f *fileValue) String() string {
	if f.f == nil {
		return ""
	}
	return f.f.Name()
}
func (f *fileValue) Type() string { return "file" }
func (f *fileValue) Get() any     { return f.f }

type choiceValue struct {
	value
	choices []string
}

func (c *choiceValue) Set(v string) error {
	if !slices.Contains(c.choices, v) {
		return fmt.Errorf("invalid choice: %q (choose from %s)", v, strings.Join(c.choices, ", "))
	}
	return c.value.Set(v)
}
