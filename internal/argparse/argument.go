package argparse

import (
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/spf13/pflag"
)

// Spec declares one argument.
type Spec struct {
	// Flags holds the option strings: at most one "-x" and one "--name", or a
	// single bare name for a positional argument.
	Flags []string
	// Dest overrides the destination derived from Flags.
	Dest     string
	Kind     Kind
	Default  any
	Help     string
	Required bool
	// Choices restricts the accepted command-line text.
	Choices []string
	// Nargs applies to positionals only: "" (exactly one), "?", "*" or "+".
	Nargs string
}

// Argument is a registered argument.
type Argument struct {
	// Dest is the key of the argument's value in a Namespace.
	Dest       string
	Kind       Kind
	Short      string
	Long       string
	Positional bool
	// Default is the declared default after normalisation, or nil.
	Default  any
	Help     string
	Required bool
	Choices  []string
	Nargs    string

	value value
	flag  *pflag.Flag
}

var (
	positionalRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)
	shortRe      = regexp.MustCompile(`^-[A-Za-z0-9]$`)
	longRe       = regexp.MustCompile(`^--[A-Za-z0-9][A-Za-z0-9_-]*$`)
)

// OptionStrings returns the argument's flags as declared, or its name for a
// positional.
func (a *Argument) OptionStrings() []string {
	if a.Positional {
		return []string{a.Dest}
	}
	var names []string
	if a.Short != "" {
		names = append(names, "-"+a.Short)
	}
	if a.Long != "" {
		names = append(names, "--"+a.Long)
	}
	return names
}

// IsFile reports whether the argument's values are opened files.
func (a *Argument) IsFile() bool {
	return a.Kind == KindFile
}

// displayName is how the argument is referred to in error messages.
func (a *Argument) displayName() string {
	return strings.Join(a.OptionStrings(), "/")
}

// flagName is the name the argument is registered under in the flag set.
func (a *Argument) flagName() string {
	if a.Long != "" {
		return a.Long
	}
	return a.Short
}

// newArgument validates a declaration and derives the destination. It does
// not check for conflicts with already registered arguments.
func newArgument(spec Spec) (*Argument, error) {
	if len(spec.Flags) == 0 {
		return nil, declarationError(nil, "at least one option string is required")
	}
	arg := &Argument{
		Kind:     spec.Kind,
		Help:     spec.Help,
		Required: spec.Required,
		Choices:  slices.Clone(spec.Choices),
		Nargs:    spec.Nargs,
	}

	for _, name := range spec.Flags {
		switch {
		case longRe.MatchString(name):
			if arg.Long != "" {
				return nil, declarationError(spec.Flags, "only one long option string is supported")
			}
			arg.Long = strings.TrimPrefix(name, "--")
		case shortRe.MatchString(name):
			if arg.Short != "" {
				return nil, declarationError(spec.Flags, "only one short option string is supported")
			}
			arg.Short = strings.TrimPrefix(name, "-")
		case positionalRe.MatchString(name):
			if len(spec.Flags) > 1 {
				return nil, declarationError(spec.Flags, "invalid option string %q: must start with a character '-'", name)
			}
			arg.Positional = true
			arg.Dest = name
		default:
			return nil, declarationError(spec.Flags, "invalid option string %q", name)
		}
	}

	switch {
	case spec.Dest != "":
		arg.Dest = spec.Dest
	case arg.Positional:
	case arg.Long != "":
		arg.Dest = strings.ReplaceAll(arg.Long, "-", "_")
	default:
		arg.Dest = arg.Short
	}

	v, err := newValue(spec.Kind, spec.Choices)
	if err != nil {
		return nil, declarationError(spec.Flags, "%v", err)
	}
	arg.value = v

	switch spec.Nargs {
	case "":
	case "?", "*", "+":
		if !arg.Positional {
			return nil, declarationError(spec.Flags, "nargs %q is only supported for positionals", spec.Nargs)
		}
		if spec.Nargs != "?" && spec.Kind != KindString && spec.Kind != KindStrings {
			return nil, declarationError(spec.Flags, "nargs %q requires a string or strings type", spec.Nargs)
		}
	default:
		return nil, declarationError(spec.Flags, "invalid nargs value %q", spec.Nargs)
	}

	if arg.Positional && spec.Required {
		return nil, declarationError(spec.Flags, "'required' is an invalid argument for positionals")
	}
	if spec.Kind == KindBool && len(spec.Choices) > 0 {
		return nil, declarationError(spec.Flags, "choices are not supported for bool arguments")
	}

	def, err := normalizeDefault(spec.Kind, spec.Default)
	if err != nil {
		return nil, declarationError(spec.Flags, "%v", err)
	}
	if def != nil && arg.multiple() {
		if s, ok := def.(string); ok {
			def = []string{s}
		}
	}
	arg.Default = def

	return arg, nil
}

// multiple reports whether the argument collects a list of tokens.
func (a *Argument) multiple() bool {
	return a.Nargs == "*" || a.Nargs == "+"
}

// resolveDefault returns the value used when the argument was not given on
// the command line. File defaults are opened here.
func (a *Argument) resolveDefault() (any, bool, error) {
	if a.Default == nil {
		switch {
		case a.Kind == KindBool && !a.Positional:
			return false, true, nil
		case a.Nargs == "*":
			return []string{}, true, nil
		}
		return nil, false, nil
	}
	if path, ok := a.Default.(string); ok && a.Kind == KindFile {
		v, err := convert(KindFile, nil, path)
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	}
	return a.Default, true, nil
}

// isStdio reports whether f is one of the process' standard streams.
func isStdio(f *os.File) bool {
	return f == os.Stdin || f == os.Stdout || f == os.Stderr
}
