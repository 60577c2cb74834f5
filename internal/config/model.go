package config

import (
	"errors"
	"fmt"
	"strings"
)

// Model is the format-agnostic representation of a schema file.
type Model struct {
	Program     string
	Description string
	Epilog      string
	Record      *Record
	Arguments   []*Argument
	Exclusive   []*Exclusive
	Groups      []*Group
}

// Record holds the template fields of one section of the record. Nil fields
// keep their defaults.
type Record struct {
	Separator   *string
	Title       *string
	Description *string
	Epilog      *string
}

// Argument is the format-agnostic representation of an `argument` block.
type Argument struct {
	Name       string
	Flags      []string
	Positional bool
	Type       string
	Help       string
	// Default holds a plain Go value: string, int64, float64, bool or a list.
	Default  any
	Required bool
	Choices  []string
	Nargs    string

	DisplayName *string
	Fragment    *string
	Formatter   string
}

// Exclusive is a set of arguments of which at most one may be given.
type Exclusive struct {
	Required  bool
	Arguments []*Argument
}

// Group is a titled section with its own arguments.
type Group struct {
	Title       string
	Description string
	DisplayName *string
	Record      *Record
	Arguments   []*Argument
	Exclusive   []*Exclusive
	Groups      []*Group
}

// OptionStrings returns the argument's flags. Without explicit flags a
// positional uses its name and a flag uses "--name" with underscores turned
// into dashes.
func (a *Argument) OptionStrings() []string {
	if a.Positional {
		return []string{a.Name}
	}
	if len(a.Flags) > 0 {
		return a.Flags
	}
	return []string{"--" + strings.ReplaceAll(a.Name, "_", "-")}
}

// Validate checks the parts of the model that the parser cannot check on its
// own.
func (m *Model) Validate() error {
	var errs []error
	seen := make(map[string]struct{})
	walkArguments(m.Arguments, m.Exclusive, m.Groups, func(a *Argument) {
		if a.Name == "" {
			errs = append(errs, errors.New("argument without a name"))
			return
		}
		if _, ok := seen[a.Name]; ok {
			errs = append(errs, fmt.Errorf("argument %q declared more than once", a.Name))
		}
		seen[a.Name] = struct{}{}
		if a.Positional && len(a.Flags) > 0 {
			errs = append(errs, fmt.Errorf("argument %q: positional arguments take no flags", a.Name))
		}
	})
	return errors.Join(errs...)
}

// ArgumentCount returns the number of arguments declared anywhere in the
// model.
func (m *Model) ArgumentCount() int {
	n := 0
	walkArguments(m.Arguments, m.Exclusive, m.Groups, func(*Argument) { n++ })
	return n
}

func walkArguments(args []*Argument, exclusive []*Exclusive, groups []*Group, fn func(*Argument)) {
	for _, a := range args {
		fn(a)
	}
	for _, x := range exclusive {
		for _, a := range x.Arguments {
			fn(a)
		}
	}
	for _, g := range groups {
		walkArguments(g.Arguments, g.Exclusive, g.Groups, fn)
	}
}
