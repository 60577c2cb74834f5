package argparse

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Container is anything arguments can be declared on: a Parser, a Group or a
// MutexGroup.
type Container interface {
	AddArgument(spec Spec) (*Argument, error)
	AddArgumentGroup(title, description string) Container
	AddMutuallyExclusiveGroup(required bool) Container
	// Title is the container's help section title, empty for parsers and
	// mutually exclusive groups.
	Title() string
}

// Namespace maps argument destinations to parsed values.
type Namespace map[string]any

// Close closes every file in the namespace except the standard streams.
func (ns Namespace) Close() error {
	var errs []error
	for _, v := range ns {
		if f, ok := v.(*os.File); ok && f != nil && !isStdio(f) {
			errs = append(errs, f.Close())
		}
	}
	return errors.Join(errs...)
}

// Config holds the parser-wide settings.
type Config struct {
	// Prog is the program name shown in usage lines. Defaults to the base name
	// of os.Args[0].
	Prog        string
	Description string
	Epilog      string
	// Output receives help and usage text. Defaults to os.Stderr.
	Output io.Writer
}

// Parser declares and parses a program's arguments.
type Parser struct {
	cmd         *cobra.Command
	prog        string
	description string
	epilog      string
	output      io.Writer

	options   *section
	groups    []*section
	mutexes   []*MutexGroup
	arguments []*Argument
	dests     map[string]*Argument
}

// section is one block of the help output.
type section struct {
	title       string
	description string
	flags       *pflag.FlagSet
	positionals []*Argument
}

func newSection(name, title, description string) *section {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false
	return &section{title: title, description: description, flags: fs}
}

// NewParser creates a parser with only the help flag declared.
func NewParser(cfg Config) *Parser {
	prog := cfg.Prog
	if prog == "" {
		prog = filepath.Base(os.Args[0])
	}
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	cmd := &cobra.Command{
		Use:           prog,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.SetOut(output)
	cmd.SetErr(output)
	cmd.Flags().SortFlags = false
	cmd.InitDefaultHelpFlag()
	help := cmd.Flags().Lookup("help")
	help.Usage = "show this help message and exit"

	p := &Parser{
		cmd:         cmd,
		prog:        prog,
		description: cfg.Description,
		epilog:      cfg.Epilog,
		output:      output,
		options:     newSection(prog, "options", ""),
		dests:       make(map[string]*Argument),
	}
	p.options.flags.AddFlag(help)
	return p
}

// Prog returns the program name used in usage lines.
func (p *Parser) Prog() string {
	return p.prog
}

// Title implements Container. Parsers have no section title.
func (p *Parser) Title() string {
	return ""
}

// Arguments returns the registered arguments in declaration order.
func (p *Parser) Arguments() []*Argument {
	return p.arguments
}

// AddArgument declares an argument in the parser's own section.
func (p *Parser) AddArgument(spec Spec) (*Argument, error) {
	return p.register(spec, p.options, nil)
}

// AddArgumentGroup declares a new help section.
func (p *Parser) AddArgumentGroup(title, description string) Container {
	sec := newSection(p.prog, title, description)
	p.groups = append(p.groups, sec)
	return &Group{parser: p, section: sec}
}

// AddMutuallyExclusiveGroup declares a set of flags of which at most one (or,
// when required, exactly one) may be given.
func (p *Parser) AddMutuallyExclusiveGroup(required bool) Container {
	return p.newMutex(p.options, required)
}

func (p *Parser) newMutex(sec *section, required bool) *MutexGroup {
	m := &MutexGroup{parser: p, section: sec, required: required}
	p.mutexes = append(p.mutexes, m)
	return m
}

func (p *Parser) register(spec Spec, sec *section, mutex *MutexGroup) (*Argument, error) {
	arg, err := newArgument(spec)
	if err != nil {
		return nil, err
	}
	if _, ok := p.dests[arg.Dest]; ok {
		return nil, declarationError(spec.Flags, "conflicting destination %q", arg.Dest)
	}

	if arg.Positional {
		if mutex != nil {
			return nil, declarationError(spec.Flags, "positionals cannot be mutually exclusive")
		}
		sec.positionals = append(sec.positionals, arg)
	} else {
		flags := p.cmd.Flags()
		if arg.Long != "" && flags.Lookup(arg.Long) != nil {
			return nil, declarationError(spec.Flags, "conflicting option string: --%s", arg.Long)
		}
		if arg.Short != "" && (flags.ShorthandLookup(arg.Short) != nil || flags.Lookup(arg.Short) != nil) {
			return nil, declarationError(spec.Flags, "conflicting option string: -%s", arg.Short)
		}
		if mutex != nil && arg.Required {
			return nil, declarationError(spec.Flags, "mutually exclusive arguments must be optional")
		}

		f := sec.flags.VarPF(arg.value, arg.flagName(), arg.Short, arg.Help)
		if arg.Kind == KindBool {
			f.NoOptDefVal = "true"
		}
		f.DefValue = ""
		if arg.Default != nil {
			f.DefValue = fmt.Sprint(arg.Default)
		}
		flags.AddFlag(f)
		if arg.Required {
			if err := cobra.MarkFlagRequired(flags, f.Name); err != nil {
				return nil, declarationError(spec.Flags, "%v", err)
			}
		}
		arg.flag = f
		if mutex != nil {
			mutex.names = append(mutex.names, f.Name)
		}
	}

	p.arguments = append(p.arguments, arg)
	p.dests[arg.Dest] = arg
	return arg, nil
}

// applyFlagGroups hands the mutually exclusive sets over to cobra. Each set is
// marked once; members added after the first Parse are not validated.
func (p *Parser) applyFlagGroups() {
	for _, m := range p.mutexes {
		if m.applied || len(m.names) == 0 {
			continue
		}
		if len(m.names) > 1 {
			p.cmd.MarkFlagsMutuallyExclusive(m.names...)
		}
		if m.required {
			p.cmd.MarkFlagsOneRequired(m.names...)
		}
		m.applied = true
	}
}

// Parse converts args into a Namespace. Arguments that were neither given nor
// have a default are absent from the result. Files opened along the way are
// closed again when Parse fails.
func (p *Parser) Parse(args []string) (_ Namespace, err error) {
	p.applyFlagGroups()

	ns := make(Namespace, len(p.arguments))
	defer func() {
		if err != nil {
			p.closeFiles(ns)
		}
	}()

	args, err = p.prepareArgs(args)
	if err != nil {
		return nil, p.fail(err)
	}

	flags := p.cmd.Flags()
	if err := p.cmd.ParseFlags(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Fprint(p.output, p.Help())
			return nil, ErrHelp
		}
		return nil, p.fail(err)
	}
	if help, _ := flags.GetBool("help"); help {
		fmt.Fprint(p.output, p.Help())
		return nil, ErrHelp
	}
	if err := p.cmd.ValidateRequiredFlags(); err != nil {
		return nil, p.fail(err)
	}
	if err := p.cmd.ValidateFlagGroups(); err != nil {
		return nil, p.fail(err)
	}

	if err := p.assignPositionals(restoreNegatives(flags.Args()), ns); err != nil {
		return nil, p.fail(err)
	}
	for _, arg := range p.arguments {
		if arg.Positional {
			continue
		}
		if arg.flag.Changed {
			ns[arg.Dest] = arg.value.Get()
			continue
		}
		v, ok, err := arg.resolveDefault()
		if err != nil {
			return nil, p.fail(fmt.Errorf("argument %s: %w", arg.displayName(), err))
		}
		if ok {
			ns[arg.Dest] = v
		}
	}
	return ns, nil
}

// closeFiles closes the files held by file arguments and by ns.
func (p *Parser) closeFiles(ns Namespace) {
	for _, arg := range p.arguments {
		if !arg.IsFile() {
			continue
		}
		if f, ok := arg.value.Get().(*os.File); ok && f != nil && !isStdio(f) {
			f.Close()
		}
	}
	ns.Close()
}

// assignPositionals distributes the remaining tokens over the positionals in
// declaration order, keeping enough tokens for the ones still to come.
func (p *Parser) assignPositionals(tokens []string, ns Namespace) error {
	var positionals []*Argument
	for _, arg := range p.arguments {
		if arg.Positional {
			positionals = append(positionals, arg)
		}
	}

	var missing []string
	for i, arg := range positionals {
		reserved := 0
		for _, later := range positionals[i+1:] {
			if later.Nargs == "" || later.Nargs == "+" {
				reserved++
			}
		}
		available := len(tokens) - reserved

		// Required positionals claim tokens before later ones do.
		var take int
		switch arg.Nargs {
		case "":
			take = min(len(tokens), 1)
		case "?":
			take = min(max(available, 0), 1)
		case "+":
			take = min(len(tokens), max(available, 1))
		case "*":
			take = max(available, 0)
		}

		if take == 0 {
			if arg.Nargs == "" || arg.Nargs == "+" {
				missing = append(missing, arg.Dest)
				continue
			}
			v, ok, err := arg.resolveDefault()
			if err != nil {
				return fmt.Errorf("argument %s: %w", arg.Dest, err)
			}
			if ok {
				ns[arg.Dest] = v
			}
			continue
		}

		if arg.multiple() {
			values := make([]string, 0, take)
			for _, tok := range tokens[:take] {
				v, err := convert(KindString, arg.Choices, tok)
				if err != nil {
					return fmt.Errorf("argument %s: %w", arg.Dest, err)
				}
				values = append(values, v.(string))
			}
			ns[arg.Dest] = values
		} else {
			if err := arg.value.Set(tokens[0]); err != nil {
				return fmt.Errorf("argument %s: %w", arg.Dest, err)
			}
			ns[arg.Dest] = arg.value.Get()
		}
		tokens = tokens[take:]
	}

	if len(missing) > 0 {
		return fmt.Errorf("the following arguments are required: %s", strings.Join(missing, ", "))
	}
	if len(tokens) > 0 {
		return fmt.Errorf("unrecognized arguments: %s", strings.Join(tokens, " "))
	}
	return nil
}

// fail writes the usage line and turns err into a usage error.
func (p *Parser) fail(err error) error {
	fmt.Fprintln(p.output, p.Usage())
	return &ValidationError{Code: 2, Message: fmt.Sprintf("%s: error: %v", p.prog, err)}
}
