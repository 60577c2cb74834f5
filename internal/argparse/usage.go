package argparse

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// Usage returns the one-line usage summary.
func (p *Parser) Usage() string {
	memberOf := make(map[string]*MutexGroup)
	for _, m := range p.mutexes {
		for _, name := range m.names {
			memberOf[name] = m
		}
	}

	parts := []string{"usage:", p.prog, "[-h]"}
	rendered := make(map[*MutexGroup]bool)
	for _, arg := range p.arguments {
		if arg.Positional {
			continue
		}
		m, ok := memberOf[arg.flag.Name]
		if !ok {
			if arg.Required {
				parts = append(parts, flagUsage(arg))
			} else {
				parts = append(parts, "["+flagUsage(arg)+"]")
			}
			continue
		}
		if rendered[m] {
			continue
		}
		rendered[m] = true
		var members []string
		for _, name := range m.names {
			members = append(members, flagUsage(p.argumentByFlag(name)))
		}
		if m.required {
			parts = append(parts, "("+strings.Join(members, " | ")+")")
		} else {
			parts = append(parts, "["+strings.Join(members, " | ")+"]")
		}
	}
	for _, arg := range p.arguments {
		if arg.Positional {
			parts = append(parts, positionalUsage(arg))
		}
	}
	return strings.Join(parts, " ")
}

// Help returns the full help text: usage, description, one block per
// section and the epilog.
func (p *Parser) Help() string {
	var b strings.Builder
	b.WriteString(p.Usage())
	b.WriteString("\n")
	if p.description != "" {
		fmt.Fprintf(&b, "\n%s\n", p.description)
	}

	var positionals []*Argument
	positionals = append(positionals, p.options.positionals...)
	for _, sec := range p.groups {
		positionals = append(positionals, sec.positionals...)
	}
	if len(positionals) > 0 {
		b.WriteString("\npositional arguments:\n")
		writePositionals(&b, positionals)
	}

	fmt.Fprintf(&b, "\n%s:\n%s", p.options.title, p.options.flags.FlagUsages())
	for _, sec := range p.groups {
		if !sec.flags.HasFlags() {
			continue
		}
		fmt.Fprintf(&b, "\n%s:\n", sec.title)
		if sec.description != "" {
			fmt.Fprintf(&b, "  %s\n\n", sec.description)
		}
		b.WriteString(sec.flags.FlagUsages())
	}

	if p.epilog != "" {
		fmt.Fprintf(&b, "\n%s\n", p.epilog)
	}
	return b.String()
}

func (p *Parser) argumentByFlag(name string) *Argument {
	for _, arg := range p.arguments {
		if arg.flag != nil && arg.flag.Name == name {
			return arg
		}
	}
	return nil
}

func flagUsage(arg *Argument) string {
	name := arg.OptionStrings()[0]
	if arg.Kind == KindBool {
		return name
	}
	return name + " " + strings.ToUpper(arg.Dest)
}

func positionalUsage(arg *Argument) string {
	switch arg.Nargs {
	case "?":
		return "[" + arg.Dest + "]"
	case "*":
		return "[" + arg.Dest + " ...]"
	case "+":
		return arg.Dest + " [" + arg.Dest + " ...]"
	}
	return arg.Dest
}

func writePositionals(b *strings.Builder, args []*Argument) {
	w := tabwriter.NewWriter(b, 0, 4, 3, ' ', 0)
	for _, arg := range args {
		fmt.Fprintf(w, "  %s\t%s\n", arg.Dest, arg.Help)
	}
	w.Flush()
}
