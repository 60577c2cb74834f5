package argparse

import (
	"fmt"
	"regexp"
	"strings"
)

var negativeRe = regexp.MustCompile(`^-(\d+|\d*\.\d+)$`)

// negativeMark hides a negative number from the flag parser. Command-line
// arguments cannot contain NUL, so marked tokens never collide with input.
const negativeMark = "\x00"

// prepareArgs rejects the long spelling of short-only flags and, unless a
// flag such as -1 looks like a negative number, marks standalone negative
// numbers so that they reach the positionals.
func (p *Parser) prepareArgs(args []string) ([]string, error) {
	numericShort := p.hasNumericShort()
	out := make([]string, len(args))
	copy(out, args)

	expectValue := false
	for i, a := range args {
		switch {
		case a == "--":
			return out, nil
		case expectValue:
			expectValue = false
		case strings.HasPrefix(a, "--"):
			name, _, hasValue := strings.Cut(a[2:], "=")
			if arg := p.argumentByFlag(name); arg != nil && arg.Long == "" {
				return nil, fmt.Errorf("unknown flag: --%s", name)
			}
			expectValue = !hasValue && p.takesValue(name)
		case !numericShort && negativeRe.MatchString(a):
			out[i] = negativeMark + a
		case strings.HasPrefix(a, "-") && len(a) > 1:
			expectValue = p.shortsTakeValue(a[1:])
		}
	}
	return out, nil
}

// restoreNegatives undoes the marking done by prepareArgs.
func restoreNegatives(tokens []string) []string {
	for i, tok := range tokens {
		tokens[i] = strings.TrimPrefix(tok, negativeMark)
	}
	return tokens
}

func (p *Parser) hasNumericShort() bool {
	for _, arg := range p.arguments {
		if arg.Short != "" && arg.Short[0] >= '0' && arg.Short[0] <= '9' {
			return true
		}
	}
	return false
}

// takesValue reports whether the flag registered as name consumes the next
// token as its value.
func (p *Parser) takesValue(name string) bool {
	f := p.cmd.Flags().Lookup(name)
	return f != nil && f.NoOptDefVal == ""
}

// shortsTakeValue reports whether a group of shorthands such as "vg" ends with
// a flag that consumes the next token.
func (p *Parser) shortsTakeValue(shorts string) bool {
	for i := 0; i < len(shorts); i++ {
		f := p.cmd.Flags().ShorthandLookup(shorts[i : i+1])
		if f == nil {
			return false
		}
		if f.NoOptDefVal == "" {
			// The rest of the group, if any, is the value.
			return i == len(shorts)-1
		}
	}
	return false
}
