package metaparse

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vk/argstore/internal/argparse"
	"github.com/vk/argstore/internal/format"
)

// EmptyValue is shown for slots that have no parsed value.
const EmptyValue = "<empty>"

// Node wraps an argparse.Container and accumulates the record template for
// the arguments and groups declared through it.
type Node struct {
	container argparse.Container

	separator   string
	title       string
	description string
	epilog      string

	sec *section
}

// section holds what a node accumulates. Mutually exclusive handles share
// their declaring node's section.
type section struct {
	fragments  []string
	children   []*Node
	formatters map[string]format.Formatter
}

func newNode(c argparse.Container, d defaults) *Node {
	return &Node{
		container:   c,
		separator:   d.separator,
		title:       d.title,
		description: d.description,
		epilog:      d.epilog,
		sec: &section{
			formatters: make(map[string]format.Formatter),
		},
	}
}

// New wraps container. Unset fields default to an empty separator and a
// single newline for the title, description and epilog.
func New(container argparse.Container, opts ...Option) *Node {
	_, d := resolve(opts, nodeDefaults)
	return newNode(container, d)
}

// Container returns the wrapped container.
func (n *Node) Container() argparse.Container {
	return n.container
}

// Fragments returns the node's fragments in declaration order.
func (n *Node) Fragments() []string {
	return slices.Clone(n.sec.fragments)
}

// Children returns the group nodes declared on this node.
func (n *Node) Children() []*Node {
	return slices.Clone(n.sec.children)
}

// AddArgument declares an argument on the wrapped container and records its
// fragment. Errors from the container are returned as is.
func (n *Node) AddArgument(spec argparse.Spec, opts ...ArgOption) (*argparse.Argument, error) {
	arg, err := n.container.AddArgument(spec)
	if err != nil {
		return nil, err
	}

	var o argOptions
	for _, opt := range opts {
		opt(&o)
	}

	formatter := o.formatter
	if formatter == nil && o.fragment == nil && arg.IsFile() {
		formatter = format.FileName
	}
	n.sec.formatters[arg.Dest] = formatter

	fragment := ""
	if o.fragment != nil {
		fragment = *o.fragment
	} else {
		name := capitalize(arg.Dest)
		if o.name != nil {
			name = *o.name
		}
		fragment = fmt.Sprintf(" %s: {%s}\n", format.Escape(name), arg.Dest)
	}
	n.sec.fragments = append(n.sec.fragments, fragment)
	return arg, nil
}

// AddGroup declares an argument group and returns the node for it. Without
// WithTitle the group's title piece is "\n --- <name> ---\n", where name
// comes from WithName or else the group's own title.
func (n *Node) AddGroup(title, description string, opts ...Option) *Node {
	c := n.container.AddArgumentGroup(title, description)
	o, d := resolve(opts, groupDefaults)
	if o.title == nil {
		name := c.Title()
		if o.name != nil {
			name = *o.name
		}
		d.title = fmt.Sprintf("\n --- %s ---\n", format.Escape(name))
	}

	child := newNode(c, d)
	n.sec.children = append(n.sec.children, child)
	return child
}

// AddMutuallyExclusiveGroup declares a mutually exclusive group. The returned
// node adds to this node's own template rather than a section of its own.
func (n *Node) AddMutuallyExclusiveGroup(required bool) *Node {
	return &Node{
		container:   n.container.AddMutuallyExclusiveGroup(required),
		separator:   n.separator,
		title:       n.title,
		description: n.description,
		epilog:      n.epilog,
		sec:         n.sec,
	}
}

// Template flattens the node into a single format string: title,
// description, fragments, every child's template and the epilog, joined with
// the separator. Zero-length pieces are skipped.
func (n *Node) Template() string {
	pieces := []string{n.title, n.description}
	pieces = append(pieces, n.sec.fragments...)
	for _, child := range n.sec.children {
		pieces = append(pieces, splitLines(child.Template())...)
	}
	pieces = append(pieces, n.epilog)

	kept := []string{""}
	for _, p := range pieces {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, n.separator)
}

// Values maps every slot known to the node and its descendants to a display
// value: the formatted parsed value, the raw parsed value when the slot has no
// formatter, or EmptyValue when ns has no entry. A formatter's error is
// returned as is.
func (n *Node) Values(ns argparse.Namespace) (map[string]any, error) {
	formatters := make(map[string]format.Formatter)
	n.collectFormatters(formatters)

	values := make(map[string]any, len(formatters))
	for slot := range formatters {
		values[slot] = EmptyValue
	}
	for _, slot := range slices.Sorted(maps.Keys(ns)) {
		raw := ns[slot]
		f := formatters[slot]
		if f == nil {
			values[slot] = raw
			continue
		}
		s, err := f(raw)
		if err != nil {
			return nil, err
		}
		values[slot] = s
	}
	return values, nil
}

// Render fills the template with the values computed from ns.
func (n *Node) Render(ns argparse.Namespace) (string, error) {
	values, err := n.Values(ns)
	if err != nil {
		return "", err
	}
	return format.Fill(n.Template(), values)
}

// collectFormatters merges the node's formatters with those of all
// descendants, descendants last.
func (n *Node) collectFormatters(dst map[string]format.Formatter) {
	maps.Copy(dst, n.sec.formatters)
	for _, child := range n.sec.children {
		child.collectFormatters(dst)
	}
}

// splitLines splits s after every newline, keeping the line endings.
func splitLines(s string) []string {
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
