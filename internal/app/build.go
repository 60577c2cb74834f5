package app

import (
	"context"
	"fmt"
	"io"

	"github.com/vk/argstore/internal/argparse"
	"github.com/vk/argstore/internal/config"
	"github.com/vk/argstore/internal/ctxlog"
	"github.com/vk/argstore/internal/format"
	"github.com/vk/argstore/internal/metaparse"
)

// Build declares everything in model on a new decorated parser. Options in
// extra are applied to the root after the schema's own record settings.
// Declaration errors from the parser are returned unwrapped.
func Build(ctx context.Context, model *config.Model, formatters *format.Registry, output io.Writer, extra ...metaparse.Option) (*metaparse.Parser, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Building parser from schema.", "program", model.Program)

	opts := append(recordOptions(model.Record), extra...)
	p := metaparse.NewParser(argparse.Config{
		Prog:        model.Program,
		Description: model.Description,
		Epilog:      model.Epilog,
		Output:      output,
	}, opts...)

	b := &builder{formatters: formatters}
	if err := b.declare(p.Node, model.Arguments, model.Exclusive, model.Groups); err != nil {
		return nil, err
	}
	if err := checkSlots(p); err != nil {
		return nil, err
	}

	logger.Debug("Parser built.", "arguments", len(p.Unwrap().Arguments()))
	return p, nil
}

type builder struct {
	formatters *format.Registry
}

// declare adds plain arguments first, then exclusive groups, then nested
// groups.
func (b *builder) declare(n *metaparse.Node, args []*config.Argument, exclusive []*config.Exclusive, groups []*config.Group) error {
	for _, a := range args {
		if err := b.addArgument(n, a); err != nil {
			return err
		}
	}
	for _, x := range exclusive {
		m := n.AddMutuallyExclusiveGroup(x.Required)
		for _, a := range x.Arguments {
			if err := b.addArgument(m, a); err != nil {
				return err
			}
		}
	}
	for _, g := range groups {
		opts := recordOptions(g.Record)
		if g.DisplayName != nil {
			opts = append(opts, metaparse.WithName(*g.DisplayName))
		}
		child := n.AddGroup(g.Title, g.Description, opts...)
		if err := b.declare(child, g.Arguments, g.Exclusive, g.Groups); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) addArgument(n *metaparse.Node, a *config.Argument) error {
	kind, err := argparse.ParseKind(a.Type)
	if err != nil {
		return &argparse.ValidationError{Code: 1, Message: fmt.Sprintf("argument %s: %v", a.Name, err)}
	}

	var opts []metaparse.ArgOption
	if a.DisplayName != nil {
		opts = append(opts, metaparse.DisplayName(*a.DisplayName))
	}
	if a.Fragment != nil {
		opts = append(opts, metaparse.Fragment(*a.Fragment))
	}
	if a.Formatter != "" {
		f, err := b.formatters.Lookup(a.Formatter)
		if err != nil {
			return fmt.Errorf("argument %s: %w", a.Name, err)
		}
		opts = append(opts, metaparse.FormatWith(f))
	}

	_, err = n.AddArgument(argparse.Spec{
		Flags:    a.OptionStrings(),
		Dest:     a.Name,
		Kind:     kind,
		Default:  a.Default,
		Help:     a.Help,
		Required: a.Required,
		Choices:  a.Choices,
		Nargs:    a.Nargs,
	}, opts...)
	return err
}

// checkSlots rejects templates whose custom fragments name a slot that no
// argument fills.
func checkSlots(p *metaparse.Parser) error {
	dests := make(map[string]struct{})
	for _, arg := range p.Unwrap().Arguments() {
		dests[arg.Dest] = struct{}{}
	}
	for _, slot := range format.Slots(p.Template()) {
		if _, ok := dests[slot]; !ok {
			return fmt.Errorf("record template refers to unknown slot %q", slot)
		}
	}
	return nil
}

func recordOptions(r *config.Record) []metaparse.Option {
	if r == nil {
		return nil
	}
	var opts []metaparse.Option
	if r.Separator != nil {
		opts = append(opts, metaparse.WithSeparator(*r.Separator))
	}
	if r.Title != nil {
		opts = append(opts, metaparse.WithTitle(*r.Title))
	}
	if r.Description != nil {
		opts = append(opts, metaparse.WithDescription(*r.Description))
	}
	if r.Epilog != nil {
		opts = append(opts, metaparse.WithEpilog(*r.Epilog))
	}
	return opts
}
