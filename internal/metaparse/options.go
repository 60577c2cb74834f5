package metaparse

import "github.com/vk/argstore/internal/format"

// Option sets one of a node's template fields. A field set to the empty
// string is kept empty; only unset fields take the defaults.
type Option func(*nodeOptions)

type nodeOptions struct {
	separator   *string
	title       *string
	description *string
	epilog      *string
	name        *string
}

// WithSeparator sets the string placed between the node's template pieces.
func WithSeparator(s string) Option {
	return func(o *nodeOptions) { o.separator = &s }
}

// WithTitle sets the first piece of the node's template.
func WithTitle(s string) Option {
	return func(o *nodeOptions) { o.title = &s }
}

// WithDescription sets the piece that follows the title.
func WithDescription(s string) Option {
	return func(o *nodeOptions) { o.description = &s }
}

// WithEpilog sets the last piece of the node's template.
func WithEpilog(s string) Option {
	return func(o *nodeOptions) { o.epilog = &s }
}

// WithName sets the display name used in a group's default title. It has no
// effect without AddGroup.
func WithName(s string) Option {
	return func(o *nodeOptions) { o.name = &s }
}

// defaults is one row of the default table.
type defaults struct {
	separator, title, description, epilog string
}

var (
	nodeDefaults  = defaults{separator: "", title: "\n", description: "\n", epilog: "\n"}
	groupDefaults = defaults{separator: "", description: "", epilog: ""}
)

func resolve(opts []Option, d defaults) (nodeOptions, defaults) {
	var o nodeOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.separator != nil {
		d.separator = *o.separator
	}
	if o.title != nil {
		d.title = *o.title
	}
	if o.description != nil {
		d.description = *o.description
	}
	if o.epilog != nil {
		d.epilog = *o.epilog
	}
	return o, d
}

// ArgOption customises the fragment recorded for one argument.
type ArgOption func(*argOptions)

type argOptions struct {
	name      *string
	fragment  *string
	formatter format.Formatter
}

// DisplayName replaces the label of the default fragment.
func DisplayName(s string) ArgOption {
	return func(o *argOptions) { o.name = &s }
}

// Fragment replaces the default fragment entirely. It may reference any slot.
func Fragment(s string) ArgOption {
	return func(o *argOptions) { o.fragment = &s }
}

// FormatWith sets the function applied to the argument's parsed value.
func FormatWith(f format.Formatter) ArgOption {
	return func(o *argOptions) { o.formatter = f }
}
