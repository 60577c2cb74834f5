package toml

import (
	"fmt"

	"github.com/vk/argstore/internal/config"
)

func translateRoot(r *fileRoot) (*config.Model, error) {
	args, err := translateArguments(r.Arguments)
	if err != nil {
		return nil, err
	}
	exclusive, err := translateExclusive(r.Exclusive)
	if err != nil {
		return nil, err
	}
	groups, err := translateGroups(r.Groups)
	if err != nil {
		return nil, err
	}
	return &config.Model{
		Program:     r.Program,
		Description: r.Description,
		Epilog:      r.Epilog,
		Record:      translateRecord(r.Record),
		Arguments:   args,
		Exclusive:   exclusive,
		Groups:      groups,
	}, nil
}

func translateRecord(r *record) *config.Record {
	if r == nil {
		return nil
	}
	return &config.Record{
		Separator:   r.Separator,
		Title:       r.Title,
		Description: r.Description,
		Epilog:      r.Epilog,
	}
}

func translateArguments(in []*argument) ([]*config.Argument, error) {
	var out []*config.Argument
	for _, a := range in {
		def, err := normalizeDefault(a.Default)
		if err != nil {
			return nil, fmt.Errorf("argument %q: invalid default: %w", a.Name, err)
		}
		out = append(out, &config.Argument{
			Name:        a.Name,
			Flags:       a.Flags,
			Positional:  a.Positional,
			Type:        a.Type,
			Help:        a.Help,
			Default:     def,
			Required:    a.Required,
			Choices:     a.Choices,
			Nargs:       a.Nargs,
			DisplayName: a.DisplayName,
			Fragment:    a.Fragment,
			Formatter:   a.Formatter,
		})
	}
	return out, nil
}

func translateExclusive(in []*exclusive) ([]*config.Exclusive, error) {
	var out []*config.Exclusive
	for _, x := range in {
		args, err := translateArguments(x.Arguments)
		if err != nil {
			return nil, err
		}
		out = append(out, &config.Exclusive{Required: x.Required, Arguments: args})
	}
	return out, nil
}

func translateGroups(in []*group) ([]*config.Group, error) {
	var out []*config.Group
	for _, g := range in {
		args, err := translateArguments(g.Arguments)
		if err != nil {
			return nil, err
		}
		exclusive, err := translateExclusive(g.Exclusive)
		if err != nil {
			return nil, err
		}
		groups, err := translateGroups(g.Groups)
		if err != nil {
			return nil, err
		}
		out = append(out, &config.Group{
			Title:       g.Title,
			Description: g.Description,
			DisplayName: g.DisplayName,
			Record:      translateRecord(g.Record),
			Arguments:   args,
			Exclusive:   exclusive,
			Groups:      groups,
		})
	}
	return out, nil
}

// normalizeDefault maps the decoder's values onto those the HCL loader
// produces: scalars pass through and arrays become a []string.
func normalizeDefault(v any) (any, error) {
	switch d := v.(type) {
	case nil, string, int64, float64, bool:
		return d, nil
	case []any:
		out := make([]string, len(d))
		for i, item := range d {
			switch item.(type) {
			case string, int64, float64, bool:
				out[i] = fmt.Sprint(item)
			default:
				return nil, fmt.Errorf("unsupported list element of type %T", item)
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported value of type %T", v)
}
