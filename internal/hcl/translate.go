package hcl

import (
	"fmt"

	"github.com/vk/argstore/internal/config"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// translateRoot converts the HCL-specific file schema into the agnostic model.
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
		def, err := ctyToGo(a.Default)
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

// ctyToGo converts a default value into the plain Go value the parser
// expects. Whole numbers become int64, other numbers float64 and collections
// a []string.
func ctyToGo(v *cty.Value) (any, error) {
	if v == nil || v.IsNull() {
		return nil, nil
	}
	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("value is not known")
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		var s string
		err := gocty.FromCtyValue(*v, &s)
		return s, err
	case ty == cty.Bool:
		var b bool
		err := gocty.FromCtyValue(*v, &b)
		return b, err
	case ty == cty.Number:
		if bf := v.AsBigFloat(); bf.IsInt() {
			var n int64
			err := gocty.FromCtyValue(*v, &n)
			return n, err
		}
		var f float64
		err := gocty.FromCtyValue(*v, &f)
		return f, err
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		list, err := convert.Convert(*v, cty.List(cty.String))
		if err != nil {
			return nil, err
		}
		var out []string
		err = gocty.FromCtyValue(list, &out)
		return out, err
	}
	return nil, fmt.Errorf("unsupported type %s", ty.FriendlyName())
}
