// Package metaparse decorates an argparse container with a record template.
//
// Every argument declared through a Node contributes one fragment, such as
// " Gap: {gap}\n", to the node's template; every group contributes a nested
// section with its own title. After parsing, Values turns the Namespace into
// display-ready values and Render fills the template with them, producing a
// plain-text record of the invocation:
//
//	p := metaparse.NewParser(argparse.Config{Prog: "align"})
//	p.AddArgument(argparse.Spec{Flags: []string{"--gap"}, Kind: argparse.KindInt})
//	ns, err := p.Parse(os.Args[1:])
//	...
//	record, err := p.Render(ns)
//
// Templates use "{slot}" placeholders; see package format for the syntax.
package metaparse
