package metaparse

import (
	"fmt"

	"github.com/vk/argstore/internal/argparse"
	"github.com/vk/argstore/internal/format"
)

// Parser is the root node of a record template together with the parser it
// decorates.
type Parser struct {
	*Node
	parser *argparse.Parser
}

// NewParser creates an argparse.Parser from cfg and wraps it. The title
// defaults to "### <prog>\n"; the other fields follow New.
func NewParser(cfg argparse.Config, opts ...Option) *Parser {
	p := argparse.NewParser(cfg)
	d := nodeDefaults
	d.title = fmt.Sprintf("### %s\n", format.Escape(p.Prog()))
	_, d = resolve(opts, d)
	return &Parser{Node: newNode(p, d), parser: p}
}

// Parse parses args with the wrapped parser.
func (p *Parser) Parse(args []string) (argparse.Namespace, error) {
	return p.parser.Parse(args)
}

// Unwrap returns the wrapped parser.
func (p *Parser) Unwrap() *argparse.Parser {
	return p.parser
}
