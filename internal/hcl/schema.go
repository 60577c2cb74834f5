package hcl

import "github.com/zclconf/go-cty/cty"

// fileRoot is the top-level structure of a schema file.
type fileRoot struct {
	Program     string       `hcl:"program,optional"`
	Description string       `hcl:"description,optional"`
	Epilog      string       `hcl:"epilog,optional"`
	Record      *record      `hcl:"record,block"`
	Arguments   []*argument  `hcl:"argument,block"`
	Exclusive   []*exclusive `hcl:"exclusive,block"`
	Groups      []*group     `hcl:"group,block"`
}

// record holds the template fields of a section.
type record struct {
	Separator   *string `hcl:"separator,optional"`
	Title       *string `hcl:"title,optional"`
	Description *string `hcl:"description,optional"`
	Epilog      *string `hcl:"epilog,optional"`
}

// argument is an `argument "name" { ... }` block.
type argument struct {
	Name        string     `hcl:"name,label"`
	Flags       []string   `hcl:"flags,optional"`
	Positional  bool       `hcl:"positional,optional"`
	Type        string     `hcl:"type,optional"`
	Help        string     `hcl:"help,optional"`
	Default     *cty.Value `hcl:"default,optional"`
	Required    bool       `hcl:"required,optional"`
	Choices     []string   `hcl:"choices,optional"`
	Nargs       string     `hcl:"nargs,optional"`
	DisplayName *string    `hcl:"display_name,optional"`
	Fragment    *string    `hcl:"fragment,optional"`
	Formatter   string     `hcl:"formatter,optional"`
}

// exclusive is an `exclusive { ... }` block.
type exclusive struct {
	Required  bool        `hcl:"required,optional"`
	Arguments []*argument `hcl:"argument,block"`
}

// group is a `group "title" { ... }` block.
type group struct {
	Title       string       `hcl:"title,label"`
	Description string       `hcl:"description,optional"`
	DisplayName *string      `hcl:"display_name,optional"`
	Record      *record      `hcl:"record,block"`
	Arguments   []*argument  `hcl:"argument,block"`
	Exclusive   []*exclusive `hcl:"exclusive,block"`
	Groups      []*group     `hcl:"group,block"`
}
