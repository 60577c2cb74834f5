package toml

// fileRoot is the top-level structure of a schema file.
type fileRoot struct {
	Program     string       `toml:"program"`
	Description string       `toml:"description"`
	Epilog      string       `toml:"epilog"`
	Record      *record      `toml:"record"`
	Arguments   []*argument  `toml:"argument"`
	Exclusive   []*exclusive `toml:"exclusive"`
	Groups      []*group     `toml:"group"`
}

type record struct {
	Separator   *string `toml:"separator"`
	Title       *string `toml:"title"`
	Description *string `toml:"description"`
	Epilog      *string `toml:"epilog"`
}

// argument is one `[[argument]]` table.
type argument struct {
	Name        string   `toml:"name"`
	Flags       []string `toml:"flags"`
	Positional  bool     `toml:"positional"`
	Type        string   `toml:"type"`
	Help        string   `toml:"help"`
	Default     any      `toml:"default"`
	Required    bool     `toml:"required"`
	Choices     []string `toml:"choices"`
	Nargs       string   `toml:"nargs"`
	DisplayName *string  `toml:"display_name"`
	Fragment    *string  `toml:"fragment"`
	Formatter   string   `toml:"formatter"`
}

type exclusive struct {
	Required  bool        `toml:"required"`
	Arguments []*argument `toml:"argument"`
}

type group struct {
	Title       string       `toml:"title"`
	Description string       `toml:"description"`
	DisplayName *string      `toml:"display_name"`
	Record      *record      `toml:"record"`
	Arguments   []*argument  `toml:"argument"`
	Exclusive   []*exclusive `toml:"exclusive"`
	Groups      []*group     `toml:"group"`
}
