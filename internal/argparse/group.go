package argparse

// Group is a titled help section of a Parser.
type Group struct {
	parser  *Parser
	section *section
}

// Title implements Container.
func (g *Group) Title() string {
	return g.section.title
}

// AddArgument declares an argument listed under the group's section.
func (g *Group) AddArgument(spec Spec) (*Argument, error) {
	return g.parser.register(spec, g.section, nil)
}

// AddArgumentGroup declares another section on the owning parser. Sections
// do not nest in help output.
func (g *Group) AddArgumentGroup(title, description string) Container {
	return g.parser.AddArgumentGroup(title, description)
}

// AddMutuallyExclusiveGroup declares a mutually exclusive set whose members
// are listed under this group's section.
func (g *Group) AddMutuallyExclusiveGroup(required bool) Container {
	return g.parser.newMutex(g.section, required)
}

// MutexGroup is a set of flags of which at most one may be given. It has no
// help section of its own: members are listed in the declaring container's
// section.
type MutexGroup struct {
	parser   *Parser
	section  *section
	required bool
	names    []string
	applied  bool
}

// Title implements Container. Mutually exclusive groups are untitled.
func (m *MutexGroup) Title() string {
	return ""
}

// Required reports whether one member of the set must be given.
func (m *MutexGroup) Required() bool {
	return m.required
}

// AddArgument declares a member of the set. Positionals and required flags
// are rejected.
func (m *MutexGroup) AddArgument(spec Spec) (*Argument, error) {
	return m.parser.register(spec, m.section, m)
}

// AddArgumentGroup declares another section on the owning parser.
func (m *MutexGroup) AddArgumentGroup(title, description string) Container {
	return m.parser.AddArgumentGroup(title, description)
}

// AddMutuallyExclusiveGroup declares an independent set in the same section.
func (m *MutexGroup) AddMutuallyExclusiveGroup(required bool) Container {
	return m.parser.newMutex(m.section, required)
}
