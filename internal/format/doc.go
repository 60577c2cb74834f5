// Package format fills record templates and provides the named value
// formatters that schema files can refer to.
//
// Templates use "{slot}" placeholders that are replaced by the value stored
// under slot. "{{" and "}}" stand for literal braces. Placeholders carry no
// conversion or format options.
package format
