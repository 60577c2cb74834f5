// Package config defines the format-agnostic model of an argument schema:
// the program's arguments, mutually exclusive sets and groups, along with
// the record settings for each section.
//
// Concrete loaders, such as for HCL and TOML, live in separate packages and
// implement the Loader interface.
package config
