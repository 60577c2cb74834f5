// Package argparse is the command-line parsing layer argstore decorates. It
// declares arguments one at a time (flags and positionals), organises them into
// help sections and mutually exclusive sets, and parses an argument vector into
// a Namespace keyed by each argument's destination.
//
// Flags are backed by spf13/pflag; required flags and mutually exclusive sets
// are validated by spf13/cobra. Errors are reported as *ValidationError, whose
// Code follows the usual convention of 2 for usage errors.
package argparse
