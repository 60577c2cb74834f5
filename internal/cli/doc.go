// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. argstore's
// own options are declared through metaparse, so every invocation can be
// recorded the same way as the programs it serves.
package cli
