// Package app contains the core application logic. It loads a schema, builds
// the decorated parser it describes, parses the target program's arguments
// and writes the resulting record, decoupled from any specific entrypoint
// like a CLI.
package app
