package argparse

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// ErrHelp is returned by Parse when -h or --help was given. The help text has
// already been written to the parser's output.
var ErrHelp = pflag.ErrHelp

// ValidationError is returned for invalid declarations and malformed input.
// Code is the process exit code the caller is expected to use.
type ValidationError struct {
	Code    int
	Message string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return e.Message
}

// declarationError reports a problem with an argument declaration.
func declarationError(names []string, format string, args ...any) *ValidationError {
	msg := fmt.Sprintf(format, args...)
	if len(names) > 0 {
		msg = fmt.Sprintf("argument %s: %s", strings.Join(names, "/"), msg)
	}
	return &ValidationError{Code: 1, Message: msg}
}
