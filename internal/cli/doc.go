// Package cli parses command-line arguments and validates user input. It
// translates flags into an app.Config and reports usage errors as ExitError
// with the process exit code to use.
package cli
