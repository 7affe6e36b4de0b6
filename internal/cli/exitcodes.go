package cli

import "errors"

// Exit codes (§6): gdlint and gdformat share the same three-value scheme,
// unlike markdownlint-style tooling's finer-grained sysexits conventions.
const (
	// ExitClean means no diagnostics were emitted (gdlint) or no file
	// needed changes (gdformat).
	ExitClean = 0

	// ExitIssuesFound means diagnostics were emitted, or gdformat found
	// (or would make) changes.
	ExitIssuesFound = 1

	// ExitInvalidUsage means invalid invocation, an unreadable input, or
	// a configuration error (malformed TOML, bad value types).
	ExitInvalidUsage = 2
)

// errIssuesFound and errInvalidUsage carry an exit code through a Cobra
// RunE return without printing a duplicate error line; main.go inspects
// them with errors.Is to pick the process exit code.
var (
	errIssuesFound  = errors.New("issues found")
	errInvalidUsage = errors.New("invalid usage")
)

// ExitCode maps an error returned from a command's RunE to a process exit
// code. A nil error means success.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitClean
	case errors.Is(err, errIssuesFound):
		return ExitIssuesFound
	case errors.Is(err, errInvalidUsage):
		return ExitInvalidUsage
	default:
		return ExitInvalidUsage
	}
}

// IsExpectedExit reports whether err is the bare "issues found" sentinel,
// used to signal a non-zero exit code after diagnostics the command already
// printed itself — as opposed to an invalid-usage error, which carries a
// message worth logging.
func IsExpectedExit(err error) bool {
	return errors.Is(err, errIssuesFound)
}
