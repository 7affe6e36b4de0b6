// Package lint provides the rule engine, diagnostics, and registry gdlint
// runs its checks through.
package lint

import (
	"github.com/gdtoolsuite/gdtools/pkg/config"
)

// Diagnostic represents a single lint issue found in a file.
type Diagnostic struct {
	// RuleID is the kebab-case identifier of the rule that produced this
	// diagnostic (e.g., "trailing-whitespace").
	RuleID string

	// Message is the human-readable description of the issue.
	Message string

	// Severity indicates the importance of the diagnostic.
	Severity config.Severity

	// FilePath is the path to the file containing the issue.
	FilePath string

	// StartLine, StartColumn, EndLine, EndColumn are 1-based positions.
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// Rule defines the interface every lint rule implements.
type Rule interface {
	// ID returns the unique kebab-case identifier for this rule.
	ID() string

	// Description returns a detailed description of what the rule checks.
	Description() string

	// DefaultSeverity returns the default severity for this rule.
	DefaultSeverity() config.Severity

	// Tags returns categorization tags for this rule (e.g., ["whitespace"]).
	Tags() []string

	// Apply executes the rule against the given context and returns
	// diagnostics. Apply must respect context cancellation and return an
	// error only for internal failures, never for violations found.
	Apply(ctx *RuleContext) ([]Diagnostic, error)
}
