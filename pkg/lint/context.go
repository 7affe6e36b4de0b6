package lint

import (
	"context"

	"github.com/gdtoolsuite/gdtools/pkg/config"
	"github.com/gdtoolsuite/gdtools/pkg/gdast"
)

// RuleContext provides all context needed by a rule to perform linting.
//
// Design note: RuleContext stores context.Context as a field (Ctx) rather
// than passing it as a method parameter. This is acceptable because
// RuleContext is a short-lived parameter object created per-rule
// invocation, not a long-lived struct. This keeps the Rule interface to a
// single Apply method while still providing cancellation support via the
// Cancelled() helper.
type RuleContext struct {
	// Ctx is the context for cancellation and timeouts.
	Ctx context.Context

	// File is the structured source file.
	File *gdast.File

	// Config is the resolved configuration.
	Config *config.Config

	// Options is the rule's own per-rule table (may be nil).
	Options *config.RuleOptions
}

// NewRuleContext creates a RuleContext for the given file and configuration.
func NewRuleContext(ctx context.Context, file *gdast.File, cfg *config.Config, opts *config.RuleOptions) *RuleContext {
	return &RuleContext{
		Ctx:     ctx,
		File:    file,
		Config:  cfg,
		Options: opts,
	}
}

// Cancelled returns true if the context has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

// MaxOr returns the rule's configured `max` option, or defaultValue if
// unset.
func (rc *RuleContext) MaxOr(defaultValue int) int {
	if rc.Options == nil || rc.Options.Max == nil {
		return defaultValue
	}
	return *rc.Options.Max
}

// PatternOr returns the rule's configured `pattern` option, or
// defaultValue if unset.
func (rc *RuleContext) PatternOr(defaultValue string) string {
	if rc.Options == nil || rc.Options.Pattern == nil {
		return defaultValue
	}
	return *rc.Options.Pattern
}
