package rules

import (
	"github.com/gdtoolsuite/gdtools/pkg/config"
	"github.com/gdtoolsuite/gdtools/pkg/lint"
)

// trailingWhitespaceRule flags any physical line whose last byte before
// the newline is a space or tab.
type trailingWhitespaceRule struct {
	lint.BaseRule
}

func newTrailingWhitespaceRule() *trailingWhitespaceRule {
	return &trailingWhitespaceRule{BaseRule: lint.NewBaseRule(
		"trailing-whitespace",
		"flags lines with trailing space or tab characters",
		[]string{"whitespace"},
	)}
}

func (r *trailingWhitespaceRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic
	for i := 1; i <= rc.File.Buffer.LineCount(); i++ {
		if rc.Cancelled() {
			break
		}
		if !lint.HasTrailingWhitespace(rc.File, i) {
			continue
		}
		startOff, endOff := lint.TrailingWhitespaceRange(rc.File, i)
		if startOff < 0 {
			continue
		}
		_, startCol := rc.File.Buffer.OffsetToPos(startOff)
		_, endCol := rc.File.Buffer.OffsetToPos(endOff)
		diags = append(diags, lint.NewDiagnosticAt(r.ID(), "", i, startCol, i, endCol,
			"trailing whitespace").Build())
	}
	return diags, nil
}

// tabsAndSpacesRule flags a physical line whose leading indentation mixes
// tabs and spaces.
type tabsAndSpacesRule struct {
	lint.BaseRule
}

func newTabsAndSpacesRule() *tabsAndSpacesRule {
	return &tabsAndSpacesRule{BaseRule: lint.NewBaseRule(
		"tabs-and-spaces",
		"flags lines whose leading indentation mixes tabs and spaces",
		[]string{"whitespace"},
	)}
}

func (r *tabsAndSpacesRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic
	for i := 1; i <= rc.File.Buffer.LineCount(); i++ {
		if rc.Cancelled() {
			break
		}
		indent := lint.LeadingIndent(rc.File, i)
		sawTab, sawSpace := false, false
		for _, b := range indent {
			if b == '\t' {
				sawTab = true
			} else {
				sawSpace = true
			}
		}
		if sawTab && sawSpace {
			diags = append(diags, lint.NewDiagnosticAt(r.ID(), "", i, 1, i, len(indent)+1,
				"indentation mixes tabs and spaces").Build())
		}
	}
	return diags, nil
}

// mixedIndentationRule has no Apply logic of its own: Engine.LintFile
// emits mixed-indentation diagnostics directly from the tokenizer's
// RawErrors (§7). It is registered only so `gdlint rules`/`dump-config`
// list it alongside the rest of the catalog.
type mixedIndentationRule struct {
	lint.BaseRule
}

func newMixedIndentationRule() *mixedIndentationRule {
	return &mixedIndentationRule{BaseRule: lint.NewBaseRule(
		"mixed-indentation",
		"indentation that does not divide evenly into the file's indent unit (emitted by the tokenizer)",
		[]string{"structure"},
	)}
}

// syntaxErrorRule is a listing-only stub; Engine.LintFile emits
// syntax-error diagnostics directly from front-end RawErrors.
type syntaxErrorRule struct {
	lint.BaseRule
}

func newSyntaxErrorRule() *syntaxErrorRule {
	return &syntaxErrorRule{BaseRule: lint.NewBaseRule(
		"syntax-error",
		"lex-level failure in the tokenizer or structurer (emitted by the front end)",
		[]string{"structure"},
	)}
}

func (r *syntaxErrorRule) DefaultSeverity() config.Severity {
	return config.SeverityError
}

// unknownRuleRule is a listing-only stub; Engine.LintFile emits
// unknown-rule diagnostics directly while scanning directive comments.
type unknownRuleRule struct {
	lint.BaseRule
}

func newUnknownRuleRule() *unknownRuleRule {
	return &unknownRuleRule{BaseRule: lint.NewBaseRule(
		"unknown-rule",
		"a gdlint directive comment references a rule id that isn't registered",
		[]string{"directive"},
	)}
}
