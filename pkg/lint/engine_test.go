package lint_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gdtoolsuite/gdtools/pkg/config"
	"github.com/gdtoolsuite/gdtools/pkg/lint"
)

// diagnosticRule is a test rule that produces fixed diagnostics.
type diagnosticRule struct {
	lint.BaseRule
	diags []lint.Diagnostic
	err   error
}

func (r *diagnosticRule) Apply(_ *lint.RuleContext) ([]lint.Diagnostic, error) {
	return r.diags, r.err
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	engine := lint.NewEngine(registry)

	if engine.Registry != registry {
		t.Error("Registry mismatch")
	}
}

func TestEngine_LintFile_Basic(t *testing.T) {
	t.Parallel()

	engine := lint.NewEngine(lint.NewRegistry())
	cfg := config.NewDefaultConfig()

	result, err := engine.LintFile(context.Background(), "test.gd", []byte("var x = 1\n"), cfg)
	if err != nil {
		t.Fatalf("LintFile error: %v", err)
	}
	if result.File == nil {
		t.Error("expected File to be set")
	}
}

func TestEngine_LintFile_WithDiagnostics(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	rule := &diagnosticRule{
		BaseRule: lint.NewBaseRule("test-rule", "", nil),
		diags: []lint.Diagnostic{
			{RuleID: "test-rule", Message: "test issue", StartLine: 1, StartColumn: 1},
		},
	}
	registry.Register(rule)

	engine := lint.NewEngine(registry)
	cfg := config.NewDefaultConfig()

	result, err := engine.LintFile(context.Background(), "test.gd", []byte("var x = 1\n"), cfg)
	if err != nil {
		t.Fatalf("LintFile error: %v", err)
	}
	if !result.HasIssues() {
		t.Error("expected issues")
	}
	if result.IssueCount() != 1 {
		t.Errorf("expected 1 issue, got %d", result.IssueCount())
	}
	if result.Diagnostics[0].Message != "test issue" {
		t.Errorf("Message = %q, want test issue", result.Diagnostics[0].Message)
	}
}

func TestEngine_LintFile_SeverityOverride(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	rule := &diagnosticRule{
		BaseRule: lint.NewBaseRule("test-rule", "", nil),
		diags: []lint.Diagnostic{
			{RuleID: "test-rule", Message: "test", StartLine: 1},
		},
	}
	registry.Register(rule)

	engine := lint.NewEngine(registry)
	cfg := config.NewDefaultConfig()
	severity := string(config.SeverityError)
	cfg.Rules["test-rule"] = config.RuleOptions{Severity: &severity}

	result, err := engine.LintFile(context.Background(), "test.gd", []byte("var x = 1\n"), cfg)
	if err != nil {
		t.Fatalf("LintFile error: %v", err)
	}
	if result.Diagnostics[0].Severity != config.SeverityError {
		t.Errorf("Severity = %v, want error", result.Diagnostics[0].Severity)
	}
}

func TestEngine_LintFile_RuleError(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	ruleErr := errors.New("rule failed")
	rule := &diagnosticRule{
		BaseRule: lint.NewBaseRule("test-rule", "", nil),
		err:      ruleErr,
	}
	registry.Register(rule)

	engine := lint.NewEngine(registry)
	cfg := config.NewDefaultConfig()

	result, err := engine.LintFile(context.Background(), "test.gd", []byte("var x = 1\n"), cfg)
	if err != nil {
		t.Fatalf("LintFile should not return error for rule errors: %v", err)
	}
	if !errors.Is(result.RuleErrors["test-rule"], ruleErr) {
		t.Errorf("expected rule error to be recorded")
	}
}

func TestEngine_LintFile_RuleDisabled(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	rule := &diagnosticRule{
		BaseRule: lint.NewBaseRule("test-rule", "", nil),
		diags: []lint.Diagnostic{
			{RuleID: "test-rule", Message: "test issue", StartLine: 1},
		},
	}
	registry.Register(rule)

	engine := lint.NewEngine(registry)
	cfg := config.NewDefaultConfig()
	cfg.RulesDisable = []string{"test-rule"}

	result, err := engine.LintFile(context.Background(), "test.gd", []byte("var x = 1\n"), cfg)
	if err != nil {
		t.Fatalf("LintFile error: %v", err)
	}
	if result.HasIssues() {
		t.Error("expected no issues when the rule is disabled")
	}
}

func TestEngine_LintFile_FilePathSet(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	rule := &diagnosticRule{
		BaseRule: lint.NewBaseRule("test-rule", "", nil),
		diags: []lint.Diagnostic{
			{RuleID: "test-rule", Message: "test issue", StartLine: 1},
		},
	}
	registry.Register(rule)

	engine := lint.NewEngine(registry)
	cfg := config.NewDefaultConfig()

	result, err := engine.LintFile(context.Background(), "path/to/file.gd", []byte("var x = 1\n"), cfg)
	if err != nil {
		t.Fatalf("LintFile error: %v", err)
	}
	if result.Diagnostics[0].FilePath != "path/to/file.gd" {
		t.Errorf("FilePath = %q, want path/to/file.gd", result.Diagnostics[0].FilePath)
	}
}

func TestEngine_LintFile_MixedIndentationDiagnostic(t *testing.T) {
	t.Parallel()

	engine := lint.NewEngine(lint.NewRegistry())
	cfg := config.NewDefaultConfig()

	src := "func f():\n\t pass\n"
	result, err := engine.LintFile(context.Background(), "test.gd", []byte(src), cfg)
	if err != nil {
		t.Fatalf("LintFile error: %v", err)
	}

	var found bool
	for _, d := range result.Diagnostics {
		if d.RuleID == "mixed-indentation" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a mixed-indentation diagnostic, got %v", result.Diagnostics)
	}
}

func TestEngine_LintFile_UnknownRuleDirective(t *testing.T) {
	t.Parallel()

	engine := lint.NewEngine(lint.NewRegistry())
	cfg := config.NewDefaultConfig()

	src := "var x = 1  # gdlint:ignore=not-a-real-rule\n"
	result, err := engine.LintFile(context.Background(), "test.gd", []byte(src), cfg)
	if err != nil {
		t.Fatalf("LintFile error: %v", err)
	}

	var found bool
	for _, d := range result.Diagnostics {
		if d.RuleID == "unknown-rule" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an unknown-rule diagnostic, got %v", result.Diagnostics)
	}
}

func TestEngine_LintFile_SuppressionDropsDiagnostic(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	rule := &diagnosticRule{
		BaseRule: lint.NewBaseRule("test-rule", "", nil),
		diags: []lint.Diagnostic{
			{RuleID: "test-rule", Message: "test issue", StartLine: 1},
		},
	}
	registry.Register(rule)

	engine := lint.NewEngine(registry)
	cfg := config.NewDefaultConfig()

	src := "var x = 1  # gdlint:ignore=test-rule\n"
	result, err := engine.LintFile(context.Background(), "test.gd", []byte(src), cfg)
	if err != nil {
		t.Fatalf("LintFile error: %v", err)
	}
	for _, d := range result.Diagnostics {
		if d.RuleID == "test-rule" {
			t.Error("expected the suppressed diagnostic to be dropped")
		}
	}
}

func TestFileResult_Methods(t *testing.T) {
	t.Parallel()

	result := &lint.FileResult{}
	if result.HasIssues() {
		t.Error("expected no issues")
	}

	result.Diagnostics = []lint.Diagnostic{{}}
	if !result.HasIssues() {
		t.Error("expected issues")
	}
	if result.IssueCount() != 1 {
		t.Errorf("expected 1, got %d", result.IssueCount())
	}
}
