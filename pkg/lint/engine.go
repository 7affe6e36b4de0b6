package lint

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/gdtoolsuite/gdtools/pkg/config"
	"github.com/gdtoolsuite/gdtools/pkg/directive"
	"github.com/gdtoolsuite/gdtools/pkg/gdast"
	"github.com/gdtoolsuite/gdtools/pkg/source"
	"github.com/gdtoolsuite/gdtools/pkg/token"
)

// FileResult contains the results of linting a single file.
type FileResult struct {
	// File is the structured source file.
	File *gdast.File

	// Diagnostics contains all issues found, sorted by (line, column, rule id).
	Diagnostics []Diagnostic

	// RuleErrors contains any errors from rule execution, keyed by rule id.
	RuleErrors map[string]error
}

// HasIssues returns true if any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// IssueCount returns the total number of diagnostics.
func (fr *FileResult) IssueCount() int {
	return len(fr.Diagnostics)
}

// Engine coordinates the front-end (source → token → gdast → directive)
// and rule execution for linting. GDScript has exactly one front-end, so
// unlike the teacher there is no swappable Parser here.
type Engine struct {
	// Registry holds all available rules.
	Registry *Registry
}

// NewEngine creates a new Engine with the given registry.
func NewEngine(registry *Registry) *Engine {
	return &Engine{Registry: registry}
}

// LintFile runs the full front-end and rule set against content.
func (e *Engine) LintFile(ctx context.Context, path string, content []byte, cfg *config.Config) (*FileResult, error) {
	buf, bufErrs := source.Load(path, content)
	toks, tokErrs := token.Tokenize(buf)
	file, structErrs := gdast.Structure(buf, toks)

	sup, _, unknownRefs := directive.Scan(file, e.Registry.Known)

	result := &FileResult{
		File:       file,
		RuleErrors: make(map[string]error),
	}

	emit := func(d Diagnostic) {
		if sup.Suppressed(d.StartLine, d.RuleID) {
			return
		}
		result.Diagnostics = append(result.Diagnostics, d)
	}

	for _, re := range bufErrs {
		emit(rawErrorDiagnostic(path, buf, re, cfg))
	}
	for _, re := range tokErrs {
		emit(rawErrorDiagnostic(path, buf, re, cfg))
	}
	for _, re := range structErrs {
		emit(rawErrorDiagnostic(path, buf, re, cfg))
	}
	for _, ref := range unknownRefs {
		line, col := buf.OffsetToPos(ref.Offset)
		emit(NewDiagnosticAt("unknown-rule", path, line, col, line, col,
			fmt.Sprintf("unknown rule %q referenced in directive", ref.RuleID)).
			WithSeverity(ElevateSeverity(config.SeverityWarning, cfg)).Build())
	}

	resolved := ResolveRules(e.Registry, cfg)

	for _, rr := range resolved {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("linting cancelled: %w", ctx.Err())
		default:
		}

		ruleCtx := NewRuleContext(ctx, file, cfg, rr.Options)

		diags, err := rr.Rule.Apply(ruleCtx)
		if err != nil {
			result.RuleErrors[rr.Rule.ID()] = err
			continue
		}

		for i := range diags {
			diags[i].Severity = rr.Severity
			if diags[i].FilePath == "" {
				diags[i].FilePath = path
			}
			if sup.Suppressed(diags[i].StartLine, diags[i].RuleID) {
				continue
			}
			result.Diagnostics = append(result.Diagnostics, diags[i])
		}
	}

	slices.SortFunc(result.Diagnostics, func(a, b Diagnostic) int {
		if c := cmp.Compare(a.StartLine, b.StartLine); c != 0 {
			return c
		}
		if c := cmp.Compare(a.StartColumn, b.StartColumn); c != 0 {
			return c
		}
		return cmp.Compare(a.RuleID, b.RuleID)
	})

	return result, nil
}

// rawErrorDiagnostic turns a front-end RawError into a diagnostic. The
// tokenizer's "mixed indentation" message is the only structural-error
// case (§7); every other lex-level failure is a syntax-error.
func rawErrorDiagnostic(path string, buf *source.Buffer, re source.RawError, cfg *config.Config) Diagnostic {
	line, col := buf.OffsetToPos(re.Offset)
	ruleID := "syntax-error"
	severity := config.SeverityError
	if strings.Contains(re.Message, "mixed indentation") {
		ruleID = "mixed-indentation"
		severity = config.SeverityWarning
	}
	return NewDiagnosticAt(ruleID, path, line, col, line, col, re.Message).WithSeverity(ElevateSeverity(severity, cfg)).Build()
}
