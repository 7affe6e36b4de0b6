package rules

import (
	"fmt"
	"regexp"

	"github.com/gdtoolsuite/gdtools/pkg/gdast"
	"github.com/gdtoolsuite/gdtools/pkg/lint"
	"github.com/gdtoolsuite/gdtools/pkg/token"
)

const (
	functionNamePattern = `^_?[a-z][a-z0-9_]*$`
	classNamePattern    = `^[A-Z][A-Za-z0-9]*$`
	constantNamePattern = `^[A-Z][A-Z0-9_]*$`
	variableNamePattern = `^_?[a-z][a-z0-9_]*$`
)

// functionNameRule flags func identifiers that don't match the
// configured naming pattern.
type functionNameRule struct {
	lint.BaseRule
}

func newFunctionNameRule() *functionNameRule {
	return &functionNameRule{BaseRule: lint.NewBaseRule(
		"function-name",
		"flags function names that don't match the configured naming pattern",
		[]string{"naming"},
	)}
}

func (r *functionNameRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
	re, err := regexp.Compile(rc.PatternOr(functionNamePattern))
	if err != nil {
		return nil, fmt.Errorf("function-name: %w", err)
	}

	var diags []lint.Diagnostic
	for _, ll := range rc.File.Lines {
		if ll.HeaderKind != gdast.HeaderFunc && ll.HeaderKind != gdast.HeaderStaticFunc {
			continue
		}
		nameIdx := keywordFollower(rc.File, ll, token.KwFunc)
		if nameIdx == -1 {
			continue
		}
		name := tokenText(rc.File, nameIdx)
		if !re.MatchString(name) {
			diags = append(diags, nameDiagnostic(r.ID(), rc.File, nameIdx, name, "function"))
		}
	}
	return diags, nil
}

// classNameRule flags class_name/inner-class identifiers that don't
// match the configured naming pattern.
type classNameRule struct {
	lint.BaseRule
}

func newClassNameRule() *classNameRule {
	return &classNameRule{BaseRule: lint.NewBaseRule(
		"class-name",
		"flags class_name and inner class identifiers that don't match the configured naming pattern",
		[]string{"naming"},
	)}
}

func (r *classNameRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
	re, err := regexp.Compile(rc.PatternOr(classNamePattern))
	if err != nil {
		return nil, fmt.Errorf("class-name: %w", err)
	}

	var diags []lint.Diagnostic
	for _, ll := range rc.File.Lines {
		var nameIdx int = -1
		if ll.HeaderKind == gdast.HeaderClass {
			nameIdx = keywordFollower(rc.File, ll, token.KwClass)
		} else {
			nameIdx = keywordFollower(rc.File, ll, token.KwClassName)
		}
		if nameIdx == -1 {
			continue
		}
		name := tokenText(rc.File, nameIdx)
		if !re.MatchString(name) {
			diags = append(diags, nameDiagnostic(r.ID(), rc.File, nameIdx, name, "class"))
		}
	}
	return diags, nil
}

// constantNameRule flags const identifiers that don't match the
// configured naming pattern.
type constantNameRule struct {
	lint.BaseRule
}

func newConstantNameRule() *constantNameRule {
	return &constantNameRule{BaseRule: lint.NewBaseRule(
		"constant-name",
		"flags const identifiers that don't match the configured naming pattern",
		[]string{"naming"},
	)}
}

func (r *constantNameRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
	re, err := regexp.Compile(rc.PatternOr(constantNamePattern))
	if err != nil {
		return nil, fmt.Errorf("constant-name: %w", err)
	}

	var diags []lint.Diagnostic
	for _, ll := range rc.File.Lines {
		nameIdx := keywordFollower(rc.File, ll, token.KwConst)
		if nameIdx == -1 {
			continue
		}
		name := tokenText(rc.File, nameIdx)
		if !re.MatchString(name) {
			diags = append(diags, nameDiagnostic(r.ID(), rc.File, nameIdx, name, "constant"))
		}
	}
	return diags, nil
}

// variableNameRule flags var identifiers that don't match the
// configured naming pattern.
type variableNameRule struct {
	lint.BaseRule
}

func newVariableNameRule() *variableNameRule {
	return &variableNameRule{BaseRule: lint.NewBaseRule(
		"variable-name",
		"flags var identifiers that don't match the configured naming pattern",
		[]string{"naming"},
	)}
}

func (r *variableNameRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
	re, err := regexp.Compile(rc.PatternOr(variableNamePattern))
	if err != nil {
		return nil, fmt.Errorf("variable-name: %w", err)
	}

	var diags []lint.Diagnostic
	for _, ll := range rc.File.Lines {
		nameIdx := keywordFollower(rc.File, ll, token.KwVar)
		if nameIdx == -1 {
			continue
		}
		name := tokenText(rc.File, nameIdx)
		if !re.MatchString(name) {
			diags = append(diags, nameDiagnostic(r.ID(), rc.File, nameIdx, name, "variable"))
		}
	}
	return diags, nil
}

// keywordFollower scans ll for kw and returns the index of the next
// identifier token after it, or -1 if kw or a following identifier
// isn't present.
func keywordFollower(f *gdast.File, ll *gdast.LogicalLine, kw token.Keyword) int {
	for _, idx := range ll.TokenIdx {
		t := f.Tokens[idx]
		if t.Kind == token.KeywordKind && t.Which == kw {
			if n := nextNonTrivia(f, ll, idx); n != -1 && f.Tokens[n].Kind == token.Ident {
				return n
			}
			return -1
		}
	}
	return -1
}

func nameDiagnostic(ruleID string, f *gdast.File, idx int, name, kind string) lint.Diagnostic {
	startLine, startCol := diagPos(f, idx)
	endLine, endCol := diagEndPos(f, idx)
	return lint.NewDiagnosticAt(ruleID, "", startLine, startCol, endLine, endCol,
		fmt.Sprintf("%s name %q doesn't match naming convention", kind, name)).Build()
}
