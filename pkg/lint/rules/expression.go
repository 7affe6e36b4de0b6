package rules

import (
	"github.com/gdtoolsuite/gdtools/pkg/gdast"
	"github.com/gdtoolsuite/gdtools/pkg/lint"
	"github.com/gdtoolsuite/gdtools/pkg/token"
)

// statementKeywords introduce a statement on their own and are never
// themselves an expression-statement violation.
var statementKeywords = map[token.Keyword]bool{
	token.KwVar:       true,
	token.KwConst:     true,
	token.KwSignal:    true,
	token.KwEnum:      true,
	token.KwReturn:    true,
	token.KwPass:      true,
	token.KwBreak:     true,
	token.KwContinue:  true,
	token.KwFunc:      true,
	token.KwClassName: true,
	token.KwExtends:   true,
	token.KwStatic:    true,
	token.KwOnready:   true,
	token.KwExport:    true,
	token.KwClass:     true,
	token.KwIf:        true,
	token.KwElif:      true,
	token.KwElse:      true,
	token.KwFor:       true,
	token.KwWhile:     true,
	token.KwMatch:     true,
}

var assignKinds = map[token.Kind]bool{
	token.Assign:    true,
	token.ColonEq:   true,
	token.PlusEq:    true,
	token.MinusEq:   true,
	token.StarEq:    true,
	token.SlashEq:   true,
	token.PercentEq: true,
}

// expressionNotAssignedRule flags standalone expression statements with
// no assignment, call, or await — an expression evaluated purely for a
// side effect that doesn't exist.
type expressionNotAssignedRule struct {
	lint.BaseRule
}

func newExpressionNotAssignedRule() *expressionNotAssignedRule {
	return &expressionNotAssignedRule{BaseRule: lint.NewBaseRule(
		"expression-not-assigned",
		"flags standalone expression statements with no side effect",
		[]string{"correctness"},
	)}
}

func (r *expressionNotAssignedRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic
	toks := rc.File.Tokens

	for _, ll := range rc.File.Lines {
		if ll.HeaderKind != gdast.HeaderNone {
			continue
		}
		first := ll.FirstNonTrivia(toks)
		if first == -1 {
			continue
		}
		ft := toks[first]
		if ft.Kind == token.Annotation {
			continue
		}
		if ft.Kind == token.KeywordKind && statementKeywords[ft.Which] {
			continue
		}

		hasCall, hasAwait, hasAssign := false, false, false
		for _, idx := range ll.TokenIdx {
			t := toks[idx]
			switch {
			case t.Kind == token.LParen:
				hasCall = true
			case t.Kind == token.KeywordKind && t.Which == token.KwAwait:
				hasAwait = true
			case assignKinds[t.Kind]:
				hasAssign = true
			}
		}
		if hasCall || hasAwait || hasAssign {
			continue
		}

		last := ll.LastNonTrivia(toks)
		startLine, startCol := diagPos(rc.File, first)
		endLine, endCol := diagEndPos(rc.File, last)
		diags = append(diags, lint.NewDiagnosticAt(r.ID(), "", startLine, startCol, endLine, endCol,
			"expression result is not used").Build())
	}
	return diags, nil
}

// noElseReturnRule flags an if/elif branch that unconditionally returns
// and is immediately followed by an elif/else, making the else
// redundant.
type noElseReturnRule struct {
	lint.BaseRule
}

func newNoElseReturnRule() *noElseReturnRule {
	return &noElseReturnRule{BaseRule: lint.NewBaseRule(
		"no-else-return",
		"flags an else/elif branch that's redundant because the preceding branch always returns",
		[]string{"style"},
	)}
}

func (r *noElseReturnRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic
	gdast.Walk(rc.File.Root, func(b *gdast.Block) {
		for i := 0; i+1 < len(b.Lines); i++ {
			cur, next := b.Lines[i], b.Lines[i+1]
			if cur.HeaderKind != gdast.HeaderIf && cur.HeaderKind != gdast.HeaderElif {
				continue
			}
			if next.HeaderKind != gdast.HeaderElif && next.HeaderKind != gdast.HeaderElse {
				continue
			}
			body := gdast.BlockForHeader(rc.File.Root, cur)
			if body == nil || len(body.Lines) == 0 {
				continue
			}
			if !branchAlwaysReturns(rc.File, body) {
				continue
			}
			idx := next.FirstNonTrivia(rc.File.Tokens)
			line, col := diagPos(rc.File, idx)
			diags = append(diags, lint.NewDiagnosticAt(r.ID(), "", line, col, line, col,
				"unnecessary else/elif after a branch that always returns").Build())
		}
	})
	return diags, nil
}

// branchAlwaysReturns reports whether the last logical line of body
// (directly, not inside a nested block) is a return statement.
func branchAlwaysReturns(f *gdast.File, body *gdast.Block) bool {
	last := body.Lines[len(body.Lines)-1]
	idx := last.FirstNonTrivia(f.Tokens)
	if idx == -1 {
		return false
	}
	t := f.Tokens[idx]
	return t.Kind == token.KeywordKind && t.Which == token.KwReturn
}
