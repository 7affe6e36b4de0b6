package rules

import (
	"fmt"

	"github.com/gdtoolsuite/gdtools/pkg/gdast"
	"github.com/gdtoolsuite/gdtools/pkg/lint"
	"github.com/gdtoolsuite/gdtools/pkg/token"
)

const (
	defaultMaxFunctionArgs  = 10
	defaultMaxFunctionLines = 40
	defaultMaxPublicMethods = 20
)

// maxFunctionArgsRule flags func headers declaring more than the
// configured number of parameters.
type maxFunctionArgsRule struct {
	lint.BaseRule
}

func newMaxFunctionArgsRule() *maxFunctionArgsRule {
	return &maxFunctionArgsRule{BaseRule: lint.NewBaseRule(
		"max-function-args",
		"flags func headers declaring more parameters than the configured maximum",
		[]string{"size"},
	)}
}

func (r *maxFunctionArgsRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
	max := rc.MaxOr(defaultMaxFunctionArgs)

	var diags []lint.Diagnostic
	for _, ll := range rc.File.Lines {
		if ll.HeaderKind != gdast.HeaderFunc && ll.HeaderKind != gdast.HeaderStaticFunc {
			continue
		}
		n := countFunctionArgs(rc.File, ll)
		if n > max {
			first := ll.FirstNonTrivia(rc.File.Tokens)
			line, col := diagPos(rc.File, first)
			diags = append(diags, lint.NewDiagnosticAt(r.ID(), "", line, col, line, col,
				fmt.Sprintf("function has %d parameters, more than the %d allowed", n, max)).Build())
		}
	}
	return diags, nil
}

// countFunctionArgs counts top-level comma-separated parameters between
// the first LParen/RParen pair in a func header.
func countFunctionArgs(f *gdast.File, ll *gdast.LogicalLine) int {
	depth := 0
	inParams := false
	count := 0
	sawToken := false

	for _, idx := range ll.TokenIdx {
		t := f.Tokens[idx]
		switch t.Kind {
		case token.LParen:
			if !inParams {
				inParams = true
				depth = 1
				sawToken = false
				continue
			}
			depth++
		case token.RParen:
			if inParams {
				depth--
				if depth == 0 {
					if sawToken {
						count++
					}
					return count
				}
			}
		case token.LBracket, token.LBrace:
			if inParams {
				depth++
			}
		case token.RBracket, token.RBrace:
			if inParams {
				depth--
			}
		case token.Comma:
			if inParams && depth == 1 {
				if sawToken {
					count++
				}
				sawToken = false
				continue
			}
		}
		if inParams && !isTriviaKind(t.Kind) && t.Kind != token.LParen {
			sawToken = true
		}
	}
	return count
}

// maxFunctionLinesRule flags func bodies spanning more logical lines
// than the configured maximum.
type maxFunctionLinesRule struct {
	lint.BaseRule
}

func newMaxFunctionLinesRule() *maxFunctionLinesRule {
	return &maxFunctionLinesRule{BaseRule: lint.NewBaseRule(
		"max-function-lines",
		"flags func bodies spanning more logical lines than the configured maximum",
		[]string{"size"},
	)}
}

func (r *maxFunctionLinesRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
	max := rc.MaxOr(defaultMaxFunctionLines)

	var diags []lint.Diagnostic
	for _, ll := range rc.File.Lines {
		if ll.HeaderKind != gdast.HeaderFunc && ll.HeaderKind != gdast.HeaderStaticFunc {
			continue
		}
		body := gdast.BlockForHeader(rc.File.Root, ll)
		if body == nil {
			continue
		}
		n := gdast.LineCount(body)
		if n > max {
			first := ll.FirstNonTrivia(rc.File.Tokens)
			line, col := diagPos(rc.File, first)
			diags = append(diags, lint.NewDiagnosticAt(r.ID(), "", line, col, line, col,
				fmt.Sprintf("function body has %d lines, more than the %d allowed", n, max)).Build())
		}
	}
	return diags, nil
}

// maxPublicMethodsRule flags classes (the implicit file-level class, or
// any inner `class` block) declaring more non-underscore-prefixed
// methods than the configured maximum.
type maxPublicMethodsRule struct {
	lint.BaseRule
}

func newMaxPublicMethodsRule() *maxPublicMethodsRule {
	return &maxPublicMethodsRule{BaseRule: lint.NewBaseRule(
		"max-public-methods",
		"flags classes declaring more public methods than the configured maximum",
		[]string{"size"},
	)}
}

func (r *maxPublicMethodsRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
	max := rc.MaxOr(defaultMaxPublicMethods)

	var diags []lint.Diagnostic
	gdast.Walk(rc.File.Root, func(b *gdast.Block) {
		if b.Header != nil && b.Header.HeaderKind != gdast.HeaderClass {
			return
		}
		n := 0
		for _, ll := range b.Lines {
			if ll.HeaderKind != gdast.HeaderFunc && ll.HeaderKind != gdast.HeaderStaticFunc {
				continue
			}
			nameIdx := keywordFollower(rc.File, ll, token.KwFunc)
			if nameIdx == -1 {
				continue
			}
			name := tokenText(rc.File, nameIdx)
			if len(name) > 0 && name[0] != '_' {
				n++
			}
		}
		if n <= max {
			return
		}
		var line, col int
		if b.Header != nil {
			idx := b.Header.FirstNonTrivia(rc.File.Tokens)
			line, col = diagPos(rc.File, idx)
		} else {
			line, col = 1, 1
		}
		diags = append(diags, lint.NewDiagnosticAt(r.ID(), "", line, col, line, col,
			fmt.Sprintf("class has %d public methods, more than the %d allowed", n, max)).Build())
	})
	return diags, nil
}
