package rules

import (
	"fmt"

	"github.com/gdtoolsuite/gdtools/pkg/gdast"
	"github.com/gdtoolsuite/gdtools/pkg/lint"
	"github.com/gdtoolsuite/gdtools/pkg/token"
)

// unusedArgumentRule flags func parameters that are never referenced in
// their body and don't start with an underscore.
type unusedArgumentRule struct {
	lint.BaseRule
}

func newUnusedArgumentRule() *unusedArgumentRule {
	return &unusedArgumentRule{BaseRule: lint.NewBaseRule(
		"unused-argument",
		"flags func parameters never referenced in the function body",
		[]string{"correctness"},
	)}
}

func (r *unusedArgumentRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic
	for _, ll := range rc.File.Lines {
		if ll.HeaderKind != gdast.HeaderFunc && ll.HeaderKind != gdast.HeaderStaticFunc {
			continue
		}
		body := gdast.BlockForHeader(rc.File.Root, ll)
		if body == nil {
			continue
		}
		used := identifierSet(rc.File, body)
		for _, param := range functionParams(rc.File, ll) {
			name := tokenText(rc.File, param)
			if len(name) == 0 || name[0] == '_' {
				continue
			}
			if used[name] {
				continue
			}
			line, col := diagPos(rc.File, param)
			endLine, endCol := diagEndPos(rc.File, param)
			diags = append(diags, lint.NewDiagnosticAt(r.ID(), "", line, col, endLine, endCol,
				fmt.Sprintf("unused function argument %q", name)).Build())
		}
	}
	return diags, nil
}

// functionParams returns the token indices of each parameter name in a
// func header's parameter list.
func functionParams(f *gdast.File, ll *gdast.LogicalLine) []int {
	var params []int
	depth := 0
	inParams := false
	expectName := true

	for _, idx := range ll.TokenIdx {
		t := f.Tokens[idx]
		switch t.Kind {
		case token.LParen:
			if !inParams {
				inParams = true
				depth = 1
				expectName = true
				continue
			}
			depth++
		case token.RParen:
			if inParams {
				depth--
				if depth == 0 {
					return params
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
				expectName = true
				continue
			}
		case token.Ident:
			if inParams && depth == 1 && expectName {
				params = append(params, idx)
				expectName = false
			}
		}
	}
	return params
}

// identifierSet collects the set of identifier texts appearing anywhere
// in b and its descendant blocks.
func identifierSet(f *gdast.File, b *gdast.Block) map[string]bool {
	set := make(map[string]bool)
	gdast.Walk(b, func(blk *gdast.Block) {
		for _, ll := range blk.Lines {
			for _, idx := range ll.TokenIdx {
				if f.Tokens[idx].Kind == token.Ident {
					set[tokenText(f, idx)] = true
				}
			}
		}
	})
	return set
}
