package rules

import (
	"fmt"

	"github.com/gdtoolsuite/gdtools/pkg/gdast"
	"github.com/gdtoolsuite/gdtools/pkg/lint"
	"github.com/gdtoolsuite/gdtools/pkg/token"
)

// duplicateKeyRule flags dictionary literals with a repeated key token,
// pointing at the second occurrence.
type duplicateKeyRule struct {
	lint.BaseRule
}

func newDuplicateKeyRule() *duplicateKeyRule {
	return &duplicateKeyRule{BaseRule: lint.NewBaseRule(
		"duplicate-key",
		"flags dictionary literals with a repeated key",
		[]string{"correctness"},
	)}
}

func (r *duplicateKeyRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic
	for _, ll := range rc.File.Lines {
		diags = append(diags, dictDuplicates(r.ID(), rc.File, ll)...)
	}
	return diags, nil
}

// dictKeyEntry is one key spotted at the top level of a brace-delimited
// dict literal.
type dictKeyEntry struct {
	text string
	idx  int
}

// dictScope tracks the keys collected so far for one open dict literal.
type dictScope struct {
	depth   int
	entries []dictKeyEntry
	curKey  int
	seenKey bool
}

// dictDuplicates scans every brace-delimited dict literal in ll for
// entries sharing the same key text.
func dictDuplicates(ruleID string, f *gdast.File, ll *gdast.LogicalLine) []lint.Diagnostic {
	var diags []lint.Diagnostic
	toks := f.Tokens

	var stack []*dictScope
	bracketDepth := 0

	top := func() *dictScope {
		if len(stack) == 0 {
			return nil
		}
		return stack[len(stack)-1]
	}

	for _, idx := range ll.TokenIdx {
		t := toks[idx]
		switch t.Kind {
		case token.LBrace:
			bracketDepth++
			stack = append(stack, &dictScope{depth: bracketDepth, curKey: -1})
		case token.RBrace:
			if s := top(); s != nil && s.depth == bracketDepth {
				stack = stack[:len(stack)-1]
				diags = append(diags, reportDuplicates(ruleID, f, s.entries)...)
			}
			bracketDepth--
		case token.LParen, token.LBracket:
			bracketDepth++
		case token.RParen, token.RBracket:
			bracketDepth--
		case token.Colon:
			if s := top(); s != nil && s.depth == bracketDepth && !s.seenKey {
				s.seenKey = true
				if s.curKey != -1 {
					s.entries = append(s.entries, dictKeyEntry{text: tokenText(f, s.curKey), idx: s.curKey})
				}
			}
		case token.Comma:
			if s := top(); s != nil && s.depth == bracketDepth {
				s.curKey = -1
				s.seenKey = false
			}
		default:
			if isTriviaKind(t.Kind) {
				continue
			}
			if s := top(); s != nil && s.depth == bracketDepth && !s.seenKey && s.curKey == -1 {
				s.curKey = idx
			}
		}
	}

	return diags
}

func reportDuplicates(ruleID string, f *gdast.File, entries []dictKeyEntry) []lint.Diagnostic {
	seen := make(map[string]bool)
	var diags []lint.Diagnostic
	for _, e := range entries {
		if seen[e.text] {
			line, col := diagPos(f, e.idx)
			endLine, endCol := diagEndPos(f, e.idx)
			diags = append(diags, lint.NewDiagnosticAt(ruleID, "", line, col, endLine, endCol,
				fmt.Sprintf("duplicate dictionary key %q", e.text)).Build())
			continue
		}
		seen[e.text] = true
	}
	return diags
}
