package format

import (
	"strings"

	"github.com/gdtoolsuite/gdtools/pkg/token"
)

// joinTokens re-renders a line's significant tokens with canonical
// spacing (§4.F intra-line spacing rules), discarding whatever
// whitespace ran between them in the source.
func joinTokens(toks []token.Token, idxs []int, content []byte) string {
	var sb strings.Builder
	var prev *token.Token
	prevWasUnary := false
	expectOperand := true

	for _, idx := range idxs {
		t := toks[idx]

		if prev != nil && spaceBefore(*prev, t, prevWasUnary) {
			sb.WriteByte(' ')
		}
		sb.Write(content[t.Start:t.End])

		prevWasUnary = isUnaryHere(t, expectOperand)
		expectOperand = nextExpectsOperand(t)
		tc := t
		prev = &tc
	}

	return sb.String()
}

// spaceBefore decides whether cur needs a leading space, given the
// immediately preceding significant token prev and whether prev was
// itself a unary operator (which never takes a trailing space).
func spaceBefore(prev, cur token.Token, prevWasUnary bool) bool {
	switch {
	case prevWasUnary:
		return false
	case cur.Kind == token.Comma, cur.Kind == token.Semicolon, cur.Kind == token.Colon, cur.Kind == token.Dot:
		return false
	case cur.Kind == token.RParen, cur.Kind == token.RBracket:
		return false
	case cur.Kind == token.RBrace:
		return prev.Kind != token.LBrace
	case prev.Kind == token.Dot:
		return false
	case prev.Kind == token.LParen, prev.Kind == token.LBracket:
		return false
	case prev.Kind == token.LBrace:
		return cur.Kind != token.RBrace
	case prev.Kind == token.Annotation:
		return cur.Kind != token.LParen
	case cur.Kind == token.LParen && isCallable(prev):
		return false
	case cur.Kind == token.LBracket && isCallable(prev):
		return false
	default:
		return true
	}
}

// isCallable reports whether t can be immediately followed by "(" or "["
// with no space (a call or an index/subscript), as opposed to a grouping
// parenthesis or list/array literal.
func isCallable(t token.Token) bool {
	switch t.Kind {
	case token.Ident, token.RParen, token.RBracket:
		return true
	case token.KeywordKind:
		return t.Which == token.KwSelf
	default:
		return false
	}
}

// isUnaryHere reports whether t, appearing where an operand was
// expected, is a unary operator rather than a binary one.
func isUnaryHere(t token.Token, expectOperand bool) bool {
	if !expectOperand {
		return false
	}
	switch t.Kind {
	case token.Minus, token.Plus, token.Bang, token.Tilde:
		return true
	case token.KeywordKind:
		return t.Which == token.KwNot
	default:
		return false
	}
}

// nextExpectsOperand reports whether, immediately after t, the next
// significant token should be treated as beginning a fresh operand
// (and so a following Minus/Plus/etc. would be unary).
func nextExpectsOperand(t token.Token) bool {
	switch t.Kind {
	case token.Ident, token.IntLit, token.FloatLit, token.StringLit,
		token.NodePathLit, token.UniqueNodeLit, token.StringNameLit,
		token.RParen, token.RBracket, token.RBrace:
		return false
	case token.KeywordKind:
		switch t.Which {
		case token.KwTrue, token.KwFalse, token.KwNull, token.KwSelf:
			return false
		default:
			return true
		}
	default:
		return true
	}
}
