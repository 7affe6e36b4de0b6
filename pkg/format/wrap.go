package format

import (
	"github.com/gdtoolsuite/gdtools/pkg/token"
)

// wrap renders a logical line's significant tokens, wrapping at the
// outermost bracketed comma list when the natural rendering would
// exceed lineLength (§4.F "Line wrapping"). The first returned line has
// no extra indent beyond the caller's base depth indent; interior
// element lines carry one extra indent level; the final line (the
// closing bracket, plus anything after it) returns to the base depth.
// If no splittable bracket is found, the natural-width rendering is
// returned as a single line and over-length is left for the linter to
// report.
func wrap(toks []token.Token, idxs []int, content []byte, depth int, indent string, lineLength int) []string {
	rendered := joinTokens(toks, idxs, content)
	if len(indent)*depth+len(rendered) <= lineLength || lineLength <= 0 {
		return []string{rendered}
	}

	openPos, closePos, elemStarts := findOutermostList(toks, idxs)
	if openPos == -1 {
		return []string{rendered}
	}

	prefix := joinTokens(toks, idxs[:openPos+1], content)
	suffix := joinTokens(toks, idxs[closePos:], content)

	var lines []string
	lines = append(lines, prefix)
	for i, start := range elemStarts {
		end := closePos
		if i+1 < len(elemStarts) {
			end = elemStarts[i+1] - 1 // exclude the separating comma
		}
		if start >= end {
			// A trailing comma already in the source leaves this slot
			// empty; skip it rather than emitting a bare ",".
			continue
		}
		elem := joinTokens(toks, idxs[start:end], content)
		if elem == "" {
			continue
		}
		lines = append(lines, indent+elem+",")
	}
	lines = append(lines, suffix)

	return lines
}

// findOutermostList locates the first top-level bracket pair (by
// position in idxs) that directly contains at least one comma, and
// returns its open/close positions in idxs plus the idxs-positions where
// each comma-separated element begins.
func findOutermostList(toks []token.Token, idxs []int) (openPos, closePos int, elemStarts []int) {
	type frame struct {
		openPos int
		commas  []int
	}
	var stack []frame

	for pos, idx := range idxs {
		switch toks[idx].Kind {
		case token.LParen, token.LBracket, token.LBrace:
			stack = append(stack, frame{openPos: pos})
		case token.RParen, token.RBracket, token.RBrace:
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(stack) == 0 && len(top.commas) > 0 {
				starts := make([]int, 0, len(top.commas)+1)
				starts = append(starts, top.openPos+1)
				for _, c := range top.commas {
					starts = append(starts, c+1)
				}
				return top.openPos, pos, starts
			}
		case token.Comma:
			if len(stack) > 0 {
				stack[len(stack)-1].commas = append(stack[len(stack)-1].commas, pos)
			}
		}
	}

	return -1, -1, nil
}
