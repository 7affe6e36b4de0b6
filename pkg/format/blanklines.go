package format

import "github.com/gdtoolsuite/gdtools/pkg/gdast"

// blankLinesBefore computes how many blank lines to emit before cur,
// given the original gap between prev's end and cur's start (§4.F):
// collapse runs greater than two down to two, and enforce a floor of one
// blank line between top-level declarations, or two between func
// declarations at class scope.
func blankLinesBefore(prev, cur *gdast.LogicalLine, prevEndLine, curStartLine int) int {
	if prev == nil {
		return 0
	}

	raw := curStartLine - prevEndLine - 1
	if raw < 0 {
		raw = 0
	}
	if raw > 2 {
		raw = 2
	}

	if cur.Depth == 0 && prev.Depth == 0 {
		switch {
		case isFuncHeader(cur) || isFuncHeader(prev):
			if raw < 2 {
				raw = 2
			}
		default:
			if raw < 1 {
				raw = 1
			}
		}
	}

	return raw
}

func isFuncHeader(l *gdast.LogicalLine) bool {
	return l.HeaderKind == gdast.HeaderFunc || l.HeaderKind == gdast.HeaderStaticFunc
}
