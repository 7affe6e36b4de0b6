package rules

import (
	"github.com/gdtoolsuite/gdtools/pkg/gdast"
	"github.com/gdtoolsuite/gdtools/pkg/token"
)

// tokenText returns the source bytes a token spans, as a string.
func tokenText(f *gdast.File, idx int) string {
	t := f.Tokens[idx]
	return string(f.Buffer.Content[t.Start:t.End])
}

// nextNonTrivia returns the index (into f.Tokens) of the first non-trivia
// token in ll after position after (exclusive), or -1 if none.
func nextNonTrivia(f *gdast.File, ll *gdast.LogicalLine, after int) int {
	found := false
	for _, idx := range ll.TokenIdx {
		if found {
			if !isTriviaKind(f.Tokens[idx].Kind) {
				return idx
			}
			continue
		}
		if idx == after {
			found = true
		}
	}
	return -1
}

func isTriviaKind(k token.Kind) bool {
	switch k {
	case token.Whitespace, token.LineComment, token.Indent, token.Dedent:
		return true
	}
	return false
}

// diagPos converts a token's start offset to a 1-based (line, col) pair.
func diagPos(f *gdast.File, idx int) (line, col int) {
	return f.Buffer.OffsetToPos(f.Tokens[idx].Start)
}

// diagEndPos converts a token's end offset to a 1-based (line, col) pair.
func diagEndPos(f *gdast.File, idx int) (line, col int) {
	return f.Buffer.OffsetToPos(f.Tokens[idx].End)
}
