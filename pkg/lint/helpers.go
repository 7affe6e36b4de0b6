package lint

import (
	"bytes"

	"github.com/gdtoolsuite/gdtools/pkg/gdast"
)

// Line-based helpers shared by the rules in pkg/lint/rules.

// LineContent returns the content of the given 1-based physical line,
// excluding its terminating newline. Returns nil if out of range.
func LineContent(f *gdast.File, lineNum int) []byte {
	if f == nil || f.Buffer == nil {
		return nil
	}
	return f.Buffer.LineText(lineNum)
}

// LineLength returns the rendered length of the given 1-based line,
// excluding its newline. Returns 0 if out of range.
func LineLength(f *gdast.File, lineNum int) int {
	return len(LineContent(f, lineNum))
}

// HasTrailingWhitespace returns true if the line ends with a space or tab.
func HasTrailingWhitespace(f *gdast.File, lineNum int) bool {
	content := LineContent(f, lineNum)
	if len(content) == 0 {
		return false
	}
	last := content[len(content)-1]
	return last == ' ' || last == '\t'
}

// TrailingWhitespaceRange returns the byte offset range of trailing
// whitespace on a line, or (-1, -1) if there is none.
func TrailingWhitespaceRange(f *gdast.File, lineNum int) (int, int) {
	if f == nil || f.Buffer == nil || lineNum < 1 || lineNum > len(f.Buffer.Lines) {
		return -1, -1
	}
	info := f.Buffer.Lines[lineNum-1]
	content := f.Buffer.Content[info.StartOffset:info.NewlineStart]
	if len(content) == 0 {
		return -1, -1
	}

	end := info.NewlineStart
	start := end
	for idx := len(content) - 1; idx >= 0; idx-- {
		if content[idx] != ' ' && content[idx] != '\t' {
			break
		}
		start = info.StartOffset + idx
	}

	if start == end {
		return -1, -1
	}
	return start, end
}

// LeadingIndent returns the leading whitespace run of the given line.
func LeadingIndent(f *gdast.File, lineNum int) []byte {
	content := LineContent(f, lineNum)
	i := 0
	for i < len(content) && (content[i] == ' ' || content[i] == '\t') {
		i++
	}
	return content[:i]
}

// IsBlankLine returns true if the line contains only whitespace.
func IsBlankLine(f *gdast.File, lineNum int) bool {
	return len(bytes.TrimSpace(LineContent(f, lineNum))) == 0
}
