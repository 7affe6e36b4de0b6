package format

import (
	"strings"

	"github.com/gdtoolsuite/gdtools/pkg/config"
	"github.com/gdtoolsuite/gdtools/pkg/directive"
	"github.com/gdtoolsuite/gdtools/pkg/fix"
	"github.com/gdtoolsuite/gdtools/pkg/gdast"
	"github.com/gdtoolsuite/gdtools/pkg/source"
	"github.com/gdtoolsuite/gdtools/pkg/token"
)

// buildEdits walks file.Lines in source order and produces one TextEdit
// per logical line that replaces its full byte span (leading comments
// through its own trailing newline) with the canonically rendered
// equivalent. Lines inside a directive.SkipRegion get no edit at all, so
// fix.ApplyEdits leaves that byte range untouched.
func buildEdits(file *gdast.File, regions []directive.SkipRegion, cfg *config.Config) []fix.TextEdit {
	buf := file.Buffer
	toks := file.Tokens
	indent := cfg.IndentString()

	builder := fix.NewEditBuilder()
	prevEndLine := 0
	lastEndOffset := 0
	lastInSkipRegion := false
	var prev *gdast.LogicalLine

	for _, line := range file.Lines {
		// A skip region that ends among a line's leading comments keeps
		// those comments verbatim; the rest of the line is formatted.
		if len(line.LeadingComments) > 0 && inSkipRegion(toks[line.LeadingComments[0]].Start, regions) &&
			!inSkipRegion(toks[line.TokenIdx[0]].Start, regions) {
			trimmed := *line
			trimmed.LeadingComments = nil
			for _, c := range line.LeadingComments {
				if !inSkipRegion(toks[c].Start, regions) {
					trimmed.LeadingComments = append(trimmed.LeadingComments, c)
				}
			}
			line, prev = &trimmed, nil
		}

		startOffset, startLine := lineSpanStart(line, toks, buf)
		endOffset, endLine := lineSpanEnd(line, toks, buf)

		if inSkipRegion(toks[line.TokenIdx[0]].Start, regions) {
			prev = line
			prevEndLine = endLine
			lastEndOffset = endOffset
			lastInSkipRegion = true
			continue
		}

		blanks := blankLinesBefore(prev, line, prevEndLine, startLine)

		var sb strings.Builder
		for range blanks {
			sb.WriteString(buf.LineEnding)
		}
		sb.WriteString(renderLine(file, line, cfg, indent))

		builder.ReplaceRange(startOffset, endOffset, sb.String())

		prev = line
		prevEndLine = endLine
		lastEndOffset = endOffset
		lastInSkipRegion = false
	}

	if lastEndOffset > 0 && !lastInSkipRegion {
		trimTrailingBlankLines(builder, buf, lastEndOffset)
	}

	return builder.Edits
}

// trimTrailingBlankLines deletes any blank lines left over past the last
// rendered logical line's own newline, so canonical output never carries
// trailing blank lines at EOF. A file ending inside a fmt:off region is left
// untouched: "off" means preserve exactly, including a missing final
// newline.
func trimTrailingBlankLines(builder *fix.EditBuilder, buf *source.Buffer, from int) {
	if from >= len(buf.Content) {
		return
	}
	builder.Delete(from, len(buf.Content))
}

// lineSpanStart returns the byte offset and 1-based physical line of the
// start of a logical line, including any leading comments.
func lineSpanStart(l *gdast.LogicalLine, toks []token.Token, buf *source.Buffer) (int, int) {
	var idx int
	switch {
	case len(l.LeadingComments) > 0:
		idx = l.LeadingComments[0]
	case len(l.TokenIdx) > 0:
		idx = l.TokenIdx[0]
	default:
		return 0, 1
	}
	line, _ := buf.OffsetToPos(toks[idx].Start)
	return buf.Lines[line-1].StartOffset, line
}

// lineSpanEnd returns the byte offset just past the logical line's last
// physical line (its newline included) and that line's 1-based number.
func lineSpanEnd(l *gdast.LogicalLine, toks []token.Token, buf *source.Buffer) (int, int) {
	last := l.LastNonTrivia(toks)
	if l.TrailingComment != -1 {
		last = l.TrailingComment
	}
	if last == -1 && len(l.TokenIdx) > 0 {
		last = l.TokenIdx[len(l.TokenIdx)-1]
	}
	if last == -1 {
		return 0, 1
	}
	off := toks[last].End
	line, _ := buf.OffsetToPos(off)
	if line > buf.LineCount() {
		line = buf.LineCount()
	}
	return buf.Lines[line-1].EndOffset, line
}

func inSkipRegion(offset int, regions []directive.SkipRegion) bool {
	for _, r := range regions {
		if offset >= r.Start && offset < r.End {
			return true
		}
	}
	return false
}

// renderLine renders one logical line's canonical text: leading comments
// each on their own physical line, the indented and re-spaced content
// (wrapped if needed), and a trailing comment, each terminated with the
// file's dominant line ending.
func renderLine(file *gdast.File, l *gdast.LogicalLine, cfg *config.Config, indent string) string {
	buf := file.Buffer
	toks := file.Tokens
	depthIndent := strings.Repeat(indent, l.Depth)

	var sb strings.Builder
	for _, idx := range l.LeadingComments {
		sb.WriteString(depthIndent)
		sb.Write(buf.Content[toks[idx].Start:toks[idx].End])
		sb.WriteString(buf.LineEnding)
	}

	idxs := significantIdx(l, toks)
	lines := wrap(toks, idxs, buf.Content, l.Depth, indent, cfg.Format.LineLength)

	for i, wline := range lines {
		last := i == len(lines)-1
		sb.WriteString(depthIndent)
		sb.WriteString(wline)
		if last && l.TrailingComment != -1 {
			sb.WriteString("  ")
			sb.Write(buf.Content[toks[l.TrailingComment].Start:toks[l.TrailingComment].End])
		}
		sb.WriteString(buf.LineEnding)
	}

	return sb.String()
}

// significantIdx returns this line's token indices excluding trivia
// (whitespace, comments, newline) which are recomputed rather than
// copied verbatim.
func significantIdx(l *gdast.LogicalLine, toks []token.Token) []int {
	out := make([]int, 0, len(l.TokenIdx))
	for _, idx := range l.TokenIdx {
		switch toks[idx].Kind {
		case token.Whitespace, token.LineComment, token.Newline:
			continue
		}
		out = append(out, idx)
	}
	return out
}
