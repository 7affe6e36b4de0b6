// Package source owns the raw bytes of a GDScript file and the line index
// derived from it. Nothing downstream mutates a Buffer once loaded; tokens
// and logical lines carry byte ranges into it rather than copies.
package source

import "unicode/utf8"

// LineInfo records the byte offsets of one physical line.
type LineInfo struct {
	// StartOffset is the offset of the line's first byte.
	StartOffset int

	// NewlineStart is the offset where the line's terminating newline
	// sequence begins (equal to EndOffset for the file's last line if it
	// has no trailing newline).
	NewlineStart int

	// EndOffset is the offset just past the line's newline sequence
	// (or end of file).
	EndOffset int
}

// RawError is a lex-level error discovered while building a Buffer. It has
// no opinion about rule ids or severities; the rule engine turns these into
// diagnostics.
type RawError struct {
	Offset  int
	Message string
}

// Buffer is the immutable in-memory form of one GDScript file.
type Buffer struct {
	Path       string
	Content    []byte
	Lines      []LineInfo
	LineEnding string // "\n" or "\r\n"
}

// Load builds a Buffer from raw bytes, validating UTF-8 and indexing lines
// in a single forward pass. Invalid UTF-8 sequences produce a RawError and
// are skipped byte-by-byte until resynchronized on ASCII whitespace.
func Load(path string, data []byte) (*Buffer, []RawError) {
	buf := &Buffer{
		Path:       path,
		Content:    data,
		LineEnding: "\n",
	}

	var errs []RawError
	lineStart := 0
	sawNewline := false

	i := 0
	for i < len(data) {
		b := data[i]

		if b == '\n' {
			newlineStart := i
			if i > 0 && data[i-1] == '\r' {
				newlineStart = i - 1
			}
			buf.Lines = append(buf.Lines, LineInfo{
				StartOffset:  lineStart,
				NewlineStart: newlineStart,
				EndOffset:    i + 1,
			})
			if !sawNewline {
				if newlineStart > lineStart && data[newlineStart] == '\r' {
					buf.LineEnding = "\r\n"
				} else {
					buf.LineEnding = "\n"
				}
				sawNewline = true
			}
			lineStart = i + 1
			i++
			continue
		}

		if b >= utf8.RuneSelf {
			r, size := utf8.DecodeRune(data[i:])
			if r == utf8.RuneError && size <= 1 {
				errs = append(errs, RawError{Offset: i, Message: "invalid UTF-8 sequence"})
				i++
				for i < len(data) && !isResyncByte(data[i]) {
					i++
				}
				continue
			}
			i += size
			continue
		}

		i++
	}

	if len(data) > 0 {
		buf.Lines = append(buf.Lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: len(data),
			EndOffset:    len(data),
		})
	}

	return buf, errs
}

func isResyncByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// OffsetToPos converts a byte offset into a 1-based (line, column) pair
// using a binary search over the line index.
func (b *Buffer) OffsetToPos(off int) (line, col int) {
	if len(b.Lines) == 0 {
		return 1, 1
	}

	lo, hi := 0, len(b.Lines)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if b.Lines[mid].StartOffset <= off {
			lo = mid
		} else {
			hi = mid - 1
		}
	}

	info := b.Lines[lo]
	return lo + 1, off - info.StartOffset + 1
}

// LineText returns the content of the given 1-based physical line,
// excluding its terminating newline.
func (b *Buffer) LineText(line int) []byte {
	if line < 1 || line > len(b.Lines) {
		return nil
	}
	info := b.Lines[line-1]
	return b.Content[info.StartOffset:info.NewlineStart]
}

// LineCount returns the number of physical lines in the buffer.
func (b *Buffer) LineCount() int {
	return len(b.Lines)
}

// PosToOffset converts a 1-based (line, column) pair back to a byte offset.
func (b *Buffer) PosToOffset(line, col int) int {
	if line < 1 || line > len(b.Lines) {
		return -1
	}
	return b.Lines[line-1].StartOffset + col - 1
}
