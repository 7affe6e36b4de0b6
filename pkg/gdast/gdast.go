// Package gdast folds a flat token stream into logical lines and an
// indentation-derived block tree. It owns no bytes of its own: every
// LogicalLine is a window of indices into the token slice it was built
// from, and every token's byte range still points back into the
// originating source.Buffer.
package gdast

import (
	"github.com/gdtoolsuite/gdtools/pkg/source"
	"github.com/gdtoolsuite/gdtools/pkg/token"
)

// HeaderKind names the construct a block-header logical line opens.
// Empty for ordinary (non-header) logical lines.
type HeaderKind string

const (
	HeaderNone       HeaderKind = ""
	HeaderFunc       HeaderKind = "func"
	HeaderIf         HeaderKind = "if"
	HeaderElif       HeaderKind = "elif"
	HeaderElse       HeaderKind = "else"
	HeaderFor        HeaderKind = "for"
	HeaderWhile      HeaderKind = "while"
	HeaderMatch      HeaderKind = "match"
	HeaderClass      HeaderKind = "class"
	HeaderStaticFunc HeaderKind = "static_func"
	HeaderMatchArm   HeaderKind = "match_arm"
)

var headerKeywords = map[token.Keyword]HeaderKind{
	token.KwFunc:  HeaderFunc,
	token.KwIf:    HeaderIf,
	token.KwElif:  HeaderElif,
	token.KwElse:  HeaderElse,
	token.KwFor:   HeaderFor,
	token.KwWhile: HeaderWhile,
	token.KwMatch: HeaderMatch,
	token.KwClass: HeaderClass,
}

// LogicalLine is a run of tokens ending at an un-bracketed Newline (or
// EOF). TokenIdx indexes into the owning File's Tokens slice.
type LogicalLine struct {
	TokenIdx []int
	Depth    int

	// LeadingComments are indices of comment-only physical lines
	// immediately preceding this logical line, in file order.
	LeadingComments []int

	// TrailingComment is the index of a same-line trailing LineComment
	// token, or -1 if none.
	TrailingComment int

	HeaderKind HeaderKind
}

// FirstNonTrivia returns the index (into File.Tokens) of this line's
// first non-trivia token, or -1 if the line is entirely trivia.
func (l *LogicalLine) FirstNonTrivia(toks []token.Token) int {
	for _, idx := range l.TokenIdx {
		if !isTrivia(toks[idx].Kind) {
			return idx
		}
	}
	return -1
}

// LastNonTrivia returns the index of this line's last non-trivia token,
// or -1 if the line is entirely trivia.
func (l *LogicalLine) LastNonTrivia(toks []token.Token) int {
	for i := len(l.TokenIdx) - 1; i >= 0; i-- {
		idx := l.TokenIdx[i]
		if !isTrivia(toks[idx].Kind) {
			return idx
		}
	}
	return -1
}

func isTrivia(k token.Kind) bool {
	switch k {
	case token.Whitespace, token.LineComment, token.Indent, token.Dedent, token.Newline:
		return true
	}
	return false
}

// Block is a run of LogicalLines sharing one indentation depth and one
// enclosing header. Children hang off FirstChild; siblings chain through
// Next, in the order their headers appeared.
type Block struct {
	Header *LogicalLine
	Depth  int
	Lines  []*LogicalLine

	Parent     *Block
	FirstChild *Block
	Next       *Block
}

// File is the structured-stream handoff between the line structurer and
// the directive scanner, rule engine, and formatter.
type File struct {
	Buffer     *source.Buffer
	Tokens     []token.Token
	Lines      []*LogicalLine
	Root       *Block
	IndentUnit []byte
}

// Structure folds a token stream into a File. Structural errors
// (indentation that doesn't divide evenly into the inferred unit) are
// surfaced by the tokenizer as RawErrors, not duplicated here; Structure
// itself only folds and never re-validates indentation width.
func Structure(buf *source.Buffer, toks []token.Token) (*File, []source.RawError) {
	f := &File{Buffer: buf, Tokens: toks}
	for _, tok := range toks {
		if tok.Kind == token.Indent {
			f.IndentUnit = buf.Content[tok.Start:tok.End]
			break
		}
	}

	f.Lines = foldLogicalLines(toks)
	classifyHeaders(f)
	f.Root = buildBlockTree(f.Lines)
	return f, nil
}

// foldLogicalLines splits the token stream on un-bracketed Newline
// tokens, tracking depth via Indent/Dedent tokens and attaching
// comment-only physical lines as leading comments of the following
// logical line (or, at end of file, as a trailing block on the last
// logical line).
func foldLogicalLines(toks []token.Token) []*LogicalLine {
	var lines []*LogicalLine
	var cur []int
	depth := 0
	var pendingComments []int
	curHasContent := false
	var trailingComment int = -1

	flush := func() {
		if !curHasContent {
			return
		}
		lines = append(lines, &LogicalLine{
			TokenIdx:        cur,
			Depth:           depth,
			LeadingComments: pendingComments,
			TrailingComment: trailingComment,
		})
		cur = nil
		pendingComments = nil
		curHasContent = false
		trailingComment = -1
	}

	for i, tok := range toks {
		switch tok.Kind {
		case token.Indent:
			depth++
			continue
		case token.Dedent:
			depth--
			continue
		case token.EOF:
			if !curHasContent && hasComment(cur, toks) {
				pendingComments = append(pendingComments, commentIdx(cur, toks))
				cur = nil
			}
			flush()
			continue
		case token.Newline:
			if curHasContent {
				cur = append(cur, i)
				flush()
			} else {
				// A physical line with nothing but a comment (or
				// nothing at all) before the newline.
				if hasComment(cur, toks) {
					pendingComments = append(pendingComments, commentIdx(cur, toks))
				}
				cur = nil
			}
			continue
		case token.Whitespace:
			cur = append(cur, i)
			continue
		case token.LineComment:
			cur = append(cur, i)
			if curHasContent {
				trailingComment = i
			}
			continue
		default:
			cur = append(cur, i)
			curHasContent = true
		}
	}
	flush()

	if len(pendingComments) > 0 && len(lines) > 0 {
		last := lines[len(lines)-1]
		last.LeadingComments = append(last.LeadingComments, pendingComments...)
	}

	return lines
}

func hasComment(idx []int, toks []token.Token) bool {
	for _, i := range idx {
		if toks[i].Kind == token.LineComment {
			return true
		}
	}
	return false
}

func commentIdx(idx []int, toks []token.Token) int {
	for _, i := range idx {
		if toks[i].Kind == token.LineComment {
			return i
		}
	}
	return -1
}

// classifyHeaders assigns HeaderKind to each logical line per §4.C: the
// last non-trivia token must be `:` and the first non-trivia token must
// be one of the header keywords, `static` immediately followed by
// `func`, or (inside a match block) any pattern at all.
func classifyHeaders(f *File) {
	matchDepths := map[int]bool{}
	for _, l := range f.Lines {
		first := l.FirstNonTrivia(f.Tokens)
		last := l.LastNonTrivia(f.Tokens)
		if first == -1 || last == -1 || f.Tokens[last].Kind != token.Colon {
			matchDepths[l.Depth] = false
			continue
		}

		ft := f.Tokens[first]
		switch {
		case ft.Kind == token.KeywordKind && ft.Which == token.KwStatic:
			if nextIdx := nextNonTrivia(l, f.Tokens, first); nextIdx != -1 &&
				f.Tokens[nextIdx].Kind == token.KeywordKind && f.Tokens[nextIdx].Which == token.KwFunc {
				l.HeaderKind = HeaderStaticFunc
			}
		case ft.Kind == token.KeywordKind:
			if kind, ok := headerKeywords[ft.Which]; ok {
				l.HeaderKind = kind
			}
		case matchDepths[l.Depth]:
			l.HeaderKind = HeaderMatchArm
		}

		if l.HeaderKind == HeaderMatch {
			matchDepths[l.Depth+1] = true
		}
	}
}

func nextNonTrivia(l *LogicalLine, toks []token.Token, after int) int {
	found := false
	for _, idx := range l.TokenIdx {
		if found {
			if !isTrivia(toks[idx].Kind) {
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

// buildBlockTree groups LogicalLines into the indentation-derived tree.
// A run of lines continues the block currently open at its depth; a
// line whose depth exceeds the open block opens a fresh child block
// headed by the most recent header line seen at the shallower depth.
func buildBlockTree(lines []*LogicalLine) *Block {
	root := &Block{Depth: 0}
	type frame struct {
		block *Block
		depth int
	}
	stack := []frame{{root, 0}}
	lastChild := map[*Block]*Block{}
	var pendingHeader *LogicalLine

	appendChild := func(parent *Block, child *Block) {
		if last, ok := lastChild[parent]; ok {
			last.Next = child
		} else {
			parent.FirstChild = child
		}
		lastChild[parent] = child
	}

	for _, l := range lines {
		d := l.Depth
		for len(stack) > 1 && stack[len(stack)-1].depth > d {
			stack = stack[:len(stack)-1]
		}
		top := stack[len(stack)-1]

		if top.depth != d {
			child := &Block{Header: pendingHeader, Depth: d, Parent: top.block}
			appendChild(top.block, child)
			stack = append(stack, frame{child, d})
			top = stack[len(stack)-1]
		}

		top.block.Lines = append(top.block.Lines, l)

		if l.HeaderKind != HeaderNone {
			pendingHeader = l
		} else {
			pendingHeader = nil
		}
	}

	return root
}
