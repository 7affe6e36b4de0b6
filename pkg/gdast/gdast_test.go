package gdast_test

import (
	"testing"

	"github.com/gdtoolsuite/gdtools/pkg/gdast"
	"github.com/gdtoolsuite/gdtools/pkg/source"
	"github.com/gdtoolsuite/gdtools/pkg/token"
)

func structure(t *testing.T, src string) *gdast.File {
	t.Helper()
	buf, bufErrs := source.Load("test.gd", []byte(src))
	if len(bufErrs) != 0 {
		t.Fatalf("unexpected buffer errors: %v", bufErrs)
	}
	toks, tokErrs := token.Tokenize(buf)
	if len(tokErrs) != 0 {
		t.Fatalf("unexpected tokenizer errors: %v", tokErrs)
	}
	f, structErrs := gdast.Structure(buf, toks)
	if len(structErrs) != 0 {
		t.Fatalf("unexpected structure errors: %v", structErrs)
	}
	return f
}

func TestStructure_LogicalLineCount(t *testing.T) {
	t.Parallel()

	f := structure(t, "var x = 1\nvar y = 2\n")
	if len(f.Lines) != 2 {
		t.Fatalf("expected 2 logical lines, got %d", len(f.Lines))
	}
}

func TestStructure_BracketedNewlineStaysOneLine(t *testing.T) {
	t.Parallel()

	f := structure(t, "var v = [1,\n2,\n3]\nvar w = 4\n")
	if len(f.Lines) != 2 {
		t.Fatalf("expected 2 logical lines (bracket continuation folded), got %d", len(f.Lines))
	}
}

func TestStructure_HeaderKinds(t *testing.T) {
	t.Parallel()

	f := structure(t, "func f():\n\tpass\nif a:\n\tpass\nelif b:\n\tpass\nelse:\n\tpass\n")

	var kinds []gdast.HeaderKind
	for _, l := range f.Lines {
		if l.HeaderKind != gdast.HeaderNone {
			kinds = append(kinds, l.HeaderKind)
		}
	}
	want := []gdast.HeaderKind{gdast.HeaderFunc, gdast.HeaderIf, gdast.HeaderElif, gdast.HeaderElse}
	if len(kinds) != len(want) {
		t.Fatalf("got header kinds %v, want %v", kinds, want)
	}
	for i, k := range want {
		if kinds[i] != k {
			t.Errorf("header %d: got %v, want %v", i, kinds[i], k)
		}
	}
}

func TestStructure_ClassAndStaticFunc(t *testing.T) {
	t.Parallel()

	f := structure(t, "class Inner:\n\tstatic func make():\n\t\tpass\n")

	var kinds []gdast.HeaderKind
	for _, l := range f.Lines {
		if l.HeaderKind != gdast.HeaderNone {
			kinds = append(kinds, l.HeaderKind)
		}
	}
	want := []gdast.HeaderKind{gdast.HeaderClass, gdast.HeaderStaticFunc}
	if len(kinds) != len(want) {
		t.Fatalf("got header kinds %v, want %v", kinds, want)
	}
	for i, k := range want {
		if kinds[i] != k {
			t.Errorf("header %d: got %v, want %v", i, kinds[i], k)
		}
	}
}

func TestStructure_MatchArms(t *testing.T) {
	t.Parallel()

	f := structure(t, "match x:\n\t1:\n\t\tpass\n\t_:\n\t\tpass\n")

	var arms int
	for _, l := range f.Lines {
		if l.HeaderKind == gdast.HeaderMatchArm {
			arms++
		}
	}
	if arms != 2 {
		t.Fatalf("expected 2 match arm headers, got %d", arms)
	}
}

func TestStructure_BlockTreeSiblingsForElifElse(t *testing.T) {
	t.Parallel()

	f := structure(t, "if a:\n\tpass\nelif b:\n\tpass\nelse:\n\tpass\n")

	root := f.Root
	if root.FirstChild == nil {
		t.Fatal("expected root to have a first child block")
	}

	var siblings int
	for b := root.FirstChild; b != nil; b = b.Next {
		siblings++
		if b.Header == nil {
			t.Fatalf("sibling block %d has no header", siblings)
		}
	}
	if siblings != 3 {
		t.Fatalf("expected 3 sibling blocks (if/elif/else bodies), got %d", siblings)
	}
}

func TestStructure_ReturnsToParentBlockAfterNestedBlock(t *testing.T) {
	t.Parallel()

	f := structure(t, "if a:\n\tif b:\n\t\tpass\n\tpass\n")

	root := f.Root
	outer := root.FirstChild
	if outer == nil {
		t.Fatal("expected an outer block")
	}
	if len(outer.Lines) != 2 {
		t.Fatalf("expected outer block to have 2 lines (inner if header + trailing pass), got %d", len(outer.Lines))
	}
}

func TestStructure_LeadingCommentsAttach(t *testing.T) {
	t.Parallel()

	f := structure(t, "# leading comment\nvar x = 1\n")
	if len(f.Lines) != 1 {
		t.Fatalf("expected 1 logical line, got %d", len(f.Lines))
	}
	if len(f.Lines[0].LeadingComments) != 1 {
		t.Fatalf("expected 1 leading comment, got %d", len(f.Lines[0].LeadingComments))
	}
}

func TestStructure_TrailingCommentAtEOF(t *testing.T) {
	t.Parallel()

	f := structure(t, "var x = 1\n# trailing\n")
	if len(f.Lines) != 1 {
		t.Fatalf("expected 1 logical line, got %d", len(f.Lines))
	}
	if len(f.Lines[0].LeadingComments) != 1 {
		t.Fatalf("expected the EOF comment to attach to the last logical line, got %d", len(f.Lines[0].LeadingComments))
	}
}

func TestStructure_IndentUnitCaptured(t *testing.T) {
	t.Parallel()

	f := structure(t, "func f():\n    pass\n")
	if string(f.IndentUnit) != "    " {
		t.Errorf("expected indent unit %q, got %q", "    ", string(f.IndentUnit))
	}
}
