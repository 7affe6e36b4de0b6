package format_test

import (
	"context"
	"strings"
	"testing"

	"github.com/gdtoolsuite/gdtools/pkg/config"
	"github.com/gdtoolsuite/gdtools/pkg/format"
)

func TestFile_ReindentsWithTabs(t *testing.T) {
	t.Parallel()

	src := "func foo():\n    var x=1\n    return x\n"
	cfg := config.NewDefaultConfig()

	result, err := format.File(context.Background(), "res://a.gd", []byte(src), cfg)
	if err != nil {
		t.Fatalf("File error: %v", err)
	}
	if !result.Changed {
		t.Fatal("expected a change")
	}
	if !strings.Contains(string(result.Formatted), "\tvar x = 1\n") {
		t.Errorf("unexpected output:\n%s", result.Formatted)
	}
}

func TestFile_Idempotent(t *testing.T) {
	t.Parallel()

	src := "func foo( a,b ):\n\tvar x=a+b\n\treturn x\n"
	cfg := config.NewDefaultConfig()

	first, err := format.File(context.Background(), "res://a.gd", []byte(src), cfg)
	if err != nil {
		t.Fatalf("first format error: %v", err)
	}

	second, err := format.File(context.Background(), "res://a.gd", first.Formatted, cfg)
	if err != nil {
		t.Fatalf("second format error: %v", err)
	}
	if second.Changed {
		t.Errorf("formatting twice should be idempotent, got a second diff:\n%s", second.Diff.String())
	}
	if string(second.Formatted) != string(first.Formatted) {
		t.Errorf("not idempotent:\nfirst:\n%s\nsecond:\n%s", first.Formatted, second.Formatted)
	}
}

func TestFile_WrapsLongArgumentList(t *testing.T) {
	t.Parallel()

	src := "func foo(first_argument, second_argument, third_argument, fourth_argument):\n\tpass\n"
	cfg := config.NewDefaultConfig()
	cfg.Format.LineLength = 40

	result, err := format.File(context.Background(), "res://a.gd", []byte(src), cfg)
	if err != nil {
		t.Fatalf("File error: %v", err)
	}
	if !result.Changed {
		t.Fatal("expected a change")
	}
	if strings.Contains(string(result.Formatted), ",\n\t)") {
		t.Errorf("expected no spurious empty trailing element, got:\n%s", result.Formatted)
	}
	for _, line := range strings.Split(string(result.Formatted), "\n") {
		if strings.TrimSpace(line) == "," {
			t.Errorf("found a bare comma line, got:\n%s", result.Formatted)
		}
	}

	second, err := format.File(context.Background(), "res://a.gd", result.Formatted, cfg)
	if err != nil {
		t.Fatalf("second format error: %v", err)
	}
	if second.Changed {
		t.Errorf("wrapping should be idempotent, got a second diff:\n%s", second.Diff.String())
	}
}

func TestFile_PreservesCRLFLineEndings(t *testing.T) {
	t.Parallel()

	src := "func foo():\r\n    var x=1\r\n    return x\r\n"
	cfg := config.NewDefaultConfig()

	result, err := format.File(context.Background(), "res://a.gd", []byte(src), cfg)
	if err != nil {
		t.Fatalf("File error: %v", err)
	}
	if !strings.Contains(string(result.Formatted), "\r\n") {
		t.Errorf("expected CRLF line endings preserved, got:\n%q", result.Formatted)
	}
	if strings.Count(string(result.Formatted), "\r\n") != strings.Count(string(result.Formatted), "\n") {
		t.Errorf("expected every newline to carry a preceding \\r, got:\n%q", result.Formatted)
	}
}

func TestFile_TrimsTrailingBlankLines(t *testing.T) {
	t.Parallel()

	src := "func foo():\n\tpass\n\n\n\n"
	cfg := config.NewDefaultConfig()

	result, err := format.File(context.Background(), "res://a.gd", []byte(src), cfg)
	if err != nil {
		t.Fatalf("File error: %v", err)
	}
	if !result.Changed {
		t.Fatal("expected a change")
	}
	if string(result.Formatted) != "func foo():\n\tpass\n" {
		t.Errorf("expected trailing blank lines trimmed, got:\n%q", result.Formatted)
	}

	second, err := format.File(context.Background(), "res://a.gd", result.Formatted, cfg)
	if err != nil {
		t.Fatalf("second format error: %v", err)
	}
	if second.Changed {
		t.Errorf("trimming should be idempotent, got a second diff:\n%s", second.Diff.String())
	}
}

func TestFile_PreservesFmtOffRegion(t *testing.T) {
	t.Parallel()

	src := "func foo():\n\t# fmt: off\n\tvar   x   =   1\n\t# fmt: on\n\tvar y=2\n"
	cfg := config.NewDefaultConfig()

	result, err := format.File(context.Background(), "res://a.gd", []byte(src), cfg)
	if err != nil {
		t.Fatalf("File error: %v", err)
	}
	if !strings.Contains(string(result.Formatted), "var   x   =   1") {
		t.Errorf("expected skip region preserved verbatim, got:\n%s", result.Formatted)
	}
	if !strings.Contains(string(result.Formatted), "\tvar y = 2\n") {
		t.Errorf("expected formatting resumed after region, got:\n%s", result.Formatted)
	}
}

func TestFile_RefusesMixedIndentation(t *testing.T) {
	t.Parallel()

	src := "func foo():\n\tvar x = 1\n \tvar y = 2\n"
	cfg := config.NewDefaultConfig()

	_, err := format.File(context.Background(), "res://a.gd", []byte(src), cfg)
	if err == nil {
		t.Fatal("expected an error for mixed indentation")
	}
}

func TestFile_SpacesIndentStyle(t *testing.T) {
	t.Parallel()

	src := "func foo():\n\tpass\n"
	cfg := config.NewDefaultConfig()
	cfg.Format.IndentStyle = config.IndentSpaces
	cfg.Format.IndentSize = 2

	result, err := format.File(context.Background(), "res://a.gd", []byte(src), cfg)
	if err != nil {
		t.Fatalf("File error: %v", err)
	}
	if !strings.Contains(string(result.Formatted), "  pass\n") {
		t.Errorf("expected two-space indent, got:\n%s", result.Formatted)
	}
}
