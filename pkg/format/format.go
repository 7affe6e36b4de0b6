// Package format implements the GDScript canonical re-serializer (§4.F).
// It reuses the same front-end as the linter (source.Buffer, the
// tokenizer, and gdast.File) and never re-parses its own output through a
// separate code path, which is what makes idempotence a structural
// guarantee rather than a tested accident: re-tokenizing and re-rendering
// a file already in canonical form reproduces the same token spacing and
// blank-line decisions byte for byte.
package format

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdtoolsuite/gdtools/pkg/config"
	"github.com/gdtoolsuite/gdtools/pkg/directive"
	"github.com/gdtoolsuite/gdtools/pkg/fix"
	"github.com/gdtoolsuite/gdtools/pkg/gdast"
	"github.com/gdtoolsuite/gdtools/pkg/source"
	"github.com/gdtoolsuite/gdtools/pkg/token"
)

// ErrStructuralIssue is returned when a file has a structural error
// (inconsistent indentation) the formatter refuses to rewrite (§7: "the
// formatter must never produce output for a file that contains
// structural errors").
var ErrStructuralIssue = errors.New("file has a structural error; refusing to format")

// Result is the outcome of formatting one file.
type Result struct {
	// Formatted is the canonical re-serialization of the input.
	Formatted []byte

	// Changed reports whether Formatted differs from the original bytes.
	Changed bool

	// Diff is non-nil when Changed is true; suitable for --diff rendering.
	Diff *fix.Diff
}

// File formats GDScript source. path is used only for error messages and
// diff headers; no I/O happens here.
func File(_ context.Context, path string, content []byte, cfg *config.Config) (*Result, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	buf, bufErrs := source.Load(path, content)
	if len(bufErrs) > 0 {
		return nil, fmt.Errorf("%s: %s", path, bufErrs[0].Message)
	}

	toks, tokErrs := token.Tokenize(buf)
	for _, re := range tokErrs {
		if isMixedIndentation(re.Message) {
			return nil, fmt.Errorf("%s: %w: %s", path, ErrStructuralIssue, re.Message)
		}
	}
	if len(tokErrs) > 0 {
		return nil, fmt.Errorf("%s: %s", path, tokErrs[0].Message)
	}

	file, structErrs := gdast.Structure(buf, toks)
	if len(structErrs) > 0 {
		return nil, fmt.Errorf("%s: %w: %s", path, ErrStructuralIssue, structErrs[0].Message)
	}

	sup, regions, _ := directive.Scan(file, func(string) bool { return true })
	_ = sup // suppression comments do not affect formatting, only linting

	edits, err := fix.PrepareEdits(buildEdits(file, regions, cfg), len(content))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	formatted := fix.ApplyEdits(content, edits)

	result := &Result{Formatted: formatted}
	diff := fix.GenerateDiff(path, content, formatted)
	if diff.HasChanges() {
		result.Changed = true
		result.Diff = diff
	}
	return result, nil
}

func isMixedIndentation(msg string) bool {
	for i := 0; i+len("mixed indentation") <= len(msg); i++ {
		if msg[i:i+len("mixed indentation")] == "mixed indentation" {
			return true
		}
	}
	return false
}
