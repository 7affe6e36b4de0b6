package rules

import (
	"fmt"

	"github.com/gdtoolsuite/gdtools/pkg/lint"
)

const defaultMaxLineLength = 100

// maxLineLengthRule flags any physical line spanned by a logical line
// whose rendered width exceeds the configured max. A logical line may
// span several physical lines when it continues inside brackets, so
// every physical line it touches is checked independently.
type maxLineLengthRule struct {
	lint.BaseRule
}

func newMaxLineLengthRule() *maxLineLengthRule {
	return &maxLineLengthRule{BaseRule: lint.NewBaseRule(
		"max-line-length",
		"flags logical lines whose rendered width exceeds the configured maximum",
		[]string{"style"},
	)}
}

func (r *maxLineLengthRule) Apply(rc *lint.RuleContext) ([]lint.Diagnostic, error) {
	max := rc.MaxOr(defaultMaxLineLength)
	toks := rc.File.Tokens
	seen := make(map[int]bool)

	var diags []lint.Diagnostic
	for _, ll := range rc.File.Lines {
		if rc.Cancelled() {
			break
		}
		first := ll.FirstNonTrivia(toks)
		last := ll.LastNonTrivia(toks)
		if first == -1 || last == -1 {
			continue
		}
		startLine, _ := rc.File.Buffer.OffsetToPos(toks[first].Start)
		endLine, _ := rc.File.Buffer.OffsetToPos(toks[last].End)
		for line := startLine; line <= endLine; line++ {
			if seen[line] {
				continue
			}
			seen[line] = true
			width := lint.LineLength(rc.File, line)
			if width > max {
				diags = append(diags, lint.NewDiagnosticAt(r.ID(), "", line, max+1, line, width+1,
					fmt.Sprintf("line too long (%d > %d characters)", width, max)).Build())
			}
		}
	}
	return diags, nil
}
