package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/gdtoolsuite/gdtools/pkg/runner"
)

// JSONDiagnostic is one entry of the §6 JSON array:
// {path, line, column, end_line, end_column, severity, message, rule}.
type JSONDiagnostic struct {
	Path      string `json:"path"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"end_line"`
	EndColumn int    `json:"end_column"`
	Severity  string `json:"severity"`
	Message   string `json:"message"`
	Rule      string `json:"rule"`
}

// JSONReporter formats results as a flat JSON array of diagnostics.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	out := make([]JSONDiagnostic, 0)

	if result != nil {
		for _, file := range result.Files {
			if file.Result == nil {
				continue
			}
			for _, diag := range file.Result.Diagnostics {
				out = append(out, JSONDiagnostic{
					Path:      diag.FilePath,
					Line:      diag.StartLine,
					Column:    diag.StartColumn,
					EndLine:   diag.EndLine,
					EndColumn: diag.EndColumn,
					Severity:  string(diag.Severity),
					Message:   diag.Message,
					Rule:      diag.RuleID,
				})
			}
		}
	}

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(out); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return len(out), nil
}
