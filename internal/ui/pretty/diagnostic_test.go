package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gdtoolsuite/gdtools/internal/ui/pretty"
	"github.com/gdtoolsuite/gdtools/pkg/config"
	"github.com/gdtoolsuite/gdtools/pkg/lint"
)

func TestFormatDiagnostic_Basic(t *testing.T) {
	styles := pretty.NewStyles(false)

	diag := &lint.Diagnostic{
		RuleID:      "max-line-length",
		Message:     "line exceeds 100 columns",
		Severity:    config.SeverityError,
		FilePath:    "test.gd",
		StartLine:   10,
		StartColumn: 1,
		EndLine:     10,
		EndColumn:   15,
	}

	result := styles.FormatDiagnostic(diag, false, "")

	assert.Contains(t, result, "test.gd:10:1")
	assert.Contains(t, result, "error")
	assert.Contains(t, result, "line exceeds 100 columns")
	assert.Contains(t, result, "[max-line-length]")
}

func TestFormatDiagnostic_WithContext(t *testing.T) {
	styles := pretty.NewStyles(false)

	diag := &lint.Diagnostic{
		RuleID:      "tabs-and-spaces",
		Message:     "mixed tabs and spaces",
		Severity:    config.SeverityWarning,
		FilePath:    "test.gd",
		StartLine:   5,
		StartColumn: 3,
	}

	sourceLine := "\t pass"
	result := styles.FormatDiagnostic(diag, true, sourceLine)

	assert.Contains(t, result, sourceLine)
	assert.Contains(t, result, "^")
}

func TestFormatSeverity_AllLevels(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		severity config.Severity
		expected string
	}{
		{config.SeverityError, "error"},
		{config.SeverityWarning, "warning"},
	}

	for _, tt := range tests {
		t.Run(string(tt.severity), func(t *testing.T) {
			result := styles.FormatSeverity(tt.severity)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFormatSourceContext_WithCaret(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSourceContext("test line", 5)

	lines := strings.Split(result, "\n")
	assert.GreaterOrEqual(t, len(lines), 2)
	assert.Contains(t, result, "^")
}

func TestFormatSourceContext_ZeroColumn(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatSourceContext("test line", 0)

	assert.Contains(t, result, "test line")
	assert.NotContains(t, result, "^")
}

func TestFormatFileHeader_WithIssues(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatFileHeader("res://player.gd", 5)

	assert.Contains(t, result, "res://player.gd")
	assert.Contains(t, result, "(5 issues)")
}

func TestFormatFileHeader_NoIssues(t *testing.T) {
	styles := pretty.NewStyles(false)

	result := styles.FormatFileHeader("res://player.gd", 0)

	assert.Contains(t, result, "res://player.gd")
	assert.NotContains(t, result, "issues")
}
