// Package directive scans comment trivia for the two families of inline
// directives GDScript tooling recognizes: gdlint:ignore/disable/enable
// suppression comments, and fmt:off/fmt:on skip regions. It runs as an
// independent forward pass with no dependency on the rule engine or
// formatter — both consume its output, it consumes neither.
package directive

import (
	"strings"

	"github.com/gdtoolsuite/gdtools/pkg/gdast"
	"github.com/gdtoolsuite/gdtools/pkg/token"
)

// RuleSet is the set of rule ids suppressed on one physical line. All
// means every rule, regardless of what IDs additionally holds.
type RuleSet struct {
	All bool
	IDs map[string]bool
}

func (s RuleSet) contains(id string) bool {
	return s.All || s.IDs[id]
}

func (s *RuleSet) add(id string) {
	if id == "*" || id == "" {
		s.All = true
		return
	}
	if s.IDs == nil {
		s.IDs = map[string]bool{}
	}
	s.IDs[id] = true
}

// SuppressionMap holds, per 1-based physical line, the rule ids
// suppressed there.
type SuppressionMap map[int]RuleSet

// Suppressed reports whether the given rule id is suppressed on line.
func (m SuppressionMap) Suppressed(line int, ruleID string) bool {
	return m[line].contains(ruleID)
}

func (m SuppressionMap) markRange(startLine, endLine int, id string) {
	for l := startLine; l <= endLine; l++ {
		set := m[l]
		set.add(id)
		m[l] = set
	}
}

// SkipRegion is a half-open byte range the formatter must emit verbatim.
type SkipRegion struct {
	Start int
	End   int
}

// UnknownRuleRef records a directive that named a rule id the caller's
// registry doesn't recognize. The directive still takes effect; this is
// purely informational so the rule engine can surface an unknown-rule
// warning at the right position.
type UnknownRuleRef struct {
	Line   int
	Offset int
	RuleID string
}

type activeRegion struct {
	startLine int
}

// Scan walks every LineComment token in file.Tokens once, building the
// suppression map and skip regions it finds. isKnownRule is consulted
// for each directive-referenced rule id (never for "*"); ids it rejects
// are still applied, just reported back via the returned slice.
func Scan(file *gdast.File, isKnownRule func(id string) bool) (SuppressionMap, []SkipRegion, []UnknownRuleRef) {
	suppressions := SuppressionMap{}
	var regions []SkipRegion
	var unknown []UnknownRuleRef

	var activeAll *activeRegion
	activeIDs := map[string]*activeRegion{}
	skipOffStart := -1

	buf := file.Buffer
	lastLine := buf.LineCount()

	noteUnknown := func(id string, line, offset int) {
		if id == "*" || id == "" {
			return
		}
		if !isKnownRule(id) {
			unknown = append(unknown, UnknownRuleRef{Line: line, Offset: offset, RuleID: id})
		}
	}

	closeAll := func(throughLine int) {
		if activeAll != nil {
			suppressions.markRange(activeAll.startLine, throughLine, "*")
			activeAll = nil
		}
		for id, reg := range activeIDs {
			suppressions.markRange(reg.startLine, throughLine, id)
			delete(activeIDs, id)
		}
	}

	for _, tok := range file.Tokens {
		if tok.Kind != token.LineComment {
			continue
		}
		text := string(buf.Content[tok.Start:tok.End])
		line, _ := buf.OffsetToPos(tok.Start)

		switch {
		case hasPrefix(text, "gdlint:ignore="):
			for _, id := range parseCSV(text, "gdlint:ignore=") {
				noteUnknown(id, line, tok.Start)
				set := suppressions[line]
				set.add(id)
				suppressions[line] = set
			}

		case hasPrefix(text, "gdlint:disable="):
			for _, id := range parseCSV(text, "gdlint:disable=") {
				noteUnknown(id, line, tok.Start)
				if id == "*" || id == "" {
					if activeAll == nil {
						activeAll = &activeRegion{startLine: line}
					}
					continue
				}
				if _, ok := activeIDs[id]; !ok {
					activeIDs[id] = &activeRegion{startLine: line}
				}
			}

		case hasPrefix(text, "gdlint:enable="):
			for _, id := range parseCSV(text, "gdlint:enable=") {
				noteUnknown(id, line, tok.Start)
				if id == "*" || id == "" {
					closeAll(line)
					continue
				}
				if reg, ok := activeIDs[id]; ok {
					suppressions.markRange(reg.startLine, line, id)
					delete(activeIDs, id)
				}
			}

		case isFmtOff(text):
			if skipOffStart == -1 {
				skipOffStart = buf.Lines[line-1].StartOffset
			}

		case isFmtOn(text):
			if skipOffStart != -1 {
				regions = append(regions, SkipRegion{Start: skipOffStart, End: buf.Lines[line-1].EndOffset})
				skipOffStart = -1
			}
		}
	}

	closeAll(lastLine)
	if skipOffStart != -1 {
		regions = append(regions, SkipRegion{Start: skipOffStart, End: len(buf.Content)})
	}

	return suppressions, regions, unknown
}

// hasPrefix reports whether a "# ..." comment body, once the leading "#"
// and any whitespace are trimmed, starts with prefix.
func hasPrefix(comment, prefix string) bool {
	body := strings.TrimSpace(strings.TrimPrefix(comment, "#"))
	return strings.HasPrefix(body, prefix)
}

func parseCSV(comment, prefix string) []string {
	body := strings.TrimSpace(strings.TrimPrefix(comment, "#"))
	csv := strings.TrimPrefix(body, prefix)
	if strings.TrimSpace(csv) == "" {
		return []string{"*"}
	}
	var ids []string
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			ids = append(ids, part)
		}
	}
	if len(ids) == 0 {
		ids = []string{"*"}
	}
	return ids
}

func isFmtOff(comment string) bool {
	body := strings.TrimSpace(strings.TrimPrefix(comment, "#"))
	return body == "fmt: off" || body == "fmt:off"
}

func isFmtOn(comment string) bool {
	body := strings.TrimSpace(strings.TrimPrefix(comment, "#"))
	return body == "fmt: on" || body == "fmt:on"
}
