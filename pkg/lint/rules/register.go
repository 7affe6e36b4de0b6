package rules

import (
	"github.com/gdtoolsuite/gdtools/pkg/config"
	"github.com/gdtoolsuite/gdtools/pkg/lint"
)

// RegisterAll adds every built-in rule to registry. Called by init()
// against lint.DefaultRegistry, and available directly for tests or
// callers building a private registry.
func RegisterAll(registry *lint.Registry) {
	registry.Register(newTrailingWhitespaceRule())
	registry.Register(newTabsAndSpacesRule())
	registry.Register(newMaxLineLengthRule())
	registry.Register(newMaxFunctionArgsRule())
	registry.Register(newMaxFunctionLinesRule())
	registry.Register(newMaxPublicMethodsRule())
	registry.Register(newFunctionNameRule())
	registry.Register(newClassNameRule())
	registry.Register(newConstantNameRule())
	registry.Register(newVariableNameRule())
	registry.Register(newUnusedArgumentRule())
	registry.Register(newDuplicateKeyRule())
	registry.Register(newExpressionNotAssignedRule())
	registry.Register(newNoElseReturnRule())
	registry.Register(newMixedIndentationRule())
	registry.Register(newSyntaxErrorRule())
	registry.Register(newUnknownRuleRule())
}

func init() {
	RegisterAll(lint.DefaultRegistry)
	config.DefaultRuleInfoProvider = ruleInfos
}

// ruleInfos adapts lint.DefaultRegistry into config.RuleInfo for
// config.DumpConfig, without pkg/config importing pkg/lint.
func ruleInfos() []config.RuleInfo {
	rules := lint.DefaultRegistry.Rules()
	infos := make([]config.RuleInfo, 0, len(rules))
	for _, r := range rules {
		infos = append(infos, config.RuleInfo{
			ID:              r.ID(),
			Name:            r.ID(),
			Description:     r.Description(),
			DefaultSeverity: r.DefaultSeverity(),
			Tags:            r.Tags(),
		})
	}
	return infos
}
