package checker

import (
	"iter"
	"log/slog"
)

// Engine checks definition trees against a fixed configuration. An Engine
// holds no per-file state and may be shared between goroutines.
type Engine struct {
	config *Configuration
	rules  *RuleSet
	codes  map[string]bool
}

// NewEngine builds an engine over the built-in catalog.
func NewEngine(cfg *Configuration) (*Engine, error) {
	return NewEngineWithRules(cfg, DefaultRuleSet())
}

func NewEngineWithRules(cfg *Configuration, rules *RuleSet) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfiguration()
	}
	codes, err := cfg.EffectiveCodes(rules)
	if err != nil {
		return nil, err
	}
	return &Engine{config: cfg, rules: rules, codes: codes}, nil
}

// Codes returns the effective code set.
func (e *Engine) Codes() map[string]bool {
	out := make(map[string]bool, len(e.codes))
	for code := range e.codes {
		out[code] = true
	}
	return out
}

// Check walks the tree rooted at root depth first, children in source order,
// and yields the violations of every node.
func (e *Engine) Check(root *DefinitionNode) iter.Seq[Violation] {
	return func(yield func(Violation) bool) {
		if root == nil {
			return
		}
		moduleSkip := Suppressions{}
		if root.Source != nil {
			moduleSkip = ModuleSuppressions(root.Source.Text)
		}
		if moduleSkip.All() {
			return
		}

		stack := []*DefinitionNode{root}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for i := len(n.Children) - 1; i >= 0; i-- {
				stack = append(stack, n.Children[i])
			}

			if !e.checkNode(n, moduleSkip, yield) {
				return
			}
		}
	}
}

func (e *Engine) skippedByDecorator(n *DefinitionNode) bool {
	if e.config.IgnoreDecorators == nil {
		return false
	}
	return n.HasDecorator(e.config.IgnoreDecorators.MatchString)
}

// checkNode reports false once the consumer stops iterating.
func (e *Engine) checkNode(n *DefinitionNode, moduleSkip Suppressions, yield func(Violation) bool) bool {
	skip := moduleSkip
	if !e.config.IgnoreInlineNoqa {
		skip = skip.Union(NodeSuppressions(n))
	}
	if skip.All() || e.skippedByDecorator(n) {
		return true
	}

	var doc *Docstring
	if n.HasDocstring() {
		d, err := NewDocstring(n)
		if err != nil {
			slog.Debug("docstring unavailable", "node", n.Name, "error", err)
		} else {
			doc = d
		}
	}

	ctx := &Context{Node: n, Doc: doc, Config: e.config}
	for _, rule := range e.rules.rules {
		if !rule.Kinds.Has(n.Kind) || !e.codes[rule.Code] || skip[rule.Code] {
			continue
		}
		if rule.NeedsDocstring && doc == nil {
			continue
		}
		if rule.NeedsContent && (doc == nil || doc.IsEmpty()) {
			continue
		}

		emitted := false
		for _, f := range rule.Evaluate(ctx) {
			if !e.codes[f.Code] || skip[f.Code] {
				continue
			}
			emitted = true
			if !yield(newViolation(n, f)) {
				return false
			}
		}
		if rule.Terminal && emitted {
			break
		}
	}
	return true
}
