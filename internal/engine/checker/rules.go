package checker

import (
	"sort"

	"pydoclint/internal/core/errors"
)

// KindSet is a bit set of node kinds.
type KindSet uint8

func kinds(ks ...Kind) KindSet {
	var set KindSet
	for _, k := range ks {
		set |= 1 << uint(k)
	}
	return set
}

var allKinds = kinds(KindModule, KindClass, KindFunction)

func (s KindSet) Has(k Kind) bool {
	return s&(1<<uint(k)) != 0
}

// Finding is a single result of a rule before it is attached to a node.
type Finding struct {
	Code string
	Text string
}

func finding(code string, params ...any) Finding {
	m, _ := MessageFor(code)
	return Finding{Code: code, Text: m.Render(params...)}
}

// Rule is one entry of the catalog.
type Rule struct {
	Code string
	// Kinds lists the node kinds the rule applies to.
	Kinds KindSet
	// NeedsDocstring skips the rule for nodes without a docstring.
	NeedsDocstring bool
	// NeedsContent skips the rule when the docstring is blank.
	NeedsContent bool
	// Terminal stops the remaining rules for a node once it reports.
	Terminal bool
	Evaluate func(*Context) []Finding
}

// Context is what a rule sees while evaluating one node.
type Context struct {
	Node   *DefinitionNode
	Doc    *Docstring
	Config *Configuration

	sections *SectionReport
}

// Sections analyses the docstring sections once per node.
func (c *Context) Sections() *SectionReport {
	if c.sections == nil {
		c.sections = analyzeSections(c.Node, c.Doc)
	}
	return c.sections
}

// RuleSet is an ordered catalog with unique codes. Terminal rules come
// first, then rules are ordered by code.
type RuleSet struct {
	rules []Rule
	index map[string]int
}

func NewRuleSet(rules ...Rule) (*RuleSet, error) {
	seen := make(map[string]bool, len(rules))
	for _, r := range rules {
		if seen[r.Code] {
			return nil, errors.AddContext(
				errors.Newf(errors.CodeDuplicateRule, "found duplicate definitions for rule code %s", r.Code),
				errors.CtxCode, r.Code,
			)
		}
		seen[r.Code] = true
	}

	ordered := make([]Rule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Terminal != ordered[j].Terminal {
			return ordered[i].Terminal
		}
		return ordered[i].Code < ordered[j].Code
	})

	index := make(map[string]int, len(ordered))
	for i, r := range ordered {
		index[r.Code] = i
	}
	return &RuleSet{rules: ordered, index: index}, nil
}

func (s *RuleSet) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

func (s *RuleSet) Lookup(code string) (Rule, bool) {
	i, ok := s.index[code]
	if !ok {
		return Rule{}, false
	}
	return s.rules[i], true
}

// Codes returns every registered code in lexical order.
func (s *RuleSet) Codes() []string {
	out := make([]string, 0, len(s.rules))
	for _, r := range s.rules {
		out = append(out, r.Code)
	}
	sort.Strings(out)
	return out
}

func catalogRules() []Rule {
	var all []Rule
	all = append(all, missingDocstringRules()...)
	all = append(all, whitespaceRules()...)
	all = append(all, quoteRules()...)
	all = append(all, contentRules()...)
	all = append(all, sectionRules()...)
	return all
}

var defaultRuleSet = mustRuleSet(catalogRules()...)

func mustRuleSet(rules ...Rule) *RuleSet {
	set, err := NewRuleSet(rules...)
	if err != nil {
		panic(err)
	}
	return set
}

// DefaultRuleSet is the built-in catalog.
func DefaultRuleSet() *RuleSet {
	return defaultRuleSet
}
