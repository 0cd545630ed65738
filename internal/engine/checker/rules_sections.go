package checker

var sectionCodes = []string{
	"D214", "D215",
	"D405", "D406", "D407", "D408", "D409", "D410",
	"D411", "D412", "D413", "D414", "D416", "D417",
}

// sectionRules expose the shared section analysis one code at a time.
func sectionRules() []Rule {
	rules := make([]Rule, 0, len(sectionCodes))
	for _, code := range sectionCodes {
		ks := allKinds
		if code == "D417" {
			ks = kinds(KindFunction)
		}
		rules = append(rules, Rule{
			Code:           code,
			Kinds:          ks,
			NeedsDocstring: true,
			NeedsContent:   true,
			Evaluate: func(c *Context) []Finding {
				return c.Sections().findingsFor(code)
			},
		})
	}
	return rules
}
