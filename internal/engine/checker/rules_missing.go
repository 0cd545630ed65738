package checker

func missingDocstringRules() []Rule {
	missing := func(code string, k Kind, applies func(*DefinitionNode) bool) Rule {
		return Rule{
			Code:     code,
			Kinds:    kinds(k),
			Terminal: true,
			Evaluate: func(c *Context) []Finding {
				if c.Node.HasDocstring() || !applies(c.Node) {
					return nil
				}
				return []Finding{finding(code)}
			},
		}
	}

	return []Rule{
		missing("D100", KindModule, func(n *DefinitionNode) bool {
			return n.IsPublic() && !n.IsPackage
		}),
		missing("D101", KindClass, func(n *DefinitionNode) bool {
			return n.IsPublic() && !n.IsNestedClass()
		}),
		missing("D102", KindFunction, func(n *DefinitionNode) bool {
			return n.IsPublic() && !n.IsOverloaded() && n.IsBound() && !n.IsDunder()
		}),
		missing("D103", KindFunction, func(n *DefinitionNode) bool {
			parent := n.Parent()
			nested := parent != nil && parent.Kind == KindFunction
			return n.IsPublic() && !n.IsOverloaded() && !nested && !n.IsBound()
		}),
		missing("D104", KindModule, func(n *DefinitionNode) bool {
			return n.IsPublic() && n.IsPackage
		}),
		missing("D105", KindFunction, func(n *DefinitionNode) bool {
			return n.IsPublic() && !n.IsOverloaded() && n.IsBound() && n.IsMagic()
		}),
		missing("D106", KindClass, func(n *DefinitionNode) bool {
			return n.IsPublic() && n.IsNestedClass()
		}),
		missing("D107", KindFunction, func(n *DefinitionNode) bool {
			return n.IsPublic() && !n.IsOverloaded() && n.IsBound() && n.IsInit()
		}),
	}
}
