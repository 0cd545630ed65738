package checker

import (
	"strings"
)

type Kind int

const (
	KindModule Kind = iota
	KindClass
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindClass:
		return "class"
	case KindFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Parameter is a positional or keyword parameter of a function definition.
// Variadic marks *args and **kwargs.
type Parameter struct {
	Name     string
	Variadic bool
}

// DocSpan locates the string literal directly following a definition header.
// Lines are 1-based and inclusive. Value is the literal with escapes resolved.
type DocSpan struct {
	StartLine int
	EndLine   int
	Value     string
}

// DefinitionNode is a module, class or function in a parsed source unit.
// Children are owned by their parent; parent is a plain back-reference.
type DefinitionNode struct {
	Kind       Kind
	Name       string
	IsPackage  bool
	Decorators []string
	Parameters []Parameter
	Doc        *DocSpan
	StartLine  int
	EndLine    int
	// DunderAll holds the names listed in a module level __all__, nil when absent.
	DunderAll []string
	Source    *Source
	Children  []*DefinitionNode

	parent *DefinitionNode
}

func NewModule(name string, source *Source) *DefinitionNode {
	end := 1
	if source != nil && source.LineCount() > 0 {
		end = source.LineCount()
	}
	return &DefinitionNode{
		Kind:      KindModule,
		Name:      name,
		IsPackage: name == "__init__",
		StartLine: 1,
		EndLine:   end,
		Source:    source,
	}
}

// AddChild attaches child to n and returns it.
func (n *DefinitionNode) AddChild(child *DefinitionNode) *DefinitionNode {
	child.parent = n
	if child.Source == nil {
		child.Source = n.Source
	}
	n.Children = append(n.Children, child)
	return child
}

func (n *DefinitionNode) Parent() *DefinitionNode {
	return n.parent
}

func (n *DefinitionNode) Root() *DefinitionNode {
	root := n
	for root.parent != nil {
		root = root.parent
	}
	return root
}

func (n *DefinitionNode) HasDocstring() bool {
	return n.Doc != nil
}

func (n *DefinitionNode) IsDunder() bool {
	return len(n.Name) > 4 && strings.HasPrefix(n.Name, "__") && strings.HasSuffix(n.Name, "__")
}

// IsBound reports whether n is a function defined directly in a class body.
func (n *DefinitionNode) IsBound() bool {
	return n.Kind == KindFunction && n.parent != nil && n.parent.Kind == KindClass
}

var variadicMagicMethods = map[string]bool{
	"__new__":  true,
	"__init__": true,
	"__call__": true,
}

// IsMagic reports whether n is a dunder method other than the variadic ones.
func (n *DefinitionNode) IsMagic() bool {
	return n.IsDunder() && !variadicMagicMethods[n.Name]
}

func (n *DefinitionNode) IsInit() bool {
	return n.Kind == KindFunction && n.Name == "__init__"
}

func (n *DefinitionNode) IsNestedClass() bool {
	return n.Kind == KindClass && n.parent != nil && n.parent.Kind != KindModule
}

func (n *DefinitionNode) IsOverloaded() bool {
	return n.HasDecorator(func(name string) bool {
		return name == "overload" || strings.HasSuffix(name, ".overload")
	})
}

// HasDecorator reports whether any decorator name satisfies match.
func (n *DefinitionNode) HasDecorator(match func(string) bool) bool {
	for _, name := range n.Decorators {
		if match(name) {
			return true
		}
	}
	return false
}

// IsPublic follows the usual Python visibility conventions: dunder names are
// public, a leading underscore is private, a module __all__ restricts the
// module level names, classes nested in functions are private and every
// ancestor must be public too.
func (n *DefinitionNode) IsPublic() bool {
	if n.IsDunder() {
		return true
	}
	if strings.HasPrefix(n.Name, "_") {
		return false
	}
	if n.parent != nil && n.parent.Kind == KindModule && n.parent.DunderAll != nil {
		listed := false
		for _, name := range n.parent.DunderAll {
			if name == n.Name {
				listed = true
				break
			}
		}
		if !listed {
			return false
		}
	}
	if n.Kind == KindClass && n.parent != nil && n.parent.Kind == KindFunction {
		return false
	}
	for p := n.parent; p != nil; p = p.parent {
		if !p.IsPublic() {
			return false
		}
	}
	return true
}

// DefinitionLine returns the first source line of the node that starts with
// def, async def or class. Modules have no definition line.
func (n *DefinitionNode) DefinitionLine() (string, bool) {
	if n.Kind == KindModule || n.Source == nil {
		return "", false
	}
	for line := n.StartLine; line <= n.EndLine; line++ {
		text := strings.TrimLeft(n.Source.Line(line), " \t")
		if strings.HasPrefix(text, "def") || strings.HasPrefix(text, "async def") || strings.HasPrefix(text, "class") {
			return n.Source.Line(line), true
		}
	}
	return "", false
}

// Walk visits n and all of its descendants depth first.
func (n *DefinitionNode) Walk(fn func(*DefinitionNode) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}
