package parser

import (
	"path/filepath"
	"strings"

	"pydoclint/internal/engine/checker"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// PythonExtractor builds the definition tree of a Python module.
type PythonExtractor struct {
	engine *ExtractorEngine
}

func NewPythonExtractor() *PythonExtractor {
	e := &PythonExtractor{}
	e.engine = NewExtractorEngine(map[string]NodeHandler{
		"function_definition":  e.extractFunction,
		"class_definition":     e.extractClass,
		"decorated_definition": e.extractDecorated,
		"expression_statement": e.extractDunderAll,
	})
	return e
}

// ModuleName is the file name without its extension.
func ModuleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (e *PythonExtractor) Extract(root *sitter.Node, source []byte, filePath string) *checker.DefinitionNode {
	module := checker.NewModule(ModuleName(filePath), checker.NewSource(filePath, string(source)))
	ctx := &ExtractionContext{Source: source, Module: module}

	module.Doc = e.docstring(ctx, root)
	e.engine.Walk(ctx, root, module)
	return module
}

func (e *PythonExtractor) extractFunction(ctx *ExtractionContext, node *sitter.Node, scope *checker.DefinitionNode) {
	name := ctx.Text(node.ChildByFieldName("name"))
	if name == "" {
		return
	}
	body := node.ChildByFieldName("body")
	fn := scope.AddChild(&checker.DefinitionNode{
		Kind:       checker.KindFunction,
		Name:       name,
		Decorators: e.decorators(ctx, node),
		Parameters: e.parameters(ctx, node.ChildByFieldName("parameters")),
		StartLine:  ctx.Line(node),
		EndLine:    ctx.EndLine(node),
	})
	fn.Doc = e.docstring(ctx, body)
	e.engine.Walk(ctx, body, fn)
}

func (e *PythonExtractor) extractClass(ctx *ExtractionContext, node *sitter.Node, scope *checker.DefinitionNode) {
	name := ctx.Text(node.ChildByFieldName("name"))
	if name == "" {
		return
	}
	body := node.ChildByFieldName("body")
	class := scope.AddChild(&checker.DefinitionNode{
		Kind:       checker.KindClass,
		Name:       name,
		Decorators: e.decorators(ctx, node),
		StartLine:  ctx.Line(node),
		EndLine:    ctx.EndLine(node),
	})
	class.Doc = e.docstring(ctx, body)
	e.engine.Walk(ctx, body, class)
}

func (e *PythonExtractor) extractDecorated(ctx *ExtractionContext, node *sitter.Node, scope *checker.DefinitionNode) {
	e.engine.Dispatch(ctx, node.ChildByFieldName("definition"), scope)
}

// extractDunderAll records a module level `__all__ = [...]` made of string
// literals. Any other form leaves every public name exported.
func (e *PythonExtractor) extractDunderAll(ctx *ExtractionContext, node *sitter.Node, scope *checker.DefinitionNode) {
	if scope.Kind != checker.KindModule || node.NamedChildCount() != 1 {
		return
	}
	assignment := node.NamedChild(0)
	if assignment.Kind() != "assignment" || ctx.Text(assignment.ChildByFieldName("left")) != "__all__" {
		return
	}
	right := assignment.ChildByFieldName("right")
	if right == nil || (right.Kind() != "list" && right.Kind() != "tuple") {
		return
	}

	names := make([]string, 0, right.NamedChildCount())
	for i := uint(0); i < right.NamedChildCount(); i++ {
		item := right.NamedChild(i)
		if item.Kind() == "comment" {
			continue
		}
		if item.Kind() != "string" {
			return
		}
		value, ok := decodeStringLiteral(ctx.Text(item))
		if !ok {
			return
		}
		names = append(names, value)
	}
	scope.DunderAll = names
}

// docstring returns the string literal opening body, if any.
func (e *PythonExtractor) docstring(ctx *ExtractionContext, body *sitter.Node) *checker.DocSpan {
	if body == nil {
		return nil
	}
	var first *sitter.Node
	for i := uint(0); i < body.NamedChildCount(); i++ {
		child := body.NamedChild(i)
		if child.Kind() != "comment" {
			first = child
			break
		}
	}
	if first == nil || first.Kind() != "expression_statement" || first.NamedChildCount() != 1 {
		return nil
	}

	literal := first.NamedChild(0)
	var value string
	switch literal.Kind() {
	case "string":
		v, ok := decodeStringLiteral(ctx.Text(literal))
		if !ok {
			return nil
		}
		value = v
	case "concatenated_string":
		var b strings.Builder
		for i := uint(0); i < literal.NamedChildCount(); i++ {
			part := literal.NamedChild(i)
			if part.Kind() != "string" {
				continue
			}
			v, ok := decodeStringLiteral(ctx.Text(part))
			if !ok {
				return nil
			}
			b.WriteString(v)
		}
		value = b.String()
	default:
		return nil
	}

	return &checker.DocSpan{
		StartLine: ctx.Line(literal),
		EndLine:   ctx.EndLine(literal),
		Value:     value,
	}
}

// decorators lists the decorator names of a definition: a bare name, the
// dotted path of an attribute, or for a call the called name (its last
// attribute when dotted).
func (e *PythonExtractor) decorators(ctx *ExtractionContext, node *sitter.Node) []string {
	parent := node.Parent()
	if parent == nil || parent.Kind() != "decorated_definition" {
		return nil
	}

	names := make([]string, 0, parent.NamedChildCount())
	for i := uint(0); i < parent.NamedChildCount(); i++ {
		child := parent.NamedChild(i)
		if child.Kind() != "decorator" || child.NamedChildCount() == 0 {
			continue
		}
		expr := child.NamedChild(0)
		switch expr.Kind() {
		case "identifier":
			names = append(names, ctx.Text(expr))
		case "attribute":
			names = append(names, normalizeDotted(ctx.Text(expr)))
		case "call":
			fn := expr.ChildByFieldName("function")
			if fn == nil {
				continue
			}
			switch fn.Kind() {
			case "identifier":
				names = append(names, ctx.Text(fn))
			case "attribute":
				names = append(names, ctx.Text(fn.ChildByFieldName("attribute")))
			}
		}
	}
	return names
}

func normalizeDotted(value string) string {
	return strings.Join(strings.Fields(value), "")
}

func (e *PythonExtractor) parameters(ctx *ExtractionContext, params *sitter.Node) []checker.Parameter {
	if params == nil {
		return nil
	}
	out := make([]checker.Parameter, 0, params.NamedChildCount())
	for i := uint(0); i < params.NamedChildCount(); i++ {
		if p, ok := e.parameter(ctx, params.NamedChild(i)); ok {
			out = append(out, p)
		}
	}
	return out
}

func (e *PythonExtractor) parameter(ctx *ExtractionContext, node *sitter.Node) (checker.Parameter, bool) {
	switch node.Kind() {
	case "identifier":
		return checker.Parameter{Name: ctx.Text(node)}, true
	case "default_parameter", "typed_default_parameter":
		name := node.ChildByFieldName("name")
		if name == nil {
			return checker.Parameter{}, false
		}
		return e.parameter(ctx, name)
	case "typed_parameter":
		for i := uint(0); i < node.NamedChildCount(); i++ {
			child := node.NamedChild(i)
			switch child.Kind() {
			case "identifier", "list_splat_pattern", "dictionary_splat_pattern":
				return e.parameter(ctx, child)
			}
		}
	case "list_splat_pattern", "dictionary_splat_pattern":
		for i := uint(0); i < node.NamedChildCount(); i++ {
			if child := node.NamedChild(i); child.Kind() == "identifier" {
				return checker.Parameter{Name: ctx.Text(child), Variadic: true}, true
			}
		}
	}
	return checker.Parameter{}, false
}
