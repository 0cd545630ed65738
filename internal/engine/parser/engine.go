package parser

import (
	"pydoclint/internal/engine/checker"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// NodeHandler turns one statement of a body into definitions under scope.
type NodeHandler func(ctx *ExtractionContext, node *sitter.Node, scope *checker.DefinitionNode)

// ExtractionContext carries the source shared by all handlers of one file.
type ExtractionContext struct {
	Source []byte
	Module *checker.DefinitionNode
}

func (c *ExtractionContext) Text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return string(c.Source[node.StartByte():node.EndByte()])
}

// Line is the 1-based line a node starts on.
func (c *ExtractionContext) Line(node *sitter.Node) int {
	return int(node.StartPosition().Row) + 1
}

// EndLine is the 1-based line holding the last character of node.
func (c *ExtractionContext) EndLine(node *sitter.Node) int {
	end := node.EndPosition()
	if end.Column == 0 && end.Row > node.StartPosition().Row {
		return int(end.Row)
	}
	return int(end.Row) + 1
}

// ExtractorEngine dispatches the statements of a body by node kind.
type ExtractorEngine struct {
	handlers map[string]NodeHandler
}

func NewExtractorEngine(handlers map[string]NodeHandler) *ExtractorEngine {
	return &ExtractorEngine{handlers: handlers}
}

// Walk visits the direct statements of body. Definitions nested in control
// flow statements do not belong to scope and are not visited.
func (e *ExtractorEngine) Walk(ctx *ExtractionContext, body *sitter.Node, scope *checker.DefinitionNode) {
	if body == nil {
		return
	}
	for i := uint(0); i < body.NamedChildCount(); i++ {
		e.Dispatch(ctx, body.NamedChild(i), scope)
	}
}

func (e *ExtractorEngine) Dispatch(ctx *ExtractionContext, node *sitter.Node, scope *checker.DefinitionNode) {
	if node == nil {
		return
	}
	if handler, ok := e.handlers[node.Kind()]; ok {
		handler(ctx, node, scope)
	}
}
