package parser

import (
	"bytes"
	"fmt"

	"pydoclint/internal/core/errors"
	"pydoclint/internal/engine/checker"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// Parser turns Python source into checker definition trees. It is safe for
// concurrent use.
type Parser struct {
	pool      *ParserPool
	extractor *PythonExtractor
}

func NewParser() *Parser {
	return &Parser{
		pool:      NewParserPool(PythonLanguage()),
		extractor: NewPythonExtractor(),
	}
}

func PythonLanguage() *sitter.Language {
	return sitter.NewLanguage(tree_sitter_python.Language())
}

// ParseFile parses content and returns the module node. Source with syntax
// errors yields a PARSE_ERROR naming the first offending line.
func (p *Parser) ParseFile(path string, content []byte) (*checker.DefinitionNode, error) {
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))

	sp := p.pool.Get()
	defer p.pool.Put(sp)

	tree := sp.Parse(content, nil)
	if tree == nil {
		return nil, errors.AddContext(errors.New(errors.CodeParse, "parse failed"), errors.CtxPath, path)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		line := firstErrorLine(root)
		return nil, errors.AddContext(
			errors.New(errors.CodeParse, fmt.Sprintf("invalid syntax at line %d", line)),
			errors.CtxPath, path,
		)
	}
	return p.extractor.Extract(root, content, path), nil
}

// Pool exposes the parser pool for health reporting.
func (p *Parser) Pool() *ParserPool {
	return p.pool
}

func firstErrorLine(node *sitter.Node) int {
	if node.IsError() || node.IsMissing() {
		return int(node.StartPosition().Row) + 1
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || !(child.HasError() || child.IsMissing()) {
			continue
		}
		return firstErrorLine(child)
	}
	return int(node.StartPosition().Row) + 1
}
