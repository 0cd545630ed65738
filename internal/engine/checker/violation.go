package checker

import "fmt"

// Violation is one reported problem.
type Violation struct {
	Code     string
	Message  string
	File     string
	Line     int
	NodeKind Kind
	NodeName string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s:%d in %s '%s' -> %s: %s", v.File, v.Line, v.NodeKind, v.NodeName, v.Code, v.Message)
}

func newViolation(n *DefinitionNode, f Finding) Violation {
	line := n.StartLine
	if n.Kind == KindModule || line < 1 {
		line = 1
	}
	file := ""
	if n.Source != nil {
		file = n.Source.Path
	}
	return Violation{
		Code:     f.Code,
		Message:  f.Text,
		File:     file,
		Line:     line,
		NodeKind: n.Kind,
		NodeName: n.Name,
	}
}
