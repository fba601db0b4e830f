// Package ast defines the immutable tree of expressions and statements that
// the normalization pipeline (internal/normalize) consumes and produces, and
// that the call graph engine (internal/callgraph) reads. Nodes are plain
// structs rather than an open class hierarchy: passes dispatch on them with
// exhaustive type switches, in the spirit of a tagged-variant AST (see
// DESIGN.md, "Visitor re-architecture").
package ast

import "github.com/pyscope/pyscope/internal/token"

// Node is the minimal contract shared by every tree element: a location for
// diagnostics.
type Node interface {
	Location() token.ReferenceLocation
}

// Expression is any node that can appear where a value is expected.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that can appear in a statement list.
type Statement interface {
	Node
	statementNode()
}

// baseNode factors out the Location() boilerplate every node needs.
type baseNode struct {
	Loc token.ReferenceLocation
}

func (b baseNode) Location() token.ReferenceLocation { return b.Loc }

// Source is a single compilation unit as it flows through the pipeline.
type Source struct {
	Handle     token.Handle
	Qualifier  Reference // fully-qualified module path, e.g. pkg.sub.mod
	Statements []Statement
	Metadata   map[string]string
}

// Clone produces a shallow copy of the Source with a new Statements slice
// header, so a pass can return a new Source without aliasing the input's
// slice (the tree nodes themselves are immutable and safely shared).
func (s *Source) Clone(statements []Statement) *Source {
	return &Source{
		Handle:     s.Handle,
		Qualifier:  s.Qualifier,
		Statements: statements,
		Metadata:   s.Metadata,
	}
}
