// Package resolve declares the Type Resolution Interface (§4.4, §6): the
// read-only contract the external type checker publishes per statement,
// and that the call graph engine consumes to turn a call site into a
// resolved callable. The checker itself is out of scope (spec.md §1); this
// package carries the interface plus an in-memory Store for tests.
package resolve

import "github.com/pyscope/pyscope/internal/ast"

// CallableKind distinguishes a resolvable, named callable from one the
// checker could not attach a name to (e.g. the result of a higher-order
// expression).
type CallableKind int

const (
	Named CallableKind = iota
	Anonymous
)

// Callable is the type-resolution abstraction for the result of walking an
// access chain. Only Named callables carry a fully-qualified name and
// become call-graph vertices/edges (§4.4).
type Callable struct {
	Kind          CallableKind
	QualifiedName string // meaningful only when Kind == Named
}

// ElementKind distinguishes the handful of resolution outcomes the call
// graph engine cares about from everything else a full type system would
// report (values, modules, ...), which this core treats as opaque.
type ElementKind int

const (
	ElementSignature ElementKind = iota
	ElementOther
)

// Element is what Resolution.LastElement returns for an access chain. Only
// ElementSignature carries a Callable.
type Element struct {
	Kind     ElementKind
	Callable Callable
}

// Resolution is the per-statement view the checker publishes: given an
// access chain, what does its last element resolve to.
type Resolution interface {
	LastElement(access *ast.Access) (Element, bool)
}

// StatementKey identifies one statement's resolution scope: the AST node
// id of the enclosing unit (e.g. a Define) and the index of the statement
// within it, matching §4.4's "(node_id, statement_index)" key and the S4
// scenario's "per-statement resolution at statement indices 1 and 3 under
// node 5".
type StatementKey struct {
	NodeID         int
	StatementIndex int
}

// Environment is the read-only contract the call graph engine queries.
type Environment interface {
	Resolution(key StatementKey) (Resolution, bool)
}

// AccessKey renders an access chain to a canonical string so it can be used
// as a map key in the in-memory Store below. Two accesses with the same
// identifier/call shape produce the same key, mirroring the call graph
// engine's own notion that "a call site's resolved callable is the type of
// the last element of the access chain" regardless of argument values.
func AccessKey(a *ast.Access) string {
	if a == nil {
		return ""
	}
	key := ""
	if a.Base != nil {
		key += "(expr)"
	}
	for _, el := range a.Elements {
		switch e := el.(type) {
		case *ast.Ident:
			key += "." + e.Name
		case *ast.Call:
			key += "()"
		}
	}
	return key
}

// Store is an in-memory Environment/Resolution pair for tests and the
// cmd/pyscope harness: a plain map from StatementKey to a map from
// AccessKey to Element.
type Store struct {
	byStatement map[StatementKey]map[string]Element
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{byStatement: map[StatementKey]map[string]Element{}}
}

// Set records the resolution of access under key.
func (s *Store) Set(key StatementKey, access *ast.Access, el Element) {
	m, ok := s.byStatement[key]
	if !ok {
		m = map[string]Element{}
		s.byStatement[key] = m
	}
	m[AccessKey(access)] = el
}

func (s *Store) Resolution(key StatementKey) (Resolution, bool) {
	m, ok := s.byStatement[key]
	if !ok {
		return nil, false
	}
	return mapResolution(m), true
}

type mapResolution map[string]Element

func (m mapResolution) LastElement(access *ast.Access) (Element, bool) {
	el, ok := m[AccessKey(access)]
	return el, ok
}
