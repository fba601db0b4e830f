// Package scope implements the lexical Scope model of §3/§4.3: a per-block
// table of alias rewrites, locals, and immutables, consumed by the qualify
// pass (internal/normalize) to turn permissive surface names into
// canonical, fully-qualified or synthetic forms.
package scope

import (
	"github.com/pyscope/pyscope/internal/ast"
	"github.com/pyscope/pyscope/internal/token"
)

// Scope is mutable for the duration of one normalization pass over one
// block; it is constructed per enclosing lexical block and discarded at
// block exit (§3 Lifecycles).
type Scope struct {
	Qualifier            ast.Reference
	Aliases              map[string]*ast.Alias
	Immutables           map[string]bool
	Locals               map[string]bool
	UseForwardReferences bool
	IsTopLevel           bool
	Skip                 map[token.ReferenceLocation]bool
}

// New creates an empty Scope for the given qualifier.
func New(qualifier ast.Reference, isTopLevel bool) *Scope {
	return &Scope{
		Qualifier:  qualifier,
		Aliases:    map[string]*ast.Alias{},
		Immutables: map[string]bool{},
		Locals:     map[string]bool{},
		IsTopLevel: isTopLevel,
		Skip:       map[token.ReferenceLocation]bool{},
	}
}

// Clone makes an independent copy so a branch of control flow can mutate
// its own view before being joined back with sibling branches.
func (s *Scope) Clone() *Scope {
	c := New(s.Qualifier, s.IsTopLevel)
	c.UseForwardReferences = s.UseForwardReferences
	for k, v := range s.Aliases {
		alias := *v
		c.Aliases[k] = &alias
	}
	for k, v := range s.Immutables {
		c.Immutables[k] = v
	}
	for k, v := range s.Locals {
		c.Locals[k] = v
	}
	for k, v := range s.Skip {
		c.Skip[k] = v
	}
	return c
}

// SetAlias installs or overwrites the alias for name.
func (s *Scope) SetAlias(name string, alias *ast.Alias) {
	s.Aliases[name] = alias
}

// LookupAlias returns the alias for name, honoring forward references only
// when UseForwardReferences is true (§4.3: "A forward-reference alias is
// honored only when use_forward_references=true").
func (s *Scope) LookupAlias(name string) (*ast.Alias, bool) {
	a, ok := s.Aliases[name]
	if !ok {
		return nil, false
	}
	if a.IsForwardReference && !s.UseForwardReferences {
		return nil, false
	}
	return a, true
}

// AddLocal marks name as bound in this scope.
func (s *Scope) AddLocal(name string) { s.Locals[name] = true }

// IsLocal reports whether name has been bound as a local in this scope.
func (s *Scope) IsLocal(name string) bool { return s.Locals[name] }

// AddImmutable marks name as a global/immutable binding (installed by a
// `global` declaration), exempting it from local-prefix synthesis.
func (s *Scope) AddImmutable(name string) { s.Immutables[name] = true }

// IsImmutable reports whether name was declared global/immutable.
func (s *Scope) IsImmutable(name string) bool { return s.Immutables[name] }

// LocalName builds the synthetic local form "$local_<qualifier>$<name>".
func (s *Scope) LocalName(name string) string {
	return "$local_" + s.Qualifier.String() + "$" + name
}

// Join merges the aliases and locals of sibling branches (if/elif/else,
// for/orelse, while/orelse, try/handlers/orelse/finally) into a new scope.
// On collision the first branch listed wins (§4.3 "Scope joining"); callers
// must pass branches in source order (body before orelse, earlier handler
// before later).
func Join(base *Scope, branches ...*Scope) *Scope {
	joined := base.Clone()
	for _, b := range branches {
		for k, v := range b.Aliases {
			if _, exists := joined.Aliases[k]; !exists {
				alias := *v
				joined.Aliases[k] = &alias
			}
		}
		for k := range b.Locals {
			if !joined.Locals[k] {
				joined.Locals[k] = true
			}
		}
	}
	return joined
}

// Fork creates a nested scope for a function/class body: same qualifier
// extended with the new block's name, empty alias/local tables, inheriting
// nothing from s: UseForwardReferences starts false, the function-body
// default of §4.3. Decorator evaluation does not use Fork; qualify runs it
// in a Clone with UseForwardReferences set to true.
func (s *Scope) Fork(extendQualifier ...string) *Scope {
	q := s.Qualifier
	if len(extendQualifier) > 0 {
		q = s.Qualifier.Extend(extendQualifier...)
	}
	child := New(q, false)
	return child
}
