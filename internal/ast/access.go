package ast

import "github.com/pyscope/pyscope/internal/token"

// AccessElement is one link in an Access chain: either a plain Identifier
// or a Call applied to the preceding elements.
type AccessElement interface {
	accessElementNode()
}

// Ident is an Access element naming something: a module, a class, a
// method, a local. It is also reused as the Expression leaf for a bare
// name reference (spec.md's "Name").
type Ident struct {
	baseNode
	Name string
}

func (*Ident) accessElementNode() {}
func (*Ident) expressionNode()    {}

// Argument is one call argument, optionally named (kwarg).
type Argument struct {
	Name    string // empty when positional
	HasName bool
	Value   Expression
}

// Call is an Access element applying the preceding elements to a list of
// arguments, e.g. the "(x, y)" in "f(x, y)" or "obj.method(x, y)".
type Call struct {
	baseNode
	Arguments []Argument
}

func (*Call) accessElementNode() {}

// Access represents a qualified name, a member selection, or a call chain
// uniformly as an ordered sequence of elements. When Base is non-nil this
// is an ExpressionAccess: an arbitrary expression followed by a trailing
// Access, e.g. "(f()).g" is Access{Base: f(), Elements: [Ident "g"]}.
type Access struct {
	baseNode
	Base     Expression // nil unless this is an ExpressionAccess
	Elements []AccessElement
}

func (*Access) expressionNode() {}

// IsExpressionAccess reports whether this Access has a non-Access
// expression as its head.
func (a *Access) IsExpressionAccess() bool { return a.Base != nil }

// Head returns the leading element of a non-expression Access, or nil if
// the Access is empty or is an ExpressionAccess.
func (a *Access) Head() AccessElement {
	if a.Base != nil || len(a.Elements) == 0 {
		return nil
	}
	return a.Elements[0]
}

// Last returns the trailing element of the Access, or nil if empty.
func (a *Access) Last() AccessElement {
	if len(a.Elements) == 0 {
		return nil
	}
	return a.Elements[len(a.Elements)-1]
}

// NewAccess builds a plain (non-expression) Access from identifier names,
// the common case of a fully-qualified dotted path with no calls.
func NewAccess(loc token.ReferenceLocation, names ...string) *Access {
	elems := make([]AccessElement, len(names))
	for i, n := range names {
		elems[i] = &Ident{baseNode: baseNode{Loc: loc}, Name: n}
	}
	return &Access{baseNode: baseNode{Loc: loc}, Elements: elems}
}

// Reference is an Access restricted to identifiers only, used for
// declared names (import targets, assignment targets, class/def names).
type Reference struct {
	Loc   token.ReferenceLocation
	Names []string
}

func (r Reference) Location() token.ReferenceLocation { return r.Loc }

// String renders the dotted form, e.g. "pkg.Class.method".
func (r Reference) String() string {
	out := ""
	for i, n := range r.Names {
		if i > 0 {
			out += "."
		}
		out += n
	}
	return out
}

// Extend returns a new Reference with additional trailing names, used to
// build qualified names like "<qualifier>.<ClassName>.<name>".
func (r Reference) Extend(names ...string) Reference {
	out := make([]string, 0, len(r.Names)+len(names))
	out = append(out, r.Names...)
	out = append(out, names...)
	return Reference{Loc: r.Loc, Names: out}
}

// ToAccess converts a Reference to the equivalent identifier-only Access.
func (r Reference) ToAccess() *Access {
	return NewAccess(r.Loc, r.Names...)
}

// ReferenceFromAccess converts an Access to a Reference if and only if
// every element is a plain Identifier (no Calls, not an ExpressionAccess).
// ok is false otherwise.
func ReferenceFromAccess(a *Access) (ref Reference, ok bool) {
	if a == nil || a.IsExpressionAccess() {
		return Reference{}, false
	}
	names := make([]string, 0, len(a.Elements))
	for _, el := range a.Elements {
		id, isIdent := el.(*Ident)
		if !isIdent {
			return Reference{}, false
		}
		names = append(names, id.Name)
	}
	return Reference{Loc: a.Loc, Names: names}, true
}
