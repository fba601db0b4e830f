package ast

import "strings"

// QualifiedDefineName walks a Define's Parent chain (through enclosing
// Classes and Defines) and prefixes the result with the source's qualifier,
// producing the dotted name the call graph engine keys callers by (§4.4,
// e.g. "Foo.quux"). It does not consult the qualify pass's alias map: by the
// time the call graph runs, Parent links already describe lexical nesting
// unambiguously.
func QualifiedDefineName(d *Define, qualifier Reference) string {
	return strings.Join(append(append([]string{}, qualifier.Names...), nestedNames(d)...), ".")
}

// QualifiedClassName is QualifiedDefineName's counterpart for Class nodes,
// used by the override map to name ancestor/subclass methods.
func QualifiedClassName(c *Class, qualifier Reference) string {
	return strings.Join(append(append([]string{}, qualifier.Names...), nestedNames(c)...), ".")
}

func nestedNames(s Statement) []string {
	switch n := s.(type) {
	case *Define:
		if n.Parent != nil {
			return append(nestedNames(n.Parent), n.Name)
		}
		return []string{n.Name}
	case *Class:
		if n.Parent != nil {
			return append(nestedNames(n.Parent), n.Name)
		}
		return []string{n.Name}
	default:
		return nil
	}
}

// Alias is the canonical form a name rewrites to within a Scope, and
// whether its binding is a forward declaration (a class/def introduced
// later in the same lexical block).
type Alias struct {
	Access            *Access
	Qualifier         Reference
	IsForwardReference bool
}

// IsWhileTrue reports whether w is an unconditional "while True:" loop,
// used by expand_implicit_returns to recognize non-returning bodies.
func IsWhileTrue(w *While) bool {
	lit, ok := w.Test.(*BoolLiteral)
	return ok && lit.Value
}

// EndsInReturn reports whether the last statement of body is a Return.
func EndsInReturn(body []Statement) bool {
	if len(body) == 0 {
		return false
	}
	_, ok := body[len(body)-1].(*Return)
	return ok
}

// ContainsYield reports whether any statement in body contains a Yield
// expression or YieldFrom/Yield statement, without descending into nested
// Define/Class bodies (a nested function's yields belong to it, not to the
// enclosing function).
func ContainsYield(body []Statement) bool {
	found := false
	var visitExpr func(Expression) bool
	visitExpr = func(e Expression) bool {
		if e == nil || found {
			return found
		}
		switch n := e.(type) {
		case *Yield:
			found = true
		case *Access:
			visitExpr(n.Base)
			for _, el := range n.Elements {
				if c, ok := el.(*Call); ok {
					for _, a := range c.Arguments {
						visitExpr(a.Value)
					}
				}
			}
		case *Await:
			visitExpr(n.Value)
		case *BooleanOp:
			for _, v := range n.Values {
				visitExpr(v)
			}
		case *CallExpr:
			visitExpr(n.Func)
			for _, a := range n.Arguments {
				visitExpr(a.Value)
			}
		case *Comparison:
			visitExpr(n.Left)
			for _, c := range n.Comparators {
				visitExpr(c)
			}
		case *Dictionary:
			for _, en := range n.Entries {
				visitExpr(en.Key)
				visitExpr(en.Value)
			}
		case *Ternary:
			visitExpr(n.Test)
			visitExpr(n.Body)
			visitExpr(n.Or)
		case *Tuple:
			for _, el := range n.Elements {
				visitExpr(el)
			}
		case *List:
			for _, el := range n.Elements {
				visitExpr(el)
			}
		case *Set:
			for _, el := range n.Elements {
				visitExpr(el)
			}
		case *Unary:
			visitExpr(n.Operand)
		case *Starred:
			visitExpr(n.Value)
		}
		return found
	}

	var walk func([]Statement)
	walk = func(stmts []Statement) {
		for _, s := range stmts {
			if found {
				return
			}
			switch n := s.(type) {
			case *YieldStmt, *YieldFromStmt:
				found = true
			case *ExprStmt:
				visitExpr(n.Value)
			case *Assign:
				visitExpr(n.Value)
			case *Return:
				visitExpr(n.Value)
			case *If:
				visitExpr(n.Test)
				walk(n.Body)
				walk(n.Orelse)
			case *For:
				visitExpr(n.Iterator)
				walk(n.Body)
				walk(n.Orelse)
			case *While:
				visitExpr(n.Test)
				walk(n.Body)
				walk(n.Orelse)
			case *With:
				walk(n.Body)
			case *Try:
				walk(n.Body)
				for _, h := range n.Handlers {
					walk(h.Body)
				}
				walk(n.Orelse)
				walk(n.Finally)
			}
			// Define/Class bodies are intentionally not descended into.
		}
	}
	walk(body)
	return found
}

// EndsInFinallyReturn reports whether body ends in a Try statement whose
// finally clause itself ends in a Return.
func EndsInFinallyReturn(body []Statement) bool {
	if len(body) == 0 {
		return false
	}
	tryStmt, ok := body[len(body)-1].(*Try)
	if !ok {
		return false
	}
	return EndsInReturn(tryStmt.Finally)
}

// EndsInWhileTrue reports whether body ends in an unconditional
// "while True:" loop (treated as non-returning).
func EndsInWhileTrue(body []Statement) bool {
	if len(body) == 0 {
		return false
	}
	w, ok := body[len(body)-1].(*While)
	return ok && IsWhileTrue(w)
}
