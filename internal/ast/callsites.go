package ast

// CallSites returns every Access in stmt's own expressions whose last
// element is a Call — the call graph engine's definition of a call site
// (§4.4, §GLOSSARY "Call site"). It does not descend into nested
// Define/Class bodies: those calls belong to the nested function, keyed
// under its own NodeID.
func CallSites(stmt Statement) []*Access {
	var sites []*Access
	var visitExpr func(Expression)
	visitExpr = func(e Expression) {
		if e == nil {
			return
		}
		switch n := e.(type) {
		case *Access:
			if n.Base != nil {
				visitExpr(n.Base)
			}
			if _, ok := n.Last().(*Call); ok {
				sites = append(sites, n)
			}
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
		case *DictComprehension:
			visitExpr(n.Key)
			visitExpr(n.Value)
			visitComprehensions(n.Generators, visitExpr)
		case *Generator:
			visitExpr(n.Element)
			visitComprehensions(n.Generators, visitExpr)
		case *Lambda:
			visitExpr(n.Body)
		case *List:
			for _, el := range n.Elements {
				visitExpr(el)
			}
		case *ListComp:
			visitExpr(n.Element)
			visitComprehensions(n.Generators, visitExpr)
		case *Set:
			for _, el := range n.Elements {
				visitExpr(el)
			}
		case *SetComp:
			visitExpr(n.Element)
			visitComprehensions(n.Generators, visitExpr)
		case *Starred:
			visitExpr(n.Value)
		case *String:
			for _, p := range n.Parts {
				visitExpr(p)
			}
		case *Ternary:
			visitExpr(n.Test)
			visitExpr(n.Body)
			visitExpr(n.Or)
		case *Tuple:
			for _, el := range n.Elements {
				visitExpr(el)
			}
		case *Unary:
			visitExpr(n.Operand)
		case *Yield:
			visitExpr(n.Value)
		}
	}

	var walk func([]Statement)
	walk = func(stmts []Statement) {
		for _, s := range stmts {
			switch n := s.(type) {
			case *Assign:
				visitExpr(n.Value)
				visitExpr(n.Target)
			case *Assert:
				visitExpr(n.Test)
				visitExpr(n.Msg)
			case *Delete:
				for _, t := range n.Targets {
					visitExpr(t)
				}
			case *ExprStmt:
				visitExpr(n.Value)
			case *For:
				visitExpr(n.Iterator)
				walk(n.Body)
				walk(n.Orelse)
			case *If:
				visitExpr(n.Test)
				walk(n.Body)
				walk(n.Orelse)
			case *Raise:
				visitExpr(n.Value)
			case *Return:
				visitExpr(n.Value)
			case *Try:
				walk(n.Body)
				for _, h := range n.Handlers {
					visitExpr(h.Type)
					walk(h.Body)
				}
				walk(n.Orelse)
				walk(n.Finally)
			case *With:
				for _, item := range n.Items {
					visitExpr(item.Value)
				}
				walk(n.Body)
			case *While:
				visitExpr(n.Test)
				walk(n.Body)
				walk(n.Orelse)
			case *YieldStmt:
				visitExpr(n.Value)
			case *YieldFromStmt:
				visitExpr(n.Value)
			}
			// Define/Class bodies are intentionally not descended into:
			// their call sites belong to their own node.
		}
	}
	walk([]Statement{stmt})
	return sites
}

func visitComprehensions(gens []Comprehension, visitExpr func(Expression)) {
	for _, g := range gens {
		visitExpr(g.Iter)
		for _, i := range g.Ifs {
			visitExpr(i)
		}
	}
}
