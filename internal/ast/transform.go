package ast

// StatementTransformer folds a user-supplied function over the statement
// stream of a Source. For each statement the function returns a new state
// and zero, one, or many replacement statements. Nested blocks (Body,
// Orelse, Handlers, Finally, the bodies of Define/Class) are traversed
// recursively with the same contract.
//
// Visit order is pre-order over statement *structure* (an outer statement
// is encountered before we descend into it) but emission is post-order: a
// statement's own replacement is computed only after every statement
// nested inside it has already been visited and replaced.
type StatementTransformer struct {
	Visit func(state any, stmt Statement) (any, []Statement)
}

// Run transforms every statement in src and returns the final state
// alongside the new Source.
func (t *StatementTransformer) Run(state any, src *Source) (any, *Source) {
	newState, stmts := t.transformList(state, src.Statements)
	return newState, src.Clone(stmts)
}

func (t *StatementTransformer) transformList(state any, stmts []Statement) (any, []Statement) {
	out := make([]Statement, 0, len(stmts))
	for _, s := range stmts {
		rebuilt := t.descend(&state, s)
		var repl []Statement
		state, repl = t.Visit(state, rebuilt)
		out = append(out, repl...)
	}
	return state, out
}

// descend rebuilds the nested-block fields of s (if any) by recursively
// transforming them, threading state through *statePtr.
func (t *StatementTransformer) descend(statePtr *any, s Statement) Statement {
	state := *statePtr
	switch n := s.(type) {
	case *If:
		var body, orelse []Statement
		state, body = t.transformList(state, n.Body)
		state, orelse = t.transformList(state, n.Orelse)
		*statePtr = state
		return &If{baseNode: n.baseNode, Test: n.Test, Body: body, Orelse: orelse}
	case *For:
		var body, orelse []Statement
		state, body = t.transformList(state, n.Body)
		state, orelse = t.transformList(state, n.Orelse)
		*statePtr = state
		return &For{baseNode: n.baseNode, Target: n.Target, Iterator: n.Iterator, Body: body, Orelse: orelse}
	case *While:
		var body, orelse []Statement
		state, body = t.transformList(state, n.Body)
		state, orelse = t.transformList(state, n.Orelse)
		*statePtr = state
		return &While{baseNode: n.baseNode, Test: n.Test, Body: body, Orelse: orelse}
	case *Try:
		var body, orelse, finally []Statement
		state, body = t.transformList(state, n.Body)
		handlers := make([]ExceptHandler, len(n.Handlers))
		for i, h := range n.Handlers {
			var hb []Statement
			state, hb = t.transformList(state, h.Body)
			handlers[i] = ExceptHandler{Type: h.Type, Name: h.Name, Body: hb}
		}
		state, orelse = t.transformList(state, n.Orelse)
		state, finally = t.transformList(state, n.Finally)
		*statePtr = state
		return &Try{baseNode: n.baseNode, Body: body, Handlers: handlers, Orelse: orelse, Finally: finally}
	case *With:
		var body []Statement
		state, body = t.transformList(state, n.Body)
		*statePtr = state
		return &With{baseNode: n.baseNode, Items: n.Items, Body: body}
	case *Define:
		var body []Statement
		state, body = t.transformList(state, n.Body)
		*statePtr = state
		return &Define{baseNode: n.baseNode, NodeID: n.NodeID, Name: n.Name, Parameters: n.Parameters, Body: body,
			Decorators: n.Decorators, ReturnAnnotation: n.ReturnAnnotation, Parent: n.Parent}
	case *Class:
		var body []Statement
		state, body = t.transformList(state, n.Body)
		*statePtr = state
		return &Class{baseNode: n.baseNode, Name: n.Name, Bases: n.Bases, Body: body,
			Decorators: n.Decorators, Docstring: n.Docstring, Parent: n.Parent}
	default:
		return s
	}
}

// FullTransformer is a StatementTransformer that additionally rewrites
// expressions and can prune descent into a statement's children via
// TransformChildren.
type FullTransformer struct {
	VisitStmt         func(state any, stmt Statement) (any, []Statement)
	VisitExpr         func(state any, expr Expression) (any, Expression)
	TransformChildren func(stmt Statement) bool
}

func (t *FullTransformer) shouldDescend(s Statement) bool {
	if t.TransformChildren == nil {
		return true
	}
	return t.TransformChildren(s)
}

// Run transforms every statement (and, within it, every expression) of src.
func (t *FullTransformer) Run(state any, src *Source) (any, *Source) {
	newState, stmts := t.transformStmtList(state, src.Statements)
	return newState, src.Clone(stmts)
}

func (t *FullTransformer) transformStmtList(state any, stmts []Statement) (any, []Statement) {
	out := make([]Statement, 0, len(stmts))
	for _, s := range stmts {
		rebuilt := s
		if t.shouldDescend(s) {
			rebuilt = t.descendStmt(&state, s)
		}
		var repl []Statement
		state, repl = t.VisitStmt(state, rebuilt)
		out = append(out, repl...)
	}
	return state, out
}

func (t *FullTransformer) expr(statePtr *any, e Expression) Expression {
	if e == nil {
		return nil
	}
	state := *statePtr
	rebuilt := t.descendExpr(&state, e)
	var out Expression
	state, out = t.VisitExpr(state, rebuilt)
	*statePtr = state
	return out
}

func (t *FullTransformer) exprList(statePtr *any, es []Expression) []Expression {
	if es == nil {
		return nil
	}
	out := make([]Expression, len(es))
	for i, e := range es {
		out[i] = t.expr(statePtr, e)
	}
	return out
}

func (t *FullTransformer) comprehensions(statePtr *any, gens []Comprehension) []Comprehension {
	out := make([]Comprehension, len(gens))
	for i, g := range gens {
		out[i] = Comprehension{
			Target:  t.expr(statePtr, g.Target),
			Iter:    t.expr(statePtr, g.Iter),
			Ifs:     t.exprList(statePtr, g.Ifs),
			IsAsync: g.IsAsync,
		}
	}
	return out
}

func (t *FullTransformer) arguments(statePtr *any, args []Argument) []Argument {
	out := make([]Argument, len(args))
	for i, a := range args {
		out[i] = Argument{Name: a.Name, HasName: a.HasName, Value: t.expr(statePtr, a.Value)}
	}
	return out
}

// descendExpr rewrites e's children (bottom-up) without invoking VisitExpr
// on e itself; the caller (expr) applies VisitExpr afterward.
func (t *FullTransformer) descendExpr(statePtr *any, e Expression) Expression {
	switch n := e.(type) {
	case *Access:
		base := t.expr(statePtr, n.Base)
		elems := make([]AccessElement, len(n.Elements))
		for i, el := range n.Elements {
			switch ee := el.(type) {
			case *Ident:
				elems[i] = ee
			case *Call:
				elems[i] = &Call{baseNode: ee.baseNode, Arguments: t.arguments(statePtr, ee.Arguments)}
			default:
				elems[i] = el
			}
		}
		return &Access{baseNode: n.baseNode, Base: base, Elements: elems}
	case *Await:
		return &Await{baseNode: n.baseNode, Value: t.expr(statePtr, n.Value)}
	case *BooleanOp:
		return &BooleanOp{baseNode: n.baseNode, Op: n.Op, Values: t.exprList(statePtr, n.Values)}
	case *CallExpr:
		return &CallExpr{baseNode: n.baseNode, Func: t.expr(statePtr, n.Func), Arguments: t.arguments(statePtr, n.Arguments)}
	case *Comparison:
		return &Comparison{baseNode: n.baseNode, Left: t.expr(statePtr, n.Left), Ops: n.Ops, Comparators: t.exprList(statePtr, n.Comparators)}
	case *Dictionary:
		entries := make([]DictEntry, len(n.Entries))
		for i, en := range n.Entries {
			entries[i] = DictEntry{Key: t.expr(statePtr, en.Key), Value: t.expr(statePtr, en.Value)}
		}
		return &Dictionary{baseNode: n.baseNode, Entries: entries}
	case *DictComprehension:
		return &DictComprehension{baseNode: n.baseNode, Key: t.expr(statePtr, n.Key), Value: t.expr(statePtr, n.Value), Generators: t.comprehensions(statePtr, n.Generators)}
	case *Generator:
		return &Generator{baseNode: n.baseNode, Element: t.expr(statePtr, n.Element), Generators: t.comprehensions(statePtr, n.Generators)}
	case *Lambda:
		return &Lambda{baseNode: n.baseNode, Parameters: n.Parameters, Body: t.expr(statePtr, n.Body)}
	case *List:
		return &List{baseNode: n.baseNode, Elements: t.exprList(statePtr, n.Elements)}
	case *ListComp:
		return &ListComp{baseNode: n.baseNode, Element: t.expr(statePtr, n.Element), Generators: t.comprehensions(statePtr, n.Generators)}
	case *Set:
		return &Set{baseNode: n.baseNode, Elements: t.exprList(statePtr, n.Elements)}
	case *SetComp:
		return &SetComp{baseNode: n.baseNode, Element: t.expr(statePtr, n.Element), Generators: t.comprehensions(statePtr, n.Generators)}
	case *Starred:
		return &Starred{baseNode: n.baseNode, Arity: n.Arity, Value: t.expr(statePtr, n.Value)}
	case *String:
		if n.Kind != StringFormat {
			return n
		}
		parts := t.exprList(statePtr, n.Parts)
		return &String{baseNode: n.baseNode, Value: n.Value, Kind: n.Kind, Substrings: n.Substrings, Parts: parts}
	case *Ternary:
		return &Ternary{baseNode: n.baseNode, Test: t.expr(statePtr, n.Test), Body: t.expr(statePtr, n.Body), Or: t.expr(statePtr, n.Or)}
	case *Tuple:
		return &Tuple{baseNode: n.baseNode, Elements: t.exprList(statePtr, n.Elements)}
	case *Unary:
		return &Unary{baseNode: n.baseNode, Op: n.Op, Operand: t.expr(statePtr, n.Operand)}
	case *Yield:
		return &Yield{baseNode: n.baseNode, Value: t.expr(statePtr, n.Value), From: n.From}
	default:
		// Identifiers and literal leaves have no children.
		return e
	}
}

func (t *FullTransformer) descendStmt(statePtr *any, s Statement) Statement {
	state := *statePtr
	defer func() { *statePtr = state }()
	switch n := s.(type) {
	case *Assign:
		target := t.expr(&state, n.Target)
		ann := t.expr(&state, n.Annotation)
		val := t.expr(&state, n.Value)
		return &Assign{baseNode: n.baseNode, Target: target, Annotation: ann, Value: val, Parent: n.Parent}
	case *Assert:
		return &Assert{baseNode: n.baseNode, Test: t.expr(&state, n.Test), Msg: t.expr(&state, n.Msg)}
	case *Class:
		bases := t.exprList(&state, n.Bases)
		decorators := t.exprList(&state, n.Decorators)
		var body []Statement
		state, body = t.transformStmtList(state, n.Body)
		return &Class{baseNode: n.baseNode, Name: n.Name, Bases: bases, Body: body, Decorators: decorators, Docstring: n.Docstring, Parent: n.Parent}
	case *Define:
		params := make([]*Parameter, len(n.Parameters))
		for i, p := range n.Parameters {
			params[i] = &Parameter{Name: p.Name, Prefix: p.Prefix, Annotation: t.expr(&state, p.Annotation), Default: t.expr(&state, p.Default)}
		}
		decorators := t.exprList(&state, n.Decorators)
		ret := t.expr(&state, n.ReturnAnnotation)
		var body []Statement
		state, body = t.transformStmtList(state, n.Body)
		return &Define{baseNode: n.baseNode, NodeID: n.NodeID, Name: n.Name, Parameters: params, Body: body, Decorators: decorators, ReturnAnnotation: ret, Parent: n.Parent}
	case *Delete:
		return &Delete{baseNode: n.baseNode, Targets: t.exprList(&state, n.Targets)}
	case *ExprStmt:
		return &ExprStmt{baseNode: n.baseNode, Value: t.expr(&state, n.Value)}
	case *For:
		target := t.expr(&state, n.Target)
		iter := t.expr(&state, n.Iterator)
		var body, orelse []Statement
		state, body = t.transformStmtList(state, n.Body)
		state, orelse = t.transformStmtList(state, n.Orelse)
		return &For{baseNode: n.baseNode, Target: target, Iterator: iter, Body: body, Orelse: orelse}
	case *If:
		test := t.expr(&state, n.Test)
		var body, orelse []Statement
		state, body = t.transformStmtList(state, n.Body)
		state, orelse = t.transformStmtList(state, n.Orelse)
		return &If{baseNode: n.baseNode, Test: test, Body: body, Orelse: orelse}
	case *Raise:
		return &Raise{baseNode: n.baseNode, Value: t.expr(&state, n.Value)}
	case *Return:
		return &Return{baseNode: n.baseNode, Value: t.expr(&state, n.Value), IsImplicit: n.IsImplicit}
	case *Try:
		var body, orelse, finally []Statement
		state, body = t.transformStmtList(state, n.Body)
		handlers := make([]ExceptHandler, len(n.Handlers))
		for i, h := range n.Handlers {
			typ := t.expr(&state, h.Type)
			var hb []Statement
			state, hb = t.transformStmtList(state, h.Body)
			handlers[i] = ExceptHandler{Type: typ, Name: h.Name, Body: hb}
		}
		state, orelse = t.transformStmtList(state, n.Orelse)
		state, finally = t.transformStmtList(state, n.Finally)
		return &Try{baseNode: n.baseNode, Body: body, Handlers: handlers, Orelse: orelse, Finally: finally}
	case *With:
		items := make([]WithItem, len(n.Items))
		for i, it := range n.Items {
			items[i] = WithItem{Value: t.expr(&state, it.Value), As: t.expr(&state, it.As)}
		}
		var body []Statement
		state, body = t.transformStmtList(state, n.Body)
		return &With{baseNode: n.baseNode, Items: items, Body: body}
	case *While:
		test := t.expr(&state, n.Test)
		var body, orelse []Statement
		state, body = t.transformStmtList(state, n.Body)
		state, orelse = t.transformStmtList(state, n.Orelse)
		return &While{baseNode: n.baseNode, Test: test, Body: body, Orelse: orelse}
	case *YieldStmt:
		return &YieldStmt{baseNode: n.baseNode, Value: t.expr(&state, n.Value)}
	case *YieldFromStmt:
		return &YieldFromStmt{baseNode: n.baseNode, Value: t.expr(&state, n.Value)}
	default:
		// Import, Global, Nonlocal, Pass, Break, Continue carry no expressions.
		return s
	}
}
