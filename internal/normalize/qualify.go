package normalize

import (
	"strings"

	"github.com/pyscope/pyscope/internal/ast"
	"github.com/pyscope/pyscope/internal/scope"
	"github.com/pyscope/pyscope/internal/token"
)

// Qualify is pass 8 (§4.3), the heart of the pipeline: every name becomes
// fully qualified, a synthetic $local_/$parameter$/$target$ form, or a
// built-in. Unlike the other ten passes it is not expressed over the
// generic StatementTransformer/FullTransformer shapes: its two-phase
// explore-then-fold discipline and per-branch scope joining need direct
// control over recursion that those generic walkers intentionally don't
// expose.
func Qualify(source *ast.Source, useForwardReferences bool) *ast.Source {
	sc := scope.New(source.Qualifier, true)
	sc.UseForwardReferences = useForwardReferences
	stmts := qualifyBlock(sc, source.Statements, false)
	return source.Clone(stmts)
}

// qualifyBlock runs the explore phase over stmts (registering forward
// aliases and globals) and then folds qualifyStatement left to right,
// mutating sc as it goes.
func qualifyBlock(sc *scope.Scope, stmts []ast.Statement, qualifyAssign bool) []ast.Statement {
	explore(sc, stmts)
	var out []ast.Statement
	for _, stmt := range stmts {
		out = append(out, qualifyStatement(sc, stmt, qualifyAssign)...)
	}
	return out
}

// explore walks a block's direct children, recursing into structural
// statements (if/for/while/with/try) but not into nested Define/Class
// bodies, registering forward aliases for every "class X", "def X", and
// "X: _SpecialForm = ..." plus "global" declarations.
func explore(sc *scope.Scope, stmts []ast.Statement) {
	for _, stmt := range stmts {
		switch n := stmt.(type) {
		case *ast.Class:
			registerForward(sc, n.Name, n.Location())
		case *ast.Define:
			registerForward(sc, n.Name, n.Location())
		case *ast.Assign:
			if isSpecialFormAssign(n) {
				if name, ok := bareTargetName(n.Target); ok {
					registerForward(sc, name, n.Location())
				}
			}
		case *ast.Global:
			for _, name := range n.Names {
				sc.AddImmutable(name)
			}
		case *ast.If:
			explore(sc, n.Body)
			explore(sc, n.Orelse)
		case *ast.For:
			explore(sc, n.Body)
			explore(sc, n.Orelse)
		case *ast.While:
			explore(sc, n.Body)
			explore(sc, n.Orelse)
		case *ast.With:
			explore(sc, n.Body)
		case *ast.Try:
			explore(sc, n.Body)
			for _, h := range n.Handlers {
				explore(sc, h.Body)
			}
			explore(sc, n.Orelse)
			explore(sc, n.Finally)
		}
	}
}

func registerForward(sc *scope.Scope, name string, loc token.ReferenceLocation) {
	names := append(append([]string{}, sc.Qualifier.Names...), name)
	sc.SetAlias(name, &ast.Alias{Access: ast.NewAccess(loc, names...), Qualifier: sc.Qualifier, IsForwardReference: true})
}

func isSpecialFormAssign(assign *ast.Assign) bool {
	if assign.Annotation == nil {
		return false
	}
	access, ok := assign.Annotation.(*ast.Access)
	if !ok {
		return false
	}
	ref, ok := ast.ReferenceFromAccess(access)
	if !ok {
		return false
	}
	switch {
	case len(ref.Names) == 1 && ref.Names[0] == "_SpecialForm":
		return true
	case len(ref.Names) == 2 && ref.Names[0] == "typing" && ref.Names[1] == "_SpecialForm":
		return true
	}
	return false
}

func qualifyStatement(sc *scope.Scope, stmt ast.Statement, qualifyAssign bool) []ast.Statement {
	switch n := stmt.(type) {
	case *ast.Import:
		if isWildcard(n) {
			// A star that pass 7 left in place (forced) is kept as is.
			return []ast.Statement{stmt}
		}
		installImportAliases(sc, n)
		return nil
	case *ast.Pass, *ast.Break, *ast.Continue, *ast.Global, *ast.Nonlocal:
		return []ast.Statement{stmt}
	case *ast.Assign:
		value := qualifyExpr(sc, n.Value, false)
		var annotation ast.Expression
		if n.Annotation != nil {
			annotation = qualifyExpr(sc, n.Annotation, true)
		}
		target := qualifyTarget(sc, n.Target, qualifyAssign)
		rewritten := &ast.Assign{Target: target, Annotation: annotation, Value: value, Parent: n.Parent}
		rewritten.Loc = n.Location()
		return []ast.Statement{rewritten}
	case *ast.Assert:
		rewritten := *n
		rewritten.Test = qualifyExpr(sc, n.Test, false)
		rewritten.Msg = qualifyExpr(sc, n.Msg, false)
		return []ast.Statement{&rewritten}
	case *ast.Delete:
		rewritten := *n
		rewritten.Targets = qualifyExprList(sc, n.Targets)
		return []ast.Statement{&rewritten}
	case *ast.ExprStmt:
		rewritten := *n
		rewritten.Value = qualifyExpr(sc, n.Value, false)
		return []ast.Statement{&rewritten}
	case *ast.Raise:
		rewritten := *n
		rewritten.Value = qualifyExpr(sc, n.Value, false)
		return []ast.Statement{&rewritten}
	case *ast.Return:
		rewritten := *n
		rewritten.Value = qualifyExpr(sc, n.Value, false)
		return []ast.Statement{&rewritten}
	case *ast.YieldStmt:
		rewritten := *n
		rewritten.Value = qualifyExpr(sc, n.Value, false)
		return []ast.Statement{&rewritten}
	case *ast.YieldFromStmt:
		rewritten := *n
		rewritten.Value = qualifyExpr(sc, n.Value, false)
		return []ast.Statement{&rewritten}
	case *ast.If:
		test := qualifyExpr(sc, n.Test, false)
		bodyScope := sc.Clone()
		body := qualifyBlock(bodyScope, n.Body, qualifyAssign)
		orelseScope := sc.Clone()
		orelse := qualifyBlock(orelseScope, n.Orelse, qualifyAssign)
		*sc = *scope.Join(sc, bodyScope, orelseScope)
		rewritten := &ast.If{Test: test, Body: body, Orelse: orelse}
		rewritten.Loc = n.Location()
		return []ast.Statement{rewritten}
	case *ast.For:
		iter := qualifyExpr(sc, n.Iterator, false)
		bodyScope := sc.Clone()
		target := qualifyTarget(bodyScope, n.Target, false)
		body := qualifyBlock(bodyScope, n.Body, qualifyAssign)
		orelseScope := sc.Clone()
		orelse := qualifyBlock(orelseScope, n.Orelse, qualifyAssign)
		*sc = *scope.Join(sc, bodyScope, orelseScope)
		rewritten := &ast.For{Target: target, Iterator: iter, Body: body, Orelse: orelse}
		rewritten.Loc = n.Location()
		return []ast.Statement{rewritten}
	case *ast.While:
		test := qualifyExpr(sc, n.Test, false)
		bodyScope := sc.Clone()
		body := qualifyBlock(bodyScope, n.Body, qualifyAssign)
		orelseScope := sc.Clone()
		orelse := qualifyBlock(orelseScope, n.Orelse, qualifyAssign)
		*sc = *scope.Join(sc, bodyScope, orelseScope)
		rewritten := &ast.While{Test: test, Body: body, Orelse: orelse}
		rewritten.Loc = n.Location()
		return []ast.Statement{rewritten}
	case *ast.With:
		bodyScope := sc.Clone()
		items := make([]ast.WithItem, len(n.Items))
		for i, it := range n.Items {
			value := qualifyExpr(bodyScope, it.Value, false)
			var as ast.Expression
			if it.As != nil {
				as = qualifyTarget(bodyScope, it.As, false)
			}
			items[i] = ast.WithItem{Value: value, As: as}
		}
		body := qualifyBlock(bodyScope, n.Body, qualifyAssign)
		*sc = *bodyScope
		rewritten := &ast.With{Items: items, Body: body}
		rewritten.Loc = n.Location()
		return []ast.Statement{rewritten}
	case *ast.Try:
		bodyScope := sc.Clone()
		body := qualifyBlock(bodyScope, n.Body, qualifyAssign)
		handlers := make([]ast.ExceptHandler, len(n.Handlers))
		branches := []*scope.Scope{bodyScope}
		for i, h := range n.Handlers {
			hs := sc.Clone()
			typ := qualifyExpr(hs, h.Type, false)
			name := h.Name
			if name != "" {
				synthetic := "$target$" + name
				hs.SetAlias(name, &ast.Alias{Access: ast.NewAccess(token.ReferenceLocation{}, synthetic), Qualifier: hs.Qualifier})
				name = synthetic
			}
			hbody := qualifyBlock(hs, h.Body, qualifyAssign)
			handlers[i] = ast.ExceptHandler{Type: typ, Name: name, Body: hbody}
			branches = append(branches, hs)
		}
		orelseScope := sc.Clone()
		orelse := qualifyBlock(orelseScope, n.Orelse, qualifyAssign)
		branches = append(branches, orelseScope)
		finallyScope := scope.Join(sc, branches...)
		finally := qualifyBlock(finallyScope, n.Finally, qualifyAssign)
		*sc = *finallyScope
		rewritten := &ast.Try{Body: body, Handlers: handlers, Orelse: orelse, Finally: finally}
		rewritten.Loc = n.Location()
		return []ast.Statement{rewritten}
	case *ast.Class:
		return []ast.Statement{qualifyClass(sc, n)}
	case *ast.Define:
		return []ast.Statement{qualifyDefine(sc, n, qualifyAssign)}
	default:
		return []ast.Statement{stmt}
	}
}

func installImportAliases(sc *scope.Scope, imp *ast.Import) {
	loc := imp.Location()
	if imp.HasFrom {
		if imp.From == "builtins" {
			return
		}
		fromParts := strings.Split(imp.From, ".")
		for _, a := range imp.Imports {
			if a.Name == "*" {
				continue // wildcard imports are expanded by pass 7, not here.
			}
			local := a.Alias
			if local == "" {
				local = a.Name
			}
			target := append(append([]string{}, fromParts...), a.Name)
			sc.SetAlias(local, &ast.Alias{Access: ast.NewAccess(loc, target...), Qualifier: sc.Qualifier})
		}
		return
	}
	for _, a := range imp.Imports {
		if a.Alias == "" {
			continue // "import M" with no alias installs no alias.
		}
		sc.SetAlias(a.Alias, &ast.Alias{Access: ast.NewAccess(loc, strings.Split(a.Name, ".")...), Qualifier: sc.Qualifier})
	}
}

func qualifyClass(sc *scope.Scope, class *ast.Class) *ast.Class {
	decoratorScope := sc.Clone()
	decoratorScope.UseForwardReferences = true
	decorators := make([]ast.Expression, len(class.Decorators))
	for i, d := range class.Decorators {
		decorators[i] = qualifyExpr(decoratorScope, d, false)
	}
	bases := make([]ast.Expression, len(class.Bases))
	for i, b := range class.Bases {
		bases[i] = qualifyExpr(sc, b, false)
	}
	inner := sc.Fork(class.Name)
	body := qualifyBlock(inner, class.Body, true)
	rewritten := &ast.Class{Name: class.Name, Bases: bases, Body: body, Decorators: decorators, Docstring: class.Docstring, Parent: class.Parent}
	rewritten.Loc = class.Location()
	return rewritten
}

func qualifyDefine(sc *scope.Scope, define *ast.Define, exemptModifierDecorators bool) *ast.Define {
	decoratorScope := sc.Clone()
	decoratorScope.UseForwardReferences = true
	decorators := make([]ast.Expression, len(define.Decorators))
	for i, d := range define.Decorators {
		if exemptModifierDecorators && isMethodModifierDecorator(d) {
			decorators[i] = d
			continue
		}
		decorators[i] = qualifyExpr(decoratorScope, d, false)
	}

	inner := sc.Fork(define.Name)
	inner.UseForwardReferences = false
	params := qualifyParameters(inner, define.Parameters)
	var ret ast.Expression
	if define.ReturnAnnotation != nil {
		ret = qualifyExpr(inner, define.ReturnAnnotation, true)
	}
	body := qualifyBlock(inner, define.Body, false)

	rewritten := &ast.Define{NodeID: define.NodeID, Name: define.Name, Parameters: params, Body: body,
		Decorators: decorators, ReturnAnnotation: ret, Parent: define.Parent}
	rewritten.Loc = define.Location()
	return rewritten
}

func isMethodModifierDecorator(d ast.Expression) bool {
	access, ok := d.(*ast.Access)
	if !ok {
		return false
	}
	ref, ok := ast.ReferenceFromAccess(access)
	if !ok || len(ref.Names) == 0 {
		return false
	}
	last := ref.Names[len(ref.Names)-1]
	switch last {
	case "staticmethod", "classmethod", "property":
		return true
	}
	return strings.HasSuffix(last, "getter") || strings.HasSuffix(last, "setter") || strings.HasSuffix(last, "deleter")
}

func qualifyParameters(sc *scope.Scope, params []*ast.Parameter) []*ast.Parameter {
	out := make([]*ast.Parameter, len(params))
	for i, p := range params {
		var ann ast.Expression
		if p.Annotation != nil {
			ann = qualifyExpr(sc, p.Annotation, true)
		}
		var def ast.Expression
		if p.Default != nil {
			def = qualifyExpr(sc, p.Default, false)
		}
		synthetic := "$parameter$" + p.Name
		sc.SetAlias(p.Name, &ast.Alias{Access: ast.NewAccess(token.ReferenceLocation{}, synthetic), Qualifier: sc.Qualifier})
		out[i] = &ast.Parameter{Name: synthetic, Prefix: p.Prefix, Annotation: ann, Default: def}
	}
	return out
}

// qualifyTarget binds an assignment/for/with target, recursing through
// tuple/list/starred patterns. qualifyAssign promotes a bare name to a
// sanitized class attribute instead of a local, per §4.3 "Class bodies".
func qualifyTarget(sc *scope.Scope, target ast.Expression, qualifyAssign bool) ast.Expression {
	switch n := target.(type) {
	case nil:
		return nil
	case *ast.Ident:
		return bindName(sc, n, qualifyAssign)
	case *ast.Tuple:
		rewritten := *n
		rewritten.Elements = qualifyTargetList(sc, n.Elements, qualifyAssign)
		return &rewritten
	case *ast.List:
		rewritten := *n
		rewritten.Elements = qualifyTargetList(sc, n.Elements, qualifyAssign)
		return &rewritten
	case *ast.Starred:
		rewritten := *n
		rewritten.Value = qualifyTarget(sc, n.Value, qualifyAssign)
		return &rewritten
	case *ast.Access:
		// An attribute or subscript target (self.x = ...) reads its base
		// chain normally; it never binds a new local.
		return qualifyExpr(sc, n, false)
	default:
		return qualifyExpr(sc, target, false)
	}
}

func qualifyTargetList(sc *scope.Scope, elements []ast.Expression, qualifyAssign bool) []ast.Expression {
	out := make([]ast.Expression, len(elements))
	for i, e := range elements {
		out[i] = qualifyTarget(sc, e, qualifyAssign)
	}
	return out
}

func bindName(sc *scope.Scope, ident *ast.Ident, qualifyAssign bool) ast.Expression {
	name := ident.Name
	loc := ident.Location()

	if alias, ok := sc.LookupAlias(name); ok && !alias.IsForwardReference {
		return alias.Access
	}
	if sc.IsLocal(name) {
		return identExpr(loc, sc.LocalName(name))
	}
	if sc.IsImmutable(name) {
		names := append(append([]string{}, sc.Qualifier.Names...), name)
		return ast.NewAccess(loc, names...)
	}
	if qualifyAssign {
		sanitized := strings.TrimLeft(name, "_")
		names := append(append([]string{}, sc.Qualifier.Names...), sanitized)
		qualified := ast.NewAccess(loc, names...)
		sc.SetAlias(name, &ast.Alias{Access: qualified, Qualifier: sc.Qualifier})
		return qualified
	}
	sc.AddLocal(name)
	return identExpr(loc, sc.LocalName(name))
}

func identExpr(loc token.ReferenceLocation, name string) *ast.Access {
	return ast.NewAccess(loc, name)
}

// qualifyExpr recursively rewrites e. isAnnotation marks an annotation
// position. A raw string literal that survived pass 2 is returned
// unchanged in annotation and value positions alike: this pass does not
// re-parse or qualify the contents of strings.
func qualifyExpr(sc *scope.Scope, e ast.Expression, isAnnotation bool) ast.Expression {
	switch n := e.(type) {
	case nil:
		return nil
	case *ast.Access:
		return qualifyAccess(sc, n, isAnnotation)
	case *ast.Ident:
		return qualifyAccess(sc, &ast.Access{Elements: []ast.AccessElement{n}}, isAnnotation)
	case *ast.Await:
		rewritten := *n
		rewritten.Value = qualifyExpr(sc, n.Value, false)
		return &rewritten
	case *ast.BooleanOp:
		rewritten := *n
		rewritten.Values = qualifyExprList(sc, n.Values)
		return &rewritten
	case *ast.CallExpr:
		rewritten := *n
		rewritten.Func = qualifyExpr(sc, n.Func, false)
		rewritten.Arguments = qualifyArguments(sc, n.Arguments, false)
		return &rewritten
	case *ast.Comparison:
		rewritten := *n
		rewritten.Left = qualifyExpr(sc, n.Left, false)
		rewritten.Comparators = qualifyExprList(sc, n.Comparators)
		return &rewritten
	case *ast.Dictionary:
		rewritten := *n
		entries := make([]ast.DictEntry, len(n.Entries))
		for i, en := range n.Entries {
			entries[i] = ast.DictEntry{Key: qualifyExpr(sc, en.Key, false), Value: qualifyExpr(sc, en.Value, false)}
		}
		rewritten.Entries = entries
		return &rewritten
	case *ast.DictComprehension:
		rewritten := *n
		rewritten.Key = qualifyExpr(sc, n.Key, false)
		rewritten.Value = qualifyExpr(sc, n.Value, false)
		rewritten.Generators = qualifyComprehensions(sc, n.Generators)
		return &rewritten
	case *ast.Generator:
		rewritten := *n
		rewritten.Element = qualifyExpr(sc, n.Element, false)
		rewritten.Generators = qualifyComprehensions(sc, n.Generators)
		return &rewritten
	case *ast.Lambda:
		inner := sc.Clone()
		params := qualifyParameters(inner, n.Parameters)
		rewritten := *n
		rewritten.Parameters = params
		rewritten.Body = qualifyExpr(inner, n.Body, false)
		return &rewritten
	case *ast.List:
		rewritten := *n
		rewritten.Elements = qualifyExprList(sc, n.Elements)
		return &rewritten
	case *ast.ListComp:
		rewritten := *n
		rewritten.Element = qualifyExpr(sc, n.Element, false)
		rewritten.Generators = qualifyComprehensions(sc, n.Generators)
		return &rewritten
	case *ast.Set:
		rewritten := *n
		rewritten.Elements = qualifyExprList(sc, n.Elements)
		return &rewritten
	case *ast.SetComp:
		rewritten := *n
		rewritten.Element = qualifyExpr(sc, n.Element, false)
		rewritten.Generators = qualifyComprehensions(sc, n.Generators)
		return &rewritten
	case *ast.Starred:
		rewritten := *n
		rewritten.Value = qualifyExpr(sc, n.Value, false)
		return &rewritten
	case *ast.String:
		if n.Kind == ast.StringFormat {
			rewritten := *n
			rewritten.Parts = qualifyExprList(sc, n.Parts)
			return &rewritten
		}
		return n
	case *ast.Subscript:
		rewritten := *n
		rewritten.Value = qualifyExpr(sc, n.Value, isAnnotation)
		rewritten.Index = qualifyExpr(sc, n.Index, isAnnotation)
		return &rewritten
	case *ast.Ternary:
		rewritten := *n
		rewritten.Test = qualifyExpr(sc, n.Test, false)
		rewritten.Body = qualifyExpr(sc, n.Body, false)
		rewritten.Or = qualifyExpr(sc, n.Or, false)
		return &rewritten
	case *ast.Tuple:
		rewritten := *n
		rewritten.Elements = qualifyExprList(sc, n.Elements)
		return &rewritten
	case *ast.Unary:
		rewritten := *n
		rewritten.Operand = qualifyExpr(sc, n.Operand, false)
		return &rewritten
	case *ast.Yield:
		rewritten := *n
		rewritten.Value = qualifyExpr(sc, n.Value, false)
		return &rewritten
	default:
		// Literal leaves (Int/Float/Complex/Bool/Ellipsis) have no names.
		return e
	}
}

func qualifyExprList(sc *scope.Scope, list []ast.Expression) []ast.Expression {
	out := make([]ast.Expression, len(list))
	for i, e := range list {
		out[i] = qualifyExpr(sc, e, false)
	}
	return out
}

func qualifyComprehensions(sc *scope.Scope, gens []ast.Comprehension) []ast.Comprehension {
	out := make([]ast.Comprehension, len(gens))
	for i, g := range gens {
		iter := qualifyExpr(sc, g.Iter, false)
		target := qualifyTarget(sc, g.Target, false)
		ifs := make([]ast.Expression, len(g.Ifs))
		for j, cond := range g.Ifs {
			ifs[j] = qualifyExpr(sc, cond, false)
		}
		out[i] = ast.Comprehension{Target: target, Iter: iter, Ifs: ifs, IsAsync: g.IsAsync}
	}
	return out
}

// qualifyAccess is qualify_access (§4.3): the head element is replaced by
// its alias target (or left as a built-in/unbound name); remaining
// elements are walked, with Call arguments qualified per qualifyArguments.
func qualifyAccess(sc *scope.Scope, access *ast.Access, isAnnotation bool) *ast.Access {
	if access.IsExpressionAccess() {
		rewritten := *access
		rewritten.Base = qualifyExpr(sc, access.Base, false)
		rewritten.Elements = qualifyAccessElements(sc, access.Elements, false)
		return &rewritten
	}
	if len(access.Elements) == 0 {
		return access
	}
	head, ok := access.Elements[0].(*ast.Ident)
	if !ok {
		rewritten := *access
		rewritten.Elements = qualifyAccessElements(sc, access.Elements, false)
		return &rewritten
	}

	isTypeVar := isTypeVarCallee(identNamesOf(access))
	headElements := resolveHead(sc, head)
	rest := qualifyAccessElements(sc, access.Elements[1:], isTypeVar)

	combined := &ast.Access{Elements: append(append([]ast.AccessElement{}, headElements...), rest...)}
	combined.Loc = access.Location()
	return combined
}

// resolveHead resolves a read of a bare name at the head of an Access,
// checking, in order: an installed alias (import/qualified/forward
// reference), a local bound earlier in this block, a declared global, and
// finally falling back to the name unchanged (a built-in or a name this
// pass never saw bound, left for a later stage to fail on if unresolved).
func resolveHead(sc *scope.Scope, head *ast.Ident) []ast.AccessElement {
	if alias, ok := sc.LookupAlias(head.Name); ok {
		return alias.Access.Elements
	}
	if sc.IsLocal(head.Name) {
		local := &ast.Ident{Name: sc.LocalName(head.Name)}
		local.Loc = head.Location()
		return []ast.AccessElement{local}
	}
	if sc.IsImmutable(head.Name) {
		names := append(append([]string{}, sc.Qualifier.Names...), head.Name)
		return ast.NewAccess(head.Location(), names...).Elements
	}
	return []ast.AccessElement{head}
}

func qualifyAccessElements(sc *scope.Scope, elements []ast.AccessElement, isTypeVar bool) []ast.AccessElement {
	out := make([]ast.AccessElement, len(elements))
	for i, el := range elements {
		switch e := el.(type) {
		case *ast.Ident:
			out[i] = e
		case *ast.Call:
			rewritten := *e
			rewritten.Arguments = qualifyArguments(sc, e.Arguments, isTypeVar)
			out[i] = &rewritten
		default:
			out[i] = el
		}
	}
	return out
}

// qualifyArguments prefixes keyword-argument names with $parameter$ and
// recursively qualifies values. Inside a TypeVar(...)/typing.TypeVar(...)
// call, raw string arguments are forward-reference type names and are
// qualified as annotations rather than left as plain literals.
func qualifyArguments(sc *scope.Scope, args []ast.Argument, isTypeVar bool) []ast.Argument {
	out := make([]ast.Argument, len(args))
	for i, a := range args {
		name := a.Name
		if a.HasName {
			name = "$parameter$" + a.Name
		}
		if isTypeVar {
			if str, ok := a.Value.(*ast.String); ok && str.Kind == ast.StringRaw {
				access := ast.NewAccess(str.Location(), strings.Split(str.Value, ".")...)
				out[i] = ast.Argument{Name: name, HasName: a.HasName, Value: qualifyAccess(sc, access, true)}
				continue
			}
		}
		out[i] = ast.Argument{Name: name, HasName: a.HasName, Value: qualifyExpr(sc, a.Value, false)}
	}
	return out
}

func identNamesOf(access *ast.Access) []string {
	if access.Base != nil {
		return nil
	}
	var names []string
	for _, el := range access.Elements {
		if id, ok := el.(*ast.Ident); ok {
			names = append(names, id.Name)
		}
	}
	return names
}

func isTypeVarCallee(names []string) bool {
	return (len(names) == 1 && names[0] == "TypeVar") ||
		(len(names) == 2 && names[0] == "typing" && names[1] == "TypeVar")
}
