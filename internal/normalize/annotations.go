package normalize

import (
	"log/slog"

	"github.com/pyscope/pyscope/internal/ast"
	"github.com/pyscope/pyscope/internal/parserapi"
	"github.com/pyscope/pyscope/internal/token"
)

// unparsedAnnotation is the sentinel pass 2 substitutes for a string
// annotation that failed to re-parse.
const unparsedAnnotation = "$unparsed_annotation"

// ExpandStringAnnotations is pass 2: within each Assign's annotation, each
// Define's parameter annotations and return annotation, and the type
// argument of cast(...)/typing.cast(...), re-parse string literals as
// expressions. A Literal[...] subscript's contents are values, not types,
// and are left untouched. Parse failures degrade to a sentinel access
// ($unparsed_annotation) and are logged at debug (§7: logging never
// influences the AST).
func ExpandStringAnnotations(source *ast.Source, parser parserapi.Parser, logger *slog.Logger) *ast.Source {
	rewrite := func(e ast.Expression) ast.Expression {
		return rewriteAnnotationExpr(e, parser, logger, source.Handle, false)
	}

	t := &ast.FullTransformer{
		VisitExpr: func(state any, e ast.Expression) (any, ast.Expression) {
			if a, ok := e.(*ast.Access); ok && isCastCall(a) {
				return state, rewriteCastTypeArgument(a, parser, logger, source.Handle)
			}
			return state, e
		},
		VisitStmt: func(state any, stmt ast.Statement) (any, []ast.Statement) {
			switch n := stmt.(type) {
			case *ast.Assign:
				if n.Annotation == nil {
					return state, []ast.Statement{stmt}
				}
				rewritten := *n
				rewritten.Annotation = rewrite(n.Annotation)
				return state, []ast.Statement{&rewritten}
			case *ast.Define:
				changed := false
				params := make([]*ast.Parameter, len(n.Parameters))
				for i, p := range n.Parameters {
					params[i] = p
					if p.Annotation == nil {
						continue
					}
					np := *p
					np.Annotation = rewrite(p.Annotation)
					params[i] = &np
					changed = true
				}
				if n.ReturnAnnotation == nil && !changed {
					return state, []ast.Statement{stmt}
				}
				rewritten := *n
				rewritten.Parameters = params
				if n.ReturnAnnotation != nil {
					rewritten.ReturnAnnotation = rewrite(n.ReturnAnnotation)
				}
				return state, []ast.Statement{&rewritten}
			}
			return state, []ast.Statement{stmt}
		},
	}
	_, out := t.Run(nil, source)
	return out
}

func rewriteAnnotationExpr(e ast.Expression, parser parserapi.Parser, logger *slog.Logger, handle token.Handle, inLiteral bool) ast.Expression {
	switch n := e.(type) {
	case *ast.String:
		if n.Kind != ast.StringRaw {
			return e
		}
		parsed, ok := reparseAnnotation(n, parser, logger, handle)
		if !ok {
			return ast.NewAccess(n.Location(), unparsedAnnotation)
		}
		return rewriteAnnotationExpr(parsed, parser, logger, handle, inLiteral)
	case *ast.Subscript:
		if isLiteralForm(n.Value) {
			return n
		}
		rewritten := *n
		rewritten.Value = rewriteAnnotationExpr(n.Value, parser, logger, handle, inLiteral)
		rewritten.Index = rewriteAnnotationExpr(n.Index, parser, logger, handle, inLiteral)
		return &rewritten
	case *ast.Tuple:
		if inLiteral {
			return n
		}
		elems := make([]ast.Expression, len(n.Elements))
		for i, el := range n.Elements {
			elems[i] = rewriteAnnotationExpr(el, parser, logger, handle, inLiteral)
		}
		rewritten := *n
		rewritten.Elements = elems
		return &rewritten
	case *ast.Access:
		if isCastCall(n) {
			return rewriteCastTypeArgument(n, parser, logger, handle)
		}
		return n
	default:
		return e
	}
}

func reparseAnnotation(str *ast.String, parser parserapi.Parser, logger *slog.Logger, handle token.Handle) (ast.Expression, bool) {
	loc := str.Location()
	stmts, err := parser.Parse(str.Value, loc.Start.Line, loc.Start.Column+1, handle)
	if err != nil {
		if logger != nil {
			logger.Debug("string annotation failed to parse", "value", str.Value, "error", err)
		}
		return nil, false
	}
	if len(stmts) != 1 {
		return nil, false
	}
	exprStmt, ok := stmts[0].(*ast.ExprStmt)
	if !ok {
		return nil, false
	}
	return exprStmt.Value, true
}

func isLiteralForm(value ast.Expression) bool {
	access, ok := value.(*ast.Access)
	if !ok {
		return false
	}
	ref, ok := ast.ReferenceFromAccess(access)
	if !ok {
		return false
	}
	return (len(ref.Names) == 1 && ref.Names[0] == "Literal") ||
		(len(ref.Names) == 2 && ref.Names[0] == "typing" && ref.Names[1] == "Literal")
}

func isCastCall(access *ast.Access) bool {
	if _, ok := access.Last().(*ast.Call); !ok {
		return false
	}
	names := identNames(access)
	switch {
	case len(names) == 2 && names[0] == "cast":
		return true
	case len(names) == 3 && names[0] == "typing" && names[1] == "cast":
		return true
	}
	return false
}

func identNames(access *ast.Access) []string {
	if access.Base != nil {
		return nil
	}
	names := make([]string, 0, len(access.Elements))
	for _, el := range access.Elements {
		switch e := el.(type) {
		case *ast.Ident:
			names = append(names, e.Name)
		case *ast.Call:
			names = append(names, "")
		}
	}
	return names
}

// rewriteCastTypeArgument rewrites only the first argument of a cast(...)
// call (its type argument); later arguments are runtime values and are
// left untouched.
func rewriteCastTypeArgument(access *ast.Access, parser parserapi.Parser, logger *slog.Logger, handle token.Handle) *ast.Access {
	elements := make([]ast.AccessElement, len(access.Elements))
	copy(elements, access.Elements)
	for i, el := range elements {
		call, ok := el.(*ast.Call)
		if !ok || len(call.Arguments) == 0 {
			continue
		}
		args := make([]ast.Argument, len(call.Arguments))
		copy(args, call.Arguments)
		args[0].Value = rewriteAnnotationExpr(args[0].Value, parser, logger, handle, false)
		rewrittenCall := *call
		rewrittenCall.Arguments = args
		elements[i] = &rewrittenCall
	}
	rewritten := *access
	rewritten.Elements = elements
	return &rewritten
}
