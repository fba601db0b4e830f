package normalize

import "github.com/pyscope/pyscope/internal/ast"

// ExpandImplicitReturns is pass 9: append a synthetic
// Return{Value: nil, IsImplicit: true} to each Define body, unless the
// body already ends in Return, is a generator (contains Yield/YieldFrom),
// ends in a Try whose finally ends in Return, or ends in "while True:".
func ExpandImplicitReturns(source *ast.Source) *ast.Source {
	t := &ast.StatementTransformer{
		Visit: func(state any, stmt ast.Statement) (any, []ast.Statement) {
			define, ok := stmt.(*ast.Define)
			if !ok || needsNoImplicitReturn(define.Body) {
				return state, []ast.Statement{stmt}
			}
			rewritten := *define
			rewritten.Body = append(append([]ast.Statement{}, define.Body...), &ast.Return{IsImplicit: true})
			return state, []ast.Statement{&rewritten}
		},
	}
	_, out := t.Run(nil, source)
	return out
}

func needsNoImplicitReturn(body []ast.Statement) bool {
	return ast.EndsInReturn(body) ||
		ast.ContainsYield(body) ||
		ast.EndsInFinallyReturn(body) ||
		ast.EndsInWhileTrue(body)
}
