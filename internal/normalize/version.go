package normalize

import "github.com/pyscope/pyscope/internal/ast"

// ReplaceVersionSpecificCode is pass 5: fold "if sys.version_info ..."
// comparisons against a literal integer 3 or a tuple beginning with 3.
// Equality comparisons always take orelse (never pin to a specific runtime
// version); ordered comparisons are canonicalized to put version_info on a
// fixed side before the four documented decisions apply.
func ReplaceVersionSpecificCode(source *ast.Source) *ast.Source {
	t := &ast.StatementTransformer{
		Visit: func(state any, stmt ast.Statement) (any, []ast.Statement) {
			ifstmt, ok := stmt.(*ast.If)
			if !ok {
				return state, []ast.Statement{stmt}
			}
			takeBody, matched := versionDecision(ifstmt.Test)
			if !matched {
				return state, []ast.Statement{stmt}
			}
			return state, foldBranch(ifstmt, takeBody)
		},
	}
	_, out := t.Run(nil, source)
	return out
}

func versionDecision(test ast.Expression) (takeBody bool, matched bool) {
	cmp, ok := test.(*ast.Comparison)
	if !ok || len(cmp.Ops) != 1 || len(cmp.Comparators) != 1 {
		return false, false
	}
	op := cmp.Ops[0]
	left, right := cmp.Left, cmp.Comparators[0]

	// Canonicalize ">"/">=" into "<"/"<=" with swapped operands so only two
	// shapes need deciding, per §4.2 pass 5's "(small, large)" tuple.
	switch op {
	case ast.CmpGt:
		left, right, op = right, left, ast.CmpLt
	case ast.CmpGtE:
		left, right, op = right, left, ast.CmpLtE
	}

	switch op {
	case ast.CmpEq, ast.CmpNotEq:
		if isVersionInfo(left) || isVersionInfo(right) {
			return false, true
		}
		return false, false
	case ast.CmpLt, ast.CmpLtE:
		switch {
		case isVersionInfo(left) && isThreeLiteral(right):
			return false, true // version_info < 3 => orelse
		case isThreeLiteral(left) && isVersionInfo(right):
			return true, true // 3 < version_info => body
		}
		return false, false
	default:
		return false, false
	}
}

func isVersionInfo(e ast.Expression) bool {
	switch n := e.(type) {
	case *ast.Access:
		ref, ok := ast.ReferenceFromAccess(n)
		return ok && isSysVersionInfo(ref)
	case *ast.Subscript:
		access, ok := n.Value.(*ast.Access)
		if !ok {
			return false
		}
		ref, ok := ast.ReferenceFromAccess(access)
		return ok && isSysVersionInfo(ref) && isZeroIndex(n.Index)
	}
	return false
}

func isSysVersionInfo(ref ast.Reference) bool {
	return len(ref.Names) == 2 && ref.Names[0] == "sys" && ref.Names[1] == "version_info"
}

func isZeroIndex(e ast.Expression) bool {
	lit, ok := e.(*ast.IntLiteral)
	return ok && lit.Value == 0
}

func isThreeLiteral(e ast.Expression) bool {
	switch n := e.(type) {
	case *ast.IntLiteral:
		return n.Value == 3
	case *ast.Tuple:
		return len(n.Elements) > 0 && isThreeLiteral(n.Elements[0])
	}
	return false
}
