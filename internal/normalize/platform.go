package normalize

import "github.com/pyscope/pyscope/internal/ast"

// ReplacePlatformSpecificCode is pass 4: fold "if sys.platform == 'win32'"
// (and is/!=/is not) by constant evaluation against the configured target
// platform, keeping only the matching branch. Any other test is untouched.
func ReplacePlatformSpecificCode(source *ast.Source, platform string) *ast.Source {
	t := &ast.StatementTransformer{
		Visit: func(state any, stmt ast.Statement) (any, []ast.Statement) {
			ifstmt, ok := stmt.(*ast.If)
			if !ok {
				return state, []ast.Statement{stmt}
			}
			literal, op, matched := platformComparison(ifstmt.Test)
			if !matched {
				return state, []ast.Statement{stmt}
			}
			isMatch := literal == platform
			var takeBody bool
			switch op {
			case ast.CmpEq, ast.CmpIs:
				takeBody = isMatch
			case ast.CmpNotEq, ast.CmpIsNot:
				takeBody = !isMatch
			default:
				return state, []ast.Statement{stmt}
			}
			return state, foldBranch(ifstmt, takeBody)
		},
	}
	_, out := t.Run(nil, source)
	return out
}

func foldBranch(ifstmt *ast.If, takeBody bool) []ast.Statement {
	branch := ifstmt.Orelse
	if takeBody {
		branch = ifstmt.Body
	}
	if len(branch) == 0 {
		return []ast.Statement{&ast.Pass{}}
	}
	return branch
}

func platformComparison(test ast.Expression) (literal string, op ast.CompareOp, matched bool) {
	cmp, ok := test.(*ast.Comparison)
	if !ok || len(cmp.Ops) != 1 || len(cmp.Comparators) != 1 {
		return "", 0, false
	}
	access, ok := cmp.Left.(*ast.Access)
	if !ok {
		return "", 0, false
	}
	str, ok := cmp.Comparators[0].(*ast.String)
	if !ok || str.Kind != ast.StringRaw {
		return "", 0, false
	}
	ref, ok := ast.ReferenceFromAccess(access)
	if !ok || len(ref.Names) != 2 || ref.Names[0] != "sys" || ref.Names[1] != "platform" {
		return "", 0, false
	}
	return str.Value, cmp.Ops[0], true
}
