package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pyscope/pyscope/internal/ast"
	"github.com/pyscope/pyscope/internal/normalize"
)

func platformTest(op ast.CompareOp, literal string) *ast.Comparison {
	str := &ast.String{Value: literal, Kind: ast.StringRaw}
	return &ast.Comparison{
		Left:        ast.NewAccess(nowhere(), "sys", "platform"),
		Ops:         []ast.CompareOp{op},
		Comparators: []ast.Expression{str},
	}
}

func TestReplacePlatformSpecificCodeKeepsMatchingEqBranch(t *testing.T) {
	source := &ast.Source{
		Statements: []ast.Statement{
			&ast.If{
				Test:   platformTest(ast.CmpEq, "linux"),
				Body:   []ast.Statement{&ast.ExprStmt{Value: bareIdent("unix_only")}},
				Orelse: []ast.Statement{&ast.ExprStmt{Value: bareIdent("other")}},
			},
		},
	}

	out := normalize.ReplacePlatformSpecificCode(source, "linux")
	require.Len(t, out.Statements, 1)
	expr := out.Statements[0].(*ast.ExprStmt)
	require.Equal(t, "unix_only", expr.Value.(*ast.Ident).Name)
}

func TestReplacePlatformSpecificCodeTakesOrelseOnMismatch(t *testing.T) {
	source := &ast.Source{
		Statements: []ast.Statement{
			&ast.If{
				Test:   platformTest(ast.CmpEq, "win32"),
				Body:   []ast.Statement{&ast.ExprStmt{Value: bareIdent("windows_only")}},
				Orelse: []ast.Statement{&ast.ExprStmt{Value: bareIdent("other")}},
			},
		},
	}

	out := normalize.ReplacePlatformSpecificCode(source, "linux")
	expr := out.Statements[0].(*ast.ExprStmt)
	require.Equal(t, "other", expr.Value.(*ast.Ident).Name)
}

func TestReplacePlatformSpecificCodeNotEqInvertsMatch(t *testing.T) {
	source := &ast.Source{
		Statements: []ast.Statement{
			&ast.If{
				Test: platformTest(ast.CmpNotEq, "linux"),
				Body: []ast.Statement{&ast.ExprStmt{Value: bareIdent("not_linux")}},
			},
		},
	}

	out := normalize.ReplacePlatformSpecificCode(source, "linux")
	_, ok := out.Statements[0].(*ast.Pass)
	require.True(t, ok, "empty orelse on a taken-orelse branch folds to Pass")
}

func TestReplacePlatformSpecificCodeIgnoresUnrelatedComparisons(t *testing.T) {
	source := &ast.Source{
		Statements: []ast.Statement{
			&ast.If{Test: ast.NewAccess(nowhere(), "DEBUG"), Body: []ast.Statement{&ast.Pass{}}},
		},
	}
	out := normalize.ReplacePlatformSpecificCode(source, "linux")
	_, ok := out.Statements[0].(*ast.If)
	require.True(t, ok)
}
