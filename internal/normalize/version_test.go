package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pyscope/pyscope/internal/ast"
	"github.com/pyscope/pyscope/internal/normalize"
)

func versionInfo() *ast.Access {
	return ast.NewAccess(nowhere(), "sys", "version_info")
}

func ifVersion(cmp *ast.Comparison) *ast.If {
	return &ast.If{
		Test:   cmp,
		Body:   []ast.Statement{&ast.ExprStmt{Value: bareIdent("py3")}},
		Orelse: []ast.Statement{&ast.ExprStmt{Value: bareIdent("py2")}},
	}
}

func TestReplaceVersionSpecificCodeLtThreeTakesOrelse(t *testing.T) {
	source := &ast.Source{Statements: []ast.Statement{ifVersion(&ast.Comparison{
		Left: versionInfo(), Ops: []ast.CompareOp{ast.CmpLt}, Comparators: []ast.Expression{&ast.IntLiteral{Value: 3}},
	})}}

	out := normalize.ReplaceVersionSpecificCode(source)
	expr := out.Statements[0].(*ast.ExprStmt)
	require.Equal(t, "py2", expr.Value.(*ast.Ident).Name)
}

func TestReplaceVersionSpecificCodeGtThreeTakesBody(t *testing.T) {
	source := &ast.Source{Statements: []ast.Statement{ifVersion(&ast.Comparison{
		Left: &ast.IntLiteral{Value: 3}, Ops: []ast.CompareOp{ast.CmpLt}, Comparators: []ast.Expression{versionInfo()},
	})}}

	out := normalize.ReplaceVersionSpecificCode(source)
	expr := out.Statements[0].(*ast.ExprStmt)
	require.Equal(t, "py3", expr.Value.(*ast.Ident).Name)
}

func TestReplaceVersionSpecificCodeGtOperatorIsCanonicalized(t *testing.T) {
	source := &ast.Source{Statements: []ast.Statement{ifVersion(&ast.Comparison{
		Left: versionInfo(), Ops: []ast.CompareOp{ast.CmpGt}, Comparators: []ast.Expression{&ast.IntLiteral{Value: 3}},
	})}}

	out := normalize.ReplaceVersionSpecificCode(source)
	expr := out.Statements[0].(*ast.ExprStmt)
	require.Equal(t, "py3", expr.Value.(*ast.Ident).Name, "version_info > 3 should swap to 3 < version_info => body")
}

func TestReplaceVersionSpecificCodeEqualityAlwaysTakesOrelse(t *testing.T) {
	source := &ast.Source{Statements: []ast.Statement{ifVersion(&ast.Comparison{
		Left: versionInfo(), Ops: []ast.CompareOp{ast.CmpEq}, Comparators: []ast.Expression{&ast.Tuple{Elements: []ast.Expression{&ast.IntLiteral{Value: 3}, &ast.IntLiteral{Value: 8}}}},
	})}}

	out := normalize.ReplaceVersionSpecificCode(source)
	expr := out.Statements[0].(*ast.ExprStmt)
	require.Equal(t, "py2", expr.Value.(*ast.Ident).Name)
}

func TestReplaceVersionSpecificCodeTupleLiteralMatchesFirstElement(t *testing.T) {
	source := &ast.Source{Statements: []ast.Statement{ifVersion(&ast.Comparison{
		Left: versionInfo(),
		Ops:  []ast.CompareOp{ast.CmpLtE},
		Comparators: []ast.Expression{&ast.Tuple{Elements: []ast.Expression{
			&ast.IntLiteral{Value: 3}, &ast.IntLiteral{Value: 0},
		}}},
	})}}

	out := normalize.ReplaceVersionSpecificCode(source)
	expr := out.Statements[0].(*ast.ExprStmt)
	require.Equal(t, "py2", expr.Value.(*ast.Ident).Name)
}

func TestReplaceVersionSpecificCodeSubscriptZeroIndexIsVersionInfo(t *testing.T) {
	subscript := &ast.Subscript{Value: versionInfo(), Index: &ast.IntLiteral{Value: 0}}
	source := &ast.Source{Statements: []ast.Statement{ifVersion(&ast.Comparison{
		Left: subscript, Ops: []ast.CompareOp{ast.CmpLt}, Comparators: []ast.Expression{&ast.IntLiteral{Value: 3}},
	})}}

	out := normalize.ReplaceVersionSpecificCode(source)
	expr := out.Statements[0].(*ast.ExprStmt)
	require.Equal(t, "py2", expr.Value.(*ast.Ident).Name)
}

func TestReplaceVersionSpecificCodeIgnoresUnrelatedIf(t *testing.T) {
	source := &ast.Source{Statements: []ast.Statement{
		&ast.If{Test: ast.NewAccess(nowhere(), "DEBUG"), Body: []ast.Statement{&ast.Pass{}}},
	}}
	out := normalize.ReplaceVersionSpecificCode(source)
	_, ok := out.Statements[0].(*ast.If)
	require.True(t, ok)
}
