package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pyscope/pyscope/internal/ast"
	"github.com/pyscope/pyscope/internal/normalize"
)

func defineWithBody(body ...ast.Statement) *ast.Source {
	return &ast.Source{Statements: []ast.Statement{
		&ast.Define{Name: "f", Body: body},
	}}
}

func TestExpandImplicitReturnsAppendsWhenBodyFallsThrough(t *testing.T) {
	out := normalize.ExpandImplicitReturns(defineWithBody(&ast.ExprStmt{Value: bareIdent("x")}))
	define := out.Statements[0].(*ast.Define)
	require.Len(t, define.Body, 2)
	ret, ok := define.Body[1].(*ast.Return)
	require.True(t, ok)
	require.True(t, ret.IsImplicit)
}

func TestExpandImplicitReturnsSkipsWhenAlreadyEndsInReturn(t *testing.T) {
	out := normalize.ExpandImplicitReturns(defineWithBody(&ast.Return{Value: bareIdent("x")}))
	define := out.Statements[0].(*ast.Define)
	require.Len(t, define.Body, 1)
}

func TestExpandImplicitReturnsSkipsGenerators(t *testing.T) {
	out := normalize.ExpandImplicitReturns(defineWithBody(&ast.YieldStmt{Value: bareIdent("x")}))
	define := out.Statements[0].(*ast.Define)
	require.Len(t, define.Body, 1)
}

func TestExpandImplicitReturnsSkipsWhileTrue(t *testing.T) {
	out := normalize.ExpandImplicitReturns(defineWithBody(&ast.While{
		Test: &ast.BoolLiteral{Value: true},
		Body: []ast.Statement{&ast.Pass{}},
	}))
	define := out.Statements[0].(*ast.Define)
	require.Len(t, define.Body, 1)
}

func TestExpandImplicitReturnsSkipsFinallyReturn(t *testing.T) {
	out := normalize.ExpandImplicitReturns(defineWithBody(&ast.Try{
		Body:    []ast.Statement{&ast.ExprStmt{Value: bareIdent("x")}},
		Finally: []ast.Statement{&ast.Return{Value: bareIdent("y")}},
	}))
	define := out.Statements[0].(*ast.Define)
	require.Len(t, define.Body, 1)
}

func TestExpandImplicitReturnsIgnoresNonDefineStatements(t *testing.T) {
	source := &ast.Source{Statements: []ast.Statement{&ast.ExprStmt{Value: bareIdent("x")}}}
	out := normalize.ExpandImplicitReturns(source)
	require.Len(t, out.Statements, 1)
	_, ok := out.Statements[0].(*ast.ExprStmt)
	require.True(t, ok)
}
