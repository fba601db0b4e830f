package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pyscope/pyscope/internal/ast"
	"github.com/pyscope/pyscope/internal/normalize"
	"github.com/pyscope/pyscope/internal/parserapi"
)

func TestExpandFormatStringScansAndPromotesParsedFragments(t *testing.T) {
	fixture := parserapi.NewFixture()
	fixture.Register("name", []ast.Statement{&ast.ExprStmt{Value: bareIdent("name")}})

	str := &ast.String{
		Value: "hello {name}",
		Kind:  ast.StringMixed,
		Substrings: []ast.Substring{
			{Raw: "hello {name}", Line: 1, Column: 1},
		},
	}

	source := &ast.Source{Statements: []ast.Statement{&ast.ExprStmt{Value: str}}}
	out := normalize.ExpandFormatString(source, fixture, nil)

	exprStmt := out.Statements[0].(*ast.ExprStmt)
	rewritten := exprStmt.Value.(*ast.String)
	require.Equal(t, ast.StringFormat, rewritten.Kind)
	require.Len(t, rewritten.Parts, 1)
	ident, ok := rewritten.Parts[0].(*ast.Ident)
	require.True(t, ok)
	require.Equal(t, "name", ident.Name)
	require.Equal(t, "hello {name}", rewritten.Value, "original value is kept for diagnostics")
}

func TestExpandFormatStringStripsLeadingWhitespaceInsideBraces(t *testing.T) {
	fixture := parserapi.NewFixture()
	fixture.Register("name", []ast.Statement{&ast.ExprStmt{Value: bareIdent("name")}})

	str := &ast.String{
		Kind: ast.StringMixed,
		Substrings: []ast.Substring{
			{Raw: "{  \tname}", Line: 1, Column: 1},
		},
	}
	source := &ast.Source{Statements: []ast.Statement{&ast.ExprStmt{Value: str}}}

	out := normalize.ExpandFormatString(source, fixture, nil)
	rewritten := out.Statements[0].(*ast.ExprStmt).Value.(*ast.String)
	require.Len(t, rewritten.Parts, 1)
}

func TestExpandFormatStringCollapsesEscapedDoubleBrace(t *testing.T) {
	fixture := parserapi.NewFixture()
	str := &ast.String{
		Kind: ast.StringMixed,
		Substrings: []ast.Substring{
			{Raw: "just {{literal}} braces", Line: 1, Column: 1},
		},
	}
	source := &ast.Source{Statements: []ast.Statement{&ast.ExprStmt{Value: str}}}

	out := normalize.ExpandFormatString(source, fixture, nil)
	rewritten := out.Statements[0].(*ast.ExprStmt).Value.(*ast.String)
	require.Empty(t, rewritten.Parts, "{{ collapses to an escaped literal brace, not an expression")
}

func TestExpandFormatStringDropsUnparseableFragment(t *testing.T) {
	fixture := parserapi.NewFixture()
	str := &ast.String{
		Kind: ast.StringMixed,
		Substrings: []ast.Substring{
			{Raw: "{???}", Line: 1, Column: 1},
		},
	}
	source := &ast.Source{Statements: []ast.Statement{&ast.ExprStmt{Value: str}}}

	out := normalize.ExpandFormatString(source, fixture, nil)
	rewritten := out.Statements[0].(*ast.ExprStmt).Value.(*ast.String)
	require.Empty(t, rewritten.Parts)
}

func TestExpandFormatStringDropsUnterminatedExpression(t *testing.T) {
	fixture := parserapi.NewFixture()
	fixture.Register("name", []ast.Statement{&ast.ExprStmt{Value: bareIdent("name")}})
	str := &ast.String{
		Kind: ast.StringMixed,
		Substrings: []ast.Substring{
			{Raw: "hello {name", Line: 1, Column: 1},
		},
	}
	source := &ast.Source{Statements: []ast.Statement{&ast.ExprStmt{Value: str}}}

	out := normalize.ExpandFormatString(source, fixture, nil)
	rewritten := out.Statements[0].(*ast.ExprStmt).Value.(*ast.String)
	require.Empty(t, rewritten.Parts, "a brace never closed by } contributes nothing")
}

func TestExpandFormatStringDoesNotHandleNestedBraces(t *testing.T) {
	fixture := parserapi.NewFixture()
	// The nested "{1:2}" closes the outer expression early at its own "}",
	// leaving a stray trailing "}" in plain text — matching source behavior,
	// which does not track brace nesting inside expressions.
	fixture.Register("{1:2", []ast.Statement{&ast.ExprStmt{Value: bareIdent("dict_literal")}})
	str := &ast.String{
		Kind: ast.StringMixed,
		Substrings: []ast.Substring{
			{Raw: "{ {1:2} }", Line: 1, Column: 1},
		},
	}
	source := &ast.Source{Statements: []ast.Statement{&ast.ExprStmt{Value: str}}}

	out := normalize.ExpandFormatString(source, fixture, nil)
	rewritten := out.Statements[0].(*ast.ExprStmt).Value.(*ast.String)
	require.Len(t, rewritten.Parts, 1)
	ident, ok := rewritten.Parts[0].(*ast.Ident)
	require.True(t, ok)
	require.Equal(t, "dict_literal", ident.Name)
}

func TestExpandFormatStringScansEachSubstringIndependently(t *testing.T) {
	fixture := parserapi.NewFixture()
	fixture.Register("a", []ast.Statement{&ast.ExprStmt{Value: bareIdent("a")}})
	fixture.Register("b", []ast.Statement{&ast.ExprStmt{Value: bareIdent("b")}})

	str := &ast.String{
		Kind: ast.StringMixed,
		Substrings: []ast.Substring{
			{Raw: "{a}", Line: 1, Column: 1},
			{Raw: "-{b}", Line: 2, Column: 1},
		},
	}
	source := &ast.Source{Statements: []ast.Statement{&ast.ExprStmt{Value: str}}}

	out := normalize.ExpandFormatString(source, fixture, nil)
	rewritten := out.Statements[0].(*ast.ExprStmt).Value.(*ast.String)
	require.Len(t, rewritten.Parts, 2)
}

func TestExpandFormatStringLeavesNonMixedStringsAlone(t *testing.T) {
	fixture := parserapi.NewFixture()
	str := &ast.String{Value: "plain", Kind: ast.StringRaw}
	source := &ast.Source{Statements: []ast.Statement{&ast.ExprStmt{Value: str}}}

	out := normalize.ExpandFormatString(source, fixture, nil)
	rewritten := out.Statements[0].(*ast.ExprStmt).Value.(*ast.String)
	require.Equal(t, ast.StringRaw, rewritten.Kind)
}
