package normalize_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pyscope/pyscope/internal/ast"
	"github.com/pyscope/pyscope/internal/modules"
	"github.com/pyscope/pyscope/internal/normalize"
	"github.com/pyscope/pyscope/internal/token"
)

func nowhere() token.ReferenceLocation { return token.ReferenceLocation{} }

func TestExpandRelativeImportsRewritesAgainstQualifier(t *testing.T) {
	source := &ast.Source{
		Qualifier: qualifierOf("pkg", "sub", "mod"),
		Statements: []ast.Statement{
			&ast.Import{HasFrom: true, From: ".sibling", Imports: []ast.ImportAlias{{Name: "helper"}}},
		},
	}

	out := normalize.ExpandRelativeImports(source)
	imp := out.Statements[0].(*ast.Import)
	require.Equal(t, "pkg.sub.sibling", imp.From)
}

func TestExpandRelativeImportsClimbsAPackageLevelPerDot(t *testing.T) {
	source := &ast.Source{
		Qualifier: qualifierOf("pkg", "sub", "mod"),
		Statements: []ast.Statement{
			&ast.Import{HasFrom: true, From: "..top", Imports: []ast.ImportAlias{{Name: "x"}}},
		},
	}

	out := normalize.ExpandRelativeImports(source)
	imp := out.Statements[0].(*ast.Import)
	require.Equal(t, "pkg.top", imp.From)
}

func TestExpandRelativeImportsLeavesAbsoluteImportsAlone(t *testing.T) {
	source := &ast.Source{
		Qualifier: qualifierOf("pkg", "mod"),
		Statements: []ast.Statement{
			&ast.Import{HasFrom: true, From: "builtins", Imports: []ast.ImportAlias{{Name: "x"}}},
		},
	}
	out := normalize.ExpandRelativeImports(source)
	imp := out.Statements[0].(*ast.Import)
	require.Equal(t, "builtins", imp.From)
}

func TestExpandRelativeImportsLeavesBuiltinsUntouchedEvenWhenRelative(t *testing.T) {
	source := &ast.Source{
		Qualifier: qualifierOf("mod"),
		Statements: []ast.Statement{
			&ast.Import{HasFrom: true, From: ".builtins", Imports: []ast.ImportAlias{{Name: "x"}}},
		},
	}
	out := normalize.ExpandRelativeImports(source)
	imp := out.Statements[0].(*ast.Import)
	require.Equal(t, ".builtins", imp.From, "a relative import resolving to builtins is left untouched, dot prefix and all")
}

func TestExpandTypeCheckingImportsInlinesBodyAndDropsOrelse(t *testing.T) {
	source := &ast.Source{
		Statements: []ast.Statement{
			&ast.If{
				Test:   ast.NewAccess(nowhere(), "typing", "TYPE_CHECKING"),
				Body:   []ast.Statement{&ast.Import{HasFrom: true, From: "pkg", Imports: []ast.ImportAlias{{Name: "Thing"}}}},
				Orelse: []ast.Statement{&ast.Pass{}},
			},
		},
	}

	out := normalize.ExpandTypeCheckingImports(source)
	require.Len(t, out.Statements, 1)
	_, ok := out.Statements[0].(*ast.Import)
	require.True(t, ok)
}

func TestExpandTypeCheckingImportsIgnoresOtherTests(t *testing.T) {
	source := &ast.Source{
		Statements: []ast.Statement{
			&ast.If{Test: ast.NewAccess(nowhere(), "DEBUG"), Body: []ast.Statement{&ast.Pass{}}},
		},
	}
	out := normalize.ExpandTypeCheckingImports(source)
	_, ok := out.Statements[0].(*ast.If)
	require.True(t, ok)
}

func TestExpandWildcardImportsRewritesToExplicitList(t *testing.T) {
	table := modules.NewTable()
	table.Populate("pkg.sub", []string{"A", "B"})
	source := &ast.Source{
		Statements: []ast.Statement{
			&ast.Import{HasFrom: true, From: "pkg.sub", Imports: []ast.ImportAlias{{Name: "*"}}},
		},
	}

	out, err := normalize.ExpandWildcardImports(source, table, false)
	require.NoError(t, err)
	imp := out.Statements[0].(*ast.Import)
	require.Equal(t, []ast.ImportAlias{{Name: "A"}, {Name: "B"}}, imp.Imports)
}

func TestExpandWildcardImportsForcedLeavesStarInPlaceWhenUnindexed(t *testing.T) {
	table := modules.NewTable()
	source := &ast.Source{
		Statements: []ast.Statement{
			&ast.Import{HasFrom: true, From: "unindexed", Imports: []ast.ImportAlias{{Name: "*"}}},
		},
	}

	out, err := normalize.ExpandWildcardImports(source, table, true)
	require.NoError(t, err)
	imp := out.Statements[0].(*ast.Import)
	require.True(t, len(imp.Imports) == 1 && imp.Imports[0].Name == "*")
}

func TestExpandWildcardImportsFailsWhenUnindexedAndNotForced(t *testing.T) {
	table := modules.NewTable()
	source := &ast.Source{
		Statements: []ast.Statement{
			&ast.Import{HasFrom: true, From: "unindexed", Imports: []ast.ImportAlias{{Name: "*"}}},
		},
	}

	_, err := normalize.ExpandWildcardImports(source, table, false)
	require.True(t, errors.Is(err, normalize.ErrMissingWildcardImport))
}
