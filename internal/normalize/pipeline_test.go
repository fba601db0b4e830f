package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pyscope/pyscope/internal/ast"
	"github.com/pyscope/pyscope/internal/modules"
	"github.com/pyscope/pyscope/internal/normalize"
	"github.com/pyscope/pyscope/internal/obslog"
	"github.com/pyscope/pyscope/internal/parserapi"
)

func testCollaborators() normalize.Collaborators {
	return normalize.Collaborators{Parser: parserapi.NewFixture(), Modules: modules.NewTable(), Logger: obslog.Discard()}
}

func TestPreprocessThreadsAllElevenPasses(t *testing.T) {
	source := &ast.Source{
		Qualifier: qualifierOf("pkg", "mod"),
		Statements: []ast.Statement{
			&ast.Define{Name: "f", Body: []ast.Statement{&ast.Pass{}}},
		},
	}

	out := normalize.Preprocess(source, testCollaborators(), normalize.Options{Platform: "linux"})
	require.Len(t, out.Statements, 1)
	define := out.Statements[0].(*ast.Define)
	require.Len(t, define.Body, 2, "expand_implicit_returns should have appended a synthetic return")
	_, ok := define.Body[1].(*ast.Return)
	require.True(t, ok)
}

func TestPreprocessForcesUnresolvedWildcardImport(t *testing.T) {
	source := &ast.Source{
		Statements: []ast.Statement{
			&ast.Import{HasFrom: true, From: "unindexed", Imports: []ast.ImportAlias{{Name: "*"}}},
		},
	}

	out := normalize.Preprocess(source, testCollaborators(), normalize.Options{})
	imp := out.Statements[0].(*ast.Import)
	require.True(t, len(imp.Imports) == 1 && imp.Imports[0].Name == "*")
}

func TestTryPreprocessDefersUnresolvedWildcardImport(t *testing.T) {
	source := &ast.Source{
		Statements: []ast.Statement{
			&ast.Import{HasFrom: true, From: "unindexed", Imports: []ast.ImportAlias{{Name: "*"}}},
		},
	}

	_, ok := normalize.TryPreprocess(source, testCollaborators(), normalize.Options{})
	require.False(t, ok)
}

func TestTryPreprocessSucceedsWhenNoWildcardIsPresent(t *testing.T) {
	source := &ast.Source{Statements: []ast.Statement{&ast.Pass{}}}

	out, ok := normalize.TryPreprocess(source, testCollaborators(), normalize.Options{})
	require.True(t, ok)
	require.Len(t, out.Statements, 1)
}
