package normalize

import (
	"fmt"
	"strings"

	"github.com/pyscope/pyscope/internal/ast"
	"github.com/pyscope/pyscope/internal/modules"
)

// ExpandRelativeImports is pass 1 (§4.2): rewrite "from .x import y"
// against the source's qualifier and handle, leaving "builtins" and
// "future.builtins" untouched even when they are the relative target.
func ExpandRelativeImports(source *ast.Source) *ast.Source {
	t := &ast.StatementTransformer{
		Visit: func(state any, stmt ast.Statement) (any, []ast.Statement) {
			imp, ok := stmt.(*ast.Import)
			if !ok || !imp.HasFrom || !strings.HasPrefix(imp.From, ".") {
				return state, []ast.Statement{stmt}
			}
			resolved := resolveRelative(source.Qualifier, imp.From)
			if resolved == "builtins" || resolved == "future.builtins" {
				return state, []ast.Statement{stmt}
			}
			rewritten := *imp
			rewritten.From = resolved
			return state, []ast.Statement{&rewritten}
		},
	}
	_, out := t.Run(nil, source)
	return out
}

func resolveRelative(qualifier ast.Reference, from string) string {
	level := 0
	for level < len(from) && from[level] == '.' {
		level++
	}
	suffix := from[level:]

	base := qualifier.Names
	if level <= len(base) {
		base = base[:len(base)-level]
	} else {
		base = nil
	}

	parts := append([]string{}, base...)
	if suffix != "" {
		parts = append(parts, strings.Split(suffix, ".")...)
	}
	return strings.Join(parts, ".")
}

// ExpandTypeCheckingImports is pass 6: "if TYPE_CHECKING:" and
// "if typing.TYPE_CHECKING:" are replaced by their body unconditionally —
// a static analyzer always sees imports a real type checker would, even
// though they're absent at runtime — discarding the orelse branch.
func ExpandTypeCheckingImports(source *ast.Source) *ast.Source {
	t := &ast.StatementTransformer{
		Visit: func(state any, stmt ast.Statement) (any, []ast.Statement) {
			ifstmt, ok := stmt.(*ast.If)
			if !ok || !isTypeChecking(ifstmt.Test) {
				return state, []ast.Statement{stmt}
			}
			return state, ifstmt.Body
		},
	}
	_, out := t.Run(nil, source)
	return out
}

func isTypeChecking(test ast.Expression) bool {
	access, ok := test.(*ast.Access)
	if !ok {
		return false
	}
	ref, ok := ast.ReferenceFromAccess(access)
	if !ok {
		return false
	}
	switch {
	case len(ref.Names) == 1 && ref.Names[0] == "TYPE_CHECKING":
		return true
	case len(ref.Names) == 2 && ref.Names[0] == "typing" && ref.Names[1] == "TYPE_CHECKING":
		return true
	}
	return false
}

// ExpandWildcardImports is pass 7: for each "from M import *", look up M's
// exports. Found: rewrite to an explicit, alias-free import list. Missing
// and force: leave the star in place. Missing and !force: fail the whole
// preprocessing with ErrMissingWildcardImport so the caller (try_preprocess)
// can defer.
func ExpandWildcardImports(source *ast.Source, table modules.Exports, force bool) (*ast.Source, error) {
	var failure error
	t := &ast.StatementTransformer{
		Visit: func(state any, stmt ast.Statement) (any, []ast.Statement) {
			if failure != nil {
				return state, []ast.Statement{stmt}
			}
			imp, ok := stmt.(*ast.Import)
			if !ok || !imp.HasFrom || !isWildcard(imp) {
				return state, []ast.Statement{stmt}
			}
			names, found := table.GetExports(imp.From)
			if !found {
				if force {
					return state, []ast.Statement{stmt}
				}
				failure = fmt.Errorf("%w: %s", ErrMissingWildcardImport, imp.From)
				return state, []ast.Statement{stmt}
			}
			aliases := make([]ast.ImportAlias, len(names))
			for i, n := range names {
				aliases[i] = ast.ImportAlias{Name: n}
			}
			rewritten := *imp
			rewritten.Imports = aliases
			return state, []ast.Statement{&rewritten}
		},
	}
	_, out := t.Run(nil, source)
	if failure != nil {
		return nil, failure
	}
	return out, nil
}

func isWildcard(imp *ast.Import) bool {
	return len(imp.Imports) == 1 && imp.Imports[0].Name == "*"
}
