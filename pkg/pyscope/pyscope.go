// Package pyscope is the public façade of §6: a thin re-export of the
// normalization pipeline and call graph engine under the names the
// external interface section gives them, so a caller depends on one
// import instead of reaching into internal/normalize and
// internal/callgraph directly. Grounded on the teacher's pkg/funxy, which
// plays the identical role of re-exporting an internal engine's entry
// points as the package a host program actually imports.
package pyscope

import (
	"strings"

	"github.com/pyscope/pyscope/internal/ast"
	"github.com/pyscope/pyscope/internal/callgraph"
	"github.com/pyscope/pyscope/internal/normalize"
	"github.com/pyscope/pyscope/internal/resolve"
)

// Preprocess is preprocess(source) → source: the eager, wildcard-forcing
// entry point.
func Preprocess(source *ast.Source, collab normalize.Collaborators, opts normalize.Options) *ast.Source {
	return normalize.Preprocess(source, collab, opts)
}

// TryPreprocess is try_preprocess(source) → source?.
func TryPreprocess(source *ast.Source, collab normalize.Collaborators, opts normalize.Options) (*ast.Source, bool) {
	return normalize.TryPreprocess(source, collab, opts)
}

// Defines is defines(source, include_stubs?, include_nested?,
// extract_into_toplevel?) → [Define-node]. includeNested controls whether
// Defines nested inside other Defines/Classes are visited at all;
// extractIntoToplevel has no independent effect here beyond includeNested,
// since the Go return shape is already a flat slice with no intermediate
// grouping to flatten out of — a nested Define either appears in the
// result or it doesn't. includeStubs controls whether a Define whose body
// carries no real statement (just a docstring, an ellipsis, a bare pass,
// or some combination) is included.
func Defines(source *ast.Source, includeStubs, includeNested, extractIntoToplevel bool) []*ast.Define {
	_ = extractIntoToplevel
	var out []*ast.Define
	for d := range ast.Defines(source.Statements, includeNested) {
		if !includeStubs && isStubDefine(d) {
			continue
		}
		out = append(out, d)
	}
	return out
}

func isStubDefine(d *ast.Define) bool {
	for _, stmt := range d.Body {
		switch s := stmt.(type) {
		case *ast.Pass:
			continue
		case *ast.ExprStmt:
			switch s.Value.(type) {
			case *ast.String, *ast.EllipsisLiteral:
				continue
			}
			return false
		case *ast.Return:
			if s.IsImplicit {
				continue
			}
			return false
		default:
			return false
		}
	}
	return true
}

// Classes is classes(source) → [Class-node].
func Classes(source *ast.Source) []*ast.Class {
	var out []*ast.Class
	for c := range ast.Classes(source.Statements) {
		out = append(out, c)
	}
	return out
}

// DequalifyMap is dequalify_map(source) → Map[reversed-access → access]:
// built from every Import statement reachable in source (the user's
// local-name choices), it maps a dotted fully-qualified name to the
// locally-visible Access a caller would actually write for it, inverting
// the same "from M import x as y" / "import M as y" rules qualify's
// installImportAliases applies when it installs aliases going the other
// way. A plain "import M" with no alias is not invertible to anything
// shorter than M itself, so it installs no entry, matching
// installImportAliases's own "installs nothing" rule for that form.
func DequalifyMap(source *ast.Source) map[string]*ast.Access {
	out := map[string]*ast.Access{}
	for imp := range ast.Collect(source.Statements, func(s ast.Statement) bool {
		_, ok := s.(*ast.Import)
		return ok
	}, nil) {
		dequalifyImport(imp.(*ast.Import), out)
	}
	return out
}

func dequalifyImport(imp *ast.Import, out map[string]*ast.Access) {
	loc := imp.Location()
	if imp.HasFrom {
		if imp.From == "builtins" {
			return
		}
		fromParts := strings.Split(imp.From, ".")
		for _, a := range imp.Imports {
			if a.Name == "*" {
				continue
			}
			local := a.Alias
			if local == "" {
				local = a.Name
			}
			qualified := strings.Join(append(append([]string{}, fromParts...), a.Name), ".")
			out[qualified] = ast.NewAccess(loc, local)
		}
		return
	}
	for _, a := range imp.Imports {
		if a.Alias == "" {
			continue
		}
		out[a.Name] = ast.NewAccess(loc, a.Alias)
	}
}

// CallGraph wraps the edge map CallGraph.create produces so
// CallGraph.partition reads as a method on its own result, matching §6's
// "CallGraph.create(...)" / "CallGraph.partition(edges)" pairing.
type CallGraph struct {
	Edges map[string][]string
}

// CreateCallGraph is CallGraph.create(environment, source) →
// Map[caller → [callee]].
func CreateCallGraph(env resolve.Environment, source *ast.Source) *CallGraph {
	return &CallGraph{Edges: callgraph.Create(env, source)}
}

// Partition is CallGraph.partition(edges) → [[node]], called on the graph
// CreateCallGraph produced.
func (g *CallGraph) Partition() [][]string {
	return callgraph.Partition(g.Edges)
}

// OverridesOfSource is overrides_of_source(environment, source) →
// Map[method → [overrides]]. The spec names the collaborator generically
// as "environment"; the concrete shape it needs is the class hierarchy
// query callgraph.Hierarchy declares, not the statement-keyed
// resolve.Environment the call graph itself consumes — the two
// collaborators answer different questions over the same external type
// checker.
func OverridesOfSource(hierarchy callgraph.Hierarchy, source *ast.Source) map[string][]string {
	return callgraph.Overrides(hierarchy, source)
}
