// Package callgraph implements the inter-procedural Call Graph Engine of
// §4.4: it walks a normalized Source's Defines, resolves each call site
// through the external type-resolution store, and builds the caller→callees
// map, the override map, and a Tarjan SCC partition in reverse topological
// (leaves-first) order. Grounded on the teacher's internal/analyzer walker
// family (per-Define traversal accumulating into a shared result) but built
// around graph algorithms the teacher has no analogue for.
package callgraph

import (
	"sort"

	"github.com/pyscope/pyscope/internal/ast"
	"github.com/pyscope/pyscope/internal/resolve"
)

// Create builds the caller→callees map of §4.4. For every Define in source
// (including nested ones), for every call site in its body, the terminal
// element of the access chain is resolved through env keyed by
// (define.NodeID, statement index). Resolved Named callables become edges;
// everything else (unresolved, Anonymous, non-Signature elements) is
// skipped. Multiple call sites collapsing to the same (caller, callee) pair
// produce one edge, per §4.4's "the graph treats them as a set".
//
// Only Defines with at least one resolvable call appear as keys, matching
// §8's invariant that the graph has a vertex for every Define with a
// resolvable call — not for every Define.
func Create(env resolve.Environment, source *ast.Source) map[string][]string {
	graph := map[string][]string{}
	seen := map[string]map[string]bool{}

	addEdge := func(caller, callee string) {
		if seen[caller] == nil {
			seen[caller] = map[string]bool{}
		}
		if seen[caller][callee] {
			return
		}
		seen[caller][callee] = true
		graph[caller] = append(graph[caller], callee)
	}

	for define := range ast.Defines(source.Statements, true) {
		caller := ast.QualifiedDefineName(define, source.Qualifier)
		for idx, stmt := range define.Body {
			key := resolve.StatementKey{NodeID: define.NodeID, StatementIndex: idx}
			res, ok := env.Resolution(key)
			if !ok {
				continue
			}
			for _, access := range ast.CallSites(stmt) {
				el, ok := res.LastElement(access)
				if !ok || el.Kind != resolve.ElementSignature {
					continue
				}
				if el.Callable.Kind != resolve.Named {
					continue
				}
				addEdge(caller, el.Callable.QualifiedName)
			}
		}
	}
	return graph
}

// Partition computes the strongly-connected components of edges via
// Tarjan's algorithm (§4.4). Tarjan's output order already satisfies the
// spec's "leaves first" requirement: a component finishes (is popped) only
// after every component it can reach has already finished, so a component
// with no outgoing edges in the condensation is emitted before one that
// calls into it.
//
// The public interface this mirrors (§6 "CallGraph.partition(edges)") takes
// a plain caller→callees map, which carries no vertex discovery order,
// unlike an in-process build where Create would naturally visit Defines in
// source order. To keep the root-scan order (and hence tie-breaking between
// independent components) deterministic across runs, vertices are scanned
// in sorted-name order; within one component, members are listed in the
// order the discovery walk pushed them onto Tarjan's stack.
func Partition(edges map[string][]string) [][]string {
	vertices := allVertices(edges)

	indices := map[string]int{}
	low := map[string]int{}
	onStack := map[string]bool{}
	var stack []string
	var sccs [][]string
	next := 0

	var strongconnect func(v string)
	strongconnect = func(v string) {
		indices[v] = next
		low[v] = next
		next++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range edges[v] {
			if _, visited := indices[w]; !visited {
				strongconnect(w)
				if low[w] < low[v] {
					low[v] = low[w]
				}
			} else if onStack[w] {
				if indices[w] < low[v] {
					low[v] = indices[w]
				}
			}
		}

		if low[v] == indices[v] {
			var comp []string
			for {
				n := len(stack) - 1
				w := stack[n]
				stack = stack[:n]
				onStack[w] = false
				comp = append(comp, w)
				if w == v {
					break
				}
			}
			for i, j := 0, len(comp)-1; i < j; i, j = i+1, j-1 {
				comp[i], comp[j] = comp[j], comp[i]
			}
			sccs = append(sccs, comp)
		}
	}

	for _, v := range vertices {
		if _, visited := indices[v]; !visited {
			strongconnect(v)
		}
	}
	return sccs
}

func allVertices(edges map[string][]string) []string {
	set := map[string]bool{}
	for caller, callees := range edges {
		set[caller] = true
		for _, callee := range callees {
			set[callee] = true
		}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
