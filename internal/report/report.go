// Package report renders a produced call graph and a diagnostic batch for
// consumption outside the process: JSON for tooling, humanize-backed text
// for a terminal. This is the natural complement to
// diagnostics.Error.ToJSON and CallGraph.create/partition — the graph and
// the diagnostics need a way to leave the process at all, which neither
// internal/callgraph nor internal/diagnostics itself provides.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/pyscope/pyscope/internal/callgraph"
	"github.com/pyscope/pyscope/internal/diagnostics"
)

// Graph is the JSON-serializable rendering of one call graph: its vertex
// set, its caller→callees edges, and its SCC partition in the
// leaves-first order Partition produces.
type Graph struct {
	Vertices   []string   `json:"vertices"`
	Edges      [][]string `json:"edges"`
	Components [][]string `json:"components"`
}

// BuildGraph renders edges (as produced by callgraph.Create) into a Graph,
// computing its SCC partition via callgraph.Partition.
func BuildGraph(edges map[string][]string) Graph {
	seen := map[string]bool{}
	var vertices []string
	var rendered [][]string
	for caller, callees := range edges {
		if !seen[caller] {
			seen[caller] = true
			vertices = append(vertices, caller)
		}
		for _, callee := range callees {
			if !seen[callee] {
				seen[callee] = true
				vertices = append(vertices, callee)
			}
			rendered = append(rendered, []string{caller, callee})
		}
	}
	sort.Strings(vertices)
	sort.Slice(rendered, func(i, j int) bool {
		if rendered[i][0] != rendered[j][0] {
			return rendered[i][0] < rendered[j][0]
		}
		return rendered[i][1] < rendered[j][1]
	})
	return Graph{Vertices: vertices, Edges: rendered, Components: callgraph.Partition(edges)}
}

// JSON renders g as indented JSON.
func (g Graph) JSON() ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}

// Summary renders a one-line human-readable count, e.g.
// "18 vertices, 24 edges, 6 components in 640ms".
func (g Graph) Summary(elapsed time.Duration) string {
	return fmt.Sprintf("%s vertices, %s edges, %s components in %s",
		humanize.Comma(int64(len(g.Vertices))),
		humanize.Comma(int64(len(g.Edges))),
		humanize.Comma(int64(len(g.Components))),
		elapsed)
}

// Diagnostics is the JSON-serializable rendering of a diagnostic batch.
type Diagnostics struct {
	Items []diagnostics.JSON `json:"diagnostics"`
}

// BuildDiagnostics renders errs via Error.ToJSON.
func BuildDiagnostics(errs []*diagnostics.Error, showErrorTraces bool) Diagnostics {
	items := make([]diagnostics.JSON, 0, len(errs))
	for _, e := range errs {
		items = append(items, e.ToJSON(showErrorTraces))
	}
	return Diagnostics{Items: items}
}

// JSON renders d as indented JSON.
func (d Diagnostics) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Summary renders a one-line human-readable count, e.g.
// "7 diagnostics across 3 files".
func (d Diagnostics) Summary() string {
	files := map[string]bool{}
	for _, item := range d.Items {
		files[item.Path] = true
	}
	return fmt.Sprintf("%s diagnostics across %s files",
		humanize.Comma(int64(len(d.Items))),
		humanize.Comma(int64(len(files))))
}
