// Command pyscope is a harness, not a parser: it reads a tiny JSON AST
// fixture (the real parser is out of scope) and drives preprocess,
// defines, classes, and CallGraph.create end to end, printing a summary
// or a JSON rendering of the result. Grounded on the teacher's
// cmd/funxy/main.go subcommand-over-os.Args shape, adapted to the
// standard "flag" package for a single-purpose harness with no
// subcommands of its own.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/pyscope/pyscope/internal/ast"
	"github.com/pyscope/pyscope/internal/fixtureformat"
	"github.com/pyscope/pyscope/internal/modules"
	"github.com/pyscope/pyscope/internal/normalize"
	"github.com/pyscope/pyscope/internal/obslog"
	"github.com/pyscope/pyscope/internal/parserapi"
	"github.com/pyscope/pyscope/internal/report"
	"github.com/pyscope/pyscope/internal/resolve"
	"github.com/pyscope/pyscope/pkg/pyscope"
)

func main() {
	fixturePath := flag.String("fixture", "", "path to a JSON AST fixture")
	resolvePath := flag.String("resolve", "", "optional path to a JSON call-site resolution table")
	platform := flag.String("platform", "linux", "assumed target platform for pass 4's constant folding")
	forward := flag.Bool("forward-refs", false, "default forward-reference policy for qualify")
	force := flag.Bool("force", true, "force wildcard-import expansion instead of deferring")
	asJSON := flag.Bool("json", false, "emit JSON instead of a human-readable summary")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: pyscope -fixture <path> [-resolve <path>] [-json]")
		os.Exit(2)
	}

	data, err := os.ReadFile(*fixturePath)
	if err != nil {
		fatal(err)
	}
	source, err := fixtureformat.Decode(data)
	if err != nil {
		fatal(err)
	}

	logger := obslog.New(slog.LevelWarn)
	collab := normalize.Collaborators{Parser: parserapi.NewFixture(), Modules: modules.NewTable(), Logger: logger}
	opts := normalize.Options{Platform: *platform, UseForwardReferences: *forward}

	var processed *ast.Source
	if *force {
		processed = pyscope.Preprocess(source, collab, opts)
	} else {
		var ok bool
		processed, ok = pyscope.TryPreprocess(source, collab, opts)
		if !ok {
			fatal(normalize.ErrMissingWildcardImport)
		}
	}

	env, err := loadResolution(*resolvePath)
	if err != nil {
		fatal(err)
	}

	defines := pyscope.Defines(processed, true, true, true)
	classes := pyscope.Classes(processed)
	graph := pyscope.CreateCallGraph(env, processed)
	rendered := report.BuildGraph(graph.Edges)

	if *asJSON {
		out, err := json.MarshalIndent(map[string]any{
			"defines": len(defines),
			"classes": len(classes),
			"graph":   rendered,
		}, "", "  ")
		if err != nil {
			fatal(err)
		}
		fmt.Println(string(out))
		return
	}

	colorEnabled := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	printSummary(colorEnabled, len(defines), len(classes), rendered)
}

func printSummary(color bool, defineCount, classCount int, graph report.Graph) {
	bold := func(s string) string {
		if !color {
			return s
		}
		return "\033[1m" + s + "\033[0m"
	}
	fmt.Printf("%s %d\n", bold("defines:"), defineCount)
	fmt.Printf("%s %d\n", bold("classes:"), classCount)
	fmt.Printf("%s %s\n", bold("graph:"), graph.Summary(0))
}

// resolutionEntry is one row of the optional -resolve fixture: the
// (node_id, statement_index) a call site lives at, the access chain it
// calls through (by identifier names), and the qualified name it resolves
// to.
type resolutionEntry struct {
	NodeID         int      `json:"node_id"`
	StatementIndex int      `json:"statement_index"`
	Names          []string `json:"names"`
	QualifiedName  string   `json:"qualified_name"`
}

func loadResolution(path string) (resolve.Environment, error) {
	store := resolve.NewStore()
	if path == "" {
		return store, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading resolution table: %w", err)
	}
	var entries []resolutionEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decoding resolution table: %w", err)
	}
	for _, e := range entries {
		access := fixtureformat.DecodeCall(&fixtureformat.Call{Names: e.Names}).(*ast.Access)
		store.Set(resolve.StatementKey{NodeID: e.NodeID, StatementIndex: e.StatementIndex}, access,
			resolve.Element{Kind: resolve.ElementSignature, Callable: resolve.Callable{Kind: resolve.Named, QualifiedName: e.QualifiedName}})
	}
	return store, nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "pyscope:", err)
	os.Exit(1)
}
