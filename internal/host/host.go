// Package host is a reference realization of §5's "hosting system": the
// spec treats running preprocess and the call graph engine over many
// Sources concurrently as an external collaborator's concern, but a
// standalone library still ships a reference driver so it's usable without
// a caller having to reimplement the fan-out. Grounded on the teacher's
// errgroup.WithContext/SetLimit fan-out idiom (internal/controller/
// applyset.Prune), with a uuid-tagged logger per run the way a concurrent
// batch job needs a correlation id to untangle interleaved log lines.
package host

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pyscope/pyscope/internal/ast"
	"github.com/pyscope/pyscope/internal/callgraph"
	"github.com/pyscope/pyscope/internal/normalize"
	"github.com/pyscope/pyscope/internal/obslog"
	"github.com/pyscope/pyscope/internal/resolve"
)

// DefaultConcurrency bounds the worker pool when Run's concurrency
// parameter is zero or negative.
const DefaultConcurrency = 8

// Result pairs one Source's preprocessing outcome with the call graph built
// from it, or the error preprocessing raised for it.
type Result struct {
	Source    *ast.Source
	Processed *ast.Source
	Graph     map[string][]string
	Err       error
}

// Run preprocesses every Source in sources concurrently (bounded by
// concurrency, or DefaultConcurrency if concurrency <= 0), then builds a
// call graph from each successfully-processed Source against env. Every
// input Source gets exactly one Result, in input order, regardless of
// whether its own preprocessing failed — one Source's recoverable
// wildcard-import failure does not cancel the others.
//
// force selects which §6 entry point each Source goes through: true calls
// Preprocess (wildcard imports always forced, Err always nil); false calls
// TryPreprocess, and a Source whose wildcard import can't be resolved gets
// Err set to ErrMissingWildcardImport and no Graph, while the rest of the
// batch keeps going.
//
// The returned run id is a fresh uuid stamped on every log line the run
// emits via obslog.WithRun, so concurrent runs sharing one process-wide
// logger and module-export table stay traceable to one invocation.
func Run(ctx context.Context, logger *slog.Logger, collab normalize.Collaborators, opts normalize.Options, env resolve.Environment, sources []*ast.Source, concurrency int, force bool) (runID string, results []Result) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	runID = uuid.NewString()
	runLogger := obslog.WithRun(logger, runID)
	runCollab := collab
	runCollab.Logger = runLogger

	results = make([]Result, len(sources))
	var mu sync.Mutex

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)

	for i, source := range sources {
		i, source := i, source
		eg.Go(func() error {
			select {
			case <-egctx.Done():
				return egctx.Err()
			default:
			}

			var result Result
			result.Source = source
			if force {
				result.Processed = normalize.Preprocess(source, runCollab, opts)
			} else if processed, ok := normalize.TryPreprocess(source, runCollab, opts); ok {
				result.Processed = processed
			} else {
				result.Err = normalize.ErrMissingWildcardImport
			}
			if result.Err == nil {
				result.Graph = callgraph.Create(env, result.Processed)
				runLogger.Info("processed source", "handle", fmt.Sprint(source.Handle), "defines_with_calls", len(result.Graph))
			} else {
				runLogger.Warn("deferred source", "handle", fmt.Sprint(source.Handle), "error", result.Err)
			}

			mu.Lock()
			results[i] = result
			mu.Unlock()
			return nil
		})
	}
	// eg.Wait's own error is only non-nil when the context passed in by the
	// caller is cancelled; no worker above returns a non-nil error, since a
	// failed preprocess attempt is recorded in Result.Err rather than
	// propagated.
	if err := eg.Wait(); err != nil {
		runLogger.Warn("run did not complete cleanly", "error", err)
	}
	return runID, results
}
