// Package normalize implements the eleven-pass AST normalization pipeline
// of spec §4.2: a permissive surface AST goes in, a canonical,
// fully-qualified, alias-free AST comes out. Each pass is a pure function
// from *ast.Source to *ast.Source (or, for pass 7, to an error when a
// wildcard import can't be resolved and forcing is disabled), grounded on
// the teacher's internal/pipeline.Pipeline{processors}.Run(ctx) idiom of
// threading a value through an ordered list of stages and stopping on the
// first hard failure.
package normalize

import (
	"errors"
	"log/slog"

	"github.com/pyscope/pyscope/internal/ast"
	"github.com/pyscope/pyscope/internal/modules"
	"github.com/pyscope/pyscope/internal/parserapi"
)

// ErrMissingWildcardImport is pass 7's recoverable-across-passes condition
// (§7): a "from M import *" whose module hasn't been indexed yet, raised
// only when expansion isn't forced.
var ErrMissingWildcardImport = errors.New("wildcard import could not be expanded: module exports unknown")

// Options carries the handful of pipeline-wide knobs §4.2 and §4.3 name:
// the assumed target platform for pass 4's constant folding, and the
// forward-reference policy qualify installs on the module's top-level
// scope (decorators always honor forward references; function and class
// bodies never do).
type Options struct {
	Platform             string
	UseForwardReferences bool
}

// Collaborators bundles the external services the pipeline calls out to
// (§5, §6): the re-entrant parser, the module export table, and the
// logger recoverable-within-a-pass failures are traced to.
type Collaborators struct {
	Parser  parserapi.Parser
	Modules modules.Exports
	Logger  *slog.Logger
}

// Preprocess is §6's eager entry point: wildcard imports are always forced,
// so this never fails with ErrMissingWildcardImport.
func Preprocess(source *ast.Source, collab Collaborators, opts Options) *ast.Source {
	out, err := run(source, collab, opts, true)
	if err != nil {
		// force=true never returns ErrMissingWildcardImport; a non-nil err
		// here would be a programmer error in run's own invariants.
		panic(err)
	}
	return out
}

// TryPreprocess is §6's lazy entry point: returns ok=false instead of
// forcing an unresolved wildcard import.
func TryPreprocess(source *ast.Source, collab Collaborators, opts Options) (*ast.Source, bool) {
	out, err := run(source, collab, opts, false)
	if err != nil {
		return nil, false
	}
	return out, true
}

func run(source *ast.Source, collab Collaborators, opts Options, force bool) (*ast.Source, error) {
	src := ExpandRelativeImports(source)
	src = ExpandStringAnnotations(src, collab.Parser, collab.Logger)
	src = ExpandFormatString(src, collab.Parser, collab.Logger)
	src = ReplacePlatformSpecificCode(src, opts.Platform)
	src = ReplaceVersionSpecificCode(src)
	src = ExpandTypeCheckingImports(src)
	src, err := ExpandWildcardImports(src, collab.Modules, force)
	if err != nil {
		return nil, err
	}
	src = Qualify(src, opts.UseForwardReferences)
	src = ExpandImplicitReturns(src)
	src = ReplaceMypyExtensionsStub(src)
	src = ExpandTypedDictionaryDeclarations(src)
	return src, nil
}
