package diagnostics

import (
	"github.com/pyscope/pyscope/internal/ast"
	"github.com/pyscope/pyscope/internal/token"
)

// simpleKind is a Kind with a fixed code/name and a message template that
// ignores define/location, sufficient for the handful of Kinds this core
// needs (it does not need the checker's rich per-kind message catalog).
type simpleKind struct {
	code     int
	name     string
	template string
}

func (k simpleKind) Code() int { return k.code }
func (k simpleKind) Name() string { return k.name }

func (k simpleKind) Messages(concise bool, define *ast.Define, loc token.InstantiatedLocation) []string {
	return []string{k.template}
}

func (k simpleKind) InferenceInformation(define *ast.Define) map[string]any {
	if define == nil {
		return nil
	}
	return map[string]any{"enclosing": SanitizedName(define)}
}

var (
	// KindMissingWildcardImport backs the recoverable-across-passes
	// condition of §7/§4.2 pass 7: a `from M import *` whose module
	// hasn't been indexed yet, when normalization isn't running forced.
	KindMissingWildcardImport Kind = simpleKind{901, "MissingWildcardImport", "wildcard import could not be expanded: module exports unknown"}

	// KindUnparsedAnnotation backs the recoverable-within-a-pass
	// condition of pass 2: a string annotation that failed to re-parse
	// and was replaced with the $unparsed_annotation sentinel.
	KindUnparsedAnnotation Kind = simpleKind{902, "UnparsedAnnotation", "string annotation could not be parsed"}

	// KindInvalidFormatFragment backs pass 3's recoverable parse
	// failures inside f-string brace expressions.
	KindInvalidFormatFragment Kind = simpleKind{903, "InvalidFormatFragment", "format string expression could not be parsed"}

	// KindExportNotFound backs export-validation failures (a module
	// declares an export that is never defined).
	KindExportNotFound Kind = simpleKind{904, "ExportNotFound", "exported symbol not defined"}

	// KindInvariantViolation backs programmer-error assertion failures
	// (§7): a structural invariant the pipeline itself should never
	// violate, such as a call-graph query expecting a Signature element
	// that wasn't found.
	KindInvariantViolation Kind = simpleKind{999, "InvariantViolation", "internal invariant violated"}
)
