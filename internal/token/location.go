// Package token defines source positions and the handle/path indirection
// used to keep Location values cheap to hash and compare while a pass is
// running across many sources.
package token

import "fmt"

// Position is a one-based line/column pair, matching the convention the
// rest of the pipeline uses for diagnostics.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Handle is an opaque, process-wide identifier for a source file. It is
// cheap to copy and to use as a map key; the real path is looked up lazily
// through a Handles table only when a Location must be rendered for a
// human (diagnostics, JSON output).
type Handle uint64

// ReferenceLocation is the compact form of a Location: the path is a
// Handle rather than a string, so two ReferenceLocations for the same
// file compare and hash cheaply. This is the form normalization passes
// carry on every AST node.
type ReferenceLocation struct {
	Handle Handle
	Start  Position
	Stop   Position
}

// InstantiatedLocation is the rendered form of a Location: the path has
// been resolved to a real filename via a Handles lookup. Diagnostics and
// JSON serialization use this form exclusively.
type InstantiatedLocation struct {
	Path  string
	Start Position
	Stop  Position
}

// Handles resolves a Handle to its source path. Implementations are
// expected to be "frozen after populate": writes happen during external
// setup, and this interface only ever performs reads (§5 of the spec).
type Handles interface {
	Get(h Handle) (path string, ok bool)
}

// Instantiate converts a ReferenceLocation to an InstantiatedLocation using
// the given handle table. If the handle is unknown the path is rendered as
// "<unknown>" rather than failing, since this only affects how a diagnostic
// is displayed.
func (r ReferenceLocation) Instantiate(h Handles) InstantiatedLocation {
	path, ok := h.Get(r.Handle)
	if !ok {
		path = "<unknown>"
	}
	return InstantiatedLocation{Path: path, Start: r.Start, Stop: r.Stop}
}

// Key collapses a location to a (path, line) bucket, used by diagnostics to
// deduplicate errors that point at the same logical spot.
func (i InstantiatedLocation) Key() string {
	return fmt.Sprintf("%s:%d", i.Path, i.Start.Line)
}

func (i InstantiatedLocation) String() string {
	return fmt.Sprintf("%s:%s-%s", i.Path, i.Start, i.Stop)
}
