// Package diagnostics implements the generic Error/Diagnostic Base of
// §4.5: a location + kind + enclosing-function record with textual and
// structured rendering, grounded on the teacher's
// internal/diagnostics.DiagnosticError (used throughout
// internal/analyzer and surfaced verbatim to cmd/lsp) but generalized to
// the kind-table shape the spec names explicitly.
package diagnostics

import (
	"strconv"
	"strings"

	"github.com/pyscope/pyscope/internal/ast"
	"github.com/pyscope/pyscope/internal/token"
)

// Kind describes one category of diagnostic: its numeric code, its name,
// how to render its message(s), and how to render structured inference
// information for machine consumers.
type Kind interface {
	Code() int
	Name() string
	Messages(concise bool, define *ast.Define, loc token.InstantiatedLocation) []string
	InferenceInformation(define *ast.Define) map[string]any
}

// Error is the generic diagnostic record of §4.5.
type Error struct {
	location token.InstantiatedLocation
	kind     Kind
	define   *ast.Define
}

// Create builds an Error. define may be nil when the diagnostic has no
// enclosing function (e.g. a module-level wildcard-import failure).
func Create(location token.InstantiatedLocation, kind Kind, define *ast.Define) *Error {
	return &Error{location: location, kind: kind, define: define}
}

func (e *Error) Kind() Kind                            { return e.kind }
func (e *Error) Path() string                          { return e.location.Path }
func (e *Error) Location() token.InstantiatedLocation  { return e.location }
func (e *Error) Code() int                             { return e.kind.Code() }
func (e *Error) Define() *ast.Define                   { return e.define }

// Key collapses the location to a (path, line) bucket for deduplication.
// The kind's code is not part of the key: two errors on the same line of
// the same path share one key whatever their codes.
func (e *Error) Key() string {
	return e.location.Key()
}

// Description emits "<name> [<code>]: <joined-or-first message>". When
// concise is true only the first message is used even if Messages returned
// several; separator joins multiple full messages.
func (e *Error) Description(separator string, concise bool, showErrorTraces bool) string {
	msgs := e.kind.Messages(concise, e.define, e.location)
	var body string
	if len(msgs) == 0 {
		body = ""
	} else if concise {
		body = msgs[0]
	} else {
		body = strings.Join(msgs, separator)
	}
	out := e.kind.Name() + " [" + strconv.Itoa(e.kind.Code()) + "]: " + body
	if showErrorTraces && e.define != nil {
		out += " (in " + SanitizedName(e.define) + ")"
	}
	return out
}

// JSON is the structured rendering ToJSON produces.
type JSON struct {
	Line               int            `json:"line"`
	Column             int            `json:"column"`
	Path               string         `json:"path"`
	Code               int            `json:"code"`
	Name               string         `json:"name"`
	Description        string         `json:"description"`
	LongDescription    string         `json:"long_description"`
	ConciseDescription string         `json:"concise_description"`
	Inference          map[string]any `json:"inference,omitempty"`
	Define             string         `json:"define,omitempty"`
}

// ToJSON renders the structured form described in §4.5.
func (e *Error) ToJSON(showErrorTraces bool) JSON {
	msgs := e.kind.Messages(false, e.define, e.location)
	long := strings.Join(msgs, " ")
	concise := ""
	if len(msgs) > 0 {
		concise = msgs[0]
	}
	j := JSON{
		Line:               e.location.Start.Line,
		Column:             e.location.Start.Column,
		Path:               e.location.Path,
		Code:               e.kind.Code(),
		Name:               e.kind.Name(),
		Description:        e.Description(" ", false, showErrorTraces),
		LongDescription:    long,
		ConciseDescription: concise,
		Inference:          e.kind.InferenceInformation(e.define),
	}
	if e.define != nil {
		j.Define = SanitizedName(e.define)
	}
	return j
}

// SanitizedName strips leading underscores from a Define's name, the same
// "project's sanitization rule" §4.3 references for class-attribute
// promotion, applied here to the enclosing function's name for display.
func SanitizedName(d *ast.Define) string {
	return strings.TrimLeft(d.Name, "_")
}
