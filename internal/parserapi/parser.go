// Package parserapi declares the Parser collaborator (§6): surface syntax
// in, a statement list out. The real parser is out of scope (spec.md §1);
// this package only carries the interface plus a small in-memory fixture
// used by tests and the cmd/pyscope harness.
package parserapi

import (
	"strconv"

	"github.com/pyscope/pyscope/internal/ast"
	"github.com/pyscope/pyscope/internal/token"
)

// Parser re-parses a string fragment, preserving diagnostic positions by
// accepting the origin (startLine, startColumn) the fragment was extracted
// from. Used by normalize passes 2 and 3; qualify does not call it.
// May fail (e.g. syntax error in the fragment); failures
// are recoverable (§7) and degrade to a sentinel per the calling pass.
type Parser interface {
	Parse(text string, startLine, startColumn int, handle token.Handle) ([]ast.Statement, error)
}

// Fixture is a deterministic Parser used by tests: it looks up pre-baked
// statement lists by the exact text it is asked to parse, and otherwise
// reports a parse error. This lets normalization-pass tests exercise the
// recoverable-parse-failure paths (§7) without depending on the real
// (out-of-scope) parser.
type Fixture struct {
	Programs map[string][]ast.Statement
}

// NewFixture builds an empty Fixture ready for Register calls.
func NewFixture() *Fixture {
	return &Fixture{Programs: map[string][]ast.Statement{}}
}

// Register teaches the fixture what text parses to.
func (f *Fixture) Register(text string, stmts []ast.Statement) {
	f.Programs[text] = stmts
}

func (f *Fixture) Parse(text string, startLine, startColumn int, handle token.Handle) ([]ast.Statement, error) {
	if stmts, ok := f.Programs[text]; ok {
		return stmts, nil
	}
	return nil, &ParseError{Text: text, Line: startLine, Column: startColumn}
}

// ParseError reports that the fixture (or, in production, the real parser)
// could not make sense of a fragment.
type ParseError struct {
	Text   string
	Line   int
	Column int
}

func (e *ParseError) Error() string {
	return "parse error at " + strconv.Itoa(e.Line) + ":" + strconv.Itoa(e.Column)
}
