// Package fixtureformat decodes the tiny JSON AST fixture shape
// cmd/pyscope reads and golden pipeline tests build Sources from — the
// real parser is out of scope, so tests and the CLI harness share one
// stand-in encoding instead of constructing ast.Statement trees by hand
// everywhere they need a Source.
package fixtureformat

import (
	"encoding/json"
	"fmt"

	"github.com/pyscope/pyscope/internal/ast"
	"github.com/pyscope/pyscope/internal/token"
)

// Source is the top-level fixture shape.
type Source struct {
	Qualifier []string `json:"qualifier"`
	Body      []Stmt   `json:"body"`
}

// Stmt is a tagged union over the handful of statement kinds the fixture
// format needs: "pass", "import", "define", "class", "return", "exprstmt".
type Stmt struct {
	Kind string `json:"kind"`

	From    string      `json:"from,omitempty"`
	HasFrom bool        `json:"has_from,omitempty"`
	Imports []ImportRef `json:"imports,omitempty"`

	Name string `json:"name,omitempty"`
	ID   int    `json:"node_id,omitempty"`
	Body []Stmt `json:"body,omitempty"`

	Call    *Call    `json:"call,omitempty"`
	FString *FString `json:"fstring,omitempty"`
}

// FString is a Mixed-kind string literal fixture: the raw lexed text, brace
// and all, plus the position its first character starts at. It decodes to
// an ast.String carrying one un-split Substring, the shape pass 3's brace
// scanner expects to scan — letting tests exercise the real scanner instead
// of hand-splitting fragments themselves.
type FString struct {
	Value  string `json:"value"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// ImportRef is one "import a [as b]" or "from M import a [as b]" entry.
type ImportRef struct {
	Name  string `json:"name"`
	Alias string `json:"alias,omitempty"`
}

// Call is an access chain ending in a call, e.g. {"names": ["self",
// "bar"]} for "self.bar()".
type Call struct {
	Names []string `json:"names"`
}

// Decode parses data into an *ast.Source, wiring Parent links for nested
// Define/Class nodes the way a real parser would.
func Decode(data []byte) (*ast.Source, error) {
	var f Source
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding fixture: %w", err)
	}
	return &ast.Source{
		Qualifier:  ast.Reference{Names: f.Qualifier},
		Statements: decodeStmts(f.Body, nil),
		Metadata:   map[string]string{},
	}, nil
}

func decodeStmts(in []Stmt, parent ast.Statement) []ast.Statement {
	out := make([]ast.Statement, 0, len(in))
	for _, s := range in {
		out = append(out, decodeStmt(s, parent))
	}
	return out
}

func decodeStmt(s Stmt, parent ast.Statement) ast.Statement {
	switch s.Kind {
	case "import":
		imports := make([]ast.ImportAlias, 0, len(s.Imports))
		for _, a := range s.Imports {
			imports = append(imports, ast.ImportAlias{Name: a.Name, Alias: a.Alias})
		}
		return &ast.Import{From: s.From, HasFrom: s.HasFrom, Imports: imports}
	case "define":
		define := &ast.Define{Name: s.Name, NodeID: s.ID, Parent: parent}
		define.Body = decodeStmts(s.Body, define)
		return define
	case "class":
		class := &ast.Class{Name: s.Name, Parent: parent}
		class.Body = decodeStmts(s.Body, class)
		return class
	case "return":
		return &ast.Return{Value: decodeValue(s)}
	case "exprstmt":
		return &ast.ExprStmt{Value: decodeValue(s)}
	default:
		return &ast.Pass{}
	}
}

// decodeValue picks whichever value shape a Return/ExprStmt fixture carries.
func decodeValue(s Stmt) ast.Expression {
	if s.FString != nil {
		return DecodeFString(s.FString)
	}
	return DecodeCall(s.Call)
}

// DecodeCall renders a Call fixture as the Access chain it describes,
// or nil when c is nil.
func DecodeCall(c *Call) ast.Expression {
	if c == nil {
		return nil
	}
	access := ast.NewAccess(token.ReferenceLocation{}, c.Names...)
	access.Elements = append(access.Elements, &ast.Call{})
	return access
}

// DecodeFString renders an FString fixture as a Mixed-kind ast.String, or
// nil when f is nil.
func DecodeFString(f *FString) ast.Expression {
	if f == nil {
		return nil
	}
	str := &ast.String{
		Value: f.Value,
		Kind:  ast.StringMixed,
		Substrings: []ast.Substring{
			{Raw: f.Value, Line: f.Line, Column: f.Column},
		},
	}
	return str
}
