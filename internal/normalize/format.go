package normalize

import (
	"log/slog"
	"strings"

	"github.com/pyscope/pyscope/internal/ast"
	"github.com/pyscope/pyscope/internal/parserapi"
)

// ExpandFormatString is pass 3: for each String expression of kind Mixed,
// scan its raw Substrings for brace-delimited expressions and parse each
// extracted slice as an expression at its original (line, column). A
// fragment that fails to parse is logged at debug and dropped entirely (no
// sentinel, unlike pass 2 — failures here are just omitted from Parts).
func ExpandFormatString(source *ast.Source, parser parserapi.Parser, logger *slog.Logger) *ast.Source {
	t := &ast.FullTransformer{
		VisitStmt: func(state any, stmt ast.Statement) (any, []ast.Statement) {
			return state, []ast.Statement{stmt}
		},
		VisitExpr: func(state any, e ast.Expression) (any, ast.Expression) {
			str, ok := e.(*ast.String)
			if !ok || str.Kind != ast.StringMixed {
				return state, e
			}
			return state, expandMixedString(str, parser, logger, source)
		},
	}
	_, out := t.Run(nil, source)
	return out
}

// formatFragment is one brace-delimited expression slice scanFormatFragments
// extracted from a raw chunk, with the (line, column) it must be reparsed at.
type formatFragment struct {
	text   string
	line   int
	column int
}

// scanFormatFragments implements the brace-scanning state machine: a "{" in
// Literal state opens an Expression and records the column right after it; a
// "{" in an empty Expression collapses back to Literal state, treating the
// pair as an escaped "{{" rather than the start of a real expression; a "}"
// in Expression state emits the accumulated text (after stripping leading
// whitespace/tabs) and returns to Literal state. Nesting a "{" inside an
// already-open Expression is not handled — it is kept as ordinary buffered
// text, matching source behavior. An Expression left open at the end of raw
// with no closing "}" is silently dropped.
func scanFormatFragments(raw string, line, startColumn int) []formatFragment {
	var fragments []formatFragment
	var buf strings.Builder
	inExpr := false
	exprStart := 0

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		col := startColumn + i
		switch {
		case c == '{' && !inExpr:
			inExpr = true
			exprStart = col + 1
			buf.Reset()
		case c == '{' && inExpr && buf.Len() == 0:
			inExpr = false
		case c == '}' && inExpr:
			text := buf.String()
			trimmed := strings.TrimLeft(text, " \t")
			if trimmed != "" {
				fragments = append(fragments, formatFragment{
					text:   trimmed,
					line:   line,
					column: exprStart + (len(text) - len(trimmed)),
				})
			}
			inExpr = false
			buf.Reset()
		case inExpr:
			buf.WriteByte(c)
		}
	}
	return fragments
}

func expandMixedString(str *ast.String, parser parserapi.Parser, logger *slog.Logger, source *ast.Source) *ast.String {
	var parts []ast.Expression
	for _, sub := range str.Substrings {
		for _, frag := range scanFormatFragments(sub.Raw, sub.Line, sub.Column) {
			stmts, err := parser.Parse(frag.text, frag.line, frag.column, source.Handle)
			if err != nil {
				if logger != nil {
					logger.Debug("format string fragment failed to parse", "fragment", frag.text, "error", err)
				}
				continue
			}
			if len(stmts) != 1 {
				continue
			}
			exprStmt, ok := stmts[0].(*ast.ExprStmt)
			if !ok {
				continue
			}
			parts = append(parts, exprStmt.Value)
		}
	}

	rewritten := *str
	rewritten.Kind = ast.StringFormat
	rewritten.Parts = parts
	return &rewritten
}
