package formatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gnoswap-labs/formula/internal/types"
	"github.com/gnoswap-labs/formula/lexer"
)

// Diagnostic is an error raised while processing one formula.
type Diagnostic struct {
	// Source names where the formula came from, e.g. a file name.
	Source string
	// Line is the 1-based line of the formula in Source, or 0.
	Line int
	Text string
	Err  error
}

// Diagnostic renders d the way compilers report errors:
//
//	error: parse error
//	 --> input.txt:3
//	  |
//	  | sin(x)2
//	  |       ^ leftover operand
//
// Positions refer to the normalized text, so the normalized text is shown.
func (p *Printer) Diagnostic(d Diagnostic) string {
	kind, pos, msg := classify(d.Err)

	var sb strings.Builder
	sb.WriteString(p.pal.errorStyle.Sprint("error: ") + p.pal.kindStyle.Sprint(kind) + "\n")
	if d.Source != "" {
		loc := d.Source
		if d.Line > 0 {
			loc = fmt.Sprintf("%s:%d", d.Source, d.Line)
		}
		sb.WriteString(p.pal.lineStyle.Sprint(" --> ") + p.pal.sourceStyle.Sprint(loc) + "\n")
	}

	text := lexer.Normalize(d.Text)
	sb.WriteString(p.pal.lineStyle.Sprint("  |") + "\n")
	sb.WriteString(p.pal.lineStyle.Sprint("  | ") + text + "\n")

	if pos >= 0 && pos <= len([]rune(text)) {
		sb.WriteString(p.pal.lineStyle.Sprint("  | "))
		sb.WriteString(strings.Repeat(" ", pos))
		sb.WriteString(p.pal.messageStyle.Sprintf("^ %s", msg) + "\n")
	} else {
		sb.WriteString(p.pal.lineStyle.Sprint("  = ") + p.pal.messageStyle.Sprint(msg) + "\n")
	}
	return sb.String()
}

// classify extracts the error kind, the rune position (or -1) and the bare
// message of err.
func classify(err error) (kind string, pos int, msg string) {
	var (
		lexErr *types.LexError
		parErr *types.ParseError
		nsErr  *types.NotSupportedError
		argErr *types.ArgumentError
	)
	switch {
	case errors.As(err, &lexErr):
		return "lex error", lexErr.Pos, lexErr.Msg
	case errors.As(err, &parErr):
		return "parse error", parErr.Pos, parErr.Msg
	case errors.As(err, &nsErr):
		return "not supported", -1, nsErr.Error()
	case errors.As(err, &argErr):
		return "invalid argument", -1, argErr.Error()
	case errors.Is(err, types.ErrDivideByZero):
		return "division by zero", -1, err.Error()
	case err == nil:
		return "error", -1, "unknown error"
	}
	return "error", -1, err.Error()
}
