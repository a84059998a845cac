// Package formatter renders expression trees and engine errors for people.
package formatter

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gnoswap-labs/formula/ast"
	"github.com/gnoswap-labs/formula/lexer"
)

// Printer renders trees as infix text, as indented trees and as diagnostics.
type Printer struct {
	pal palette
}

// New returns a Printer. With colored set, output carries ANSI styles.
func New(colored bool) *Printer {
	return &Printer{pal: newPalette(colored)}
}

var plain = New(false)

// Infix renders n with the fewest parentheses that parse back to n.
func Infix(n ast.Node) string { return plain.Infix(n) }

// Tree renders n as an indented tree, one node per line.
func Tree(n ast.Node) string { return plain.Tree(n) }

func (p *Printer) Infix(n ast.Node) string {
	var sb strings.Builder
	p.write(&sb, n)
	return sb.String()
}

func (p *Printer) write(sb *strings.Builder, n ast.Node) {
	switch n := n.(type) {
	case *ast.Number:
		sb.WriteString(p.pal.number.Sprint(n.String()))
	case *ast.Variable:
		sb.WriteString(p.pal.variable.Sprint(n.Name()))
	case *ast.Bool:
		sb.WriteString(p.pal.literal.Sprint(n.String()))
	case *ast.Unary:
		p.unary(sb, n)
	case *ast.Binary:
		if n.Op().IsFunction() {
			p.call(sb, n.Op().String(), n.L(), n.R())
			return
		}
		sym := n.Op().Symbol()
		if !needsParens(n.L(), n.Op(), false) && fuses(n.L(), sym) {
			sb.WriteString("(")
			p.write(sb, n.L())
			sb.WriteString(")")
		} else {
			p.operand(sb, n.L(), n.Op(), false)
		}
		sb.WriteString(" " + p.pal.operator.Sprint(sym) + " ")
		p.operand(sb, n.R(), n.Op(), true)
	case *ast.Variadic:
		args := n.Children()
		switch n.Op() {
		case ast.OpVector, ast.OpMatrix:
			sb.WriteString("[")
			p.list(sb, args)
			sb.WriteString("]")
		case ast.OpCall:
			p.call(sb, n.Name(), args...)
		default:
			p.call(sb, n.Op().String(), args...)
		}
	case *ast.Control:
		p.call(sb, n.Op().String(), n.Children()...)
	case *ast.Assign:
		p.write(sb, n.Target())
		sb.WriteString(" " + p.pal.operator.Sprint(":=") + " ")
		p.write(sb, n.Value())
	}
}

func (p *Printer) unary(sb *strings.Builder, u *ast.Unary) {
	switch u.Op() {
	case ast.OpNeg:
		sb.WriteString(p.pal.operator.Sprint("-"))
		p.operand(sb, u.X(), u.Op(), true)
	case ast.OpNot:
		sb.WriteString(p.pal.operator.Sprint("not") + " ")
		p.operand(sb, u.X(), u.Op(), true)
	case ast.OpFact:
		p.operand(sb, u.X(), u.Op(), false)
		sb.WriteString(p.pal.operator.Sprint("!"))
	default:
		p.call(sb, u.Op().String(), u.X())
	}
}

func (p *Printer) call(sb *strings.Builder, name string, args ...ast.Node) {
	sb.WriteString(p.pal.function.Sprint(name))
	sb.WriteString("(")
	p.list(sb, args)
	sb.WriteString(")")
}

func (p *Printer) list(sb *strings.Builder, nodes []ast.Node) {
	for i, n := range nodes {
		if i > 0 {
			sb.WriteString(", ")
		}
		p.write(sb, n)
	}
}

// operand writes child of an operator, parenthesized when its binding is
// weaker than the parent's or when it starts with a minus sign.
func (p *Printer) operand(sb *strings.Builder, child ast.Node, parent ast.Op, right bool) {
	if needsParens(child, parent, right) {
		sb.WriteString("(")
		p.write(sb, child)
		sb.WriteString(")")
		return
	}
	p.write(sb, child)
}

func needsParens(child ast.Node, parent ast.Op, right bool) bool {
	if signed(child) {
		return true
	}
	cp, pp := precedence(child), parent.Precedence()
	switch {
	case cp < pp:
		return true
	case cp > pp:
		return false
	}
	// equal binding: only the associative side may drop the parentheses
	if right {
		return !parent.RightAssoc()
	}
	return parent.RightAssoc()
}

// fuses reports whether the rendering of left runs into sym once the
// lexer drops whitespace, as in "x! = y" read as "x != y" or "l nor y" read
// as "ln or y".
func fuses(left ast.Node, sym string) bool {
	r, _ := utf8.DecodeRuneInString(sym)
	if r != '=' && !unicode.IsLetter(r) {
		return false
	}
	text := plain.Infix(left)
	apart, err := lexer.Tokenize(text)
	if err != nil {
		return false
	}
	op, err := lexer.Tokenize(sym)
	if err != nil {
		return false
	}
	joined, err := lexer.Tokenize(text + " " + sym)
	if err != nil {
		return true
	}
	return !sameTokens(joined, append(apart, op...))
}

func sameTokens(a, b []lexer.Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Kind != b[i].Kind || a[i].Name != b[i].Name || a[i].Unit != b[i].Unit ||
			math.Float64bits(a[i].Value) != math.Float64bits(b[i].Value) {
			return false
		}
	}
	return true
}

// signed reports whether the rendering of n begins with a minus sign.
func signed(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.Number:
		return n.Value() < 0
	case *ast.Unary:
		return n.Op() == ast.OpNeg
	}
	return false
}

func precedence(n ast.Node) int {
	switch n := n.(type) {
	case *ast.Unary:
		return n.Op().Precedence()
	case *ast.Binary:
		return n.Op().Precedence()
	case *ast.Assign:
		return ast.PrecAssign
	}
	return ast.PrecAtom
}
