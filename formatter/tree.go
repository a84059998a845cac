package formatter

import (
	"strings"

	"github.com/gnoswap-labs/formula/ast"
)

const (
	branchMid  = "├── "
	branchLast = "└── "
	indentMid  = "│   "
	indentLast = "    "
)

func (p *Printer) Tree(n ast.Node) string {
	var sb strings.Builder
	sb.WriteString(p.label(n) + "\n")
	p.children(&sb, n, "")
	return sb.String()
}

func (p *Printer) children(sb *strings.Builder, n ast.Node, prefix string) {
	kids := n.Children()
	for i, k := range kids {
		branch, indent := branchMid, indentMid
		if i == len(kids)-1 {
			branch, indent = branchLast, indentLast
		}
		sb.WriteString(p.pal.lineStyle.Sprint(prefix+branch) + p.label(k) + "\n")
		p.children(sb, k, prefix+indent)
	}
}

func (p *Printer) label(n ast.Node) string {
	switch n := n.(type) {
	case *ast.Number:
		return p.pal.number.Sprint(n.String())
	case *ast.Variable:
		return p.pal.variable.Sprint(n.Name())
	case *ast.Bool:
		return p.pal.literal.Sprint(n.String())
	case *ast.Unary:
		return p.pal.function.Sprint(n.Op().String())
	case *ast.Binary:
		return p.pal.function.Sprint(n.Op().String())
	case *ast.Variadic:
		if n.Op() == ast.OpCall {
			return p.pal.function.Sprint("call " + n.Name())
		}
		return p.pal.function.Sprint(n.Op().String())
	case *ast.Control:
		return p.pal.function.Sprint(n.Op().String())
	case *ast.Assign:
		return p.pal.function.Sprint("assign")
	}
	return "?"
}
