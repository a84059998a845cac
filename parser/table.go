package parser

import (
	"github.com/gnoswap-labs/formula/ast"
	"github.com/gnoswap-labs/formula/lexer"
)

type fixity int

const (
	infix fixity = iota
	prefix
	postfix
)

// operator describes how an operator token behaves on the holding stack.
type operator struct {
	op    ast.Op // ast.OpInvalid for ASSIGN
	prec  int
	right bool
	fix   fixity
}

func binaryOp(op ast.Op) operator {
	return operator{op: op, prec: op.Precedence(), right: op.RightAssoc(), fix: infix}
}

var operators = map[lexer.Kind]operator{
	lexer.ADD:   binaryOp(ast.OpAdd),
	lexer.SUB:   binaryOp(ast.OpSub),
	lexer.MUL:   binaryOp(ast.OpMul),
	lexer.DIV:   binaryOp(ast.OpDiv),
	lexer.MOD:   binaryOp(ast.OpMod),
	lexer.POW:   binaryOp(ast.OpPow),
	lexer.EQ:    binaryOp(ast.OpEq),
	lexer.NEQ:   binaryOp(ast.OpNeq),
	lexer.LT:    binaryOp(ast.OpLt),
	lexer.LE:    binaryOp(ast.OpLe),
	lexer.GT:    binaryOp(ast.OpGt),
	lexer.GE:    binaryOp(ast.OpGe),
	lexer.AND:   binaryOp(ast.OpAnd),
	lexer.OR:    binaryOp(ast.OpOr),
	lexer.XOR:   binaryOp(ast.OpXor),
	lexer.NAND:  binaryOp(ast.OpNand),
	lexer.NOR:   binaryOp(ast.OpNor),
	lexer.IMPL:  binaryOp(ast.OpImpl),
	lexer.EQUIV: binaryOp(ast.OpEquiv),
	lexer.SHL:   binaryOp(ast.OpShl),
	lexer.SHR:   binaryOp(ast.OpShr),

	lexer.NEG:  {op: ast.OpNeg, prec: ast.PrecNeg, right: true, fix: prefix},
	lexer.NOT:  {op: ast.OpNot, prec: ast.PrecNot, right: true, fix: prefix},
	lexer.FACT: {op: ast.OpFact, prec: ast.PrecPostfix, fix: postfix},

	lexer.ASSIGN: {prec: ast.PrecAssign, right: true, fix: infix},
}

// functions maps function keywords to the node operator they build.
var functions = map[lexer.Kind]ast.Op{
	lexer.SIN:       ast.OpSin,
	lexer.COS:       ast.OpCos,
	lexer.TAN:       ast.OpTan,
	lexer.COT:       ast.OpCot,
	lexer.SEC:       ast.OpSec,
	lexer.CSC:       ast.OpCsc,
	lexer.ARCSIN:    ast.OpArcsin,
	lexer.ARCCOS:    ast.OpArccos,
	lexer.ARCTAN:    ast.OpArctan,
	lexer.ARCCOT:    ast.OpArccot,
	lexer.SINH:      ast.OpSinh,
	lexer.COSH:      ast.OpCosh,
	lexer.TANH:      ast.OpTanh,
	lexer.COTH:      ast.OpCoth,
	lexer.ARSINH:    ast.OpArsinh,
	lexer.ARCOSH:    ast.OpArcosh,
	lexer.ARTANH:    ast.OpArtanh,
	lexer.ARCOTH:    ast.OpArcoth,
	lexer.LN:        ast.OpLn,
	lexer.LG:        ast.OpLg,
	lexer.LB:        ast.OpLb,
	lexer.LOG:       ast.OpLog,
	lexer.EXP:       ast.OpExp,
	lexer.SQRT:      ast.OpSqrt,
	lexer.ROOT:      ast.OpRoot,
	lexer.ABS:       ast.OpAbs,
	lexer.SIGN:      ast.OpSign,
	lexer.FLOOR:     ast.OpFloor,
	lexer.CEIL:      ast.OpCeil,
	lexer.ROUND:     ast.OpRound,
	lexer.MIN:       ast.OpMin,
	lexer.MAX:       ast.OpMax,
	lexer.DIFF:      ast.OpDiff,
	lexer.TRANSPOSE: ast.OpTranspose,
	lexer.INVERSE:   ast.OpInverse,
	lexer.DET:       ast.OpDet,
	lexer.IF:        ast.OpIf,
	lexer.WHILE:     ast.OpWhile,
	lexer.FOR:       ast.OpFor,
	lexer.TABLE:     ast.OpTable,
	lexer.CALL:      ast.OpCall,
}

// shorthands lets a function accept one argument less than its operator
// needs by falling back to a related unary operator.
var shorthands = map[ast.Op]ast.Op{
	ast.OpLog:  ast.OpLg,
	ast.OpRoot: ast.OpSqrt,
}
