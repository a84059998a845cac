package lexer

import "fmt"

// Kind is the lexical class of a Token.
type Kind int

const (
	ILLEGAL Kind = iota

	literal_beg
	NUMBER // 12.5, 90°, 3_kg
	IDENT  // x, pi
	TRUE
	FALSE
	literal_end

	LPAREN
	RPAREN
	LBRACK
	RBRACK
	COMMA

	operator_beg
	ADD
	SUB
	NEG // unary minus
	MUL
	DIV
	MOD
	POW
	FACT // postfix !

	EQ
	NEQ
	LT
	LE
	GT
	GE

	AND
	OR
	XOR
	NAND
	NOR
	NOT
	IMPL  // -> =>
	EQUIV // <-> <=>

	SHL
	SHR

	ASSIGN // :=
	operator_end

	function_beg
	SIN
	COS
	TAN
	COT
	SEC
	CSC
	ARCSIN
	ARCCOS
	ARCTAN
	ARCCOT
	SINH
	COSH
	TANH
	COTH
	ARSINH
	ARCOSH
	ARTANH
	ARCOTH
	LN
	LG
	LB
	LOG
	EXP
	SQRT
	ROOT
	ABS
	SIGN
	FLOOR
	CEIL
	ROUND
	MIN
	MAX
	DIFF
	TRANSPOSE
	INVERSE
	DET
	IF
	WHILE
	FOR
	TABLE
	CALL // user function, Name holds the identifier
	function_end
)

var kindNames = [...]string{
	ILLEGAL: "ILLEGAL",
	NUMBER:  "NUMBER",
	IDENT:   "IDENT",
	TRUE:    "true",
	FALSE:   "false",

	LPAREN: "(",
	RPAREN: ")",
	LBRACK: "[",
	RBRACK: "]",
	COMMA:  ",",

	ADD:  "+",
	SUB:  "-",
	NEG:  "neg",
	MUL:  "*",
	DIV:  "/",
	MOD:  "mod",
	POW:  "^",
	FACT: "!",

	EQ:  "=",
	NEQ: "!=",
	LT:  "<",
	LE:  "<=",
	GT:  ">",
	GE:  ">=",

	AND:   "and",
	OR:    "or",
	XOR:   "xor",
	NAND:  "nand",
	NOR:   "nor",
	NOT:   "not",
	IMPL:  "->",
	EQUIV: "<->",

	SHL: "<<",
	SHR: ">>",

	ASSIGN: ":=",

	SIN:       "sin",
	COS:       "cos",
	TAN:       "tan",
	COT:       "cot",
	SEC:       "sec",
	CSC:       "csc",
	ARCSIN:    "arcsin",
	ARCCOS:    "arccos",
	ARCTAN:    "arctan",
	ARCCOT:    "arccot",
	SINH:      "sinh",
	COSH:      "cosh",
	TANH:      "tanh",
	COTH:      "coth",
	ARSINH:    "arsinh",
	ARCOSH:    "arcosh",
	ARTANH:    "artanh",
	ARCOTH:    "arcoth",
	LN:        "ln",
	LG:        "lg",
	LB:        "lb",
	LOG:       "log",
	EXP:       "exp",
	SQRT:      "sqrt",
	ROOT:      "root",
	ABS:       "abs",
	SIGN:      "sign",
	FLOOR:     "floor",
	CEIL:      "ceil",
	ROUND:     "round",
	MIN:       "min",
	MAX:       "max",
	DIFF:      "diff",
	TRANSPOSE: "transpose",
	INVERSE:   "inverse",
	DET:       "det",
	IF:        "if",
	WHILE:     "while",
	FOR:       "for",
	TABLE:     "table",
	CALL:      "CALL",
}

func (k Kind) String() string {
	if 0 <= k && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsLiteral reports whether k starts an operand on its own.
func (k Kind) IsLiteral() bool { return literal_beg < k && k < literal_end }

// IsOperator reports whether k is a prefix, infix or postfix operator.
func (k Kind) IsOperator() bool { return operator_beg < k && k < operator_end }

// IsFunction reports whether k is applied to a parenthesized argument list.
func (k Kind) IsFunction() bool { return function_beg < k && k < function_end }

// Token is one lexical unit of a formula.
type Token struct {
	Kind  Kind
	Value float64 // NUMBER
	Unit  string  // NUMBER, empty when unitless
	Name  string  // IDENT and CALL
	Pos   int     // rune offset in the normalized input

	// Implicit marks a MUL injected between juxtaposed operands.
	Implicit bool
}

func (t Token) String() string {
	switch t.Kind {
	case NUMBER:
		if t.Unit != "" {
			return fmt.Sprintf("NUMBER(%g_%s)", t.Value, t.Unit)
		}
		return fmt.Sprintf("NUMBER(%g)", t.Value)
	case IDENT:
		return fmt.Sprintf("IDENT(%s)", t.Name)
	case CALL:
		return fmt.Sprintf("CALL(%s)", t.Name)
	case MUL:
		if t.Implicit {
			return "*(implicit)"
		}
	}
	return t.Kind.String()
}
