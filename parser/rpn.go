package parser

import (
	"strconv"
	"strings"

	"github.com/gnoswap-labs/formula/internal/types"
	"github.com/gnoswap-labs/formula/lexer"
)

// Item is one element of the RPN sequence. Argc is the argument count of
// functions and bracket groups; a bracket group is carried as an LBRACK token.
type Item struct {
	Token lexer.Token
	Argc  int
}

func (it Item) String() string {
	if it.Token.Kind.IsFunction() || it.Token.Kind == lexer.LBRACK {
		name := it.Token.Kind.String()
		if it.Token.Kind == lexer.CALL {
			name = it.Token.Name
		}
		if it.Token.Kind == lexer.LBRACK {
			name = "[]"
		}
		return name + "/" + strconv.Itoa(it.Argc)
	}
	return it.Token.String()
}

// group is an open parenthesis or bracket on the holding stack.
type group struct {
	open     lexer.Token
	function bool // the group is the argument list of the function below it
	argc     int  // completed arguments
	filled   bool // the current argument has at least one token
}

// ToRPN converts infix tokens to reverse Polish notation with the
// shunting-yard algorithm.
func ToRPN(tokens []lexer.Token) ([]Item, error) {
	var (
		output []Item
		hold   []lexer.Token // operators, functions and group markers
		groups []*group
	)

	fill := func() {
		if len(groups) > 0 {
			groups[len(groups)-1].filled = true
		}
	}
	// flush moves operators to the output down to the nearest group marker.
	flush := func() {
		for len(hold) > 0 {
			top := hold[len(hold)-1]
			if top.Kind == lexer.LPAREN || top.Kind == lexer.LBRACK {
				return
			}
			hold = hold[:len(hold)-1]
			output = append(output, Item{Token: top})
		}
	}

	for i, tok := range tokens {
		switch k := tok.Kind; {
		case k.IsLiteral():
			fill()
			output = append(output, Item{Token: tok})

		case k.IsFunction():
			if i+1 >= len(tokens) || tokens[i+1].Kind != lexer.LPAREN {
				return nil, types.NewParseError(tok.Pos, "%s must be followed by a parenthesized argument list", funcName(tok))
			}
			fill()
			hold = append(hold, tok)

		case k == lexer.LPAREN || k == lexer.LBRACK:
			fill()
			isFunc := k == lexer.LPAREN && i > 0 && tokens[i-1].Kind.IsFunction()
			hold = append(hold, tok)
			groups = append(groups, &group{open: tok, function: isFunc})

		case k == lexer.COMMA:
			if len(groups) == 0 {
				return nil, types.NewParseError(tok.Pos, "comma outside of an argument list")
			}
			g := groups[len(groups)-1]
			if !g.function && g.open.Kind != lexer.LBRACK {
				return nil, types.NewParseError(tok.Pos, "comma inside parentheses that are not an argument list")
			}
			if !g.filled {
				return nil, types.NewParseError(tok.Pos, "empty argument")
			}
			flush()
			g.argc++
			g.filled = false

		case k == lexer.RPAREN || k == lexer.RBRACK:
			want := lexer.LPAREN
			if k == lexer.RBRACK {
				want = lexer.LBRACK
			}
			if len(groups) == 0 || groups[len(groups)-1].open.Kind != want {
				return nil, types.NewParseError(tok.Pos, "unmatched %s", k)
			}
			g := groups[len(groups)-1]
			groups = groups[:len(groups)-1]
			flush()
			hold = hold[:len(hold)-1] // the marker

			argc := g.argc
			switch {
			case g.filled:
				argc++
			case argc > 0:
				return nil, types.NewParseError(tok.Pos, "empty argument")
			case !g.function:
				return nil, types.NewParseError(g.open.Pos, "empty group %s%s", g.open.Kind, k)
			}

			if g.function {
				fn := hold[len(hold)-1]
				hold = hold[:len(hold)-1]
				output = append(output, Item{Token: fn, Argc: argc})
			} else if k == lexer.RBRACK {
				output = append(output, Item{Token: g.open, Argc: argc})
			}

		case k.IsOperator():
			fill()
			cur, ok := operators[k]
			if !ok {
				return nil, types.NewParseError(tok.Pos, "unexpected operator %s", k)
			}
			switch cur.fix {
			case prefix:
				hold = append(hold, tok)
			case postfix:
				output = append(output, Item{Token: tok})
			default:
				for len(hold) > 0 {
					top, isOp := operators[hold[len(hold)-1].Kind]
					if !isOp || !(top.prec > cur.prec || (top.prec == cur.prec && !cur.right)) {
						break
					}
					output = append(output, Item{Token: hold[len(hold)-1]})
					hold = hold[:len(hold)-1]
				}
				hold = append(hold, tok)
			}

		default:
			return nil, types.NewParseError(tok.Pos, "unexpected token %s", tok)
		}
	}

	for len(hold) > 0 {
		top := hold[len(hold)-1]
		hold = hold[:len(hold)-1]
		if top.Kind == lexer.LPAREN || top.Kind == lexer.LBRACK {
			return nil, types.NewParseError(top.Pos, "unbalanced %s", top.Kind)
		}
		output = append(output, Item{Token: top})
	}
	return output, nil
}

func funcName(tok lexer.Token) string {
	if tok.Kind == lexer.CALL {
		return tok.Name
	}
	return tok.Kind.String()
}

// FormatRPN renders items separated by spaces.
func FormatRPN(items []Item) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.String()
	}
	return strings.Join(parts, " ")
}
