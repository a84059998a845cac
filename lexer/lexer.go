package lexer

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/gnoswap-labs/formula/internal/trie"
	"github.com/gnoswap-labs/formula/internal/types"
	"github.com/gnoswap-labs/formula/internal/units"
)

// glyphs maps the alternative operator glyphs onto their ASCII spelling so
// both forms produce identical tokens.
var glyphs = strings.NewReplacer(
	"−", "-",
	"×", "*",
	"·", "*",
	"÷", "/",
	"≤", "<=",
	"≥", ">=",
	"≠", "!=",
	"→", "->",
	"⇒", "=>",
	"↔", "<->",
	"⇔", "<=>",
	"∧", "&",
	"∨", "|",
	"¬", "~",
	"π", "pi",
	"√", "sqrt",
)

type keyword struct {
	kind Kind
	name string
}

// keywords is the fixed table matched greedily against letter runs.
var keywords = func() *trie.Trie[keyword] {
	t := trie.New[keyword]()
	for k := function_beg + 1; k < function_end; k++ {
		if k == CALL {
			continue
		}
		t.Insert(k.String(), keyword{kind: k})
	}
	for _, k := range []Kind{AND, OR, XOR, NAND, NOR, NOT, MOD, TRUE, FALSE} {
		t.Insert(k.String(), keyword{kind: k})
	}
	t.Insert("asin", keyword{kind: ARCSIN})
	t.Insert("acos", keyword{kind: ARCCOS})
	t.Insert("atan", keyword{kind: ARCTAN})
	t.Insert("pi", keyword{kind: IDENT, name: "pi"})
	for name := range special {
		t.Insert(name, keyword{kind: NUMBER, name: name})
	}
	return t
}()

// special are the number literals spelled as words, matching how
// non-finite values are printed.
var special = map[string]float64{
	"nan": math.NaN(),
	"inf": math.Inf(1),
}

// Keywords lists every reserved word in lexical order.
func Keywords() []string {
	return keywords.Keys()
}

// Normalize lowercases text, applies the glyph mapping and drops all
// whitespace. Token positions refer to the normalized form.
func Normalize(text string) string {
	s := glyphs.Replace(strings.ToLower(text))
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Lexer scans one normalized formula.
type Lexer struct {
	input    []rune
	position int
	tokens   []Token
}

// NewLexer returns a Lexer over the normalized form of text.
func NewLexer(text string) *Lexer {
	return &Lexer{
		input:  []rune(Normalize(text)),
		tokens: make([]Token, 0),
	}
}

// Tokenize is a shorthand for NewLexer(text).Tokenize().
func Tokenize(text string) ([]Token, error) {
	return NewLexer(text).Tokenize()
}

// Tokenize scans the whole input and returns its tokens.
func (l *Lexer) Tokenize() ([]Token, error) {
	for l.position < len(l.input) {
		var err error
		switch c := l.input[l.position]; {
		case isDigit(c) || c == '.':
			err = l.lexNumber()
		case isLetter(c):
			l.lexWord()
		default:
			err = l.lexSymbol()
		}
		if err != nil {
			return nil, err
		}
	}
	return l.tokens, nil
}

func (l *Lexer) peek(offset int) rune {
	if i := l.position + offset; i < len(l.input) {
		return l.input[i]
	}
	return 0
}

func (l *Lexer) last() (Token, bool) {
	if len(l.tokens) == 0 {
		return Token{}, false
	}
	return l.tokens[len(l.tokens)-1], true
}

// signPosition reports whether a sign at the current position is unary.
func (l *Lexer) signPosition() bool {
	prev, ok := l.last()
	if !ok {
		return true
	}
	switch prev.Kind {
	case LPAREN, LBRACK, COMMA, ASSIGN:
		return true
	}
	return false
}

func (l *Lexer) emit(tok Token) {
	if prev, ok := l.last(); ok && juxtaposed(prev, tok) {
		l.tokens = append(l.tokens, Token{Kind: MUL, Pos: tok.Pos, Implicit: true})
	}
	l.tokens = append(l.tokens, tok)
}

// juxtaposed reports whether an implicit multiplication belongs between prev
// and next.
func juxtaposed(prev, next Token) bool {
	endsOperand := false
	switch prev.Kind {
	case NUMBER, IDENT, TRUE, FALSE, RPAREN:
		endsOperand = true
	}
	if !endsOperand {
		return false
	}
	switch {
	case next.Kind == IDENT, next.Kind == TRUE, next.Kind == FALSE, next.Kind.IsFunction():
		return true
	case next.Kind == LPAREN:
		// single-letter names directly before "(" were already turned into calls
		return prev.Kind == NUMBER || prev.Kind == RPAREN || prev.Kind == IDENT
	}
	return false
}

func (l *Lexer) lexNumber() error {
	start := l.position
	for l.position < len(l.input) && isDigit(l.input[l.position]) {
		l.position++
	}
	if l.peek(0) == '.' {
		l.position++
		fracStart := l.position
		for l.position < len(l.input) && isDigit(l.input[l.position]) {
			l.position++
		}
		if l.position == fracStart {
			return types.NewLexError(start, "malformed number %q: no digits after decimal point", string(l.input[start:l.position]))
		}
		if l.peek(0) == '.' {
			return types.NewLexError(l.position, "malformed number %q: second decimal point", string(l.input[start:l.position+1]))
		}
	}

	text := string(l.input[start:l.position])
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return types.NewLexError(start, "malformed number %q", text)
	}

	tok := Token{Kind: NUMBER, Value: value, Pos: start}
	switch l.peek(0) {
	case '°':
		tok.Unit = units.Degree
		l.position++
	case '_':
		u, n, ok := units.Match(l.input, l.position+1)
		if !ok {
			return types.NewLexError(l.position, "unknown unit after %q", text)
		}
		tok.Unit = u.Name
		l.position += 1 + n
	}
	l.emit(tok)
	return nil
}

func (l *Lexer) lexWord() {
	start := l.position
	if kw, n, ok := keywords.LongestPrefix(l.input, start); ok {
		l.position += n
		if kw.kind == NUMBER {
			l.emit(Token{Kind: NUMBER, Value: special[kw.name], Pos: start})
			return
		}
		l.emit(Token{Kind: kw.kind, Name: kw.name, Pos: start})
		return
	}

	name := string(l.input[start])
	l.position++
	if l.peek(0) == '(' {
		l.emit(Token{Kind: CALL, Name: name, Pos: start})
		return
	}
	l.emit(Token{Kind: IDENT, Name: name, Pos: start})
}

func (l *Lexer) lexSymbol() error {
	start := l.position
	c := l.input[start]
	next := l.peek(1)

	// width is the number of runes the operator spans.
	op := func(kind Kind, width int) {
		l.position += width
		l.emit(Token{Kind: kind, Pos: start})
	}

	switch c {
	case '(':
		op(LPAREN, 1)
	case ')':
		op(RPAREN, 1)
	case '[':
		op(LBRACK, 1)
	case ']':
		op(RBRACK, 1)
	case ',':
		op(COMMA, 1)
	case '+':
		if l.signPosition() {
			l.position++ // unary plus is a no-op
			return nil
		}
		op(ADD, 1)
	case '-':
		switch {
		case next == '>':
			op(IMPL, 2)
		case l.signPosition():
			op(NEG, 1)
		default:
			op(SUB, 1)
		}
	case '*':
		if next == '*' {
			op(POW, 2)
		} else {
			op(MUL, 1)
		}
	case '/':
		op(DIV, 1)
	case '%':
		op(MOD, 1)
	case '^':
		op(POW, 1)
	case '!':
		if next == '=' {
			op(NEQ, 2)
		} else {
			op(FACT, 1)
		}
	case '=':
		switch next {
		case '>':
			op(IMPL, 2)
		case '=':
			op(EQ, 2)
		default:
			op(EQ, 1)
		}
	case '<':
		switch next {
		case '-':
			if l.peek(2) != '>' {
				return types.NewLexError(start, "malformed operator %q, expected \"<->\"", "<-")
			}
			op(EQUIV, 3)
		case '=':
			if l.peek(2) == '>' {
				op(EQUIV, 3)
			} else {
				op(LE, 2)
			}
		case '<':
			op(SHL, 2)
		default:
			op(LT, 1)
		}
	case '>':
		switch next {
		case '=':
			op(GE, 2)
		case '>':
			op(SHR, 2)
		default:
			op(GT, 1)
		}
	case ':':
		if next != '=' {
			return types.NewLexError(start, "malformed operator %q, expected \":=\"", ":")
		}
		op(ASSIGN, 2)
	case '&':
		if next == '&' {
			op(AND, 2)
		} else {
			op(AND, 1)
		}
	case '|':
		if next == '|' {
			op(OR, 2)
		} else {
			op(OR, 1)
		}
	case '~':
		op(NOT, 1)
	default:
		return types.NewLexError(start, "unexpected character %q", c)
	}
	return nil
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c rune) bool {
	return 'a' <= c && c <= 'z'
}
