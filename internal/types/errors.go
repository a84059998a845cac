package types

import (
	"errors"
	"fmt"
)

// ErrDivideByZero is returned when constant folding meets a literal zero divisor.
var ErrDivideByZero = errors.New("division by zero")

// LexError reports input the tokenizer cannot scan.
type LexError struct {
	Pos int
	Msg string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %d: %s", e.Pos, e.Msg)
}

// ParseError reports a token sequence that does not form a single expression.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	if e.Pos < 0 {
		return "parse error: " + e.Msg
	}
	return fmt.Sprintf("parse error at %d: %s", e.Pos, e.Msg)
}

// NotSupportedError reports a valid tree on which an operation has no meaning.
type NotSupportedError struct {
	Op     string
	Reason string
}

func (e *NotSupportedError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s is not supported", e.Op)
	}
	return fmt.Sprintf("%s is not supported: %s", e.Op, e.Reason)
}

// ArgumentError reports a missing or invalid call-time argument.
type ArgumentError struct {
	Name string
	Msg  string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Name, e.Msg)
}

func NewLexError(pos int, format string, args ...any) error {
	return &LexError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func NewParseError(pos int, format string, args ...any) error {
	return &ParseError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func NewNotSupported(op, format string, args ...any) error {
	return &NotSupportedError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

func NewArgumentError(name, format string, args ...any) error {
	return &ArgumentError{Name: name, Msg: fmt.Sprintf(format, args...)}
}
