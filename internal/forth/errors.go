package forth

import (
	"errors"
	"strconv"
	"strings"
)

// Compile error kinds; match them with errors.Is.
var (
	ErrBadSyntax        = errors.New("bad syntax")
	ErrMoreTokens       = errors.New("more tokens expected at the end")
	ErrValueExpected    = errors.New("value expected")
	ErrWordExpected     = errors.New("word expected")
	ErrUnknownWord      = errors.New("unknown word")
	ErrExpectedToken    = errors.New("token expected")
	ErrNestedDefinition = errors.New("definition inside a definition is not allowed")
	ErrVariableOverflow = errors.New("no room left for variables")
	ErrUnknownVariable  = errors.New("unknown variable")
)

// Error is a compile time failure. Line and Column are zero when the failure
// has no source position, e.g. when input ran out.
type Error struct {
	Line   int
	Column int
	Kind   error
	Extra  string
}

func (err *Error) Error() string {
	var sb strings.Builder
	if err.Line > 0 {
		sb.WriteString(strconv.Itoa(err.Line))
		sb.WriteByte(':')
		if err.Column > 0 {
			sb.WriteString(strconv.Itoa(err.Column))
			sb.WriteByte(':')
		}
		sb.WriteByte(' ')
	}
	sb.WriteString(err.Kind.Error())
	if err.Extra != "" {
		sb.WriteString(": ")
		sb.WriteString(err.Extra)
	}
	return sb.String()
}

func (err *Error) Unwrap() error { return err.Kind }

func errorAt(tok Token, kind error, extra string) *Error {
	return &Error{tok.Line, tok.Column, kind, extra}
}

// parseHalt carries an *Error out of the recursive descent; Parse recovers it.
type parseHalt struct{ err *Error }

func halt(err *Error) { panic(parseHalt{err}) }
