package forth

import (
	"strconv"
	"strings"
)

// Tokenize splits source text into tokens. It never fails: anything that is
// not whitespace, a comment, a preprocessor line, ':' or ';' ends up in a
// VALUE or WORD token, and malformed input surfaces later as a parse error.
//
// Skipped input:
//   - whitespace: space, tab, carriage return and line feed
//   - line comments: "//" or "\" up to the end of the line
//   - block comments: "/* ... */" and "( ... )", possibly spanning lines
//   - preprocessor lines: "#" up to the end of the line
func Tokenize(src string) []Token {
	lex := lexer{
		src:   src,
		line:  1,
		col:   1,
		start: -1,
	}
	lex.run()
	return lex.tokens
}

type lexer struct {
	src    string
	pos    int
	line   int
	col    int
	tokens []Token

	// pending run of word characters
	start     int
	startLine int
	startCol  int
}

func (lex *lexer) run() {
	for lex.pos < len(lex.src) {
		switch c := lex.src[lex.pos]; {
		case isSpace(c):
			lex.flush()
			lex.advance(1)

		case c == ':':
			lex.flush()
			lex.emit(Colon, ":", lex.line, lex.col)
			lex.advance(1)

		case c == ';':
			lex.flush()
			lex.emit(Semicolon, ";", lex.line, lex.col)
			lex.advance(1)

		case c == '#', c == '\\', lex.at("//"):
			lex.flush()
			lex.skipLine()

		case lex.at("/*"):
			lex.flush()
			lex.advance(2)
			lex.skipPast("*/")

		case c == '(':
			lex.flush()
			lex.advance(1)
			lex.skipPast(")")

		default:
			if lex.start < 0 {
				lex.start = lex.pos
				lex.startLine = lex.line
				lex.startCol = lex.col
			}
			lex.advance(1)
		}
	}
	lex.flush()
}

func (lex *lexer) at(prefix string) bool {
	return strings.HasPrefix(lex.src[lex.pos:], prefix)
}

func (lex *lexer) advance(n int) {
	for ; n > 0 && lex.pos < len(lex.src); n-- {
		if lex.src[lex.pos] == '\n' {
			lex.line++
			lex.col = 1
		} else {
			lex.col++
		}
		lex.pos++
	}
}

// skipLine stops on the line feed so that the line count still sees it.
func (lex *lexer) skipLine() {
	for lex.pos < len(lex.src) && lex.src[lex.pos] != '\n' {
		lex.advance(1)
	}
}

func (lex *lexer) skipPast(end string) {
	for lex.pos < len(lex.src) {
		if lex.at(end) {
			lex.advance(len(end))
			return
		}
		lex.advance(1)
	}
}

func (lex *lexer) emit(kind TokenKind, text string, line, col int) {
	lex.tokens = append(lex.tokens, Token{kind, text, line, col})
}

func (lex *lexer) flush() {
	if lex.start < 0 {
		return
	}
	text := lex.src[lex.start:lex.pos]
	lex.start = -1
	if isNumber(text) {
		lex.emit(Value, text, lex.startLine, lex.startCol)
	} else if value, ok := parseHex(text); ok {
		lex.emit(Value, strconv.FormatUint(value, 10), lex.startLine, lex.startCol)
	} else {
		lex.emit(Word, text, lex.startLine, lex.startCol)
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// isNumber matches an optional sign, decimal digits with at most one '.',
// and an optional exponent of 'e' or 'E', an optional sign, and digits.
func isNumber(s string) bool {
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	digits, dot := 0, false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case isDigit(c):
			digits++
		case c == '.' && !dot:
			dot = true
		case c == 'e' || c == 'E':
			return digits > 0 && isExponent(s[i+1:])
		default:
			return false
		}
	}
	return digits > 0
}

func isExponent(s string) bool {
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// parseHex reads "0x" followed by hex digits; overlong literals keep their
// low 64 bits.
func parseHex(s string) (value uint64, ok bool) {
	if len(s) <= 2 || s[:2] != "0x" {
		return 0, false
	}
	for i := 2; i < len(s); i++ {
		var v byte
		switch c := s[i]; {
		case isDigit(c):
			v = c - '0'
		case 'a' <= c && c <= 'f':
			v = c - 'a' + 10
		case 'A' <= c && c <= 'F':
			v = c - 'A' + 10
		default:
			return 0, false
		}
		value = value<<4 | uint64(v)
	}
	return value, true
}
