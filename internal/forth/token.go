package forth

import "fmt"

// TokenKind classifies a Token.
type TokenKind int

// Token kinds produced by Tokenize.
const (
	Word TokenKind = iota
	Value
	Colon
	Semicolon
)

var tokenKindNames = [...]string{
	Word:      "WORD",
	Value:     "VALUE",
	Colon:     "COLON",
	Semicolon: "SEMICOLON",
}

func (kind TokenKind) String() string {
	if int(kind) < len(tokenKindNames) {
		return tokenKindNames[kind]
	}
	return fmt.Sprintf("TokenKind(%d)", int(kind))
}

// Token is one lexical unit of source text. Line and Column are 1-based and
// locate the first character of Text.
type Token struct {
	Kind   TokenKind
	Text   string
	Line   int
	Column int
}

func (tok Token) String() string {
	return fmt.Sprintf("%v:%v %v %q", tok.Line, tok.Column, tok.Kind, tok.Text)
}
