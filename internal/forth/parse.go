package forth

// Compile tokenizes and parses src; see Parse.
func (in *Interpreter[T, A]) Compile(src string) (*Program[T], error) {
	return in.Parse(Tokenize(src))
}

// Parse compiles tokens into a flat Program in a single pass.
//
// Each WORD resolves, in order, to a registered variable, to a word defined
// earlier by ": name ... ;" (whose body is copied in place), or to a
// primitive. Definitions are added to the interpreter's dictionary and
// contribute no statements themselves.
//
// On failure the returned error is an *Error and no Program is returned. The
// dictionary may then hold definitions from the failed source; callers
// should discard the interpreter rather than reuse it.
func (in *Interpreter[T, A]) Parse(tokens []Token) (prog *Program[T], err error) {
	defer func() {
		if e := recover(); e != nil {
			ph, ok := e.(parseHalt)
			if !ok {
				panic(e)
			}
			prog, err = nil, ph.err
		}
	}()

	p := parser[T, A]{in: in, tokens: tokens}
	prog = &Program[T]{}
	for !p.done() {
		switch tok := p.peek(); tok.Kind {
		case Word:
			prog.Statements = p.word(prog.Statements)
		case Value:
			prog.Statements = append(prog.Statements, p.value())
		case Colon:
			p.definition()
		default:
			halt(errorAt(tok, ErrBadSyntax, tok.Text))
		}
	}
	return prog, nil
}

type parser[T Number, A Arith[T]] struct {
	in     *Interpreter[T, A]
	tokens []Token
	pos    int
}

func (p *parser[T, A]) done() bool  { return p.pos >= len(p.tokens) }
func (p *parser[T, A]) peek() Token { return p.tokens[p.pos] }

func (p *parser[T, A]) take() Token {
	if p.done() {
		err := &Error{Kind: ErrMoreTokens}
		if n := len(p.tokens); n > 0 {
			err.Line, err.Column = p.tokens[n-1].Line, p.tokens[n-1].Column
		}
		halt(err)
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok
}

func (p *parser[T, A]) value() Statement[T] {
	tok := p.take()
	if tok.Kind != Value {
		halt(errorAt(tok, ErrValueExpected, tok.Text))
	}
	v, err := p.in.arith.Parse(tok.Text)
	if err != nil {
		halt(errorAt(tok, ErrValueExpected, tok.Text))
	}
	return ValueOf(v)
}

// word appends the resolution of the next WORD token to stmts.
func (p *parser[T, A]) word(stmts []Statement[T]) []Statement[T] {
	tok := p.take()
	if tok.Kind != Word {
		halt(errorAt(tok, ErrWordExpected, tok.Text))
	}
	if index, ok := p.in.vars.lookup(tok.Text); ok {
		return append(stmts, VariableOf[T](index))
	}
	if body, ok := p.in.dictionary[tok.Text]; ok {
		return append(stmts, body...)
	}
	if prim, ok := LookupPrim(tok.Text); ok {
		return append(stmts, PrimitiveOf[T](prim))
	}
	halt(errorAt(tok, ErrUnknownWord, tok.Text))
	return nil
}

func (p *parser[T, A]) definition() {
	colon := p.take()
	if colon.Kind != Colon {
		halt(errorAt(colon, ErrExpectedToken, ":"))
	}

	name := p.take()
	if name.Kind != Word {
		halt(errorAt(name, ErrWordExpected, name.Text))
	}

	var body []Statement[T]
	for !p.done() && p.peek().Kind != Semicolon {
		switch tok := p.peek(); tok.Kind {
		case Word:
			body = p.word(body)
		case Value:
			body = append(body, p.value())
		case Colon:
			halt(errorAt(tok, ErrNestedDefinition, name.Text))
		default:
			halt(errorAt(tok, ErrBadSyntax, tok.Text))
		}
	}
	if p.done() {
		halt(errorAt(colon, ErrExpectedToken, ";"))
	}
	p.take()

	p.in.dictionary[name.Text] = body
	p.in.logf("define %v @%v:%v -> %v statements", name.Text, name.Line, name.Column, len(body))
}
