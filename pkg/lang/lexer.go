package lang

import (
	"fmt"
	"unicode"
)

// Lexer turns one unit's source text into a stream of tokens. Both
// dialects share a single token set, so the lexer is dialect-free;
// the parser decides what the tokens mean.
//
// Comments ("(* ... *)" and "// ...") are consumed silently. Newlines
// are emitted as NEWLINE tokens because the draft dialect terminates
// statements with them; the official-dialect parser skips them.
type Lexer struct {
	sc *scanner
}

// NewLexer creates a lexer over src. The unit name is only used to
// tag token locations.
func NewLexer(unit, src string) *Lexer {
	return &Lexer{sc: newScanner(unit, src)}
}

// Next returns the next token. At the end of input it returns EOF
// tokens forever. Lexical errors are returned as INVALID tokens whose
// Text holds the error message; the lexer never panics.
func (l *Lexer) Next() Token {
	l.skipBlanks()
	loc := l.sc.loc()

	if l.sc.eof() {
		return Token{Type: EOF, Loc: loc}
	}

	c := l.sc.peek()
	switch {
	case c == '\n':
		l.sc.next()
		return Token{Type: NEWLINE, Text: "\n", Loc: loc}
	case isIdentStart(c):
		return l.readIdent(loc)
	case unicode.IsDigit(c):
		return l.readNumber(loc)
	case c == '\'' || c == '"':
		return l.readString(loc)
	}

	l.sc.next()
	switch c {
	case '(':
		return Token{Type: LPAREN, Text: "(", Loc: loc}
	case ')':
		return Token{Type: RPAREN, Text: ")", Loc: loc}
	case ',':
		return Token{Type: COMMA, Text: ",", Loc: loc}
	case ';':
		return Token{Type: SEMI, Text: ";", Loc: loc}
	case ':':
		if l.sc.peek() == '=' {
			l.sc.next()
			return Token{Type: ASSIGN, Text: ":=", Loc: loc}
		}
		return Token{Type: COLON, Text: ":", Loc: loc}
	case '<', '>':
		if l.sc.peek() == '=' || (c == '<' && l.sc.peek() == '>') {
			return Token{Type: OP, Text: string(c) + string(l.sc.next()), Loc: loc}
		}
		return Token{Type: OP, Text: string(c), Loc: loc}
	case '=', '+', '-', '*', '/':
		return Token{Type: OP, Text: string(c), Loc: loc}
	}
	return Token{Type: INVALID, Text: fmt.Sprintf("unexpected character %q", c), Loc: loc}
}

// skipBlanks consumes spaces, tabs, carriage returns, and comments.
// Newlines are left for Next to emit.
func (l *Lexer) skipBlanks() {
	for !l.sc.eof() {
		c := l.sc.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			l.sc.next()
		case c == '(' && l.sc.peek2() == '*':
			l.skipBlockComment()
		case c == '/' && l.sc.peek2() == '/':
			for !l.sc.eof() && l.sc.peek() != '\n' {
				l.sc.next()
			}
		default:
			return
		}
	}
}

func (l *Lexer) skipBlockComment() {
	l.sc.next() // (
	l.sc.next() // *
	for !l.sc.eof() {
		if l.sc.peek() == '*' && l.sc.peek2() == ')' {
			l.sc.next()
			l.sc.next()
			return
		}
		l.sc.next()
	}
	// Unterminated comment: just run to EOF. The parser reports the
	// missing closer through whatever construct was left open.
}

func (l *Lexer) readIdent(loc Location) Token {
	text := make([]rune, 0, 16)
	for !l.sc.eof() && isIdentPart(l.sc.peek()) {
		text = append(text, l.sc.next())
	}
	return Token{Type: IDENT, Text: string(text), Loc: loc}
}

func (l *Lexer) readNumber(loc Location) Token {
	text := make([]rune, 0, 8)
	for !l.sc.eof() && unicode.IsDigit(l.sc.peek()) {
		text = append(text, l.sc.next())
	}
	if l.sc.peek() == '.' && unicode.IsDigit(l.sc.peek2()) {
		text = append(text, l.sc.next())
		for !l.sc.eof() && unicode.IsDigit(l.sc.peek()) {
			text = append(text, l.sc.next())
		}
	}
	return Token{Type: NUMBER, Text: string(text), Loc: loc}
}

func (l *Lexer) readString(loc Location) Token {
	quote := l.sc.next()
	text := make([]rune, 0, 16)
	for !l.sc.eof() {
		c := l.sc.peek()
		if c == '\n' {
			break
		}
		l.sc.next()
		if c == quote {
			return Token{Type: STRING, Text: string(text), Loc: loc}
		}
		text = append(text, c)
	}
	return Token{Type: INVALID, Text: "unterminated string literal", Loc: loc}
}

func isIdentStart(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

func isIdentPart(c rune) bool {
	return c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c)
}
