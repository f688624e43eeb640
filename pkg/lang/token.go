package lang

import "fmt"

// Type identifies the lexical class of a token.
type Type uint

const (
	INVALID Type = iota
	EOF
	NEWLINE

	IDENT
	NUMBER
	STRING

	LPAREN
	RPAREN
	COMMA
	SEMI
	COLON
	ASSIGN // ":="
	OP     // arithmetic and comparison operators, including "="

	numTypes
)

func (t Type) String() string {
	names := [numTypes]string{
		INVALID: "invalid",
		EOF:     "EOF",
		NEWLINE: "newline",
		IDENT:   "identifier",
		NUMBER:  "number",
		STRING:  "string",
		LPAREN:  "(",
		RPAREN:  ")",
		COMMA:   ",",
		SEMI:    ";",
		COLON:   ":",
		ASSIGN:  ":=",
		OP:      "operator",
	}
	if t >= numTypes {
		return names[INVALID]
	}
	return names[t]
}

// Location points at a position inside one unit's source text.
// Line and Col start at 1; a zero Line means the position is unknown.
type Location struct {
	Unit string `json:"unit"`
	Line int    `json:"line"`
	Col  int    `json:"col"`
}

func (l Location) String() string {
	if l.Line == 0 {
		return l.Unit
	}
	return fmt.Sprintf("%s:%d:%d", l.Unit, l.Line, l.Col)
}

// Token is one lexical element of a unit source text.
type Token struct {
	Type Type
	Text string
	Loc  Location
}
