package lang

import "testing"

func collect(t *testing.T, src string) []Token {
	t.Helper()
	l := NewLexer("test", src)
	var toks []Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Type == EOF || tok.Type == INVALID {
			return toks
		}
	}
}

func TestLexModuleHeader(t *testing.T) {
	toks := collect(t, "MODULE Main;\n")

	want := []struct {
		typ  Type
		text string
	}{
		{IDENT, "MODULE"},
		{IDENT, "Main"},
		{SEMI, ";"},
		{NEWLINE, "\n"},
		{EOF, ""},
	}
	if len(toks) != len(want) {
		t.Fatalf("Expected %d tokens, got %d: %v", len(want), len(toks), toks)
	}
	for i, w := range want {
		if toks[i].Type != w.typ || toks[i].Text != w.text {
			t.Errorf("Token %d: expected %s %q, got %s %q", i, w.typ, w.text, toks[i].Type, toks[i].Text)
		}
	}
}

func TestLexLocations(t *testing.T) {
	toks := collect(t, "MODULE Main;")

	if toks[0].Loc.Line != 1 || toks[0].Loc.Col != 1 {
		t.Errorf("Expected MODULE at 1:1, got %d:%d", toks[0].Loc.Line, toks[0].Loc.Col)
	}
	if toks[1].Loc.Line != 1 || toks[1].Loc.Col != 8 {
		t.Errorf("Expected Main at 1:8, got %d:%d", toks[1].Loc.Line, toks[1].Loc.Col)
	}
}

func TestLexAssignVsColon(t *testing.T) {
	toks := collect(t, "x := 1; y : Int")

	var types []Type
	for _, tok := range toks {
		types = append(types, tok.Type)
	}
	want := []Type{IDENT, ASSIGN, NUMBER, SEMI, IDENT, COLON, IDENT, EOF}
	if len(types) != len(want) {
		t.Fatalf("Expected %d tokens, got %v", len(want), types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("Token %d: expected %s, got %s", i, want[i], types[i])
		}
	}
}

func TestLexComments(t *testing.T) {
	toks := collect(t, "(* block *) x // line\ny")

	if toks[0].Type != IDENT || toks[0].Text != "x" {
		t.Fatalf("Expected x after block comment, got %s %q", toks[0].Type, toks[0].Text)
	}
	if toks[1].Type != NEWLINE {
		t.Errorf("Expected newline after line comment, got %s", toks[1].Type)
	}
	if toks[2].Type != IDENT || toks[2].Text != "y" {
		t.Errorf("Expected y, got %s %q", toks[2].Type, toks[2].Text)
	}
}

func TestLexNumbersAndStrings(t *testing.T) {
	toks := collect(t, "1.5 42 'hello'")

	if toks[0].Type != NUMBER || toks[0].Text != "1.5" {
		t.Errorf("Expected number 1.5, got %s %q", toks[0].Type, toks[0].Text)
	}
	if toks[1].Type != NUMBER || toks[1].Text != "42" {
		t.Errorf("Expected number 42, got %s %q", toks[1].Type, toks[1].Text)
	}
	if toks[2].Type != STRING || toks[2].Text != "hello" {
		t.Errorf("Expected string hello, got %s %q", toks[2].Type, toks[2].Text)
	}
}

func TestLexUnterminatedString(t *testing.T) {
	toks := collect(t, "'oops")

	last := toks[len(toks)-1]
	if last.Type != INVALID {
		t.Errorf("Expected invalid token for unterminated string, got %s", last.Type)
	}
}

func TestParseDialect(t *testing.T) {
	tests := []struct {
		in      string
		want    Dialect
		wantErr bool
	}{
		{"official", DialectOfficial, false},
		{"draft", DialectDraft, false},
		{"OFFICIAL", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDialect(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDialect(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDialect(%q): unexpected error %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseDialect(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
