package parser

import (
	"fmt"
	"strings"

	"github.com/mkorsbak/sattlint/pkg/blueprint"
	"github.com/mkorsbak/sattlint/pkg/lang"
)

// Error is a syntax error with the position it was detected at.
type Error struct {
	Loc lang.Location
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Msg)
}

// Result holds the two outputs of a successful parse: the concrete
// parse tree and the abstract fragment derived from it.
type Result struct {
	Tree     *Node
	Fragment *blueprint.Fragment
}

// Parse parses one unit's source text under the given dialect. The
// caller supplies the text; Parse performs no I/O. Malformed input is
// a normal outcome reported as an *Error value, never a panic. Both
// dialects produce the same Fragment shape.
func Parse(unitName, src string, dialect lang.Dialect) (*Result, error) {
	p := &parser{
		unit:    unitName,
		dialect: dialect,
		lex:     lang.NewLexer(unitName, src),
	}
	p.bump()
	if dialect == lang.DialectDraft {
		return p.parseDraft()
	}
	return p.parseOfficial()
}

type parser struct {
	unit    string
	dialect lang.Dialect
	lex     *lang.Lexer
	cur     lang.Token
}

// bump advances to the next token. The official dialect treats
// newlines as plain whitespace; the draft dialect terminates
// statements with them, so they are kept.
func (p *parser) bump() {
	p.cur = p.lex.Next()
	for p.dialect == lang.DialectOfficial && p.cur.Type == lang.NEWLINE {
		p.cur = p.lex.Next()
	}
}

func (p *parser) failf(format string, args ...any) error {
	if p.cur.Type == lang.INVALID {
		return &Error{Loc: p.cur.Loc, Msg: p.cur.Text}
	}
	return &Error{Loc: p.cur.Loc, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) describe() string {
	switch p.cur.Type {
	case lang.EOF:
		return "end of file"
	case lang.NEWLINE:
		return "end of line"
	case lang.IDENT, lang.NUMBER, lang.OP:
		return fmt.Sprintf("%q", p.cur.Text)
	default:
		return p.cur.Type.String()
	}
}

func (p *parser) expect(t lang.Type) (lang.Token, error) {
	if p.cur.Type != t {
		return lang.Token{}, p.failf("expected %s, found %s", t, p.describe())
	}
	tok := p.cur
	p.bump()
	return tok, nil
}

func (p *parser) at(kw string) bool {
	return p.cur.Type == lang.IDENT && p.cur.Text == kw
}

func (p *parser) keyword(kw string) (lang.Token, error) {
	if !p.at(kw) {
		return lang.Token{}, p.failf("expected %s, found %s", kw, p.describe())
	}
	tok := p.cur
	p.bump()
	return tok, nil
}

// scanExpr consumes expression tokens up to and including the
// dialect's statement terminator, collecting identifier references and
// rebuilding the expression text for dumps and diagnostics.
func (p *parser) scanExpr(node *Node) (string, []blueprint.Ref, error) {
	var parts []string
	var refs []blueprint.Ref
	for {
		switch p.cur.Type {
		case lang.INVALID:
			return "", nil, p.failf("invalid token")
		case lang.SEMI:
			if p.dialect == lang.DialectOfficial {
				p.bump()
				return strings.Join(parts, " "), refs, nil
			}
		case lang.NEWLINE:
			p.bump()
			return strings.Join(parts, " "), refs, nil
		case lang.EOF:
			if p.dialect == lang.DialectOfficial {
				return "", nil, p.failf("expected \";\" before end of file")
			}
			return strings.Join(parts, " "), refs, nil
		}
		if p.cur.Type == lang.IDENT {
			refs = append(refs, blueprint.Ref{Name: p.cur.Text, Loc: p.cur.Loc})
		}
		node.add(tokenKind(p.cur.Type), p.cur.Text, p.cur.Loc)
		parts = append(parts, p.cur.Text)
		p.bump()
	}
}

// parseStmt parses one routine-body statement: a leading identifier
// (assignment target or callee) followed by the rest of the statement.
func (p *parser) parseStmt(parent *Node) ([]blueprint.Ref, error) {
	lead, err := p.expect(lang.IDENT)
	if err != nil {
		return nil, err
	}
	stmt := parent.add("stmt", lead.Text, lead.Loc)
	refs := []blueprint.Ref{{Name: lead.Text, Loc: lead.Loc}}
	_, more, err := p.scanExpr(stmt)
	if err != nil {
		return nil, err
	}
	return append(refs, more...), nil
}

// --- official dialect ---

func (p *parser) parseOfficial() (*Result, error) {
	kw, err := p.keyword("MODULE")
	if err != nil {
		return nil, err
	}
	name, err := p.expect(lang.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lang.SEMI); err != nil {
		return nil, err
	}

	root := &Node{Kind: "unit", Text: name.Text, Loc: kw.Loc}
	frag := &blueprint.Fragment{Name: name.Text, Dialect: lang.DialectOfficial}

	for {
		switch {
		case p.at("USES"):
			if err := p.parseUsesOfficial(root, frag); err != nil {
				return nil, err
			}
		case p.at("VAR"):
			if err := p.parseVarsOfficial(root, frag); err != nil {
				return nil, err
			}
		case p.at("ROUTINE"):
			if err := p.parseRoutineOfficial(root, frag); err != nil {
				return nil, err
			}
		case p.at("END_MODULE"):
			p.bump()
			if p.cur.Type == lang.SEMI {
				p.bump()
			}
			if p.cur.Type != lang.EOF {
				return nil, p.failf("unexpected input after END_MODULE")
			}
			return &Result{Tree: root, Fragment: frag}, nil
		case p.cur.Type == lang.EOF:
			return nil, p.failf("expected END_MODULE before end of file")
		default:
			return nil, p.failf("expected USES, VAR, ROUTINE or END_MODULE, found %s", p.describe())
		}
	}
}

func (p *parser) parseUsesOfficial(root *Node, frag *blueprint.Fragment) error {
	sec := root.add("uses", "", p.cur.Loc)
	p.bump()
	for {
		name, err := p.expect(lang.IDENT)
		if err != nil {
			return err
		}
		sec.add("ident", name.Text, name.Loc)
		frag.Uses = append(frag.Uses, blueprint.Ref{Name: name.Text, Loc: name.Loc})
		if p.cur.Type == lang.COMMA {
			p.bump()
			continue
		}
		break
	}
	_, err := p.expect(lang.SEMI)
	return err
}

func (p *parser) parseVarsOfficial(root *Node, frag *blueprint.Fragment) error {
	sec := root.add("vars", "", p.cur.Loc)
	p.bump()
	for !p.at("END_VAR") {
		if p.cur.Type == lang.EOF {
			return p.failf("expected END_VAR before end of file")
		}
		name, err := p.expect(lang.IDENT)
		if err != nil {
			return err
		}
		if _, err := p.expect(lang.COLON); err != nil {
			return err
		}
		typ, err := p.expect(lang.IDENT)
		if err != nil {
			return err
		}
		decl := sec.add("var", name.Text, name.Loc)
		decl.add("type", typ.Text, typ.Loc)
		v := blueprint.Variable{Name: name.Text, Type: typ.Text, Loc: name.Loc}
		if p.cur.Type == lang.ASSIGN {
			p.bump()
			init, _, err := p.scanExpr(decl)
			if err != nil {
				return err
			}
			v.Init = init
		} else if _, err := p.expect(lang.SEMI); err != nil {
			return err
		}
		frag.Vars = append(frag.Vars, v)
	}
	p.bump()
	return nil
}

func (p *parser) parseRoutineOfficial(root *Node, frag *blueprint.Fragment) error {
	p.bump()
	name, err := p.expect(lang.IDENT)
	if err != nil {
		return err
	}
	sec := root.add("routine", name.Text, name.Loc)
	rt := blueprint.Routine{Name: name.Text, Loc: name.Loc}
	for !p.at("END_ROUTINE") {
		if p.cur.Type == lang.EOF {
			return p.failf("expected END_ROUTINE before end of file")
		}
		refs, err := p.parseStmt(sec)
		if err != nil {
			return err
		}
		rt.Refs = append(rt.Refs, refs...)
	}
	p.bump()
	frag.Routines = append(frag.Routines, rt)
	return nil
}

// --- draft dialect ---

func (p *parser) skipNewlines() {
	for p.cur.Type == lang.NEWLINE {
		p.bump()
	}
}

// endOfLine consumes the newline terminating a draft declaration.
// EOF is accepted so the last line of a file needs no trailing newline.
func (p *parser) endOfLine() error {
	switch p.cur.Type {
	case lang.NEWLINE:
		p.bump()
		return nil
	case lang.EOF:
		return nil
	default:
		return p.failf("expected end of line, found %s", p.describe())
	}
}

func (p *parser) parseDraft() (*Result, error) {
	p.skipNewlines()
	kw, err := p.keyword("module")
	if err != nil {
		return nil, err
	}
	name, err := p.expect(lang.IDENT)
	if err != nil {
		return nil, err
	}
	if err := p.endOfLine(); err != nil {
		return nil, err
	}

	root := &Node{Kind: "unit", Text: name.Text, Loc: kw.Loc}
	frag := &blueprint.Fragment{Name: name.Text, Dialect: lang.DialectDraft}

	for {
		p.skipNewlines()
		switch {
		case p.at("use"):
			sec := root.add("uses", "", p.cur.Loc)
			p.bump()
			lib, err := p.expect(lang.IDENT)
			if err != nil {
				return nil, err
			}
			sec.add("ident", lib.Text, lib.Loc)
			frag.Uses = append(frag.Uses, blueprint.Ref{Name: lib.Text, Loc: lib.Loc})
			if err := p.endOfLine(); err != nil {
				return nil, err
			}
		case p.at("var"):
			if err := p.parseVarDraft(root, frag); err != nil {
				return nil, err
			}
		case p.at("routine"):
			if err := p.parseRoutineDraft(root, frag); err != nil {
				return nil, err
			}
		case p.at("end"):
			p.bump()
			p.skipNewlines()
			if p.cur.Type != lang.EOF {
				return nil, p.failf("unexpected input after end")
			}
			return &Result{Tree: root, Fragment: frag}, nil
		case p.cur.Type == lang.EOF:
			return nil, p.failf("expected end before end of file")
		default:
			return nil, p.failf("expected use, var, routine or end, found %s", p.describe())
		}
	}
}

func (p *parser) parseVarDraft(root *Node, frag *blueprint.Fragment) error {
	sec := root.add("vars", "", p.cur.Loc)
	p.bump()
	name, err := p.expect(lang.IDENT)
	if err != nil {
		return err
	}
	if _, err := p.expect(lang.COLON); err != nil {
		return err
	}
	typ, err := p.expect(lang.IDENT)
	if err != nil {
		return err
	}
	decl := sec.add("var", name.Text, name.Loc)
	decl.add("type", typ.Text, typ.Loc)
	v := blueprint.Variable{Name: name.Text, Type: typ.Text, Loc: name.Loc}
	if p.cur.Type == lang.OP && p.cur.Text == "=" {
		p.bump()
		init, _, err := p.scanExpr(decl)
		if err != nil {
			return err
		}
		v.Init = init
	} else if err := p.endOfLine(); err != nil {
		return err
	}
	frag.Vars = append(frag.Vars, v)
	return nil
}

func (p *parser) parseRoutineDraft(root *Node, frag *blueprint.Fragment) error {
	p.bump()
	name, err := p.expect(lang.IDENT)
	if err != nil {
		return err
	}
	if err := p.endOfLine(); err != nil {
		return err
	}
	sec := root.add("routine", name.Text, name.Loc)
	rt := blueprint.Routine{Name: name.Text, Loc: name.Loc}
	for {
		p.skipNewlines()
		if p.at("end") {
			p.bump()
			break
		}
		if p.cur.Type == lang.EOF {
			return p.failf("expected end before end of file")
		}
		refs, err := p.parseStmt(sec)
		if err != nil {
			return err
		}
		rt.Refs = append(rt.Refs, refs...)
	}
	frag.Routines = append(frag.Routines, rt)
	return nil
}
