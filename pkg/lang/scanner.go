package lang

// scanner is a rune reader over one unit's source text that tracks
// line and column positions.
type scanner struct {
	unit string
	src  []rune
	pos  int
	line int
	col  int
}

func newScanner(unit, src string) *scanner {
	return &scanner{
		unit: unit,
		src:  []rune(src),
		line: 1,
		col:  1,
	}
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

// peek returns the rune at the current position without consuming it.
func (s *scanner) peek() rune {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

// peek2 returns the rune after the current position without consuming it.
func (s *scanner) peek2() rune {
	if s.pos+1 >= len(s.src) {
		return 0
	}
	return s.src[s.pos+1]
}

// next consumes and returns the current rune.
func (s *scanner) next() rune {
	if s.eof() {
		return 0
	}
	c := s.src[s.pos]
	s.pos++
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return c
}

// loc returns the location of the current position.
func (s *scanner) loc() Location {
	return Location{Unit: s.unit, Line: s.line, Col: s.col}
}
