package jsontree

import (
	"unicode"
	"unicode/utf8"
)

const byteOrderMark = '\uFEFF'

// lexer hands out tokens from a widened copy of the input on demand.
// next only looks ahead; the parser moves past a token with advance once it
// has used it. A NUL code unit ends scanning like the end of the buffer does.
type lexer struct {
	data []rune
	pos  int
}

// widen decodes UTF-8 into one code unit per code point. Bytes that are not
// valid UTF-8 become NUL so they stop any token running into them.
func widen(data []byte) []rune {
	buf := make([]rune, 0, len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			r = 0
		}
		buf = append(buf, r)
		data = data[size:]
	}
	return buf
}

func (l *lexer) at(i int) rune {
	if i >= len(l.data) {
		return 0
	}
	return l.data[i]
}

func (l *lexer) advance(t token) {
	l.pos = t.pos + t.n
}

func (l *lexer) text(t token) []rune {
	return l.data[t.pos : t.pos+t.n]
}

func (l *lexer) next() token {
	l.skipWhitespaceAndComments()
	start := l.pos
	c := l.at(start)
	if t, ok := punctToken(c, start); ok {
		return t
	}
	switch {
	case c == 'n':
		return l.scanLiteral(start, "null", tokNull)
	case c == 't':
		return l.scanLiteral(start, "true", tokTrue)
	case c == 'f':
		return l.scanLiteral(start, "false", tokFalse)
	case c == '-' || isDigit(c):
		return l.scanNumber(start)
	case c == '"':
		return l.scanString(start)
	case c == 0 && start >= len(l.data):
		return token{kind: tokEOF, pos: start}
	default:
		return l.invalid(start, start+1)
	}
}

func (l *lexer) skipWhitespaceAndComments() {
	for {
		switch l.at(l.pos) {
		case ' ', '\t', '\n', '\r':
			l.pos++
		case '/':
			if !l.skipComment() {
				return
			}
		default:
			return
		}
	}
}

// skipComment consumes a // or /* */ comment at l.pos. An unterminated
// block comment runs to the end of input.
func (l *lexer) skipComment() bool {
	switch l.at(l.pos + 1) {
	case '/':
		l.pos += 2
		for c := l.at(l.pos); c != 0 && c != '\n' && c != '\r'; c = l.at(l.pos) {
			l.pos++
		}
		return true
	case '*':
		l.pos += 2
		for c := l.at(l.pos); c != 0; c = l.at(l.pos) {
			if c == '*' && l.at(l.pos+1) == '/' {
				l.pos += 2
				return true
			}
			l.pos++
		}
		return true
	default:
		return false
	}
}

func (l *lexer) scanLiteral(start int, word string, k tokenKind) token {
	i := start
	for _, c := range word {
		if l.at(i) != c {
			return l.invalid(start, i+1)
		}
		i++
	}
	if isIdentRune(l.at(i)) {
		return l.invalid(start, i+1)
	}
	return token{kind: k, pos: start, n: i - start}
}

// scanNumber matches ['-'] int ['.' digits] [('e'|'E') ['+'|'-'] digits].
func (l *lexer) scanNumber(start int) token {
	i := start
	if l.at(i) == '-' {
		i++
	}
	switch c := l.at(i); {
	case c == '0':
		i++
		if isDigit(l.at(i)) {
			return l.invalid(start, i+1)
		}
	case isDigit(c):
		i = l.skipDigits(i)
	default:
		return l.invalid(start, i+1)
	}
	if l.at(i) == '.' {
		i++
		if !isDigit(l.at(i)) {
			return l.invalid(start, i+1)
		}
		i = l.skipDigits(i)
	}
	if c := l.at(i); c == 'e' || c == 'E' {
		i++
		if c := l.at(i); c == '+' || c == '-' {
			i++
		}
		if !isDigit(l.at(i)) {
			return l.invalid(start, i+1)
		}
		i = l.skipDigits(i)
	}
	return token{kind: tokNumber, pos: start, n: i - start}
}

func (l *lexer) skipDigits(i int) int {
	for isDigit(l.at(i)) {
		i++
	}
	return i
}

// scanString validates escapes up to the closing quote without decoding.
func (l *lexer) scanString(start int) token {
	i := start + 1
	for {
		switch l.at(i) {
		case 0:
			return l.invalid(start, i)
		case '"':
			return token{kind: tokString, pos: start, n: i + 1 - start}
		case '\\':
			i++
			switch l.at(i) {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				i++
			case 'x':
				if !l.hexDigits(i+1, 2) {
					return l.invalid(start, i+1)
				}
				i += 3
			case 'u':
				if !l.hexDigits(i+1, 4) {
					return l.invalid(start, i+1)
				}
				i += 5
			default:
				return l.invalid(start, i+1)
			}
		default:
			i++
		}
	}
}

func (l *lexer) hexDigits(i, n int) bool {
	for j := i; j < i+n; j++ {
		if _, ok := hexValue(l.at(j)); !ok {
			return false
		}
	}
	return true
}

// invalid reports the range [start, end) as an invalid token, clamped to
// the buffer.
func (l *lexer) invalid(start, end int) token {
	if end > len(l.data) {
		end = len(l.data)
	}
	if end < start {
		end = start
	}
	return token{kind: tokInvalid, pos: start, n: end - start}
}

// lineCol converts a buffer offset into a 1-based line and column.
func (l *lexer) lineCol(off int) (line, col int) {
	line, col = 1, 1
	if off > len(l.data) {
		off = len(l.data)
	}
	for _, c := range l.data[:off] {
		if c == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isIdentRune(c rune) bool {
	return c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c)
}

func hexValue(c rune) (rune, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
