package jsontree

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
)

// MaxDepth is the deepest nesting of values the parser accepts. The root
// value is at depth 1.
const MaxDepth = 100

// parser builds a value tree by recursive descent over the lexer's tokens.
// On any error the partially built tree is dropped and nothing is returned.
type parser struct {
	lex                lexer
	depth              int
	allowTrailingComma bool
}

// parse reads exactly one document from data. Unless anyRoot is set the
// root has to be an array or an object.
func parse(data []byte, allowTrailingComma, anyRoot bool) (*Value, error) {
	p := &parser{
		lex:                lexer{data: widen(data)},
		allowTrailingComma: allowTrailingComma,
	}
	if p.lex.at(0) == byteOrderMark {
		p.lex.pos++
	}
	root, err := p.buildValue(!anyRoot)
	if err != nil {
		return nil, err
	}
	if t := p.lex.next(); t.kind != tokEOF {
		return nil, p.fail(TrailingContentError, t, "unexpected %s after root value", t.kind)
	}
	return root, nil
}

func (p *parser) fail(kind ErrorKind, t token, format string, args ...interface{}) error {
	return newParseError(&p.lex, kind, t, format, args...)
}

// unexpected reports t where the grammar wanted something else.
func (p *parser) unexpected(t token, want string) error {
	switch t.kind {
	case tokInvalid:
		return p.fail(LexicalError, t, "invalid token, expected %s", want)
	case tokEOF:
		return p.fail(StructuralError, t, "unexpected end of input, expected %s", want)
	default:
		return p.fail(StructuralError, t, "unexpected %s, expected %s", t.kind, want)
	}
}

func (p *parser) buildValue(isRoot bool) (*Value, error) {
	p.depth++
	t := p.lex.next()
	if p.depth > MaxDepth {
		return nil, p.fail(DepthLimitError, t, "nesting deeper than %d levels", MaxDepth)
	}
	if isRoot && t.kind.scalar() {
		return nil, p.fail(RootTypeError, t, "root value is a %s", t.kind)
	}
	var (
		v   *Value
		err error
	)
	switch t.kind {
	case tokNull:
		v = NewNull()
		p.lex.advance(t)
	case tokTrue:
		v = NewBool(true)
		p.lex.advance(t)
	case tokFalse:
		v = NewBool(false)
		p.lex.advance(t)
	case tokNumber:
		var ok bool
		if v, ok = p.decodeNumber(t); !ok {
			return nil, p.fail(LexicalError, t, "number out of range")
		}
		p.lex.advance(t)
	case tokString:
		v = NewString(p.decodeString(t))
		p.lex.advance(t)
	case tokArrayBegin:
		p.lex.advance(t)
		if v, err = p.buildArray(); err != nil {
			return nil, err
		}
	case tokObjectBegin:
		p.lex.advance(t)
		if v, err = p.buildObject(); err != nil {
			return nil, err
		}
	default:
		return nil, p.unexpected(t, "value")
	}
	p.depth--
	return v, nil
}

func (p *parser) buildArray() (*Value, error) {
	var nn []*Value
	t := p.lex.next()
	for t.kind != tokArrayEnd {
		elem, err := p.buildValue(false)
		if err != nil {
			return nil, err
		}
		nn = append(nn, elem)
		if t, err = p.delimiter(tokArrayEnd); err != nil {
			return nil, err
		}
	}
	p.lex.advance(t)
	return &Value{jsonType: Array, value: nn}, nil
}

func (p *parser) buildObject() (*Value, error) {
	var (
		mm   []Member
		seen map[string]int
	)
	t := p.lex.next()
	for t.kind != tokObjectEnd {
		if t.kind != tokString {
			return nil, p.fail(StructuralError, t, "expected quoted object key, got %s", t.kind)
		}
		key := p.decodeString(t)
		p.lex.advance(t)
		if t = p.lex.next(); t.kind != tokColon {
			return nil, p.unexpected(t, "':'")
		}
		p.lex.advance(t)
		val, err := p.buildValue(false)
		if err != nil {
			return nil, err
		}
		if seen == nil {
			seen = make(map[string]int)
		}
		if i, ok := seen[key]; ok {
			mm[i].Value = val
		} else {
			seen[key] = len(mm)
			mm = append(mm, Member{Key: key, Value: val})
		}
		if t, err = p.delimiter(tokObjectEnd); err != nil {
			return nil, err
		}
	}
	p.lex.advance(t)
	return &Value{jsonType: Object, value: mm}, nil
}

// delimiter handles what follows an element or member: either the closing
// token, or a comma followed by the next entry. A comma right before the
// closing token is only accepted with allowTrailingComma. The returned token
// is the lookahead for the next loop iteration.
func (p *parser) delimiter(closing tokenKind) (token, error) {
	t := p.lex.next()
	switch t.kind {
	case closing:
		return t, nil
	case tokComma:
		p.lex.advance(t)
		next := p.lex.next()
		if next.kind == closing && !p.allowTrailingComma {
			return next, p.fail(StructuralError, t, "trailing comma before %s", closing)
		}
		return next, nil
	default:
		return t, p.unexpected(t, "',' or "+closing.String())
	}
}

// decodeNumber converts a number token into an Integer when it has no
// fraction or exponent and fits into 32 bits, and into a Real otherwise.
func (p *parser) decodeNumber(t token) (*Value, bool) {
	text := string(p.lex.text(t))
	if !strings.ContainsAny(text, ".eE") {
		if i, err := strconv.ParseInt(text, 10, 32); err == nil {
			return NewInteger(int32(i)), true
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, false
	}
	return NewReal(f), true
}

// decodeString resolves the escapes of a string token the lexer already
// validated, so any failure here is a bug in the lexer.
func (p *parser) decodeString(t token) string {
	text := p.lex.text(t)
	text = text[1 : len(text)-1]
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '\\' {
			b.WriteRune(c)
			continue
		}
		i++
		switch text[i] {
		case '"', '\\', '/':
			b.WriteRune(text[i])
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'x':
			b.WriteRune(decodeHex(text[i+1 : i+3]))
			i += 2
		case 'u':
			r := decodeHex(text[i+1 : i+5])
			i += 4
			// A high surrogate directly followed by an escaped low
			// surrogate is one code point.
			if utf16.IsSurrogate(r) && i+6 < len(text) && text[i+1] == '\\' && text[i+2] == 'u' {
				if pair := utf16.DecodeRune(r, decodeHex(text[i+3:i+7])); pair != unicode.ReplacementChar {
					r = pair
					i += 6
				}
			}
			b.WriteRune(r)
		default:
			panic("invariant violation: unvalidated escape in string token")
		}
	}
	return b.String()
}

func decodeHex(digits []rune) rune {
	var r rune
	for _, d := range digits {
		v, ok := hexValue(d)
		if !ok {
			panic("invariant violation: unvalidated hex escape in string token")
		}
		r = r<<4 | v
	}
	return r
}
