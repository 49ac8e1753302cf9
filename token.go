package jsontree

type tokenKind uint8

const (
	tokInvalid tokenKind = iota
	tokObjectBegin
	tokObjectEnd
	tokArrayBegin
	tokArrayEnd
	tokString
	tokNumber
	tokTrue
	tokFalse
	tokNull
	tokComma
	tokColon
	tokEOF
)

// token is a classified range of the lexer buffer. It never owns text.
type token struct {
	kind tokenKind
	pos  int
	n    int
}

func punctToken(c rune, pos int) (token, bool) {
	var k tokenKind
	switch c {
	case '{':
		k = tokObjectBegin
	case '}':
		k = tokObjectEnd
	case '[':
		k = tokArrayBegin
	case ']':
		k = tokArrayEnd
	case ':':
		k = tokColon
	case ',':
		k = tokComma
	default:
		return token{}, false
	}
	return token{kind: k, pos: pos, n: 1}, true
}

// String generates a readable form of a token kind meant for error messages.
func (k tokenKind) String() string {
	switch k {
	case tokInvalid:
		return "invalid token"
	case tokNull:
		return "'null'"
	case tokTrue:
		return "'true'"
	case tokFalse:
		return "'false'"
	case tokNumber:
		return "number"
	case tokString:
		return "string"
	case tokComma:
		return "','"
	case tokColon:
		return "':'"
	case tokArrayBegin:
		return "'['"
	case tokArrayEnd:
		return "']'"
	case tokObjectBegin:
		return "'{'"
	case tokObjectEnd:
		return "'}'"
	case tokEOF:
		return "end of input"
	default:
		return "unknown token"
	}
}

func (k tokenKind) scalar() bool {
	switch k {
	case tokNull, tokTrue, tokFalse, tokNumber, tokString:
		return true
	}
	return false
}
