package jsontree

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotArrayOrObject is returned (or panicked with) by container operations
// on a Value that is a standalone value.
var ErrNotArrayOrObject = errors.New("not array or object")

// ErrTypeMismatch signals a Value that cannot be stored in or built from a
// given Go type.
var ErrTypeMismatch = errors.New("type mismatch")

// Errors a *ParseError unwraps to.
var (
	ErrSyntax          = errors.New("syntax error")
	ErrDepthLimit      = errors.New("nesting too deep")
	ErrRootType        = errors.New("root value must be an array or object")
	ErrTrailingContent = errors.New("unexpected content after root value")
)

// ErrorKind classifies why a document was rejected.
type ErrorKind uint8

const (
	// LexicalError is a malformed token: bad escape, bad number grammar,
	// unterminated string, unknown literal.
	LexicalError ErrorKind = iota + 1
	// StructuralError is a well-formed token where the grammar requires
	// another one.
	StructuralError
	// DepthLimitError is nesting deeper than MaxDepth.
	DepthLimitError
	// RootTypeError is a document whose root is not an array or object.
	RootTypeError
	// TrailingContentError is content after a complete root value.
	TrailingContentError
)

func (k ErrorKind) String() string {
	switch k {
	case LexicalError:
		return "lexical error"
	case StructuralError:
		return "structural error"
	case DepthLimitError:
		return "depth limit exceeded"
	case RootTypeError:
		return "root type error"
	case TrailingContentError:
		return "trailing content"
	default:
		return fmt.Sprintf("ErrorKind(%d)", uint8(k))
	}
}

// ParseError captures information on errors when parsing.
type ParseError struct {
	Kind ErrorKind
	// Offset counts code points from the start of the input, BOM included.
	Offset int
	// Line and Column are 1-based.
	Line, Column int

	msg  string
	near string
}

func (e *ParseError) Error() string {
	if e.near == "" {
		return fmt.Sprintf("%d:%d: %s: %s", e.Line, e.Column, e.Kind, e.msg)
	}
	return fmt.Sprintf("%d:%d: %s: %s near %q", e.Line, e.Column, e.Kind, e.msg, e.near)
}

// Where returns the line and column where the error in the document occurred.
func (e *ParseError) Where() (line, col int) {
	return e.Line, e.Column
}

func (e *ParseError) Unwrap() error {
	switch e.Kind {
	case DepthLimitError:
		return ErrDepthLimit
	case RootTypeError:
		return ErrRootType
	case TrailingContentError:
		return ErrTrailingContent
	default:
		return ErrSyntax
	}
}

const maxNear = 16

func newParseError(l *lexer, kind ErrorKind, t token, format string, args ...interface{}) *ParseError {
	line, col := l.lineCol(t.pos)
	near := l.text(t)
	if len(near) > maxNear {
		near = near[:maxNear]
	}
	return &ParseError{
		Kind:   kind,
		Offset: t.pos,
		Line:   line,
		Column: col,
		msg:    fmt.Sprintf(format, args...),
		near:   string(near),
	}
}
