package jsontree

import (
	"io"
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/valyala/bytebufferpool"
)

// Parse reads one UTF-8 encoded JSON document and returns its value tree.
// A leading byte order mark is skipped and comments are ignored. The root
// must be an array or an object, and nothing but whitespace and comments may
// follow it. With allowTrailingComma a single comma may precede a closing
// bracket or brace.
//
// On failure Parse returns a nil Value and a *ParseError.
func Parse(data []byte, allowTrailingComma bool) (*Value, error) {
	return parse(data, allowTrailingComma, false)
}

// ParseString is Parse for text held in a string.
func ParseString(s string, allowTrailingComma bool) (*Value, error) {
	return parse([]byte(s), allowTrailingComma, false)
}

// ParseReader reads r to the end and parses the result.
func ParseReader(r io.Reader, allowTrailingComma bool) (*Value, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read document")
	}
	return Parse(data, allowTrailingComma)
}

// Valid reports whether data is a document Parse accepts without trailing
// commas.
func Valid(data []byte) bool {
	_, err := parse(data, false, false)
	return err == nil
}

// Write serializes v. Pretty output indents object members by three spaces
// per level, uses "\r\n" line endings and ends with a line ending.
// It panics if the tree contains an Invalid value.
func Write(v *Value, prettyPrint bool) string {
	return string(appendDocument(nil, v, prettyPrint))
}

// WriteTo writes the serialization of v to w.
func WriteTo(w io.Writer, v *Value, prettyPrint bool) (int64, error) {
	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)
	bb.B = appendDocument(bb.B[:0], v, prettyPrint)
	return bb.WriteTo(w)
}

func appendDocument(dst []byte, v *Value, prettyPrint bool) []byte {
	w := writer{buf: dst, pretty: prettyPrint}
	w.value(v, 0)
	if prettyPrint {
		w.buf = append(w.buf, prettyLineEnding...)
	}
	return w.buf
}

// Marshal returns the compact JSON encoding of the Go value val.
func Marshal(val interface{}) ([]byte, error) {
	v, err := FromGo(val)
	if err != nil {
		return nil, errors.Wrap(err, "marshal")
	}
	return []byte(Write(v, false)), nil
}

// Unmarshal parses data and stores the result in the value ptr points to.
// Like encoding/json it accepts scalar documents.
func Unmarshal(data []byte, ptr interface{}) error {
	v, err := parse(data, false, true)
	if err != nil {
		return err
	}
	return errors.Wrap(v.Assign(ptr), "unmarshal")
}
