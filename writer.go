package jsontree

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"
)

const (
	prettyIndent     = "   "
	prettyLineEnding = "\r\n"
)

// writer serializes a value tree into buf. Pretty output puts array
// elements on one line ("[ a, b ]") and object members on their own lines.
type writer struct {
	buf    []byte
	pretty bool
}

func (w *writer) value(v *Value, depth int) {
	if v.Type() == Invalid || !v.valid() {
		panic(fmt.Sprintf("jsontree: cannot write %s value with payload %T", v.Type(), v.payload()))
	}
	switch v.jsonType {
	case Null:
		w.buf = append(w.buf, "null"...)
	case Bool:
		w.buf = strconv.AppendBool(w.buf, v.value.(bool))
	case Integer:
		w.buf = strconv.AppendInt(w.buf, int64(v.value.(int32)), 10)
	case Real:
		w.buf = appendReal(w.buf, v.value.(float64))
	case String:
		w.buf = appendQuoted(w.buf, v.value.(string))
	case Array:
		w.array(v.value.([]*Value), depth)
	case Object:
		w.object(v.value.([]Member), depth)
	}
}

func (w *writer) array(nn []*Value, depth int) {
	if len(nn) == 0 {
		w.buf = append(w.buf, "[]"...)
		return
	}
	w.buf = append(w.buf, '[')
	if w.pretty {
		w.buf = append(w.buf, ' ')
	}
	for i, n := range nn {
		if i > 0 {
			w.buf = append(w.buf, ',')
			if w.pretty {
				w.buf = append(w.buf, ' ')
			}
		}
		w.value(n, depth+1)
	}
	if w.pretty {
		w.buf = append(w.buf, ' ')
	}
	w.buf = append(w.buf, ']')
}

func (w *writer) object(mm []Member, depth int) {
	if len(mm) == 0 {
		w.buf = append(w.buf, "{}"...)
		return
	}
	w.buf = append(w.buf, '{')
	for i, m := range mm {
		if i > 0 {
			w.buf = append(w.buf, ',')
		}
		if w.pretty {
			w.buf = append(w.buf, prettyLineEnding...)
			w.indent(depth + 1)
		}
		w.buf = appendQuoted(w.buf, m.Key)
		w.buf = append(w.buf, ':')
		if w.pretty {
			w.buf = append(w.buf, ' ')
		}
		w.value(m.Value, depth+1)
	}
	if w.pretty {
		w.buf = append(w.buf, prettyLineEnding...)
		w.indent(depth)
	}
	w.buf = append(w.buf, '}')
}

func (w *writer) indent(depth int) {
	for i := 0; i < depth; i++ {
		w.buf = append(w.buf, prettyIndent...)
	}
}

// appendReal writes the shortest representation that parses back to f.
// A result that would read as an integer gets ".0" so it stays a Real.
func appendReal(dst []byte, f float64) []byte {
	start := len(dst)
	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	dst = strconv.AppendFloat(dst, f, format, -1, 64)
	if format == 'e' {
		// 1e-07 -> 1e-7
		n := len(dst)
		if n-start >= 4 && dst[n-4] == 'e' && dst[n-3] == '-' && dst[n-2] == '0' {
			dst[n-2] = dst[n-1]
			dst = dst[:n-1]
		}
	}
	if !bytes.ContainsAny(dst[start:], ".eE") {
		dst = append(dst, ".0"...)
	}
	return dst
}

const hexDigits = "0123456789abcdef"

// appendQuoted writes s as a double quoted string literal that is valid in
// both JSON and JavaScript. Non-ASCII text is kept as UTF-8.
func appendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch c {
			case '"':
				dst = append(dst, `\"`...)
			case '\\':
				dst = append(dst, `\\`...)
			case '\b':
				dst = append(dst, `\b`...)
			case '\f':
				dst = append(dst, `\f`...)
			case '\n':
				dst = append(dst, `\n`...)
			case '\r':
				dst = append(dst, `\r`...)
			case '\t':
				dst = append(dst, `\t`...)
			default:
				if c < 0x20 || c == 0x7f {
					dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
				} else {
					dst = append(dst, c)
				}
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			dst = append(dst, `\ufffd`...)
		case r == '\u2028' || r == '\u2029':
			dst = append(dst, '\\', 'u', '2', '0', '2', hexDigits[r&0xf])
		default:
			dst = append(dst, s[i:i+size]...)
		}
		i += size
	}
	return append(dst, '"')
}
