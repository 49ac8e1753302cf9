package jsontree

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Type is an enum for the kinds of JSON values a Value can hold.
type Type uint8

// Types to compare values with. The zero value signals invalid.
const (
	Invalid Type = iota
	Null
	Bool
	Integer
	Real
	String
	Array
	Object
)

var typeNames = [...]string{
	Invalid: "invalid",
	Null:    "null",
	Bool:    "bool",
	Integer: "integer",
	Real:    "real",
	String:  "string",
	Array:   "array",
	Object:  "object",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Type(" + strconv.Itoa(int(t)) + ")"
}

// Value is one node of a JSON value tree.
// Depending on its type it holds a different payload:
//     Type	Payload
//     Invalid	nil
//     Null	nil
//     Bool	bool
//     Integer	int32
//     Real	float64
//     String	string
//     Array	[]*Value
//     Object	[]Member
//
// Arrays and objects own their children. A Value must not be inserted into
// more than one container; use Clone for that.
type Value struct {
	jsonType Type
	value    interface{}
}

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value *Value
}

func NewNull() *Value { return &Value{jsonType: Null} }

func NewBool(b bool) *Value { return &Value{jsonType: Bool, value: b} }

func NewInteger(i int32) *Value { return &Value{jsonType: Integer, value: i} }

func NewReal(f float64) *Value { return &Value{jsonType: Real, value: f} }

func NewString(s string) *Value { return &Value{jsonType: String, value: s} }

// NewArray creates an Array holding vv in order.
func NewArray(vv ...*Value) *Value {
	a := &Value{jsonType: Array, value: make([]*Value, 0, len(vv))}
	a.Append(vv...)
	return a
}

// NewObject creates an empty Object.
func NewObject() *Value { return &Value{jsonType: Object, value: []Member(nil)} }

// Type returns the Type of v. A nil Value is Invalid.
func (v *Value) Type() Type {
	if v == nil {
		return Invalid
	}
	return v.jsonType
}

func (v *Value) payload() interface{} {
	if v == nil {
		return nil
	}
	return v.value
}

// Bool returns the boolean held by v and whether v is a Bool.
func (v *Value) Bool() (bool, bool) {
	b, ok := v.payload().(bool)
	return b, ok
}

// Integer returns the integer held by v and whether v is an Integer.
func (v *Value) Integer() (int32, bool) {
	i, ok := v.payload().(int32)
	return i, ok
}

// Real returns the number held by v. Integers are widened to float64.
func (v *Value) Real() (float64, bool) {
	switch x := v.payload().(type) {
	case float64:
		return x, true
	case int32:
		return float64(x), true
	default:
		return 0, false
	}
}

// Str returns the string held by v and whether v is a String.
func (v *Value) Str() (string, bool) {
	s, ok := v.payload().(string)
	return s, ok
}

// Array returns the elements of an Array. The slice is owned by v.
func (v *Value) Array() ([]*Value, bool) {
	if v.Type() != Array {
		return nil, false
	}
	return v.value.([]*Value), true
}

// Members returns the members of an Object in insertion order. The slice is
// owned by v.
func (v *Value) Members() ([]Member, bool) {
	if v.Type() != Object {
		return nil, false
	}
	return v.value.([]Member), true
}

// Append adds vv to the end of the Array v. A nil element is stored as Null.
// It panics if v is not an Array.
func (v *Value) Append(vv ...*Value) {
	if v.Type() != Array {
		panic(errors.Wrapf(ErrNotArrayOrObject, "append to %s", v.Type()))
	}
	nn := v.value.([]*Value)
	for _, n := range vv {
		if n == nil {
			n = NewNull()
		}
		nn = append(nn, n)
	}
	v.value = nn
}

// Index returns the i-th element of an Array.
func (v *Value) Index(i int) (*Value, bool) {
	nn, ok := v.Array()
	if !ok || i < 0 || i >= len(nn) {
		return nil, false
	}
	return nn[i], true
}

// Set adds or replaces the member key of the Object v. A replaced member
// keeps its position. It panics if v is not an Object.
func (v *Value) Set(key string, val *Value) {
	if v.Type() != Object {
		panic(errors.Wrapf(ErrNotArrayOrObject, "set %q on %s", key, v.Type()))
	}
	if val == nil {
		val = NewNull()
	}
	mm := v.value.([]Member)
	for i := range mm {
		if mm[i].Key == key {
			mm[i].Value = val
			return
		}
	}
	v.value = append(mm, Member{Key: key, Value: val})
}

// Get returns the member key of an Object.
func (v *Value) Get(key string) (*Value, bool) {
	mm, ok := v.Members()
	if !ok {
		return nil, false
	}
	for _, m := range mm {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Keys returns the keys of an Object in insertion order and nil for any
// other type.
func (v *Value) Keys() []string {
	mm, ok := v.Members()
	if !ok {
		return nil
	}
	ss := make([]string, len(mm))
	for i, m := range mm {
		ss[i] = m.Key
	}
	return ss
}

// Remove deletes the member key of an Object and reports whether it existed.
func (v *Value) Remove(key string) bool {
	mm, ok := v.Members()
	if !ok {
		return false
	}
	for i, m := range mm {
		if m.Key == key {
			v.value = append(mm[:i], mm[i+1:]...)
			return true
		}
	}
	return false
}

// Lookup returns the value at a dot separated path. Array elements are
// addressed by their decimal index, e.g. "servlet.1.init-param".
// The empty path returns v itself.
func (v *Value) Lookup(path string) (*Value, bool) {
	if path == "" {
		return v, v != nil
	}
	cur := v
	for _, key := range strings.Split(path, ".") {
		var ok bool
		switch cur.Type() {
		case Object:
			cur, ok = cur.Get(key)
		case Array:
			i, err := strconv.Atoi(key)
			if err != nil {
				return nil, false
			}
			cur, ok = cur.Index(i)
		}
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Len gives the length of an array or the number of members in an object.
func (v *Value) Len() int {
	switch v.Type() {
	case Array:
		return len(v.value.([]*Value))
	case Object:
		return len(v.value.([]Member))
	case Invalid:
		return 0
	default:
		return 1
	}
}

// Total returns the number of values in the tree rooted at v.
func (v *Value) Total() int {
	switch v.Type() {
	case Array:
		i := 1
		for _, n := range v.value.([]*Value) {
			i += n.Total()
		}
		return i
	case Object:
		i := 1
		for _, m := range v.value.([]Member) {
			i += m.Value.Total()
		}
		return i
	default:
		return v.Len()
	}
}

// Equal compares v and w and all their children. Object member order is
// not significant.
func (v *Value) Equal(w *Value) bool {
	if v == w {
		return true
	}
	if v.Type() != w.Type() {
		return false
	}
	switch v.jsonType {
	case Array:
		an, bn := v.value.([]*Value), w.value.([]*Value)
		if len(an) != len(bn) {
			return false
		}
		for i := range an {
			if !an[i].Equal(bn[i]) {
				return false
			}
		}
		return true
	case Object:
		am, bm := v.value.([]Member), w.value.([]Member)
		if len(am) != len(bm) {
			return false
		}
		for _, m := range am {
			n, ok := w.Get(m.Key)
			if !ok || !m.Value.Equal(n) {
				return false
			}
		}
		return true
	default:
		return v.value == w.value
	}
}

// Clone returns a deep copy of v.
func (v *Value) Clone() *Value {
	switch v.Type() {
	case Invalid:
		return &Value{}
	case Array:
		nn := v.value.([]*Value)
		cc := make([]*Value, len(nn))
		for i, n := range nn {
			cc[i] = n.Clone()
		}
		return &Value{jsonType: Array, value: cc}
	case Object:
		mm := v.value.([]Member)
		cc := make([]Member, len(mm))
		for i, m := range mm {
			cc[i] = Member{Key: m.Key, Value: m.Value.Clone()}
		}
		return &Value{jsonType: Object, value: cc}
	default:
		return &Value{jsonType: v.jsonType, value: v.value}
	}
}

// Interface creates the Go representation of v. The possible underlying
// types are:
//     Object    map[string]interface{}
//     Array     []interface{}
//     String    string
//     Real      float64
//     Integer   int32
//     Bool      bool
//     Null      nil
func (v *Value) Interface() interface{} {
	switch v.Type() {
	case Array:
		nn := v.value.([]*Value)
		s := make([]interface{}, len(nn))
		for i, n := range nn {
			s[i] = n.Interface()
		}
		return s
	case Object:
		mm := v.value.([]Member)
		m := make(map[string]interface{}, len(mm))
		for _, f := range mm {
			m[f.Key] = f.Value.Interface()
		}
		return m
	default:
		return v.payload()
	}
}

// SortKeys orders the members of every Object in the tree by key.
func (v *Value) SortKeys() {
	switch v.Type() {
	case Array:
		for _, n := range v.value.([]*Value) {
			n.SortKeys()
		}
	case Object:
		mm := v.value.([]Member)
		sort.SliceStable(mm, func(i, j int) bool { return mm[i].Key < mm[j].Key })
		for _, m := range mm {
			m.Value.SortKeys()
		}
	}
}

// valid reports whether the payload of v matches its type.
func (v *Value) valid() bool {
	switch v.value.(type) {
	case nil:
		return v.jsonType == Null
	case bool:
		return v.jsonType == Bool
	case int32:
		return v.jsonType == Integer
	case float64:
		return v.jsonType == Real
	case string:
		return v.jsonType == String
	case []*Value:
		return v.jsonType == Array
	case []Member:
		return v.jsonType == Object
	default:
		return false
	}
}

// String formats v as JSON with no whitespace.
func (v *Value) String() string {
	if v.Type() == Invalid {
		return "<invalid>"
	}
	return Write(v, false)
}

// MarshalJSON implements the json.Marshaler interface for Value.
func (v *Value) MarshalJSON() (data []byte, err error) {
	if v == nil {
		return []byte("null"), nil
	}
	defer func() {
		if e := recover(); e != nil {
			data, err = nil, errors.Errorf("marshal: %v", e)
		}
	}()
	w := writer{}
	w.value(v, 0)
	return w.buf, nil
}

// UnmarshalJSON implements the json.Unmarshaler interface for Value.
// Unlike Parse it accepts any JSON value as the document root, since
// encoding/json hands nested scalars to it as well.
func (v *Value) UnmarshalJSON(data []byte) error {
	m, err := parse(data, false, true)
	if err != nil {
		return err
	}
	*v = *m
	return nil
}
