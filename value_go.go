package jsontree

import (
	"math"
	"reflect"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

var valuePtrType = reflect.TypeOf((*Value)(nil))

// FromGo reads in a Go value and generates a value tree that can be
// manipulated easily. Struct fields follow the json tag conventions of
// encoding/json: a name, "-", omitempty and string. Map keys must be
// strings; members are ordered by key. Integers that do not fit into 32 bits
// become Reals.
func FromGo(val interface{}) (*Value, error) {
	if val == nil {
		return NewNull(), nil
	}
	return fromGo(reflect.ValueOf(val), 1)
}

// fromGo counts pointer and interface indirections as levels too, so a
// self-referencing value fails instead of recursing forever.
func fromGo(v reflect.Value, depth int) (*Value, error) {
	if depth > MaxDepth {
		return nil, errors.Wrapf(ErrTypeMismatch, "nesting deeper than %d levels", MaxDepth)
	}
	if v.Type() == valuePtrType {
		if v.IsNil() {
			return NewNull(), nil
		}
		return v.Interface().(*Value).Clone(), nil
	}
	switch v.Kind() {
	case reflect.Bool:
		return NewBool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := v.Int()
		if i < math.MinInt32 || i > math.MaxInt32 {
			return NewReal(float64(i)), nil
		}
		return NewInteger(int32(i)), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := v.Uint()
		if u > math.MaxInt32 {
			return NewReal(float64(u)), nil
		}
		return NewInteger(int32(u)), nil
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, errors.Wrapf(ErrTypeMismatch, "unsupported number %v", f)
		}
		return NewReal(f), nil
	case reflect.String:
		return NewString(v.String()), nil
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return NewString(string(v.Bytes())), nil
		}
		fallthrough
	case reflect.Array:
		nn := make([]*Value, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			n, err := fromGo(v.Index(i), depth+1)
			if err != nil {
				return nil, errors.Wrapf(err, "index %d", i)
			}
			nn = append(nn, n)
		}
		return &Value{jsonType: Array, value: nn}, nil
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, errors.Wrapf(ErrTypeMismatch, "map key type %s", v.Type().Key())
		}
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		obj := NewObject()
		for _, key := range keys {
			n, err := fromGo(v.MapIndex(key), depth+1)
			if err != nil {
				return nil, errors.Wrapf(err, "key %q", key.String())
			}
			obj.Set(key.String(), n)
		}
		return obj, nil
	case reflect.Struct:
		obj := NewObject()
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			tag, ok := fieldTag(t.Field(i))
			if !ok {
				continue
			}
			fv := v.Field(i)
			if tag.omitEmpty && isEmptyValue(fv) {
				continue
			}
			n, err := fromGo(fv, depth+1)
			if err != nil {
				return nil, errors.Wrapf(err, "field %s", t.Field(i).Name)
			}
			if tag.asString {
				switch n.Type() {
				case Bool, Integer, Real, String:
					n = NewString(n.String())
				}
			}
			obj.Set(tag.name, n)
		}
		return obj, nil
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return NewNull(), nil
		}
		return fromGo(v.Elem(), depth+1)
	case reflect.Invalid:
		return NewNull(), nil
	default:
		return nil, errors.Wrapf(ErrTypeMismatch, "unsupported type %s", v.Type())
	}
}

// Assign stores the tree held by v into the value ptr points to.
// It is the counterpart of FromGo: struct fields are matched by their json
// tag names, members without a field are ignored and fields without a member
// keep their value. Null leaves scalars untouched and clears pointers,
// slices, maps and interfaces.
func (v *Value) Assign(ptr interface{}) error {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.Errorf("assign target must be a non-nil pointer, got %T", ptr)
	}
	return assign(v, rv.Elem())
}

func assign(n *Value, dst reflect.Value) error {
	if dst.Type() == valuePtrType {
		dst.Set(reflect.ValueOf(n.Clone()))
		return nil
	}
	switch n.Type() {
	case Invalid:
		return errors.Wrapf(ErrTypeMismatch, "cannot assign invalid value to %s", dst.Type())
	case Null:
		switch dst.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface:
			dst.Set(reflect.Zero(dst.Type()))
		}
		return nil
	}
	mismatch := func() error {
		return errors.Wrapf(ErrTypeMismatch, "cannot assign %s to %s", n.Type(), dst.Type())
	}
	switch dst.Kind() {
	case reflect.Interface:
		if dst.NumMethod() != 0 {
			return mismatch()
		}
		dst.Set(reflect.ValueOf(n.Interface()))
		return nil
	case reflect.Ptr:
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return assign(n, dst.Elem())
	case reflect.Bool:
		b, ok := n.Bool()
		if !ok {
			return mismatch()
		}
		dst.SetBool(b)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f, ok := n.Real()
		if !ok || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 || dst.OverflowInt(int64(f)) {
			return mismatch()
		}
		dst.SetInt(int64(f))
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		f, ok := n.Real()
		if !ok || f != math.Trunc(f) || f < 0 || f >= math.MaxUint64 || dst.OverflowUint(uint64(f)) {
			return mismatch()
		}
		dst.SetUint(uint64(f))
		return nil
	case reflect.Float32, reflect.Float64:
		f, ok := n.Real()
		if !ok || dst.OverflowFloat(f) {
			return mismatch()
		}
		dst.SetFloat(f)
		return nil
	case reflect.String:
		s, ok := n.Str()
		if !ok {
			return mismatch()
		}
		dst.SetString(s)
		return nil
	case reflect.Slice:
		if s, ok := n.Str(); ok && dst.Type().Elem().Kind() == reflect.Uint8 {
			dst.SetBytes([]byte(s))
			return nil
		}
		nn, ok := n.Array()
		if !ok {
			return mismatch()
		}
		s := reflect.MakeSlice(dst.Type(), len(nn), len(nn))
		for i, m := range nn {
			if err := assign(m, s.Index(i)); err != nil {
				return errors.Wrapf(err, "index %d", i)
			}
		}
		dst.Set(s)
		return nil
	case reflect.Array:
		nn, ok := n.Array()
		if !ok {
			return mismatch()
		}
		for i := 0; i < dst.Len(); i++ {
			if i >= len(nn) {
				dst.Index(i).Set(reflect.Zero(dst.Type().Elem()))
				continue
			}
			if err := assign(nn[i], dst.Index(i)); err != nil {
				return errors.Wrapf(err, "index %d", i)
			}
		}
		return nil
	case reflect.Map:
		mm, ok := n.Members()
		if !ok || dst.Type().Key().Kind() != reflect.String {
			return mismatch()
		}
		if dst.IsNil() {
			dst.Set(reflect.MakeMapWithSize(dst.Type(), len(mm)))
		}
		for _, m := range mm {
			elem := reflect.New(dst.Type().Elem()).Elem()
			if err := assign(m.Value, elem); err != nil {
				return errors.Wrapf(err, "key %q", m.Key)
			}
			dst.SetMapIndex(reflect.ValueOf(m.Key).Convert(dst.Type().Key()), elem)
		}
		return nil
	case reflect.Struct:
		if n.Type() != Object {
			return mismatch()
		}
		t := dst.Type()
		for i := 0; i < t.NumField(); i++ {
			tag, ok := fieldTag(t.Field(i))
			if !ok {
				continue
			}
			m, ok := n.Get(tag.name)
			if !ok {
				continue
			}
			if tag.asString {
				s, ok := m.Str()
				if !ok {
					return errors.Wrapf(ErrTypeMismatch, "field %s: want quoted value, got %s", t.Field(i).Name, m.Type())
				}
				inner, err := parse([]byte(s), false, true)
				if err != nil {
					return errors.Wrapf(err, "field %s", t.Field(i).Name)
				}
				m = inner
			}
			if err := assign(m, dst.Field(i)); err != nil {
				return errors.Wrapf(err, "field %s", t.Field(i).Name)
			}
		}
		return nil
	default:
		return mismatch()
	}
}

type structTag struct {
	name      string
	omitEmpty bool
	asString  bool
}

// fieldTag reads the json tag of an exported field. It reports false for
// unexported fields and fields tagged "-".
func fieldTag(f reflect.StructField) (structTag, bool) {
	if r, _ := utf8.DecodeRuneInString(f.Name); !unicode.IsUpper(r) {
		return structTag{}, false
	}
	raw := f.Tag.Get("json")
	if raw == "-" {
		return structTag{}, false
	}
	opts := strings.Split(raw, ",")
	tag := structTag{name: opts[0]}
	if tag.name == "" {
		tag.name = f.Name
	}
	for _, o := range opts[1:] {
		switch o {
		case "omitempty":
			tag.omitEmpty = true
		case "string":
			tag.asString = true
		}
	}
	return tag, true
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}
