package jsontree_test

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/d1ced/jsontree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromGo(t *testing.T) {
	type myType int
	var intPtr = new(int)
	*intPtr = 50

	tests := []struct {
		have interface{}
		want string
	}{{
		nil, "null",
	}, {
		true, "true",
	}, {
		5, "5",
	}, {
		myType(550022), "550022",
	}, {
		int64(math.MaxInt32) + 1, "2147483648.0",
	}, {
		uint64(1) << 40, "1099511627776.0",
	}, {
		5., "5.0",
	}, {
		float32(0.5), "0.5",
	}, {
		"Hello, World!", `"Hello, World!"`,
	}, {
		[...]int{1, 2, 3, 4}, "[1,2,3,4]",
	}, {
		[]interface{}{nil, true, 3, "hi"}, `[null,true,3,"hi"]`,
	}, {
		map[string]interface{}{"bb": false, "aa": []int{}}, `{"aa":[],"bb":false}`,
	}, {
		struct {
			Integer int
			a       string
		}{20, "aa"},
		`{"Integer":20}`,
	}, {
		struct {
			Integer uint `json:"int"`
			a       string
		}{20, "aa"},
		`{"int":20}`,
	}, {
		struct {
			Integer int `json:"-"`
			A       string
		}{20, "aa"},
		`{"A":"aa"}`,
	}, {
		struct {
			Integer int    `json:",omitempty"`
			A       string `json:"omitempty"`
		}{0, "aa"},
		`{"omitempty":"aa"}`,
	}, {
		struct {
			Integer int    `json:",omitempty"`
			A       string `json:"omitempty"`
		}{1, "aa"},
		`{"Integer":1,"omitempty":"aa"}`,
	}, {
		struct {
			Integer int    `json:",omitempty,string"`
			A       string `json:"a-b,"`
		}{1, "aa"},
		`{"Integer":"1","a-b":"aa"}`,
	}, {
		struct {
			Integer int64  `json:",string"`
			A       string `json:"string"`
		}{0, "aa"},
		`{"Integer":"0","string":"aa"}`,
	}, {
		&struct {
			Integer *int `json:"intptr"`
			a       string
		}{intPtr, "aa"},
		`{"intptr":50}`,
	}, {
		&[...]uint64{6}, "[6]",
	}, {
		[]byte("bytes"), `"bytes"`,
	}, {
		jsontree.NewArray(jsontree.NewBool(true)), "[true]",
	}, {
		struct {
			Tree *jsontree.Value `json:"tree"`
		}{}, `{"tree":null}`,
	}}
	for _, test := range tests {
		n, err := jsontree.FromGo(test.have)
		if err != nil {
			t.Error(err)
			continue
		}
		if n.String() != test.want {
			t.Errorf("got %s, want %s", n, test.want)
		}
	}
}

func TestFromGoErr(t *testing.T) {
	for _, have := range []interface{}{
		math.NaN(),
		math.Inf(-1),
		map[int]string{1: "a"},
		make(chan int),
		[]interface{}{1, func() {}},
		struct{ F float64 }{math.Inf(1)},
	} {
		_, err := jsontree.FromGo(have)
		if !errors.Is(err, jsontree.ErrTypeMismatch) {
			t.Errorf("%T: got %v, want type mismatch", have, err)
		}
	}
}

type ring struct{ Next *ring }

func TestFromGoCycle(t *testing.T) {
	r := &ring{}
	r.Next = r
	_, err := jsontree.FromGo(r)
	if !errors.Is(err, jsontree.ErrTypeMismatch) {
		t.Errorf("FromGo: got %v, want type mismatch", err)
	}
	_, err = jsontree.Marshal(r)
	if !errors.Is(err, jsontree.ErrTypeMismatch) {
		t.Errorf("Marshal: got %v, want type mismatch", err)
	}

	// A finite chain within the limit still converts.
	tail := &ring{}
	head := &ring{Next: &ring{Next: tail}}
	if _, err := jsontree.FromGo(head); err != nil {
		t.Errorf("short chain: %v", err)
	}
}

func TestAssign(t *testing.T) {
	tests := []struct {
		have  string
		store interface{}
		want  interface{}
	}{{
		"true", new(bool), true,
	}, {
		"52", new(int), 52,
	}, {
		"52.0", new(int8), int8(52),
	}, {
		"3452.1", new(float64), 3452.1,
	}, {
		"3452.1", new(float32), float32(3452.1),
	}, {
		`"Hello, World!"`, new(string), "Hello, World!",
	}, {
		`"bytes"`, new([]byte), []byte("bytes"),
	}, {
		`[true, "hi"]`, &[]interface{}{}, []interface{}{true, "hi"},
	}, {
		`[52, 420]`, &[]float64{}, []float64{52, 420},
	}, {
		`[52, 420]`, &[]int{}, []int{52, 420},
	}, {
		`[1, 2]`, &[3]int{7, 7, 7}, [3]int{1, 2, 0},
	}, {
		`{"a":52,"b":420}`,
		&map[string]int{},
		map[string]int{"a": 52, "b": 420},
	}, {
		`{"a":52,"b":true}`,
		&struct {
			A int  `json:"a"`
			B bool `json:"b"`
		}{},
		struct {
			A int  `json:"a"`
			B bool `json:"b"`
		}{52, true},
	}, {
		`{"Str":"\"x\"","bool":false,"This":5}`,
		&struct {
			Str  string `json:",string"`
			Bool bool   `json:"bool"`
			This int    `json:"-"`
		}{},
		struct {
			Str  string `json:",string"`
			Bool bool   `json:"bool"`
			This int    `json:"-"`
		}{Str: "x", Bool: false},
	}, {
		`{"a":true,"bool":"12","This":5}`,
		&struct {
			Num  int  `json:"bool,string"`
			Bool bool `json:"a,"`
			This int  `json:",omitempty"`
		}{},
		struct {
			Num  int  `json:"bool,string"`
			Bool bool `json:"a,"`
			This int  `json:",omitempty"`
		}{Num: 12, Bool: true, This: 5},
	}, {
		`{"a":true}`,
		&struct {
			Bool bool `json:"a"`
			Kept int  `json:"kept"`
		}{Kept: 9},
		struct {
			Bool bool `json:"a"`
			Kept int  `json:"kept"`
		}{Bool: true, Kept: 9},
	}, {
		`{"p":null,"n":null}`,
		&struct {
			P *int `json:"p"`
			N int  `json:"n"`
		}{P: new(int), N: 3},
		struct {
			P *int `json:"p"`
			N int  `json:"n"`
		}{N: 3},
	}, {
		`{"p":4}`,
		&struct {
			P *int `json:"p"`
		}{},
		struct {
			P *int `json:"p"`
		}{P: intPtr(4)},
	}}
	for i, test := range tests {
		err := jsontree.Unmarshal([]byte(test.have), test.store)
		if err != nil {
			t.Error(i, err)
			continue
		}
		got := reflect.ValueOf(test.store).Elem().Interface()
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("%d: want %v got %v", i, test.want, got)
		}
	}
}

func TestAssignErr(t *testing.T) {
	tests := []struct {
		have  string
		store interface{}
	}{
		{"3.5", new(int)},
		{"300", new(int8)},
		{"-1", new(uint)},
		{"1e300", new(float32)},
		{`"s"`, new(int)},
		{"1", new(string)},
		{`{"a":1}`, &[]int{}},
		{`[1]`, &map[string]int{}},
		{`{"1":1}`, &map[int]int{}},
		{`{"a":"x"}`, &struct {
			A int `json:"a"`
		}{}},
		{`{"a":5}`, &struct {
			A int `json:"a,string"`
		}{}},
		{`[true]`, new(fmtStringer)},
	}
	for _, test := range tests {
		err := jsontree.Unmarshal([]byte(test.have), test.store)
		if !errors.Is(err, jsontree.ErrTypeMismatch) {
			t.Errorf("%s into %T: got %v, want type mismatch", test.have, test.store, err)
		}
	}

	v := jsontree.NewNull()
	var n int
	assert.Error(t, v.Assign(n))
	assert.Error(t, v.Assign((*int)(nil)))

	err := jsontree.Unmarshal([]byte(`{"a":"[1,"}`), &struct {
		A []int `json:"a,string"`
	}{})
	assert.True(t, errors.Is(err, jsontree.ErrSyntax), "got %v", err)
}

func TestAssignValue(t *testing.T) {
	var holder struct {
		Raw *jsontree.Value `json:"raw"`
	}
	src, err := jsontree.ParseString(`{"raw":{"deep":[1,2]}}`, false)
	require.NoError(t, err)
	require.NoError(t, src.Assign(&holder))
	assert.Equal(t, `{"deep":[1,2]}`, holder.Raw.String())

	holder.Raw.Set("deep", jsontree.NewNull())
	assert.Equal(t, `{"raw":{"deep":[1,2]}}`, src.String())
}

func TestMarshalRoundTrip(t *testing.T) {
	type item struct {
		Name  string            `json:"name"`
		Tags  []string          `json:"tags,omitempty"`
		Size  int64             `json:"size,string"`
		Attrs map[string]string `json:"attrs"`
		Next  *item             `json:"next,omitempty"`
	}
	in := item{
		Name:  "a",
		Tags:  []string{"x", "y"},
		Size:  1 << 20,
		Attrs: map[string]string{"k": "v"},
		Next:  &item{Name: "b", Attrs: map[string]string{}},
	}
	data, err := jsontree.Marshal(in)
	require.NoError(t, err)
	assert.Equal(t,
		`{"name":"a","tags":["x","y"],"size":"1048576","attrs":{"k":"v"},"next":{"name":"b","size":"0","attrs":{}}}`,
		string(data))

	var out item
	require.NoError(t, jsontree.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

type fmtStringer interface {
	String() string
}

func intPtr(i int) *int {
	return &i
}
