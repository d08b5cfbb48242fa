package cache

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type point struct {
	X, Y int
}

type opaque struct{ n int }

type tagged struct {
	Name string
	meta map[int]string
}

type node struct {
	Val  int
	Next *node
}

func ring(vals ...int) *node {
	head := &node{Val: vals[0]}
	cur := head
	for _, v := range vals[1:] {
		cur.Next = &node{Val: v}
		cur = cur.Next
	}
	cur.Next = head
	return head
}

func intMap(keys ...int) map[int]string {
	m := make(map[int]string)
	for _, k := range keys {
		m[k] = fmt.Sprint(k)
	}
	return m
}

func TestSignatureOf(t *testing.T) {
	tests := []struct {
		name  string
		a     Args
		ak    Kwargs
		b     Args
		bk    Kwargs
		equal bool
	}{
		{"same ints", Args{1, 2}, nil, Args{1, 2}, nil, true},
		{"int vs string", Args{1}, nil, Args{"1"}, nil, false},
		{"int vs int64", Args{1}, nil, Args{int64(1)}, nil, false},
		{"int vs float", Args{1}, nil, Args{1.0}, nil, false},
		{"positional order", Args{1, 2}, nil, Args{2, 1}, nil, false},
		{"kwarg order", nil, Kwargs{"a": 1, "b": 2}, nil, Kwargs{"b": 2, "a": 1}, true},
		{"kwarg value type", nil, Kwargs{"a": 1}, nil, Kwargs{"a": "1"}, false},
		{"kwarg name", nil, Kwargs{"a": 1}, nil, Kwargs{"b": 1}, false},
		{"arg vs kwarg", Args{1}, nil, nil, Kwargs{"a": 1}, false},
		{"nil vs empty kwargs", Args{1}, nil, Args{1}, Kwargs{}, true},
		{"structs", Args{point{1, 2}}, nil, Args{point{1, 2}}, nil, true},
		{"struct vs pointer", Args{point{1, 2}}, nil, Args{&point{1, 2}}, nil, false},
		{"different structs", Args{point{1, 2}}, nil, Args{point{2, 1}}, nil, false},
		{"maps in any order", Args{map[string]int{"a": 1, "b": 2, "c": 3}}, nil, Args{map[string]int{"c": 3, "b": 2, "a": 1}}, nil, true},
		{"slices", Args{[]string{"a", "b"}}, nil, Args{[]string{"a", "b"}}, nil, true},
		{"slice split", Args{[]string{"ab"}}, nil, Args{[]string{"a", "b"}}, nil, false},
		{"nil arg", Args{nil}, nil, Args{nil}, nil, true},
		{"nil vs empty string", Args{nil}, nil, Args{""}, nil, false},
		{"no args vs one nil", Args{}, nil, Args{nil}, nil, false},
		{"string concat boundary", Args{"ab", "c"}, nil, Args{"a", "bc"}, nil, false},
		{"unexported fields", Args{opaque{1}}, nil, Args{opaque{2}}, nil, false},
		{"same unexported fields", Args{opaque{1}}, nil, Args{opaque{1}}, nil, true},
		{"nested unexported map", Args{tagged{"a", map[int]string{1: "x"}}}, nil, Args{tagged{"a", map[int]string{1: "y"}}}, nil, false},
		{"int keyed maps in any order", Args{intMap(1, 2, 3, 4, 5, 6, 7, 8)}, nil, Args{intMap(8, 7, 6, 5, 4, 3, 2, 1)}, nil, true},
		{"int keyed maps differ", Args{map[int]string{1: "a"}}, nil, Args{map[int]string{1: "b"}}, nil, false},
		{"any keyed maps", Args{map[any]any{1: "a", "1": 2, 2.5: nil}}, nil, Args{map[any]any{2.5: nil, "1": 2, 1: "a"}}, nil, true},
		{"any keyed maps key type", Args{map[any]any{1: "a"}}, nil, Args{map[any]any{"1": "a"}}, nil, false},
		{"nil vs empty map", Args{map[int]int(nil)}, nil, Args{map[int]int{}}, nil, false},
		{"nil vs empty slice", Args{[]int(nil)}, nil, Args{[]int{}}, nil, false},
		{"nested pointers by pointee", Args{&node{Val: 1, Next: &node{Val: 2}}}, nil, Args{&node{Val: 1, Next: &node{Val: 2}}}, nil, true},
		{"nested pointers differ", Args{&node{Val: 1, Next: &node{Val: 2}}}, nil, Args{&node{Val: 1, Next: &node{Val: 3}}}, nil, false},
		{"same instant", Args{time.Unix(100, 0).UTC()}, nil, Args{time.Unix(100, 0).UTC()}, nil, true},
		{"different instant", Args{time.Unix(100, 0).UTC()}, nil, Args{time.Unix(101, 0).UTC()}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := signatureOf(tt.a, tt.ak)
			b := signatureOf(tt.b, tt.bk)
			if tt.equal {
				assert.Equal(t, a, b)
			} else {
				assert.NotEqual(t, a, b)
			}
		})
	}
}

func TestSignatureMapDeterministic(t *testing.T) {
	m := intMap(0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19)
	want := signatureOf(Args{m}, nil)
	for i := 0; i < 20; i++ {
		assert.Equal(t, want, signatureOf(Args{m}, nil))
		assert.Equal(t, want, signatureOf(Args{intMap(19, 18, 17, 16, 15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0)}, nil))
	}
}

func TestSignatureCycles(t *testing.T) {
	n := &node{Val: 1}
	n.Next = n
	assert.Equal(t, signatureOf(Args{n}, nil), signatureOf(Args{n}, nil))

	other := &node{Val: 1}
	other.Next = other
	assert.NotEqual(t, signatureOf(Args{n}, nil), signatureOf(Args{other}, nil))

	r := ring(1, 2, 3)
	assert.Equal(t, signatureOf(Args{r}, nil), signatureOf(Args{r}, nil))

	self := []any{nil}
	self[0] = self
	assert.Equal(t, signatureOf(Args{self}, nil), signatureOf(Args{self}, nil))

	m := map[string]any{}
	m["self"] = m
	assert.Equal(t, signatureOf(nil, Kwargs{"m": m}), signatureOf(nil, Kwargs{"m": m}))
}

func TestSignatureFuncs(t *testing.T) {
	f := strings.ToUpper
	assert.Equal(t, signatureOf(Args{f}, nil), signatureOf(Args{f}, nil))
	assert.NotEqual(t, signatureOf(Args{f}, nil), signatureOf(Args{strings.ToLower}, nil))
}

func TestSignatureUnencodable(t *testing.T) {
	ch := make(chan int)
	other := make(chan int)
	assert.Equal(t, signatureOf(Args{ch}, nil), signatureOf(Args{ch}, nil))
	assert.NotEqual(t, signatureOf(Args{ch}, nil), signatureOf(Args{other}, nil))
}
