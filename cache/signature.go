package cache

import (
	"bytes"
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Args are the positional arguments of a memoized call.
type Args []any

// Kwargs are the named arguments of a memoized call.
type Kwargs map[string]any

// signature is the cache key for one call. Two calls are cache equivalent iff their
// signatures are equal.
type signature string

// signatureOf encodes every argument as its runtime type name followed by its value, so 1 and
// "1" (or int and int64) never collide. Named arguments are encoded sorted by name.
func signatureOf(args Args, kwargs Kwargs) signature {
	var buf bytes.Buffer
	w := newSigWriter(&buf)
	_ = w.enc.EncodeArrayLen(len(args))
	for _, arg := range args {
		w.dynamic(reflect.ValueOf(arg))
	}
	names := make([]string, 0, len(kwargs))
	for name := range kwargs {
		names = append(names, name)
	}
	sort.Strings(names)
	_ = w.enc.EncodeMapLen(len(names))
	for _, name := range names {
		_ = w.enc.EncodeString(name)
		w.dynamic(reflect.ValueOf(kwargs[name]))
	}
	return signature(buf.String())
}

var timeType = reflect.TypeOf(time.Time{})

// visit is a reference on the path from the argument to the value being encoded.
type visit struct {
	typ reflect.Type
	ptr uintptr
	len int
}

// sigWriter walks a value with reflect and writes it as msgpack primitives. Unexported struct
// fields are included. Map entries are written sorted by the encoding of their key. A pointer,
// map or slice that refers back to one of its containers is written as its address.
type sigWriter struct {
	enc  *msgpack.Encoder
	path map[visit]struct{}
}

func newSigWriter(buf *bytes.Buffer) *sigWriter {
	return &sigWriter{enc: msgpack.NewEncoder(buf), path: make(map[visit]struct{})}
}

// dynamic writes the runtime type of v before v, for values whose static type is an interface.
func (w *sigWriter) dynamic(v reflect.Value) {
	if !v.IsValid() {
		_ = w.enc.EncodeString("<nil>")
		_ = w.enc.EncodeNil()
		return
	}
	_ = w.enc.EncodeString(v.Type().String())
	w.value(v)
}

// enter reports whether ref is not already on the path and adds it. The caller calls leave.
func (w *sigWriter) enter(ref visit) bool {
	if _, ok := w.path[ref]; ok {
		return false
	}
	w.path[ref] = struct{}{}
	return true
}

func (w *sigWriter) leave(ref visit) {
	delete(w.path, ref)
}

func (w *sigWriter) cycle(ptr uintptr) {
	_ = w.enc.EncodeString("cycle")
	_ = w.enc.EncodeUint(uint64(ptr))
}

func (w *sigWriter) value(v reflect.Value) {
	switch v.Kind() {
	case reflect.Invalid:
		_ = w.enc.EncodeNil()
	case reflect.Bool:
		_ = w.enc.EncodeBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		_ = w.enc.EncodeInt(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		_ = w.enc.EncodeUint(v.Uint())
	case reflect.Float32, reflect.Float64:
		_ = w.enc.EncodeFloat64(v.Float())
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		_ = w.enc.EncodeFloat64(real(c))
		_ = w.enc.EncodeFloat64(imag(c))
	case reflect.String:
		_ = w.enc.EncodeString(v.String())
	case reflect.Interface:
		w.dynamic(v.Elem())
	case reflect.Pointer:
		if v.IsNil() {
			_ = w.enc.EncodeNil()
			return
		}
		ref := visit{typ: v.Type(), ptr: v.Pointer()}
		if !w.enter(ref) {
			w.cycle(ref.ptr)
			return
		}
		w.value(v.Elem())
		w.leave(ref)
	case reflect.Array:
		_ = w.enc.EncodeArrayLen(v.Len())
		for i := 0; i < v.Len(); i++ {
			w.value(v.Index(i))
		}
	case reflect.Slice:
		if v.IsNil() {
			_ = w.enc.EncodeNil()
			return
		}
		ref := visit{typ: v.Type(), ptr: v.Pointer(), len: v.Len()}
		if !w.enter(ref) {
			w.cycle(ref.ptr)
			return
		}
		_ = w.enc.EncodeArrayLen(v.Len())
		for i := 0; i < v.Len(); i++ {
			w.value(v.Index(i))
		}
		w.leave(ref)
	case reflect.Map:
		if v.IsNil() {
			_ = w.enc.EncodeNil()
			return
		}
		ref := visit{typ: v.Type(), ptr: v.Pointer()}
		if !w.enter(ref) {
			w.cycle(ref.ptr)
			return
		}
		w.mapEntries(v)
		w.leave(ref)
	case reflect.Struct:
		if v.Type() == timeType && v.CanInterface() {
			t := v.Interface().(time.Time)
			_ = w.enc.EncodeInt(t.UnixNano())
			_ = w.enc.EncodeString(t.Location().String())
			return
		}
		_ = w.enc.EncodeArrayLen(v.NumField())
		for i := 0; i < v.NumField(); i++ {
			w.value(v.Field(i))
		}
	default:
		// funcs, channels and unsafe pointers compare by identity
		if v.IsNil() {
			_ = w.enc.EncodeNil()
			return
		}
		_ = w.enc.EncodeString(fmt.Sprintf("%p", v.UnsafePointer()))
	}
}

// mapEntries writes the entries of v sorted by the bytes of their encoded key.
func (w *sigWriter) mapEntries(v reflect.Value) {
	type pair struct{ key, val []byte }
	pairs := make([]pair, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		pairs = append(pairs, pair{key: w.sub(iter.Key()), val: w.sub(iter.Value())})
	}
	sort.Slice(pairs, func(i, j int) bool { return bytes.Compare(pairs[i].key, pairs[j].key) < 0 })
	_ = w.enc.EncodeMapLen(len(pairs))
	for _, p := range pairs {
		_ = w.enc.EncodeBytes(p.key)
		_ = w.enc.EncodeBytes(p.val)
	}
}

// sub encodes v on its own, sharing the current path so cycles through map entries are found.
func (w *sigWriter) sub(v reflect.Value) []byte {
	var buf bytes.Buffer
	s := &sigWriter{enc: msgpack.NewEncoder(&buf), path: w.path}
	s.value(v)
	return buf.Bytes()
}
