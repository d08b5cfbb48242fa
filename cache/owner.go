package cache

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// Owner identifies the partition a call belongs to. The zero value is Unbound.
type Owner struct {
	identity any
	addr     uintptr
}

// Unbound is the owner shared by every call that is not made on behalf of an instance.
var Unbound = Owner{}

// BoundTo returns the owner for identity. Owners compare by reference, so identity must be a
// pointer, unsafe pointer or channel. Passing nil or any other kind panics.
func BoundTo(identity any) Owner {
	if identity == nil {
		panic("cache: BoundTo requires a non-nil identity")
	}
	v := reflect.ValueOf(identity)
	switch v.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Chan:
	default:
		panic(fmt.Sprintf("cache: BoundTo requires a reference identity, got %T", identity))
	}
	if v.IsNil() {
		panic("cache: BoundTo requires a non-nil identity")
	}
	return Owner{identity: identity, addr: v.Pointer()}
}

// IsBound returns true if the owner is an instance rather than Unbound.
func (o Owner) IsBound() bool {
	return o.identity != nil
}

// Identity returns the value passed to BoundTo, or nil for Unbound.
func (o Owner) Identity() any {
	return o.identity
}

func (o Owner) String() string {
	if !o.IsBound() {
		return "unbound"
	}
	return fmt.Sprintf("%T@%#x", o.identity, o.addr)
}

// key is the map key for the owner. Interface values holding references compare by address.
func (o Owner) key() any {
	if !o.IsBound() {
		return unboundKey{}
	}
	return o.identity
}

// shard picks a lock stripe. Unbound always uses the first one.
func (o Owner) shard(n int) int {
	if !o.IsBound() || n == 1 {
		return 0
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(o.addr))
	return int(xxhash.Sum64(buf[:]) % uint64(n))
}

type unboundKey struct{}
