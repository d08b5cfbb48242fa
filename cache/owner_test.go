package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundTo(t *testing.T) {
	p := new(int)
	a := BoundTo(p)
	assert.True(t, a.IsBound())
	assert.Same(t, p, a.Identity())
	assert.Equal(t, a.key(), BoundTo(p).key())
	assert.NotEqual(t, a.key(), BoundTo(new(int)).key())
	assert.Contains(t, a.String(), "*int@0x")

	assert.True(t, BoundTo(make(chan struct{})).IsBound())
}

func TestBoundToPanics(t *testing.T) {
	var nilPtr *int
	assert.Panics(t, func() { BoundTo(nil) })
	assert.Panics(t, func() { BoundTo(nilPtr) })
	assert.Panics(t, func() { BoundTo(42) })
	assert.Panics(t, func() { BoundTo("owner") })
	assert.Panics(t, func() { BoundTo(struct{}{}) })
	assert.Panics(t, func() { BoundTo(map[string]int{}) })
}

func TestUnbound(t *testing.T) {
	assert.False(t, Unbound.IsBound())
	assert.Nil(t, Unbound.Identity())
	assert.Equal(t, "unbound", Unbound.String())
	assert.Equal(t, 0, Unbound.shard(DefaultShards))
	assert.Equal(t, Owner{}, Unbound)
}

func TestOwnerShard(t *testing.T) {
	p := new(int)
	o := BoundTo(p)
	s := o.shard(DefaultShards)
	assert.GreaterOrEqual(t, s, 0)
	assert.Less(t, s, DefaultShards)
	assert.Equal(t, s, BoundTo(p).shard(DefaultShards))
	assert.Equal(t, 0, o.shard(1))
}
