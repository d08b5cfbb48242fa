package cache

import (
	"container/list"
	"sync"
	"time"
)

type entry[R any] struct {
	sig    signature
	result R
}

// partition is the cache of one owner. order holds entries oldest first and index maps a
// signature to its element, so lookup, insert and eviction of the oldest entry are O(1).
// Reads never move elements: eviction is by insertion order only.
type partition[R any] struct {
	mutex     sync.Mutex
	order     *list.List
	index     map[signature]*list.Element
	createdAt time.Time
}

func newPartition[R any](now time.Time) *partition[R] {
	return &partition[R]{
		order:     list.New(),
		index:     make(map[signature]*list.Element),
		createdAt: now,
	}
}

// expireLocked empties the partition if it is older than ttl. Caller holds the mutex.
func (p *partition[R]) expireLocked(ttl time.Duration, now time.Time) bool {
	if ttl == NeverExpire || now.Sub(p.createdAt) <= ttl {
		return false
	}
	p.order.Init()
	clear(p.index)
	p.createdAt = now
	return true
}

func (p *partition[R]) getLocked(sig signature) (R, bool) {
	if el, ok := p.index[sig]; ok {
		return el.Value.(*entry[R]).result, true
	}
	var zero R
	return zero, false
}

// putLocked stores result for sig unless an entry already exists, in which case the stored
// result is returned instead. evicted reports whether the oldest entry was dropped to make room.
// Eviction happens here, after a successful computation, so a failing call never costs an entry
// (see "Open question decisions" in DESIGN.md).
func (p *partition[R]) putLocked(sig signature, result R, maxSize int) (stored R, evicted bool) {
	if el, ok := p.index[sig]; ok {
		return el.Value.(*entry[R]).result, false
	}
	for p.order.Len() >= maxSize {
		oldest := p.order.Front()
		p.order.Remove(oldest)
		delete(p.index, oldest.Value.(*entry[R]).sig)
		evicted = true
	}
	p.index[sig] = p.order.PushBack(&entry[R]{sig: sig, result: result})
	return result, evicted
}

func (p *partition[R]) len() int {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.order.Len()
}
