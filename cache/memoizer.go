package cache

import (
	"context"
	"sync"
	"sync/atomic"
)

// Computation is the function wrapped by a Memoizer. owner is Unbound for free functions and
// the bound instance otherwise. ctx is the context given to InvokeContext; it is not part of
// the cache key.
type Computation[R any] func(ctx context.Context, owner Owner, args Args, kwargs Kwargs) (R, error)

// Stats is a snapshot of the memoizer counters.
type Stats struct {
	Hits       uint64
	Misses     uint64
	Evictions  uint64
	Resets     uint64
	Partitions int
}

type shard[R any] struct {
	mutex      sync.Mutex
	partitions map[any]*partition[R]
}

// Memoizer caches the results of one computation, partitioned by owner.
// It is safe for concurrent use.
type Memoizer[R any] struct {
	fn     Computation[R]
	cfg    config
	shards []*shard[R]

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
	resets    atomic.Uint64
}

// New returns a Memoizer for fn. The error is always an ErrConfiguration.
func New[R any](fn Computation[R], opts ...Option) (*Memoizer[R], error) {
	if fn == nil {
		return nil, configurationError("computation must not be nil")
	}
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	m := &Memoizer[R]{
		fn:     fn,
		cfg:    cfg,
		shards: make([]*shard[R], cfg.shards),
	}
	for i := range m.shards {
		m.shards[i] = &shard[R]{partitions: make(map[any]*partition[R])}
	}
	return m, nil
}

// partition returns the partition for owner, creating it if needed.
func (m *Memoizer[R]) partition(owner Owner) *partition[R] {
	s := m.shards[owner.shard(len(m.shards))]
	key := owner.key()
	s.mutex.Lock()
	defer s.mutex.Unlock()
	p, ok := s.partitions[key]
	if !ok {
		p = newPartition[R](m.cfg.now())
		s.partitions[key] = p
	}
	return p
}

// Invoke is InvokeContext with a background context.
func (m *Memoizer[R]) Invoke(owner Owner, args Args, kwargs Kwargs) (R, error) {
	return m.InvokeContext(context.Background(), owner, args, kwargs)
}

// InvokeContext returns the cached result for args and kwargs in owner's partition, calling the
// computation on a miss. Errors from the computation are returned as is and nothing is stored.
// The computation runs without holding any lock, so concurrent misses for the same signature may
// each compute; the first result stored wins and is what every caller receives.
// ctx is only handed to the computation; a cancelled ctx does not interrupt a hit or the store.
func (m *Memoizer[R]) InvokeContext(ctx context.Context, owner Owner, args Args, kwargs Kwargs) (R, error) {
	sig := signatureOf(args, kwargs)
	p := m.partition(owner)

	p.mutex.Lock()
	if p.expireLocked(m.cfg.ttl, m.cfg.now()) {
		m.resets.Add(1)
		m.debug("partition expired", owner)
	}
	if result, ok := p.getLocked(sig); ok {
		p.mutex.Unlock()
		m.hits.Add(1)
		m.trace("hit", owner)
		return result, nil
	}
	p.mutex.Unlock()

	m.misses.Add(1)
	m.trace("miss", owner)
	result, err := m.fn(ctx, owner, args, kwargs)
	if err != nil {
		var zero R
		return zero, err
	}

	p.mutex.Lock()
	if p.expireLocked(m.cfg.ttl, m.cfg.now()) {
		m.resets.Add(1)
		m.debug("partition expired", owner)
	}
	stored, evicted := p.putLocked(sig, result, m.cfg.maxSize)
	p.mutex.Unlock()
	if evicted {
		m.evictions.Add(1)
		m.debug("evicted oldest entry", owner)
	}
	return stored, nil
}

// Clear drops the partition of owner. It is recreated empty on next use.
func (m *Memoizer[R]) Clear(owner Owner) {
	s := m.shards[owner.shard(len(m.shards))]
	s.mutex.Lock()
	_, ok := s.partitions[owner.key()]
	delete(s.partitions, owner.key())
	s.mutex.Unlock()
	if ok {
		m.resets.Add(1)
		m.debug("partition cleared", owner)
	}
}

// ClearAll drops every partition.
func (m *Memoizer[R]) ClearAll() {
	for _, s := range m.shards {
		s.mutex.Lock()
		n := len(s.partitions)
		clear(s.partitions)
		s.mutex.Unlock()
		m.resets.Add(uint64(n))
	}
}

// Len returns the number of entries held for owner.
func (m *Memoizer[R]) Len(owner Owner) int {
	s := m.shards[owner.shard(len(m.shards))]
	s.mutex.Lock()
	p, ok := s.partitions[owner.key()]
	s.mutex.Unlock()
	if !ok {
		return 0
	}
	return p.len()
}

// Stats returns the current counters.
func (m *Memoizer[R]) Stats() Stats {
	var partitions int
	for _, s := range m.shards {
		s.mutex.Lock()
		partitions += len(s.partitions)
		s.mutex.Unlock()
	}
	return Stats{
		Hits:       m.hits.Load(),
		Misses:     m.misses.Load(),
		Evictions:  m.evictions.Load(),
		Resets:     m.resets.Load(),
		Partitions: partitions,
	}
}

func (m *Memoizer[R]) trace(msg string, owner Owner) {
	if m.cfg.logger != nil {
		m.cfg.logger.Trace("cache %s for %s", msg, owner)
	}
}

func (m *Memoizer[R]) debug(msg string, owner Owner) {
	if m.cfg.logger != nil {
		m.cfg.logger.Debug("cache %s for %s", msg, owner)
	}
}
