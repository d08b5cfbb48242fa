// Package cache provides a bounded, per-owner memoization cache for Go functions and
// methods.
//
// # Memoizer
//
// A [Memoizer] wraps one [Computation] and caches its results keyed by the full
// argument list. Storage is split into partitions by [Owner]:
//
//   - [Unbound]: one partition shared by every call not made on behalf of an
//     instance (free functions).
//   - [BoundTo]: one partition per instance, compared by reference. A method
//     memoized this way keeps an isolated cache for each receiver.
//
// Each partition holds at most [WithMaxSize] entries ([DefaultMaxSize] by default).
// When a partition is full the oldest inserted entry is evicted. Hits do not
// refresh an entry, so eviction is FIFO, not LRU.
//
// With [WithTTL] a partition older than the TTL is emptied as a whole before the
// next lookup. There is no per-entry expiry. [Memoizer.Clear] drops one owner's
// partition and leaves every other owner untouched.
//
//	m, err := cache.New(func(ctx context.Context, owner cache.Owner, args cache.Args, kwargs cache.Kwargs) (string, error) {
//	    return lookup(ctx, args[0].(string))
//	}, cache.WithMaxSize(128), cache.WithTTL(10*time.Minute))
//	ip, err := m.InvokeContext(ctx, cache.Unbound, cache.Args{"eth0"}, nil)
//
// # Signatures
//
// Two calls hit the same entry only if every positional argument has the same
// runtime type and value, in the same order, and the same named arguments are
// given (in any order). The values 1 and "1" are different entries, and so are
// int(1) and int64(1). Values are compared structurally, unexported struct fields
// included, and written as msgpack primitives ([github.com/vmihailenco/msgpack/v5]).
// Map entries are compared regardless of order and whatever the key type. Pointers
// compare by what they point to; a pointer, map or slice that refers back to one of
// its containers compares by address. Funcs and channels compare by identity.
//
// # Typed Adapters
//
// [NewFunc0], [NewFunc1] and [NewFunc2] memoize free functions.
// [NewMethod0], [NewMethod1] and [NewMethod2] memoize functions of a receiver
// pointer with one partition per receiver:
//
//	publicIP, _ := cache.NewMethod0(func(c *Checker) (string, error) {
//	    return c.fetch()
//	}, cache.WithTTL(time.Hour))
//	ip, err := publicIP.Call(checker)
//
// # Errors
//
// Errors returned by the computation reach the caller unchanged and are never
// cached, so the next call with the same arguments computes again. The only
// error created by this package is [ErrConfiguration], returned by constructors
// and [ParseTTL] when the configuration is invalid.
//
// # Concurrency
//
// A Memoizer is safe for concurrent use. Owners are spread over lock stripes
// ([WithShards]) and each partition has its own mutex. The computation runs
// without holding a lock, so two goroutines missing the same signature at the
// same time may both compute. The first result stored wins and both callers
// receive it.
package cache
