package cache

import "context"

// argAs converts a positional argument back to its static type. A nil interface argument
// becomes the zero value of A.
func argAs[A any](v any) A {
	a, _ := v.(A)
	return a
}

// Func0 is a memoized function without arguments. All calls share the Unbound partition.
type Func0[R any] struct {
	m *Memoizer[R]
}

// NewFunc0 memoizes fn.
func NewFunc0[R any](fn func() (R, error), opts ...Option) (*Func0[R], error) {
	if fn == nil {
		return nil, configurationError("computation must not be nil")
	}
	m, err := New(func(_ context.Context, _ Owner, _ Args, _ Kwargs) (R, error) {
		return fn()
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &Func0[R]{m}, nil
}

// Call returns the cached result for the arguments, computing it on a miss.
func (f *Func0[R]) Call() (R, error) { return f.m.Invoke(Unbound, nil, nil) }

// Clear drops every cached result.
func (f *Func0[R]) Clear() { f.m.Clear(Unbound) }

// Memoizer returns the underlying Memoizer.
func (f *Func0[R]) Memoizer() *Memoizer[R] { return f.m }

// Func1 is a memoized function of one argument.
type Func1[A, R any] struct {
	m *Memoizer[R]
}

// NewFunc1 memoizes fn.
func NewFunc1[A, R any](fn func(A) (R, error), opts ...Option) (*Func1[A, R], error) {
	if fn == nil {
		return nil, configurationError("computation must not be nil")
	}
	m, err := New(func(_ context.Context, _ Owner, args Args, _ Kwargs) (R, error) {
		return fn(argAs[A](args[0]))
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &Func1[A, R]{m}, nil
}

// Call returns the cached result for the arguments, computing it on a miss.
func (f *Func1[A, R]) Call(a A) (R, error) { return f.m.Invoke(Unbound, Args{a}, nil) }

// Clear drops every cached result.
func (f *Func1[A, R]) Clear() { f.m.Clear(Unbound) }

// Memoizer returns the underlying Memoizer.
func (f *Func1[A, R]) Memoizer() *Memoizer[R] { return f.m }

// Func2 is a memoized function of two arguments.
type Func2[A, B, R any] struct {
	m *Memoizer[R]
}

// NewFunc2 memoizes fn.
func NewFunc2[A, B, R any](fn func(A, B) (R, error), opts ...Option) (*Func2[A, B, R], error) {
	if fn == nil {
		return nil, configurationError("computation must not be nil")
	}
	m, err := New(func(_ context.Context, _ Owner, args Args, _ Kwargs) (R, error) {
		return fn(argAs[A](args[0]), argAs[B](args[1]))
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &Func2[A, B, R]{m}, nil
}

// Call returns the cached result for the arguments, computing it on a miss.
func (f *Func2[A, B, R]) Call(a A, b B) (R, error) { return f.m.Invoke(Unbound, Args{a, b}, nil) }

// Clear drops every cached result.
func (f *Func2[A, B, R]) Clear() { f.m.Clear(Unbound) }

// Memoizer returns the underlying Memoizer.
func (f *Func2[A, B, R]) Memoizer() *Memoizer[R] { return f.m }

// Method0 is a memoized method without arguments. Every receiver gets its own partition.
type Method0[O, R any] struct {
	m *Memoizer[R]
}

// NewMethod0 memoizes fn per receiver.
func NewMethod0[O, R any](fn func(*O) (R, error), opts ...Option) (*Method0[O, R], error) {
	if fn == nil {
		return nil, configurationError("computation must not be nil")
	}
	m, err := New(func(_ context.Context, owner Owner, _ Args, _ Kwargs) (R, error) {
		return fn(owner.Identity().(*O))
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &Method0[O, R]{m}, nil
}

// Call returns the cached result for o and the arguments, computing it on a miss.
func (f *Method0[O, R]) Call(o *O) (R, error) { return f.m.Invoke(BoundTo(o), nil, nil) }

// Clear drops the cached results of o.
func (f *Method0[O, R]) Clear(o *O) { f.m.Clear(BoundTo(o)) }

// Memoizer returns the underlying Memoizer.
func (f *Method0[O, R]) Memoizer() *Memoizer[R] { return f.m }

// Method1 is a memoized method of one argument.
type Method1[O, A, R any] struct {
	m *Memoizer[R]
}

// NewMethod1 memoizes fn per receiver.
func NewMethod1[O, A, R any](fn func(*O, A) (R, error), opts ...Option) (*Method1[O, A, R], error) {
	if fn == nil {
		return nil, configurationError("computation must not be nil")
	}
	m, err := New(func(_ context.Context, owner Owner, args Args, _ Kwargs) (R, error) {
		return fn(owner.Identity().(*O), argAs[A](args[0]))
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &Method1[O, A, R]{m}, nil
}

// Call returns the cached result for o and the arguments, computing it on a miss.
func (f *Method1[O, A, R]) Call(o *O, a A) (R, error) { return f.m.Invoke(BoundTo(o), Args{a}, nil) }

// Clear drops the cached results of o.
func (f *Method1[O, A, R]) Clear(o *O) { f.m.Clear(BoundTo(o)) }

// Memoizer returns the underlying Memoizer.
func (f *Method1[O, A, R]) Memoizer() *Memoizer[R] { return f.m }

// Method2 is a memoized method of two arguments.
type Method2[O, A, B, R any] struct {
	m *Memoizer[R]
}

// NewMethod2 memoizes fn per receiver.
func NewMethod2[O, A, B, R any](fn func(*O, A, B) (R, error), opts ...Option) (*Method2[O, A, B, R], error) {
	if fn == nil {
		return nil, configurationError("computation must not be nil")
	}
	m, err := New(func(_ context.Context, owner Owner, args Args, _ Kwargs) (R, error) {
		return fn(owner.Identity().(*O), argAs[A](args[0]), argAs[B](args[1]))
	}, opts...)
	if err != nil {
		return nil, err
	}
	return &Method2[O, A, B, R]{m}, nil
}

// Call returns the cached result for o and the arguments, computing it on a miss.
func (f *Method2[O, A, B, R]) Call(o *O, a A, b B) (R, error) {
	return f.m.Invoke(BoundTo(o), Args{a, b}, nil)
}

// Clear drops the cached results of o.
func (f *Method2[O, A, B, R]) Clear(o *O) { f.m.Clear(BoundTo(o)) }

// Memoizer returns the underlying Memoizer.
func (f *Method2[O, A, B, R]) Memoizer() *Memoizer[R] { return f.m }
