package alloc

import "go.uber.org/atomic"

// Counting wraps another allocator and records how it is used. It is safe
// for concurrent use. A Counting allocator equals only itself.
type Counting[T any] struct {
	inner Allocator[T]

	allocations   *atomic.Int64
	deallocations *atomic.Int64
	elements      *atomic.Int64
	failures      *atomic.Int64
}

var _ Allocator[int] = (*Counting[int])(nil)

// NewCounting wraps inner (the default allocator if nil).
func NewCounting[T any](inner Allocator[T]) *Counting[T] {
	return &Counting[T]{
		inner:         OrDefault(inner),
		allocations:   atomic.NewInt64(0),
		deallocations: atomic.NewInt64(0),
		elements:      atomic.NewInt64(0),
		failures:      atomic.NewInt64(0),
	}
}

// Allocations returns the number of successful Allocate calls.
func (c *Counting[T]) Allocations() int64 { return c.allocations.Load() }

// Deallocations returns the number of Deallocate calls.
func (c *Counting[T]) Deallocations() int64 { return c.deallocations.Load() }

// Elements returns the total capacity handed out so far.
func (c *Counting[T]) Elements() int64 { return c.elements.Load() }

// Failures returns the number of Allocate calls that returned an error.
func (c *Counting[T]) Failures() int64 { return c.failures.Load() }

func (c *Counting[T]) Allocate(n int) ([]T, error) {
	buf, err := c.inner.Allocate(n)
	if err != nil {
		c.failures.Inc()

		return nil, err
	}

	c.allocations.Inc()
	c.elements.Add(int64(cap(buf)))

	return buf, nil
}

func (c *Counting[T]) Deallocate(buf []T) {
	c.deallocations.Inc()
	c.inner.Deallocate(buf)
}

func (c *Counting[T]) Equals(other Allocator[T]) bool {
	o, ok := other.(*Counting[T])

	return ok && o == c
}

// SelectOnCopy keeps counting into the same counters.
func (c *Counting[T]) SelectOnCopy() Allocator[T] { //nolint:ireturn
	return c
}

func (c *Counting[T]) PropagateOnMove() bool {
	return c.inner.PropagateOnMove()
}
