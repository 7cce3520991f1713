// Package alloc defines the allocator contract used by the contiguous
// containers in this module, along with a few implementations.
//
// Go memory is garbage collected, so an allocator here does not hand out raw
// memory. It decides where buffers come from, whether a request may be
// satisfied at all (see Limited), and how buffer ownership travels when a
// container is copied, moved or swapped. Those propagation rules mirror the
// usual allocator-aware container conventions:
//
//   - copying a container uses SelectOnCopy() of the source's allocator
//     unless the caller supplies one explicitly;
//   - moving a container transfers the allocator (and with it the buffer)
//     only when PropagateOnMove() is true; otherwise the destination keeps or
//     chooses its own allocator and elements are relocated;
//   - swapping always exchanges buffers together with their allocators, so a
//     buffer is returned to the allocator that produced it. (Allocator-aware
//     containers elsewhere leave swapping unequal, non-propagating
//     allocators undefined; here it is simply an O(1) exchange of both.)
package alloc

import "errors"

// ErrExhausted is returned when an allocator refuses a request because it
// would exceed its capacity budget.
var ErrExhausted = errors.New("allocator exhausted")

// Allocator produces and reclaims element buffers of type T.
type Allocator[T any] interface {
	// Allocate returns an empty slice with capacity of at least n elements.
	// It returns an error wrapping ErrExhausted when the request cannot be met;
	// in that case no state is changed.
	Allocate(n int) ([]T, error)

	// Deallocate returns a buffer obtained from Allocate. The buffer must not
	// be used afterwards.
	Deallocate(buf []T)

	// Equals reports whether buffers allocated by this allocator can be
	// deallocated by other, and vice versa.
	Equals(other Allocator[T]) bool

	// SelectOnCopy returns the allocator a copy of a container should use.
	SelectOnCopy() Allocator[T]

	// PropagateOnMove reports whether the allocator follows its buffer when a
	// container is moved.
	PropagateOnMove() bool
}

// Default returns the allocator containers use when none is supplied.
func Default[T any]() Allocator[T] { //nolint:ireturn
	return Heap[T]{}
}

// OrDefault returns a, or the default allocator if a is nil.
func OrDefault[T any](a Allocator[T]) Allocator[T] { //nolint:ireturn
	if a == nil {
		return Default[T]()
	}

	return a
}
