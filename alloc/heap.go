package alloc

// Heap allocates from the Go heap and never fails. All Heap values are
// equal and propagate on every lifecycle event.
type Heap[T any] struct{}

var _ Allocator[int] = Heap[int]{}

func (Heap[T]) Allocate(n int) ([]T, error) {
	return make([]T, 0, max(n, 0)), nil
}

// Deallocate zeroes the buffer so the collector can reclaim anything the
// elements referenced.
func (Heap[T]) Deallocate(buf []T) {
	clear(buf[:cap(buf)])
}

func (Heap[T]) Equals(other Allocator[T]) bool {
	_, ok := other.(Heap[T])

	return ok
}

func (h Heap[T]) SelectOnCopy() Allocator[T] { //nolint:ireturn
	return h
}

func (Heap[T]) PropagateOnMove() bool { return true }
