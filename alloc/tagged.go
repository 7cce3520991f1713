package alloc

// Tagged is a heap allocator carrying an identity. Two Tagged allocators are
// equal when their IDs match. Propagate controls whether the allocator
// follows its buffer when a container is moved, which makes Tagged useful for
// observing how a container hands allocators around.
type Tagged[T any] struct {
	ID        int64
	Propagate bool
}

var _ Allocator[int] = Tagged[int]{}

func (t Tagged[T]) Allocate(n int) ([]T, error) {
	return Heap[T]{}.Allocate(n)
}

func (t Tagged[T]) Deallocate(buf []T) {
	Heap[T]{}.Deallocate(buf)
}

func (t Tagged[T]) Equals(other Allocator[T]) bool {
	o, ok := other.(Tagged[T])

	return ok && o.ID == t.ID
}

// SelectOnCopy keeps the tag, like copying a stateful allocator.
func (t Tagged[T]) SelectOnCopy() Allocator[T] { //nolint:ireturn
	return t
}

func (t Tagged[T]) PropagateOnMove() bool { return t.Propagate }
