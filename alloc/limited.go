package alloc

import (
	"fmt"

	"go.uber.org/atomic"
)

// Budget is a capacity limit, counted in elements, that can be shared by
// any number of Limited allocators (and therefore containers). It is safe
// for concurrent use.
type Budget struct {
	limit int64
	used  *atomic.Int64
}

// NewBudget creates a budget that admits at most limit elements of
// outstanding capacity.
func NewBudget(limit int64) *Budget {
	return &Budget{
		limit: limit,
		used:  atomic.NewInt64(0),
	}
}

// Limit returns the total number of elements the budget admits.
func (b *Budget) Limit() int64 {
	return b.limit
}

// Used returns the capacity currently handed out.
func (b *Budget) Used() int64 {
	return b.used.Load()
}

// Remaining returns how much capacity can still be allocated.
func (b *Budget) Remaining() int64 {
	return b.limit - b.used.Load()
}

// take reserves n elements, or reports false without changing anything.
func (b *Budget) take(n int64) bool {
	for {
		cur := b.used.Load()
		if cur+n > b.limit {
			return false
		}

		if b.used.CompareAndSwap(cur, cur+n) {
			return true
		}
	}
}

func (b *Budget) give(n int64) {
	b.used.Sub(n)
}

// Limited allocates from the heap but charges every buffer's capacity to a
// Budget and fails with ErrExhausted once the budget is spent. Limited
// allocators sharing a Budget are equal. Copies of a container keep drawing
// from the same budget.
type Limited[T any] struct {
	budget *Budget
}

var _ Allocator[int] = Limited[int]{}

// NewLimited returns an allocator charging b.
func NewLimited[T any](b *Budget) Limited[T] {
	return Limited[T]{budget: b}
}

// Budget returns the budget this allocator charges.
func (l Limited[T]) Budget() *Budget {
	return l.budget
}

func (l Limited[T]) Allocate(n int) ([]T, error) {
	n = max(n, 0)

	if !l.budget.take(int64(n)) {
		return nil, fmt.Errorf("%w: requested %d elements, %d of %d in use",
			ErrExhausted, n, l.budget.Used(), l.budget.Limit())
	}

	return make([]T, 0, n), nil
}

func (l Limited[T]) Deallocate(buf []T) {
	clear(buf[:cap(buf)])
	l.budget.give(int64(cap(buf)))
}

func (l Limited[T]) Equals(other Allocator[T]) bool {
	o, ok := other.(Limited[T])

	return ok && o.budget == l.budget
}

func (l Limited[T]) SelectOnCopy() Allocator[T] { //nolint:ireturn
	return l
}

func (l Limited[T]) PropagateOnMove() bool { return true }
