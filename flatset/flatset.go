package flatset

import (
	"cmp"
	"iter"
	"math"
	"unsafe"

	"github.com/amp-labs/flatset/alloc"
	"github.com/amp-labs/flatset/compare"
	"github.com/amp-labs/flatset/vector"
)

// FlatSet is an ordered set of unique T kept in one sorted buffer.
//
// The zero value is not usable; construct sets with New, NewWithComparator,
// FromSlice, FromSeq, Of or OfWithComparator.
type FlatSet[T any] struct {
	storage *vector.Vector[T]
	less    compare.Comparator[T]
}

// Option configures a FlatSet at construction.
type Option[T any] func(*options[T])

type options[T any] struct {
	allocator alloc.Allocator[T]
	capacity  int
}

// WithAllocator makes the set draw its buffer from a.
func WithAllocator[T any](a alloc.Allocator[T]) Option[T] {
	return func(o *options[T]) {
		o.allocator = a
	}
}

// WithCapacity reserves room for n elements up front. If the allocator
// refuses the reservation the set starts without capacity and the refusal
// surfaces on the first insert instead.
func WithCapacity[T any](n int) Option[T] {
	return func(o *options[T]) {
		o.capacity = n
	}
}

// New creates an empty set of an ordered type in ascending order.
//
// Example:
//
//	s := flatset.New[string]()
//	_, _, _ = s.Insert("b")
//	_, _, _ = s.Insert("a")
//	s.Entries() // [a b]
func New[T cmp.Ordered](opts ...Option[T]) *FlatSet[T] {
	return NewWithComparator[T](compare.Ordered[T]{}, opts...)
}

// NewWithComparator creates an empty set ordered by less.
//
// Example:
//
//	s := flatset.NewWithComparator[string](compare.Reverse[string]{Inner: compare.Ordered[string]{}})
func NewWithComparator[T any](less compare.Comparator[T], opts ...Option[T]) *FlatSet[T] {
	var o options[T]

	for _, opt := range opts {
		opt(&o)
	}

	s := &FlatSet[T]{
		storage: vector.New(o.allocator),
		less:    less,
	}

	if o.capacity > 0 {
		_ = s.storage.Reserve(o.capacity)
	}

	return s
}

// FromSlice builds a set from values, which may be unsorted and contain
// duplicates. When several values are equivalent the first one wins.
// On error the returned set is nil.
func FromSlice[T any](less compare.Comparator[T], values []T, opts ...Option[T]) (*FlatSet[T], error) {
	s := NewWithComparator(less, opts...)

	if err := s.InsertRange(values); err != nil {
		s.Release()

		return nil, err
	}

	return s, nil
}

// FromSeq builds a set from every value seq yields, with the same rules as
// FromSlice.
func FromSeq[T any](less compare.Comparator[T], seq iter.Seq[T], opts ...Option[T]) (*FlatSet[T], error) {
	s := NewWithComparator(less, opts...)

	if err := s.InsertSeq(seq); err != nil {
		s.Release()

		return nil, err
	}

	return s, nil
}

// Of builds a heap-allocated set of an ordered type from a literal list.
//
// Example:
//
//	s := flatset.Of(5, 1, 3, 1)
//	s.Entries() // [1 3 5]
func Of[T cmp.Ordered](values ...T) *FlatSet[T] {
	return OfWithComparator[T](compare.Ordered[T]{}, values...)
}

// OfWithComparator builds a heap-allocated set ordered by less from a
// literal list.
func OfWithComparator[T any](less compare.Comparator[T], values ...T) *FlatSet[T] {
	s, err := FromSlice(less, values)
	if err != nil {
		// The heap allocator never refuses.
		panic(err)
	}

	return s
}

// Size returns the number of elements.
func (s *FlatSet[T]) Size() int {
	return s.storage.Len()
}

// Empty reports whether the set has no elements.
func (s *FlatSet[T]) Empty() bool {
	return s.storage.Len() == 0
}

// MaxSize returns the theoretical upper bound on the number of elements.
func (s *FlatSet[T]) MaxSize() int {
	var zero T

	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return math.MaxInt
	}

	return math.MaxInt / size
}

// KeyComp returns the comparator ordering the set.
func (s *FlatSet[T]) KeyComp() compare.Comparator[T] { //nolint:ireturn
	return s.less
}

// ValueComp returns the comparator ordering the set. Keys are values, so it
// is the same comparator as KeyComp.
func (s *FlatSet[T]) ValueComp() compare.Comparator[T] { //nolint:ireturn
	return s.less
}

// Allocator returns the allocator owning the set's buffer.
func (s *FlatSet[T]) Allocator() alloc.Allocator[T] { //nolint:ireturn
	return s.storage.Allocator()
}

// Capacity returns how many elements fit before the buffer must grow.
func (s *FlatSet[T]) Capacity() int {
	return s.storage.Cap()
}

// Reserve ensures room for at least n elements. Iterators stay valid only if
// no reallocation happened; treat them as invalidated.
func (s *FlatSet[T]) Reserve(n int) error {
	return s.storage.Reserve(n)
}

// ShrinkToFit releases unused capacity.
func (s *FlatSet[T]) ShrinkToFit() error {
	return s.storage.ShrinkToFit()
}

// Release empties the set and returns its buffer to the allocator. The set
// remains usable. Sets backed by a budgeted allocator should be released
// when no longer needed so the budget is credited back.
func (s *FlatSet[T]) Release() {
	s.storage.Release()
}

// values is the sorted buffer. It must not be modified or retained across a
// mutation.
func (s *FlatSet[T]) values() []T {
	return s.storage.Values()
}
