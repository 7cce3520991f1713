package flatset

import "iter"

// OrderedSet is the value-oriented surface of a sorted set, without
// iterators. *FlatSet implements it, and NewThreadSafe decorates any
// implementation with locking.
type OrderedSet[T any] interface {
	// Add inserts element and reports whether it was new.
	Add(element T) (bool, error)

	// AddAll inserts every element, skipping those already present.
	AddAll(elements ...T) error

	// Remove deletes element and reports whether it was present.
	Remove(element T) bool

	// Clear removes every element.
	Clear()

	// Contains reports whether element is present.
	Contains(element T) bool

	// Size returns the number of elements.
	Size() int

	// Empty reports whether there are no elements.
	Empty() bool

	// Entries returns the elements in ascending order.
	Entries() []T

	// Seq yields the elements in ascending order.
	Seq() iter.Seq[T]

	// Between returns the elements in [lo, hi) in ascending order.
	Between(lo, hi T) []T

	// First returns the smallest element, if any.
	First() (T, bool)

	// Last returns the largest element, if any.
	Last() (T, bool)
}

var _ OrderedSet[int] = (*FlatSet[int])(nil)

// Add inserts element and reports whether it was new.
func (s *FlatSet[T]) Add(element T) (bool, error) {
	_, inserted, err := s.Insert(element)

	return inserted, err
}

// AddAll is InsertAll.
func (s *FlatSet[T]) AddAll(elements ...T) error {
	return s.InsertRange(elements)
}

// Remove deletes element and reports whether it was present.
func (s *FlatSet[T]) Remove(element T) bool {
	return s.EraseKey(element) == 1
}
