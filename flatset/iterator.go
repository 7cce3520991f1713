package flatset

import "iter"

// Iterator is a read-only position in a FlatSet, from the first element up
// to End.
//
// An Iterator is a set plus an index. Any insertion or erasure shifts
// elements, so after a mutation an iterator obtained earlier may denote a
// different element or the end; the ones returned by the mutating call are
// the only valid ones. Swap, MoveFrom, CopyFrom and Assign invalidate every
// iterator of the sets involved.
type Iterator[T any] struct {
	s   *FlatSet[T]
	pos int
}

// Value returns the element at the iterator. It panics at End.
func (it Iterator[T]) Value() T {
	return it.s.storage.At(it.pos)
}

// Index returns the element's rank in the set; End has index Size().
func (it Iterator[T]) Index() int {
	return it.pos
}

// IsEnd reports whether the iterator is past the last element.
func (it Iterator[T]) IsEnd() bool {
	return it.pos >= it.s.Size()
}

// Next returns the iterator one step forward.
func (it Iterator[T]) Next() Iterator[T] {
	return it.Advance(1)
}

// Prev returns the iterator one step back.
func (it Iterator[T]) Prev() Iterator[T] {
	return it.Advance(-1)
}

// Advance returns the iterator n steps away (negative n moves back).
func (it Iterator[T]) Advance(n int) Iterator[T] {
	return Iterator[T]{s: it.s, pos: it.pos + n}
}

// Equal reports whether both iterators denote the same position of the same
// set.
func (it Iterator[T]) Equal(other Iterator[T]) bool {
	return it.s == other.s && it.pos == other.pos
}

// Distance returns how many steps it takes to go from it to other.
func (it Iterator[T]) Distance(other Iterator[T]) int {
	return other.pos - it.pos
}

// ReverseIterator walks a FlatSet from the last element to the first. It
// wraps the forward iterator one past the element it denotes.
type ReverseIterator[T any] struct {
	base Iterator[T]
}

// Value returns the element before Base. It panics at REnd.
func (it ReverseIterator[T]) Value() T {
	return it.base.Prev().Value()
}

// Base returns the underlying forward iterator.
func (it ReverseIterator[T]) Base() Iterator[T] {
	return it.base
}

// Index returns the rank of the element the iterator denotes.
func (it ReverseIterator[T]) Index() int {
	return it.base.pos - 1
}

// IsEnd reports whether the iterator is past the first element.
func (it ReverseIterator[T]) IsEnd() bool {
	return it.base.pos <= 0
}

// Next moves towards the front of the set.
func (it ReverseIterator[T]) Next() ReverseIterator[T] {
	return ReverseIterator[T]{base: it.base.Prev()}
}

// Prev moves towards the back of the set.
func (it ReverseIterator[T]) Prev() ReverseIterator[T] {
	return ReverseIterator[T]{base: it.base.Next()}
}

// Advance returns the iterator n steps further towards the front.
func (it ReverseIterator[T]) Advance(n int) ReverseIterator[T] {
	return ReverseIterator[T]{base: it.base.Advance(-n)}
}

// Equal reports whether both reverse iterators denote the same position of
// the same set.
func (it ReverseIterator[T]) Equal(other ReverseIterator[T]) bool {
	return it.base.Equal(other.base)
}

// Begin returns an iterator at the smallest element, or End if empty.
func (s *FlatSet[T]) Begin() Iterator[T] {
	return s.iter(0)
}

// End returns the past-the-end iterator.
func (s *FlatSet[T]) End() Iterator[T] {
	return s.iter(s.Size())
}

// RBegin returns a reverse iterator at the largest element.
func (s *FlatSet[T]) RBegin() ReverseIterator[T] {
	return ReverseIterator[T]{base: s.End()}
}

// REnd returns the reverse past-the-end iterator.
func (s *FlatSet[T]) REnd() ReverseIterator[T] {
	return ReverseIterator[T]{base: s.Begin()}
}

// At returns the element of rank i. It panics if i is out of range.
func (s *FlatSet[T]) At(i int) T {
	return s.storage.At(i)
}

// Seq yields the elements in ascending order. The set must not be modified
// during iteration.
func (s *FlatSet[T]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range s.values() {
			if !yield(v) {
				return
			}
		}
	}
}

// All yields rank and element pairs in ascending order.
func (s *FlatSet[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range s.values() {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Backward yields rank and element pairs in descending order.
func (s *FlatSet[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		values := s.values()

		for i := len(values) - 1; i >= 0; i-- {
			if !yield(i, values[i]) {
				return
			}
		}
	}
}

// Entries returns a sorted copy of the elements.
func (s *FlatSet[T]) Entries() []T {
	out := make([]T, s.Size())
	copy(out, s.values())

	return out
}

func (s *FlatSet[T]) iter(pos int) Iterator[T] {
	return Iterator[T]{s: s, pos: pos}
}
