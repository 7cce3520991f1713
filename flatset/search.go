package flatset

import "sort"

// LowerBound returns an iterator at the first element not ordered before
// key, or End.
func (s *FlatSet[T]) LowerBound(key T) Iterator[T] {
	return s.iter(s.lowerBound(0, s.Size(), key))
}

// UpperBound returns an iterator at the first element ordered after key,
// or End.
func (s *FlatSet[T]) UpperBound(key T) Iterator[T] {
	return s.iter(s.upperBound(0, s.Size(), key))
}

// EqualRange returns the range of elements equivalent to key. Keys are
// unique, so the range holds at most one element.
func (s *FlatSet[T]) EqualRange(key T) (Iterator[T], Iterator[T]) {
	lo := s.lowerBound(0, s.Size(), key)
	if lo < s.Size() && !s.less.Less(key, s.values()[lo]) {
		return s.iter(lo), s.iter(lo + 1)
	}

	return s.iter(lo), s.iter(lo)
}

// Find returns an iterator at the element equivalent to key, or End.
func (s *FlatSet[T]) Find(key T) Iterator[T] {
	if i, ok := s.search(key); ok {
		return s.iter(i)
	}

	return s.End()
}

// Contains reports whether an element equivalent to key is present.
func (s *FlatSet[T]) Contains(key T) bool {
	_, ok := s.search(key)

	return ok
}

// Count returns 1 if key is present and 0 otherwise.
func (s *FlatSet[T]) Count(key T) int {
	if s.Contains(key) {
		return 1
	}

	return 0
}

// Between returns a copy of the elements in [lo, hi). It returns an empty
// slice when hi is not ordered after lo.
func (s *FlatSet[T]) Between(lo, hi T) []T {
	i := s.lowerBound(0, s.Size(), lo)
	j := s.lowerBound(i, s.Size(), hi)

	if j <= i {
		return []T{}
	}

	out := make([]T, j-i)
	copy(out, s.values()[i:j])

	return out
}

// First returns the smallest element, if any.
func (s *FlatSet[T]) First() (T, bool) {
	if s.Empty() {
		var zero T

		return zero, false
	}

	return s.storage.Front(), true
}

// Last returns the largest element, if any.
func (s *FlatSet[T]) Last() (T, bool) {
	if s.Empty() {
		var zero T

		return zero, false
	}

	return s.storage.Back(), true
}

// lowerBound finds the first index in [lo, hi) whose element is not ordered
// before key, or hi.
func (s *FlatSet[T]) lowerBound(lo, hi int, key T) int {
	values := s.values()

	return lo + sort.Search(hi-lo, func(i int) bool {
		return !s.less.Less(values[lo+i], key)
	})
}

func (s *FlatSet[T]) upperBound(lo, hi int, key T) int {
	values := s.values()

	return lo + sort.Search(hi-lo, func(i int) bool {
		return s.less.Less(key, values[lo+i])
	})
}

// search returns the index of the element equivalent to key.
func (s *FlatSet[T]) search(key T) (int, bool) {
	i := s.lowerBound(0, s.Size(), key)

	return i, i < s.Size() && !s.less.Less(key, s.values()[i])
}
