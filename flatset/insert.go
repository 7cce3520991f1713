package flatset

import (
	"fmt"
	"iter"
)

// Insert adds v unless an equivalent element is already present.
//
// It returns an iterator at the element equivalent to v (the new one, or the
// one that blocked the insertion) and whether v was inserted. If the buffer
// had to grow and the allocator refused, the error is returned, the
// iterator is End and the set is unchanged.
//
// Example:
//
//	s := flatset.Of(1, 3)
//	it, inserted, err := s.Insert(2) // it.Value() == 2, inserted == true
//	it, inserted, err = s.Insert(3)  // it.Value() == 3, inserted == false
func (s *FlatSet[T]) Insert(v T) (Iterator[T], bool, error) {
	return s.insertAt(s.lowerBound(0, s.Size(), v), v)
}

// InsertHint adds v using hint as a guess of where it belongs and returns an
// iterator at the element equivalent to v.
//
// Appending with hint End to a set whose elements are all ordered before v,
// or prepending with hint Begin when v is ordered before every element, costs
// one comparison and no search. Otherwise the hint narrows the binary search
// to the side of hint where v belongs. A wrong hint only costs time.
//
// Example:
//
//	s := flatset.New[int]()
//	for i := range 1000 {
//	    _, _ = s.InsertHint(s.End(), i) // sorted input, no searching
//	}
func (s *FlatSet[T]) InsertHint(hint Iterator[T], v T) (Iterator[T], error) {
	n := s.Size()
	pos := min(max(hint.pos, 0), n)

	switch {
	case n == 0:
		return s.place(0, v)
	case pos == n:
		if s.less.Less(s.storage.Back(), v) {
			return s.place(n, v)
		}

		it, _, err := s.Insert(v)

		return it, err
	case pos == 0 && s.less.Less(v, s.storage.Front()):
		return s.place(0, v)
	}

	var i int
	if s.less.Less(v, s.values()[pos]) {
		i = s.lowerBound(0, pos, v)
	} else {
		i = s.lowerBound(pos, n, v)
	}

	it, _, err := s.insertAt(i, v)

	return it, err
}

// InsertRange adds every element of values in order, skipping those
// equivalent to an element already present (including ones inserted earlier
// in the same call).
//
// Room for Size()+len(values) elements is reserved first; if that fails
// nothing is inserted. Sorted input is appended without searching.
func (s *FlatSet[T]) InsertRange(values []T) error {
	if len(values) == 0 {
		return nil
	}

	if err := s.Reserve(s.Size() + len(values)); err != nil {
		return err
	}

	for idx, v := range values {
		if _, err := s.InsertHint(s.End(), v); err != nil {
			return fmt.Errorf("inserting element %d of %d: %w", idx, len(values), err)
		}
	}

	return nil
}

// InsertAll is InsertRange for a literal list.
//
// Example:
//
//	err := s.InsertAll("pear", "apple", "fig")
func (s *FlatSet[T]) InsertAll(values ...T) error {
	return s.InsertRange(values)
}

// InsertSeq adds every value seq yields, like InsertRange but without
// reserving since the length is unknown. If an insertion fails the values
// inserted before it stay.
func (s *FlatSet[T]) InsertSeq(seq iter.Seq[T]) error {
	idx := 0

	for v := range seq {
		if _, err := s.InsertHint(s.End(), v); err != nil {
			return fmt.Errorf("inserting element %d: %w", idx, err)
		}

		idx++
	}

	return nil
}

// Emplace builds a value with build and inserts it. The value is always
// built, even when an equivalent element turns out to be present.
func (s *FlatSet[T]) Emplace(build func() T) (Iterator[T], bool, error) {
	return s.Insert(build())
}

// insertAt inserts v at index i, which must be the lower bound of v, unless
// the element there is equivalent.
func (s *FlatSet[T]) insertAt(i int, v T) (Iterator[T], bool, error) {
	if i < s.Size() && !s.less.Less(v, s.values()[i]) {
		return s.iter(i), false, nil
	}

	it, err := s.place(i, v)

	return it, err == nil, err
}

// place inserts v at index i without checking for an equivalent element.
func (s *FlatSet[T]) place(i int, v T) (Iterator[T], error) {
	if err := s.storage.Insert(i, v); err != nil {
		return s.End(), err
	}

	return s.iter(i), nil
}
