package flatset

import "github.com/amp-labs/flatset/vector"

// Union returns a new set holding the elements present in s or other. When
// both hold equivalent elements the one from s is kept.
//
// Both sets must be ordered by equivalent comparators. The result uses the
// comparator of s and the SelectOnCopy allocator of s. It runs in
// O(len(s) + len(other)).
func (s *FlatSet[T]) Union(other *FlatSet[T]) (*FlatSet[T], error) {
	return s.merge(other, len(s.values())+len(other.values()), true, true, true)
}

// Intersection returns a new set holding the elements of s that have an
// equivalent in other. Preconditions and result as for Union.
func (s *FlatSet[T]) Intersection(other *FlatSet[T]) (*FlatSet[T], error) {
	return s.merge(other, min(s.Size(), other.Size()), false, true, false)
}

// Difference returns a new set holding the elements of s with no equivalent
// in other. Preconditions and result as for Union.
func (s *FlatSet[T]) Difference(other *FlatSet[T]) (*FlatSet[T], error) {
	return s.merge(other, s.Size(), true, false, false)
}

// merge walks both sorted buffers once. The flags choose which of the three
// partitions end up in the result: elements only in s, elements in both and
// elements only in other.
func (s *FlatSet[T]) merge(other *FlatSet[T], capacity int, onlyOurs, both, onlyTheirs bool) (*FlatSet[T], error) {
	out := vector.New(s.Allocator().SelectOnCopy())

	if err := out.Reserve(capacity); err != nil {
		return nil, err
	}

	ours, theirs := s.values(), other.values()
	i, j := 0, 0

	var err error

	add := func(keep bool, v T) {
		if keep && err == nil {
			err = out.Append(v)
		}
	}

	for i < len(ours) && j < len(theirs) {
		switch {
		case s.less.Less(ours[i], theirs[j]):
			add(onlyOurs, ours[i])
			i++
		case s.less.Less(theirs[j], ours[i]):
			add(onlyTheirs, theirs[j])
			j++
		default:
			add(both, ours[i])
			i++
			j++
		}
	}

	for ; i < len(ours); i++ {
		add(onlyOurs, ours[i])
	}

	for ; j < len(theirs); j++ {
		add(onlyTheirs, theirs[j])
	}

	if err != nil {
		out.Release()

		return nil, err
	}

	return &FlatSet[T]{storage: out, less: s.less}, nil
}
