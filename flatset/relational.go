package flatset

import "github.com/amp-labs/flatset/compare"

// Equal reports whether s and other hold pairwise equivalent elements under
// the comparator of s.
func (s *FlatSet[T]) Equal(other *FlatSet[T]) bool {
	if s.Size() != other.Size() {
		return false
	}

	theirs := other.values()

	for i, v := range s.values() {
		if !compare.Equivalent(s.less, v, theirs[i]) {
			return false
		}
	}

	return true
}

// NotEqual is the negation of Equal.
func (s *FlatSet[T]) NotEqual(other *FlatSet[T]) bool {
	return !s.Equal(other)
}

// Compare orders s and other lexicographically under the comparator of s and
// returns -1, 0 or +1. A proper prefix orders first.
func (s *FlatSet[T]) Compare(other *FlatSet[T]) int {
	ours, theirs := s.values(), other.values()

	for i := range min(len(ours), len(theirs)) {
		if c := compare.Three(s.less, ours[i], theirs[i]); c != 0 {
			return c
		}
	}

	switch {
	case len(ours) < len(theirs):
		return -1
	case len(ours) > len(theirs):
		return 1
	default:
		return 0
	}
}

// Less reports whether s orders lexicographically before other.
func (s *FlatSet[T]) Less(other *FlatSet[T]) bool {
	return s.Compare(other) < 0
}

// LessOrEqual reports whether s does not order after other.
func (s *FlatSet[T]) LessOrEqual(other *FlatSet[T]) bool {
	return s.Compare(other) <= 0
}

// Greater reports whether s orders lexicographically after other.
func (s *FlatSet[T]) Greater(other *FlatSet[T]) bool {
	return s.Compare(other) > 0
}

// GreaterOrEqual reports whether s does not order before other.
func (s *FlatSet[T]) GreaterOrEqual(other *FlatSet[T]) bool {
	return s.Compare(other) >= 0
}
