package flatset

import "github.com/amp-labs/flatset/alloc"

// Clone returns an independent copy of s with the same comparator. The copy
// draws from the SelectOnCopy allocator of s.
func (s *FlatSet[T]) Clone() (*FlatSet[T], error) {
	return s.CloneWithAllocator(nil)
}

// CloneWithAllocator returns an independent copy of s backed by a, or by the
// SelectOnCopy allocator of s when a is nil.
func (s *FlatSet[T]) CloneWithAllocator(a alloc.Allocator[T]) (*FlatSet[T], error) {
	storage, err := s.storage.Clone(a)
	if err != nil {
		return nil, err
	}

	return &FlatSet[T]{storage: storage, less: s.less}, nil
}

// CopyFrom replaces the contents and comparator of s with copies of
// other's. s keeps its allocator. On failure s is unchanged.
func (s *FlatSet[T]) CopyFrom(other *FlatSet[T]) error {
	if s == other {
		return nil
	}

	if err := s.storage.Assign(other.storage); err != nil {
		return err
	}

	s.less = other.less

	return nil
}

// Move transfers the elements of s into a new set and leaves s empty.
//
// The new set takes over the buffer when the allocator propagates on move.
// Otherwise it copies the elements into the default heap allocator and s
// gives its buffer back. Both sets end up with the comparator of s.
func (s *FlatSet[T]) Move() *FlatSet[T] {
	out, err := s.MoveWithAllocator(nil)
	if err != nil {
		// Only the heap allocator is used when copying.
		panic(err)
	}

	return out
}

// MoveWithAllocator transfers the elements of s into a new set backed by a.
// The buffer is handed over when a equals the allocator of s; otherwise the
// elements are copied and s gives its buffer back. A nil allocator behaves
// like Move. On failure s is unchanged.
func (s *FlatSet[T]) MoveWithAllocator(a alloc.Allocator[T]) (*FlatSet[T], error) {
	storage, err := s.storage.Move(a)
	if err != nil {
		return nil, err
	}

	return &FlatSet[T]{storage: storage, less: s.less}, nil
}

// MoveFrom replaces the contents of s with those of src and leaves src
// empty. The two sets exchange comparators, so src stays usable with the
// comparator s had.
//
// If the allocator of src propagates on move, s adopts it together with the
// buffer. Otherwise s keeps its allocator and, unless the two allocators are
// equal, the elements are copied. On failure neither set changes.
func (s *FlatSet[T]) MoveFrom(src *FlatSet[T]) error {
	if s == src {
		return nil
	}

	if err := s.storage.MoveFrom(src.storage); err != nil {
		return err
	}

	s.less, src.less = src.less, s.less

	return nil
}

// Assign replaces the contents of s with values, which may be unsorted and
// contain duplicates. The comparator and allocator are kept. If an
// insertion fails the elements inserted so far remain.
//
// Example:
//
//	err := s.Assign(3, 1, 2) // s.Entries() == [1 2 3]
func (s *FlatSet[T]) Assign(values ...T) error {
	s.storage.Clear()

	return s.InsertRange(values)
}

// Swap exchanges the contents, allocators and comparators of s and other in
// constant time.
func (s *FlatSet[T]) Swap(other *FlatSet[T]) {
	s.storage.Swap(other.storage)
	s.less, other.less = other.less, s.less
}
