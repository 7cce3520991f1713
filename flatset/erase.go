package flatset

// Erase removes the element at pos and returns an iterator at the element
// that followed it. pos must denote an element of s.
func (s *FlatSet[T]) Erase(pos Iterator[T]) Iterator[T] {
	s.storage.Erase(pos.pos)

	return s.iter(pos.pos)
}

// EraseRange removes the elements in [first, last) and returns an iterator
// at the element that followed them.
func (s *FlatSet[T]) EraseRange(first, last Iterator[T]) Iterator[T] {
	s.storage.EraseRange(first.pos, last.pos)

	return s.iter(first.pos)
}

// EraseKey removes the element equivalent to key and returns how many
// elements were removed (0 or 1).
func (s *FlatSet[T]) EraseKey(key T) int {
	i, ok := s.search(key)
	if !ok {
		return 0
	}

	s.storage.Erase(i)

	return 1
}

// EraseFunc removes every element for which pred returns true and returns
// how many were removed. Survivors keep their order.
func (s *FlatSet[T]) EraseFunc(pred func(T) bool) int {
	return s.storage.Retain(func(v T) bool {
		return !pred(v)
	})
}

// Clear removes every element. The buffer is kept for reuse; call Release to
// give it back.
func (s *FlatSet[T]) Clear() {
	s.storage.Clear()
}
