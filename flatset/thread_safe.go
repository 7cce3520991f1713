package flatset

import (
	"iter"
	"slices"
	"sync"
)

// NewThreadSafe wraps an OrderedSet with a sync.RWMutex.
//
// Add, AddAll, Remove and Clear take the exclusive lock; every other method
// takes the shared lock, so readers run concurrently. Wrapping a set that is
// already thread-safe returns it unchanged. The wrapped set must not be used
// directly afterwards.
//
// Example:
//
//	safe := flatset.NewThreadSafe[string](flatset.New[string]())
//	go func() { _, _ = safe.Add("a") }()
//	go func() { _ = safe.Contains("a") }()
func NewThreadSafe[T any](s OrderedSet[T]) OrderedSet[T] { //nolint:ireturn
	if s == nil {
		return nil
	}

	if ts, ok := s.(*threadSafe[T]); ok {
		return ts
	}

	return &threadSafe[T]{internal: s}
}

type threadSafe[T any] struct {
	mutex    sync.RWMutex
	internal OrderedSet[T]
}

func (t *threadSafe[T]) Add(element T) (bool, error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return t.internal.Add(element)
}

func (t *threadSafe[T]) AddAll(elements ...T) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return t.internal.AddAll(elements...)
}

func (t *threadSafe[T]) Remove(element T) bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return t.internal.Remove(element)
}

func (t *threadSafe[T]) Clear() {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.internal.Clear()
}

func (t *threadSafe[T]) Contains(element T) bool {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.internal.Contains(element)
}

func (t *threadSafe[T]) Size() int {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.internal.Size()
}

func (t *threadSafe[T]) Empty() bool {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.internal.Empty()
}

func (t *threadSafe[T]) Entries() []T {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.internal.Entries()
}

// Seq iterates over a snapshot taken under the shared lock, so the lock is
// not held while the caller's loop body runs.
func (t *threadSafe[T]) Seq() iter.Seq[T] {
	return slices.Values(t.Entries())
}

func (t *threadSafe[T]) Between(lo, hi T) []T {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.internal.Between(lo, hi)
}

func (t *threadSafe[T]) First() (T, bool) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.internal.First()
}

func (t *threadSafe[T]) Last() (T, bool) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	return t.internal.Last()
}
