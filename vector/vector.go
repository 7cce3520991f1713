// Package vector provides Vector, an allocator-aware contiguous dynamic
// array. It is the storage layer of flatset.FlatSet and knows nothing about
// ordering: it grows, shifts and shrinks a single buffer obtained from an
// alloc.Allocator.
//
// Every growing operation allocates the new buffer before the old one is
// touched. If the allocator refuses, the operation returns the error and the
// vector is exactly as it was before the call.
package vector

import (
	"fmt"

	"github.com/amp-labs/flatset/alloc"
)

// minGrowth is the capacity of the first buffer a growing vector allocates.
const minGrowth = 4

// Vector is a contiguous sequence of T backed by one buffer from an
// allocator. The zero value is not usable; call New.
//
// A Vector is not safe for concurrent mutation.
type Vector[T any] struct {
	buf   []T
	alloc alloc.Allocator[T]
}

// New creates an empty vector drawing its buffers from a. A nil allocator
// selects alloc.Default.
func New[T any](a alloc.Allocator[T]) *Vector[T] {
	return &Vector[T]{alloc: alloc.OrDefault(a)}
}

// Allocator returns the allocator currently owning the buffer.
func (v *Vector[T]) Allocator() alloc.Allocator[T] { //nolint:ireturn
	return v.alloc
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int {
	return len(v.buf)
}

// Cap returns the number of elements the current buffer can hold without
// reallocating.
func (v *Vector[T]) Cap() int {
	return cap(v.buf)
}

// At returns the element at index i. It panics if i is out of range.
func (v *Vector[T]) At(i int) T {
	return v.buf[i]
}

// Front returns the first element. It panics on an empty vector.
func (v *Vector[T]) Front() T {
	return v.buf[0]
}

// Back returns the last element. It panics on an empty vector.
func (v *Vector[T]) Back() T {
	return v.buf[len(v.buf)-1]
}

// Values returns the live elements. The slice aliases the vector's buffer:
// callers must treat it as read-only and must not retain it across a
// mutation.
func (v *Vector[T]) Values() []T {
	return v.buf
}

// Reserve ensures capacity for at least n elements. It never shrinks.
func (v *Vector[T]) Reserve(n int) error {
	if n <= cap(v.buf) {
		return nil
	}

	return v.reallocate(n)
}

// Insert places x at index i, shifting the tail one slot right.
// i may equal Len().
func (v *Vector[T]) Insert(i int, x T) error {
	if len(v.buf) < cap(v.buf) {
		v.buf = v.buf[:len(v.buf)+1]
		copy(v.buf[i+1:], v.buf[i:])
		v.buf[i] = x

		return nil
	}

	next, err := v.allocate(v.growTo(len(v.buf) + 1))
	if err != nil {
		return err
	}

	next = append(next, v.buf[:i]...)
	next = append(next, x)
	next = append(next, v.buf[i:]...)

	v.replace(next)

	return nil
}

// Append adds x at the end.
func (v *Vector[T]) Append(x T) error {
	return v.Insert(len(v.buf), x)
}

// Erase removes the element at index i, shifting the tail one slot left.
func (v *Vector[T]) Erase(i int) {
	v.EraseRange(i, i+1)
}

// EraseRange removes the elements in [i, j).
func (v *Vector[T]) EraseRange(i, j int) {
	if i == j {
		return
	}

	n := copy(v.buf[i:], v.buf[j:])
	clear(v.buf[i+n:])
	v.buf = v.buf[:i+n]
}

// Retain keeps the elements for which keep returns true, preserving their
// relative order, and returns how many were removed.
func (v *Vector[T]) Retain(keep func(T) bool) int {
	w := 0

	for _, x := range v.buf {
		if keep(x) {
			v.buf[w] = x
			w++
		}
	}

	removed := len(v.buf) - w
	clear(v.buf[w:])
	v.buf = v.buf[:w]

	return removed
}

// Clear removes every element but keeps the buffer.
func (v *Vector[T]) Clear() {
	clear(v.buf)
	v.buf = v.buf[:0]
}

// ShrinkToFit reallocates so that capacity equals length. An empty vector
// gives its buffer back entirely.
func (v *Vector[T]) ShrinkToFit() error {
	switch {
	case cap(v.buf) == len(v.buf):
		return nil
	case len(v.buf) == 0:
		v.Release()

		return nil
	default:
		return v.reallocate(len(v.buf))
	}
}

// Release returns the buffer to the allocator and leaves the vector empty
// with zero capacity. The allocator is kept.
func (v *Vector[T]) Release() {
	if v.buf != nil {
		v.alloc.Deallocate(v.buf)
	}

	v.buf = nil
}

// Swap exchanges the contents of v and other in O(1). Buffers travel with the
// allocators that produced them.
func (v *Vector[T]) Swap(other *Vector[T]) {
	v.buf, other.buf = other.buf, v.buf
	v.alloc, other.alloc = other.alloc, v.alloc
}

// Clone returns an independent copy of v using allocator a, or the
// SelectOnCopy allocator of v when a is nil. The copy's capacity equals its
// length.
func (v *Vector[T]) Clone(a alloc.Allocator[T]) (*Vector[T], error) {
	if a == nil {
		a = v.alloc.SelectOnCopy()
	}

	out := New(a)
	if len(v.buf) == 0 {
		return out, nil
	}

	buf, err := out.allocate(len(v.buf))
	if err != nil {
		return nil, err
	}

	out.buf = append(buf, v.buf...)

	return out, nil
}

// Assign replaces the contents of v with a copy of other's elements, using
// v's allocator. On failure v is unchanged.
func (v *Vector[T]) Assign(other *Vector[T]) error {
	if v == other {
		return nil
	}

	if len(other.buf) <= cap(v.buf) {
		if len(other.buf) < len(v.buf) {
			clear(v.buf[len(other.buf):])
		}

		v.buf = append(v.buf[:0], other.buf...)

		return nil
	}

	next, err := v.allocate(len(other.buf))
	if err != nil {
		return err
	}

	v.replace(append(next, other.buf...))

	return nil
}

// Move transfers the contents of v into a new vector and leaves v empty.
//
// With a nil allocator the buffer is handed over when v's allocator
// propagates on move; otherwise the new vector uses alloc.Default and the
// elements are copied. With a non-nil allocator equal to v's, the buffer is
// handed over; an unequal allocator gets a fresh copy. On failure v is
// unchanged.
func (v *Vector[T]) Move(a alloc.Allocator[T]) (*Vector[T], error) {
	switch {
	case a == nil && v.alloc.PropagateOnMove():
		out := &Vector[T]{buf: v.buf, alloc: v.alloc}
		v.buf = nil

		return out, nil
	case a == nil:
		a = alloc.Default[T]()
	case a.Equals(v.alloc):
		out := &Vector[T]{buf: v.buf, alloc: a}
		v.buf = nil

		return out, nil
	}

	out := New(a)
	if err := out.Assign(v); err != nil {
		return nil, err
	}

	v.Release()

	return out, nil
}

// MoveFrom replaces the contents of v with those of src and leaves src
// empty. When src's allocator propagates on move, v adopts it together with
// the buffer. When the allocators are equal the buffer is handed over and v
// keeps its allocator. Otherwise the elements are copied into v's allocator.
// On failure both vectors are unchanged.
func (v *Vector[T]) MoveFrom(src *Vector[T]) error {
	if v == src {
		return nil
	}

	switch {
	case src.alloc.PropagateOnMove():
		v.Release()
		v.buf, v.alloc = src.buf, src.alloc
		src.buf = nil
	case src.alloc.Equals(v.alloc):
		v.Release()
		v.buf = src.buf
		src.buf = nil
	default:
		if err := v.Assign(src); err != nil {
			return err
		}

		src.Release()
	}

	return nil
}

// growTo returns the capacity to allocate when at least need elements must
// fit: double the current capacity, never less than minGrowth.
func (v *Vector[T]) growTo(need int) int {
	return max(need, 2*cap(v.buf), minGrowth)
}

func (v *Vector[T]) allocate(n int) ([]T, error) {
	buf, err := v.alloc.Allocate(n)
	if err != nil {
		return nil, fmt.Errorf("allocating %d elements: %w", n, err)
	}

	return buf[:0], nil
}

func (v *Vector[T]) reallocate(n int) error {
	next, err := v.allocate(n)
	if err != nil {
		return err
	}

	v.replace(append(next, v.buf...))

	return nil
}

// replace installs next as the buffer, giving the old one back.
func (v *Vector[T]) replace(next []T) {
	if v.buf != nil {
		v.alloc.Deallocate(v.buf)
	}

	v.buf = next
}
