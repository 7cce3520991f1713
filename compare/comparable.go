// Package compare provides the equality and ordering contracts used by the
// containers in this module.
//
// Comparable describes values that can report equality with one another.
// Comparator describes a strict weak order over a type. A Comparator is a
// value, not a global function, so two containers of the same element type
// can be ordered differently and carry their own comparator state.
package compare

// Comparable is a generic interface for types that can compare themselves for equality.
// Types implementing this interface must provide their own Equals method that determines
// whether two values are equal according to the type's semantics.
type Comparable[T any] interface {
	Equals(other T) bool
}

// Equals compares two values using the Comparable interface.
// It delegates to the Equals method of the first argument.
func Equals[T any](a Comparable[T], b T) bool {
	return a.Equals(b)
}
