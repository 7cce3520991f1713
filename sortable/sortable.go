package sortable

import (
	"github.com/amp-labs/flatset/compare"
)

// Sortable is a value that can order itself against another value of its type.
type Sortable[T any] interface {
	compare.Comparable[T]

	LessThan(other T) bool
}

// Comparator orders any Sortable type by its own LessThan method.
// It is stateless; every Comparator[T] value is interchangeable.
type Comparator[T Sortable[T]] struct{}

// Compile-time check that Comparator satisfies compare.Comparator.
var _ compare.Comparator[Int] = Comparator[Int]{}

// Less reports whether a.LessThan(b).
func (Comparator[T]) Less(a, b T) bool {
	return a.LessThan(b)
}
