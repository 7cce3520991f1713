package compare

import (
	"cmp"
	"fmt"
)

// Comparator orders values of type T.
//
// Less must be a strict weak order: irreflexive, transitive, and the induced
// equivalence (neither Less(a, b) nor Less(b, a)) must be transitive too.
// Containers call Less with both argument orders, so an implementation must
// not depend on which operand comes first. A comparator that violates these
// rules silently breaks the ordering of any container using it.
type Comparator[T any] interface {
	Less(a, b T) bool
}

// Equivalent reports whether a and b are equivalent under c, meaning neither
// orders before the other.
func Equivalent[T any](c Comparator[T], a, b T) bool {
	return !c.Less(a, b) && !c.Less(b, a)
}

// Three turns a Less-only comparator into a three-way result:
// -1 if a orders before b, +1 if b orders before a, 0 if they are equivalent.
func Three[T any](c Comparator[T], a, b T) int {
	switch {
	case c.Less(a, b):
		return -1
	case c.Less(b, a):
		return 1
	default:
		return 0
	}
}

// Ordered is the natural ascending order of any cmp.Ordered type.
// It carries no state, so all Ordered values of the same type are equal.
type Ordered[T cmp.Ordered] struct{}

// Less reports whether a < b using cmp.Less (NaNs order first).
func (Ordered[T]) Less(a, b T) bool {
	return cmp.Less(a, b)
}

// Reverse inverts the order of another comparator.
type Reverse[T any] struct {
	Inner Comparator[T]
}

// Less reports whether b orders before a under the inner comparator.
func (r Reverse[T]) Less(a, b T) bool {
	return r.Inner.Less(b, a)
}

// String describes the comparator, mostly useful in logs.
func (r Reverse[T]) String() string {
	return fmt.Sprintf("reverse(%v)", r.Inner)
}

// Func adapts a plain less function to the Comparator interface.
// Name identifies the ordering; Func values holding functions are not
// comparable with ==, so the name is what shows up in logs and errors.
type Func[T any] struct {
	Name string
	Fn   func(a, b T) bool
}

// LessFunc wraps fn as a named Comparator.
func LessFunc[T any](name string, fn func(a, b T) bool) Func[T] {
	return Func[T]{Name: name, Fn: fn}
}

// Less delegates to the wrapped function.
func (f Func[T]) Less(a, b T) bool {
	return f.Fn(a, b)
}

// String returns the comparator's name.
func (f Func[T]) String() string {
	return f.Name
}
