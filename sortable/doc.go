// Package sortable provides wrapper types for primitive types that implement
// the Sortable interface, enabling their use as keys in sorted containers.
//
// # Overview
//
// The sortable package defines the [Sortable] interface and provides ready-to-use
// implementations for common primitive types: [Int], [Byte], and [String].
// A Sortable type orders itself through LessThan; [Comparator] adapts any such
// type to [github.com/amp-labs/flatset/compare.Comparator] so it can key a
// [github.com/amp-labs/flatset/flatset.FlatSet].
//
// # Usage
//
//	s := flatset.NewWithComparator[sortable.Int](sortable.Comparator[sortable.Int]{})
//	_, _, _ = s.Insert(sortable.Int(42))
//	_, _, _ = s.Insert(sortable.Int(10))
//
//	// Elements are returned in sorted order: 10, 42
//	for val := range s.Seq() {
//	    fmt.Println(int(val))
//	}
//
// # Creating Custom Sortable Types
//
//	type Task struct {
//	    Priority int
//	    Name     string
//	}
//
//	func (m Task) Equals(other Task) bool {
//	    return m.Priority == other.Priority && m.Name == other.Name
//	}
//
//	func (m Task) LessThan(other Task) bool {
//	    if m.Priority != other.Priority {
//	        return m.Priority < other.Priority
//	    }
//	    return m.Name < other.Name
//	}
//
// Equals and LessThan must agree: two values are Equals exactly when neither
// is LessThan the other. A flat set only consults LessThan, so a type whose
// Equals is finer than its ordering will see "equal-looking" values rejected
// as duplicates.
package sortable
