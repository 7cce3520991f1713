// Package flatset provides FlatSet, an ordered set of unique keys stored in a
// single contiguous, sorted buffer.
//
// # Overview
//
// A FlatSet offers the contract of a sorted unique-key set (membership,
// ordered iteration, range queries, insertion and deletion) without the
// per-node allocations of a balanced tree. Elements live in one slice kept
// in ascending order under a caller-supplied comparator, so lookups are a
// binary search and iteration walks adjacent memory.
//
// The trade-off is mutation cost: inserting or erasing shifts the tail of the
// buffer, which is O(n). FlatSet suits sets that are read far more often than
// they change, or that are built once (ideally from sorted input) and then
// queried.
//
// # Ordering
//
// Ordering comes from a [compare.Comparator]. Two keys a and b are
// equivalent when neither Less(a, b) nor Less(b, a) holds, and a FlatSet
// never holds two equivalent keys. Comparators may carry state; every set
// owns its own comparator value.
//
//	s := flatset.New[int]()
//	_, _, _ = s.Insert(3)
//	_, _, _ = s.Insert(1)
//	_, _, _ = s.Insert(3) // not inserted, already present
//
//	for v := range s.Seq() {
//	    fmt.Println(v) // 1, 3
//	}
//
// # Allocation
//
// Storage comes from an [alloc.Allocator]. The default heap allocator never
// fails, but a budgeted allocator such as [alloc.Limited] can refuse to grow;
// every operation that may grow the buffer returns that error and leaves the
// set valid. See the alloc package for how allocators travel on copy, move
// and swap.
//
// # Concurrency
//
// A FlatSet is not safe for concurrent mutation. Concurrent readers are
// fine. Use NewThreadSafe to put a set behind a read-write lock.
package flatset
