package compare

import "facette.io/natsort"

// Natural orders strings the way people read them: digit runs compare
// numerically, so "file2" sorts before "file10".
//
// natsort.Compare is not irreflexive on its own and can report two distinct
// strings as each preceding the other ("1" and "01"). Less breaks those ties
// with a plain byte-wise comparison so the result stays a strict weak order.
type Natural struct{}

// Less reports whether a precedes b in natural order.
func (Natural) Less(a, b string) bool {
	if a == b {
		return false
	}

	ab := natsort.Compare(a, b)
	ba := natsort.Compare(b, a)

	if ab == ba {
		return a < b
	}

	return ab
}

// String names the ordering.
func (Natural) String() string {
	return "natural"
}
