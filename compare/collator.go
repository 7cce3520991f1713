package compare

import (
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collator orders strings by the collation rules of a language, e.g. German
// "ä" next to "a" rather than after "z".
//
// collate.Collator keeps internal scratch buffers and is not safe for
// concurrent use, so the comparator serializes calls. Copies of a Collator
// share the same underlying collator and lock, and compare equal with ==.
type Collator struct {
	mu  *sync.Mutex
	col *collate.Collator
	tag language.Tag
}

// NewCollator builds a comparator for the given language. Options such as
// collate.IgnoreCase or collate.Numeric are passed through; note that options
// which make distinct strings equivalent also make a set treat them as
// duplicates.
func NewCollator(tag language.Tag, opts ...collate.Option) Collator {
	return Collator{
		mu:  &sync.Mutex{},
		col: collate.New(tag, opts...),
		tag: tag,
	}
}

// Less reports whether a collates before b.
func (c Collator) Less(a, b string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.col.CompareString(a, b) < 0
}

// Language returns the language whose rules this collator applies.
func (c Collator) Language() language.Tag {
	return c.tag
}

// String names the ordering.
func (c Collator) String() string {
	return "collate(" + c.tag.String() + ")"
}
