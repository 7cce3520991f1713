package main

import (
	"errors"
	"fmt"

	"github.com/amp-labs/flatset/alloc"
	"github.com/amp-labs/flatset/compare"
	"golang.org/x/text/language"
)

var (
	// ErrUnknownOrder is returned for an --order this tool does not know.
	ErrUnknownOrder = errors.New("unknown order")
	// ErrBadLocale is returned when --locale is not a BCP 47 tag.
	ErrBadLocale = errors.New("invalid locale")
)

// allocatorName labels the session's allocator in the exported metrics.
const allocatorName = "flatsetctl"

// newComparator builds the ordering named by order.
func newComparator(order, locale string, reverse bool) (compare.Comparator[string], error) { //nolint:ireturn
	var less compare.Comparator[string]

	switch order {
	case "", "lexical":
		less = compare.Ordered[string]{}
	case "natural":
		less = compare.Natural{}
	case "semver":
		less = compare.SemverStrings{}
	case "collate":
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrBadLocale, locale, err)
		}

		less = compare.NewCollator(tag)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOrder, order)
	}

	if reverse {
		less = compare.Reverse[string]{Inner: less}
	}

	return less, nil
}

// newAllocator returns the session allocator and, when budget is positive,
// the budget it draws from.
func newAllocator(budget int64) (alloc.Allocator[string], *alloc.Budget) { //nolint:ireturn
	if budget <= 0 {
		return alloc.Instrument[string](allocatorName, alloc.Heap[string]{}), nil
	}

	b := alloc.NewBudget(budget)

	return alloc.Instrument[string](allocatorName, alloc.NewLimited[string](b)), b
}
