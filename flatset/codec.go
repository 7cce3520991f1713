package flatset

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrNoComparator is returned when decoding into a set that was not
// constructed. A comparator cannot be decoded, so the target must come from
// one of the constructors.
var ErrNoComparator = errors.New("flatset has no comparator")

// MarshalJSON encodes the set as a JSON array in ascending order.
func (s *FlatSet[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Entries())
}

// UnmarshalJSON replaces the contents of s with the decoded array, which may
// be unsorted and contain duplicates. s must have been constructed; it keeps
// its comparator and allocator. Invalid input leaves s unchanged.
//
// Example:
//
//	s := flatset.New[int]()
//	err := json.Unmarshal([]byte(`[3, 1, 2, 3]`), s) // s.Entries() == [1 2 3]
func (s *FlatSet[T]) UnmarshalJSON(data []byte) error {
	if s == nil || s.less == nil {
		return ErrNoComparator
	}

	var values []T
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("decoding flatset: %w", err)
	}

	return s.Assign(values...)
}

// MarshalYAML encodes the set as a YAML sequence in ascending order.
func (s *FlatSet[T]) MarshalYAML() (any, error) {
	return s.Entries(), nil
}

// UnmarshalYAML replaces the contents of s with the decoded sequence, with
// the same rules as UnmarshalJSON.
func (s *FlatSet[T]) UnmarshalYAML(value *yaml.Node) error {
	if s == nil || s.less == nil {
		return ErrNoComparator
	}

	var values []T
	if err := value.Decode(&values); err != nil {
		return fmt.Errorf("decoding flatset: %w", err)
	}

	return s.Assign(values...)
}

// String formats the elements in ascending order, like a slice.
func (s *FlatSet[T]) String() string {
	return fmt.Sprint(s.values())
}
