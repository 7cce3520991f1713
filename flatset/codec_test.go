package flatset

import (
	"encoding/json"
	"testing"

	"github.com/amp-labs/flatset/compare"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("encodes sorted array", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(Of("pear", "apple", "fig"))
		require.NoError(t, err)
		assert.JSONEq(t, `["apple","fig","pear"]`, string(data))
	})

	t.Run("decodes unsorted input", func(t *testing.T) {
		t.Parallel()

		s := NewWithComparator[int](compare.Reverse[int]{Inner: compare.Ordered[int]{}})

		require.NoError(t, json.Unmarshal([]byte(`[3, 1, 2, 3]`), s))
		assert.Equal(t, []int{3, 2, 1}, s.Entries())
	})

	t.Run("decoding replaces contents", func(t *testing.T) {
		t.Parallel()

		s := Of(100)

		require.NoError(t, json.Unmarshal([]byte(`[1]`), s))
		assert.Equal(t, []int{1}, s.Entries())
	})

	t.Run("invalid input leaves set unchanged", func(t *testing.T) {
		t.Parallel()

		s := Of(1, 2)

		require.Error(t, json.Unmarshal([]byte(`[1, "two"]`), s))
		assert.Equal(t, []int{1, 2}, s.Entries())
	})

	t.Run("zero value cannot decode", func(t *testing.T) {
		t.Parallel()

		var s FlatSet[int]

		require.ErrorIs(t, json.Unmarshal([]byte(`[1]`), &s), ErrNoComparator)
	})

	t.Run("as struct field", func(t *testing.T) {
		t.Parallel()

		type doc struct {
			Tags *FlatSet[string] `json:"tags"`
		}

		in := doc{Tags: Of("b", "a")}

		data, err := json.Marshal(in)
		require.NoError(t, err)
		assert.JSONEq(t, `{"tags":["a","b"]}`, string(data))

		out := doc{Tags: New[string]()}
		require.NoError(t, json.Unmarshal(data, &out))
		assert.True(t, out.Tags.Equal(in.Tags))
	})
}

func TestYAML(t *testing.T) {
	t.Parallel()

	data, err := yaml.Marshal(Of(3, 1, 2))
	require.NoError(t, err)
	assert.Equal(t, "- 1\n- 2\n- 3\n", string(data))

	s := New[int]()
	require.NoError(t, yaml.Unmarshal([]byte("[5, 4, 5]"), s))
	assert.Equal(t, []int{4, 5}, s.Entries())

	var zero FlatSet[int]
	require.ErrorIs(t, yaml.Unmarshal([]byte("[1]"), &zero), ErrNoComparator)
}

func TestString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "[1 2 3]", Of(3, 2, 1).String())
	assert.Equal(t, "[]", New[int]().String())
}
