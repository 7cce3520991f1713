package flatset

import (
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewThreadSafe(t *testing.T) {
	t.Parallel()

	t.Run("nil stays nil", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, NewThreadSafe[int](nil))
	})

	t.Run("wrapping twice returns the same decorator", func(t *testing.T) {
		t.Parallel()

		safe := NewThreadSafe[int](New[int]())

		assert.Same(t, safe, NewThreadSafe(safe))
	})

	t.Run("delegates", func(t *testing.T) {
		t.Parallel()

		safe := NewThreadSafe[int](New[int]())

		added, err := safe.Add(2)
		require.NoError(t, err)
		assert.True(t, added)

		require.NoError(t, safe.AddAll(3, 1, 2))
		assert.Equal(t, []int{1, 2, 3}, safe.Entries())
		assert.Equal(t, []int{1, 2, 3}, slices.Collect(safe.Seq()))
		assert.Equal(t, []int{2}, safe.Between(2, 3))
		assert.True(t, safe.Contains(3))
		assert.Equal(t, 3, safe.Size())
		assert.False(t, safe.Empty())

		first, ok := safe.First()
		assert.True(t, ok)
		assert.Equal(t, 1, first)

		last, ok := safe.Last()
		assert.True(t, ok)
		assert.Equal(t, 3, last)

		assert.True(t, safe.Remove(2))
		assert.False(t, safe.Remove(2))

		safe.Clear()
		assert.True(t, safe.Empty())
	})
}

func TestThreadSafeConcurrentAccess(t *testing.T) {
	t.Parallel()

	safe := NewThreadSafe[int](New[int]())

	const (
		writers   = 8
		perWriter = 200
	)

	var wg sync.WaitGroup

	for w := range writers {
		wg.Add(2)

		go func() {
			defer wg.Done()

			for i := range perWriter {
				_, err := safe.Add(w*perWriter + i)
				assert.NoError(t, err)
			}
		}()

		go func() {
			defer wg.Done()

			for range perWriter {
				entries := safe.Entries()
				assert.True(t, slices.IsSorted(entries))
				_ = safe.Contains(w)
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, writers*perWriter, safe.Size())
	assert.True(t, slices.IsSorted(safe.Entries()))
}

func TestThreadSafeSeqIsSnapshot(t *testing.T) {
	t.Parallel()

	safe := NewThreadSafe[int](New[int]())
	require.NoError(t, safe.AddAll(1, 2, 3))

	var seen []int

	for v := range safe.Seq() {
		seen = append(seen, v)

		// Mutating while iterating does not deadlock and is not observed.
		_, err := safe.Add(v + 10)
		require.NoError(t, err)
	}

	assert.Equal(t, []int{1, 2, 3}, seen)
	assert.Equal(t, 6, safe.Size())
}
