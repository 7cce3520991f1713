package flatset

import (
	"slices"
	"testing"

	"github.com/amp-labs/flatset/alloc"
	"github.com/amp-labs/flatset/compare"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingLess counts how often it is consulted.
type countingLess struct {
	calls *int
}

func (c countingLess) Less(a, b int) bool {
	*c.calls++

	return a < b
}

func TestInsertReturnsPosition(t *testing.T) {
	t.Parallel()

	s := Of(10, 30)

	it, inserted, err := s.Insert(20)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.Equal(t, 1, it.Index())
	assert.Equal(t, 20, it.Value())

	it, inserted, err = s.Insert(30)
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, 2, it.Index())
}

func TestInsertHint(t *testing.T) {
	t.Parallel()

	t.Run("into empty set", func(t *testing.T) {
		t.Parallel()

		s := New[int]()

		it, err := s.InsertHint(s.End(), 5)
		require.NoError(t, err)
		assert.Equal(t, 5, it.Value())
		assert.Equal(t, []int{5}, s.Entries())
	})

	t.Run("append at end uses one comparison", func(t *testing.T) {
		t.Parallel()

		calls := 0
		s := NewWithComparator[int](countingLess{calls: &calls})

		for i := range 100 {
			_, err := s.InsertHint(s.End(), i)
			require.NoError(t, err)
		}

		assert.Equal(t, 99, calls)
		assertSorted(t, s)
	})

	t.Run("prepend at begin uses one comparison", func(t *testing.T) {
		t.Parallel()

		calls := 0
		s := NewWithComparator[int](countingLess{calls: &calls})

		for i := 100; i > 0; i-- {
			_, err := s.InsertHint(s.Begin(), i)
			require.NoError(t, err)
		}

		assert.Equal(t, 99, calls)
		assert.Equal(t, 1, s.At(0))
		assert.Equal(t, 100, s.Size())
	})

	t.Run("accurate hint in the middle", func(t *testing.T) {
		t.Parallel()

		s := Of(10, 20, 40, 50)

		it, err := s.InsertHint(s.Find(40), 30)
		require.NoError(t, err)
		assert.Equal(t, 2, it.Index())
		assert.Equal(t, []int{10, 20, 30, 40, 50}, s.Entries())
	})

	t.Run("wrong hints still produce a sorted set", func(t *testing.T) {
		t.Parallel()

		s := Of(10, 20, 30, 40, 50)

		hints := []func() Iterator[int]{s.Begin, s.End, func() Iterator[int] { return s.Find(30) }}
		values := []int{45, 5, 35, 25, 55, 15, 0}

		for i, v := range values {
			it, err := s.InsertHint(hints[i%len(hints)](), v)
			require.NoError(t, err)
			assert.Equal(t, v, it.Value())
		}

		assertSorted(t, s)
		assert.Equal(t, []int{0, 5, 10, 15, 20, 25, 30, 35, 40, 45, 50, 55}, s.Entries())
	})

	t.Run("duplicate with hint", func(t *testing.T) {
		t.Parallel()

		s := Of(1, 2, 3)

		for _, hint := range []Iterator[int]{s.Begin(), s.Find(2), s.End()} {
			it, err := s.InsertHint(hint, 2)
			require.NoError(t, err)
			assert.Equal(t, 1, it.Index())
		}

		it, err := s.InsertHint(s.End(), 3)
		require.NoError(t, err)
		assert.Equal(t, 2, it.Index())

		it, err = s.InsertHint(s.Begin(), 1)
		require.NoError(t, err)
		assert.Equal(t, 0, it.Index())

		assert.Equal(t, []int{1, 2, 3}, s.Entries())
	})
}

func TestInsertRange(t *testing.T) {
	t.Parallel()

	t.Run("reserves once", func(t *testing.T) {
		t.Parallel()

		counting := alloc.NewCounting[int](nil)
		s := New(WithAllocator[int](counting))

		require.NoError(t, s.InsertRange([]int{9, 3, 7, 1, 5, 3}))

		assert.Equal(t, []int{1, 3, 5, 7, 9}, s.Entries())
		assert.Equal(t, int64(1), counting.Allocations())
		assert.Equal(t, 6, s.Capacity())
	})

	t.Run("empty input allocates nothing", func(t *testing.T) {
		t.Parallel()

		counting := alloc.NewCounting[int](nil)
		s := New(WithAllocator[int](counting))

		require.NoError(t, s.InsertRange(nil))
		assert.Equal(t, int64(0), counting.Allocations())
	})

	t.Run("refused reservation inserts nothing", func(t *testing.T) {
		t.Parallel()

		s := New(WithAllocator[int](alloc.NewLimited[int](alloc.NewBudget(4))))
		require.NoError(t, s.InsertAll(1, 2))

		err := s.InsertRange([]int{3, 4, 5})
		require.ErrorIs(t, err, alloc.ErrExhausted)
		assert.Equal(t, []int{1, 2}, s.Entries())
	})

	t.Run("seq keeps the prefix on failure", func(t *testing.T) {
		t.Parallel()

		s := New(WithAllocator[int](alloc.NewLimited[int](alloc.NewBudget(4))))

		err := s.InsertSeq(slices.Values([]int{5, 4, 3, 2, 1}))
		require.ErrorIs(t, err, alloc.ErrExhausted)
		assert.Equal(t, []int{2, 3, 4, 5}, s.Entries())
		assertSorted(t, s)
	})
}

func TestInsertFailureLeavesSetUnchanged(t *testing.T) {
	t.Parallel()

	budget := alloc.NewBudget(4)
	s := New(WithAllocator[int](alloc.NewLimited[int](budget)))
	require.NoError(t, s.InsertAll(40, 10, 30, 20))

	it, inserted, err := s.Insert(25)
	require.ErrorIs(t, err, alloc.ErrExhausted)
	assert.False(t, inserted)
	assert.True(t, it.IsEnd())

	_, err = s.InsertHint(s.End(), 50)
	require.ErrorIs(t, err, alloc.ErrExhausted)

	assert.Equal(t, []int{10, 20, 30, 40}, s.Entries())
	assertSorted(t, s)

	_, inserted, err = s.Insert(30)
	require.NoError(t, err, "duplicates need no room")
	assert.False(t, inserted)

	assert.Equal(t, 1, s.EraseKey(10))

	_, inserted, err = s.Insert(25)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.Equal(t, []int{20, 25, 30, 40}, s.Entries())
}

func TestEmplace(t *testing.T) {
	t.Parallel()

	s := Of(1, 3)
	built := 0

	build := func(v int) func() int {
		return func() int {
			built++

			return v
		}
	}

	it, inserted, err := s.Emplace(build(2))
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.Equal(t, 2, it.Value())

	_, inserted, err = s.Emplace(build(3))
	require.NoError(t, err)
	assert.False(t, inserted)

	assert.Equal(t, 2, built)
}

func TestErase(t *testing.T) {
	t.Parallel()

	t.Run("erase returns the follower", func(t *testing.T) {
		t.Parallel()

		s := Of(1, 2, 3, 4)

		next := s.Erase(s.Find(2))
		assert.Equal(t, 3, next.Value())

		next = s.Erase(s.Find(4))
		assert.True(t, next.IsEnd())
		assert.Equal(t, []int{1, 3}, s.Entries())
	})

	t.Run("erase range", func(t *testing.T) {
		t.Parallel()

		s := Of(1, 2, 3, 4, 5, 6)

		next := s.EraseRange(s.LowerBound(2), s.LowerBound(5))
		assert.Equal(t, 5, next.Value())
		assert.Equal(t, []int{1, 5, 6}, s.Entries())

		next = s.EraseRange(s.Begin(), s.Begin())
		assert.Equal(t, 1, next.Value())
		assert.Equal(t, 3, s.Size())

		s.EraseRange(s.Begin(), s.End())
		assert.True(t, s.Empty())
	})

	t.Run("erase func", func(t *testing.T) {
		t.Parallel()

		s := Of(1, 2, 3, 4, 5, 6, 7)

		removed := s.EraseFunc(func(v int) bool { return v%3 == 0 })
		assert.Equal(t, 2, removed)
		assert.Equal(t, []int{1, 2, 4, 5, 7}, s.Entries())
		assertSorted(t, s)
	})

	t.Run("clear keeps capacity", func(t *testing.T) {
		t.Parallel()

		s := Of(1, 2, 3)
		capacity := s.Capacity()

		s.Clear()
		assert.True(t, s.Empty())
		assert.Equal(t, capacity, s.Capacity())
		assert.True(t, s.Begin().Equal(s.End()))
	})

	t.Run("erase on empty set by key", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 0, New[int]().EraseKey(1))
	})
}

func TestInsertRangeErrorContext(t *testing.T) {
	t.Parallel()

	less := compare.Ordered[int]{}
	s := NewWithComparator[int](less, WithAllocator[int](alloc.NewLimited[int](alloc.NewBudget(5))))
	require.NoError(t, s.InsertAll(1, 2, 3, 4))

	err := s.InsertSeq(slices.Values([]int{0, 10}))
	require.ErrorIs(t, err, alloc.ErrExhausted)
	assert.Contains(t, err.Error(), "inserting element 0")
}
