package flatset

import (
	"testing"

	"github.com/amp-labs/flatset/alloc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labelled(t *testing.T, label string, a alloc.Allocator[int], values ...int) *FlatSet[int] {
	t.Helper()

	s := NewWithComparator[int](labelledLess{label: label}, WithAllocator(a))
	require.NoError(t, s.InsertAll(values...))

	return s
}

func TestClone(t *testing.T) {
	t.Parallel()

	t.Run("copies comparator and allocator", func(t *testing.T) {
		t.Parallel()

		src := labelled(t, "src", alloc.Tagged[int]{ID: 1}, 3, 1, 2)

		c, err := src.Clone()
		require.NoError(t, err)

		assert.Equal(t, []int{1, 2, 3}, c.Entries())
		assert.Equal(t, labelledLess{label: "src"}, c.KeyComp())
		assert.Equal(t, alloc.Tagged[int]{ID: 1}, c.Allocator())
		assert.True(t, c.Equal(src))
	})

	t.Run("copy is independent", func(t *testing.T) {
		t.Parallel()

		src := Of(1, 2)

		c, err := src.Clone()
		require.NoError(t, err)

		_, _, err = c.Insert(3)
		require.NoError(t, err)
		assert.Equal(t, 1, src.EraseKey(1))

		assert.Equal(t, []int{2}, src.Entries())
		assert.Equal(t, []int{1, 2, 3}, c.Entries())
	})

	t.Run("explicit allocator", func(t *testing.T) {
		t.Parallel()

		src := labelled(t, "src", alloc.Tagged[int]{ID: 1}, 1)

		c, err := src.CloneWithAllocator(alloc.Tagged[int]{ID: 2})
		require.NoError(t, err)
		assert.Equal(t, alloc.Tagged[int]{ID: 2}, c.Allocator())
	})

	t.Run("refused by allocator", func(t *testing.T) {
		t.Parallel()

		src := Of(1, 2, 3)

		_, err := src.CloneWithAllocator(alloc.NewLimited[int](alloc.NewBudget(1)))
		require.ErrorIs(t, err, alloc.ErrExhausted)
	})
}

func TestCopyFrom(t *testing.T) {
	t.Parallel()

	dst := labelled(t, "dst", alloc.Tagged[int]{ID: 1}, 100, 200)
	src := labelled(t, "src", alloc.Tagged[int]{ID: 2}, 3, 1)

	require.NoError(t, dst.CopyFrom(src))

	assert.Equal(t, []int{1, 3}, dst.Entries())
	assert.Equal(t, labelledLess{label: "src"}, dst.KeyComp())
	assert.Equal(t, alloc.Tagged[int]{ID: 1}, dst.Allocator())
	assert.Equal(t, []int{1, 3}, src.Entries())

	require.NoError(t, dst.CopyFrom(dst))
	assert.Equal(t, []int{1, 3}, dst.Entries())

	t.Run("larger source fits in spare capacity", func(t *testing.T) {
		t.Parallel()

		spare := New(WithCapacity[int](8))
		require.NoError(t, spare.InsertAll(1))

		require.NotPanics(t, func() {
			require.NoError(t, spare.CopyFrom(Of(1, 2, 3, 4, 5)))
		})
		assert.Equal(t, []int{1, 2, 3, 4, 5}, spare.Entries())
		assert.Equal(t, 8, spare.Capacity())
	})

	t.Run("failure leaves destination unchanged", func(t *testing.T) {
		t.Parallel()

		small := labelled(t, "small", alloc.NewLimited[int](alloc.NewBudget(1)), 7)
		big := labelled(t, "big", nil, 1, 2, 3)

		require.ErrorIs(t, small.CopyFrom(big), alloc.ErrExhausted)
		assert.Equal(t, []int{7}, small.Entries())
		assert.Equal(t, labelledLess{label: "small"}, small.KeyComp())
	})
}

func TestMove(t *testing.T) {
	t.Parallel()

	t.Run("propagating allocator moves with the buffer", func(t *testing.T) {
		t.Parallel()

		a := alloc.Tagged[int]{ID: 1, Propagate: true}
		src := labelled(t, "src", a, 2, 1)

		dst := src.Move()

		assert.Equal(t, []int{1, 2}, dst.Entries())
		assert.Equal(t, a, dst.Allocator())
		assert.Equal(t, labelledLess{label: "src"}, dst.KeyComp())
		assert.True(t, src.Empty())
		assert.Equal(t, labelledLess{label: "src"}, src.KeyComp(), "source keeps a usable comparator")

		_, _, err := src.Insert(5)
		require.NoError(t, err, "moved-from set is still usable")
	})

	t.Run("non-propagating allocator stays behind", func(t *testing.T) {
		t.Parallel()

		a := alloc.Tagged[int]{ID: 1}
		src := labelled(t, "src", a, 2, 1)

		dst := src.Move()

		assert.Equal(t, []int{1, 2}, dst.Entries())
		assert.Equal(t, alloc.Heap[int]{}, dst.Allocator())
		assert.Equal(t, a, src.Allocator())
		assert.True(t, src.Empty())
	})

	t.Run("with allocator", func(t *testing.T) {
		t.Parallel()

		src := labelled(t, "src", alloc.Tagged[int]{ID: 1}, 4, 5)

		dst, err := src.MoveWithAllocator(alloc.Tagged[int]{ID: 9})
		require.NoError(t, err)
		assert.Equal(t, alloc.Tagged[int]{ID: 9}, dst.Allocator())
		assert.Equal(t, []int{4, 5}, dst.Entries())
		assert.True(t, src.Empty())
	})

	t.Run("with allocator refused", func(t *testing.T) {
		t.Parallel()

		src := Of(1, 2, 3)

		_, err := src.MoveWithAllocator(alloc.NewLimited[int](alloc.NewBudget(2)))
		require.ErrorIs(t, err, alloc.ErrExhausted)
		assert.Equal(t, []int{1, 2, 3}, src.Entries())
	})
}

func TestMoveFrom(t *testing.T) {
	t.Parallel()

	t.Run("comparators are exchanged", func(t *testing.T) {
		t.Parallel()

		dst := labelled(t, "dst", alloc.Tagged[int]{ID: 1}, 9)
		src := labelled(t, "src", alloc.Tagged[int]{ID: 2}, 2, 1)

		require.NoError(t, dst.MoveFrom(src))

		assert.Equal(t, []int{1, 2}, dst.Entries())
		assert.Equal(t, labelledLess{label: "src"}, dst.KeyComp())
		assert.Equal(t, labelledLess{label: "dst"}, src.KeyComp())
		assert.Equal(t, alloc.Tagged[int]{ID: 1}, dst.Allocator())
		assert.True(t, src.Empty())
	})

	t.Run("propagating allocator is adopted", func(t *testing.T) {
		t.Parallel()

		dst := labelled(t, "dst", alloc.Tagged[int]{ID: 1}, 9)
		src := labelled(t, "src", alloc.Tagged[int]{ID: 2, Propagate: true}, 1)

		require.NoError(t, dst.MoveFrom(src))
		assert.Equal(t, alloc.Tagged[int]{ID: 2, Propagate: true}, dst.Allocator())
	})

	t.Run("copy into spare capacity", func(t *testing.T) {
		t.Parallel()

		dst := NewWithComparator[int](labelledLess{label: "dst"},
			WithAllocator[int](alloc.Tagged[int]{ID: 1}), WithCapacity[int](8))
		require.NoError(t, dst.InsertAll(9))

		src := labelled(t, "src", alloc.Tagged[int]{ID: 2}, 5, 4, 3, 2, 1)

		require.NotPanics(t, func() {
			require.NoError(t, dst.MoveFrom(src))
		})
		assert.Equal(t, []int{1, 2, 3, 4, 5}, dst.Entries())
		assert.Equal(t, 8, dst.Capacity())
		assert.True(t, src.Empty())
	})

	t.Run("self move", func(t *testing.T) {
		t.Parallel()

		s := labelled(t, "self", nil, 1, 2)

		require.NoError(t, s.MoveFrom(s))
		assert.Equal(t, []int{1, 2}, s.Entries())
	})

	t.Run("failure changes nothing", func(t *testing.T) {
		t.Parallel()

		dst := labelled(t, "dst", alloc.NewLimited[int](alloc.NewBudget(1)), 9)
		src := labelled(t, "src", alloc.Tagged[int]{ID: 2}, 1, 2, 3)

		require.ErrorIs(t, dst.MoveFrom(src), alloc.ErrExhausted)
		assert.Equal(t, []int{9}, dst.Entries())
		assert.Equal(t, []int{1, 2, 3}, src.Entries())
		assert.Equal(t, labelledLess{label: "dst"}, dst.KeyComp())
	})
}

func TestAssign(t *testing.T) {
	t.Parallel()

	s := labelled(t, "keep", alloc.Tagged[int]{ID: 3}, 100)

	require.NoError(t, s.Assign(3, 1, 2, 1))

	assert.Equal(t, []int{1, 2, 3}, s.Entries())
	assert.Equal(t, labelledLess{label: "keep"}, s.KeyComp())
	assert.Equal(t, alloc.Tagged[int]{ID: 3}, s.Allocator())

	require.NoError(t, s.Assign())
	assert.True(t, s.Empty())
}

func TestSwap(t *testing.T) {
	t.Parallel()

	a := labelled(t, "a", alloc.Tagged[int]{ID: 1}, 1, 2, 3)
	b := labelled(t, "b", alloc.Tagged[int]{ID: 2}, 10)

	a.Swap(b)

	assert.Equal(t, []int{10}, a.Entries())
	assert.Equal(t, []int{1, 2, 3}, b.Entries())
	assert.Equal(t, labelledLess{label: "b"}, a.KeyComp())
	assert.Equal(t, labelledLess{label: "a"}, b.KeyComp())
	assert.Equal(t, alloc.Tagged[int]{ID: 2}, a.Allocator())
	assert.Equal(t, alloc.Tagged[int]{ID: 1}, b.Allocator())
}

func TestReleaseCreditsBudget(t *testing.T) {
	t.Parallel()

	budget := alloc.NewBudget(64)
	a := alloc.NewLimited[int](budget)

	s := New(WithAllocator[int](a))
	require.NoError(t, s.InsertAll(1, 2, 3, 4, 5))

	c, err := s.Clone()
	require.NoError(t, err)
	assert.Equal(t, int64(10), budget.Used())

	s.Release()
	c.Release()
	assert.Equal(t, int64(0), budget.Used())
}
