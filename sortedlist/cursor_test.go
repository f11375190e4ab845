package sortedlist

import (
	"cmp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor(t *testing.T) {
	t.Parallel()

	t.Run("empty list is exhausted immediately", func(t *testing.T) {
		t.Parallel()

		list := newTestList[int](t)
		cur := list.Cursor()

		out := -1
		assert.False(t, cur.Next(&out))
		assert.Equal(t, -1, out, "out must be left untouched")
	})

	t.Run("visits elements in order then stays exhausted", func(t *testing.T) {
		t.Parallel()

		list := newTestList[int](t)
		for _, v := range []int{30, 10, 20} {
			require.NoError(t, list.Insert(v, cmp.Compare[int]))
		}

		cur := list.Cursor()

		var (
			got []int
			out int
		)

		for cur.Next(&out) {
			got = append(got, out)
		}

		assert.Equal(t, []int{10, 20, 30}, got)
		assert.False(t, cur.Next(&out))
		assert.False(t, cur.Next(&out))
		assert.Equal(t, 30, out)
		assert.False(t, cur.Stale())
	})

	t.Run("cursors advance independently", func(t *testing.T) {
		t.Parallel()

		list := newTestList[string](t)
		for _, v := range []string{"a", "b", "c"} {
			require.NoError(t, list.Insert(v, cmp.Compare[string]))
		}

		first := list.Cursor()
		second := list.Cursor()

		var a, b string

		require.True(t, first.Next(&a))
		require.True(t, first.Next(&a))
		require.True(t, second.Next(&b))

		assert.Equal(t, "b", a)
		assert.Equal(t, "a", b)
	})

	t.Run("reports changes since reset", func(t *testing.T) {
		t.Parallel()

		list := newTestList[int](t)
		require.NoError(t, list.Insert(1, cmp.Compare[int]))

		cur := list.Cursor()
		assert.False(t, cur.Stale())

		// A duplicate does not change the chain.
		require.NoError(t, list.Insert(1, cmp.Compare[int]))
		assert.False(t, cur.Stale())

		require.NoError(t, list.Insert(0, cmp.Compare[int]))
		assert.True(t, cur.Stale())

		// The cursor was positioned before 0 was linked at the head.
		var out int
		require.True(t, cur.Next(&out))
		assert.Equal(t, 1, out)

		cur.Reset()
		assert.False(t, cur.Stale())
		require.True(t, cur.Next(&out))
		assert.Equal(t, 0, out)
	})

	t.Run("nil out skips without copying", func(t *testing.T) {
		t.Parallel()

		list := newTestList[int](t)
		require.NoError(t, list.Insert(1, cmp.Compare[int]))
		require.NoError(t, list.Insert(2, cmp.Compare[int]))

		cur := list.Cursor()
		require.True(t, cur.Next(nil))

		var out int
		require.True(t, cur.Next(&out))
		assert.Equal(t, 2, out)
	})
}
