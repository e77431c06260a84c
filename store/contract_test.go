// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract checks the behavior every backend must share. newStore
// must return an empty store that is closed by the test's cleanup.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("first increment creates tally", func(t *testing.T) {
		st := newStore(t)

		tally, err := st.Increment(ctx, "stage1", "A")
		require.NoError(t, err)

		assert.Equal(t, "stage1", tally.Stage)
		assert.Equal(t, map[string]int64{"A": 1}, tally.Counts)
	})

	t.Run("repeated increments add exactly one each", func(t *testing.T) {
		st := newStore(t)

		_, err := st.Increment(ctx, "stage2", "no")
		require.NoError(t, err)
		before, err := st.Increment(ctx, "stage2", "yes")
		require.NoError(t, err)

		_, err = st.Increment(ctx, "stage2", "yes")
		require.NoError(t, err)
		after, err := st.Increment(ctx, "stage2", "yes")
		require.NoError(t, err)

		assert.Equal(t, before.Count("yes")+2, after.Count("yes"))
		assert.Equal(t, before.Count("no"), after.Count("no"), "other labels must not change")
	})

	t.Run("new label joins existing tally", func(t *testing.T) {
		st := newStore(t)

		_, err := st.Increment(ctx, "stage1", "A")
		require.NoError(t, err)
		_, err = st.Increment(ctx, "stage1", "A")
		require.NoError(t, err)

		tally, err := st.Increment(ctx, "stage1", "B")
		require.NoError(t, err)

		assert.Equal(t, map[string]int64{"A": 2, "B": 1}, tally.Counts)
		assert.Equal(t, int64(3), tally.Total())
	})

	t.Run("stages are independent", func(t *testing.T) {
		st := newStore(t)

		_, err := st.Increment(ctx, "stage2", "yes")
		require.NoError(t, err)
		tally, err := st.Increment(ctx, "stage3", "yes")
		require.NoError(t, err)

		assert.Equal(t, map[string]int64{"yes": 1}, tally.Counts)

		_, err = st.Get(ctx, "stage1")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("get returns stored tally", func(t *testing.T) {
		st := newStore(t)

		_, err := st.Get(ctx, "stage3")
		require.ErrorIs(t, err, ErrNotFound)

		_, err = st.Increment(ctx, "stage3", "yes")
		require.NoError(t, err)
		last, err := st.Increment(ctx, "stage3", "no")
		require.NoError(t, err)

		got, err := st.Get(ctx, "stage3")
		require.NoError(t, err)
		assert.Equal(t, last, got)
	})

	t.Run("invalid keys are rejected without writing", func(t *testing.T) {
		st := newStore(t)

		cases := []struct {
			stage string
			label string
		}{
			{"", "A"},
			{"stage1", ""},
			{"stage1", "_id"},
			{"stage1", "$set"},
			{"stage1", "a.b"},
		}
		for _, tc := range cases {
			_, err := st.Increment(ctx, tc.stage, tc.label)
			assert.ErrorIs(t, err, ErrInvalidKey, "stage=%q label=%q", tc.stage, tc.label)
		}

		_, err := st.Get(ctx, "stage1")
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = st.Get(ctx, "")
		assert.ErrorIs(t, err, ErrInvalidKey)
	})

	t.Run("concurrent increments are not lost", func(t *testing.T) {
		st := newStore(t)

		const n = 40
		var wg sync.WaitGroup
		seen := make([]int64, n)
		errs := make([]error, n)

		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				tally, err := st.Increment(ctx, "stage3", "yes")
				errs[i] = err
				seen[i] = tally.Count("yes")
			}(i)
		}
		wg.Wait()

		for _, err := range errs {
			require.NoError(t, err)
		}

		tally, err := st.Get(ctx, "stage3")
		require.NoError(t, err)
		assert.Equal(t, int64(n), tally.Count("yes"))

		// Each caller observed its own increment
		sort.Slice(seen, func(i, j int) bool { return seen[i] < seen[j] })
		for i, v := range seen {
			assert.Equal(t, int64(i+1), v)
		}
	})
}
