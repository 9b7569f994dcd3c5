package liststore

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/promptmarket/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "prompts"

type contractStore interface {
	Store
	Swapper
	Pinger
}

// runContract checks the behaviour every adapter must share.
func runContract(t *testing.T, newStore func(t *testing.T) contractStore) {
	ctx := context.Background()

	push := func(t *testing.T, s Store, items ...string) {
		t.Helper()
		for _, it := range items {
			require.NoError(t, s.PushFront(ctx, testKey, it))
		}
	}

	t.Run("missing list reads empty", func(t *testing.T) {
		s := newStore(t)
		got, err := s.Range(ctx, testKey, 0, -1)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("push front keeps newest first", func(t *testing.T) {
		s := newStore(t)
		push(t, s, "a", "b", "c")

		got, err := s.Range(ctx, testKey, 0, -1)
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "b", "a"}, got)
	})

	t.Run("range index semantics", func(t *testing.T) {
		s := newStore(t)
		push(t, s, "a", "b", "c")

		tests := []struct {
			start, stop int64
			want        []string
		}{
			{0, 0, []string{"c"}},
			{1, 5, []string{"b", "a"}},
			{-2, -1, []string{"b", "a"}},
			{-100, 0, []string{"c"}},
			{0, -3, []string{"c"}},
			{5, 10, nil},
			{2, 1, nil},
		}
		for _, tt := range tests {
			got, err := s.Range(ctx, testKey, tt.start, tt.stop)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, got, "range(%d,%d)", tt.start, tt.stop)
				continue
			}
			assert.Equal(t, tt.want, got, "range(%d,%d)", tt.start, tt.stop)
		}
	})

	t.Run("trim keeps the front", func(t *testing.T) {
		s := newStore(t)
		for i := 1; i <= 5; i++ {
			push(t, s, fmt.Sprintf("item-%d", i))
		}

		require.NoError(t, s.Trim(ctx, testKey, 0, 2))
		got, err := s.Range(ctx, testKey, 0, -1)
		require.NoError(t, err)
		assert.Equal(t, []string{"item-5", "item-4", "item-3"}, got)

		require.NoError(t, s.Trim(ctx, testKey, 0, 999))
		got, err = s.Range(ctx, testKey, 0, -1)
		require.NoError(t, err)
		assert.Len(t, got, 3)

		require.NoError(t, s.Trim(ctx, testKey, 5, 10))
		got, err = s.Range(ctx, testKey, 0, -1)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("clear", func(t *testing.T) {
		s := newStore(t)
		push(t, s, "a", "b")
		require.NoError(t, s.Clear(ctx, testKey))
		require.NoError(t, s.Clear(ctx, testKey), "clearing a missing list is fine")

		got, err := s.Range(ctx, testKey, 0, -1)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("keys are independent", func(t *testing.T) {
		s := newStore(t)
		push(t, s, "a")
		require.NoError(t, s.PushFront(ctx, "other", "z"))

		got, err := s.Range(ctx, "other", 0, -1)
		require.NoError(t, err)
		assert.Equal(t, []string{"z"}, got)
	})

	t.Run("swap replaces when unchanged", func(t *testing.T) {
		s := newStore(t)
		push(t, s, "a", "b")

		require.NoError(t, s.Swap(ctx, testKey, []string{"b", "a"}, []string{"x", "y", "z"}))
		got, err := s.Range(ctx, testKey, 0, -1)
		require.NoError(t, err)
		assert.Equal(t, []string{"x", "y", "z"}, got)
	})

	t.Run("swap rejects stale snapshot", func(t *testing.T) {
		s := newStore(t)
		push(t, s, "a", "b")

		err := s.Swap(ctx, testKey, []string{"a"}, []string{"x"})
		assert.True(t, errors.Is(err, common.ErrVersionConflict), "err=%v", err)

		got, err := s.Range(ctx, testKey, 0, -1)
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a"}, got, "list must be untouched")
	})

	t.Run("swap on missing list and to empty", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Swap(ctx, testKey, nil, []string{"x"}))
		require.NoError(t, s.Swap(ctx, testKey, []string{"x"}, nil))

		got, err := s.Range(ctx, testKey, 0, -1)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("ping", func(t *testing.T) {
		require.NoError(t, newStore(t).Ping(ctx))
	})
}

func TestBounds(t *testing.T) {
	tests := []struct {
		start, stop int64
		n           int
		lo, hi      int
	}{
		{0, -1, 3, 0, 3},
		{0, 999, 3, 0, 3},
		{1, 1, 3, 1, 2},
		{-1, -1, 3, 2, 3},
		{-5, 1, 3, 0, 2},
		{3, 5, 3, 0, 0},
		{2, 1, 3, 0, 0},
		{0, -1, 0, 0, 0},
		{0, -4, 3, 0, 0},
	}
	for _, tt := range tests {
		lo, hi := bounds(tt.start, tt.stop, tt.n)
		assert.Equal(t, [2]int{tt.lo, tt.hi}, [2]int{lo, hi}, "bounds(%d,%d,%d)", tt.start, tt.stop, tt.n)
	}
}

func TestMemoryStore_Contract(t *testing.T) {
	runContract(t, func(t *testing.T) contractStore {
		return NewMemoryStore()
	})
}

func TestMemoryStore_RangeReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.PushFront(ctx, testKey, "a"))

	got, err := s.Range(ctx, testKey, 0, -1)
	require.NoError(t, err)
	got[0] = "mutated"

	again, err := s.Range(ctx, testKey, 0, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, again)
}
