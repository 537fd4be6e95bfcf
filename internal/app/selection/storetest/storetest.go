// Package storetest checks that a selection.Store behaves like a per-user Set.
package storetest

import (
	"context"
	"slices"
	"testing"

	"crm/internal/app/selection"
)

// Run exercises newStore against the Set properties every Store must keep.
// newStore must return an empty store on each call.
func Run(t *testing.T, newStore func(t *testing.T) selection.Store) {
	ctx := context.Background()

	t.Run("duplicate add is a no-op", func(t *testing.T) {
		store := newStore(t)
		mustDo(t, store.Add(ctx, 1, "courses", 7, 7))
		mustDo(t, store.Add(ctx, 1, "courses", 7))
		expectIDs(t, store, 1, "courses", []uint{7})
	})

	t.Run("ids come back sorted", func(t *testing.T) {
		store := newStore(t)
		mustDo(t, store.Add(ctx, 1, "courses", 30, 4, 12))
		expectIDs(t, store, 1, "courses", []uint{4, 12, 30})
	})

	t.Run("toggle twice restores membership", func(t *testing.T) {
		for _, start := range [][]uint{nil, {5}, {1, 5, 9}} {
			store := newStore(t)
			mustDo(t, store.Add(ctx, 1, "courses", start...))

			on, err := store.Toggle(ctx, 1, "courses", 5)
			mustDo(t, err)
			if on == slices.Contains(start, 5) {
				t.Errorf("expected first toggle to flip 5 (start %v)", start)
			}
			_, err = store.Toggle(ctx, 1, "courses", 5)
			mustDo(t, err)

			want := slices.Clone(start)
			if want == nil {
				want = []uint{}
			}
			expectIDs(t, store, 1, "courses", want)
		}
	})

	t.Run("remove ignores absent ids", func(t *testing.T) {
		store := newStore(t)
		mustDo(t, store.Add(ctx, 1, "courses", 1, 2, 3))
		mustDo(t, store.Remove(ctx, 1, "courses", 2, 42))
		expectIDs(t, store, 1, "courses", []uint{1, 3})
	})

	t.Run("clear empties the set", func(t *testing.T) {
		store := newStore(t)
		mustDo(t, store.Add(ctx, 1, "courses", 1, 2))
		mustDo(t, store.Clear(ctx, 1, "courses"))
		expectIDs(t, store, 1, "courses", []uint{})

		mustDo(t, store.Clear(ctx, 1, "courses"))
		expectIDs(t, store, 1, "courses", []uint{})
	})

	t.Run("replace swaps the selection", func(t *testing.T) {
		store := newStore(t)
		mustDo(t, store.Add(ctx, 1, "courses", 1, 2))
		mustDo(t, store.Replace(ctx, 1, "courses", 9, 3, 9))
		expectIDs(t, store, 1, "courses", []uint{3, 9})

		mustDo(t, store.Replace(ctx, 1, "courses"))
		expectIDs(t, store, 1, "courses", []uint{})
	})

	t.Run("users and scopes are isolated", func(t *testing.T) {
		store := newStore(t)
		mustDo(t, store.Add(ctx, 1, "courses", 10, 11))
		mustDo(t, store.Add(ctx, 1, "pricing_models", 20))
		mustDo(t, store.Add(ctx, 2, "courses", 30))

		mustDo(t, store.Clear(ctx, 1, "courses"))

		expectIDs(t, store, 1, "courses", []uint{})
		expectIDs(t, store, 1, "pricing_models", []uint{20})
		expectIDs(t, store, 2, "courses", []uint{30})
	})
}

func mustDo(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func expectIDs(t *testing.T, store selection.Store, userID uint, scope string, want []uint) {
	t.Helper()
	got, err := store.Selected(context.Background(), userID, scope)
	if err != nil {
		t.Fatalf("selected: %v", err)
	}
	if len(got) == 0 && len(want) == 0 {
		return
	}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v for user %d/%s, got %v", want, userID, scope, got)
	}
}
