package selection

import (
	"slices"
	"testing"
)

func TestSetAddIsIdempotent(t *testing.T) {
	s := New()
	s.Add(7)
	s.Add(7)
	if s.Len() != 1 {
		t.Errorf("expected 1 member, got %d", s.Len())
	}
}

func TestToggleTwiceRestoresMembership(t *testing.T) {
	for _, start := range [][]uint{nil, {5}, {1, 5, 9}} {
		s := New(start...)
		before := s.Has(5)

		s.Toggle(5)
		if s.Has(5) == before {
			t.Errorf("expected first toggle to flip membership of 5 (start %v)", start)
		}
		s.Toggle(5)

		if s.Has(5) != before {
			t.Errorf("expected membership %v after two toggles, got %v", before, s.Has(5))
		}
	}
}

func TestClearAlwaysEmpties(t *testing.T) {
	for _, start := range [][]uint{nil, {1}, {1, 2, 3, 4}} {
		s := New(start...)
		s.Clear()
		if s.Len() != 0 {
			t.Errorf("expected empty set after clear, got %v", s.IDs())
		}
	}
}

func TestSelectAllAndRemove(t *testing.T) {
	s := New()
	s.SelectAll([]uint{3, 1, 2, 3})
	s.Remove(2)
	s.Remove(42)

	if got := s.IDs(); !slices.Equal(got, []uint{1, 3}) {
		t.Errorf("expected [1 3], got %v", got)
	}
}
