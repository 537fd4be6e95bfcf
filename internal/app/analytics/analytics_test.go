package analytics

import (
	"math"
	"testing"
)

type priced struct {
	price *float64
	cat   string
}

func p(v float64) *float64 { return &v }

func summarize(items []priced) Summary {
	return Summarize(items,
		func(i priced) float64 { return Deref(i.price) },
		func(i priced) string { return i.cat },
	)
}

func TestSummarizeEmpty(t *testing.T) {
	s := summarize(nil)
	if s.Count != 0 || s.Sum != 0 || s.Mean != 0 || s.Min != 0 || s.Max != 0 {
		t.Errorf("expected zero summary, got %+v", s)
	}
	if s.Categories == nil || len(s.Categories) != 0 {
		t.Errorf("expected empty categories, got %#v", s.Categories)
	}
}

func TestSummarizeMeanIsSumOverCount(t *testing.T) {
	lists := [][]priced{
		{{price: p(100), cat: "A"}},
		{{price: p(100), cat: "A"}, {price: p(300), cat: "B"}},
		{{price: p(12.5), cat: "A"}, {price: nil, cat: "A"}, {price: p(7), cat: "C"}},
	}
	for _, items := range lists {
		s := summarize(items)
		if math.Abs(s.Mean-s.Sum/float64(s.Count)) > 1e-9 {
			t.Errorf("expected mean %v, got %v", s.Sum/float64(s.Count), s.Mean)
		}
	}
}

func TestSummarizeBreakdown(t *testing.T) {
	items := []priced{
		{price: p(300), cat: "B"},
		{price: p(100), cat: "A"},
		{price: nil, cat: "B"},
		{price: p(50), cat: "C"},
		{price: p(25), cat: "A"},
	}

	s := summarize(items)

	if s.Count != 5 {
		t.Errorf("expected count 5, got %d", s.Count)
	}
	if s.Sum != 475 {
		t.Errorf("expected sum 475, got %v", s.Sum)
	}
	if s.Min != 0 {
		t.Errorf("expected min 0 (absent price), got %v", s.Min)
	}
	if s.Max != 300 {
		t.Errorf("expected max 300, got %v", s.Max)
	}

	want := []CategoryStat{
		{Category: "B", Count: 2, Sum: 300},
		{Category: "A", Count: 2, Sum: 125},
		{Category: "C", Count: 1, Sum: 50},
	}
	if len(s.Categories) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(s.Categories))
	}
	for i := range want {
		if s.Categories[i] != want[i] {
			t.Errorf("category %d: expected %+v, got %+v", i, want[i], s.Categories[i])
		}
	}
}

func TestSummarizeWithoutCategories(t *testing.T) {
	s := Summarize([]float64{3, 1, 2}, func(v float64) float64 { return v }, nil)
	if s.Min != 1 || s.Max != 3 || s.Mean != 2 {
		t.Errorf("unexpected summary %+v", s)
	}
	if len(s.Categories) != 0 {
		t.Errorf("expected no categories, got %d", len(s.Categories))
	}
}

func TestGrowth(t *testing.T) {
	cases := []struct {
		name              string
		current, previous int64
		want              float64
	}{
		{"doubled", 20, 10, 100},
		{"halved", 5, 10, -50},
		{"flat", 7, 7, 0},
		{"from zero", 3, 0, 100},
		{"nothing", 0, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Growth(c.current, c.previous); got != c.want {
				t.Errorf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestWeighted(t *testing.T) {
	if got := Weighted(200000, 25); got != 50000 {
		t.Errorf("expected 50000, got %v", got)
	}
}
