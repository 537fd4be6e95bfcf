package pricing

import (
	"testing"
)

func TestPlanDiscountScenario(t *testing.T) {
	targets := []Target{{ID: 1, BasePrice: 100}, {ID: 2, BasePrice: 300}}

	got := Plan(targets, Operation{Kind: Discount, Value: 10})

	want := []Band{
		{Base: 90, Min: 72, Max: 108},
		{Base: 270, Min: 216, Max: 324},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d updates, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Band != want[i] {
			t.Errorf("update %d: expected %+v, got %+v", i, want[i], got[i].Band)
		}
		if got[i].ID != targets[i].ID {
			t.Errorf("update %d: expected id %d, got %d", i, targets[i].ID, got[i].ID)
		}
		if got[i].OldPrice != targets[i].BasePrice {
			t.Errorf("update %d: expected old price %v, got %v", i, targets[i].BasePrice, got[i].OldPrice)
		}
	}
}

func TestDiscountNeverRaisesPrice(t *testing.T) {
	prices := []float64{0, 1, 99.99, 100, 1234.5, 50000}
	for _, p := range prices {
		for pct := 0.0; pct <= 100; pct += 2.5 {
			op := Operation{Kind: Discount, Value: pct}
			if got := op.Apply(p); got > p {
				t.Errorf("discount(%v) on %v: expected <= %v, got %v", pct, p, p, got)
			}
		}
	}
}

func TestMarkupNeverLowersPrice(t *testing.T) {
	prices := []float64{0, 1, 99.99, 100, 1234.5, 50000}
	for _, p := range prices {
		for pct := 0.0; pct <= 250; pct += 12.5 {
			op := Operation{Kind: Markup, Value: pct}
			if got := op.Apply(p); got < p {
				t.Errorf("markup(%v) on %v: expected >= %v, got %v", pct, p, p, got)
			}
		}
	}
}

func TestBandHoldsForEveryKind(t *testing.T) {
	ops := []Operation{
		{Kind: Discount, Value: 15},
		{Kind: Markup, Value: 33},
		{Kind: Set, Value: 4999},
	}
	for _, op := range ops {
		t.Run(string(op.Kind), func(t *testing.T) {
			for _, p := range []float64{10, 257, 1999.95} {
				newPrice := op.Apply(p)
				band := op.Transform(p)
				if band.Min != Round(0.8*newPrice) {
					t.Errorf("expected min %v, got %v", Round(0.8*newPrice), band.Min)
				}
				if band.Max != Round(1.2*newPrice) {
					t.Errorf("expected max %v, got %v", Round(1.2*newPrice), band.Max)
				}
				if band.Base != Round(newPrice) {
					t.Errorf("expected base %v, got %v", Round(newPrice), band.Base)
				}
			}
		})
	}
}

func TestSetIgnoresCurrentPrice(t *testing.T) {
	op := Operation{Kind: Set, Value: 750}
	for _, p := range []float64{0, 100, 100000} {
		band := op.Transform(p)
		if band.Base != 750 || band.Min != 600 || band.Max != 900 {
			t.Errorf("set on %v: expected {750 600 900}, got %+v", p, band)
		}
	}
}

func TestRound(t *testing.T) {
	cases := map[float64]float64{
		2.5:   3,
		2.49:  2,
		-2.5:  -2,
		-2.51: -3,
		0:     0,
	}
	for in, want := range cases {
		if got := Round(in); got != want {
			t.Errorf("Round(%v): expected %v, got %v", in, want, got)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, s := range []string{"discount", "markup", "set"} {
		if _, err := ParseKind(s); err != nil {
			t.Errorf("expected %q to parse, got %v", s, err)
		}
	}
	if _, err := ParseKind("halve"); err == nil {
		t.Error("expected error for unknown operation")
	}
}
