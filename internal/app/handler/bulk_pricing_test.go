package handler

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"

	"crm/internal/app/dispatch"
	"crm/internal/app/dto"
	"crm/internal/app/pricing"
	"crm/internal/app/selection"

	"github.com/google/uuid"
)

func price(v float64) *float64 { return &v }

func TestParseOperation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.BulkPriceRequest
		want    pricing.Operation
		wantErr bool
	}{
		{"discount", dto.BulkPriceRequest{Operation: "discount", Value: price(10)}, pricing.Operation{Kind: pricing.Discount, Value: 10}, false},
		{"full discount", dto.BulkPriceRequest{Operation: "discount", Value: price(100)}, pricing.Operation{Kind: pricing.Discount, Value: 100}, false},
		{"discount over 100", dto.BulkPriceRequest{Operation: "discount", Value: price(120)}, pricing.Operation{}, true},
		{"markup over 100", dto.BulkPriceRequest{Operation: "markup", Value: price(150)}, pricing.Operation{Kind: pricing.Markup, Value: 150}, false},
		{"set", dto.BulkPriceRequest{Operation: "set", Value: price(4999)}, pricing.Operation{Kind: pricing.Set, Value: 4999}, false},
		{"unknown", dto.BulkPriceRequest{Operation: "halve", Value: price(1)}, pricing.Operation{}, true},
		{"set without value", dto.BulkPriceRequest{Operation: "set", IDs: []uint{1, 2}}, pricing.Operation{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseOperation(tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error=%v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestApplyPricesPartialFailure(t *testing.T) {
	updates := pricing.Plan([]pricing.Target{
		{ID: 1, BasePrice: 100},
		{ID: 2, BasePrice: 200},
		{ID: 3, BasePrice: 300},
	}, pricing.Operation{Kind: pricing.Discount, Value: 10})

	var (
		mu        sync.Mutex
		committed = map[uint]pricing.Band{}
	)
	write := func(_ context.Context, u pricing.Update) error {
		if u.ID == 2 {
			return errors.New("connection reset")
		}
		mu.Lock()
		committed[u.ID] = u.Band
		mu.Unlock()
		return nil
	}

	report, err := applyPrices(context.Background(), updates, write)
	if err == nil {
		t.Fatal("expected the bulk update to fail")
	}
	if !slices.Equal(report.Succeeded, []uint{1, 3}) {
		t.Errorf("expected succeeded [1 3], got %v", report.Succeeded)
	}
	if len(report.Failed) != 1 || report.Failed[0].ID != 2 {
		t.Errorf("expected only 2 to fail, got %+v", report.Failed)
	}

	want := map[uint]pricing.Band{
		1: {Base: 90, Min: 72, Max: 108},
		3: {Base: 270, Min: 216, Max: 324},
	}
	for id, band := range want {
		if committed[id] != band {
			t.Errorf("expected %d committed as %+v, got %+v", id, band, committed[id])
		}
	}
}

func TestMissingFailures(t *testing.T) {
	targets := []pricing.Target{{ID: 1}, {ID: 3}}
	failures := missingFailures([]uint{1, 2, 3, 4}, targets)

	if len(failures) != 2 || failures[0].ID != 2 || failures[1].ID != 4 {
		t.Errorf("expected 2 and 4 to be reported missing, got %+v", failures)
	}
	if missingFailures([]uint{1, 3}, targets) != nil {
		t.Error("expected no failures when every id was found")
	}
}

func TestResolveIDs(t *testing.T) {
	ctx := context.Background()
	store := selection.NewMemoryStore()
	h := &Handler{Selection: store}

	ids, fromSelection, err := h.resolveIDs(ctx, 1, scopeCourses, []uint{9})
	if err != nil || fromSelection || !slices.Equal(ids, []uint{9}) {
		t.Errorf("expected explicit ids to win, got %v %v %v", ids, fromSelection, err)
	}

	if _, _, err := h.resolveIDs(ctx, 1, scopeCourses, nil); !errors.Is(err, errEmptySelection) {
		t.Errorf("expected errEmptySelection, got %v", err)
	}

	if err := store.Add(ctx, 1, scopeCourses, 4, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	ids, fromSelection, err = h.resolveIDs(ctx, 1, scopeCourses, nil)
	if err != nil || !fromSelection || !slices.Equal(ids, []uint{2, 4}) {
		t.Errorf("expected stored selection [2 4], got %v %v %v", ids, fromSelection, err)
	}
}

func TestBulkResponse(t *testing.T) {
	batch := uuid.New()
	op := pricing.Operation{Kind: pricing.Markup, Value: 5}
	resp := bulkResponse(batch, op, dispatch.Report{
		Succeeded: []uint{1},
		Failed:    []dispatch.Failure{{ID: 2, Err: "boom"}},
	})

	if resp.BatchID != batch.String() || resp.Operation != "markup" || resp.Value != 5 {
		t.Errorf("unexpected header fields: %+v", resp)
	}
	if len(resp.Failed) != 1 || resp.Failed[0].Error != "boom" {
		t.Errorf("expected failure to carry its error, got %+v", resp.Failed)
	}
}
