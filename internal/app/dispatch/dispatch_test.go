package dispatch

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type row struct {
	id    uint
	price float64
}

func rowID(r row) uint { return r.id }

// fakeBackend commits every update it accepts, like a table without transactions.
type fakeBackend struct {
	mu      sync.Mutex
	prices  map[uint]float64
	failIDs map[uint]bool
}

func (b *fakeBackend) update(_ context.Context, r row) error {
	if b.failIDs[r.id] {
		return errors.New("permission denied")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.prices[r.id] = r.price
	return nil
}

func TestAllSucceeds(t *testing.T) {
	b := &fakeBackend{prices: map[uint]float64{}}
	rows := []row{{1, 90}, {2, 270}, {3, 45}}

	report, err := All(context.Background(), rows, rowID, b.update)

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !slices.Equal(report.Succeeded, []uint{1, 2, 3}) {
		t.Errorf("expected [1 2 3] succeeded, got %v", report.Succeeded)
	}
	if len(report.Failed) != 0 {
		t.Errorf("expected no failures, got %v", report.Failed)
	}
	if b.prices[2] != 270 {
		t.Errorf("expected price 270 for row 2, got %v", b.prices[2])
	}
}

func TestAllMiddleFailureKeepsOthersCommitted(t *testing.T) {
	b := &fakeBackend{prices: map[uint]float64{}, failIDs: map[uint]bool{2: true}}
	rows := []row{{1, 90}, {2, 270}, {3, 45}}

	report, err := All(context.Background(), rows, rowID, b.update)

	if err == nil {
		t.Fatal("expected the aggregate operation to fail")
	}
	if _, ok := b.prices[1]; !ok {
		t.Error("expected row 1 to stay committed")
	}
	if _, ok := b.prices[3]; !ok {
		t.Error("expected row 3 to stay committed")
	}
	if _, ok := b.prices[2]; ok {
		t.Error("expected row 2 to be untouched")
	}
	if !slices.Equal(report.Succeeded, []uint{1, 3}) {
		t.Errorf("expected [1 3] succeeded, got %v", report.Succeeded)
	}
	if len(report.Failed) != 1 || report.Failed[0].ID != 2 {
		t.Errorf("expected row 2 failed, got %v", report.Failed)
	}
}

func TestAllRunsConcurrently(t *testing.T) {
	var inFlight, peak int32
	rows := make([]row, 8)
	for i := range rows {
		rows[i] = row{id: uint(i + 1)}
	}

	_, err := All(context.Background(), rows, rowID, func(context.Context, row) error {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if atomic.LoadInt32(&peak) < 2 {
		t.Errorf("expected updates to overlap, peak concurrency was %d", peak)
	}
}

func TestAllEmpty(t *testing.T) {
	report, err := All(context.Background(), []row(nil), rowID, func(context.Context, row) error {
		t.Error("fn must not be called")
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Succeeded == nil || len(report.Succeeded) != 0 {
		t.Errorf("expected empty succeeded list, got %#v", report.Succeeded)
	}
}
