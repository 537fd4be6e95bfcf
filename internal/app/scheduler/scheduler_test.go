package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"crm/internal/app/config"
	"crm/internal/app/ds"

	"gorm.io/datatypes"
)

type fakeStore struct {
	due        []ds.Meeting
	dueErr     error
	expired    int64
	askedDay   time.Time
	expireCall int
}

func (f *fakeStore) DueFollowUps(_ context.Context, day time.Time) ([]ds.Meeting, error) {
	f.askedDay = day
	return f.due, f.dueErr
}

func (f *fakeStore) DeactivateExpired(_ context.Context, day time.Time) (int64, error) {
	f.askedDay = day
	f.expireCall++
	return f.expired, nil
}

type fakeCache struct{ groups []string }

func (f *fakeCache) Invalidate(_ context.Context, groups ...string) error {
	f.groups = append(f.groups, groups...)
	return nil
}

func fixedNow() time.Time { return time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC) }

func TestFollowUpDigest(t *testing.T) {
	d := datatypes.Date(time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC))
	store := &fakeStore{due: []ds.Meeting{{ID: 1, CollegeID: 2, NextFollowUp: &d}}}
	m := New(config.SchedulerConfig{}, store, nil)
	m.now = fixedNow

	if err := m.FollowUpDigest(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !store.askedDay.Equal(fixedNow()) {
		t.Errorf("expected query for %v, got %v", fixedNow(), store.askedDay)
	}

	store.dueErr = errors.New("db down")
	if err := m.FollowUpDigest(context.Background()); err == nil {
		t.Error("expected store error to propagate")
	}
}

func TestExpirePricingModelsInvalidatesCache(t *testing.T) {
	store := &fakeStore{expired: 2}
	cache := &fakeCache{}
	m := New(config.SchedulerConfig{}, store, cache)
	m.now = fixedNow

	if err := m.ExpirePricingModels(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(cache.groups) != 1 || cache.groups[0] != "pricing_models" {
		t.Errorf("expected pricing_models to be invalidated, got %v", cache.groups)
	}

	store.expired = 0
	cache.groups = nil
	if err := m.ExpirePricingModels(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(cache.groups) != 0 {
		t.Errorf("expected no invalidation when nothing expired, got %v", cache.groups)
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	m := New(config.SchedulerConfig{FollowUpDigest: "not a schedule"}, &fakeStore{}, nil)
	if err := m.Start(); err == nil {
		m.Stop()
		t.Error("expected invalid cron spec to be rejected")
	}
}

func TestStartAndStop(t *testing.T) {
	m := New(config.SchedulerConfig{FollowUpDigest: "0 0 9 * * *", ExpirePricing: "0 0 * * * *"}, &fakeStore{}, nil)
	if err := m.Start(); err != nil {
		t.Fatalf("expected valid schedules, got %v", err)
	}
	if got := len(m.cron.Entries()); got != 2 {
		t.Errorf("expected 2 jobs, got %d", got)
	}
	m.Stop()
}
