// Package scheduler runs the periodic CRM maintenance jobs.
package scheduler

import (
	"context"
	"time"

	"crm/internal/app/config"
	"crm/internal/app/ds"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Store is the part of the repository the jobs touch.
type Store interface {
	DueFollowUps(ctx context.Context, day time.Time) ([]ds.Meeting, error)
	DeactivateExpired(ctx context.Context, day time.Time) (int64, error)
}

// Invalidator drops cached list responses after a job changed rows.
type Invalidator interface {
	Invalidate(ctx context.Context, groups ...string) error
}

const jobTimeout = 5 * time.Minute

// Manager owns the cron instance and its jobs.
type Manager struct {
	cron  *cron.Cron
	cfg   config.SchedulerConfig
	store Store
	cache Invalidator
	now   func() time.Time
}

// New creates a manager; cache may be nil.
func New(cfg config.SchedulerConfig, store Store, cache Invalidator) *Manager {
	return &Manager{
		cron:  cron.New(cron.WithSeconds(), cron.WithLocation(time.UTC)),
		cfg:   cfg,
		store: store,
		cache: cache,
		now:   time.Now,
	}
}

// Start registers every job and starts the scheduler.
func (m *Manager) Start() error {
	jobs := []struct {
		name string
		spec string
		run  func(context.Context) error
	}{
		{"follow_up_digest", m.cfg.FollowUpDigest, m.FollowUpDigest},
		{"expire_pricing_models", m.cfg.ExpirePricing, m.ExpirePricingModels},
	}

	for _, job := range jobs {
		if job.spec == "" {
			logrus.Warnf("[CRON] %s disabled: empty schedule", job.name)
			continue
		}
		if _, err := m.cron.AddFunc(job.spec, m.wrap(job.name, job.run)); err != nil {
			return err
		}
		logrus.Infof("[CRON] %s scheduled at %q", job.name, job.spec)
	}

	m.cron.Start()
	return nil
}

// Stop waits for running jobs to finish.
func (m *Manager) Stop() {
	<-m.cron.Stop().Done()
	logrus.Info("[CRON] stopped")
}

func (m *Manager) wrap(name string, run func(context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		start := m.now()
		if err := run(ctx); err != nil {
			logrus.Errorf("[CRON] %s failed after %s: %v", name, time.Since(start), err)
			return
		}
		logrus.Infof("[CRON] %s done in %s", name, time.Since(start))
	}
}

// FollowUpDigest logs every meeting whose next follow-up is due today or overdue.
func (m *Manager) FollowUpDigest(ctx context.Context) error {
	today := m.now().UTC()
	meetings, err := m.store.DueFollowUps(ctx, today)
	if err != nil {
		return err
	}

	for _, mt := range meetings {
		due := time.Time(*mt.NextFollowUp)
		logrus.WithFields(logrus.Fields{
			"meeting_id": mt.ID,
			"college_id": mt.CollegeID,
			"due":        due.Format("2006-01-02"),
			"overdue":    due.Before(today.Truncate(24 * time.Hour)),
		}).Info("follow-up due")
	}
	logrus.Infof("[CRON] %d follow-ups due", len(meetings))
	return nil
}

// ExpirePricingModels deactivates models whose effective_to has passed.
func (m *Manager) ExpirePricingModels(ctx context.Context) error {
	n, err := m.store.DeactivateExpired(ctx, m.now().UTC())
	if err != nil {
		return err
	}
	if n > 0 && m.cache != nil {
		if err := m.cache.Invalidate(ctx, "pricing_models"); err != nil {
			logrus.Warnf("[CRON] invalidate pricing models cache: %v", err)
		}
	}
	logrus.Infof("[CRON] %d pricing models deactivated", n)
	return nil
}
