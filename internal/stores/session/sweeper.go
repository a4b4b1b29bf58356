package session

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	// DefaultRetentionDays is the maximum session age before deletion
	DefaultRetentionDays = 10

	// DefaultSweepSchedule runs the sweep nightly at 03:00
	DefaultSweepSchedule = "0 3 * * *"
)

// SweeperOptions contains configuration options for the Sweeper
type SweeperOptions struct {
	RetentionDays int    `json:"retention_days" yaml:"retention_days"` // Maximum session age in days
	Schedule      string `json:"schedule" yaml:"schedule"`             // Cron expression for scheduled sweeps
}

// Retention returns the configured retention threshold as a duration
func (o SweeperOptions) Retention() time.Duration {
	days := o.RetentionDays
	if days <= 0 {
		days = DefaultRetentionDays
	}
	return time.Duration(days) * 24 * time.Hour
}

// Sweeper periodically deletes sessions whose age exceeds the retention
// threshold. A failed pass is logged and retried on the next scheduled
// tick; it never propagates to client-facing operations.
type Sweeper struct {
	store Store
	cron  *cron.Cron
	opts  SweeperOptions
}

// NewSweeper creates a new retention sweeper
func NewSweeper(store Store, opts *SweeperOptions) *Sweeper {
	s := &Sweeper{
		store: store,
		cron:  cron.New(),
	}

	if opts != nil {
		s.opts = *opts
	}
	if s.opts.Schedule == "" {
		s.opts.Schedule = DefaultSweepSchedule
	}

	return s
}

// Start begins scheduled retention sweeps
func (s *Sweeper) Start() error {
	_, err := s.cron.AddFunc(s.opts.Schedule, func() {
		count, err := s.RunOnce(context.Background())
		if err != nil {
			log.Printf("[SWEEPER]: Warning, retention sweep failed, retrying next tick: %v", err)
			return
		}
		log.Printf("[SWEEPER]: Deleted %d sessions older than %s", count, s.opts.Retention())
	})
	if err != nil {
		return fmt.Errorf("failed to schedule retention sweep: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop halts scheduled retention sweeps
func (s *Sweeper) Stop() {
	s.cron.Stop()
}

// RunOnce performs a single retention pass and returns the number of
// sessions deleted. Idempotent: a second pass with no new expirations
// deletes zero sessions.
func (s *Sweeper) RunOnce(ctx context.Context) (int64, error) {
	return s.store.DeleteOlderThan(ctx, s.opts.Retention())
}
