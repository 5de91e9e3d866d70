package session

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// DefaultCleanupSchedule runs expired-session cleanup once an hour.
const DefaultCleanupSchedule = "@hourly"

// Cleaner periodically removes expired sessions from a store.
// Expired sessions are already rejected at resolve time; the cleaner
// keeps the store from accumulating dead rows.
type Cleaner struct {
	manager  *Manager
	schedule string
	log      *slog.Logger
	cron     *cron.Cron
}

// CleanerOption configures a Cleaner.
type CleanerOption func(*Cleaner)

// WithCleanupSchedule sets the cron schedule expression.
func WithCleanupSchedule(schedule string) CleanerOption {
	return func(c *Cleaner) {
		if schedule != "" {
			c.schedule = schedule
		}
	}
}

// WithCleanerLogger sets the logger for cleanup runs.
func WithCleanerLogger(log *slog.Logger) CleanerOption {
	return func(c *Cleaner) {
		if log != nil {
			c.log = log
		}
	}
}

// NewCleaner creates a cleaner for the given session manager.
func NewCleaner(manager *Manager, opts ...CleanerOption) *Cleaner {
	c := &Cleaner{
		manager:  manager,
		schedule: DefaultCleanupSchedule,
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start schedules the cleanup job and begins running it.
func (c *Cleaner) Start() error {
	c.cron = cron.New()
	_, err := c.cron.AddFunc(c.schedule, func() {
		ctx := context.Background()
		removed, err := c.manager.DeleteExpired(ctx)
		if err != nil {
			c.log.ErrorContext(ctx, "session cleanup failed", slog.Any("error", err))
			return
		}
		if removed > 0 {
			c.log.InfoContext(ctx, "session cleanup completed", slog.Int64("removed", removed))
		}
	})
	if err != nil {
		return err
	}
	c.cron.Start()
	return nil
}

// Stop halts the cleanup schedule and waits for a running job to finish.
func (c *Cleaner) Stop(ctx context.Context) error {
	if c.cron == nil {
		return nil
	}
	select {
	case <-c.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// StartFunc returns a startup hook that starts the cleanup schedule.
// Use with anvil.StartupHook().
func (c *Cleaner) StartFunc() func(context.Context) error {
	return func(context.Context) error {
		return c.Start()
	}
}

// Shutdown returns a shutdown hook that stops the cleanup schedule.
// Use with anvil.ShutdownHook().
func (c *Cleaner) Shutdown() func(context.Context) error {
	return c.Stop
}
