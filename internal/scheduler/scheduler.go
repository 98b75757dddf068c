// Package scheduler drives the daily cleanup run.
package scheduler

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"real-estate-backend/internal/cleanup"
	"real-estate-backend/internal/config"
)

// Scheduler runs the retention cleanup on a daily cron.
type Scheduler struct {
	cron      *cron.Cron
	cleanup   *cleanup.Service
	config    *config.Config
	isRunning bool
}

// NewScheduler creates a scheduler around the cleanup service.
func NewScheduler(svc *cleanup.Service, cfg *config.Config) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		cleanup: svc,
		config:  cfg,
	}
}

// Start registers the daily job and starts the cron loop.
func (s *Scheduler) Start() error {
	if !s.config.Cleanup.DailyRunEnabled {
		log.Println("[scheduler] daily cleanup is disabled in configuration")
		return nil
	}

	cronSpec := parseDailyRunTime(s.config.Cleanup.DailyRunTime)

	_, err := s.cron.AddFunc(cronSpec, func() {
		log.Println("[scheduler] starting daily cleanup...")
		if _, err := s.RunNow(); err != nil {
			log.Printf("[scheduler] daily cleanup failed: %v", err)
		} else {
			log.Println("[scheduler] daily cleanup completed")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.isRunning = true
	log.Printf("[scheduler] started with daily run at %s (cron: %s)", s.config.Cleanup.DailyRunTime, cronSpec)
	return nil
}

// Stop stops the cron loop.
func (s *Scheduler) Stop() {
	if s.isRunning {
		s.cron.Stop()
		s.isRunning = false
		log.Println("[scheduler] stopped")
	}
}

// RunNow executes the cleanup immediately (manual trigger).
func (s *Scheduler) RunNow() (*cleanup.Result, error) {
	cfg := cleanup.DefaultConfig()
	if s.config.Cleanup.RetentionDays > 0 {
		cfg.RetentionDays = s.config.Cleanup.RetentionDays
	}
	if s.config.Cleanup.MaxDeletionCount > 0 {
		cfg.MaxDeletionCount = s.config.Cleanup.MaxDeletionCount
	}
	return s.cleanup.Run(cfg)
}

// parseDailyRunTime converts "HH:MM" to a cron spec, defaulting to 03:00.
func parseDailyRunTime(timeStr string) string {
	var hour, minute int
	n, _ := fmt.Sscanf(timeStr, "%d:%d", &hour, &minute)
	if n == 2 {
		return fmt.Sprintf("%d %d * * *", minute, hour)
	}

	log.Printf("[scheduler] failed to parse time '%s', using default 03:00", timeStr)
	return "0 3 * * *"
}
