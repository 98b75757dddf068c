// Package cleanup physically purges soft-deleted aggregates once their
// retention window has passed, leaving a delete-log row behind for each.
package cleanup

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"real-estate-backend/internal/models"
)

// Service handles physical deletion of expired soft-deleted rows.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Config holds cleanup settings.
type Config struct {
	RetentionDays    int  // days a soft-deleted row is kept before purge
	MaxDeletionCount int  // safety cap per run
	DryRun           bool // log instead of deleting
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		RetentionDays:    90,
		MaxDeletionCount: 10000,
		DryRun:           false,
	}
}

// Result summarizes one cleanup run.
type Result struct {
	TargetCount  int       `json:"target_count"`
	DeletedCount int       `json:"deleted_count"`
	ErrorCount   int       `json:"error_count"`
	DryRun       bool      `json:"dry_run"`
	ExecutedAt   time.Time `json:"executed_at"`
	DeletedIDs   []string  `json:"deleted_ids"`
	Errors       []string  `json:"errors,omitempty"`
}

// target is one row eligible for purge, normalized across entity types.
type target struct {
	entity    string
	id        string
	label     string
	removedAt time.Time
	erase     func(tx *gorm.DB) error
}

func (s *Service) findExpired(cfg Config) ([]target, error) {
	cutoff := time.Now().AddDate(0, 0, -cfg.RetentionDays)
	var targets []target

	var props []models.Property
	if err := s.db.Where("is_deleted = ? AND deleted_at < ?", true, cutoff).Find(&props).Error; err != nil {
		return nil, fmt.Errorf("finding expired properties: %w", err)
	}
	for i := range props {
		p := props[i]
		targets = append(targets, target{
			entity:    "property",
			id:        p.ID,
			label:     p.Title,
			removedAt: *p.DeletedAt,
			erase: func(tx *gorm.DB) error {
				return tx.Delete(&p).Error
			},
		})
	}

	var customers []models.Customer
	if err := s.db.Where("is_deleted = ? AND deleted_at < ?", true, cutoff).Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("finding expired customers: %w", err)
	}
	for i := range customers {
		c := customers[i]
		targets = append(targets, target{
			entity:    "customer",
			id:        c.ID,
			label:     c.Name,
			removedAt: *c.DeletedAt,
			erase: func(tx *gorm.DB) error {
				return tx.Delete(&c).Error
			},
		})
	}

	log.Printf("[cleanup] found %d rows expired before %s", len(targets), cutoff.Format("2006-01-02"))
	return targets, nil
}

// Run purges every expired row. Each purge pairs the delete with its log row
// in one transaction so the log never lies.
func (s *Service) Run(cfg Config) (*Result, error) {
	result := &Result{
		DryRun:     cfg.DryRun,
		ExecutedAt: time.Now(),
	}

	targets, err := s.findExpired(cfg)
	if err != nil {
		return nil, err
	}
	result.TargetCount = len(targets)

	if result.TargetCount == 0 {
		log.Println("[cleanup] nothing to purge")
		return result, nil
	}

	if result.TargetCount > cfg.MaxDeletionCount {
		return nil, fmt.Errorf("safety check failed: %d rows exceed max deletion limit of %d",
			result.TargetCount, cfg.MaxDeletionCount)
	}

	log.Printf("[cleanup] purging %d rows (retention: %d days, dry-run: %v)",
		result.TargetCount, cfg.RetentionDays, cfg.DryRun)

	for _, t := range targets {
		if cfg.DryRun {
			log.Printf("[cleanup] dry-run: would purge %s %s (%s, removed %s)",
				t.entity, t.id, t.label, t.removedAt.Format("2006-01-02"))
			result.DeletedIDs = append(result.DeletedIDs, t.id)
			result.DeletedCount++
			continue
		}

		tx := s.db.Begin()

		deleteLog := models.DeleteLog{
			Entity:    t.entity,
			EntityID:  t.id,
			Label:     t.label,
			RemovedAt: t.removedAt,
			Reason:    models.DeleteReasonExpired,
		}
		if err := tx.Create(&deleteLog).Error; err != nil {
			tx.Rollback()
			msg := fmt.Sprintf("creating delete log for %s %s: %v", t.entity, t.id, err)
			log.Printf("[cleanup] ERROR: %s", msg)
			result.Errors = append(result.Errors, msg)
			result.ErrorCount++
			continue
		}

		if err := t.erase(tx); err != nil {
			tx.Rollback()
			msg := fmt.Sprintf("purging %s %s: %v", t.entity, t.id, err)
			log.Printf("[cleanup] ERROR: %s", msg)
			result.Errors = append(result.Errors, msg)
			result.ErrorCount++
			continue
		}

		if err := tx.Commit().Error; err != nil {
			msg := fmt.Sprintf("committing purge of %s %s: %v", t.entity, t.id, err)
			log.Printf("[cleanup] ERROR: %s", msg)
			result.Errors = append(result.Errors, msg)
			result.ErrorCount++
			continue
		}

		result.DeletedIDs = append(result.DeletedIDs, t.id)
		result.DeletedCount++
	}

	log.Printf("[cleanup] done: %d/%d purged (dry-run: %v)",
		result.DeletedCount, result.TargetCount, cfg.DryRun)
	return result, nil
}

// RecentLogs returns the latest delete-log entries.
func (s *Service) RecentLogs(limit int) ([]models.DeleteLog, error) {
	if limit <= 0 {
		limit = 100
	}
	var logs []models.DeleteLog
	err := s.db.Order("deleted_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}
