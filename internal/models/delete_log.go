package models

import "time"

// DeleteLog records aggregates that were physically purged after their
// soft-delete retention window passed.
type DeleteLog struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Entity    string    `gorm:"type:varchar(32);not null;index" json:"entity"`
	EntityID  string    `gorm:"type:varchar(36);not null;index" json:"entity_id"`
	Label     string    `gorm:"type:text" json:"label"`
	RemovedAt time.Time `gorm:"type:datetime" json:"removed_at"`
	DeletedAt time.Time `gorm:"type:datetime;not null;autoCreateTime;index" json:"deleted_at"`
	Reason    string    `gorm:"type:varchar(50);not null" json:"reason"`
}

func (DeleteLog) TableName() string {
	return "delete_logs"
}

// Delete reasons.
const (
	DeleteReasonExpired = "retention_expired"
	DeleteReasonManual  = "manual_deletion"
)
