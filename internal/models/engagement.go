package models

import "time"

// Rating is a 1-5 score a user gives a property. One rating per user and
// property; repeated ratings overwrite the score.
type Rating struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	PropertyID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_ratings_user_property" json:"property_id"`
	UserID     string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_ratings_user_property" json:"user_id"`
	Score      int       `gorm:"not null" json:"score"`
	CreatedAt  time.Time `gorm:"type:datetime;not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"type:datetime;not null;autoUpdateTime" json:"updated_at"`
}

func (Rating) TableName() string {
	return "ratings"
}

// Comment is free-form user feedback on a property.
type Comment struct {
	ID         string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	PropertyID string     `gorm:"type:varchar(36);not null;index" json:"property_id"`
	UserID     string     `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Body       string     `gorm:"type:text;not null" json:"body"`
	IsDeleted  bool       `gorm:"not null;default:false" json:"-"`
	DeletedAt  *time.Time `gorm:"type:datetime" json:"-"`
	CreatedAt  time.Time  `gorm:"type:datetime;not null;autoCreateTime" json:"created_at"`
}

func (Comment) TableName() string {
	return "comments"
}

// MarkDeleted flips the soft-delete flag.
func (c *Comment) MarkDeleted() {
	c.IsDeleted = true
	now := time.Now()
	c.DeletedAt = &now
}

// Favorite bookmarks a property for a user. Toggling removes it physically;
// favorites carry no history worth keeping.
type Favorite struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	PropertyID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorites_user_property" json:"property_id"`
	UserID     string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_favorites_user_property" json:"user_id"`
	CreatedAt  time.Time `gorm:"type:datetime;not null;autoCreateTime" json:"created_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}

// Testimonial is site-level feedback from a user.
type Testimonial struct {
	ID        string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    string     `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Body      string     `gorm:"type:text;not null" json:"body"`
	IsDeleted bool       `gorm:"not null;default:false" json:"-"`
	DeletedAt *time.Time `gorm:"type:datetime" json:"-"`
	CreatedAt time.Time  `gorm:"type:datetime;not null;autoCreateTime" json:"created_at"`
}

func (Testimonial) TableName() string {
	return "testimonials"
}

// MarkDeleted flips the soft-delete flag.
func (t *Testimonial) MarkDeleted() {
	t.IsDeleted = true
	now := time.Now()
	t.DeletedAt = &now
}
