package models

import "time"

// PropertyStatus is the lifecycle state of a listed property.
type PropertyStatus string

const (
	PropertyStatusAvailable        PropertyStatus = "available"
	PropertyStatusRented           PropertyStatus = "rented"
	PropertyStatusSold             PropertyStatus = "sold"
	PropertyStatusUnderMaintenance PropertyStatus = "under_maintenance"
)

// StatusEvent is an action that moves a property between statuses.
type StatusEvent string

const (
	EventSell     StatusEvent = "sell"
	EventRent     StatusEvent = "rent"
	EventRelease  StatusEvent = "release"
	EventRelist   StatusEvent = "relist"
	EventMaintain StatusEvent = "maintain"
	EventRestore  StatusEvent = "restore"
)

// StatusTransition defines one valid status change.
type StatusTransition struct {
	Event StatusEvent
	Src   PropertyStatus
	Dst   PropertyStatus
}

// StatusTransitions is the full property status machine. Transitions out of
// "available" are the only ones that require cross-aggregate atomicity; the
// rest are plain single-row updates.
var StatusTransitions = []StatusTransition{
	{Event: EventSell, Src: PropertyStatusAvailable, Dst: PropertyStatusSold},
	{Event: EventRent, Src: PropertyStatusAvailable, Dst: PropertyStatusRented},
	{Event: EventRelease, Src: PropertyStatusRented, Dst: PropertyStatusAvailable},
	{Event: EventRelist, Src: PropertyStatusSold, Dst: PropertyStatusAvailable},
	{Event: EventMaintain, Src: PropertyStatusAvailable, Dst: PropertyStatusUnderMaintenance},
	{Event: EventRestore, Src: PropertyStatusUnderMaintenance, Dst: PropertyStatusAvailable},
}

// Property is a catalogue listing. Status and owner always change together
// with the transaction record that causes the change: a sale flips owner and
// status, a rental flips status only.
type Property struct {
	ID             string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	PropertyNumber string         `gorm:"type:varchar(32);not null;uniqueIndex" json:"property_number"`
	Title          string         `gorm:"type:text;not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description,omitempty"`
	Address        string         `gorm:"type:text" json:"address,omitempty"`
	Area           *float64       `gorm:"type:decimal(10,2)" json:"area,omitempty"`
	Price          float64        `gorm:"type:decimal(14,2);not null" json:"price"`
	Status         PropertyStatus `gorm:"type:varchar(20);not null;default:'available';index" json:"status"`

	CategoryID string    `gorm:"type:varchar(36);not null;index" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	OwnerID    string    `gorm:"type:varchar(36);not null;index" json:"owner_id"`
	Owner      *Customer `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`

	IsDeleted bool       `gorm:"not null;default:false;index" json:"-"`
	DeletedAt *time.Time `gorm:"type:datetime" json:"-"`

	CreatedAt time.Time `gorm:"type:datetime;not null;autoCreateTime;index:idx_properties_created_at,sort:desc" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:datetime;not null;autoUpdateTime" json:"updated_at"`
}

func (Property) TableName() string {
	return "properties"
}

// IsAvailable reports whether the property can enter a sale or rental.
func (p *Property) IsAvailable() bool {
	return p.Status == PropertyStatusAvailable
}

// MarkDeleted flips the soft-delete flag.
func (p *Property) MarkDeleted() {
	p.IsDeleted = true
	now := time.Now()
	p.DeletedAt = &now
}

// Category groups properties (apartment, villa, office, ...).
type Category struct {
	ID        string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string     `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	IsDeleted bool       `gorm:"not null;default:false" json:"-"`
	DeletedAt *time.Time `gorm:"type:datetime" json:"-"`
	CreatedAt time.Time  `gorm:"type:datetime;not null;autoCreateTime" json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}

// MarkDeleted flips the soft-delete flag.
func (c *Category) MarkDeleted() {
	c.IsDeleted = true
	now := time.Now()
	c.DeletedAt = &now
}
