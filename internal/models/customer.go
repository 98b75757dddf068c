package models

import "time"

// CustomerType is informational, not an exclusivity constraint: a customer
// may appear as seller, buyer, lessor or lessee across many transactions.
type CustomerType string

const (
	CustomerTypeBuyer  CustomerType = "buyer"
	CustomerTypeRenter CustomerType = "renter"
	CustomerTypeOwner  CustomerType = "owner"
)

// Customer is a person participating in catalogue transactions.
type Customer struct {
	ID           string       `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name         string       `gorm:"type:varchar(200);not null" json:"name"`
	NationalID   string       `gorm:"type:varchar(32);not null;uniqueIndex" json:"national_id"`
	BirthDate    *time.Time   `gorm:"type:datetime" json:"birth_date,omitempty"`
	Phone        string       `gorm:"type:varchar(32);not null" json:"phone"`
	CustomerType CustomerType `gorm:"type:varchar(16);not null;index" json:"customer_type"`

	IsDeleted bool       `gorm:"not null;default:false;index" json:"-"`
	DeletedAt *time.Time `gorm:"type:datetime" json:"-"`

	CreatedAt time.Time `gorm:"type:datetime;not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:datetime;not null;autoUpdateTime" json:"updated_at"`
}

func (Customer) TableName() string {
	return "customers"
}

// MarkDeleted flips the soft-delete flag.
func (c *Customer) MarkDeleted() {
	c.IsDeleted = true
	now := time.Now()
	c.DeletedAt = &now
}
