package models

import "time"

// RentType decides how the rental duration is interpreted.
type RentType string

const (
	RentTypeMonthly RentType = "monthly"
	RentTypeYearly  RentType = "yearly"
)

// Rental is an append-only lease record. It is created atomically with the
// property status flip to rented; ownership is unchanged by a rental. The
// lessor is always the property's current owner.
type Rental struct {
	ID         string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	PropertyID string    `gorm:"type:varchar(36);not null;index" json:"property_id"`
	Property   *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	LessorID   string    `gorm:"type:varchar(36);not null;index" json:"lessor_id"`
	Lessor     *Customer `gorm:"foreignKey:LessorID" json:"lessor,omitempty"`
	LesseeID   string    `gorm:"type:varchar(36);not null;index" json:"lessee_id"`
	Lessee     *Customer `gorm:"foreignKey:LesseeID" json:"lessee,omitempty"`

	MonthlyRent   float64   `gorm:"type:decimal(14,2);not null" json:"monthly_rent"`
	StartDate     time.Time `gorm:"type:datetime;not null" json:"start_date"`
	Duration      int       `gorm:"not null" json:"duration"`
	RentType      RentType  `gorm:"type:varchar(10);not null" json:"rent_type"`
	ContractImage string    `gorm:"type:varchar(500)" json:"contract_image,omitempty"`

	CreatedAt time.Time `gorm:"type:datetime;not null;autoCreateTime;index:idx_rentals_created_at,sort:desc" json:"created_at"`
}

func (Rental) TableName() string {
	return "rentals"
}

// DurationMonths converts the duration to months according to the rent type.
func (r *Rental) DurationMonths() int {
	if r.RentType == RentTypeYearly {
		return r.Duration * 12
	}
	return r.Duration
}

// TotalPrice is the full cost of the lease over its duration.
func (r *Rental) TotalPrice() float64 {
	return float64(r.DurationMonths()) * r.MonthlyRent
}

// EndDate is the start date advanced by the duration per the rent type.
func (r *Rental) EndDate() time.Time {
	return r.StartDate.AddDate(0, r.DurationMonths(), 0)
}
