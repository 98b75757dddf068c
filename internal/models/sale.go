package models

import "time"

// Sale is an append-only financial record. It is created atomically with the
// property mutation (owner becomes the buyer, status becomes sold) and has no
// update path afterwards.
type Sale struct {
	ID         string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	PropertyID string  `gorm:"type:varchar(36);not null;index" json:"property_id"`
	Property   *Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`
	SellerID   string  `gorm:"type:varchar(36);not null;index" json:"seller_id"`
	Seller     *Customer `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	BuyerID    string  `gorm:"type:varchar(36);not null;index" json:"buyer_id"`
	Buyer      *Customer `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`

	Price         float64   `gorm:"type:decimal(14,2);not null" json:"price"`
	SaleDate      time.Time `gorm:"type:datetime;not null" json:"sale_date"`
	ContractImage string    `gorm:"type:varchar(500)" json:"contract_image,omitempty"`

	CreatedAt time.Time `gorm:"type:datetime;not null;autoCreateTime;index:idx_sales_created_at,sort:desc" json:"created_at"`
}

func (Sale) TableName() string {
	return "sales"
}
