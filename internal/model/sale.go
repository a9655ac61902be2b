package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Region string

const (
	RegionNorth     Region = "North"
	RegionNortheast Region = "Northeast"
	RegionMidwest   Region = "Midwest"
	RegionSoutheast Region = "Southeast"
	RegionSouth     Region = "South"
)

// Sale is one purchase event: one customer, one region/date, one or more items.
// Customer fields are snapshots copied at creation time; later catalog edits
// must not alter recorded sales.
type Sale struct {
	BaseModel
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID     uuid.UUID       `gorm:"type:uuid;not null" json:"customer_id"`
	CustomerName   string          `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerGender Gender          `gorm:"type:varchar(1);not null" json:"customer_gender"`
	CustomerAge    int             `gorm:"not null" json:"customer_age"`
	Region         Region          `gorm:"type:varchar(20);not null" json:"region"`
	SoldAt         time.Time       `gorm:"not null;index" json:"sold_at"`
	Total          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"` // Always computed server-side
	Items          []SaleItem      `json:"items"`
}

// SaleItem is one product line within a sale. Name, price and category are
// snapshots of the product row at the moment of sale.
type SaleItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null" json:"product_id"`
	ProductName string          `gorm:"type:varchar(255);not null" json:"product_name"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null" json:"category_id"`
	Subtotal    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
}

// SaleItem keeps a slim schema (no audit columns), so it carries its own
// UUID hook instead of embedding BaseModel.
func (item *SaleItem) BeforeCreate(tx *gorm.DB) (err error) {
	item.ID = uuid.New()
	return
}
