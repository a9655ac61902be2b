package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is catalog reference data. UnitPrice lives on the catalog row;
// sales copy it into SaleItem at creation time so price changes here never
// rewrite history.
type Product struct {
	BaseModel
	Code       string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"code" validate:"required"`
	Name       string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price" validate:"dgte0"`
	CategoryID uuid.UUID       `gorm:"type:uuid;not null" json:"category_id" validate:"uuid_required"`
	Category   *Category       `json:"category,omitempty" validate:"-"`
}
