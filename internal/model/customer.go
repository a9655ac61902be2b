package model

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// Customer is catalog reference data; the sales core only reads it.
type Customer struct {
	BaseModel
	Name   string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Gender Gender `gorm:"type:varchar(1);not null" json:"gender" validate:"required,oneof=M F"`
	Age    int    `gorm:"not null" json:"age" validate:"gte=0,lte=150"`
}
