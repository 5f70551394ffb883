package cars

import (
	"time"

	"gorm.io/gorm"
)

type Type string

const (
	TypeSedan     Type = "SEDAN"
	TypeSUV       Type = "SUV"
	TypeHatchback Type = "HATCHBACK"
	TypeUniversal Type = "UNIVERSAL"
)

func (t Type) Valid() bool {
	switch t {
	case TypeSedan, TypeSUV, TypeHatchback, TypeUniversal:
		return true
	}
	return false
}

// Car rows are soft-deleted so historical rentals and payments keep a
// valid reference.
type Car struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Model     string  `gorm:"not null" json:"model"`
	Brand     string  `gorm:"not null" json:"brand"`
	Type      Type    `gorm:"type:varchar(20);not null" json:"type"`
	Inventory int     `gorm:"not null" json:"inventory"`
	DailyFee  float64 `gorm:"not null" json:"daily_fee"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
