package ds

import (
	"time"

	"gorm.io/datatypes"
)

// Шаблон ценообразования, назначается колледжам через CollegePricingModel
type PricingModel struct {
	ID              uint    `gorm:"primaryKey"`
	Name            string  `gorm:"type:varchar(150);not null"`
	Description     string  `gorm:"type:text"`
	Tier            string  `gorm:"type:varchar(20);not null;default:'standard'"` // basic, standard, premium, enterprise
	BasePrice       float64 `gorm:"type:decimal(12,2);not null;default:0"`
	MinPrice        float64 `gorm:"type:decimal(12,2);not null;default:0"`
	MaxPrice        float64 `gorm:"type:decimal(12,2);not null;default:0"`
	DiscountPercent float64 `gorm:"type:decimal(5,2);default:0"`
	MarkupPercent   float64 `gorm:"type:decimal(5,2);default:0"`
	Currency        string  `gorm:"type:varchar(3);not null;default:'INR'"`
	EffectiveFrom   *datatypes.Date
	EffectiveTo     *datatypes.Date
	IsActive        bool `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type CollegePricingModel struct {
	ID             uint `gorm:"primaryKey"`
	CollegeID      uint `gorm:"not null;uniqueIndex:idx_college_pricing_model"`
	PricingModelID uint `gorm:"not null;uniqueIndex:idx_college_pricing_model"`
	CreatedAt      time.Time

	College      College      `gorm:"foreignKey:CollegeID;constraint:OnDelete:CASCADE" json:"-"`
	PricingModel PricingModel `gorm:"foreignKey:PricingModelID;constraint:OnDelete:CASCADE" json:"-"`
}
