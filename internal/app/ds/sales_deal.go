package ds

import (
	"time"

	"gorm.io/datatypes"
)

// Стадии сделки
const (
	StageLead        = "lead"
	StageQualified   = "qualified"
	StageProposal    = "proposal"
	StageNegotiation = "negotiation"
	StageClosedWon   = "closed_won"
	StageClosedLost  = "closed_lost"
)

type SalesDeal struct {
	ID            uint    `gorm:"primaryKey"`
	CollegeID     uint    `gorm:"not null;index"`
	Title         string  `gorm:"type:varchar(200);not null"`
	Value         float64 `gorm:"type:decimal(14,2);not null;default:0"`
	Currency      string  `gorm:"type:varchar(3);not null;default:'INR'"`
	Probability   int     `gorm:"type:int;not null;default:0"` // 0-100
	Stage         string  `gorm:"type:varchar(20);not null;default:'lead';index"`
	ExpectedClose *datatypes.Date
	Notes         string `gorm:"type:text"`
	CreatedBy     *uint  `gorm:"default:null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	College College `gorm:"foreignKey:CollegeID;constraint:OnDelete:CASCADE" json:"-"`
}
