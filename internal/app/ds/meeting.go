package ds

import (
	"time"

	"gorm.io/datatypes"
)

// Итоги встречи
const (
	OutcomeInterested    = "interested"
	OutcomeFollowUp      = "follow_up"
	OutcomeNotInterested = "not_interested"
)

type Meeting struct {
	ID           uint      `gorm:"primaryKey"`
	CollegeID    uint      `gorm:"not null;index"`
	Title        string    `gorm:"type:varchar(200);not null"`
	ScheduledAt  time.Time `gorm:"not null;index"` // хранится в UTC
	Location     string    `gorm:"type:varchar(200)"`
	Agenda       string    `gorm:"type:text"`
	Outcome      *string   `gorm:"type:varchar(20);default:null"`
	NextFollowUp *datatypes.Date
	Notes        string `gorm:"type:text"`
	CreatedBy    *uint  `gorm:"default:null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	College College `gorm:"foreignKey:CollegeID;constraint:OnDelete:CASCADE" json:"-"`
}
