package ds

import "time"

// Статусы колледжа в воронке продаж
const (
	CollegeProspect    = "prospect"
	CollegeNegotiation = "negotiation"
	CollegeClosedWon   = "closed_won"
	CollegeLost        = "lost"
)

// Колледж - потенциальный клиент. Физически не удаляется.
type College struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"type:varchar(200);not null;index"`
	Address    string `gorm:"type:text"`
	City       string `gorm:"type:varchar(100)"`
	State      string `gorm:"type:varchar(100)"`
	Country    string `gorm:"type:varchar(100);default:'India'"`
	PostalCode string `gorm:"type:varchar(20)"`
	Website    string `gorm:"type:varchar(255)"`
	Status     string `gorm:"type:varchar(20);not null;default:'prospect';index"`
	Notes      string `gorm:"type:text"`
	CreatedBy  *uint  `gorm:"default:null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Creator *User `gorm:"foreignKey:CreatedBy" json:"-"`
}

// Контакт всегда принадлежит одному колледжу. IsPrimary не уникален.
type Contact struct {
	ID          uint   `gorm:"primaryKey"`
	CollegeID   uint   `gorm:"not null;index"`
	Name        string `gorm:"type:varchar(150);not null"`
	Designation string `gorm:"type:varchar(100)"`
	Email       string `gorm:"type:varchar(150)"`
	Phone       string `gorm:"type:varchar(30)"`
	IsPrimary   bool   `gorm:"not null;default:false"`
	Notes       string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	College College `gorm:"foreignKey:CollegeID;constraint:OnDelete:CASCADE" json:"-"`
}
