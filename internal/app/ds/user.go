package ds

import (
	"time"

	"crm/internal/app/role"
)

// Пользователи CRM (менеджеры по продажам и администраторы)
type User struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"` // bcrypt
	FullName  string    `gorm:"type:varchar(100)"`
	Role      role.Role `gorm:"type:int;default:0;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
