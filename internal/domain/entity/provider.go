package entity

import "time"

// Name length bounds shared by providers and services.
const (
	NameMinLength = 2
	NameMaxLength = 255
)

// Provider offers services during its weekly working hours. Changing the
// schedule never touches bookings that already exist.
type Provider struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	WorkingHours WeeklySchedule `gorm:"type:jsonb;not null" json:"working_hours"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Provider) TableName() string {
	return "providers"
}
