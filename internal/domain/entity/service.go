package entity

import "time"

// Service duration bounds in minutes.
const (
	ServiceDurationMin = 1
	ServiceDurationMax = 480
)

// Service is a bookable offering. Duration is the contiguous block a booking
// occupies starting at its chosen slot.
type Service struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Duration  int       `gorm:"not null" json:"duration"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Service) TableName() string {
	return "services"
}

// DurationMinutes returns the duration as a time.Duration.
func (s *Service) DurationMinutes() time.Duration {
	return time.Duration(s.Duration) * time.Minute
}
