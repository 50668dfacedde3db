package models

import "time"

// Session is one independent range picker. PendingStart holds the first
// tap of an unfinished gesture as a 2006-01-02 day.
type Session struct {
	ID           uint      `gorm:"primaryKey"`
	PublicID     string    `gorm:"not null;uniqueIndex:uidx_sessions_public_id"`
	PendingStart *string   `gorm:"column:pending_start"`
	SelectedDays []string  `gorm:"serializer:json"`
	EventCount   int       `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CommittedRange struct {
	ID        uint      `gorm:"primaryKey"`
	SessionID uint      `gorm:"not null;index"`
	StartDay  string    `gorm:"not null"`
	EndDay    string    `gorm:"not null"`
	CreatedAt time.Time
}
