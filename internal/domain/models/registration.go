// internal/domain/models/registration.go
package models

import "time"

// Registration records a student's intent to attend an event.
//
// The composite unique index on (student_id, event_id) is the single source
// of truth for "at most one registration per student per event": concurrent
// register attempts are serialized by the database, and the loser surfaces
// as a duplicate-key error rather than a second row.
type Registration struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	StudentID uint `gorm:"not null;uniqueIndex:idx_registrations_student_event" json:"student_id"`
	EventID   uint `gorm:"not null;uniqueIndex:idx_registrations_student_event;index" json:"event_id"`

	Student User  `gorm:"foreignKey:StudentID" json:"student"`
	Event   Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"event"`

	CreatedAt time.Time `json:"created_at"`
}
