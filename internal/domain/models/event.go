// internal/domain/models/event.go
package models

import "time"

// Event is an activity students can register for.
//
// The organizer is fixed at creation time and never reassigned; only the
// four content fields (title, description, date, location) are editable.
// Registrations belong to the event and are removed with it.
type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	Location    string    `gorm:"size:200;not null" json:"location"`
	OrganizerID uint      `gorm:"not null;index" json:"organizer_id"`

	Organizer User `gorm:"foreignKey:OrganizerID" json:"organizer"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsPast reports whether the event date has already passed.
func (e *Event) IsPast(now time.Time) bool {
	return e.Date.Before(now)
}
