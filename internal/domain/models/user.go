// internal/domain/models/user.go
package models

import "time"

// Role is the closed set of account roles.
//
// Students browse events and register; organizers create and manage their
// own events; admins can manage every event. Capability checks live in
// policy/eventpolicy.
type Role string

const (
	RoleStudent   Role = "student"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

// ParseRole maps a stored role string to a Role, defaulting unknown values
// to student so a corrupt row never gains capabilities.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleOrganizer:
		return RoleOrganizer
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleStudent
	}
}

// User is a local account. Students self-register via the signup page;
// organizer and admin accounts are created by the seed CLI or operators.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"size:150;uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"size:128;not null" json:"-"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'student'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
