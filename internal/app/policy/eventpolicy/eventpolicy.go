// internal/app/policy/eventpolicy.go

// Package eventpolicy holds the pure capability predicates for events and
// registrations. The functions are side-effect-free and never error;
// callers branch on the boolean and surface their own rejection message.
package eventpolicy

import "github.com/dalemusser/eventhub/internal/domain/models"

// CanManage reports whether the user may edit or delete the event, or view
// its registrant list: admins always can, otherwise only the organizer who
// created it.
func CanManage(user *models.User, event *models.Event) bool {
	if user == nil || event == nil {
		return false
	}
	if user.Role == models.RoleAdmin {
		return true
	}
	return user.ID == event.OrganizerID
}

// CanCreate reports whether the user may create events.
func CanCreate(user *models.User) bool {
	if user == nil {
		return false
	}
	return user.Role == models.RoleOrganizer || user.Role == models.RoleAdmin
}

// CanRegister reports whether the user may register for events.
// Only plain students register; organizer and admin accounts are excluded
// from registering even for events they do not manage. See DESIGN.md
// before changing this rule.
func CanRegister(user *models.User) bool {
	if user == nil {
		return false
	}
	return user.Role == models.RoleStudent
}
