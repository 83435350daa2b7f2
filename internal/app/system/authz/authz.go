// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/dalemusser/eventhub/internal/app/system/auth"
	"github.com/dalemusser/eventhub/internal/domain/models"
)

// UserCtx returns the current user's role, username, ID, and a found flag.
// If no user is present in context it returns (RoleStudent, "", 0, false);
// callers can trust that ok=true means a valid, authenticated user.
func UserCtx(r *http.Request) (role models.Role, username string, userID uint, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return models.RoleStudent, "", 0, false
	}
	return user.Role, user.Username, user.ID, true
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleAdmin
}

// IsOrganizer reports whether the current request's user is an organizer.
// Note: admins are not organizers; use eventpolicy for capability checks.
func IsOrganizer(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleOrganizer
}

// IsStudent reports whether the current request's user is a plain student.
func IsStudent(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleStudent
}
