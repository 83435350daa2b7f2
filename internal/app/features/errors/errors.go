// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/eventhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// pageData is the view model for error pages.
type pageData struct {
	viewdata.BaseVM
	Message string
}

// Handler is the errors feature handler.
// No DB needed; it just renders templates.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Forbidden renders a friendly "access denied" page.
// GET /forbidden
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(w, r, "Access denied", "/"),
		Message: "You don't have permission to view this page.",
	}
	templates.Render(w, r, "error_forbidden", data)
}

// Unauthorized renders a friendly "sign in required" page.
// GET /unauthorized
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(w, r, "Sign in required", "/login"),
		Message: "Please sign in to continue.",
	}
	templates.Render(w, r, "error_forbidden", data)
}
