// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/dalemusser/eventhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
)

// RenderUnauthorized shows a friendly "sign in required" page.
// If backURL is empty, it defaults to /login.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request, backURL string) {
	if backURL == "" {
		backURL = "/login"
	}
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(w, r, "Sign in required", backURL),
		Message: "Please sign in to continue.",
	}
	templates.Render(w, r, "error_forbidden", data)
}

// RenderForbidden shows a friendly access error page with a message.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if backURL == "" {
		backURL = "/"
	}
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(w, r, "Access denied", backURL),
		Message: msg,
	}
	templates.Render(w, r, "error_forbidden", data)
}

// RenderNotFound shows a generic 404 page.
func RenderNotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	data := pageData{
		BaseVM:  viewdata.NewBaseVM(w, r, "Not found", "/"),
		Message: "The page you requested does not exist.",
	}
	templates.Render(w, r, "error_notfound", data)
}
