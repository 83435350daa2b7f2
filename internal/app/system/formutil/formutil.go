// Package formutil provides helpers for form re-rendering with validation
// errors.
//
// When a form submission fails validation, the form is re-rendered with the
// user's previously entered values echoed back, plus an error message. The
// Base struct carries the common fields; embed it in form view models:
//
//	type createEventData struct {
//	    formutil.Base
//	    Title    string
//	    Location string
//	}
//
//	data := createEventData{Title: title, Location: location}
//	formutil.SetBase(&data.Base, w, r, "Create Event", "/dashboard")
//	data.Error = "Title is required."
//	templates.Render(w, r, "event_form", data)
package formutil

import (
	"net/http"

	"github.com/dalemusser/eventhub/internal/app/system/viewdata"
)

// Base is embedded in form view models.
type Base struct {
	viewdata.BaseVM
	Error string
}

// SetBase populates the embedded BaseVM for a form page.
func SetBase(b *Base, w http.ResponseWriter, r *http.Request, title, backDefault string) {
	b.BaseVM = viewdata.NewBaseVM(w, r, title, backDefault)
}
