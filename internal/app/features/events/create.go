// internal/app/features/events/create.go
package events

import (
	"fmt"
	"net/http"

	"github.com/dalemusser/eventhub/internal/app/policy/eventpolicy"
	eventstore "github.com/dalemusser/eventhub/internal/app/store/events"
	"github.com/dalemusser/eventhub/internal/app/system/flash"
	"github.com/dalemusser/eventhub/internal/app/system/formutil"
	"github.com/dalemusser/eventhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/eventhub/internal/app/system/inputval"
	"github.com/dalemusser/eventhub/internal/app/system/normalize"
	"github.com/dalemusser/waffle/pantry/templates"
)

// eventForm carries the user's entered values, echoed back on validation
// failure. Date is the raw datetime-local string.
type eventForm struct {
	Title       string
	Description string
	Date        string
	Location    string
}

type eventFormPageData struct {
	formutil.Base
	Form   eventForm
	Action string
	Submit string
}

type eventInput struct {
	Title       string `validate:"required,max=200" label:"Title"`
	Description string `validate:"required" label:"Description"`
	Date        string `validate:"required" label:"Date"`
	Location    string `validate:"required,max=200" label:"Location"`
}

// readEventForm parses and normalizes the posted event fields.
func readEventForm(r *http.Request) eventForm {
	return eventForm{
		Title:       normalize.Title(r.PostFormValue("title")),
		Description: normalize.Text(r.PostFormValue("description")),
		Date:        normalize.QueryParam(r.PostFormValue("date")),
		Location:    normalize.Title(r.PostFormValue("location")),
	}
}

// validateEventForm runs tag validation plus date parsing. It returns the
// parsed fields on success, or a user-facing message.
func validateEventForm(form eventForm) (eventstore.Fields, string) {
	input := eventInput{
		Title:       form.Title,
		Description: form.Description,
		Date:        form.Date,
		Location:    form.Location,
	}
	if result := inputval.Validate(input); result.HasErrors() {
		return eventstore.Fields{}, result.First()
	}

	date, err := parseEventDate(form.Date)
	if err != nil {
		return eventstore.Fields{}, "Date must be a valid date and time."
	}

	return eventstore.Fields{
		Title:       form.Title,
		Description: htmlsanitize.Sanitize(form.Description),
		Date:        date,
		Location:    form.Location,
	}, ""
}

// ServeNew handles GET /event/create.
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	user, signedIn := currentUser(r)
	if !signedIn || !eventpolicy.CanCreate(user) {
		flash.Error(w, r, "You don't have permission to create events.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := eventFormPageData{Action: "/event/create", Submit: "Create event"}
	formutil.SetBase(&data.Base, w, r, "Create event", "/dashboard")
	templates.Render(w, r, "event_form", data)
}

// HandleCreate handles POST /event/create.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, signedIn := currentUser(r)
	if !signedIn || !eventpolicy.CanCreate(user) {
		flash.Error(w, r, "You don't have permission to create events.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "events: parse create form", err,
			"We couldn't read the form. Please try again.", "/event/create")
		return
	}

	form := readEventForm(r)

	renderError := func(msg string) {
		data := eventFormPageData{Form: form, Action: "/event/create", Submit: "Create event"}
		formutil.SetBase(&data.Base, w, r, "Create event", "/dashboard")
		data.Error = msg
		templates.Render(w, r, "event_form", data)
	}

	fields, msg := validateEventForm(form)
	if msg != "" {
		renderError(msg)
		return
	}

	ctx, cancel := mediumCtx(r)
	defer cancel()

	event, err := h.Events.Create(ctx, user.ID, fields)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "events: create", err,
			"A server error occurred. Please try again.", "/event/create")
		return
	}

	flash.Success(w, r, "Event created.")
	http.Redirect(w, r, fmt.Sprintf("/event/%d", event.ID), http.StatusSeeOther)
}
