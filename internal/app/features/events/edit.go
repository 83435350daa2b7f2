// internal/app/features/events/edit.go
package events

import (
	"fmt"
	"net/http"

	"github.com/dalemusser/eventhub/internal/app/policy/eventpolicy"
	"github.com/dalemusser/eventhub/internal/app/system/flash"
	"github.com/dalemusser/eventhub/internal/app/system/formutil"
	"github.com/dalemusser/waffle/pantry/templates"
)

// ServeEdit handles GET /event/{id}/edit.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := shortCtx(r)
	defer cancel()

	event, ok := h.loadEvent(ctx, w, r)
	if !ok {
		return
	}

	user, signedIn := currentUser(r)
	if !signedIn || !eventpolicy.CanManage(user, event) {
		flash.Error(w, r, "You don't have permission to edit this event.")
		http.Redirect(w, r, fmt.Sprintf("/event/%d", event.ID), http.StatusSeeOther)
		return
	}

	data := eventFormPageData{
		Form: eventForm{
			Title:       event.Title,
			Description: event.Description,
			Date:        event.Date.Format(dateInputLayout),
			Location:    event.Location,
		},
		Action: fmt.Sprintf("/event/%d/edit", event.ID),
		Submit: "Save changes",
	}
	formutil.SetBase(&data.Base, w, r, "Edit event", fmt.Sprintf("/event/%d", event.ID))
	templates.Render(w, r, "event_form", data)
}

// HandleEdit handles POST /event/{id}/edit.
func (h *Handler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := mediumCtx(r)
	defer cancel()

	event, ok := h.loadEvent(ctx, w, r)
	if !ok {
		return
	}

	user, signedIn := currentUser(r)
	if !signedIn || !eventpolicy.CanManage(user, event) {
		flash.Error(w, r, "You don't have permission to edit this event.")
		http.Redirect(w, r, fmt.Sprintf("/event/%d", event.ID), http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "events: parse edit form", err,
			"We couldn't read the form. Please try again.", fmt.Sprintf("/event/%d/edit", event.ID))
		return
	}

	form := readEventForm(r)

	renderError := func(msg string) {
		data := eventFormPageData{
			Form:   form,
			Action: fmt.Sprintf("/event/%d/edit", event.ID),
			Submit: "Save changes",
		}
		formutil.SetBase(&data.Base, w, r, "Edit event", fmt.Sprintf("/event/%d", event.ID))
		data.Error = msg
		templates.Render(w, r, "event_form", data)
	}

	fields, msg := validateEventForm(form)
	if msg != "" {
		renderError(msg)
		return
	}

	if err := h.Events.Update(ctx, event, fields); err != nil {
		h.ErrLog.LogServerError(w, r, "events: update", err,
			"A server error occurred. Please try again.", fmt.Sprintf("/event/%d", event.ID))
		return
	}

	flash.Success(w, r, "Event updated.")
	http.Redirect(w, r, fmt.Sprintf("/event/%d", event.ID), http.StatusSeeOther)
}
