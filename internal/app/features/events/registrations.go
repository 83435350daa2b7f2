// internal/app/features/events/registrations.go
package events

import (
	"fmt"
	"net/http"

	"github.com/dalemusser/eventhub/internal/app/policy/eventpolicy"
	"github.com/dalemusser/eventhub/internal/app/system/flash"
	"github.com/dalemusser/eventhub/internal/app/system/viewdata"
	"github.com/dalemusser/eventhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

type registrationsPageData struct {
	viewdata.BaseVM
	Event         models.Event
	Registrations []models.Registration
}

// ServeRegistrations handles GET /event/{id}/registrations: the registrant
// roster, visible to the event's organizer and admins.
func (h *Handler) ServeRegistrations(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := mediumCtx(r)
	defer cancel()

	event, ok := h.loadEvent(ctx, w, r)
	if !ok {
		return
	}

	user, signedIn := currentUser(r)
	if !signedIn || !eventpolicy.CanManage(user, event) {
		flash.Error(w, r, "You don't have permission to view this event's registrations.")
		http.Redirect(w, r, fmt.Sprintf("/event/%d", event.ID), http.StatusSeeOther)
		return
	}

	regs, err := h.Registrations.ListForEvent(ctx, event.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "events: list registrations", err,
			"A server error occurred. Please try again.", fmt.Sprintf("/event/%d", event.ID))
		return
	}

	data := registrationsPageData{
		BaseVM:        viewdata.NewBaseVM(w, r, "Registrations · "+event.Title, fmt.Sprintf("/event/%d", event.ID)),
		Event:         *event,
		Registrations: regs,
	}
	templates.Render(w, r, "event_registrations", data)
}
