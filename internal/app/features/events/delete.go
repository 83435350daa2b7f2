// internal/app/features/events/delete.go
package events

import (
	"errors"
	"fmt"
	"net/http"

	uierrors "github.com/dalemusser/eventhub/internal/app/features/errors"
	"github.com/dalemusser/eventhub/internal/app/policy/eventpolicy"
	eventstore "github.com/dalemusser/eventhub/internal/app/store/events"
	"github.com/dalemusser/eventhub/internal/app/system/flash"
	"github.com/dalemusser/eventhub/internal/app/system/viewdata"
	"github.com/dalemusser/eventhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

type deletePageData struct {
	viewdata.BaseVM
	Event models.Event
	Count int64
}

// ServeDelete handles GET /event/{id}/delete: a confirmation page showing
// how many registrations will be removed with the event.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := shortCtx(r)
	defer cancel()

	event, ok := h.loadEvent(ctx, w, r)
	if !ok {
		return
	}

	user, signedIn := currentUser(r)
	if !signedIn || !eventpolicy.CanManage(user, event) {
		flash.Error(w, r, "You don't have permission to delete this event.")
		http.Redirect(w, r, fmt.Sprintf("/event/%d", event.ID), http.StatusSeeOther)
		return
	}

	count, err := h.Registrations.CountForEvent(ctx, event.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "events: count registrations", err,
			"A server error occurred. Please try again.", fmt.Sprintf("/event/%d", event.ID))
		return
	}

	data := deletePageData{
		BaseVM: viewdata.NewBaseVM(w, r, "Delete event", fmt.Sprintf("/event/%d", event.ID)),
		Event:  *event,
		Count:  count,
	}
	templates.Render(w, r, "event_delete", data)
}

// HandleDelete handles POST /event/{id}/delete. The store removes the
// event's registrations in the same transaction.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := longCtx(r)
	defer cancel()

	event, ok := h.loadEvent(ctx, w, r)
	if !ok {
		return
	}

	user, signedIn := currentUser(r)
	if !signedIn || !eventpolicy.CanManage(user, event) {
		flash.Error(w, r, "You don't have permission to delete this event.")
		http.Redirect(w, r, fmt.Sprintf("/event/%d", event.ID), http.StatusSeeOther)
		return
	}

	if err := h.Events.Delete(ctx, event.ID); err != nil {
		if errors.Is(err, eventstore.ErrEventNotFound) {
			// Deleted between the load and the delete; the end state is
			// what the user asked for.
			uierrors.RenderNotFound(w, r)
			return
		}
		h.ErrLog.LogServerError(w, r, "events: delete", err,
			"A server error occurred. Please try again.", fmt.Sprintf("/event/%d", event.ID))
		return
	}

	flash.Success(w, r, fmt.Sprintf("Event %q deleted.", event.Title))
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
