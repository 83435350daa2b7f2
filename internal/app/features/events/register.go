// internal/app/features/events/register.go
package events

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dalemusser/eventhub/internal/app/policy/eventpolicy"
	regstore "github.com/dalemusser/eventhub/internal/app/store/registrations"
	"github.com/dalemusser/eventhub/internal/app/system/flash"
)

// HandleRegister handles POST /event/{id}/register. Students only; a
// concurrent double-submit loses at the unique index and surfaces as the
// same warning a plain double-click gets.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := mediumCtx(r)
	defer cancel()

	event, ok := h.loadEvent(ctx, w, r)
	if !ok {
		return
	}
	back := fmt.Sprintf("/event/%d", event.ID)

	user, signedIn := currentUser(r)
	if !signedIn {
		http.Redirect(w, r, "/login?return="+url.QueryEscape(back), http.StatusSeeOther)
		return
	}
	if !eventpolicy.CanRegister(user) {
		flash.Error(w, r, "Only student accounts can register for events.")
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}

	_, err := h.Registrations.Create(ctx, user.ID, event.ID)
	if err != nil {
		if errors.Is(err, regstore.ErrAlreadyRegistered) {
			flash.Warning(w, r, "You are already registered for this event.")
			http.Redirect(w, r, back, http.StatusSeeOther)
			return
		}
		h.ErrLog.LogServerError(w, r, "events: register", err,
			"A server error occurred. Please try again.", back)
		return
	}

	flash.Success(w, r, fmt.Sprintf("You are registered for %q.", event.Title))
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// HandleUnregister handles POST /event/{id}/unregister.
func (h *Handler) HandleUnregister(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := mediumCtx(r)
	defer cancel()

	event, ok := h.loadEvent(ctx, w, r)
	if !ok {
		return
	}
	back := fmt.Sprintf("/event/%d", event.ID)

	user, signedIn := currentUser(r)
	if !signedIn {
		http.Redirect(w, r, "/login?return="+url.QueryEscape(back), http.StatusSeeOther)
		return
	}

	if err := h.Registrations.Delete(ctx, user.ID, event.ID); err != nil {
		if errors.Is(err, regstore.ErrNotRegistered) {
			flash.Error(w, r, "You are not registered for this event.")
			http.Redirect(w, r, back, http.StatusSeeOther)
			return
		}
		h.ErrLog.LogServerError(w, r, "events: unregister", err,
			"A server error occurred. Please try again.", back)
		return
	}

	flash.Success(w, r, fmt.Sprintf("Your registration for %q was cancelled.", event.Title))
	http.Redirect(w, r, back, http.StatusSeeOther)
}
