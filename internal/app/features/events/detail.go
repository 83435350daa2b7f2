// internal/app/features/events/detail.go
package events

import (
	"html/template"
	"net/http"

	"github.com/dalemusser/eventhub/internal/app/policy/eventpolicy"
	"github.com/dalemusser/eventhub/internal/app/system/viewdata"
	"github.com/dalemusser/eventhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
)

type detailPageData struct {
	viewdata.BaseVM
	Event        models.Event
	Description  template.HTML // sanitized at write time, safe to render
	Count        int64
	IsRegistered bool
	CanRegister  bool
	CanManage    bool
	IsPast       bool
}

// ServeDetail handles GET /event/{id}. Public: anonymous visitors see the
// event; signed-in users additionally see their registration state and any
// management links their role grants.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := mediumCtx(r)
	defer cancel()

	event, ok := h.loadEvent(ctx, w, r)
	if !ok {
		return
	}

	count, err := h.Registrations.CountForEvent(ctx, event.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "events: count registrations", err,
			"We couldn't load that event. Please try again.", "/")
		return
	}

	data := detailPageData{
		BaseVM:      viewdata.NewBaseVM(w, r, event.Title, "/"),
		Event:       *event,
		Description: template.HTML(event.Description),
		Count:       count,
		IsPast:      event.IsPast(timeNow()),
	}

	if user, signedIn := currentUser(r); signedIn {
		data.CanRegister = eventpolicy.CanRegister(user)
		data.CanManage = eventpolicy.CanManage(user, event)

		if data.CanRegister {
			registered, err := h.Registrations.IsRegistered(ctx, user.ID, event.ID)
			if err != nil {
				h.ErrLog.LogServerError(w, r, "events: check registration", err,
					"We couldn't load that event. Please try again.", "/")
				return
			}
			data.IsRegistered = registered
		}
	}

	templates.Render(w, r, "event_detail", data)
}
