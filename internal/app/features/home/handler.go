// internal/app/features/home/handler.go
package home

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/eventhub/internal/app/features/errors"
	eventstore "github.com/dalemusser/eventhub/internal/app/store/events"
	regstore "github.com/dalemusser/eventhub/internal/app/store/registrations"
	"github.com/dalemusser/eventhub/internal/app/system/timeouts"
	"github.com/dalemusser/eventhub/internal/app/system/viewdata"
	"github.com/dalemusser/eventhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type Handler struct {
	Log           *zap.Logger
	Events        *eventstore.Store
	Registrations *regstore.Store
	ErrLog        *uierrors.ErrorLogger
}

func NewHandler(events *eventstore.Store, regs *regstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:           logger,
		Events:        events,
		Registrations: regs,
		ErrLog:        errLog,
	}
}

// eventRow pairs an event with its registration count for the listing.
type eventRow struct {
	Event models.Event
	Count int64
}

type homePageData struct {
	viewdata.BaseVM
	Events []eventRow
}

// ServeRoot handles GET / and lists every event, newest date first.
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	events, err := h.Events.ListAll(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "home: list events", err,
			"We couldn't load the event list. Please try again.", "/")
		return
	}

	counts, err := h.Registrations.CountsByEvent(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "home: count registrations", err,
			"We couldn't load the event list. Please try again.", "/")
		return
	}

	rows := make([]eventRow, 0, len(events))
	for _, ev := range events {
		rows = append(rows, eventRow{Event: ev, Count: counts[ev.ID]})
	}

	data := homePageData{
		BaseVM: viewdata.NewBaseVM(w, r, "All events", "/"),
		Events: rows,
	}
	templates.Render(w, r, "home", data)
}
