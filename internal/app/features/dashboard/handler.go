// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/eventhub/internal/app/features/errors"
	eventstore "github.com/dalemusser/eventhub/internal/app/store/events"
	regstore "github.com/dalemusser/eventhub/internal/app/store/registrations"
	"github.com/dalemusser/eventhub/internal/app/system/auth"
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

type eventRow struct {
	Event models.Event
	Count int64
}

type dashboardPageData struct {
	viewdata.BaseVM
	IsAdmin bool
	Events  []eventRow
}

// ServeDashboard handles GET /dashboard. Admins see every event, organizers
// their own; students have no events to manage and land on /my-events.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	if user.Role == models.RoleStudent {
		http.Redirect(w, r, "/my-events", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var (
		events []models.Event
		err    error
	)
	if user.Role == models.RoleAdmin {
		events, err = h.Events.ListAll(ctx)
	} else {
		events, err = h.Events.ListByOrganizer(ctx, user.ID)
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "dashboard: list events", err,
			"We couldn't load your dashboard. Please try again.", "/")
		return
	}

	counts, err := h.Registrations.CountsByEvent(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "dashboard: count registrations", err,
			"We couldn't load your dashboard. Please try again.", "/")
		return
	}

	rows := make([]eventRow, 0, len(events))
	for _, ev := range events {
		rows = append(rows, eventRow{Event: ev, Count: counts[ev.ID]})
	}

	data := dashboardPageData{
		BaseVM:  viewdata.NewBaseVM(w, r, "Dashboard", "/"),
		IsAdmin: user.Role == models.RoleAdmin,
		Events:  rows,
	}
	templates.Render(w, r, "dashboard", data)
}
