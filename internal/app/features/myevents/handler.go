// internal/app/features/myevents/handler.go
package myevents

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/eventhub/internal/app/features/errors"
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
	Registrations *regstore.Store
	ErrLog        *uierrors.ErrorLogger
}

func NewHandler(regs *regstore.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Log:           logger,
		Registrations: regs,
		ErrLog:        errLog,
	}
}

type myEventsPageData struct {
	viewdata.BaseVM
	Registrations []models.Registration
}

// ServeMyEvents handles GET /my-events: the signed-in student's
// registrations, newest first.
func (h *Handler) ServeMyEvents(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	regs, err := h.Registrations.ListForStudent(ctx, user.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "myevents: list registrations", err,
			"We couldn't load your events. Please try again.", "/")
		return
	}

	data := myEventsPageData{
		BaseVM:        viewdata.NewBaseVM(w, r, "My events", "/"),
		Registrations: regs,
	}
	templates.Render(w, r, "my_events", data)
}
