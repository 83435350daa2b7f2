// internal/app/features/events/handler.go
package events

import (
	"context"
	"net/http"
	"strconv"
	"time"

	uierrors "github.com/dalemusser/eventhub/internal/app/features/errors"
	eventstore "github.com/dalemusser/eventhub/internal/app/store/events"
	regstore "github.com/dalemusser/eventhub/internal/app/store/registrations"
	"github.com/dalemusser/eventhub/internal/app/system/auth"
	"github.com/dalemusser/eventhub/internal/app/system/timeouts"
	"github.com/dalemusser/eventhub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// dateInputLayout matches the value format of <input type="datetime-local">.
const dateInputLayout = "2006-01-02T15:04"

// timeNow is swapped out in tests.
var timeNow = time.Now

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

// eventID parses the {id} route parameter. A zero return means the URL was
// malformed and the caller should 404.
func eventID(r *http.Request) uint {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0
	}
	return uint(id)
}

// loadEvent resolves the {id} parameter to an event, rendering a 404 page
// on a bad id or missing row. The bool reports whether the caller may
// proceed.
func (h *Handler) loadEvent(ctx context.Context, w http.ResponseWriter, r *http.Request) (*models.Event, bool) {
	id := eventID(r)
	if id == 0 {
		uierrors.RenderNotFound(w, r)
		return nil, false
	}

	event, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if err == eventstore.ErrEventNotFound {
			uierrors.RenderNotFound(w, r)
			return nil, false
		}
		h.ErrLog.LogServerError(w, r, "events: load event", err,
			"We couldn't load that event. Please try again.", "/")
		return nil, false
	}
	return event, true
}

// currentUser returns the signed-in caller as a domain user for policy
// checks. ok=false means anonymous.
func currentUser(r *http.Request) (*models.User, bool) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		return nil, false
	}
	return su.AsUser(), true
}

func shortCtx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), timeouts.Short())
}

func mediumCtx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), timeouts.Medium())
}

func longCtx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), timeouts.Long())
}

// parseEventDate parses the datetime-local form value in server-local time.
func parseEventDate(raw string) (time.Time, error) {
	return time.ParseInLocation(dateInputLayout, raw, time.Local)
}
