// internal/app/features/events/routes.go
package events

import (
	"github.com/dalemusser/eventhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	// /create is registered before /{id} so chi does not treat "create"
	// as an id.
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/create", h.ServeNew)
		pr.Post("/create", h.HandleCreate)
	})

	r.Get("/{id}", h.ServeDetail)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Post("/{id}/register", h.HandleRegister)
		pr.Post("/{id}/unregister", h.HandleUnregister)
		pr.Get("/{id}/registrations", h.ServeRegistrations)
		pr.Get("/{id}/edit", h.ServeEdit)
		pr.Post("/{id}/edit", h.HandleEdit)
		pr.Get("/{id}/delete", h.ServeDelete)
		pr.Post("/{id}/delete", h.HandleDelete)
	})

	return r
}
