package sales

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers sale endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Post("/{id}/effects", h.RetryEffects)
	r.Delete("/{id}", h.Delete)
}
