package inventory

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers inventory endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/items", h.List)
	r.Post("/items", h.Register)
	r.Post("/items/adjust", h.AdjustStock)
	r.Delete("/items/{id}", h.Delete)
}
