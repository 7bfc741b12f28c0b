package leads

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers lead endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Post("/{id}/status", h.UpdateStatus)
	r.Delete("/{id}", h.Delete)
}
