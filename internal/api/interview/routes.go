package interview

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers interview chat routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/api/chat", h.Chat)
}
