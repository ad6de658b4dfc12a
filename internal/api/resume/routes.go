package resume

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers resume ingestion and memory inspection routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/api/upload", h.Upload)
	r.Post("/api/test-memory-add", h.MemoryAdd)
	r.Post("/api/test-memory-query", h.MemoryQuery)
}
