package api

import (
	"net/http"
	"time"

	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/api/docs"
	interviewapi "github.com/ANKITsingh-git2/hireflow-ai-backend/internal/api/interview"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/api/middleware"
	resumeapi "github.com/ANKITsingh-git2/hireflow-ai-backend/internal/api/resume"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/entity"
	"github.com/ANKITsingh-git2/hireflow-ai-backend/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// timestampLayout matches JavaScript's Date.toISOString
const timestampLayout = "2006-01-02T15:04:05.000Z"

// SetupRouter creates and configures the HTTP router
func SetupRouter(resumeHandler *resumeapi.Handler, interviewHandler *interviewapi.Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                 // Recover from panics
	r.Use(chimiddleware.RequestID)                 // Add request ID
	r.Use(middleware.Logger(logger))               // Log requests
	r.Use(middleware.CORS)                         // Handle CORS
	r.Use(chimiddleware.Timeout(60 * time.Second)) // Default timeout

	// Liveness probe
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, entity.HealthResponse{
			Status:    "Active",
			Message:   "HireFlow AI Backend is running",
			Timestamp: time.Now().UTC().Format(timestampLayout),
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, map[string]string{"status": "healthy"})
	})

	r.Get("/api/test", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, map[string]string{"message": "if u see this the api is working"})
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	resumeapi.RegisterRoutes(r, resumeHandler)
	interviewapi.RegisterRoutes(r, interviewHandler)

	return r
}
