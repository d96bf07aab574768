package routes

import (
	"net/http"

	"Ozone/internal/api/handlers/labeler"
	"Ozone/internal/api/middleware"
	"Ozone/internal/core/labelerconfig"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// LabelerConfigRoutes returns the router for /api/config.
// Every call triggers up to four outbound fetches, so it gets its own per-client limit.
func LabelerConfigRoutes(service labelerconfig.Service, limiter *middleware.RateLimiter, allowedOrigins []string) chi.Router {
	r := chi.NewRouter()
	h := labeler.NewGetHandler(service)

	r.Use(corsMiddleware(allowedOrigins))
	r.Use(limiter.Middleware)

	r.Get("/", h.HandleGet)
	r.Get("/full", h.HandleGetFull)

	return r
}

// corsMiddleware lets the console UI call the API from its own origin
func corsMiddleware(allowedOrigins []string) func(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		MaxAge: 300, // 5 minutes
	})
}
