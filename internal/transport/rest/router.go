package rest

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/opencivic/civic-reporter/internal"
	"github.com/opencivic/civic-reporter/internal/auth"
	"github.com/opencivic/civic-reporter/internal/departments"
	"github.com/opencivic/civic-reporter/internal/issues"
	"github.com/opencivic/civic-reporter/internal/stats"
	"github.com/opencivic/civic-reporter/internal/storage"
	"github.com/opencivic/civic-reporter/internal/transport/middleware"
	"github.com/opencivic/civic-reporter/internal/transport/swagger"
	"github.com/opencivic/civic-reporter/internal/users"
)

// Handlers bundles every feature handler the router mounts. Auth and
// Upload may be nil when their features are not configured.
type Handlers struct {
	Issues      *issues.Handler
	Users       *users.Handler
	Departments *departments.Handler
	Stats       *stats.Handler
	Upload      *storage.Handler
	Auth        *auth.Handler
}

// RegisterAllRoutes mounts the full API surface. The civic routes carry no
// authentication: the only token-aware endpoints are the admin session
// pair under /api/auth.
func RegisterAllRoutes(router *chi.Mux, cfg *internal.Config, db *sql.DB, redisClient *redis.Client, handlers Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db, redisClient)

	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// OpenAPI document and swagger UI live outside the API prefix
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.NotFound(notFoundHandler)
	router.MethodNotAllowed(notFoundHandler)

	router.Route("/api", func(r chi.Router) {
		r.Get("/", apiIndexHandler)
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/issues", func(ir chi.Router) {
			if redisClient != nil && cfg.Redis.Enabled() {
				// fixed-window limiter guards intake only; reads stay open
				limited := ir.With(middleware.RateLimit(redisClient, cfg.Redis.RateLimitCount, cfg.Redis.RateLimitWindow, logger))
				limited.Post("/", handlers.Issues.CreateIssue)
			} else {
				ir.Post("/", handlers.Issues.CreateIssue)
			}
			ir.Get("/", handlers.Issues.GetIssues)
			ir.Get("/{id}", handlers.Issues.GetIssue)
			ir.Put("/{id}", handlers.Issues.UpdateIssue)
			ir.Delete("/{id}", handlers.Issues.DeleteIssue)
		})

		r.Route("/users", func(ur chi.Router) {
			ur.Get("/", handlers.Users.GetUsers)
			ur.Post("/", handlers.Users.CreateUser)
		})

		r.Route("/stats", func(sr chi.Router) {
			sr.Get("/", handlers.Stats.GetStats)
			sr.Get("/areas", handlers.Stats.GetAreaStats)
		})

		r.Route("/departments", func(dr chi.Router) {
			dr.Get("/", handlers.Departments.GetDepartments)
			dr.Post("/", handlers.Departments.CreateDepartment)
			dr.Put("/{id}", handlers.Departments.UpdateDepartment)
			dr.Delete("/{id}", handlers.Departments.DeleteDepartment)
		})

		if handlers.Upload != nil {
			r.Post("/uploads", handlers.Upload.UploadPhoto)
		}

		if handlers.Auth != nil {
			r.Route("/auth", func(ar chi.Router) {
				ar.Post("/login", handlers.Auth.Login)
				ar.Get("/me", handlers.Auth.Me)
			})
		}
	})
}

// apiIndexHandler is the discovery payload the original served at the API
// root.
func apiIndexHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Civic Reporter API",
		"endpoints": map[string]string{
			"health":      "GET /api/health",
			"issues":      "GET, POST /api/issues",
			"issue":       "GET, PUT, DELETE /api/issues/{id}",
			"users":       "GET, POST /api/users",
			"stats":       "GET /api/stats",
			"areas":       "GET /api/stats/areas",
			"departments": "GET, POST /api/departments",
			"department":  "PUT, DELETE /api/departments/{id}",
			"uploads":     "POST /api/uploads",
			"docs":        "GET /swagger/index.html",
		},
	})
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(map[string]string{"error": "Route not found"})
}
