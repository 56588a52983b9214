// internal/routes/routes.go
package routes

import (
	"database/sql"
	"log"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"creativeops/internal/config"
	"creativeops/internal/handlers"
	authmw "creativeops/internal/middleware"
)

func SetupRoutes(db *sql.DB, cfg *config.Config, s3Config *config.S3Config, svc *Services) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	base := handlers.NewBaseHandler(db, cfg)
	r.Get("/", base.Root)
	r.Get("/health", base.Health)
	RegisterSwaggerRoutes(r)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.JWTSecret != "" {
			r.Use(authmw.JWTAuth(cfg.JWTSecret))
		} else {
			log.Println("JWT_SECRET not set, /api/v1 is unauthenticated")
		}
		RegisterPlatformRoutes(r, svc)
		RegisterCreativeRoutes(r, db, s3Config, svc)
		RegisterDCORoutes(r, db, svc)
	})

	return r
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}
