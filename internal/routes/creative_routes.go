// internal/routes/creative_routes.go
package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"creativeops/internal/config"
	"creativeops/internal/handlers"
	"creativeops/internal/repository"
)

// RegisterCreativeRoutes mounts everything under /creatives: the creative
// itself, its variant matrix, previews and renders, and its metrics.
func RegisterCreativeRoutes(router chi.Router, db *sql.DB, s3Config *config.S3Config, svc *Services) {
	creativeRepo := repository.NewCreativeRepository(db)
	variantRepo := repository.NewVariantRepository(db)
	metricsRepo := repository.NewMetricsRepository(db)

	creativeHandler := handlers.NewCreativeHandler(creativeRepo, variantRepo, svc.Generator, s3Config)
	variantHandler := handlers.NewVariantHandler(creativeRepo, variantRepo, svc.Catalog, svc.Renderer)
	metricsHandler := handlers.NewMetricsHandler(creativeRepo, variantRepo, metricsRepo, svc.Rules, svc.Catalog)

	router.Route("/creatives", func(r chi.Router) {
		r.Get("/", creativeHandler.ListCreatives)
		r.Post("/", creativeHandler.CreateCreative)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", creativeHandler.GetCreative)
			r.Delete("/", creativeHandler.DeleteCreative)
			r.Put("/platforms", creativeHandler.UpdatePlatforms)
			r.Post("/image", creativeHandler.UploadBaseImage)

			r.Get("/variants", variantHandler.ListVariants)
			r.Get("/preview/{platform}", variantHandler.GetPreview)
			r.Post("/render", variantHandler.RenderVariant)
			r.Post("/images", variantHandler.ImportImages)

			r.Put("/metrics", metricsHandler.IngestMetrics)
			r.Get("/summary", metricsHandler.GetSummary)
		})
	})
}
