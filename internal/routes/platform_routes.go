package routes

import (
	"github.com/go-chi/chi/v5"

	"creativeops/internal/handlers"
)

func RegisterPlatformRoutes(router chi.Router, svc *Services) {
	platformHandler := handlers.NewPlatformHandler(svc.Catalog)

	router.Get("/platforms", platformHandler.ListPlatforms)
}
