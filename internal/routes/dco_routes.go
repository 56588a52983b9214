package routes

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"creativeops/internal/handlers"
	"creativeops/internal/repository"
)

func RegisterDCORoutes(router chi.Router, db *sql.DB, svc *Services) {
	creativeRepo := repository.NewCreativeRepository(db)
	variantRepo := repository.NewVariantRepository(db)
	ruleHandler := handlers.NewRuleHandler(svc.Rules, creativeRepo, variantRepo, svc.Generator)

	router.Route("/dco", func(r chi.Router) {
		r.Post("/evaluate", ruleHandler.Evaluate)
		r.Route("/rules", func(r chi.Router) {
			r.Get("/", ruleHandler.ListRules)
			r.Post("/", ruleHandler.CreateRule)
			r.Route("/{id}", func(r chi.Router) {
				r.Delete("/", ruleHandler.DeleteRule)
				r.Post("/reorder", ruleHandler.ReorderRule)
				r.Post("/toggle", ruleHandler.ToggleRule)
			})
		})
	})
}
