package routes

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"creativeops/internal/catalog"
	"creativeops/internal/config"
	"creativeops/internal/dco"
	"creativeops/internal/matrix"
	"creativeops/internal/preview"
	"creativeops/internal/repository"
	"creativeops/internal/services"
)

// Services holds the process-wide domain components shared by the handlers.
type Services struct {
	Catalog   *catalog.Catalog
	Generator *matrix.Generator
	Rules     *dco.RuleSet
	Renderer  preview.Renderer
}

// NewServices builds the catalog, matrix generator and render client from
// config and loads the persisted DCO rules. Rule mutations are written
// through to the database before they become visible.
func NewServices(ctx context.Context, db *sql.DB, cfg *config.Config) (*Services, error) {
	strategy, err := dco.ParseStrategy(cfg.ApplyStrategy)
	if err != nil {
		return nil, err
	}

	ruleRepo := repository.NewRuleRepository(db)
	stored, err := ruleRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dco rules: %w", err)
	}
	rules, err := dco.NewRuleSet(stored, dco.WithCommitter(ruleRepo), dco.WithStrategy(strategy))
	if err != nil {
		return nil, fmt.Errorf("load dco rules: %w", err)
	}
	log.Printf("Loaded %d DCO rules (strategy %s)", len(stored), strategy)

	cat := catalog.Default()
	return &Services{
		Catalog:   cat,
		Generator: matrix.NewGenerator(cat, matrix.WithVariationCap(cfg.VariationCap)),
		Rules:     rules,
		Renderer:  services.NewRenderClient(cfg.RenderServiceURL, cfg.RenderTimeout),
	}, nil
}
