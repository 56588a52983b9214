package interfaces

import (
	"context"

	"creativeops/internal/models"
)

type MetricsRepository interface {
	Upsert(ctx context.Context, creativeID string, metrics []models.VariantMetrics) error
	ListByCreative(ctx context.Context, creativeID string) (map[string]models.VariantMetrics, error)
}
