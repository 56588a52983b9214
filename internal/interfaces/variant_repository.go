package interfaces

import (
	"context"

	"creativeops/internal/models"
)

// VariantRepository reads and updates individual variants. Variants are
// created through CreativeRepository.
type VariantRepository interface {
	ListByCreative(ctx context.Context, creativeID string) ([]models.Variant, error)
	SaveRender(ctx context.Context, variantID string, status models.VariantStatus, imageRef string) error
	// AddVariation atomically bumps the variation counter of a live variant
	// below its cap. ok is false when nothing was updated.
	AddVariation(ctx context.Context, variantID string) (v models.Variant, ok bool, err error)
}
