// internal/interfaces/creative_repository.go
package interfaces

import (
	"context"

	"creativeops/internal/models"
)

// CreativeRepository persists creatives together with their variant matrix.
// Create and UpdatePlatforms write the creative row and its variants in one
// transaction so a reader never sees a creative without its matrix.
type CreativeRepository interface {
	Create(ctx context.Context, creative *models.Creative, variants []models.Variant) error
	GetByID(ctx context.Context, id string) (*models.Creative, error)
	List(ctx context.Context, filter models.CreativeFilter) ([]*models.Creative, error)
	Count(ctx context.Context, filter models.CreativeFilter) (int, error)
	CountVariations(ctx context.Context, creativeIDs []string) (map[string]int, error)
	UpdatePlatforms(ctx context.Context, creative *models.Creative, variants []models.Variant) error
	UpdateBaseImage(ctx context.Context, id, ref string) error
	Delete(ctx context.Context, id string) error
}
