package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"creativeops/internal/apperr"
	"creativeops/internal/catalog"
	"creativeops/internal/interfaces"
	"creativeops/internal/models"
)

type variantRepository struct {
	db *sql.DB
}

func NewVariantRepository(db *sql.DB) interfaces.VariantRepository {
	return &variantRepository{db: db}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const upsertVariantQuery = `
	INSERT INTO variants (
		id, creative_id, position, platform, size, width, height, placement, aspect_class, ratio_label,
		status, image_ref, dco_state, variation_count, variation_cap, retired, retired_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	ON CONFLICT (id) DO UPDATE SET
		position = EXCLUDED.position,
		retired = EXCLUDED.retired,
		retired_at = EXCLUDED.retired_at
`

// upsertVariants writes variants in slice order; the index becomes the
// stored position so reads return matrix order. Existing rows only take the
// new position and retirement; render and DCO columns are owned by SaveRender
// and AddVariation.
func upsertVariants(ctx context.Context, ex execer, variants []models.Variant) error {
	for i, v := range variants {
		var retiredAt sql.NullTime
		if v.RetiredAt != nil {
			retiredAt = sql.NullTime{Time: *v.RetiredAt, Valid: true}
		}
		_, err := ex.ExecContext(ctx, upsertVariantQuery,
			v.ID,
			v.CreativeID,
			i,
			string(v.Platform),
			v.Size,
			v.Width,
			v.Height,
			v.Placement,
			string(v.AspectClass),
			v.RatioLabel,
			string(v.Status),
			v.ImageRef,
			string(v.DCOState),
			v.Variations.Count,
			v.Variations.Cap,
			v.Retired,
			retiredAt,
		)
		if err != nil {
			return fmt.Errorf("failed to save variant %s: %w", v.ID, err)
		}
	}
	return nil
}

const variantColumns = `id, creative_id, platform, size, width, height, placement, aspect_class, ratio_label,
	status, image_ref, dco_state, variation_count, variation_cap, retired, retired_at`

func scanVariant(row rowScanner) (models.Variant, error) {
	var (
		v                            models.Variant
		platform, aspect, status, ds string
		retiredAt                    sql.NullTime
	)
	if err := row.Scan(
		&v.ID,
		&v.CreativeID,
		&platform,
		&v.Size,
		&v.Width,
		&v.Height,
		&v.Placement,
		&aspect,
		&v.RatioLabel,
		&status,
		&v.ImageRef,
		&ds,
		&v.Variations.Count,
		&v.Variations.Cap,
		&v.Retired,
		&retiredAt,
	); err != nil {
		return models.Variant{}, err
	}
	v.Platform = catalog.PlatformID(platform)
	v.AspectClass = catalog.AspectClass(aspect)
	v.Status = models.VariantStatus(status)
	v.DCOState = models.DCOState(ds)
	if retiredAt.Valid {
		t := retiredAt.Time
		v.RetiredAt = &t
	}
	return v, nil
}

func (r *variantRepository) ListByCreative(ctx context.Context, creativeID string) ([]models.Variant, error) {
	query := `SELECT ` + variantColumns + `
		FROM variants
		WHERE creative_id = $1
		ORDER BY position
	`
	rows, err := r.db.QueryContext(ctx, query, creativeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	variants := []models.Variant{}
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}

func (r *variantRepository) SaveRender(ctx context.Context, variantID string, status models.VariantStatus, imageRef string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE variants SET status = $1, image_ref = $2 WHERE id = $3`,
		string(status), imageRef, variantID,
	)
	if err != nil {
		return fmt.Errorf("failed to save render for variant %s: %w", variantID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return apperr.Wrap(apperr.CodeNotFound, sql.ErrNoRows, "variant %s not found", variantID)
	}
	return nil
}

// AddVariation increments the variant's variation counter in place and moves
// it to processing. It returns false without error when no live variant below
// its cap has that id.
func (r *variantRepository) AddVariation(ctx context.Context, variantID string) (models.Variant, bool, error) {
	query := `
		UPDATE variants
		SET variation_count = variation_count + 1, dco_state = $1
		WHERE id = $2 AND variation_count < variation_cap AND NOT retired
		RETURNING ` + variantColumns
	v, err := scanVariant(r.db.QueryRowContext(ctx, query, string(models.DCOStateProcessing), variantID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Variant{}, false, nil
	}
	if err != nil {
		return models.Variant{}, false, fmt.Errorf("failed to add variation to variant %s: %w", variantID, err)
	}
	return v, true, nil
}
