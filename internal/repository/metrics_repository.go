package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"creativeops/internal/apperr"
	"creativeops/internal/interfaces"
	"creativeops/internal/models"
)

type metricsRepository struct {
	db *sql.DB
}

func NewMetricsRepository(db *sql.DB) interfaces.MetricsRepository {
	return &metricsRepository{db: db}
}

// Upsert stores the latest analytics numbers for variants of one creative.
// A variant id that does not belong to the creative aborts the whole batch.
func (r *metricsRepository) Upsert(ctx context.Context, creativeID string, metrics []models.VariantMetrics) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO variant_metrics (variant_id, impressions, clicks, spend, revenue, updated_at)
		SELECT $1::uuid, $2::bigint, $3::bigint, $4::double precision, $5::double precision, $6::timestamptz
		WHERE EXISTS (SELECT 1 FROM variants WHERE id = $1::uuid AND creative_id = $7::uuid)
		ON CONFLICT (variant_id) DO UPDATE SET
			impressions = EXCLUDED.impressions,
			clicks = EXCLUDED.clicks,
			spend = EXCLUDED.spend,
			revenue = EXCLUDED.revenue,
			updated_at = EXCLUDED.updated_at
	`
	now := time.Now().UTC()
	for _, m := range metrics {
		result, err := tx.ExecContext(ctx, query, m.VariantID, m.Impressions, m.Clicks, m.Spend, m.Revenue, now, creativeID)
		if err != nil {
			return fmt.Errorf("failed to save metrics for variant %s: %w", m.VariantID, err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return apperr.Wrap(apperr.CodeNotFound, sql.ErrNoRows, "variant %s not found for creative %s", m.VariantID, creativeID)
		}
	}
	return tx.Commit()
}

func (r *metricsRepository) ListByCreative(ctx context.Context, creativeID string) (map[string]models.VariantMetrics, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.variant_id, m.impressions, m.clicks, m.spend, m.revenue, m.updated_at
		FROM variant_metrics m
		JOIN variants v ON v.id = m.variant_id
		WHERE v.creative_id = $1
	`, creativeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]models.VariantMetrics{}
	for rows.Next() {
		var m models.VariantMetrics
		if err := rows.Scan(&m.VariantID, &m.Impressions, &m.Clicks, &m.Spend, &m.Revenue, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out[m.VariantID] = m
	}
	return out, rows.Err()
}
