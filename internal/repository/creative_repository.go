package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/lib/pq"

	"creativeops/internal/apperr"
	"creativeops/internal/interfaces"
	"creativeops/internal/models"
)

type creativeRepository struct {
	db *sql.DB
}

func NewCreativeRepository(db *sql.DB) interfaces.CreativeRepository {
	return &creativeRepository{db: db}
}

const creativeColumns = `id, title, description, campaign, format_type, tags, selected_platforms, base_image_ref, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCreative(row rowScanner) (*models.Creative, error) {
	var (
		c         models.Creative
		format    string
		platforms []string
	)
	err := row.Scan(
		&c.ID,
		&c.Title,
		&c.Description,
		&c.Campaign,
		&format,
		pq.Array(&c.Tags),
		pq.Array(&platforms),
		&c.BaseImageRef,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.FormatType = models.FormatType(format)
	c.SelectedPlatforms = models.PlatformIDs(platforms)
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return &c, nil
}

func creativeNotFound(id string) error {
	return apperr.Wrap(apperr.CodeNotFound, sql.ErrNoRows, "creative %s not found", id)
}

func (r *creativeRepository) Create(ctx context.Context, creative *models.Creative, variants []models.Variant) error {
	tags := creative.Tags
	if tags == nil {
		tags = []string{}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create creative: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO creatives (
			id, title, description, campaign, format_type, tags, selected_platforms, base_image_ref, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`
	err = tx.QueryRowContext(
		ctx,
		query,
		creative.ID,
		creative.Title,
		creative.Description,
		creative.Campaign,
		string(creative.FormatType),
		pq.Array(tags),
		pq.Array(models.PlatformStrings(creative.SelectedPlatforms)),
		creative.BaseImageRef,
		creative.CreatedAt,
		creative.UpdatedAt,
	).Scan(&creative.CreatedAt, &creative.UpdatedAt)
	if err != nil {
		log.Printf("Error inserting creative %s: %v", creative.ID, err)
		return fmt.Errorf("failed to create creative: %w", err)
	}

	if err := upsertVariants(ctx, tx, variants); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *creativeRepository) GetByID(ctx context.Context, id string) (*models.Creative, error) {
	query := `SELECT ` + creativeColumns + ` FROM creatives WHERE id = $1`

	c, err := scanCreative(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, creativeNotFound(id)
		}
		return nil, err
	}
	return c, nil
}

func creativeWhere(filter models.CreativeFilter) (string, []any) {
	var (
		clauses []string
		args    []any
	)
	if filter.Platform != "" {
		args = append(args, string(filter.Platform))
		clauses = append(clauses, fmt.Sprintf("$%d = ANY(selected_platforms)", len(args)))
	}
	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *creativeRepository) List(ctx context.Context, filter models.CreativeFilter) ([]*models.Creative, error) {
	where, args := creativeWhere(filter)
	query := `SELECT ` + creativeColumns + ` FROM creatives` + where + ` ORDER BY created_at DESC, id`

	argPos := len(args) + 1
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argPos)
		args = append(args, filter.Limit)
		argPos++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argPos)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	creatives := []*models.Creative{}
	for rows.Next() {
		c, err := scanCreative(rows)
		if err != nil {
			return nil, err
		}
		creatives = append(creatives, c)
	}
	return creatives, rows.Err()
}

func (r *creativeRepository) Count(ctx context.Context, filter models.CreativeFilter) (int, error) {
	where, args := creativeWhere(filter)
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM creatives`+where, args...).Scan(&count)
	return count, err
}

// CountVariations returns the number of live variants per creative. Creatives
// without variants are absent from the map.
func (r *creativeRepository) CountVariations(ctx context.Context, creativeIDs []string) (map[string]int, error) {
	out := make(map[string]int, len(creativeIDs))
	if len(creativeIDs) == 0 {
		return out, nil
	}

	query := `
		SELECT creative_id, COUNT(*)
		FROM variants
		WHERE creative_id = ANY($1) AND NOT retired
		GROUP BY creative_id
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(creativeIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id string
			n  int
		)
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		out[id] = n
	}
	return out, rows.Err()
}

func (r *creativeRepository) UpdatePlatforms(ctx context.Context, creative *models.Creative, variants []models.Variant) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update platforms: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE creatives
		SET selected_platforms = $1, updated_at = $2
		WHERE id = $3
		RETURNING updated_at
	`
	err = tx.QueryRowContext(
		ctx,
		query,
		pq.Array(models.PlatformStrings(creative.SelectedPlatforms)),
		time.Now().UTC(),
		creative.ID,
	).Scan(&creative.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return creativeNotFound(creative.ID)
		}
		log.Printf("Error updating platforms for creative %s: %v", creative.ID, err)
		return fmt.Errorf("failed to update creative platforms: %w", err)
	}

	if err := upsertVariants(ctx, tx, variants); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *creativeRepository) UpdateBaseImage(ctx context.Context, id, ref string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE creatives SET base_image_ref = $1, updated_at = $2 WHERE id = $3`,
		ref, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update base image: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update base image: %w", err)
	}
	if rowsAffected == 0 {
		return creativeNotFound(id)
	}
	return nil
}

// Delete removes a creative and, by cascade, its variants and metrics. It is
// refused while any DCO rule still names the creative in its scope.
func (r *creativeRepository) Delete(ctx context.Context, id string) error {
	var ruleCount int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM dco_rules WHERE $1 = ANY(scope)`, id).Scan(&ruleCount); err != nil {
		log.Printf("Error checking creative references: %v", err)
		return fmt.Errorf("failed to delete creative: %w", err)
	}
	if ruleCount > 0 {
		return &interfaces.DeletionBlockedError{
			Resource: "creative",
			References: map[string]int64{
				"dco_rules": ruleCount,
			},
		}
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM creatives WHERE id = $1`, id)
	if err != nil {
		log.Printf("Error deleting creative: %v", err)
		return fmt.Errorf("failed to delete creative: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete creative: %w", err)
	}
	if rowsAffected == 0 {
		return creativeNotFound(id)
	}
	return nil
}
