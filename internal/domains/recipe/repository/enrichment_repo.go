package repository

import (
	"context"
	"fmt"

	"recipe-admin-backend/internal/domains/recipe/model"
	"recipe-admin-backend/internal/shared/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type enrichmentRepository struct {
	pool *pgxpool.Pool
}

func NewEnrichmentRepository(pool *pgxpool.Pool) EnrichmentRepository {
	return &enrichmentRepository{pool: pool}
}

const derivedCountsQuery = `
	SELECT
		(SELECT COUNT(*) FROM recipe_ingredients_normalized WHERE recipe_id = $1),
		(SELECT COUNT(*) FROM recipe_steps_enriched WHERE recipe_id = $1),
		(SELECT COUNT(*) FROM recipe_concepts WHERE recipe_id = $1)
`

// countDerived chạy được trên pool hoặc trong transaction của publish
func countDerived(ctx context.Context, q Querier, recipeID uuid.UUID) (model.DerivedCounts, error) {
	var counts model.DerivedCounts
	err := q.QueryRow(ctx, derivedCountsQuery, recipeID).Scan(
		&counts.NormalizedIngredientsCount,
		&counts.EnrichedStepsCount,
		&counts.ConceptsCount,
	)
	if err != nil {
		return model.DerivedCounts{}, fmt.Errorf("failed to count enrichment rows: %w", err)
	}
	return counts, nil
}

func (r *enrichmentRepository) GetDerivedCounts(ctx context.Context, recipeID uuid.UUID) (model.DerivedCounts, error) {
	return countDerived(ctx, r.pool, recipeID)
}

func (r *enrichmentRepository) ListNormalizedIngredients(ctx context.Context, recipeID uuid.UUID) ([]model.NormalizedIngredient, error) {
	query := `
		SELECT id, recipe_id, position, name, quantity::float8, unit, raw_text
		FROM recipe_ingredients_normalized
		WHERE recipe_id = $1
		ORDER BY position ASC
	`

	rows, err := r.pool.Query(ctx, query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list normalized ingredients: %w", err)
	}
	defer rows.Close()

	ingredients := make([]model.NormalizedIngredient, 0)
	for rows.Next() {
		var (
			item     model.NormalizedIngredient
			quantity *float64
		)
		if err := rows.Scan(
			&item.ID,
			&item.RecipeID,
			&item.Position,
			&item.Name,
			&quantity,
			&item.Unit,
			&item.RawText,
		); err != nil {
			return nil, fmt.Errorf("failed to scan normalized ingredient: %w", err)
		}
		item.Quantity = utils.DecimalPtr(quantity, utils.QuantityPlaces)
		ingredients = append(ingredients, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return ingredients, nil
}
