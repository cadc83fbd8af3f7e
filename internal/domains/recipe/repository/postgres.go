package repository

import (
	"context"
	"errors"
	"fmt"
	"log"

	"recipe-admin-backend/internal/domains/recipe/model"
	"recipe-admin-backend/internal/shared/utils"
	"recipe-admin-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const pgUniqueViolation = "23505"

// postgresRepository - Raw SQL with pgxpool
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RecipeRepository {
	return &postgresRepository{pool: pool}
}

const recipeColumns = `
	id, title, slug, description, ingredients, instructions, category, tags,
	image_url, difficulty, status, published_at,
	ingredients_text, instructions_detailed, cultural_history, techniques,
	nutritional_notes, chef_tips, difficulty_detailed,
	meta_title, meta_description,
	created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row rowScanner) (*model.Recipe, error) {
	var r model.Recipe
	err := row.Scan(
		&r.ID, &r.Title, &r.Slug, &r.Description, pq.Array(&r.Ingredients), &r.Instructions, &r.Category, pq.Array(&r.Tags),
		&r.ImageURL, &r.Difficulty, &r.Status, &r.PublishedAt,
		&r.IngredientsText, &r.InstructionsDetailed, &r.CulturalHistory, &r.Techniques,
		&r.NutritionalNotes, &r.ChefTips, &r.DifficultyDetailed,
		&r.MetaTitle, &r.MetaDescription,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if r.Ingredients == nil {
		r.Ingredients = []string{}
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	return &r, nil
}

func mapWriteError(err error, slug string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return model.NewDuplicateSlugError(slug)
	}
	return err
}

// ============================================
// CREATE / READ
// ============================================

func (r *postgresRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	query := `
		INSERT INTO recipes (
			title, slug, description, ingredients, instructions, category, tags,
			image_url, difficulty, status,
			ingredients_text, instructions_detailed, cultural_history, techniques,
			nutritional_notes, chef_tips, difficulty_detailed,
			meta_title, meta_description
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10,
			$11, $12, $13, $14,
			$15, $16, $17,
			$18, $19
		)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		recipe.Title, recipe.Slug, recipe.Description, pq.Array(recipe.Ingredients), recipe.Instructions, recipe.Category, pq.Array(recipe.Tags),
		recipe.ImageURL, recipe.Difficulty, recipe.Status,
		recipe.IngredientsText, recipe.InstructionsDetailed, recipe.CulturalHistory, recipe.Techniques,
		recipe.NutritionalNotes, recipe.ChefTips, recipe.DifficultyDetailed,
		recipe.MetaTitle, recipe.MetaDescription,
	).Scan(&recipe.ID, &recipe.CreatedAt, &recipe.UpdatedAt)
	if err != nil {
		if mapped := mapWriteError(err, recipe.Slug); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to create recipe: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE id = $1`

	recipe, err := scanRecipe(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.NewRecipeNotFoundError()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return recipe, nil
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*model.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE slug = $1`

	recipe, err := scanRecipe(r.pool.QueryRow(ctx, query, slug))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.NewRecipeNotFoundError()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe by slug: %w", err)
	}
	return recipe, nil
}

func (r *postgresRepository) SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM recipes WHERE slug = $1 AND id != $2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return exists, nil
}

// ============================================
// LIST
// ============================================

func buildListWhere(req model.ListRecipesRequest) *utils.WhereBuilder {
	where := &utils.WhereBuilder{}
	if req.Status != "" {
		where.Add("status = ?", req.Status)
	}
	if req.Category != "" {
		where.Add("category = ?", req.Category)
	}
	if req.Search != "" {
		pattern := "%" + req.Search + "%"
		where.Add("(title ILIKE ? OR slug ILIKE ?)", pattern, pattern)
	}
	return where
}

func (r *postgresRepository) List(ctx context.Context, req model.ListRecipesRequest) ([]model.Recipe, int, error) {
	where := buildListWhere(req)

	var total int
	countQuery := `SELECT COUNT(*) FROM recipes ` + where.SQL()
	if err := r.pool.QueryRow(ctx, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count recipes: %w", err)
	}

	limit := where.Next(req.Limit)
	offset := where.Next(req.Offset())
	query := fmt.Sprintf(`SELECT %s FROM recipes %s ORDER BY updated_at DESC LIMIT %s OFFSET %s`,
		recipeColumns, where.SQL(), limit, offset)

	recipes, err := r.queryRecipes(ctx, query, where.Args()...)
	if err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// ListForAudit trả về các recette chưa publish, cũ nhất trước
func (r *postgresRepository) ListForAudit(ctx context.Context, limit int) ([]model.Recipe, error) {
	query := `SELECT ` + recipeColumns + `
		FROM recipes
		WHERE status != 'published'
		ORDER BY updated_at ASC
		LIMIT $1`
	return r.queryRecipes(ctx, query, limit)
}

func (r *postgresRepository) queryRecipes(ctx context.Context, query string, args ...any) ([]model.Recipe, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		log.Printf("[RecipeRepository] query error: %v", err)
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	recipes := make([]model.Recipe, 0)
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, *recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return recipes, nil
}

// ============================================
// UPDATE / DELETE
// ============================================

// Update ghi nội dung form, không đụng tới status (chỉ đổi qua publish/unpublish)
func (r *postgresRepository) Update(ctx context.Context, recipe *model.Recipe) error {
	query := `
		UPDATE recipes SET
			title = $2, slug = $3, description = $4, ingredients = $5, instructions = $6,
			category = $7, tags = $8, image_url = $9, difficulty = $10,
			ingredients_text = $11, instructions_detailed = $12, cultural_history = $13,
			techniques = $14, nutritional_notes = $15, chef_tips = $16, difficulty_detailed = $17,
			meta_title = $18, meta_description = $19,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		recipe.ID,
		recipe.Title, recipe.Slug, recipe.Description, pq.Array(recipe.Ingredients), recipe.Instructions,
		recipe.Category, pq.Array(recipe.Tags), recipe.ImageURL, recipe.Difficulty,
		recipe.IngredientsText, recipe.InstructionsDetailed, recipe.CulturalHistory,
		recipe.Techniques, recipe.NutritionalNotes, recipe.ChefTips, recipe.DifficultyDetailed,
		recipe.MetaTitle, recipe.MetaDescription,
	).Scan(&recipe.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.NewRecipeNotFoundError()
	}
	if err != nil {
		if mapped := mapWriteError(err, recipe.Slug); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to update recipe: %w", err)
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewRecipeNotFoundError()
	}
	return nil
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Recipe, error) {
	query := `
		UPDATE recipes SET
			status = $2,
			published_at = CASE WHEN $2 = 'published' THEN COALESCE(published_at, NOW()) ELSE published_at END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + recipeColumns

	recipe, err := scanRecipe(r.pool.QueryRow(ctx, query, id, status))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.NewRecipeNotFoundError()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update recipe status: %w", err)
	}
	return recipe, nil
}

func (r *postgresRepository) UpdateImageURL(ctx context.Context, id uuid.UUID, imageURL string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE recipes SET image_url = $2, updated_at = NOW() WHERE id = $1`, id, imageURL)
	if err != nil {
		return fmt.Errorf("failed to update image url: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.NewRecipeNotFoundError()
	}
	return nil
}

// ============================================
// PUBLISH (transaction + SELECT FOR UPDATE)
// ============================================

type publishOutcome struct {
	recipe *model.Recipe
	issues []string
}

func (r *postgresRepository) PublishWithCheck(ctx context.Context, id uuid.UUID, check PublishCheck) (*model.Recipe, []string, error) {
	outcome, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (publishOutcome, error) {
		// Step 1: Lock row để enrichment/edits không chen giữa check và update
		recipe, err := scanRecipe(tx.QueryRow(ctx,
			`SELECT `+recipeColumns+` FROM recipes WHERE id = $1 FOR UPDATE`, id))
		if errors.Is(err, pgx.ErrNoRows) {
			return publishOutcome{}, model.NewRecipeNotFoundError()
		}
		if err != nil {
			return publishOutcome{}, fmt.Errorf("failed to lock recipe: %w", err)
		}

		// Step 2: Counts trong cùng transaction
		counts, err := countDerived(ctx, tx, id)
		if err != nil {
			return publishOutcome{}, err
		}

		// Step 3: Issues => giữ nguyên trạng thái
		if issues := check(recipe, counts); len(issues) > 0 {
			return publishOutcome{recipe: recipe, issues: issues}, nil
		}

		// Step 4: Publish
		published, err := scanRecipe(tx.QueryRow(ctx, `
			UPDATE recipes SET
				status = 'published',
				published_at = COALESCE(published_at, NOW()),
				updated_at = NOW()
			WHERE id = $1
			RETURNING `+recipeColumns, id))
		if err != nil {
			return publishOutcome{}, fmt.Errorf("failed to publish recipe: %w", err)
		}
		return publishOutcome{recipe: published, issues: []string{}}, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return outcome.recipe, outcome.issues, nil
}
