package repository

import (
	"context"

	"recipe-admin-backend/internal/domains/recipe/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier là phần chung của *pgxpool.Pool và pgx.Tx
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PublishCheck returns the blocking issues for a locked recipe and its derived counts.
type PublishCheck func(recipe *model.Recipe, counts model.DerivedCounts) []string

// RecipeRepository - Định nghĩa data access methods cho bảng recipes
type RecipeRepository interface {
	Create(ctx context.Context, recipe *model.Recipe) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	GetBySlug(ctx context.Context, slug string) (*model.Recipe, error)
	SlugExists(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error)
	List(ctx context.Context, req model.ListRecipesRequest) ([]model.Recipe, int, error)
	Update(ctx context.Context, recipe *model.Recipe) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Recipe, error)
	UpdateImageURL(ctx context.Context, id uuid.UUID, imageURL string) error
	ListForAudit(ctx context.Context, limit int) ([]model.Recipe, error)

	// PublishWithCheck locks the recipe row, runs check against it and publishes
	// only when check returns no issue. The returned recipe is the post-transaction state.
	PublishWithCheck(ctx context.Context, id uuid.UUID, check PublishCheck) (*model.Recipe, []string, error)
}

// EnrichmentRepository đọc các bảng được pipeline enrichment ghi vào
type EnrichmentRepository interface {
	GetDerivedCounts(ctx context.Context, recipeID uuid.UUID) (model.DerivedCounts, error)
	ListNormalizedIngredients(ctx context.Context, recipeID uuid.UUID) ([]model.NormalizedIngredient, error)
}
