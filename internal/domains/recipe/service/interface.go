package service

import (
	"context"

	"recipe-admin-backend/internal/domains/recipe/model"
	"recipe-admin-backend/internal/shared"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/xuri/excelize/v2"
)

// ServiceInterface - Định nghĩa business logic methods của recipe admin
type ServiceInterface interface {
	ListRecipes(ctx context.Context, req model.ListRecipesRequest) (*model.ListRecipesResponse, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*model.RecipeDetailResponse, error)
	CreateRecipe(ctx context.Context, form model.RecipeFormValues) (*model.RecipeDetailResponse, error)
	UpdateRecipe(ctx context.Context, id uuid.UUID, form model.RecipeFormValues) (*model.RecipeDetailResponse, error)
	DeleteRecipe(ctx context.Context, id uuid.UUID) error

	// Quality gate
	Completeness(ctx context.Context, id uuid.UUID) (*model.CompletenessResponse, error)
	PrePublishCheck(ctx context.Context, id uuid.UUID) (*model.PrePublishResponse, error)
	Publish(ctx context.Context, id uuid.UUID) (*model.PublishResult, error)
	Unpublish(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	Archive(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	ApplyTemplates(ctx context.Context, id uuid.UUID) (*model.RecipeDetailResponse, error)
	Templates(tier string) (*model.TemplatesResponse, error)
	NormalizedIngredients(ctx context.Context, id uuid.UUID) ([]model.NormalizedIngredient, error)

	// Reporting
	CompletenessReport(ctx context.Context, req model.ListRecipesRequest) (*model.CompletenessSummary, error)
	ExportCompletenessExcel(ctx context.Context, req model.ListRecipesRequest) (*excelize.File, error)
	RunCompletenessAudit(ctx context.Context, limit int) (*model.CompletenessSummary, error)
	LatestCompletenessAudit(ctx context.Context) (*model.CompletenessSummary, error)
}

// ImageService quản lý ảnh recette trên object storage
type ImageService interface {
	UploadImage(ctx context.Context, recipeID uuid.UUID, data []byte) (*model.ImageUploadResponse, error)
	ProcessImage(ctx context.Context, payload shared.ProcessRecipeImagePayload) error
	DeleteImages(ctx context.Context, payload shared.DeleteRecipeImagesPayload) error
}

// ObjectStorage is the subset of storage.MinIOStorage used by the image service.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Download(ctx context.Context, key string) ([]byte, error)
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// TaskEnqueuer is satisfied by *asynq.Client.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}
