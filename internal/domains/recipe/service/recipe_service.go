package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"recipe-admin-backend/internal/domains/recipe/model"
	"recipe-admin-backend/internal/domains/recipe/quality"
	"recipe-admin-backend/internal/domains/recipe/repository"
	"recipe-admin-backend/internal/shared"
	"recipe-admin-backend/internal/shared/utils"
	"recipe-admin-backend/pkg/cache"
	"recipe-admin-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	recipeCacheTTL   = 15 * time.Minute
	maxSlugAttempts  = 50
	defaultSlugValue = "recette"
)

// RecipeService - Implements ServiceInterface
type RecipeService struct {
	repo       repository.RecipeRepository
	enrichment repository.EnrichmentRepository
	cache      cache.Cache
	tasks      TaskEnqueuer
	now        func() time.Time
}

// NewService - Constructor with DI. tasks may be nil when the queue is disabled.
func NewService(
	repo repository.RecipeRepository,
	enrichment repository.EnrichmentRepository,
	recipeCache cache.Cache,
	tasks TaskEnqueuer,
) *RecipeService {
	return &RecipeService{
		repo:       repo,
		enrichment: enrichment,
		cache:      recipeCache,
		tasks:      tasks,
		now:        time.Now,
	}
}

func recipeCacheKey(id uuid.UUID) string {
	return model.CacheKeyRecipePrefix + id.String()
}

func detailResponse(recipe *model.Recipe) *model.RecipeDetailResponse {
	record := recipe.Record()
	return &model.RecipeDetailResponse{
		Recipe:              recipe,
		MissingFields:       quality.MissingFields(record),
		CompletenessPercent: quality.CompletenessPercent(record),
	}
}

// ============================================
// LIST / GET
// ============================================

func (s *RecipeService) ListRecipes(ctx context.Context, req model.ListRecipesRequest) (*model.ListRecipesResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	recipes, total, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	items := make([]model.RecipeListItem, 0, len(recipes))
	for i := range recipes {
		r := &recipes[i]
		record := r.Record()
		items = append(items, model.RecipeListItem{
			ID:                  r.ID,
			Title:               r.Title,
			Slug:                r.Slug,
			Category:            r.Category,
			Status:              r.Status,
			ImageURL:            r.ImageURL,
			MissingFields:       quality.MissingFields(record),
			CompletenessPercent: quality.CompletenessPercent(record),
			UpdatedAt:           r.UpdatedAt,
		})
	}

	return &model.ListRecipesResponse{
		Recipes:    items,
		Pagination: model.NewPaginationMeta(req.Page, req.Limit, total),
	}, nil
}

// getRecipe - cache-aside trên key recipe:<id>
func (s *RecipeService) getRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	return cache.Remember(ctx, s.cache, recipeCacheKey(id), recipeCacheTTL,
		func(ctx context.Context) (*model.Recipe, error) {
			return s.repo.GetByID(ctx, id)
		})
}

func (s *RecipeService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Delete(ctx, recipeCacheKey(id)); err != nil {
		log.Printf("Cache DELETE error for recipe %s: %v", id, err)
	}
}

func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*model.RecipeDetailResponse, error) {
	recipe, err := s.getRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	return detailResponse(recipe), nil
}

// ============================================
// CREATE / UPDATE / DELETE
// ============================================

// prepareForm chuẩn hoá form rồi validate; editorial rỗng được lưu NULL
func prepareForm(form *model.RecipeFormValues) error {
	form.Normalize()
	if err := form.Validate(); err != nil {
		return err
	}

	form.ImageURL = utils.TrimToNil(form.ImageURL)
	form.Difficulty = utils.TrimToNil(form.Difficulty)
	for _, field := range []**string{
		&form.IngredientsText,
		&form.InstructionsDetailed,
		&form.CulturalHistory,
		&form.Techniques,
		&form.NutritionalNotes,
		&form.MetaTitle,
		&form.MetaDescription,
		&form.ChefTips,
		&form.DifficultyDetailed,
	} {
		*field = utils.TrimToNil(*field)
	}
	return nil
}

// uniqueSlug: "tarte-tatin", "tarte-tatin-2", ...
func (s *RecipeService) uniqueSlug(ctx context.Context, title string, excludeID uuid.UUID) (string, error) {
	base := utils.GenerateSlug(title)
	if base == "" {
		base = defaultSlugValue
	}

	candidate := base
	for attempt := 2; attempt <= maxSlugAttempts+1; attempt++ {
		exists, err := s.repo.SlugExists(ctx, candidate, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, attempt)
	}

	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8]), nil
}

func (s *RecipeService) CreateRecipe(ctx context.Context, form model.RecipeFormValues) (*model.RecipeDetailResponse, error) {
	if err := prepareForm(&form); err != nil {
		return nil, err
	}

	slug, err := s.uniqueSlug(ctx, form.Title, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate slug: %w", err)
	}

	recipe := &model.Recipe{Slug: slug, Status: model.StatusDraft}
	recipe.ApplyForm(form)

	if err := s.repo.Create(ctx, recipe); err != nil {
		return nil, err
	}

	logger.Info("Recipe created", map[string]interface{}{
		"recipe_id": recipe.ID.String(),
		"slug":      recipe.Slug,
	})
	return detailResponse(recipe), nil
}

func (s *RecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, form model.RecipeFormValues) (*model.RecipeDetailResponse, error) {
	if err := prepareForm(&form); err != nil {
		return nil, err
	}

	recipe, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if recipe.Title != form.Title {
		slug, err := s.uniqueSlug(ctx, form.Title, recipe.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to generate slug: %w", err)
		}
		recipe.Slug = slug
	}
	recipe.ApplyForm(form)

	if err := s.repo.Update(ctx, recipe); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)

	return detailResponse(recipe), nil
}

func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)

	// Ảnh trên storage được xoá bất đồng bộ bởi worker
	if s.tasks != nil {
		payload, _ := json.Marshal(shared.DeleteRecipeImagesPayload{
			RecipeID: id.String(),
			Prefix:   recipeImagePrefix(id),
		})
		task := asynq.NewTask(shared.TypeDeleteRecipeImages, payload)
		if _, err := s.tasks.EnqueueContext(ctx, task, asynq.Queue(shared.QueueLow), asynq.MaxRetry(3)); err != nil {
			logger.Error("Failed to enqueue recipe image cleanup", err)
		}
	}
	return nil
}

// ============================================
// STATUS TRANSITIONS
// ============================================

func (s *RecipeService) transition(ctx context.Context, id uuid.UUID, to string, allowedFrom ...string) (*model.Recipe, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, from := range allowedFrom {
		if current.Status == from {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, model.NewInvalidTransitionError(current.Status, to)
	}

	updated, err := s.repo.UpdateStatus(ctx, id, to)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)

	logger.Info("Recipe status changed", map[string]interface{}{
		"recipe_id": id.String(),
		"from":      current.Status,
		"to":        to,
	})
	return updated, nil
}

func (s *RecipeService) Unpublish(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	return s.transition(ctx, id, model.StatusDraft, model.StatusPublished)
}

func (s *RecipeService) Archive(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	return s.transition(ctx, id, model.StatusArchived, model.StatusDraft, model.StatusPublished)
}
