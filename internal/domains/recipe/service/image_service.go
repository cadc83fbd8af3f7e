package service

import (
	"context"
	"encoding/json"
	"fmt"

	"recipe-admin-backend/internal/domains/recipe/model"
	"recipe-admin-backend/internal/domains/recipe/repository"
	"recipe-admin-backend/internal/infrastructure/storage"
	"recipe-admin-backend/internal/shared"
	"recipe-admin-backend/internal/shared/utils"
	"recipe-admin-backend/pkg/cache"
	"recipe-admin-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

func recipeImagePrefix(id uuid.UUID) string {
	return fmt.Sprintf("recipes/%s/", id)
}

type recipeImageService struct {
	repo           repository.RecipeRepository
	storage        ObjectStorage
	imageProcessor *storage.ImageProcessor
	tasks          TaskEnqueuer
	cache          cache.Cache
}

// NewImageService - storage nil nghĩa là object storage chưa được cấu hình
func NewImageService(
	repo repository.RecipeRepository,
	objectStorage ObjectStorage,
	imageProcessor *storage.ImageProcessor,
	tasks TaskEnqueuer,
	cache cache.Cache,
) ImageService {
	return &recipeImageService{
		repo:           repo,
		storage:        objectStorage,
		imageProcessor: imageProcessor,
		tasks:          tasks,
		cache:          cache,
	}
}

// UploadImage lưu ảnh gốc, gán image_url rồi enqueue job tạo variants
func (s *recipeImageService) UploadImage(ctx context.Context, recipeID uuid.UUID, data []byte) (*model.ImageUploadResponse, error) {
	if s.storage == nil {
		return nil, model.NewStorageUnavailableError()
	}

	// Step 1: Validate
	format, err := s.imageProcessor.ValidateImage(data)
	if err != nil {
		return nil, model.NewInvalidImageError(err)
	}

	// Step 2: Recette phải tồn tại
	if _, err := s.repo.GetByID(ctx, recipeID); err != nil {
		return nil, err
	}

	// Step 3: Upload original
	key := fmt.Sprintf("%soriginal.%s", recipeImagePrefix(recipeID), format)
	url, err := s.storage.Upload(ctx, key, data, "image/"+format)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	// Step 4: image_url
	if err := s.repo.UpdateImageURL(ctx, recipeID, url); err != nil {
		return nil, err
	}
	if err := s.cache.Delete(ctx, recipeCacheKey(recipeID)); err != nil {
		logger.Error("Failed to invalidate recipe cache", err)
	}

	// Step 5: Variants bất đồng bộ, lỗi enqueue không làm fail upload
	queued := false
	if s.tasks != nil {
		payload, _ := json.Marshal(shared.ProcessRecipeImagePayload{
			RecipeID:    recipeID.String(),
			OriginalKey: key,
		})
		task := asynq.NewTask(shared.TypeProcessRecipeImage, payload)
		if _, err := s.tasks.EnqueueContext(ctx, task, asynq.Queue(shared.QueueRecipe), asynq.MaxRetry(3)); err != nil {
			logger.Error("Failed to enqueue recipe image processing", err)
		} else {
			queued = true
		}
	}

	logger.Info("Recipe image uploaded", map[string]interface{}{
		"recipe_id": recipeID.String(),
		"key":       key,
		"queued":    queued,
	})

	return &model.ImageUploadResponse{RecipeID: recipeID, ImageURL: url, Queued: queued}, nil
}

// ProcessImage (worker) tải ảnh gốc, resize và upload recipes/<id>/<variant>.jpg
func (s *recipeImageService) ProcessImage(ctx context.Context, payload shared.ProcessRecipeImagePayload) error {
	if s.storage == nil {
		return model.NewStorageUnavailableError()
	}

	original, err := s.storage.Download(ctx, payload.OriginalKey)
	if err != nil {
		return fmt.Errorf("failed to download original: %w", err)
	}

	if _, err := s.imageProcessor.ValidateImage(original); err != nil {
		return fmt.Errorf("invalid image: %w", err)
	}

	variants, err := s.imageProcessor.ProcessImage(original)
	if err != nil {
		return fmt.Errorf("failed to process image: %w", err)
	}

	id := utils.UUIDOrNil(payload.RecipeID)
	if id == uuid.Nil {
		return fmt.Errorf("invalid recipe id %q", payload.RecipeID)
	}
	for _, variant := range s.imageProcessor.Variants {
		data, ok := variants[variant.Name]
		if !ok {
			continue
		}
		key := fmt.Sprintf("%s%s.jpg", recipeImagePrefix(id), variant.Name)
		if _, err := s.storage.Upload(ctx, key, data, "image/jpeg"); err != nil {
			return fmt.Errorf("failed to upload variant %s: %w", variant.Name, err)
		}
	}

	logger.Info("Recipe image processed", map[string]interface{}{
		"recipe_id": payload.RecipeID,
		"variants":  len(variants),
	})
	return nil
}

func (s *recipeImageService) DeleteImages(ctx context.Context, payload shared.DeleteRecipeImagesPayload) error {
	if s.storage == nil {
		return model.NewStorageUnavailableError()
	}
	if payload.Prefix == "" {
		return fmt.Errorf("empty prefix for recipe %s", payload.RecipeID)
	}
	return s.storage.DeleteByPrefix(ctx, payload.Prefix)
}
