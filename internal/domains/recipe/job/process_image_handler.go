package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	recipeService "recipe-admin-backend/internal/domains/recipe/service"
	"recipe-admin-backend/internal/shared"
)

// ProcessImageHandler tạo các variant large/medium/thumbnail cho ảnh recette
type ProcessImageHandler struct {
	imageService recipeService.ImageService
}

func NewProcessImageHandler(imageService recipeService.ImageService) *ProcessImageHandler {
	return &ProcessImageHandler{imageService: imageService}
}

func (h *ProcessImageHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.ProcessRecipeImagePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal ProcessRecipeImage payload")
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	log.Info().
		Str("recipe_id", payload.RecipeID).
		Str("key", payload.OriginalKey).
		Msg("Processing recipe image variants")

	if err := h.imageService.ProcessImage(ctx, payload); err != nil {
		log.Error().
			Err(err).
			Str("recipe_id", payload.RecipeID).
			Msg("Failed to process recipe image")
		return fmt.Errorf("process image: %w", err)
	}

	return nil
}

// DeleteImagesHandler xoá toàn bộ ảnh của recette sau khi recette bị xoá
type DeleteImagesHandler struct {
	imageService recipeService.ImageService
}

func NewDeleteImagesHandler(imageService recipeService.ImageService) *DeleteImagesHandler {
	return &DeleteImagesHandler{imageService: imageService}
}

func (h *DeleteImagesHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.DeleteRecipeImagesPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal DeleteRecipeImages payload")
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	if err := h.imageService.DeleteImages(ctx, payload); err != nil {
		log.Error().
			Err(err).
			Str("recipe_id", payload.RecipeID).
			Msg("Failed to delete recipe images")
		return fmt.Errorf("delete images: %w", err)
	}

	log.Info().
		Str("recipe_id", payload.RecipeID).
		Msg("Recipe images deleted")
	return nil
}
