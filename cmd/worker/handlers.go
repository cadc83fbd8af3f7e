package main

import (
	"github.com/hibiken/asynq"

	recipeJob "recipe-admin-backend/internal/domains/recipe/job"
	"recipe-admin-backend/internal/shared"
	"recipe-admin-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	processRecipeImage *recipeJob.ProcessImageHandler
	deleteRecipeImages *recipeJob.DeleteImagesHandler
	completenessAudit  *recipeJob.CompletenessAuditHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container, cfg *Config) *HandlerRegistry {
	return &HandlerRegistry{
		processRecipeImage: recipeJob.NewProcessImageHandler(c.ImageRecipeService),
		deleteRecipeImages: recipeJob.NewDeleteImagesHandler(c.ImageRecipeService),
		completenessAudit:  recipeJob.NewCompletenessAuditHandler(c.RecipeService, cfg.AuditLimit),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Recipe images
	mux.HandleFunc(shared.TypeProcessRecipeImage, h.processRecipeImage.ProcessTask)
	mux.HandleFunc(shared.TypeDeleteRecipeImages, h.deleteRecipeImages.ProcessTask)

	// Maintenance
	mux.HandleFunc(shared.TypeRecipeCompletenessJob, h.completenessAudit.ProcessTask)
}
